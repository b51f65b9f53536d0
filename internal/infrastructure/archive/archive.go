// Package archive guarda copias de las exportaciones generadas (CSV, PDF) en un almacén de
// blobs: directorio local, memoria o un bucket S3 compatible.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/jhoicas/confeitaria-api/internal/observability/metrics"
	"github.com/jhoicas/confeitaria-api/pkg/config"
	"github.com/jhoicas/confeitaria-api/pkg/logger"
)

// Drivers admitidos.
const (
	DriverFilesystem = "fs"
	DriverMemory     = "memory"
	DriverS3         = "s3"
)

// Store almacén de blobs de solo escritura por clave.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Driver() string
}

// Open elige la implementación según cfg.Driver. Driver vacío desactiva el archivo (nil, nil).
func Open(ctx context.Context, cfg config.ArchiveConfig) (Store, error) {
	switch cfg.Driver {
	case "":
		return nil, nil
	case DriverFilesystem:
		return NewFilesystem(cfg.Dir)
	case DriverMemory:
		return NewMemory(), nil
	case DriverS3:
		return NewS3(ctx, S3Config{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			PathStyle: cfg.PathStyle,
		})
	default:
		return nil, fmt.Errorf("archive: driver desconocido %q", cfg.Driver)
	}
}

// Archiver guarda exportaciones sin afectar la respuesta: los fallos se registran y se descartan.
// Un Archiver nil o sin store no hace nada.
type Archiver struct {
	store   Store
	prefix  string
	log     *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewArchiver construye el archivador; store puede ser nil (archivo desactivado).
func NewArchiver(store Store, prefix string, log *logger.Logger, m *metrics.Metrics) *Archiver {
	return &Archiver{store: store, prefix: strings.Trim(prefix, "/"), log: log, metrics: m, now: time.Now}
}

// Key clave del blob: <prefix>/<owner>/<yyyy>/<mm>/<unix>-<name>.
func (a *Archiver) Key(ownerID, name string) string {
	t := a.now().UTC()
	return path.Join(a.prefix, ownerID, t.Format("2006"), t.Format("01"), fmt.Sprintf("%d-%s", t.Unix(), name))
}

// Save guarda data bajo una clave derivada del dueño y el nombre del archivo. Devuelve la clave
// usada, o vacío si no se archivó.
func (a *Archiver) Save(ctx context.Context, ownerID, name, contentType string, data []byte) string {
	if a == nil || a.store == nil {
		return ""
	}
	key := a.Key(ownerID, name)
	// la copia no depende de que el cliente siga conectado
	err := a.store.Put(context.WithoutCancel(ctx), key, bytes.NewReader(data), contentType)
	a.metrics.Export("archive_"+a.store.Driver(), err == nil)
	if err != nil {
		a.log.Error().Err(err).Str("key", key).Str("driver", a.store.Driver()).Msg("archive: no se pudo guardar la exportación")
		return ""
	}
	return key
}
