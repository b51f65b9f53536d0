// Package audit registra, consulta y resume el log de auditoría de las mutaciones.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
	"github.com/jhoicas/confeitaria-api/internal/observability/metrics"
	"github.com/jhoicas/confeitaria-api/pkg/logger"
)

// Emitter escribe entradas de auditoría. Log nunca falla hacia el llamador.
type Emitter struct {
	repo    repository.AuditRepository
	log     *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewEmitter construye el emisor; metrics puede ser nil.
func NewEmitter(repo repository.AuditRepository, log *logger.Logger, m *metrics.Metrics) *Emitter {
	return &Emitter{repo: repo, log: log, metrics: m, now: time.Now}
}

// Log registra una mutación. oldData/newData se serializan a JSON; nil se guarda como NULL.
// Los errores se registran en el log y se descartan; la mutación primaria ya ocurrió.
func (e *Emitter) Log(ctx context.Context, actorID string, action entity.AuditAction, entityType, entityID string, oldData, newData any) {
	entry := &entity.AuditLogEntry{
		ID:         uuid.New().String(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		OldData:    e.snapshot(oldData, entityType),
		NewData:    e.snapshot(newData, entityType),
		CreatedAt:  e.now(),
	}
	// la escritura no depende de que el cliente siga conectado
	err := e.repo.Append(context.WithoutCancel(ctx), entry)
	e.metrics.AuditWrite(entityType, err == nil)
	if err != nil {
		e.log.Error().Err(err).
			Str("action", string(action)).
			Str("entity_type", entityType).
			Str("entity_id", entityID).
			Msg("auditoría: no se pudo registrar la acción")
	}
}

func (e *Emitter) snapshot(v any, entityType string) json.RawMessage {
	switch s := v.(type) {
	case nil:
		return nil
	case json.RawMessage:
		if len(s) == 0 {
			return nil
		}
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		e.log.Warn().Err(err).Str("entity_type", entityType).Msg("auditoría: snapshot no serializable")
		return nil
	}
	if string(b) == "null" {
		return nil
	}
	return b
}

// Filter filtros de consulta del log.
type Filter struct {
	Action     entity.AuditAction
	EntityType string
	From       *time.Time
	To         *time.Time
	Limit      int
}

// Query entradas del actor filtradas, más recientes primero.
func (e *Emitter) Query(ctx context.Context, actorID string, f Filter) ([]entity.AuditLogEntry, error) {
	entries, err := e.repo.Query(ctx, repository.AuditQuery{
		ActorID:    actorID,
		Action:     f.Action,
		EntityType: f.EntityType,
		From:       f.From,
		To:         f.To,
		Limit:      f.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("auditoría: consultar: %w", err)
	}
	return entries, nil
}

// Summary totales del log por acción y por tipo de entidad.
type Summary struct {
	Total        int            `json:"total"`
	ByAction     map[string]int `json:"by_action"`
	ByEntityType map[string]int `json:"by_table"`
}

// Summarize consulta el rango y lo resume.
func (e *Emitter) Summarize(ctx context.Context, actorID string, from, to *time.Time) (Summary, error) {
	entries, err := e.Query(ctx, actorID, Filter{From: from, To: to})
	if err != nil {
		return Summary{}, err
	}
	return Summarize(entries), nil
}

// Summarize reducción pura de una lista de entradas.
func Summarize(entries []entity.AuditLogEntry) Summary {
	s := Summary{
		Total:        len(entries),
		ByAction:     make(map[string]int),
		ByEntityType: make(map[string]int),
	}
	for _, en := range entries {
		s.ByAction[string(en.Action)]++
		s.ByEntityType[en.EntityType]++
	}
	return s
}
