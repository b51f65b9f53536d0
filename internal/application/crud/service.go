// Package crud implementa el acceso a datos genérico de las entidades de negocio: cada
// operación se acota al dueño y emite una entrada de auditoría tras una mutación exitosa.
package crud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
	"github.com/jhoicas/confeitaria-api/pkg/validation"
)

// Auditor emisor de auditoría; lo implementa *audit.Emitter.
type Auditor interface {
	Log(ctx context.Context, actorID string, action entity.AuditAction, entityType, entityID string, oldData, newData any)
}

// Service CRUD genérico para la entidad T, identificada en la auditoría por entityType.
type Service[T any, P entity.RecordPtr[T]] struct {
	entityType string
	store      repository.Store[T]
	audit      Auditor
	now        func() time.Time
}

// New construye el servicio. P se infiere: crud.New[entity.Client](...).
func New[T any, P entity.RecordPtr[T]](entityType string, store repository.Store[T], audit Auditor) *Service[T, P] {
	return &Service[T, P]{entityType: entityType, store: store, audit: audit, now: time.Now}
}

// EntityType etiqueta de la entidad en la auditoría.
func (s *Service[T, P]) EntityType() string { return s.entityType }

// List filas del dueño según el filtro.
func (s *Service[T, P]) List(ctx context.Context, ownerID string, f repository.ListFilter) ([]T, error) {
	rows, err := s.store.List(ctx, ownerID, f)
	if err != nil {
		return nil, fmt.Errorf("%s: listar: %w", s.entityType, err)
	}
	return rows, nil
}

// Get fila por id del dueño; domain.ErrNotFound si no existe.
func (s *Service[T, P]) Get(ctx context.Context, ownerID, id string) (*T, error) {
	rec, err := s.store.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, wrap(s.entityType, "obtener", err)
	}
	return rec, nil
}

// Create asigna id, dueño y marcas de tiempo, valida y persiste. Audita create(nil, nuevo).
func (s *Service[T, P]) Create(ctx context.Context, ownerID string, rec *T) (*T, error) {
	p := P(rec)
	now := s.now()
	meta := p.Meta()
	meta.ID = uuid.New().String()
	meta.OwnerID = ownerID
	meta.CreatedAt = now
	meta.UpdatedAt = now
	if n, ok := any(p).(entity.Normalizer); ok {
		n.Normalize()
	}
	if err := validation.Struct(rec); err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, rec); err != nil {
		return nil, wrap(s.entityType, "crear", err)
	}
	s.audit.Log(ctx, ownerID, entity.AuditCreate, s.entityType, meta.ID, nil, rec)
	return rec, nil
}

// Update aplica patch (JSON parcial) sobre la fila actual. Los campos de Base no se pueden
// modificar. Devuelve el estado anterior y el nuevo; audita update(anterior, nuevo).
func (s *Service[T, P]) Update(ctx context.Context, ownerID, id string, patch json.RawMessage) (before, after *T, err error) {
	prior, err := s.store.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, nil, wrap(s.entityType, "actualizar", err)
	}
	priorJSON, err := json.Marshal(prior)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: snapshot: %w", s.entityType, err)
	}

	var next T
	if err := json.Unmarshal(priorJSON, &next); err != nil {
		return nil, nil, fmt.Errorf("%s: copiar: %w", s.entityType, err)
	}
	if len(patch) > 0 {
		if err := clearPatchedSlices(&next, patch); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		if err := json.Unmarshal(patch, &next); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}
	base := *P(prior).Meta()
	base.UpdatedAt = s.now()
	*P(&next).Meta() = base

	if n, ok := any(P(&next)).(entity.Normalizer); ok {
		n.Normalize()
	}
	if err := validation.Struct(&next); err != nil {
		return nil, nil, err
	}
	if err := s.store.Update(ctx, &next); err != nil {
		return nil, nil, wrap(s.entityType, "actualizar", err)
	}
	s.audit.Log(ctx, ownerID, entity.AuditUpdate, s.entityType, id, json.RawMessage(priorJSON), &next)
	return prior, &next, nil
}

// Delete borra la fila y devuelve su último estado; audita delete(anterior, nil). Las
// entidades SoftDeletable no se borran: Delete equivale a Deactivate.
func (s *Service[T, P]) Delete(ctx context.Context, ownerID, id string) (*T, error) {
	if _, ok := any(P(new(T))).(entity.SoftDeletable); ok {
		return s.Deactivate(ctx, ownerID, id)
	}
	prior, err := s.store.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, wrap(s.entityType, "eliminar", err)
	}
	if err := s.store.Delete(ctx, ownerID, id); err != nil {
		return nil, wrap(s.entityType, "eliminar", err)
	}
	s.audit.Log(ctx, ownerID, entity.AuditDelete, s.entityType, id, prior, nil)
	return prior, nil
}

// Deactivate borrado lógico: marca la fila como inactiva y devuelve el nuevo estado. Solo para
// entidades SoftDeletable. Audita delete(anterior, nuevo); nuevo lleva status inactive.
func (s *Service[T, P]) Deactivate(ctx context.Context, ownerID, id string) (*T, error) {
	prior, err := s.store.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, wrap(s.entityType, "desactivar", err)
	}
	priorJSON, err := json.Marshal(prior)
	if err != nil {
		return nil, fmt.Errorf("%s: snapshot: %w", s.entityType, err)
	}
	next := *prior
	sd, ok := any(P(&next)).(entity.SoftDeletable)
	if !ok {
		return nil, fmt.Errorf("%s: %w", s.entityType, domain.ErrSoftDeleteOnly)
	}
	sd.SetStatus(entity.StatusInactive)
	P(&next).Meta().UpdatedAt = s.now()
	if err := s.store.Update(ctx, &next); err != nil {
		return nil, wrap(s.entityType, "desactivar", err)
	}
	s.audit.Log(ctx, ownerID, entity.AuditDelete, s.entityType, id, json.RawMessage(priorJSON), &next)
	return &next, nil
}

// clearPatchedSlices anula los slices que el patch trae, para que el decode los reemplace
// en vez de mezclar el JSON nuevo sobre los elementos anteriores.
func clearPatchedSlices(dst any, patch json.RawMessage) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(patch, &keys); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	clearSlices(reflect.ValueOf(dst).Elem(), keys)
	return nil
}

func clearSlices(v reflect.Value, keys map[string]json.RawMessage) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f, fv := t.Field(i), v.Field(i)
		if f.Anonymous && fv.Kind() == reflect.Struct {
			clearSlices(fv, keys)
			continue
		}
		if !f.IsExported() || fv.Kind() != reflect.Slice {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		for k := range keys {
			// encoding/json empareja claves sin distinguir mayúsculas
			if strings.EqualFold(k, name) {
				fv.Set(reflect.Zero(f.Type))
				break
			}
		}
	}
}

func wrap(entityType, op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s %s: %w", entityType, op, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %s: %w", entityType, op, err)
}
