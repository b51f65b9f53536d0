package repository

import (
	"context"
	"time"

	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
)

// ListFilter filtros comunes de listado. From/To acotan la fecha de negocio (inclusive);
// Equals filtra por atributos de la lista blanca de cada entidad.
type ListFilter struct {
	From            *time.Time
	To              *time.Time
	Equals          map[string]string
	IncludeInactive bool
	Limit           int
}

// Match evalúa el filtro contra un registro en memoria.
func (f ListFilter) Match(r entity.Record) bool {
	if d := r.BusinessDate(); !d.IsZero() {
		if f.From != nil && d.Before(*f.From) {
			return false
		}
		if f.To != nil && d.After(*f.To) {
			return false
		}
	}
	if !f.IncludeInactive {
		if sd, ok := r.(entity.SoftDeletable); ok && !sd.IsActive() {
			return false
		}
	}
	for k, want := range f.Equals {
		got, ok := r.Attr(k)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// Store puerto genérico de persistencia por entidad. Toda lectura y escritura se acota al dueño.
// GetByID devuelve domain.ErrNotFound si la fila no existe o pertenece a otro dueño.
type Store[T any] interface {
	Insert(ctx context.Context, rec *T) error
	GetByID(ctx context.Context, ownerID, id string) (*T, error)
	List(ctx context.Context, ownerID string, f ListFilter) ([]T, error)
	Update(ctx context.Context, rec *T) error
	Delete(ctx context.Context, ownerID, id string) error
}
