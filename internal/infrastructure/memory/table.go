// Package memory implementa los puertos de persistencia en memoria. Se usa como doble de
// pruebas y como driver de desarrollo local (DB_DRIVER=memory).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
)

// Table almacén genérico de registros indexado por id. Guarda copias, nunca punteros del llamador.
type Table[T any, P entity.RecordPtr[T]] struct {
	mu    sync.RWMutex
	rows  map[string]T
	less  func(a, b *T) bool
	clone func(T) T
	// failNext, si no es nil, se devuelve (una vez) en la siguiente escritura.
	failNext error
}

var _ repository.Store[entity.Client] = (*Table[entity.Client, *entity.Client])(nil)

// NewTable construye la tabla; less define el orden de List (nil = orden de fecha de negocio desc).
func NewTable[T any, P entity.RecordPtr[T]](less func(a, b *T) bool) *Table[T, P] {
	if less == nil {
		less = func(a, b *T) bool {
			da, db := P(a).BusinessDate(), P(b).BusinessDate()
			if !da.Equal(db) {
				return da.After(db)
			}
			return P(a).Meta().CreatedAt.After(P(b).Meta().CreatedAt)
		}
	}
	return &Table[T, P]{rows: make(map[string]T), less: less, clone: func(v T) T { return v }}
}

// WithClone define la copia profunda para entidades con slices (p. ej. compras con líneas).
func (t *Table[T, P]) WithClone(fn func(T) T) *Table[T, P] {
	t.clone = fn
	return t
}

// FailNext hace que la próxima escritura devuelva err (simula fallos del colaborador).
func (t *Table[T, P]) FailNext(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failNext = err
}

func (t *Table[T, P]) takeFailure() error {
	err := t.failNext
	t.failNext = nil
	return err
}

func (t *Table[T, P]) Insert(_ context.Context, rec *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.takeFailure(); err != nil {
		return err
	}
	id := P(rec).Meta().ID
	if _, ok := t.rows[id]; ok {
		return domain.ErrDuplicate
	}
	t.rows[id] = t.clone(*rec)
	return nil
}

func (t *Table[T, P]) GetByID(_ context.Context, ownerID, id string) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok || P(&row).Meta().OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	row = t.clone(row)
	return &row, nil
}

func (t *Table[T, P]) List(_ context.Context, ownerID string, f repository.ListFilter) ([]T, error) {
	t.mu.RLock()
	out := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		r := t.clone(row)
		if P(&r).Meta().OwnerID != ownerID || !f.Match(P(&r)) {
			continue
		}
		out = append(out, r)
	}
	t.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return t.less(&out[i], &out[j]) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (t *Table[T, P]) Update(_ context.Context, rec *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.takeFailure(); err != nil {
		return err
	}
	meta := P(rec).Meta()
	cur, ok := t.rows[meta.ID]
	if !ok || P(&cur).Meta().OwnerID != meta.OwnerID {
		return domain.ErrNotFound
	}
	t.rows[meta.ID] = t.clone(*rec)
	return nil
}

func (t *Table[T, P]) Delete(_ context.Context, ownerID, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.takeFailure(); err != nil {
		return err
	}
	cur, ok := t.rows[id]
	if !ok || P(&cur).Meta().OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

// Len cantidad total de filas (todos los dueños).
func (t *Table[T, P]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// ByName orden alfabético para entidades de referencia.
func ByName[T any](name func(*T) string) func(a, b *T) bool {
	return func(a, b *T) bool { return name(a) < name(b) }
}
