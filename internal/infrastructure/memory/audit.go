package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo log de auditoría append-only en memoria. Err simula fallos al escribir.
type AuditRepo struct {
	mu      sync.RWMutex
	entries []entity.AuditLogEntry
	Err     error
}

func NewAuditRepo() *AuditRepo { return &AuditRepo{} }

func (r *AuditRepo) Append(_ context.Context, e *entity.AuditLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.entries = append(r.entries, *e)
	return nil
}

func (r *AuditRepo) Query(_ context.Context, q repository.AuditQuery) ([]entity.AuditLogEntry, error) {
	r.mu.RLock()
	out := make([]entity.AuditLogEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if q.ActorID != "" && e.ActorID != q.ActorID {
			continue
		}
		if q.Action != "" && e.Action != q.Action {
			continue
		}
		if q.EntityType != "" && e.EntityType != q.EntityType {
			continue
		}
		if q.From != nil && e.CreatedAt.Before(*q.From) {
			continue
		}
		if q.To != nil && e.CreatedAt.After(*q.To) {
			continue
		}
		out = append(out, e)
	}
	r.mu.RUnlock()

	// más recientes primero; a igual instante, el último insertado primero
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// All todas las entradas en orden de inserción.
func (r *AuditRepo) All() []entity.AuditLogEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.AuditLogEntry(nil), r.entries...)
}
