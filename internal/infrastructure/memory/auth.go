package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
)

var (
	_ repository.IdentityRepository = (*IdentityRepo)(nil)
	_ repository.SessionRepository  = (*SessionRepo)(nil)
	_ repository.ProfileRepository  = (*ProfileRepo)(nil)
)

// IdentityRepo identidades en memoria; el email es único sin distinguir mayúsculas.
type IdentityRepo struct {
	mu   sync.RWMutex
	byID map[string]entity.Identity
}

func NewIdentityRepo() *IdentityRepo {
	return &IdentityRepo{byID: make(map[string]entity.Identity)}
}

func (r *IdentityRepo) Create(_ context.Context, id *entity.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cur := range r.byID {
		if strings.EqualFold(cur.Email, id.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.byID[id.ID] = *id
	return nil
}

func (r *IdentityRepo) GetByEmail(_ context.Context, email string) (*entity.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, cur := range r.byID {
		if strings.EqualFold(cur.Email, email) {
			c := cur
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *IdentityRepo) GetByID(_ context.Context, id string) (*entity.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cur, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &cur, nil
}

func (r *IdentityRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// SessionRepo sesiones en memoria.
type SessionRepo struct {
	mu   sync.RWMutex
	byID map[string]entity.AuthSession
}

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{byID: make(map[string]entity.AuthSession)}
}

func (r *SessionRepo) Create(_ context.Context, s *entity.AuthSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[s.ID] = *s
	return nil
}

func (r *SessionRepo) GetByID(_ context.Context, id string) (*entity.AuthSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cur, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &cur, nil
}

func (r *SessionRepo) Revoke(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.RevokedAt == nil {
		cur.RevokedAt = &at
		r.byID[id] = cur
	}
	return nil
}

// ProfileRepo perfiles en memoria. Err, si no es nil, se devuelve en GetByIdentityID.
type ProfileRepo struct {
	mu   sync.RWMutex
	byID map[string]entity.Profile
	Err  error
}

func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{byID: make(map[string]entity.Profile)}
}

func (r *ProfileRepo) Create(_ context.Context, p *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.IdentityID]; ok {
		return domain.ErrDuplicate
	}
	if p.Version == 0 {
		p.Version = 1
	}
	r.byID[p.IdentityID] = *p
	return nil
}

func (r *ProfileRepo) GetByIdentityID(_ context.Context, identityID string) (*entity.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	cur, ok := r.byID[identityID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &cur, nil
}

func (r *ProfileRepo) Update(_ context.Context, p *entity.Profile) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[p.IdentityID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cur.FullName = p.FullName
	cur.Role = p.Role
	cur.UpdatedAt = p.UpdatedAt
	cur.Version++
	r.byID[p.IdentityID] = cur
	return &cur, nil
}

func (r *ProfileRepo) List(_ context.Context) ([]entity.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Profile, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
