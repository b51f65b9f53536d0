// Package session resuelve, por petición, la identidad autenticada, su perfil y su rol.
// El objeto Session se construye explícitamente y se pasa a quien lo necesita.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/access"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
	"github.com/jhoicas/confeitaria-api/pkg/logger"
)

// Session identidad autenticada con su perfil resuelto. Profile es nil si no se pudo leer;
// en ese caso Role es user.
type Session struct {
	IdentityID string
	Email      string
	SessionID  string
	Profile    *entity.Profile
	Role       access.Role
}

// ProfileVersion versión del perfil (0 si no se pudo resolver).
func (s *Session) ProfileVersion() int64 {
	if s == nil || s.Profile == nil {
		return 0
	}
	return s.Profile.Version
}

// Resolver construye Sessions a partir de los ids del token.
type Resolver struct {
	identities repository.IdentityRepository
	sessions   repository.SessionRepository
	profiles   repository.ProfileRepository
	log        *logger.Logger
	now        func() time.Time
}

// NewResolver construye el resolver.
func NewResolver(identities repository.IdentityRepository, sessions repository.SessionRepository, profiles repository.ProfileRepository, log *logger.Logger) *Resolver {
	return &Resolver{identities: identities, sessions: sessions, profiles: profiles, log: log, now: time.Now}
}

// Resolve valida la sesión y resuelve identidad y perfil. Una sesión revocada o vencida
// devuelve domain.ErrSessionRevoked; un fallo al leer el perfil degrada el rol a user.
func (r *Resolver) Resolve(ctx context.Context, identityID, sessionID string) (*Session, error) {
	sess, err := r.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrSessionRevoked
		}
		return nil, fmt.Errorf("sesión: %w", err)
	}
	if sess.IdentityID != identityID || !sess.Active(r.now()) {
		return nil, domain.ErrSessionRevoked
	}
	ident, err := r.identities.GetByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("identidad: %w", err)
	}
	s := &Session{IdentityID: ident.ID, Email: ident.Email, SessionID: sess.ID}
	s.Profile, s.Role = r.ResolveRole(ctx, ident.ID)
	return s, nil
}

// ResolveRole lee el perfil y deriva el rol. Nunca falla: ante error, perfil ausente o rol
// vacío devuelve user.
func (r *Resolver) ResolveRole(ctx context.Context, identityID string) (*entity.Profile, access.Role) {
	p, err := r.profiles.GetByIdentityID(ctx, identityID)
	if err != nil {
		r.log.Warn().Err(err).Str("identity_id", identityID).Msg("sesión: perfil no disponible, se usa rol user")
		return nil, access.RoleUser
	}
	return p, access.ParseRole(p.Role)
}
