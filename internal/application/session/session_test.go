package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/confeitaria-api/internal/application/session"
	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/access"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/infrastructure/memory"
	"github.com/jhoicas/confeitaria-api/pkg/logger"
)

func seed(t *testing.T, st *memory.Stores, role string) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, st.Identities.Create(ctx, &entity.Identity{ID: "id-1", Email: "ana@doce.com", CreatedAt: now}))
	require.NoError(t, st.Sessions.Create(ctx, &entity.AuthSession{ID: "s-1", IdentityID: "id-1", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}))
	if role != "-" {
		require.NoError(t, st.Profiles.Create(ctx, &entity.Profile{IdentityID: "id-1", Email: "ana@doce.com", Role: role}))
	}
}

func TestResolve_RolDelPerfil(t *testing.T) {
	st := memory.NewStores()
	seed(t, st, "manager")
	r := session.NewResolver(st.Identities, st.Sessions, st.Profiles, logger.Nop())

	s, err := r.Resolve(context.Background(), "id-1", "s-1")
	require.NoError(t, err)
	assert.Equal(t, access.RoleManager, s.Role)
	assert.Equal(t, "ana@doce.com", s.Email)
	assert.Equal(t, int64(1), s.ProfileVersion())
}

func TestResolve_SinPerfilDegradaAUser(t *testing.T) {
	st := memory.NewStores()
	seed(t, st, "-")
	r := session.NewResolver(st.Identities, st.Sessions, st.Profiles, logger.Nop())

	s, err := r.Resolve(context.Background(), "id-1", "s-1")
	require.NoError(t, err)
	assert.Equal(t, access.RoleUser, s.Role)
	assert.Nil(t, s.Profile)
}

func TestResolve_ErrorDePerfilDegradaAUser(t *testing.T) {
	st := memory.NewStores()
	seed(t, st, "admin")
	st.Profiles.Err = errors.New("timeout")
	r := session.NewResolver(st.Identities, st.Sessions, st.Profiles, logger.Nop())

	s, err := r.Resolve(context.Background(), "id-1", "s-1")
	require.NoError(t, err)
	assert.Equal(t, access.RoleUser, s.Role)
}

func TestResolve_RolVacioEsUser(t *testing.T) {
	st := memory.NewStores()
	seed(t, st, "")
	r := session.NewResolver(st.Identities, st.Sessions, st.Profiles, logger.Nop())

	s, err := r.Resolve(context.Background(), "id-1", "s-1")
	require.NoError(t, err)
	assert.Equal(t, access.RoleUser, s.Role)
}

func TestResolve_SesionRevocada(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStores()
	seed(t, st, "user")
	require.NoError(t, st.Sessions.Revoke(ctx, "s-1", time.Now()))
	r := session.NewResolver(st.Identities, st.Sessions, st.Profiles, logger.Nop())

	_, err := r.Resolve(ctx, "id-1", "s-1")
	assert.True(t, errors.Is(err, domain.ErrSessionRevoked))

	_, err = r.Resolve(ctx, "id-1", "no-existe")
	assert.True(t, errors.Is(err, domain.ErrSessionRevoked))
}

func TestResolve_SesionDeOtraIdentidad(t *testing.T) {
	st := memory.NewStores()
	seed(t, st, "user")
	r := session.NewResolver(st.Identities, st.Sessions, st.Profiles, logger.Nop())

	_, err := r.Resolve(context.Background(), "id-2", "s-1")
	assert.True(t, errors.Is(err, domain.ErrSessionRevoked))
}
