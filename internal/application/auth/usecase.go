package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/confeitaria-api/internal/application/dto"
	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/access"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
	"github.com/jhoicas/confeitaria-api/internal/observability/metrics"
	"github.com/jhoicas/confeitaria-api/pkg/jwt"
	"github.com/jhoicas/confeitaria-api/pkg/validation"
)

// ErrInvalidCredentials email o contraseña incorrectos.
var ErrInvalidCredentials = fmt.Errorf("%w: email o contraseña inválidos", domain.ErrUnauthorized)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Auditor registra los cambios de perfil; lo implementa *audit.Emitter.
type Auditor interface {
	Log(ctx context.Context, actorID string, action entity.AuditAction, entityType, entityID string, oldData, newData any)
}

// AuthUseCase registro, login, logout y gestión de perfiles.
type AuthUseCase struct {
	identities repository.IdentityRepository
	sessions   repository.SessionRepository
	profiles   repository.ProfileRepository
	audit      Auditor
	jwtCfg     JWTConfig
	metrics    *metrics.Metrics
	now        func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth; m puede ser nil.
func NewAuthUseCase(identities repository.IdentityRepository, sessions repository.SessionRepository, profiles repository.ProfileRepository, auditor Auditor, jwtCfg JWTConfig, m *metrics.Metrics) *AuthUseCase {
	return &AuthUseCase{
		identities: identities,
		sessions:   sessions,
		profiles:   profiles,
		audit:      auditor,
		jwtCfg:     jwtCfg,
		metrics:    m,
		now:        time.Now,
	}
}

// SignUp crea la identidad (password con bcrypt) e inmediatamente su perfil con rol user.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) SignUp(ctx context.Context, in dto.SignUpRequest) (*entity.Profile, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	email := in.Email
	if _, err := uc.identities.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("auth: buscar email: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	ident := &entity.Identity{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	if err := uc.identities.Create(ctx, ident); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		name = email
	}
	profile := &entity.Profile{
		IdentityID: ident.ID,
		Email:      email,
		FullName:   name,
		Role:       string(access.RoleUser),
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.profiles.Create(ctx, profile); err != nil {
		// sin perfil la identidad no es utilizable: se revierte para permitir reintentar
		if derr := uc.identities.Delete(context.WithoutCancel(ctx), ident.ID); derr != nil {
			return nil, fmt.Errorf("auth: crear perfil: %w (revertir identidad: %v)", err, derr)
		}
		return nil, fmt.Errorf("auth: crear perfil: %w", err)
	}
	uc.audit.Log(ctx, ident.ID, entity.AuditCreate, entity.EntityProfiles, ident.ID, nil, profile)
	return profile, nil
}

// SignIn verifica email/password, abre una sesión y firma el JWT que la referencia.
func (uc *AuthUseCase) SignIn(ctx context.Context, in dto.SignInRequest) (*dto.SignInResponse, error) {
	res, err := uc.signIn(ctx, in)
	uc.metrics.Login(err == nil)
	return res, err
}

func (uc *AuthUseCase) signIn(ctx context.Context, in dto.SignInRequest) (*dto.SignInResponse, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	ident, err := uc.identities.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(ident.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	now := uc.now()
	sess := &entity.AuthSession{
		ID:         uuid.New().String(),
		IdentityID: ident.ID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
	}
	if err := uc.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("auth: crear sesión: %w", err)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, ident.ID, sess.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	// sin perfil el login sigue siendo válido: la sesión se resolverá con rol user
	profile, _ := uc.profiles.GetByIdentityID(ctx, ident.ID)
	return &dto.SignInResponse{Token: token, ExpiresAt: sess.ExpiresAt, Profile: profile}, nil
}

// SignOut revoca la sesión; el token deja de aceptarse aunque no haya vencido.
func (uc *AuthUseCase) SignOut(ctx context.Context, sessionID string) error {
	if err := uc.sessions.Revoke(ctx, sessionID, uc.now()); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("auth: cerrar sesión: %w", err)
	}
	return nil
}

// GetProfile perfil de la identidad.
func (uc *AuthUseCase) GetProfile(ctx context.Context, identityID string) (*entity.Profile, error) {
	return uc.profiles.GetByIdentityID(ctx, identityID)
}

// UpdateProfile cambia el nombre del titular e incrementa la versión del perfil.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, identityID string, in dto.UpdateProfileRequest) (*entity.Profile, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	cur, err := uc.profiles.GetByIdentityID(ctx, identityID)
	if err != nil {
		return nil, err
	}
	before := *cur
	cur.FullName = strings.TrimSpace(in.FullName)
	cur.UpdatedAt = uc.now()
	updated, err := uc.profiles.Update(ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("auth: actualizar perfil: %w", err)
	}
	uc.audit.Log(ctx, identityID, entity.AuditUpdate, entity.EntityProfiles, identityID, before, updated)
	return updated, nil
}

// ChangeRole asigna un rol a otro usuario. Solo un admin puede hacerlo y nunca sobre sí mismo.
func (uc *AuthUseCase) ChangeRole(ctx context.Context, actorID string, actorRole access.Role, targetID string, in dto.ChangeRoleRequest) (*entity.Profile, error) {
	if actorRole != access.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if actorID == targetID {
		return nil, fmt.Errorf("%w: no puede cambiar su propio rol", domain.ErrForbidden)
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	cur, err := uc.profiles.GetByIdentityID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	before := *cur
	cur.Role = in.Role
	cur.UpdatedAt = uc.now()
	updated, err := uc.profiles.Update(ctx, cur)
	if err != nil {
		return nil, fmt.Errorf("auth: cambiar rol: %w", err)
	}
	uc.audit.Log(ctx, actorID, entity.AuditUpdate, entity.EntityProfiles, targetID, before, updated)
	return updated, nil
}

// ListUsers perfiles de todos los usuarios (pantalla de usuarios).
func (uc *AuthUseCase) ListUsers(ctx context.Context) ([]entity.Profile, error) {
	return uc.profiles.List(ctx)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
