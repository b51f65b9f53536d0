package dto

import (
	"time"

	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
)

// SignUpRequest entrada para registro: crea la identidad y su perfil con rol user.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"omitempty,max=200"`
}

// SignInRequest entrada para login.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignInResponse token JWT de la sesión emitida más el perfil del titular.
type SignInResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Profile   *entity.Profile `json:"profile"`
}

// UpdateProfileRequest el titular solo puede cambiar su nombre.
type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,max=200"`
}

// ChangeRoleRequest entrada de PUT /api/users/:id/role (solo admin).
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user manager admin"`
}

// SessionResponse respuesta de GET /api/session.
type SessionResponse struct {
	IdentityID     string          `json:"identity_id"`
	Email          string          `json:"email"`
	Role           string          `json:"role"`
	Profile        *entity.Profile `json:"profile"`
	ProfileVersion int64           `json:"profile_version"`
	AllowedPaths   []string        `json:"allowed_paths"`
}

// ProfileVersionResponse respuesta de GET /api/session/profile-version. El cliente compara
// con la versión que tiene en memoria y vuelve a pedir la sesión si cambió.
type ProfileVersionResponse struct {
	Version int64 `json:"version"`
}

// NavigationResponse rutas que el rol de la sesión puede abrir, en orden de menú.
type NavigationResponse struct {
	Role         string   `json:"role"`
	AllowedPaths []string `json:"allowed_paths"`
}

// NavigationCheckResponse decisión del guard para una ruta.
type NavigationCheckResponse struct {
	Path     string `json:"path"`
	Allow    bool   `json:"allow"`
	Redirect string `json:"redirect,omitempty"`
}
