package repository

import (
	"context"
	"time"

	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
)

// IdentityRepository puerto del colaborador de autenticación (credenciales).
type IdentityRepository interface {
	Create(ctx context.Context, id *entity.Identity) error
	GetByEmail(ctx context.Context, email string) (*entity.Identity, error)
	GetByID(ctx context.Context, id string) (*entity.Identity, error)
	// Delete deshace un alta que no llegó a completarse.
	Delete(ctx context.Context, id string) error
}

// SessionRepository sesiones emitidas en el login; revocarlas hace efectivo el logout.
type SessionRepository interface {
	Create(ctx context.Context, s *entity.AuthSession) error
	GetByID(ctx context.Context, id string) (*entity.AuthSession, error)
	Revoke(ctx context.Context, id string, at time.Time) error
}

// ProfileRepository perfiles de aplicación (rol, nombre, versión).
type ProfileRepository interface {
	Create(ctx context.Context, p *entity.Profile) error
	GetByIdentityID(ctx context.Context, identityID string) (*entity.Profile, error)
	// Update persiste nombre y rol e incrementa Version; devuelve el perfil resultante.
	Update(ctx context.Context, p *entity.Profile) (*entity.Profile, error)
	List(ctx context.Context) ([]entity.Profile, error)
}

// AuditQuery filtros de consulta de auditoría.
type AuditQuery struct {
	ActorID    string
	Action     entity.AuditAction
	EntityType string
	From       *time.Time
	To         *time.Time
	Limit      int
}

// AuditRepository almacenamiento append-only de AuditLogEntry.
type AuditRepository interface {
	Append(ctx context.Context, e *entity.AuditLogEntry) error
	// Query devuelve las entradas del actor, más recientes primero.
	Query(ctx context.Context, q AuditQuery) ([]entity.AuditLogEntry, error)
}
