package entity

import "time"

// Identity cuenta de autenticación (email + hash). Nunca se elimina; el Profile la referencia.
type Identity struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	CreatedAt    time.Time
}

// AuthSession sesión emitida en el login; SignOut la revoca.
type AuthSession struct {
	ID         string
	IdentityID string
	CreatedAt  time.Time
	ExpiresAt  time.Time
	RevokedAt  *time.Time
}

// Active informa si la sesión sigue vigente en now.
func (s *AuthSession) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
