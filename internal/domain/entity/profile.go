package entity

import "time"

// Profile datos de presentación y rol de una Identity (uno por Identity).
// Version se incrementa en cada modificación para que la sesión del titular detecte que está desactualizado.
type Profile struct {
	IdentityID string    `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Role       string    `json:"role"` // user, manager, admin
	Version    int64     `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
