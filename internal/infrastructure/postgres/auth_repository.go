package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
)

var (
	_ repository.IdentityRepository = (*IdentityRepo)(nil)
	_ repository.SessionRepository  = (*SessionRepo)(nil)
	_ repository.ProfileRepository  = (*ProfileRepo)(nil)
)

// IdentityRepo implementación del puerto IdentityRepository sobre PostgreSQL.
type IdentityRepo struct {
	pool *pgxpool.Pool
}

// NewIdentityRepository construye el adaptador de persistencia para identidades.
func NewIdentityRepository(pool *pgxpool.Pool) *IdentityRepo {
	return &IdentityRepo{pool: pool}
}

// Create persiste una nueva identidad.
func (r *IdentityRepo) Create(ctx context.Context, id *entity.Identity) error {
	query := `
		INSERT INTO identities (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, id.ID, id.Email, id.PasswordHash, id.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert identity: %w", err)
	}
	return nil
}

// GetByEmail busca por email sin distinguir mayúsculas.
func (r *IdentityRepo) GetByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	return r.find(ctx, `WHERE lower(email) = lower($1)`, email)
}

func (r *IdentityRepo) GetByID(ctx context.Context, id string) (*entity.Identity, error) {
	return r.find(ctx, `WHERE id = $1`, id)
}

func (r *IdentityRepo) find(ctx context.Context, where string, arg any) (*entity.Identity, error) {
	var i entity.Identity
	err := r.pool.QueryRow(ctx, `SELECT id, email, password_hash, created_at FROM identities `+where, arg).
		Scan(&i.ID, &i.Email, &i.PasswordHash, &i.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get identity: %w", err)
	}
	return &i, nil
}

// Delete borra la identidad (alta revertida).
func (r *IdentityRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM identities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SessionRepo sesiones emitidas en el login.
type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

func (r *SessionRepo) Create(ctx context.Context, s *entity.AuthSession) error {
	query := `
		INSERT INTO auth_sessions (id, identity_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)`
	if _, err := r.pool.Exec(ctx, query, s.ID, s.IdentityID, s.CreatedAt, s.ExpiresAt); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.AuthSession, error) {
	var s entity.AuthSession
	err := r.pool.QueryRow(ctx, `
		SELECT id, identity_id, created_at, expires_at, revoked_at
		FROM auth_sessions WHERE id = $1`, id).
		Scan(&s.ID, &s.IdentityID, &s.CreatedAt, &s.ExpiresAt, &s.RevokedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

// Revoke marca la sesión como revocada; revocar dos veces conserva la primera marca.
func (r *SessionRepo) Revoke(ctx context.Context, id string, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE auth_sessions SET revoked_at = COALESCE(revoked_at, $2) WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ProfileRepo perfiles (user_profiles).
type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

const profileColumns = `identity_id, email, full_name, role, version, created_at, updated_at`

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	var p entity.Profile
	if err := row.Scan(&p.IdentityID, &p.Email, &p.FullName, &p.Role, &p.Version, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepo) Create(ctx context.Context, p *entity.Profile) error {
	if p.Version == 0 {
		p.Version = 1
	}
	query := `INSERT INTO user_profiles (` + profileColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query, p.IdentityID, p.Email, p.FullName, p.Role, p.Version, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return mapWriteErr("insert profile", err)
	}
	return nil
}

func (r *ProfileRepo) GetByIdentityID(ctx context.Context, identityID string) (*entity.Profile, error) {
	p, err := scanProfile(r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE identity_id = $1`, identityID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// Update persiste nombre y rol e incrementa version en la misma sentencia.
func (r *ProfileRepo) Update(ctx context.Context, p *entity.Profile) (*entity.Profile, error) {
	out, err := scanProfile(r.pool.QueryRow(ctx, `
		UPDATE user_profiles SET full_name = $2, role = $3, updated_at = $4, version = version + 1
		WHERE identity_id = $1
		RETURNING `+profileColumns, p.IdentityID, p.FullName, p.Role, p.UpdatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return out, nil
}

func (r *ProfileRepo) List(ctx context.Context) ([]entity.Profile, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+profileColumns+` FROM user_profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	out := make([]entity.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
