package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo log de auditoría append-only (audit_logs). No expone UPDATE ni DELETE.
type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Append(ctx context.Context, e *entity.AuditLogEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_logs (id, user_id, action, table_name, record_id, old_data, new_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.ActorID, string(e.Action), e.EntityType, e.EntityID, nullJSON(e.OldData), nullJSON(e.NewData), e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// Query entradas del actor, más recientes primero.
func (r *AuditRepo) Query(ctx context.Context, q repository.AuditQuery) ([]entity.AuditLogEntry, error) {
	conds := []string{"user_id = $1"}
	args := []any{q.ActorID}
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if q.Action != "" {
		add("action = $%d", string(q.Action))
	}
	if q.EntityType != "" {
		add("table_name = $%d", q.EntityType)
	}
	if q.From != nil {
		add("created_at >= $%d", *q.From)
	}
	if q.To != nil {
		add("created_at <= $%d", *q.To)
	}
	query := `SELECT id, user_id, action, table_name, record_id, old_data, new_data, created_at
		FROM audit_logs WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY created_at DESC`
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.Limit)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit logs: %w", err)
	}
	defer rows.Close()

	out := make([]entity.AuditLogEntry, 0)
	for rows.Next() {
		var e entity.AuditLogEntry
		var action string
		var oldData, newData []byte
		if err := rows.Scan(&e.ID, &e.ActorID, &action, &e.EntityType, &e.EntityID, &oldData, &newData, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		e.Action = entity.AuditAction(action)
		e.OldData, e.NewData = oldData, newData
		out = append(out, e)
	}
	return out, rows.Err()
}

// nullJSON envía NULL en lugar de un documento vacío.
func nullJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
