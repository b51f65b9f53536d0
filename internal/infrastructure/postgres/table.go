package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
)

// Mapping describe cómo se guarda una entidad en su tabla.
type Mapping[T any] struct {
	Table string
	// Columns columnas propias de la entidad, sin id, owner_id, created_at ni updated_at.
	Columns []string
	// Fields punteros a los campos de rec en el orden de Columns; sirven para escribir y escanear.
	Fields func(rec *T) []any
	// DateColumn columna de la fecha de negocio; vacío en entidades de referencia.
	DateColumn string
	// Filters columnas admitidas en ListFilter.Equals (el nombre coincide con el atributo).
	Filters []string
	// SoftDelete la tabla tiene columna status y List oculta las inactivas por defecto.
	SoftDelete bool
}

// Table implementación genérica de repository.Store[T] sobre una tabla con owner_id.
type Table[T any, P entity.RecordPtr[T]] struct {
	db DBTX
	m  Mapping[T]
}

// NewTable construye el repositorio de la tabla descrita por m.
func NewTable[T any, P entity.RecordPtr[T]](db DBTX, m Mapping[T]) *Table[T, P] {
	return &Table[T, P]{db: db, m: m}
}

// With devuelve la misma tabla operando sobre db (típicamente una pgx.Tx).
func (t *Table[T, P]) With(db DBTX) *Table[T, P] {
	return &Table[T, P]{db: db, m: t.m}
}

func (t *Table[T, P]) columns() string {
	return "id, owner_id, created_at, updated_at, " + strings.Join(t.m.Columns, ", ")
}

func (t *Table[T, P]) targets(rec *T) []any {
	meta := P(rec).Meta()
	return append([]any{&meta.ID, &meta.OwnerID, &meta.CreatedAt, &meta.UpdatedAt}, t.m.Fields(rec)...)
}

func (t *Table[T, P]) orderBy() string {
	if t.m.DateColumn != "" {
		return t.m.DateColumn + " DESC, created_at DESC"
	}
	return "name ASC"
}

// Insert persiste rec con el id y dueño ya asignados.
func (t *Table[T, P]) Insert(ctx context.Context, rec *T) error {
	args := t.targets(rec)
	ph := make([]string, len(args))
	for i := range ph {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.m.Table, t.columns(), strings.Join(ph, ", "))
	if _, err := t.db.Exec(ctx, query, args...); err != nil {
		return mapWriteErr("insert "+t.m.Table, err)
	}
	return nil
}

// GetByID devuelve domain.ErrNotFound si la fila no existe o es de otro dueño.
func (t *Table[T, P]) GetByID(ctx context.Context, ownerID, id string) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE owner_id = $1 AND id = $2", t.columns(), t.m.Table)
	var rec T
	if err := t.db.QueryRow(ctx, query, ownerID, id).Scan(t.targets(&rec)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", t.m.Table, err)
	}
	return &rec, nil
}

// List filas del dueño según f, más recientes primero (o por nombre en entidades de referencia).
func (t *Table[T, P]) List(ctx context.Context, ownerID string, f repository.ListFilter) ([]T, error) {
	where, args, err := t.where(ownerID, f)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s", t.columns(), t.m.Table, where, t.orderBy())
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}
	rows, err := t.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.m.Table, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		var rec T
		if err := rows.Scan(t.targets(&rec)...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.m.Table, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (t *Table[T, P]) where(ownerID string, f repository.ListFilter) (string, []any, error) {
	conds := []string{"owner_id = $1"}
	args := []any{ownerID}
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if t.m.DateColumn != "" {
		if f.From != nil {
			add(t.m.DateColumn+" >= $%d", entity.NewDate(*f.From))
		}
		if f.To != nil {
			add(t.m.DateColumn+" <= $%d", entity.NewDate(*f.To))
		}
	}
	if t.m.SoftDelete && !f.IncludeInactive {
		conds = append(conds, "status <> '"+entity.StatusInactive+"'")
	}
	keys := make([]string, 0, len(f.Equals))
	for k := range f.Equals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !t.filterable(k) {
			return "", nil, fmt.Errorf("%w: filtro %q no admitido en %s", domain.ErrInvalidInput, k, t.m.Table)
		}
		add("COALESCE("+k+"::text, '') = $%d", f.Equals[k])
	}
	return strings.Join(conds, " AND "), args, nil
}

func (t *Table[T, P]) filterable(col string) bool {
	for _, c := range t.m.Filters {
		if c == col {
			return true
		}
	}
	return false
}

// Update reescribe todas las columnas propias y updated_at de la fila del dueño.
func (t *Table[T, P]) Update(ctx context.Context, rec *T) error {
	meta := P(rec).Meta()
	sets := make([]string, 0, len(t.m.Columns)+1)
	args := []any{meta.OwnerID, meta.ID, meta.UpdatedAt}
	sets = append(sets, "updated_at = $3")
	for i, c := range t.m.Columns {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+4))
	}
	args = append(args, t.m.Fields(rec)...)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE owner_id = $1 AND id = $2", t.m.Table, strings.Join(sets, ", "))
	tag, err := t.db.Exec(ctx, query, args...)
	if err != nil {
		return mapWriteErr("update "+t.m.Table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la fila del dueño.
func (t *Table[T, P]) Delete(ctx context.Context, ownerID, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE owner_id = $1 AND id = $2", t.m.Table)
	tag, err := t.db.Exec(ctx, query, ownerID, id)
	if err != nil {
		return mapWriteErr("delete "+t.m.Table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
