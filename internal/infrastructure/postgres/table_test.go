package postgres

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
)

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/confeitaria?sslmode=disable",
		migrateURL("postgres://u:p@db:5432/confeitaria?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/x", migrateURL("postgresql://u@db/x"))
	assert.Equal(t, "pgx5://ya", migrateURL("pgx5://ya"))
}

func TestMigrationsEmbebidas(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "000001_init.up.sql")
	assert.Contains(t, names, "000001_init.down.sql")
}

func TestWhere_FiltrosYRango(t *testing.T) {
	tbl := NewTable[entity.CashFlowTransaction](nil, cashFlowMapping)
	from := entity.ParseDateMust("2026-03-01")
	to := entity.ParseDateMust("2026-03-31")

	where, args, err := tbl.where("owner-1", repository.ListFilter{
		From:   &from,
		To:     &to,
		Equals: map[string]string{"transaction_type": "entrada", "category": "venda"},
	})
	require.NoError(t, err)
	assert.Equal(t, "owner_id = $1 AND transaction_date >= $2 AND transaction_date <= $3"+
		" AND COALESCE(category::text, '') = $4 AND COALESCE(transaction_type::text, '') = $5", where)
	require.Len(t, args, 5)
	assert.Equal(t, "venda", args[3])

	_, _, err = tbl.where("owner-1", repository.ListFilter{Equals: map[string]string{"amount": "1"}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestWhere_OcultaInactivos(t *testing.T) {
	tbl := NewTable[entity.Supplier](nil, supplierMapping)

	where, _, err := tbl.where("owner-1", repository.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, "owner_id = $1 AND status <> 'inactive'", where)

	where, _, err = tbl.where("owner-1", repository.ListFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Equal(t, "owner_id = $1", where)
}
