package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
	"github.com/jhoicas/confeitaria-api/internal/infrastructure/memory"
)

const (
	ownerA = "owner-a"
	ownerB = "owner-b"
)

func cash(id, owner, date, typ string) *entity.CashFlowTransaction {
	return &entity.CashFlowTransaction{
		Base:            entity.Base{ID: id, OwnerID: owner},
		TransactionDate: entity.NewDate(entity.ParseDateMust(date)),
		TransactionType: typ,
		Amount:          decimal.NewFromInt(10),
	}
}

func TestTable_FiltraPorDuenoYOrdenaPorFecha(t *testing.T) {
	ctx := context.Background()
	tbl := memory.NewStores().CashFlow
	require.NoError(t, tbl.Insert(ctx, cash("1", ownerA, "2026-03-01", entity.CashInflow)))
	require.NoError(t, tbl.Insert(ctx, cash("2", ownerA, "2026-03-05", entity.CashOutflow)))
	require.NoError(t, tbl.Insert(ctx, cash("3", ownerB, "2026-03-03", entity.CashInflow)))

	list, err := tbl.List(ctx, ownerA, repository.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2", list[0].ID, "más reciente primero")

	_, err = tbl.GetByID(ctx, ownerB, "1")
	assert.True(t, errors.Is(err, domain.ErrNotFound), "otro dueño no ve la fila")
}

func TestTable_FiltroRangoYEquals(t *testing.T) {
	ctx := context.Background()
	tbl := memory.NewStores().CashFlow
	require.NoError(t, tbl.Insert(ctx, cash("1", ownerA, "2026-02-28", entity.CashInflow)))
	require.NoError(t, tbl.Insert(ctx, cash("2", ownerA, "2026-03-01", entity.CashInflow)))
	require.NoError(t, tbl.Insert(ctx, cash("3", ownerA, "2026-03-31", entity.CashOutflow)))

	from := entity.ParseDateMust("2026-03-01")
	to := entity.ParseDateMust("2026-03-31")
	list, err := tbl.List(ctx, ownerA, repository.ListFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = tbl.List(ctx, ownerA, repository.ListFilter{
		From: &from, To: &to,
		Equals: map[string]string{"transaction_type": entity.CashInflow},
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2", list[0].ID)
}

func TestTable_GuardaCopias(t *testing.T) {
	ctx := context.Background()
	tbl := memory.NewStores().Purchases
	p := &entity.Purchase{
		Base:         entity.Base{ID: "p1", OwnerID: ownerA, CreatedAt: time.Now()},
		PurchaseDate: entity.NewDate(time.Now()),
		Items:        []entity.PurchaseItem{{IngredientID: "i1", Quantity: decimal.NewFromInt(1)}},
	}
	require.NoError(t, tbl.Insert(ctx, p))
	p.Items[0].IngredientID = "mutado"

	got, err := tbl.GetByID(ctx, ownerA, "p1")
	require.NoError(t, err)
	assert.Equal(t, "i1", got.Items[0].IngredientID)
}

func TestTable_SoftDeleteOcultaInactivos(t *testing.T) {
	ctx := context.Background()
	tbl := memory.NewStores().Suppliers
	require.NoError(t, tbl.Insert(ctx, &entity.Supplier{Base: entity.Base{ID: "s1", OwnerID: ownerA}, Name: "B", Status: entity.StatusActive}))
	require.NoError(t, tbl.Insert(ctx, &entity.Supplier{Base: entity.Base{ID: "s2", OwnerID: ownerA}, Name: "A", Status: entity.StatusInactive}))

	list, err := tbl.List(ctx, ownerA, repository.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "s1", list[0].ID)

	list, err = tbl.List(ctx, ownerA, repository.ListFilter{IncludeInactive: true})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name, "referencia ordenada por nombre")
}

func TestTable_FailNext(t *testing.T) {
	ctx := context.Background()
	tbl := memory.NewStores().Clients
	boom := errors.New("boom")
	tbl.FailNext(boom)
	err := tbl.Insert(ctx, &entity.Client{Base: entity.Base{ID: "c1", OwnerID: ownerA}, Name: "Ana"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, tbl.Len())

	require.NoError(t, tbl.Insert(ctx, &entity.Client{Base: entity.Base{ID: "c1", OwnerID: ownerA}, Name: "Ana"}))
	assert.ErrorIs(t, tbl.Insert(ctx, &entity.Client{Base: entity.Base{ID: "c1", OwnerID: ownerA}}), domain.ErrDuplicate)
}

func TestAuditRepo_MasRecientesPrimero(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAuditRepo()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, a := range []entity.AuditAction{entity.AuditCreate, entity.AuditUpdate, entity.AuditDelete} {
		require.NoError(t, repo.Append(ctx, &entity.AuditLogEntry{
			ID: string(a), ActorID: ownerA, Action: a, EntityType: entity.EntityClients,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	got, err := repo.Query(ctx, repository.AuditQuery{ActorID: ownerA})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, entity.AuditDelete, got[0].Action)
	assert.Equal(t, entity.AuditCreate, got[2].Action)

	got, err = repo.Query(ctx, repository.AuditQuery{ActorID: ownerA, Action: entity.AuditUpdate})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
