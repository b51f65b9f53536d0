package purchase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/confeitaria-api/internal/application/audit"
	"github.com/jhoicas/confeitaria-api/internal/application/cashflow"
	"github.com/jhoicas/confeitaria-api/internal/application/crud"
	"github.com/jhoicas/confeitaria-api/internal/application/purchase"
	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
	"github.com/jhoicas/confeitaria-api/internal/infrastructure/memory"
	"github.com/jhoicas/confeitaria-api/pkg/logger"
)

const owner = "owner-1"

type fixture struct {
	svc    *purchase.Service
	cash   *cashflow.Service
	stores *memory.Stores
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	st := memory.NewStores()
	log := logger.Nop()
	em := audit.NewEmitter(st.Audit, log, nil)
	cash := crud.New[entity.CashFlowTransaction](entity.EntityCashFlow, st.CashFlow, em)
	purchases := crud.New[entity.Purchase](entity.EntityPurchases, st.Purchases, em)
	svc := purchase.NewService(purchases, st.Suppliers, st.Categories, st.Ingredients, cashflow.NewLinker(cash, log, nil))

	ctx := context.Background()
	require.NoError(t, st.Suppliers.Insert(ctx, &entity.Supplier{Base: entity.Base{ID: "s1", OwnerID: owner}, Name: "Moinho Sul", Status: entity.StatusActive}))
	require.NoError(t, st.Ingredients.Insert(ctx, &entity.Ingredient{Base: entity.Base{ID: "i1", OwnerID: owner}, Name: "Farinha", UnitMeasure: "kg", Status: entity.StatusActive}))
	require.NoError(t, st.Ingredients.Insert(ctx, &entity.Ingredient{Base: entity.Base{ID: "i2", OwnerID: owner}, Name: "Açúcar", UnitMeasure: "kg", Status: entity.StatusActive}))
	return fixture{svc: svc, cash: cash, stores: st}
}

func strptr(s string) *string { return &s }

func newPurchase() *entity.Purchase {
	return &entity.Purchase{
		SupplierID:   strptr("s1"),
		PurchaseDate: entity.NewDate(entity.ParseDateMust("2026-03-10")),
		PaymentForm:  "pix",
		Items: []entity.PurchaseItem{
			{IngredientID: "i1", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.RequireFromString("4.50")},
			{IngredientID: "i2", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("6.25")},
		},
	}
}

func TestCreate_TotalDeLineasYSaida(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.svc.Create(ctx, owner, newPurchase())
	require.NoError(t, err)
	assert.Equal(t, "35.00", p.Total.StringFixed(2))
	assert.Equal(t, "Moinho Sul", p.SupplierName)
	require.Len(t, p.Items, 2)
	assert.Equal(t, p.ID, p.Items[0].PurchaseID)
	assert.NotEmpty(t, p.Items[0].ID)
	assert.Equal(t, "22.50", p.Items[0].TotalPrice.StringFixed(2))

	cash, err := f.cash.List(ctx, owner, repository.ListFilter{})
	require.NoError(t, err)
	require.Len(t, cash, 1)
	assert.Equal(t, entity.CashOutflow, cash[0].TransactionType)
	assert.Equal(t, entity.CashCategoryPurchase, cash[0].Category)
	assert.True(t, cash[0].Amount.Equal(p.Total))
	assert.Equal(t, "2026-03-10", cash[0].TransactionDate.String())
	assert.Equal(t, "Compra - Moinho Sul", cash[0].Description)
}

func TestDelete_RemueveSaida(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p, err := f.svc.Create(ctx, owner, newPurchase())
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, owner, p.ID))

	list, err := f.svc.List(ctx, owner, repository.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	cash, err := f.cash.List(ctx, owner, repository.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, cash)
}

func TestDelete_FalloDeLimpiezaNoFallaElBorrado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p, err := f.svc.Create(ctx, owner, newPurchase())
	require.NoError(t, err)

	// el borrado del movimiento es la próxima escritura sobre caixa
	f.stores.CashFlow.FailNext(errors.New("caixa caído"))
	require.NoError(t, f.svc.Delete(ctx, owner, p.ID))

	_, err = f.svc.Get(ctx, owner, p.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCreate_ReferenciasInexistentes(t *testing.T) {
	f := newFixture(t)
	p := newPurchase()
	p.SupplierID = strptr("nope")
	_, err := f.svc.Create(context.Background(), owner, p)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	p = newPurchase()
	p.Items[1].IngredientID = "nope"
	_, err = f.svc.Create(context.Background(), owner, p)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, 0, f.stores.Purchases.Len())
}

func TestUpdate_ReemplazaLineas(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p, err := f.svc.Create(ctx, owner, newPurchase())
	require.NoError(t, err)

	patch := json.RawMessage(`{"purchase_items":[{"ingredient_id":"i1","quantity":"1","unit_price":"10"}]}`)
	after, err := f.svc.Update(ctx, owner, p.ID, patch)
	require.NoError(t, err)
	require.Len(t, after.Items, 1)
	assert.Equal(t, "10.00", after.Total.StringFixed(2))
	assert.Equal(t, "Moinho Sul", after.SupplierName)
}

func TestList_RellenaNombres(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.svc.Create(ctx, owner, newPurchase())
	require.NoError(t, err)

	list, err := f.svc.List(ctx, owner, repository.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Moinho Sul", list[0].SupplierName)
	assert.Len(t, list[0].Items, 2)
}
