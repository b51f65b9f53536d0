package crud_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/confeitaria-api/internal/application/audit"
	"github.com/jhoicas/confeitaria-api/internal/application/crud"
	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
	"github.com/jhoicas/confeitaria-api/internal/infrastructure/memory"
	"github.com/jhoicas/confeitaria-api/pkg/logger"
)

const owner = "owner-1"

type fixture struct {
	stores  *memory.Stores
	emitter *audit.Emitter
}

func newFixture() fixture {
	st := memory.NewStores()
	return fixture{stores: st, emitter: audit.NewEmitter(st.Audit, logger.Nop(), nil)}
}

func TestCRUD_ClientRoundTripHardDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := crud.New[entity.Client](entity.EntityClients, f.stores.Clients, f.emitter)

	created, err := svc.Create(ctx, owner, &entity.Client{Name: "Ana", Phone: "11 9999"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, owner, created.OwnerID)

	list, err := svc.List(ctx, owner, repository.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	before, after, err := svc.Update(ctx, owner, created.ID, json.RawMessage(`{"name":"Ana Paula"}`))
	require.NoError(t, err)
	assert.Equal(t, "Ana", before.Name)
	assert.Equal(t, "Ana Paula", after.Name)
	assert.Equal(t, "11 9999", after.Phone, "campos ausentes del patch se conservan")

	got, err := svc.Get(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Paula", got.Name)

	_, err = svc.Delete(ctx, owner, created.ID)
	require.NoError(t, err)
	list, err = svc.List(ctx, owner, repository.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	_, err = svc.Get(ctx, owner, created.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	entries := f.stores.Audit.All()
	require.Len(t, entries, 3, "una entrada por mutación")
	assert.Equal(t, entity.AuditCreate, entries[0].Action)
	assert.Nil(t, entries[0].OldData)
	assert.Equal(t, entity.AuditUpdate, entries[1].Action)
	assert.Contains(t, string(entries[1].OldData), `"Ana"`)
	assert.Contains(t, string(entries[1].NewData), `"Ana Paula"`)
	assert.Equal(t, entity.AuditDelete, entries[2].Action)
	assert.Nil(t, entries[2].NewData)
	for _, e := range entries {
		assert.Equal(t, created.ID, e.EntityID)
		assert.Equal(t, entity.EntityClients, e.EntityType)
		assert.Equal(t, owner, e.ActorID)
	}
}

func TestCRUD_SupplierSoftDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := crud.New[entity.Supplier](entity.EntitySuppliers, f.stores.Suppliers, f.emitter)

	s, err := svc.Create(ctx, owner, &entity.Supplier{Name: "Moinho Sul"})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, s.Status)

	out, err := svc.Delete(ctx, owner, s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInactive, out.Status)

	list, err := svc.List(ctx, owner, repository.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list, "inactivos no aparecen en el listado")

	got, err := svc.Get(ctx, owner, s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInactive, got.Status, "la lectura directa sigue devolviéndolo")

	entries := f.stores.Audit.All()
	require.Len(t, entries, 2)
	assert.Equal(t, entity.AuditDelete, entries[1].Action)
	assert.Contains(t, string(entries[1].OldData), `"active"`)
	assert.Contains(t, string(entries[1].NewData), `"inactive"`)

	_, err = svc.Deactivate(ctx, owner, s.ID)
	require.NoError(t, err, "desactivar de nuevo es idempotente")
}

func TestCRUD_PatchReemplazaLineasSinArrastrarLasAnteriores(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := crud.New[entity.Purchase](entity.EntityPurchases, f.stores.Purchases, f.emitter)
	p, err := svc.Create(ctx, owner, &entity.Purchase{
		PurchaseDate: entity.NewDate(entity.ParseDateMust("2026-03-10")),
		Items: []entity.PurchaseItem{
			{IngredientID: "i1", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)
	oldItemID := p.Items[0].ID

	_, _, err = svc.Update(ctx, owner, p.ID, json.RawMessage(`{"purchase_items":[{"quantity":"2","unit_price":"3"}]}`))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "la línea nueva no hereda ingredient_id")

	_, after, err := svc.Update(ctx, owner, p.ID, json.RawMessage(`{"purchase_items":[{"ingredient_id":"i2","quantity":"2","unit_price":"3"}]}`))
	require.NoError(t, err)
	require.Len(t, after.Items, 1)
	assert.NotEqual(t, oldItemID, after.Items[0].ID)
	assert.Equal(t, "i2", after.Items[0].IngredientID)
	assert.Equal(t, "6", after.Total.String())

	_, after, err = svc.Update(ctx, owner, p.ID, json.RawMessage(`{"observations":"sem itens no patch"}`))
	require.NoError(t, err)
	assert.Len(t, after.Items, 1, "sin purchase_items en el patch las líneas se conservan")
}

func TestCRUD_DeactivateEnEntidadSinStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := crud.New[entity.Client](entity.EntityClients, f.stores.Clients, f.emitter)
	c, err := svc.Create(ctx, owner, &entity.Client{Name: "Ana"})
	require.NoError(t, err)

	_, err = svc.Deactivate(ctx, owner, c.ID)
	assert.True(t, errors.Is(err, domain.ErrSoftDeleteOnly))
	assert.Len(t, f.stores.Audit.All(), 1)
}

func TestCRUD_MutacionFallidaNoAudita(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := crud.New[entity.Client](entity.EntityClients, f.stores.Clients, f.emitter)

	f.stores.Clients.FailNext(errors.New("storage caído"))
	_, err := svc.Create(ctx, owner, &entity.Client{Name: "Ana"})
	require.Error(t, err)

	_, err = svc.Create(ctx, owner, &entity.Client{Name: ""})
	require.True(t, errors.Is(err, domain.ErrInvalidInput), "validación")

	_, _, err = svc.Update(ctx, owner, "no-existe", json.RawMessage(`{"name":"x"}`))
	require.True(t, errors.Is(err, domain.ErrNotFound))

	assert.Empty(t, f.stores.Audit.All())
}

func TestCRUD_AuditoriaCaidaNoFallaLaMutacion(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.stores.Audit.Err = errors.New("audit caído")
	svc := crud.New[entity.Client](entity.EntityClients, f.stores.Clients, f.emitter)

	c, err := svc.Create(ctx, owner, &entity.Client{Name: "Ana"})
	require.NoError(t, err)
	_, err = svc.Get(ctx, owner, c.ID)
	assert.NoError(t, err)
}

func TestCRUD_PatchNoCambiaIdNiDueno(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := crud.New[entity.Client](entity.EntityClients, f.stores.Clients, f.emitter)
	c, err := svc.Create(ctx, owner, &entity.Client{Name: "Ana"})
	require.NoError(t, err)

	_, after, err := svc.Update(ctx, owner, c.ID, json.RawMessage(`{"id":"otro","owner_id":"intruso","name":"B"}`))
	require.NoError(t, err)
	assert.Equal(t, c.ID, after.ID)
	assert.Equal(t, owner, after.OwnerID)
	assert.Equal(t, c.CreatedAt, after.CreatedAt)
}

func TestCRUD_OtroDuenoNoVe(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := crud.New[entity.Ingredient](entity.EntityIngredients, f.stores.Ingredients, f.emitter)
	in, err := svc.Create(ctx, owner, &entity.Ingredient{Name: "Farinha", UnitMeasure: "kg", UnitCost: decimal.NewFromInt(5)})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "otro", in.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = svc.Delete(ctx, "otro", in.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	list, err := svc.List(ctx, "otro", repository.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}
