package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/confeitaria-api/internal/application/analytics"
	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
)

// static devuelve siempre las mismas filas (o err) y registra el filtro recibido.
type static[T any] struct {
	rows []T
	err  error
	got  repository.ListFilter
}

func (s *static[T]) List(_ context.Context, _ string, f repository.ListFilter) ([]T, error) {
	s.got = f
	return s.rows, s.err
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(s string) entity.Date { return entity.NewDate(entity.ParseDateMust(s)) }

func sources() (analytics.Sources, *static[entity.Purchase]) {
	purchases := &static[entity.Purchase]{rows: []entity.Purchase{
		{PurchaseDate: date("2026-03-02"), SupplierName: "Moinho Sul", CategoryName: "Farinhas", Total: dec("100.00")},
		{PurchaseDate: date("2026-03-05"), SupplierName: "Laticínios Vale", CategoryName: "Laticínios", Total: dec("250.50")},
		{PurchaseDate: date("2026-03-09"), SupplierName: "Moinho Sul", CategoryName: "Farinhas", Total: dec("49.50")},
	}}
	src := analytics.Sources{
		Purchases: purchases,
		Production: &static[entity.ProductionOrder]{rows: []entity.ProductionOrder{
			{ProductName: "Bolo", EstimatedCost: dec("30")},
			{ProductName: "Torta", EstimatedCost: dec("20")},
		}},
		Waste: &static[entity.WasteRecord]{rows: []entity.WasteRecord{
			{Reason: "vencido", EstimatedCost: dec("5.25")},
		}},
		CashFlow: &static[entity.CashFlowTransaction]{rows: []entity.CashFlowTransaction{
			{TransactionDate: date("2026-03-02"), TransactionType: entity.CashInflow, Amount: dec("500"), PaymentForm: "pix"},
			{TransactionDate: date("2026-03-02"), TransactionType: entity.CashOutflow, Amount: dec("100"), PaymentForm: "pix"},
		}},
		Expenses: &static[entity.OperationalExpense]{rows: []entity.OperationalExpense{
			{CategoryName: "Aluguel", Amount: dec("1200")},
		}},
		Ingredients: &static[entity.Ingredient]{},
	}
	return src, purchases
}

func TestMonthlyReport_Totales(t *testing.T) {
	src, purchases := sources()
	uc := analytics.NewDashboardUseCase(src)

	rep, err := uc.MonthlyReport(context.Background(), "owner-1", 2026, 3)
	require.NoError(t, err)

	assert.True(t, dec("400").Equal(rep.TotalExpenses))
	assert.True(t, dec("50").Equal(rep.ProductionCost))
	assert.True(t, dec("5.25").Equal(rep.WasteCost))
	assert.True(t, dec("455.25").Equal(rep.NetExpenses))
	assert.True(t, dec("1200").Equal(rep.OperationalExpenses))
	assert.True(t, dec("400").Equal(rep.CashFlow.Balance))
	assert.Equal(t, "Março 2026", rep.DateLabel)

	require.Len(t, rep.ExpensesBySupplier, 2)
	assert.Equal(t, "Laticínios Vale", rep.ExpensesBySupplier[0].Key)
	assert.True(t, dec("150").Equal(rep.ExpensesBySupplier[1].Total))

	require.NotNil(t, purchases.got.From)
	require.NotNil(t, purchases.got.To)
	assert.Equal(t, "2026-03-01", purchases.got.From.Format(entity.DateLayout))
	assert.Equal(t, "2026-03-31", purchases.got.To.Format(entity.DateLayout))
}

func TestMonthlyReport_PeriodoInvalido(t *testing.T) {
	src, _ := sources()
	uc := analytics.NewDashboardUseCase(src)

	_, err := uc.MonthlyReport(context.Background(), "owner-1", 2026, 13)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestMonthlyReport_UnaFuenteFallaFallaTodo(t *testing.T) {
	src, _ := sources()
	boom := errors.New("conexión perdida")
	src.Waste = &static[entity.WasteRecord]{err: boom}
	uc := analytics.NewDashboardUseCase(src)

	rep, err := uc.MonthlyReport(context.Background(), "owner-1", 2026, 3)
	assert.Nil(t, rep)
	assert.ErrorIs(t, err, boom)
}

func TestMonthlyReport_ContextoCancelado(t *testing.T) {
	src, _ := sources()
	uc := analytics.NewDashboardUseCase(src)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.MonthlyReport(ctx, "owner-1", 2026, 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetSummary(t *testing.T) {
	src, _ := sources()
	src.Ingredients = &static[entity.Ingredient]{rows: []entity.Ingredient{
		{Name: "Baunilha", UnitCost: dec("90"), Status: entity.StatusActive},
		{Name: "Farinha", UnitCost: dec("5"), Status: entity.StatusActive},
	}}
	uc := analytics.NewDashboardUseCase(src)

	sum, err := uc.GetSummary(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.True(t, dec("500").Equal(sum.TotalRevenue))
	assert.True(t, dec("100").Equal(sum.NetResult))
	assert.True(t, dec("20").Equal(sum.MarginPercentage))
	assert.Equal(t, 2, sum.IngredientCount)
	require.Len(t, sum.TopIngredients, 2)
	assert.Equal(t, "Baunilha", sum.TopIngredients[0].Name)
	require.Len(t, sum.DailyFlow, 1)
	now := time.Now()
	assert.Equal(t, analytics.MonthLabel(now.Year(), now.Month()), sum.DateLabel)
}

func TestMonthRange(t *testing.T) {
	from, to := analytics.MonthRange(2024, time.February)
	assert.Equal(t, "2024-02-01", from.Format(entity.DateLayout))
	assert.Equal(t, "2024-02-29", to.Format(entity.DateLayout))
}
