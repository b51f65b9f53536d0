// Package analytics contiene los casos de uso del dashboard y del reporte mensual.
// Cada uno lee en paralelo las listas del período y las agrega con el paquete report.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/confeitaria-api/internal/application/dto"
	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/report"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
)

const dashboardTopIngredients = 5 // ingredientes en el widget del dashboard

// Lister fuente de una lista acotada al dueño; la satisfacen los servicios de cada entidad.
type Lister[T any] interface {
	List(ctx context.Context, ownerID string, f repository.ListFilter) ([]T, error)
}

// Sources listas que consumen el dashboard y el reporte.
type Sources struct {
	Purchases   Lister[entity.Purchase]
	Production  Lister[entity.ProductionOrder]
	Waste       Lister[entity.WasteRecord]
	CashFlow    Lister[entity.CashFlowTransaction]
	Ingredients Lister[entity.Ingredient]
	Expenses    Lister[entity.OperationalExpense]
}

// DashboardUseCase genera el resumen del mes en curso y el reporte mensual detallado.
type DashboardUseCase struct {
	src Sources
	now func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(src Sources) *DashboardUseCase {
	return &DashboardUseCase{src: src, now: time.Now}
}

// period datos leídos para un rango de fechas.
type period struct {
	purchases   []entity.Purchase
	production  []entity.ProductionOrder
	waste       []entity.WasteRecord
	cash        []entity.CashFlowTransaction
	ingredients []entity.Ingredient
	expenses    []entity.OperationalExpense
}

// GetSummary construye el DashboardSummaryDTO del mes en curso.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, ownerID string) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	from, to := MonthRange(now.Year(), now.Month())

	data, err := uc.load(ctx, ownerID, from, to, true)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	// ── Totales ────────────────────────────────────────────────────────────────
	cash := report.SumCashFlow(data.cash)
	expenses := report.PurchasesTotal(data.purchases)
	net := cash.Inflow.Sub(expenses)
	margin := decimal.Zero
	if cash.Inflow.IsPositive() {
		margin = net.Div(cash.Inflow).Mul(decimal.NewFromInt(100)).Round(1)
	}

	return &dto.DashboardSummaryDTO{
		TotalRevenue:       cash.Inflow.Round(2),
		TotalExpenses:      expenses.Round(2),
		TotalProduction:    report.ProductionCost(data.production).Round(2),
		TotalWaste:         report.WasteCost(data.waste).Round(2),
		NetResult:          net.Round(2),
		MarginPercentage:   margin,
		IngredientCount:    len(data.ingredients),
		TopIngredients:     report.MostExpensive(data.ingredients, dashboardTopIngredients),
		ExpensesByCategory: report.ByCategory(data.purchases),
		ExpensesBySupplier: report.BySupplier(data.purchases),
		DailyFlow:          report.ByDay(data.cash),
		DateLabel:          MonthLabel(now.Year(), now.Month()),
	}, nil
}

// MonthlyReport reporte detallado del mes indicado (month 1-12).
func (uc *DashboardUseCase) MonthlyReport(ctx context.Context, ownerID string, year, month int) (*dto.MonthlyReportDTO, error) {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return nil, fmt.Errorf("%w: período %d-%02d fuera de rango", domain.ErrInvalidInput, year, month)
	}
	from, to := MonthRange(year, time.Month(month))

	data, err := uc.load(ctx, ownerID, from, to, false)
	if err != nil {
		return nil, fmt.Errorf("reporte mensual: %w", err)
	}

	expenses := report.PurchasesTotal(data.purchases)
	production := report.ProductionCost(data.production)
	waste := report.WasteCost(data.waste)
	operational := report.Sum(report.ExpensesByCategory(data.expenses))

	return &dto.MonthlyReportDTO{
		Year:                year,
		Month:               month,
		From:                entity.NewDate(from),
		To:                  entity.NewDate(to),
		DateLabel:           MonthLabel(year, time.Month(month)),
		TotalExpenses:       expenses.Round(2),
		ExpensesByCategory:  report.SortDesc(report.ByCategory(data.purchases)),
		ExpensesBySupplier:  report.SortDesc(report.BySupplier(data.purchases)),
		ProductionCost:      production.Round(2),
		WasteCost:           waste.Round(2),
		NetExpenses:         expenses.Add(production).Add(waste).Round(2),
		WasteByReason:       report.SortDesc(report.WasteByReason(data.waste)),
		OperationalExpenses: operational.Round(2),
		OperationalByCat:    report.SortDesc(report.ExpensesByCategory(data.expenses)),
		CashFlow:            report.SumCashFlow(data.cash),
		CashByPaymentForm:   report.SortDesc(report.ByPaymentForm(data.cash)),
	}, nil
}

// load lee en paralelo todas las listas del período. Si una lectura falla, falla el conjunto.
// withIngredients incluye el catálogo de ingredientes (solo el dashboard lo usa).
func (uc *DashboardUseCase) load(ctx context.Context, ownerID string, from, to time.Time, withIngredients bool) (*period, error) {
	f := repository.ListFilter{From: &from, To: &to}
	var data period

	g, gctx := errgroup.WithContext(ctx)
	fetch(g, gctx, uc.src.Purchases, ownerID, f, "compras", &data.purchases)
	fetch(g, gctx, uc.src.Production, ownerID, f, "produção", &data.production)
	fetch(g, gctx, uc.src.Waste, ownerID, f, "desperdicio", &data.waste)
	fetch(g, gctx, uc.src.CashFlow, ownerID, f, "fluxo de caixa", &data.cash)
	if withIngredients {
		fetch(g, gctx, uc.src.Ingredients, ownerID, repository.ListFilter{}, "ingredientes", &data.ingredients)
	} else {
		fetch(g, gctx, uc.src.Expenses, ownerID, f, "despesas", &data.expenses)
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// el llamador pudo haberse ido mientras se esperaba el join
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &data, nil
}

func fetch[T any](g *errgroup.Group, ctx context.Context, src Lister[T], ownerID string, f repository.ListFilter, what string, dst *[]T) {
	if src == nil {
		return
	}
	g.Go(func() error {
		rows, err := src.List(ctx, ownerID, f)
		if err != nil {
			return fmt.Errorf("%s: %w", what, err)
		}
		*dst = rows
		return nil
	})
}

// MonthRange primer y último día del mes, en UTC.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, -1)
}

// MonthLabel devuelve una etiqueta legible del mes, ej: "Outubro 2026".
func MonthLabel(year int, month time.Month) string {
	months := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	return fmt.Sprintf("%s %d", months[month-1], year)
}
