package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/report"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// KPIs del mes en curso (día 1 al último día del mes).
type DashboardSummaryDTO struct {
	TotalRevenue    decimal.Decimal `json:"total_revenue"`    // entradas de caixa
	TotalExpenses   decimal.Decimal `json:"total_expenses"`   // compras
	TotalProduction decimal.Decimal `json:"total_production"` // costo estimado de produção
	TotalWaste      decimal.Decimal `json:"total_waste"`
	NetResult       decimal.Decimal `json:"net_result"` // revenue - expenses
	// MarginPercentage (revenue - expenses) / revenue * 100; cero sin ingresos.
	MarginPercentage decimal.Decimal `json:"margin_percentage"`

	IngredientCount    int                 `json:"ingredient_count"`
	TopIngredients     []entity.Ingredient `json:"top_ingredients"`
	ExpensesByCategory []report.Total      `json:"expenses_by_category"`
	ExpensesBySupplier []report.Total      `json:"expenses_by_supplier"`
	DailyFlow          []report.DayFlow    `json:"daily_flow"`

	DateLabel string `json:"date_label"` // ej: "Outubro 2026"
}

// MonthlyReportDTO respuesta de GET /api/reports/monthly.
type MonthlyReportDTO struct {
	Year      int         `json:"year"`
	Month     int         `json:"month"`
	From      entity.Date `json:"from"`
	To        entity.Date `json:"to"`
	DateLabel string      `json:"date_label"`

	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	ExpensesByCategory []report.Total  `json:"expenses_by_category"`
	ExpensesBySupplier []report.Total  `json:"expenses_by_supplier"`
	ProductionCost     decimal.Decimal `json:"production_cost"`
	WasteCost          decimal.Decimal `json:"waste_cost"`
	// NetExpenses compras + costo de produção + desperdicio.
	NetExpenses decimal.Decimal `json:"net_expenses"`

	WasteByReason       []report.Total    `json:"waste_by_reason"`
	OperationalExpenses decimal.Decimal   `json:"operational_expenses"`
	OperationalByCat    []report.Total    `json:"operational_by_category"`
	CashFlow            report.CashTotals `json:"cash_flow"`
	CashByPaymentForm   []report.Total    `json:"cash_by_payment_form"`
}
