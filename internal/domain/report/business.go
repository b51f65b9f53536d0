package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
)

// Etiquetas para claves vacías.
const (
	NoCategory    = "Sem categoria"
	NoSupplier    = "Sem fornecedor"
	NoPaymentForm = "Não informado"
	NoClient      = "Sem cliente"
	NoReason      = "Sem motivo"
)

// ByCategory total de compras por nombre de categoría.
func ByCategory(purchases []entity.Purchase) []Total {
	return GroupSum(purchases,
		func(p entity.Purchase) string { return orDefault(p.CategoryName, NoCategory) },
		func(p entity.Purchase) decimal.Decimal { return p.Total },
	)
}

// BySupplier total de compras por nombre de proveedor.
func BySupplier(purchases []entity.Purchase) []Total {
	return GroupSum(purchases,
		func(p entity.Purchase) string { return orDefault(p.SupplierName, NoSupplier) },
		func(p entity.Purchase) decimal.Decimal { return p.Total },
	)
}

// ExpensesByCategory total de despesas operacionais por categoría.
func ExpensesByCategory(expenses []entity.OperationalExpense) []Total {
	return GroupSum(expenses,
		func(e entity.OperationalExpense) string { return orDefault(e.CategoryName, NoCategory) },
		func(e entity.OperationalExpense) decimal.Decimal { return e.Amount },
	)
}

// ByPaymentForm total de movimientos de caixa por forma de pago.
func ByPaymentForm(txs []entity.CashFlowTransaction) []Total {
	return GroupSum(txs,
		func(t entity.CashFlowTransaction) string { return orDefault(t.PaymentForm, NoPaymentForm) },
		func(t entity.CashFlowTransaction) decimal.Decimal { return t.Amount },
	)
}

// WasteByReason costo estimado de desperdicio por motivo.
func WasteByReason(records []entity.WasteRecord) []Total {
	return GroupSum(records,
		func(w entity.WasteRecord) string { return orDefault(w.Reason, NoReason) },
		func(w entity.WasteRecord) decimal.Decimal { return w.EstimatedCost },
	)
}

// ByClientRevenue valor vendido por cliente (solo órdenes no canceladas).
func ByClientRevenue(orders []entity.ProductionOrder) []Total {
	return GroupSum(activeOrders(orders),
		func(o entity.ProductionOrder) string { return orDefault(o.ClientName, NoClient) },
		func(o entity.ProductionOrder) decimal.Decimal { return o.Value },
	)
}

// ByClientOrders cantidad de órdenes por cliente (solo órdenes no canceladas).
func ByClientOrders(orders []entity.ProductionOrder) []Count {
	return GroupCount(activeOrders(orders),
		func(o entity.ProductionOrder) string { return orDefault(o.ClientName, NoClient) },
	)
}

func activeOrders(orders []entity.ProductionOrder) []entity.ProductionOrder {
	out := make([]entity.ProductionOrder, 0, len(orders))
	for _, o := range orders {
		if o.Status != entity.ProductionCancelled {
			out = append(out, o)
		}
	}
	return out
}

// ClientStats indicadores de un cliente a partir de sus órdenes.
type ClientStats struct {
	TotalOrders  int             `json:"total_orders"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Pending      int             `json:"pending_orders"`
	Delivered    int             `json:"delivered_orders"`
}

// StatsForClient calcula ClientStats; las canceladas no cuentan.
func StatsForClient(orders []entity.ProductionOrder) ClientStats {
	st := ClientStats{TotalRevenue: decimal.Zero}
	for _, o := range activeOrders(orders) {
		st.TotalOrders++
		st.TotalRevenue = st.TotalRevenue.Add(o.Value)
		if o.Delivered() {
			st.Delivered++
		} else {
			st.Pending++
		}
	}
	return st
}

// CashTotals entradas, saídas y saldo.
type CashTotals struct {
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Balance decimal.Decimal `json:"balance"`
}

// SumCashFlow totaliza movimientos por tipo.
func SumCashFlow(txs []entity.CashFlowTransaction) CashTotals {
	t := CashTotals{Inflow: decimal.Zero, Outflow: decimal.Zero}
	for _, tx := range txs {
		switch tx.TransactionType {
		case entity.CashInflow:
			t.Inflow = t.Inflow.Add(tx.Amount)
		case entity.CashOutflow:
			t.Outflow = t.Outflow.Add(tx.Amount)
		}
	}
	t.Balance = t.Inflow.Sub(t.Outflow)
	return t
}

// DayFlow movimiento agregado de un día.
type DayFlow struct {
	Date    entity.Date     `json:"date"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Balance decimal.Decimal `json:"balance"`
}

// ByDay entradas y saídas por día, en orden cronológico.
func ByDay(txs []entity.CashFlowTransaction) []DayFlow {
	idx := make(map[time.Time]int)
	out := make([]DayFlow, 0)
	for _, tx := range txs {
		d := entity.NewDate(tx.TransactionDate.Time)
		i, ok := idx[d.Time]
		if !ok {
			i = len(out)
			idx[d.Time] = i
			out = append(out, DayFlow{Date: d, Inflow: decimal.Zero, Outflow: decimal.Zero})
		}
		switch tx.TransactionType {
		case entity.CashInflow:
			out[i].Inflow = out[i].Inflow.Add(tx.Amount)
		case entity.CashOutflow:
			out[i].Outflow = out[i].Outflow.Add(tx.Amount)
		}
	}
	for i := range out {
		out[i].Balance = out[i].Inflow.Sub(out[i].Outflow)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date.Time) })
	return out
}

// MostExpensive ingredientes activos ordenados por costo unitario descendente, hasta limit.
func MostExpensive(ingredients []entity.Ingredient, limit int) []entity.Ingredient {
	out := make([]entity.Ingredient, 0, len(ingredients))
	for _, in := range ingredients {
		if in.IsActive() {
			out = append(out, in)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UnitCost.GreaterThan(out[j].UnitCost) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ProductionCost costo estimado total de las órdenes.
func ProductionCost(orders []entity.ProductionOrder) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range orders {
		sum = sum.Add(o.EstimatedCost)
	}
	return sum
}

// WasteCost costo estimado total del desperdicio.
func WasteCost(records []entity.WasteRecord) decimal.Decimal {
	sum := decimal.Zero
	for _, w := range records {
		sum = sum.Add(w.EstimatedCost)
	}
	return sum
}

// PurchasesTotal suma de Total de las compras.
func PurchasesTotal(purchases []entity.Purchase) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range purchases {
		sum = sum.Add(p.Total)
	}
	return sum
}
