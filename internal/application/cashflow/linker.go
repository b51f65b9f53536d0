// Package cashflow contiene los efectos derivados sobre el fluxo de caixa (ventas entregadas
// y compras) y la exportación CSV de movimientos.
package cashflow

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/confeitaria-api/internal/application/crud"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
	"github.com/jhoicas/confeitaria-api/internal/observability/metrics"
	"github.com/jhoicas/confeitaria-api/pkg/logger"
)

// Service CRUD de movimientos de caixa (auditado).
type Service = crud.Service[entity.CashFlowTransaction, *entity.CashFlowTransaction]

// Linker escribe los movimientos derivados. Sus errores se registran y se descartan:
// la mutación primaria que los dispara ya se considera exitosa.
type Linker struct {
	cash    *Service
	log     *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewLinker construye el linker sobre el servicio de caixa; m puede ser nil.
func NewLinker(cash *Service, log *logger.Logger, m *metrics.Metrics) *Linker {
	return &Linker{cash: cash, log: log, metrics: m, now: time.Now}
}

// SaleDescription "Venda - <produto>[ - <cliente>]".
func SaleDescription(productName, clientName string) string {
	parts := []string{"Venda", strings.TrimSpace(productName)}
	if c := strings.TrimSpace(clientName); c != "" {
		parts = append(parts, c)
	}
	return strings.Join(parts, " - ")
}

// PurchaseDescription "Compra - <fornecedor>".
func PurchaseDescription(supplierName string) string {
	if s := strings.TrimSpace(supplierName); s != "" {
		return "Compra - " + s
	}
	return "Compra de insumos"
}

// ShouldRecordSale informa si la transición before → after debe generar la entrada de venta:
// after entregada con valor positivo y before inexistente (creación) o no entregada.
func ShouldRecordSale(before, after *entity.ProductionOrder) bool {
	if after == nil || !after.Delivered() || !after.Value.IsPositive() {
		return false
	}
	return before == nil || !before.Delivered()
}

// RecordSale crea la entrada (venda) de una orden entregada, fechada hoy.
func (l *Linker) RecordSale(ctx context.Context, ownerID string, order *entity.ProductionOrder, clientName string) {
	tx := &entity.CashFlowTransaction{
		TransactionDate: entity.NewDate(l.now()),
		TransactionType: entity.CashInflow,
		Category:        entity.CashCategorySale,
		Description:     SaleDescription(order.ProductName, clientName),
		Amount:          order.Value,
		Observations:    "Gerado automaticamente pela produção " + order.ID,
	}
	_, err := l.cash.Create(context.WithoutCancel(ctx), ownerID, tx)
	l.metrics.CashFlowLink("production", "create", err == nil)
	if err != nil {
		l.log.Error().Err(err).Str("production_id", order.ID).Msg("caixa: no se pudo registrar la venta")
	}
}

// RecordPurchase crea la saída de una compra, fechada en la fecha de compra.
func (l *Linker) RecordPurchase(ctx context.Context, ownerID string, p *entity.Purchase, supplierName string) {
	tx := &entity.CashFlowTransaction{
		TransactionDate: p.PurchaseDate,
		TransactionType: entity.CashOutflow,
		Category:        entity.CashCategoryPurchase,
		Description:     PurchaseDescription(supplierName),
		Amount:          p.Total,
		PaymentForm:     p.PaymentForm,
	}
	_, err := l.cash.Create(context.WithoutCancel(ctx), ownerID, tx)
	l.metrics.CashFlowLink("purchase", "create", err == nil)
	if err != nil {
		l.log.Error().Err(err).Str("purchase_id", p.ID).Msg("caixa: no se pudo registrar la compra")
	}
}

// RemovePurchase borra la primera saída que coincide con la compra por (fecha, tipo, categoría, monto).
// La clave no es única: si dos compras comparten fecha y monto puede borrarse la de la otra.
func (l *Linker) RemovePurchase(ctx context.Context, ownerID string, p *entity.Purchase) {
	ctx = context.WithoutCancel(ctx)
	day := p.PurchaseDate.Time
	candidates, err := l.cash.List(ctx, ownerID, repository.ListFilter{
		From: &day,
		To:   &day,
		Equals: map[string]string{
			"transaction_type": entity.CashOutflow,
			"category":         entity.CashCategoryPurchase,
		},
	})
	if err != nil {
		l.metrics.CashFlowLink("purchase", "delete", false)
		l.log.Error().Err(err).Str("purchase_id", p.ID).Msg("caixa: no se pudo buscar la saída de la compra")
		return
	}
	for _, c := range candidates {
		if !c.Amount.Equal(p.Total) {
			continue
		}
		_, err := l.cash.Delete(ctx, ownerID, c.ID)
		l.metrics.CashFlowLink("purchase", "delete", err == nil)
		if err != nil {
			l.log.Error().Err(err).Str("purchase_id", p.ID).Str("cash_flow_id", c.ID).Msg("caixa: no se pudo borrar la saída de la compra")
		}
		return
	}
	l.log.Warn().Str("purchase_id", p.ID).Msg("caixa: la compra no tenía saída asociada")
}
