package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de produção.
const (
	ProductionPending    = "encomenda"
	ProductionInProgress = "producao"
	ProductionDelivered  = "entregue"
	ProductionCancelled  = "cancelado"
)

// ProductionOrder produção diária / encomenda. Value es el valor de venta; EstimatedCost el costo.
type ProductionOrder struct {
	Base
	ProductionDate Date            `json:"production_date" validate:"required"`
	ProductName    string          `json:"product_name" validate:"required,max=200"`
	Quantity       decimal.Decimal `json:"quantity"`
	EstimatedCost  decimal.Decimal `json:"estimated_cost"`
	Value          decimal.Decimal `json:"valor" validate:"gte=0"`
	ClientID       *string         `json:"client_id"`
	Status         string          `json:"status" validate:"omitempty,oneof=encomenda producao entregue cancelado"`
	Destination    string          `json:"destination"`
	Observations   string          `json:"observations"`
	ClientName     string          `json:"client_name,omitempty"`
}

func (o *ProductionOrder) BusinessDate() time.Time { return o.ProductionDate.Time }

func (o *ProductionOrder) Attr(name string) (string, bool) {
	switch name {
	case "status":
		return o.Status, true
	case "client_id":
		return deref(o.ClientID), true
	}
	return "", false
}

// Delivered informa si la orden está entregue.
func (o *ProductionOrder) Delivered() bool { return o.Status == ProductionDelivered }

// Normalize: una orden sin status nace como encomenda.
func (o *ProductionOrder) Normalize() {
	if o.Status == "" {
		o.Status = ProductionPending
	}
}
