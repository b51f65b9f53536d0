package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WasteRecord registro de desperdício.
type WasteRecord struct {
	Base
	WasteDate     Date            `json:"waste_date" validate:"required"`
	IngredientID  *string         `json:"ingredient_id"`
	ProductName   string          `json:"product_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reason        string          `json:"reason"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	Observations  string          `json:"observations"`
}

func (w *WasteRecord) BusinessDate() time.Time { return w.WasteDate.Time }

func (w *WasteRecord) Attr(name string) (string, bool) {
	switch name {
	case "ingredient_id":
		return deref(w.IngredientID), true
	case "reason":
		return w.Reason, true
	}
	return "", false
}
