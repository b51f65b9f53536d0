package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient insumo. CategoryName y SupplierName se rellenan en lectura (join).
type Ingredient struct {
	Base
	Name         string          `json:"name" validate:"required,max=200"`
	CategoryID   *string         `json:"category_id"`
	SupplierID   *string         `json:"supplier_id"`
	UnitMeasure  string          `json:"unit_measure" validate:"required"`
	UnitCost     decimal.Decimal `json:"unit_cost" validate:"gte=0"`
	Observations string          `json:"observations"`
	Status       string          `json:"status"`
	CategoryName string          `json:"category_name,omitempty"`
	SupplierName string          `json:"supplier_name,omitempty"`
}

func (i *Ingredient) BusinessDate() time.Time { return time.Time{} }

func (i *Ingredient) Attr(name string) (string, bool) {
	switch name {
	case "status":
		return i.Status, true
	case "category_id":
		return deref(i.CategoryID), true
	case "supplier_id":
		return deref(i.SupplierID), true
	}
	return "", false
}

func (i *Ingredient) SetStatus(status string) { i.Status = status }
func (i *Ingredient) IsActive() bool          { return i.Status != StatusInactive }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (i *Ingredient) Normalize() {
	if i.Status == "" {
		i.Status = StatusActive
	}
}
