package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase compra de insumos con sus líneas. SupplierName y CategoryName se rellenan en lectura.
type Purchase struct {
	Base
	SupplierID   *string         `json:"supplier_id"`
	CategoryID   *string         `json:"category_id"`
	PurchaseDate Date            `json:"purchase_date" validate:"required"`
	Total        decimal.Decimal `json:"total" validate:"gte=0"`
	PaymentForm  string          `json:"payment_form"`
	Observations string          `json:"observations"`
	SupplierName string          `json:"supplier_name,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
	Items        []PurchaseItem  `json:"purchase_items" validate:"dive"`
}

// PurchaseItem línea de compra; TotalPrice = Quantity × UnitPrice.
type PurchaseItem struct {
	ID           string          `json:"id"`
	PurchaseID   string          `json:"purchase_id"`
	IngredientID string          `json:"ingredient_id" validate:"required"`
	Quantity     decimal.Decimal `json:"quantity" validate:"gt=0"`
	UnitPrice    decimal.Decimal `json:"unit_price" validate:"gte=0"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

func (p *Purchase) BusinessDate() time.Time { return p.PurchaseDate.Time }

func (p *Purchase) Attr(name string) (string, bool) {
	switch name {
	case "supplier_id":
		return deref(p.SupplierID), true
	case "category_id":
		return deref(p.CategoryID), true
	case "payment_form":
		return p.PaymentForm, true
	}
	return "", false
}

// Normalize enlaza las líneas a la compra (asignando id a las nuevas) y recalcula totales.
func (p *Purchase) Normalize() {
	for i := range p.Items {
		if p.Items[i].ID == "" {
			p.Items[i].ID = uuid.New().String()
		}
		p.Items[i].PurchaseID = p.ID
	}
	p.PriceItems()
}

// Clone copia la compra con su propio slice de líneas.
func (p Purchase) Clone() Purchase {
	if p.Items != nil {
		p.Items = append([]PurchaseItem(nil), p.Items...)
	}
	return p
}

// PriceItems calcula TotalPrice de cada línea y, si hay líneas, el Total de la compra.
func (p *Purchase) PriceItems() {
	if len(p.Items) == 0 {
		return
	}
	total := decimal.Zero
	for i := range p.Items {
		p.Items[i].TotalPrice = p.Items[i].Quantity.Mul(p.Items[i].UnitPrice)
		total = total.Add(p.Items[i].TotalPrice)
	}
	p.Total = total
}
