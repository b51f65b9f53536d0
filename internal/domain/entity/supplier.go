package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier fornecedor. Se desactiva (status inactive) para no romper compras históricas.
type Supplier struct {
	Base
	Name             string          `json:"name" validate:"required,max=200"`
	Phone            string          `json:"phone"`
	TaxID            string          `json:"cnpj_cpf"`
	ProductsSupplied string          `json:"products_supplied"`
	Rating           decimal.Decimal `json:"rating" validate:"gte=0,lte=5"`
	Observations     string          `json:"observations"`
	Status           string          `json:"status"`
}

func (s *Supplier) BusinessDate() time.Time { return time.Time{} }

func (s *Supplier) Attr(name string) (string, bool) {
	if name == "status" {
		return s.Status, true
	}
	return "", false
}

func (s *Supplier) SetStatus(status string) { s.Status = status }
func (s *Supplier) IsActive() bool          { return s.Status != StatusInactive }

func (s *Supplier) Normalize() {
	if s.Status == "" {
		s.Status = StatusActive
	}
}
