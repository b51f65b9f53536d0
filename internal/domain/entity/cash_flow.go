package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos y categorías de movimiento de caixa.
const (
	CashInflow  = "entrada"
	CashOutflow = "saída"

	CashCategorySale     = "venda"
	CashCategoryPurchase = "compra"
)

// CashFlowTransaction movimiento del fluxo de caixa.
type CashFlowTransaction struct {
	Base
	TransactionDate Date            `json:"transaction_date" validate:"required"`
	TransactionType string          `json:"transaction_type" validate:"required,oneof=entrada saída"`
	Category        string          `json:"category"`
	Description     string          `json:"description" validate:"required"`
	Amount          decimal.Decimal `json:"amount" validate:"gte=0"`
	PaymentForm     string          `json:"payment_form"`
	Responsible     string          `json:"responsible"`
	Observations    string          `json:"observations"`
}

func (t *CashFlowTransaction) BusinessDate() time.Time { return t.TransactionDate.Time }

func (t *CashFlowTransaction) Attr(name string) (string, bool) {
	switch name {
	case "transaction_type":
		return t.TransactionType, true
	case "category":
		return t.Category, true
	case "payment_form":
		return t.PaymentForm, true
	}
	return "", false
}
