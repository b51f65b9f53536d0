package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationalExpense despesa operacional (energia, aluguel, impostos...).
type OperationalExpense struct {
	Base
	CategoryID   *string         `json:"category_id"`
	SupplierID   *string         `json:"supplier_id"`
	ExpenseDate  Date            `json:"expense_date" validate:"required"`
	Description  string          `json:"description" validate:"required"`
	Amount       decimal.Decimal `json:"amount" validate:"gte=0"`
	PaymentForm  string          `json:"payment_form"`
	Observations string          `json:"observations"`
	CategoryName string          `json:"category_name,omitempty"`
	CategoryType string          `json:"category_type,omitempty"`
	SupplierName string          `json:"supplier_name,omitempty"`
}

func (e *OperationalExpense) BusinessDate() time.Time { return e.ExpenseDate.Time }

func (e *OperationalExpense) Attr(name string) (string, bool) {
	switch name {
	case "category_id":
		return deref(e.CategoryID), true
	case "supplier_id":
		return deref(e.SupplierID), true
	}
	return "", false
}
