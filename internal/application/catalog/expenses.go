package catalog

import (
	"context"

	"github.com/jhoicas/confeitaria-api/internal/application/crud"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/report"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
)

// Expenses CRUD genérico de despesas operacionais.
type Expenses = crud.Service[entity.OperationalExpense, *entity.OperationalExpense]

// ExpenseService despesas con categoría (nombre y tipo) y proveedor embebidos.
type ExpenseService struct {
	*Expenses
	categories repository.Store[entity.Category]
	suppliers  repository.Store[entity.Supplier]
}

// NewExpenseService construye el servicio.
func NewExpenseService(e *Expenses, categories repository.Store[entity.Category], suppliers repository.Store[entity.Supplier]) *ExpenseService {
	return &ExpenseService{Expenses: e, categories: categories, suppliers: suppliers}
}

// List despesas del período, más recientes primero.
func (s *ExpenseService) List(ctx context.Context, ownerID string, f repository.ListFilter) ([]entity.OperationalExpense, error) {
	list, err := s.Expenses.List(ctx, ownerID, f)
	if err != nil {
		return nil, err
	}
	cats := make(map[string]entity.Category)
	if rows, err := s.categories.List(ctx, ownerID, repository.ListFilter{}); err == nil {
		for _, c := range rows {
			cats[c.ID] = c
		}
	}
	sups := names(ctx, s.suppliers, ownerID, supplierName)
	for i := range list {
		e := &list[i]
		if e.CategoryID != nil {
			if c, ok := cats[*e.CategoryID]; ok {
				if e.CategoryName == "" {
					e.CategoryName = c.Name
				}
				if e.CategoryType == "" {
					e.CategoryType = c.Type
				}
			}
		}
		if e.SupplierName == "" && e.SupplierID != nil {
			e.SupplierName = sups[*e.SupplierID]
		}
	}
	return list, nil
}

// ByCategory totales del período por categoría, de mayor a menor.
func (s *ExpenseService) ByCategory(ctx context.Context, ownerID string, f repository.ListFilter) ([]report.Total, error) {
	list, err := s.List(ctx, ownerID, f)
	if err != nil {
		return nil, err
	}
	return report.SortDesc(report.ExpensesByCategory(list)), nil
}
