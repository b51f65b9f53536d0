package catalog

import (
	"context"

	"github.com/jhoicas/confeitaria-api/internal/application/crud"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/report"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
)

// Ingredients CRUD genérico de insumos.
type Ingredients = crud.Service[entity.Ingredient, *entity.Ingredient]

// IngredientService insumos con nombres de categoría y proveedor embebidos.
type IngredientService struct {
	*Ingredients
	categories repository.Store[entity.Category]
	suppliers  repository.Store[entity.Supplier]
}

// NewIngredientService construye el servicio.
func NewIngredientService(i *Ingredients, categories repository.Store[entity.Category], suppliers repository.Store[entity.Supplier]) *IngredientService {
	return &IngredientService{Ingredients: i, categories: categories, suppliers: suppliers}
}

// List insumos activos (o todos con IncludeInactive) ordenados por nombre.
func (s *IngredientService) List(ctx context.Context, ownerID string, f repository.ListFilter) ([]entity.Ingredient, error) {
	list, err := s.Ingredients.List(ctx, ownerID, f)
	if err != nil {
		return nil, err
	}
	cats, sups := names(ctx, s.categories, ownerID, categoryName), names(ctx, s.suppliers, ownerID, supplierName)
	for i := range list {
		if list[i].CategoryName == "" && list[i].CategoryID != nil {
			list[i].CategoryName = cats[*list[i].CategoryID]
		}
		if list[i].SupplierName == "" && list[i].SupplierID != nil {
			list[i].SupplierName = sups[*list[i].SupplierID]
		}
	}
	return list, nil
}

// MostExpensive insumos activos de mayor costo unitario.
func (s *IngredientService) MostExpensive(ctx context.Context, ownerID string, limit int) ([]entity.Ingredient, error) {
	list, err := s.List(ctx, ownerID, repository.ListFilter{})
	if err != nil {
		return nil, err
	}
	return report.MostExpensive(list, limit), nil
}

func categoryName(c *entity.Category) (string, string) { return c.ID, c.Name }
func supplierName(s *entity.Supplier) (string, string) { return s.ID, s.Name }

// names índice id → nombre; un fallo de lectura deja los nombres vacíos.
func names[T any](ctx context.Context, store repository.Store[T], ownerID string, kv func(*T) (string, string)) map[string]string {
	rows, err := store.List(ctx, ownerID, repository.ListFilter{IncludeInactive: true})
	if err != nil {
		return nil
	}
	out := make(map[string]string, len(rows))
	for i := range rows {
		k, v := kv(&rows[i])
		out[k] = v
	}
	return out
}
