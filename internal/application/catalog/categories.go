// Package catalog agrupa los casos de uso de las entidades de referencia (categorías,
// insumos, proveedores) y de las despesas operacionais que las referencian.
package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/confeitaria-api/internal/application/crud"
	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
)

// Categories CRUD genérico de categorías.
type Categories = crud.Service[entity.Category, *entity.Category]

// CategoryService categorías con inicialización de valores por defecto.
type CategoryService struct {
	*Categories
}

// NewCategoryService construye el servicio.
func NewCategoryService(c *Categories) *CategoryService {
	return &CategoryService{Categories: c}
}

// InitializeDefaults crea las categorías por defecto del ámbito si el dueño aún no tiene ninguna.
// Devuelve las categorías creadas (vacío si ya existían).
func (s *CategoryService) InitializeDefaults(ctx context.Context, ownerID, scope string) ([]entity.Category, error) {
	var defaults []entity.Category
	switch scope {
	case entity.CategoryScopeIngredient:
		defaults = entity.DefaultIngredientCategories
	case entity.CategoryScopeExpense:
		defaults = entity.DefaultExpenseCategories
	default:
		return nil, fmt.Errorf("%w: scope %q", domain.ErrInvalidInput, scope)
	}
	existing, err := s.List(ctx, ownerID, repository.ListFilter{Equals: map[string]string{"scope": scope}, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return []entity.Category{}, nil
	}
	out := make([]entity.Category, 0, len(defaults))
	for _, d := range defaults {
		c := d
		created, err := s.Create(ctx, ownerID, &c)
		if err != nil {
			return out, err
		}
		out = append(out, *created)
	}
	return out, nil
}
