package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/confeitaria-api/internal/application/catalog"
	"github.com/jhoicas/confeitaria-api/internal/application/dto"
	"github.com/jhoicas/confeitaria-api/internal/domain/report"
)

const defaultTopIngredients = 5

// CatalogHandler endpoints de catálogo fuera del CRUD: categorías por defecto, ranking de
// insumos y despesas agrupadas.
type CatalogHandler struct {
	categories  *catalog.CategoryService
	ingredients *catalog.IngredientService
	expenses    *catalog.ExpenseService
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(categories *catalog.CategoryService, ingredients *catalog.IngredientService, expenses *catalog.ExpenseService) *CatalogHandler {
	return &CatalogHandler{categories: categories, ingredients: ingredients, expenses: expenses}
}

// InitDefaults godoc
// @Summary      Crear categorías por defecto
// @Description  Idempotente: si el ámbito ya tiene categorías no crea nada.
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        scope  query  string  true  "ingredient | expense"
// @Success      200    {object}  dto.ListResponse[entity.Category]
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/categories/init-defaults [post]
func (h *CatalogHandler) InitDefaults(c *fiber.Ctx) error {
	created, err := h.categories.InitializeDefaults(c.UserContext(), GetUserID(c), c.Query("scope"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(created))
}

// MostExpensive GET /api/ingredients/most-expensive?limit=5
func (h *CatalogHandler) MostExpensive(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultTopIngredients)
	if limit <= 0 {
		limit = defaultTopIngredients
	}
	out, err := h.ingredients.MostExpensive(c.UserContext(), GetUserID(c), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// ExpensesByCategory GET /api/expenses/by-category?from=&to=
func (h *CatalogHandler) ExpensesByCategory(c *fiber.Ctx) error {
	f, err := listFilter(c, nil, nil)
	if err != nil {
		return writeError(c, err)
	}
	totals, err := h.expenses.ByCategory(c.UserContext(), GetUserID(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": totals, "total": report.Sum(totals)})
}
