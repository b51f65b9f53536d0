package entity

import "time"

// Ámbitos de categoría.
const (
	CategoryScopeIngredient = "ingredient"
	CategoryScopeExpense    = "expense"
)

// Category agrupa insumos (scope ingredient) o despesas operacionais (scope expense).
type Category struct {
	Base
	Scope       string `json:"scope" validate:"required,oneof=ingredient expense"`
	Name        string `json:"name" validate:"required,max=120"`
	Type        string `json:"type"` // CMV, Operacional, Imposto, Outros (solo expense)
	Description string `json:"description"`
}

func (c *Category) BusinessDate() time.Time { return time.Time{} }

func (c *Category) Attr(name string) (string, bool) {
	switch name {
	case "scope":
		return c.Scope, true
	case "type":
		return c.Type, true
	}
	return "", false
}

// DefaultIngredientCategories categorías iniciales de insumos.
var DefaultIngredientCategories = []Category{
	{Scope: CategoryScopeIngredient, Name: "Farinha e Açúcar"},
	{Scope: CategoryScopeIngredient, Name: "Ovos e Laticínios"},
	{Scope: CategoryScopeIngredient, Name: "Chocolate e Doces"},
	{Scope: CategoryScopeIngredient, Name: "Frutas e Aromatizantes"},
	{Scope: CategoryScopeIngredient, Name: "Gorduras e Óleos"},
	{Scope: CategoryScopeIngredient, Name: "Essências e Corantes"},
	{Scope: CategoryScopeIngredient, Name: "Outros"},
}

// DefaultExpenseCategories categorías iniciales de despesas.
var DefaultExpenseCategories = []Category{
	{Scope: CategoryScopeExpense, Name: "CMV - Matéria Prima", Type: "CMV", Description: "Custo de Mercadoria Vendida - Ingredientes"},
	{Scope: CategoryScopeExpense, Name: "Operacional - Energia", Type: "Operacional", Description: "Contas de energia elétrica"},
	{Scope: CategoryScopeExpense, Name: "Operacional - Água", Type: "Operacional", Description: "Contas de água"},
	{Scope: CategoryScopeExpense, Name: "Operacional - Aluguel", Type: "Operacional", Description: "Aluguel do espaço"},
	{Scope: CategoryScopeExpense, Name: "Operacional - Salários", Type: "Operacional", Description: "Folha de pagamento"},
	{Scope: CategoryScopeExpense, Name: "Operacional - Marketing", Type: "Operacional", Description: "Publicidade e marketing"},
	{Scope: CategoryScopeExpense, Name: "Operacional - Embalagens", Type: "Operacional", Description: "Caixas, sacos, etiquetas"},
	{Scope: CategoryScopeExpense, Name: "Imposto - Federal", Type: "Imposto", Description: "Impostos federais"},
	{Scope: CategoryScopeExpense, Name: "Imposto - Estadual", Type: "Imposto", Description: "Impostos estaduais"},
	{Scope: CategoryScopeExpense, Name: "Imposto - Municipal", Type: "Imposto", Description: "Impostos municipais"},
	{Scope: CategoryScopeExpense, Name: "Outros", Type: "Outros", Description: "Despesas diversas"},
}
