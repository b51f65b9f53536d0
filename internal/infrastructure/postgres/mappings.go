package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
)

// ── Tablas de las entidades de negocio ─────────────────────────────────────

var categoryMapping = Mapping[entity.Category]{
	Table:   "categories",
	Columns: []string{"scope", "name", "type", "description"},
	Fields: func(c *entity.Category) []any {
		return []any{&c.Scope, &c.Name, &c.Type, &c.Description}
	},
	Filters: []string{"scope", "type"},
}

var supplierMapping = Mapping[entity.Supplier]{
	Table:   "suppliers",
	Columns: []string{"name", "phone", "cnpj_cpf", "products_supplied", "rating", "observations", "status"},
	Fields: func(s *entity.Supplier) []any {
		return []any{&s.Name, &s.Phone, &s.TaxID, &s.ProductsSupplied, &s.Rating, &s.Observations, &s.Status}
	},
	Filters:    []string{"status"},
	SoftDelete: true,
}

var ingredientMapping = Mapping[entity.Ingredient]{
	Table:   "ingredients",
	Columns: []string{"name", "category_id", "supplier_id", "unit_measure", "unit_cost", "observations", "status"},
	Fields: func(i *entity.Ingredient) []any {
		return []any{&i.Name, &i.CategoryID, &i.SupplierID, &i.UnitMeasure, &i.UnitCost, &i.Observations, &i.Status}
	},
	Filters:    []string{"status", "category_id", "supplier_id"},
	SoftDelete: true,
}

var clientMapping = Mapping[entity.Client]{
	Table:   "clients",
	Columns: []string{"name", "phone", "email", "address", "observations"},
	Fields: func(c *entity.Client) []any {
		return []any{&c.Name, &c.Phone, &c.Email, &c.Address, &c.Observations}
	},
	Filters: []string{"email"},
}

var purchaseMapping = Mapping[entity.Purchase]{
	Table:   "purchases",
	Columns: []string{"supplier_id", "category_id", "purchase_date", "total", "payment_form", "observations"},
	Fields: func(p *entity.Purchase) []any {
		return []any{&p.SupplierID, &p.CategoryID, &p.PurchaseDate, &p.Total, &p.PaymentForm, &p.Observations}
	},
	DateColumn: "purchase_date",
	Filters:    []string{"supplier_id", "category_id", "payment_form"},
}

var productionMapping = Mapping[entity.ProductionOrder]{
	Table: "daily_production",
	Columns: []string{"production_date", "product_name", "quantity", "estimated_cost", "valor",
		"client_id", "status", "destination", "observations"},
	Fields: func(o *entity.ProductionOrder) []any {
		return []any{&o.ProductionDate, &o.ProductName, &o.Quantity, &o.EstimatedCost, &o.Value,
			&o.ClientID, &o.Status, &o.Destination, &o.Observations}
	},
	DateColumn: "production_date",
	Filters:    []string{"status", "client_id"},
}

var wasteMapping = Mapping[entity.WasteRecord]{
	Table:   "waste_analysis",
	Columns: []string{"waste_date", "ingredient_id", "product_name", "quantity", "reason", "estimated_cost", "observations"},
	Fields: func(w *entity.WasteRecord) []any {
		return []any{&w.WasteDate, &w.IngredientID, &w.ProductName, &w.Quantity, &w.Reason, &w.EstimatedCost, &w.Observations}
	},
	DateColumn: "waste_date",
	Filters:    []string{"ingredient_id", "reason"},
}

var cashFlowMapping = Mapping[entity.CashFlowTransaction]{
	Table: "cash_flow",
	Columns: []string{"transaction_date", "transaction_type", "category", "description", "amount",
		"payment_form", "responsible", "observations"},
	Fields: func(t *entity.CashFlowTransaction) []any {
		return []any{&t.TransactionDate, &t.TransactionType, &t.Category, &t.Description, &t.Amount,
			&t.PaymentForm, &t.Responsible, &t.Observations}
	},
	DateColumn: "transaction_date",
	Filters:    []string{"transaction_type", "category", "payment_form"},
}

var expenseMapping = Mapping[entity.OperationalExpense]{
	Table: "operational_expenses",
	Columns: []string{"category_id", "supplier_id", "expense_date", "description", "amount",
		"payment_form", "observations"},
	Fields: func(e *entity.OperationalExpense) []any {
		return []any{&e.CategoryID, &e.SupplierID, &e.ExpenseDate, &e.Description, &e.Amount,
			&e.PaymentForm, &e.Observations}
	},
	DateColumn: "expense_date",
	Filters:    []string{"category_id", "supplier_id"},
}

// Stores repositorios PostgreSQL de todas las entidades.
type Stores struct {
	Categories  *Table[entity.Category, *entity.Category]
	Suppliers   *Table[entity.Supplier, *entity.Supplier]
	Ingredients *Table[entity.Ingredient, *entity.Ingredient]
	Clients     *Table[entity.Client, *entity.Client]
	Purchases   *PurchaseStore
	Production  *Table[entity.ProductionOrder, *entity.ProductionOrder]
	Waste       *Table[entity.WasteRecord, *entity.WasteRecord]
	CashFlow    *Table[entity.CashFlowTransaction, *entity.CashFlowTransaction]
	Expenses    *Table[entity.OperationalExpense, *entity.OperationalExpense]
	Identities  *IdentityRepo
	Sessions    *SessionRepo
	Profiles    *ProfileRepo
	Audit       *AuditRepo
}

// NewStores construye todos los repositorios sobre el pool.
func NewStores(pool *pgxpool.Pool) *Stores {
	return &Stores{
		Categories:  NewTable[entity.Category](pool, categoryMapping),
		Suppliers:   NewTable[entity.Supplier](pool, supplierMapping),
		Ingredients: NewTable[entity.Ingredient](pool, ingredientMapping),
		Clients:     NewTable[entity.Client](pool, clientMapping),
		Purchases:   NewPurchaseStore(pool, NewTxRunner(pool)),
		Production:  NewTable[entity.ProductionOrder](pool, productionMapping),
		Waste:       NewTable[entity.WasteRecord](pool, wasteMapping),
		CashFlow:    NewTable[entity.CashFlowTransaction](pool, cashFlowMapping),
		Expenses:    NewTable[entity.OperationalExpense](pool, expenseMapping),
		Identities:  NewIdentityRepository(pool),
		Sessions:    NewSessionRepository(pool),
		Profiles:    NewProfileRepository(pool),
		Audit:       NewAuditRepository(pool),
	}
}
