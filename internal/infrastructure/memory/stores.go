package memory

import (
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
)

// Stores conjunto de tablas en memoria, una por entidad de negocio.
type Stores struct {
	Categories  *Table[entity.Category, *entity.Category]
	Suppliers   *Table[entity.Supplier, *entity.Supplier]
	Ingredients *Table[entity.Ingredient, *entity.Ingredient]
	Clients     *Table[entity.Client, *entity.Client]
	Purchases   *Table[entity.Purchase, *entity.Purchase]
	Production  *Table[entity.ProductionOrder, *entity.ProductionOrder]
	Waste       *Table[entity.WasteRecord, *entity.WasteRecord]
	CashFlow    *Table[entity.CashFlowTransaction, *entity.CashFlowTransaction]
	Expenses    *Table[entity.OperationalExpense, *entity.OperationalExpense]
	Identities  *IdentityRepo
	Sessions    *SessionRepo
	Profiles    *ProfileRepo
	Audit       *AuditRepo
}

// NewStores construye todas las tablas con el orden de listado de cada entidad.
func NewStores() *Stores {
	return &Stores{
		Categories:  NewTable[entity.Category](ByName(func(c *entity.Category) string { return c.Name })),
		Suppliers:   NewTable[entity.Supplier](ByName(func(s *entity.Supplier) string { return s.Name })),
		Ingredients: NewTable[entity.Ingredient](ByName(func(i *entity.Ingredient) string { return i.Name })),
		Clients:     NewTable[entity.Client](ByName(func(c *entity.Client) string { return c.Name })),
		Purchases:   NewTable[entity.Purchase](nil).WithClone(entity.Purchase.Clone),
		Production:  NewTable[entity.ProductionOrder](nil),
		Waste:       NewTable[entity.WasteRecord](nil),
		CashFlow:    NewTable[entity.CashFlowTransaction](nil),
		Expenses:    NewTable[entity.OperationalExpense](nil),
		Identities:  NewIdentityRepo(),
		Sessions:    NewSessionRepo(),
		Profiles:    NewProfileRepo(),
		Audit:       NewAuditRepo(),
	}
}
