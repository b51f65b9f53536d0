package entity

import (
	"encoding/json"
	"time"
)

// AuditAction acción registrada en la auditoría.
type AuditAction string

const (
	AuditCreate AuditAction = "create"
	AuditUpdate AuditAction = "update"
	AuditDelete AuditAction = "delete"
)

// Etiquetas de tipo de entidad usadas en AuditLogEntry.EntityType.
const (
	EntityIngredients         = "ingredients"
	EntitySuppliers           = "suppliers"
	EntityClients             = "clients"
	EntityPurchases           = "purchases"
	EntityProduction          = "daily_production"
	EntityWaste               = "waste_analysis"
	EntityCashFlow            = "cash_flow"
	EntityOperationalExpenses = "operational_expenses"
	EntityCategories          = "categories"
	EntityProfiles            = "user_profiles"
)

// AuditLogEntry registro inmutable de una mutación. create → OldData nulo; delete → NewData nulo
// salvo en desactivaciones, donde NewData muestra el status cambiado.
type AuditLogEntry struct {
	ID         string          `json:"id"`
	ActorID    string          `json:"user_id"`
	Action     AuditAction     `json:"action"`
	EntityType string          `json:"table_name"`
	EntityID   string          `json:"record_id"`
	OldData    json.RawMessage `json:"old_data"`
	NewData    json.RawMessage `json:"new_data"`
	CreatedAt  time.Time       `json:"created_at"`
}
