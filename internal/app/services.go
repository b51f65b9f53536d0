// Package app arma los casos de uso sobre un conjunto de repositorios. Lo usan main y los
// tests HTTP, de modo que ambos ejercen el mismo cableado.
package app

import (
	appanalytics "github.com/jhoicas/confeitaria-api/internal/application/analytics"
	"github.com/jhoicas/confeitaria-api/internal/application/audit"
	"github.com/jhoicas/confeitaria-api/internal/application/auth"
	"github.com/jhoicas/confeitaria-api/internal/application/cashflow"
	"github.com/jhoicas/confeitaria-api/internal/application/catalog"
	"github.com/jhoicas/confeitaria-api/internal/application/crud"
	"github.com/jhoicas/confeitaria-api/internal/application/production"
	"github.com/jhoicas/confeitaria-api/internal/application/purchase"
	"github.com/jhoicas/confeitaria-api/internal/application/session"
	"github.com/jhoicas/confeitaria-api/internal/domain/access"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
	"github.com/jhoicas/confeitaria-api/internal/infrastructure/archive"
	"github.com/jhoicas/confeitaria-api/internal/infrastructure/memory"
	"github.com/jhoicas/confeitaria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/confeitaria-api/internal/interfaces/http"
	"github.com/jhoicas/confeitaria-api/internal/observability/metrics"
	"github.com/jhoicas/confeitaria-api/pkg/logger"
)

// Repositories puertos de persistencia, independientes del driver.
type Repositories struct {
	Categories  repository.Store[entity.Category]
	Suppliers   repository.Store[entity.Supplier]
	Ingredients repository.Store[entity.Ingredient]
	Clients     repository.Store[entity.Client]
	Purchases   repository.Store[entity.Purchase]
	Production  repository.Store[entity.ProductionOrder]
	Waste       repository.Store[entity.WasteRecord]
	CashFlow    repository.Store[entity.CashFlowTransaction]
	Expenses    repository.Store[entity.OperationalExpense]
	Identities  repository.IdentityRepository
	Sessions    repository.SessionRepository
	Profiles    repository.ProfileRepository
	Audit       repository.AuditRepository
}

// MemoryRepositories repositorios en memoria (desarrollo local y tests).
func MemoryRepositories(st *memory.Stores) Repositories {
	return Repositories{
		Categories:  st.Categories,
		Suppliers:   st.Suppliers,
		Ingredients: st.Ingredients,
		Clients:     st.Clients,
		Purchases:   st.Purchases,
		Production:  st.Production,
		Waste:       st.Waste,
		CashFlow:    st.CashFlow,
		Expenses:    st.Expenses,
		Identities:  st.Identities,
		Sessions:    st.Sessions,
		Profiles:    st.Profiles,
		Audit:       st.Audit,
	}
}

// PostgresRepositories repositorios sobre pgx.
func PostgresRepositories(st *postgres.Stores) Repositories {
	return Repositories{
		Categories:  st.Categories,
		Suppliers:   st.Suppliers,
		Ingredients: st.Ingredients,
		Clients:     st.Clients,
		Purchases:   st.Purchases,
		Production:  st.Production,
		Waste:       st.Waste,
		CashFlow:    st.CashFlow,
		Expenses:    st.Expenses,
		Identities:  st.Identities,
		Sessions:    st.Sessions,
		Profiles:    st.Profiles,
		Audit:       st.Audit,
	}
}

// Services casos de uso cableados.
type Services struct {
	Audit       *audit.Emitter
	Auth        *auth.AuthUseCase
	Sessions    *session.Resolver
	Categories  *catalog.CategoryService
	Ingredients *catalog.IngredientService
	Expenses    *catalog.ExpenseService
	Suppliers   *crud.Service[entity.Supplier, *entity.Supplier]
	Clients     *crud.Service[entity.Client, *entity.Client]
	Waste       *crud.Service[entity.WasteRecord, *entity.WasteRecord]
	CashFlow    *cashflow.Service
	Purchases   *purchase.Service
	Production  *production.Service
	Dashboard   *appanalytics.DashboardUseCase
}

// NewServices construye todos los casos de uso; m puede ser nil.
func NewServices(repos Repositories, jwtCfg auth.JWTConfig, log *logger.Logger, m *metrics.Metrics) *Services {
	em := audit.NewEmitter(repos.Audit, log, m)

	categories := catalog.NewCategoryService(crud.New[entity.Category](entity.EntityCategories, repos.Categories, em))
	ingredients := catalog.NewIngredientService(
		crud.New[entity.Ingredient](entity.EntityIngredients, repos.Ingredients, em), repos.Categories, repos.Suppliers)
	expenses := catalog.NewExpenseService(
		crud.New[entity.OperationalExpense](entity.EntityOperationalExpenses, repos.Expenses, em), repos.Categories, repos.Suppliers)

	cash := crud.New[entity.CashFlowTransaction](entity.EntityCashFlow, repos.CashFlow, em)
	linker := cashflow.NewLinker(cash, log, m)

	purchases := purchase.NewService(
		crud.New[entity.Purchase](entity.EntityPurchases, repos.Purchases, em),
		repos.Suppliers, repos.Categories, repos.Ingredients, linker)
	prod := production.NewService(
		crud.New[entity.ProductionOrder](entity.EntityProduction, repos.Production, em), repos.Clients, linker, log)
	waste := crud.New[entity.WasteRecord](entity.EntityWaste, repos.Waste, em)

	return &Services{
		Audit:       em,
		Auth:        auth.NewAuthUseCase(repos.Identities, repos.Sessions, repos.Profiles, em, jwtCfg, m),
		Sessions:    session.NewResolver(repos.Identities, repos.Sessions, repos.Profiles, log),
		Categories:  categories,
		Ingredients: ingredients,
		Expenses:    expenses,
		Suppliers:   crud.New[entity.Supplier](entity.EntitySuppliers, repos.Suppliers, em),
		Clients:     crud.New[entity.Client](entity.EntityClients, repos.Clients, em),
		Waste:       waste,
		CashFlow:    cash,
		Purchases:   purchases,
		Production:  prod,
		Dashboard: appanalytics.NewDashboardUseCase(appanalytics.Sources{
			Purchases:   purchases,
			Production:  prod,
			Waste:       waste,
			CashFlow:    cash,
			Ingredients: ingredients,
			Expenses:    expenses,
		}),
	}
}

// RouterDeps dependencias del router HTTP a partir de los servicios.
func (s *Services) RouterDeps(jwtSecret string, pdf httpRouter.ReportRenderer, archiver *archive.Archiver, m *metrics.Metrics) httpRouter.RouterDeps {
	return httpRouter.RouterDeps{
		AuthUC:      s.Auth,
		Sessions:    s.Sessions,
		Permissions: access.DefaultPermissions(),
		Categories:  s.Categories,
		Ingredients: s.Ingredients,
		Expenses:    s.Expenses,
		Suppliers:   s.Suppliers,
		Clients:     s.Clients,
		Waste:       s.Waste,
		CashFlow:    s.CashFlow,
		Purchases:   s.Purchases,
		Production:  s.Production,
		DashboardUC: s.Dashboard,
		Audit:       s.Audit,
		PDF:         pdf,
		Archiver:    archiver,
		Metrics:     m,
		JWTSecret:   jwtSecret,
	}
}
