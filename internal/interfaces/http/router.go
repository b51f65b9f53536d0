package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/confeitaria-api/internal/application/analytics"
	"github.com/jhoicas/confeitaria-api/internal/application/audit"
	"github.com/jhoicas/confeitaria-api/internal/application/auth"
	"github.com/jhoicas/confeitaria-api/internal/application/cashflow"
	"github.com/jhoicas/confeitaria-api/internal/application/catalog"
	"github.com/jhoicas/confeitaria-api/internal/application/crud"
	"github.com/jhoicas/confeitaria-api/internal/application/production"
	"github.com/jhoicas/confeitaria-api/internal/application/purchase"
	"github.com/jhoicas/confeitaria-api/internal/domain/access"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/infrastructure/archive"
	"github.com/jhoicas/confeitaria-api/internal/observability/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	Sessions    SessionResolver
	Permissions access.PermissionTable
	Categories  *catalog.CategoryService
	Ingredients *catalog.IngredientService
	Expenses    *catalog.ExpenseService
	Suppliers   *crud.Service[entity.Supplier, *entity.Supplier]
	Clients     *crud.Service[entity.Client, *entity.Client]
	Waste       *crud.Service[entity.WasteRecord, *entity.WasteRecord]
	CashFlow    *cashflow.Service
	Purchases   *purchase.Service
	Production  *production.Service
	DashboardUC *appanalytics.DashboardUseCase
	Audit       *audit.Emitter
	PDF         ReportRenderer
	Archiver    *archive.Archiver
	Metrics     *metrics.Metrics
	JWTSecret   string

	// RequestTimeout plazo de cada petición bajo /api; 0 = sin plazo.
	RequestTimeout time.Duration
}

// Router registra las rutas de la API. Cada grupo protegido exige la ruta de pantalla
// correspondiente de la tabla de permisos.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestContext(deps.RequestTimeout))
	perms := deps.Permissions
	guard := func(paths ...string) fiber.Handler { return RequirePath(perms, paths...) }

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, perms)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.SignUp)
	authGroup.Post("/signin", authHandler.SignIn)

	// Rutas protegidas (requieren Bearer Token y sesión abierta)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Sessions))
	protected.Post("/auth/signout", authHandler.SignOut)

	// Sesión y navegación: disponibles para cualquier rol
	protected.Get("/session", authHandler.Session)
	protected.Get("/session/profile-version", authHandler.ProfileVersion)
	navHandler := NewNavigationHandler(perms)
	protected.Get("/navigation", navHandler.Allowed)
	protected.Get("/navigation/check", navHandler.Check)

	// Perfil propio
	profile := protected.Group("/profile", guard(access.PathProfile))
	profile.Get("/", authHandler.GetProfile)
	profile.Put("/", authHandler.UpdateProfile)

	// Usuarios (admin)
	users := protected.Group("/users", guard(access.PathUsers))
	users.Get("/", authHandler.ListUsers)
	users.Put("/:id/role", authHandler.ChangeRole)

	catalogHandler := NewCatalogHandler(deps.Categories, deps.Ingredients, deps.Expenses)
	productionHandler := NewProductionHandler(deps.Production)

	// Categorías: datos de referencia de las pantallas que las usan
	categories := protected.Group("/categories", guard(access.PathIngredients, access.PathPurchases, access.PathCashFlow))
	categories.Post("/init-defaults", catalogHandler.InitDefaults)
	Mount(categories, CRUDResource(deps.Categories.Categories, "scope", "type"))

	// Insumos
	ingredients := protected.Group("/ingredients", guard(access.PathIngredients))
	ingredients.Get("/most-expensive", catalogHandler.MostExpensive)
	ingredientRes := CRUDResource(deps.Ingredients.Ingredients, "status", "category_id", "supplier_id")
	ingredientRes.List = deps.Ingredients.List
	Mount(ingredients, ingredientRes)

	// Proveedores
	suppliers := protected.Group("/suppliers", guard(access.PathSuppliers))
	Mount(suppliers, CRUDResource(deps.Suppliers, "status"))

	// Clientes
	clients := protected.Group("/clients", guard(access.PathClients))
	clients.Get("/:id/stats", productionHandler.ClientStats)
	Mount(clients, CRUDResource(deps.Clients, "email"))

	// Compras (+ ítems); Create registra la saída en caixa
	purchases := protected.Group("/purchases", guard(access.PathPurchases))
	Mount(purchases, Resource[entity.Purchase]{
		Filters: []string{"supplier_id", "category_id", "payment_form"},
		List:    deps.Purchases.List,
		Get:     deps.Purchases.Get,
		Create:  deps.Purchases.Create,
		Update:  deps.Purchases.Update,
		Delete:  deps.Purchases.Delete,
	})

	// Produção
	prod := protected.Group("/production", guard(access.PathProduction))
	prod.Get("/top-clients", productionHandler.TopClients)
	Mount(prod, productionHandler.Resource())

	// Desperdicio
	waste := protected.Group("/waste", guard(access.PathWaste))
	Mount(waste, CRUDResource(deps.Waste, "ingredient_id", "reason"))

	// Fluxo de caixa
	cashHandler := NewCashFlowHandler(deps.CashFlow, deps.Archiver, deps.Metrics)
	cash := protected.Group("/cash-flow", guard(access.PathCashFlow))
	cash.Get("/export.csv", cashHandler.ExportCSV)
	Mount(cash, cashHandler.Resource())

	// Despesas operacionais: forman parte de la sección de caixa
	expenses := protected.Group("/expenses", guard(access.PathCashFlow))
	expenses.Get("/by-category", catalogHandler.ExpensesByCategory)
	expenseRes := CRUDResource(deps.Expenses.Expenses, "category_id", "supplier_id")
	expenseRes.List = deps.Expenses.List
	Mount(expenses, expenseRes)

	// Dashboard y reportes
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.PDF, deps.Archiver, deps.Metrics)
	protected.Get("/dashboard/summary", guard(access.PathDashboard), dashboardHandler.GetSummary)
	reports := protected.Group("/reports", guard(access.PathReports))
	reports.Get("/monthly", dashboardHandler.Monthly)
	reports.Get("/monthly.pdf", dashboardHandler.MonthlyPDF)

	// Auditoría
	auditHandler := NewAuditHandler(deps.Audit)
	auditGroup := protected.Group("/audit", guard(access.PathAudit))
	auditGroup.Get("/", auditHandler.List)
	auditGroup.Get("/summary", auditHandler.Summary)
}
