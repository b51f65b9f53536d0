package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/confeitaria-api/internal/application/production"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
)

const defaultTopClients = 5

var productionFilters = []string{"status", "client_id"}

// ProductionHandler indicadores de clientes calculados sobre las órdenes de produção.
type ProductionHandler struct {
	svc *production.Service
}

// NewProductionHandler construye el handler.
func NewProductionHandler(svc *production.Service) *ProductionHandler {
	return &ProductionHandler{svc: svc}
}

// Resource CRUD de órdenes; Update dispara la entrada en caixa al pasar a entregue.
func (h *ProductionHandler) Resource() Resource[entity.ProductionOrder] {
	return Resource[entity.ProductionOrder]{
		Filters: productionFilters,
		List:    h.svc.List,
		Get:     h.svc.Get,
		Create:  h.svc.Create,
		Update:  h.svc.Update,
		Delete:  h.svc.Delete,
	}
}

// ClientStats GET /api/clients/:id/stats
func (h *ProductionHandler) ClientStats(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	stats, err := h.svc.ClientStats(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}

// TopClients GET /api/production/top-clients?limit=5
func (h *ProductionHandler) TopClients(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultTopClients)
	if limit <= 0 {
		limit = defaultTopClients
	}
	byRevenue, byOrders, err := h.svc.TopClients(c.UserContext(), GetUserID(c), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"by_revenue": byRevenue, "by_orders": byOrders})
}
