package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/confeitaria-api/internal/application/audit"
	"github.com/jhoicas/confeitaria-api/internal/application/dto"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/domain/repository"
)

// AuditHandler consulta del log de auditoría del usuario autenticado.
type AuditHandler struct {
	emitter *audit.Emitter
}

// NewAuditHandler construye el handler.
func NewAuditHandler(emitter *audit.Emitter) *AuditHandler {
	return &AuditHandler{emitter: emitter}
}

// List godoc
// @Summary      Log de auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        action      query  string  false  "create | update | delete"
// @Param        table_name  query  string  false  "Tipo de entidad"
// @Param        from        query  string  false  "YYYY-MM-DD"
// @Param        to          query  string  false  "YYYY-MM-DD"
// @Param        limit       query  int     false  "Límite"
// @Success      200         {object}  dto.ListResponse[entity.AuditLogEntry]
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	f, err := listFilter(c, nil, nil)
	if err != nil {
		return writeError(c, err)
	}
	entries, err := h.emitter.Query(c.UserContext(), GetUserID(c), audit.Filter{
		Action:     entity.AuditAction(c.Query("action")),
		EntityType: c.Query("table_name"),
		From:       f.From,
		To:         endOfDay(f),
		Limit:      f.Limit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(entries))
}

// Summary GET /api/audit/summary?from=&to=
func (h *AuditHandler) Summary(c *fiber.Ctx) error {
	f, err := listFilter(c, nil, nil)
	if err != nil {
		return writeError(c, err)
	}
	s, err := h.emitter.Summarize(c.UserContext(), GetUserID(c), f.From, endOfDay(f))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(s)
}

// endOfDay ?to= es una fecha inclusive; sobre created_at se extiende al último instante del día.
func endOfDay(f repository.ListFilter) *time.Time {
	if f.To == nil {
		return nil
	}
	t := f.To.Add(24*time.Hour - time.Nanosecond)
	return &t
}
