package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/confeitaria-api/internal/application/dto"
	"github.com/jhoicas/confeitaria-api/internal/domain/access"
)

// NavigationHandler expone la tabla de permisos al front end.
type NavigationHandler struct {
	permissions access.PermissionTable
}

// NewNavigationHandler construye el handler.
func NewNavigationHandler(permissions access.PermissionTable) *NavigationHandler {
	return &NavigationHandler{permissions: permissions}
}

// Allowed GET /api/navigation
func (h *NavigationHandler) Allowed(c *fiber.Ctx) error {
	role := GetRole(c)
	return c.JSON(dto.NavigationResponse{Role: string(role), AllowedPaths: h.permissions.Allowed(role)})
}

// Check GET /api/navigation/check?path=/cash-flow
//
// Una denegación también responde 200: la decisión va en el cuerpo y el cliente redirige si
// allow es false.
func (h *NavigationHandler) Check(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "path es requerido"})
	}
	d := h.permissions.Guard(GetRole(c), path)
	return c.JSON(dto.NavigationCheckResponse{Path: path, Allow: d.Allow, Redirect: d.Redirect})
}
