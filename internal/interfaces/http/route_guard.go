package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/confeitaria-api/internal/application/dto"
	"github.com/jhoicas/confeitaria-api/internal/domain/access"
)

// RequirePath devuelve un middleware que deja pasar solo si el rol de la sesión tiene acceso
// a alguna de las rutas indicadas. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 si no hay sesión en el contexto.
//   - 403 FORBIDDEN con redirect a la primera ruta permitida del rol al denegar.
func RequirePath(table access.PermissionTable, paths ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetSession(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "sesión no encontrada",
			})
		}
		role := GetRole(c)
		var denied access.Decision
		for _, p := range paths {
			d := table.Guard(role, p)
			if d.Allow {
				return c.Next()
			}
			denied = d
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ForbiddenResponse{
			Code:     "FORBIDDEN",
			Message:  "el rol '" + string(role) + "' no tiene acceso a esta sección",
			Redirect: denied.Redirect,
		})
	}
}
