package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestContext instala en c.UserContext() un contexto propio de la petición, cancelado al
// terminar el handler o al vencer timeout (si es > 0). fasthttp no avisa cuando el cliente
// corta la conexión, así que el plazo es lo único que interrumpe una lectura larga.
func RequestContext(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			ctx    context.Context
			cancel context.CancelFunc
		)
		if timeout > 0 {
			ctx, cancel = context.WithTimeout(c.UserContext(), timeout)
		} else {
			ctx, cancel = context.WithCancel(c.UserContext())
		}
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
