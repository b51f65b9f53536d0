package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/confeitaria-api/internal/observability/metrics"
	"github.com/jhoicas/confeitaria-api/pkg/logger"
)

// Observability mide y registra cada petición. La etiqueta path es el patrón de la ruta
// (/api/clients/:id), no la URL concreta, para acotar la cardinalidad.
func Observability(log *logger.Logger, m *metrics.Metrics, metricsPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == metricsPath {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler de Fiber escriba la respuesta antes de leer el status
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		path := c.Route().Path

		m.ObserveHTTP(c.Method(), path, strconv.Itoa(status), elapsed.Seconds())

		ev := log.Debug()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", elapsed).
			Str("user_id", GetUserID(c)).
			Msg("http request")
		return nil
	}
}
