package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/confeitaria-api/internal/application/dto"
	"github.com/jhoicas/confeitaria-api/internal/application/session"
	"github.com/jhoicas/confeitaria-api/internal/domain/access"
	"github.com/jhoicas/confeitaria-api/pkg/jwt"
)

// LocalSession clave de c.Locals con la *session.Session resuelta.
const LocalSession = "session"

// SessionResolver lo implementa *session.Resolver.
type SessionResolver interface {
	Resolve(ctx context.Context, identityID, sessionID string) (*session.Session, error)
}

// AuthMiddleware valida el Bearer Token JWT, comprueba que la sesión siga abierta y resuelve
// el perfil antes de seguir. Ningún handler posterior ve un rol sin resolver.
func AuthMiddleware(jwtSecret string, resolver SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		identityID, sessionID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		sess, err := resolver.Resolve(c.UserContext(), identityID, sessionID)
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalSession, sess)
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto (después del middleware de auth).
func GetSession(c *fiber.Ctx) *session.Session {
	s, _ := c.Locals(LocalSession).(*session.Session)
	return s
}

// GetUserID id de la identidad autenticada; es también el dueño de los datos.
func GetUserID(c *fiber.Ctx) string {
	if s := GetSession(c); s != nil {
		return s.IdentityID
	}
	return ""
}

// GetRole rol resuelto del usuario; user si no hay sesión.
func GetRole(c *fiber.Ctx) access.Role {
	if s := GetSession(c); s != nil {
		return s.Role
	}
	return access.RoleUser
}
