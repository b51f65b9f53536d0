package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/confeitaria-api/internal/application/auth"
	"github.com/jhoicas/confeitaria-api/internal/application/dto"
	"github.com/jhoicas/confeitaria-api/internal/domain/access"
)

// AuthHandler maneja registro, login, logout, sesión, perfil propio y usuarios.
type AuthHandler struct {
	uc          *auth.AuthUseCase
	permissions access.PermissionTable
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, permissions access.PermissionTable) *AuthHandler {
	return &AuthHandler{uc: uc, permissions: permissions}
}

// SignUp godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignUpRequest  true  "email, password, full_name"
// @Success      201   {object}  entity.Profile
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var in dto.SignUpRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	profile, err := h.uc.SignUp(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// SignIn godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignInRequest  true  "email, password"
// @Success      200   {object}  dto.SignInResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/signin [post]
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var in dto.SignInRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SignIn(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SignOut revoca la sesión del token. POST /api/auth/signout
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	sess := GetSession(c)
	if err := h.uc.SignOut(c.UserContext(), sess.SessionID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Session godoc
// @Summary      Sesión actual
// @Description  Identidad, perfil, rol resuelto y rutas permitidas.
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	sess := GetSession(c)
	return c.JSON(dto.SessionResponse{
		IdentityID:     sess.IdentityID,
		Email:          sess.Email,
		Role:           string(sess.Role),
		Profile:        sess.Profile,
		ProfileVersion: sess.ProfileVersion(),
		AllowedPaths:   h.permissions.Allowed(sess.Role),
	})
}

// ProfileVersion GET /api/session/profile-version
func (h *AuthHandler) ProfileVersion(c *fiber.Ctx) error {
	return c.JSON(dto.ProfileVersionResponse{Version: GetSession(c).ProfileVersion()})
}

// GetProfile GET /api/profile
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.uc.GetProfile(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(profile)
}

// UpdateProfile godoc
// @Summary      Actualizar perfil propio
// @Tags         profile
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "full_name"
// @Success      200   {object}  entity.Profile
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/profile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	profile, err := h.uc.UpdateProfile(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(profile)
}

// ListUsers GET /api/users
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.uc.ListUsers(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(users))
}

// ChangeRole godoc
// @Summary      Cambiar rol de un usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la identidad"
// @Param        body  body  dto.ChangeRoleRequest  true  "role"
// @Success      200   {object}  entity.Profile
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/role [put]
func (h *AuthHandler) ChangeRole(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.ChangeRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	profile, err := h.uc.ChangeRole(c.UserContext(), GetUserID(c), GetRole(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(profile)
}
