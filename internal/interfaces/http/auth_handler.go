package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bancotiempo-api/internal/application/auth"
	"github.com/jhoicas/bancotiempo-api/internal/application/dto"
)

// AuthHandler maneja registro, login y logout.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar usuario
// @Description  Crea una cuenta con rol usuario (rol_id se ignora) y devuelve un token. Acepta JSON o multipart con img.
// @Tags         auth
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "Datos del usuario"
// @Param        img   formData  file                 false "Imagen de perfil (máx. 2048 KB)"
// @Success      201   {object}  dto.Envelope{data=dto.AuthResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := bindBody(c, &in); err != nil {
		return badRequest(c, err)
	}
	img, err := formImage(c)
	if err != nil {
		return badRequest(c, err)
	}
	in.Img = img
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return fail(c, err, "Ocurrió un error al registrar el usuario")
	}
	return ok(c, fiber.StatusCreated, "¡Usuario registrado exitosamente!", out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.Envelope{data=dto.AuthResponse}
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bindBody(c, &in); err != nil {
		return badRequest(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return fail(c, err, "Ocurrió un error al iniciar sesión")
	}
	return ok(c, fiber.StatusOK, "¡Login exitoso "+out.User.Nombre+"!", out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Revoca el token usado en la petición hasta su expiración.
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.UserContext(), GetIdentity(c)); err != nil {
		return fail(c, err, "Ocurrió un error al cerrar la sesión")
	}
	return ok(c, fiber.StatusOK, "Sesión cerrada exitosamente", nil)
}
