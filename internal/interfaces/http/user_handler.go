package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bancotiempo-api/internal/application/dto"
	"github.com/jhoicas/bancotiempo-api/internal/application/usecase"
	"github.com/jhoicas/bancotiempo-api/internal/domain"
)

// UserHandler CRUD de usuarios, cambio de contraseña y extracto de horas.
type UserHandler struct {
	uc        *usecase.UserUseCase
	statement *usecase.StatementUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, statement *usecase.StatementUseCase) *UserHandler {
	return &UserHandler{uc: uc, statement: statement}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.UserResponse}
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, err, "Ocurrió un error al obtener los usuarios")
	}
	return ok(c, fiber.StatusOK, "Todos los usuarios obtenidos correctamente", out)
}

// GetByID godoc
// @Summary      Obtener usuario por ID
// @Tags         users
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.Envelope{data=dto.UserResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return fail(c, domain.ErrUserNotFound, "")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "Ocurrió un error al obtener el usuario")
	}
	return ok(c, fiber.StatusOK, "Usuario encontrado", out)
}

// Create godoc
// @Summary      Crear usuario (administración)
// @Description  rol_id debe ser 2 (profesional) o 3 (usuario).
// @Tags         users
// @Security     Bearer
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body      dto.CreateUserRequest  true  "Datos del usuario"
// @Param        img   formData  file                   false "Imagen de perfil (máx. 2048 KB)"
// @Success      201   {object}  dto.Envelope{data=dto.UserResponse}
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := bindBody(c, &in); err != nil {
		return badRequest(c, err)
	}
	img, err := formImage(c)
	if err != nil {
		return badRequest(c, err)
	}
	in.Img = img
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err, "Ocurrió un error al crear el usuario")
	}
	return ok(c, fiber.StatusCreated, "Usuario creado correctamente", out)
}

// Update godoc
// @Summary      Actualizar usuario
// @Description  Solo se modifican los campos presentes; null equivale a ausente.
// @Tags         users
// @Security     Bearer
// @Accept       json,mpfd
// @Produce      json
// @Param        id    path      int                    true  "ID del usuario"
// @Param        body  body      dto.UpdateUserRequest  true  "Campos a modificar"
// @Param        img   formData  file                   false "Nueva imagen"
// @Success      200   {object}  dto.Envelope{data=dto.UserResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return fail(c, domain.ErrUserNotFound, "")
	}
	var in dto.UpdateUserRequest
	if err := bindBody(c, &in); err != nil {
		return badRequest(c, err)
	}
	img, err := formImage(c)
	if err != nil {
		return badRequest(c, err)
	}
	in.Img = img
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err, "Ocurrió un error al actualizar el usuario")
	}
	return ok(c, fiber.StatusOK, "Usuario actualizado correctamente", out)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Description  Falla con 409 si el usuario tiene servicios, transacciones, valoraciones o mensajes.
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return fail(c, domain.ErrUserNotFound, "")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return fail(c, err, "Ocurrió un error al eliminar el usuario")
	}
	return ok(c, fiber.StatusOK, "Usuario eliminado correctamente", nil)
}

// ChangePassword godoc
// @Summary      Cambiar contraseña
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID del usuario"
// @Param        body  body  dto.ChangePasswordRequest  true  "Nueva contraseña"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/password [put]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return fail(c, domain.ErrUserNotFound, "")
	}
	var in dto.ChangePasswordRequest
	if err := bindBody(c, &in); err != nil {
		return badRequest(c, err)
	}
	if err := h.uc.ChangePassword(c.UserContext(), id, in); err != nil {
		return fail(c, err, "Ocurrió un error al cambiar la contraseña")
	}
	return ok(c, fiber.StatusOK, "Contraseña cambiada correctamente", nil)
}

// Statement godoc
// @Summary      Extracto de horas (PDF)
// @Description  Transacciones del usuario y horas confirmadas recibidas y prestadas.
// @Tags         users
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/extracto [get]
func (h *UserHandler) Statement(c *fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return fail(c, domain.ErrUserNotFound, "")
	}
	pdf, err := h.statement.Render(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "Ocurrió un error al generar el extracto")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="extracto-`+strconv.FormatInt(id, 10)+`.pdf"`)
	return c.Status(fiber.StatusOK).Send(pdf)
}
