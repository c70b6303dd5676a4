package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bancotiempo-api/internal/application/dto"
	"github.com/jhoicas/bancotiempo-api/internal/application/usecase"
	"github.com/jhoicas/bancotiempo-api/internal/domain"
)

// ServicioHandler CRUD de servicios (ofertas y demandas).
type ServicioHandler struct {
	uc *usecase.ServicioUseCase
}

// NewServicioHandler construye el handler.
func NewServicioHandler(uc *usecase.ServicioUseCase) *ServicioHandler {
	return &ServicioHandler{uc: uc}
}

// List godoc
// @Summary      Listar servicios
// @Tags         servicios
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.ServicioResponse}
// @Router       /api/servicios [get]
func (h *ServicioHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, err, "Ocurrió un error al obtener los servicios")
	}
	return ok(c, fiber.StatusOK, "Todos los servicios obtenidos correctamente", out)
}

// ListByUsuario godoc
// @Summary      Listar servicios de un usuario
// @Description  Servicios publicados por el usuario.
// @Tags         servicios
// @Produce      json
// @Param        usuario_id  path  int  true  "ID del usuario"
// @Success      200  {object}  dto.Envelope{data=[]dto.ServicioResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/servicios/{usuario_id} [get]
func (h *ServicioHandler) ListByUsuario(c *fiber.Ctx) error {
	usuarioID, valid := idParam(c, "usuario_id")
	if !valid {
		return fail(c, domain.ErrUserNotFound, "")
	}
	out, err := h.uc.ListByUsuario(c.UserContext(), usuarioID)
	if err != nil {
		return fail(c, err, "Ocurrió un error al obtener los servicios del usuario")
	}
	return ok(c, fiber.StatusOK, "Servicios del usuario obtenidos correctamente", out)
}

// GetByID godoc
// @Summary      Obtener servicio por ID
// @Tags         servicios
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.Envelope{data=dto.ServicioResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/servicio/{id} [get]
func (h *ServicioHandler) GetByID(c *fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return fail(c, domain.ErrServicioNotFound, "")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "Ocurrió un error al obtener el servicio")
	}
	return ok(c, fiber.StatusOK, "Servicio encontrado", out)
}

// Create godoc
// @Summary      Crear servicio
// @Tags         servicios
// @Accept       json,mpfd
// @Produce      json
// @Param        body  body  dto.CreateServicioRequest  true  "Datos"
// @Param        img   formData  file  false  "Imagen (máx. 2048 KB)"
// @Success      201   {object}  dto.Envelope{data=dto.ServicioResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/servicio [post]
func (h *ServicioHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateServicioRequest
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
		return fail(c, err, "Ocurrió un error al crear el servicio")
	}
	return ok(c, fiber.StatusCreated, "Servicio creado correctamente", out)
}

// Update godoc
// @Summary      Actualizar servicio
// @Description  Solo se modifican los campos presentes; null equivale a ausente.
// @Tags         servicios
// @Accept       json,mpfd
// @Produce      json
// @Param        id    path  int                    true  "ID"
// @Param        body  body  dto.UpdateServicioRequest  true  "Campos a modificar"
// @Param        img   formData  file  false  "Imagen (máx. 2048 KB)"
// @Success      200   {object}  dto.Envelope{data=dto.ServicioResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/servicio/{id} [put]
func (h *ServicioHandler) Update(c *fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return fail(c, domain.ErrServicioNotFound, "")
	}
	var in dto.UpdateServicioRequest
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
		return fail(c, err, "Ocurrió un error al actualizar el servicio")
	}
	return ok(c, fiber.StatusOK, "Servicio actualizado correctamente", out)
}

// Delete godoc
// @Summary      Eliminar servicio
// @Description  Falla con 409 si el servicio tiene transacciones o mensajes.
// @Tags         servicios
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/servicio/{id} [delete]
func (h *ServicioHandler) Delete(c *fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return fail(c, domain.ErrServicioNotFound, "")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return fail(c, err, "Ocurrió un error al eliminar el servicio")
	}
	return ok(c, fiber.StatusOK, "Servicio eliminado correctamente", nil)
}
