package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bancotiempo-api/internal/application/dto"
	"github.com/jhoicas/bancotiempo-api/internal/application/usecase"
	"github.com/jhoicas/bancotiempo-api/internal/domain"
)

// MensajeHandler CRUD de mensajes entre usuarios.
type MensajeHandler struct {
	uc *usecase.MensajeUseCase
}

// NewMensajeHandler construye el handler.
func NewMensajeHandler(uc *usecase.MensajeUseCase) *MensajeHandler {
	return &MensajeHandler{uc: uc}
}

// List godoc
// @Summary      Listar mensajes
// @Tags         mensajes
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.MensajeResponse}
// @Router       /api/mensajes [get]
func (h *MensajeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, err, "Ocurrió un error al obtener los mensajes")
	}
	return ok(c, fiber.StatusOK, "Todos los mensajes obtenidos correctamente", out)
}

// ListByUsuario godoc
// @Summary      Listar mensajes de un usuario
// @Description  Mensajes enviados o recibidos por el usuario.
// @Tags         mensajes
// @Produce      json
// @Param        usuario_id  path  int  true  "ID del usuario"
// @Success      200  {object}  dto.Envelope{data=[]dto.MensajeResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/mensajes/{usuario_id} [get]
func (h *MensajeHandler) ListByUsuario(c *fiber.Ctx) error {
	usuarioID, valid := idParam(c, "usuario_id")
	if !valid {
		return fail(c, domain.ErrUserNotFound, "")
	}
	out, err := h.uc.ListByUsuario(c.UserContext(), usuarioID)
	if err != nil {
		return fail(c, err, "Ocurrió un error al obtener los mensajes del usuario")
	}
	return ok(c, fiber.StatusOK, "Mensajes del usuario obtenidos correctamente", out)
}

// GetByID godoc
// @Summary      Obtener mensaje por ID
// @Tags         mensajes
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.Envelope{data=dto.MensajeResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/mensaje/{id} [get]
func (h *MensajeHandler) GetByID(c *fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return fail(c, domain.ErrMensajeNotFound, "")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "Ocurrió un error al obtener el mensaje")
	}
	return ok(c, fiber.StatusOK, "Mensaje encontrado", out)
}

// Create godoc
// @Summary      Crear mensaje
// @Tags         mensajes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMensajeRequest  true  "Datos"
// @Success      201   {object}  dto.Envelope{data=dto.MensajeResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/mensaje [post]
func (h *MensajeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMensajeRequest
	if err := bindBody(c, &in); err != nil {
		return badRequest(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err, "Ocurrió un error al crear el mensaje")
	}
	return ok(c, fiber.StatusCreated, "Mensaje creado correctamente", out)
}

// Update godoc
// @Summary      Actualizar mensaje
// @Description  Solo se modifican los campos presentes; null equivale a ausente.
// @Tags         mensajes
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID"
// @Param        body  body  dto.UpdateMensajeRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.Envelope{data=dto.MensajeResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/mensaje/{id} [put]
func (h *MensajeHandler) Update(c *fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return fail(c, domain.ErrMensajeNotFound, "")
	}
	var in dto.UpdateMensajeRequest
	if err := bindBody(c, &in); err != nil {
		return badRequest(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err, "Ocurrió un error al actualizar el mensaje")
	}
	return ok(c, fiber.StatusOK, "Mensaje actualizado correctamente", out)
}

// Delete godoc
// @Summary      Eliminar mensaje
// @Tags         mensajes
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/mensaje/{id} [delete]
func (h *MensajeHandler) Delete(c *fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return fail(c, domain.ErrMensajeNotFound, "")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return fail(c, err, "Ocurrió un error al eliminar el mensaje")
	}
	return ok(c, fiber.StatusOK, "Mensaje eliminado correctamente", nil)
}
