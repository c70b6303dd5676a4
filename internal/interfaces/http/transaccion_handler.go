package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bancotiempo-api/internal/application/dto"
	"github.com/jhoicas/bancotiempo-api/internal/application/usecase"
	"github.com/jhoicas/bancotiempo-api/internal/domain"
)

// TransaccionHandler CRUD de transacciones de horas.
type TransaccionHandler struct {
	uc *usecase.TransaccionUseCase
}

// NewTransaccionHandler construye el handler.
func NewTransaccionHandler(uc *usecase.TransaccionUseCase) *TransaccionHandler {
	return &TransaccionHandler{uc: uc}
}

// List godoc
// @Summary      Listar transacciones
// @Tags         transacciones
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.TransaccionResponse}
// @Router       /api/transacciones [get]
func (h *TransaccionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, err, "Ocurrió un error al obtener las transacciones")
	}
	return ok(c, fiber.StatusOK, "Todas las transacciones obtenidas correctamente", out)
}

// ListByUsuario godoc
// @Summary      Listar transacciones de un usuario
// @Description  Transacciones en las que el usuario es solicitante u ofertante.
// @Tags         transacciones
// @Produce      json
// @Param        usuario_id  path  int  true  "ID del usuario"
// @Success      200  {object}  dto.Envelope{data=[]dto.TransaccionResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transacciones/{usuario_id} [get]
func (h *TransaccionHandler) ListByUsuario(c *fiber.Ctx) error {
	usuarioID, valid := idParam(c, "usuario_id")
	if !valid {
		return fail(c, domain.ErrUserNotFound, "")
	}
	out, err := h.uc.ListByUsuario(c.UserContext(), usuarioID)
	if err != nil {
		return fail(c, err, "Ocurrió un error al obtener las transacciones del usuario")
	}
	return ok(c, fiber.StatusOK, "Transacciones del usuario obtenidas correctamente", out)
}

// GetByID godoc
// @Summary      Obtener transaccion por ID
// @Tags         transacciones
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.Envelope{data=dto.TransaccionResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transaccion/{id} [get]
func (h *TransaccionHandler) GetByID(c *fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return fail(c, domain.ErrTransaccionNotFound, "")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "Ocurrió un error al obtener la transacción")
	}
	return ok(c, fiber.StatusOK, "Transacción encontrada", out)
}

// Create godoc
// @Summary      Crear transaccion
// @Tags         transacciones
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransaccionRequest  true  "Datos"
// @Success      201   {object}  dto.Envelope{data=dto.TransaccionResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/transaccion [post]
func (h *TransaccionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransaccionRequest
	if err := bindBody(c, &in); err != nil {
		return badRequest(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err, "Ocurrió un error al crear la transacción")
	}
	return ok(c, fiber.StatusCreated, "Transacción creada correctamente", out)
}

// Update godoc
// @Summary      Actualizar transaccion
// @Description  Solo se modifican los campos presentes; null equivale a ausente.
// @Tags         transacciones
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID"
// @Param        body  body  dto.UpdateTransaccionRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.Envelope{data=dto.TransaccionResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/transaccion/{id} [put]
func (h *TransaccionHandler) Update(c *fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return fail(c, domain.ErrTransaccionNotFound, "")
	}
	var in dto.UpdateTransaccionRequest
	if err := bindBody(c, &in); err != nil {
		return badRequest(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err, "Ocurrió un error al actualizar la transacción")
	}
	return ok(c, fiber.StatusOK, "Transacción actualizada correctamente", out)
}

// Delete godoc
// @Summary      Eliminar transaccion
// @Description  Falla con 409 si la transacción tiene valoraciones.
// @Tags         transacciones
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transaccion/{id} [delete]
func (h *TransaccionHandler) Delete(c *fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return fail(c, domain.ErrTransaccionNotFound, "")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return fail(c, err, "Ocurrió un error al eliminar la transacción")
	}
	return ok(c, fiber.StatusOK, "Transacción eliminada correctamente", nil)
}
