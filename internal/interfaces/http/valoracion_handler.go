package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bancotiempo-api/internal/application/dto"
	"github.com/jhoicas/bancotiempo-api/internal/application/usecase"
	"github.com/jhoicas/bancotiempo-api/internal/domain"
)

// ValoracionHandler CRUD de valoraciones.
type ValoracionHandler struct {
	uc *usecase.ValoracionUseCase
}

// NewValoracionHandler construye el handler.
func NewValoracionHandler(uc *usecase.ValoracionUseCase) *ValoracionHandler {
	return &ValoracionHandler{uc: uc}
}

// List godoc
// @Summary      Listar valoraciones
// @Tags         valoraciones
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.ValoracionResponse}
// @Router       /api/valoraciones [get]
func (h *ValoracionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, err, "Ocurrió un error al obtener las valoraciones")
	}
	return ok(c, fiber.StatusOK, "Todas las valoraciones obtenidas correctamente", out)
}

// ListByUsuario godoc
// @Summary      Listar valoraciones de un usuario
// @Description  Valoraciones recibidas por el usuario.
// @Tags         valoraciones
// @Produce      json
// @Param        usuario_id  path  int  true  "ID del usuario"
// @Success      200  {object}  dto.Envelope{data=[]dto.ValoracionResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/valoraciones/{usuario_id} [get]
func (h *ValoracionHandler) ListByUsuario(c *fiber.Ctx) error {
	usuarioID, valid := idParam(c, "usuario_id")
	if !valid {
		return fail(c, domain.ErrUserNotFound, "")
	}
	out, err := h.uc.ListByUsuario(c.UserContext(), usuarioID)
	if err != nil {
		return fail(c, err, "Ocurrió un error al obtener las valoraciones del usuario")
	}
	return ok(c, fiber.StatusOK, "Valoraciones del usuario obtenidas correctamente", out)
}

// GetByID godoc
// @Summary      Obtener valoracion por ID
// @Tags         valoraciones
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.Envelope{data=dto.ValoracionResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/valoracion/{id} [get]
func (h *ValoracionHandler) GetByID(c *fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return fail(c, domain.ErrValoracionNotFound, "")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "Ocurrió un error al obtener la valoración")
	}
	return ok(c, fiber.StatusOK, "Valoración encontrada", out)
}

// Create godoc
// @Summary      Crear valoracion
// @Tags         valoraciones
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateValoracionRequest  true  "Datos"
// @Success      201   {object}  dto.Envelope{data=dto.ValoracionResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/valoracion [post]
func (h *ValoracionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateValoracionRequest
	if err := bindBody(c, &in); err != nil {
		return badRequest(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err, "Ocurrió un error al crear la valoración")
	}
	return ok(c, fiber.StatusCreated, "Valoración creada correctamente", out)
}

// Update godoc
// @Summary      Actualizar valoracion
// @Description  Solo se modifican los campos presentes; null equivale a ausente.
// @Tags         valoraciones
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID"
// @Param        body  body  dto.UpdateValoracionRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.Envelope{data=dto.ValoracionResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/valoracion/{id} [put]
func (h *ValoracionHandler) Update(c *fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return fail(c, domain.ErrValoracionNotFound, "")
	}
	var in dto.UpdateValoracionRequest
	if err := bindBody(c, &in); err != nil {
		return badRequest(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err, "Ocurrió un error al actualizar la valoración")
	}
	return ok(c, fiber.StatusOK, "Valoración actualizada correctamente", out)
}

// Delete godoc
// @Summary      Eliminar valoracion
// @Tags         valoraciones
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/valoracion/{id} [delete]
func (h *ValoracionHandler) Delete(c *fiber.Ctx) error {
	id, valid := idParam(c, "id")
	if !valid {
		return fail(c, domain.ErrValoracionNotFound, "")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return fail(c, err, "Ocurrió un error al eliminar la valoración")
	}
	return ok(c, fiber.StatusOK, "Valoración eliminada correctamente", nil)
}
