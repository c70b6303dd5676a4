package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bancotiempo-api/internal/application/usecase"
	"github.com/jhoicas/bancotiempo-api/internal/application/validation"
)

// CatalogHandler datos de referencia: provincias, poblaciones, categorías, roles y tablas.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Provincias godoc
// @Summary      Listar provincias
// @Tags         catalogos
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.ProvinciaResponse}
// @Router       /api/getProvincias [get]
func (h *CatalogHandler) Provincias(c *fiber.Ctx) error {
	out, err := h.uc.Provincias(c.UserContext())
	if err != nil {
		return fail(c, err, "Ocurrió un error al obtener las provincias")
	}
	return ok(c, fiber.StatusOK, "Provincias obtenidas correctamente", out)
}

// Poblaciones godoc
// @Summary      Listar poblaciones
// @Description  Con provincia_id solo devuelve las de esa provincia. Cada población incluye su provincia.
// @Tags         catalogos
// @Produce      json
// @Param        provincia_id  query  int  false  "Filtrar por provincia"
// @Success      200  {object}  dto.Envelope{data=[]dto.PoblacionResponse}
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/getPoblaciones [get]
func (h *CatalogHandler) Poblaciones(c *fiber.Ctx) error {
	var provinciaID *int64
	if raw := strings.TrimSpace(c.Query("provincia_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fail(c, validation.Field("provincia_id", "El campo provincia_id debe ser un número entero."), "")
		}
		provinciaID = &id
	}
	out, err := h.uc.Poblaciones(c.UserContext(), provinciaID)
	if err != nil {
		return fail(c, err, "Ocurrió un error al obtener las poblaciones")
	}
	return ok(c, fiber.StatusOK, "Poblaciones obtenidas correctamente", out)
}

// Categorias godoc
// @Summary      Listar categorías
// @Tags         catalogos
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.CategoriaResponse}
// @Router       /api/getCategorias [get]
func (h *CatalogHandler) Categorias(c *fiber.Ctx) error {
	out, err := h.uc.Categorias(c.UserContext())
	if err != nil {
		return fail(c, err, "Ocurrió un error al obtener las categorías")
	}
	return ok(c, fiber.StatusOK, "Categorías obtenidas correctamente", out)
}

// Roles godoc
// @Summary      Listar roles
// @Tags         catalogos
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.RolResponse}
// @Router       /api/getRoles [get]
func (h *CatalogHandler) Roles(c *fiber.Ctx) error {
	out, err := h.uc.Roles(c.UserContext())
	if err != nil {
		return fail(c, err, "Ocurrió un error al obtener los roles")
	}
	return ok(c, fiber.StatusOK, "Roles obtenidos correctamente", out)
}

// Tables godoc
// @Summary      Listar tablas del esquema
// @Tags         catalogos
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]string}
// @Router       /api/getTables [get]
func (h *CatalogHandler) Tables(c *fiber.Ctx) error {
	out, err := h.uc.Tables(c.UserContext())
	if err != nil {
		return fail(c, err, "Ocurrió un error al obtener las tablas")
	}
	return ok(c, fiber.StatusOK, "Tablas obtenidas correctamente", out)
}
