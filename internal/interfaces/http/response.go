package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/bancotiempo-api/internal/application/dto"
	"github.com/jhoicas/bancotiempo-api/internal/application/validation"
	"github.com/jhoicas/bancotiempo-api/internal/domain"
)

// Mensajes fijos del sobre de error.
const (
	MsgValidation      = "Error de validación"
	MsgInvalidBody     = "Cuerpo de la petición inválido"
	MsgUnauthenticated = "No autenticado"
	MsgForbidden       = "Acceso denegado"
	MsgInternal        = "Error interno del servidor"
	MsgRouteNotFound   = "Ruta no encontrada"
)

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ok responde con el sobre de éxito; code del cuerpo y status HTTP siempre coinciden.
func ok(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(dto.Envelope{
		Status:  dto.StatusSuccess,
		Code:    code,
		Time:    now(),
		Message: message,
		Data:    data,
	})
}

func errorJSON(c *fiber.Ctx, code int, message string, detail interface{}) error {
	return c.Status(code).JSON(dto.ErrorResponse{
		Status:  dto.StatusError,
		Code:    code,
		Time:    now(),
		Message: message,
		Error:   detail,
	})
}

// fail traduce un error de aplicación al sobre de error. internalMsg es el mensaje de la
// operación para los 500; el detalle del error nunca llega al cliente, solo al log.
func fail(c *fiber.Ctx, err error, internalMsg string) error {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return errorJSON(c, fiber.StatusUnprocessableEntity, MsgValidation, verrs)
	case errors.Is(err, domain.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, err.Error(), err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return errorJSON(c, fiber.StatusUnauthorized, domain.ErrInvalidCredentials.Error(), domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, MsgUnauthenticated, "Token inválido o expirado")
	case errors.Is(err, domain.ErrForbidden):
		return errorJSON(c, fiber.StatusForbidden, MsgForbidden, "No tiene permisos para esta operación")
	case errors.Is(err, domain.ErrSamePassword):
		return errorJSON(c, fiber.StatusBadRequest, domain.ErrSamePassword.Error(), domain.ErrSamePassword.Error())
	case errors.Is(err, domain.ErrHasDependents):
		return errorJSON(c, fiber.StatusConflict, domain.ErrHasDependents.Error(), domain.ErrHasDependents.Error())
	case errors.Is(err, domain.ErrUpload):
		return errorJSON(c, fiber.StatusBadGateway, domain.ErrUpload.Error(), domain.ErrUpload.Error())
	}
	log.Error().Err(err).
		Str("request_id", GetRequestID(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg(internalMsg)
	return errorJSON(c, fiber.StatusInternalServerError, internalMsg, MsgInternal)
}

// ErrorHandler envuelve en el sobre los errores que llegan al router sin pasar por un handler
// (ruta inexistente, 405, pánico recuperado).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code != fiber.StatusInternalServerError {
		if fe.Code == fiber.StatusNotFound {
			return errorJSON(c, fe.Code, MsgRouteNotFound, fe.Message)
		}
		return errorJSON(c, fe.Code, fe.Message, fe.Message)
	}
	return fail(c, err, MsgInternal)
}
