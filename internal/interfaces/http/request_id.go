package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/bancotiempo-api/pkg/logger"
)

const (
	LocalRequestID  = "request_id"
	HeaderRequestID = "X-Request-ID"
	maxRequestIDLen = 128
)

// RequestID asigna un id a cada petición (el de X-Request-ID si llega), lo devuelve en la
// cabecera de respuesta y registra una línea por petición al terminar.
func RequestID(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		id := normalizeRequestID(c.Get(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalRequestID, id)
		c.Set(HeaderRequestID, id)

		err := c.Next()
		if err != nil {
			// El ErrorHandler escribe la respuesta; así el status registrado es el definitivo.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
			route = r.Path
		}
		log.Info().
			Str("request_id", id).
			Str("method", c.Method()).
			Str("route", route).
			Int("status", c.Response().StatusCode()).
			Float64("latency_ms", float64(time.Since(start).Microseconds())/1000.0).
			Msg("petición")
		return nil
	}
}

// GetRequestID devuelve el id asignado por RequestID ("" si el middleware no está instalado).
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}

func normalizeRequestID(raw string) string {
	id := strings.TrimSpace(raw)
	if len(id) > maxRequestIDLen {
		id = id[:maxRequestIDLen]
	}
	return id
}
