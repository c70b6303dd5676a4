package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/bancotiempo-api/pkg/logger"
)

// ServerConfig parámetros del servidor fiber.
type ServerConfig struct {
	Name        string
	BodyLimitMB int
}

// NewApp crea la aplicación fiber con el sobre de error, request id y recover instalados.
func NewApp(cfg ServerConfig, log *logger.Logger) *fiber.App {
	bodyLimit := cfg.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = 4
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    bodyLimit * 1024 * 1024,
		ErrorHandler: ErrorHandler,
	})
	app.Use(RequestID(log))
	app.Use(recover.New())
	return app
}
