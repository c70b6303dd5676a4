package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	_ "github.com/jhoicas/bancotiempo-api/docs"
	"github.com/jhoicas/bancotiempo-api/internal/application/auth"
	"github.com/jhoicas/bancotiempo-api/internal/application/ports"
	"github.com/jhoicas/bancotiempo-api/internal/application/usecase"
	"github.com/jhoicas/bancotiempo-api/internal/application/validation"
	"github.com/jhoicas/bancotiempo-api/internal/infrastructure/imagestore"
	"github.com/jhoicas/bancotiempo-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/bancotiempo-api/internal/infrastructure/pdf"
	"github.com/jhoicas/bancotiempo-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/bancotiempo-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/bancotiempo-api/internal/interfaces/http"
	"github.com/jhoicas/bancotiempo-api/pkg/config"
	"github.com/jhoicas/bancotiempo-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}
	policy, err := httpRouter.NewPolicy(cfg.Auth.ProtectedRoutes)
	if err != nil {
		log.Fatal().Err(err).Msg("AUTH_PROTECTED_ROUTES")
	}

	ctx := context.Background()
	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	servicioRepo := postgres.NewServicioRepository(pool)
	transaccionRepo := postgres.NewTransaccionRepository(pool)
	valoracionRepo := postgres.NewValoracionRepository(pool)
	mensajeRepo := postgres.NewMensajeRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	lookup := postgres.NewReferenceLookup(pool)

	// Revocación de tokens: Redis si está configurado; si no, en memoria (se pierde al reiniciar).
	var denylist ports.TokenDenylist
	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		denylist = infraredis.NewTokenDenylist(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("lista de revocación en Redis")
	} else {
		denylist = memory.NewTokenDenylist()
		log.Warn().Msg("REDIS_ADDR vacío: lista de revocación en memoria")
	}

	images := newImageStore(cfg.Images, log)

	rel := usecase.NewRelations(userRepo, servicioRepo, transaccionRepo, catalogRepo)
	val := validation.New(lookup)
	userUC := usecase.NewUserUseCase(userRepo, rel, val, images)
	authUC := auth.NewAuthUseCase(userUC, userRepo, denylist, val, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	statementUC := usecase.NewStatementUseCase(userRepo, transaccionRepo, servicioRepo, infrapdf.NewStatementPDF("Banco de tiempo"))

	app := httpRouter.NewApp(httpRouter.ServerConfig{
		Name:        cfg.App.Name,
		BodyLimitMB: cfg.HTTP.BodyLimitMB,
	}, log)

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Banco de tiempo API",
		}))
	}
	if cfg.Images.CloudinaryURL == "" && cfg.Images.LocalDir != "" {
		app.Static("/imagenes", cfg.Images.LocalDir)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		StatementUC:   statementUC,
		ServicioUC:    usecase.NewServicioUseCase(servicioRepo, userRepo, rel, val, images),
		TransaccionUC: usecase.NewTransaccionUseCase(transaccionRepo, userRepo, rel, val),
		ValoracionUC:  usecase.NewValoracionUseCase(valoracionRepo, userRepo, rel, val),
		MensajeUC:     usecase.NewMensajeUseCase(mensajeRepo, userRepo, rel, val),
		CatalogUC:     usecase.NewCatalogUseCase(catalogRepo, rel),
		Policy:        policy,
	})
	for _, entry := range policy.Unused() {
		log.Warn().Str("regla", entry).Msg("AUTH_PROTECTED_ROUTES: la entrada no coincide con ninguna ruta")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// newImageStore elige el destino de las imágenes: Cloudinary, disco local o ninguno.
func newImageStore(cfg config.ImagesConfig, log *logger.Logger) ports.ImageStore {
	switch {
	case cfg.CloudinaryURL != "":
		store, err := imagestore.NewCloudinary(cfg.CloudinaryURL, cfg.CloudinaryFolder)
		if err != nil {
			log.Fatal().Err(err).Msg("configuración de Cloudinary")
		}
		log.Info().Str("folder", cfg.CloudinaryFolder).Msg("imágenes en Cloudinary")
		return store
	case cfg.LocalDir != "":
		store, err := imagestore.NewLocalDisk(cfg.LocalDir, cfg.PublicURL)
		if err != nil {
			log.Fatal().Err(err).Msg("directorio de imágenes")
		}
		log.Info().Str("dir", cfg.LocalDir).Msg("imágenes en disco local")
		return store
	default:
		log.Warn().Msg("sin almacenamiento de imágenes: las subidas fallarán")
		return imagestore.Disabled{}
	}
}
