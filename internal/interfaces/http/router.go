package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bancotiempo-api/internal/application/auth"
	"github.com/jhoicas/bancotiempo-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	StatementUC   *usecase.StatementUseCase
	ServicioUC    *usecase.ServicioUseCase
	TransaccionUC *usecase.TransaccionUseCase
	ValoracionUC  *usecase.ValoracionUseCase
	MensajeUC     *usecase.MensajeUseCase
	CatalogUC     *usecase.CatalogUseCase
	Policy        *Policy
}

// Router registra las rutas de la API bajo /api. Qué rutas exigen token (y con qué roles)
// lo decide deps.Policy; el resto son públicas.
func Router(app *fiber.App, deps RouterDeps) {
	rt := &routes{
		group:  app.Group("/api"),
		policy: deps.Policy,
		authn:  AuthMiddleware(deps.AuthUC),
	}

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	rt.post("/register", authHandler.Register)
	rt.post("/login", authHandler.Login)
	// /logout exige token aunque la tabla no lo liste.
	if deps.Policy.Protected(fiber.MethodPost, "/logout") {
		rt.post("/logout", authHandler.Logout)
	} else {
		rt.group.Post("/logout", rt.authn, authHandler.Logout)
	}

	// Usuarios
	userHandler := NewUserHandler(deps.UserUC, deps.StatementUC)
	rt.get("/users", userHandler.List)
	rt.post("/users", userHandler.Create)
	rt.get("/users/:id", userHandler.GetByID)
	rt.put("/users/:id", userHandler.Update)
	rt.delete("/users/:id", userHandler.Delete)
	rt.put("/users/:id/password", userHandler.ChangePassword)
	rt.get("/users/:id/extracto", userHandler.Statement)

	// Servicios
	servicioHandler := NewServicioHandler(deps.ServicioUC)
	rt.get("/servicios", servicioHandler.List)
	rt.get("/servicios/:usuario_id", servicioHandler.ListByUsuario)
	rt.get("/servicio/:id", servicioHandler.GetByID)
	rt.post("/servicio", servicioHandler.Create)
	rt.put("/servicio/:id", servicioHandler.Update)
	rt.delete("/servicio/:id", servicioHandler.Delete)

	// Transacciones
	transaccionHandler := NewTransaccionHandler(deps.TransaccionUC)
	rt.get("/transacciones", transaccionHandler.List)
	rt.get("/transacciones/:usuario_id", transaccionHandler.ListByUsuario)
	rt.get("/transaccion/:id", transaccionHandler.GetByID)
	rt.post("/transaccion", transaccionHandler.Create)
	rt.put("/transaccion/:id", transaccionHandler.Update)
	rt.delete("/transaccion/:id", transaccionHandler.Delete)

	// Valoraciones
	valoracionHandler := NewValoracionHandler(deps.ValoracionUC)
	rt.get("/valoraciones", valoracionHandler.List)
	rt.get("/valoraciones/:usuario_id", valoracionHandler.ListByUsuario)
	rt.get("/valoracion/:id", valoracionHandler.GetByID)
	rt.post("/valoracion", valoracionHandler.Create)
	rt.put("/valoracion/:id", valoracionHandler.Update)
	rt.delete("/valoracion/:id", valoracionHandler.Delete)

	// Mensajes
	mensajeHandler := NewMensajeHandler(deps.MensajeUC)
	rt.get("/mensajes", mensajeHandler.List)
	rt.get("/mensajes/:usuario_id", mensajeHandler.ListByUsuario)
	rt.get("/mensaje/:id", mensajeHandler.GetByID)
	rt.post("/mensaje", mensajeHandler.Create)
	rt.put("/mensaje/:id", mensajeHandler.Update)
	rt.delete("/mensaje/:id", mensajeHandler.Delete)

	// Catálogos
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	rt.get("/getProvincias", catalogHandler.Provincias)
	rt.get("/getPoblaciones", catalogHandler.Poblaciones)
	rt.get("/getCategorias", catalogHandler.Categorias)
	rt.get("/getRoles", catalogHandler.Roles)
	rt.get("/getTables", catalogHandler.Tables)
}
