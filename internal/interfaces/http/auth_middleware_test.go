package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancotiempo-api/internal/application/auth"
	"github.com/jhoicas/bancotiempo-api/internal/domain"
	"github.com/jhoicas/bancotiempo-api/internal/domain/entity"
	apphttp "github.com/jhoicas/bancotiempo-api/internal/interfaces/http"
	"github.com/jhoicas/bancotiempo-api/pkg/config"
	pkgjwt "github.com/jhoicas/bancotiempo-api/pkg/jwt"
	"github.com/jhoicas/bancotiempo-api/pkg/logger"
)

// jwtAuthenticator verifica tokens solo por firma; sin lista de revocación.
type jwtAuthenticator struct{ err error }

func (a jwtAuthenticator) Authenticate(_ context.Context, bearer string) (*auth.Identity, error) {
	if a.err != nil {
		return nil, a.err
	}
	claims, err := pkgjwt.Parse(testJWTSecret, strings.TrimPrefix(bearer, "Bearer "))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	uid, _ := strconv.ParseInt(claims.UserID, 10, 64)
	rol, _ := strconv.ParseInt(claims.Role, 10, 64)
	return &auth.Identity{UserID: uid, RolID: rol, TokenID: claims.ID}, nil
}

// buildTestApp construye una aplicación Fiber mínima con AuthMiddleware y RequireRole
// delante de un handler que devuelve 200 si pasa los middlewares.
func buildTestApp(authn apphttp.Authenticator, allowedRoles ...int64) *fiber.App {
	app := apphttp.NewApp(apphttp.ServerConfig{Name: "test"}, logger.Nop())
	app.Get("/protected",
		apphttp.AuthMiddleware(authn),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			id := apphttp.GetIdentity(c)
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "user_id": id.UserID, "rol_id": id.RolID})
		},
	)
	return app
}

func tokenForRole(t *testing.T, rol int64) string {
	t.Helper()
	tok, _, err := pkgjwt.Generate(testJWTSecret, "7", strconv.FormatInt(rol, 10), "bancotiempo-test", 60)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(jwtAuthenticator{}, entity.RolAdmin)
	resp := doRequest(t, app, tokenForRole(t, entity.RolAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, float64(7), body["user_id"])
	assert.Equal(t, float64(entity.RolAdmin), body["rol_id"])
}

func TestRequireRole_ProfesionalAccedeRutaMultiRol(t *testing.T) {
	app := buildTestApp(jwtAuthenticator{}, entity.RolAdmin, entity.RolProfesional)
	resp := doRequest(t, app, tokenForRole(t, entity.RolProfesional))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_UsuarioBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(jwtAuthenticator{}, entity.RolAdmin)
	resp := doRequest(t, app, tokenForRole(t, entity.RolUsuario))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"code":403`)
	assert.Contains(t, string(body), "Acceso denegado")
}

func TestRequireRole_SinRolesCualquierAutenticado(t *testing.T) {
	app := buildTestApp(jwtAuthenticator{})
	resp := doRequest(t, app, tokenForRole(t, entity.RolUsuario))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(jwtAuthenticator{}, entity.RolAdmin)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "No autenticado")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(jwtAuthenticator{}, entity.RolAdmin)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FalloDeInfraestructura_Retorna500Redactado(t *testing.T) {
	app := buildTestApp(jwtAuthenticator{err: errors.New("dial tcp 10.0.0.5:6379: connection refused")})
	resp := doRequest(t, app, tokenForRole(t, entity.RolUsuario))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Error interno del servidor")
	assert.NotContains(t, string(body), "10.0.0.5", "el detalle de infraestructura no llega al cliente")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Policy
// ──────────────────────────────────────────────────────────────────────────────

func TestNewPolicy_RolesPorNombreOID(t *testing.T) {
	rules, err := config.ParseRouteRules("POST /users admin,2; DELETE /users/:id")
	require.NoError(t, err)
	p, err := apphttp.NewPolicy(rules)
	require.NoError(t, err)

	assert.True(t, p.Protected("POST", "/users"))
	assert.True(t, p.Protected("delete", "/users/:id"))
	assert.False(t, p.Protected("GET", "/users"))
	assert.Equal(t, []string{"DELETE /users/:id", "POST /users"}, p.Unused())
}

func TestPolicy_NilNoProtegeNada(t *testing.T) {
	var p *apphttp.Policy
	assert.False(t, p.Protected("POST", "/logout"))
	assert.Empty(t, p.Unused())
}

func TestNewPolicy_RolDesconocido(t *testing.T) {
	rules, err := config.ParseRouteRules("POST /users superusuario")
	require.NoError(t, err)
	_, err = apphttp.NewPolicy(rules)
	assert.Error(t, err)
}
