package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancotiempo-api/internal/application/auth"
	"github.com/jhoicas/bancotiempo-api/internal/application/dto"
	"github.com/jhoicas/bancotiempo-api/internal/application/ports"
	"github.com/jhoicas/bancotiempo-api/internal/application/usecase"
	"github.com/jhoicas/bancotiempo-api/internal/application/validation"
	"github.com/jhoicas/bancotiempo-api/internal/domain"
	"github.com/jhoicas/bancotiempo-api/internal/infrastructure/imagestore"
	"github.com/jhoicas/bancotiempo-api/internal/infrastructure/memory"
	"github.com/jhoicas/bancotiempo-api/internal/infrastructure/memory/memtest"
	pkgjwt "github.com/jhoicas/bancotiempo-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

type brokenDenylist struct{}

func (brokenDenylist) Revoke(context.Context, string, time.Time) error { return errors.New("redis caído") }
func (brokenDenylist) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis caído")
}

func newAuth(t *testing.T, denylist ports.TokenDenylist) *auth.AuthUseCase {
	t.Helper()
	st := memtest.NewStore()
	st.AddProvincia(28, "Madrid")
	st.AddPoblacion(100, "Móstoles", 28)
	rel := usecase.NewRelations(st.Users(), st.Servicios(), st.Transacciones(), st.Catalog())
	val := validation.New(st.Lookup())
	users := usecase.NewUserUseCase(st.Users(), rel, val, imagestore.Disabled{})
	return auth.NewAuthUseCase(users, st.Users(), denylist, val, auth.JWTConfig{
		Secret: testSecret, ExpMinutes: 60, Issuer: "bancotiempo-test",
	})
}

func register(t *testing.T, uc *auth.AuthUseCase) *dto.AuthResponse {
	t.Helper()
	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		Nombre: "Ana", Apellido: "Ruiz", Email: "ana@correo.es", Password: "secreto",
		ProvinciaID: 28, CiudadID: 100,
	})
	require.NoError(t, err)
	return resp
}

// ─────────────────────────────────────────────────────────────────────────────
// Register / Login
// ─────────────────────────────────────────────────────────────────────────────

func TestRegister_EmiteToken(t *testing.T) {
	uc := newAuth(t, memory.NewTokenDenylist())
	resp := register(t, uc)

	assert.Equal(t, auth.TokenType, resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Móstoles", resp.User.Ciudad.Nombre)
	exp, err := time.Parse(time.RFC3339, resp.ExpiresAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	id, err := uc.Authenticate(context.Background(), "Bearer "+resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, id.UserID)
	assert.Equal(t, int64(3), id.RolID)
}

func TestLogin(t *testing.T) {
	uc := newAuth(t, memory.NewTokenDenylist())
	reg := register(t, uc)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ANA@correo.es", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, resp.User.ID)
	assert.NotEqual(t, reg.AccessToken, resp.AccessToken)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@correo.es", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@correo.es", Password: "secreto"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "no-email"})
	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

// ─────────────────────────────────────────────────────────────────────────────
// Authenticate / Logout
// ─────────────────────────────────────────────────────────────────────────────

func TestLogout_RevocaSoloEseToken(t *testing.T) {
	denylist := memory.NewTokenDenylist()
	uc := newAuth(t, denylist)
	reg := register(t, uc)
	login, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@correo.es", Password: "secreto"})
	require.NoError(t, err)

	id, err := uc.Authenticate(context.Background(), reg.AccessToken)
	require.NoError(t, err)
	require.NoError(t, uc.Logout(context.Background(), id))
	assert.Equal(t, 1, denylist.Len())

	_, err = uc.Authenticate(context.Background(), "Bearer "+reg.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Authenticate(context.Background(), "Bearer "+login.AccessToken)
	assert.NoError(t, err, "el resto de tokens del usuario siguen válidos")
}

func TestAuthenticate_Invalidos(t *testing.T) {
	uc := newAuth(t, memory.NewTokenDenylist())
	expired, _, err := pkgjwt.Generate(testSecret, "1", "3", "", -1)
	require.NoError(t, err)
	otherKey, _, err := pkgjwt.Generate("otro-secret", "1", "3", "", 5)
	require.NoError(t, err)
	badUser, _, err := pkgjwt.Generate(testSecret, "abc", "3", "", 5)
	require.NoError(t, err)

	for name, bearer := range map[string]string{
		"vacío":           "",
		"solo prefijo":    "Bearer ",
		"basura":          "Bearer a.b.c",
		"expirado":        "Bearer " + expired,
		"otra clave":      "Bearer " + otherKey,
		"user_id no num.": "Bearer " + badUser,
	} {
		_, err := uc.Authenticate(context.Background(), bearer)
		assert.ErrorIs(t, err, domain.ErrUnauthorized, name)
	}
}

func TestAuthenticate_FalloDeDenylistNoEs401(t *testing.T) {
	uc := newAuth(t, brokenDenylist{})
	tok, _, err := pkgjwt.Generate(testSecret, "1", "3", "", 5)
	require.NoError(t, err)

	_, err = uc.Authenticate(context.Background(), "Bearer "+tok)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogout_SinIdentidad(t *testing.T) {
	uc := newAuth(t, memory.NewTokenDenylist())
	assert.ErrorIs(t, uc.Logout(context.Background(), nil), domain.ErrUnauthorized)
}
