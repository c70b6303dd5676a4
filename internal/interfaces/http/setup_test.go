package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancotiempo-api/internal/application/auth"
	"github.com/jhoicas/bancotiempo-api/internal/application/ports"
	"github.com/jhoicas/bancotiempo-api/internal/application/usecase"
	"github.com/jhoicas/bancotiempo-api/internal/application/validation"
	"github.com/jhoicas/bancotiempo-api/internal/domain/entity"
	"github.com/jhoicas/bancotiempo-api/internal/infrastructure/memory"
	"github.com/jhoicas/bancotiempo-api/internal/infrastructure/memory/memtest"
	infrapdf "github.com/jhoicas/bancotiempo-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/bancotiempo-api/internal/interfaces/http"
	"github.com/jhoicas/bancotiempo-api/pkg/config"
	"github.com/jhoicas/bancotiempo-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testJWTSecret = "test-secret-key-for-unit-tests"

var png = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

type fakeImages struct{ uploads int }

func (f *fakeImages) Upload(_ context.Context, img ports.Image) (string, error) {
	f.uploads++
	return "https://img.test/" + img.Filename, nil
}

type testEnv struct {
	app    *fiber.App
	store  *memtest.Store
	images *fakeImages
	policy *apphttp.Policy
}

// newEnv monta la API completa sobre el almacén en memoria con la tabla de rutas dada
// (config.DefaultProtectedRoutes si rules está vacío).
func newEnv(t *testing.T, rules string) *testEnv {
	t.Helper()
	if rules == "" {
		rules = config.DefaultProtectedRoutes
	}
	parsed, err := config.ParseRouteRules(rules)
	require.NoError(t, err)
	policy, err := apphttp.NewPolicy(parsed)
	require.NoError(t, err)

	st := memtest.NewStore()
	st.AddProvincia(28, "Madrid")
	st.AddProvincia(5, "Ávila")
	st.AddPoblacion(100, "Móstoles", 28)
	st.AddPoblacion(200, "Arévalo", 5)
	st.AddCategoria(1, "Hogar")

	images := &fakeImages{}
	rel := usecase.NewRelations(st.Users(), st.Servicios(), st.Transacciones(), st.Catalog())
	val := validation.New(st.Lookup())
	users := usecase.NewUserUseCase(st.Users(), rel, val, images)

	app := apphttp.NewApp(apphttp.ServerConfig{Name: "bancotiempo-test"}, logger.Nop())
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(users, st.Users(), memory.NewTokenDenylist(), val, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: 60, Issuer: "bancotiempo-test",
		}),
		UserUC:        users,
		StatementUC:   usecase.NewStatementUseCase(st.Users(), st.Transacciones(), st.Servicios(), infrapdf.NewStatementPDF("Banco de tiempo")),
		ServicioUC:    usecase.NewServicioUseCase(st.Servicios(), st.Users(), rel, val, images),
		TransaccionUC: usecase.NewTransaccionUseCase(st.Transacciones(), st.Users(), rel, val),
		ValoracionUC:  usecase.NewValoracionUseCase(st.Valoraciones(), st.Users(), rel, val),
		MensajeUC:     usecase.NewMensajeUseCase(st.Mensajes(), st.Users(), rel, val),
		CatalogUC:     usecase.NewCatalogUseCase(st.Catalog(), rel),
		Policy:        policy,
	})
	return &testEnv{app: app, store: st, images: images, policy: policy}
}

// seedUser inserta un usuario con contraseña "secreto" y el rol indicado.
func (e *testEnv) seedUser(t *testing.T, email string, rol int64) *entity.User {
	t.Helper()
	hash, err := usecase.HashPassword("secreto")
	require.NoError(t, err)
	u := &entity.User{
		Nombre: "Ana", Apellido: "Ruiz", Email: email, PasswordHash: hash,
		RolID: rol, HorasSaldo: entity.DefaultHorasSaldo,
	}
	require.NoError(t, e.store.Users().Create(context.Background(), u))
	return u
}

// login devuelve "Bearer <token>" para un usuario sembrado.
func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	res := e.do(t, http.MethodPost, "/api/login", map[string]string{"email": email, "password": "secreto"}, "")
	require.Equal(t, http.StatusOK, res.status, res.raw)
	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(res.body["data"], &data))
	return "Bearer " + data.AccessToken
}

type result struct {
	status int
	header http.Header
	body   map[string]json.RawMessage
	raw    string
}

// str decodifica un campo string del sobre.
func (r result) str(key string) string {
	var s string
	_ = json.Unmarshal(r.body[key], &s)
	return s
}

// do envía body como JSON (o crudo si es []byte) y decodifica el sobre.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) result {
	t.Helper()
	var reader io.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
		contentType = fiber.MIMEApplicationJSON
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
		contentType = fiber.MIMEApplicationJSON
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}
	return e.send(t, req, token)
}

// doMultipart envía fields y, si img no es nil, el fichero img.
func (e *testEnv) doMultipart(t *testing.T, method, path string, fields map[string]string, img []byte, token string) result {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if img != nil {
		fw, err := w.CreateFormFile("img", "foto.png")
		require.NoError(t, err)
		_, err = fw.Write(img)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return e.send(t, req, token)
}

func (e *testEnv) send(t *testing.T, req *http.Request, token string) result {
	t.Helper()
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	res := result{status: resp.StatusCode, header: resp.Header, raw: string(raw)}
	if resp.Header.Get(fiber.HeaderContentType) == fiber.MIMEApplicationJSON ||
		bytes.HasPrefix(raw, []byte("{")) {
		require.NoError(t, json.Unmarshal(raw, &res.body), string(raw))
	}
	return res
}
