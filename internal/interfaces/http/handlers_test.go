package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancotiempo-api/internal/domain/entity"
)

func registerBody(email string) map[string]interface{} {
	return map[string]interface{}{
		"nombre": "Ana", "apellido": "Ruiz", "email": email, "password": "secreto",
		"provincia_id": 28, "ciudad_id": 100, "rol_id": 1,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Sobre de respuesta
// ──────────────────────────────────────────────────────────────────────────────

func TestEnvelope_ExitoYError(t *testing.T) {
	env := newEnv(t, "")

	res := env.do(t, http.MethodGet, "/api/getProvincias", nil, "")
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "success", res.str("status"))
	assert.Equal(t, "200", string(res.body["code"]))
	assert.Equal(t, "Provincias obtenidas correctamente", res.str("message"))
	_, err := time.Parse(time.RFC3339, res.str("time"))
	assert.NoError(t, err)
	assert.Contains(t, res.body, "data")
	assert.NotContains(t, res.body, "error")

	res = env.do(t, http.MethodGet, "/api/users/999", nil, "")
	require.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "error", res.str("status"))
	assert.Equal(t, "404", string(res.body["code"]))
	assert.Equal(t, "Usuario no encontrado", res.str("message"))
	assert.Contains(t, res.body, "error")
	assert.NotContains(t, res.body, "data")
}

func TestRutaInexistente_Sobre404(t *testing.T) {
	env := newEnv(t, "")
	res := env.do(t, http.MethodGet, "/api/no-existe", nil, "")
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "error", res.str("status"))
	assert.Equal(t, "404", string(res.body["code"]))
}

func TestRequestID(t *testing.T) {
	env := newEnv(t, "")
	res := env.do(t, http.MethodGet, "/api/getRoles", nil, "")
	assert.NotEmpty(t, res.header.Get("X-Request-ID"))

	r := env.do(t, http.MethodGet, "/api/getRoles", nil, "")
	assert.NotEqual(t, res.header.Get("X-Request-ID"), r.header.Get("X-Request-ID"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterLoginLogout(t *testing.T) {
	env := newEnv(t, "")

	res := env.do(t, http.MethodPost, "/api/register", registerBody("ana@correo.es"), "")
	require.Equal(t, http.StatusCreated, res.status, res.raw)
	assert.Equal(t, "¡Usuario registrado exitosamente!", res.str("message"))
	var reg struct {
		TokenType string `json:"token_type"`
		User      struct {
			RolID  int64 `json:"rol_id"`
			Ciudad struct {
				Nombre string `json:"nombre"`
			} `json:"ciudad"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(res.body["data"], &reg))
	assert.Equal(t, "Bearer", reg.TokenType)
	assert.Equal(t, entity.RolUsuario, reg.User.RolID, "rol_id del cliente se ignora")
	assert.Equal(t, "Móstoles", reg.User.Ciudad.Nombre)

	token := env.login(t, "ana@correo.es")

	res = env.do(t, http.MethodPost, "/api/logout", nil, token)
	require.Equal(t, http.StatusOK, res.status, res.raw)
	assert.Equal(t, "Sesión cerrada exitosamente", res.str("message"))
	assert.Equal(t, "null", string(res.body["data"]))

	res = env.do(t, http.MethodPost, "/api/logout", nil, token)
	assert.Equal(t, http.StatusUnauthorized, res.status, "el token revocado ya no sirve")
	assert.Equal(t, "No autenticado", res.str("message"))
}

func TestLogin_MensajeYCredencialesInvalidas(t *testing.T) {
	env := newEnv(t, "")
	env.seedUser(t, "a@b.com", entity.RolUsuario)

	res := env.do(t, http.MethodPost, "/api/login", map[string]string{"email": "a@b.com", "password": "secreto"}, "")
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "¡Login exitoso Ana!", res.str("message"))

	res = env.do(t, http.MethodPost, "/api/login", map[string]string{"email": "a@b.com", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, "error", res.str("status"))
	assert.Equal(t, "Credenciales inválidas", res.str("message"))

	res = env.do(t, http.MethodPost, "/api/login", map[string]string{}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, res.status)
}

func TestRegister_MultipartConImagen(t *testing.T) {
	env := newEnv(t, "")
	res := env.doMultipart(t, http.MethodPost, "/api/register", map[string]string{
		"nombre": "Ana", "apellido": "Ruiz", "email": "ana@correo.es", "password": "secreto",
		"provincia_id": "28", "ciudad_id": "100",
	}, png, "")
	require.Equal(t, http.StatusCreated, res.status, res.raw)
	assert.Equal(t, 1, env.images.uploads)
	assert.Contains(t, res.raw, `"ruta_img":"https://img.test/foto.png"`)
}

func TestRegister_ImagenNoValidaNoSube(t *testing.T) {
	env := newEnv(t, "")
	res := env.doMultipart(t, http.MethodPost, "/api/register", map[string]string{
		"nombre": "Ana", "apellido": "Ruiz", "email": "ana@correo.es", "password": "secreto",
		"provincia_id": "28", "ciudad_id": "100",
	}, []byte("texto plano"), "")
	require.Equal(t, http.StatusUnprocessableEntity, res.status)
	assert.Contains(t, res.raw, "El campo img debe ser una imagen.")
	assert.Zero(t, env.images.uploads)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de autorización
// ──────────────────────────────────────────────────────────────────────────────

func TestPolicy_RutasProtegidasPorDefecto(t *testing.T) {
	env := newEnv(t, "")
	u := env.seedUser(t, "ana@correo.es", entity.RolUsuario)

	res := env.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", u.ID), nil, "")
	assert.Equal(t, http.StatusUnauthorized, res.status)

	res = env.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", u.ID), nil, "")
	assert.Equal(t, http.StatusOK, res.status, "listar y obtener son públicas")

	token := env.login(t, "ana@correo.es")
	res = env.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", u.ID), nil, token)
	assert.Equal(t, http.StatusOK, res.status, res.raw)
	assert.Equal(t, "Usuario eliminado correctamente", res.str("message"))
}

func TestPolicy_RolNoPermitido403(t *testing.T) {
	env := newEnv(t, "POST /logout; POST /users admin")
	env.seedUser(t, "ana@correo.es", entity.RolUsuario)
	env.seedUser(t, "root@correo.es", entity.RolAdmin)
	body := map[string]interface{}{"nombre": "Luis", "apellido": "Gil", "email": "luis@correo.es", "password": "secreto", "rol_id": 2}

	res := env.do(t, http.MethodPost, "/api/users", body, env.login(t, "ana@correo.es"))
	assert.Equal(t, http.StatusForbidden, res.status)
	assert.Equal(t, "Acceso denegado", res.str("message"))

	res = env.do(t, http.MethodPost, "/api/users", body, env.login(t, "root@correo.es"))
	assert.Equal(t, http.StatusCreated, res.status, res.raw)
	assert.Equal(t, "Usuario creado correctamente", res.str("message"))

	assert.Empty(t, env.policy.Unused())
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestUsers_IDNoNumerico404(t *testing.T) {
	env := newEnv(t, "")
	res := env.do(t, http.MethodGet, "/api/users/abc", nil, "")
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "Usuario no encontrado", res.str("message"))
}

func TestUsers_ChangePasswordIgual400(t *testing.T) {
	env := newEnv(t, "")
	u := env.seedUser(t, "ana@correo.es", entity.RolUsuario)
	token := env.login(t, "ana@correo.es")
	path := fmt.Sprintf("/api/users/%d/password", u.ID)

	res := env.do(t, http.MethodPut, path, map[string]string{"password": "secreto"}, token)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "La nueva contraseña no puede ser igual a la actual", res.str("message"))

	res = env.do(t, http.MethodPut, path, map[string]string{"password": "otra-clave"}, token)
	assert.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "Contraseña cambiada correctamente", res.str("message"))
}

func TestUsers_DeleteConDependientes409(t *testing.T) {
	env := newEnv(t, "DELETE /nada")
	u := env.seedUser(t, "ana@correo.es", entity.RolUsuario)
	res := env.do(t, http.MethodPost, "/api/servicio", map[string]interface{}{
		"usuario_id": u.ID, "categoria_id": 1, "tipo": "oferta", "titulo": "Guitarra", "descripcion": "Clases",
		"provincia_id": 28, "ciudad_id": 100, "horas_estimadas": 1,
	}, "")
	require.Equal(t, http.StatusCreated, res.status, res.raw)

	res = env.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", u.ID), nil, "")
	assert.Equal(t, http.StatusConflict, res.status)
	assert.Equal(t, []string{"DELETE /nada"}, env.policy.Unused())
}

func TestUsers_ExtractoPDF(t *testing.T) {
	env := newEnv(t, "")
	u := env.seedUser(t, "ana@correo.es", entity.RolUsuario)
	token := env.login(t, "ana@correo.es")

	res := env.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d/extracto", u.ID), nil, token)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "application/pdf", res.header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(res.raw, "%PDF"))

	res = env.do(t, http.MethodGet, "/api/users/999/extracto", nil, token)
	assert.Equal(t, http.StatusNotFound, res.status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recursos
// ──────────────────────────────────────────────────────────────────────────────

func TestServicio_TipoFueraDeEnum422(t *testing.T) {
	env := newEnv(t, "")
	u := env.seedUser(t, "ana@correo.es", entity.RolUsuario)

	res := env.do(t, http.MethodPost, "/api/servicio", map[string]interface{}{
		"usuario_id": u.ID, "categoria_id": 1, "tipo": "intercambio", "titulo": "Guitarra", "descripcion": "Clases",
		"provincia_id": 28, "ciudad_id": 100, "horas_estimadas": 1,
	}, "")
	require.Equal(t, http.StatusUnprocessableEntity, res.status)
	assert.Equal(t, "Error de validación", res.str("message"))
	var errs map[string][]string
	require.NoError(t, json.Unmarshal(res.body["error"], &errs))
	assert.Equal(t, []string{"El campo tipo seleccionado es inválido."}, errs["tipo"])
}

func TestTransaccion_TipoJSONIncorrecto422(t *testing.T) {
	env := newEnv(t, "")
	res := env.do(t, http.MethodPost, "/api/transaccion", []byte(`{"horas":"dos"}`), "")
	require.Equal(t, http.StatusUnprocessableEntity, res.status)
	assert.Contains(t, res.raw, "El campo horas debe ser un número entero.")
}

func TestCuerpoMalformado400(t *testing.T) {
	env := newEnv(t, "")
	res := env.do(t, http.MethodPost, "/api/mensaje", []byte(`{"mensaje":`), "")
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Cuerpo de la petición inválido", res.str("message"))
}

func TestTransacciones_PorUsuarioEnAmbosPapeles(t *testing.T) {
	env := newEnv(t, "")
	ana := env.seedUser(t, "ana@correo.es", entity.RolUsuario)
	luis := env.seedUser(t, "luis@correo.es", entity.RolUsuario)
	res := env.do(t, http.MethodPost, "/api/servicio", map[string]interface{}{
		"usuario_id": luis.ID, "categoria_id": 1, "tipo": "oferta", "titulo": "Guitarra", "descripcion": "Clases",
		"provincia_id": 28, "ciudad_id": 100, "horas_estimadas": 1,
	}, "")
	require.Equal(t, http.StatusCreated, res.status, res.raw)
	var serv struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(res.body["data"], &serv))

	for _, pair := range [][2]int64{{ana.ID, luis.ID}, {luis.ID, ana.ID}} {
		res = env.do(t, http.MethodPost, "/api/transaccion", map[string]interface{}{
			"servicio_id": serv.ID, "usuario_solicitante_id": pair[0], "usuario_ofertante_id": pair[1], "horas": 2,
		}, "")
		require.Equal(t, http.StatusCreated, res.status, res.raw)
		assert.Equal(t, "Transacción creada correctamente", res.str("message"))
	}

	res = env.do(t, http.MethodGet, fmt.Sprintf("/api/transacciones/%d", ana.ID), nil, "")
	require.Equal(t, http.StatusOK, res.status)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(res.body["data"], &list))
	assert.Len(t, list, 2)

	res = env.do(t, http.MethodGet, "/api/transacciones/999", nil, "")
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "Usuario no encontrado", res.str("message"))
}

func TestMensaje_UpdateParcial(t *testing.T) {
	env := newEnv(t, "")
	ana := env.seedUser(t, "ana@correo.es", entity.RolUsuario)
	luis := env.seedUser(t, "luis@correo.es", entity.RolUsuario)
	res := env.do(t, http.MethodPost, "/api/servicio", map[string]interface{}{
		"usuario_id": luis.ID, "categoria_id": 1, "tipo": "demanda", "titulo": "Pintar", "descripcion": "Salón",
		"provincia_id": 28, "ciudad_id": 100, "horas_estimadas": 3,
	}, "")
	require.Equal(t, http.StatusCreated, res.status, res.raw)
	var serv struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(res.body["data"], &serv))

	res = env.do(t, http.MethodPost, "/api/mensaje", map[string]interface{}{
		"emisor_id": ana.ID, "receptor_id": luis.ID, "servicio_id": serv.ID, "mensaje": "Hola",
	}, "")
	require.Equal(t, http.StatusCreated, res.status, res.raw)
	var m struct {
		ID      int64  `json:"id"`
		Mensaje string `json:"mensaje"`
		Leido   bool   `json:"leido"`
	}
	require.NoError(t, json.Unmarshal(res.body["data"], &m))
	assert.False(t, m.Leido)

	res = env.do(t, http.MethodPut, fmt.Sprintf("/api/mensaje/%d", m.ID), []byte(`{"leido":true,"mensaje":null}`), "")
	require.Equal(t, http.StatusOK, res.status, res.raw)
	require.NoError(t, json.Unmarshal(res.body["data"], &m))
	assert.True(t, m.Leido)
	assert.Equal(t, "Hola", m.Mensaje, "null equivale a ausente")
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogos
// ──────────────────────────────────────────────────────────────────────────────

func TestPoblaciones_Filtro(t *testing.T) {
	env := newEnv(t, "")

	res := env.do(t, http.MethodGet, "/api/getPoblaciones?provincia_id=5", nil, "")
	require.Equal(t, http.StatusOK, res.status)
	var pobs []struct {
		Nombre    string `json:"nombre"`
		Provincia struct {
			Nombre string `json:"nombre"`
		} `json:"provincia"`
	}
	require.NoError(t, json.Unmarshal(res.body["data"], &pobs))
	require.Len(t, pobs, 1)
	assert.Equal(t, "Arévalo", pobs[0].Nombre)
	assert.Equal(t, "Ávila", pobs[0].Provincia.Nombre)

	res = env.do(t, http.MethodGet, "/api/getPoblaciones?provincia_id=abc", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, res.status)
	assert.Contains(t, res.raw, "provincia_id")
}

func TestLogout_ExigeTokenAunqueLaTablaNoLoListe(t *testing.T) {
	env := newEnv(t, "POST /users")
	env.seedUser(t, "ana@correo.es", entity.RolUsuario)
	token := env.login(t, "ana@correo.es")

	res := env.do(t, http.MethodPost, "/api/logout", nil, "")
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, "No autenticado", res.str("message"))

	res = env.do(t, http.MethodPost, "/api/logout", nil, token)
	require.Equal(t, http.StatusOK, res.status, res.raw)

	res = env.do(t, http.MethodPost, "/api/logout", nil, token)
	assert.Equal(t, http.StatusUnauthorized, res.status, "el token ya está revocado")
}

// ──────────────────────────────────────────────────────────────────────────────
// No encontrado y validación de updates
// ──────────────────────────────────────────────────────────────────────────────

func TestRecursos_NoEncontrado404(t *testing.T) {
	env := newEnv(t, "")
	env.seedUser(t, "admin@correo.es", entity.RolAdmin)
	token := env.login(t, "admin@correo.es")

	for path, msg := range map[string]string{
		"/api/users/999":       "Usuario no encontrado",
		"/api/servicio/999":    "Servicio no encontrado",
		"/api/transaccion/999": "Transacción no encontrada",
		"/api/valoracion/999":  "Valoración no encontrada",
		"/api/mensaje/999":     "Mensaje no encontrado",
	} {
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
			res := env.do(t, method, path, map[string]interface{}{}, token)
			require.Equal(t, http.StatusNotFound, res.status, method+" "+path+": "+res.raw)
			assert.Equal(t, "error", res.str("status"))
			assert.Equal(t, "404", string(res.body["code"]))
			assert.Equal(t, msg, res.str("message"), method+" "+path)
		}
	}
}

func TestUpdate_ClaveForaneaCeroYTextoVacio422(t *testing.T) {
	env := newEnv(t, "")
	env.seedUser(t, "admin@correo.es", entity.RolAdmin)
	token := env.login(t, "admin@correo.es")
	u := env.seedUser(t, "ana@correo.es", entity.RolUsuario)

	res := env.do(t, http.MethodPost, "/api/servicio", map[string]interface{}{
		"usuario_id": u.ID, "categoria_id": 1, "tipo": "oferta", "titulo": "Guitarra", "descripcion": "Clases",
		"provincia_id": 28, "ciudad_id": 100, "horas_estimadas": 1,
	}, "")
	require.Equal(t, http.StatusCreated, res.status, res.raw)
	var serv struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(res.body["data"], &serv))
	path := fmt.Sprintf("/api/servicio/%d", serv.ID)

	res = env.do(t, http.MethodPut, path, map[string]interface{}{"categoria_id": 0, "titulo": ""}, "")
	require.Equal(t, http.StatusUnprocessableEntity, res.status, res.raw)
	var errs map[string][]string
	require.NoError(t, json.Unmarshal(res.body["error"], &errs))
	assert.Equal(t, []string{"El campo categoria_id seleccionado no existe."}, errs["categoria_id"])
	assert.Equal(t, []string{"El campo titulo debe tener un valor."}, errs["titulo"])

	res = env.do(t, http.MethodPost, "/api/users", map[string]interface{}{
		"nombre": "Eva", "apellido": "Gil", "email": "eva@correo.es", "password": "secreto",
		"rol_id": 3, "provincia_id": 0,
	}, token)
	require.Equal(t, http.StatusUnprocessableEntity, res.status, res.raw)
	errs = nil
	require.NoError(t, json.Unmarshal(res.body["error"], &errs))
	assert.Equal(t, []string{"El campo provincia_id seleccionado no existe."}, errs["provincia_id"])
}
