package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cajaplus-api/internal/domain/entity"
	apphttp "github.com/jhoicas/cajaplus-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/cajaplus-api/pkg/jwt"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = 7
	testEmail     = "cajero@cajaplus.test"
	testIssuer    = "cajaplus-test"
	testExpMin    = 60
)

// sessionEcho responde con lo que los middlewares dejaron en c.Locals.
func sessionEcho(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"user_id": apphttp.GetUserID(c),
		"email":   apphttp.GetEmail(c),
		"role":    apphttp.GetRole(c),
	})
}

type session struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// guardedApp monta /caja con JWT + rol, /abierto sin middlewares y /sin-auth solo con rol.
func guardedApp(roles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/caja", apphttp.AuthMiddleware(testJWTSecret), apphttp.RequireRole(roles...), sessionEcho)
	app.Get("/abierto", sessionEcho)
	app.Get("/sin-auth", apphttp.RequireRole(roles...), sessionEcho)
	return app
}

func bearer(t *testing.T, userID int, email, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, email, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func get(t *testing.T, app *fiber.App, path, authHeader string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

// ── RequireRole ───────────────────────────────────────────────────────────────

func TestRequireRole_Matriz(t *testing.T) {
	cases := []struct {
		name    string
		allowed []string
		header  func(t *testing.T) string
		status  int
		code    string
	}{
		{
			name:    "admin en ruta de admin",
			allowed: []string{entity.RoleAdmin},
			header:  func(t *testing.T) string { return bearer(t, testUserID, testEmail, entity.RoleAdmin) },
			status:  http.StatusOK,
		},
		{
			name:    "cajero en ruta admin o cajero",
			allowed: []string{entity.RoleAdmin, entity.RoleCajero},
			header:  func(t *testing.T) string { return bearer(t, testUserID, testEmail, entity.RoleCajero) },
			status:  http.StatusOK,
		},
		{
			name:    "cajero no borra movimientos",
			allowed: []string{entity.RoleAdmin},
			header:  func(t *testing.T) string { return bearer(t, testUserID, testEmail, entity.RoleCajero) },
			status:  http.StatusForbidden,
			code:    "FORBIDDEN",
		},
		{
			name:    "rol desconocido",
			allowed: []string{entity.RoleCajero},
			header:  func(t *testing.T) string { return bearer(t, testUserID, testEmail, "invitado") },
			status:  http.StatusForbidden,
			code:    "FORBIDDEN",
		},
		{
			name:    "token sin rol",
			allowed: []string{entity.RoleAdmin},
			header:  func(t *testing.T) string { return bearer(t, testUserID, testEmail, "") },
			status:  http.StatusUnauthorized,
			code:    "MISSING_ROLE",
		},
		{
			name:    "sin header",
			allowed: []string{entity.RoleAdmin},
			header:  func(*testing.T) string { return "" },
			status:  http.StatusUnauthorized,
			code:    "MISSING_TOKEN",
		},
		{
			name:    "esquema distinto de Bearer",
			allowed: []string{entity.RoleAdmin},
			header:  func(*testing.T) string { return "Token abc" },
			status:  http.StatusUnauthorized,
			code:    "INVALID_TOKEN",
		},
		{
			name:    "token malformado",
			allowed: []string{entity.RoleAdmin},
			header:  func(*testing.T) string { return "Bearer token.invalido.aqui" },
			status:  http.StatusUnauthorized,
			code:    "INVALID_TOKEN",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := get(t, guardedApp(tc.allowed...), "/caja", tc.header(t))
			assert.Equal(t, tc.status, status, string(body))
			if tc.code != "" {
				assert.Contains(t, string(body), tc.code)
			}
		})
	}
}

func TestRequireRole_SinAuthMiddlewareRetornaMissingRole(t *testing.T) {
	status, body := get(t, guardedApp(entity.RoleAdmin), "/sin-auth", bearer(t, testUserID, testEmail, entity.RoleAdmin))

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// ── Locals ────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_CargaLocalsDeSesion(t *testing.T) {
	status, body := get(t, guardedApp(entity.RoleCajero), "/caja", bearer(t, 42, "luis@cajaplus.test", entity.RoleCajero))
	require.Equal(t, http.StatusOK, status, string(body))

	var got session
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, session{UserID: 42, Email: "luis@cajaplus.test", Role: entity.RoleCajero}, got)
}

func TestGetters_SinSesionDevuelvenCero(t *testing.T) {
	status, body := get(t, guardedApp(entity.RoleAdmin), "/abierto", "")
	require.Equal(t, http.StatusOK, status)

	var got session
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Zero(t, got)
}

func TestGetters_LeenClavesLocales(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalUserID, 3)
		c.Locals(apphttp.LocalEmail, "ana@cajaplus.test")
		c.Locals(apphttp.LocalRole, entity.RoleAdmin)
		return c.Next()
	}, sessionEcho)

	status, body := get(t, app, "/", "")
	require.Equal(t, http.StatusOK, status)
	var got session
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, session{UserID: 3, Email: "ana@cajaplus.test", Role: entity.RoleAdmin}, got)
}

// ── /api/usuarios/me ──────────────────────────────────────────────────────────

func TestMe_TokenDeUsuarioInexistenteRetorna404(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.do(t, http.MethodGet, "/api/usuarios/me", nil, "Authorization", bearer(t, 999, "nadie@cajaplus.test", entity.RoleAdmin))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode, string(body))
}

func TestMe_TokenFirmadoConOtroSecretoRetorna401(t *testing.T) {
	env := newTestEnv(t)
	tok, err := pkgjwt.Generate("otro-secreto", testUserID, testEmail, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	resp, body := env.do(t, http.MethodGet, "/api/usuarios/me", nil, "Authorization", "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}
