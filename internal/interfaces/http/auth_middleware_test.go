package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caisse-api/internal/domain/entity"
	httpx "github.com/jhoicas/Caisse-api/internal/interfaces/http"
	"github.com/jhoicas/Caisse-api/pkg/jwt"
)

const testSecret = "secret-de-prueba"

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp levanta una app Fiber mínima con una ruta protegida por auth y
// otra restringida a backoffice (admin/manager).
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()

	protected := app.Group("/", httpx.AuthMiddleware(testSecret))
	protected.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": httpx.GetUserID(c),
			"role":    httpx.GetRole(c),
		})
	})

	backoffice := protected.Group("/admin", httpx.RequireRole(entity.RoleAdmin, entity.RoleManager))
	backoffice.Get("/panel", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

// tokenForRole genera un token válido para el rol dado.
func tokenForRole(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, userID, role, "caisse-api-test", 15)
	require.NoError(t, err)
	return token
}

// doRequest ejecuta una petición contra la app con el header Authorization dado.
func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Sin header Authorization la petición se rechaza con 401.
func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildTestApp(t)

	resp := doRequest(t, app, "/whoami", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// Un header mal formado (sin esquema Bearer) se rechaza con 401.
func TestAuthMiddleware_HeaderMalFormado(t *testing.T) {
	app := buildTestApp(t)

	for _, header := range []string{
		"no-es-bearer",
		"Basic dXNlcjpwYXNz",
		"Bearer ",
	} {
		resp := doRequest(t, app, "/whoami", header)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "header: %q", header)
	}
}

// Un token firmado con otro secreto se rechaza con 401.
func TestAuthMiddleware_FirmaInvalida(t *testing.T) {
	app := buildTestApp(t)

	otro, err := jwt.Generate("otro-secreto", "u-1", entity.RoleCashier, "caisse-api-test", 15)
	require.NoError(t, err)

	resp := doRequest(t, app, "/whoami", "Bearer "+otro)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// Un token expirado se rechaza con 401.
func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := buildTestApp(t)

	expired, err := jwt.Generate(testSecret, "u-1", entity.RoleCashier, "caisse-api-test", -5)
	require.NoError(t, err)

	resp := doRequest(t, app, "/whoami", "Bearer "+expired)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// Con token válido el middleware expone user_id y role en el contexto.
func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := buildTestApp(t)
	token := tokenForRole(t, "u-42", entity.RoleCashier)

	resp := doRequest(t, app, "/whoami", "Bearer "+token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "u-42", body["user_id"])
	assert.Equal(t, entity.RoleCashier, body["role"])
}

// RequireRole deja pasar los roles listados y bloquea el resto con 403.
func TestRequireRole_Backoffice(t *testing.T) {
	app := buildTestApp(t)

	cases := []struct {
		role string
		want int
	}{
		{entity.RoleAdmin, fiber.StatusOK},
		{entity.RoleManager, fiber.StatusOK},
		{entity.RoleCashier, fiber.StatusForbidden},
	}
	for _, tc := range cases {
		token := tokenForRole(t, "u-1", tc.role)
		resp := doRequest(t, app, "/admin/panel", "Bearer "+token)
		assert.Equal(t, tc.want, resp.StatusCode, "rol: %s", tc.role)
	}
}
