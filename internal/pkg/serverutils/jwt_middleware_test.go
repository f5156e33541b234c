package serverutils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJwtTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", JwtMiddleware, func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"user_id": ctx.Locals("user_id")})
	})
	return app
}

func signToken(t *testing.T, method jwt.SigningMethod, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, jwt.MapClaims{"user_id": "u1"}).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func request(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestJwtMiddlewareDisabledWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	app := newJwtTestApp()

	resp := request(t, app, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestJwtMiddlewareValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newJwtTestApp()

	token := signToken(t, jwt.SigningMethodHS256, "test-secret")
	resp := request(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestJwtMiddlewareRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newJwtTestApp()

	resp := request(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJwtMiddlewareRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newJwtTestApp()

	token := signToken(t, jwt.SigningMethodHS256, "other-secret")
	resp := request(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJwtMiddlewareRejectsUnexpectedAlgorithm(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newJwtTestApp()

	// Same secret, different HMAC variant: the method pin must reject it.
	token := signToken(t, jwt.SigningMethodHS512, "test-secret")
	resp := request(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
