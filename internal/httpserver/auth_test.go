package httpserver

import (
	"net/http"
	"strings"
	"testing"

	"github.com/Skotchmaster/resto_pos/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_SetsBearerHeader(t *testing.T) {
	env := newTestEnv(t)

	rec, out := env.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"email":    "Pelayan@Email.test",
		"password": "passPelayan",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "success", out.Status)
	assert.Equal(t, "Login successful", out.Message)

	data := decode[transport.LoginResponse](t, out.Data)
	assert.Equal(t, "pelayan", string(data.Role))
	assert.Equal(t, "Bearer", data.TokenType)
	assert.Equal(t, "Bearer "+data.AccessToken, rec.Header().Get("Authorization"))
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestLogin_Failures(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"email": "pelayan@email.test", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = env.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"email": "nobody@email.test", "password": "x",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, out := env.do(t, http.MethodPost, "/api/login", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, string(out.Errors), "password")
}

func TestProfileAndLogout(t *testing.T) {
	env := newTestEnv(t)
	token := env.kasir(t)

	rec, out := env.do(t, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "kasir@email.test", decode[transport.UserResponse](t, out.Data).Email)

	rec, _ = env.do(t, http.MethodPost, "/api/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, out = env.do(t, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthenticated", out.Message)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/tables", "/api/foods", "/api/orders", "/api/profile"} {
		rec, _ := env.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec, _ := env.do(t, http.MethodGet, "/api/tables", "garbage."+strings.Repeat("x", 10), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnknownRoute_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec, out := env.do(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Endpoint not found", out.Message)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(t, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = env.do(t, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
