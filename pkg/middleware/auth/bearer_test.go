package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Skotchmaster/resto_pos/pkg/apperr"
	"github.com/Skotchmaster/resto_pos/pkg/tokens"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

type revoked map[string]bool

func (r revoked) TokenActive(_ context.Context, jti string) (bool, error) {
	return !r[jti], nil
}

func issue(t *testing.T, role string) *tokens.Issued {
	t.Helper()
	iss, err := tokens.IssueAccessToken(uuid.NewString(), role, "Test", "t@email.test", time.Hour, secret)
	require.NoError(t, err)
	return iss
}

func run(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
	return c, err
}

func TestRequireAuth(t *testing.T) {
	m := NewBearerAuth(secret, revoked{})
	iss := issue(t, "kasir")

	c, err := run(t, m.RequireAuth, "Bearer "+iss.Token)
	require.NoError(t, err)
	assert.Equal(t, "kasir", Role(c))
	id, err := UserID(c)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
}

func TestRequireAuth_Rejects(t *testing.T) {
	iss := issue(t, "kasir")
	m := NewBearerAuth(secret, revoked{iss.JTI: true})
	other, err := tokens.IssueAccessToken(uuid.NewString(), "kasir", "", "", time.Hour, []byte("other"))
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing":       "",
		"wrong scheme":  "Basic abc",
		"garbage":       "Bearer not-a-jwt",
		"wrong secret":  "Bearer " + other.Token,
		"revoked token": "Bearer " + iss.Token,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := run(t, m.RequireAuth, header)
			require.ErrorIs(t, err, apperr.ErrUnauthenticated)
		})
	}
}

func TestRequire_Role(t *testing.T) {
	m := NewBearerAuth(secret, revoked{})
	onlyPelayan := m.Require(func(role string) error {
		if role != "pelayan" {
			return apperr.Forbidden("nope")
		}
		return nil
	})

	_, err := run(t, onlyPelayan, "Bearer "+issue(t, "pelayan").Token)
	require.NoError(t, err)

	_, err = run(t, onlyPelayan, "Bearer "+issue(t, "kasir").Token)
	require.ErrorIs(t, err, apperr.ErrForbidden)
}
