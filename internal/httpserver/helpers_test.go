package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Skotchmaster/resto_pos/internal/repo"
	"github.com/Skotchmaster/resto_pos/internal/service"
	"github.com/Skotchmaster/resto_pos/pkg/db"
	middleware "github.com/Skotchmaster/resto_pos/pkg/middleware/auth"
	"github.com/Skotchmaster/resto_pos/pkg/response"
	"github.com/Skotchmaster/resto_pos/pkg/validation"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

type testEnv struct {
	E    *echo.Echo
	Repo *repo.GormRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	gdb, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	r := repo.New(gdb)
	require.NoError(t, r.Migrate(ctx))

	authSvc := &service.AuthService{Repo: r, JWTSecret: testSecret, TokenTTL: time.Hour}
	_, err = authSvc.Seed(ctx, service.DefaultStaff)
	require.NoError(t, err)

	e := echo.New()
	e.Validator = validation.New()
	e.HTTPErrorHandler = response.ErrorHandler(false)

	Register(e, &Deps{
		Auth:   &AuthHTTP{Svc: authSvc},
		Tables: &TableHTTP{Svc: &service.TableService{Repo: r}},
		Foods:  &FoodHTTP{Svc: &service.MenuService{Repo: r}},
		Orders: &OrderHTTP{Svc: &service.OrderService{Repo: r, Events: service.NopPublisher{}}},
		AuthMW: middleware.NewBearerAuth(testSecret, authSvc),
	})

	return &testEnv{E: e, Repo: r}
}

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)

	var out envelope
	if bytes.HasPrefix(rec.Body.Bytes(), []byte("{")) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func (env *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	rec, out := env.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

func (env *testEnv) pelayan(t *testing.T) string {
	return env.login(t, "pelayan@email.test", "passPelayan")
}

func (env *testEnv) kasir(t *testing.T) string {
	return env.login(t, "kasir@email.test", "passKasir")
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}
