package httpserver

import (
	"net/http"
	"strings"
	"testing"

	"github.com/Skotchmaster/resto_pos/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	env    *testEnv
	token  string
	table  models.Table
	nasi   models.Food
	esTeh  models.Food
	order  models.Order
	prefix string
}

func openOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	env := newTestEnv(t)
	token := env.pelayan(t)

	fx := &orderFixture{
		env:   env,
		token: token,
		table: createTable(t, env, token, "T1"),
		nasi:  createFood(t, env, token, map[string]any{"name": "Nasi Goreng", "price": 25000, "category": "food"}),
		esTeh: createFood(t, env, token, map[string]any{"name": "Es Teh", "price": 5000, "category": "drink"}),
	}

	rec, out := env.do(t, http.MethodPost, "/api/orders/open", token, map[string]any{
		"table_id": fx.table.ID.String(), "order_by": "Budi",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	fx.order = decode[models.Order](t, out.Data)
	fx.prefix = "/api/orders/" + fx.order.ID.String()
	return fx
}

func (fx *orderFixture) add(t *testing.T, food models.Food, qty int) models.Order {
	t.Helper()
	rec, out := fx.env.do(t, http.MethodPost, fx.prefix+"/add-items", fx.token, map[string]any{
		"food_id": food.ID.String(), "qty": qty,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[models.Order](t, out.Data)
}

func TestOrders_FullLifecycle(t *testing.T) {
	fx := openOrderFixture(t)
	env := fx.env

	assert.Equal(t, models.OrderOpen, fx.order.Status)
	require.NotNil(t, fx.order.Table)
	assert.Equal(t, models.TableOccupied, fx.order.Table.Status)

	fx.add(t, fx.nasi, 2)
	order := fx.add(t, fx.esTeh, 2)
	require.Len(t, order.Items, 2)
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(60000)), order.TotalPrice.String())

	rec, out := env.do(t, http.MethodPost, fx.prefix+"/close", fx.token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	closed := decode[models.Order](t, out.Data)
	assert.Equal(t, models.OrderClosed, closed.Status)
	assert.Equal(t, models.PaymentPaid, closed.PaymentStatus)
	assert.Equal(t, models.DeliveryDelivered, closed.DeliveryStatus)
	assert.NotNil(t, closed.ClosedAt)

	rec, out = env.do(t, http.MethodGet, "/api/tables/"+fx.table.ID.String(), fx.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.TableAvailable, decode[models.Table](t, out.Data).Status)

	rec, out = env.do(t, http.MethodPost, fx.prefix+"/close", fx.token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "order not found or already closed", out.Message)
}

func TestOrders_OpenOnOccupiedTable(t *testing.T) {
	fx := openOrderFixture(t)

	rec, out := fx.env.do(t, http.MethodPost, "/api/orders/open", fx.token, map[string]any{
		"table_id": fx.table.ID.String(),
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "table already occupied", out.Message)
}

func TestOrders_OpenValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.pelayan(t)

	rec, out := env.do(t, http.MethodPost, "/api/orders/open", token, map[string]any{"table_id": "nope"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, string(out.Errors), "table_id")
}

func TestOrders_ItemEdits(t *testing.T) {
	fx := openOrderFixture(t)
	env := fx.env

	order := fx.add(t, fx.nasi, 1)
	order = fx.add(t, fx.nasi, 2)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].Qty)
	itemPath := fx.prefix + "/items/" + order.Items[0].ID.String()

	rec, out := env.do(t, http.MethodPatch, itemPath, fx.token, map[string]any{"qty": 1})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	order = decode[models.Order](t, out.Data)
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(25000)))

	rec, _ = env.do(t, http.MethodPatch, itemPath, fx.token, map[string]any{"qty": 0})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, out = env.do(t, http.MethodDelete, itemPath, fx.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	order = decode[models.Order](t, out.Data)
	assert.Empty(t, order.Items)
	assert.True(t, order.TotalPrice.IsZero())

	rec, out = env.do(t, http.MethodDelete, itemPath, fx.token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "order item not found", out.Message)
}

func TestOrders_InactiveFoodRejected(t *testing.T) {
	fx := openOrderFixture(t)
	env := fx.env

	rec, _ := env.do(t, http.MethodPut, "/api/foods/"+fx.esTeh.ID.String(), fx.token, map[string]any{"is_active": false})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, out := env.do(t, http.MethodPost, fx.prefix+"/add-items", fx.token, map[string]any{
		"food_id": fx.esTeh.ID.String(), "qty": 1,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "item unavailable", out.Message)
}

func TestOrders_KasirCanReadAndClose(t *testing.T) {
	fx := openOrderFixture(t)
	env := fx.env
	fx.add(t, fx.nasi, 1)
	kasir := env.kasir(t)

	rec, _ := env.do(t, http.MethodPost, fx.prefix+"/add-items", kasir, map[string]any{
		"food_id": fx.nasi.ID.String(), "qty": 1,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/api/orders?status=open", kasir, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.do(t, http.MethodPost, fx.prefix+"/close", kasir, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOrders_Receipt(t *testing.T) {
	fx := openOrderFixture(t)
	fx.add(t, fx.nasi, 2)

	rec, _ := fx.env.do(t, http.MethodGet, fx.prefix+"/receipt", fx.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, rec.Body.String(), "Nasi Goreng")
	assert.Contains(t, rec.Body.String(), "T1")
}

func TestOrders_ListFilters(t *testing.T) {
	fx := openOrderFixture(t)
	env := fx.env

	rec, _ := env.do(t, http.MethodGet, "/api/orders?status=pending", fx.token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, out := env.do(t, http.MethodGet, "/api/orders?table_id="+fx.table.ID.String(), fx.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[struct {
		Items []models.Order `json:"items"`
	}](t, out.Data)
	require.Len(t, page.Items, 1)
	assert.Equal(t, fx.order.ID, page.Items[0].ID)
}
