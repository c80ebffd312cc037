package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/resto_pos/internal/models"
	"github.com/Skotchmaster/resto_pos/internal/repo"
	"github.com/Skotchmaster/resto_pos/internal/service"
	"github.com/Skotchmaster/resto_pos/internal/transport"
	"github.com/Skotchmaster/resto_pos/internal/util"
	"github.com/Skotchmaster/resto_pos/pkg/logging"
	"github.com/Skotchmaster/resto_pos/pkg/response"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	msgOrderNotFound = "Order not found"
	msgItemNotFound  = "order item not found"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	var f repo.OrderFilter
	if s := c.QueryParam("status"); s != "" {
		status := models.OrderStatus(s)
		if status != models.OrderOpen && status != models.OrderClosed {
			return fail(l, "list_orders_error", invalidQuery("status", "The selected status is invalid."))
		}
		f.Status = &status
	}
	if s := c.QueryParam("table_id"); s != "" {
		tableID, err := uuid.Parse(s)
		if err != nil {
			return fail(l, "list_orders_error", invalidQuery("table_id", "The table_id field must be a valid UUID."))
		}
		f.TableID = &tableID
	}

	page, offset, limit := paging(c)
	total, items, err := h.Svc.List(ctx, f, offset, limit)
	if err != nil {
		return fail(l, "list_orders_error", err)
	}

	return response.Success(c, http.StatusOK, "Orders retrieved successfully", transport.Page[models.Order]{
		Items: items,
		Meta:  util.NewMeta(page, offset, limit, total),
	})
}

func (h *OrderHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	id, err := pathID(c, "id", msgOrderNotFound)
	if err != nil {
		return fail(l, "get_order_error", err)
	}

	order, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_order_error", err)
	}
	return response.Success(c, http.StatusOK, "Order retrieved successfully", order)
}

func (h *OrderHTTP) Open(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.open")

	var req transport.OpenOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "open_order_error", err)
	}
	tableID, err := uuid.Parse(req.TableID)
	if err != nil {
		return fail(l, "open_order_error", invalidQuery("table_id", "The table_id field must be a valid UUID."))
	}

	order, err := h.Svc.Open(ctx, tableID, req.OrderBy)
	if err != nil {
		return fail(l, "open_order_error", err)
	}

	l.Info("open_order_success", "order_id", order.ID, "table_id", tableID)
	return response.Success(c, http.StatusCreated, "Order opened successfully", order)
}

func (h *OrderHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.add_item")

	id, err := pathID(c, "id", msgOrderNotFound)
	if err != nil {
		return fail(l, "add_item_error", err)
	}

	var req transport.AddItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "add_item_error", err)
	}
	foodID, err := uuid.Parse(req.FoodID)
	if err != nil {
		return fail(l, "add_item_error", invalidQuery("food_id", "The food_id field must be a valid UUID."))
	}

	order, err := h.Svc.AddItem(ctx, id, foodID, req.Qty)
	if err != nil {
		return fail(l, "add_item_error", err)
	}

	l.Info("add_item_success", "order_id", id, "food_id", foodID, "qty", req.Qty)
	return response.Success(c, http.StatusOK, "Item added successfully", order)
}

func (h *OrderHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_item")

	id, err := pathID(c, "id", msgOrderNotFound)
	if err != nil {
		return fail(l, "update_item_error", err)
	}
	itemID, err := pathID(c, "item_id", msgItemNotFound)
	if err != nil {
		return fail(l, "update_item_error", err)
	}

	var req transport.UpdateItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "update_item_error", err)
	}

	order, err := h.Svc.UpdateItemQty(ctx, id, itemID, req.Qty)
	if err != nil {
		return fail(l, "update_item_error", err)
	}

	l.Info("update_item_success", "order_id", id, "item_id", itemID, "qty", req.Qty)
	return response.Success(c, http.StatusOK, "Item updated successfully", order)
}

func (h *OrderHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.remove_item")

	id, err := pathID(c, "id", msgOrderNotFound)
	if err != nil {
		return fail(l, "remove_item_error", err)
	}
	itemID, err := pathID(c, "item_id", msgItemNotFound)
	if err != nil {
		return fail(l, "remove_item_error", err)
	}

	order, err := h.Svc.RemoveItem(ctx, id, itemID)
	if err != nil {
		return fail(l, "remove_item_error", err)
	}

	l.Info("remove_item_success", "order_id", id, "item_id", itemID)
	return response.Success(c, http.StatusOK, "Item removed successfully", order)
}

func (h *OrderHTTP) Close(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.close")

	id, err := pathID(c, "id", msgOrderNotFound)
	if err != nil {
		return fail(l, "close_order_error", err)
	}

	order, err := h.Svc.Close(ctx, id)
	if err != nil {
		return fail(l, "close_order_error", err)
	}

	l.Info("close_order_success", "order_id", id, "total", order.TotalPrice)
	return response.Success(c, http.StatusOK, "Order closed successfully", order)
}

func (h *OrderHTTP) Receipt(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.receipt")

	id, err := pathID(c, "id", msgOrderNotFound)
	if err != nil {
		return fail(l, "receipt_error", err)
	}

	html, err := h.Svc.Receipt(ctx, id)
	if err != nil {
		return fail(l, "receipt_error", err)
	}
	return c.HTMLBlob(http.StatusOK, html)
}
