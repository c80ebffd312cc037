package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/resto_pos/internal/domain"
	"github.com/Skotchmaster/resto_pos/internal/models"
	"github.com/Skotchmaster/resto_pos/internal/repo"
	"github.com/Skotchmaster/resto_pos/internal/service"
	"github.com/Skotchmaster/resto_pos/internal/transport"
	"github.com/Skotchmaster/resto_pos/internal/util"
	"github.com/Skotchmaster/resto_pos/pkg/logging"
	"github.com/Skotchmaster/resto_pos/pkg/response"
	"github.com/labstack/echo/v4"
)

const msgTableNotFound = "Table not found"

type TableHTTP struct {
	Svc *service.TableService
}

func (h *TableHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "table.list")

	var f repo.TableFilter
	if s := c.QueryParam("status"); s != "" {
		status := models.TableStatus(s)
		switch status {
		case models.TableAvailable, models.TableOccupied, models.TableReserved, models.TableInactive:
			f.Status = &status
		default:
			return fail(l, "list_tables_error", invalidQuery("status", "The selected status is invalid."))
		}
	}

	page, offset, limit := paging(c)
	total, items, err := h.Svc.List(ctx, f, offset, limit)
	if err != nil {
		return fail(l, "list_tables_error", err)
	}

	return response.Success(c, http.StatusOK, "Tables retrieved successfully", transport.Page[models.Table]{
		Items: items,
		Meta:  util.NewMeta(page, offset, limit, total),
	})
}

func (h *TableHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "table.get")

	id, err := pathID(c, "id", msgTableNotFound)
	if err != nil {
		return fail(l, "get_table_error", err)
	}

	table, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_table_error", err)
	}
	return response.Success(c, http.StatusOK, "Table retrieved successfully", table)
}

func (h *TableHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "table.create")

	var req transport.CreateTableRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "create_table_error", err)
	}

	capacity := 0
	if req.Capacity != nil {
		capacity = *req.Capacity
	}

	table, err := h.Svc.Create(ctx, req.Code, capacity, models.TableStatus(req.Status))
	if err != nil {
		return fail(l, "create_table_error", err)
	}

	l.Info("create_table_success", "table_id", table.ID)
	return response.Success(c, http.StatusCreated, "Table created successfully", table)
}

func (h *TableHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "table.update")

	id, err := pathID(c, "id", msgTableNotFound)
	if err != nil {
		return fail(l, "update_table_error", err)
	}

	var req transport.UpdateTableRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "update_table_error", err)
	}

	status := models.TableStatus(req.Status)
	table, err := h.Svc.Update(ctx, id, domain.TableChanges{
		Code:     req.Code,
		Capacity: req.Capacity,
		Status:   &status,
	})
	if err != nil {
		return fail(l, "update_table_error", err)
	}

	l.Info("update_table_success", "table_id", table.ID)
	return response.Success(c, http.StatusOK, "Table updated successfully", table)
}

func (h *TableHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "table.delete")

	id, err := pathID(c, "id", msgTableNotFound)
	if err != nil {
		return fail(l, "delete_table_error", err)
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_table_error", err)
	}

	l.Info("delete_table_success", "table_id", id)
	return response.Success(c, http.StatusOK, "Table deleted successfully", nil)
}

func (h *TableHTTP) Reserve(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "table.reserve")

	id, err := pathID(c, "id", msgTableNotFound)
	if err != nil {
		return fail(l, "reserve_table_error", err)
	}

	var req transport.ReserveTableRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "reserve_table_error", err)
	}

	table, err := h.Svc.Reserve(ctx, id, req.ReservedBy)
	if err != nil {
		return fail(l, "reserve_table_error", err)
	}

	l.Info("reserve_table_success", "table_id", id)
	return response.Success(c, http.StatusOK, "Table reserved successfully", table)
}

func (h *TableHTTP) CancelReservation(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "table.cancel_reservation")

	id, err := pathID(c, "id", msgTableNotFound)
	if err != nil {
		return fail(l, "cancel_reservation_error", err)
	}

	table, err := h.Svc.CancelReservation(ctx, id)
	if err != nil {
		return fail(l, "cancel_reservation_error", err)
	}

	l.Info("cancel_reservation_success", "table_id", id)
	return response.Success(c, http.StatusOK, "Reservation cancelled successfully", table)
}
