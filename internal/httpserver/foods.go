package httpserver

import (
	"net/http"
	"strconv"

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

const msgFoodNotFound = "Food not found"

type FoodHTTP struct {
	Svc *service.MenuService
}

func (h *FoodHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "food.list")

	var f repo.FoodFilter
	if s := c.QueryParam("category"); s != "" {
		category := models.FoodCategory(s)
		if !models.ValidCategory(category) {
			return fail(l, "list_foods_error", invalidQuery("category", "The selected category is invalid."))
		}
		f.Category = &category
	}
	if s := c.QueryParam("is_active"); s != "" {
		active, err := strconv.ParseBool(s)
		if err != nil {
			return fail(l, "list_foods_error", invalidQuery("is_active", "The is_active field must be true or false."))
		}
		f.IsActive = &active
	}

	page, offset, limit := paging(c)
	total, items, err := h.Svc.List(ctx, f, offset, limit)
	if err != nil {
		return fail(l, "list_foods_error", err)
	}

	return response.Success(c, http.StatusOK, "Foods retrieved successfully", transport.Page[models.Food]{
		Items: items,
		Meta:  util.NewMeta(page, offset, limit, total),
	})
}

func (h *FoodHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "food.search")

	page, offset, limit := paging(c)
	total, items, err := h.Svc.Search(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		return fail(l, "search_foods_error", err)
	}

	l.Info("search_foods_success", "hits", total)
	return response.Success(c, http.StatusOK, "Foods retrieved successfully", transport.Page[models.Food]{
		Items: items,
		Meta:  util.NewMeta(page, offset, limit, total),
	})
}

func (h *FoodHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "food.get")

	id, err := pathID(c, "id", msgFoodNotFound)
	if err != nil {
		return fail(l, "get_food_error", err)
	}

	food, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_food_error", err)
	}
	return response.Success(c, http.StatusOK, "Food retrieved successfully", food)
}

func (h *FoodHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "food.create")

	var req transport.CreateFoodRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "create_food_error", err)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	food, err := h.Svc.Create(ctx, models.NewFood(req.Name, req.Description, *req.Price, models.FoodCategory(req.Category), active))
	if err != nil {
		return fail(l, "create_food_error", err)
	}

	l.Info("create_food_success", "food_id", food.ID)
	return response.Success(c, http.StatusCreated, "Food created successfully", food)
}

func (h *FoodHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "food.update")

	id, err := pathID(c, "id", msgFoodNotFound)
	if err != nil {
		return fail(l, "update_food_error", err)
	}

	var req transport.UpdateFoodRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "update_food_error", err)
	}

	ch := domain.FoodChanges{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    req.IsActive,
	}
	if req.Category != nil {
		category := models.FoodCategory(*req.Category)
		ch.Category = &category
	}

	food, err := h.Svc.Update(ctx, id, ch)
	if err != nil {
		return fail(l, "update_food_error", err)
	}

	l.Info("update_food_success", "food_id", food.ID)
	return response.Success(c, http.StatusOK, "Food updated successfully", food)
}

func (h *FoodHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "food.delete")

	id, err := pathID(c, "id", msgFoodNotFound)
	if err != nil {
		return fail(l, "delete_food_error", err)
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_food_error", err)
	}

	l.Info("delete_food_success", "food_id", id)
	return response.Success(c, http.StatusOK, "Food deleted successfully", nil)
}
