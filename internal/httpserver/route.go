package httpserver

import (
	"context"
	"net/http"

	"github.com/Skotchmaster/resto_pos/internal/domain"
	"github.com/Skotchmaster/resto_pos/internal/models"
	"github.com/Skotchmaster/resto_pos/pkg/metrics"
	middleware "github.com/Skotchmaster/resto_pos/pkg/middleware/auth"
	"github.com/labstack/echo/v4"
)

type Deps struct {
	Auth   *AuthHTTP
	Tables *TableHTTP
	Foods  *FoodHTTP
	Orders *OrderHTTP

	AuthMW *middleware.BearerAuth
	// Ready reports whether the service can take traffic; nil means always ready.
	Ready func(ctx context.Context) error
	// LoginLimiter throttles POST /api/login; nil disables it.
	LoginLimiter echo.MiddlewareFunc
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	can := func(a domain.Action) echo.MiddlewareFunc {
		return d.AuthMW.Require(func(role string) error {
			return domain.Authorize(models.Role(role), a)
		})
	}

	var loginMW []echo.MiddlewareFunc
	if d.LoginLimiter != nil {
		loginMW = append(loginMW, d.LoginLimiter)
	}
	e.POST("/api/login", d.Auth.Login, loginMW...)
	e.GET("/api/profile", d.Auth.Profile, d.AuthMW.RequireAuth)
	e.POST("/api/logout", d.Auth.Logout, d.AuthMW.RequireAuth)

	// Middleware is attached per route: echo groups with middleware add catch-all routes
	// that would turn unknown paths into 401 instead of 404.
	e.GET("/api/tables", d.Tables.List, can(domain.ActionTablesList))
	e.POST("/api/tables", d.Tables.Create, can(domain.ActionTablesManage))
	e.GET("/api/tables/:id", d.Tables.Get, can(domain.ActionTablesManage))
	e.PUT("/api/tables/:id", d.Tables.Update, can(domain.ActionTablesManage))
	e.DELETE("/api/tables/:id", d.Tables.Delete, can(domain.ActionTablesManage))
	e.POST("/api/tables/:id/reservation", d.Tables.Reserve, can(domain.ActionTablesManage))
	e.DELETE("/api/tables/:id/reservation", d.Tables.CancelReservation, can(domain.ActionTablesManage))

	e.GET("/api/foods", d.Foods.List, can(domain.ActionMenuRead))
	e.GET("/api/foods/search", d.Foods.Search, can(domain.ActionMenuRead))
	e.POST("/api/foods", d.Foods.Create, can(domain.ActionMenuManage))
	e.GET("/api/foods/:id", d.Foods.Get, can(domain.ActionMenuRead))
	e.PUT("/api/foods/:id", d.Foods.Update, can(domain.ActionMenuManage))
	e.DELETE("/api/foods/:id", d.Foods.Delete, can(domain.ActionMenuManage))

	e.GET("/api/orders", d.Orders.List, can(domain.ActionOrdersRead))
	e.POST("/api/orders/open", d.Orders.Open, can(domain.ActionOrdersOpen))
	e.GET("/api/orders/:id", d.Orders.Get, can(domain.ActionOrdersRead))
	e.GET("/api/orders/:id/receipt", d.Orders.Receipt, can(domain.ActionOrdersRead))
	e.POST("/api/orders/:id/add-items", d.Orders.AddItem, can(domain.ActionOrdersEdit))
	e.PATCH("/api/orders/:id/items/:item_id", d.Orders.UpdateItem, can(domain.ActionOrdersEdit))
	e.DELETE("/api/orders/:id/items/:item_id", d.Orders.RemoveItem, can(domain.ActionOrdersEdit))
	e.POST("/api/orders/:id/close", d.Orders.Close, can(domain.ActionOrdersClose))
}
