package httpserver

import (
	"log/slog"

	"github.com/Skotchmaster/resto_pos/internal/util"
	"github.com/Skotchmaster/resto_pos/pkg/apperr"
	"github.com/Skotchmaster/resto_pos/pkg/logging"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperr.Validation("Invalid request body")
	}
	return c.Validate(req)
}

// pathID parses a uuid path parameter. A malformed id cannot name a record, so it is a 404.
func pathID(c echo.Context, name, notFound string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperr.NotFound(notFound)
	}
	return id, nil
}

func fail(l *slog.Logger, event string, err error) error {
	logging.Failure(l, event, apperr.StatusCode(err), err)
	return err
}

func paging(c echo.Context) (page, offset, limit int) {
	page = util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit = util.Calculate(page, size)
	return page, offset, limit
}

func invalidQuery(field, msg string) error {
	return apperr.ValidationWithDetails("Validation failed", map[string][]string{field: {msg}})
}
