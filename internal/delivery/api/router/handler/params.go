package handler

import (
	"strconv"
	"time"

	"funntour/internal/delivery/api/response"
	domainerrors "funntour/internal/domain/errors"
	"funntour/internal/domain/repository"

	"github.com/labstack/echo/v4"
)

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		return 0, domainerrors.ErrValidationFailed.WithDetails("path parameter '" + name + "' must be a positive integer")
	}

	return uint(id), nil
}

// pageQuery reads the skip and limit query parameters. Missing values fall back to the defaults.
func pageQuery(c echo.Context) (repository.Page, error) {
	skip, err := intQuery(c, "skip")
	if err != nil {
		return repository.Page{}, err
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		return repository.Page{}, err
	}

	return repository.NewPage(skip, limit), nil
}

func intQuery(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, domainerrors.ErrValidationFailed.WithDetails("query parameter '" + name + "' must be a non-negative integer")
	}

	return value, nil
}

// bindAndValidate decodes the body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("request body is not valid JSON for this route")
	}

	return c.Validate(req)
}

// parseDate reads an optional YYYY-MM-DD value.
func parseDate(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}

	parsed, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("field '" + field + "' must be a date formatted as " + dateLayout)
	}

	return &parsed, nil
}

// pageOK renders one page of items along with the window that produced it.
func pageOK[E any, R any](c echo.Context, page repository.Page, items []*E, mapper func(*E) *R) error {
	return response.Page(c, mapSlice(items, mapper), response.PageInfo{
		Skip:  page.Skip,
		Limit: page.Limit,
		Count: len(items),
	})
}
