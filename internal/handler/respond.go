package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"github.com/khairunnisaa/palmcode-api/internal/dto"
	"github.com/khairunnisaa/palmcode-api/internal/service"
	"github.com/khairunnisaa/palmcode-api/internal/validation"
	"github.com/labstack/echo/v4"
)

func sendResponse(c echo.Context, data any, message string) error {
	return c.JSON(http.StatusOK, dto.Response{Success: true, Data: data, Message: message})
}

func sendPaginated[T, R any](c echo.Context, page *service.Page[T], convert func(T) R, message string) error {
	items := make([]R, len(page.Items))
	for i, item := range page.Items {
		items[i] = convert(item)
	}
	return sendResponse(c, dto.NewPage(items, len(items), page.Page, page.PerPage, page.Total), message)
}

func sendError(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, dto.ErrorResponse{Success: false, Message: message, Data: data})
}

func sendMessage(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

// serviceError converts a service failure into the HTTP error rendered by
// the central error handler.
func serviceError(err error) error {
	var verr *service.ValidationError
	var nf *service.NotFoundError
	switch {
	case errors.As(err, &verr):
		return validationError(verr.Errors)
	case errors.As(err, &nf):
		return echo.NewHTTPError(http.StatusNotFound, nf.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func validationError(errs map[string][]string) error {
	return echo.NewHTTPError(http.StatusUnprocessableEntity, dto.ErrorResponse{
		Success: false,
		Message: "Validation Error.",
		Data:    errs,
	})
}

// bindError reports a field of the wrong JSON type as a validation failure
// on that field. Bodies that cannot be decoded at all stay a 400.
func bindError(err error) error {
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" && ute.Type != nil {
		kind := ute.Type.Kind()
		tag := "string"
		switch kind {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			tag = "integer"
		case reflect.Bool:
			tag = "boolean"
		}
		return validationError(map[string][]string{
			ute.Field: {validation.Message(ute.Field, tag, "", kind)},
		})
	}
	return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
}

// parseID reads the :id path parameter. A malformed id is reported the same
// way as an unknown one.
func parseID(c echo.Context, model string) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("No query results for model [%s] %s", model, raw))
	}
	return uint(id), nil
}

func listQuery(c echo.Context) dto.ListQuery {
	return dto.ListQuery{
		PerPage:       queryInt(c, "perPage"),
		Page:          queryInt(c, "page"),
		SortBy:        c.QueryParam("sortBy"),
		SortDirection: c.QueryParam("sortDirection"),
	}
}

// queryInt returns 0 for a missing or malformed value; callers apply defaults.
func queryInt(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}
