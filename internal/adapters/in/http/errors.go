package http

import (
	"errors"
	"net/http"

	"bibdelivery/internal/core/application/usecases/commands"
	"bibdelivery/internal/core/domain/model/order"
	"bibdelivery/internal/pkg/auth"
	"bibdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps application errors onto HTTP status codes.
// Unknown errors become a generic 500 so internals never leak to clients.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	case errors.Is(err, auth.ErrForbidden):
		return c.JSON(http.StatusForbidden, Error{
			Code:    http.StatusForbidden,
			Message: "Forbidden",
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return c.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Order was modified concurrently, retry the operation",
		})
	case isBadRequest(err):
		return c.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return c.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func isBadRequest(err error) bool {
	return errors.Is(err, order.ErrInvalidTransition) ||
		errors.Is(err, order.ErrInvalidCode) ||
		errors.Is(err, commands.ErrDuplicateActiveOrder) ||
		errors.Is(err, commands.ErrItemsAreRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired)
}
