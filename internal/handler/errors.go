package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/staynstray/internal/logger"
	"github.com/iliyamo/staynstray/internal/service"
)

// dbTimeout bounds the storage work of a single request.
const dbTimeout = 5 * time.Second

const msgServerError = "Server error."

func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"message": msg})
}

// respondError maps a service error to its status.  Client errors carry
// the error text; anything unrecognised is logged and answered with a
// generic 500.
func respondError(c echo.Context, log *slog.Logger, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrUnsupportedBookingType):
		return message(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEmailExists):
		return message(c, http.StatusConflict, "Email is already in use.")
	case errors.Is(err, service.ErrUserNotFound):
		return message(c, http.StatusNotFound, "User not found.")
	case errors.Is(err, service.ErrItemNotFound):
		return message(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidPassword):
		return message(c, http.StatusUnauthorized, "Invalid credentials.")
	case errors.Is(err, service.ErrMissingCredential):
		return message(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, service.ErrInvalidCredential):
		return message(c, http.StatusForbidden, "Forbidden")
	}
	log.Error("request failed",
		slog.String("method", c.Request().Method),
		slog.String("path", c.Path()),
		logger.Err(err),
	)
	return message(c, http.StatusInternalServerError, msgServerError)
}
