package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/staynstray/internal/logger"
	"github.com/iliyamo/staynstray/internal/middleware"
	"github.com/iliyamo/staynstray/internal/model"
	"github.com/iliyamo/staynstray/internal/service"
)

// maxBookingBody caps the request body kept as booking details.
const maxBookingBody = 64 << 10

// BookingHandler serves /api/bookings and /api/my-bookings.  Both routes
// sit behind middleware.JWTAuth.
type BookingHandler struct {
	Bookings *service.BookingService
	Log      *slog.Logger
}

func NewBookingHandler(b *service.BookingService, log *slog.Logger) *BookingHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &BookingHandler{Bookings: b, Log: log}
}

type bookingResp struct {
	Message string         `json:"message"`
	Booking *model.Booking `json:"booking"`
}

// Create records a booking for the caller from the raw JSON body.
func (h *BookingHandler) Create(c echo.Context) error {
	caller, ok := middleware.Identity(c)
	if !ok {
		return respondError(c, h.Log, service.ErrMissingCredential)
	}

	raw, err := io.ReadAll(http.MaxBytesReader(c.Response(), c.Request().Body, maxBookingBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return message(c, http.StatusRequestEntityTooLarge, "Request body too large.")
		}
		return message(c, http.StatusBadRequest, "Invalid request body.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	b, err := h.Bookings.Create(ctx, caller, raw)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, bookingResp{Message: "Booking successful!", Booking: b})
}

// Mine lists the caller's bookings, oldest first.
func (h *BookingHandler) Mine(c echo.Context) error {
	caller, ok := middleware.Identity(c)
	if !ok {
		return respondError(c, h.Log, service.ErrMissingCredential)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	list, err := h.Bookings.ListForUser(ctx, caller.UserID)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, list)
}
