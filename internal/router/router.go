// Package router builds the echo instance and registers the API routes.
package router

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/staynstray/internal/handler"
	"github.com/iliyamo/staynstray/internal/middleware"
)

// New returns an echo instance with the common middleware installed:
// request ids, panic recovery, request logging, a body limit and CORS for
// corsOrigin ("*" when empty).
func New(log *slog.Logger, corsOrigin string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()

	origins := []string{"*"}
	if corsOrigin != "" {
		origins = []string{corsOrigin}
	}

	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.BodyLimit("1M"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	return e
}

// RegisterRoutes registers the health endpoints.  /readyz is only added
// when db is non-nil.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health)
	if db != nil {
		e.GET("/readyz", handler.Ready(db))
	}
}

// RegisterAuth registers /api/register and /api/login behind limiter.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	e.POST("/api/register", a.Register, limiter)
	e.POST("/api/login", a.Login, limiter)
}

// RegisterCatalog registers the public inventory lists behind cache.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, cache echo.MiddlewareFunc) {
	e.GET("/api/hotels", h.Hotels, cache)
	e.GET("/api/flights", h.Flights, cache)
	e.GET("/api/trains", h.Trains, cache)
}

// RegisterBookings registers the booking routes; both require a valid
// access token.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, v middleware.TokenVerifier) {
	auth := middleware.JWTAuth(v)
	e.POST("/api/bookings", h.Create, auth)
	e.GET("/api/my-bookings", h.Mine, auth)
}
