package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/staynstray/internal/catalog"
	"github.com/iliyamo/staynstray/internal/logger"
)

// CatalogHandler serves the public inventory lists.  Nothing here needs
// authentication.
type CatalogHandler struct {
	Inventory catalog.Inventory
	Log       *slog.Logger
}

func NewCatalogHandler(inv catalog.Inventory, log *slog.Logger) *CatalogHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &CatalogHandler{Inventory: inv, Log: log}
}

func (h *CatalogHandler) Hotels(c echo.Context) error {
	items, err := h.Inventory.ListHotels(c.Request().Context())
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) Flights(c echo.Context) error {
	items, err := h.Inventory.ListFlights(c.Request().Context())
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) Trains(c echo.Context) error {
	items, err := h.Inventory.ListTrains(c.Request().Context())
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, items)
}
