package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftlocal/workshop_hub/internal/logging"
	"github.com/craftlocal/workshop_hub/internal/storage"
)

type CategoryHandler struct {
	Store storage.Store
}

func (h *CategoryHandler) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.list")

	cats, err := h.Store.GetCategories(ctx)
	if err != nil {
		l.Error("list_categories_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch categories")
	}
	return c.JSON(http.StatusOK, cats)
}
