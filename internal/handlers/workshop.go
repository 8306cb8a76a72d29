package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftlocal/workshop_hub/internal/events"
	"github.com/craftlocal/workshop_hub/internal/logging"
	"github.com/craftlocal/workshop_hub/internal/schema"
	"github.com/craftlocal/workshop_hub/internal/storage"
	"github.com/craftlocal/workshop_hub/internal/util"
)

type WorkshopHandler struct {
	Store    storage.Store
	Producer *events.Producer
}

func (h *WorkshopHandler) GetWorkshops(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "workshop.list")

	ws, err := h.Store.GetWorkshops(ctx)
	if err != nil {
		l.Error("list_workshops_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch workshops")
	}
	return c.JSON(http.StatusOK, ws)
}

func (h *WorkshopHandler) GetWorkshop(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "workshop.get")

	id := util.ParseIntDefault(c.Param("id"), 0)
	w, err := h.Store.GetWorkshopByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			l.Warn("get_workshop_failed", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Workshop not found")
		}
		l.Error("get_workshop_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch workshop")
	}
	return c.JSON(http.StatusOK, w)
}

func (h *WorkshopHandler) GetWorkshopsByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "workshop.by_category")

	categoryID := util.ParseIntDefault(c.Param("categoryId"), 0)
	ws, err := h.Store.GetWorkshopsByCategory(ctx, categoryID)
	if err != nil {
		l.Error("list_workshops_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch workshops by category")
	}
	return c.JSON(http.StatusOK, ws)
}

func (h *WorkshopHandler) GetWorkshopsByAvailability(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "workshop.by_availability")

	hasAvailability := c.Param("available") == "true"
	ws, err := h.Store.GetWorkshopsByAvailability(ctx, hasAvailability)
	if err != nil {
		l.Error("list_workshops_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch workshops by availability")
	}
	return c.JSON(http.StatusOK, ws)
}

func (h *WorkshopHandler) CreateWorkshop(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "workshop.create")

	raw, verr := bindObject(c)
	if verr != nil {
		l.Warn("create_workshop_failed", "status", 400, "error", verr)
		return validationResponse(c, "Invalid workshop data", verr)
	}

	ins, err := schema.ParseInsertWorkshop(raw)
	if err != nil {
		var v *schema.ValidationError
		if errors.As(err, &v) {
			l.Warn("create_workshop_failed", "status", 400, "error", err)
			return validationResponse(c, "Invalid workshop data", v)
		}
		l.Error("create_workshop_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create workshop")
	}

	w, err := h.Store.CreateWorkshop(ctx, ins)
	if err != nil {
		l.Error("create_workshop_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create workshop")
	}

	publish(c, h.Producer, events.TopicWorkshops, fmt.Sprint(w.ID), map[string]any{
		"type":        "workshop_created",
		"workshop_id": w.ID,
		"title":       w.Title,
	})

	l.Info("create_workshop_success", "id", w.ID)
	return c.JSON(http.StatusCreated, w)
}

func (h *WorkshopHandler) UpdateAvailability(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "workshop.update_availability")

	id := util.ParseIntDefault(c.Param("id"), 0)

	raw, verr := bindObject(c)
	if verr != nil {
		l.Warn("update_availability_failed", "status", 400, "error", verr)
		return validationResponse(c, "Invalid availability data", verr)
	}
	upd, err := schema.ParseAvailabilityUpdate(raw)
	if err != nil {
		var v *schema.ValidationError
		if errors.As(err, &v) {
			l.Warn("update_availability_failed", "status", 400, "error", err)
			return validationResponse(c, "Invalid availability data", v)
		}
		l.Error("update_availability_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update workshop availability")
	}

	w, err := h.Store.UpdateWorkshopAvailability(ctx, id, upd.AvailableSpots)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			l.Warn("update_availability_failed", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Workshop not found")
		}
		l.Error("update_availability_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update workshop availability")
	}

	publish(c, h.Producer, events.TopicWorkshops, fmt.Sprint(w.ID), map[string]any{
		"type":            "workshop_availability_updated",
		"workshop_id":     w.ID,
		"available_spots": w.AvailableSpots,
	})

	l.Info("update_availability_success", "id", w.ID, "available_spots", w.AvailableSpots)
	return c.JSON(http.StatusOK, w)
}
