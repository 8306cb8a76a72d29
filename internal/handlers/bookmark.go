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

type BookmarkHandler struct {
	Store    storage.Store
	Producer *events.Producer
}

// CreateBookmark checks for an existing pair first; the check and the insert
// are two separate store calls, so two racing requests can still both insert.
func (h *BookmarkHandler) CreateBookmark(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bookmark.create")

	raw, verr := bindObject(c)
	if verr != nil {
		l.Warn("create_bookmark_failed", "status", 400, "error", verr)
		return validationResponse(c, "Invalid bookmark data", verr)
	}
	ins, err := schema.ParseInsertBookmark(raw)
	if err != nil {
		var v *schema.ValidationError
		if errors.As(err, &v) {
			l.Warn("create_bookmark_failed", "status", 400, "error", err)
			return validationResponse(c, "Invalid bookmark data", v)
		}
		l.Error("create_bookmark_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to bookmark workshop")
	}

	exists, err := h.Store.IsWorkshopBookmarked(ctx, ins.UserID, ins.WorkshopID)
	if err != nil {
		l.Error("create_bookmark_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to bookmark workshop")
	}
	if exists {
		existing, err := h.Store.GetBookmarksByUser(ctx, ins.UserID)
		if err != nil {
			l.Error("create_bookmark_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to bookmark workshop")
		}
		for _, bm := range existing {
			if bm.WorkshopID == ins.WorkshopID {
				l.Info("create_bookmark_noop", "id", bm.ID)
				return c.JSON(http.StatusOK, bm)
			}
		}
	}

	bm, err := h.Store.CreateBookmark(ctx, ins)
	if err != nil {
		l.Error("create_bookmark_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to bookmark workshop")
	}

	publish(c, h.Producer, events.TopicBookmarks, fmt.Sprint(bm.UserID), map[string]any{
		"type":        "bookmark_created",
		"bookmark_id": bm.ID,
		"user_id":     bm.UserID,
		"workshop_id": bm.WorkshopID,
	})

	l.Info("create_bookmark_success", "id", bm.ID)
	return c.JSON(http.StatusCreated, bm)
}

func (h *BookmarkHandler) DeleteBookmark(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bookmark.delete")

	userID := util.ParseIntDefault(c.Param("userId"), 0)
	workshopID := util.ParseIntDefault(c.Param("workshopId"), 0)

	if err := h.Store.DeleteBookmark(ctx, userID, workshopID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			l.Warn("delete_bookmark_failed", "status", 404, "user_id", userID, "workshop_id", workshopID)
			return echo.NewHTTPError(http.StatusNotFound, "Bookmark not found")
		}
		l.Error("delete_bookmark_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to remove bookmark")
	}

	publish(c, h.Producer, events.TopicBookmarks, fmt.Sprint(userID), map[string]any{
		"type":        "bookmark_deleted",
		"user_id":     userID,
		"workshop_id": workshopID,
	})

	l.Info("delete_bookmark_success", "user_id", userID, "workshop_id", workshopID)
	return c.NoContent(http.StatusNoContent)
}

func (h *BookmarkHandler) IsWorkshopBookmarked(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bookmark.check")

	userID := util.ParseIntDefault(c.Param("userId"), 0)
	workshopID := util.ParseIntDefault(c.Param("workshopId"), 0)

	isBookmarked, err := h.Store.IsWorkshopBookmarked(ctx, userID, workshopID)
	if err != nil {
		l.Error("check_bookmark_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check bookmark status")
	}
	return c.JSON(http.StatusOK, map[string]bool{"isBookmarked": isBookmarked})
}

func (h *BookmarkHandler) GetBookmarkedWorkshops(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bookmark.workshops")

	userID := util.ParseIntDefault(c.Param("userId"), 0)
	ws, err := h.Store.GetBookmarkedWorkshopsByUser(ctx, userID)
	if err != nil {
		l.Error("list_bookmarked_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch bookmarked workshops")
	}
	return c.JSON(http.StatusOK, ws)
}
