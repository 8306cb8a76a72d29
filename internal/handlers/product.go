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

type ProductHandler struct {
	Store    storage.Store
	Producer *events.Producer
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	ps, err := h.Store.GetProducts(ctx)
	if err != nil {
		l.Error("list_products_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch products")
	}
	return c.JSON(http.StatusOK, ps)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id := util.ParseIntDefault(c.Param("id"), 0)
	p, err := h.Store.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			l.Warn("get_product_failed", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		l.Error("get_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch product")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) GetProductByCode(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_by_code")

	code := c.Param("code")
	p, err := h.Store.GetProductByCode(ctx, code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			l.Warn("get_product_failed", "status", 404, "code", code)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		l.Error("get_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch product by code")
	}
	return c.JSON(http.StatusOK, p)
}

// CreateProduct does not reject duplicate codes; two products may share one.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	raw, verr := bindObject(c)
	if verr != nil {
		l.Warn("create_product_failed", "status", 400, "error", verr)
		return validationResponse(c, "Invalid product data", verr)
	}
	ins, err := schema.ParseInsertProduct(raw)
	if err != nil {
		var v *schema.ValidationError
		if errors.As(err, &v) {
			l.Warn("create_product_failed", "status", 400, "error", err)
			return validationResponse(c, "Invalid product data", v)
		}
		l.Error("create_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create product")
	}

	p, err := h.Store.CreateProduct(ctx, ins)
	if err != nil {
		l.Error("create_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create product")
	}

	publish(c, h.Producer, events.TopicProducts, fmt.Sprint(p.ID), map[string]any{
		"type":       "product_created",
		"product_id": p.ID,
		"code":       p.Code,
	})

	l.Info("create_product_success", "id", p.ID)
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch")

	id := util.ParseIntDefault(c.Param("id"), 0)

	raw, verr := bindObject(c)
	if verr != nil {
		l.Warn("patch_product_failed", "status", 400, "error", verr)
		return validationResponse(c, "Invalid product data", verr)
	}
	patch, err := schema.ParseProductPatch(raw)
	if err != nil {
		var v *schema.ValidationError
		if errors.As(err, &v) {
			l.Warn("patch_product_failed", "status", 400, "error", err)
			return validationResponse(c, "Invalid product data", v)
		}
		l.Error("patch_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update product")
	}

	p, err := h.Store.UpdateProduct(ctx, id, patch)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			l.Warn("patch_product_failed", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		l.Error("patch_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update product")
	}

	publish(c, h.Producer, events.TopicProducts, fmt.Sprint(p.ID), map[string]any{
		"type":       "product_updated",
		"product_id": p.ID,
		"code":       p.Code,
	})

	l.Info("patch_product_success", "id", p.ID)
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id := util.ParseIntDefault(c.Param("id"), 0)
	if err := h.Store.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			l.Warn("delete_product_failed", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		l.Error("delete_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete product")
	}

	publish(c, h.Producer, events.TopicProducts, fmt.Sprint(id), map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	})

	l.Info("delete_product_success", "id", id)
	return c.NoContent(http.StatusNoContent)
}
