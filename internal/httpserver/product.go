package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/affiliate_store/internal/logging"
	"github.com/Skotchmaster/affiliate_store/internal/service"
	"github.com/Skotchmaster/affiliate_store/internal/transport"
)

// CatalogHTTP serves product routes. Public and admin routes share handlers
// and differ only in the access mode they pass down.
type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	return h.list(c, service.Public)
}

func (h *CatalogHTTP) AdminListProducts(c echo.Context) error {
	return h.list(c, service.Admin)
}

func (h *CatalogHTTP) list(c echo.Context, mode service.AccessMode) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list_products")

	f, err := parseProductFilter(c, mode)
	if err != nil {
		return logBadQuery(l, "list_products_failed", err)
	}

	page, err := h.Svc.ListProducts(ctx, f, mode)
	if err != nil {
		return fail(l, "list_products_failed", "Product", err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	return h.get(c, service.Public)
}

func (h *CatalogHTTP) AdminGetProduct(c echo.Context) error {
	return h.get(c, service.Admin)
}

func (h *CatalogHTTP) get(c echo.Context, mode service.AccessMode) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	detail, err := h.Svc.GetProduct(ctx, c.Param("id"), mode)
	if err != nil {
		return fail(l, "get_product_failed", "Product", err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.ProductRequest
	if err := decodeBody(c, l, "create_product_failed", &req); err != nil {
		return err
	}

	prod, err := h.Svc.CreateProduct(ctx, req, service.Admin)
	if err != nil {
		return fail(l, "create_product_failed", "Product", err)
	}

	l.Info("create_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	var req transport.ProductRequest
	if err := decodeBody(c, l, "update_product_failed", &req); err != nil {
		return err
	}

	prod, err := h.Svc.UpdateProduct(ctx, c.Param("id"), req, service.Admin)
	if err != nil {
		return fail(l, "update_product_failed", "Product", err)
	}

	l.Info("update_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) ToggleActive(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.toggle_active")

	prod, err := h.Svc.ToggleActive(ctx, c.Param("id"), service.Admin)
	if err != nil {
		return fail(l, "toggle_product_failed", "Product", err)
	}

	l.Info("toggle_product_success", "product_id", prod.ID, "is_active", prod.IsActive)
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	if err := h.Svc.DeleteProduct(ctx, c.Param("id"), service.Admin); err != nil {
		return fail(l, "delete_product_failed", "Product", err)
	}

	l.Info("delete_product_success", "product_id", c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.stats")

	stats, err := h.Svc.Stats(ctx)
	if err != nil {
		return fail(l, "stats_failed", "stats", err)
	}
	return c.JSON(http.StatusOK, stats)
}
