package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/affiliate_store/internal/logging"
	"github.com/Skotchmaster/affiliate_store/internal/service"
	"github.com/Skotchmaster/affiliate_store/internal/transport"
	"github.com/Skotchmaster/affiliate_store/internal/util"
)

type CategoryHTTP struct {
	Svc     *service.CategoryService
	Catalog *service.CatalogService
}

func (h *CategoryHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.list_categories")

	items, err := h.Svc.ListCategories(ctx)
	if err != nil {
		return fail(l, "list_categories_failed", "Category", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": items})
}

func (h *CategoryHTTP) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.get_category")

	cat, err := h.Svc.GetCategoryBySlug(ctx, c.Param("slug"))
	if err != nil {
		return fail(l, "get_category_failed", "Category", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"category": cat})
}

// CategoryProducts lists the active products of the category behind :slug.
// Products reference categories by display name.
func (h *CategoryHTTP) CategoryProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.category_products")

	page, limit, err := parsePage(c, util.DefaultPublicPageSize)
	if err != nil {
		return logBadQuery(l, "category_products_failed", err)
	}

	cat, err := h.Svc.GetCategoryBySlug(ctx, c.Param("slug"))
	if err != nil {
		return fail(l, "category_products_failed", "Category", err)
	}

	res, err := h.Catalog.ListProducts(ctx, service.ProductFilter{
		Category: cat.Name,
		Page:     page,
		Limit:    limit,
	}, service.Public)
	if err != nil {
		return fail(l, "category_products_failed", "Product", err)
	}

	return c.JSON(http.StatusOK, transport.CategoryProducts{
		Category:   *cat,
		Items:      res.Items,
		Pagination: res.Pagination,
	})
}

func (h *CategoryHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create_category")

	var req transport.CategoryRequest
	if err := decodeBody(c, l, "create_category_failed", &req); err != nil {
		return err
	}

	cat, err := h.Svc.CreateCategory(ctx, req)
	if err != nil {
		return fail(l, "create_category_failed", "Category", err)
	}

	l.Info("create_category_success", "category_id", cat.ID, "slug", cat.Slug)
	return c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHTTP) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.update_category")

	var req transport.CategoryRequest
	if err := decodeBody(c, l, "update_category_failed", &req); err != nil {
		return err
	}

	cat, err := h.Svc.UpdateCategory(ctx, c.Param("id"), req)
	if err != nil {
		return fail(l, "update_category_failed", "Category", err)
	}

	l.Info("update_category_success", "category_id", cat.ID)
	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete_category")

	if err := h.Svc.DeleteCategory(ctx, c.Param("id")); err != nil {
		return fail(l, "delete_category_failed", "Category", err)
	}

	l.Info("delete_category_success", "category_id", c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}
