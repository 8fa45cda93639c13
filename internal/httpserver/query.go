package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/affiliate_store/internal/repo"
	"github.com/Skotchmaster/affiliate_store/internal/service"
	"github.com/Skotchmaster/affiliate_store/internal/util"
)

// parseProductFilter reads the listing query parameters. Numeric filters
// are set only when the parameter carries a value; isActive is read only in
// admin mode.
func parseProductFilter(c echo.Context, mode service.AccessMode) (service.ProductFilter, error) {
	f := service.ProductFilter{Page: 1, Limit: util.DefaultPublicPageSize}
	if mode == service.Admin {
		f.Limit = util.DefaultAdminPageSize
	}

	var (
		minPrice, maxPrice, minRating float64
		isActive                      bool
		sortBy                        string
	)
	b := echo.QueryParamsBinder(c).
		Int("page", &f.Page).
		Int("limit", &f.Limit).
		String("search", &f.Search).
		String("category", &f.Category).
		Float64("minPrice", &minPrice).
		Float64("maxPrice", &maxPrice).
		Float64("minRating", &minRating).
		String("sortBy", &sortBy)
	if mode == service.Admin {
		b = b.Bool("isActive", &isActive)
	}
	if err := b.BindError(); err != nil {
		var be *echo.BindingError
		if errors.As(err, &be) {
			return f, invalidParam(be.Field)
		}
		return f, echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	if f.Page < 1 {
		return f, invalidParam("page")
	}
	if f.Limit < 1 {
		return f, invalidParam("limit")
	}
	if f.Limit > util.MaxPageSize {
		f.Limit = util.MaxPageSize
	}

	sort, ok := repo.ParseSortOrder(sortBy)
	if !ok {
		return f, invalidParam("sortBy")
	}
	f.SortBy = sort

	q := c.QueryParams()
	if q.Get("minPrice") != "" {
		f.MinPrice = &minPrice
	}
	if q.Get("maxPrice") != "" {
		f.MaxPrice = &maxPrice
	}
	if q.Get("minRating") != "" {
		f.MinRating = &minRating
	}
	if mode == service.Admin && q.Get("isActive") != "" {
		f.IsActive = &isActive
	}
	return f, nil
}

// parsePage reads page and limit only, for endpoints without filters.
func parsePage(c echo.Context, defaultLimit int) (page, limit int, err error) {
	page, limit = 1, defaultLimit
	if err := echo.QueryParamsBinder(c).Int("page", &page).Int("limit", &limit).BindError(); err != nil {
		var be *echo.BindingError
		if errors.As(err, &be) {
			return 0, 0, invalidParam(be.Field)
		}
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if page < 1 {
		return 0, 0, invalidParam("page")
	}
	if limit < 1 {
		return 0, 0, invalidParam("limit")
	}
	if limit > util.MaxPageSize {
		limit = util.MaxPageSize
	}
	return page, limit, nil
}

func invalidParam(name string) *echo.HTTPError {
	return fieldError(http.StatusBadRequest, name, "invalid query parameter: "+name)
}

func logBadQuery(l *slog.Logger, event string, err error) error {
	l.Warn(event, "status", http.StatusBadRequest, "reason", "invalid query", "error", err)
	return err
}
