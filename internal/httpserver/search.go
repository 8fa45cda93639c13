package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/affiliate_store/internal/logging"
	"github.com/Skotchmaster/affiliate_store/internal/models"
	"github.com/Skotchmaster/affiliate_store/internal/transport"
	"github.com/Skotchmaster/affiliate_store/internal/util"
)

// maxResultWindow is the Elasticsearch default for index.max_result_window.
const maxResultWindow = 10000

type Searcher interface {
	Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

// SearchHTTP serves full text search over the product index. Index is nil
// when search is not configured.
type SearchHTTP struct {
	Index Searcher
}

func (h *SearchHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.search")

	if h == nil || h.Index == nil {
		l.Warn("search_failed", "status", http.StatusServiceUnavailable, "reason", "search not configured")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not available")
	}

	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		l.Warn("search_failed", "status", http.StatusBadRequest, "reason", "empty query")
		return invalidParam("q")
	}

	page, limit, err := parsePage(c, util.DefaultPublicPageSize)
	if err != nil {
		return logBadQuery(l, "search_failed", err)
	}
	from, size := util.Calculate(page, limit)

	// Pages past the index result window only need the total.
	var (
		total int64
		items []models.Product
	)
	if from > maxResultWindow-size {
		total, _, err = h.Index.Search(ctx, q, 0, 0)
		items = []models.Product{}
	} else {
		total, items, err = h.Index.Search(ctx, q, from, size)
	}
	if err != nil {
		l.Error("search_failed", "status", http.StatusBadGateway, "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "search failed")
	}

	return c.JSON(http.StatusOK, transport.ProductPage{
		Items: items,
		Pagination: transport.Pagination{
			Page:       page,
			Limit:      size,
			Total:      total,
			TotalPages: util.TotalPages(total, size),
		},
	})
}
