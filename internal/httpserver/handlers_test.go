package httpserver

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/affiliate_store/internal/models"
	"github.com/Skotchmaster/affiliate_store/internal/transport"
)

func validBody() map[string]any {
	return map[string]any{
		"title":         "Standing Desk",
		"description":   "Electric height adjustable desk",
		"price":         349.99,
		"category":      "Home & Office",
		"rating":        4.6,
		"imageUrls":     []string{"https://example.com/desk.jpg"},
		"affiliateLink": "https://example.com/desk",
	}
}

func TestPublicListing_HidesInactiveAndPaginates(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t,
		product("a", "Electronics", 10, true),
		product("b", "Electronics", 20, false),
		product("c", "Fitness", 30, true),
	)

	rec := env.do(http.MethodGet, "/api/products?limit=1&page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decode[transport.ProductPage](t, rec)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "a", page.Items[0].Title)
	assert.Equal(t, transport.Pagination{Page: 2, Limit: 1, Total: 2, TotalPages: 2}, page.Pagination)
}

func TestPublicListing_DefaultsAndClamp(t *testing.T) {
	env := newTestEnv(t)

	page := decode[transport.ProductPage](t, env.do(http.MethodGet, "/api/products", nil))
	assert.Equal(t, 12, page.Pagination.Limit)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 0, page.Pagination.TotalPages)

	page = decode[transport.ProductPage](t, env.do(http.MethodGet, "/api/products?limit=500", nil))
	assert.Equal(t, 100, page.Pagination.Limit)
}

func TestPublicListing_HugePageIsEmpty(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, product("a", "Electronics", 10, true))

	rec := env.do(http.MethodGet, "/api/products?page=9223372036854775807", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[transport.ProductPage](t, rec)
	assert.Empty(t, page.Items)
	assert.EqualValues(t, 1, page.Pagination.Total)
	assert.Equal(t, 1, page.Pagination.TotalPages)
}

func TestPublicListing_IgnoresIsActive(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, product("hidden", "Electronics", 10, false))

	page := decode[transport.ProductPage](t, env.do(http.MethodGet, "/api/products?isActive=false", nil))
	assert.Empty(t, page.Items)
	assert.EqualValues(t, 0, page.Pagination.Total)
}

func TestListing_MalformedQueryNamesParameter(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		query string
		field string
	}{
		{query: "page=abc", field: "page"},
		{query: "page=0", field: "page"},
		{query: "limit=-1", field: "limit"},
		{query: "minPrice=x", field: "minPrice"},
		{query: "maxPrice=1e", field: "maxPrice"},
		{query: "minRating=high", field: "minRating"},
		{query: "sortBy=cheap", field: "sortBy"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := env.do(http.MethodGet, "/api/products?"+tt.query, nil)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decode[map[string]string](t, rec)
			assert.Equal(t, tt.field, body["field"])
			assert.Contains(t, body["message"], tt.field)
		})
	}
}

func TestGetProduct_PublicAndAdmin(t *testing.T) {
	env := newTestEnv(t)
	seeded := env.seed(t,
		product("visible", "Fitness", 10, true),
		product("hidden", "Fitness", 20, false),
		product("sibling", "Fitness", 30, true),
	)

	rec := env.do(http.MethodGet, "/api/products/"+seeded[0].ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[transport.ProductDetail](t, rec)
	assert.Equal(t, seeded[0].ID, detail.Product.ID)
	require.Len(t, detail.RelatedProducts, 1)
	assert.Equal(t, "sibling", detail.RelatedProducts[0].Title)

	rec = env.do(http.MethodGet, "/api/products/"+seeded[1].ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decode[map[string]string](t, rec)["message"])

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/products/not-a-uuid", nil).Code)

	cookie := env.login(t)
	rec = env.do(http.MethodGet, "/api/admin/products/"+seeded[1].ID.String(), nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[transport.ProductDetail](t, rec).Product.IsActive)
}

func TestAdminRoutes_RequireSession(t *testing.T) {
	env := newTestEnv(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/admin/products"},
		{http.MethodPost, "/api/admin/products"},
		{http.MethodPut, "/api/admin/products/00000000-0000-0000-0000-000000000001"},
		{http.MethodPatch, "/api/admin/products/00000000-0000-0000-0000-000000000001/toggle"},
		{http.MethodDelete, "/api/admin/products/00000000-0000-0000-0000-000000000001"},
		{http.MethodGet, "/api/admin/categories"},
		{http.MethodGet, "/api/admin/stats"},
		{http.MethodGet, "/api/admin/me"},
	}
	for _, r := range routes {
		rec := env.do(r.method, r.path, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, r.method+" "+r.path)
	}

	forged := &http.Cookie{Name: "admin-token", Value: "a.b.c"}
	rec := env.do(http.MethodGet, "/api/admin/products", nil, forged)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decode[map[string]string](t, rec)["message"])
}

func TestDashboard_RedirectsWithoutSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/admin/dashboard", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get(echo.HeaderLocation))

	rec = env.do(http.MethodGet, "/admin/dashboard", nil, env.login(t))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, transport.Stats{}, decode[transport.Stats](t, rec))
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	cookie := env.login(t)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 604800, cookie.MaxAge)

	me := decode[transport.SessionResponse](t, env.do(http.MethodGet, "/api/admin/me", nil, cookie))
	assert.Equal(t, testAdminEmail, me.Email)
	assert.NotEmpty(t, me.UserID)

	wrongPassword := env.do(http.MethodPost, "/api/admin/login", map[string]string{"email": testAdminEmail, "password": "nope"})
	unknownEmail := env.do(http.MethodPost, "/api/admin/login", map[string]string{"email": "who@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	assert.Equal(t, []string{"credentials", "credentials"}, env.Failures)

	rec := env.do(http.MethodPost, "/api/admin/login", map[string]string{"email": testAdminEmail})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "password", decode[map[string]string](t, rec)["field"])
}

func TestLogout_ClearsCookie(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/admin/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "admin-token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestProductLifecycle(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.do(http.MethodPost, "/api/admin/products", validBody(), cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.Product](t, rec)
	assert.True(t, created.IsActive)
	assert.Equal(t, []string{"https://example.com/desk.jpg"}, created.ImageURLs)
	path := "/api/admin/products/" + created.ID.String()

	body := validBody()
	body["title"] = "Standing Desk Pro"
	body["isActive"] = false
	rec = env.do(http.MethodPut, path, body, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[models.Product](t, rec)
	assert.Equal(t, "Standing Desk Pro", updated.Title)
	assert.False(t, updated.IsActive)

	rec = env.do(http.MethodPatch, path+"/toggle", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[models.Product](t, rec).IsActive)

	stats := decode[transport.Stats](t, env.do(http.MethodGet, "/api/admin/stats", nil, cookie))
	assert.Equal(t, transport.Stats{Products: 1, ActiveProducts: 1}, stats)

	assert.Equal(t, http.StatusNoContent, env.do(http.MethodDelete, path, nil, cookie).Code)
	rec = env.do(http.MethodDelete, path, nil, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decode[map[string]string](t, rec)["message"])
}

func TestCreateProduct_RejectsBadBodies(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	unknown := validBody()
	unknown["stock"] = 3
	rec := env.do(http.MethodPost, "/api/admin/products", unknown, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/api/admin/products", `{"title":`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	missing := validBody()
	delete(missing, "category")
	rec = env.do(http.MethodPost, "/api/admin/products", missing, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]string{"message": "category is required", "field": "category"}, decode[map[string]string](t, rec))

	var count int64
	require.NoError(t, env.DB.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateCategory_RejectsTrailingData(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	for _, body := range []string{`{"name":"Books"}}`, `{"name":"Books"}]`, `{"name":"Books"} {}`} {
		rec := env.do(http.MethodPost, "/api/admin/categories", body, cookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	var count int64
	require.NoError(t, env.DB.Model(&models.Category{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAdminListing_FiltersByIsActive(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t,
		product("on", "Books", 10, true),
		product("off", "Books", 20, false),
	)
	cookie := env.login(t)

	all := decode[transport.ProductPage](t, env.do(http.MethodGet, "/api/admin/products", nil, cookie))
	assert.Equal(t, 10, all.Pagination.Limit)
	assert.EqualValues(t, 2, all.Pagination.Total)

	off := decode[transport.ProductPage](t, env.do(http.MethodGet, "/api/admin/products?isActive=false", nil, cookie))
	require.Len(t, off.Items, 1)
	assert.Equal(t, "off", off.Items[0].Title)

	rec := env.do(http.MethodGet, "/api/admin/products?isActive=maybe", nil, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "isActive", decode[map[string]string](t, rec)["field"])
}

func TestCategories(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.do(http.MethodPost, "/api/admin/categories", map[string]string{"name": "Home & Office"}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cat := decode[models.Category](t, rec)
	assert.Equal(t, "home-office", cat.Slug)

	rec = env.do(http.MethodPost, "/api/admin/categories", map[string]string{"name": "Home & Office"}, cookie)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "name", decode[map[string]string](t, rec)["field"])

	env.seed(t,
		product("desk", "Home & Office", 100, true),
		product("lamp", "Home & Office", 20, false),
		product("shoe", "Fashion", 50, true),
	)

	rec = env.do(http.MethodGet, "/api/categories/home-office/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[transport.CategoryProducts](t, rec)
	assert.Equal(t, "Home & Office", res.Category.Name)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "desk", res.Items[0].Title)

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/categories/garden", nil).Code)

	list := decode[map[string][]models.Category](t, env.do(http.MethodGet, "/api/categories", nil))
	require.Len(t, list["categories"], 1)

	rec = env.do(http.MethodPut, "/api/admin/categories/"+cat.ID.String(), map[string]string{"name": "Office", "slug": "Office Gear"}, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "office-gear", decode[models.Category](t, rec).Slug)

	assert.Equal(t, http.StatusNoContent, env.do(http.MethodDelete, "/api/admin/categories/"+cat.ID.String(), nil, cookie).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, "/api/admin/categories/"+cat.ID.String(), nil, cookie).Code)
}

type stubSearcher struct {
	query    string
	from     int
	size     int
	products []models.Product
}

func (s *stubSearcher) Search(_ context.Context, q string, from, size int) (int64, []models.Product, error) {
	s.query, s.from, s.size = q, from, size
	return int64(len(s.products)), s.products, nil
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusServiceUnavailable, env.do(http.MethodGet, "/api/products/search?q=desk", nil).Code)

	stub := &stubSearcher{products: []models.Product{{Title: "Standing Desk"}}}
	env = newTestEnv(t, func(d *Deps) { d.Search = &SearchHTTP{Index: stub} })

	rec := env.do(http.MethodGet, "/api/products/search?q=desk&page=2&limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "desk", stub.query)
	assert.Equal(t, 5, stub.from)
	assert.Equal(t, 5, stub.size)
	page := decode[transport.ProductPage](t, rec)
	assert.Len(t, page.Items, 1)

	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/api/products/search?q=", nil).Code)

	rec = env.do(http.MethodGet, "/api/products/search?q=desk&page=9223372036854775807", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, stub.from)
	assert.Equal(t, 0, stub.size)
	page = decode[transport.ProductPage](t, rec)
	assert.Empty(t, page.Items)
	assert.EqualValues(t, 1, page.Pagination.Total)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/health/live", nil).Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/health/ready", nil).Code)
}
