package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/affiliate_store/internal/db/dbtest"
	"github.com/Skotchmaster/affiliate_store/internal/events"
	authmw "github.com/Skotchmaster/affiliate_store/internal/middleware/auth"
	"github.com/Skotchmaster/affiliate_store/internal/models"
	"github.com/Skotchmaster/affiliate_store/internal/repo"
	"github.com/Skotchmaster/affiliate_store/internal/service"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "s3cret-pass"
)

var testSecret = []byte("handler-test-secret")

type testEnv struct {
	DB       *gorm.DB
	E        *echo.Echo
	Failures []string
}

func newTestEnv(t *testing.T, opts ...func(*Deps)) *testEnv {
	t.Helper()

	gdb := dbtest.Open(t)
	r := &repo.GormRepo{DB: gdb}
	env := &testEnv{DB: gdb}

	catalog := &service.CatalogService{Repo: r, Events: events.Nop{}}
	authSvc := &service.AuthService{Repo: r, Secret: testSecret}
	_, err := authSvc.EnsureAdmin(context.Background(), testAdminEmail, testAdminPassword)
	require.NoError(t, err)

	deps := &Deps{
		DB:         gdb,
		Catalog:    &CatalogHTTP{Svc: catalog},
		Categories: &CategoryHTTP{Svc: &service.CategoryService{Repo: r, Events: events.Nop{}}, Catalog: catalog},
		Auth: &AuthHTTP{Svc: authSvc, OnFailure: func(reason string) {
			env.Failures = append(env.Failures, reason)
		}},
		Search: &SearchHTTP{},
		Gate:   authmw.NewGate(testSecret, "/admin/login", false),
	}
	for _, o := range opts {
		o(deps)
	}

	env.E = echo.New()
	Register(env.E, deps)
	return env
}

func (env *testEnv) do(method, target string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

// login returns the session cookie of the seeded admin.
func (env *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	rec := env.do(http.MethodPost, "/api/admin/login", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == authmw.CookieName {
			return c
		}
	}
	t.Fatal("login did not set the session cookie")
	return nil
}

func (env *testEnv) seed(t *testing.T, products ...models.Product) []models.Product {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range products {
		products[i].CreatedAt = base.Add(time.Duration(i) * time.Hour)
		products[i].UpdatedAt = products[i].CreatedAt
		require.NoError(t, env.DB.Create(&products[i]).Error)
	}
	return products
}

func product(title, category string, price float64, active bool) models.Product {
	return models.Product{
		Title:         title,
		Description:   title + " description",
		Price:         price,
		Category:      category,
		Rating:        4,
		AffiliateLink: "https://example.com/" + title,
		IsActive:      active,
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
