package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/affiliate_store/internal/db"
	"github.com/Skotchmaster/affiliate_store/internal/logging"
	authmw "github.com/Skotchmaster/affiliate_store/internal/middleware/auth"
)

type Deps struct {
	DB         *gorm.DB
	Catalog    *CatalogHTTP
	Categories *CategoryHTTP
	Auth       *AuthHTTP
	Search     *SearchHTTP
	Gate       *authmw.Gate

	// Optional.
	Metrics    http.Handler
	LoginLimit echo.MiddlewareFunc
	CSRF       echo.MiddlewareFunc
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := db.Ping(c.Request().Context(), d.DB); err != nil {
			logging.FromContext(c.Request().Context()).Error("ready_check_failed", "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics))
	}

	api := e.Group("/api")

	products := api.Group("/products")
	products.GET("", d.Catalog.ListProducts)
	products.GET("/search", d.Search.Search)
	products.GET("/:id", d.Catalog.GetProduct)

	categories := api.Group("/categories")
	categories.GET("", d.Categories.ListCategories)
	categories.GET("/:slug", d.Categories.GetCategory)
	categories.GET("/:slug/products", d.Categories.CategoryProducts)

	var loginMW []echo.MiddlewareFunc
	if d.LoginLimit != nil {
		loginMW = append(loginMW, d.LoginLimit)
	}
	api.POST("/admin/login", d.Auth.Login, loginMW...)
	api.POST("/admin/logout", d.Auth.Logout)

	gated := []echo.MiddlewareFunc{d.Gate.RequireAdmin}
	if d.CSRF != nil {
		gated = append(gated, d.CSRF)
	}
	admin := api.Group("/admin", gated...)
	admin.GET("/me", d.Auth.Me)
	admin.GET("/stats", d.Catalog.Stats)

	admin.GET("/products", d.Catalog.AdminListProducts)
	admin.POST("/products", d.Catalog.CreateProduct)
	admin.GET("/products/:id", d.Catalog.AdminGetProduct)
	admin.PUT("/products/:id", d.Catalog.UpdateProduct)
	admin.PATCH("/products/:id/toggle", d.Catalog.ToggleActive)
	admin.DELETE("/products/:id", d.Catalog.DeleteProduct)

	admin.GET("/categories", d.Categories.ListCategories)
	admin.POST("/categories", d.Categories.CreateCategory)
	admin.PUT("/categories/:id", d.Categories.UpdateCategory)
	admin.DELETE("/categories/:id", d.Categories.DeleteCategory)

	e.GET("/admin/dashboard", d.Catalog.Stats, d.Gate.RequireAdminPage)
}
