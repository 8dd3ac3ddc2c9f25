package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/sushii-shop/storefront/pkg/middleware/auth"
)

type Deps struct {
	HealthHandler  *HealthHTTP
	ProductHandler *ProductHTTP
	OrderHandler   *OrderHTTP
	ContactHandler *ContactHTTP
	AdminHandler   *AdminHTTP
	AdminJWTSecret []byte
}

func Register(e *echo.Echo, d *Deps) {
	api := e.Group("/api")
	api.GET("/health", d.HealthHandler.Get)
	api.GET("/products", d.ProductHandler.GetProducts)
	api.POST("/orders", d.OrderHandler.CreateOrder)
	api.POST("/contact", d.ContactHandler.Submit)

	admin := api.Group("/admin", authmw.RequireAdmin(d.AdminJWTSecret))
	admin.GET("/orders", d.AdminHandler.ListOrders)
	admin.GET("/messages", d.AdminHandler.ListMessages)

	e.RouteNotFound("/api/*", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "Route API introuvable.")
	})
}
