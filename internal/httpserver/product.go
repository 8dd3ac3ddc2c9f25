package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sushii-shop/storefront/internal/catalog"
	"github.com/sushii-shop/storefront/pkg/logging"
)

type ProductHTTP struct {
	Svc *catalog.Service
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	products, err := h.Svc.Products(ctx)
	if err != nil {
		l.Error("get_products_error", "status", 500, "error", err)
		return err
	}

	l.Info("get_products_success", "count", len(products))
	return c.JSON(http.StatusOK, map[string]any{"data": products})
}
