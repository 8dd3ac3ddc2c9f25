package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sushii-shop/storefront/internal/service"
	"github.com/sushii-shop/storefront/pkg/logging"
)

// AdminHTTP exposes back-office, read-only views of the two append-only
// collections. Routes are guarded by the admin JWT middleware.
type AdminHTTP struct {
	Orders  *service.OrderService
	Contact *service.ContactService
}

func (h *AdminHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_orders")

	orders, err := h.Orders.ListOrders(ctx)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"data": orders})
}

func (h *AdminHTTP) ListMessages(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_messages")

	messages, err := h.Contact.ListMessages(ctx)
	if err != nil {
		l.Error("list_messages_error", "status", 500, "error", err)
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"data": messages})
}
