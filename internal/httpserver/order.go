package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sushii-shop/storefront/internal/service"
	"github.com/sushii-shop/storefront/internal/transport"
	"github.com/sushii-shop/storefront/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req transport.OrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Requête invalide.")
	}

	order, usedLegacy, err := h.Svc.PlaceOrder(ctx, req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			l.Warn("create_order_error", "status", 400, "reason", verr.Message)
			return echo.NewHTTPError(http.StatusBadRequest, verr.Message)
		}
		l.Error("create_order_error", "status", 500, "error", err)
		return err
	}

	resp := transport.OrderResponse{
		Success:  true,
		OrderRef: order.Ref,
		Total:    order.Total,
	}
	if usedLegacy {
		resp.Message = service.LegacyPayloadNote
	}

	l.Info("create_order_success", "ref", order.Ref, "total", order.Total, "legacy", usedLegacy)
	return c.JSON(http.StatusCreated, resp)
}
