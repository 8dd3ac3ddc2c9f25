package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sushii-shop/storefront/internal/service"
	"github.com/sushii-shop/storefront/internal/transport"
	"github.com/sushii-shop/storefront/pkg/logging"
)

type ContactHTTP struct {
	Svc *service.ContactService
}

func (h *ContactHTTP) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact.submit")

	var req transport.ContactRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("contact_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Requête invalide.")
	}

	entry, err := h.Svc.Submit(ctx, req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			l.Warn("contact_error", "status", 400, "reason", verr.Message)
			return echo.NewHTTPError(http.StatusBadRequest, verr.Message)
		}
		l.Error("contact_error", "status", 500, "error", err)
		return err
	}

	l.Info("contact_success", "id", entry.ID)
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}
