package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sushii-shop/storefront/internal/transport"
	"github.com/sushii-shop/storefront/pkg/logging"
)

// ErrorHandler renders every error as a {success:false, error} envelope.
// Internal detail never reaches the client: anything 5xx gets the generic
// message and is logged server-side instead.
func ErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "Erreur serveur inattendue."

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if code < http.StatusInternalServerError {
				if m, ok := he.Message.(string); ok {
					message = m
				}
			}
		}

		if code >= http.StatusInternalServerError {
			logging.FromContext(c.Request().Context()).Error("unhandled_error", "status", code, "error", err)
		}

		if err := c.JSON(code, transport.ErrorResponse{Success: false, Error: message}); err != nil {
			logging.FromContext(c.Request().Context()).Error("error_response_write_failed", "error", err)
		}
	}
}
