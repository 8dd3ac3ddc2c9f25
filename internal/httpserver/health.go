package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthHTTP struct {
	StartedAt time.Time
}

func (h *HealthHTTP) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(h.StartedAt).Seconds(),
	})
}
