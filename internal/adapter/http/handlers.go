package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const serviceName = "microfin-backend"

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

type healthResponse struct {
	Service string `json:"service"`
	Status  string `json:"status"`
	Time    string `json:"time"`
}

// Health reports liveness; the service name lets shared dashboards
// tell this backend apart from its siblings.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Service: serviceName,
		Status:  "ok",
		Time:    time.Now().UTC().Format(time.RFC3339Nano),
	})
}
