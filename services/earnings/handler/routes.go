package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	httpHandler "github.com/gigmetric/earnmap/services/earnings/handler/http"
)

// Handler groups the serve-mode HTTP handlers.
type Handler struct {
	heatmap *httpHandler.HeatmapHandler
}

// NewHandler creates a new handler group
func NewHandler(heatmap *httpHandler.HeatmapHandler) *Handler {
	return &Handler{heatmap: heatmap}
}

// RegisterRoutes registers all service routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	v1 := e.Group("/v1")
	v1.GET("/heatmap", h.heatmap.GetHeatmap)
	v1.GET("/areas/:id/hours", h.heatmap.GetAreaHours)
}
