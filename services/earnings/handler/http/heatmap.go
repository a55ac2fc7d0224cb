package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/gigmetric/earnmap/internal/pkg/logger"
	"github.com/gigmetric/earnmap/internal/pkg/models"
	"github.com/gigmetric/earnmap/internal/utils"
	"github.com/gigmetric/earnmap/services/earnings"
)

// HeatmapHandler serves the last computed run over HTTP. Read-only.
type HeatmapHandler struct {
	earningsUC earnings.EarningsUC
}

// NewHeatmapHandler creates a new heatmap handler
func NewHeatmapHandler(earningsUC earnings.EarningsUC) *HeatmapHandler {
	return &HeatmapHandler{earningsUC: earningsUC}
}

// GetHeatmap returns the unsuppressed estimates for one weekday.
func (h *HeatmapHandler) GetHeatmap(c echo.Context) error {
	day, err := parseWeekday(c.QueryParam("day"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid day parameter")
	}

	result := h.earningsUC.LastResult()
	if result == nil {
		return utils.NotFoundResponse(c, "No completed analysis run")
	}

	cells := make([]models.AreaEstimate, 0)
	for _, est := range result.Estimates {
		if est.Weekday != day || est.Suppressed {
			continue
		}
		cells = append(cells, est)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Heatmap retrieved successfully", map[string]interface{}{
		"run_id": result.Report.RunID,
		"day":    strings.ToLower(day.String()),
		"cells":  cells,
	})
}

// GetAreaHours returns every hour estimate for one area, including
// suppressed buckets flagged as unavailable.
func (h *HeatmapHandler) GetAreaHours(c echo.Context) error {
	areaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid area ID")
	}

	result := h.earningsUC.LastResult()
	if result == nil {
		return utils.NotFoundResponse(c, "No completed analysis run")
	}

	cells := make([]models.AreaEstimate, 0)
	for _, est := range result.Estimates {
		if est.AreaID == areaID {
			cells = append(cells, est)
		}
	}
	if len(cells) == 0 {
		logger.Debug("area has no estimates", logrus.Fields{"area_id": areaID})
	}

	return utils.SuccessResponse(c, http.StatusOK, "Area estimates retrieved successfully", map[string]interface{}{
		"run_id":  result.Report.RunID,
		"area_id": areaID,
		"cells":   cells,
	})
}

func parseWeekday(s string) (time.Weekday, error) {
	if s == "" {
		return time.Sunday, echo.ErrBadRequest
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.EqualFold(s, day.String()) || strings.EqualFold(s, day.String()[:3]) {
			return day, nil
		}
	}
	return time.Sunday, echo.ErrBadRequest
}
