package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigmetric/earnmap/internal/pkg/models"
)

// stubEarningsUC serves a canned result to the handlers.
type stubEarningsUC struct {
	result *models.AnalysisResult
}

func (s *stubEarningsUC) Run(context.Context) (*models.AnalysisResult, error) {
	return s.result, nil
}

func (s *stubEarningsUC) LastResult() *models.AnalysisResult {
	return s.result
}

func fixtureResult(areaID uuid.UUID) *models.AnalysisResult {
	return &models.AnalysisResult{
		Estimates: []models.AreaEstimate{
			{AreaID: areaID, Weekday: time.Monday, Hour: 8, Mean: 21.5, Count: 12},
			{AreaID: areaID, Weekday: time.Monday, Hour: 9, Mean: 30.0, Count: 2, Suppressed: true},
			{AreaID: areaID, Weekday: time.Tuesday, Hour: 8, Mean: 18.0, Count: 9},
		},
		Report: models.RunReport{RunID: uuid.New()},
	}
}

func TestGetHeatmap_FiltersByDayAndSuppression(t *testing.T) {
	areaID := uuid.New()
	h := NewHeatmapHandler(&stubEarningsUC{result: fixtureResult(areaID)})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/heatmap?day=monday", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.GetHeatmap(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "monday", data["day"])

	// Monday hour 9 is suppressed and Tuesday belongs to another day.
	cells := data["cells"].([]interface{})
	require.Len(t, cells, 1)
	cell := cells[0].(map[string]interface{})
	assert.Equal(t, 21.5, cell["mean"])
}

func TestGetHeatmap_InvalidDay(t *testing.T) {
	h := NewHeatmapHandler(&stubEarningsUC{result: fixtureResult(uuid.New())})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/heatmap?day=someday", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.GetHeatmap(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetHeatmap_NoRunYet(t *testing.T) {
	h := NewHeatmapHandler(&stubEarningsUC{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/heatmap?day=monday", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.GetHeatmap(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAreaHours_IncludesSuppressed(t *testing.T) {
	areaID := uuid.New()
	h := NewHeatmapHandler(&stubEarningsUC{result: fixtureResult(areaID)})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/areas/:id/hours")
	c.SetParamNames("id")
	c.SetParamValues(areaID.String())

	err := h.GetAreaHours(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	cells := data["cells"].([]interface{})
	assert.Len(t, cells, 3)
}

func TestGetAreaHours_InvalidID(t *testing.T) {
	h := NewHeatmapHandler(&stubEarningsUC{result: fixtureResult(uuid.New())})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/areas/:id/hours")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.GetAreaHours(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
