package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gigmetric/earnmap/internal/pkg/database"
	"github.com/gigmetric/earnmap/internal/pkg/models"
)

// EstimateExporter writes published heatmap cells to Redis, one hash per
// weekday, field "<area>:<hour>". The driver-facing heatmap backend reads
// these keys directly.
type EstimateExporter struct {
	cfg    *models.Config
	client *database.RedisClient
}

// NewEstimateExporter creates a new Redis estimate exporter
func NewEstimateExporter(cfg *models.Config, client *database.RedisClient) *EstimateExporter {
	return &EstimateExporter{
		cfg:    cfg,
		client: client,
	}
}

func heatmapKey(day time.Weekday) string {
	return "earnmap:heatmap:" + strings.ToLower(day.String())
}

// ExportEstimates replaces the heatmap hashes with this run's unsuppressed
// estimates. Suppressed buckets are never written.
func (e *EstimateExporter) ExportEstimates(ctx context.Context, runID uuid.UUID, estimates []models.AreaEstimate) error {
	byDay := make(map[time.Weekday]map[string]interface{})
	for _, est := range estimates {
		if est.Suppressed {
			continue
		}
		fields, ok := byDay[est.Weekday]
		if !ok {
			fields = make(map[string]interface{})
			byDay[est.Weekday] = fields
		}

		payload, err := json.Marshal(est)
		if err != nil {
			return fmt.Errorf("failed to marshal estimate: %w", err)
		}
		fields[fmt.Sprintf("%s:%d", est.AreaID, est.Hour)] = payload
	}

	ttl := time.Duration(e.cfg.Analysis.ExportTTLHours) * time.Hour

	for day := time.Sunday; day <= time.Saturday; day++ {
		key := heatmapKey(day)
		if err := e.client.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to clear heatmap key %s: %w", key, err)
		}

		fields := byDay[day]
		if len(fields) == 0 {
			continue
		}
		if err := e.client.HSet(ctx, key, fields); err != nil {
			return fmt.Errorf("failed to write heatmap key %s: %w", key, err)
		}
		if ttl > 0 {
			if err := e.client.Expire(ctx, key, ttl); err != nil {
				return fmt.Errorf("failed to expire heatmap key %s: %w", key, err)
			}
		}
	}

	return nil
}
