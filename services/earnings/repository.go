package earnings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gigmetric/earnmap/internal/pkg/models"
)

// EarningsRepo loads the two inputs of a run: the job records joined to
// driver and employer reference data, and the area boundaries.
type EarningsRepo interface {
	FetchJobs(ctx context.Context, since, until time.Time) ([]models.Job, error)
	FetchAreas(ctx context.Context) ([]models.Area, error)
}

// EstimateExporter pushes the published heatmap cells of a run to the
// backend the driver app reads from.
type EstimateExporter interface {
	ExportEstimates(ctx context.Context, runID uuid.UUID, estimates []models.AreaEstimate) error
}
