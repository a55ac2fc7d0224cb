package earnings

import (
	"context"

	"github.com/gigmetric/earnmap/internal/pkg/models"
)

// EarningsUC runs the earnings analysis pipeline and keeps the latest
// result for the serve-mode handlers.
type EarningsUC interface {
	Run(ctx context.Context) (*models.AnalysisResult, error)
	LastResult() *models.AnalysisResult
}
