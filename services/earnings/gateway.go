package earnings

import (
	"context"

	"github.com/gigmetric/earnmap/internal/pkg/models"
)

// RunGW publishes run lifecycle events for downstream consumers.
type RunGW interface {
	PublishRunCompleted(ctx context.Context, report models.RunReport) error
}
