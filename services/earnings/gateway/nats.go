package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gigmetric/earnmap/internal/pkg/models"
	natspkg "github.com/gigmetric/earnmap/internal/pkg/nats"
)

// SubjectRunCompleted carries the run report of every finished analysis.
const SubjectRunCompleted = "earnmap.runs.completed"

// RunGW publishes run lifecycle events over NATS.
type RunGW struct {
	natsClient *natspkg.Client
}

// NewRunGW creates a new run gateway
func NewRunGW(nc *natspkg.Client) *RunGW {
	return &RunGW{natsClient: nc}
}

// PublishRunCompleted publishes the run report after a successful run.
func (g *RunGW) PublishRunCompleted(_ context.Context, report models.RunReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}

	if err := g.natsClient.Publish(SubjectRunCompleted, data); err != nil {
		return fmt.Errorf("failed to publish run completed event: %w", err)
	}
	return nil
}
