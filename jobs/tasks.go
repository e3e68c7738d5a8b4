// Package jobs defines the background task types and the Asynq worker/client
// plumbing around them.
package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	jobmetrics "github.com/taxdesk-erp/taxdesk/internal/jobs"
	"github.com/taxdesk-erp/taxdesk/internal/workflow"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskExtractionRefresh re-runs document extraction for a workflow step.
	TaskExtractionRefresh = "extraction:refresh"
)

// ExtractionRefreshPayload describes one extraction refresh request.
type ExtractionRefreshPayload struct {
	WorkflowID uuid.UUID `json:"workflowId"`
	Step       string    `json:"step"`
	DocumentID string    `json:"documentId"`
	Force      bool      `json:"force"`
}

// NewExtractionRefreshTask constructs an Asynq task.
func NewExtractionRefreshTask(payload ExtractionRefreshPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskExtractionRefresh, data), nil
}

// ExtractionRefresher is the workflow-service surface the handler needs.
type ExtractionRefresher interface {
	RefreshFromDocument(ctx context.Context, id uuid.UUID, key workflow.StepKey, documentID string, force bool) (workflow.StepState, error)
}

// NewExtractionRefreshHandler builds the handler processing refresh tasks.
// A nil metrics value disables instrumentation.
func NewExtractionRefreshHandler(service ExtractionRefresher, logger *slog.Logger, metrics *jobmetrics.Metrics) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload ExtractionRefreshPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		tracker := metrics.Track(TaskExtractionRefresh)
		_, err := service.RefreshFromDocument(ctx, payload.WorkflowID, workflow.StepKey(payload.Step), payload.DocumentID, payload.Force)
		err = tracker.End(err)
		if err != nil {
			if logger != nil {
				logger.Error("extraction refresh failed",
					slog.String("workflow", payload.WorkflowID.String()),
					slog.String("step", payload.Step),
					slog.Any("error", err))
			}
			return err
		}
		if logger != nil {
			logger.Info("extraction refresh applied",
				slog.String("workflow", payload.WorkflowID.String()),
				slog.String("step", payload.Step))
		}
		return nil
	}
}
