package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/taxdesk-erp/taxdesk/internal/workflow"
)

type mockRefresher struct {
	calls int
	last  ExtractionRefreshPayload
	err   error
}

func (m *mockRefresher) RefreshFromDocument(ctx context.Context, id uuid.UUID, key workflow.StepKey, documentID string, force bool) (workflow.StepState, error) {
	m.calls++
	m.last = ExtractionRefreshPayload{WorkflowID: id, Step: string(key), DocumentID: documentID, Force: force}
	return workflow.StepState{}, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExtractionRefreshTaskRoundTrip(t *testing.T) {
	payload := ExtractionRefreshPayload{
		WorkflowID: uuid.New(),
		Step:       string(workflow.StepProfitLoss),
		DocumentID: "doc-7",
		Force:      true,
	}
	task, err := NewExtractionRefreshTask(payload)
	if err != nil {
		t.Fatalf("NewExtractionRefreshTask returned error: %v", err)
	}
	if task.Type() != TaskExtractionRefresh {
		t.Fatalf("unexpected task type %s", task.Type())
	}

	var decoded ExtractionRefreshPayload
	if err := json.Unmarshal(task.Payload(), &decoded); err != nil {
		t.Fatalf("payload does not decode: %v", err)
	}
	if decoded != payload {
		t.Fatalf("round trip mismatch: %+v vs %+v", decoded, payload)
	}
}

func TestExtractionRefreshHandler(t *testing.T) {
	refresher := &mockRefresher{}
	handler := NewExtractionRefreshHandler(refresher, discardLogger(), nil)

	payload := ExtractionRefreshPayload{WorkflowID: uuid.New(), Step: string(workflow.StepBalanceSheet), DocumentID: "doc-9"}
	task, err := NewExtractionRefreshTask(payload)
	if err != nil {
		t.Fatalf("NewExtractionRefreshTask returned error: %v", err)
	}
	if err := handler(context.Background(), task); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if refresher.calls != 1 || refresher.last.DocumentID != "doc-9" {
		t.Fatalf("unexpected refresher call %+v", refresher.last)
	}
}

func TestExtractionRefreshHandlerSkipsBadPayload(t *testing.T) {
	refresher := &mockRefresher{}
	handler := NewExtractionRefreshHandler(refresher, discardLogger(), nil)

	task := asynq.NewTask(TaskExtractionRefresh, []byte("not json"))
	err := handler(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry got %v", err)
	}
	if refresher.calls != 0 {
		t.Fatalf("bad payload must not reach the service")
	}
}

func TestExtractionRefreshHandlerPropagatesFailure(t *testing.T) {
	refresher := &mockRefresher{err: errors.New("dirty statement")}
	handler := NewExtractionRefreshHandler(refresher, discardLogger(), nil)

	task, _ := NewExtractionRefreshTask(ExtractionRefreshPayload{WorkflowID: uuid.New(), Step: string(workflow.StepProfitLoss)})
	if err := handler(context.Background(), task); err == nil {
		t.Fatalf("expected service error to propagate for retry")
	}
}
