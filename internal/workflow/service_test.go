package workflow

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/taxdesk-erp/taxdesk/internal/extract"
	"github.com/taxdesk-erp/taxdesk/internal/shared"
	"github.com/taxdesk-erp/taxdesk/internal/statement"
)

type mockRepo struct {
	workflows map[uuid.UUID]Workflow
	steps     map[string]StepState
	saveCalls int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		workflows: make(map[uuid.UUID]Workflow),
		steps:     make(map[string]StepState),
	}
}

func stepID(id uuid.UUID, key StepKey) string {
	return id.String() + "/" + string(key)
}

func (m *mockRepo) Insert(ctx context.Context, input CreateInput) (Workflow, error) {
	wf := Workflow{
		ID:         uuid.New(),
		ClientName: input.ClientName,
		TaxYear:    input.TaxYear,
		Kind:       input.Kind,
		Status:     StatusDraft,
		CreatedBy:  input.ActorID,
	}
	m.workflows[wf.ID] = wf
	return wf, nil
}

func (m *mockRepo) Get(ctx context.Context, id uuid.UUID) (Workflow, error) {
	wf, ok := m.workflows[id]
	if !ok {
		return Workflow{}, ErrWorkflowNotFound
	}
	return wf, nil
}

func (m *mockRepo) List(ctx context.Context, filters ListFilters) ([]Workflow, int, error) {
	out := make([]Workflow, 0, len(m.workflows))
	for _, wf := range m.workflows {
		out = append(out, wf)
	}
	return out, len(out), nil
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	wf, ok := m.workflows[id]
	if !ok {
		return ErrWorkflowNotFound
	}
	wf.Status = status
	m.workflows[id] = wf
	return nil
}

func (m *mockRepo) SaveStep(ctx context.Context, id uuid.UUID, key StepKey, state StepState) error {
	m.saveCalls++
	m.steps[stepID(id, key)] = state
	return nil
}

func (m *mockRepo) LoadStep(ctx context.Context, id uuid.UUID, key StepKey) (StepState, bool, error) {
	state, ok := m.steps[stepID(id, key)]
	return state, ok, nil
}

type mockEnqueuer struct {
	calls int
	last  ExtractionRequestArgs
}

type ExtractionRequestArgs struct {
	WorkflowID uuid.UUID
	Step       StepKey
	DocumentID string
	Force      bool
}

func (m *mockEnqueuer) EnqueueExtractionRefresh(ctx context.Context, workflowID uuid.UUID, step StepKey, documentID string, force bool) error {
	m.calls++
	m.last = ExtractionRequestArgs{WorkflowID: workflowID, Step: step, DocumentID: documentID, Force: force}
	return nil
}

type mockExtractor struct {
	doc   extract.Document
	err   error
	hints []string
}

func (m *mockExtractor) Extract(ctx context.Context, documentID, categoryHint string) (extract.Document, error) {
	m.hints = append(m.hints, categoryHint)
	return m.doc, m.err
}

type mockAuditor struct {
	records []shared.AuditLog
	err     error
}

func (m *mockAuditor) Record(ctx context.Context, log shared.AuditLog) error {
	m.records = append(m.records, log)
	return m.err
}

func newTestService(repo Repository, enqueuer Enqueuer, extractor Extractor) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, enqueuer, extractor, nil, logger)
}

func TestMutationsWriteAuditTrail(t *testing.T) {
	repo := newMockRepo()
	auditor := &mockAuditor{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(repo, &mockEnqueuer{}, &mockExtractor{}, auditor, logger)

	ctx := shared.ContextWithActor(context.Background(), 7)
	wf, err := svc.Create(ctx, CreateInput{ClientName: "Falcon Trading LLC", TaxYear: 2024, Kind: KindCorporateTax, ActorID: 7})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := svc.RequestExtraction(ctx, wf.ID, StepProfitLoss, "doc-1", false); err != nil {
		t.Fatalf("RequestExtraction returned error: %v", err)
	}

	if len(auditor.records) != 2 {
		t.Fatalf("expected 2 audit records got %d", len(auditor.records))
	}
	if auditor.records[0].Action != "workflow.create" || auditor.records[0].EntityID != wf.ID.String() {
		t.Fatalf("unexpected first record %+v", auditor.records[0])
	}
	if auditor.records[0].ActorID != 7 {
		t.Fatalf("actor id must come from request context, got %d", auditor.records[0].ActorID)
	}
	if auditor.records[1].Action != "workflow.extraction_requested" {
		t.Fatalf("unexpected second record %+v", auditor.records[1])
	}

	// A failing audit sink never fails the operation it describes.
	auditor.err = errors.New("sink down")
	if err := svc.UpdateStatus(context.Background(), wf.ID, StatusInProgress); err != nil {
		t.Fatalf("UpdateStatus must succeed despite audit failure: %v", err)
	}
}

func TestCreateValidatesInput(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, &mockEnqueuer{}, &mockExtractor{})

	_, err := svc.Create(context.Background(), CreateInput{ClientName: "", TaxYear: 2024, Kind: KindCorporateTax, ActorID: 1})
	if err == nil {
		t.Fatalf("expected validation error for empty client name")
	}
	if len(repo.workflows) != 0 {
		t.Fatalf("invalid input must not reach the repository")
	}

	wf, err := svc.Create(context.Background(), CreateInput{ClientName: "Falcon Trading LLC", TaxYear: 2024, Kind: KindCorporateTax, ActorID: 1})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if wf.Status != StatusDraft {
		t.Fatalf("new workflows start as draft, got %s", wf.Status)
	}
}

func TestStepStateInitialisesPristine(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, &mockEnqueuer{}, &mockExtractor{})
	wf, _ := svc.Create(context.Background(), CreateInput{ClientName: "Falcon Trading LLC", TaxYear: 2024, Kind: KindCorporateTax, ActorID: 1})

	state, err := svc.StepState(context.Background(), wf.ID, StepProfitLoss)
	if err != nil {
		t.Fatalf("StepState returned error: %v", err)
	}
	if state.Statement.Kind != statement.KindProfitLoss {
		t.Fatalf("expected PNL statement got %s", state.Statement.Kind)
	}
	if state.Statement.Dirty {
		t.Fatalf("initial state must be pristine")
	}
	if state.Currency.Currency() != "AED" {
		t.Fatalf("initial currency must be AED, got %s", state.Currency.Currency())
	}

	if _, err := svc.StepState(context.Background(), wf.ID, StepKey("bogus")); !errors.Is(err, ErrUnknownStep) {
		t.Fatalf("expected ErrUnknownStep got %v", err)
	}
	if _, err := svc.StepState(context.Background(), uuid.New(), StepProfitLoss); !errors.Is(err, ErrWorkflowNotFound) {
		t.Fatalf("expected ErrWorkflowNotFound got %v", err)
	}
}

func TestEditLineItemPersists(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo, &mockEnqueuer{}, &mockExtractor{})
	wf, _ := svc.Create(context.Background(), CreateInput{ClientName: "Falcon Trading LLC", TaxYear: 2024, Kind: KindCorporateTax, ActorID: 1})

	state, err := svc.EditLineItem(context.Background(), wf.ID, StepProfitLoss, statement.IDRevenue, statement.PeriodValue{CurrentYear: 500000})
	if err != nil {
		t.Fatalf("EditLineItem returned error: %v", err)
	}
	if !state.Statement.Dirty {
		t.Fatalf("manual edit must mark the statement dirty")
	}
	if repo.saveCalls != 1 {
		t.Fatalf("expected one SaveStep call got %d", repo.saveCalls)
	}
	stored := repo.steps[stepID(wf.ID, StepProfitLoss)]
	if got := stored.Statement.Value(statement.IDRevenue).CurrentYear; got != 500000 {
		t.Fatalf("expected persisted revenue 500000 got %.2f", got)
	}
}

func TestRequestExtractionEnqueues(t *testing.T) {
	repo := newMockRepo()
	enqueuer := &mockEnqueuer{}
	svc := newTestService(repo, enqueuer, &mockExtractor{})
	wf, _ := svc.Create(context.Background(), CreateInput{ClientName: "Falcon Trading LLC", TaxYear: 2024, Kind: KindCorporateTax, ActorID: 1})

	if err := svc.RequestExtraction(context.Background(), wf.ID, StepBalanceSheet, "doc-42", true); err != nil {
		t.Fatalf("RequestExtraction returned error: %v", err)
	}
	if enqueuer.calls != 1 {
		t.Fatalf("expected one enqueue got %d", enqueuer.calls)
	}
	if enqueuer.last.DocumentID != "doc-42" || !enqueuer.last.Force || enqueuer.last.Step != StepBalanceSheet {
		t.Fatalf("unexpected enqueue args %+v", enqueuer.last)
	}

	if err := svc.RequestExtraction(context.Background(), uuid.New(), StepProfitLoss, "doc-42", false); !errors.Is(err, ErrWorkflowNotFound) {
		t.Fatalf("expected ErrWorkflowNotFound got %v", err)
	}
}

func TestRefreshFromDocumentExtractorError(t *testing.T) {
	repo := newMockRepo()
	extractor := &mockExtractor{err: errors.New("extractor down")}
	svc := newTestService(repo, &mockEnqueuer{}, extractor)
	wf, _ := svc.Create(context.Background(), CreateInput{ClientName: "Falcon Trading LLC", TaxYear: 2024, Kind: KindCorporateTax, ActorID: 1})

	if _, err := svc.RefreshFromDocument(context.Background(), wf.ID, StepProfitLoss, "doc-1", false); err == nil {
		t.Fatalf("expected extractor error to propagate")
	}
	if repo.saveCalls != 0 {
		t.Fatalf("failed extraction must leave stored state untouched")
	}
}

func TestRefreshFromDocumentAppliesSection(t *testing.T) {
	repo := newMockRepo()
	extractor := &mockExtractor{doc: extract.Document{
		ComprehensiveIncome: map[string]any{"revenue": 100000.0, "costOfSales": 40000.0},
		FinancialPosition:   map[string]any{"items": []any{map[string]any{"description": "Cash at bank", "amount": 75000.0}}},
	}}
	svc := newTestService(repo, &mockEnqueuer{}, extractor)
	wf, _ := svc.Create(context.Background(), CreateInput{ClientName: "Falcon Trading LLC", TaxYear: 2024, Kind: KindCorporateTax, ActorID: 1})

	state, err := svc.RefreshFromDocument(context.Background(), wf.ID, StepProfitLoss, "doc-1", false)
	if err != nil {
		t.Fatalf("RefreshFromDocument returned error: %v", err)
	}
	if got := state.Statement.Value(statement.IDRevenue).CurrentYear; got != 100000 {
		t.Fatalf("expected revenue 100000 got %.2f", got)
	}
	if extractor.hints[0] != "comprehensive_income" {
		t.Fatalf("expected comprehensive_income hint got %s", extractor.hints[0])
	}

	bsState, err := svc.RefreshFromDocument(context.Background(), wf.ID, StepBalanceSheet, "doc-1", false)
	if err != nil {
		t.Fatalf("RefreshFromDocument returned error: %v", err)
	}
	if got := bsState.Statement.Value(statement.IDCashAndBank).CurrentYear; got != 75000 {
		t.Fatalf("expected cash 75000 from position section got %.2f", got)
	}
	if extractor.hints[1] != "financial_position" {
		t.Fatalf("expected financial_position hint got %s", extractor.hints[1])
	}
}
