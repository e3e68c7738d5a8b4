package workflow

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/taxdesk-erp/taxdesk/internal/extract"
	"github.com/taxdesk-erp/taxdesk/internal/fx"
	"github.com/taxdesk-erp/taxdesk/internal/reconcile"
	"github.com/taxdesk-erp/taxdesk/internal/shared"
	"github.com/taxdesk-erp/taxdesk/internal/statement"
)

// Auditor records workflow activity for the audit trail. A nil auditor
// disables recording.
type Auditor interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Enqueuer submits extraction refresh jobs for asynchronous processing.
type Enqueuer interface {
	EnqueueExtractionRefresh(ctx context.Context, workflowID uuid.UUID, step StepKey, documentID string, force bool) error
}

// Extractor resolves a document reference into parsed extraction output.
type Extractor interface {
	Extract(ctx context.Context, documentID, categoryHint string) (extract.Document, error)
}

// Service coordinates workflow lifecycle and statement reconciliation.
type Service struct {
	repo      Repository
	enqueuer  Enqueuer
	extractor Extractor
	auditor   Auditor
	logger    *slog.Logger
}

// NewService builds the service.
func NewService(repo Repository, enqueuer Enqueuer, extractor Extractor, auditor Auditor, logger *slog.Logger) *Service {
	return &Service{repo: repo, enqueuer: enqueuer, extractor: extractor, auditor: auditor, logger: logger}
}

// Create validates and stores a workflow.
func (s *Service) Create(ctx context.Context, input CreateInput) (Workflow, error) {
	if err := input.Validate(); err != nil {
		return Workflow{}, err
	}
	wf, err := s.repo.Insert(ctx, input)
	if err != nil {
		return Workflow{}, err
	}
	s.audit(ctx, "workflow.create", wf.ID.String(), map[string]any{"kind": wf.Kind, "taxYear": wf.TaxYear})
	return wf, nil
}

// Get returns a workflow by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Workflow, error) {
	return s.repo.Get(ctx, id)
}

// List enumerates workflows with pagination.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Workflow, int, error) {
	return s.repo.List(ctx, filters)
}

// UpdateStatus transitions workflow lifecycle state.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.audit(ctx, "workflow.status", id.String(), map[string]any{"status": status})
	return nil
}

// StepState loads a step, initialising a pristine one when nothing is stored.
func (s *Service) StepState(ctx context.Context, id uuid.UUID, key StepKey) (StepState, error) {
	if _, ok := key.StatementKind(); !ok {
		return StepState{}, ErrUnknownStep
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return StepState{}, err
	}
	state, found, err := s.repo.LoadStep(ctx, id, key)
	if err != nil {
		return StepState{}, err
	}
	if !found {
		state = NewStepState(key)
	}
	return state, nil
}

// EditLineItem applies a manual period-value edit and persists the
// reconciled result. The statement goes dirty.
func (s *Service) EditLineItem(ctx context.Context, id uuid.UUID, key StepKey, itemID string, value statement.PeriodValue) (StepState, error) {
	state, err := s.mutate(ctx, id, key, func(state StepState) StepState {
		state.Statement = reconcile.EditLineItem(state.Statement, itemID, value)
		return state
	})
	if err == nil {
		s.audit(ctx, "workflow.edit_line_item", id.String(), map[string]any{"step": key, "item": itemID})
	}
	return state, err
}

// EditWorkingNotes replaces the working notes for a line item and persists
// the reconciled result.
func (s *Service) EditWorkingNotes(ctx context.Context, id uuid.UUID, key StepKey, itemID string, notes []statement.WorkingNote) (StepState, error) {
	state, err := s.mutate(ctx, id, key, func(state StepState) StepState {
		state.Statement = reconcile.EditWorkingNotes(state.Statement, itemID, notes)
		return state
	})
	if err == nil {
		s.audit(ctx, "workflow.edit_working_notes", id.String(), map[string]any{"step": key, "item": itemID})
	}
	return state, err
}

// AddLineItem appends a user-defined line after the anchor id.
func (s *Service) AddLineItem(ctx context.Context, id uuid.UUID, key StepKey, anchorID, itemID, label string) (StepState, error) {
	return s.mutate(ctx, id, key, func(state StepState) StepState {
		state.Statement.Structure = statement.InsertAfter(state.Statement.Structure, anchorID, statement.LineItem{ID: itemID, Label: label})
		return state
	})
}

// SetCurrency updates the step's currency configuration. Values already
// stored keep their AED amounts; the new rate applies to subsequent
// extraction runs.
func (s *Service) SetCurrency(ctx context.Context, id uuid.UUID, key StepKey, cfg fx.Config) (StepState, error) {
	return s.mutate(ctx, id, key, func(state StepState) StepState {
		state.Currency = cfg
		return state
	})
}

// RequestExtraction queues an asynchronous extraction refresh for the step.
func (s *Service) RequestExtraction(ctx context.Context, id uuid.UUID, key StepKey, documentID string, force bool) error {
	if _, ok := key.StatementKind(); !ok {
		return ErrUnknownStep
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	if s.enqueuer == nil {
		return errors.New("workflow: enqueuer not configured")
	}
	if err := s.enqueuer.EnqueueExtractionRefresh(ctx, id, key, documentID, force); err != nil {
		return err
	}
	s.audit(ctx, "workflow.extraction_requested", id.String(), map[string]any{"step": key, "document": documentID, "force": force})
	return nil
}

// RefreshFromDocument runs the extraction service for the document and folds
// the result into the step, honouring the dirty guard. Called by the worker.
func (s *Service) RefreshFromDocument(ctx context.Context, id uuid.UUID, key StepKey, documentID string, force bool) (StepState, error) {
	kind, ok := key.StatementKind()
	if !ok {
		return StepState{}, ErrUnknownStep
	}
	doc, err := s.extractor.Extract(ctx, documentID, categoryHint(kind))
	if err != nil {
		// Previously held values stay untouched on extraction failure.
		return StepState{}, err
	}
	return s.ApplyExtraction(ctx, id, key, doc, force)
}

// ApplyExtraction folds parsed extraction output into the step state.
func (s *Service) ApplyExtraction(ctx context.Context, id uuid.UUID, key StepKey, doc extract.Document, force bool) (StepState, error) {
	kind, ok := key.StatementKind()
	if !ok {
		return StepState{}, ErrUnknownStep
	}
	return s.mutate(ctx, id, key, func(state StepState) StepState {
		sect := doc.ComprehensiveIncome
		if kind == statement.KindBalanceSheet {
			sect = doc.FinancialPosition
		}
		before := state.Statement.Dirty
		state.Statement = reconcile.ApplyExtraction(state.Statement, sect, state.Currency, force)
		if before && !force && s.logger != nil {
			s.logger.Info("extraction skipped for dirty statement",
				slog.String("workflow", id.String()), slog.String("step", string(key)))
		}
		return state
	})
}

func (s *Service) mutate(ctx context.Context, id uuid.UUID, key StepKey, fn func(StepState) StepState) (StepState, error) {
	state, err := s.StepState(ctx, id, key)
	if err != nil {
		return StepState{}, err
	}
	state = fn(state)
	if err := s.repo.SaveStep(ctx, id, key, state); err != nil {
		return StepState{}, err
	}
	return state, nil
}

// audit records activity best-effort; a failed write never fails the
// operation it describes.
func (s *Service) audit(ctx context.Context, action, entityID string, meta map[string]any) {
	if s.auditor == nil {
		return
	}
	actor := shared.ActorFromContext(ctx)
	err := s.auditor.Record(ctx, shared.AuditLog{
		ActorID:  actor,
		Action:   action,
		Entity:   "workflow",
		EntityID: entityID,
		Meta:     meta,
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("audit record failed", slog.String("action", action), slog.Any("error", err))
	}
}

func categoryHint(kind statement.Kind) string {
	if kind == statement.KindBalanceSheet {
		return "financial_position"
	}
	return "comprehensive_income"
}
