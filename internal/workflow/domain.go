// Package workflow owns the filing workflow: one workflow per client and tax
// year, with per-statement step state persisted as an opaque JSON blob.
package workflow

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taxdesk-erp/taxdesk/internal/fx"
	"github.com/taxdesk-erp/taxdesk/internal/statement"
)

// Kind enumerates the filing types a workflow prepares.
type Kind string

const (
	// KindCorporateTax prepares a UAE corporate tax filing.
	KindCorporateTax Kind = "CT"
	// KindVAT prepares a VAT return.
	KindVAT Kind = "VAT"
)

// Status enumerates workflow lifecycle values.
type Status string

const (
	StatusDraft      Status = "DRAFT"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// StepKey identifies one step's persisted state within a workflow.
type StepKey string

const (
	// StepProfitLoss holds the statement of comprehensive income.
	StepProfitLoss StepKey = "pnl"
	// StepBalanceSheet holds the statement of financial position.
	StepBalanceSheet StepKey = "balance_sheet"
)

// StatementKind maps a step to the statement it edits.
func (k StepKey) StatementKind() (statement.Kind, bool) {
	switch k {
	case StepProfitLoss:
		return statement.KindProfitLoss, true
	case StepBalanceSheet:
		return statement.KindBalanceSheet, true
	default:
		return "", false
	}
}

// Workflow is one filing preparation for a client and tax year.
type Workflow struct {
	ID         uuid.UUID `json:"id"`
	ClientName string    `json:"clientName"`
	TaxYear    int       `json:"taxYear"`
	Kind       Kind      `json:"kind"`
	Status     Status    `json:"status"`
	CreatedBy  int64     `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// StepState is the serialized in-memory state of one statement step.
type StepState struct {
	Statement statement.State `json:"statement"`
	Currency  fx.Config       `json:"currencyConfig"`
}

// NewStepState builds a pristine step for the key's statement kind.
func NewStepState(key StepKey) StepState {
	kind, _ := key.StatementKind()
	return StepState{
		Statement: statement.NewState(kind),
		Currency:  fx.DefaultConfig(),
	}
}

// CreateInput captures workflow creation input.
type CreateInput struct {
	ClientName string
	TaxYear    int
	Kind       Kind
	ActorID    int64
}

// Validate ensures correctness.
func (in CreateInput) Validate() error {
	if strings.TrimSpace(in.ClientName) == "" {
		return errors.New("workflow: client name required")
	}
	if in.TaxYear < 2017 || in.TaxYear > 2100 {
		return errors.New("workflow: tax year out of range")
	}
	if in.Kind != KindCorporateTax && in.Kind != KindVAT {
		return errors.New("workflow: kind must be CT or VAT")
	}
	if in.ActorID == 0 {
		return errors.New("workflow: actor required")
	}
	return nil
}

// ListFilters narrows workflow listings.
type ListFilters struct {
	Kind    Kind
	Status  Status
	Page    int
	PerPage int
}

var (
	// ErrWorkflowNotFound occurs when a workflow id resolves to nothing.
	ErrWorkflowNotFound = errors.New("workflow: not found")
	// ErrUnknownStep occurs for a step key with no statement mapping.
	ErrUnknownStep = errors.New("workflow: unknown step")
)
