package workflow

import (
	"github.com/taxdesk-erp/taxdesk/internal/fx"
	"github.com/taxdesk-erp/taxdesk/internal/statement"
)

// CreateRequest is the JSON body for workflow creation.
type CreateRequest struct {
	ClientName string `json:"clientName" validate:"required,min=2,max=200"`
	TaxYear    int    `json:"taxYear" validate:"required,gte=2017,lte=2100"`
	Kind       string `json:"kind" validate:"required,oneof=CT VAT"`
}

// LineItemEditRequest is the JSON body for a manual line-item edit.
type LineItemEditRequest struct {
	CurrentYear  float64 `json:"currentYear"`
	PreviousYear float64 `json:"previousYear"`
}

// WorkingNoteRequest mirrors one working-note row in an edit payload.
type WorkingNoteRequest struct {
	Description  string  `json:"description" validate:"required,max=300"`
	CurrentYear  float64 `json:"currentYearAmount"`
	PreviousYear float64 `json:"previousYearAmount"`
}

// WorkingNotesEditRequest replaces the notes for one line item.
type WorkingNotesEditRequest struct {
	Notes []WorkingNoteRequest `json:"notes" validate:"dive"`
}

// AddLineItemRequest appends a user-defined line item to the structure.
type AddLineItemRequest struct {
	ID       string `json:"id" validate:"required,max=80"`
	Label    string `json:"label" validate:"required,max=200"`
	AnchorID string `json:"anchorId" validate:"required"`
}

// CurrencyRequest updates the step's currency configuration.
type CurrencyRequest struct {
	SelectedCurrency  string  `json:"selectedCurrency" validate:"required,len=3"`
	CustomCurrency    string  `json:"customCurrency" validate:"omitempty,len=3"`
	ExchangeRateToAED float64 `json:"exchangeRateToAed" validate:"omitempty,gt=0"`
}

// ExtractionRequest queues an extraction refresh for a step.
type ExtractionRequest struct {
	DocumentID string `json:"documentId" validate:"required,max=200"`
	Force      bool   `json:"force"`
}

// StatusRequest transitions workflow status.
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=DRAFT IN_PROGRESS COMPLETED"`
}

func statementValue(current, previous float64) statement.PeriodValue {
	return statement.PeriodValue{CurrentYear: current, PreviousYear: previous}
}

func (r WorkingNotesEditRequest) toNotes() []statement.WorkingNote {
	notes := make([]statement.WorkingNote, len(r.Notes))
	for i, n := range r.Notes {
		notes[i] = statement.WorkingNote{
			Description:  n.Description,
			CurrentYear:  n.CurrentYear,
			PreviousYear: n.PreviousYear,
		}
	}
	return notes
}

func (r CurrencyRequest) toConfig() fx.Config {
	return fx.Config{
		Selected:  r.SelectedCurrency,
		Custom:    r.CustomCurrency,
		RateToAED: r.ExchangeRateToAED,
	}
}
