// Package crm holds the lead and deal pipeline adjacent to the filing
// workflows.
package crm

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LeadStatus enumerates lead lifecycle values.
type LeadStatus string

const (
	LeadNew       LeadStatus = "NEW"
	LeadContacted LeadStatus = "CONTACTED"
	LeadQualified LeadStatus = "QUALIFIED"
	LeadLost      LeadStatus = "LOST"
)

// DealStage enumerates deal pipeline stages.
type DealStage string

const (
	StageProspect    DealStage = "PROSPECT"
	StageProposal    DealStage = "PROPOSAL"
	StageNegotiation DealStage = "NEGOTIATION"
	StageWon         DealStage = "WON"
	StageLost        DealStage = "LOST"
)

// Terminal stages admit no further transitions.
var dealTransitions = map[DealStage][]DealStage{
	StageProspect:    {StageProposal, StageLost},
	StageProposal:    {StageNegotiation, StageLost},
	StageNegotiation: {StageWon, StageLost},
}

// CanTransition reports whether a deal may move between stages.
func CanTransition(from, to DealStage) bool {
	for _, allowed := range dealTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Lead is one prospective client.
type Lead struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Company   string     `json:"company"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Source    string     `json:"source"`
	Status    LeadStatus `json:"status"`
	CreatedBy int64      `json:"createdBy"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Deal is one engagement opportunity tied to a lead.
type Deal struct {
	ID        uuid.UUID `json:"id"`
	LeadID    uuid.UUID `json:"leadId"`
	Title     string    `json:"title"`
	AmountAED float64   `json:"amountAed"`
	Stage     DealStage `json:"stage"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateLeadInput captures lead creation input.
type CreateLeadInput struct {
	Name    string
	Company string
	Email   string
	Phone   string
	Source  string
	ActorID int64
}

// Validate ensures correctness.
func (in CreateLeadInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("crm: lead name required")
	}
	if in.ActorID == 0 {
		return errors.New("crm: actor required")
	}
	return nil
}

// CreateDealInput captures deal creation input.
type CreateDealInput struct {
	LeadID    uuid.UUID
	Title     string
	AmountAED float64
}

// Validate ensures correctness.
func (in CreateDealInput) Validate() error {
	if in.LeadID == uuid.Nil {
		return errors.New("crm: lead required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return errors.New("crm: deal title required")
	}
	if in.AmountAED < 0 {
		return errors.New("crm: deal amount must not be negative")
	}
	return nil
}

var (
	// ErrLeadNotFound occurs when a lead id resolves to nothing.
	ErrLeadNotFound = errors.New("crm: lead not found")
	// ErrDealNotFound occurs when a deal id resolves to nothing.
	ErrDealNotFound = errors.New("crm: deal not found")
	// ErrInvalidTransition occurs for a disallowed stage change.
	ErrInvalidTransition = errors.New("crm: invalid stage transition")
)
