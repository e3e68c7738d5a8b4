package crm

import (
	"context"

	"github.com/google/uuid"
)

// Service coordinates lead and deal operations.
type Service struct {
	repo Repository
}

// NewService builds the service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateLead validates and stores a lead.
func (s *Service) CreateLead(ctx context.Context, input CreateLeadInput) (Lead, error) {
	if err := input.Validate(); err != nil {
		return Lead{}, err
	}
	return s.repo.InsertLead(ctx, input)
}

// GetLead returns a lead by id.
func (s *Service) GetLead(ctx context.Context, id uuid.UUID) (Lead, error) {
	return s.repo.GetLead(ctx, id)
}

// ListLeads enumerates leads with optional status filter.
func (s *Service) ListLeads(ctx context.Context, status LeadStatus, page, perPage int) ([]Lead, int, error) {
	return s.repo.ListLeads(ctx, status, page, perPage)
}

// UpdateLeadStatus moves a lead through its lifecycle.
func (s *Service) UpdateLeadStatus(ctx context.Context, id uuid.UUID, status LeadStatus) error {
	if _, err := s.repo.GetLead(ctx, id); err != nil {
		return err
	}
	return s.repo.UpdateLeadStatus(ctx, id, status)
}

// CreateDeal validates and stores a deal against an existing lead.
func (s *Service) CreateDeal(ctx context.Context, input CreateDealInput) (Deal, error) {
	if err := input.Validate(); err != nil {
		return Deal{}, err
	}
	if _, err := s.repo.GetLead(ctx, input.LeadID); err != nil {
		return Deal{}, err
	}
	return s.repo.InsertDeal(ctx, input)
}

// ListDeals enumerates deals for a lead.
func (s *Service) ListDeals(ctx context.Context, leadID uuid.UUID) ([]Deal, error) {
	return s.repo.ListDealsForLead(ctx, leadID)
}

// MoveDealStage validates and applies a pipeline stage transition.
func (s *Service) MoveDealStage(ctx context.Context, id uuid.UUID, stage DealStage) (Deal, error) {
	deal, err := s.repo.GetDeal(ctx, id)
	if err != nil {
		return Deal{}, err
	}
	if !CanTransition(deal.Stage, stage) {
		return Deal{}, ErrInvalidTransition
	}
	if err := s.repo.UpdateDealStage(ctx, id, stage); err != nil {
		return Deal{}, err
	}
	deal.Stage = stage
	return deal, nil
}
