package crm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists leads and deals.
type Repository interface {
	InsertLead(ctx context.Context, input CreateLeadInput) (Lead, error)
	GetLead(ctx context.Context, id uuid.UUID) (Lead, error)
	ListLeads(ctx context.Context, status LeadStatus, page, perPage int) ([]Lead, int, error)
	UpdateLeadStatus(ctx context.Context, id uuid.UUID, status LeadStatus) error
	InsertDeal(ctx context.Context, input CreateDealInput) (Deal, error)
	GetDeal(ctx context.Context, id uuid.UUID) (Deal, error)
	ListDealsForLead(ctx context.Context, leadID uuid.UUID) ([]Deal, error)
	UpdateDealStage(ctx context.Context, id uuid.UUID, stage DealStage) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the pgx-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) InsertLead(ctx context.Context, input CreateLeadInput) (Lead, error) {
	const query = `
		INSERT INTO crm_leads (id, name, company, email, phone, source, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, company, email, phone, source, status, created_by, created_at, updated_at`
	return scanLead(r.pool.QueryRow(ctx, query,
		uuid.New(), input.Name, input.Company, input.Email, input.Phone, input.Source, string(LeadNew), input.ActorID))
}

func (r *repository) GetLead(ctx context.Context, id uuid.UUID) (Lead, error) {
	const query = `
		SELECT id, name, company, email, phone, source, status, created_by, created_at, updated_at
		FROM crm_leads WHERE id = $1`
	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, ErrLeadNotFound
		}
		return Lead{}, err
	}
	return lead, nil
}

func (r *repository) ListLeads(ctx context.Context, status LeadStatus, page, perPage int) ([]Lead, int, error) {
	where := "1=1"
	args := []interface{}{}
	argPos := 1
	if status != "" {
		where = fmt.Sprintf("status = $%d", argPos)
		args = append(args, string(status))
		argPos++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM crm_leads WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	query := fmt.Sprintf(`
		SELECT id, name, company, email, phone, source, status, created_by, created_at, updated_at
		FROM crm_leads WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, argPos, argPos+1)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var leads []Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, lead)
	}
	return leads, total, rows.Err()
}

func (r *repository) UpdateLeadStatus(ctx context.Context, id uuid.UUID, status LeadStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE crm_leads SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

func (r *repository) InsertDeal(ctx context.Context, input CreateDealInput) (Deal, error) {
	const query = `
		INSERT INTO crm_deals (id, lead_id, title, amount_aed, stage)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, lead_id, title, amount_aed, stage, created_at, updated_at`
	return scanDeal(r.pool.QueryRow(ctx, query,
		uuid.New(), input.LeadID, input.Title, input.AmountAED, string(StageProspect)))
}

func (r *repository) GetDeal(ctx context.Context, id uuid.UUID) (Deal, error) {
	const query = `
		SELECT id, lead_id, title, amount_aed, stage, created_at, updated_at
		FROM crm_deals WHERE id = $1`
	deal, err := scanDeal(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Deal{}, ErrDealNotFound
		}
		return Deal{}, err
	}
	return deal, nil
}

func (r *repository) ListDealsForLead(ctx context.Context, leadID uuid.UUID) ([]Deal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, title, amount_aed, stage, created_at, updated_at
		FROM crm_deals WHERE lead_id = $1 ORDER BY created_at DESC`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deals []Deal
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, deal)
	}
	return deals, rows.Err()
}

func (r *repository) UpdateDealStage(ctx context.Context, id uuid.UUID, stage DealStage) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE crm_deals SET stage = $2, updated_at = now() WHERE id = $1`, id, string(stage))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDealNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (Lead, error) {
	var lead Lead
	var status string
	if err := row.Scan(&lead.ID, &lead.Name, &lead.Company, &lead.Email, &lead.Phone, &lead.Source,
		&status, &lead.CreatedBy, &lead.CreatedAt, &lead.UpdatedAt); err != nil {
		return Lead{}, err
	}
	lead.Status = LeadStatus(status)
	return lead, nil
}

func scanDeal(row rowScanner) (Deal, error) {
	var deal Deal
	var stage string
	if err := row.Scan(&deal.ID, &deal.LeadID, &deal.Title, &deal.AmountAED, &stage,
		&deal.CreatedAt, &deal.UpdatedAt); err != nil {
		return Deal{}, err
	}
	deal.Stage = DealStage(stage)
	return deal, nil
}
