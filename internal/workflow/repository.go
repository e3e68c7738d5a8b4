package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taxdesk-erp/taxdesk/internal/shared"
)

// Repository persists workflows and step state blobs.
type Repository interface {
	Insert(ctx context.Context, input CreateInput) (Workflow, error)
	Get(ctx context.Context, id uuid.UUID) (Workflow, error)
	List(ctx context.Context, filters ListFilters) ([]Workflow, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	SaveStep(ctx context.Context, id uuid.UUID, key StepKey, state StepState) error
	LoadStep(ctx context.Context, id uuid.UUID, key StepKey) (StepState, bool, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the pgx-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Insert(ctx context.Context, input CreateInput) (Workflow, error) {
	const query = `
		INSERT INTO workflows (id, client_name, tax_year, kind, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, client_name, tax_year, kind, status, created_by, created_at, updated_at`
	row := r.pool.QueryRow(ctx, query,
		uuid.New(), input.ClientName, input.TaxYear, string(input.Kind), string(StatusDraft), input.ActorID)
	wf, err := scanWorkflow(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Workflow{}, shared.ErrAlreadyExists
		}
		return Workflow{}, err
	}
	return wf, nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Workflow, error) {
	const query = `
		SELECT id, client_name, tax_year, kind, status, created_by, created_at, updated_at
		FROM workflows WHERE id = $1`
	wf, err := scanWorkflow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Workflow{}, ErrWorkflowNotFound
		}
		return Workflow{}, err
	}
	return wf, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Workflow, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1
	if filters.Kind != "" {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argPos))
		args = append(args, string(filters.Kind))
		argPos++
	}
	if filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, string(filters.Status))
		argPos++
	}
	where := conditions[0]
	for _, c := range conditions[1:] {
		where += " AND " + c
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM workflows WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if filters.PerPage <= 0 {
		filters.PerPage = 20
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}
	offset := (filters.Page - 1) * filters.PerPage
	query := fmt.Sprintf(`
		SELECT id, client_name, tax_year, kind, status, created_by, created_at, updated_at
		FROM workflows WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, argPos, argPos+1)
	args = append(args, filters.PerPage, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var workflows []Workflow
	for rows.Next() {
		wf, err := scanWorkflow(rows)
		if err != nil {
			return nil, 0, err
		}
		workflows = append(workflows, wf)
	}
	return workflows, total, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE workflows SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkflowNotFound
	}
	return nil
}

func (r *repository) SaveStep(ctx context.Context, id uuid.UUID, key StepKey, state StepState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO workflow_steps (workflow_id, step_key, state, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (workflow_id, step_key) DO UPDATE SET state = EXCLUDED.state, updated_at = now()`,
		id, string(key), payload)
	return err
}

func (r *repository) LoadStep(ctx context.Context, id uuid.UUID, key StepKey) (StepState, bool, error) {
	var payload []byte
	err := r.pool.QueryRow(ctx,
		`SELECT state FROM workflow_steps WHERE workflow_id = $1 AND step_key = $2`,
		id, string(key)).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StepState{}, false, nil
		}
		return StepState{}, false, err
	}
	var state StepState
	if err := json.Unmarshal(payload, &state); err != nil {
		return StepState{}, false, err
	}
	return state, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkflow(row rowScanner) (Workflow, error) {
	var wf Workflow
	var kind, status string
	if err := row.Scan(&wf.ID, &wf.ClientName, &wf.TaxYear, &kind, &status, &wf.CreatedBy, &wf.CreatedAt, &wf.UpdatedAt); err != nil {
		return Workflow{}, err
	}
	wf.Kind = Kind(kind)
	wf.Status = Status(status)
	return wf, nil
}
