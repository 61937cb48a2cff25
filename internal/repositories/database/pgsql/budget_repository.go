package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/temple-trust/temple_finance_app/internal/apperrors"
	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	portsrepo "github.com/temple-trust/temple_finance_app/internal/core/ports/repositories"
	"github.com/temple-trust/temple_finance_app/internal/models"
	"github.com/temple-trust/temple_finance_app/internal/utils/mapping"
)

type PgxBudgetRequestRepository struct {
	BaseRepository
}

// newPgxBudgetRequestRepository creates a new repository for budget request data.
func newPgxBudgetRequestRepository(pool *pgxpool.Pool) portsrepo.BudgetRequestRepositoryFacade {
	return &PgxBudgetRequestRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BudgetRequestRepositoryFacade = (*PgxBudgetRequestRepository)(nil)

const budgetRequestColumns = `request_id, title, purpose, community_id, requested_amount, approved_amount,
	status, decided_at, rejection_reason, approval_notes, created_at, created_by, last_updated_at, last_updated_by`

func scanBudgetRequest(row pgx.Row) (*models.BudgetRequest, error) {
	var m models.BudgetRequest
	err := row.Scan(
		&m.RequestID,
		&m.Title,
		&m.Purpose,
		&m.CommunityID,
		&m.RequestedAmount,
		&m.ApprovedAmount,
		&m.Status,
		&m.DecidedAt,
		&m.RejectionReason,
		&m.ApprovalNotes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveBudgetRequest inserts a new budget request row.
func (r *PgxBudgetRequestRepository) SaveBudgetRequest(ctx context.Context, request domain.BudgetRequest) error {
	m := mapping.ToModelBudgetRequest(request)
	query := `
		INSERT INTO budget_requests (` + budgetRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RequestID, m.Title, m.Purpose, m.CommunityID, m.RequestedAmount, m.ApprovedAmount,
		m.Status, m.DecidedAt, m.RejectionReason, m.ApprovalNotes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save budget request %s: %w", m.RequestID, err)
	}
	return nil
}

// UpdateBudgetRequest persists edits to a still-pending budget request. The
// WHERE guard keeps decided requests immutable even under a racing decision.
func (r *PgxBudgetRequestRepository) UpdateBudgetRequest(ctx context.Context, request domain.BudgetRequest) error {
	m := mapping.ToModelBudgetRequest(request)
	query := `
		UPDATE budget_requests
		SET title = $2, purpose = $3, community_id = $4, requested_amount = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE request_id = $1 AND status = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.RequestID, m.Title, m.Purpose, m.CommunityID, m.RequestedAmount,
		m.LastUpdatedAt, m.LastUpdatedBy,
		string(domain.BudgetRequestPending),
	)
	if err != nil {
		return fmt.Errorf("failed to update budget request %s: %w", m.RequestID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM budget_requests WHERE request_id = $1);`, m.RequestID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check budget request existence: %w", err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrInvalidTransition
	}
	return nil
}

// FindBudgetRequestByID retrieves a budget request by its ID.
func (r *PgxBudgetRequestRepository) FindBudgetRequestByID(ctx context.Context, requestID string) (*domain.BudgetRequest, error) {
	query := `SELECT ` + budgetRequestColumns + ` FROM budget_requests WHERE request_id = $1;`
	m, err := scanBudgetRequest(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget request %s: %w", requestID, err)
	}
	b := mapping.ToDomainBudgetRequest(*m)
	return &b, nil
}

// ListBudgetRequests retrieves budget requests matching the filter, newest first.
func (r *PgxBudgetRequestRepository) ListBudgetRequests(ctx context.Context, filter portsrepo.BudgetRequestListFilter) ([]domain.BudgetRequest, error) {
	query := `SELECT ` + budgetRequestColumns + ` FROM budget_requests`
	var conditions []string
	var args []interface{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, clause+"$"+strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		addCondition("status = ", string(*filter.Status))
	}
	if filter.CommunityID != nil {
		addCondition("community_id = ", *filter.CommunityID)
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget requests: %w", err)
	}
	defer rows.Close()

	var modelRequests []models.BudgetRequest
	for rows.Next() {
		m, err := scanBudgetRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget request row: %w", err)
		}
		modelRequests = append(modelRequests, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budget request rows: %w", err)
	}
	return mapping.ToDomainBudgetRequestSlice(modelRequests), nil
}

// ApplyBudgetRequestDecision writes the decided request and appends the
// timeline event in one database transaction. The WHERE guard on pending
// turns a concurrent decision into ErrInvalidTransition.
func (r *PgxBudgetRequestRepository) ApplyBudgetRequestDecision(ctx context.Context, request domain.BudgetRequest, event domain.TimelineEvent) error {
	m := mapping.ToModelBudgetRequest(request)
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE budget_requests
		SET status = $2, approved_amount = $3, decided_at = $4, rejection_reason = $5, approval_notes = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE request_id = $1 AND status = $9;
	`
	tag, err := tx.Exec(ctx, query,
		m.RequestID, m.Status, m.ApprovedAmount, m.DecidedAt, m.RejectionReason, m.ApprovalNotes,
		m.LastUpdatedAt, m.LastUpdatedBy,
		string(domain.BudgetRequestPending),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to apply budget request decision", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM budget_requests WHERE request_id = $1);`, m.RequestID).Scan(&exists); err != nil {
			return apperrors.NewAppError(500, "failed to check budget request existence", err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrInvalidTransition
	}

	if err := insertTimelineEventTx(ctx, tx, event); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budget target data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

const budgetColumns = `budget_id, category, target_amount, collected_amount, period_start, period_end,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveBudget inserts a new budget target row.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BudgetID, m.Category, m.TargetAmount, m.CollectedAmount, m.PeriodStart, m.PeriodEnd,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save budget %s: %w", m.BudgetID, err)
	}
	return nil
}

// UpdateBudget persists edits to a budget target.
func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `
		UPDATE budgets
		SET category = $2, target_amount = $3, collected_amount = $4, period_start = $5, period_end = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE budget_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.BudgetID, m.Category, m.TargetAmount, m.CollectedAmount, m.PeriodStart, m.PeriodEnd,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget %s: %w", m.BudgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListBudgets retrieves budget targets matching the filter. Period filters
// select any budget whose period overlaps the window.
func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, filter portsrepo.BudgetListFilter) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets`
	var conditions []string
	var args []interface{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, clause+"$"+strconv.Itoa(len(args)))
	}
	if filter.Category != nil {
		addCondition("category = ", *filter.Category)
	}
	if filter.From != nil {
		addCondition("period_end >= ", *filter.From)
	}
	if filter.To != nil {
		addCondition("period_start <= ", *filter.To)
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY period_start DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var modelBudgets []models.Budget
	for rows.Next() {
		var m models.Budget
		err := rows.Scan(
			&m.BudgetID,
			&m.Category,
			&m.TargetAmount,
			&m.CollectedAmount,
			&m.PeriodStart,
			&m.PeriodEnd,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		modelBudgets = append(modelBudgets, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budget rows: %w", err)
	}

	budgets := make([]domain.Budget, len(modelBudgets))
	for i, m := range modelBudgets {
		budgets[i] = mapping.ToDomainBudget(m)
	}
	return budgets, nil
}
