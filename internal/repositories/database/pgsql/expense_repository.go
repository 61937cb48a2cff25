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

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, description, vendor, amount, category, status, rejection_reason,
	approval_date, expense_date, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.Description,
		&m.Vendor,
		&m.Amount,
		&m.Category,
		&m.Status,
		&m.RejectionReason,
		&m.ApprovalDate,
		&m.ExpenseDate,
		&m.Notes,
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

// SaveExpense inserts a new expense row.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExpenseID, m.Description, m.Vendor, m.Amount, m.Category, m.Status, m.RejectionReason,
		m.ApprovalDate, m.ExpenseDate, m.Notes, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense %s: %w", m.ExpenseID, err)
	}
	return nil
}

// FindExpenseByID retrieves an expense by its ID.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	m, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}
	e := mapping.ToDomainExpense(*m)
	return &e, nil
}

// ListExpenses retrieves expenses matching the filter, newest first.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, filter portsrepo.ExpenseListFilter) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses`
	var conditions []string
	var args []interface{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, clause+"$"+strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		addCondition("status = ", string(*filter.Status))
	}
	if filter.Category != nil {
		addCondition("category = ", string(*filter.Category))
	}
	if filter.From != nil {
		addCondition("expense_date >= ", *filter.From)
	}
	if filter.To != nil {
		addCondition("expense_date <= ", *filter.To)
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY expense_date DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var modelExpenses []models.Expense
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		modelExpenses = append(modelExpenses, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense rows: %w", err)
	}
	return mapping.ToDomainExpenseSlice(modelExpenses), nil
}

// UpdateExpense persists edits to an expense's own fields. Status and approval
// columns are owned by ApplyExpenseTransition.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		UPDATE expenses
		SET description = $2, vendor = $3, amount = $4, category = $5, expense_date = $6, notes = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE expense_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ExpenseID, m.Description, m.Vendor, m.Amount, m.Category, m.ExpenseDate, m.Notes,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", m.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ApplyExpenseTransition writes the transitioned expense and appends the
// timeline event in one database transaction. The WHERE guard on fromStatus
// turns a concurrent transition into ErrInvalidTransition.
func (r *PgxExpenseRepository) ApplyExpenseTransition(ctx context.Context, expense domain.Expense, fromStatus domain.ExpenseStatus, event domain.TimelineEvent) error {
	m := mapping.ToModelExpense(expense)
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE expenses
		SET status = $2, rejection_reason = $3, approval_date = $4, last_updated_at = $5, last_updated_by = $6
		WHERE expense_id = $1 AND status = $7;
	`
	tag, err := tx.Exec(ctx, query,
		m.ExpenseID, m.Status, m.RejectionReason, m.ApprovalDate, m.LastUpdatedAt, m.LastUpdatedBy,
		string(fromStatus),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to apply expense transition", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM expenses WHERE expense_id = $1);`, m.ExpenseID).Scan(&exists); err != nil {
			return apperrors.NewAppError(500, "failed to check expense existence", err)
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
