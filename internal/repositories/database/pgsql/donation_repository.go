package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/temple-trust/temple_finance_app/internal/apperrors"
	"github.com/temple-trust/temple_finance_app/internal/core/domain"
	portsrepo "github.com/temple-trust/temple_finance_app/internal/core/ports/repositories"
	"github.com/temple-trust/temple_finance_app/internal/models"
	"github.com/temple-trust/temple_finance_app/internal/utils/mapping"
)

type PgxDonationRepository struct {
	BaseRepository
}

// newPgxDonationRepository creates a new repository for donation data.
func newPgxDonationRepository(pool *pgxpool.Pool) portsrepo.DonationRepositoryFacade {
	return &PgxDonationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DonationRepositoryFacade = (*PgxDonationRepository)(nil)

const donationColumns = `donation_id, donor_name, gross_amount, provider_fees, net_amount, source, status,
	recon_status, reconciled, matched_with, transaction_ref, provider_ref, received_at, notes,
	exception_type, exception_detail, created_at, created_by, last_updated_at, last_updated_by`

func scanDonation(row pgx.Row) (*models.Donation, error) {
	var m models.Donation
	err := row.Scan(
		&m.DonationID,
		&m.DonorName,
		&m.GrossAmount,
		&m.ProviderFees,
		&m.NetAmount,
		&m.Source,
		&m.Status,
		&m.ReconStatus,
		&m.Reconciled,
		&m.MatchedWith,
		&m.TransactionRef,
		&m.ProviderRef,
		&m.ReceivedAt,
		&m.Notes,
		&m.ExceptionType,
		&m.ExceptionDetail,
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

// SaveDonation inserts a new donation row.
func (r *PgxDonationRepository) SaveDonation(ctx context.Context, donation domain.Donation) error {
	m := mapping.ToModelDonation(donation)
	query := `
		INSERT INTO donations (` + donationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DonationID, m.DonorName, m.GrossAmount, m.ProviderFees, m.NetAmount, m.Source, m.Status,
		m.ReconStatus, m.Reconciled, m.MatchedWith, m.TransactionRef, m.ProviderRef, m.ReceivedAt, m.Notes,
		m.ExceptionType, m.ExceptionDetail, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save donation %s: %w", m.DonationID, err)
	}
	return nil
}

// FindDonationByID retrieves a donation by its ID.
func (r *PgxDonationRepository) FindDonationByID(ctx context.Context, donationID string) (*domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE donation_id = $1;`
	m, err := scanDonation(r.Pool.QueryRow(ctx, query, donationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find donation %s: %w", donationID, err)
	}
	d := mapping.ToDomainDonation(*m)
	return &d, nil
}

// ListDonations retrieves donations matching the filter, newest received first.
// Filter fields combine with AND.
func (r *PgxDonationRepository) ListDonations(ctx context.Context, filter portsrepo.DonationListFilter) ([]domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations`
	var conditions []string
	var args []interface{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, clause+"$"+strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		addCondition("status = ", string(*filter.Status))
	}
	if filter.ReconStatus != nil {
		addCondition("recon_status = ", string(*filter.ReconStatus))
	}
	if filter.Source != nil {
		addCondition("source = ", string(*filter.Source))
	}
	if filter.From != nil {
		addCondition("received_at >= ", *filter.From)
	}
	if filter.To != nil {
		addCondition("received_at <= ", *filter.To)
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY received_at DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	defer rows.Close()

	var modelDonations []models.Donation
	for rows.Next() {
		m, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan donation row: %w", err)
		}
		modelDonations = append(modelDonations, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate donation rows: %w", err)
	}
	return mapping.ToDomainDonationSlice(modelDonations), nil
}

// UpdateDonation persists edits to a donation's own fields. Reconciliation
// columns are deliberately absent from the statement.
func (r *PgxDonationRepository) UpdateDonation(ctx context.Context, donation domain.Donation) error {
	m := mapping.ToModelDonation(donation)
	query := `
		UPDATE donations
		SET donor_name = $2, gross_amount = $3, provider_fees = $4, net_amount = $5, source = $6,
		    status = $7, transaction_ref = $8, provider_ref = $9, received_at = $10, notes = $11,
		    last_updated_at = $12, last_updated_by = $13
		WHERE donation_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.DonationID, m.DonorName, m.GrossAmount, m.ProviderFees, m.NetAmount, m.Source,
		m.Status, m.TransactionRef, m.ProviderRef, m.ReceivedAt, m.Notes,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update donation %s: %w", m.DonationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkDonationMatched transitions unmatched -> matched and appends the
// timeline event within one database transaction. The WHERE guard turns a
// concurrent transition into ErrAlreadyTerminal rather than a lost update.
func (r *PgxDonationRepository) MarkDonationMatched(ctx context.Context, donationID string, matchedWith string, event domain.TimelineEvent, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE donations
		SET recon_status = $2, reconciled = TRUE, matched_with = $3, last_updated_at = $4, last_updated_by = $5
		WHERE donation_id = $1 AND recon_status = $6;
	`
	tag, err := tx.Exec(ctx, query, donationID, string(domain.ReconMatched), matchedWith, updatedAt, updatedBy, string(domain.ReconUnmatched))
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark donation matched", err)
	}
	if tag.RowsAffected() == 0 {
		if exists, err := r.donationExists(ctx, tx, donationID); err != nil {
			return err
		} else if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrAlreadyTerminal
	}

	if err := insertTimelineEventTx(ctx, tx, event); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// MarkDonationException records the structured exception and, when the row is
// still unmatched, transitions it to exception with a timeline event. A row
// already in exception only gets its exception columns overwritten.
func (r *PgxDonationRepository) MarkDonationException(ctx context.Context, donationID string, exc domain.Exception, event domain.TimelineEvent, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	transition := `
		UPDATE donations
		SET recon_status = $2, exception_type = $3, exception_detail = $4, last_updated_at = $5, last_updated_by = $6
		WHERE donation_id = $1 AND recon_status = $7;
	`
	tag, err := tx.Exec(ctx, transition, donationID, string(domain.ReconException),
		string(exc.Type), exc.Detail, updatedAt, updatedBy, string(domain.ReconUnmatched))
	if err != nil {
		return apperrors.NewAppError(500, "failed to record donation exception", err)
	}

	if tag.RowsAffected() > 0 {
		if err := insertTimelineEventTx(ctx, tx, event); err != nil {
			return err
		}
		return r.Commit(ctx, tx)
	}

	// Already out of unmatched: overwrite is only legal on an exception row.
	overwrite := `
		UPDATE donations
		SET exception_type = $2, exception_detail = $3, last_updated_at = $4, last_updated_by = $5
		WHERE donation_id = $1 AND recon_status = $6;
	`
	tag, err = tx.Exec(ctx, overwrite, donationID, string(exc.Type), exc.Detail, updatedAt, updatedBy, string(domain.ReconException))
	if err != nil {
		return apperrors.NewAppError(500, "failed to overwrite donation exception", err)
	}
	if tag.RowsAffected() == 0 {
		if exists, err := r.donationExists(ctx, tx, donationID); err != nil {
			return err
		} else if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrAlreadyTerminal
	}
	return r.Commit(ctx, tx)
}

func (r *PgxDonationRepository) donationExists(ctx context.Context, tx pgx.Tx, donationID string) (bool, error) {
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM donations WHERE donation_id = $1);`, donationID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check donation existence", err)
	}
	return exists, nil
}
