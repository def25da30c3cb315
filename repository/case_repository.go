package repository

import (
	"context"
	"errors"
	"time"

	"lexassist-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCaseRepository is the pgx-backed CaseRepository.
type PostgresCaseRepository struct {
	db *pgxpool.Pool
}

var _ CaseRepository = (*PostgresCaseRepository)(nil)

// NewPostgresCaseRepository creates a new case repository.
func NewPostgresCaseRepository(db *pgxpool.Pool) *PostgresCaseRepository {
	return &PostgresCaseRepository{db: db}
}

// Create inserts a new case record.
func (r *PostgresCaseRepository) Create(ctx context.Context, c *models.Case) error {
	query := `
		INSERT INTO cases (
			id, user_id, summary, facts, judgments, next_steps,
			status, hearing_date, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	return r.db.QueryRow(
		ctx, query,
		c.ID,
		c.UserID,
		c.Summary,
		c.Facts,
		c.Judgments,
		c.NextSteps,
		c.Status,
		c.HearingDate,
		c.Notes,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

const caseColumns = `
	id, user_id, summary, facts, judgments, next_steps,
	status, hearing_date, notes, created_at, updated_at`

func scanCase(row pgx.Row) (*models.Case, error) {
	c := &models.Case{}
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Summary,
		&c.Facts,
		&c.Judgments,
		&c.NextSteps,
		&c.Status,
		&c.HearingDate,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// GetByID retrieves a case by ID.
func (r *PostgresCaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases WHERE id = $1`
	return scanCase(r.db.QueryRow(ctx, query, id))
}

// ListByUserID retrieves all cases owned by a user, newest first.
func (r *PostgresCaseRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCases(rows)
}

// ListAll retrieves every case, newest first.
func (r *PostgresCaseRepository) ListAll(ctx context.Context) ([]*models.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCases(rows)
}

func collectCases(rows pgx.Rows) ([]*models.Case, error) {
	var cases []*models.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

// UpdateStatus updates only the status column.
func (r *PostgresCaseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.CaseStatus) error {
	query := `
		UPDATE cases SET
			status = $2,
			updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateHearingDate updates only the hearing date column.
func (r *PostgresCaseRepository) UpdateHearingDate(ctx context.Context, id uuid.UUID, hearingDate time.Time) error {
	query := `
		UPDATE cases SET
			hearing_date = $2,
			updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, hearingDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendNote appends one note to the JSONB note log.
func (r *PostgresCaseRepository) AppendNote(ctx context.Context, id uuid.UUID, note models.CaseNote) error {
	query := `
		UPDATE cases SET
			notes = notes || $2::jsonb,
			updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, models.CaseNotes{note})
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
