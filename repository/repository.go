package repository

import (
	"context"
	"errors"
	"time"

	"lexassist-backend/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// UserRepository handles persistence of user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateName applies a shallow, last-write-wins name change.
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	// AdjustStats adds the given deltas to the usage counters.
	AdjustStats(ctx context.Context, id uuid.UUID, casesDelta, documentsDelta int) error
}

// CaseRepository handles persistence of cases. All updates are partial
// field writes with no optimistic-concurrency check: concurrent writes
// to disjoint fields both persist, same-field races are last-write-wins.
type CaseRepository interface {
	Create(ctx context.Context, c *models.Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Case, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Case, error)
	ListAll(ctx context.Context) ([]*models.Case, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.CaseStatus) error
	UpdateHearingDate(ctx context.Context, id uuid.UUID, hearingDate time.Time) error
	AppendNote(ctx context.Context, id uuid.UUID, note models.CaseNote) error
}

// DocumentRepository handles persistence of uploaded document records.
type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Document, error)
}
