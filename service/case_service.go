package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"lexassist-backend/models"
	"lexassist-backend/notify"
	"lexassist-backend/repository"

	"github.com/google/uuid"
)

var (
	ErrCaseNotFound = errors.New("case not found")
)

// CaseService handles the case lifecycle: creation from an analysis
// result, listing, and partial status/hearing/note updates with owner
// notification.
type CaseService struct {
	caseRepo repository.CaseRepository
	userRepo repository.UserRepository
	notifier *notify.Notifier
}

// CaseServiceOption is a functional option for CaseService
type CaseServiceOption func(*CaseService)

// CaseWithCaseRepository sets the case repository
func CaseWithCaseRepository(repo repository.CaseRepository) CaseServiceOption {
	return func(s *CaseService) {
		s.caseRepo = repo
	}
}

// CaseWithUserRepository sets the user repository
func CaseWithUserRepository(repo repository.UserRepository) CaseServiceOption {
	return func(s *CaseService) {
		s.userRepo = repo
	}
}

// CaseWithNotifier sets the notifier
func CaseWithNotifier(n *notify.Notifier) CaseServiceOption {
	return func(s *CaseService) {
		s.notifier = n
	}
}

// NewCaseService creates a new case service
func NewCaseService(opts ...CaseServiceOption) *CaseService {
	s := &CaseService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateCase persists a new case from an analysis result with status
// Submitted, an empty note log and no hearing date, and bumps the
// owner's case counter.
func (s *CaseService) CreateCase(ctx context.Context, userID uuid.UUID, analysis *models.AnalysisResult) (*models.Case, error) {
	if s.caseRepo == nil {
		return nil, errors.New("case repository not set")
	}

	c := &models.Case{
		ID:        uuid.New(),
		UserID:    userID,
		Summary:   analysis.Summary,
		Facts:     analysis.Facts,
		Judgments: analysis.Judgments,
		NextSteps: analysis.NextSteps,
		Status:    models.StatusSubmitted,
		Notes:     models.CaseNotes{},
	}
	if c.Judgments == nil {
		c.Judgments = models.Judgments{}
	}
	if c.NextSteps == nil {
		c.NextSteps = models.StringList{}
	}

	if err := s.caseRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create case: %w", err)
	}

	if s.userRepo != nil {
		if err := s.userRepo.AdjustStats(ctx, userID, 1, 0); err != nil {
			log.Printf("Warning: failed to update case counter for user %s: %v", userID, err)
		}
	}

	return c, nil
}

// GetCase retrieves a single case.
func (s *CaseService) GetCase(ctx context.Context, caseID uuid.UUID) (*models.Case, error) {
	if s.caseRepo == nil {
		return nil, errors.New("case repository not set")
	}

	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListForUser retrieves the cases owned by a user.
func (s *CaseService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Case, error) {
	if s.caseRepo == nil {
		return nil, errors.New("case repository not set")
	}
	return s.caseRepo.ListByUserID(ctx, userID)
}

// ListAll retrieves every case. Role gating happens at the route.
func (s *CaseService) ListAll(ctx context.Context) ([]*models.Case, error) {
	if s.caseRepo == nil {
		return nil, errors.New("case repository not set")
	}
	return s.caseRepo.ListAll(ctx)
}

// UpdateStatus writes the new status, then notifies the case owner in
// the background. The status string is stored as submitted; the
// enumerated set is advisory only.
func (s *CaseService) UpdateStatus(ctx context.Context, caseID uuid.UUID, status models.CaseStatus) error {
	if s.caseRepo == nil {
		return errors.New("case repository not set")
	}

	if err := s.caseRepo.UpdateStatus(ctx, caseID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCaseNotFound
		}
		return fmt.Errorf("failed to update status: %w", err)
	}

	s.notifyOwner(ctx, caseID, func(owner *models.User) *notify.Email {
		return notify.BuildStatusChangedEmail(owner.Email, owner.Name, caseID.String(), status)
	})

	return nil
}

// UpdateHearing writes the new hearing date, then notifies the case
// owner in the background.
func (s *CaseService) UpdateHearing(ctx context.Context, caseID uuid.UUID, hearingDate time.Time) error {
	if s.caseRepo == nil {
		return errors.New("case repository not set")
	}

	if err := s.caseRepo.UpdateHearingDate(ctx, caseID, hearingDate); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCaseNotFound
		}
		return fmt.Errorf("failed to update hearing date: %w", err)
	}

	s.notifyOwner(ctx, caseID, func(owner *models.User) *notify.Email {
		return notify.BuildHearingScheduledEmail(owner.Email, owner.Name, caseID.String(), hearingDate)
	})

	return nil
}

// AddNote appends one entry to the append-only note log.
func (s *CaseService) AddNote(ctx context.Context, caseID uuid.UUID, text string) error {
	if s.caseRepo == nil {
		return errors.New("case repository not set")
	}

	note := models.CaseNote{Text: text, CreatedAt: time.Now()}
	if err := s.caseRepo.AppendNote(ctx, caseID, note); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCaseNotFound
		}
		return fmt.Errorf("failed to append note: %w", err)
	}
	return nil
}

// notifyOwner resolves the case owner's email and dispatches the built
// notification without blocking the caller. Resolution failures are
// logged only.
func (s *CaseService) notifyOwner(ctx context.Context, caseID uuid.UUID, build func(owner *models.User) *notify.Email) {
	if s.notifier == nil || s.userRepo == nil {
		return
	}

	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		log.Printf("Warning: cannot resolve owner for case %s notification: %v", caseID, err)
		return
	}

	owner, err := s.userRepo.GetByID(ctx, c.UserID)
	if err != nil {
		log.Printf("Warning: cannot load owner %s for case %s notification: %v", c.UserID, caseID, err)
		return
	}

	s.notifier.SendAsync(build(owner))
}
