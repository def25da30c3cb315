package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"lexassist-backend/models"

	"github.com/google/uuid"
)

// In-memory repositories back the demo mode used when DATABASE_URL is
// not configured. They are mutex-guarded but offer the same
// last-write-wins semantics as the Postgres implementations: each
// update touches only its own field.

// MemoryUserRepository is a map-backed UserRepository.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*models.User
	byEmail map[string]uuid.UUID
}

var _ UserRepository = (*MemoryUserRepository)(nil)

// NewMemoryUserRepository creates an empty in-memory user repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[uuid.UUID]*models.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	r.byID[user.ID] = &clone
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *r.byID[id]
	return &clone, nil
}

func (r *MemoryUserRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	user.Name = name
	user.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryUserRepository) AdjustStats(ctx context.Context, id uuid.UUID, casesDelta, documentsDelta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	user.Stats.Cases += casesDelta
	user.Stats.Documents += documentsDelta
	user.UpdatedAt = time.Now()
	return nil
}

// MemoryCaseRepository is a map-backed CaseRepository.
type MemoryCaseRepository struct {
	mu    sync.RWMutex
	cases map[uuid.UUID]*models.Case
}

var _ CaseRepository = (*MemoryCaseRepository)(nil)

// NewMemoryCaseRepository creates an empty in-memory case repository.
func NewMemoryCaseRepository() *MemoryCaseRepository {
	return &MemoryCaseRepository{cases: make(map[uuid.UUID]*models.Case)}
}

func (r *MemoryCaseRepository) Create(ctx context.Context, c *models.Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	clone := cloneCase(c)
	r.cases[c.ID] = clone
	return nil
}

func (r *MemoryCaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.cases[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneCase(c), nil
}

func (r *MemoryCaseRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var cases []*models.Case
	for _, c := range r.cases {
		if c.UserID == userID {
			cases = append(cases, cloneCase(c))
		}
	}
	sortCasesNewestFirst(cases)
	return cases, nil
}

func (r *MemoryCaseRepository) ListAll(ctx context.Context) ([]*models.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var cases []*models.Case
	for _, c := range r.cases {
		cases = append(cases, cloneCase(c))
	}
	sortCasesNewestFirst(cases)
	return cases, nil
}

func (r *MemoryCaseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.CaseStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cases[id]
	if !ok {
		return ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryCaseRepository) UpdateHearingDate(ctx context.Context, id uuid.UUID, hearingDate time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cases[id]
	if !ok {
		return ErrNotFound
	}
	d := hearingDate
	c.HearingDate = &d
	c.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryCaseRepository) AppendNote(ctx context.Context, id uuid.UUID, note models.CaseNote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cases[id]
	if !ok {
		return ErrNotFound
	}
	c.Notes = append(c.Notes, note)
	c.UpdatedAt = time.Now()
	return nil
}

func cloneCase(c *models.Case) *models.Case {
	clone := *c
	clone.Judgments = append(models.Judgments(nil), c.Judgments...)
	clone.NextSteps = append(models.StringList(nil), c.NextSteps...)
	clone.Notes = append(models.CaseNotes(nil), c.Notes...)
	if c.HearingDate != nil {
		d := *c.HearingDate
		clone.HearingDate = &d
	}
	return &clone
}

func sortCasesNewestFirst(cases []*models.Case) {
	sort.Slice(cases, func(i, j int) bool {
		return cases[i].CreatedAt.After(cases[j].CreatedAt)
	})
}

// MemoryDocumentRepository is a map-backed DocumentRepository.
type MemoryDocumentRepository struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]*models.Document
}

var _ DocumentRepository = (*MemoryDocumentRepository)(nil)

// NewMemoryDocumentRepository creates an empty in-memory document repository.
func NewMemoryDocumentRepository() *MemoryDocumentRepository {
	return &MemoryDocumentRepository{docs: make(map[uuid.UUID]*models.Document)}
}

func (r *MemoryDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc.CreatedAt = time.Now()
	clone := *doc
	r.docs[doc.ID] = &clone
	return nil
}

func (r *MemoryDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *doc
	return &clone, nil
}

func (r *MemoryDocumentRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var docs []*models.Document
	for _, doc := range r.docs {
		if doc.UserID == userID {
			clone := *doc
			docs = append(docs, &clone)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}
