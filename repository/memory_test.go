package repository

import (
	"context"
	"testing"
	"time"

	"lexassist-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepositoryNotFound(t *testing.T) {
	repo := NewMemoryUserRepository()

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.UpdateName(context.Background(), uuid.New(), "Name")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserRepositoryAdjustStats(t *testing.T) {
	repo := NewMemoryUserRepository()
	user := &models.User{ID: uuid.New(), Email: "asha@example.com"}
	require.NoError(t, repo.Create(context.Background(), user))

	require.NoError(t, repo.AdjustStats(context.Background(), user.ID, 1, 0))
	require.NoError(t, repo.AdjustStats(context.Background(), user.ID, 0, 2))
	require.NoError(t, repo.AdjustStats(context.Background(), user.ID, 1, 1))

	got, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stats.Cases)
	assert.Equal(t, 3, got.Stats.Documents)
}

func TestMemoryCaseRepositoryCloneOnRead(t *testing.T) {
	repo := NewMemoryCaseRepository()
	c := &models.Case{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Status: models.StatusSubmitted,
		Notes:  models.CaseNotes{},
	}
	require.NoError(t, repo.Create(context.Background(), c))

	got, err := repo.GetByID(context.Background(), c.ID)
	require.NoError(t, err)

	// Mutating a returned copy must not leak into the store.
	got.Status = models.StatusClosed
	got.Notes = append(got.Notes, models.CaseNote{Text: "rogue", CreatedAt: time.Now()})

	fresh, err := repo.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSubmitted, fresh.Status)
	assert.Empty(t, fresh.Notes)
}

func TestMemoryCaseRepositoryListNewestFirst(t *testing.T) {
	repo := NewMemoryCaseRepository()
	userID := uuid.New()

	first := &models.Case{ID: uuid.New(), UserID: userID}
	require.NoError(t, repo.Create(context.Background(), first))
	time.Sleep(10 * time.Millisecond)
	second := &models.Case{ID: uuid.New(), UserID: userID}
	require.NoError(t, repo.Create(context.Background(), second))

	cases, err := repo.ListByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, second.ID, cases[0].ID)
	assert.Equal(t, first.ID, cases[1].ID)
}

func TestMemoryCaseRepositoryAppendNote(t *testing.T) {
	repo := NewMemoryCaseRepository()
	c := &models.Case{ID: uuid.New(), UserID: uuid.New()}
	require.NoError(t, repo.Create(context.Background(), c))

	note := models.CaseNote{Text: "first note", CreatedAt: time.Now()}
	require.NoError(t, repo.AppendNote(context.Background(), c.ID, note))

	got, err := repo.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	require.Len(t, got.Notes, 1)
	assert.Equal(t, "first note", got.Notes[0].Text)

	err = repo.AppendNote(context.Background(), uuid.New(), note)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDocumentRepository(t *testing.T) {
	repo := NewMemoryDocumentRepository()
	userID := uuid.New()

	doc := &models.Document{
		ID:       uuid.New(),
		UserID:   userID,
		Filename: "petition.pdf",
		MimeType: "application/pdf",
		Size:     1024,
	}
	require.NoError(t, repo.Create(context.Background(), doc))

	got, err := repo.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "petition.pdf", got.Filename)

	docs, err := repo.ListByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	_, err = repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
