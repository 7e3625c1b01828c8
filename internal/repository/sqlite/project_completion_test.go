package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/repository/sqlite"
)

func TestProjectCompletionRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewProjectCompletionRepository(db)
	ctx := context.Background()

	started := time.Now().UTC().Truncate(time.Second)
	c := &domain.ProjectCompletion{
		SessionID:      "s",
		ProjectID:      "rag-document-qa",
		Status:         domain.ProjectStatusInProgress,
		StartedAt:      &started,
		CompletedSteps: []int{0},
	}
	require.NoError(t, repo.Create(ctx, c))
	assert.Equal(t, 1, c.Version)

	got, err := repo.Get(ctx, "s", "rag-document-qa")
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusInProgress, got.Status)
	assert.Equal(t, []int{0}, got.CompletedSteps)
	assert.Empty(t, got.ReviewedQuestions)
	assert.Equal(t, domain.ResumeStyle(""), got.SelectedResumeStyle)
	require.NotNil(t, got.StartedAt)
	assert.True(t, started.Equal(*got.StartedAt))
	assert.Nil(t, got.CompletedAt)
}

func TestProjectCompletionRepository_UpdateBumpsVersion(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewProjectCompletionRepository(db)
	ctx := context.Background()

	c := &domain.ProjectCompletion{SessionID: "s", ProjectID: "p", Status: domain.ProjectStatusInProgress, CompletedSteps: []int{0}}
	require.NoError(t, repo.Create(ctx, c))

	c.CompletedSteps = []int{0, 1}
	c.SelectedResumeStyle = domain.ResumeStyleImpact
	c.ReviewedQuestions = []int64{3, 7}
	c.BulletsCopied = true
	require.NoError(t, repo.Update(ctx, c))
	assert.Equal(t, 2, c.Version)

	got, err := repo.Get(ctx, "s", "p")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, []int{0, 1}, got.CompletedSteps)
	assert.Equal(t, []int64{3, 7}, got.ReviewedQuestions)
	assert.Equal(t, domain.ResumeStyleImpact, got.SelectedResumeStyle)
	assert.True(t, got.BulletsCopied)
}

func TestProjectCompletionRepository_StaleVersionConflicts(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewProjectCompletionRepository(db)
	ctx := context.Background()

	c := &domain.ProjectCompletion{SessionID: "s", ProjectID: "p", Status: domain.ProjectStatusInProgress, CompletedSteps: []int{0}}
	require.NoError(t, repo.Create(ctx, c))

	first, err := repo.Get(ctx, "s", "p")
	require.NoError(t, err)
	second, err := repo.Get(ctx, "s", "p")
	require.NoError(t, err)

	first.CompletedSteps = []int{0, 1}
	require.NoError(t, repo.Update(ctx, first))

	second.CompletedSteps = []int{0, 2}
	assert.ErrorIs(t, repo.Update(ctx, second), domain.ErrConflict)

	got, err := repo.Get(ctx, "s", "p")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, got.CompletedSteps)
}

func TestProjectCompletionRepository_UpdateMissing(t *testing.T) {
	db := newTestDB(t)
	err := sqlite.NewProjectCompletionRepository(db).Update(context.Background(), &domain.ProjectCompletion{ID: 42, Version: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectCompletionRepository_ListBySession(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewProjectCompletionRepository(db)
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		require.NoError(t, repo.Create(ctx, &domain.ProjectCompletion{SessionID: "s", ProjectID: id, Status: domain.ProjectStatusInProgress}))
	}
	require.NoError(t, repo.Create(ctx, &domain.ProjectCompletion{SessionID: "other", ProjectID: "a", Status: domain.ProjectStatusCompleted}))

	list, err := repo.ListBySession(ctx, "s")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ProjectID)
	assert.Equal(t, "b", list[1].ProjectID)

	err = repo.Create(ctx, &domain.ProjectCompletion{SessionID: "s", ProjectID: "a"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
