package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/catalog"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/service"
)

func TestSeedDefaults_Idempotent(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewContentService(db.Content())
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaults(ctx, catalog.DefaultContent()))
	require.NoError(t, svc.SeedDefaults(ctx, catalog.DefaultContent()))

	stages, err := svc.ListStages(ctx)
	require.NoError(t, err)
	require.Len(t, stages, len(catalog.DefaultContent()))

	for _, seed := range catalog.DefaultContent() {
		_, questions, err := svc.GetStage(ctx, seed.Stage.Slug)
		require.NoError(t, err)
		assert.Len(t, questions, len(seed.Questions), seed.Stage.Slug)
	}
}

func TestSeedDefaults_PreservesEdits(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewContentService(db.Content())
	ctx := context.Background()

	seeds := catalog.DefaultContent()[:1]
	require.NoError(t, svc.SeedDefaults(ctx, seeds))

	_, questions, err := svc.GetStage(ctx, seeds[0].Stage.Slug)
	require.NoError(t, err)
	q := questions[0]
	q.Answer = "edited by admin"
	require.NoError(t, svc.UpdateQuestion(ctx, &q))

	require.NoError(t, svc.SeedDefaults(ctx, seeds))
	got, err := svc.GetQuestion(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited by admin", got.Answer)
}

func TestCreateQuestion_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewContentService(db.Content())
	ctx := context.Background()

	err := svc.CreateQuestion(ctx, &domain.Question{Title: "  ", StageID: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = svc.CreateQuestion(ctx, &domain.Question{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = svc.CreateQuestion(ctx, &domain.Question{Title: "x", StageID: 1, Difficulty: "brutal"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateQuestion_DefaultsDifficulty(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewContentService(db.Content())
	ctx := context.Background()

	stage := &domain.Stage{Slug: "dl", Title: "DL"}
	require.NoError(t, db.Content().UpsertStage(ctx, stage))

	q := &domain.Question{Title: " Dropout ", StageID: stage.ID}
	require.NoError(t, svc.CreateQuestion(ctx, q))
	assert.Equal(t, "Dropout", q.Title)
	assert.Equal(t, "medium", q.Difficulty)
}

func TestUpdateQuestion_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewContentService(db.Content())

	err := svc.UpdateQuestion(context.Background(), &domain.Question{ID: 77, Title: "x", StageID: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetStage_NotFound(t *testing.T) {
	db := newTestDB(t)
	_, _, err := service.NewContentService(db.Content()).GetStage(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
