package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/catalog"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/service"
)

const sid = "session-1"

func TestToggleStep_CreatesRecord(t *testing.T) {
	svc, db := newTestReadinessService(t)
	ctx := context.Background()

	res, err := svc.ToggleStep(ctx, sid, "three", 0)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCreated, res.Outcome)
	assert.Equal(t, domain.ProjectStatusInProgress, res.Completion.Status)
	assert.Equal(t, []int{0}, res.Completion.CompletedSteps)
	assert.NotNil(t, res.Completion.StartedAt)

	p, err := db.Readiness().GetBySession(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, domain.ReadinessInProgress, p.Status)
}

func TestToggleStep_ReachesTutorialComplete(t *testing.T) {
	svc, _ := newTestReadinessService(t)
	ctx := context.Background()

	_, err := svc.ToggleStep(ctx, sid, "three", 0)
	require.NoError(t, err)
	_, err = svc.ToggleStep(ctx, sid, "three", 2)
	require.NoError(t, err)
	res, err := svc.ToggleStep(ctx, sid, "three", 1)
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeUpdated, res.Outcome)
	assert.Equal(t, domain.ProjectStatusTutorialComplete, res.Completion.Status)
	assert.Equal(t, []int{0, 1, 2}, res.Completion.CompletedSteps)
}

func TestToggleStep_Involution(t *testing.T) {
	svc, _ := newTestReadinessService(t)
	ctx := context.Background()

	_, err := svc.ToggleStep(ctx, sid, "three", 0)
	require.NoError(t, err)
	_, err = svc.ToggleStep(ctx, sid, "three", 2)
	require.NoError(t, err)

	for _, idx := range []int{0, 1, 2} {
		before, err := svc.GetProjectCompletion(ctx, sid, "three")
		require.NoError(t, err)

		_, err = svc.ToggleStep(ctx, sid, "three", idx)
		require.NoError(t, err)
		res, err := svc.ToggleStep(ctx, sid, "three", idx)
		require.NoError(t, err)

		assert.Equal(t, before.CompletedSteps, res.Completion.CompletedSteps, "step %d", idx)
	}
}

func TestToggleStep_Validation(t *testing.T) {
	svc, _ := newTestReadinessService(t)
	ctx := context.Background()

	_, err := svc.ToggleStep(ctx, sid, "", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.ToggleStep(ctx, sid, "three", 3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.ToggleStep(ctx, sid, "three", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUnknownProject_NoMutation(t *testing.T) {
	svc, db := newTestReadinessService(t)
	ctx := context.Background()

	_, err := svc.ToggleStep(ctx, sid, "missing", 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.CompleteProject(ctx, sid, "missing", domain.ResumeStyleImpact)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.GetProjectCompletion(ctx, sid, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.MarkBulletsCopied(ctx, sid, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := db.Completions().ListBySession(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, list)
	_, err = db.Readiness().GetBySession(ctx, sid)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompleteProject_FreshProject(t *testing.T) {
	svc, _ := newTestReadinessService(t)
	ctx := context.Background()

	res, err := svc.CompleteProject(ctx, sid, "three", domain.ResumeStyleImpact)
	require.NoError(t, err)

	assert.Equal(t, domain.ProjectStatusCompleted, res.Completion.Status)
	assert.Equal(t, []int{0, 1, 2}, res.Completion.CompletedSteps)
	assert.Equal(t, domain.ResumeStyleImpact, res.Completion.SelectedResumeStyle)
	assert.NotNil(t, res.Completion.CompletedAt)
	assert.Equal(t, 25, res.ReadinessScore)
	assert.Equal(t, 1, res.CompletedCount)
	assert.Equal(t, 4, res.TotalProjects)
	assert.Equal(t, 3, res.Progress.ResumeBulletsCount)
}

func TestCompleteProject_OverridesPartialSteps(t *testing.T) {
	svc, _ := newTestReadinessService(t)
	ctx := context.Background()

	_, err := svc.ToggleStep(ctx, sid, "three", 1)
	require.NoError(t, err)

	res, err := svc.CompleteProject(ctx, sid, "three", "")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, res.Completion.CompletedSteps)
	assert.Equal(t, domain.ResumeStyleTechnical, res.Completion.SelectedResumeStyle)
}

func TestCompleteProject_KeepsPriorStyle(t *testing.T) {
	svc, _ := newTestReadinessService(t)
	ctx := context.Background()

	_, err := svc.CompleteProject(ctx, sid, "a", domain.ResumeStyleFullStack)
	require.NoError(t, err)
	res, err := svc.CompleteProject(ctx, sid, "a", "")
	require.NoError(t, err)
	assert.Equal(t, domain.ResumeStyleFullStack, res.Completion.SelectedResumeStyle)
	assert.Equal(t, 1, res.CompletedCount)
}

func TestCompleteProject_InvalidStyle(t *testing.T) {
	svc, _ := newTestReadinessService(t)
	_, err := svc.CompleteProject(context.Background(), sid, "a", "poetic")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompleteProject_HalfTheCatalog(t *testing.T) {
	svc, _ := newTestReadinessService(t)
	ctx := context.Background()

	_, err := svc.CompleteProject(ctx, sid, "a", "")
	require.NoError(t, err)
	res, err := svc.CompleteProject(ctx, sid, "b", "")
	require.NoError(t, err)

	assert.Equal(t, 50, res.ReadinessScore)
	assert.Equal(t, 6, res.Progress.ResumeBulletsCount)
	assert.Equal(t, domain.ReadinessInProgress, res.Progress.Status)
	require.Len(t, res.Progress.CompletedProjects, 2)
}

func TestCompleteProject_AllTemplates(t *testing.T) {
	svc, _ := newTestReadinessService(t)
	ctx := context.Background()

	var res *service.CompleteResult
	for _, id := range []string{"three", "a", "b", "c"} {
		var err error
		res, err = svc.CompleteProject(ctx, sid, id, "")
		require.NoError(t, err)
	}
	assert.Equal(t, 100, res.ReadinessScore)
	assert.Equal(t, domain.ReadinessCompleted, res.Progress.Status)
	assert.Equal(t, 12, res.Progress.ResumeBulletsCount)
	assert.NotNil(t, res.Progress.ResumeLastUpdated)
}

func TestToggleStep_OnCompletedProjectDemotes(t *testing.T) {
	svc, db := newTestReadinessService(t)
	ctx := context.Background()

	_, err := svc.CompleteProject(ctx, sid, "three", "")
	require.NoError(t, err)

	res, err := svc.ToggleStep(ctx, sid, "three", 1)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusInProgress, res.Completion.Status)
	assert.NotNil(t, res.Completion.CompletedAt)

	p, err := db.Readiness().GetBySession(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, 0, p.ReadinessScore)
	assert.Empty(t, p.CompletedProjects)
}

func TestGetProgress_UntouchedSession(t *testing.T) {
	svc, _ := newTestReadinessService(t)

	view, err := svc.GetProgress(context.Background(), "fresh")
	require.NoError(t, err)

	assert.Equal(t, domain.ReadinessNotStarted, view.Progress.Status)
	assert.Equal(t, 0, view.Progress.ReadinessScore)
	assert.Empty(t, view.Progress.CompletedProjects)
	require.Len(t, view.Projects, 4)
	for _, p := range view.Projects {
		assert.Equal(t, domain.ProjectStatusNotStarted, p.Status)
		assert.Empty(t, p.CompletedSteps)
		assert.Nil(t, p.Completion)
	}
}

func TestGetProgress_AnnotatesTemplates(t *testing.T) {
	svc, _ := newTestReadinessService(t)
	ctx := context.Background()

	_, err := svc.ToggleStep(ctx, sid, "b", 1)
	require.NoError(t, err)
	_, err = svc.CompleteProject(ctx, sid, "c", "")
	require.NoError(t, err)

	view, err := svc.GetProgress(ctx, sid)
	require.NoError(t, err)

	byID := map[string]service.ProjectView{}
	for _, p := range view.Projects {
		byID[p.Template.ID] = p
	}
	assert.Equal(t, domain.ProjectStatusNotStarted, byID["three"].Status)
	assert.Equal(t, domain.ProjectStatusInProgress, byID["b"].Status)
	assert.Equal(t, []int{1}, byID["b"].CompletedSteps)
	assert.Equal(t, domain.ProjectStatusCompleted, byID["c"].Status)
	assert.Equal(t, 25, view.Progress.ReadinessScore)
}

func TestGetProgress_ReconcilesStaleAggregate(t *testing.T) {
	svc, db := newTestReadinessService(t)
	ctx := context.Background()

	_, err := svc.CompleteProject(ctx, sid, "a", "")
	require.NoError(t, err)

	// Simulate a crash between the completion write and the aggregate write.
	p, err := db.Readiness().GetBySession(ctx, sid)
	require.NoError(t, err)
	p.ReadinessScore = 0
	p.ResumeBulletsCount = 0
	p.CompletedProjects = nil
	require.NoError(t, db.Readiness().Update(ctx, p))

	view, err := svc.GetProgress(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, 25, view.Progress.ReadinessScore)
	assert.Equal(t, 3, view.Progress.ResumeBulletsCount)

	stored, err := db.Readiness().GetBySession(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, 25, stored.ReadinessScore)
}

func TestGetProjectCompletion(t *testing.T) {
	svc, _ := newTestReadinessService(t)
	ctx := context.Background()

	view, err := svc.GetProjectCompletion(ctx, sid, "a")
	require.NoError(t, err)
	assert.Nil(t, view.Completion)
	assert.Equal(t, "a", view.Template.ID)

	_, err = svc.ToggleStep(ctx, sid, "a", 0)
	require.NoError(t, err)
	view, err = svc.GetProjectCompletion(ctx, sid, "a")
	require.NoError(t, err)
	require.NotNil(t, view.Completion)
	assert.Equal(t, []int{0}, view.Completion.CompletedSteps)
}

func TestRecordReviewedQuestions(t *testing.T) {
	svc, db := newTestReadinessService(t)
	ctx := context.Background()
	q1 := seedQuestion(t, db, "q1")
	q2 := seedQuestion(t, db, "q2")

	c, err := svc.RecordReviewedQuestions(ctx, sid, "a", []int64{q2, q1, q2})
	require.NoError(t, err)
	assert.Equal(t, []int64{q1, q2}, c.ReviewedQuestions)

	_, err = svc.RecordReviewedQuestions(ctx, sid, "b", []int64{q1})
	require.NoError(t, err)

	p, err := db.Readiness().GetBySession(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, 2, p.TotalQuestionsReviewed)

	_, err = svc.RecordReviewedQuestions(ctx, sid, "a", []int64{9999})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.RecordReviewedQuestions(ctx, sid, "a", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMarkBulletsCopied(t *testing.T) {
	svc, _ := newTestReadinessService(t)
	ctx := context.Background()

	c, err := svc.MarkBulletsCopied(ctx, sid, "a")
	require.NoError(t, err)
	assert.True(t, c.BulletsCopied)
	assert.Equal(t, domain.ProjectStatusInProgress, c.Status)
}

func TestBookExpertCall(t *testing.T) {
	svc, _ := newTestReadinessService(t)
	ctx := context.Background()

	_, err := svc.BookExpertCall(ctx, sid, time.Time{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	date := time.Date(2026, 11, 3, 15, 0, 0, 0, time.UTC)
	p, err := svc.BookExpertCall(ctx, sid, date)
	require.NoError(t, err)
	assert.True(t, p.ExpertCallBooked)
	require.NotNil(t, p.ExpertCallDate)
	assert.True(t, date.Equal(*p.ExpertCallDate))
}

func TestBullets(t *testing.T) {
	svc, _ := newTestReadinessService(t)

	b, err := svc.Bullets("a", domain.ResumeStyleImpact)
	require.NoError(t, err)
	assert.Equal(t, []string{"a impact"}, b)

	b, err = svc.Bullets("a", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a technical"}, b)

	_, err = svc.Bullets("a", "haiku")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEmptyCatalogScoresZero(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewReadinessService(catalog.New(nil), db.Completions(), db.Readiness(), db.Content())

	view, err := svc.GetProgress(context.Background(), sid)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Progress.ReadinessScore)
	assert.Empty(t, view.Projects)
}
