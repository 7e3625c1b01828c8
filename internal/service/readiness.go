package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
)

// ReadinessService drives per-project completion records and the
// session-wide resume readiness aggregate derived from them.
type ReadinessService struct {
	catalog     domain.ProjectCatalog
	completions domain.ProjectCompletionRepository
	readiness   domain.ResumeReadyRepository
	content     domain.ContentRepository
	now         func() time.Time
}

// NewReadinessService creates a new ReadinessService.
func NewReadinessService(
	catalog domain.ProjectCatalog,
	completions domain.ProjectCompletionRepository,
	readiness domain.ResumeReadyRepository,
	content domain.ContentRepository,
) *ReadinessService {
	return &ReadinessService{
		catalog:     catalog,
		completions: completions,
		readiness:   readiness,
		content:     content,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ToggleResult is the completion record after a step toggle.
type ToggleResult struct {
	Completion *domain.ProjectCompletion
	Outcome    domain.UpsertOutcome
}

// CompleteResult summarizes the aggregate after a project is completed.
type CompleteResult struct {
	Completion     *domain.ProjectCompletion
	Progress       *domain.ResumeReadyProgress
	ReadinessScore int
	CompletedCount int
	TotalProjects  int
}

// ProjectView is a catalog template annotated with one session's progress.
type ProjectView struct {
	Template       domain.ProjectTemplate
	Status         domain.ProjectStatus
	CompletedSteps []int
	StartedAt      *time.Time
	CompletedAt    *time.Time
	Completion     *domain.ProjectCompletion // nil when never started
}

// ProgressView is the full readiness picture for a session.
type ProgressView struct {
	Progress *domain.ResumeReadyProgress
	Projects []ProjectView
}

func (s *ReadinessService) template(projectID string) (domain.ProjectTemplate, error) {
	if projectID == "" {
		return domain.ProjectTemplate{}, fmt.Errorf("%w: projectId is required", domain.ErrInvalidInput)
	}
	t, ok := s.catalog.Get(projectID)
	if !ok {
		return domain.ProjectTemplate{}, fmt.Errorf("project %q: %w", projectID, domain.ErrNotFound)
	}
	return t, nil
}

// ToggleStep flips membership of stepIndex in the session's completed step
// set for the project, creating the completion record on first use.
func (s *ReadinessService) ToggleStep(ctx context.Context, sessionID, projectID string, stepIndex int) (*ToggleResult, error) {
	tmpl, err := s.template(projectID)
	if err != nil {
		return nil, err
	}
	if stepIndex < 0 || stepIndex >= tmpl.StepCount() {
		return nil, fmt.Errorf("%w: stepIndex must be between 0 and %d", domain.ErrInvalidInput, tmpl.StepCount()-1)
	}

	now := s.now()
	existing, err := s.completions.Get(ctx, sessionID, projectID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get completion: %w", err)
	}

	if existing == nil {
		c := &domain.ProjectCompletion{
			SessionID:      sessionID,
			ProjectID:      projectID,
			StartedAt:      &now,
			CompletedSteps: []int{stepIndex},
		}
		c.Status = StepStatus(c.CompletedSteps, tmpl.StepCount())
		if err := s.completions.Create(ctx, c); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, err
			}
			return nil, fmt.Errorf("create completion: %w", err)
		}
		if err := s.markStarted(ctx, sessionID); err != nil {
			return nil, err
		}
		return &ToggleResult{Completion: c, Outcome: domain.OutcomeCreated}, nil
	}

	wasCompleted := existing.Status == domain.ProjectStatusCompleted
	existing.CompletedSteps = ToggleStepIndex(existing.CompletedSteps, stepIndex)
	existing.Status = StepStatus(existing.CompletedSteps, tmpl.StepCount())
	if existing.StartedAt == nil {
		existing.StartedAt = &now
	}
	if err := s.completions.Update(ctx, existing); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("update completion: %w", err)
	}

	// Leaving the completed state changes the completed count.
	if wasCompleted {
		if _, err := s.recompute(ctx, sessionID); err != nil {
			return nil, err
		}
	}
	return &ToggleResult{Completion: existing, Outcome: domain.OutcomeUpdated}, nil
}

// markStarted moves the aggregate from not-started to in-progress.
func (s *ReadinessService) markStarted(ctx context.Context, sessionID string) error {
	p, err := s.getOrCreateProgress(ctx, sessionID)
	if err != nil {
		return err
	}
	if p.Status != domain.ReadinessNotStarted {
		return nil
	}
	p.Status = domain.ReadinessInProgress
	if err := s.readiness.Update(ctx, p); err != nil {
		return fmt.Errorf("update readiness: %w", err)
	}
	return nil
}

// CompleteProject forces the project into the completed state with every
// step checked, then rebuilds the session aggregate.
func (s *ReadinessService) CompleteProject(ctx context.Context, sessionID, projectID string, style domain.ResumeStyle) (*CompleteResult, error) {
	tmpl, err := s.template(projectID)
	if err != nil {
		return nil, err
	}
	if style != "" && !style.Valid() {
		return nil, fmt.Errorf("%w: unknown resume style %q", domain.ErrInvalidInput, style)
	}

	now := s.now()
	c, err := s.completions.Get(ctx, sessionID, projectID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get completion: %w", err)
	}

	create := c == nil
	if create {
		c = &domain.ProjectCompletion{SessionID: sessionID, ProjectID: projectID, StartedAt: &now}
	}
	c.Status = domain.ProjectStatusCompleted
	c.CompletedAt = &now
	c.CompletedSteps = AllSteps(tmpl.StepCount())
	switch {
	case style != "":
		c.SelectedResumeStyle = style
	case c.SelectedResumeStyle == "":
		c.SelectedResumeStyle = domain.ResumeStyleTechnical
	}

	if create {
		err = s.completions.Create(ctx, c)
	} else {
		err = s.completions.Update(ctx, c)
	}
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("save completion: %w", err)
	}

	p, err := s.recompute(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &CompleteResult{
		Completion:     c,
		Progress:       p,
		ReadinessScore: p.ReadinessScore,
		CompletedCount: len(p.CompletedProjects),
		TotalProjects:  len(s.catalog.All()),
	}, nil
}

// recompute rebuilds the aggregate from every completion row of the session
// and persists it in one write.
func (s *ReadinessService) recompute(ctx context.Context, sessionID string) (*domain.ResumeReadyProgress, error) {
	p, err := s.getOrCreateProgress(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	completions, err := s.completions.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}

	next := RecomputeReadiness(*p, completions, len(s.catalog.All()))
	if err := s.readiness.Update(ctx, &next); err != nil {
		return nil, fmt.Errorf("update readiness: %w", err)
	}
	return &next, nil
}

func (s *ReadinessService) getOrCreateProgress(ctx context.Context, sessionID string) (*domain.ResumeReadyProgress, error) {
	p, err := s.readiness.GetBySession(ctx, sessionID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get readiness: %w", err)
	}

	p = &domain.ResumeReadyProgress{
		SessionID:         sessionID,
		Status:            domain.ReadinessNotStarted,
		CompletedProjects: []domain.CompletedProjectSnapshot{},
	}
	if err := s.readiness.Create(ctx, p); err != nil {
		// Another request created it first.
		if errors.Is(err, domain.ErrConflict) {
			return s.readiness.GetBySession(ctx, sessionID)
		}
		return nil, fmt.Errorf("create readiness: %w", err)
	}
	return p, nil
}

// GetProgress returns the session aggregate, creating it on first read, with
// every catalog template annotated by the session's completion state. A
// stale aggregate is rebuilt before returning.
func (s *ReadinessService) GetProgress(ctx context.Context, sessionID string) (*ProgressView, error) {
	var (
		p           *domain.ResumeReadyProgress
		completions []domain.ProjectCompletion
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p, err = s.getOrCreateProgress(gctx, sessionID)
		return err
	})
	g.Go(func() error {
		var err error
		completions, err = s.completions.ListBySession(gctx, sessionID)
		if err != nil {
			return fmt.Errorf("list completions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	templates := s.catalog.All()
	if next := RecomputeReadiness(*p, completions, len(templates)); !sameAggregate(*p, next) {
		if err := s.readiness.Update(ctx, &next); err != nil {
			return nil, fmt.Errorf("reconcile readiness: %w", err)
		}
		p = &next
	}

	byProject := make(map[string]*domain.ProjectCompletion, len(completions))
	for i := range completions {
		byProject[completions[i].ProjectID] = &completions[i]
	}

	views := make([]ProjectView, 0, len(templates))
	for _, t := range templates {
		views = append(views, annotate(t, byProject[t.ID]))
	}
	return &ProgressView{Progress: p, Projects: views}, nil
}

func annotate(t domain.ProjectTemplate, c *domain.ProjectCompletion) ProjectView {
	v := ProjectView{Template: t, Status: domain.ProjectStatusNotStarted, CompletedSteps: []int{}}
	if c == nil {
		return v
	}
	v.Status = c.Status
	v.CompletedSteps = c.CompletedSteps
	if v.CompletedSteps == nil {
		v.CompletedSteps = []int{}
	}
	v.StartedAt = c.StartedAt
	v.CompletedAt = c.CompletedAt
	v.Completion = c
	return v
}

// GetProjectCompletion returns the template and the session's completion
// record, which is nil when the project was never started.
func (s *ReadinessService) GetProjectCompletion(ctx context.Context, sessionID, projectID string) (*ProjectView, error) {
	tmpl, err := s.template(projectID)
	if err != nil {
		return nil, err
	}
	c, err := s.completions.Get(ctx, sessionID, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			v := annotate(tmpl, nil)
			return &v, nil
		}
		return nil, fmt.Errorf("get completion: %w", err)
	}
	v := annotate(tmpl, c)
	return &v, nil
}

// editCompletion loads or creates the completion record, applies fn and saves it.
func (s *ReadinessService) editCompletion(ctx context.Context, sessionID, projectID string, fn func(*domain.ProjectCompletion)) (*domain.ProjectCompletion, error) {
	if _, err := s.template(projectID); err != nil {
		return nil, err
	}

	c, err := s.completions.Get(ctx, sessionID, projectID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get completion: %w", err)
	}
	if c == nil {
		now := s.now()
		c = &domain.ProjectCompletion{
			SessionID: sessionID,
			ProjectID: projectID,
			Status:    domain.ProjectStatusInProgress,
			StartedAt: &now,
		}
		fn(c)
		if err := s.completions.Create(ctx, c); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, err
			}
			return nil, fmt.Errorf("create completion: %w", err)
		}
		if err := s.markStarted(ctx, sessionID); err != nil {
			return nil, err
		}
		return c, nil
	}

	fn(c)
	if err := s.completions.Update(ctx, c); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("update completion: %w", err)
	}
	return c, nil
}

// MarkBulletsCopied records that the session copied the project's resume bullets.
func (s *ReadinessService) MarkBulletsCopied(ctx context.Context, sessionID, projectID string) (*domain.ProjectCompletion, error) {
	return s.editCompletion(ctx, sessionID, projectID, func(c *domain.ProjectCompletion) {
		c.BulletsCopied = true
	})
}

// RecordReviewedQuestions merges question ids into the project's reviewed
// set and refreshes the aggregate's reviewed-question count.
func (s *ReadinessService) RecordReviewedQuestions(ctx context.Context, sessionID, projectID string, questionIDs []int64) (*domain.ProjectCompletion, error) {
	if len(questionIDs) == 0 {
		return nil, fmt.Errorf("%w: questionIds is required", domain.ErrInvalidInput)
	}
	if _, err := s.template(projectID); err != nil {
		return nil, err
	}
	for _, id := range questionIDs {
		if _, err := s.content.GetQuestion(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("question %d: %w", id, domain.ErrNotFound)
			}
			return nil, fmt.Errorf("get question: %w", err)
		}
	}

	c, err := s.editCompletion(ctx, sessionID, projectID, func(c *domain.ProjectCompletion) {
		c.ReviewedQuestions = MergeIDs(c.ReviewedQuestions, questionIDs)
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.recompute(ctx, sessionID); err != nil {
		return nil, err
	}
	return c, nil
}

// BookExpertCall records a scheduled expert resume review on the aggregate.
func (s *ReadinessService) BookExpertCall(ctx context.Context, sessionID string, date time.Time) (*domain.ResumeReadyProgress, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}
	p, err := s.getOrCreateProgress(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	d := date.UTC()
	p.ExpertCallBooked = true
	p.ExpertCallDate = &d
	if err := s.readiness.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update readiness: %w", err)
	}
	return p, nil
}

// Bullets returns the template's resume bullets for a style. An empty style
// selects the technical variant.
func (s *ReadinessService) Bullets(projectID string, style domain.ResumeStyle) ([]string, error) {
	tmpl, err := s.template(projectID)
	if err != nil {
		return nil, err
	}
	if style == "" {
		style = domain.ResumeStyleTechnical
	}
	if !style.Valid() {
		return nil, fmt.Errorf("%w: unknown resume style %q", domain.ErrInvalidInput, style)
	}
	return slices.Clone(tmpl.ResumeBullets[style]), nil
}

// ToggleStepIndex returns steps with idx added if absent or removed if
// present. The result is sorted and steps is not modified.
func ToggleStepIndex(steps []int, idx int) []int {
	out := make([]int, 0, len(steps)+1)
	found := false
	for _, s := range steps {
		if s == idx {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, idx)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// StepStatus is tutorial-complete when every step is checked, else in-progress.
func StepStatus(steps []int, total int) domain.ProjectStatus {
	if total > 0 && len(steps) == total {
		return domain.ProjectStatusTutorialComplete
	}
	return domain.ProjectStatusInProgress
}

// AllSteps returns 0..n-1.
func AllSteps(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// MergeIDs returns the sorted union of a and b without duplicates.
func MergeIDs(a, b []int64) []int64 {
	out := make([]int64, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	slices.Sort(out)
	return slices.Compact(out)
}

// ReadinessScore is the rounded percentage of templates completed. It is 0
// for an empty catalog.
func ReadinessScore(completed, total int) int {
	if total <= 0 {
		return 0
	}
	score := int(math.Round(100 * float64(completed) / float64(total)))
	return min(max(score, 0), 100)
}

// RecomputeReadiness rebuilds the derived aggregate fields of prior from the
// session's completion rows. It is pure, so running it again on the same
// inputs yields the same aggregate.
func RecomputeReadiness(prior domain.ResumeReadyProgress, completions []domain.ProjectCompletion, totalTemplates int) domain.ResumeReadyProgress {
	next := prior
	next.CompletedProjects = []domain.CompletedProjectSnapshot{}
	next.ResumeLastUpdated = nil

	var reviewed []int64
	for _, c := range completions {
		reviewed = append(reviewed, c.ReviewedQuestions...)
		if c.Status != domain.ProjectStatusCompleted {
			continue
		}
		next.CompletedProjects = append(next.CompletedProjects, domain.CompletedProjectSnapshot{
			TemplateID:          c.ProjectID,
			CompletedAt:         c.CompletedAt,
			SelectedResumeStyle: c.SelectedResumeStyle,
			ReviewedQuestions:   slices.Clone(c.ReviewedQuestions),
		})
		if c.CompletedAt != nil && (next.ResumeLastUpdated == nil || c.CompletedAt.After(*next.ResumeLastUpdated)) {
			t := *c.CompletedAt
			next.ResumeLastUpdated = &t
		}
	}
	slices.Sort(reviewed)
	next.TotalQuestionsReviewed = len(slices.Compact(reviewed))

	completed := len(next.CompletedProjects)
	next.ReadinessScore = ReadinessScore(completed, totalTemplates)
	next.ResumeBulletsCount = completed * domain.BulletsPerProject

	switch {
	case totalTemplates > 0 && completed == totalTemplates:
		next.Status = domain.ReadinessCompleted
	case len(completions) > 0 || prior.Status != domain.ReadinessNotStarted:
		next.Status = domain.ReadinessInProgress
	default:
		next.Status = domain.ReadinessNotStarted
	}
	return next
}

// sameAggregate compares the fields RecomputeReadiness derives.
func sameAggregate(a, b domain.ResumeReadyProgress) bool {
	if a.ReadinessScore != b.ReadinessScore || a.Status != b.Status ||
		a.ResumeBulletsCount != b.ResumeBulletsCount ||
		a.TotalQuestionsReviewed != b.TotalQuestionsReviewed ||
		len(a.CompletedProjects) != len(b.CompletedProjects) {
		return false
	}
	for i := range a.CompletedProjects {
		if a.CompletedProjects[i].TemplateID != b.CompletedProjects[i].TemplateID ||
			a.CompletedProjects[i].SelectedResumeStyle != b.CompletedProjects[i].SelectedResumeStyle {
			return false
		}
	}
	return true
}
