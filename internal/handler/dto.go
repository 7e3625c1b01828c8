package handler

import (
	"time"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/service"
)

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

// QuestionProgressDTO is the JSON representation of question progress.
type QuestionProgressDTO struct {
	ID           int64   `json:"id"`
	QuestionID   int64   `json:"questionId"`
	Completed    bool    `json:"completed"`
	CompletedAt  *string `json:"completedAt"`
	TimeSpent    int     `json:"timeSpent"`
	Notes        string  `json:"notes"`
	ViewedAnswer bool    `json:"viewedAnswer"`
	UpdatedAt    string  `json:"updatedAt"`
}

func toQuestionProgressDTO(p *domain.QuestionProgress) *QuestionProgressDTO {
	if p == nil {
		return nil
	}
	return &QuestionProgressDTO{
		ID:           p.ID,
		QuestionID:   p.QuestionID,
		Completed:    p.Completed,
		CompletedAt:  formatTime(p.CompletedAt),
		TimeSpent:    p.TimeSpent,
		Notes:        p.Notes,
		ViewedAnswer: p.ViewedAnswer,
		UpdatedAt:    p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// SolutionDTO is the JSON representation of a submitted solution.
type SolutionDTO struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"questionId"`
	Code       string `json:"code"`
	Language   string `json:"language"`
	UpdatedAt  string `json:"updatedAt"`
}

func toSolutionDTO(s *domain.UserSolution) *SolutionDTO {
	if s == nil {
		return nil
	}
	return &SolutionDTO{
		ID:         s.ID,
		QuestionID: s.QuestionID,
		Code:       s.Code,
		Language:   s.Language,
		UpdatedAt:  s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// CompletionDTO is the JSON representation of a project completion record.
type CompletionDTO struct {
	ProjectID           string  `json:"projectId"`
	Status              string  `json:"status"`
	StartedAt           *string `json:"startedAt"`
	CompletedAt         *string `json:"completedAt"`
	CompletedSteps      []int   `json:"completedSteps"`
	SelectedResumeStyle string  `json:"selectedResumeStyle,omitempty"`
	BulletsCopied       bool    `json:"bulletsCopied"`
	ReviewedQuestions   []int64 `json:"reviewedQuestions"`
}

func toCompletionDTO(c *domain.ProjectCompletion) *CompletionDTO {
	if c == nil {
		return nil
	}
	dto := &CompletionDTO{
		ProjectID:           c.ProjectID,
		Status:              string(c.Status),
		StartedAt:           formatTime(c.StartedAt),
		CompletedAt:         formatTime(c.CompletedAt),
		CompletedSteps:      c.CompletedSteps,
		SelectedResumeStyle: string(c.SelectedResumeStyle),
		BulletsCopied:       c.BulletsCopied,
		ReviewedQuestions:   c.ReviewedQuestions,
	}
	if dto.CompletedSteps == nil {
		dto.CompletedSteps = []int{}
	}
	if dto.ReviewedQuestions == nil {
		dto.ReviewedQuestions = []int64{}
	}
	return dto
}

// StepDTO is one tutorial step.
type StepDTO struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ProjectDTO is a catalog template.
type ProjectDTO struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Summary       string              `json:"summary"`
	Difficulty    string              `json:"difficulty"`
	Skills        []string            `json:"skills"`
	TutorialSteps []StepDTO           `json:"tutorialSteps"`
	ResumeBullets map[string][]string `json:"resumeBullets"`
}

func toProjectDTO(t domain.ProjectTemplate) ProjectDTO {
	dto := ProjectDTO{
		ID:            t.ID,
		Title:         t.Title,
		Summary:       t.Summary,
		Difficulty:    t.Difficulty,
		Skills:        t.Skills,
		TutorialSteps: make([]StepDTO, 0, len(t.TutorialSteps)),
		ResumeBullets: make(map[string][]string, len(t.ResumeBullets)),
	}
	for _, s := range t.TutorialSteps {
		dto.TutorialSteps = append(dto.TutorialSteps, StepDTO{Title: s.Title, Body: s.Body})
	}
	for style, bullets := range t.ResumeBullets {
		dto.ResumeBullets[string(style)] = bullets
	}
	return dto
}

// ProjectProgressDTO is a template annotated with the session's progress.
type ProjectProgressDTO struct {
	ProjectDTO
	Status         string  `json:"status"`
	CompletedSteps []int   `json:"completedSteps"`
	StartedAt      *string `json:"startedAt"`
	CompletedAt    *string `json:"completedAt"`
}

func toProjectProgressDTO(v service.ProjectView) ProjectProgressDTO {
	return ProjectProgressDTO{
		ProjectDTO:     toProjectDTO(v.Template),
		Status:         string(v.Status),
		CompletedSteps: v.CompletedSteps,
		StartedAt:      formatTime(v.StartedAt),
		CompletedAt:    formatTime(v.CompletedAt),
	}
}

// SnapshotDTO is a completed project entry of the aggregate.
type SnapshotDTO struct {
	TemplateID          string  `json:"templateId"`
	CompletedAt         *string `json:"completedAt"`
	SelectedResumeStyle string  `json:"selectedResumeStyle"`
	ReviewedQuestions   []int64 `json:"reviewedQuestions"`
}

// ReadinessDTO is the JSON representation of the session aggregate.
type ReadinessDTO struct {
	ReadinessScore         int           `json:"readinessScore"`
	Status                 string        `json:"status"`
	CompletedProjects      []SnapshotDTO `json:"completedProjects"`
	ResumeBulletsCount     int           `json:"resumeBulletsCount"`
	ResumeLastUpdated      *string       `json:"resumeLastUpdated"`
	TotalQuestionsReviewed int           `json:"totalQuestionsReviewed"`
	ExpertCallBooked       bool          `json:"expertCallBooked"`
	ExpertCallDate         *string       `json:"expertCallDate"`
}

func toReadinessDTO(p *domain.ResumeReadyProgress) ReadinessDTO {
	dto := ReadinessDTO{
		ReadinessScore:         p.ReadinessScore,
		Status:                 string(p.Status),
		CompletedProjects:      make([]SnapshotDTO, 0, len(p.CompletedProjects)),
		ResumeBulletsCount:     p.ResumeBulletsCount,
		ResumeLastUpdated:      formatTime(p.ResumeLastUpdated),
		TotalQuestionsReviewed: p.TotalQuestionsReviewed,
		ExpertCallBooked:       p.ExpertCallBooked,
		ExpertCallDate:         formatTime(p.ExpertCallDate),
	}
	for _, s := range p.CompletedProjects {
		reviewed := s.ReviewedQuestions
		if reviewed == nil {
			reviewed = []int64{}
		}
		dto.CompletedProjects = append(dto.CompletedProjects, SnapshotDTO{
			TemplateID:          s.TemplateID,
			CompletedAt:         formatTime(s.CompletedAt),
			SelectedResumeStyle: string(s.SelectedResumeStyle),
			ReviewedQuestions:   reviewed,
		})
	}
	return dto
}

// StageDTO is the JSON representation of a stage.
type StageDTO struct {
	ID          int64  `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SortOrder   int    `json:"sortOrder"`
}

func toStageDTO(s domain.Stage) StageDTO {
	return StageDTO{ID: s.ID, Slug: s.Slug, Title: s.Title, Description: s.Description, SortOrder: s.SortOrder}
}

// QuestionDTO is the JSON representation of a question.
type QuestionDTO struct {
	ID         int64    `json:"id"`
	StageID    int64    `json:"stageId"`
	Title      string   `json:"title"`
	Prompt     string   `json:"prompt"`
	Answer     string   `json:"answer"`
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags"`
}

func toQuestionDTO(q *domain.Question) QuestionDTO {
	tags := q.Tags
	if tags == nil {
		tags = []string{}
	}
	return QuestionDTO{
		ID:         q.ID,
		StageID:    q.StageID,
		Title:      q.Title,
		Prompt:     q.Prompt,
		Answer:     q.Answer,
		Difficulty: q.Difficulty,
		Tags:       tags,
	}
}
