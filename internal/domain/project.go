package domain

import (
	"context"
	"time"
)

// ProjectStatus is the per-session state of a project template.
type ProjectStatus string

const (
	ProjectStatusNotStarted       ProjectStatus = "not-started"
	ProjectStatusInProgress       ProjectStatus = "in-progress"
	ProjectStatusTutorialComplete ProjectStatus = "tutorial-complete"
	ProjectStatusCompleted        ProjectStatus = "completed"
)

// ProjectCompletion tracks a session's progress through one project template.
type ProjectCompletion struct {
	ID                  int64
	SessionID           string
	ProjectID           string
	Status              ProjectStatus
	StartedAt           *time.Time
	CompletedAt         *time.Time
	CompletedSteps      []int // Sorted, each in [0, template step count)
	SelectedResumeStyle ResumeStyle
	BulletsCopied       bool
	ReviewedQuestions   []int64
	// Version is bumped by every update. Updates carrying a stale version fail
	// with ErrConflict instead of overwriting a concurrent toggle.
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProjectCompletionRepository interface {
	Get(ctx context.Context, sessionID, projectID string) (*ProjectCompletion, error)
	ListBySession(ctx context.Context, sessionID string) ([]ProjectCompletion, error)
	Create(ctx context.Context, c *ProjectCompletion) error
	Update(ctx context.Context, c *ProjectCompletion) error
}
