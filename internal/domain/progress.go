package domain

import (
	"context"
	"time"
)

// UpsertOutcome tells callers whether an upsert inserted or modified a row.
type UpsertOutcome string

const (
	OutcomeCreated UpsertOutcome = "created"
	OutcomeUpdated UpsertOutcome = "updated"
)

// DefaultSolutionLanguage is used when a submission does not name a language.
const DefaultSolutionLanguage = "python"

// QuestionProgress tracks one session's work on one question.
type QuestionProgress struct {
	ID           int64
	SessionID    string
	QuestionID   int64
	Completed    bool
	CompletedAt  *time.Time // Stamped on the false -> true transition, never cleared.
	TimeSpent    int        // Seconds
	Notes        string
	ViewedAnswer bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// QuestionProgressPatch carries the fields a client supplied. Nil means "leave as is".
type QuestionProgressPatch struct {
	Completed    *bool
	TimeSpent    *int
	Notes        *string
	ViewedAnswer *bool
}

// QuestionProgressSummary aggregates a session's question progress rows.
type QuestionProgressSummary struct {
	Started       int
	Completed     int
	ViewedAnswers int
	TimeSpent     int
}

type QuestionProgressRepository interface {
	Get(ctx context.Context, sessionID string, questionID int64) (*QuestionProgress, error)
	Create(ctx context.Context, p *QuestionProgress) error
	Update(ctx context.Context, p *QuestionProgress) error
	SummaryBySession(ctx context.Context, sessionID string) (QuestionProgressSummary, error)
}

// UserSolution is the latest code a session submitted for a question.
// Resubmission overwrites; there is no history.
type UserSolution struct {
	ID         int64
	SessionID  string
	QuestionID int64
	Code       string
	Language   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SolutionPatch carries the supplied solution fields.
type SolutionPatch struct {
	Code     *string
	Language *string
}

type SolutionRepository interface {
	Get(ctx context.Context, sessionID string, questionID int64) (*UserSolution, error)
	Create(ctx context.Context, s *UserSolution) error
	Update(ctx context.Context, s *UserSolution) error
}
