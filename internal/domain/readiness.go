package domain

import (
	"context"
	"time"
)

// ReadinessStatus is the session-wide resume readiness state.
type ReadinessStatus string

const (
	ReadinessNotStarted ReadinessStatus = "not-started"
	ReadinessInProgress ReadinessStatus = "in-progress"
	ReadinessCompleted  ReadinessStatus = "completed"
)

// BulletsPerProject is the number of resume bullet style variants each
// completed project contributes.
const BulletsPerProject = 3

// CompletedProjectSnapshot is the denormalized copy of a completed project
// stored on the aggregate row.
type CompletedProjectSnapshot struct {
	TemplateID          string      `json:"templateId"`
	CompletedAt         *time.Time  `json:"completedAt"`
	SelectedResumeStyle ResumeStyle `json:"selectedResumeStyle"`
	ReviewedQuestions   []int64     `json:"reviewedQuestions"`
}

// ResumeReadyProgress is the materialized per-session aggregate. It is never
// authored directly; it is rebuilt from ProjectCompletion rows.
type ResumeReadyProgress struct {
	ID                     int64
	SessionID              string
	ReadinessScore         int
	Status                 ReadinessStatus
	CompletedProjects      []CompletedProjectSnapshot
	ResumeBulletsCount     int
	ResumeLastUpdated      *time.Time
	TotalQuestionsReviewed int
	ExpertCallBooked       bool
	ExpertCallDate         *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

type ResumeReadyRepository interface {
	GetBySession(ctx context.Context, sessionID string) (*ResumeReadyProgress, error)
	Create(ctx context.Context, p *ResumeReadyProgress) error
	Update(ctx context.Context, p *ResumeReadyProgress) error
}
