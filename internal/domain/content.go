package domain

import (
	"context"
	"time"
)

// Stage groups interview questions into a learning stage (e.g. "ML fundamentals").
type Stage struct {
	ID          int64
	Slug        string
	Title       string
	Description string
	SortOrder   int
}

// Question is a single interview question with its reference answer.
type Question struct {
	ID         int64
	StageID    int64
	Title      string
	Prompt     string
	Answer     string
	Difficulty string // "easy", "medium", "hard"
	Tags       []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StageSeed is a stage and the questions seeded into it on startup.
type StageSeed struct {
	Stage     Stage
	Questions []Question
}

// ContentRepository handles stages and questions curated by admins.
type ContentRepository interface {
	ListStages(ctx context.Context) ([]Stage, error)
	GetStageBySlug(ctx context.Context, slug string) (*Stage, error)
	// UpsertStage inserts the stage or updates the existing row with the same slug.
	UpsertStage(ctx context.Context, stage *Stage) error

	ListQuestionsByStage(ctx context.Context, stageID int64) ([]Question, error)
	GetQuestion(ctx context.Context, id int64) (*Question, error)
	FindQuestion(ctx context.Context, stageID int64, title string) (*Question, error)
	CreateQuestion(ctx context.Context, q *Question) error
	UpdateQuestion(ctx context.Context, q *Question) error
}
