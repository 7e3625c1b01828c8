package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
)

// ContentService manages interview stages and questions.
type ContentService struct {
	content domain.ContentRepository
}

// NewContentService creates a new ContentService.
func NewContentService(content domain.ContentRepository) *ContentService {
	return &ContentService{content: content}
}

// SeedDefaults upserts the given stages and creates any question missing by
// title. Existing questions are left untouched so admin edits survive restarts.
func (s *ContentService) SeedDefaults(ctx context.Context, seeds []domain.StageSeed) error {
	for _, seed := range seeds {
		stage := seed.Stage
		if err := s.content.UpsertStage(ctx, &stage); err != nil {
			return fmt.Errorf("seed stage %s: %w", stage.Slug, err)
		}

		for _, q := range seed.Questions {
			_, err := s.content.FindQuestion(ctx, stage.ID, q.Title)
			if err == nil {
				continue
			}
			if !errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("check question %q: %w", q.Title, err)
			}
			q.StageID = stage.ID
			if err := s.content.CreateQuestion(ctx, &q); err != nil {
				return fmt.Errorf("seed question %q: %w", q.Title, err)
			}
		}
	}
	return nil
}

// ListStages returns stages in display order.
func (s *ContentService) ListStages(ctx context.Context) ([]domain.Stage, error) {
	return s.content.ListStages(ctx)
}

// GetStage returns a stage and its questions by slug.
func (s *ContentService) GetStage(ctx context.Context, slug string) (*domain.Stage, []domain.Question, error) {
	stage, err := s.content.GetStageBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	questions, err := s.content.ListQuestionsByStage(ctx, stage.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list questions: %w", err)
	}
	return stage, questions, nil
}

func (s *ContentService) GetQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	return s.content.GetQuestion(ctx, id)
}

func validateQuestion(q *domain.Question) error {
	q.Title = strings.TrimSpace(q.Title)
	if q.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if q.StageID <= 0 {
		return fmt.Errorf("%w: stageId is required", domain.ErrInvalidInput)
	}
	switch q.Difficulty {
	case "":
		q.Difficulty = "medium"
	case "easy", "medium", "hard":
	default:
		return fmt.Errorf("%w: difficulty must be easy, medium or hard", domain.ErrInvalidInput)
	}
	return nil
}

// CreateQuestion validates and stores a new question.
func (s *ContentService) CreateQuestion(ctx context.Context, q *domain.Question) error {
	if err := validateQuestion(q); err != nil {
		return err
	}
	if err := s.content.CreateQuestion(ctx, q); err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}

// UpdateQuestion validates and overwrites an existing question.
func (s *ContentService) UpdateQuestion(ctx context.Context, q *domain.Question) error {
	if err := validateQuestion(q); err != nil {
		return err
	}
	if err := s.content.UpdateQuestion(ctx, q); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("update question: %w", err)
	}
	return nil
}
