package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
)

// ProgressService records per-question progress and submitted solutions.
type ProgressService struct {
	progress  domain.QuestionProgressRepository
	solutions domain.SolutionRepository
	content   domain.ContentRepository
	now       func() time.Time
}

// NewProgressService creates a new ProgressService.
func NewProgressService(progress domain.QuestionProgressRepository, solutions domain.SolutionRepository, content domain.ContentRepository) *ProgressService {
	return &ProgressService{
		progress:  progress,
		solutions: solutions,
		content:   content,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *ProgressService) requireQuestion(ctx context.Context, questionID int64) error {
	if questionID <= 0 {
		return fmt.Errorf("%w: questionId is required", domain.ErrInvalidInput)
	}
	if _, err := s.content.GetQuestion(ctx, questionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("question %d: %w", questionID, domain.ErrNotFound)
		}
		return fmt.Errorf("get question: %w", err)
	}
	return nil
}

// GetProgress returns the session's progress on a question, or ErrNotFound.
func (s *ProgressService) GetProgress(ctx context.Context, sessionID string, questionID int64) (*domain.QuestionProgress, error) {
	if questionID <= 0 {
		return nil, fmt.Errorf("%w: questionId is required", domain.ErrInvalidInput)
	}
	return s.progress.Get(ctx, sessionID, questionID)
}

// UpsertProgress applies the supplied fields to the session's progress row,
// creating it with defaults when absent.
func (s *ProgressService) UpsertProgress(ctx context.Context, sessionID string, questionID int64, patch domain.QuestionProgressPatch) (*domain.QuestionProgress, domain.UpsertOutcome, error) {
	if patch.TimeSpent != nil && *patch.TimeSpent < 0 {
		return nil, "", fmt.Errorf("%w: timeSpent must not be negative", domain.ErrInvalidInput)
	}
	if err := s.requireQuestion(ctx, questionID); err != nil {
		return nil, "", err
	}

	now := s.now()
	p, err := s.progress.Get(ctx, sessionID, questionID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, "", fmt.Errorf("get progress: %w", err)
		}
		p = &domain.QuestionProgress{SessionID: sessionID, QuestionID: questionID}
		ApplyQuestionPatch(p, patch, now)
		if err := s.progress.Create(ctx, p); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, "", err
			}
			return nil, "", fmt.Errorf("create progress: %w", err)
		}
		return p, domain.OutcomeCreated, nil
	}

	ApplyQuestionPatch(p, patch, now)
	if err := s.progress.Update(ctx, p); err != nil {
		return nil, "", fmt.Errorf("update progress: %w", err)
	}
	return p, domain.OutcomeUpdated, nil
}

// ApplyQuestionPatch copies the supplied fields onto p. CompletedAt is
// stamped on a false -> true transition and kept when completed goes back
// to false.
func ApplyQuestionPatch(p *domain.QuestionProgress, patch domain.QuestionProgressPatch, now time.Time) {
	if patch.Completed != nil {
		if *patch.Completed && !p.Completed {
			p.CompletedAt = &now
		}
		p.Completed = *patch.Completed
	}
	if patch.TimeSpent != nil {
		p.TimeSpent = *patch.TimeSpent
	}
	if patch.Notes != nil {
		p.Notes = *patch.Notes
	}
	if patch.ViewedAnswer != nil {
		p.ViewedAnswer = *patch.ViewedAnswer
	}
}

// Summary aggregates the session's question progress.
func (s *ProgressService) Summary(ctx context.Context, sessionID string) (domain.QuestionProgressSummary, error) {
	return s.progress.SummaryBySession(ctx, sessionID)
}

// GetSolution returns the session's latest solution for a question, or ErrNotFound.
func (s *ProgressService) GetSolution(ctx context.Context, sessionID string, questionID int64) (*domain.UserSolution, error) {
	if questionID <= 0 {
		return nil, fmt.Errorf("%w: questionId is required", domain.ErrInvalidInput)
	}
	return s.solutions.Get(ctx, sessionID, questionID)
}

// SaveSolution overwrites the session's solution for a question.
func (s *ProgressService) SaveSolution(ctx context.Context, sessionID string, questionID int64, patch domain.SolutionPatch) (*domain.UserSolution, domain.UpsertOutcome, error) {
	if err := s.requireQuestion(ctx, questionID); err != nil {
		return nil, "", err
	}

	sol, err := s.solutions.Get(ctx, sessionID, questionID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, "", fmt.Errorf("get solution: %w", err)
		}
		sol = &domain.UserSolution{SessionID: sessionID, QuestionID: questionID, Language: domain.DefaultSolutionLanguage}
		applySolutionPatch(sol, patch)
		if err := s.solutions.Create(ctx, sol); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, "", err
			}
			return nil, "", fmt.Errorf("create solution: %w", err)
		}
		return sol, domain.OutcomeCreated, nil
	}

	applySolutionPatch(sol, patch)
	if err := s.solutions.Update(ctx, sol); err != nil {
		return nil, "", fmt.Errorf("update solution: %w", err)
	}
	return sol, domain.OutcomeUpdated, nil
}

func applySolutionPatch(sol *domain.UserSolution, patch domain.SolutionPatch) {
	if patch.Code != nil {
		sol.Code = *patch.Code
	}
	if patch.Language != nil && *patch.Language != "" {
		sol.Language = *patch.Language
	}
}
