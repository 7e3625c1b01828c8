package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
)

// QuestionProgressRepository implements domain.QuestionProgressRepository using PostgreSQL.
type QuestionProgressRepository struct {
	pool *pgxpool.Pool
}

func (r *QuestionProgressRepository) Get(ctx context.Context, sessionID string, questionID int64) (*domain.QuestionProgress, error) {
	p := &domain.QuestionProgress{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, session_id, question_id, completed, completed_at, time_spent, notes,
		 viewed_answer, created_at, updated_at
		 FROM question_progress WHERE session_id = $1 AND question_id = $2`, sessionID, questionID,
	).Scan(&p.ID, &p.SessionID, &p.QuestionID, &p.Completed, &p.CompletedAt, &p.TimeSpent,
		&p.Notes, &p.ViewedAnswer, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get question progress: %w", err)
	}
	return p, nil
}

func (r *QuestionProgressRepository) Create(ctx context.Context, p *domain.QuestionProgress) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO question_progress (session_id, question_id, completed, completed_at, time_spent,
		 notes, viewed_answer)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		p.SessionID, p.QuestionID, p.Completed, p.CompletedAt, p.TimeSpent, p.Notes, p.ViewedAnswer,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("failed to create question progress: %w", err)
	}
	return nil
}

func (r *QuestionProgressRepository) Update(ctx context.Context, p *domain.QuestionProgress) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE question_progress SET completed = $1, completed_at = $2, time_spent = $3, notes = $4,
		 viewed_answer = $5, updated_at = NOW()
		 WHERE id = $6
		 RETURNING updated_at`,
		p.Completed, p.CompletedAt, p.TimeSpent, p.Notes, p.ViewedAnswer, p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update question progress: %w", err)
	}
	return nil
}

func (r *QuestionProgressRepository) SummaryBySession(ctx context.Context, sessionID string) (domain.QuestionProgressSummary, error) {
	var s domain.QuestionProgressSummary
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE completed),
		        COUNT(*) FILTER (WHERE viewed_answer),
		        COALESCE(SUM(time_spent), 0)
		 FROM question_progress WHERE session_id = $1`, sessionID,
	).Scan(&s.Started, &s.Completed, &s.ViewedAnswers, &s.TimeSpent)
	if err != nil {
		return s, fmt.Errorf("failed to summarize question progress: %w", err)
	}
	return s, nil
}

// SolutionRepository implements domain.SolutionRepository using PostgreSQL.
type SolutionRepository struct {
	pool *pgxpool.Pool
}

func (r *SolutionRepository) Get(ctx context.Context, sessionID string, questionID int64) (*domain.UserSolution, error) {
	s := &domain.UserSolution{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, session_id, question_id, code, language, created_at, updated_at
		 FROM user_solutions WHERE session_id = $1 AND question_id = $2`, sessionID, questionID,
	).Scan(&s.ID, &s.SessionID, &s.QuestionID, &s.Code, &s.Language, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get solution: %w", err)
	}
	return s, nil
}

func (r *SolutionRepository) Create(ctx context.Context, s *domain.UserSolution) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO user_solutions (session_id, question_id, code, language)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		s.SessionID, s.QuestionID, s.Code, s.Language,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("failed to create solution: %w", err)
	}
	return nil
}

func (r *SolutionRepository) Update(ctx context.Context, s *domain.UserSolution) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE user_solutions SET code = $1, language = $2, updated_at = NOW()
		 WHERE id = $3
		 RETURNING updated_at`,
		s.Code, s.Language, s.ID,
	).Scan(&s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update solution: %w", err)
	}
	return nil
}
