package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
)

// SolutionRepository implements domain.SolutionRepository using SQLite.
type SolutionRepository struct {
	db *sql.DB
}

// NewSolutionRepository creates a new SQLite-backed SolutionRepository.
func NewSolutionRepository(db *DB) *SolutionRepository {
	return &SolutionRepository{db: db.SqlDB}
}

func (r *SolutionRepository) Get(ctx context.Context, sessionID string, questionID int64) (*domain.UserSolution, error) {
	s := &domain.UserSolution{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, session_id, question_id, code, language, created_at, updated_at
		 FROM user_solutions WHERE session_id = ? AND question_id = ?`, sessionID, questionID,
	).Scan(&s.ID, &s.SessionID, &s.QuestionID, &s.Code, &s.Language, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get solution: %w", err)
	}
	return s, nil
}

func (r *SolutionRepository) Create(ctx context.Context, s *domain.UserSolution) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO user_solutions (session_id, question_id, code, language, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.SessionID, s.QuestionID, s.Code, s.Language, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert solution: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get solution id: %w", err)
	}

	s.ID = id
	s.CreatedAt = now
	s.UpdatedAt = now
	return nil
}

func (r *SolutionRepository) Update(ctx context.Context, s *domain.UserSolution) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE user_solutions SET code = ?, language = ?, updated_at = ? WHERE id = ?`,
		s.Code, s.Language, now, s.ID,
	)
	if err != nil {
		return fmt.Errorf("update solution: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	s.UpdatedAt = now
	return nil
}
