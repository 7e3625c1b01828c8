package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
)

// QuestionProgressRepository implements domain.QuestionProgressRepository using SQLite.
type QuestionProgressRepository struct {
	db *sql.DB
}

// NewQuestionProgressRepository creates a new SQLite-backed QuestionProgressRepository.
func NewQuestionProgressRepository(db *DB) *QuestionProgressRepository {
	return &QuestionProgressRepository{db: db.SqlDB}
}

func (r *QuestionProgressRepository) Get(ctx context.Context, sessionID string, questionID int64) (*domain.QuestionProgress, error) {
	p := &domain.QuestionProgress{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, session_id, question_id, completed, completed_at, time_spent, notes,
		 viewed_answer, created_at, updated_at
		 FROM question_progress WHERE session_id = ? AND question_id = ?`, sessionID, questionID,
	).Scan(&p.ID, &p.SessionID, &p.QuestionID, &p.Completed, &p.CompletedAt, &p.TimeSpent,
		&p.Notes, &p.ViewedAnswer, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get question progress: %w", err)
	}
	return p, nil
}

func (r *QuestionProgressRepository) Create(ctx context.Context, p *domain.QuestionProgress) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO question_progress (session_id, question_id, completed, completed_at, time_spent,
		 notes, viewed_answer, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.SessionID, p.QuestionID, p.Completed, p.CompletedAt, p.TimeSpent,
		p.Notes, p.ViewedAnswer, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert question progress: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get question progress id: %w", err)
	}

	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func (r *QuestionProgressRepository) Update(ctx context.Context, p *domain.QuestionProgress) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE question_progress SET completed = ?, completed_at = ?, time_spent = ?, notes = ?,
		 viewed_answer = ?, updated_at = ?
		 WHERE id = ?`,
		p.Completed, p.CompletedAt, p.TimeSpent, p.Notes, p.ViewedAnswer, now, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update question progress: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	p.UpdatedAt = now
	return nil
}

func (r *QuestionProgressRepository) SummaryBySession(ctx context.Context, sessionID string) (domain.QuestionProgressSummary, error) {
	var s domain.QuestionProgressSummary
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		 COALESCE(SUM(completed), 0),
		 COALESCE(SUM(viewed_answer), 0),
		 COALESCE(SUM(time_spent), 0)
		 FROM question_progress WHERE session_id = ?`, sessionID,
	).Scan(&s.Started, &s.Completed, &s.ViewedAnswers, &s.TimeSpent)
	if err != nil {
		return s, fmt.Errorf("summarize question progress: %w", err)
	}
	return s, nil
}
