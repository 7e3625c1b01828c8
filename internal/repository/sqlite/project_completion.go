package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
)

// ProjectCompletionRepository implements domain.ProjectCompletionRepository using SQLite.
type ProjectCompletionRepository struct {
	db *sql.DB
}

// NewProjectCompletionRepository creates a new SQLite-backed ProjectCompletionRepository.
func NewProjectCompletionRepository(db *DB) *ProjectCompletionRepository {
	return &ProjectCompletionRepository{db: db.SqlDB}
}

const completionColumns = `id, session_id, project_id, status, started_at, completed_at, completed_steps,
	selected_resume_style, bullets_copied, reviewed_questions, version, created_at, updated_at`

func scanCompletion(scan func(dest ...any) error) (*domain.ProjectCompletion, error) {
	c := &domain.ProjectCompletion{}
	var steps, reviewed string
	if err := scan(&c.ID, &c.SessionID, &c.ProjectID, &c.Status, &c.StartedAt, &c.CompletedAt, &steps,
		&c.SelectedResumeStyle, &c.BulletsCopied, &reviewed, &c.Version, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	var err error
	if c.CompletedSteps, err = decodeJSON[int](steps); err != nil {
		return nil, err
	}
	if c.ReviewedQuestions, err = decodeJSON[int64](reviewed); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ProjectCompletionRepository) Get(ctx context.Context, sessionID, projectID string) (*domain.ProjectCompletion, error) {
	c, err := scanCompletion(r.db.QueryRowContext(ctx,
		`SELECT `+completionColumns+` FROM project_completions WHERE session_id = ? AND project_id = ?`,
		sessionID, projectID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get project completion: %w", err)
	}
	return c, nil
}

func (r *ProjectCompletionRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.ProjectCompletion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+completionColumns+` FROM project_completions WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list project completions: %w", err)
	}
	defer rows.Close()

	var completions []domain.ProjectCompletion
	for rows.Next() {
		c, err := scanCompletion(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan project completion: %w", err)
		}
		completions = append(completions, *c)
	}
	return completions, rows.Err()
}

func (r *ProjectCompletionRepository) Create(ctx context.Context, c *domain.ProjectCompletion) error {
	steps, err := encodeJSON(c.CompletedSteps)
	if err != nil {
		return err
	}
	reviewed, err := encodeJSON(c.ReviewedQuestions)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO project_completions (session_id, project_id, status, started_at, completed_at,
		 completed_steps, selected_resume_style, bullets_copied, reviewed_questions, version, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		c.SessionID, c.ProjectID, c.Status, c.StartedAt, c.CompletedAt,
		steps, c.SelectedResumeStyle, c.BulletsCopied, reviewed, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert project completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get project completion id: %w", err)
	}

	c.ID = id
	c.Version = 1
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

// Update writes c only if the stored version still equals c.Version.
func (r *ProjectCompletionRepository) Update(ctx context.Context, c *domain.ProjectCompletion) error {
	steps, err := encodeJSON(c.CompletedSteps)
	if err != nil {
		return err
	}
	reviewed, err := encodeJSON(c.ReviewedQuestions)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE project_completions SET status = ?, started_at = ?, completed_at = ?, completed_steps = ?,
		 selected_resume_style = ?, bullets_copied = ?, reviewed_questions = ?,
		 version = version + 1, updated_at = ?
		 WHERE id = ? AND version = ?`,
		c.Status, c.StartedAt, c.CompletedAt, steps,
		c.SelectedResumeStyle, c.BulletsCopied, reviewed, now,
		c.ID, c.Version,
	)
	if err != nil {
		return fmt.Errorf("update project completion: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return r.missOrConflict(ctx, c.ID)
	}

	c.Version++
	c.UpdatedAt = now
	return nil
}

func (r *ProjectCompletionRepository) missOrConflict(ctx context.Context, id int64) error {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM project_completions WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("check project completion: %w", err)
	}
	return domain.ErrConflict
}
