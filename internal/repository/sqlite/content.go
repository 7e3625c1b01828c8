package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
)

// ContentRepository implements domain.ContentRepository using SQLite.
type ContentRepository struct {
	db *sql.DB
}

// NewContentRepository creates a new SQLite-backed ContentRepository.
func NewContentRepository(db *DB) *ContentRepository {
	return &ContentRepository{db: db.SqlDB}
}

func (r *ContentRepository) ListStages(ctx context.Context) ([]domain.Stage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, slug, title, description, sort_order FROM stages ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()

	var stages []domain.Stage
	for rows.Next() {
		var s domain.Stage
		if err := rows.Scan(&s.ID, &s.Slug, &s.Title, &s.Description, &s.SortOrder); err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		stages = append(stages, s)
	}
	return stages, rows.Err()
}

func (r *ContentRepository) GetStageBySlug(ctx context.Context, slug string) (*domain.Stage, error) {
	s := &domain.Stage{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, slug, title, description, sort_order FROM stages WHERE slug = ?`, slug,
	).Scan(&s.ID, &s.Slug, &s.Title, &s.Description, &s.SortOrder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get stage: %w", err)
	}
	return s, nil
}

func (r *ContentRepository) UpsertStage(ctx context.Context, stage *domain.Stage) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO stages (slug, title, description, sort_order) VALUES (?, ?, ?, ?)
		 ON CONFLICT (slug) DO UPDATE SET title = excluded.title,
		 description = excluded.description, sort_order = excluded.sort_order
		 RETURNING id`,
		stage.Slug, stage.Title, stage.Description, stage.SortOrder,
	).Scan(&stage.ID)
	if err != nil {
		return fmt.Errorf("upsert stage: %w", err)
	}
	return nil
}

const questionColumns = `id, stage_id, title, prompt, answer, difficulty, tags, created_at, updated_at`

func scanQuestion(scan func(dest ...any) error) (*domain.Question, error) {
	q := &domain.Question{}
	var tags string
	if err := scan(&q.ID, &q.StageID, &q.Title, &q.Prompt, &q.Answer, &q.Difficulty, &tags, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return nil, err
	}
	decoded, err := decodeJSON[string](tags)
	if err != nil {
		return nil, err
	}
	q.Tags = decoded
	return q, nil
}

func (r *ContentRepository) ListQuestionsByStage(ctx context.Context, stageID int64) ([]domain.Question, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE stage_id = ? ORDER BY id`, stageID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

func (r *ContentRepository) GetQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	q, err := scanQuestion(r.db.QueryRowContext(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = ?`, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}
	return q, nil
}

func (r *ContentRepository) FindQuestion(ctx context.Context, stageID int64, title string) (*domain.Question, error) {
	q, err := scanQuestion(r.db.QueryRowContext(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE stage_id = ? AND title = ? ORDER BY id LIMIT 1`,
		stageID, title).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find question: %w", err)
	}
	return q, nil
}

func (r *ContentRepository) CreateQuestion(ctx context.Context, q *domain.Question) error {
	tags, err := encodeJSON(q.Tags)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO questions (stage_id, title, prompt, answer, difficulty, tags, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		q.StageID, q.Title, q.Prompt, q.Answer, q.Difficulty, tags, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get question id: %w", err)
	}

	q.ID = id
	q.CreatedAt = now
	q.UpdatedAt = now
	return nil
}

func (r *ContentRepository) UpdateQuestion(ctx context.Context, q *domain.Question) error {
	tags, err := encodeJSON(q.Tags)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE questions SET stage_id = ?, title = ?, prompt = ?, answer = ?, difficulty = ?, tags = ?, updated_at = ?
		 WHERE id = ?`,
		q.StageID, q.Title, q.Prompt, q.Answer, q.Difficulty, tags, now, q.ID,
	)
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	q.UpdatedAt = now
	return nil
}
