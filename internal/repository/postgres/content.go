package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
)

// ContentRepository implements domain.ContentRepository using PostgreSQL.
type ContentRepository struct {
	pool *pgxpool.Pool
}

const questionColumns = `id, stage_id, title, prompt, answer, difficulty, tags, created_at, updated_at`

func (r *ContentRepository) ListStages(ctx context.Context) ([]domain.Stage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, slug, title, description, sort_order FROM stages ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}
	defer rows.Close()

	var stages []domain.Stage
	for rows.Next() {
		var s domain.Stage
		if err := rows.Scan(&s.ID, &s.Slug, &s.Title, &s.Description, &s.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan stage: %w", err)
		}
		stages = append(stages, s)
	}
	return stages, rows.Err()
}

func (r *ContentRepository) GetStageBySlug(ctx context.Context, slug string) (*domain.Stage, error) {
	s := &domain.Stage{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, slug, title, description, sort_order FROM stages WHERE slug = $1`, slug,
	).Scan(&s.ID, &s.Slug, &s.Title, &s.Description, &s.SortOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get stage: %w", err)
	}
	return s, nil
}

func (r *ContentRepository) UpsertStage(ctx context.Context, stage *domain.Stage) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO stages (slug, title, description, sort_order)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (slug) DO UPDATE SET title = $2, description = $3, sort_order = $4
		 RETURNING id`,
		stage.Slug, stage.Title, stage.Description, stage.SortOrder,
	).Scan(&stage.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert stage: %w", err)
	}
	return nil
}

func scanQuestion(row pgx.Row) (*domain.Question, error) {
	q := &domain.Question{}
	if err := row.Scan(&q.ID, &q.StageID, &q.Title, &q.Prompt, &q.Answer, &q.Difficulty,
		&q.Tags, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return nil, err
	}
	return q, nil
}

func (r *ContentRepository) ListQuestionsByStage(ctx context.Context, stageID int64) ([]domain.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE stage_id = $1 ORDER BY id`, stageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

func (r *ContentRepository) GetQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	q, err := scanQuestion(r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return q, nil
}

func (r *ContentRepository) FindQuestion(ctx context.Context, stageID int64, title string) (*domain.Question, error) {
	q, err := scanQuestion(r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE stage_id = $1 AND title = $2`, stageID, title))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find question: %w", err)
	}
	return q, nil
}

func (r *ContentRepository) CreateQuestion(ctx context.Context, q *domain.Question) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO questions (stage_id, title, prompt, answer, difficulty, tags)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		q.StageID, q.Title, q.Prompt, q.Answer, q.Difficulty, tagsOrEmpty(q.Tags),
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

func (r *ContentRepository) UpdateQuestion(ctx context.Context, q *domain.Question) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE questions SET stage_id = $1, title = $2, prompt = $3, answer = $4, difficulty = $5,
		 tags = $6, updated_at = NOW()
		 WHERE id = $7
		 RETURNING updated_at`,
		q.StageID, q.Title, q.Prompt, q.Answer, q.Difficulty, tagsOrEmpty(q.Tags), q.ID,
	).Scan(&q.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update question: %w", err)
	}
	return nil
}

// tagsOrEmpty keeps NOT NULL array columns from receiving a nil slice.
func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
