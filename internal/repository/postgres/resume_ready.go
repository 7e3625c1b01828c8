package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
)

// ProjectCompletionRepository implements domain.ProjectCompletionRepository using PostgreSQL.
type ProjectCompletionRepository struct {
	pool *pgxpool.Pool
}

const completionColumns = `id, session_id, project_id, status, started_at, completed_at, completed_steps,
	selected_resume_style, bullets_copied, reviewed_questions, version, created_at, updated_at`

func scanCompletion(row pgx.Row) (*domain.ProjectCompletion, error) {
	c := &domain.ProjectCompletion{}
	var status, style string
	if err := row.Scan(&c.ID, &c.SessionID, &c.ProjectID, &status, &c.StartedAt, &c.CompletedAt,
		&c.CompletedSteps, &style, &c.BulletsCopied, &c.ReviewedQuestions, &c.Version,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Status = domain.ProjectStatus(status)
	c.SelectedResumeStyle = domain.ResumeStyle(style)
	return c, nil
}

func (r *ProjectCompletionRepository) Get(ctx context.Context, sessionID, projectID string) (*domain.ProjectCompletion, error) {
	c, err := scanCompletion(r.pool.QueryRow(ctx,
		`SELECT `+completionColumns+` FROM project_completions WHERE session_id = $1 AND project_id = $2`,
		sessionID, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project completion: %w", err)
	}
	return c, nil
}

func (r *ProjectCompletionRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.ProjectCompletion, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+completionColumns+` FROM project_completions WHERE session_id = $1 ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project completions: %w", err)
	}
	defer rows.Close()

	var out []domain.ProjectCompletion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project completion: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *ProjectCompletionRepository) Create(ctx context.Context, c *domain.ProjectCompletion) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO project_completions (session_id, project_id, status, started_at, completed_at,
		 completed_steps, selected_resume_style, bullets_copied, reviewed_questions, version)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1)
		 RETURNING id, version, created_at, updated_at`,
		c.SessionID, c.ProjectID, string(c.Status), c.StartedAt, c.CompletedAt,
		intsOrEmpty(c.CompletedSteps), string(c.SelectedResumeStyle), c.BulletsCopied,
		idsOrEmpty(c.ReviewedQuestions),
	).Scan(&c.ID, &c.Version, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("failed to create project completion: %w", err)
	}
	return nil
}

// Update writes c only if the stored version still equals c.Version.
func (r *ProjectCompletionRepository) Update(ctx context.Context, c *domain.ProjectCompletion) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE project_completions SET status = $1, started_at = $2, completed_at = $3,
		 completed_steps = $4, selected_resume_style = $5, bullets_copied = $6,
		 reviewed_questions = $7, version = version + 1, updated_at = NOW()
		 WHERE id = $8 AND version = $9
		 RETURNING version, updated_at`,
		string(c.Status), c.StartedAt, c.CompletedAt, intsOrEmpty(c.CompletedSteps),
		string(c.SelectedResumeStyle), c.BulletsCopied, idsOrEmpty(c.ReviewedQuestions),
		c.ID, c.Version,
	).Scan(&c.Version, &c.UpdatedAt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to update project completion: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM project_completions WHERE id = $1)`, c.ID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check project completion: %w", err)
	}
	if exists {
		return domain.ErrConflict
	}
	return domain.ErrNotFound
}

func intsOrEmpty(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}

func idsOrEmpty(v []int64) []int64 {
	if v == nil {
		return []int64{}
	}
	return v
}

// ResumeReadyRepository implements domain.ResumeReadyRepository using PostgreSQL.
type ResumeReadyRepository struct {
	pool *pgxpool.Pool
}

func (r *ResumeReadyRepository) GetBySession(ctx context.Context, sessionID string) (*domain.ResumeReadyProgress, error) {
	p := &domain.ResumeReadyProgress{}
	var status string
	var projects []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, session_id, readiness_score, status, completed_projects, resume_bullets_count,
		 resume_last_updated, total_questions_reviewed, expert_call_booked, expert_call_date,
		 created_at, updated_at
		 FROM resume_ready_progress WHERE session_id = $1`, sessionID,
	).Scan(&p.ID, &p.SessionID, &p.ReadinessScore, &status, &projects, &p.ResumeBulletsCount,
		&p.ResumeLastUpdated, &p.TotalQuestionsReviewed, &p.ExpertCallBooked, &p.ExpertCallDate,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get resume ready progress: %w", err)
	}
	p.Status = domain.ReadinessStatus(status)

	if err := json.Unmarshal(projects, &p.CompletedProjects); err != nil {
		return nil, fmt.Errorf("failed to decode completed projects: %w", err)
	}
	return p, nil
}

func marshalSnapshots(s []domain.CompletedProjectSnapshot) ([]byte, error) {
	if s == nil {
		s = []domain.CompletedProjectSnapshot{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completed projects: %w", err)
	}
	return b, nil
}

func (r *ResumeReadyRepository) Create(ctx context.Context, p *domain.ResumeReadyProgress) error {
	projects, err := marshalSnapshots(p.CompletedProjects)
	if err != nil {
		return err
	}
	err = r.pool.QueryRow(ctx,
		`INSERT INTO resume_ready_progress (session_id, readiness_score, status, completed_projects,
		 resume_bullets_count, resume_last_updated, total_questions_reviewed, expert_call_booked,
		 expert_call_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		p.SessionID, p.ReadinessScore, string(p.Status), projects, p.ResumeBulletsCount,
		p.ResumeLastUpdated, p.TotalQuestionsReviewed, p.ExpertCallBooked, p.ExpertCallDate,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("failed to create resume ready progress: %w", err)
	}
	return nil
}

func (r *ResumeReadyRepository) Update(ctx context.Context, p *domain.ResumeReadyProgress) error {
	projects, err := marshalSnapshots(p.CompletedProjects)
	if err != nil {
		return err
	}
	err = r.pool.QueryRow(ctx,
		`UPDATE resume_ready_progress SET readiness_score = $1, status = $2, completed_projects = $3,
		 resume_bullets_count = $4, resume_last_updated = $5, total_questions_reviewed = $6,
		 expert_call_booked = $7, expert_call_date = $8, updated_at = NOW()
		 WHERE id = $9
		 RETURNING updated_at`,
		p.ReadinessScore, string(p.Status), projects, p.ResumeBulletsCount, p.ResumeLastUpdated,
		p.TotalQuestionsReviewed, p.ExpertCallBooked, p.ExpertCallDate, p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update resume ready progress: %w", err)
	}
	return nil
}
