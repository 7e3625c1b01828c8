package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
)

// ResumeReadyRepository implements domain.ResumeReadyRepository using SQLite.
type ResumeReadyRepository struct {
	db *sql.DB
}

// NewResumeReadyRepository creates a new SQLite-backed ResumeReadyRepository.
func NewResumeReadyRepository(db *DB) *ResumeReadyRepository {
	return &ResumeReadyRepository{db: db.SqlDB}
}

func (r *ResumeReadyRepository) GetBySession(ctx context.Context, sessionID string) (*domain.ResumeReadyProgress, error) {
	p := &domain.ResumeReadyProgress{}
	var projects string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, session_id, readiness_score, status, completed_projects, resume_bullets_count,
		 resume_last_updated, total_questions_reviewed, expert_call_booked, expert_call_date,
		 created_at, updated_at
		 FROM resume_ready_progress WHERE session_id = ?`, sessionID,
	).Scan(&p.ID, &p.SessionID, &p.ReadinessScore, &p.Status, &projects, &p.ResumeBulletsCount,
		&p.ResumeLastUpdated, &p.TotalQuestionsReviewed, &p.ExpertCallBooked, &p.ExpertCallDate,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get resume ready progress: %w", err)
	}

	if p.CompletedProjects, err = decodeJSON[domain.CompletedProjectSnapshot](projects); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ResumeReadyRepository) Create(ctx context.Context, p *domain.ResumeReadyProgress) error {
	projects, err := encodeJSON(p.CompletedProjects)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO resume_ready_progress (session_id, readiness_score, status, completed_projects,
		 resume_bullets_count, resume_last_updated, total_questions_reviewed, expert_call_booked,
		 expert_call_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.SessionID, p.ReadinessScore, p.Status, projects,
		p.ResumeBulletsCount, p.ResumeLastUpdated, p.TotalQuestionsReviewed, p.ExpertCallBooked,
		p.ExpertCallDate, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert resume ready progress: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get resume ready progress id: %w", err)
	}

	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

// Update rewrites every aggregate field of the session's row in one statement.
func (r *ResumeReadyRepository) Update(ctx context.Context, p *domain.ResumeReadyProgress) error {
	projects, err := encodeJSON(p.CompletedProjects)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE resume_ready_progress SET readiness_score = ?, status = ?, completed_projects = ?,
		 resume_bullets_count = ?, resume_last_updated = ?, total_questions_reviewed = ?,
		 expert_call_booked = ?, expert_call_date = ?, updated_at = ?
		 WHERE id = ?`,
		p.ReadinessScore, p.Status, projects,
		p.ResumeBulletsCount, p.ResumeLastUpdated, p.TotalQuestionsReviewed,
		p.ExpertCallBooked, p.ExpertCallDate, now, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update resume ready progress: %w", err)
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

