package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/service"
)

// ProgressHandler serves question progress and solution endpoints.
type ProgressHandler struct {
	progress     *service.ProgressService
	cookieSecure bool
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progress *service.ProgressService, cookieSecure bool) *ProgressHandler {
	return &ProgressHandler{progress: progress, cookieSecure: cookieSecure}
}

func questionIDParam(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("questionId")
	if raw == "" {
		return 0, fmt.Errorf("%w: questionId is required", domain.ErrInvalidInput)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: questionId must be a positive integer", domain.ErrInvalidInput)
	}
	return id, nil
}

// HandleGetProgress returns the session's progress on one question.
// GET /api/progress?questionId=
// Response: {"progress": {...}|null}
func (h *ProgressHandler) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	sessionID, err := SessionID(r)
	if err != nil {
		writeServiceError(w, "get progress", err)
		return
	}
	questionID, err := questionIDParam(r)
	if err != nil {
		writeServiceError(w, "get progress", err)
		return
	}

	p, err := h.progress.GetProgress(r.Context(), sessionID, questionID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		writeServiceError(w, "get progress", err, "session", sessionID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"progress": toQuestionProgressDTO(p)})
}

// HandleUpsertProgress applies the supplied fields to the session's progress.
// POST /api/progress
// Request:  {"questionId":1,"completed":true,"timeSpent":60,"notes":"...","viewedAnswer":true}
// Response: {"progress": {...}, "outcome": "created"|"updated"}
func (h *ProgressHandler) HandleUpsertProgress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		QuestionID   int64   `json:"questionId" validate:"required,gt=0"`
		Completed    *bool   `json:"completed"`
		TimeSpent    *int    `json:"timeSpent" validate:"omitnil,gte=0"`
		Notes        *string `json:"notes" validate:"omitnil,max=10000"`
		ViewedAnswer *bool   `json:"viewedAnswer"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeServiceError(w, "upsert progress", err)
		return
	}

	sessionID := GetOrCreateSessionID(w, r, h.cookieSecure)
	p, outcome, err := h.progress.UpsertProgress(r.Context(), sessionID, req.QuestionID, domain.QuestionProgressPatch{
		Completed:    req.Completed,
		TimeSpent:    req.TimeSpent,
		Notes:        req.Notes,
		ViewedAnswer: req.ViewedAnswer,
	})
	if err != nil {
		writeServiceError(w, "upsert progress", err, "session", sessionID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"progress": toQuestionProgressDTO(p),
		"outcome":  outcome,
	})
}

// HandleSummary returns aggregate counts over the session's question progress.
// GET /api/progress/summary
func (h *ProgressHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	sessionID, err := SessionID(r)
	if err != nil {
		writeServiceError(w, "progress summary", err)
		return
	}
	s, err := h.progress.Summary(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, "progress summary", err, "session", sessionID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"started":       s.Started,
		"completed":     s.Completed,
		"viewedAnswers": s.ViewedAnswers,
		"timeSpent":     s.TimeSpent,
	})
}

// HandleGetSolution returns the session's latest solution for a question.
// GET /api/solutions?questionId=
// Response: {"solution": {...}|null}
func (h *ProgressHandler) HandleGetSolution(w http.ResponseWriter, r *http.Request) {
	sessionID, err := SessionID(r)
	if err != nil {
		writeServiceError(w, "get solution", err)
		return
	}
	questionID, err := questionIDParam(r)
	if err != nil {
		writeServiceError(w, "get solution", err)
		return
	}

	s, err := h.progress.GetSolution(r.Context(), sessionID, questionID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		writeServiceError(w, "get solution", err, "session", sessionID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"solution": toSolutionDTO(s)})
}

// HandleSaveSolution overwrites the session's solution for a question.
// POST /api/solutions
// Request:  {"questionId":1,"code":"...","language":"python"}
// Response: {"solution": {...}, "outcome": "created"|"updated"}
func (h *ProgressHandler) HandleSaveSolution(w http.ResponseWriter, r *http.Request) {
	var req struct {
		QuestionID int64   `json:"questionId" validate:"required,gt=0"`
		Code       *string `json:"code" validate:"required"`
		Language   *string `json:"language" validate:"omitnil,max=32"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeServiceError(w, "save solution", err)
		return
	}

	sessionID := GetOrCreateSessionID(w, r, h.cookieSecure)
	s, outcome, err := h.progress.SaveSolution(r.Context(), sessionID, req.QuestionID, domain.SolutionPatch{
		Code:     req.Code,
		Language: req.Language,
	})
	if err != nil {
		writeServiceError(w, "save solution", err, "session", sessionID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"solution": toSolutionDTO(s),
		"outcome":  outcome,
	})
}
