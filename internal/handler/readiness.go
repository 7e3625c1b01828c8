package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/service"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/view"
)

// ReadinessHandler serves the resume-ready project tracker.
type ReadinessHandler struct {
	readiness    *service.ReadinessService
	cookieSecure bool
}

// NewReadinessHandler creates a new ReadinessHandler.
func NewReadinessHandler(readiness *service.ReadinessService, cookieSecure bool) *ReadinessHandler {
	return &ReadinessHandler{readiness: readiness, cookieSecure: cookieSecure}
}

// HandleToggleStep flips one tutorial step of a project.
// POST /api/resume-ready/steps
// Request:  {"projectId":"...","stepIndex":0}
// Response: {"completedSteps":[...],"status":"...","outcome":"created"|"updated"}
func (h *ReadinessHandler) HandleToggleStep(w http.ResponseWriter, r *http.Request) {
	sessionID, err := SessionID(r)
	if err != nil {
		writeServiceError(w, "toggle step", err)
		return
	}

	var req struct {
		ProjectID string `json:"projectId" validate:"required"`
		StepIndex *int   `json:"stepIndex" validate:"required"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeServiceError(w, "toggle step", err)
		return
	}

	res, err := h.readiness.ToggleStep(r.Context(), sessionID, req.ProjectID, *req.StepIndex)
	if err != nil {
		writeServiceError(w, "toggle step", err, "session", sessionID, "project", req.ProjectID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"completedSteps": toCompletionDTO(res.Completion).CompletedSteps,
		"status":         res.Completion.Status,
		"outcome":        res.Outcome,
	})
}

// HandleCompleteProject marks a project completed and rebuilds the aggregate.
// POST /api/resume-ready/complete
// Request:  {"projectId":"...","resumeStyle":"impact"}
// Response: {"readinessScore":50,"completedCount":2,"totalProjects":4}
func (h *ReadinessHandler) HandleCompleteProject(w http.ResponseWriter, r *http.Request) {
	sessionID, err := SessionID(r)
	if err != nil {
		writeServiceError(w, "complete project", err)
		return
	}

	var req struct {
		ProjectID   string `json:"projectId" validate:"required"`
		ResumeStyle string `json:"resumeStyle" validate:"omitempty,oneof=technical impact fullStack"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeServiceError(w, "complete project", err)
		return
	}

	res, err := h.readiness.CompleteProject(r.Context(), sessionID, req.ProjectID, domain.ResumeStyle(req.ResumeStyle))
	if err != nil {
		writeServiceError(w, "complete project", err, "session", sessionID, "project", req.ProjectID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"readinessScore": res.ReadinessScore,
		"completedCount": res.CompletedCount,
		"totalProjects":  res.TotalProjects,
	})
}

// HandleGetProgress returns the session aggregate and every annotated project.
// GET /api/resume-ready/progress
func (h *ReadinessHandler) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	sessionID, err := SessionID(r)
	if err != nil {
		writeServiceError(w, "get readiness", err)
		return
	}

	v, err := h.readiness.GetProgress(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, "get readiness", err, "session", sessionID)
		return
	}

	projects := make([]ProjectProgressDTO, 0, len(v.Projects))
	for _, p := range v.Projects {
		projects = append(projects, toProjectProgressDTO(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"progress": toReadinessDTO(v.Progress),
		"projects": projects,
	})
}

// HandleGetProject returns a template and the session's completion record.
// GET /api/resume-ready/projects/{id}
// Response: {"project": {...}, "completion": {...}|null}
func (h *ReadinessHandler) HandleGetProject(w http.ResponseWriter, r *http.Request) {
	sessionID, err := SessionID(r)
	if err != nil {
		writeServiceError(w, "get project", err)
		return
	}

	v, err := h.readiness.GetProjectCompletion(r.Context(), sessionID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "get project", err, "session", sessionID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"project":    toProjectDTO(v.Template),
		"completion": toCompletionDTO(v.Completion),
	})
}

// HandleBulletsCopied records that the resume bullets were copied.
// POST /api/resume-ready/projects/{id}/bullets-copied
func (h *ReadinessHandler) HandleBulletsCopied(w http.ResponseWriter, r *http.Request) {
	sessionID, err := SessionID(r)
	if err != nil {
		writeServiceError(w, "bullets copied", err)
		return
	}

	c, err := h.readiness.MarkBulletsCopied(r.Context(), sessionID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "bullets copied", err, "session", sessionID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"completion": toCompletionDTO(c)})
}

// HandleReviewedQuestions merges reviewed question ids into a project.
// POST /api/resume-ready/projects/{id}/reviewed-questions
// Request: {"questionIds":[1,2]}
func (h *ReadinessHandler) HandleReviewedQuestions(w http.ResponseWriter, r *http.Request) {
	sessionID, err := SessionID(r)
	if err != nil {
		writeServiceError(w, "reviewed questions", err)
		return
	}

	var req struct {
		QuestionIDs []int64 `json:"questionIds" validate:"required,min=1,dive,gt=0"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeServiceError(w, "reviewed questions", err)
		return
	}

	c, err := h.readiness.RecordReviewedQuestions(r.Context(), sessionID, r.PathValue("id"), req.QuestionIDs)
	if err != nil {
		writeServiceError(w, "reviewed questions", err, "session", sessionID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"completion": toCompletionDTO(c)})
}

// HandleBookExpertCall schedules an expert resume review.
// POST /api/resume-ready/expert-call
// Request: {"date":"2026-11-03T15:00:00Z"} or {"date":"2026-11-03"}
func (h *ReadinessHandler) HandleBookExpertCall(w http.ResponseWriter, r *http.Request) {
	sessionID, err := SessionID(r)
	if err != nil {
		writeServiceError(w, "book expert call", err)
		return
	}

	var req struct {
		Date string `json:"date" validate:"required"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeServiceError(w, "book expert call", err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeServiceError(w, "book expert call", err)
		return
	}

	p, err := h.readiness.BookExpertCall(r.Context(), sessionID, date)
	if err != nil {
		writeServiceError(w, "book expert call", err, "session", sessionID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"progress": toReadinessDTO(p)})
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date must be RFC 3339 or YYYY-MM-DD", domain.ErrInvalidInput)
}

// HandleBullets returns a project's resume bullets for one style.
// GET /api/resume-ready/projects/{id}/bullets?style=impact
func (h *ReadinessHandler) HandleBullets(w http.ResponseWriter, r *http.Request) {
	style := domain.ResumeStyle(r.URL.Query().Get("style"))
	bullets, err := h.readiness.Bullets(r.PathValue("id"), style)
	if err != nil {
		writeServiceError(w, "get bullets", err)
		return
	}
	if style == "" {
		style = domain.ResumeStyleTechnical
	}
	writeJSON(w, http.StatusOK, map[string]any{"style": style, "bullets": bullets})
}

// HandlePage renders the resume-ready tracker page.
// GET /resume-ready
func (h *ReadinessHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	sessionID := GetOrCreateSessionID(w, r, h.cookieSecure)
	v, err := h.readiness.GetProgress(r.Context(), sessionID)
	if err != nil {
		slog.Error("render readiness page", "error", err, "session", sessionID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := view.ResumeReadyPage(v).Render(r.Context(), w); err != nil {
		slog.Error("render readiness page", "error", err)
	}
}

// HandleToggleStepSSE toggles a step from the tracker page and patches the
// project's card in place.
// POST /resume-ready/projects/{id}/steps/{step}
func (h *ReadinessHandler) HandleToggleStepSSE(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	step, err := strconv.Atoi(r.PathValue("step"))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	sessionID := GetOrCreateSessionID(w, r, h.cookieSecure)
	if _, err := h.readiness.ToggleStep(r.Context(), sessionID, projectID, step); err != nil {
		writeServiceError(w, "toggle step", err, "session", sessionID, "project", projectID)
		return
	}

	v, err := h.readiness.GetProjectCompletion(r.Context(), sessionID, projectID)
	if err != nil {
		writeServiceError(w, "toggle step", err, "session", sessionID, "project", projectID)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(
		view.ProjectCard(*v),
		datastar.WithSelectorID(view.ProjectCardID(projectID)),
	); err != nil {
		slog.Error("patch project card", "error", err)
	}
}
