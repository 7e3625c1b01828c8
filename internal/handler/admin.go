package handler

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/service"
)

// AdminHandler serves admin login and content editing.
type AdminHandler struct {
	admin        *service.AdminService
	content      *service.ContentService
	limiter      *service.TokenBucket
	cookieSecure bool
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin *service.AdminService, content *service.ContentService, limiter *service.TokenBucket, cookieSecure bool) *AdminHandler {
	return &AdminHandler{admin: admin, content: content, limiter: limiter, cookieSecure: cookieSecure}
}

// HandleLogin exchanges the admin password for a token cookie.
// POST /admin/login
// Request: {"password":"..."}
func (h *AdminHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if ok, wait := h.limiter.Allow(clientIP(r)); !ok {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		writeError(w, http.StatusTooManyRequests, codeRateLimited, "Too many login attempts. Try again later.")
		return
	}

	var req struct {
		Password string `json:"password" validate:"required"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeServiceError(w, "admin login", err)
		return
	}

	token, err := h.admin.Login(req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			slog.Warn("admin login failed", "ip", clientIP(r))
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "Invalid password.")
			return
		}
		writeServiceError(w, "admin login", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     AdminCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int((12 * time.Hour).Seconds()),
	})
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleLogout clears the admin cookie.
// POST /admin/logout
func (h *AdminHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleListStages lists stages for the admin editor.
// GET /admin/api/stages
func (h *AdminHandler) HandleListStages(w http.ResponseWriter, r *http.Request) {
	stages, err := h.content.ListStages(r.Context())
	if err != nil {
		writeServiceError(w, "list stages", err)
		return
	}
	out := make([]StageDTO, 0, len(stages))
	for _, s := range stages {
		out = append(out, toStageDTO(s))
	}
	writeJSON(w, http.StatusOK, map[string]any{"stages": out})
}

type questionRequest struct {
	StageID    int64    `json:"stageId" validate:"required,gt=0"`
	Title      string   `json:"title" validate:"required,max=200"`
	Prompt     string   `json:"prompt"`
	Answer     string   `json:"answer"`
	Difficulty string   `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Tags       []string `json:"tags" validate:"max=20,dive,max=40"`
}

func (q questionRequest) toDomain() *domain.Question {
	return &domain.Question{
		StageID:    q.StageID,
		Title:      q.Title,
		Prompt:     q.Prompt,
		Answer:     q.Answer,
		Difficulty: q.Difficulty,
		Tags:       q.Tags,
	}
}

// HandleCreateQuestion adds a question.
// POST /admin/api/questions
func (h *AdminHandler) HandleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := readJSON(w, r, &req); err != nil {
		writeServiceError(w, "create question", err)
		return
	}

	q := req.toDomain()
	if err := h.content.CreateQuestion(r.Context(), q); err != nil {
		writeServiceError(w, "create question", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"question": toQuestionDTO(q)})
}

// HandleUpdateQuestion overwrites a question.
// PUT /admin/api/questions/{id}
func (h *AdminHandler) HandleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "Invalid question id.")
		return
	}

	var req questionRequest
	if err := readJSON(w, r, &req); err != nil {
		writeServiceError(w, "update question", err)
		return
	}

	q := req.toDomain()
	q.ID = id
	if err := h.content.UpdateQuestion(r.Context(), q); err != nil {
		writeServiceError(w, "update question", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"question": toQuestionDTO(q)})
}
