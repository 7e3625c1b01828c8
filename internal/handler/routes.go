package handler

import (
	"net/http"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/service"
)

// Services bundles what the HTTP layer needs.
type Services struct {
	Content      *service.ContentService
	Progress     *service.ProgressService
	Readiness    *service.ReadinessService
	Admin        *service.AdminService
	LoginLimiter *service.TokenBucket
	CookieSecure bool
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, s Services) {
	pages := NewContentHandler(s.Content)
	progress := NewProgressHandler(s.Progress, s.CookieSecure)
	readiness := NewReadinessHandler(s.Readiness, s.CookieSecure)
	admin := NewAdminHandler(s.Admin, s.Content, s.LoginLimiter, s.CookieSecure)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	// Pages
	mux.HandleFunc("GET /", pages.HandleHome)
	mux.HandleFunc("GET /stages/{slug}", pages.HandleStage)
	mux.HandleFunc("GET /resume-ready", readiness.HandlePage)
	mux.HandleFunc("POST /resume-ready/projects/{id}/steps/{step}", readiness.HandleToggleStepSSE)

	// Question progress
	mux.HandleFunc("GET /api/progress", progress.HandleGetProgress)
	mux.HandleFunc("POST /api/progress", progress.HandleUpsertProgress)
	mux.HandleFunc("GET /api/progress/summary", progress.HandleSummary)
	mux.HandleFunc("GET /api/solutions", progress.HandleGetSolution)
	mux.HandleFunc("POST /api/solutions", progress.HandleSaveSolution)

	// Resume ready
	mux.HandleFunc("POST /api/resume-ready/steps", readiness.HandleToggleStep)
	mux.HandleFunc("POST /api/resume-ready/complete", readiness.HandleCompleteProject)
	mux.HandleFunc("GET /api/resume-ready/progress", readiness.HandleGetProgress)
	mux.HandleFunc("GET /api/resume-ready/projects/{id}", readiness.HandleGetProject)
	mux.HandleFunc("GET /api/resume-ready/projects/{id}/bullets", readiness.HandleBullets)
	mux.HandleFunc("POST /api/resume-ready/projects/{id}/bullets-copied", readiness.HandleBulletsCopied)
	mux.HandleFunc("POST /api/resume-ready/projects/{id}/reviewed-questions", readiness.HandleReviewedQuestions)
	mux.HandleFunc("POST /api/resume-ready/expert-call", readiness.HandleBookExpertCall)

	// Admin
	mux.HandleFunc("POST /admin/login", admin.HandleLogin)
	mux.HandleFunc("POST /admin/logout", admin.HandleLogout)
	mux.Handle("GET /admin/api/stages", RequireAdmin(s.Admin, http.HandlerFunc(admin.HandleListStages)))
	mux.Handle("POST /admin/api/questions", RequireAdmin(s.Admin, http.HandlerFunc(admin.HandleCreateQuestion)))
	mux.Handle("PUT /admin/api/questions/{id}", RequireAdmin(s.Admin, http.HandlerFunc(admin.HandleUpdateQuestion)))
}
