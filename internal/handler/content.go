package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/service"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/view"
)

// ContentHandler renders the stage and question pages.
type ContentHandler struct {
	content *service.ContentService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(content *service.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// HandleHome renders the stage list.
func (h *ContentHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		w.WriteHeader(http.StatusNotFound)
		view.NotFoundPage().Render(r.Context(), w)
		return
	}

	stages, err := h.content.ListStages(r.Context())
	if err != nil {
		slog.Error("list stages", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	view.HomePage(stages).Render(r.Context(), w)
}

// HandleStage renders the questions of a stage.
func (h *ContentHandler) HandleStage(w http.ResponseWriter, r *http.Request) {
	stage, questions, err := h.content.GetStage(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			view.NotFoundPage().Render(r.Context(), w)
			return
		}
		slog.Error("get stage", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	view.StagePage(stage, questions).Render(r.Context(), w)
}
