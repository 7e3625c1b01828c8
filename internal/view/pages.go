package view

import (
	"context"

	"github.com/a-h/templ"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
)

// HomePage lists the interview stages.
func HomePage(stages []domain.Stage) templ.Component {
	return layout("Stages", render(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>Interview stages</h1>`)
		if len(stages) == 0 {
			h.raw(`<p>No stages yet.</p>`)
			return
		}
		h.raw(`<ul class="stages">`)
		for _, s := range stages {
			h.raw(`<li><a href="/stages/`)
			h.text(s.Slug)
			h.raw(`">`)
			h.text(s.Title)
			h.raw(`</a><p>`)
			h.text(s.Description)
			h.raw(`</p></li>`)
		}
		h.raw(`</ul>`)
	}))
}

// StagePage lists the questions of one stage.
func StagePage(stage *domain.Stage, questions []domain.Question) templ.Component {
	return layout(stage.Title, render(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>`)
		h.text(stage.Title)
		h.raw(`</h1>`)
		for _, q := range questions {
			h.rawf(`<article class="question" id="question-%d"><h2>`, q.ID)
			h.text(q.Title)
			h.raw(`</h2><span class="difficulty">`)
			h.text(q.Difficulty)
			h.raw(`</span><p>`)
			h.text(q.Prompt)
			h.raw(`</p><details><summary>Show answer</summary><p>`)
			h.text(q.Answer)
			h.raw(`</p></details></article>`)
		}
	}))
}

// NotFoundPage is rendered for unknown slugs.
func NotFoundPage() templ.Component {
	return layout("Not found", render(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>Not found</h1><p><a href="/">Back to stages</a></p>`)
	}))
}
