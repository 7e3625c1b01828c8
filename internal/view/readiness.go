package view

import (
	"context"
	"fmt"
	"slices"

	"github.com/a-h/templ"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/service"
)

// ProjectCardID is the element id of a project's tracker card.
func ProjectCardID(projectID string) string {
	return "project-" + projectID
}

// ResumeReadyPage shows the readiness score and one card per project.
func ResumeReadyPage(progress *service.ProgressView) templ.Component {
	return layout("Resume ready", render(func(ctx context.Context, h *htmlWriter) {
		p := progress.Progress
		h.raw(`<h1>Resume readiness</h1>`)
		h.rawf(`<p class="score"><strong>%d%%</strong> ready, `, p.ReadinessScore)
		h.rawf(`%d of %d projects completed, %d resume bullets.</p>`,
			len(p.CompletedProjects), len(progress.Projects), p.ResumeBulletsCount)
		for _, pv := range progress.Projects {
			h.component(ctx, ProjectCard(pv))
		}
	}))
}

// ProjectCard is the live tracker fragment for one project. Each step is a
// datastar button that toggles it on the server.
func ProjectCard(pv service.ProjectView) templ.Component {
	return render(func(ctx context.Context, h *htmlWriter) {
		t := pv.Template
		h.raw(`<section class="project" id="`)
		h.text(ProjectCardID(t.ID))
		h.raw(`"><h2>`)
		h.text(t.Title)
		h.raw(`</h2><span class="status">`)
		h.text(string(pv.Status))
		h.rawf(`</span><p>%d/%d steps</p><ol>`, len(pv.CompletedSteps), t.StepCount())
		for i, step := range t.TutorialSteps {
			done := slices.Contains(pv.CompletedSteps, i)
			mark := "[ ]"
			if done {
				mark = "[x]"
			}
			h.raw(`<li><button data-on:click="@post('`)
			h.text(fmt.Sprintf("/resume-ready/projects/%s/steps/%d", t.ID, i))
			h.raw(`')">`)
			h.text(mark)
			h.raw(`</button> `)
			h.text(step.Title)
			h.raw(`</li>`)
		}
		h.raw(`</ol></section>`)
	})
}
