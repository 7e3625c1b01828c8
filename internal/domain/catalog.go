package domain

// ResumeStyle selects one of the pre-written resume bullet variants of a project.
type ResumeStyle string

const (
	ResumeStyleTechnical ResumeStyle = "technical"
	ResumeStyleImpact    ResumeStyle = "impact"
	ResumeStyleFullStack ResumeStyle = "fullStack"
)

// ResumeStyles lists every style in display order.
var ResumeStyles = []ResumeStyle{ResumeStyleTechnical, ResumeStyleImpact, ResumeStyleFullStack}

// Valid reports whether s is one of the known styles.
func (s ResumeStyle) Valid() bool {
	for _, known := range ResumeStyles {
		if s == known {
			return true
		}
	}
	return false
}

// TutorialStep is a single ordered step of a project template.
type TutorialStep struct {
	Title string
	Body  string
}

// ProjectTemplate is a catalog-defined portfolio project. Templates are not
// user-owned and never change at runtime.
type ProjectTemplate struct {
	ID            string
	Title         string
	Summary       string
	Difficulty    string
	Skills        []string
	TutorialSteps []TutorialStep
	ResumeBullets map[ResumeStyle][]string
}

// StepCount returns the number of tutorial steps.
func (t ProjectTemplate) StepCount() int {
	return len(t.TutorialSteps)
}

// ProjectCatalog is the read-only table of project templates.
type ProjectCatalog interface {
	Get(id string) (ProjectTemplate, bool)
	// All returns templates in stable display order.
	All() []ProjectTemplate
}
