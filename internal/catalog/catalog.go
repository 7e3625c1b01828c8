// Package catalog holds the built-in project templates and seed interview content.
package catalog

import (
	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
)

// Catalog is an immutable, ordered table of project templates.
// It implements domain.ProjectCatalog.
type Catalog struct {
	ordered []domain.ProjectTemplate
	byID    map[string]int
}

// New builds a catalog from templates, keeping their order. A later template
// with a duplicate ID replaces the earlier one in place.
func New(templates []domain.ProjectTemplate) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(templates))}
	for _, t := range templates {
		if i, ok := c.byID[t.ID]; ok {
			c.ordered[i] = t
			continue
		}
		c.byID[t.ID] = len(c.ordered)
		c.ordered = append(c.ordered, t)
	}
	return c
}

// Default returns the catalog of built-in projects.
func Default() *Catalog {
	return New(defaultProjects)
}

func (c *Catalog) Get(id string) (domain.ProjectTemplate, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.ProjectTemplate{}, false
	}
	return c.ordered[i], true
}

func (c *Catalog) All() []domain.ProjectTemplate {
	out := make([]domain.ProjectTemplate, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.ordered)
}
