package service_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/catalog"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/repository/sqlite"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/service"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(func() { db.Close() })
	return db
}

func testTemplate(id string, steps int) domain.ProjectTemplate {
	t := domain.ProjectTemplate{
		ID:    id,
		Title: "Project " + id,
		ResumeBullets: map[domain.ResumeStyle][]string{
			domain.ResumeStyleTechnical: {id + " technical"},
			domain.ResumeStyleImpact:    {id + " impact"},
			domain.ResumeStyleFullStack: {id + " full stack"},
		},
	}
	for i := range steps {
		t.TutorialSteps = append(t.TutorialSteps, domain.TutorialStep{Title: fmt.Sprintf("step %d", i)})
	}
	return t
}

// testCatalog holds four templates: "three" has 3 steps, the rest have 2.
func testCatalog() *catalog.Catalog {
	return catalog.New([]domain.ProjectTemplate{
		testTemplate("three", 3),
		testTemplate("a", 2),
		testTemplate("b", 2),
		testTemplate("c", 2),
	})
}

func newTestReadinessService(t *testing.T) (*service.ReadinessService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	return service.NewReadinessService(testCatalog(), db.Completions(), db.Readiness(), db.Content()), db
}

// seedQuestion creates a stage with one question and returns the question id.
func seedQuestion(t *testing.T, db *sqlite.DB, title string) int64 {
	t.Helper()
	ctx := context.Background()
	stage := &domain.Stage{Slug: "s", Title: "Stage"}
	require.NoError(t, db.Content().UpsertStage(ctx, stage))
	q := &domain.Question{StageID: stage.ID, Title: title, Difficulty: "easy"}
	require.NoError(t, db.Content().CreateQuestion(ctx, q))
	return q.ID
}
