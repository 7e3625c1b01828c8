package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/catalog"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/handler"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/repository/sqlite"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/service"
)

const (
	testJWTSecret     = "test-secret-for-handler-tests-0123456789"
	testAdminPassword = "admin-password"
)

type testEnv struct {
	srv    *httptest.Server
	client *http.Client
	db     *sqlite.DB
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

func newTestEnv(t *testing.T, loginPerMinute int) *testEnv {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx))
	t.Cleanup(func() { db.Close() })

	content := service.NewContentService(db.Content())
	require.NoError(t, content.SeedDefaults(ctx, catalog.DefaultContent()))

	projects := catalog.New([]domain.ProjectTemplate{
		testTemplate("three", 3),
		testTemplate("a", 2),
		testTemplate("b", 2),
		testTemplate("c", 2),
	})

	hash, err := service.HashPassword(testAdminPassword, 4)
	require.NoError(t, err)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Services{
		Content:      content,
		Progress:     service.NewProgressService(db.QuestionProgress(), db.Solutions(), db.Content()),
		Readiness:    service.NewReadinessService(projects, db.Completions(), db.Readiness(), db.Content()),
		Admin:        service.NewAdminService(hash, testJWTSecret),
		LoginLimiter: service.PerMinute(ctx, loginPerMinute),
	})

	srv := httptest.NewServer(handler.SecurityHeaders(handler.LogRequests(mux)))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testEnv{srv: srv, client: &http.Client{Jar: jar}, db: db}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

// startSession visits a page that mints the session cookie.
func (e *testEnv) startSession(t *testing.T) {
	t.Helper()
	resp, err := e.client.Get(e.srv.URL + "/resume-ready")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

// firstQuestionID returns the id of a seeded question.
func (e *testEnv) firstQuestionID(t *testing.T) int64 {
	t.Helper()
	ctx := context.Background()
	stages, err := e.db.Content().ListStages(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, stages)
	qs, err := e.db.Content().ListQuestionsByStage(ctx, stages[0].ID)
	require.NoError(t, err)
	require.NotEmpty(t, qs)
	return qs[0].ID
}
