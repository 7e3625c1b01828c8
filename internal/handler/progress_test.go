package handler_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/handler"
)

func TestProgress_WriteCreatesSession(t *testing.T) {
	env := newTestEnv(t, 10)
	qid := env.firstQuestionID(t)

	resp, body := env.do(t, http.MethodPost, "/api/progress", map[string]any{"questionId": qid, "timeSpent": 45})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "created", body["outcome"])

	var minted bool
	for _, c := range resp.Cookies() {
		if c.Name == handler.SessionCookieName {
			minted = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, minted, "expected session cookie on first write")

	resp, body = env.do(t, http.MethodPost, "/api/progress", map[string]any{"questionId": qid, "completed": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "updated", body["outcome"])
	p := body["progress"].(map[string]any)
	assert.Equal(t, true, p["completed"])
	assert.Equal(t, float64(45), p["timeSpent"])
	assert.NotNil(t, p["completedAt"])

	_, body = env.do(t, http.MethodGet, "/api/progress/summary", nil)
	assert.Equal(t, float64(1), body["completed"])
	assert.Equal(t, float64(45), body["timeSpent"])
}

func TestProgress_GetAbsentIsNull(t *testing.T) {
	env := newTestEnv(t, 10)
	env.startSession(t)
	qid := env.firstQuestionID(t)

	resp, body := env.do(t, http.MethodGet, "/api/progress?questionId="+strconv.FormatInt(qid, 10), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "progress")
	assert.Nil(t, body["progress"])
}

func TestProgress_Errors(t *testing.T) {
	env := newTestEnv(t, 10)

	resp, _ := env.do(t, http.MethodGet, "/api/progress?questionId=1", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := env.do(t, http.MethodPost, "/api/progress", map[string]any{"completed": true})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_input", errorCode(body))

	resp, _ = env.do(t, http.MethodPost, "/api/progress", map[string]any{"questionId": 99999})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	env.startSession(t)
	resp, _ = env.do(t, http.MethodGet, "/api/progress?questionId=abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSolutions(t *testing.T) {
	env := newTestEnv(t, 10)
	qid := env.firstQuestionID(t)

	resp, body := env.do(t, http.MethodPost, "/api/solutions", map[string]any{"questionId": qid, "code": "x = 1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "created", body["outcome"])
	assert.Equal(t, "python", body["solution"].(map[string]any)["language"])

	_, body = env.do(t, http.MethodPost, "/api/solutions", map[string]any{"questionId": qid, "code": "x := 1", "language": "go"})
	assert.Equal(t, "updated", body["outcome"])

	_, body = env.do(t, http.MethodGet, "/api/solutions?questionId="+strconv.FormatInt(qid, 10), nil)
	sol := body["solution"].(map[string]any)
	assert.Equal(t, "x := 1", sol["code"])
	assert.Equal(t, "go", sol["language"])

	resp, _ = env.do(t, http.MethodPost, "/api/solutions", map[string]any{"questionId": qid})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
