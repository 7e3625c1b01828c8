package handler_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmin_LoginAndEditQuestions(t *testing.T) {
	env := newTestEnv(t, 10)

	resp, body := env.do(t, http.MethodGet, "/admin/api/stages", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "unauthorized", errorCode(body))

	resp, _ = env.do(t, http.MethodPost, "/admin/login", map[string]any{"password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPost, "/admin/login", map[string]any{"password": testAdminPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = env.do(t, http.MethodGet, "/admin/api/stages", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stages := body["stages"].([]any)
	require.NotEmpty(t, stages)
	stageID := stages[0].(map[string]any)["id"]

	resp, body = env.do(t, http.MethodPost, "/admin/api/questions", map[string]any{
		"stageId": stageID, "title": "L1 vs L2", "difficulty": "easy", "tags": []string{"regularization"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	q := body["question"].(map[string]any)
	id := strconv.FormatInt(int64(q["id"].(float64)), 10)

	resp, body = env.do(t, http.MethodPut, "/admin/api/questions/"+id, map[string]any{
		"stageId": stageID, "title": "L1 vs L2 regularization", "answer": "L1 induces sparsity.",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "medium", body["question"].(map[string]any)["difficulty"])

	resp, _ = env.do(t, http.MethodPut, "/admin/api/questions/424242", map[string]any{"stageId": stageID, "title": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPost, "/admin/api/questions", map[string]any{"stageId": stageID, "title": "x", "difficulty": "impossible"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPost, "/admin/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = env.do(t, http.MethodGet, "/admin/api/stages", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdmin_LoginRateLimited(t *testing.T) {
	env := newTestEnv(t, 2)

	for i := 0; i < 2; i++ {
		resp, _ := env.do(t, http.MethodPost, "/admin/login", map[string]any{"password": "wrong"})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	resp, body := env.do(t, http.MethodPost, "/admin/login", map[string]any{"password": testAdminPassword})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "rate_limited", errorCode(body))
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
}
