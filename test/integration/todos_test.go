//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigelk42/fast-api/internal/model"
)

func newTodoBody() map[string]any {
	return map[string]any{
		"title":       "Learn to Code",
		"description": "Learn everyday",
		"priority":    1,
		"complete":    false,
	}
}

func TestTodoLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token, userID := env.registerAndLogin(t, "alice", "user")

	// Create.
	resp := env.doJSON(t, http.MethodPost, "/api/v1/todos/", newTodoBody(), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created model.Todo
	decodeData(t, resp, &created)
	resp.Body.Close()
	require.NotZero(t, created.ID)
	assert.Equal(t, userID, created.UserID)
	assert.Equal(t, "Learn to Code", created.Title)

	// Read back.
	resp = env.doJSON(t, http.MethodGet, "/api/v1/todos/1", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched model.Todo
	decodeData(t, resp, &fetched)
	resp.Body.Close()
	assert.Equal(t, created, fetched)

	// Update replaces every field.
	update := map[string]any{
		"title":       "Change the title",
		"description": "New todo description",
		"priority":    5,
		"complete":    true,
	}
	resp = env.doJSON(t, http.MethodPut, "/api/v1/todos/1", update, token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodGet, "/api/v1/todos/1", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeData(t, resp, &fetched)
	resp.Body.Close()
	assert.Equal(t, "Change the title", fetched.Title)
	assert.True(t, fetched.Complete)

	// Delete, then the id is gone.
	resp = env.doJSON(t, http.MethodDelete, "/api/v1/todos/1", nil, token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodGet, "/api/v1/todos/1", nil, token)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestTodoValidationBoundary(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.registerAndLogin(t, "alice", "user")

	body := newTodoBody()
	body["priority"] = 0

	resp := env.doJSON(t, http.MethodPost, "/api/v1/todos/", body, token)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	apiErr := decodeError(t, resp)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	assert.Equal(t, "priority", apiErr.Details)
}

func TestTodosAreOwnerScoped(t *testing.T) {
	env := newTestEnv(t)
	aliceToken, _ := env.registerAndLogin(t, "alice", "user")
	bobToken, _ := env.registerAndLogin(t, "bob", "user")

	resp := env.doJSON(t, http.MethodPost, "/api/v1/todos/", newTodoBody(), aliceToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var aliceTodo model.Todo
	decodeData(t, resp, &aliceTodo)
	resp.Body.Close()

	// Bob's list does not contain Alice's todo.
	resp = env.doJSON(t, http.MethodGet, "/api/v1/todos/", nil, bobToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var bobTodos []model.Todo
	decodeData(t, resp, &bobTodos)
	resp.Body.Close()
	assert.Empty(t, bobTodos)

	// Alice's todo answers 404 to Bob, with the same shape as a truly
	// absent id.
	respForeign := env.doJSON(t, http.MethodGet, "/api/v1/todos/1", nil, bobToken)
	require.Equal(t, http.StatusNotFound, respForeign.StatusCode)
	foreignErr := decodeError(t, respForeign)
	respForeign.Body.Close()

	respAbsent := env.doJSON(t, http.MethodGet, "/api/v1/todos/999", nil, bobToken)
	require.Equal(t, http.StatusNotFound, respAbsent.StatusCode)
	absentErr := decodeError(t, respAbsent)
	respAbsent.Body.Close()

	assert.Equal(t, absentErr.Code, foreignErr.Code)

	// Bob cannot mutate it either.
	resp = env.doJSON(t, http.MethodPut, "/api/v1/todos/1", newTodoBody(), bobToken)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodDelete, "/api/v1/todos/1", nil, bobToken)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Still intact for Alice.
	resp = env.doJSON(t, http.MethodGet, "/api/v1/todos/1", nil, aliceToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
