//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigelk42/fast-api/internal/model"
)

func TestAdminListAllSpansOwners(t *testing.T) {
	env := newTestEnv(t)
	adminToken, _ := env.registerAndLogin(t, "root", "admin")
	aliceToken, aliceID := env.registerAndLogin(t, "alice", "user")
	bobToken, bobID := env.registerAndLogin(t, "bob", "user")

	for _, token := range []string{aliceToken, bobToken} {
		resp := env.doJSON(t, http.MethodPost, "/api/v1/todos/", newTodoBody(), token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := env.doJSON(t, http.MethodGet, "/api/v1/admin/todo", nil, adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var todos []model.Todo
	decodeData(t, resp, &todos)
	resp.Body.Close()

	require.Len(t, todos, 2)
	owners := map[int64]bool{}
	for _, todo := range todos {
		owners[todo.UserID] = true
	}
	assert.True(t, owners[aliceID])
	assert.True(t, owners[bobID])
}

func TestAdminEndpointsRejectNonAdmins(t *testing.T) {
	env := newTestEnv(t)
	aliceToken, _ := env.registerAndLogin(t, "alice", "user")

	resp := env.doJSON(t, http.MethodGet, "/api/v1/admin/todo", nil, aliceToken)
	defer resp.Body.Close()

	// A valid token with the wrong role gets the same 401 as no token.
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	apiErr := decodeError(t, resp)
	assert.Equal(t, "UNAUTHORIZED", apiErr.Code)
}

func TestAdminDeleteAnyOwner(t *testing.T) {
	env := newTestEnv(t)
	adminToken, _ := env.registerAndLogin(t, "root", "admin")
	aliceToken, _ := env.registerAndLogin(t, "alice", "user")

	resp := env.doJSON(t, http.MethodPost, "/api/v1/todos/", newTodoBody(), aliceToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodDelete, "/api/v1/admin/todo/1", nil, adminToken)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodGet, "/api/v1/todos/1", nil, aliceToken)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminDeleteNonexistent(t *testing.T) {
	env := newTestEnv(t)
	adminToken, _ := env.registerAndLogin(t, "root", "admin")

	resp := env.doJSON(t, http.MethodDelete, "/api/v1/admin/todo/999", nil, adminToken)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	apiErr := decodeError(t, resp)
	assert.Contains(t, apiErr.Message, "999")
}
