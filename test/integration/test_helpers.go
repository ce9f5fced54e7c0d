//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rigelk42/fast-api/internal/config"
	"github.com/rigelk42/fast-api/internal/handler"
	"github.com/rigelk42/fast-api/internal/middleware"
	"github.com/rigelk42/fast-api/internal/model"
	"github.com/rigelk42/fast-api/internal/repository"
	"github.com/rigelk42/fast-api/internal/router"
	"github.com/rigelk42/fast-api/internal/service"
)

type testEnv struct {
	server    *httptest.Server
	todoRepo  *repository.MemoryTodoRepository
	bookStore *repository.BookStore
}

// newTestEnv wires the full router against in-memory repositories so the HTTP
// surface can be exercised without Postgres.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		ServerPort:       "8080",
		RequestTimeout:   30 * time.Second,
		JWTSecret:        "test-secret",
		JWTAccessTTL:     20 * time.Minute,
		CORSOrigins:      []string{"*"},
		RateLimitRPM:     10000,
		AuthRateLimitRPM: 10000,
	}

	userRepo := repository.NewMemoryUserRepository()
	todoRepo := repository.NewMemoryTodoRepository()
	bookStore := repository.NewBookStore()
	catalogStore := repository.NewCatalogStore()
	catalogStore.Seed(
		model.CatalogBook{Title: "Title One", Author: "Author One", Category: "science"},
		model.CatalogBook{Title: "Title Two", Author: "Author Two", Category: "science"},
	)

	authService := service.NewAuthService(cfg.JWTSecret, cfg.JWTAccessTTL, userRepo)
	todoService := service.NewTodoService(todoRepo)

	srv := httptest.NewServer(router.New(cfg, middleware.NewAuthMiddleware(authService), router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Todo:    handler.NewTodoHandler(todoService),
		Admin:   handler.NewAdminHandler(todoService),
		Book:    handler.NewBookHandler(service.NewBookService(bookStore)),
		Catalog: handler.NewCatalogHandler(service.NewCatalogService(catalogStore)),
	}))
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, todoRepo: todoRepo, bookStore: bookStore}
}

// registerAndLogin creates an account through the API and returns its bearer
// token and user id.
func (e *testEnv) registerAndLogin(t *testing.T, username string, role string) (string, int64) {
	t.Helper()

	registerBody := map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
		"role":     role,
	}
	resp := e.doJSON(t, http.MethodPost, "/api/v1/auth/register", registerBody, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var registered struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&registered))

	loginBody := map[string]string{"username": username, "password": "password123"}
	resp = e.doJSON(t, http.MethodPost, "/api/v1/auth/login", loginBody, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	require.True(t, parsed.Success)
	require.NotEmpty(t, parsed.Data.AccessToken)

	return parsed.Data.AccessToken, registered.Data.ID
}

func (e *testEnv) doJSON(t *testing.T, method string, path string, body any, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.True(t, envelope.Success)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func decodeError(t *testing.T, resp *http.Response) model.APIError {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Error   *model.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	return *envelope.Error
}
