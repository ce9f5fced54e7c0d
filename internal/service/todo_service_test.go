package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rigelk42/fast-api/internal/model"
	"github.com/rigelk42/fast-api/internal/repository"
	"github.com/rigelk42/fast-api/pkg/apierror"
)

func newTodoService() (*TodoService, *repository.MemoryTodoRepository) {
	repo := repository.NewMemoryTodoRepository()
	return NewTodoService(repo), repo
}

func validTodoRequest() model.TodoRequest {
	return model.TodoRequest{
		Title:       "Learn to Code",
		Description: "Learn everyday",
		Priority:    1,
		Complete:    false,
	}
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	t.Parallel()

	s, _ := newTodoService()
	ctx := context.Background()
	const owner = int64(1)

	created, err := s.Create(ctx, owner, validTodoRequest())
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, owner, created.UserID)

	got, err := s.Get(ctx, owner, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()

	s, _ := newTodoService()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*model.TodoRequest)
		field  string
	}{
		{"priority zero", func(r *model.TodoRequest) { r.Priority = 0 }, "priority"},
		{"priority too high", func(r *model.TodoRequest) { r.Priority = 6 }, "priority"},
		{"title too short", func(r *model.TodoRequest) { r.Title = "ab" }, "title"},
		{"description too short", func(r *model.TodoRequest) { r.Description = "ab" }, "description"},
		{"description too long", func(r *model.TodoRequest) { r.Description = strings.Repeat("a", 101) }, "description"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validTodoRequest()
			tc.mutate(&req)

			_, err := s.Create(ctx, 1, req)
			var apiErr *apierror.APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, http.StatusUnprocessableEntity, apiErr.HTTPStatus)
			require.Equal(t, tc.field, apiErr.Details)
		})
	}
}

func TestListIsOwnerScoped(t *testing.T) {
	t.Parallel()

	s, _ := newTodoService()
	ctx := context.Background()

	mine, err := s.Create(ctx, 1, validTodoRequest())
	require.NoError(t, err)
	_, err = s.Create(ctx, 2, validTodoRequest())
	require.NoError(t, err)

	todos, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	require.Equal(t, mine.ID, todos[0].ID)
	for _, todo := range todos {
		require.Equal(t, int64(1), todo.UserID)
	}
}

func TestForeignTodoLooksAbsent(t *testing.T) {
	t.Parallel()

	s, _ := newTodoService()
	ctx := context.Background()

	foreign, err := s.Create(ctx, 2, validTodoRequest())
	require.NoError(t, err)

	_, errForeign := s.Get(ctx, 1, foreign.ID)
	_, errAbsent := s.Get(ctx, 1, 9999)

	var apiForeign, apiAbsent *apierror.APIError
	require.ErrorAs(t, errForeign, &apiForeign)
	require.ErrorAs(t, errAbsent, &apiAbsent)
	require.Equal(t, http.StatusNotFound, apiForeign.HTTPStatus)
	require.Equal(t, http.StatusNotFound, apiAbsent.HTTPStatus)
	// Same code; only the id in the message differs.
	require.Equal(t, apiAbsent.Code, apiForeign.Code)

	require.Error(t, s.Update(ctx, 1, foreign.ID, validTodoRequest()))
	require.Error(t, s.Delete(ctx, 1, foreign.ID))

	// The foreign row is untouched.
	kept, err := s.Get(ctx, 2, foreign.ID)
	require.NoError(t, err)
	require.Equal(t, foreign, kept)
}

func TestUpdateReplacesAllFields(t *testing.T) {
	t.Parallel()

	s, _ := newTodoService()
	ctx := context.Background()

	created, err := s.Create(ctx, 1, validTodoRequest())
	require.NoError(t, err)

	updated := model.TodoRequest{
		Title:       "Change the title",
		Description: "New todo description",
		Priority:    5,
		Complete:    true,
	}
	require.NoError(t, s.Update(ctx, 1, created.ID, updated))

	got, err := s.Get(ctx, 1, created.ID)
	require.NoError(t, err)
	require.Equal(t, updated.Title, got.Title)
	require.Equal(t, updated.Description, got.Description)
	require.Equal(t, updated.Priority, got.Priority)
	require.Equal(t, updated.Complete, got.Complete)
	require.Equal(t, int64(1), got.UserID)
}

func TestDeleteThenGetNotFound(t *testing.T) {
	t.Parallel()

	s, _ := newTodoService()
	ctx := context.Background()

	created, err := s.Create(ctx, 1, validTodoRequest())
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, 1, created.ID))

	_, err = s.Get(ctx, 1, created.ID)
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.HTTPStatus)

	// Deletion of an already-absent id also reports not found.
	require.Error(t, s.Delete(ctx, 1, created.ID))
}

func TestAdminOverride(t *testing.T) {
	t.Parallel()

	s, _ := newTodoService()
	ctx := context.Background()

	first, err := s.Create(ctx, 1, validTodoRequest())
	require.NoError(t, err)
	second, err := s.Create(ctx, 2, validTodoRequest())
	require.NoError(t, err)

	t.Run("list all spans owners", func(t *testing.T) {
		todos, err := s.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, todos, 2)

		owners := map[int64]bool{}
		for _, todo := range todos {
			owners[todo.UserID] = true
		}
		require.True(t, owners[1])
		require.True(t, owners[2])
	})

	t.Run("delete any owner's row", func(t *testing.T) {
		require.NoError(t, s.DeleteAny(ctx, first.ID))
		require.NoError(t, s.DeleteAny(ctx, second.ID))
	})

	t.Run("delete nonexistent id reports not found", func(t *testing.T) {
		err := s.DeleteAny(ctx, 999)
		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusNotFound, apiErr.HTTPStatus)
		require.Contains(t, apiErr.Message, "999")
	})
}
