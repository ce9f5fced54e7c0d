package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rigelk42/fast-api/internal/model"
	"github.com/rigelk42/fast-api/internal/repository"
	"github.com/rigelk42/fast-api/pkg/apierror"
)

func newCatalogService() *CatalogService {
	store := repository.NewCatalogStore()
	store.Seed(
		model.CatalogBook{Title: "Title One", Author: "Author One", Category: "science"},
		model.CatalogBook{Title: "Title Two", Author: "Author Two", Category: "science"},
		model.CatalogBook{Title: "Title Three", Author: "Author Three", Category: "history"},
		model.CatalogBook{Title: "Title Six", Author: "Author Two", Category: "math"},
	)
	return NewCatalogService(store)
}

func TestCatalogLookupIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	s := newCatalogService()

	book, err := s.Get("title one")
	require.NoError(t, err)
	require.Equal(t, "Title One", book.Title)

	_, err = s.Get("no such title")
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.HTTPStatus)
}

func TestCatalogFilters(t *testing.T) {
	t.Parallel()

	s := newCatalogService()

	science := s.ByCategory("SCIENCE")
	require.Len(t, science, 2)

	byAuthor := s.ByAuthor("author two", "")
	require.Len(t, byAuthor, 2)
	titles := []string{byAuthor[0].Title, byAuthor[1].Title}
	require.ElementsMatch(t, []string{"Title Two", "Title Six"}, titles)

	narrowed := s.ByAuthor("author two", "MATH")
	require.Len(t, narrowed, 1)
	require.Equal(t, "Title Six", narrowed[0].Title)

	require.Empty(t, s.ByAuthor("author two", "history"))
}

func TestCatalogRenameReleasesOldTitle(t *testing.T) {
	t.Parallel()

	s := newCatalogService()

	require.NoError(t, s.Update("Title One", model.CatalogBook{Title: "Title Renamed", Author: "Author One", Category: "science"}))

	_, err := s.Get("Title One")
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.HTTPStatus)

	book, err := s.Get("title renamed")
	require.NoError(t, err)
	require.Equal(t, "Author One", book.Author)
	require.Len(t, s.List(), 4)
}

func TestCatalogRenameToExistingTitleConflicts(t *testing.T) {
	t.Parallel()

	s := newCatalogService()

	err := s.Update("Title One", model.CatalogBook{Title: "TITLE TWO", Author: "Author One", Category: "science"})
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.HTTPStatus)

	// Both originals survive untouched.
	one, err := s.Get("Title One")
	require.NoError(t, err)
	require.Equal(t, "Author One", one.Author)

	two, err := s.Get("Title Two")
	require.NoError(t, err)
	require.Equal(t, "Author Two", two.Author)
	require.Len(t, s.List(), 4)
}

func TestCatalogCreateConflict(t *testing.T) {
	t.Parallel()

	s := newCatalogService()

	created, err := s.Create(model.CatalogBook{Title: "Title Seven", Author: "Author Seven", Category: "science"})
	require.NoError(t, err)
	require.Equal(t, "Title Seven", created.Title)

	_, err = s.Create(model.CatalogBook{Title: "TITLE SEVEN", Author: "Someone Else", Category: "math"})
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.HTTPStatus)
}

func TestCatalogUpdateAndDelete(t *testing.T) {
	t.Parallel()

	s := newCatalogService()

	require.NoError(t, s.Update("Title One", model.CatalogBook{Title: "Title One", Author: "New Author", Category: "science"}))

	book, err := s.Get("Title One")
	require.NoError(t, err)
	require.Equal(t, "New Author", book.Author)

	require.NoError(t, s.Delete("title one"))

	_, err = s.Get("Title One")
	require.Error(t, err)

	err = s.Delete("Title One")
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.HTTPStatus)
}
