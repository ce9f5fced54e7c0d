package service

import (
	"strings"

	"github.com/rigelk42/fast-api/internal/model"
	"github.com/rigelk42/fast-api/internal/repository"
	"github.com/rigelk42/fast-api/pkg/apierror"
)

// CatalogService backs the standalone title-keyed catalog API.
type CatalogService struct {
	store *repository.CatalogStore
}

func NewCatalogService(store *repository.CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) List() []model.CatalogBook {
	return s.store.List()
}

func (s *CatalogService) Get(title string) (model.CatalogBook, error) {
	book, ok := s.store.Get(title)
	if !ok {
		return model.CatalogBook{}, catalogNotFound(title)
	}
	return book, nil
}

// ByAuthor returns an author's books, further narrowed by category when one
// is given.
func (s *CatalogService) ByAuthor(author string, category string) []model.CatalogBook {
	out := make([]model.CatalogBook, 0)
	for _, b := range s.store.List() {
		if !strings.EqualFold(b.Author, author) {
			continue
		}
		if category != "" && !strings.EqualFold(b.Category, category) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func (s *CatalogService) ByCategory(category string) []model.CatalogBook {
	out := make([]model.CatalogBook, 0)
	for _, b := range s.store.List() {
		if strings.EqualFold(b.Category, category) {
			out = append(out, b)
		}
	}
	return out
}

func (s *CatalogService) Create(book model.CatalogBook) (model.CatalogBook, error) {
	if err := book.Validate(); err != nil {
		return model.CatalogBook{}, err
	}

	if _, exists := s.store.Get(book.Title); exists {
		return model.CatalogBook{}, apierror.Conflict("book already exists", book.Title)
	}

	s.store.Upsert(book)
	return book, nil
}

func (s *CatalogService) Update(title string, book model.CatalogBook) error {
	if err := book.Validate(); err != nil {
		return err
	}

	// A rename must not steal another entry's title.
	if !strings.EqualFold(strings.TrimSpace(title), strings.TrimSpace(book.Title)) {
		if _, exists := s.store.Get(book.Title); exists {
			return apierror.Conflict("book already exists", book.Title)
		}
	}

	if !s.store.Replace(title, book) {
		return catalogNotFound(title)
	}
	return nil
}

func (s *CatalogService) Delete(title string) error {
	if !s.store.Delete(title) {
		return catalogNotFound(title)
	}
	return nil
}

func catalogNotFound(title string) error {
	return apierror.NotFound("book with title "+title+" not found", "")
}
