package service

import (
	"github.com/rigelk42/fast-api/internal/model"
	"github.com/rigelk42/fast-api/internal/repository"
)

// BookService backs the standalone id-keyed books API. The whole collection
// lives in an injected in-memory store.
type BookService struct {
	store *repository.BookStore
}

func NewBookService(store *repository.BookStore) *BookService {
	return &BookService{store: store}
}

func (s *BookService) List() []model.Book {
	return s.store.List()
}

func (s *BookService) Get(id int64) (model.Book, error) {
	return s.store.Get(id)
}

func (s *BookService) FilterByRating(rating int) []model.Book {
	out := make([]model.Book, 0)
	for _, b := range s.store.List() {
		if b.Rating == rating {
			out = append(out, b)
		}
	}
	return out
}

func (s *BookService) FilterByPublishedDate(year int) []model.Book {
	out := make([]model.Book, 0)
	for _, b := range s.store.List() {
		if b.PublishedDate == year {
			out = append(out, b)
		}
	}
	return out
}

func (s *BookService) Create(req model.BookRequest) (model.Book, error) {
	if err := req.Validate(); err != nil {
		return model.Book{}, err
	}

	book := model.Book{
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		Rating:        req.Rating,
		PublishedDate: req.PublishedDate,
	}
	s.store.Insert(&book)
	return book, nil
}

func (s *BookService) Update(id int64, req model.BookRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	return s.store.Update(model.Book{
		ID:            id,
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		Rating:        req.Rating,
		PublishedDate: req.PublishedDate,
	})
}

func (s *BookService) Delete(id int64) error {
	return s.store.Delete(id)
}
