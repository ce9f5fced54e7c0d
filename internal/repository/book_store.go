package repository

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rigelk42/fast-api/internal/model"
	"github.com/rigelk42/fast-api/pkg/apierror"
)

// BookStore holds the id-keyed books collection in memory. It is injected
// rather than a package-level list so tests get a fresh, isolated instance.
type BookStore struct {
	mu     sync.RWMutex
	nextID int64
	books  map[int64]model.Book
}

func NewBookStore() *BookStore {
	return &BookStore{nextID: 1, books: map[int64]model.Book{}}
}

func (s *BookStore) Seed(books ...model.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range books {
		s.books[b.ID] = b
		if b.ID >= s.nextID {
			s.nextID = b.ID + 1
		}
	}
}

func (s *BookStore) List() []model.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make([]model.Book, 0, len(s.books))
	for _, b := range s.books {
		books = append(books, b)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books
}

func (s *BookStore) Get(id int64) (model.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.books[id]
	if !ok {
		return model.Book{}, bookNotFound(id)
	}
	return b, nil
}

func (s *BookStore) Insert(b *model.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = s.nextID
	s.nextID++
	s.books[b.ID] = *b
}

func (s *BookStore) Update(b model.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[b.ID]; !ok {
		return bookNotFound(b.ID)
	}
	s.books[b.ID] = b
	return nil
}

func (s *BookStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[id]; !ok {
		return bookNotFound(id)
	}
	delete(s.books, id)
	return nil
}

func bookNotFound(id int64) error {
	return apierror.NotFound(fmt.Sprintf("book with ID %d not found", id), "")
}

// CatalogStore holds the title-keyed catalog collection. Titles are matched
// case-insensitively, matching the lookup semantics of the catalog API.
type CatalogStore struct {
	mu    sync.RWMutex
	order []string
	books map[string]model.CatalogBook
}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{books: map[string]model.CatalogBook{}}
}

func (s *CatalogStore) Seed(books ...model.CatalogBook) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range books {
		s.insertLocked(b)
	}
}

func (s *CatalogStore) List() []model.CatalogBook {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make([]model.CatalogBook, 0, len(s.order))
	for _, key := range s.order {
		books = append(books, s.books[key])
	}
	return books
}

func (s *CatalogStore) Get(title string) (model.CatalogBook, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.books[catalogKey(title)]
	return b, ok
}

func (s *CatalogStore) Upsert(b model.CatalogBook) (created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := catalogKey(b.Title)
	if _, exists := s.books[key]; exists {
		s.books[key] = b
		return false
	}
	s.insertLocked(b)
	return true
}

func (s *CatalogStore) Replace(title string, b model.CatalogBook) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := catalogKey(title)
	if _, exists := s.books[key]; !exists {
		return false
	}

	// A replacement may rename the book; rekey while keeping list position.
	// When the new title collides with another entry, that entry absorbs the
	// replacement and the old slot is dropped, so each key stays unique in
	// the listing order.
	newKey := catalogKey(b.Title)
	if newKey != key {
		_, collides := s.books[newKey]
		delete(s.books, key)
		for i, k := range s.order {
			if k == key {
				if collides {
					s.order = append(s.order[:i], s.order[i+1:]...)
				} else {
					s.order[i] = newKey
				}
				break
			}
		}
	}
	s.books[newKey] = b
	return true
}

func (s *CatalogStore) Delete(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := catalogKey(title)
	if _, exists := s.books[key]; !exists {
		return false
	}

	delete(s.books, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *CatalogStore) insertLocked(b model.CatalogBook) {
	key := catalogKey(b.Title)
	if _, exists := s.books[key]; !exists {
		s.order = append(s.order, key)
	}
	s.books[key] = b
}

func catalogKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
