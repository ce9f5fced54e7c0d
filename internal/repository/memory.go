package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rigelk42/fast-api/internal/model"
	"github.com/rigelk42/fast-api/pkg/apierror"
)

// MemoryUserRepository and MemoryTodoRepository are map-backed stands-ins for
// the Postgres repositories. They satisfy the same service interfaces and
// return the same error shapes, which keeps the service and handler tests free
// of a live database.

type MemoryUserRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]model.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{nextID: 1, users: map[int64]model.User{}}
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id int64) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return model.User{}, apierror.NotFound("user not found", fmt.Sprintf("%d", id))
	}
	return u, nil
}

func (r *MemoryUserRepository) FindByUsername(_ context.Context, username string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := strings.ToLower(strings.TrimSpace(username))
	for _, u := range r.users {
		if strings.ToLower(u.Username) == key {
			return u, nil
		}
	}
	return model.User{}, apierror.NotFound("user not found", username)
}

func (r *MemoryUserRepository) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Username, u.Username) || strings.EqualFold(existing.Email, u.Email) {
			return apierror.Conflict("username or email already exists", u.Username)
		}
	}

	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = *u
	return nil
}

func (r *MemoryUserRepository) SetActive(_ context.Context, userID int64, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return apierror.NotFound("user not found", fmt.Sprintf("%d", userID))
	}
	u.IsActive = active
	r.users[userID] = u
	return nil
}

func (r *MemoryUserRepository) UpdatePassword(_ context.Context, userID int64, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return apierror.NotFound("user not found", fmt.Sprintf("%d", userID))
	}
	u.HashedPassword = hashedPassword
	r.users[userID] = u
	return nil
}

type MemoryTodoRepository struct {
	mu     sync.RWMutex
	nextID int64
	todos  map[int64]model.Todo
}

func NewMemoryTodoRepository() *MemoryTodoRepository {
	return &MemoryTodoRepository{nextID: 1, todos: map[int64]model.Todo{}}
}

// Seed inserts a todo with a fixed id, bumping the id sequence past it.
func (r *MemoryTodoRepository) Seed(t model.Todo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.todos[t.ID] = t
	if t.ID >= r.nextID {
		r.nextID = t.ID + 1
	}
}

func (r *MemoryTodoRepository) Create(_ context.Context, t *model.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.nextID
	r.nextID++
	r.todos[t.ID] = *t
	return nil
}

func (r *MemoryTodoRepository) FindByID(_ context.Context, id int64, ownerID int64) (model.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.todos[id]
	if !ok || t.UserID != ownerID {
		return model.Todo{}, todoNotFound(id)
	}
	return t, nil
}

func (r *MemoryTodoRepository) ListByOwner(_ context.Context, ownerID int64) ([]model.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	todos := make([]model.Todo, 0)
	for _, t := range r.todos {
		if t.UserID == ownerID {
			todos = append(todos, t)
		}
	}
	sortTodos(todos)
	return todos, nil
}

func (r *MemoryTodoRepository) ListAll(_ context.Context) ([]model.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	todos := make([]model.Todo, 0, len(r.todos))
	for _, t := range r.todos {
		todos = append(todos, t)
	}
	sortTodos(todos)
	return todos, nil
}

func (r *MemoryTodoRepository) Update(_ context.Context, t model.Todo, ownerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.todos[t.ID]
	if !ok || existing.UserID != ownerID {
		return todoNotFound(t.ID)
	}
	t.UserID = existing.UserID
	r.todos[t.ID] = t
	return nil
}

func (r *MemoryTodoRepository) Delete(_ context.Context, id int64, ownerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.todos[id]
	if !ok || t.UserID != ownerID {
		return todoNotFound(id)
	}
	delete(r.todos, id)
	return nil
}

func (r *MemoryTodoRepository) DeleteAny(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.todos[id]; !ok {
		return todoNotFound(id)
	}
	delete(r.todos, id)
	return nil
}

func sortTodos(todos []model.Todo) {
	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })
}
