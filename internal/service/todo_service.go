package service

import (
	"context"

	"github.com/rigelk42/fast-api/internal/model"
)

type todoStore interface {
	Create(ctx context.Context, t *model.Todo) error
	FindByID(ctx context.Context, id int64, ownerID int64) (model.Todo, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Todo, error)
	ListAll(ctx context.Context) ([]model.Todo, error)
	Update(ctx context.Context, t model.Todo, ownerID int64) error
	Delete(ctx context.Context, id int64, ownerID int64) error
	DeleteAny(ctx context.Context, id int64) error
}

// TodoService implements owner-scoped todo CRUD plus the admin override. The
// owner id is an explicit parameter on every scoped operation; the store never
// sees a query without it, so another user's rows cannot leak through.
type TodoService struct {
	todos todoStore
}

func NewTodoService(todos todoStore) *TodoService {
	return &TodoService{todos: todos}
}

func (s *TodoService) List(ctx context.Context, ownerID int64) ([]model.Todo, error) {
	return s.todos.ListByOwner(ctx, ownerID)
}

func (s *TodoService) Get(ctx context.Context, ownerID int64, id int64) (model.Todo, error) {
	return s.todos.FindByID(ctx, id, ownerID)
}

func (s *TodoService) Create(ctx context.Context, ownerID int64, req model.TodoRequest) (model.Todo, error) {
	if err := req.Validate(); err != nil {
		return model.Todo{}, err
	}

	todo := model.Todo{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Complete:    req.Complete,
		UserID:      ownerID,
	}

	if err := s.todos.Create(ctx, &todo); err != nil {
		return model.Todo{}, err
	}

	return todo, nil
}

// Update replaces all mutable fields or fails; it never partially applies.
func (s *TodoService) Update(ctx context.Context, ownerID int64, id int64, req model.TodoRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	todo := model.Todo{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Complete:    req.Complete,
		UserID:      ownerID,
	}

	return s.todos.Update(ctx, todo, ownerID)
}

func (s *TodoService) Delete(ctx context.Context, ownerID int64, id int64) error {
	return s.todos.Delete(ctx, id, ownerID)
}

// ListAll returns every row regardless of owner. Callers must be role-gated.
func (s *TodoService) ListAll(ctx context.Context) ([]model.Todo, error) {
	return s.todos.ListAll(ctx)
}

func (s *TodoService) DeleteAny(ctx context.Context, id int64) error {
	return s.todos.DeleteAny(ctx, id)
}
