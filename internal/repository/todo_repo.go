package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rigelk42/fast-api/internal/model"
	"github.com/rigelk42/fast-api/pkg/apierror"
)

// TodoRepository performs todo CRUD against Postgres. Owner-scoped methods
// carry the owner id inside the query predicate itself, so a row belonging to
// another user is indistinguishable from an absent one.
type TodoRepository struct {
	pool *pgxpool.Pool
}

func NewTodoRepository(pool *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{pool: pool}
}

func (r *TodoRepository) Create(ctx context.Context, t *model.Todo) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO todos (title, description, priority, complete, user_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		t.Title, t.Description, t.Priority, t.Complete, t.UserID).
		Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id int64, ownerID int64) (model.Todo, error) {
	var t model.Todo
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, priority, complete, user_id
		 FROM todos WHERE id = $1 AND user_id = $2`, id, ownerID).
		Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Complete, &t.UserID)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Todo{}, todoNotFound(id)
	}
	if err != nil {
		return model.Todo{}, fmt.Errorf("find todo by id: %w", err)
	}
	return t, nil
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Todo, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, priority, complete, user_id
		 FROM todos WHERE user_id = $1 ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	return scanTodos(rows)
}

func (r *TodoRepository) ListAll(ctx context.Context) ([]model.Todo, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, priority, complete, user_id
		 FROM todos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list all todos: %w", err)
	}
	defer rows.Close()

	return scanTodos(rows)
}

// Update replaces every mutable field in a single statement; the ownership
// filter makes the write and the existence check one atomic operation.
func (r *TodoRepository) Update(ctx context.Context, t model.Todo, ownerID int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE todos SET title = $3, description = $4, priority = $5, complete = $6
		 WHERE id = $1 AND user_id = $2`,
		t.ID, ownerID, t.Title, t.Description, t.Priority, t.Complete)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return todoNotFound(t.ID)
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id int64, ownerID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return todoNotFound(id)
	}
	return nil
}

// DeleteAny removes a row regardless of owner. Admin use only.
func (r *TodoRepository) DeleteAny(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return todoNotFound(id)
	}
	return nil
}

func scanTodos(rows pgx.Rows) ([]model.Todo, error) {
	todos := make([]model.Todo, 0)
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Complete, &t.UserID); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func todoNotFound(id int64) error {
	return apierror.NotFound(fmt.Sprintf("todo with ID %d not found", id), "")
}
