package model

import (
	"strings"

	"github.com/rigelk42/fast-api/pkg/apierror"
)

type Todo struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Complete    bool   `json:"complete"`
	UserID      int64  `json:"user_id"`
}

type TodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Complete    bool   `json:"complete"`
}

// Validate enforces the field constraints before anything touches the store.
func (r TodoRequest) Validate() error {
	if len(strings.TrimSpace(r.Title)) < 3 {
		return apierror.Validation("title must be at least 3 characters", "title")
	}
	if l := len(strings.TrimSpace(r.Description)); l < 3 || l > 100 {
		return apierror.Validation("description must be between 3 and 100 characters", "description")
	}
	if r.Priority < 1 || r.Priority > 5 {
		return apierror.Validation("priority must be between 1 and 5", "priority")
	}
	return nil
}
