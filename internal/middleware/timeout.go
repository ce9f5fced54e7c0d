package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rigelk42/fast-api/internal/model"
)

func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// http.TimeoutHandler takes a fixed body, so the envelope is encoded once
	// up front rather than per request.
	body, _ := json.Marshal(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    "REQUEST_TIMEOUT",
			Message: "request timed out",
		},
	})

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, string(body))
	}
}
