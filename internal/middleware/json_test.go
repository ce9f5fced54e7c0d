package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigelk42/fast-api/internal/model"
)

func TestWriteFailureEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeFailure(rec, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp model.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "RATE_LIMITED", resp.Error.Code)
	assert.Equal(t, "Too many requests", resp.Error.Message)
}

func TestTimeoutBodyIsEnvelope(t *testing.T) {
	t.Parallel()

	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	srv := httptest.NewServer(Timeout(10 * time.Millisecond)(slow))
	defer srv.Close()

	res, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)

	var resp model.APIResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "REQUEST_TIMEOUT", resp.Error.Code)
}
