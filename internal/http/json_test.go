package httpx

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/campushub/campushub/internal/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWriteSuccess(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteSuccess(rec, http.StatusCreated, map[string]string{"id": "u-1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"id":"u-1"}}`, rec.Body.String())
}

func TestWriteFailure(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteFailure(rec, http.StatusBadRequest, "Title is required")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Title is required"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Alice"}`))

		var dst struct {
			Name string `json:"name"`
		}
		assert.True(t, DecodeJSON(rec, req, &dst))
		assert.Equal(t, "Alice", dst.Name)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))

		var dst map[string]any
		assert.False(t, DecodeJSON(rec, req, &dst))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":"Request body is not valid JSON"}`, rec.Body.String())
	})
}

func TestWriteAppError_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{"validation", apperrors.ValidationField("title", "Title is required"), http.StatusBadRequest, "Title is required"},
		{"conflict", apperrors.ConflictField("email", "Email already registered"), http.StatusBadRequest, "Email already registered"},
		{"foreign key", apperrors.ForeignKey("Referenced user accounts record does not exist."), http.StatusBadRequest, "Referenced user accounts record does not exist."},
		{"unauthorized", apperrors.Unauthorized("Invalid credentials"), http.StatusUnauthorized, "Invalid credentials"},
		{"forbidden", apperrors.Forbidden("Admin role required"), http.StatusForbidden, "Admin role required"},
		{"not found", apperrors.NotFound("Blog post not found"), http.StatusNotFound, "Blog post not found"},
		{"timeout", apperrors.Wrap(errors.New("deadline"), apperrors.ErrCodeTimeout, "slow"), http.StatusServiceUnavailable, "Request timed out"},
		{"canceled", apperrors.Wrap(errors.New("canceled"), apperrors.ErrCodeCanceled, "gone"), http.StatusServiceUnavailable, "Request timed out"},
		{"internal hides cause", apperrors.Wrap(errors.New("pq: connection refused"), apperrors.ErrCodeInternal, "db down"), http.StatusInternalServerError, "Internal server error"},
		{"unrecognized error", errors.New("plain"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			WriteAppError(rec, req, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantMessage, decodeFailure(t, rec))
			// Raw causes never leak to callers.
			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}

func TestWriteAppError_HTMLForBrowsers(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/html")

	WriteAppError(rec, req, apperrors.NotFound("Course module not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Course module not found")
}

func TestWriteErrorPage_EscapesContent(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeErrorPage(rec, http.StatusBadRequest, `<script>alert("x")</script>`)

	assert.NotContains(t, rec.Body.String(), "<script>")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;")
}
