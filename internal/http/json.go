package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/campushub/campushub/internal/errors"
)

// envelope is the uniform JSON response shape. Every endpoint responds with
// either {"success":true,"data":...} or {"success":false,"error":"..."}.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DecodeJSON decodes JSON from the request body into the destination.
// Returns false if decoding failed; the error response is already written.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		WriteFailure(w, http.StatusBadRequest, "Request body is not valid JSON")
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the given status code and body.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// WriteSuccess writes a success envelope with the given status code and data.
func WriteSuccess(w http.ResponseWriter, code int, data any) {
	WriteJSON(w, code, envelope{Success: true, Data: data})
}

// WriteFailure writes a failure envelope with the given status code and message.
func WriteFailure(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, envelope{Success: false, Error: message})
}

// WriteAppError maps an application error onto the failure envelope. Browser
// requests get an HTML error page instead; API callers get JSON.
func WriteAppError(w http.ResponseWriter, r *http.Request, err error) {
	code, message := errorStatus(err)
	if code == http.StatusInternalServerError {
		slog.Default().Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
	if IsBrowserRequest(r) {
		writeErrorPage(w, code, message)
		return
	}
	WriteFailure(w, code, message)
}

// errorStatus translates the error taxonomy into an HTTP status and the
// caller-facing message. Internal errors never leak their cause.
func errorStatus(err error) (int, string) {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation, apperrors.ErrCodeConflict, apperrors.ErrCodeForeignKey:
		return http.StatusBadRequest, appMessage(err)
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized, appMessage(err)
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden, appMessage(err)
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound, appMessage(err)
	case apperrors.ErrCodeTimeout, apperrors.ErrCodeCanceled:
		return http.StatusServiceUnavailable, "Request timed out"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func appMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return http.StatusText(http.StatusInternalServerError)
}
