// Package respond writes JSON responses and maps errors to status codes.
// Messages of 5xx errors never reach the client; they are logged with
// credentials masked.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"venture-feed/internal/domain/entity"
)

const contentTypeJSON = "application/json"

// fallbackBody is sent when v itself cannot be encoded.
var fallbackBody = []byte(`{"error":"internal server error"}` + "\n")

// JSON encodes v and writes it with code. The body is encoded before any
// header is sent, so an unencodable v becomes a 500 instead of a truncated
// response. A nil v writes only the status.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	if v == nil {
		w.WriteHeader(code)
		return
	}
	body, err := json.Marshal(v)
	if err != nil {
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(fallbackBody)
		return
	}
	w.WriteHeader(code)
	_, _ = w.Write(append(body, '\n'))
}

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Error string `json:"error" example:"sector must be one of AI-native, Vertical SaaS, Fintech, Robotics, Other"`
}

// Error writes err's message as-is. Only for messages the handler built.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, ErrorBody{Error: err.Error()})
}

// SafeError echoes err for caller mistakes (code < 500). Server errors get a
// generic body and a sanitized log line.
func SafeError(w http.ResponseWriter, code int, err error) {
	switch {
	case err == nil:
		return
	case code < http.StatusInternalServerError:
		Error(w, code, err)
	default:
		slog.Default().Error("internal server error",
			slog.Int("code", code),
			slog.String("status", http.StatusText(code)),
			slog.String("error", SanitizeError(err)))
		JSON(w, code, ErrorBody{Error: "internal server error"})
	}
}

// AppError pins an error to a status and a message safe to show callers.
type AppError struct {
	Code    int
	UserMsg string
	// Err is logged, never returned to the caller. May be nil.
	Err error
}

func NewAppError(code int, userMsg string, err error) *AppError {
	return &AppError{Code: code, UserMsg: userMsg, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.UserMsg
	}
	return e.UserMsg + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error { return e.Err }

// StatusOf maps err to a status code:
//
//	*AppError                                     its Code
//	entity.ErrValidationFailed, ErrInvalidInput   400
//	entity.ErrNotFound                            404
//	anything else                                 500
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	switch {
	case errors.Is(err, entity.ErrValidationFailed), errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// FromError writes err with the status from StatusOf. A nil err is a no-op.
func FromError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	var appErr *AppError
	if !errors.As(err, &appErr) {
		SafeError(w, StatusOf(err), err)
		return
	}
	if appErr.Err != nil {
		slog.Default().Warn("application error",
			slog.Int("code", appErr.Code),
			slog.String("user_message", appErr.UserMsg),
			slog.String("error", SanitizeError(appErr.Err)))
	}
	JSON(w, appErr.Code, ErrorBody{Error: appErr.UserMsg})
}
