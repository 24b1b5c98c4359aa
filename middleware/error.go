package middleware

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"employee-service/validation"
)

type AppHandler func(http.ResponseWriter, *http.Request) error

const (
	internalErrorMessage      = "Server error"
	authenticationFailMessage = "Invalid email or password"
)

type AppError struct {
	Status  int
	Message string
	Fields  []validation.FieldError
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(status int, message string, err error) *AppError {
	return &AppError{Status: status, Message: message, Err: err}
}

// NewValidationError reports malformed or missing input, one entry per field.
func NewValidationError(message string, fields []validation.FieldError) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message, Fields: fields}
}

// NewConflictError reports a duplicate unique key.
func NewConflictError(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, message, err)
}

// NewAuthenticationError always carries the same message so callers cannot
// tell an unknown email from a wrong password.
func NewAuthenticationError(err error) *AppError {
	return NewAppError(http.StatusBadRequest, authenticationFailMessage, err)
}

func NewNotFoundError(message string, err error) *AppError {
	return NewAppError(http.StatusNotFound, message, err)
}

func NewInternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, internalErrorMessage, err)
}

type errorResponse struct {
	Message string                  `json:"message"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

type responseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.wroteHeader {
		rw.status = statusCode
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Write(body []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(body)
}

func ErrorHandler(handler AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			if recovered := recover(); recovered != nil {
				log.Printf("panic recovered: method=%s path=%s panic=%v", r.Method, r.URL.Path, recovered)
				if !rw.wroteHeader {
					writeErrorResponse(rw, http.StatusInternalServerError, errorResponse{Message: internalErrorMessage})
				}
			}
		}()

		if err := handler(rw, r); err != nil {
			handleError(rw, r, err)
		}
	}
}

func handleError(w *responseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	body := errorResponse{Message: internalErrorMessage}

	var appErr *AppError
	if errors.As(err, &appErr) {
		status = appErr.Status
		body = errorResponse{Message: appErr.Message, Errors: appErr.Fields}
	}

	if status >= http.StatusInternalServerError {
		log.Printf("request failed: method=%s path=%s status=%d err=%v", r.Method, r.URL.Path, status, err)
		body = errorResponse{Message: internalErrorMessage}
	}

	if w.wroteHeader {
		return
	}
	writeErrorResponse(w, status, body)
}

func writeErrorResponse(w http.ResponseWriter, status int, body errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSON writes payload with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}
