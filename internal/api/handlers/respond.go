package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dom/devdreams-backend/internal/domain"
	"github.com/dom/devdreams-backend/internal/service"
)

// Envelope is the wire shape of every JSON response.
type Envelope struct {
	Status  string       `json:"status"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Responder centralizes response serialization and the operational-error
// taxonomy. Unexpected errors are logged and masked in production.
type Responder struct {
	production bool
	log        *slog.Logger
}

func NewResponder(production bool, log *slog.Logger) *Responder {
	return &Responder{production: production, log: log}
}

func (rp *Responder) Success(w http.ResponseWriter, statusCode int, message string, data any) {
	writeJSON(w, statusCode, Envelope{Status: "success", Message: message, Data: data})
}

func (rp *Responder) Fail(w http.ResponseWriter, statusCode int, message string) {
	status := "fail"
	if statusCode >= 500 {
		status = "error"
	}
	writeJSON(w, statusCode, Envelope{Status: status, Message: message})
}

func (rp *Responder) ValidationError(w http.ResponseWriter, errs []FieldError) {
	writeJSON(w, http.StatusBadRequest, Envelope{
		Status:  "fail",
		Message: "Invalid input data",
		Errors:  errs,
	})
}

// operational errors and their status codes. The duplicate-bookmark 404 is
// a long-standing inconsistency kept for client compatibility.
var errorStatus = map[error]int{
	domain.ErrEmailExists:          http.StatusConflict,
	domain.ErrInvalidCredentials:   http.StatusBadRequest,
	domain.ErrInvalidAuthMethod:    http.StatusBadRequest,
	domain.ErrInvalidResetToken:    http.StatusBadRequest,
	domain.ErrWrongCurrentPassword: http.StatusBadRequest,
	domain.ErrInvalidRefreshToken:  http.StatusUnauthorized,
	domain.ErrInvalidAccessToken:   http.StatusUnauthorized,
	domain.ErrPasswordChanged:      http.StatusUnauthorized,
	domain.ErrNotAuthor:            http.StatusForbidden,
	domain.ErrUserNotFound:         http.StatusNotFound,
	domain.ErrPostNotFound:         http.StatusNotFound,
	domain.ErrCommentNotFound:      http.StatusNotFound,
	domain.ErrParentNotFound:       http.StatusNotFound,
	domain.ErrBookmarkNotFound:     http.StatusNotFound,
	domain.ErrAlreadyBookmarked:    http.StatusNotFound,
	domain.ErrEmailSendFailed:      http.StatusInternalServerError,
	domain.ErrCommentFailed:        http.StatusInternalServerError,
	service.ErrOAuthNotConfigured:  http.StatusInternalServerError,
}

// Error maps an error onto the envelope. Operational errors pass their
// message through verbatim, anything else becomes a generic 500.
func (rp *Responder) Error(w http.ResponseWriter, err error) {
	for sentinel, code := range errorStatus {
		if errors.Is(err, sentinel) {
			rp.Fail(w, code, sentinel.Error())
			return
		}
	}

	rp.log.Error("unexpected error", "error", err)
	if rp.production {
		rp.Fail(w, http.StatusInternalServerError, "Something went very wrong!")
		return
	}
	rp.Fail(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, statusCode int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// maxBodyBytes caps JSON request bodies at 10kb.
const maxBodyBytes = 10 << 10

func decodeJSON(w http.ResponseWriter, r *http.Request, rp *Responder, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			rp.Fail(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		rp.Fail(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
