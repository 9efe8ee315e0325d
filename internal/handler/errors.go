package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/wedding-timeline/internal/clock"
	"github.com/pkordes/wedding-timeline/internal/domain"
)

// Error codes carried in the "code" field of every error body.
const (
	codeBadRequest      = "bad_request"
	codeParse           = "parse_error"
	codeValidation      = "validation_error"
	codeNotFound        = "not_found"
	codeConflict        = "conflict"
	codePayloadTooLarge = "payload_too_large"
	codeInternal        = "internal_error"
)

// ErrorDetail is the machine-readable code plus a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// writeJSON encodes v with the given status. Encoding errors after the header
// is written cannot be reported to the client, so they are dropped.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// writeServiceError maps an error returned by the service layer onto a status
// and error code. Unrecognised errors are logged and reported as a bare 500 so
// internals never reach the client.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var pe *clock.ParseError
	switch {
	case errors.As(err, &pe):
		writeError(w, http.StatusUnprocessableEntity, codeParse, pe.Error())
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, codeValidation, unwrapMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, unwrapMessage(err, domain.ErrNotFound))
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, codeConflict, unwrapMessage(err, domain.ErrConflict))
	default:
		s.log.ErrorContext(r.Context(), "unhandled error",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// writeDecodeError reports a request body that could not be decoded. Bodies cut
// off by the size limit get 413; everything else is the client's malformed JSON.
func writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, codePayloadTooLarge, "request body is too large")
		return
	}
	writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
}

// unwrapMessage extracts the human-readable part that follows the sentinel in
// a wrapped error chain.
// e.g. "service.PresetService.Create: validation error: name is required" → "name is required"
func unwrapMessage(err, sentinel error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}
