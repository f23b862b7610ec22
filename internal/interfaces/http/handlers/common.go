// Common helpers shared by the HTTP handlers: JSON encoding, request body
// decoding and the error envelope.

package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/turtacn/ScholarAI/internal/infrastructure/auth/token"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScholarAI/pkg/errors"
)

// DefaultMaxBodySize bounds request bodies when no explicit limit is set.
const DefaultMaxBodySize int64 = 1 << 20

// ErrorBody is the payload of every error response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// ErrorResponse wraps ErrorBody under the "error" key.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteError renders err as the error envelope.  The status comes from the
// error code; errors without an AppError in their chain become a masked 500.
func WriteError(w http.ResponseWriter, err error) {
	var ae *errors.AppError
	if !stderrors.As(err, &ae) {
		ae = errors.New(errors.ErrCodeInternal, errors.DefaultMessageForCode(errors.ErrCodeInternal))
	}
	status := errors.HTTPStatusForCode(ae.Code)
	body := ErrorBody{Code: string(ae.Code), Message: ae.Message, Detail: ae.Detail}
	if status >= http.StatusInternalServerError {
		body.Detail = ""
	}
	writeJSON(w, status, ErrorResponse{Error: body})
}

// writeAppError logs server-side failures and renders err.
func writeAppError(w http.ResponseWriter, r *http.Request, logger logging.Logger, err error) {
	if errors.IsServerError(errors.GetCode(err)) {
		logging.FromContext(r.Context(), logger).Error("request failed",
			logging.String("path", r.URL.Path), logging.Err(err))
	}
	WriteError(w, err)
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst interface{}) error {
	if limit <= 0 {
		limit = DefaultMaxBodySize
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case stderrors.As(err, &tooLarge):
			return errors.Validation("request body too large")
		case stderrors.Is(err, io.EOF):
			return errors.Validation("request body is empty")
		default:
			return errors.Wrap(err, errors.ErrCodeValidation, "invalid request body")
		}
	}
	return nil
}

// currentUserID returns the subject of the verified token.
func currentUserID(r *http.Request) (string, error) {
	id, ok := token.UserIDFromContext(r.Context())
	if !ok || id == "" {
		return "", errors.Unauthorized("authentication required")
	}
	return id, nil
}

//Personal.AI order the ending
