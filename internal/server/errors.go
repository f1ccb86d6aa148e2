package server

import (
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/muliwe/package-sorter/internal/sorting"
)

// Error codes returned in ErrorResponse.Code
const (
	CodeInvalidType   = "INVALID_TYPE"
	CodeInvalidValue  = "INVALID_VALUE"
	CodeBadRequest    = "BAD_REQUEST"
	CodeInternalError = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every non-2xx API response
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

var errBadRequest = errors.New("bad request")

func badRequest(msg string) error {
	return errors.Wrap(errBadRequest, msg)
}

// statusFor maps an error to its HTTP status and code
func statusFor(err error) (int, string) {
	switch {
	case sorting.IsInvalidType(err):
		return http.StatusBadRequest, CodeInvalidType
	case sorting.IsInvalidValue(err):
		return http.StatusUnprocessableEntity, CodeInvalidValue
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, CodeBadRequest
	default:
		return http.StatusInternalServerError, CodeInternalError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)

	resp := ErrorResponse{
		Code:    code,
		Message: err.Error(),
		Field:   sorting.FieldOf(err),
		Hint:    errors.FlattenHints(err),
	}
	if code == CodeInternalError {
		resp.Message = "an internal error occurred"
	}

	writeJSON(w, status, resp)
}
