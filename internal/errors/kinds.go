package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cannaconnect/cannaconnect-api/internal/logger"
)

// Error kinds. Workflow errors unwrap to exactly one of these.
var (
	ErrInvalidInput = stderrors.New("invalid input")
	ErrUnauthorized = stderrors.New("unauthorized")
	ErrForbidden    = stderrors.New("forbidden")
	ErrNotFound     = stderrors.New("not found")
	ErrConflict     = stderrors.New("conflict")
	ErrTokenExpired = stderrors.New("token expired")
	ErrTokenInvalid = stderrors.New("token invalid")
)

// kindError is a user-facing message tagged with its kind.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// New returns an error whose message is safe to show to callers and which unwraps to kind.
func New(kind error, message string) error {
	return &kindError{kind: kind, msg: message}
}

// Respond writes the JSON error response for err. Errors without a kind are logged
// and answered with a generic 500.
func Respond(c *gin.Context, err error) {
	msg := publicMessage(err)

	switch {
	case stderrors.Is(err, ErrInvalidInput):
		BadRequest(c, msg)
	case stderrors.Is(err, ErrTokenExpired):
		RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeTokenExpired, msg))
	case stderrors.Is(err, ErrTokenInvalid):
		RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeTokenInvalid, msg))
	case stderrors.Is(err, ErrUnauthorized):
		Unauthorized(c, msg)
	case stderrors.Is(err, ErrForbidden):
		Forbidden(c, msg)
	case stderrors.Is(err, ErrNotFound):
		NotFound(c, msg)
	case stderrors.Is(err, ErrConflict):
		Conflict(c, msg)
	default:
		logger.FromContext(c.Request.Context()).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		InternalError(c, "")
	}
}

func publicMessage(err error) string {
	var ke *kindError
	if stderrors.As(err, &ke) {
		return ke.msg
	}
	return ""
}
