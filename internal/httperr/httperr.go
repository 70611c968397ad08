package httperr

import (
	"errors"
	"net/http"

	"github.com/dfryer1193/superheroes/superhero/domain"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeFileMissing  = "FILE_MISSING"
	CodeFileTooLarge = "FILE_TOO_LARGE"
	CodeInvalidID    = "INVALID_ID"
	CodeNotFound     = "NOT_FOUND"
	CodeUploadFailed = "UPLOAD_FAILED"
	CodeInternal     = "INTERNAL_ERROR"

	internalMessage = "Internal Server Error"
)

// Error is an error that knows how it should be rendered to a client
type Error struct {
	Status  int
	Code    string
	Message string
	// Err is the underlying cause. It is logged, never rendered.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func Validation(message string) *Error {
	return New(http.StatusBadRequest, CodeValidation, message)
}

func InvalidID(message string) *Error {
	return New(http.StatusBadRequest, CodeInvalidID, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, CodeNotFound, message)
}

func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeInternal, Message: internalMessage, Err: err}
}

// From converts any error into an *Error. Known domain failures keep their meaning,
// everything else becomes an opaque internal error.
func From(err error) *Error {
	var httpErr *Error
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, domain.ErrSuperheroNotFound):
		return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: "Superhero not found", Err: err}
	case errors.Is(err, domain.ErrImageNotFound):
		return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: "Image not found", Err: err}
	case errors.Is(err, domain.ErrInvalidSuperhero):
		return &Error{Status: http.StatusBadRequest, Code: CodeValidation, Message: "All superhero fields are required", Err: err}
	case errors.Is(err, domain.ErrEmptyUpdate):
		return &Error{Status: http.StatusBadRequest, Code: CodeValidation, Message: "Id or data not provided", Err: err}
	case errors.Is(err, domain.ErrUploadFailed):
		return &Error{Status: http.StatusBadGateway, Code: CodeUploadFailed, Message: "Image upload failed", Err: err}
	default:
		return Internal(err)
	}
}
