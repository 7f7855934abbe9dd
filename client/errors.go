package client

import (
	"errors"

	"github.com/LovationAdmin/wealth-sync/utils"
)

// Error kinds. Match them with errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrMalformedResponse = errors.New("malformed response")
	ErrRemoteRejected    = errors.New("remote rejected request")
	ErrForbidden         = errors.New("forbidden")
	ErrNetwork           = errors.New("network error")
)

// User-safe fallback messages.
const (
	MsgValidation = "Please correct the highlighted fields."
	MsgMalformed  = "The server returned an unexpected response. Please try again later."
	MsgRejected   = "The request could not be completed."
	MsgForbidden  = "You are not allowed to access this profile."
	MsgNetwork    = "Unable to reach the server. Check your connection and try again."
)

// Error is the single error shape surfaced by the client and the stores.
// Message is always safe to display to an end user.
type Error struct {
	Kind    error
	Message string
	Fields  utils.FieldErrors
	Status  int
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Kind.Error() + ": " + e.cause.Error()
	}
	if len(e.Fields) > 0 {
		return e.Kind.Error() + ": " + e.Fields.String()
	}
	return e.Kind.Error() + ": " + e.Message
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.cause }

func NewValidationError(fields utils.FieldErrors) *Error {
	return &Error{Kind: ErrValidation, Message: MsgValidation, Fields: fields}
}

func NewMalformedError(cause error) *Error {
	return &Error{Kind: ErrMalformedResponse, Message: MsgMalformed, cause: cause}
}

// NewInvalidDataError reports inbound data that decoded but failed the storage schema.
func NewInvalidDataError(fields utils.FieldErrors) *Error {
	return &Error{Kind: ErrMalformedResponse, Message: MsgMalformed, Fields: fields}
}

func NewRejectedError(status int, message string, fields utils.FieldErrors) *Error {
	if message == "" {
		message = MsgRejected
	}
	return &Error{Kind: ErrRemoteRejected, Message: message, Fields: fields, Status: status}
}

func NewForbiddenError(cause error) *Error {
	return &Error{Kind: ErrForbidden, Message: MsgForbidden, cause: cause}
}

func NewNetworkError(cause error) *Error {
	return &Error{Kind: ErrNetwork, Message: MsgNetwork, cause: cause}
}

// UserMessage extracts a displayable message from any error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ce *Error
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return MsgRejected
}

// FieldErrorsOf returns the field-level errors carried by err, if any.
func FieldErrorsOf(err error) utils.FieldErrors {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Fields
	}
	return nil
}
