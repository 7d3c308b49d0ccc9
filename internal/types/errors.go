package types

import (
	"errors"
	"fmt"
)

// Error categories surfaced to callers. Lower layers wrap these with
// fmt.Errorf("%w: ...") so handlers can branch on errors.Is.
var (
	ErrLoad              = errors.New("content load failed")
	ErrPersist           = errors.New("content persist failed")
	ErrAuth              = errors.New("authentication failed")
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrSignUpUnsupported = errors.New("sign up is not supported")
	ErrNotConfigured     = errors.New("backend not configured")
)

const (
	MessageLoadFailed    = "Could not load artist data. Please check the connection and configuration."
	MessageSaveFailed    = "Something went wrong while saving. Please try again."
	MessageNotFound      = "That item no longer exists."
	MessageSignUpBlocked = "Sign up is not available on this site."
)

// UserError carries text that is safe to show next to a form. It unwraps to
// its category so errors.Is keeps working.
type UserError struct {
	Kind    error
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Kind
}

func Invalid(format string, args ...any) error {
	return &UserError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(message string) error {
	return &UserError{Kind: ErrAuth, Message: message}
}

// UserMessage returns the message shown next to a form for err.
func UserMessage(err error) string {
	var userErr *UserError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &userErr):
		return userErr.Message
	case errors.Is(err, ErrSignUpUnsupported):
		return MessageSignUpBlocked
	case errors.Is(err, ErrNotFound):
		return MessageNotFound
	case errors.Is(err, ErrLoad):
		return MessageLoadFailed
	default:
		return MessageSaveFailed
	}
}
