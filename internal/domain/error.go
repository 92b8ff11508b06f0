package domain

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	CodeUnsupported   ErrorCode = "UNSUPPORTED"
	CodeFailedPrecond ErrorCode = "FAILED_PRECONDITION"
	CodeUnavailable   ErrorCode = "UNAVAILABLE"
	CodeInternal      ErrorCode = "INTERNAL"
)

var (
	// ErrNotInitialized is returned when session activation is attempted
	// before a completed initialize call.
	ErrNotInitialized = errors.New("diagnostics not initialized")
	// ErrAlreadyInitialized marks the idempotent no-op path.
	ErrAlreadyInitialized = errors.New("diagnostics already initialized")
	// ErrListenUnsupported marks a port spec requesting listen mode.
	ErrListenUnsupported = errors.New("listen mode is not supported")
)

type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Op == "" {
		if msg == "" {
			return string(e.Code)
		}
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	if msg == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, msg)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func E(code ErrorCode, op, msg string, cause error) *Error {
	if msg == "" && cause != nil {
		msg = cause.Error()
	}
	return &Error{
		Code:    code,
		Op:      op,
		Message: msg,
		Cause:   cause,
	}
}

func Wrap(code ErrorCode, op string, err error) *Error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		if existing.Op != "" || op == "" {
			return existing
		}
		return &Error{
			Code:    existing.Code,
			Op:      op,
			Message: existing.Message,
			Cause:   existing.Cause,
		}
	}
	return E(code, op, "", err)
}

func CodeFrom(err error) (ErrorCode, bool) {
	if err == nil {
		return "", false
	}
	var domainErr *Error
	if errors.As(err, &domainErr) && domainErr.Code != "" {
		return domainErr.Code, true
	}
	switch {
	case errors.Is(err, ErrNotInitialized):
		return CodeFailedPrecond, true
	case errors.Is(err, ErrListenUnsupported):
		return CodeUnsupported, true
	default:
		return "", false
	}
}

// IsConfigError reports whether err is a user-correctable configuration
// error, the only class that aborts an initialize call.
func IsConfigError(err error) bool {
	code, ok := CodeFrom(err)
	return ok && code == CodeInvalidConfig
}
