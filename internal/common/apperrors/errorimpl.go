package apperrors

import "strings"

// appError implements the Error interface. Sentinels are immutable: Msg, Err
// and MsgErr return a derived error rather than mutating the receiver, so a
// package-level sentinel is never changed by call sites that annotate it.
type appError struct {
	msg           string
	base          Error
	wrappedErrors []error
}

func (e *appError) Error() string {
	return e.msg
}

func (e *appError) ErrorAll() string {
	parts := make([]string, 0, len(e.wrappedErrors))
	for _, err := range e.wrappedErrors {
		parts = append(parts, err.Error())
	}
	if len(parts) == 0 {
		return e.msg
	}
	return e.msg + ": " + strings.Join(parts, "; ")
}

func (e *appError) Unwrap() []error {
	return e.wrappedErrors
}

// New derives a child error that matches e (and e's ancestors) under
// errors.Is.
func (e *appError) New(msg string) Error {
	return &appError{
		msg:  msg,
		base: e,
	}
}

func (e *appError) Msg(msg string) Error {
	return &appError{
		msg:  msg,
		base: e,
	}
}

func (e *appError) MsgErr(msg string, err ...error) Error {
	return &appError{
		msg:           msg,
		base:          e,
		wrappedErrors: err,
	}
}

func (e *appError) Err(err ...error) Error {
	return &appError{
		msg:           e.msg,
		base:          e,
		wrappedErrors: err,
	}
}

func (e *appError) Is(target error) bool {
	if e == target || e.base == target {
		return true
	}
	if e.base != nil && e.base.Is(target) {
		return true
	}
	for _, err := range e.wrappedErrors {
		if err == target {
			return true
		}
	}
	return false
}

func New(msg string) Error {
	return &appError{msg: msg}
}
