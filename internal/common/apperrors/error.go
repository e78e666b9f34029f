// Package apperrors provides a layered application error type. Errors are
// declared as package-level sentinels derived from a base error; derived
// errors match their ancestors under errors.Is, so callers can branch on a
// broad class (ErrDatabase) or a specific condition (ErrNotFound).
package apperrors

type Error interface {
	Error() string
	ErrorAll() string
	New(msg string) Error
	Msg(msg string) Error
	MsgErr(msg string, err ...error) Error
	Err(err ...error) Error
	Unwrap() []error
	Is(target error) bool
}
