// Package dberror defines the error taxonomy of the persistence layer.
// Builders branch on ErrNotFound (the Absent arm of a natural-key lookup) and
// ErrAlreadyExists; everything else under ErrDatabase is treated as fatal for
// the enclosing tenant.
package dberror

import (
	"github.com/pedigreehq/seedstock/internal/common/apperrors"
)

var (
	ErrDatabase      apperrors.Error = apperrors.New("db error")
	ErrNotFound      apperrors.Error = ErrDatabase.New("not found")
	ErrAlreadyExists apperrors.Error = ErrDatabase.New("already exists")
	ErrInvalidInput  apperrors.Error = ErrDatabase.New("invalid input")
	ErrMissingTenant apperrors.Error = ErrInvalidInput.New("missing tenant ID")
)
