package shift

import "github.com/ogurasousui/hcm-member-service/internal/core/apperr"

var (
	ErrInvalidID       = apperr.New(apperr.ErrValidation, "shift: invalid id")
	ErrInvalidName     = apperr.New(apperr.ErrValidation, "shift: invalid name")
	ErrInvalidTime     = apperr.New(apperr.ErrValidation, "shift: invalid time, expected HH:MM")
	ErrInvalidBreak    = apperr.New(apperr.ErrValidation, "shift: invalid break minutes")
	ErrInvalidStatus   = apperr.New(apperr.ErrValidation, "shift: invalid status")
	ErrFieldTooLong    = apperr.New(apperr.ErrValidation, "shift: field too long")
	ErrInvalidPage     = apperr.New(apperr.ErrValidation, "shift: invalid page")
	ErrInvalidPageSize = apperr.New(apperr.ErrValidation, "shift: invalid page size")
	ErrShiftNotFound   = apperr.New(apperr.ErrNotFound, "shift: not found")
)
