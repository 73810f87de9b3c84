package member

import "github.com/ogurasousui/hcm-member-service/internal/core/apperr"

var (
	ErrInvalidID            = apperr.New(apperr.ErrValidation, "member: invalid id")
	ErrInvalidUserRef       = apperr.New(apperr.ErrValidation, "member: invalid user ref")
	ErrInvalidDepartmentRef = apperr.New(apperr.ErrValidation, "member: invalid department ref")
	ErrInvalidGroupRef      = apperr.New(apperr.ErrValidation, "member: invalid attendance group ref")
	ErrInvalidStatus        = apperr.New(apperr.ErrValidation, "member: invalid status")
	ErrFieldTooLong         = apperr.New(apperr.ErrValidation, "member: field too long")
	ErrInvalidPage          = apperr.New(apperr.ErrValidation, "member: invalid page")
	ErrInvalidPageSize      = apperr.New(apperr.ErrValidation, "member: invalid page size")
	ErrInvalidSort          = apperr.New(apperr.ErrValidation, "member: invalid sort")
	ErrMemberNotFound       = apperr.New(apperr.ErrNotFound, "member: not found")
	ErrUserAlreadyBound     = apperr.New(apperr.ErrConflict, "member: user already has a member")
	ErrEmployeeNumberTaken  = apperr.New(apperr.ErrConflict, "member: employee number already exists")
)
