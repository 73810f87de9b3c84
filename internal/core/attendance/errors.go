package attendance

import "github.com/ogurasousui/hcm-member-service/internal/core/apperr"

var (
	ErrInvalidGroupID      = apperr.New(apperr.ErrValidation, "attendance: invalid group id")
	ErrGroupNotFound       = apperr.New(apperr.ErrNotFound, "attendance: group not found")
	ErrGroupNotTracking    = apperr.New(apperr.ErrValidation, "attendance: group does not track members")
	ErrInvalidTrackingMode = apperr.New(apperr.ErrValidation, "attendance: invalid tracking mode")
)
