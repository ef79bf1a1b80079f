package domain

import "errors"

// Input errors: the request itself is malformed or references unknown
// reference data. These are the only errors a matching query surfaces;
// travel-time lookup failures degrade individual candidates instead.
var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrEmptyAddress      = errors.New("address must be non-empty")
	ErrUnknownCategory   = errors.New("unknown service category")
	ErrUnknownSlot       = errors.New("unknown time slot")
	ErrUnknownEmployee   = errors.New("unknown employee")
	ErrUnknownBooking    = errors.New("unknown booking")
	ErrUnknownAssignment = errors.New("unknown job assignment")
	ErrSlotTaken         = errors.New("employee already assigned at this date and slot")
	ErrCategoryMismatch  = errors.New("employee service category does not match booking")
)
