package refund

import "errors"

var (
	ErrNotFound          = errors.New("refund not found")
	ErrDuplicateBooking  = errors.New("refund already recorded for booking")
	ErrInvalidTransition = errors.New("invalid refund status transition")
	ErrBreakdownLocked   = errors.New("refund breakdown is locked")
)
