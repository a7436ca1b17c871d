package inventory

import "errors"

var (
	ErrNotFound          = errors.New("part not found")
	ErrDuplicatePart     = errors.New("part number already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
)
