package document

import "errors"

var (
	ErrNotFound          = errors.New("document not found")
	ErrInvalidTransition = errors.New("invalid document status transition")
)
