package bundle

import "errors"

var ErrNotFound = errors.New("package not found")
