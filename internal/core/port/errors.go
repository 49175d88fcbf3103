package port

import "errors"

// ErrNotFound is returned by storage adapters when the requested
// row does not exist.
var ErrNotFound = errors.New("not found")
