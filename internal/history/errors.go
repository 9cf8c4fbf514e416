package history

import "errors"

// ErrNotFound marks lookups for sessions or parts that were never recorded.
var ErrNotFound = errors.New("history: not found")
