package list

import "errors"

// Sentinel error for list operations.
var ErrIndexOutOfRange = errors.New("index out of range")
