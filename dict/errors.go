package dict

import "errors"

// Sentinel errors for dictionary operations.
var (
	ErrKeyExists   = errors.New("key already exists")
	ErrKeyNotFound = errors.New("key not found")
)
