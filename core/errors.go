package core

import "errors"

// Storage errors
var (
	ErrKeyNotFound = errors.New("key not found")
)

// Config errors (wiring-time, surfaced to the embedding application)
var (
	ErrStorageRequired = errors.New("storage adapter is required")
)

// Catalog errors
var (
	ErrTripNotFound = errors.New("trip not found")
)
