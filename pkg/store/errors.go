package store

import "errors"

var (
	// ErrInvalidKey is returned for empty keys or keys containing path
	// separators.
	ErrInvalidKey = errors.New("store: invalid key")
	// ErrUnavailable signals the backing store cannot serve the request.
	ErrUnavailable = errors.New("store: unavailable")
	// ErrCorrupt is returned when a persisted payload cannot be decoded.
	ErrCorrupt = errors.New("store: corrupt payload")
)
