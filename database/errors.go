package database

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a unique key is already taken.
	ErrConflict = errors.New("record already exists")
)

// ReadAction is the outcome of a read toggle.
type ReadAction string

const (
	ReadActionMarked   ReadAction = "marked"
	ReadActionUnmarked ReadAction = "unmarked"
)

// PinAction is the outcome of a pin toggle.
type PinAction string

const (
	PinActionPinned   PinAction = "pinned"
	PinActionUnpinned PinAction = "unpinned"
)
