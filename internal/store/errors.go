package store

import "errors"

// Sentinel errors returned by Store operations. Handlers translate these to
// HTTP status codes at the API boundary.
var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("not found")
	ErrNoActiveBooking = errors.New("no active booking found")
	ErrAlreadyOccupied = errors.New("property already occupied")
	ErrVersionConflict = errors.New("stale property status version")
)
