package service

import "errors"

var (
	// ErrUserNotFound is returned when no user has the requested display name.
	ErrUserNotFound = errors.New("user not found")
	// ErrSnapshotNotReady is returned before the first successful reload.
	ErrSnapshotNotReady = errors.New("snapshot not loaded yet")
	// ErrInvalidQuery wraps every query validation failure.
	ErrInvalidQuery = errors.New("invalid query")
)
