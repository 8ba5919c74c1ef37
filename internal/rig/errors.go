package rig

import "errors"

var (
	// ErrMissingCollaborator is returned when a rig is assembled without its
	// offset model or retraction probe.
	ErrMissingCollaborator = errors.New("rig: missing collaborator")

	// ErrDegenerateOffset is returned when the base offset has no length, so a
	// distance cannot be expressed as a zoom level.
	ErrDegenerateOffset = errors.New("rig: zero-length base offset")
)
