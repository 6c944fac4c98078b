package workout

import "errors"

// ErrNotFound is returned when a requested entity does not exist or belongs to
// another user.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned when request values fall outside the accepted
// ranges or reference an unknown day key.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidState is returned when an operation is not allowed in the entity's
// current lifecycle state, e.g. editing sets of a completed workout.
var ErrInvalidState = errors.New("invalid state")

// ErrWorkoutInProgress is returned by Start when an active workout already
// exists. The existing workout is returned alongside the error.
var ErrWorkoutInProgress = errors.New("workout already in progress")
