package model

import "errors"

var (
	// ErrSlotNotFound covers both "no such booking" and "not your booking"
	// on delete. Callers must not be able to tell the two apart.
	ErrSlotNotFound = errors.New("booking not found")

	// ErrNoSubjectAssignment means the teacher cannot book because no
	// subject is assigned to them.
	ErrNoSubjectAssignment = errors.New("you are not assigned a subject yet")

	// ErrNoIdentity means the request carried no usable credentials.
	ErrNoIdentity = errors.New("missing or invalid credentials")
)

// ConflictDimension names which exclusivity rule an insert violated.
type ConflictDimension string

const (
	ConflictTeacher ConflictDimension = "teacher"
	ConflictClass   ConflictDimension = "class"
)

// ConflictError is returned when an insert loses to an existing booking on
// the same (teacher, day, start) or (class, day, start) coordinate. It is
// meaningful, not transient: the caller has to pick another slot.
type ConflictError struct {
	Dimension ConflictDimension
}

func (e *ConflictError) Error() string {
	switch e.Dimension {
	case ConflictClass:
		return "this period is already booked for that class"
	case ConflictTeacher:
		return "you already have a booking in this period"
	default:
		return "this period is already booked"
	}
}

// IsConflict reports whether err is a booking conflict.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// ValidationError rejects a request before it reaches storage.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// IsValidation reports whether err is a pre-storage validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
