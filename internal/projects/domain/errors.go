package domain

import "errors"

var (
	// ErrNotFound is returned when no live project matches the public id.
	ErrNotFound = errors.New("project not found")

	// ErrDuplicateDate is returned when a candidate date already exists.
	ErrDuplicateDate = errors.New("date already exists")

	// ErrDateNotFound is returned when removing a date the project lacks.
	ErrDateNotFound = errors.New("date not found")
)
