package archive

import "errors"

var (
	// ErrInvalidInput is returned when no archive location is given.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedLocation is returned for a location this opener cannot serve.
	ErrUnsupportedLocation = errors.New("unsupported archive location")

	// ErrNotRegular is returned when content is requested for a non-file entry.
	ErrNotRegular = errors.New("entry is not a regular file")
)
