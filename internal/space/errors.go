package space

import "errors"

var (
	// ErrInputValidation is returned when a limit or menu choice cannot be parsed.
	ErrInputValidation = errors.New("invalid input")
	// ErrLookup is returned when a requested identifier has no match upstream.
	ErrLookup = errors.New("not found")
	// ErrMalformedResponse is returned when a body does not have the expected shape.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrTransport is returned for network errors and non-success statuses.
	ErrTransport = errors.New("transport failure")
	// ErrPersistence is returned when a log cannot be written or read.
	ErrPersistence = errors.New("persistence failure")
)

// ErrVisualizerUnavailable is returned by a Visualizer whose backend is not installed.
var ErrVisualizerUnavailable = errors.New("visualizer unavailable")
