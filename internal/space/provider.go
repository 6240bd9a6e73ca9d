package space

import (
	"context"
)

// Transport performs a GET for a built request and returns the raw body.
type Transport interface {
	Get(ctx context.Context, req Request) ([]byte, error)
}

// Store is the contract the per-endpoint append-only log must satisfy.
type Store interface {
	Append(storageFile, text string) error
	ReadAll(storageFile string) ([]string, error)
}

// Console is the interactive boundary of a cycle.
type Console interface {
	Ask(prompt string) (string, error)
	// Confirm re-prompts until the answer is exactly "y" or "n".
	Confirm(prompt string) (bool, error)
	Println(a ...any)
	Printf(format string, a ...any)
}

// Visualizer draws a satellite trajectory. Implementations report
// unavailability with an error the caller can recognize.
type Visualizer interface {
	Plot(ctx context.Context, title string, points []Point) error
}

// Point is one sample of a 3D trajectory in kilometres.
type Point struct {
	X, Y, Z float64
}

// Geocoder resolves a free-text place to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (lat, lon float64, err error)
}
