package geo

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/space-data-console/internal/space"
)

// geocoder keeps its key in a package variable, so calls are serialized.
var keyMu sync.Mutex

// GoogleGeocoder resolves "City, Country" style places through the Google
// Geocoding API.
type GoogleGeocoder struct {
	apiKey string
	lookup func(geocoder.Address) (geocoder.Location, error)
}

// NewGoogleGeocoder creates a new GoogleGeocoder.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{apiKey: apiKey, lookup: geocoder.Geocoding}
}

// Geocode returns the coordinates of place. Unknown places are reported as
// space.ErrLookup.
func (g *GoogleGeocoder) Geocode(ctx context.Context, place string) (float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	addr := ParseAddress(place)
	if addr.City == "" && addr.Country == "" {
		return 0, 0, fmt.Errorf("%w: empty place", space.ErrLookup)
	}

	keyMu.Lock()
	geocoder.ApiKey = g.apiKey
	loc, err := g.lookup(addr)
	keyMu.Unlock()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: place %q: %v", space.ErrLookup, place, err)
	}
	return loc.Latitude, loc.Longitude, nil
}

// ParseAddress splits "City, State, Country" input. A single component is
// treated as a city; the last of several is the country.
func ParseAddress(place string) geocoder.Address {
	var parts []string
	for _, p := range strings.Split(place, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	var addr geocoder.Address
	switch len(parts) {
	case 0:
	case 1:
		addr.City = parts[0]
	case 2:
		addr.City, addr.Country = parts[0], parts[1]
	default:
		addr.City = parts[0]
		addr.State = strings.Join(parts[1:len(parts)-1], ", ")
		addr.Country = parts[len(parts)-1]
	}
	return addr
}
