package endpoints

import (
	"fmt"
	"strings"
	"time"

	"github.com/i474232898/space-data-console/internal/space"
)

// Default upstream base URLs.
const (
	DefaultNASABaseURL  = "https://api.nasa.gov"
	DefaultEONETBaseURL = "https://eonet.gsfc.nasa.gov/api/v3"
	DefaultSSCBaseURL   = "https://sscweb.gsfc.nasa.gov/WS/sscr/2"
)

// Options configures where descriptors point and which optional prompts they use.
type Options struct {
	NASABaseURL  string
	EONETBaseURL string
	SSCBaseURL   string

	// Rover is the Mars rover whose photos are listed.
	Rover string
	// SSCWindow is how much trailing trajectory data a satellite cycle requests.
	SSCWindow time.Duration
	// Geocoding adds a place-name prompt to the Earth imagery cycle.
	Geocoding bool

	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.NASABaseURL == "" {
		o.NASABaseURL = DefaultNASABaseURL
	}
	if o.EONETBaseURL == "" {
		o.EONETBaseURL = DefaultEONETBaseURL
	}
	if o.SSCBaseURL == "" {
		o.SSCBaseURL = DefaultSSCBaseURL
	}
	o.NASABaseURL = strings.TrimRight(o.NASABaseURL, "/")
	o.EONETBaseURL = strings.TrimRight(o.EONETBaseURL, "/")
	o.SSCBaseURL = strings.TrimRight(o.SSCBaseURL, "/")
	if o.Rover == "" {
		o.Rover = "curiosity"
	}
	if o.SSCWindow <= 0 {
		o.SSCWindow = 2 * time.Hour
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Catalog builds the seven descriptors in menu order. It fails if two
// descriptors would share an id or a log file.
func Catalog(opts Options) ([]*space.Descriptor, error) {
	opts = opts.withDefaults()
	all := []*space.Descriptor{
		apod(opts),
		marsPhotos(opts),
		earthImagery(opts),
		neo(opts),
		ssc(opts),
		eonet(opts),
		donki(opts),
	}

	ids := make(map[string]bool, len(all))
	files := make(map[string]bool, len(all))
	for _, d := range all {
		if ids[d.ID] {
			return nil, fmt.Errorf("duplicate endpoint id %q", d.ID)
		}
		if files[d.StorageFile] {
			return nil, fmt.Errorf("endpoint %q reuses log file %q", d.ID, d.StorageFile)
		}
		ids[d.ID] = true
		files[d.StorageFile] = true
	}
	return all, nil
}

// Find returns the descriptor with the given id.
func Find(catalog []*space.Descriptor, id string) (*space.Descriptor, bool) {
	for _, d := range catalog {
		if strings.EqualFold(d.ID, id) {
			return d, true
		}
	}
	return nil, false
}

func logFile(id string) string {
	return id + ".log"
}
