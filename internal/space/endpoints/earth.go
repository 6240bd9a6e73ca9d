package endpoints

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/i474232898/space-data-console/internal/space"
)

// earthImagery only builds the imagery link; the link itself is the record.
func earthImagery(o Options) *space.Descriptor {
	hasPlace := func(p space.Params) bool { return strings.TrimSpace(p.Get("place")) != "" }

	var params []space.Param
	if o.Geocoding {
		params = append(params, space.Param{
			Key:    "place",
			Prompt: "Enter a place (City, Country) or leave blank to enter coordinates: ",
		})
	}
	params = append(params,
		space.Param{Key: "lat", Prompt: "Enter latitude: ", Skip: hasPlace},
		space.Param{Key: "lon", Prompt: "Enter longitude: ", Skip: hasPlace},
		space.Param{Key: "dim", Prompt: "Enter width and height of image in degrees (between 1 and 0) that you want the image: "},
		space.Param{Key: "date", Prompt: "Enter date (YYYY-MM-DD): "},
	)

	return &space.Descriptor{
		ID:           "earth-imagery",
		Name:         "Earth Imagery",
		StorageFile:  logFile("earth-imagery"),
		Shape:        space.ShapeRequestOnly,
		DefaultLimit: 1,
		Params:       params,
		NotFound:     "Place could not be found!",
		Resolve: func(ctx context.Context, deps space.Deps, p space.Params) (space.Params, error) {
			if !hasPlace(p) {
				return p, nil
			}
			if deps.Geocoder == nil {
				return nil, fmt.Errorf("%w: geocoding is not configured", space.ErrLookup)
			}
			lat, lon, err := deps.Geocoder.Geocode(ctx, p.Get("place"))
			if err != nil {
				return nil, err
			}
			out := space.Params{}
			for k, v := range p {
				out[k] = v
			}
			out["lat"] = strconv.FormatFloat(lat, 'f', -1, 64)
			out["lon"] = strconv.FormatFloat(lon, 'f', -1, 64)
			return out, nil
		},
		Build: func(p space.Params, apiKey string) space.Request {
			q := url.Values{}
			q.Set("lon", p.Get("lon"))
			q.Set("lat", p.Get("lat"))
			q.Set("date", p.Get("date"))
			q.Set("dim", p.Get("dim"))
			q.Set("api_key", apiKey)
			return space.Request{BaseURL: o.NASABaseURL + "/planetary/earth/imagery", Query: q}
		},
		Render: func(rec space.Record) string {
			return "Earth Imagery URL: " + rec.Get("url")
		},
	}
}
