package endpoints

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/i474232898/space-data-console/internal/space"
)

const (
	sscAccept           = "application/json"
	sscCoordinateSystem = "gse"
	sscTimeLayout       = "20060102T150405Z"
)

// observatories lists the satellites SSC knows about, with the time span of
// their available data.
func observatories(o Options) *space.Descriptor {
	return &space.Descriptor{
		ID:       "ssc-observatories",
		Name:     "Satellite Situation Center observatories",
		Shape:    space.ShapeNestedList,
		ListPath: "Observatory",
		Fields: []space.Field{
			{Name: "id", Path: "Id"},
			{Name: "start", Path: "StartTime"},
			{Name: "end", Path: "EndTime"},
		},
		Build: func(space.Params, string) space.Request {
			return space.Request{BaseURL: o.SSCBaseURL + "/observatories", Accept: sscAccept}
		},
	}
}

func ssc(o Options) *space.Descriptor {
	obs := observatories(o)

	return &space.Descriptor{
		ID:          "ssc",
		Name:        "Satellite Situation Center",
		StorageFile: logFile("ssc"),
		Shape:       space.ShapeNamedLists,
		Params: []space.Param{
			{Key: "satellite", Prompt: "Which satellite would you like to see: "},
		},
		AskLimit:    true,
		LimitPrompt: "How many positions would you like to view?: ",
		ListPath:    "Result.Data.0",
		Fields: []space.Field{
			{Name: "time", Path: "Time"},
			{Name: "x", Path: "Coordinates.0.X"},
			{Name: "y", Path: "Coordinates.0.Y"},
			{Name: "z", Path: "Coordinates.0.Z"},
		},
		Noun:     "positions",
		NotFound: "Satellite not found in the database!",
		Resolve: func(ctx context.Context, deps space.Deps, p space.Params) (space.Params, error) {
			id := strings.TrimSpace(p.Get("satellite"))
			if id == "" {
				return nil, fmt.Errorf("%w: no satellite given", space.ErrLookup)
			}

			body, err := deps.Transport.Get(ctx, obs.Build(nil, ""))
			if err != nil {
				return nil, err
			}
			known, err := space.Normalize(obs, body, nil)
			if err != nil {
				return nil, err
			}

			for _, rec := range known {
				if !strings.EqualFold(rec.Get("id"), id) {
					continue
				}
				start, end, err := sscInterval(rec, o.SSCWindow, o.Now())
				if err != nil {
					return nil, err
				}
				return space.Params{
					"satellite":         rec.Get("id"),
					"start":             start.Format(sscTimeLayout),
					"end":               end.Format(sscTimeLayout),
					"coordinate_system": sscCoordinateSystem,
				}, nil
			}
			return nil, fmt.Errorf("%w: satellite %q", space.ErrLookup, id)
		},
		Build: func(p space.Params, _ string) space.Request {
			return space.Request{
				BaseURL: fmt.Sprintf("%s/locations/%s/%s,%s/%s/", o.SSCBaseURL,
					url.PathEscape(p.Get("satellite")), p.Get("start"), p.Get("end"), p.Get("coordinate_system")),
				Accept: sscAccept,
			}
		},
		Render: func(rec space.Record) string {
			return fmt.Sprintf("Time: %s | X: %s km | Y: %s km | Z: %s km",
				rec.Get("time"), rec.Get("x"), rec.Get("y"), rec.Get("z"))
		},
		PlotTitle: func(p space.Params) string {
			return fmt.Sprintf("%s Orbit (%s)", p.Get("satellite"), strings.ToUpper(p.Get("coordinate_system")))
		},
	}
}

// sscInterval picks the trailing window of an observatory's available data,
// never reaching past now.
func sscInterval(rec space.Record, window time.Duration, now time.Time) (time.Time, time.Time, error) {
	end, err := time.Parse(time.RFC3339, rec.Get("end"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: observatory %s end time %q", space.ErrMalformedResponse, rec.Get("id"), rec.Get("end"))
	}
	end = end.UTC()
	if now = now.UTC(); end.After(now) {
		end = now
	}

	start := end.Add(-window)
	if s, err := time.Parse(time.RFC3339, rec.Get("start")); err == nil && s.After(start) {
		start = s.UTC()
	}
	return start.Truncate(time.Second), end.Truncate(time.Second), nil
}
