package endpoints

import (
	"fmt"
	"net/url"

	"github.com/i474232898/space-data-console/internal/space"
)

// neo lists the near-Earth objects of the start date. start_date and
// end_date are sent as two separate parameters.
func neo(o Options) *space.Descriptor {
	return &space.Descriptor{
		ID:          "neo",
		Name:        "Near-Earth Objects (Asteroids)",
		StorageFile: logFile("neo"),
		Shape:       space.ShapeNestedList,
		Params: []space.Param{
			{Key: "start_date", Prompt: "Enter start date (YYYY-MM-DD) for asteroid data: "},
			{Key: "end_date", Prompt: "Enter end date (YYYY-MM-DD) for asteroid data: "},
		},
		AskLimit:    true,
		LimitPrompt: "How many NEOs would you like to view?: ",
		ListPath:    "near_earth_objects",
		FilterParam: "start_date",
		Fields: []space.Field{
			{Name: "name", Path: "name"},
			{Name: "magnitude", Path: "absolute_magnitude_h"},
		},
		Noun: "asteroids",
		Build: func(params space.Params, apiKey string) space.Request {
			q := url.Values{}
			q.Set("start_date", params.Get("start_date"))
			q.Set("end_date", params.Get("end_date"))
			q.Set("api_key", apiKey)
			return space.Request{BaseURL: o.NASABaseURL + "/neo/rest/v1/feed", Query: q}
		},
		Render: func(rec space.Record) string {
			return fmt.Sprintf("Name: %s | Magnitude: %s", rec.Get("name"), rec.Get("magnitude"))
		},
	}
}
