package endpoints

import (
	"fmt"
	"net/url"

	"github.com/i474232898/space-data-console/internal/space"
)

func marsPhotos(o Options) *space.Descriptor {
	return &space.Descriptor{
		ID:          "mars-photos",
		Name:        "Mars Rover Photos",
		StorageFile: logFile("mars-photos"),
		Shape:       space.ShapeNestedList,
		Params: []space.Param{
			{Key: "earth_date", Prompt: "Enter Earth date (YYYY-MM-DD) for Mars rover photos: "},
		},
		AskLimit:    true,
		LimitPrompt: "How many photos would you like to view?: ",
		ListPath:    "photos",
		Fields: []space.Field{
			{Name: "camera", Path: "camera.name"},
			{Name: "img_src", Path: "img_src"},
		},
		Noun: "photos",
		Build: func(params space.Params, apiKey string) space.Request {
			q := url.Values{}
			q.Set("earth_date", params.Get("earth_date"))
			q.Set("api_key", apiKey)
			return space.Request{
				BaseURL: fmt.Sprintf("%s/mars-photos/api/v1/rovers/%s/photos", o.NASABaseURL, url.PathEscape(o.Rover)),
				Query:   q,
			}
		},
		Render: func(rec space.Record) string {
			return fmt.Sprintf("[%s] %s", rec.Get("camera"), rec.Get("img_src"))
		},
	}
}
