package endpoints

import (
	"fmt"
	"net/url"

	"github.com/i474232898/space-data-console/internal/space"
)

func apod(o Options) *space.Descriptor {
	return &space.Descriptor{
		ID:           "apod",
		Name:         "Astronomy Picture of the Day",
		StorageFile:  logFile("apod"),
		Shape:        space.ShapeSingleObject,
		DefaultLimit: 1,
		Params: []space.Param{
			{Key: "date", Prompt: "Enter date (YYYY-MM-DD) or leave blank for today: "},
		},
		Fields: []space.Field{
			{Name: "title", Path: "title"},
			{Name: "explanation", Path: "explanation"},
			{Name: "url", Path: "url"},
		},
		Build: func(params space.Params, apiKey string) space.Request {
			q := url.Values{}
			if d := params.Get("date"); d != "" {
				q.Set("date", d)
			}
			q.Set("api_key", apiKey)
			return space.Request{BaseURL: o.NASABaseURL + "/planetary/apod", Query: q}
		},
		Render: func(rec space.Record) string {
			return fmt.Sprintf("Title: %s | Explanation: %s | URL: %s",
				rec.Get("title"), rec.Get("explanation"), rec.Get("url"))
		},
	}
}
