package endpoints

import (
	"fmt"

	"github.com/i474232898/space-data-console/internal/space"
)

func eonet(o Options) *space.Descriptor {
	return &space.Descriptor{
		ID:          "eonet",
		Name:        "EONET Natural Events",
		StorageFile: logFile("eonet"),
		Shape:       space.ShapeNestedList,
		AskLimit:    true,
		LimitPrompt: "How many most recent open events would you like to view?: ",
		ListPath:    "events",
		Fields: []space.Field{
			{Name: "title", Path: "title"},
			{Name: "category", Path: "categories.0.title", Default: "No title available"},
			{Name: "link", Path: "link"},
		},
		Build: func(space.Params, string) space.Request {
			return space.Request{BaseURL: o.EONETBaseURL + "/events"}
		},
		Render: func(rec space.Record) string {
			return fmt.Sprintf("Event: %s | Category: %s | Link: %s",
				rec.Get("title"), rec.Get("category"), rec.Get("link"))
		},
	}
}
