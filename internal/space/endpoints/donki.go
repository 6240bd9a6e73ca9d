package endpoints

import (
	"fmt"
	"net/url"

	"github.com/i474232898/space-data-console/internal/space"
)

func donki(o Options) *space.Descriptor {
	return &space.Descriptor{
		ID:           "donki",
		Name:         "DONKI Space Weather Notifications",
		StorageFile:  logFile("donki"),
		Shape:        space.ShapeFlatList,
		DefaultLimit: 5,
		Fields: []space.Field{
			{Name: "type", Path: "messageType"},
			{Name: "message", Path: "messageBody"},
		},
		Build: func(_ space.Params, apiKey string) space.Request {
			q := url.Values{}
			q.Set("api_key", apiKey)
			return space.Request{BaseURL: o.NASABaseURL + "/DONKI/notifications", Query: q}
		},
		Render: func(rec space.Record) string {
			return fmt.Sprintf("Type: %s | Message: %s", rec.Get("type"), rec.Get("message"))
		},
	}
}
