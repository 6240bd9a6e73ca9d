package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/space-data-console/internal/space"
	"github.com/i474232898/space-data-console/internal/space/endpoints"
	"github.com/i474232898/space-data-console/internal/store"
)

var validate = validator.New()

// LogReader is the read side of the per-endpoint logs.
type LogReader interface {
	ReadAll(storageFile string) ([]string, error)
}

// RegisterRoutes wires the read-only HTTP handlers into the Fiber app.
// Nothing here fetches upstream or writes a log.
func RegisterRoutes(app *fiber.App, catalog []*space.Descriptor, logs LogReader) {
	v1 := app.Group("/api/v1")

	v1.Get("/endpoints", func(c *fiber.Ctx) error {
		out := make([]endpointView, 0, len(catalog))
		for _, d := range catalog {
			out = append(out, newEndpointView(d))
		}
		return c.JSON(out)
	})

	v1.Get("/logs/:endpoint", func(c *fiber.Ctx) error {
		q := logQuery{Endpoint: c.Params("endpoint")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		d, ok := endpoints.Find(catalog, q.Endpoint)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown endpoint")
		}

		entries, err := logs.ReadAll(d.StorageFile)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no saved records for requested endpoint")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read saved records")
		}

		return c.JSON(fiber.Map{
			"endpoint": d.ID,
			"file":     d.StorageFile,
			"count":    len(entries),
			"entries":  entries,
		})
	})
}

// logQuery holds the path parameters of the log endpoint.
type logQuery struct {
	Endpoint string `validate:"required,max=64"`
}

type endpointView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Shape string `json:"shape"`
	File  string `json:"file"`
}

func newEndpointView(d *space.Descriptor) endpointView {
	return endpointView{
		ID:    d.ID,
		Name:  d.Name,
		Shape: string(d.Shape),
		File:  d.StorageFile,
	}
}
