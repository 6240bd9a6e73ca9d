package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/space-data-console/internal/space/endpoints"
	"github.com/i474232898/space-data-console/internal/store"
)

func newTestApp(t *testing.T) (*fiber.App, *store.FileLog) {
	t.Helper()
	catalog, err := endpoints.Catalog(endpoints.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logs := store.NewFileLog(t.TempDir())
	app := fiber.New()
	RegisterRoutes(app, catalog, logs)
	return app, logs
}

func TestListEndpoints(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/endpoints", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var got []endpointView
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 7 {
		t.Fatalf("expected 7 endpoints, got %d", len(got))
	}
	if got[0].ID != "apod" || got[0].File != "apod.log" || got[0].Shape != "single-object" {
		t.Fatalf("unexpected first endpoint: %+v", got[0])
	}
}

// TestLogEntries verifies saved records come back in append order.
func TestLogEntries(t *testing.T) {
	app, logs := newTestApp(t)
	for _, line := range []string{"Type: FLR | Message: a", "Type: CME | Message: b"} {
		if err := logs.Append("donki.log", line); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/logs/DONKI", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		Endpoint string   `json:"endpoint"`
		File     string   `json:"file"`
		Count    int      `json:"count"`
		Entries  []string `json:"entries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Endpoint != "donki" || body.File != "donki.log" || body.Count != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Entries[0] != "Type: FLR | Message: a" || body.Entries[1] != "Type: CME | Message: b" {
		t.Fatalf("unexpected entries: %v", body.Entries)
	}
}

func TestLogNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{"/api/v1/logs/hubble", "/api/v1/logs/apod"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s: expected status %d, got %d", path, http.StatusNotFound, resp.StatusCode)
		}
	}
}
