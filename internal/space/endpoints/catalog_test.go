package endpoints

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/space-data-console/internal/space"
)

func TestCatalogHasSevenDistinctEndpoints(t *testing.T) {
	catalog, err := Catalog(Options{})
	require.NoError(t, err)
	require.Len(t, catalog, 7)

	ids := map[string]bool{}
	files := map[string]bool{}
	for _, d := range catalog {
		assert.False(t, ids[d.ID], "duplicate id %s", d.ID)
		assert.False(t, files[d.StorageFile], "duplicate log %s", d.StorageFile)
		ids[d.ID] = true
		files[d.StorageFile] = true

		assert.NotEmpty(t, d.Name)
		assert.NotNil(t, d.Build, d.ID)
		assert.NotNil(t, d.Render, d.ID)
		if d.AskLimit {
			assert.NotEmpty(t, d.LimitPrompt, d.ID)
		}
	}

	wantOrder := []string{"apod", "mars-photos", "earth-imagery", "neo", "ssc", "eonet", "donki"}
	for i, id := range wantOrder {
		assert.Equal(t, id, catalog[i].ID)
	}
}

func TestFind(t *testing.T) {
	catalog, err := Catalog(Options{})
	require.NoError(t, err)

	d, ok := Find(catalog, "NEO")
	require.True(t, ok)
	assert.Equal(t, "neo", d.ID)

	_, ok = Find(catalog, "hubble")
	assert.False(t, ok)
}

func TestBuildRequests(t *testing.T) {
	catalog, err := Catalog(Options{NASABaseURL: "https://nasa.test/", EONETBaseURL: "https://eonet.test/api/v3"})
	require.NoError(t, err)

	tests := []struct {
		id     string
		params space.Params
		want   string
	}{
		{"apod", space.Params{}, "https://nasa.test/planetary/apod?api_key=K"},
		{"apod", space.Params{"date": "2024-02-30"}, "https://nasa.test/planetary/apod?api_key=K&date=2024-02-30"},
		{"mars-photos", space.Params{"earth_date": "not-a-date"}, "https://nasa.test/mars-photos/api/v1/rovers/curiosity/photos?api_key=K&earth_date=not-a-date"},
		{"neo", space.Params{"start_date": "2024-01-01", "end_date": "2024-01-07"}, "https://nasa.test/neo/rest/v1/feed?api_key=K&end_date=2024-01-07&start_date=2024-01-01"},
		{"eonet", nil, "https://eonet.test/api/v3/events"},
		{"donki", nil, "https://nasa.test/DONKI/notifications?api_key=K"},
		{"earth-imagery", space.Params{"lat": "1.5", "lon": "100.75", "dim": "0.1", "date": "2014-02-01"}, "https://nasa.test/planetary/earth/imagery?api_key=K&date=2014-02-01&dim=0.1&lat=1.5&lon=100.75"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			d, ok := Find(catalog, tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.want, d.Build(tt.params, "K").String())
		})
	}
}

func TestEarthImageryPromptsForPlaceOnlyWithGeocoding(t *testing.T) {
	plain := earthImagery(Options{}.withDefaults())
	assert.Equal(t, "lat", plain.Params[0].Key)

	geo := earthImagery(Options{Geocoding: true}.withDefaults())
	require.Equal(t, "place", geo.Params[0].Key)
	assert.True(t, geo.Params[1].Skip(space.Params{"place": "Houston, USA"}))
	assert.False(t, geo.Params[1].Skip(space.Params{"place": " "}))
}

type stubGeocoder struct {
	lat, lon float64
	err      error
}

func (g stubGeocoder) Geocode(context.Context, string) (float64, float64, error) {
	return g.lat, g.lon, g.err
}

func TestEarthImageryResolvesPlace(t *testing.T) {
	d := earthImagery(Options{Geocoding: true}.withDefaults())

	out, err := d.Resolve(context.Background(), space.Deps{Geocoder: stubGeocoder{lat: 29.76, lon: -95.37}},
		space.Params{"place": "Houston, USA", "dim": "0.1", "date": "2020-01-01"})
	require.NoError(t, err)
	assert.Equal(t, "29.76", out.Get("lat"))
	assert.Equal(t, "-95.37", out.Get("lon"))
	assert.Equal(t, "0.1", out.Get("dim"))

	in := space.Params{"lat": "1", "lon": "2"}
	out, err = d.Resolve(context.Background(), space.Deps{}, in)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = d.Resolve(context.Background(), space.Deps{}, space.Params{"place": "Atlantis"})
	assert.ErrorIs(t, err, space.ErrLookup)

	notFound := stubGeocoder{err: errors.Join(space.ErrLookup, errors.New("ZERO_RESULTS"))}
	_, err = d.Resolve(context.Background(), space.Deps{Geocoder: notFound}, space.Params{"place": "Atlantis"})
	assert.ErrorIs(t, err, space.ErrLookup)
}

type cannedTransport struct {
	body string
	err  error
}

func (c cannedTransport) Get(context.Context, space.Request) ([]byte, error) {
	return []byte(c.body), c.err
}

const observatoryList = `{"Observatory":["java.util.ArrayList",[
	["gov.nasa.gsfc.sscweb.schema.ObservatoryDescription",{"Id":"ace",
		"StartTime":["javax.xml.datatype.XMLGregorianCalendar","1997-08-25T17:48:00.000Z"],
		"EndTime":["javax.xml.datatype.XMLGregorianCalendar","2024-03-01T12:00:00.000Z"]}],
	["gov.nasa.gsfc.sscweb.schema.ObservatoryDescription",{"Id":"fresh",
		"StartTime":["javax.xml.datatype.XMLGregorianCalendar","2024-03-01T11:30:00.000Z"],
		"EndTime":["javax.xml.datatype.XMLGregorianCalendar","2030-01-01T00:00:00.000Z"]}]]]}`

func TestSSCResolveInterval(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	d := ssc(Options{SSCWindow: 2 * time.Hour, Now: func() time.Time { return now }}.withDefaults())
	deps := space.Deps{Transport: cannedTransport{body: observatoryList}}

	out, err := d.Resolve(context.Background(), deps, space.Params{"satellite": "ACE"})
	require.NoError(t, err)
	assert.Equal(t, "ace", out.Get("satellite"))
	assert.Equal(t, "20240301T100000Z", out.Get("start"))
	assert.Equal(t, "20240301T120000Z", out.Get("end"))

	req := d.Build(out, "ignored")
	assert.Equal(t, "https://sscweb.gsfc.nasa.gov/WS/sscr/2/locations/ace/20240301T100000Z,20240301T120000Z/gse/", req.String())
	assert.Equal(t, "application/json", req.Accept)
	assert.Equal(t, "ace Orbit (GSE)", d.PlotTitle(out))
}

func TestSSCResolveClampsToNowAndStart(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	d := ssc(Options{SSCWindow: 2 * time.Hour, Now: func() time.Time { return now }}.withDefaults())

	out, err := d.Resolve(context.Background(), space.Deps{Transport: cannedTransport{body: observatoryList}},
		space.Params{"satellite": "fresh"})
	require.NoError(t, err)
	assert.Equal(t, "20240301T113000Z", out.Get("start"))
	assert.Equal(t, "20240301T120000Z", out.Get("end"))
}

func TestSSCResolveFailures(t *testing.T) {
	d := ssc(Options{}.withDefaults())

	_, err := d.Resolve(context.Background(), space.Deps{Transport: cannedTransport{body: observatoryList}}, space.Params{"satellite": "voyager"})
	assert.ErrorIs(t, err, space.ErrLookup)

	_, err = d.Resolve(context.Background(), space.Deps{Transport: cannedTransport{body: observatoryList}}, space.Params{"satellite": "  "})
	assert.ErrorIs(t, err, space.ErrLookup)

	_, err = d.Resolve(context.Background(), space.Deps{Transport: cannedTransport{body: `[1,2,3]`}}, space.Params{"satellite": "ace"})
	assert.ErrorIs(t, err, space.ErrMalformedResponse)

	down := cannedTransport{err: errors.Join(space.ErrTransport, errors.New("503"))}
	_, err = d.Resolve(context.Background(), space.Deps{Transport: down}, space.Params{"satellite": "ace"})
	assert.ErrorIs(t, err, space.ErrTransport)

	badTime := strings.Replace(observatoryList, "2024-03-01T12:00:00.000Z", "soon", 1)
	_, err = d.Resolve(context.Background(), space.Deps{Transport: cannedTransport{body: badTime}}, space.Params{"satellite": "ace"})
	assert.ErrorIs(t, err, space.ErrMalformedResponse)
}

func TestRenderTemplates(t *testing.T) {
	catalog, err := Catalog(Options{})
	require.NoError(t, err)

	rec := func(kv ...string) space.Record {
		var r space.Record
		for i := 0; i < len(kv); i += 2 {
			r.Fields = append(r.Fields, space.NamedValue{Name: kv[i], Value: kv[i+1]})
		}
		return r
	}

	tests := []struct {
		id   string
		rec  space.Record
		want string
	}{
		{"apod", rec("title", "T", "explanation", "E", "url", "U"), "Title: T | Explanation: E | URL: U"},
		{"mars-photos", rec("camera", "FHAZ", "img_src", "http://x/1.jpg"), "[FHAZ] http://x/1.jpg"},
		{"neo", rec("name", "(2024 AA)", "magnitude", "19.1"), "Name: (2024 AA) | Magnitude: 19.1"},
		{"eonet", rec("title", "Fire", "category", "No title available", "link", "L"), "Event: Fire | Category: No title available | Link: L"},
		{"donki", rec("type", "FLR", "message", "a"), "Type: FLR | Message: a"},
		{"earth-imagery", rec("url", "https://u"), "Earth Imagery URL: https://u"},
	}
	for _, tt := range tests {
		d, ok := Find(catalog, tt.id)
		require.True(t, ok)
		assert.Equal(t, tt.want, space.Render(d, tt.rec))
	}
}
