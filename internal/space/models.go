package space

import (
	"context"
	"net/url"
	"strings"
)

// NoValue is shown in place of a field the upstream response did not carry.
const NoValue = "None"

// Shape tags how a descriptor's records are laid out in the upstream payload.
type Shape string

const (
	// ShapeSingleObject yields exactly one record from the top-level object.
	ShapeSingleObject Shape = "single-object"
	// ShapeNestedList yields the elements of a list found under ListPath.
	ShapeNestedList Shape = "nested-list"
	// ShapeFlatList yields the elements of the top-level array.
	ShapeFlatList Shape = "flat-list"
	// ShapeNamedLists zips several parallel lists found under ListPath into records.
	ShapeNamedLists Shape = "named-lists"
	// ShapeRequestOnly performs no fetch; the built request URL is the only record.
	ShapeRequestOnly Shape = "request-only"
)

// Field describes one named value pulled out of a response element.
// Path is a gjson path relative to the element (or, for ShapeNamedLists,
// relative to the list root and naming a list).
type Field struct {
	Name    string
	Path    string
	Default string // used when Path is absent; NoValue when empty
}

func (f Field) placeholder() string {
	if f.Default != "" {
		return f.Default
	}
	return NoValue
}

// Param is a caller-supplied value collected before the request is built.
type Param struct {
	Key    string
	Prompt string

	// Skip reports whether the prompt can be skipped given what was collected so far.
	Skip func(Params) bool
}

// Params holds the collected parameter values by key.
type Params map[string]string

// Get returns the value for key, or "" if absent.
func (p Params) Get(key string) string {
	return p[key]
}

// Request is a fully-formed GET request ready for the transport.
type Request struct {
	BaseURL string
	Query   url.Values
	Accept  string
}

// String returns the request URL with its encoded query string.
func (r Request) String() string {
	if len(r.Query) == 0 {
		return r.BaseURL
	}
	sep := "?"
	if strings.Contains(r.BaseURL, "?") {
		sep = "&"
	}
	return r.BaseURL + sep + r.Query.Encode()
}

// Deps bundles the collaborators a descriptor may need while resolving params.
type Deps struct {
	Transport Transport
	Geocoder  Geocoder
}

// Descriptor is the static description of one upstream data source.
type Descriptor struct {
	ID          string
	Name        string
	StorageFile string
	Shape       Shape

	Params []Param

	// AskLimit makes the cycle prompt for a record limit; otherwise DefaultLimit applies.
	AskLimit     bool
	LimitPrompt  string
	DefaultLimit int

	// ListPath locates the record list for ShapeNestedList and ShapeNamedLists.
	ListPath string
	// FilterParam names the param whose value selects a key inside ListPath.
	FilterParam string
	Fields      []Field

	// Noun is used for the "Found N <noun>." summary; empty disables it.
	Noun string

	// Resolve may rewrite params before Build, e.g. to look up identifiers.
	Resolve func(ctx context.Context, deps Deps, params Params) (Params, error)
	Build   func(params Params, apiKey string) Request
	Render  func(rec Record) string

	// NotFound is printed when Resolve reports ErrLookup.
	NotFound string

	// PlotTitle enables the optional visualization step and names the plot.
	PlotTitle func(params Params) string
}

// Record is one normalized, renderable unit. Fields keep descriptor order.
type Record struct {
	Fields []NamedValue
}

// NamedValue is one field of a Record.
type NamedValue struct {
	Name  string
	Value string
}

// Get returns the value of the named field, or NoValue.
func (r Record) Get(name string) string {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return NoValue
}
