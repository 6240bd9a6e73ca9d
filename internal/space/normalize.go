package space

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ParseLimit parses a raw record limit. Only non-negative base-10 integers are accepted.
func ParseLimit(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInputValidation, raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: limit %d is negative", ErrInputValidation, n)
	}
	return n, nil
}

// Truncate caps records at limit, keeping response order.
func Truncate(records []Record, limit int) []Record {
	if limit < len(records) {
		return records[:limit]
	}
	return records
}

// Normalize extracts every available record from body according to the
// descriptor's shape. It never returns a partial result alongside an error.
func Normalize(d *Descriptor, body []byte, params Params) ([]Record, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: %s: body is not JSON", ErrMalformedResponse, d.ID)
	}
	root := unwrap(gjson.ParseBytes(body))

	switch d.Shape {
	case ShapeSingleObject:
		if !root.IsObject() {
			return nil, fmt.Errorf("%w: %s: expected an object, got %s", ErrMalformedResponse, d.ID, kind(root))
		}
		return []Record{extract(root, d.Fields)}, nil

	case ShapeNestedList:
		if !root.IsObject() {
			return nil, fmt.Errorf("%w: %s: expected an object, got %s", ErrMalformedResponse, d.ID, kind(root))
		}
		list := lookup(root, d.ListPath)
		if d.FilterParam != "" && list.Exists() {
			if !list.IsObject() {
				return nil, fmt.Errorf("%w: %s: %s is %s, not an object", ErrMalformedResponse, d.ID, d.ListPath, kind(list))
			}
			// Map avoids interpreting user input as a gjson path.
			list = list.Map()[params.Get(d.FilterParam)]
		}
		return extractList(d, list)

	case ShapeFlatList:
		if !root.IsArray() {
			return nil, fmt.Errorf("%w: %s: expected a list, got %s", ErrMalformedResponse, d.ID, kind(root))
		}
		return extractList(d, root)

	case ShapeNamedLists:
		if !root.IsObject() {
			return nil, fmt.Errorf("%w: %s: expected an object, got %s", ErrMalformedResponse, d.ID, kind(root))
		}
		return extractNamedLists(d, lookup(root, d.ListPath))

	default:
		return nil, fmt.Errorf("%w: %s: shape %q cannot be normalized", ErrMalformedResponse, d.ID, d.Shape)
	}
}

func extractList(d *Descriptor, list gjson.Result) ([]Record, error) {
	if !list.Exists() || list.Type == gjson.Null {
		return nil, nil
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: %s: expected a list, got %s", ErrMalformedResponse, d.ID, kind(list))
	}
	items := list.Array()
	records := make([]Record, 0, len(items))
	for _, item := range items {
		records = append(records, extract(unwrap(item), d.Fields))
	}
	return records, nil
}

// extractNamedLists zips the lists named by each field index-wise. The first
// field's list decides how many records exist.
func extractNamedLists(d *Descriptor, base gjson.Result) ([]Record, error) {
	if !base.Exists() || base.Type == gjson.Null || len(d.Fields) == 0 {
		return nil, nil
	}
	if !base.IsObject() {
		return nil, fmt.Errorf("%w: %s: %s is %s, not an object", ErrMalformedResponse, d.ID, d.ListPath, kind(base))
	}

	columns := make([][]gjson.Result, len(d.Fields))
	for i, f := range d.Fields {
		col := lookup(base, f.Path)
		if col.Exists() && col.Type != gjson.Null && !col.IsArray() {
			return nil, fmt.Errorf("%w: %s: %s is %s, not a list", ErrMalformedResponse, d.ID, f.Path, kind(col))
		}
		columns[i] = col.Array()
	}

	n := len(columns[0])
	records := make([]Record, 0, n)
	for row := 0; row < n; row++ {
		rec := Record{Fields: make([]NamedValue, len(d.Fields))}
		for i, f := range d.Fields {
			v := f.placeholder()
			if row < len(columns[i]) {
				if cell := unwrap(columns[i][row]); cell.Exists() && cell.Type != gjson.Null {
					v = text(cell)
				}
			}
			rec.Fields[i] = NamedValue{Name: f.Name, Value: v}
		}
		records = append(records, rec)
	}
	return records, nil
}

func extract(item gjson.Result, fields []Field) Record {
	rec := Record{Fields: make([]NamedValue, len(fields))}
	for i, f := range fields {
		v := lookup(item, f.Path)
		if !v.Exists() || v.Type == gjson.Null {
			rec.Fields[i] = NamedValue{Name: f.Name, Value: f.placeholder()}
			continue
		}
		rec.Fields[i] = NamedValue{Name: f.Name, Value: text(v)}
	}
	return rec
}

// text keeps numbers exactly as the upstream wrote them.
func text(v gjson.Result) string {
	if v.Type == gjson.Number && v.Raw != "" {
		return strings.TrimSpace(v.Raw)
	}
	return v.String()
}

// lookup walks a dotted path, unwrapping typed containers at every step.
func lookup(r gjson.Result, path string) gjson.Result {
	if path == "" {
		return unwrap(r)
	}
	for _, part := range strings.Split(path, ".") {
		r = unwrap(r)
		if !r.IsObject() && !r.IsArray() {
			return gjson.Result{}
		}
		r = r.Get(part)
		if !r.Exists() {
			return r
		}
	}
	return unwrap(r)
}

// unwrap strips the ["java.util.ArrayList", value] style type annotation some
// services (SSC) put around every container and scalar.
func unwrap(r gjson.Result) gjson.Result {
	for r.IsArray() {
		items := r.Array()
		if len(items) != 2 || items[0].Type != gjson.String || !isTypeTag(items[0].Str) {
			return r
		}
		r = items[1]
	}
	return r
}

func isTypeTag(s string) bool {
	for _, prefix := range []string{"java.", "javax.", "gov.nasa.", "[D", "[Ljava."} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func kind(r gjson.Result) string {
	switch {
	case !r.Exists():
		return "nothing"
	case r.IsObject():
		return "an object"
	case r.IsArray():
		return "a list"
	default:
		return r.Type.String()
	}
}
