package space

import (
	"strings"

	"github.com/i474232898/space-data-console/internal/common"
)

// Render formats one record as a single line. The same text is printed to the
// console and appended to the endpoint's log.
func Render(d *Descriptor, rec Record) string {
	var line string
	if d.Render != nil {
		line = d.Render(rec)
	} else {
		line = DefaultRender(rec)
	}
	return common.SingleLine(line)
}

// DefaultRender joins "Name: value" pairs with " | ".
func DefaultRender(rec Record) string {
	parts := make([]string, 0, len(rec.Fields))
	for _, f := range rec.Fields {
		parts = append(parts, f.Name+": "+f.Value)
	}
	return strings.Join(parts, " | ")
}
