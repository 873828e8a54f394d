package diag

import (
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// JSON renders a Bag's entries as a pretty-printed JSON array, one object
// per diagnostic, for machine consumption (spec §6 Options.print_ir-style
// tooling output). Built incrementally with sjson.Set rather than
// marshaling a Go struct, matching the pack's tidwall/{gjson,sjson} idiom
// for building JSON documents without a fixed schema type.
func (b *Bag) JSON() ([]byte, error) {
	doc := "[]"
	var err error
	for i, d := range b.entries {
		base := strconv.Itoa(i)
		doc, err = sjson.Set(doc, base+".severity", d.Severity.String())
		if err != nil {
			return nil, err
		}
		doc, err = sjson.Set(doc, base+".kind", d.Kind.String())
		if err != nil {
			return nil, err
		}
		doc, err = sjson.Set(doc, base+".message", d.Message)
		if err != nil {
			return nil, err
		}
		if d.File != "" {
			doc, err = sjson.Set(doc, base+".file", d.File)
			if err != nil {
				return nil, err
			}
		}
		if d.HasLoc {
			doc, err = sjson.Set(doc, base+".line", d.Loc.Line)
			if err != nil {
				return nil, err
			}
			doc, err = sjson.Set(doc, base+".col", d.Loc.Col)
			if err != nil {
				return nil, err
			}
		}
		if d.HasSpan {
			doc, err = sjson.Set(doc, base+".start_line", d.Span.Start.Line)
			if err != nil {
				return nil, err
			}
			doc, err = sjson.Set(doc, base+".end_line", d.Span.End.Line)
			if err != nil {
				return nil, err
			}
		}
	}
	return pretty.Pretty([]byte(doc)), nil
}

// CountSeverityJSON counts entries of the given severity name ("error",
// "fatal error", "warning", "note") inside a JSON document produced by
// JSON. It exists so callers that only persisted the rendered JSON (e.g. a
// build log) can still answer "did this run fail" without re-parsing into
// Go structs.
func CountSeverityJSON(doc []byte, severity string) int {
	count := 0
	gjson.ParseBytes(doc).ForEach(func(_, value gjson.Result) bool {
		if value.Get("severity").String() == severity {
			count++
		}
		return true
	})
	return count
}
