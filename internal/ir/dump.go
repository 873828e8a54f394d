package ir

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Dump renders every function on c as a pretty-printed JSON document,
// built incrementally with sjson.Set rather than marshaling a fixed Go
// struct, matching internal/diag.JSON's tidwall idiom for schema-free
// JSON output (used by the `--print-ir` CLI flag).
func (c *CFG) Dump() ([]byte, error) {
	doc := "{}"
	var err error

	globals := c.Globals()
	for i, g := range globals {
		base := fmt.Sprintf("globals.%d", i)
		if doc, err = sjson.Set(doc, base+".name", g.Name); err != nil {
			return nil, err
		}
		if doc, err = sjson.Set(doc, base+".type", g.ValueType().String()); err != nil {
			return nil, err
		}
	}

	functions := c.Functions()
	for i, fn := range functions {
		base := fmt.Sprintf("functions.%d", i)
		if doc, err = sjson.Set(doc, base+".name", fn.Name); err != nil {
			return nil, err
		}
		for bi, block := range fn.Blocks() {
			blockBase := fmt.Sprintf("%s.blocks.%d", base, bi)
			if doc, err = sjson.Set(doc, blockBase+".name", block.Name); err != nil {
				return nil, err
			}
			for ii, inst := range block.Instructions {
				instBase := fmt.Sprintf("%s.instructions.%d", blockBase, ii)
				if doc, err = sjson.Set(doc, instBase+".op", inst.Op.String()); err != nil {
					return nil, err
				}
				if inst.Name != "" {
					if doc, err = sjson.Set(doc, instBase+".name", inst.Name); err != nil {
						return nil, err
					}
				}
				if doc, err = sjson.Set(doc, instBase+".type", inst.ValueType().String()); err != nil {
					return nil, err
				}
				if doc, err = sjson.Set(doc, instBase+".uses", len(inst.Uses())); err != nil {
					return nil, err
				}
			}
		}
	}

	return pretty.Pretty([]byte(doc)), nil
}

// FunctionNames extracts every "functions.N.name" value from a document
// produced by Dump, without re-walking the CFG. Exists for tooling that
// only persisted the rendered JSON (mirrors internal/diag.CountSeverityJSON).
func FunctionNames(doc []byte) []string {
	var names []string
	gjson.GetBytes(doc, "functions").ForEach(func(_, value gjson.Result) bool {
		if name := value.Get("name"); name.Exists() {
			names = append(names, name.String())
		}
		return true
	})
	return names
}
