package ir

import (
	"github.com/aotlang/aotc/internal/diag"
	"github.com/aotlang/aotc/internal/types"
)

// CFG owns every Global, Function, and pooled Constant for one translation
// unit's lowered IR (spec §3.6). Grounded on original_source/lir/source/
// graph/CFG.cpp: the constructor there pre-populates primitive types and
// two canonical constants; add_global/add_function there assert name-
// uniqueness across both maps before inserting, which this reproduces as
// diagnostics rather than aborting the process, since a name collision
// here is a compiler-user-facing error, not a programming bug.
type CFG struct {
	Types *types.Interner

	globals   map[string]*Global
	functions map[string]*Function
	constants map[string]*Constant

	bag *diag.Bag
}

// NewCFG creates an empty CFG backed by the given type interner and
// diagnostic bag.
func NewCFG(in *types.Interner, bag *diag.Bag) *CFG {
	return &CFG{
		Types:     in,
		globals:   make(map[string]*Global),
		functions: make(map[string]*Function),
		constants: make(map[string]*Constant),
		bag:       bag,
	}
}

// Global is a module-level storage location: a typed, named, pointer-
// valued Value that instructions may Load/Store through.
type Global struct {
	ValueBase
	Name string
	Init Value // optional initializer constant
}

// nameTaken reports whether name already names a global or a function;
// CFG.cpp enforces this invariant across both maps, not per-map.
func (c *CFG) nameTaken(name string) bool {
	if _, ok := c.globals[name]; ok {
		return true
	}
	if _, ok := c.functions[name]; ok {
		return true
	}
	return false
}

// AddGlobal registers a new global named name with the given pointee type,
// reporting a fatal diagnostic if the name collides with an existing
// global or function (spec §4.5: `add_global`).
func (c *CFG) AddGlobal(name string, pointeeType types.QualType) *Global {
	if c.nameTaken(name) {
		c.bag.Fatal(diag.KindNameConflict, "duplicate global or function name: "+name)
		return nil
	}
	g := &Global{
		ValueBase: ValueBase{Typ: types.QualType{Type: c.Types.Pointer(pointeeType)}},
		Name:      name,
	}
	c.globals[name] = g
	return g
}

// RemoveGlobal detaches and deletes the global named name (spec §4.5:
// `remove_global`). It is a no-op if no such global exists.
func (c *CFG) RemoveGlobal(name string) {
	delete(c.globals, name)
}

// Globals returns a snapshot of every registered global.
func (c *CFG) Globals() []*Global {
	out := make([]*Global, 0, len(c.globals))
	for _, g := range c.globals {
		out = append(out, g)
	}
	return out
}

// AddFunction registers a new, initially body-less Function named name
// with the given signature, reporting a fatal diagnostic on a name
// collision (spec §4.5: `add_function`).
func (c *CFG) AddFunction(name string, sig *types.Type) *Function {
	if c.nameTaken(name) {
		c.bag.Fatal(diag.KindNameConflict, "duplicate global or function name: "+name)
		return nil
	}
	f := &Function{
		ValueBase: ValueBase{Typ: types.QualType{Type: sig}},
		Name:      name,
		cfg:       c,
	}
	c.functions[name] = f
	return f
}

// RemoveFunction detaches and deletes the function named name (spec §4.5:
// `remove_function`).
func (c *CFG) RemoveFunction(name string) {
	delete(c.functions, name)
}

// Functions returns a snapshot of every registered function.
func (c *CFG) Functions() []*Function {
	out := make([]*Function, 0, len(c.functions))
	for _, f := range c.functions {
		out = append(out, f)
	}
	return out
}

// Function looks up a previously registered function by name.
func (c *CFG) Function(name string) (*Function, bool) {
	f, ok := c.functions[name]
	return f, ok
}
