package ir

import (
	"fmt"
	"math"

	"github.com/aotlang/aotc/internal/types"
)

// ConstKind discriminates the closed set of constant payload shapes
// spec §3.6/§4.5 names: integers keyed by (width, value), floats by
// (width, bit-pattern), nulls by type, strings by bytes, block
// addresses by block, aggregates freshly allocated.
type ConstKind int

const (
	ConstInt ConstKind = iota
	ConstFloat
	ConstNull
	ConstString
	ConstBlockAddress
	ConstAggregate
)

// Constant is a pooled Value: two constants of identical (kind, type,
// payload) are the same object within one CFG (spec §4.5 invariant c).
type Constant struct {
	ValueBase
	Kind ConstKind

	IntValue    int64
	FloatBits   uint64 // float payload, compared by bit pattern per spec
	StringValue string
	Block       *BasicBlock   // ConstBlockAddress
	Elements    []Value       // ConstAggregate; plain references, not Use edges
}

// constantKey produces the exact pooling key for a constant's (kind,
// type, payload) triple. Unlike the type Interner's structural pooling
// over arbitrarily nested types, a constant's payload is always a
// scalar or a short list of already-pooled handles, so an exact string
// key needs no hash-bucket indirection.
func constantKey(kind ConstKind, t *types.Type, payload string) string {
	return fmt.Sprintf("%d:%p:%s", kind, t, payload)
}

// Int returns the pooled integer constant of the given type and value
// (spec §4.5: `int(w, v)`).
func (c *CFG) Int(t *types.Type, v int64) *Constant {
	key := constantKey(ConstInt, t, fmt.Sprintf("%d", v))
	if existing, ok := c.constants[key]; ok {
		return existing
	}
	k := &Constant{ValueBase: ValueBase{Typ: types.QualType{Type: t}}, Kind: ConstInt, IntValue: v}
	c.constants[key] = k
	return k
}

// Float returns the pooled float constant, compared by bit pattern so
// that -0.0 and +0.0 (and NaN payloads) pool distinctly.
func (c *CFG) Float(t *types.Type, v float64) *Constant {
	bits := math.Float64bits(v)
	key := constantKey(ConstFloat, t, fmt.Sprintf("%d", bits))
	if existing, ok := c.constants[key]; ok {
		return existing
	}
	k := &Constant{ValueBase: ValueBase{Typ: types.QualType{Type: t}}, Kind: ConstFloat, FloatBits: bits}
	c.constants[key] = k
	return k
}

// Null returns the pooled null constant of pointer type t.
func (c *CFG) Null(t *types.Type) *Constant {
	key := constantKey(ConstNull, t, "")
	if existing, ok := c.constants[key]; ok {
		return existing
	}
	k := &Constant{ValueBase: ValueBase{Typ: types.QualType{Type: t}}, Kind: ConstNull}
	c.constants[key] = k
	return k
}

// String returns the pooled string constant for the given decoded byte
// content, typed as a pointer to char.
func (c *CFG) String(bytes string) *Constant {
	charPtr := c.Types.Pointer(types.QualType{Type: c.Types.Primitive(types.Char)})
	key := constantKey(ConstString, charPtr, bytes)
	if existing, ok := c.constants[key]; ok {
		return existing
	}
	k := &Constant{ValueBase: ValueBase{Typ: types.QualType{Type: charPtr}}, Kind: ConstString, StringValue: bytes}
	c.constants[key] = k
	return k
}

// BlockAddress returns the pooled constant referencing b, used as the
// operand of branch instructions (spec §4.5: `block_address(b)`).
func (c *CFG) BlockAddress(b *BasicBlock) *Constant {
	key := constantKey(ConstBlockAddress, nil, fmt.Sprintf("%p", b))
	if existing, ok := c.constants[key]; ok {
		return existing
	}
	k := &Constant{ValueBase: ValueBase{}, Kind: ConstBlockAddress, Block: b}
	c.constants[key] = k
	return k
}

// Aggregate returns a freshly allocated aggregate constant of type t
// over values; structural equality is optional per spec §3.6, so this
// is never pooled.
func (c *CFG) Aggregate(t *types.Type, values []Value) *Constant {
	return &Constant{ValueBase: ValueBase{Typ: types.QualType{Type: t}}, Kind: ConstAggregate, Elements: values}
}
