// Package types implements the TranslationUnit-scoped TypeInterner (spec
// §3.3): every type used by a translation unit is a pooled, canonical
// handle, so structurally equal types compare equal by pointer.
package types

import (
	"fmt"
)

// Kind discriminates the closed set of type variants.
type Kind int

const (
	Void Kind = iota
	Bool
	Char
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F32
	F64
	Pointer
	Array
	Function
	Struct
	Enum
	Alias
	Deferred
)

// Type is a canonical, pooled handle. Two Types are the structurally same
// type within one Interner if and only if they are the same *Type.
type Type struct {
	Kind Kind

	// Pointer. Pointee carries its own qualifier, so "*mut void" and
	// "*void" pool as distinct pointer types (spec §8 scenario 4: "mut
	// *mut void" — the pointee is itself mut).
	Pointee QualType

	// Array
	Element *Type
	Size    int64

	// Function
	Return *Type
	Params []*Type

	// Struct / Enum / Alias: a non-owning back-reference to the
	// declaration that introduced the name, attached by the parser.
	// Declaration is left untyped (any) here to avoid an import cycle
	// with internal/ast; callers type-assert to *ast.Struct / *ast.Enum
	// / *ast.Alias as appropriate.
	Declaration any
	Name        string
	Underlying  *Type // Enum's underlying primitive, or Alias's target

	// Deferred
	DeferredName string
}

// primitiveNames gives the canonical spelling of each builtin kind.
var primitiveNames = map[Kind]string{
	Void: "void", Bool: "bool", Char: "char",
	I8: "i8", I16: "i16", I32: "i32", I64: "i64",
	U8: "u8", U16: "u16", U32: "u32", U64: "u64",
	F32: "f32", F64: "f64",
}

func (t *Type) IsPrimitive() bool {
	_, ok := primitiveNames[t.Kind]
	return ok
}

func (t *Type) IsInteger() bool {
	switch t.Kind {
	case I8, I16, I32, I64, U8, U16, U32, U64:
		return true
	default:
		return false
	}
}

func (t *Type) IsSigned() bool {
	switch t.Kind {
	case I8, I16, I32, I64:
		return true
	default:
		return false
	}
}

func (t *Type) IsFloat() bool {
	return t.Kind == F32 || t.Kind == F64
}

// Width returns the bit width of integer and float primitives; 0 otherwise.
func (t *Type) Width() int {
	switch t.Kind {
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32, F32:
		return 32
	case I64, U64, F64:
		return 64
	default:
		return 0
	}
}

// String renders a type, including qualifiers when wrapped in a Qual (the
// qualifier itself is not part of Type — see QualType).
func (t *Type) String() string {
	if t == nil {
		return "<nil type>"
	}
	switch t.Kind {
	case Pointer:
		return "*" + t.Pointee.String()
	case Array:
		return fmt.Sprintf("[%d]%s", t.Size, t.Element.String())
	case Function:
		return fmt.Sprintf("(%s) -> %s", paramList(t.Params), t.Return.String())
	case Struct, Enum, Alias:
		return t.Name
	case Deferred:
		return t.DeferredName
	default:
		return primitiveNames[t.Kind]
	}
}

func paramList(params []*Type) string {
	s := ""
	for i, p := range params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s
}

// Qualifier is the closed set of type qualifiers (spec §3.3: "currently
// mut").
type Qualifier uint8

const (
	QualNone Qualifier = 0
	QualMut  Qualifier = 1 << iota
)

// QualType pairs a canonical Type with a qualifier bitset. Equality on a
// QualType is (type-id, qualifier-bits), matching spec §3.3.
type QualType struct {
	Type *Type
	Qual Qualifier
}

func (q QualType) IsMut() bool { return q.Qual&QualMut != 0 }

func (q QualType) Equal(other QualType) bool {
	return q.Type == other.Type && q.Qual == other.Qual
}

func (q QualType) String() string {
	if q.IsMut() {
		return "mut " + q.Type.String()
	}
	return q.Type.String()
}
