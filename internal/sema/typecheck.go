package sema

import (
	"github.com/aotlang/aotc/internal/ast"
	"github.com/aotlang/aotc/internal/types"
)

// CheckMode is the strictness a type comparison is performed under
// (spec §4.4).
type CheckMode int

const (
	// Explicit requires exact identity: same pooled Type and same
	// qualifier.
	Explicit CheckMode = iota
	// Loose requires the same pooled Type; qualifiers may differ.
	Loose
	// AllowImplicit is Loose plus numeric widening, integer/float
	// literal coercion, null-to-pointer, and array-to-pointer decay.
	AllowImplicit
)

// Result is the outcome of comparing an actual type against an expected
// one under a CheckMode.
type Result int

const (
	Match Result = iota
	Cast
	Mismatch
)

// classify compares expr's actual type against expected under mode,
// exactly mirroring spec §4.4's three-mode, three-result rule set. expr
// is consulted only to special-case integer-literal and null-literal
// coercion, which depend on the expression kind rather than its static
// type alone.
func classify(expr ast.Expr, expected types.QualType, mode CheckMode) Result {
	actual := expr.Type()

	if actual.Type == expected.Type {
		if mode == Explicit && actual.Qual != expected.Qual {
			return Mismatch
		}
		return Match
	}

	if mode == Explicit || mode == Loose {
		return Mismatch
	}

	// mode == AllowImplicit from here on.
	if actual.Type == nil || expected.Type == nil {
		return Mismatch
	}

	if actual.Type.IsInteger() && expected.Type.IsInteger() &&
		actual.Type.IsSigned() == expected.Type.IsSigned() &&
		actual.Type.Width() <= expected.Type.Width() {
		return Cast
	}

	if _, ok := expr.(*ast.IntegerLit); ok && (expected.Type.IsInteger() || expected.Type.IsFloat()) {
		return Cast
	}
	if _, ok := expr.(*ast.FloatLit); ok && expected.Type.IsFloat() {
		return Cast
	}

	if _, ok := expr.(*ast.NullLit); ok && expected.Type.Kind == types.Pointer {
		return Cast
	}

	if actual.Type.Kind == types.Array && expected.Type.Kind == types.Pointer &&
		actual.Type.Element == expected.Type.Pointee.Type {
		return Cast // array-to-pointer decay, spec §4.4 Call argument rule
	}

	return Mismatch
}

// validCastPair reports whether an explicit cast<to>(expr of type from)
// is permitted: numeric<->numeric, pointer<->pointer, integer<->pointer
// (spec §4.4 Cast rule). Floating point never converts directly to or
// from a pointer.
func validCastPair(from, to *types.Type) bool {
	if from == nil || to == nil {
		return false
	}
	fNumeric := from.IsInteger() || from.IsFloat()
	tNumeric := to.IsInteger() || to.IsFloat()
	switch {
	case fNumeric && tNumeric:
		return true
	case from.Kind == types.Pointer && to.Kind == types.Pointer:
		return true
	case from.IsInteger() && to.Kind == types.Pointer:
		return true
	case from.Kind == types.Pointer && to.IsInteger():
		return true
	default:
		return false
	}
}
