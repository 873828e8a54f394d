package ast

import "github.com/aotlang/aotc/internal/source"
import "github.com/aotlang/aotc/internal/types"

// Expr is any expression node. Every expression carries a TypeUse
// (spec §3.5) — initially set at construction time, and overwritten by
// semantic analysis once a narrower or cast type is known.
type Expr interface {
	exprNode()
	Span() source.Span
	Type() types.QualType
	SetType(types.QualType)
}

type ExprBase struct {
	SourceSpan source.Span
	TypeUse    types.QualType
}

func (e *ExprBase) Span() source.Span          { return e.SourceSpan }
func (e *ExprBase) Type() types.QualType       { return e.TypeUse }
func (e *ExprBase) SetType(t types.QualType)   { e.TypeUse = t }

// BoolLit is a `true`/`false` literal.
type BoolLit struct {
	ExprBase
	Value bool
}

func (e *BoolLit) exprNode() {}

// IntegerLit is an integer literal, typed by context (defaults to s64 when
// untyped).
type IntegerLit struct {
	ExprBase
	Value int64
}

func (e *IntegerLit) exprNode() {}

// FloatLit is a floating-point literal.
type FloatLit struct {
	ExprBase
	Value float64
}

func (e *FloatLit) exprNode() {}

// CharLit is a character literal, decoded to its byte value.
type CharLit struct {
	ExprBase
	Value byte
}

func (e *CharLit) exprNode() {}

// StringLit is a string literal, decoded to its byte content.
type StringLit struct {
	ExprBase
	Value string
}

func (e *StringLit) exprNode() {}

// NullLit is the `null` literal, typed to whatever pointer type context
// requires.
type NullLit struct {
	ExprBase
}

func (e *NullLit) exprNode() {}

// Operator is the closed set of binary/unary operator spellings.
type Operator int

const (
	OpUnknown Operator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpLogAnd
	OpLogOr
	OpEq
	OpNotEq
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq
	OpAssign
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign
	OpAndAssign
	OpOrAssign
	OpXorAssign
	OpShlAssign
	OpShrAssign
	OpNot    // unary !
	OpBitNot // unary ~
	OpNeg    // unary -
	OpAddr   // unary &
	OpDeref  // unary *
	OpInc
	OpDec
)

// IsAssignment reports whether op is one of the assignment operators
// (spec §4.4: assignment requires an l-value left operand).
func (op Operator) IsAssignment() bool {
	switch op {
	case OpAssign, OpAddAssign, OpSubAssign, OpMulAssign, OpDivAssign, OpModAssign,
		OpAndAssign, OpOrAssign, OpXorAssign, OpShlAssign, OpShrAssign:
		return true
	default:
		return false
	}
}

// BinaryOp is `lhs op rhs`.
type BinaryOp struct {
	ExprBase
	Op  Operator
	LHS Expr
	RHS Expr
}

func (e *BinaryOp) exprNode() {}

// UnaryOp is a prefix (`!x`, `-x`, `&x`, `*x`, `++x`) or postfix (`x++`)
// unary operator application.
type UnaryOp struct {
	ExprBase
	Op     Operator
	Prefix bool
	Expr   Expr
}

func (e *UnaryOp) exprNode() {}

// Cast is an explicit `cast<Target>(expr)`-style conversion.
type Cast struct {
	ExprBase
	Target types.QualType
	Expr   Expr
}

func (e *Cast) exprNode() {}

// Paren is a parenthesized expression, kept as a distinct node so
// printing can round-trip source grouping.
type Paren struct {
	ExprBase
	Expr Expr
}

func (e *Paren) exprNode() {}

// Sizeof is `sizeof(Target)`, always typed u64 (spec §3.5).
type Sizeof struct {
	ExprBase
	Target types.QualType
}

func (e *Sizeof) exprNode() {}

// DeclRef is a bare identifier reference, bound to its declaration by
// symbol analysis (spec §4.3 Pass 2).
type DeclRef struct {
	ExprBase
	Name string
	Decl ValueDecl // nil until symbol analysis binds it
}

func (e *DeclRef) exprNode() {}

// Access is `base.name`, a field access bound to a specific Field by
// symbol analysis.
type Access struct {
	ExprBase
	Base  Expr
	Name  string
	Field *Field // nil until symbol analysis binds it
}

func (e *Access) exprNode() {}

// Subscript is `base[index]`.
type Subscript struct {
	ExprBase
	Base  Expr
	Index Expr
}

func (e *Subscript) exprNode() {}

// Call is `callee(args...)`.
type Call struct {
	ExprBase
	Callee Expr
	Args   []Expr
}

func (e *Call) exprNode() {}
