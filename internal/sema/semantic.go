package sema

import (
	"github.com/aotlang/aotc/internal/ast"
	"github.com/aotlang/aotc/internal/diag"
	"github.com/aotlang/aotc/internal/types"
)

// SemanticAnalysisPass implements spec §4.4: type checking against the
// three CheckMode rules, implicit-cast insertion, and the control-flow
// validation rules for Ret/Break/Continue.
type SemanticAnalysisPass struct{}

func (SemanticAnalysisPass) Name() string { return "semantic-analysis" }

func (SemanticAnalysisPass) Run(tu *ast.TranslationUnit, in *types.Interner, bag *diag.Bag) {
	c := &checker{bag: bag, in: in}
	for _, d := range tu.Decls {
		c.checkDecl(d)
	}
}

type checker struct {
	bag         *diag.Bag
	in          *types.Interner
	curFnReturn types.QualType
	inFunction  bool
	loopDepth   int
}

// coerce implements spec §4.4's Match/Cast/Mismatch disposition: Match
// returns expr unchanged, Cast wraps it in an implicit ast.Cast node, and
// Mismatch reports an error and returns expr unchanged so analysis can
// keep going.
func (c *checker) coerce(expr ast.Expr, expected types.QualType, mode CheckMode) ast.Expr {
	switch classify(expr, expected, mode) {
	case Match:
		return expr
	case Cast:
		return &ast.Cast{
			ExprBase: ast.ExprBase{SourceSpan: expr.Span(), TypeUse: expected},
			Target:   expected,
			Expr:     expr,
		}
	default:
		c.bag.ErrorSpan(diag.KindTypeMismatch,
			"cannot convert "+expr.Type().String()+" to "+expected.String(), expr.Span())
		return expr
	}
}

func (c *checker) checkDecl(d ast.Decl) {
	switch n := d.(type) {
	case *ast.Function:
		if n.Body == nil {
			return
		}
		prevRet, prevIn := c.curFnReturn, c.inFunction
		c.curFnReturn, c.inFunction = n.ReturnType, true
		c.checkStmt(n.Body)
		c.curFnReturn, c.inFunction = prevRet, prevIn
	case *ast.Variable:
		if n.Init != nil {
			n.Init = c.coerce(c.checkExpr(n.Init), n.Type, AllowImplicit)
		}
	}
}

func (c *checker) checkStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		for _, inner := range n.Stmts {
			c.checkStmt(inner)
		}
	case *ast.DeclStmt:
		c.checkDecl(n.Decl)
	case *ast.ExprStmt:
		n.Expr = c.checkExpr(n.Expr)
	case *ast.Ret:
		c.checkRet(n)
	case *ast.If:
		n.Cond = c.checkExpr(n.Cond)
		c.requireBoolish(n.Cond)
		c.checkStmt(n.Then)
		if n.Else != nil {
			c.checkStmt(n.Else)
		}
	case *ast.While:
		n.Cond = c.checkExpr(n.Cond)
		c.requireBoolish(n.Cond)
		c.loopDepth++
		if n.Body != nil {
			c.checkStmt(n.Body)
		}
		c.loopDepth--
	case *ast.Break:
		if c.loopDepth == 0 {
			c.bag.ErrorSpan(diag.KindControlContext, "break outside a loop", n.Span())
		}
	case *ast.Continue:
		if c.loopDepth == 0 {
			c.bag.ErrorSpan(diag.KindControlContext, "continue outside a loop", n.Span())
		}
	case *ast.Asm:
		for i, a := range n.Args {
			n.Args[i] = c.checkExpr(a)
		}
	}
}

// checkRet implements spec §4.4's Ret rule: a bare `ret;` is legal only
// in a void function, `ret expr;` type-checks expr against the declared
// return type under AllowImplicit.
func (c *checker) checkRet(n *ast.Ret) {
	if !c.inFunction {
		c.bag.ErrorSpan(diag.KindControlContext, "ret outside a function body", n.Span())
		return
	}
	isVoid := c.curFnReturn.Type != nil && c.curFnReturn.Type.Kind == types.Void
	if n.Expr == nil {
		if !isVoid {
			c.bag.ErrorSpan(diag.KindTypeMismatch, "missing return value", n.Span())
		}
		return
	}
	if isVoid {
		c.bag.ErrorSpan(diag.KindTypeMismatch, "returning a value from a void function", n.Span())
		return
	}
	n.Expr = c.coerce(c.checkExpr(n.Expr), c.curFnReturn, AllowImplicit)
}

// requireBoolish implements spec §4.4's If/While condition rule: boolean
// or "implicitly convertible to boolean" (nonzero integer, non-null
// pointer). No cast node is inserted — truthiness is a runtime notion of
// the IR lowering, not a surface conversion.
func (c *checker) requireBoolish(e ast.Expr) {
	t := e.Type().Type
	if t == nil {
		return
	}
	if t.Kind == types.Bool || t.Kind == types.Pointer || t.IsInteger() {
		return
	}
	c.bag.ErrorSpan(diag.KindTypeMismatch, "condition must be boolean, integer, or pointer", e.Span())
}

func (c *checker) checkExpr(e ast.Expr) ast.Expr {
	switch n := e.(type) {
	case *ast.BoolLit:
		n.SetType(types.QualType{Type: c.in.Primitive(types.Bool)})
		return n
	case *ast.IntegerLit:
		n.SetType(types.QualType{Type: c.in.Primitive(types.I64)})
		return n
	case *ast.FloatLit:
		n.SetType(types.QualType{Type: c.in.Primitive(types.F64)})
		return n
	case *ast.CharLit:
		n.SetType(types.QualType{Type: c.in.Primitive(types.Char)})
		return n
	case *ast.StringLit:
		n.SetType(types.QualType{Type: c.in.Pointer(types.QualType{Type: c.in.Primitive(types.Char)})})
		return n
	case *ast.NullLit:
		n.SetType(types.QualType{Type: c.in.Pointer(types.QualType{Type: c.in.Primitive(types.Void)})})
		return n
	case *ast.DeclRef:
		return n // typed by symbol analysis
	case *ast.Paren:
		n.Expr = c.checkExpr(n.Expr)
		n.SetType(n.Expr.Type())
		return n
	case *ast.Sizeof:
		n.SetType(types.QualType{Type: c.in.Primitive(types.U64)})
		return n
	case *ast.Access:
		n.Base = c.checkExpr(n.Base)
		return n // typed by symbol analysis
	case *ast.Subscript:
		return c.checkSubscript(n)
	case *ast.Call:
		return c.checkCall(n)
	case *ast.Cast:
		return c.checkCast(n)
	case *ast.UnaryOp:
		return c.checkUnary(n)
	case *ast.BinaryOp:
		return c.checkBinary(n)
	default:
		return e
	}
}

func (c *checker) checkSubscript(n *ast.Subscript) ast.Expr {
	n.Base = c.checkExpr(n.Base)
	n.Index = c.checkExpr(n.Index)
	base := n.Base.Type().Type
	switch {
	case base != nil && base.Kind == types.Pointer:
		n.SetType(base.Pointee)
	case base != nil && base.Kind == types.Array:
		n.SetType(types.QualType{Type: base.Element})
	default:
		c.bag.ErrorSpan(diag.KindTypeMismatch, "subscript requires a pointer or array", n.Span())
	}
	return n
}

func (c *checker) checkCast(n *ast.Cast) ast.Expr {
	n.Expr = c.checkExpr(n.Expr)
	if !validCastPair(n.Expr.Type().Type, n.Target.Type) {
		c.bag.ErrorSpan(diag.KindInvalidCast,
			"cannot cast "+n.Expr.Type().String()+" to "+n.Target.String(), n.Span())
	}
	n.SetType(n.Target)
	return n
}

// checkCall implements spec §4.4's Call rule: the callee must have
// function type, argument count must match, and each argument
// type-checks against its parameter under AllowImplicit.
func (c *checker) checkCall(n *ast.Call) ast.Expr {
	n.Callee = c.checkExpr(n.Callee)
	for i, a := range n.Args {
		n.Args[i] = c.checkExpr(a)
	}

	fnType := n.Callee.Type().Type
	if fnType == nil || fnType.Kind != types.Function {
		c.bag.ErrorSpan(diag.KindTypeMismatch, "call target is not a function", n.Span())
		return n
	}

	if len(n.Args) != len(fnType.Params) {
		c.bag.ErrorSpan(diag.KindTypeMismatch, "argument count mismatch", n.Span())
	} else {
		for i := range n.Args {
			n.Args[i] = c.coerce(n.Args[i], types.QualType{Type: fnType.Params[i]}, AllowImplicit)
		}
	}

	n.SetType(types.QualType{Type: fnType.Return})
	return n
}

func (c *checker) checkUnary(n *ast.UnaryOp) ast.Expr {
	n.Expr = c.checkExpr(n.Expr)
	switch n.Op {
	case ast.OpNot:
		c.requireBoolish(n.Expr)
		n.SetType(types.QualType{Type: c.in.Primitive(types.Bool)})
	case ast.OpBitNot, ast.OpNeg:
		n.SetType(n.Expr.Type())
	case ast.OpAddr:
		n.SetType(types.QualType{Type: c.in.Pointer(n.Expr.Type())})
	case ast.OpDeref:
		base := n.Expr.Type().Type
		if base == nil || base.Kind != types.Pointer {
			c.bag.ErrorSpan(diag.KindTypeMismatch, "cannot dereference a non-pointer", n.Span())
			return n
		}
		n.SetType(base.Pointee)
	case ast.OpInc, ast.OpDec:
		c.requireLValue(n.Expr)
		n.SetType(n.Expr.Type())
	}
	return n
}

// commonType implements the common-type promotion spec §4.4 requires for
// arithmetic and comparison BinaryOps: identical types need no
// promotion; otherwise the wider of two floats, or the wider of two
// same-signedness integers, wins. Mismatched kinds are left to coerce's
// Mismatch diagnostic rather than guessed at here.
func (c *checker) commonType(a, b types.QualType) types.QualType {
	if a.Type == b.Type {
		return types.QualType{Type: a.Type}
	}
	if a.Type == nil || b.Type == nil {
		return a
	}
	if a.Type.IsFloat() || b.Type.IsFloat() {
		if a.Type.Kind == types.F64 || b.Type.Kind == types.F64 {
			return types.QualType{Type: c.in.Primitive(types.F64)}
		}
		return types.QualType{Type: c.in.Primitive(types.F32)}
	}
	if a.Type.IsInteger() && b.Type.IsInteger() {
		if a.Type.Width() >= b.Type.Width() {
			return types.QualType{Type: a.Type}
		}
		return types.QualType{Type: b.Type}
	}
	return a
}

func (c *checker) checkBinary(n *ast.BinaryOp) ast.Expr {
	n.LHS = c.checkExpr(n.LHS)
	n.RHS = c.checkExpr(n.RHS)

	if n.Op.IsAssignment() {
		c.requireLValue(n.LHS)
		n.RHS = c.coerce(n.RHS, n.LHS.Type(), AllowImplicit)
		n.SetType(n.LHS.Type())
		return n
	}

	switch n.Op {
	case ast.OpLogAnd, ast.OpLogOr:
		c.requireBoolish(n.LHS)
		c.requireBoolish(n.RHS)
		n.SetType(types.QualType{Type: c.in.Primitive(types.Bool)})
	case ast.OpEq, ast.OpNotEq, ast.OpLess, ast.OpLessEq, ast.OpGreater, ast.OpGreaterEq:
		common := c.commonType(n.LHS.Type(), n.RHS.Type())
		n.LHS = c.coerce(n.LHS, common, AllowImplicit)
		n.RHS = c.coerce(n.RHS, common, AllowImplicit)
		n.SetType(types.QualType{Type: c.in.Primitive(types.Bool)})
	default:
		common := c.commonType(n.LHS.Type(), n.RHS.Type())
		n.LHS = c.coerce(n.LHS, common, AllowImplicit)
		n.RHS = c.coerce(n.RHS, common, AllowImplicit)
		n.SetType(common)
	}
	return n
}

// requireLValue implements spec §4.4's Assignment rule: the left operand
// must be a DeclRef to a mutable variable, a Subscript, an Access, or a
// pointer dereference (UnaryOp with Op == OpDeref).
func (c *checker) requireLValue(e ast.Expr) {
	switch n := e.(type) {
	case *ast.DeclRef:
		if n.Decl != nil && !n.Decl.DeclType().IsMut() {
			c.bag.ErrorSpan(diag.KindTypeMismatch, "assignment to an immutable variable", n.Span())
		}
	case *ast.Subscript, *ast.Access:
		// always assignable
	case *ast.UnaryOp:
		if n.Op != ast.OpDeref {
			c.bag.ErrorSpan(diag.KindTypeMismatch, "expression is not assignable", e.Span())
		}
	default:
		c.bag.ErrorSpan(diag.KindTypeMismatch, "expression is not assignable", e.Span())
	}
}
