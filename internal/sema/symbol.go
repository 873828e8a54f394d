package sema

import (
	"github.com/aotlang/aotc/internal/ast"
	"github.com/aotlang/aotc/internal/diag"
	"github.com/aotlang/aotc/internal/scope"
	"github.com/aotlang/aotc/internal/types"
)

// SymbolAnalysisPass implements spec §4.3: a shallow pass resolving every
// Deferred type placeholder against the root scope, followed by a deep
// walk binding DeclRef and Access nodes to the declaration they name.
type SymbolAnalysisPass struct{}

func (SymbolAnalysisPass) Name() string { return "symbol-analysis" }

func (SymbolAnalysisPass) Run(tu *ast.TranslationUnit, in *types.Interner, bag *diag.Bag) {
	root, _ := tu.Scope.(*scope.Scope)
	if root == nil {
		bag.Fatal(diag.KindUnresolvedName, "symbol analysis: translation unit has no scope")
	}

	resolveDeferredTypes(root, in, bag)

	b := &binder{bag: bag, cur: root}
	for _, d := range tu.Decls {
		b.bindDecl(d)
	}
}

// resolveDeferredTypes is symbol analysis Pass 1: every type name the
// parser could not resolve on sight (it ran before the declaring struct
// or enum was necessarily seen) is looked up now that the whole file has
// been parsed and every top-level name is bound in root. Unknown or
// non-type names are a fatal diagnostic (spec §4.3).
func resolveDeferredTypes(root *scope.Scope, in *types.Interner, bag *diag.Bag) {
	for _, deferred := range in.Deferreds() {
		if deferred.Underlying != nil {
			continue // already resolved (e.g. shared with an earlier unit)
		}
		decl, ok := root.Lookup(deferred.DeferredName)
		if !ok {
			bag.Fatal(diag.KindUnresolvedName, "unresolved type name: "+deferred.DeferredName)
			return
		}
		typeDecl, ok := decl.(ast.TypeDecl)
		if !ok {
			bag.Fatal(diag.KindUnresolvedName, deferred.DeferredName+" does not name a type")
			return
		}
		in.Resolve(deferred, typeDecl.ResolvedType())
	}
}

// binder is symbol analysis Pass 2: a deep walk that enters Function and
// Block scopes as it descends, binding every DeclRef to the ValueDecl its
// name resolves to in the current scope chain, and every Access to the
// Field it names on its base's struct type.
type binder struct {
	bag *diag.Bag
	cur *scope.Scope
}

func (b *binder) bindDecl(d ast.Decl) {
	switch n := d.(type) {
	case *ast.Function:
		if n.Body == nil {
			return
		}
		fnScope, _ := n.Scope.(*scope.Scope)
		if fnScope == nil {
			fnScope = b.cur
		}
		outer := b.cur
		b.cur = fnScope
		b.bindStmt(n.Body)
		b.cur = outer
	case *ast.Variable:
		if n.Init != nil {
			b.bindExpr(n.Init)
		}
	case *ast.Struct, *ast.Enum, *ast.Alias, *ast.Load, *ast.Parameter, *ast.Field, *ast.Variant:
		// introduce no further names to bind
	}
}

func (b *binder) bindStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		blockScope, _ := n.Scope.(*scope.Scope)
		outer := b.cur
		if blockScope != nil {
			b.cur = blockScope
		}
		for _, inner := range n.Stmts {
			b.bindStmt(inner)
		}
		b.cur = outer
	case *ast.DeclStmt:
		b.bindDecl(n.Decl)
	case *ast.ExprStmt:
		b.bindExpr(n.Expr)
	case *ast.Ret:
		if n.Expr != nil {
			b.bindExpr(n.Expr)
		}
	case *ast.If:
		b.bindExpr(n.Cond)
		b.bindStmt(n.Then)
		if n.Else != nil {
			b.bindStmt(n.Else)
		}
	case *ast.While:
		b.bindExpr(n.Cond)
		if n.Body != nil {
			b.bindStmt(n.Body)
		}
	case *ast.Asm:
		for _, arg := range n.Args {
			b.bindExpr(arg)
		}
	case *ast.Break, *ast.Continue:
		// no names
	}
}

func (b *binder) bindExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.DeclRef:
		decl, ok := b.cur.Lookup(n.Name)
		if !ok {
			b.bag.FatalSpan(diag.KindUnresolvedName, "unresolved name: "+n.Name, n.Span())
			return
		}
		vd, ok := decl.(ast.ValueDecl)
		if !ok {
			b.bag.FatalSpan(diag.KindUnresolvedName, n.Name+" does not name a value", n.Span())
			return
		}
		n.Decl = vd
		n.SetType(vd.DeclType())
	case *ast.Access:
		b.bindExpr(n.Base)
		for _, f := range structFields(n.Base.Type()) {
			if f.Name == n.Name {
				n.Field = f
				n.SetType(f.Type)
				return
			}
		}
		b.bag.FatalSpan(diag.KindUnresolvedName, "unknown field: "+n.Name, n.Span())
	case *ast.Call:
		b.bindExpr(n.Callee)
		for _, a := range n.Args {
			b.bindExpr(a)
		}
	case *ast.Subscript:
		b.bindExpr(n.Base)
		b.bindExpr(n.Index)
	case *ast.BinaryOp:
		b.bindExpr(n.LHS)
		b.bindExpr(n.RHS)
	case *ast.UnaryOp:
		b.bindExpr(n.Expr)
	case *ast.Cast:
		b.bindExpr(n.Expr)
	case *ast.Paren:
		b.bindExpr(n.Expr)
	case *ast.BoolLit, *ast.IntegerLit, *ast.FloatLit, *ast.CharLit, *ast.StringLit, *ast.NullLit, *ast.Sizeof:
		// no names to bind
	}
}

// structFields returns the field list of t's struct type, unwrapping a
// single layer of pointer indirection and a resolved Deferred/Alias, or
// nil if t does not ultimately name a struct.
func structFields(t types.QualType) []*ast.Field {
	underlying := underlyingType(t.Type)
	if underlying == nil || underlying.Kind != types.Struct {
		return nil
	}
	decl, _ := underlying.Declaration.(*ast.Struct)
	if decl == nil {
		return nil
	}
	return decl.Fields
}

// underlyingType strips one layer of pointer indirection, then follows
// Deferred/Alias Underlying links, to reach the struct/enum type a field
// access or subscript actually operates on.
func underlyingType(t *types.Type) *types.Type {
	if t == nil {
		return nil
	}
	if t.Kind == types.Pointer {
		t = t.Pointee.Type
	}
	for t != nil && (t.Kind == types.Deferred || t.Kind == types.Alias) {
		t = t.Underlying
	}
	return t
}
