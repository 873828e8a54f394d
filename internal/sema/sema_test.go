package sema

import (
	"testing"

	"github.com/aotlang/aotc/internal/ast"
	"github.com/aotlang/aotc/internal/diag"
	"github.com/aotlang/aotc/internal/lexer"
	"github.com/aotlang/aotc/internal/parser"
	"github.com/aotlang/aotc/internal/types"
)

// analyze parses src and runs the full sema pipeline, recovering a fatal
// diagnostic into the returned bag instead of letting it escape (mirrors
// the single recover point at the pipeline's stage boundary).
func analyze(t *testing.T, src string) (*ast.TranslationUnit, *types.Interner, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag("t.lc", src)
	bag.ClearOutputStream()
	lex := lexer.New(src, bag)
	in := types.NewInterner()
	p := parser.New(lex, bag, in, "t.lc")

	var tu *ast.TranslationUnit
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(*diag.Abort); ok {
					return
				}
				panic(r)
			}
		}()
		tu = p.Parse()
	}()
	if tu == nil {
		t.Fatalf("parse failed: %v", bag.Entries())
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(*diag.Abort); ok {
					return
				}
				panic(r)
			}
		}()
		Analyze(tu, in, bag)
	}()

	return tu, in, bag
}

func TestSymbolAnalysisResolvesDeferredStructType(t *testing.T) {
	src := `
Point :: struct {
	x: s64,
	y: s64
}

make :: (p: *Point) -> s64 {
	ret p.x;
};
`
	tu, _, bag := analyze(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Entries())
	}

	var fn *ast.Function
	for _, d := range tu.Decls {
		if f, ok := d.(*ast.Function); ok {
			fn = f
		}
	}
	if fn == nil {
		t.Fatalf("expected a function decl")
	}

	paramType := fn.Params[0].Type.Type
	if paramType.Kind != types.Pointer {
		t.Fatalf("expected pointer parameter, got %v", paramType.Kind)
	}
	if u := paramType.Pointee.Type.Underlying; u == nil || u.Kind != types.Struct {
		t.Fatalf("expected deferred Point to resolve to a struct, got %+v", u)
	}

	ret := fn.Body.Stmts[0].(*ast.Ret)
	access := ret.Expr.(*ast.Access)
	if access.Field == nil || access.Field.Name != "x" {
		t.Fatalf("expected Access bound to field x, got %+v", access.Field)
	}
}

func TestSymbolAnalysisUnresolvedNameIsFatal(t *testing.T) {
	// spec §8 scenario 5: referencing an undeclared name `y`.
	src := `
test :: () -> s64 {
	ret y;
};
`
	_, _, bag := analyze(t, src)
	if !bag.HasErrors() {
		t.Fatalf("expected an unresolved-name error")
	}
	found := false
	for _, e := range bag.Entries() {
		if e.Kind == diag.KindUnresolvedName {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a KindUnresolvedName diagnostic, got %v", bag.Entries())
	}
}

func TestSemanticAnalysisInsertsImplicitWideningCast(t *testing.T) {
	src := `
widen :: (a: s32) -> s64 {
	b :: s64 = a;
	ret b;
};
`
	tu, _, bag := analyze(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Entries())
	}
	fn := tu.Decls[0].(*ast.Function)
	decl := fn.Body.Stmts[0].(*ast.DeclStmt).Decl.(*ast.Variable)
	cast, ok := decl.Init.(*ast.Cast)
	if !ok {
		t.Fatalf("expected an implicit Cast wrapping the s32 argument, got %T", decl.Init)
	}
	if cast.Target.Type.Kind != types.I64 {
		t.Fatalf("expected cast target s64, got %v", cast.Target.Type.Kind)
	}
}

func TestSemanticAnalysisRejectsReturnTypeMismatch(t *testing.T) {
	src := `
Point :: struct { x: s64 }

bad :: () -> s64 {
	p :: Point;
	ret p;
};
`
	_, _, bag := analyze(t, src)
	if !bag.HasErrors() {
		t.Fatalf("expected a type-mismatch error returning a struct as s64")
	}
}

func TestSemanticAnalysisRejectsBreakOutsideLoop(t *testing.T) {
	src := `
test :: () -> void {
	break;
};
`
	_, _, bag := analyze(t, src)
	if !bag.HasErrors() {
		t.Fatalf("expected a control-flow error for break outside a loop")
	}
}

func TestSemanticAnalysisAllowsBreakInsideWhile(t *testing.T) {
	src := `
test :: () -> void {
	while (true) {
		break;
	};
};
`
	_, _, bag := analyze(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Entries())
	}
}

func TestSemanticAnalysisRejectsAssignmentToImmutable(t *testing.T) {
	src := `
test :: () -> void {
	x :: s64 = 1;
	x = 2;
};
`
	_, _, bag := analyze(t, src)
	if !bag.HasErrors() {
		t.Fatalf("expected an error assigning to an immutable local")
	}
}

func TestSemanticAnalysisAllowsAssignmentToMutable(t *testing.T) {
	src := `
test :: () -> void {
	x :: mut s64 = 1;
	x = 2;
};
`
	_, _, bag := analyze(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Entries())
	}
}

func TestSemanticAnalysisChecksCallArgumentCount(t *testing.T) {
	src := `
add :: (a: s64, b: s64) -> s64 {
	ret a;
};

test :: () -> s64 {
	ret add(1);
};
`
	_, _, bag := analyze(t, src)
	if !bag.HasErrors() {
		t.Fatalf("expected an argument-count mismatch error")
	}
}

func TestSemanticAnalysisValidCastBetweenIntegerAndPointer(t *testing.T) {
	src := `
test :: (p: *s64) -> u64 {
	ret cast<u64>(p);
};
`
	_, _, bag := analyze(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors casting pointer to integer: %v", bag.Entries())
	}
}
