package ir

import (
	"testing"

	"github.com/aotlang/aotc/internal/diag"
	"github.com/aotlang/aotc/internal/types"
	"github.com/gkampitakis/go-snaps/snaps"
)

func newTestCFG(t *testing.T) (*CFG, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag("t.lc", "")
	bag.ClearOutputStream()
	in := types.NewInterner()
	return NewCFG(in, bag), bag
}

func TestUseConstructionRegistersOnValueUseList(t *testing.T) {
	c, _ := newTestCFG(t)
	s64 := c.Types.Primitive(types.I64)
	voidT := types.QualType{Type: c.Types.Primitive(types.Void)}

	fn := c.AddFunction("f", c.Types.Function(c.Types.Primitive(types.Void), nil))
	block := fn.AddBlock("entry")

	one := c.Int(s64, 1)
	two := c.Int(s64, 2)
	add := block.NewBinary(OpAdd, "sum", types.QualType{Type: s64}, one, two)

	if len(one.Uses()) != 1 || one.Uses()[0].User() != add {
		t.Fatalf("expected one to have exactly one use, owned by add")
	}
	if len(two.Uses()) != 1 || two.Uses()[0].User() != add {
		t.Fatalf("expected two to have exactly one use, owned by add")
	}
	if len(add.Operands()) != 2 {
		t.Fatalf("expected add to have 2 operands, got %d", len(add.Operands()))
	}

	block.NewRetVoid(voidT)
}

func TestReplaceAllUsesWithRetargetsEveryEdgeAndEmptiesOld(t *testing.T) {
	c, _ := newTestCFG(t)
	s64 := c.Types.Primitive(types.I64)

	fn := c.AddFunction("f", c.Types.Function(c.Types.Primitive(types.Void), nil))
	block := fn.AddBlock("entry")

	old := c.Int(s64, 1)
	other := c.Int(s64, 99)
	sumA := block.NewBinary(OpAdd, "a", types.QualType{Type: s64}, old, other)
	sumB := block.NewBinary(OpMul, "b", types.QualType{Type: s64}, old, other)

	if len(old.Uses()) != 2 {
		t.Fatalf("expected old to start with 2 uses, got %d", len(old.Uses()))
	}

	replacement := c.Int(s64, 42)
	ReplaceAllUsesWith(old, replacement)

	if len(old.Uses()) != 0 {
		t.Fatalf("expected old to have zero uses after replacement, got %d", len(old.Uses()))
	}
	if len(replacement.Uses()) != 2 {
		t.Fatalf("expected replacement to pick up both uses, got %d", len(replacement.Uses()))
	}
	if sumA.Operands()[0].Value() != replacement {
		t.Fatalf("expected sumA's first operand to now be replacement")
	}
	if sumB.Operands()[0].Value() != replacement {
		t.Fatalf("expected sumB's first operand to now be replacement")
	}
}

func TestIntConstantsPoolByWidthAndValue(t *testing.T) {
	c, _ := newTestCFG(t)
	s64 := c.Types.Primitive(types.I64)
	s32 := c.Types.Primitive(types.I32)

	a := c.Int(s64, 7)
	b := c.Int(s64, 7)
	if a != b {
		t.Fatalf("expected identical (type, value) integer constants to pool to the same object")
	}

	diffType := c.Int(s32, 7)
	if a == diffType {
		t.Fatalf("expected different-width integer constants not to pool together")
	}

	diffValue := c.Int(s64, 8)
	if a == diffValue {
		t.Fatalf("expected different-value integer constants not to pool together")
	}
}

func TestFloatConstantsPoolByBitPattern(t *testing.T) {
	c, _ := newTestCFG(t)
	f64 := c.Types.Primitive(types.F64)

	posZero := c.Float(f64, 0.0)
	negZero := c.Float(f64, negZeroF64())
	if posZero == negZero {
		t.Fatalf("expected +0.0 and -0.0 to pool distinctly by bit pattern")
	}
}

func negZeroF64() float64 {
	return -0.0 * negOneF64()
}

func negOneF64() float64 { return -1.0 }

func TestBlockAddressesPoolByBlockIdentityNotName(t *testing.T) {
	c, _ := newTestCFG(t)
	voidFn := c.Types.Function(c.Types.Primitive(types.Void), nil)

	f1 := c.AddFunction("f1", voidFn)
	f2 := c.AddFunction("f2", voidFn)
	entry1 := f1.AddBlock("entry")
	entry2 := f2.AddBlock("entry")

	addr1 := c.BlockAddress(entry1)
	addr2 := c.BlockAddress(entry2)
	if addr1 == addr2 {
		t.Fatalf("expected two different functions' same-named blocks to pool to distinct constants")
	}

	again := c.BlockAddress(entry1)
	if again != addr1 {
		t.Fatalf("expected repeated BlockAddress(entry1) to return the same pooled constant")
	}
}

func TestAddGlobalRejectsDuplicateNameAcrossGlobalsAndFunctions(t *testing.T) {
	c, bag := newTestCFG(t)
	voidT := types.QualType{Type: c.Types.Primitive(types.Void)}

	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(*diag.Abort); !ok {
					panic(r)
				}
			}
		}()
		c.AddFunction("shared", c.Types.Function(c.Types.Primitive(types.Void), nil))
		c.AddGlobal("shared", voidT)
	}()

	if !bag.HasErrors() {
		t.Fatalf("expected a name-conflict diagnostic for a global reusing a function's name")
	}
}

func TestTrivialDCERemovesUnusedArithmeticButKeepsSideEffects(t *testing.T) {
	c, _ := newTestCFG(t)
	s64 := c.Types.Primitive(types.I64)
	voidT := types.QualType{Type: c.Types.Primitive(types.Void)}

	fn := c.AddFunction("f", c.Types.Function(c.Types.Primitive(types.Void), nil))
	block := fn.AddBlock("entry")

	one := c.Int(s64, 1)
	two := c.Int(s64, 2)
	dead := block.NewBinary(OpAdd, "dead", types.QualType{Type: s64}, one, two)
	slot := fn.AddLocal("x", types.QualType{Type: s64}, 8)
	block.NewStore(slot, one, voidT)
	block.NewRetVoid(voidT)

	if dead.IsTriviallyDead() == false {
		t.Fatalf("expected the unused add to be trivially dead before DCE")
	}

	removed := RunTrivialDCE(c)
	if removed != 1 {
		t.Fatalf("expected exactly 1 instruction removed, got %d", removed)
	}
	if len(block.Instructions) != 2 {
		t.Fatalf("expected store and ret to survive DCE, got %d instructions", len(block.Instructions))
	}
	if len(one.Uses()) != 1 {
		t.Fatalf("expected one's use from the dead add to be dropped, leaving only the store's use, got %d", len(one.Uses()))
	}
}

func TestDumpProducesParseableJSONWithFunctionNames(t *testing.T) {
	c, _ := newTestCFG(t)
	voidT := types.QualType{Type: c.Types.Primitive(types.Void)}

	fn := c.AddFunction("main", c.Types.Function(c.Types.Primitive(types.Void), nil))
	block := fn.AddBlock("entry")
	block.NewRetVoid(voidT)

	doc, err := c.Dump()
	if err != nil {
		t.Fatalf("Dump() error: %v", err)
	}
	names := FunctionNames(doc)
	if len(names) != 1 || names[0] != "main" {
		t.Fatalf("expected FunctionNames to report [main], got %v", names)
	}
}

func TestDumpMatchesSnapshotForAFunctionWithAnArithmeticBody(t *testing.T) {
	c, _ := newTestCFG(t)
	s64 := c.Types.Primitive(types.I64)
	voidT := types.QualType{Type: c.Types.Primitive(types.Void)}

	fn := c.AddFunction("add", c.Types.Function(s64, []*types.Type{s64, s64}))
	block := fn.AddBlock("entry")
	a := c.Int(s64, 1)
	b := c.Int(s64, 2)
	block.NewBinary(OpAdd, "sum", types.QualType{Type: s64}, a, b)
	block.NewRetVoid(voidT)

	doc, err := c.Dump()
	if err != nil {
		t.Fatalf("Dump() error: %v", err)
	}
	snaps.MatchSnapshot(t, "add_cfg_dump", string(doc))
}
