package ir

import (
	"fmt"

	"github.com/aotlang/aotc/internal/diag"
	"github.com/aotlang/aotc/internal/types"
)

// Function owns an ordered list of basic blocks and an ordered list of
// locals (spec §3.6: "Function: an ordered list of basic blocks and an
// ordered list of locals; owns both"). A Function is itself a Value so a
// Call instruction's callee operand can be a Use edge pointing at it.
type Function struct {
	ValueBase
	Name   string
	Params []*Param

	blocks []*BasicBlock
	locals []*Local

	cfg *CFG
}

// Param is a function argument: a typed Value bound once per call, never
// itself an operand owner.
type Param struct {
	ValueBase
	Name string
}

// Blocks returns the function's basic blocks in emission order.
func (f *Function) Blocks() []*BasicBlock { return f.blocks }

// Locals returns the function's stack slots in declaration order.
func (f *Function) Locals() []*Local { return f.locals }

// AddBlock appends a new, empty basic block named name to the function.
// Block names are unique within one function; a collision is a fatal
// diagnostic.
func (f *Function) AddBlock(name string) *BasicBlock {
	for _, b := range f.blocks {
		if b.Name == name {
			f.cfg.bag.Fatal(diag.KindNameConflict, "duplicate basic block name: "+name)
			return nil
		}
	}
	b := &BasicBlock{Name: name, fn: f}
	f.blocks = append(f.blocks, b)
	return b
}

// AddLocal appends a new stack slot of the given pointee type and
// alignment to the function, returning a pointer-typed Value naming it.
func (f *Function) AddLocal(name string, pointeeType types.QualType, align int) *Local {
	l := &Local{
		ValueBase: ValueBase{Typ: types.QualType{Type: f.cfg.Types.Pointer(pointeeType)}},
		Name:      name,
		Align:     align,
	}
	f.locals = append(f.locals, l)
	return l
}

// BasicBlock is a straight-line sequence of Instructions ending (once
// built) in exactly one terminator (Br, CondBr, or Ret). It is not itself
// a Value; its address, when needed as a branch operand, is obtained via
// CFG.BlockAddress.
type BasicBlock struct {
	Name         string
	Instructions []*Instruction
	fn           *Function
}

// Function returns the block's owning function.
func (b *BasicBlock) Function() *Function { return b.fn }

// Append adds inst to the end of the block's instruction list and records
// the block as its owner.
func (b *BasicBlock) Append(inst *Instruction) *Instruction {
	inst.block = b
	b.Instructions = append(b.Instructions, inst)
	return inst
}

// Terminator returns the block's last instruction, or nil if the block is
// still empty.
func (b *BasicBlock) Terminator() *Instruction {
	if len(b.Instructions) == 0 {
		return nil
	}
	return b.Instructions[len(b.Instructions)-1]
}

// Local is a stack slot owned by a Function: a pointer-typed Value with an
// alignment hint (spec §3.6: "Local: a stack slot").
type Local struct {
	ValueBase
	Name  string
	Align int
}

func (l *Local) String() string { return fmt.Sprintf("%%%s", l.Name) }
