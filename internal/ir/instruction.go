package ir

import "github.com/aotlang/aotc/internal/types"

// Opcode discriminates the closed set of instruction kinds a lowered
// function body is built from. Spec §4.5 specifies the Value/User/Use
// graph's structural operations but not a lowering algorithm or opcode
// table; this set is the minimal closure needed to express every surface
// construct spec §4.4 type-checks: arithmetic and comparison BinaryOps,
// Load/Store for Access/Subscript/DeclRef memory operations, Call, the
// three block terminators, and Phi for join points a register allocator
// needs live ranges across.
type Opcode int

const (
	OpAdd Opcode = iota
	OpSub
	OpMul
	OpDiv
	OpICmpEQ
	OpICmpNE
	OpICmpLT
	OpICmpLE
	OpICmpGT
	OpICmpGE
	OpAnd
	OpOr
	OpNot
	OpNeg
	OpCast
	OpLoad
	OpStore
	OpGetElementPtr
	OpCall
	OpBr
	OpCondBr
	OpRet
	OpRetVoid
	OpPhi
)

var opcodeNames = map[Opcode]string{
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div",
	OpICmpEQ: "icmp.eq", OpICmpNE: "icmp.ne", OpICmpLT: "icmp.lt",
	OpICmpLE: "icmp.le", OpICmpGT: "icmp.gt", OpICmpGE: "icmp.ge",
	OpAnd: "and", OpOr: "or", OpNot: "not", OpNeg: "neg", OpCast: "cast",
	OpLoad: "load", OpStore: "store", OpGetElementPtr: "gep",
	OpCall: "call", OpBr: "br", OpCondBr: "condbr",
	OpRet: "ret", OpRetVoid: "ret.void", OpPhi: "phi",
}

func (op Opcode) String() string {
	if n, ok := opcodeNames[op]; ok {
		return n
	}
	return "unknown"
}

// Instruction is a single operation within a BasicBlock: a User whose
// operands are its Use edges and whose result (if any) is itself a Value
// other instructions may reference (spec §3.6/§4.5).
type Instruction struct {
	UserBase
	Op    Opcode
	Name  string // result name used by the textual/JSON dump
	block *BasicBlock

	// Call
	Callee Value

	// GetElementPtr
	Index int64
}

// Block returns the instruction's owning basic block.
func (i *Instruction) Block() *BasicBlock { return i.block }

func newInstruction(op Opcode, t types.QualType) *Instruction {
	return &Instruction{UserBase: UserBase{ValueBase: ValueBase{Typ: t}}, Op: op}
}

// NewBinary builds a binary arithmetic or comparison instruction over lhs
// and rhs, appending it to b.
func (b *BasicBlock) NewBinary(op Opcode, name string, resultType types.QualType, lhs, rhs Value) *Instruction {
	inst := newInstruction(op, resultType)
	inst.Name = name
	inst.addOperand(inst, lhs)
	inst.addOperand(inst, rhs)
	return b.Append(inst)
}

// NewUnary builds a Not/Neg/Cast instruction over operand, appending it to b.
func (b *BasicBlock) NewUnary(op Opcode, name string, resultType types.QualType, operand Value) *Instruction {
	inst := newInstruction(op, resultType)
	inst.Name = name
	inst.addOperand(inst, operand)
	return b.Append(inst)
}

// NewLoad builds a Load through ptr, appending it to b.
func (b *BasicBlock) NewLoad(name string, resultType types.QualType, ptr Value) *Instruction {
	inst := newInstruction(OpLoad, resultType)
	inst.Name = name
	inst.addOperand(inst, ptr)
	return b.Append(inst)
}

// NewStore builds a Store of value through ptr, appending it to b. Store
// has no result; its type is void.
func (b *BasicBlock) NewStore(ptr, value Value, voidType types.QualType) *Instruction {
	inst := newInstruction(OpStore, voidType)
	inst.addOperand(inst, ptr)
	inst.addOperand(inst, value)
	return b.Append(inst)
}

// NewGetElementPtr builds a pointer-arithmetic instruction over base at a
// fixed field/element index, appending it to b.
func (b *BasicBlock) NewGetElementPtr(name string, resultType types.QualType, base Value, index int64) *Instruction {
	inst := newInstruction(OpGetElementPtr, resultType)
	inst.Name = name
	inst.Index = index
	inst.addOperand(inst, base)
	return b.Append(inst)
}

// NewCall builds a call to callee with args, appending it to b.
func (b *BasicBlock) NewCall(name string, resultType types.QualType, callee Value, args []Value) *Instruction {
	inst := newInstruction(OpCall, resultType)
	inst.Name = name
	inst.Callee = callee
	inst.addOperand(inst, callee)
	for _, a := range args {
		inst.addOperand(inst, a)
	}
	return b.Append(inst)
}

// NewBr builds an unconditional branch to target's block address,
// terminating b.
func (b *BasicBlock) NewBr(target *Constant, voidType types.QualType) *Instruction {
	inst := newInstruction(OpBr, voidType)
	inst.addOperand(inst, target)
	return b.Append(inst)
}

// NewCondBr builds a conditional branch on cond to thenTarget or
// elseTarget, terminating b.
func (b *BasicBlock) NewCondBr(cond Value, thenTarget, elseTarget *Constant, voidType types.QualType) *Instruction {
	inst := newInstruction(OpCondBr, voidType)
	inst.addOperand(inst, cond)
	inst.addOperand(inst, thenTarget)
	inst.addOperand(inst, elseTarget)
	return b.Append(inst)
}

// NewRet builds a value-returning terminator, terminating b.
func (b *BasicBlock) NewRet(value Value, voidType types.QualType) *Instruction {
	inst := newInstruction(OpRet, voidType)
	inst.addOperand(inst, value)
	return b.Append(inst)
}

// NewRetVoid builds a bare `ret;` terminator, terminating b.
func (b *BasicBlock) NewRetVoid(voidType types.QualType) *Instruction {
	return b.Append(newInstruction(OpRetVoid, voidType))
}

// NewPhi builds an (initially operand-less) phi node of the given type;
// incoming values are added with AddIncoming once every predecessor block
// is known.
func (b *BasicBlock) NewPhi(name string, resultType types.QualType) *Instruction {
	inst := newInstruction(OpPhi, resultType)
	inst.Name = name
	return b.Append(inst)
}

// AddIncoming appends one more incoming value to a Phi instruction.
func (i *Instruction) AddIncoming(value Value) {
	i.addOperand(i, value)
}

// IsTriviallyDead reports whether the instruction has no uses and no
// observable side effect, matching original_source/spbe/source/analysis/
// TrivialDCEPass.cpp's `is_trivially_dead` predicate: terminators, Store,
// and Call are never trivially dead even with zero uses (a call may have
// side effects the IR does not model).
func (i *Instruction) IsTriviallyDead() bool {
	if len(i.Uses()) > 0 {
		return false
	}
	switch i.Op {
	case OpStore, OpCall, OpBr, OpCondBr, OpRet, OpRetVoid:
		return false
	default:
		return true
	}
}
