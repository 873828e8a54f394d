// Package ir implements the CFG-shaped intermediate representation of
// spec §3.6/§4.5: a pooled, uniqued type system (reusing internal/types)
// feeding an SSA-style graph of typed Values, their Users, and the Use
// edges between them.
//
// Grounded on original_source/spbe/source/graph/Value.cpp and
// original_source/lir/source/graph/CFG.cpp: del_use/replace_all_uses_with
// are a direct translation of the C++ original's vector-splice idiom into
// Go slice operations, and CFG's add_global/add_function name-uniqueness
// checks mirror CFG.cpp's assertions (raised here as diagnostics instead
// of asserts, since this is a compiler's own user-facing error path).
package ir

import "github.com/aotlang/aotc/internal/types"

// Value is any typed node that can be the target of a Use edge.
// add_use/del_use are unexported: only Use (in this package) constructs
// or retargets edges, so every Value's use-list stays consistent with
// its actual Use endpoints (spec §4.5 invariant a).
type Value interface {
	ValueType() types.QualType
	Uses() []*Use
	addUse(u *Use)
	delUse(u *Use)
}

// ValueBase is embedded by every concrete Value kind (Instruction,
// Constant, Param, Global, BasicBlock-as-address) to supply its type and
// use-list bookkeeping.
type ValueBase struct {
	Typ  types.QualType
	uses []*Use
}

func (v *ValueBase) ValueType() types.QualType { return v.Typ }
func (v *ValueBase) Uses() []*Use              { return v.uses }

func (v *ValueBase) addUse(u *Use) { v.uses = append(v.uses, u) }

func (v *ValueBase) delUse(u *Use) {
	for i, existing := range v.uses {
		if existing == u {
			v.uses = append(v.uses[:i], v.uses[i+1:]...)
			return
		}
	}
}

// ReplaceAllUsesWith retargets every use-edge pointing at old to instead
// point at replacement (spec §4.5: "copying the use-list, then
// retargeting each edge"). old has no uses left once this returns.
func ReplaceAllUsesWith(old, replacement Value) {
	usesCopy := append([]*Use(nil), old.Uses()...)
	for _, u := range usesCopy {
		u.SetValue(replacement)
	}
}

// User is a Value that owns an ordered list of Use edges: its operands.
type User interface {
	Value
	Operands() []*Use
}

// UserBase is embedded by every concrete User kind to supply an operand
// list built with addOperand.
type UserBase struct {
	ValueBase
	operands []*Use
}

func (u *UserBase) Operands() []*Use { return u.operands }

// addOperand appends a new operand use-edge to owner pointing at v,
// registering it on v's use list (spec §4.5: constructing a Use
// registers it on the value's use list).
func (u *UserBase) addOperand(owner User, v Value) *Use {
	use := &Use{user: owner}
	use.value = v
	v.addUse(use)
	u.operands = append(u.operands, use)
	return use
}

// Use is a bidirectional edge between a Value and the User that
// references it (spec §3.6/§4.5), grounded on
// original_source/spbe/include/graph/Use.hpp.
type Use struct {
	value Value
	user  User
}

// Value returns the value this use edge currently points at.
func (u *Use) Value() Value { return u.value }

// User returns the user that owns this use edge.
func (u *Use) User() User { return u.user }

// SetValue retargets the edge to v: a no-op if v is already the current
// value, otherwise deregistering from the old value and registering on
// the new one (spec §4.5). v may be nil to detach the edge entirely
// (e.g. when deleting a dead instruction), leaving the Use unregistered
// on any value.
func (u *Use) SetValue(v Value) {
	if u.value == v {
		return
	}
	if u.value != nil {
		u.value.delUse(u)
	}
	u.value = v
	if v != nil {
		v.addUse(u)
	}
}
