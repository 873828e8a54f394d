// Package regalloc implements the linear-scan register allocator of spec
// §3.7/§4.6, grounded on original_source/lir/source/machine/
// RegisterAllocator.cpp and original_source/spbe/include/spbe/machine/
// RegisterAllocator.hpp.
package regalloc

// RegisterClass is the closed set of register classes a LiveRange can be
// allocated from (spec §3.7: "initially {GeneralPurpose, FloatingPoint}").
type RegisterClass int

const (
	GeneralPurpose RegisterClass = iota
	FloatingPoint
)

// regKind distinguishes an unassigned register from a physical or virtual
// one. Its zero value is regNone, so a zero-value Register is NoRegister
// without any constructor call — a fresh LiveRange literal starts
// unallocated exactly as spec §3.7 describes.
type regKind int

const (
	regNone regKind = iota
	regPhysical
	regVirtual
)

// Register is tagged as physical (from a fixed target set, with class
// membership) or virtual (a fresh id per function), per spec §3.7.
type Register struct {
	Class RegisterClass
	kind  regKind
	ID    int
}

// NoRegister is the sentinel meaning "not yet allocated" (spec §3.7:
// "alloc: Register (NoRegister if unassigned)"). It is the zero value of
// Register, so an unassigned LiveRange needs no explicit initialization.
var NoRegister = Register{}

// Physical returns the nth physical register of class cls, usable as a
// pool entry or a pre-coloring.
func Physical(cls RegisterClass, id int) Register {
	return Register{Class: cls, kind: regPhysical, ID: id}
}

// Virtual returns a fresh virtual register of class cls awaiting
// allocation.
func Virtual(cls RegisterClass, id int) Register {
	return Register{Class: cls, kind: regVirtual, ID: id}
}

func (r Register) IsNoRegister() bool { return r.kind == regNone }
func (r Register) IsPhysical() bool   { return r.kind == regPhysical }
func (r Register) IsVirtual() bool    { return r.kind == regVirtual }

// Equal compares two registers by (kind, class, id); two NoRegister
// values are always equal to each other.
func (r Register) Equal(other Register) bool {
	if r.kind == regNone && other.kind == regNone {
		return true
	}
	return r.kind == other.kind && r.Class == other.Class && r.ID == other.ID
}
