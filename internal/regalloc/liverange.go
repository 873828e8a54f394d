package regalloc

// LiveRange is the positional interval over which a virtual register is
// live, pre- and post-allocation (spec §3.7). Grounded on
// RegisterAllocator.hpp's `LiveRange` struct.
type LiveRange struct {
	// Reg is the virtual register this range represents (still set even
	// for a range pre-colored to a physical register).
	Reg Register

	// Alloc is the physical register assigned over this range, or
	// NoRegister before allocation runs.
	Alloc Register

	Start, End uint32

	Class RegisterClass

	// Killed marks a range as dead: it should no longer be extended. Not
	// consulted by the allocator itself; callers set it once a value's
	// last use has been lowered.
	Killed bool
}

// OverlapsPoint reports whether pos falls strictly inside the range.
func (r LiveRange) OverlapsPoint(pos uint32) bool {
	return r.Start < pos && pos < r.End
}

// Overlaps reports whether [start, end] overlaps this range at all (spec
// §3.7: "overlaps(a,b) ↔ start < b.end ∧ end > b.start").
func (r LiveRange) Overlaps(start, end uint32) bool {
	return r.Start < end && r.End > start
}
