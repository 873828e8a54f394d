package regalloc

// Allocator runs linear-scan register allocation over a list of
// LiveRanges already sorted by Start (spec §4.6). Grounded on
// RegisterAllocator.cpp's is_available/expire_intervals/assign_register/
// run; the C++ original's `assert(range.alloc != NoRegister && "failed to
// allocate register!")` becomes a recorded Failed slice here, since
// spilling is explicitly out of scope (spec §4.6) and a compiler core must
// report rather than abort the process on allocation failure.
type Allocator struct {
	pool   map[RegisterClass][]Register
	ranges []*LiveRange
	active []*LiveRange

	// Failed collects every range the pool could not satisfy.
	Failed []*LiveRange
}

// NewAllocator builds an allocator over ranges (assumed pre-sorted by
// Start; ties keep their input order per spec §4.6) using pool as the
// per-class ordered list of physical registers, the allocation
// preference order.
func NewAllocator(pool map[RegisterClass][]Register, ranges []*LiveRange) *Allocator {
	return &Allocator{pool: pool, ranges: ranges}
}

// isAvailable reports whether reg is free across the whole range list for
// [start, end]: no range anywhere in m_ranges may already hold reg and
// overlap the probed interval, not just the currently active set. This is
// a direct translation of RegisterAllocator.cpp's is_available, which
// scans m_ranges (not m_active) for exactly this reason — a later,
// not-yet-processed range can still collide with an earlier pre-colored
// one.
func (a *Allocator) isAvailable(reg Register, start, end uint32) bool {
	for _, r := range a.ranges {
		if r.Alloc.Equal(reg) && r.Overlaps(start, end) {
			return false
		}
	}
	return true
}

// expireIntervals drops from the active set every range whose End
// precedes curr's Start: those registers are free again.
func (a *Allocator) expireIntervals(curr *LiveRange) {
	kept := a.active[:0]
	for _, r := range a.active {
		if r.End >= curr.Start {
			kept = append(kept, r)
		}
	}
	a.active = kept
}

// assignRegister picks the first physical register in curr's class pool
// that isAvailable over curr's interval. Leaves curr.Alloc as NoRegister
// (and records curr in Failed) if the pool is exhausted.
func (a *Allocator) assignRegister(curr *LiveRange) {
	for _, reg := range a.pool[curr.Class] {
		if a.isAvailable(reg, curr.Start, curr.End) {
			curr.Alloc = reg
			return
		}
	}
	a.Failed = append(a.Failed, curr)
}

// Run performs the allocation pass (spec §4.6 algorithm): for each range
// in Start order, expire intervals that have ended, assign a register if
// one isn't already pre-colored, then add the range to the active set.
func (a *Allocator) Run() {
	for _, curr := range a.ranges {
		a.expireIntervals(curr)

		if curr.Alloc.IsNoRegister() {
			a.assignRegister(curr)
		}

		a.active = append(a.active, curr)
	}
}
