package regalloc

import "testing"

func gpPool(n int) []Register {
	regs := make([]Register, n)
	for i := range regs {
		regs[i] = Physical(GeneralPurpose, i)
	}
	return regs
}

// TestLinearScanThreeRangesExpireBeforeReuse exercises spec §8 scenario 6
// exactly: three GP ranges [0,10], [5,15], [20,30] over pool
// [RAX, RCX, RDX] expect RAX, RCX, RAX — the first range's register frees
// up again once its interval ends before the third range starts.
func TestLinearScanThreeRangesExpireBeforeReuse(t *testing.T) {
	rax := Physical(GeneralPurpose, 0)
	rcx := Physical(GeneralPurpose, 1)
	rdx := Physical(GeneralPurpose, 2)

	pool := map[RegisterClass][]Register{
		GeneralPurpose: {rax, rcx, rdx},
	}

	r1 := &LiveRange{Start: 0, End: 10, Class: GeneralPurpose}
	r2 := &LiveRange{Start: 5, End: 15, Class: GeneralPurpose}
	r3 := &LiveRange{Start: 20, End: 30, Class: GeneralPurpose}

	a := NewAllocator(pool, []*LiveRange{r1, r2, r3})
	a.Run()

	if len(a.Failed) != 0 {
		t.Fatalf("expected no allocation failures, got %d", len(a.Failed))
	}
	if !r1.Alloc.Equal(rax) {
		t.Fatalf("expected r1 to get RAX, got %+v", r1.Alloc)
	}
	if !r2.Alloc.Equal(rcx) {
		t.Fatalf("expected r2 to get RCX, got %+v", r2.Alloc)
	}
	if !r3.Alloc.Equal(rax) {
		t.Fatalf("expected r3 to reuse RAX once r1 expires, got %+v", r3.Alloc)
	}
}

func TestNoTwoOverlappingRangesShareAPhysicalRegister(t *testing.T) {
	pool := map[RegisterClass][]Register{
		GeneralPurpose: gpPool(2),
	}

	r1 := &LiveRange{Start: 0, End: 20, Class: GeneralPurpose}
	r2 := &LiveRange{Start: 5, End: 15, Class: GeneralPurpose}

	a := NewAllocator(pool, []*LiveRange{r1, r2})
	a.Run()

	if r1.Alloc.Equal(r2.Alloc) {
		t.Fatalf("expected overlapping ranges to receive different registers, both got %+v", r1.Alloc)
	}
}

func TestPreColoredRangeBlocksOverlappingAllocation(t *testing.T) {
	rax := Physical(GeneralPurpose, 0)
	rcx := Physical(GeneralPurpose, 1)
	pool := map[RegisterClass][]Register{
		GeneralPurpose: {rax, rcx},
	}

	preColored := &LiveRange{Start: 0, End: 10, Class: GeneralPurpose, Alloc: rax}
	other := &LiveRange{Start: 5, End: 15, Class: GeneralPurpose}

	a := NewAllocator(pool, []*LiveRange{preColored, other})
	a.Run()

	if other.Alloc.Equal(rax) {
		t.Fatalf("expected the pre-colored RAX to be refused to an overlapping range")
	}
	if !other.Alloc.Equal(rcx) {
		t.Fatalf("expected the overlapping range to fall back to RCX, got %+v", other.Alloc)
	}
}

func TestAllocationFailsWhenPoolIsExhausted(t *testing.T) {
	pool := map[RegisterClass][]Register{
		GeneralPurpose: gpPool(1),
	}

	r1 := &LiveRange{Start: 0, End: 10, Class: GeneralPurpose}
	r2 := &LiveRange{Start: 5, End: 15, Class: GeneralPurpose}

	a := NewAllocator(pool, []*LiveRange{r1, r2})
	a.Run()

	if len(a.Failed) != 1 {
		t.Fatalf("expected exactly one allocation failure, got %d", len(a.Failed))
	}
	if a.Failed[0] != r2 {
		t.Fatalf("expected r2 to be the one that failed to allocate")
	}
}
