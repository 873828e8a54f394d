package types

import "testing"

func TestPrimitivesArePooled(t *testing.T) {
	in := NewInterner()
	if in.Primitive(Void) != in.Primitive(Void) {
		t.Fatalf("Void should be a single pooled handle")
	}
	if in.Primitive(I64) == in.Primitive(I32) {
		t.Fatalf("distinct primitive kinds must not share a handle")
	}
}

func TestPointerPooling(t *testing.T) {
	in := NewInterner()
	voidT := QualType{Type: in.Primitive(Void)}
	p1 := in.Pointer(voidT)
	p2 := in.Pointer(voidT)
	if p1 != p2 {
		t.Fatalf("Pointer(void) called twice must return the same handle")
	}
	p3 := in.Pointer(QualType{Type: in.Primitive(Bool)})
	if p1 == p3 {
		t.Fatalf("pointers to different pointees must not share a handle")
	}
}

func TestPointerQualifierIsPartOfPoolingKey(t *testing.T) {
	in := NewInterner()
	voidT := in.Primitive(Void)
	plain := in.Pointer(QualType{Type: voidT})
	mut := in.Pointer(QualType{Type: voidT, Qual: QualMut})
	if plain == mut {
		t.Fatalf("*void and *mut void must not share a handle")
	}
}

func TestArrayPoolingBySizeAndElement(t *testing.T) {
	in := NewInterner()
	i32 := in.Primitive(I32)
	a1 := in.Array(i32, 4)
	a2 := in.Array(i32, 4)
	if a1 != a2 {
		t.Fatalf("Array(i32, 4) called twice must return the same handle")
	}
	a3 := in.Array(i32, 8)
	if a1 == a3 {
		t.Fatalf("arrays of different size must not share a handle")
	}
}

func TestFunctionPoolingBySignature(t *testing.T) {
	in := NewInterner()
	i32 := in.Primitive(I32)
	voidT := in.Primitive(Void)
	f1 := in.Function(voidT, []*Type{i32, i32})
	f2 := in.Function(voidT, []*Type{i32, i32})
	if f1 != f2 {
		t.Fatalf("identical signatures must share a handle")
	}
	f3 := in.Function(voidT, []*Type{i32})
	if f1 == f3 {
		t.Fatalf("different arities must not share a handle")
	}
}

func TestStructEnumAliasPoolingByName(t *testing.T) {
	in := NewInterner()
	s1 := in.Struct("Point", nil)
	s2 := in.Struct("Point", nil)
	if s1 != s2 {
		t.Fatalf("Struct(\"Point\") called twice must return the same handle")
	}
	other := in.Struct("Vector", nil)
	if s1 == other {
		t.Fatalf("differently named structs must not share a handle")
	}
}

func TestDeferredResolutionIsObservedByAllHolders(t *testing.T) {
	in := NewInterner()
	d1 := in.Deferred("Colors")
	d2 := in.Deferred("Colors")
	if d1 != d2 {
		t.Fatalf("Deferred(\"Colors\") called twice must return the same placeholder")
	}
	i64 := in.Primitive(I64)
	enumT := in.Enum("Colors", i64, nil)
	in.Resolve(d1, enumT)
	if d2.Underlying != enumT {
		t.Fatalf("resolving through one holder must be visible through all holders")
	}
}

func TestQualTypeEquality(t *testing.T) {
	in := NewInterner()
	voidT := in.Primitive(Void)
	q1 := QualType{Type: voidT, Qual: QualMut}
	q2 := QualType{Type: voidT, Qual: QualMut}
	q3 := QualType{Type: voidT, Qual: QualNone}
	if !q1.Equal(q2) {
		t.Fatalf("equal (type, qualifier) pairs must compare equal")
	}
	if q1.Equal(q3) {
		t.Fatalf("differing qualifiers must not compare equal")
	}
}

func TestMutPointerPrinting(t *testing.T) {
	// spec §8 scenario 4: "test :: () -> mut *mut void;" prints its
	// return type as "mut *mut void": the outer type is mut, and the
	// pointee is itself mut void.
	in := NewInterner()
	voidT := in.Primitive(Void)
	mutVoid := QualType{Type: voidT, Qual: QualMut}

	ptrToMutVoid := in.Pointer(mutVoid)
	outer := QualType{Type: ptrToMutVoid, Qual: QualMut}

	if got := outer.String(); got != "mut *mut void" {
		t.Fatalf("outer.String() = %q, want %q", got, "mut *mut void")
	}
}
