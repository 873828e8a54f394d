package types

import (
	"fmt"
	"strconv"

	"github.com/minio/highwayhash"
)

// internerHashKey is a fixed, arbitrary 32-byte key; the hash is only used
// to bucket candidates within one process, never persisted or compared
// across runs, so a constant key is sufficient (mirrors the pack's
// highwayhash.New64 usage for in-memory structural hashing).
var internerHashKey = []byte("aotc-type-interner-bucket-key-32")

// bucketHash reduces an arbitrary structural key string to a 64-bit bucket
// id. Types are still compared for exact structural equality after
// bucketing; the hash only avoids scanning every pooled type of a kind.
func bucketHash(key string) uint64 {
	h, err := highwayhash.New64(internerHashKey)
	if err != nil {
		// internerHashKey is a fixed 32-byte constant; New64 only errors
		// on a wrong-length key, which can't happen here.
		panic(err)
	}
	h.Write([]byte(key))
	return h.Sum64()
}

// Interner owns every Type used by one translation unit. It hands out
// canonical *Type handles: structurally equal inputs return the same
// pointer (spec §3.3, §8 "Interner invariants").
type Interner struct {
	primitives map[Kind]*Type

	// buckets maps a structural-key hash to the candidate types sharing
	// it; a linear scan within the (usually single-element) bucket
	// confirms exact structural equality, guarding against hash
	// collisions.
	buckets map[uint64][]*Type

	deferred map[string]*Type
}

// NewInterner creates an Interner with every primitive already pooled.
func NewInterner() *Interner {
	in := &Interner{
		primitives: make(map[Kind]*Type),
		buckets:    make(map[uint64][]*Type),
		deferred:   make(map[string]*Type),
	}
	for k := range primitiveNames {
		in.primitives[k] = &Type{Kind: k}
	}
	return in
}

// Primitive returns the canonical handle for a builtin kind.
func (in *Interner) Primitive(k Kind) *Type {
	t, ok := in.primitives[k]
	if !ok {
		panic("types: not a primitive kind: " + strconv.Itoa(int(k)))
	}
	return t
}

func (in *Interner) intern(key string, candidate *Type, eq func(*Type) bool) *Type {
	h := bucketHash(key)
	for _, existing := range in.buckets[h] {
		if eq(existing) {
			return existing
		}
	}
	in.buckets[h] = append(in.buckets[h], candidate)
	return candidate
}

// Pointer returns the canonical pointer-to-pointee type. pointee's
// qualifier is part of the pooling key: `*void` and `*mut void` are
// distinct pointer types.
func (in *Interner) Pointer(pointee QualType) *Type {
	key := "ptr:" + typeIdentity(pointee.Type) + ":" + strconv.Itoa(int(pointee.Qual))
	return in.intern(key, &Type{Kind: Pointer, Pointee: pointee}, func(t *Type) bool {
		return t.Kind == Pointer && t.Pointee.Equal(pointee)
	})
}

// Array returns the canonical array type of the given element and size.
func (in *Interner) Array(element *Type, size int64) *Type {
	key := "arr:" + typeIdentity(element) + ":" + strconv.FormatInt(size, 10)
	return in.intern(key, &Type{Kind: Array, Element: element, Size: size}, func(t *Type) bool {
		return t.Kind == Array && t.Element == element && t.Size == size
	})
}

// Function returns a canonical function type for the given signature.
// Per spec §3.3 function types may be deduplicated by signature or pooled
// per use; this Interner deduplicates, matching array/pointer pooling.
func (in *Interner) Function(ret *Type, params []*Type) *Type {
	key := "fn:" + typeIdentity(ret)
	for _, p := range params {
		key += "," + typeIdentity(p)
	}
	paramsCopy := append([]*Type(nil), params...)
	return in.intern(key, &Type{Kind: Function, Return: ret, Params: paramsCopy}, func(t *Type) bool {
		if t.Kind != Function || t.Return != ret || len(t.Params) != len(params) {
			return false
		}
		for i, p := range params {
			if t.Params[i] != p {
				return false
			}
		}
		return true
	})
}

// Struct returns the canonical struct type for a declaration name. Two
// calls with the same name return the same handle within one unit; the
// declaration back-reference is whatever the first caller passed; the
// parser attaches it when it parses the declaration (use sites before the
// declaration get a Deferred placeholder, not this handle).
func (in *Interner) Struct(name string, decl any) *Type {
	key := "struct:" + name
	return in.intern(key, &Type{Kind: Struct, Name: name, Declaration: decl}, func(t *Type) bool {
		return t.Kind == Struct && t.Name == name
	})
}

// Enum returns the canonical enum type for a declaration name with the
// given underlying primitive.
func (in *Interner) Enum(name string, underlying *Type, decl any) *Type {
	key := "enum:" + name
	return in.intern(key, &Type{Kind: Enum, Name: name, Underlying: underlying, Declaration: decl}, func(t *Type) bool {
		return t.Kind == Enum && t.Name == name
	})
}

// Alias returns the canonical alias type for a declaration name resolving
// to underlying.
func (in *Interner) Alias(name string, underlying *Type, decl any) *Type {
	key := "alias:" + name
	return in.intern(key, &Type{Kind: Alias, Name: name, Underlying: underlying, Declaration: decl}, func(t *Type) bool {
		return t.Kind == Alias && t.Name == name
	})
}

// Deferred returns the canonical placeholder for an as-yet-unresolved type
// name (spec §3.3, §4.3 Pass 1). Resolving it in place (mutating
// Underlying) makes every existing reference observe the resolution,
// since all holders share the same pointer.
func (in *Interner) Deferred(name string) *Type {
	if t, ok := in.deferred[name]; ok {
		return t
	}
	t := &Type{Kind: Deferred, DeferredName: name}
	in.deferred[name] = t
	return t
}

// Resolve attaches the resolved underlying type to a Deferred placeholder.
// Every holder of the placeholder pointer observes the resolution.
func (in *Interner) Resolve(deferred *Type, resolved *Type) {
	deferred.Underlying = resolved
}

// Deferreds returns every Deferred placeholder created so far. Symbol
// analysis Pass 1 (spec §4.3) resolves each one exactly once; because
// every reference to a given name shares this same pointer, fixing it
// here is observed at every use site without a separate AST walk.
func (in *Interner) Deferreds() []*Type {
	out := make([]*Type, 0, len(in.deferred))
	for _, t := range in.deferred {
		out = append(out, t)
	}
	return out
}

// typeIdentity produces a stable per-process string for a *Type used as a
// structural-key component of a compound type. Pointer identity already
// decides equality for pooled types, so the identity string only needs to
// be stable and distinct, not semantically meaningful.
func typeIdentity(t *Type) string {
	if t == nil {
		return "nil"
	}
	return fmt.Sprintf("%p", t)
}
