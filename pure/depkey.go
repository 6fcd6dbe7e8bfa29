package pure

import (
	"reflect"
)

type keyKind uint8

const (
	kindPrimitive keyKind = iota
	kindReference
)

// DepKey is one element of a dependency key list. It captures the equality
// rule explicitly instead of relying on implicit coercion:
//
//   - primitives (booleans, integers, floats, complex numbers, strings)
//     compare by value, with the dynamic type included
//   - pointers, maps, slices, channels, and funcs compare by referent
//     identity
//   - any other composite value (a struct or array passed by value) gets a
//     fresh identity on every KeyOf call, so two structurally equal but
//     distinct composites never match
//
// The last rule is deliberate: it reproduces the object-as-key pitfall
// where a memoized computation recomputes on every call because the caller
// rebuilds a composite key each time.
type DepKey struct {
	kind   keyKind
	prim   any     // comparable primitive value; nil for reference keys
	ref    uintptr // referent identity; 0 for primitive keys
	anchor any     // keeps the referent reachable so its identity is not recycled
}

// KeyOf builds the DepKey for an arbitrary dependency value.
func KeyOf(v any) DepKey {
	if v == nil {
		return DepKey{kind: kindPrimitive}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return DepKey{kind: kindPrimitive, prim: v}

	case reflect.Pointer, reflect.UnsafePointer,
		reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return DepKey{kind: kindReference, ref: rv.Pointer(), anchor: v}

	default:
		// Fresh referent per call: structurally equal composites get
		// distinct identities.
		boxed := reflect.New(rv.Type())
		boxed.Elem().Set(rv)
		return DepKey{kind: kindReference, ref: boxed.Pointer(), anchor: boxed.Interface()}
	}
}

// KeysOf builds a dependency key list in argument order.
func KeysOf(vs ...any) []DepKey {
	keys := make([]DepKey, len(vs))
	for i, v := range vs {
		keys[i] = KeyOf(v)
	}
	return keys
}

func (k DepKey) equals(o DepKey) bool {
	if k.kind != o.kind {
		return false
	}
	if k.kind == kindPrimitive {
		return k.prim == o.prim
	}
	return k.ref == o.ref
}

// comparable returns a form of the key usable with == and as a map key.
// The anchor is dropped: it may hold non-comparable values (slices, maps)
// and identity is already captured by ref.
func (k DepKey) comparable() comparableKey {
	return comparableKey{kind: k.kind, prim: k.prim, ref: k.ref}
}

type comparableKey struct {
	kind keyKind
	prim any
	ref  uintptr
}

// SameDeps reports whether two dependency key lists match: same length and
// every element equal under the DepKey rule. Two empty lists match.
func SameDeps(a, b []DepKey) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].equals(b[i]) {
			return false
		}
	}
	return true
}
