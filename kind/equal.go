package kind

import (
	"encoding/json"
	"math"
	"math/big"
	"reflect"
)

// Same reports whether a and b are strictly equal: no coercion between
// tags, primitives compared by value and everything else by identity.
//
// Numbers compare numerically regardless of their Go type, and NaN is never
// equal to anything. Pointers, maps, channels and functions are equal when
// they point at the same thing; slices additionally need the same length.
// Functions created from the same literal share a code pointer and are
// therefore indistinguishable.
//
// Zero-capacity slices and pointers to zero-size values may share one
// address in Go without being the same value, so they are never Same, not
// even to themselves.
func Same(a, b any) bool {
	ta, tb := Of(a), Of(b)
	if ta != tb {
		return false
	}
	switch ta {
	case Null, Undefined:
		return true
	case Number:
		x, ok := numeric(a)
		if !ok {
			return false
		}
		y, ok := numeric(b)
		if !ok {
			return false
		}
		return x.Cmp(y) == 0
	case BigInt:
		return bigOf(a).Cmp(bigOf(b)) == 0
	case String:
		return reflect.ValueOf(a).String() == reflect.ValueOf(b).String()
	case Boolean:
		return reflect.ValueOf(a).Bool() == reflect.ValueOf(b).Bool()
	}
	return identical(a, b)
}

func identical(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return HasIdentity(a) && va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return HasIdentity(a) && HasIdentity(b) && va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if !va.Type().Comparable() {
		return false
	}
	return comparableEqual(a, b)
}

// HasIdentity reports whether Same can tell v apart from every other value.
// Zero-capacity slices and pointers to zero-size values cannot: the runtime
// may hand the same address to unrelated allocations.
func HasIdentity(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		return rv.Cap() > 0
	case reflect.Pointer:
		return rv.Type().Elem().Size() > 0
	}
	return true
}

// comparableEqual guards against structs whose interface fields hold
// incomparable values, which panic under ==.
func comparableEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

func numeric(v any) (*big.Float, bool) {
	if n, ok := v.(json.Number); ok {
		f, _, err := big.ParseFloat(n.String(), 10, 256, big.ToNearestEven)
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return new(big.Float).SetInt64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return new(big.Float).SetUint64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) {
			return nil, false
		}
		return new(big.Float).SetFloat64(f), true
	}
	return nil, false
}

func bigOf(v any) *big.Int {
	switch t := v.(type) {
	case *big.Int:
		if t == nil {
			return new(big.Int)
		}
		return t
	case big.Int:
		return &t
	}
	return new(big.Int)
}
