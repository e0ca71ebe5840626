// Package reshape holds small transformations of flat collections.
package reshape

import (
	"cmp"
	"fmt"
	"maps"
	"math/big"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/agentic-research/shapekit/api"
	"github.com/agentic-research/shapekit/kind"
)

// Invert swaps the keys and values of a flat object. Values become keys
// through KeyString; when two keys share a value the later key wins and
// the entry keeps the position where that value first appeared.
func Invert(obj *api.Object) *api.Object {
	out := &api.Object{}
	obj.Range(func(k string, v any) bool {
		out.Set(KeyString(v), k)
		return true
	})
	return out
}

// InvertMap swaps the keys and values of m. Keys are applied in ascending
// order, so on a collision the greatest key wins.
func InvertMap[K cmp.Ordered, V comparable](m map[K]V) map[V]K {
	out := make(map[V]K, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		out[m[k]] = k
	}
	return out
}

// KeyString renders v the way a dynamic language turns a value into a
// property name: numbers in shortest form, null and undefined by name,
// arrays as comma-joined elements and objects as "[object Object]".
func KeyString(v any) string {
	switch kind.Of(v) {
	case kind.String:
		return reflect.ValueOf(v).String()
	case kind.Number:
		return numberString(v)
	case kind.BigInt:
		switch b := v.(type) {
		case *big.Int:
			return b.String()
		case big.Int:
			return b.String()
		}
	case kind.Boolean:
		return strconv.FormatBool(reflect.ValueOf(v).Bool())
	case kind.Null:
		return "null"
	case kind.Undefined:
		return "undefined"
	case kind.Symbol:
		return v.(*api.Symbol).String()
	case kind.Array:
		rv := reflect.ValueOf(v)
		parts := make([]string, rv.Len())
		for i := range parts {
			elem := rv.Index(i).Interface()
			if t := kind.Of(elem); t != kind.Null && t != kind.Undefined {
				parts[i] = KeyString(elem)
			}
		}
		return strings.Join(parts, ",")
	case kind.Object:
		return "[object Object]"
	}
	return fmt.Sprint(v)
}

func numberString(v any) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
