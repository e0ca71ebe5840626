// Package kind classifies dynamic Go values into a small closed set of type
// tags and defines the strict equality used when a value is compared by
// identity.
package kind

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"

	"github.com/agentic-research/shapekit/api"
)

// Tag is the canonical type of a dynamic value.
type Tag uint8

const (
	Other Tag = iota
	String
	Number
	BigInt
	Boolean
	Symbol
	Null
	Undefined
	Array
	Object
)

var tagNames = [...]string{
	Other:     "other",
	String:    "string",
	Number:    "number",
	BigInt:    "bigint",
	Boolean:   "boolean",
	Symbol:    "symbol",
	Null:      "null",
	Undefined: "undefined",
	Array:     "array",
	Object:    "object",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("tag(%d)", uint8(t))
}

// ParseTag is the inverse of Tag.String.
func ParseTag(name string) (Tag, bool) {
	for i, n := range tagNames {
		if n == name {
			return Tag(i), true
		}
	}
	return Other, false
}

// IsPrimitive reports whether values of this tag are compared by value.
func (t Tag) IsPrimitive() bool {
	switch t {
	case String, Number, BigInt, Boolean, Symbol, Undefined:
		return true
	}
	return false
}

// IsReference reports whether values of this tag are compared by identity.
// Null counts as a reference, matching object-typed null in dynamic
// languages.
func IsReference(t Tag) bool {
	return !t.IsPrimitive()
}

// Of returns the tag of v.
//
// Named types classify by their underlying kind, so a `type Color string`
// is a String. Any slice or Go array is an Array; only *api.Object and
// map[string]any are plain objects. Functions, structs, pointers, channels
// and other maps are Other.
func Of(v any) Tag {
	switch v.(type) {
	case nil:
		return Null
	case api.UndefinedType:
		return Undefined
	case string:
		return String
	case bool:
		return Boolean
	case json.Number:
		return Number
	case *big.Int, big.Int:
		return BigInt
	case *api.Symbol:
		return Symbol
	case *api.Object, map[string]any:
		return Object
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return Number
	}

	rt := reflect.TypeOf(v)
	switch rt.Kind() {
	case reflect.String:
		return String
	case reflect.Bool:
		return Boolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return Number
	case reflect.Slice, reflect.Array:
		return Array
	}
	return Other
}

// IsCallable reports whether v is a function value.
func IsCallable(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}

// IsPlainObject reports whether v is a plain key/value object.
func IsPlainObject(v any) bool {
	return Of(v) == Object
}
