package union

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/agentic-research/shapekit/kind"
)

type descriptorKind uint8

const (
	invalidDescriptor descriptorKind = iota
	markerDescriptor
	typeDescriptor
	identityDescriptor
)

// Descriptor is one acceptance criterion of a union. It is either a type
// marker (String, Number, Array, ...), a literal marker (Null, Undefined),
// a concrete Go type (TypeOf, Type) or a specific value compared by
// identity (Is).
//
// The zero Descriptor is invalid.
type Descriptor struct {
	kind  descriptorKind
	tag   kind.Tag
	typ   reflect.Type
	value any
}

// Type markers. Each matches every value classified with the same tag.
var (
	String    = marker(kind.String)
	Number    = marker(kind.Number)
	BigInt    = marker(kind.BigInt)
	Boolean   = marker(kind.Boolean)
	Symbol    = marker(kind.Symbol)
	Array     = marker(kind.Array)
	Object    = marker(kind.Object)
	Null      = marker(kind.Null)
	Undefined = marker(kind.Undefined)
)

func marker(t kind.Tag) Descriptor {
	return Descriptor{kind: markerDescriptor, tag: t}
}

// TypeOf returns a descriptor matching values whose dynamic type is exactly T.
func TypeOf[T any]() Descriptor {
	return Type(reflect.TypeFor[T]())
}

// Type returns a descriptor matching values whose dynamic type is exactly t.
func Type(t reflect.Type) Descriptor {
	return Descriptor{kind: typeDescriptor, typ: t}
}

// Is returns a descriptor matching only v itself, compared with kind.Same.
// v must be a function or a reference value (array, object or other);
// primitives are rejected as invalid descriptors.
func Is(v any) Descriptor {
	return Descriptor{kind: identityDescriptor, value: v}
}

// Parse returns the marker named by its lowercase tag name, e.g. "string"
// or "array".
func Parse(name string) (Descriptor, error) {
	t, ok := kind.ParseTag(strings.ToLower(strings.TrimSpace(name)))
	if !ok || t == kind.Other {
		return Descriptor{}, fmt.Errorf("%w: unknown type name %q", ErrInvalidDescriptor, name)
	}
	return marker(t), nil
}

// ParseList parses a comma-separated list of type names.
func ParseList(names string) ([]Descriptor, error) {
	var out []Descriptor
	for _, n := range strings.Split(names, ",") {
		if strings.TrimSpace(n) == "" {
			continue
		}
		d, err := Parse(n)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Validate reports why d cannot be used in a union, or nil.
func (d Descriptor) Validate() error {
	switch d.kind {
	case markerDescriptor:
		if d.tag == kind.Other {
			return fmt.Errorf("%w: no marker for %s", ErrInvalidDescriptor, d.tag)
		}
		return nil
	case typeDescriptor:
		if d.typ == nil {
			return fmt.Errorf("%w: nil type", ErrInvalidDescriptor)
		}
		if d.typ.Kind() == reflect.Interface {
			return fmt.Errorf("%w: %s is an interface; dynamic types are always concrete", ErrInvalidDescriptor, d.typ)
		}
		return nil
	case identityDescriptor:
		if kind.IsCallable(d.value) {
			return nil
		}
		switch t := kind.Of(d.value); t {
		case kind.Array, kind.Object, kind.Other:
			if !kind.HasIdentity(d.value) {
				return fmt.Errorf("%w: identity of an empty %T is ambiguous; pass a pointer to it", ErrInvalidDescriptor, d.value)
			}
			return nil
		default:
			return fmt.Errorf("%w: identity of a %s value; use the %s marker", ErrInvalidDescriptor, t, t)
		}
	}
	return fmt.Errorf("%w: not a primitive, object or constructor descriptor", ErrInvalidDescriptor)
}

// Equal reports whether d and o describe the same criterion.
func (d Descriptor) Equal(o Descriptor) bool {
	if d.kind != o.kind {
		return false
	}
	switch d.kind {
	case markerDescriptor:
		return d.tag == o.tag
	case typeDescriptor:
		return d.typ == o.typ
	case identityDescriptor:
		return kind.Same(d.value, o.value)
	}
	return true
}

func (d Descriptor) String() string {
	switch d.kind {
	case markerDescriptor:
		return d.tag.String()
	case typeDescriptor:
		if d.typ == nil {
			return "type(<nil>)"
		}
		return "type(" + d.typ.String() + ")"
	case identityDescriptor:
		return fmt.Sprintf("is(%T)", d.value)
	}
	return "invalid"
}

// accepts reports whether input, already classified as tag, satisfies d.
func (d Descriptor) accepts(input any, tag kind.Tag) bool {
	switch d.kind {
	case markerDescriptor:
		return d.tag == tag
	case typeDescriptor:
		return input != nil && reflect.TypeOf(input) == d.typ
	case identityDescriptor:
		return kind.IsReference(tag) && kind.Same(input, d.value)
	}
	return false
}
