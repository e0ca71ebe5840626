package search

import (
	"maps"
	"reflect"
	"slices"
	"strconv"

	"github.com/agentic-research/shapekit/api"
	"github.com/agentic-research/shapekit/kind"
)

// visitFunc is called for each key/value pair. Returning false stops the
// walk.
type visitFunc func(key string, value any) bool

// walk visits every key/value pair below v depth-first in pre-order: a
// pair is reported before the pairs nested inside its value. Array indices
// are reported as decimal keys. It reports whether the walk completed.
//
// There is no cycle detection; v must be acyclic.
func walk(v any, fn visitFunc) bool {
	return eachChild(v, func(key string, child any) bool {
		if !fn(key, child) {
			return false
		}
		return walk(child, fn)
	})
}

// eachChild calls fn for the direct children of a plain object or array.
// *api.Object children come in insertion order, map[string]any children in
// sorted key order. Other values have no children.
func eachChild(v any, fn visitFunc) bool {
	switch c := v.(type) {
	case *api.Object:
		return c.Range(fn)
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(c)) {
			if !fn(k, c[k]) {
				return false
			}
		}
		return true
	}
	if kind.Of(v) != kind.Array {
		return true
	}
	rv := reflect.ValueOf(v)
	for i := 0; i < rv.Len(); i++ {
		if !fn(strconv.Itoa(i), rv.Index(i).Interface()) {
			return false
		}
	}
	return true
}

// child returns the direct child of v named key.
func child(v any, key string) (any, bool) {
	switch c := v.(type) {
	case *api.Object:
		return c.Get(key)
	case map[string]any:
		val, ok := c[key]
		return val, ok
	}
	if kind.Of(v) != kind.Array {
		return nil, false
	}
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || strconv.Itoa(i) != key {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if i >= rv.Len() {
		return nil, false
	}
	return rv.Index(i).Interface(), true
}
