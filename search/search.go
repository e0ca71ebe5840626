// Package search finds keys and values inside nested plain-object/array
// trees.
//
// All searches walk the tree depth-first in pre-order: a key is checked
// before anything nested under its value, and siblings are visited in
// order (insertion order for *api.Object, sorted order for map[string]any,
// index order for arrays). Inputs must be acyclic.
//
// The root must be a plain object. Any other root is logged, reported as
// ErrInvalidInput and produces an empty result.
package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agentic-research/shapekit/internal/logging"
	"github.com/agentic-research/shapekit/kind"
	"go.uber.org/zap"
)

// ErrInvalidInput is reported when the tree is not a plain object.
var ErrInvalidInput = errors.New("search input must be a plain object")

func checkTree(op string, tree any) error {
	if t := kind.Of(tree); t != kind.Object {
		err := fmt.Errorf("%s: %w, got %s", op, ErrInvalidInput, t)
		logging.L().Warn("search: invalid input", zap.String("op", op), zap.Error(err))
		return err
	}
	return nil
}

// FirstByKey returns the value of the first key named key.
//
// A key containing dots ("a.b.c") is treated as a path and resolved
// directly from the root with Path instead of searching. found is false
// when no key matches or a path segment is missing; a key whose value is
// nil is still found.
func FirstByKey(tree any, key string) (value any, found bool, err error) {
	if err := checkTree("first by key", tree); err != nil {
		return nil, false, err
	}
	if strings.Contains(key, ".") {
		value, found = Path(tree, strings.Split(key, ".")...)
		return value, found, nil
	}

	walk(tree, func(k string, v any) bool {
		if k == key {
			value, found = v, true
			return false
		}
		return true
	})
	return value, found, nil
}

// AllByKey returns the values of every key named key, in walk order.
// Dotted keys are matched literally.
func AllByKey(tree any, key string) ([]any, error) {
	if err := checkTree("all by key", tree); err != nil {
		return []any{}, err
	}

	values := []any{}
	walk(tree, func(k string, v any) bool {
		if k == key {
			values = append(values, v)
		}
		return true
	})
	return values, nil
}

// FirstByValue returns the name of the first key whose value is strictly
// equal (kind.Same) to value.
func FirstByValue(tree any, value any) (key string, found bool, err error) {
	if err := checkTree("first by value", tree); err != nil {
		return "", false, err
	}

	walk(tree, func(k string, v any) bool {
		if kind.Same(v, value) {
			key, found = k, true
			return false
		}
		return true
	})
	return key, found, nil
}

// AllByValue returns the names of every key whose value is strictly equal
// to value, in walk order. Names repeat when the same key matches at
// different depths.
func AllByValue(tree any, value any) ([]string, error) {
	if err := checkTree("all by value", tree); err != nil {
		return []string{}, err
	}

	keys := []string{}
	walk(tree, func(k string, v any) bool {
		if kind.Same(v, value) {
			keys = append(keys, k)
		}
		return true
	})
	return keys, nil
}
