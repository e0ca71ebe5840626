package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is a single key/value pair of an Object.
type Entry struct {
	Key   string
	Value any
}

// E is shorthand for constructing an Entry.
func E(key string, value any) Entry {
	return Entry{Key: key, Value: value}
}

// Object is a plain key/value document that remembers insertion order.
// Go maps have no stable iteration order, so traversals that must visit
// keys "in order" operate on Objects.
//
// The zero value is an empty object ready to use. A nil *Object reads as
// empty.
type Object struct {
	entries []Entry
	index   map[string]int // key → position in entries
}

// NewObject builds an Object from entries. Later duplicates overwrite the
// value of the first occurrence and keep its position.
func NewObject(entries ...Entry) *Object {
	o := &Object{}
	for _, e := range entries {
		o.Set(e.Key, e.Value)
	}
	return o
}

// Set assigns value to key, appending the key if it is new.
func (o *Object) Set(key string, value any) *Object {
	if i, ok := o.index[key]; ok {
		o.entries[i].Value = value
		return o
	}
	if o.index == nil {
		o.index = make(map[string]int)
	}
	o.index[key] = len(o.entries)
	o.entries = append(o.entries, Entry{Key: key, Value: value})
	return o
}

// Get returns the value stored at key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.entries[i].Value, true
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Delete removes key. It reports whether the key was present.
func (o *Object) Delete(key string) bool {
	if o == nil {
		return false
	}
	i, ok := o.index[key]
	if !ok {
		return false
	}
	o.entries = append(o.entries[:i], o.entries[i+1:]...)
	delete(o.index, key)
	for j := i; j < len(o.entries); j++ {
		o.index[o.entries[j].Key] = j
	}
	return true
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.entries)
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	o.Range(func(k string, _ any) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Entries returns a copy of the entries in insertion order.
func (o *Object) Entries() []Entry {
	if o == nil {
		return nil
	}
	out := make([]Entry, len(o.entries))
	copy(out, o.entries)
	return out
}

// Range calls fn for each entry in insertion order until fn returns false.
// It reports whether the iteration ran to completion.
func (o *Object) Range(fn func(key string, value any) bool) bool {
	if o == nil {
		return true
	}
	for _, e := range o.entries {
		if !fn(e.Key, e.Value) {
			return false
		}
	}
	return true
}

// ToMap converts the object, and every Object nested inside it, to plain
// map[string]any / []any values. Order is lost.
func (o *Object) ToMap() map[string]any {
	m := make(map[string]any, o.Len())
	o.Range(func(k string, v any) bool {
		m[k] = Plain(v)
		return true
	})
	return m
}

// Plain deep-converts Objects inside v to maps so that v can be handed to
// libraries that only understand map[string]any and []any.
func Plain(v any) any {
	switch t := v.(type) {
	case *Object:
		if t == nil {
			return nil
		}
		return t.ToMap()
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, child := range t {
			m[k] = Plain(child)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = Plain(child)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON encodes the object with its keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range o.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal %q: %w", e.Key, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping key order. Nested objects
// become *Object values.
func (o *Object) UnmarshalJSON(data []byte) error {
	v, err := DecodeJSON(data)
	if err != nil {
		return err
	}
	obj, ok := v.(*Object)
	if !ok {
		return fmt.Errorf("decode object: got %T", v)
	}
	*o = *obj
	return nil
}
