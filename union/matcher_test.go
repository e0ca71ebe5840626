package union

import (
	"math/big"
	"reflect"
	"regexp"
	"testing"
	"time"

	"github.com/agentic-research/shapekit/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type user struct{ Name string }

func sum(x, y int) int { return x + y }

func mustMatch(t *testing.T, input any, descriptors ...Descriptor) Result {
	t.Helper()
	res, err := Match(input, descriptors...)
	require.NoError(t, err)
	return res
}

func TestMatchPrimitiveOwnMarker(t *testing.T) {
	tests := []struct {
		name  string
		value any
		desc  Descriptor
	}{
		{"string", "hello", String},
		{"number", 5, Number},
		{"float", 2.5, Number},
		{"bigint", big.NewInt(5), BigInt},
		{"boolean", true, Boolean},
		{"symbol", api.NewSymbol("s"), Symbol},
		{"null", nil, Null},
		{"undefined", api.Undefined, Undefined},
		{"array", []any{"hello", "world"}, Array},
		{"object", api.NewObject(api.E("a", 1)), Object},
		{"map object", map[string]any{"a": 1}, Object},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustMatch(t, tt.value, tt.desc)
			require.True(t, res.Matched())
			v, ok := res.Value()
			assert.True(t, ok)
			assert.Equal(t, tt.value, v)
			assert.Equal(t, 0, res.Index())
		})
	}
}

func TestMatchOtherMarkerMisses(t *testing.T) {
	all := []Descriptor{String, Number, BigInt, Boolean, Symbol, Array, Object, Null, Undefined}
	values := []any{"s", 1, big.NewInt(1), false, api.NewSymbol("s"), []any{}, map[string]any{}, nil, api.Undefined}

	for i, v := range values {
		for j, d := range all {
			if i == j {
				continue
			}
			res := mustMatch(t, v, d)
			assert.False(t, res.Matched(), "%v against %s", v, d)
		}
	}
}

func TestMatchReferenceTypes(t *testing.T) {
	t.Run("exact constructor", func(t *testing.T) {
		u := &user{Name: "ada"}
		res := mustMatch(t, u, TypeOf[*user]())
		assert.True(t, res.Matched())

		res = mustMatch(t, user{Name: "ada"}, TypeOf[*user]())
		assert.False(t, res.Matched())
	})

	t.Run("other reference types", func(t *testing.T) {
		now := time.Now()
		re := regexp.MustCompile("x")
		assert.True(t, mustMatch(t, now, TypeOf[time.Time]()).Matched())
		assert.True(t, mustMatch(t, re, TypeOf[*regexp.Regexp]()).Matched())
		assert.False(t, mustMatch(t, now, Object).Matched())
		assert.False(t, mustMatch(t, re, TypeOf[time.Time]()).Matched())
	})

	t.Run("identity", func(t *testing.T) {
		test := []any{"hello", "world"}
		res := mustMatch(t, test, Is(test))
		require.True(t, res.Matched())
		v, _ := res.Value()
		assert.Equal(t, test, v)

		res = mustMatch(t, []any{"hello", "world"}, Is(test))
		assert.False(t, res.Matched(), "equal contents are not the same array")
	})

	t.Run("constructor over primitive go type", func(t *testing.T) {
		assert.True(t, mustMatch(t, 5, TypeOf[int]()).Matched())
		assert.False(t, mustMatch(t, int64(5), TypeOf[int]()).Matched())
	})
}

func TestIdentityOfEmptyArrays(t *testing.T) {
	a, b := []any{}, []any{}

	res, err := Match(b, Is(a))
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
	assert.False(t, res.Matched(), "unrelated empty arrays must not match")

	_, err = Match("x", Is(a), Is(b), String)
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
	assert.NotContains(t, err.Error(), "duplicates")

	// A pointer to the slice variable carries the identity instead.
	res = mustMatch(t, &a, Is(&a), Is(&b))
	assert.Equal(t, 0, res.Index())
	res = mustMatch(t, &b, Is(&a), Is(&b))
	assert.Equal(t, 1, res.Index())

	// Empty arrays with their own backing store keep their identity.
	c, d := make([]any, 0, 1), make([]any, 0, 1)
	res = mustMatch(t, d, Is(c), Is(d))
	assert.Equal(t, 1, res.Index())
}

func TestMatchFunctionThroughIdentity(t *testing.T) {
	res, err := Match(sum, Is(sum))
	require.NoError(t, err)
	require.True(t, res.Matched())
	v, _ := res.Value()
	assert.Equal(t, reflect.ValueOf(sum).Pointer(), reflect.ValueOf(v).Pointer())
}

func TestMatchMultiUnion(t *testing.T) {
	t.Run("string against array or string", func(t *testing.T) {
		res := mustMatch(t, "javascript", Array, String)
		assert.True(t, res.Matched())
		assert.Equal(t, 1, res.Index())
		assert.Equal(t, String, res.Descriptor())
	})

	t.Run("array instance before string", func(t *testing.T) {
		test := []any{"hello", "world"}
		res := mustMatch(t, test, Is(test), String)
		assert.Equal(t, 0, res.Index())
	})

	t.Run("number against array or string", func(t *testing.T) {
		res := mustMatch(t, 2, Array, String)
		assert.False(t, res.Matched())
		assert.Equal(t, -1, res.Index())
		_, ok := res.Value()
		assert.False(t, ok)
	})
}

func TestMatchFirstWins(t *testing.T) {
	test := []any{1}

	res := mustMatch(t, test, Array, Is(test))
	assert.Equal(t, 0, res.Index())
	assert.Equal(t, Array, res.Descriptor())

	res = mustMatch(t, test, Is(test), Array)
	assert.Equal(t, 0, res.Index())
	assert.True(t, res.Descriptor().Equal(Is(test)))
}

// Open question: a matched null and "no match" both carry a nil value.
// They are told apart by the ok flag of Value, not by a sentinel; callers
// that ignore ok cannot distinguish them.
func TestMatchedNilIsNotUnmatched(t *testing.T) {
	res := mustMatch(t, nil, Null)
	v, ok := res.Value()
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.NotEqual(t, Unmatched, res)

	res = mustMatch(t, api.Undefined, Undefined)
	v, ok = res.Value()
	assert.True(t, ok)
	assert.Equal(t, api.Undefined, v)
	assert.Equal(t, "matched undefined", res.String())
	assert.Equal(t, "unmatched", Unmatched.String())

	v, ok = Unmatched.Value()
	assert.False(t, ok)
	assert.Nil(t, v)
	t.Log("matched null and unmatched differ only in the ok flag of Value")
}

func TestMatchPreconditions(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		res, err := Match("hello")
		assert.ErrorIs(t, err, ErrInvalidDescriptorList)
		assert.Equal(t, Unmatched, res)
	})

	t.Run("duplicates always reported", func(t *testing.T) {
		res, err := Match("hello", String, String)
		assert.ErrorIs(t, err, ErrInvalidDescriptorList)
		assert.False(t, res.Matched())

		res, err = Match("hello", Number, Number)
		assert.ErrorIs(t, err, ErrInvalidDescriptorList)
		assert.False(t, res.Matched())
	})

	t.Run("duplicate identity", func(t *testing.T) {
		test := []any{}
		_, err := Match(test, Is(test), Is(test))
		assert.ErrorIs(t, err, ErrInvalidDescriptorList)
	})

	t.Run("function input", func(t *testing.T) {
		res, err := Match(sum, String, Array)
		assert.ErrorIs(t, err, ErrInvalidInputType)
		assert.False(t, res.Matched())
	})

	t.Run("invalid descriptors", func(t *testing.T) {
		for _, d := range []Descriptor{{}, Is("string"), Is(5), Is(nil), Type(nil), TypeOf[error]()} {
			res, err := Match("hello", String, d)
			assert.ErrorIs(t, err, ErrInvalidDescriptor, d.String())
			assert.False(t, res.Matched())
		}
	})

	t.Run("every violation joined", func(t *testing.T) {
		_, err := Match(sum, String, String, Is(1))
		assert.ErrorIs(t, err, ErrInvalidDescriptorList)
		assert.ErrorIs(t, err, ErrInvalidDescriptor)
		assert.ErrorIs(t, err, ErrInvalidInputType)
	})
}

func TestMatcherLogsViolations(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := zap.New(core)

	m, err := NewMatcher([]Descriptor{String, String}, WithLogger(log))
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("union: invalid descriptors").Len())

	// The matcher stays usable and keeps reporting.
	res, err := m.Match("hello")
	assert.ErrorIs(t, err, ErrInvalidDescriptorList)
	assert.False(t, res.Matched())
	assert.Same(t, err, m.Err())

	ok, err := NewMatcher([]Descriptor{String}, WithLogger(log))
	require.NoError(t, err)
	_, err = ok.Match(func() {})
	assert.ErrorIs(t, err, ErrInvalidInputType)
	assert.Equal(t, 1, logs.FilterMessage("union: invalid input").Len())
}

func TestMatcherCopiesDescriptors(t *testing.T) {
	in := []Descriptor{String, Number}
	m, err := NewMatcher(in)
	require.NoError(t, err)
	in[0] = Array

	assert.Equal(t, []Descriptor{String, Number}, m.Descriptors())
	res, _ := m.Match("x")
	assert.True(t, res.Matched())
}

func TestParse(t *testing.T) {
	d, err := Parse("String")
	require.NoError(t, err)
	assert.Equal(t, String, d)

	ds, err := ParseList("array, string,,null")
	require.NoError(t, err)
	assert.Equal(t, []Descriptor{Array, String, Null}, ds)

	_, err = Parse("other")
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
	_, err = ParseList("string,function")
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
}

func TestDescriptorString(t *testing.T) {
	assert.Equal(t, "string", String.String())
	assert.Equal(t, "type(time.Time)", TypeOf[time.Time]().String())
	assert.Equal(t, "is([]interface {})", Is([]any{}).String())
	assert.Equal(t, "invalid", Descriptor{}.String())
}
