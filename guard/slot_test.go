package guard

import (
	"testing"

	"github.com/agentic-research/shapekit/union"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialValueIsTrusted(t *testing.T) {
	s, err := New(42, []union.Descriptor{union.String})
	require.NoError(t, err)
	assert.Equal(t, 42, s.Get())
	assert.Equal(t, 0, s.Attempts())
	assert.Equal(t, Active, s.State())
}

func TestSetWithinUnion(t *testing.T) {
	s, err := New("javascript", []union.Descriptor{union.Array, union.String}, WithLimit(1))
	require.NoError(t, err)
	assert.Equal(t, "javascript", s.Get())

	ok, err := s.Set("hello")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", s.Get())
	assert.Equal(t, Exhausted, s.State())

	ok, err = s.Set([]any{"world"})
	assert.ErrorIs(t, err, ErrAttemptsExceeded)
	assert.False(t, ok)
	assert.Equal(t, "hello", s.Get())
	assert.Equal(t, 1, s.Attempts())
}

func TestRejectedWriteConsumesAttempt(t *testing.T) {
	s, err := New("javascript", []union.Descriptor{union.String}, WithLimit(2))
	require.NoError(t, err)

	ok, err := s.Set("hello")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", s.Get())
	assert.Equal(t, 1, s.Attempts())

	ok, err = s.Set([]any{"world"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "hello", s.Get())
	assert.Equal(t, 2, s.Attempts())

	ok, err = s.Set("again")
	assert.ErrorIs(t, err, ErrAttemptsExceeded)
	assert.False(t, ok)
	assert.Equal(t, "hello", s.Get())
	assert.Equal(t, 2, s.Attempts())
}

func TestLimitNPlusOneAlwaysRefused(t *testing.T) {
	writes := [][]any{
		{"a", "b", "c"},
		{1, 2, 3},
		{"a", 1, nil},
	}
	for _, seq := range writes {
		s, err := New("init", []union.Descriptor{union.String}, WithLimit(len(seq)))
		require.NoError(t, err)
		for _, w := range seq {
			_, err := s.Set(w)
			require.NoError(t, err)
		}
		before := s.Get()

		for _, extra := range []any{"x", 5, []any{}} {
			ok, err := s.Set(extra)
			assert.ErrorIs(t, err, ErrAttemptsExceeded)
			assert.False(t, ok)
			assert.Equal(t, before, s.Get())
		}
		assert.Equal(t, len(seq), s.Attempts())
		assert.Equal(t, 0, s.Remaining())
	}
}

func TestUnboundedSlot(t *testing.T) {
	s, err := New(0, []union.Descriptor{union.Number})
	require.NoError(t, err)
	for i := 1; i <= 100; i++ {
		ok, err := s.Set(i)
		require.NoError(t, err)
		require.True(t, ok)
	}
	assert.Equal(t, 100, s.Get())
	assert.Equal(t, Active, s.State())
	assert.Equal(t, -1, s.Remaining())
	_, bounded := s.Limit()
	assert.False(t, bounded)
}

func TestHistory(t *testing.T) {
	s, err := New("", []union.Descriptor{union.String}, WithLimit(4))
	require.NoError(t, err)

	for _, v := range []any{"a", 1, "b", true} {
		_, err := s.Set(v)
		require.NoError(t, err)
	}

	assert.Equal(t, []uint32{1, 3}, s.Accepted().ToArray())
	assert.Equal(t, []uint32{2, 4}, s.Rejected().ToArray())

	// The returned bitmaps are copies.
	s.Accepted().Add(99)
	assert.False(t, s.Accepted().Contains(99))
}

func TestInvalidLimit(t *testing.T) {
	for _, limit := range []int{0, -3} {
		s, err := New("keep", []union.Descriptor{union.String}, WithLimit(limit))
		assert.ErrorIs(t, err, ErrInvalidLimit)
		require.NotNil(t, s)
		assert.Equal(t, Exhausted, s.State())

		ok, err := s.Set("new")
		assert.ErrorIs(t, err, ErrAttemptsExceeded)
		assert.False(t, ok)
		assert.Equal(t, "keep", s.Get())
	}
}

func TestInvalidDescriptorsRejectEveryWrite(t *testing.T) {
	s, err := New("keep", []union.Descriptor{union.String, union.String}, WithLimit(2))
	assert.ErrorIs(t, err, union.ErrInvalidDescriptorList)
	require.NotNil(t, s)

	ok, err := s.Set("new")
	assert.ErrorIs(t, err, union.ErrInvalidDescriptorList)
	assert.False(t, ok)
	assert.Equal(t, "keep", s.Get())
	assert.Equal(t, 1, s.Attempts())
}

func TestFunctionWriteCountsAsAttempt(t *testing.T) {
	s, err := New("keep", []union.Descriptor{union.String})
	require.NoError(t, err)

	ok, err := s.Set(func() {})
	assert.ErrorIs(t, err, union.ErrInvalidInputType)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Attempts())
}

func TestRefusalIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s, err := New(1, []union.Descriptor{union.Number}, WithLimit(1), WithLogger(zap.New(core)))
	require.NoError(t, err)

	_, _ = s.Set(2)
	_, _ = s.Set(3)

	entries := logs.FilterMessage("guard: write refused").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["limit"])
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "active", Active.String())
	assert.Equal(t, "exhausted", Exhausted.String())
}

func TestDescriptors(t *testing.T) {
	s, _ := New(nil, []union.Descriptor{union.Null, union.Object})
	assert.Equal(t, []union.Descriptor{union.Null, union.Object}, s.Descriptors())
}
