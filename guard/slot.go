// Package guard provides Slot, a variable whose writes are type-checked
// against a union and limited to a fixed number of attempts.
package guard

import (
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring"
	"github.com/agentic-research/shapekit/internal/logging"
	"github.com/agentic-research/shapekit/union"
	"go.uber.org/zap"
)

var (
	// ErrAttemptsExceeded is returned by Set once the slot is exhausted.
	ErrAttemptsExceeded = errors.New("exceeded the maximum number of attempts")

	// ErrInvalidLimit is reported by New for a limit that is not positive.
	ErrInvalidLimit = errors.New("limit must be greater than zero")
)

// State is the lifecycle state of a Slot.
type State uint8

const (
	// Active slots accept write attempts.
	Active State = iota
	// Exhausted slots refuse every write. There is no way back.
	Exhausted
)

func (s State) String() string {
	if s == Exhausted {
		return "exhausted"
	}
	return "active"
}

type options struct {
	limit    int
	hasLimit bool
	log      *zap.Logger
}

// Option configures a Slot.
type Option func(*options)

// WithLimit caps the number of write attempts, successful or not.
func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
		o.hasLimit = true
	}
}

// WithLogger sets the logger refusals and violations are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// Slot holds one value and routes every write through a union.Matcher.
//
// Every call to Set while the slot is active consumes one attempt, whether
// or not the value is accepted. Once the limit is reached the slot keeps its
// last value forever.
//
// A Slot is meant for a single owner and does no locking.
type Slot struct {
	value    any
	attempts int
	limit    int
	bounded  bool
	matcher  *union.Matcher
	accepted *roaring.Bitmap
	rejected *roaring.Bitmap
	log      *zap.Logger
}

// New creates a slot holding initial, which is stored as is without being
// checked against descriptors.
//
// Invalid descriptors or limits are reported through the returned error
// but the slot is always usable: with invalid descriptors every write is
// rejected, and with an invalid limit the slot starts exhausted.
func New(initial any, descriptors []union.Descriptor, opts ...Option) (*Slot, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	log := logging.Or(o.log)

	m, err := union.NewMatcher(descriptors, union.WithLogger(log))
	errs := []error{err}

	s := &Slot{
		value:    initial,
		matcher:  m,
		accepted: roaring.New(),
		rejected: roaring.New(),
		log:      log,
	}
	if o.hasLimit {
		s.bounded = true
		if o.limit > 0 {
			s.limit = o.limit
		} else {
			limitErr := fmt.Errorf("%w: got %d", ErrInvalidLimit, o.limit)
			log.Warn("guard: invalid limit", zap.Error(limitErr))
			errs = append(errs, limitErr)
		}
	}
	return s, errors.Join(errs...)
}

// Get returns the current value.
func (s *Slot) Get() any { return s.value }

// Set attempts to replace the current value with v.
//
// It reports whether v was accepted. A rejected value leaves the current
// value unchanged but still counts against the limit. Once exhausted, Set
// returns ErrAttemptsExceeded without touching any state. Errors from the
// matcher (such as union.ErrInvalidInputType) are passed through.
func (s *Slot) Set(v any) (bool, error) {
	if s.State() == Exhausted {
		err := fmt.Errorf("%w: %d", ErrAttemptsExceeded, s.limit)
		s.log.Warn("guard: write refused", zap.Int("limit", s.limit), zap.Int("attempts", s.attempts))
		return false, err
	}

	s.attempts++
	attempt := uint32(s.attempts)

	res, err := s.matcher.Match(v)
	if !res.Matched() {
		s.rejected.Add(attempt)
		return false, err
	}
	s.value, _ = res.Value()
	s.accepted.Add(attempt)
	return true, nil
}

// Attempts returns the number of write attempts consumed so far.
func (s *Slot) Attempts() int { return s.attempts }

// Limit returns the attempt limit. ok is false when the slot is unbounded.
func (s *Slot) Limit() (n int, ok bool) { return s.limit, s.bounded }

// Remaining returns how many attempts are left, or -1 when unbounded.
func (s *Slot) Remaining() int {
	if !s.bounded {
		return -1
	}
	return max(s.limit-s.attempts, 0)
}

// State reports whether the slot still accepts writes.
func (s *Slot) State() State {
	if s.bounded && s.attempts >= s.limit {
		return Exhausted
	}
	return Active
}

// Accepted returns the 1-based attempt numbers whose value was accepted.
func (s *Slot) Accepted() *roaring.Bitmap { return s.accepted.Clone() }

// Rejected returns the 1-based attempt numbers whose value was rejected.
func (s *Slot) Rejected() *roaring.Bitmap { return s.rejected.Clone() }

// Descriptors returns the union the slot checks writes against.
func (s *Slot) Descriptors() []union.Descriptor { return s.matcher.Descriptors() }
