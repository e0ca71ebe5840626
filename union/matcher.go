// Package union checks dynamic values against an ordered list of
// acceptable shapes.
//
// Matching is first-match: descriptors are tried in list order and the
// first one accepting the value wins, even when a later descriptor would
// accept it as well. Invalid descriptor lists and invalid inputs never
// panic; they are logged, returned as errors and yield Unmatched.
package union

import (
	"errors"
	"fmt"

	"github.com/agentic-research/shapekit/internal/logging"
	"github.com/agentic-research/shapekit/kind"
	"go.uber.org/zap"
)

// Option configures a Matcher.
type Option func(*Matcher)

// WithLogger sets the logger violations are reported to. By default the
// process-wide logger is used.
func WithLogger(l *zap.Logger) Option {
	return func(m *Matcher) { m.log = l }
}

// Matcher is a validated, reusable descriptor list.
type Matcher struct {
	descriptors []Descriptor
	err         error
	log         *zap.Logger
}

// NewMatcher validates descriptors and returns a Matcher for them. The
// Matcher is returned even when the list is invalid; it then reports the
// same error from every Match and never matches.
func NewMatcher(descriptors []Descriptor, opts ...Option) (*Matcher, error) {
	m := &Matcher{descriptors: append([]Descriptor(nil), descriptors...)}
	for _, opt := range opts {
		opt(m)
	}
	m.log = logging.Or(m.log)

	if err := ValidateList(m.descriptors); err != nil {
		m.err = err
		m.log.Warn("union: invalid descriptors", zap.Error(err), zap.Int("count", len(descriptors)))
	}
	return m, m.err
}

// ValidateList checks that descriptors is non-empty, duplicate-free and
// made of valid descriptors. Every violation is joined into the result.
func ValidateList(descriptors []Descriptor) error {
	if len(descriptors) == 0 {
		return fmt.Errorf("%w: the list of descriptors must not be empty", ErrInvalidDescriptorList)
	}

	var errs []error
	for i := range descriptors {
		for j := 0; j < i; j++ {
			if descriptors[i].Equal(descriptors[j]) {
				errs = append(errs, fmt.Errorf("%w: descriptor %d (%s) duplicates descriptor %d",
					ErrInvalidDescriptorList, i, descriptors[i], j))
				break
			}
		}
	}
	for i, d := range descriptors {
		if err := d.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("descriptor %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Descriptors returns a copy of the descriptor list.
func (m *Matcher) Descriptors() []Descriptor {
	return append([]Descriptor(nil), m.descriptors...)
}

// Err returns the validation error of the descriptor list, if any.
func (m *Matcher) Err() error { return m.err }

// Match returns the Result of checking input against the descriptors.
//
// A function input is only accepted by an identity descriptor naming that
// function; otherwise it is an ErrInvalidInputType. On any error the
// Result is Unmatched.
func (m *Matcher) Match(input any) (Result, error) {
	callable := kind.IsCallable(input)
	if m.err != nil {
		if callable {
			return Unmatched, errors.Join(m.err, m.invalidInput(input))
		}
		return Unmatched, m.err
	}

	tag := kind.Of(input)
	for i, d := range m.descriptors {
		if callable && d.kind != identityDescriptor {
			continue
		}
		if d.accepts(input, tag) {
			return Result{value: input, desc: d, pos: i + 1}, nil
		}
	}

	if callable {
		return Unmatched, m.invalidInput(input)
	}
	return Unmatched, nil
}

func (m *Matcher) invalidInput(input any) error {
	err := fmt.Errorf("%w: input cannot be a function (%T); name it with an identity descriptor",
		ErrInvalidInputType, input)
	m.log.Warn("union: invalid input", zap.Error(err))
	return err
}

// Match checks input against descriptors in order. See Matcher.Match.
func Match(input any, descriptors ...Descriptor) (Result, error) {
	m, _ := NewMatcher(descriptors)
	return m.Match(input)
}
