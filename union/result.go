package union

// Result is the outcome of matching a value against a union. The zero
// Result is Unmatched, which is distinct from a match whose value happens
// to be nil or api.Undefined.
type Result struct {
	value any
	desc  Descriptor
	pos   int // index of the matching descriptor plus one; 0 when unmatched
}

// Unmatched is the result when no descriptor accepts the value.
var Unmatched = Result{}

// Matched reports whether a descriptor accepted the value.
func (r Result) Matched() bool { return r.pos > 0 }

// Value returns the matched value. ok is false for Unmatched.
func (r Result) Value() (v any, ok bool) {
	return r.value, r.Matched()
}

// Index returns the position of the accepting descriptor, or -1.
func (r Result) Index() int { return r.pos - 1 }

// Descriptor returns the accepting descriptor. It is the invalid zero
// Descriptor for Unmatched.
func (r Result) Descriptor() Descriptor { return r.desc }

func (r Result) String() string {
	if !r.Matched() {
		return "unmatched"
	}
	return "matched " + r.desc.String()
}
