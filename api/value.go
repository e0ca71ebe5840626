package api

// UndefinedType is the type of Undefined.
type UndefinedType struct{}

// Undefined marks a value that was never assigned. It is distinct from nil,
// which represents an explicit null.
var Undefined = UndefinedType{}

func (UndefinedType) String() string { return "undefined" }

// MarshalJSON encodes Undefined as null; JSON has no undefined.
func (UndefinedType) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Symbol is a unique, immutable token. Two symbols are only ever equal when
// they are the same pointer, even if their descriptions match.
type Symbol struct {
	desc string
}

// NewSymbol returns a new symbol with the given description.
func NewSymbol(desc string) *Symbol {
	return &Symbol{desc: desc}
}

// Description returns the description the symbol was created with.
func (s *Symbol) Description() string {
	if s == nil {
		return ""
	}
	return s.desc
}

func (s *Symbol) String() string { return "Symbol(" + s.Description() + ")" }
