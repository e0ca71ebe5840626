package union

import "errors"

var (
	// ErrInvalidDescriptorList is reported when the descriptor list is empty
	// or contains duplicates.
	ErrInvalidDescriptorList = errors.New("invalid descriptor list")

	// ErrInvalidDescriptor is reported for a descriptor that is neither a
	// type marker, a concrete type nor a reference usable for identity.
	ErrInvalidDescriptor = errors.New("invalid descriptor")

	// ErrInvalidInputType is reported when the value being matched is a
	// function that no identity descriptor names.
	ErrInvalidInputType = errors.New("invalid input type")
)
