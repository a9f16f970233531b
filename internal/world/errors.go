package world

import "errors"

var (
	// ErrInvalidDimensions indicates a non-positive width, height or floor count.
	ErrInvalidDimensions = errors.New("world: map dimensions must be positive")
	// ErrMalformedFile indicates a map stream with missing or invalid tokens.
	ErrMalformedFile = errors.New("world: malformed map file")
	// ErrIO indicates the underlying read, write or compression step failed.
	ErrIO = errors.New("world: map file i/o failed")
	// ErrSwatchRange indicates a swatch index outside its palette.
	ErrSwatchRange = errors.New("world: swatch index out of range")
)
