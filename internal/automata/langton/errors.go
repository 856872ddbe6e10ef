package langton

import "github.com/pkg/errors"

var (
	// ErrInvalidDirection is returned when a heading cannot be parsed.
	ErrInvalidDirection = errors.New("langton: invalid direction")

	// ErrUnknownPreset is returned for preset names not in the catalogue.
	ErrUnknownPreset = errors.New("langton: unknown preset")

	// ErrCorruptSnapshot is returned when a snapshot blob cannot be restored.
	ErrCorruptSnapshot = errors.New("langton: corrupt snapshot")
)
