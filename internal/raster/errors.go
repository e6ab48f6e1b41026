package raster

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned by filter constructors when a size,
	// sigma, threshold or level count is out of its valid range.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidDimensions is returned when a grid has non-positive
	// dimensions, an unsupported channel count, or is smaller than the
	// window a filter needs.
	ErrInvalidDimensions = errors.New("invalid dimensions")
)

// InvalidParameter wraps ErrInvalidParameter with context.
func InvalidParameter(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

// InvalidDimensions wraps ErrInvalidDimensions with context.
func InvalidDimensions(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidDimensions, fmt.Sprintf(format, args...))
}
