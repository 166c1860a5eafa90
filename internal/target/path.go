// internal/target/path.go
package target

import (
	"slices"
	"strings"
)

// String serializes the Path into its canonical dotted representation.
func (p Path) String() string {
	return strings.Join(p.Segments, ".")
}

// Equal checks whether two paths name the same location.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p.Segments, other.Segments)
}

// HasPrefix reports whether other is p itself or one of its ancestors.
func (p Path) HasPrefix(other Path) bool {
	if len(other.Segments) > len(p.Segments) {
		return false
	}
	return slices.Equal(p.Segments[:len(other.Segments)], other.Segments)
}
