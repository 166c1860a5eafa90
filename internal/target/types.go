// internal/target/types.go
package target

// Path is the structured representation of a target location. It is modeled
// as the sequence of segment names leading from the result root to the value.
type Path struct {
	Segments []string
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.Segments)
}

// Parent returns the path without its last segment.
func (p Path) Parent() Path {
	if len(p.Segments) == 0 {
		return p
	}
	return Path{Segments: p.Segments[:len(p.Segments)-1]}
}

// Leaf returns the last segment name.
func (p Path) Leaf() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1]
}
