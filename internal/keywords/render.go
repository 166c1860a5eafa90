package keywords

import (
	"fmt"
	"strings"
)

// Padding is the column width keys are left-aligned and padded to in every
// rendered key/value line.
const Padding = 20

// Line renders one key/value line.
func Line(key, value string) string {
	return fmt.Sprintf("%-*s %s", Padding, key, value)
}

// Section is a named, delimited group of key/value lines.
type Section struct {
	Open   string // e.g. "%scf"
	Close  string // e.g. "end"
	Indent string
	lines  []string
}

// Add appends a key/value line to the section body.
func (s *Section) Add(key, value string) {
	s.lines = append(s.lines, s.Indent+Line(key, value))
}

// Lines returns the open marker, the body and the close marker.
func (s *Section) Lines() []string {
	out := make([]string, 0, len(s.lines)+2)
	out = append(out, s.Open)
	out = append(out, s.lines...)
	return append(out, s.Close)
}

// String renders the section as newline-terminated text.
func (s *Section) String() string {
	return strings.Join(s.Lines(), "\n") + "\n"
}
