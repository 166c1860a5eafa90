// internal/target/parser.go
package target

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches a single segment of a path, e.g., `energy` or `calcinfo_natoms`.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// Parse creates a new Path by parsing its canonical string representation.
func Parse(raw string) (Path, error) {
	if raw == "" {
		return Path{}, fmt.Errorf("target path cannot be empty")
	}

	var p Path
	for _, segment := range strings.Split(raw, ".") {
		if segment == "" {
			return Path{}, fmt.Errorf("target path %q contains empty segment", raw)
		}
		if !segmentRegex.MatchString(segment) {
			return Path{}, fmt.Errorf("invalid target path segment %q in %q", segment, raw)
		}
		p.Segments = append(p.Segments, segment)
	}

	return p, nil
}

// MustParse is Parse for paths fixed at compile time.
func MustParse(raw string) Path {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}
