package extract

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/qccodec/internal/qcerr"
	"github.com/specialistvlad/qccodec/internal/textmatch"
)

// HessianRows rebuilds a Hessian printed as labelled rows spread over several
// column groups. rowFormat is a pattern with a single %d verb for the 1-based
// row index and one capture group holding that row's numbers within a group.
//
// Row k is the concatenation, in document order, of every match of the
// pattern for k. Rows are searched for k = 1, 2, ... until a k has no match.
// Each row rescans the whole text; Hessians are small next to the documents
// that contain them.
func HessianRows(text, rowFormat string) ([][]float64, error) {
	var hessian [][]float64

	for k := 1; ; k++ {
		var row []float64
		found := false
		for m := range textmatch.FindAll(fmt.Sprintf(rowFormat, k), text) {
			found = true
			vals, err := textmatch.ParseFloats(strings.Fields(m[1]))
			if err != nil {
				return nil, err
			}
			row = append(row, vals...)
		}
		if !found {
			break
		}
		hessian = append(hessian, row)
	}

	if len(hessian) == 0 {
		return nil, qcerr.NewPatternNotFound(fmt.Sprintf(rowFormat, 1), text)
	}
	if err := checkSquare(hessian); err != nil {
		return nil, err
	}
	return hessian, nil
}

// HessianBlocks reads the Hessian out of a block file made of sections that
// start with `$name`. The section whose name is marker holds the matrix
// dimension on its first line, followed by column groups. Each group starts
// with a line of column indices and holds exactly dim data lines; a data
// line's leading row index is dropped and its numbers are appended to that
// matrix row.
func HessianBlocks(contents, marker string) ([][]float64, error) {
	section, ok := findSection(contents, marker)
	if !ok {
		return nil, qcerr.Parserf("failed to find $%s section in hessian file", marker)
	}

	lines := nonBlankLines(section)
	if len(lines) < 2 {
		return nil, qcerr.Parserf("$%s section has no dimension line", marker)
	}
	dim, err := textmatch.ParseInt(strings.TrimSpace(lines[1]))
	if err != nil {
		return nil, fmt.Errorf("$%s dimension: %w", marker, err)
	}
	if dim <= 0 {
		return nil, qcerr.Parserf("$%s dimension must be positive, got %d", marker, dim)
	}
	if dim > len(lines)-2 {
		return nil, qcerr.Parserf("$%s dimension %d exceeds the %d lines of the section", marker, dim, len(lines)-2)
	}

	hessian := make([][]float64, dim)
	var group []string
	groups := 0
	flush := func() error {
		if len(group) != dim {
			return qcerr.Parserf("column group %d has %d lines, expected %d", groups+1, len(group), dim)
		}
		for i, line := range group {
			vals, err := textmatch.ParseFloats(strings.Fields(line)[1:])
			if err != nil {
				return fmt.Errorf("column group %d, row %d: %w", groups+1, i, err)
			}
			hessian[i] = append(hessian[i], vals...)
		}
		group = group[:0]
		groups++
		return nil
	}

	inGroup := false
	for _, line := range lines[2:] {
		if isIndexHeader(line) {
			if inGroup {
				if err := flush(); err != nil {
					return nil, err
				}
			}
			inGroup = true
			continue
		}
		if !inGroup {
			return nil, qcerr.Parserf("$%s data line before any column header: %q", marker, line)
		}
		group = append(group, line)
	}
	if !inGroup {
		return nil, qcerr.Parserf("failed to parse column groups in $%s section", marker)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if err := checkSquare(hessian); err != nil {
		return nil, err
	}
	return hessian, nil
}

// findSection returns the body of the `$marker` section, including its name line.
func findSection(contents, marker string) (string, bool) {
	for _, part := range strings.Split(contents, "$") {
		name, _, _ := strings.Cut(part, "\n")
		if strings.TrimSpace(name) == marker {
			return part, true
		}
	}
	return "", false
}

func nonBlankLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, strings.TrimRight(line, "\r"))
		}
	}
	return out
}

// isIndexHeader reports whether line is a column-index line such as "  0  1  2".
func isIndexHeader(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		for _, r := range f {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

func checkSquare(m [][]float64) error {
	for i, row := range m {
		if len(row) != len(m) {
			return qcerr.Parserf("hessian row %d has %d entries, expected %d", i+1, len(row), len(m))
		}
	}
	return nil
}
