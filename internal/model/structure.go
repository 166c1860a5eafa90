package model

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/qccodec/internal/qcerr"
	"github.com/specialistvlad/qccodec/internal/textmatch"
)

// Structure is a molecular geometry with its total charge and spin multiplicity.
// Coordinates are in Angstrom, one row per atom.
type Structure struct {
	Symbols      []string
	Geometry     [][3]float64
	Charge       int
	Multiplicity int
	// Comment is the xyz comment line the structure was read from, if any.
	Comment string
}

// NAtoms returns the number of atoms.
func (s Structure) NAtoms() int {
	return len(s.Symbols)
}

// Validate reports a structure whose symbols and coordinates disagree in count.
func (s Structure) Validate() error {
	if len(s.Symbols) != len(s.Geometry) {
		return fmt.Errorf("structure has %d symbols but %d coordinates", len(s.Symbols), len(s.Geometry))
	}
	return nil
}

// XYZ renders the structure in xyz format. This is the canonical text form;
// the encoders write it verbatim as the geometry file. s must be valid.
func (s Structure) XYZ() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d\n", len(s.Symbols))
	sb.WriteString(s.Comment)
	sb.WriteByte('\n')
	for i, sym := range s.Symbols {
		c := s.Geometry[i]
		fmt.Fprintf(&sb, "%-2s %18.12f %18.12f %18.12f\n", sym, c[0], c[1], c[2])
	}
	return sb.String()
}

// ParseXYZ reads a single xyz frame. Charge and multiplicity default to 0 and 1.
func ParseXYZ(text string) (Structure, error) {
	frames, err := ParseXYZMulti(text)
	if err != nil {
		return Structure{}, err
	}
	if len(frames) != 1 {
		return Structure{}, qcerr.Parserf("expected one xyz frame, found %d", len(frames))
	}
	return frames[0], nil
}

// ParseXYZMulti reads every frame of a multi-frame xyz file, such as an
// optimization trajectory, in file order.
func ParseXYZMulti(text string) ([]Structure, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	var frames []Structure

	for i := 0; i < len(lines); {
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}
		natoms, err := textmatch.ParseInt(strings.TrimSpace(lines[i]))
		if err != nil {
			return nil, fmt.Errorf("xyz frame %d header: %w", len(frames)+1, err)
		}
		if natoms < 0 {
			return nil, qcerr.Parserf("xyz frame %d has a negative atom count %d", len(frames)+1, natoms)
		}
		if i+1 >= len(lines) || natoms > len(lines)-(i+2) {
			return nil, qcerr.Parserf("xyz frame %d is truncated: expected %d atoms", len(frames)+1, natoms)
		}

		s := Structure{
			Multiplicity: 1,
			Comment:      strings.TrimRight(lines[i+1], "\r"),
			Symbols:      make([]string, 0, natoms),
			Geometry:     make([][3]float64, 0, natoms),
		}
		for j := 0; j < natoms; j++ {
			idx := i + 2 + j
			if idx >= len(lines) {
				return nil, qcerr.Parserf("xyz frame %d is truncated: expected %d atoms, found %d", len(frames)+1, natoms, j)
			}
			fields := strings.Fields(lines[idx])
			if len(fields) < 4 {
				return nil, qcerr.Parserf("xyz frame %d: malformed atom line %q", len(frames)+1, lines[idx])
			}
			xyz, err := textmatch.ParseFloats(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("xyz frame %d atom %d: %w", len(frames)+1, j+1, err)
			}
			s.Symbols = append(s.Symbols, fields[0])
			s.Geometry = append(s.Geometry, [3]float64{xyz[0], xyz[1], xyz[2]})
		}
		frames = append(frames, s)
		i += 2 + natoms
	}

	if len(frames) == 0 {
		return nil, qcerr.Parserf("no xyz frames found")
	}
	return frames, nil
}
