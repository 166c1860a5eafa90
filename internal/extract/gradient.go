package extract

import (
	"strings"
	"unicode"

	"github.com/specialistvlad/qccodec/internal/qcerr"
	"github.com/specialistvlad/qccodec/internal/textmatch"
)

// Gradients returns one gradient per occurrence of header, in document order.
//
// After each header, lines without any digit (the rest of the header line,
// rulers, blank lines) are skipped; from the first line with a digit onward,
// consecutive lines matching row are read as gradient rows, row's three
// capture groups giving the x, y and z components. The block ends at the
// first line that does not match.
func Gradients(text, header, row string) ([][][]float64, error) {
	rowRe := textmatch.Compile(row)
	var blocks [][][]float64

	for _, end := range textmatch.FindAllIndex(header, text) {
		lines := strings.Split(text[end:], "\n")
		i := 0
		for i < len(lines) && !strings.ContainsFunc(lines[i], unicode.IsDigit) {
			i++
		}

		var gradient [][]float64
		for ; i < len(lines); i++ {
			m := rowRe.FindStringSubmatch(lines[i])
			if m == nil {
				break
			}
			xyz, err := textmatch.ParseFloats(m[1:4])
			if err != nil {
				return nil, err
			}
			gradient = append(gradient, xyz)
		}
		blocks = append(blocks, gradient)
	}

	if len(blocks) == 0 {
		return nil, qcerr.NewPatternNotFound(header, text)
	}
	return blocks, nil
}

// LastGradient returns the final gradient block: the converged or most recent
// gradient of an iterative run.
func LastGradient(text, header, row string) ([][]float64, error) {
	blocks, err := Gradients(text, header, row)
	if err != nil {
		return nil, err
	}
	return blocks[len(blocks)-1], nil
}

// FirstGradient returns the first gradient block.
func FirstGradient(text, header, row string) ([][]float64, error) {
	blocks, err := Gradients(text, header, row)
	if err != nil {
		return nil, err
	}
	return blocks[0], nil
}
