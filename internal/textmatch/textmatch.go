// Package textmatch wraps regular-expression search over program output.
//
// MustMatch is for fields that are mandatory once a file is known to be of the
// right kind: a miss is a *qcerr.PatternNotFoundError. FindAll is for callers
// that must first discover how many blocks exist: no match is an empty sequence,
// never an error. Numeric coercion failures are always surfaced as
// *qcerr.MalformedNumberError.
package textmatch

import (
	"iter"
	"regexp"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/specialistvlad/qccodec/internal/qcerr"
)

// cacheSize bounds the number of compiled patterns kept around. Static
// extractor patterns number in the tens; row-indexed Hessian patterns add one
// per matrix row.
const cacheSize = 1024

var compiled *lru.Cache[string, *regexp.Regexp]

func init() {
	c, err := lru.New[string, *regexp.Regexp](cacheSize)
	if err != nil {
		panic(err)
	}
	compiled = c
}

// Compile returns the compiled form of pattern, reusing a cached copy when
// available. An invalid pattern is a programming error and panics.
func Compile(pattern string) *regexp.Regexp {
	if re, ok := compiled.Get(pattern); ok {
		return re
	}
	re := regexp.MustCompile(pattern)
	compiled.Add(pattern, re)
	return re
}

// MustMatch returns the leftmost match of pattern in text and its submatches.
// If there is no match it fails with a PatternNotFoundError carrying the
// pattern and an excerpt of text.
func MustMatch(pattern, text string) ([]string, error) {
	m := Compile(pattern).FindStringSubmatch(text)
	if m == nil {
		return nil, qcerr.NewPatternNotFound(pattern, text)
	}
	return m, nil
}

// MustCapture is MustMatch for single-capture-group patterns: it returns the
// first group.
func MustCapture(pattern, text string) (string, error) {
	m, err := MustMatch(pattern, text)
	if err != nil {
		return "", err
	}
	if len(m) < 2 {
		panic("textmatch: pattern has no capture group: " + pattern)
	}
	return m[1], nil
}

// FindAll returns every non-overlapping match of pattern in text, left to
// right. The sequence is lazy and can be ranged over more than once; each pass
// rescans text from the beginning. Anchors and word boundaries are evaluated
// against the whole text. A group that did not take part in a match is "".
func FindAll(pattern, text string) iter.Seq[[]string] {
	re := Compile(pattern)
	return func(yield func([]string) bool) {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			m := make([]string, len(loc)/2)
			for i := range m {
				if loc[2*i] >= 0 {
					m[i] = text[loc[2*i]:loc[2*i+1]]
				}
			}
			if !yield(m) {
				return
			}
		}
	}
}

// FindAllIndex is FindAll reporting the [start, end) byte offsets of each whole match.
func FindAllIndex(pattern, text string) iter.Seq2[int, int] {
	re := Compile(pattern)
	return func(yield func(int, int) bool) {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if !yield(loc[0], loc[1]) {
				return
			}
		}
	}
}

// ParseFloat converts s to a float64.
func ParseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &qcerr.MalformedNumberError{Text: s, Kind: "float", Err: err}
	}
	return v, nil
}

// ParseInt converts s to an int.
func ParseInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &qcerr.MalformedNumberError{Text: s, Kind: "integer", Err: err}
	}
	return v, nil
}

// ParseFloats converts every field to a float64, stopping at the first failure.
func ParseFloats(fields []string) ([]float64, error) {
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := ParseFloat(f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
