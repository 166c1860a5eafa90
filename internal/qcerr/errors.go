// Package qcerr defines the error kinds shared by the decode and encode
// pipelines.
//
// Every kind has a sentinel usable with errors.Is. Kinds that carry diagnostic
// payload (the missing pattern, the unparseable text, the bad directory) also
// have a struct type usable with errors.As.
package qcerr

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Sentinels for errors.Is.
var (
	ErrPatternNotFound   = errors.New("pattern not found")
	ErrMalformedNumber   = errors.New("malformed number")
	ErrDirectoryNotFound = errors.New("directory not found")
	ErrParser            = errors.New("parser error")
	ErrEncoder           = errors.New("encoder error")
)

// maxExcerpt bounds the amount of searched text kept in a PatternNotFoundError.
const maxExcerpt = 256

// PatternNotFoundError reports a required pattern that is absent from the text.
type PatternNotFoundError struct {
	Pattern string
	Excerpt string
}

// NewPatternNotFound builds a PatternNotFoundError, truncating text to a bounded excerpt.
func NewPatternNotFound(pattern, text string) *PatternNotFoundError {
	return &PatternNotFoundError{Pattern: pattern, Excerpt: Excerpt(text)}
}

func (e *PatternNotFoundError) Error() string {
	return fmt.Sprintf("pattern %q not found in text: %q", e.Pattern, e.Excerpt)
}

func (e *PatternNotFoundError) Unwrap() error { return ErrPatternNotFound }

// MalformedNumberError reports matched text that is not a valid number.
type MalformedNumberError struct {
	Text string
	Kind string // "integer" or "float"
	Err  error
}

func (e *MalformedNumberError) Error() string {
	return fmt.Sprintf("cannot parse %q as %s: %v", e.Text, e.Kind, e.Err)
}

func (e *MalformedNumberError) Unwrap() []error { return []error{ErrMalformedNumber, e.Err} }

// DirectoryNotFoundError reports a result directory that does not exist or is
// not a directory.
type DirectoryNotFoundError struct {
	Path string
}

func (e *DirectoryNotFoundError) Error() string {
	return fmt.Sprintf("directory %s does not exist or is not a directory", e.Path)
}

func (e *DirectoryNotFoundError) Unwrap() error { return ErrDirectoryNotFound }

// Parserf returns an error wrapping ErrParser.
func Parserf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParser, fmt.Sprintf(format, args...))
}

// Encoderf returns an error wrapping ErrEncoder.
func Encoderf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrEncoder, fmt.Sprintf(format, args...))
}

// Excerpt truncates text to the bounded length used in diagnostics. The cut
// falls on a rune boundary.
func Excerpt(text string) string {
	if len(text) <= maxExcerpt {
		return text
	}
	cut := maxExcerpt
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
