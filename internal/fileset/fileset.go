// Package fileset turns the raw material of a decode call (optional stdout
// text, optional result directory) into the ordered sequence of files the
// extractors run over.
//
// The order is fixed: stdout, then the directory, then companion files in the
// order the engine's Layout lists them. Companion files are found by appending
// a suffix to a basename parsed out of stdout; nothing is globbed, so without
// stdout no companion file is read.
package fileset

import (
	"context"
	"iter"
	"os"
	"path/filepath"

	"github.com/specialistvlad/qccodec/internal/ctxlog"
	"github.com/specialistvlad/qccodec/internal/qcerr"
)

// Companion maps a file kind to the suffix appended to the basename.
type Companion struct {
	Kind   Kind
	Suffix string
}

// Layout describes where an engine leaves its output files.
type Layout struct {
	// Companions are probed in this order.
	Companions []Companion
	// Basename extracts the run name from stdout. Nil means the engine has no
	// companion files.
	Basename func(stdout string) (string, error)
}

// Declares reports whether the layout can ever produce a file of kind k.
func (l Layout) Declares(k Kind) bool {
	if k == Stdout || k == Directory {
		return true
	}
	for _, c := range l.Companions {
		if c.Kind == k {
			return true
		}
	}
	return false
}

// File is one resolved file. Text holds the contents for Stdout and companion
// kinds; Path holds the directory for Directory and the file path for companions.
type File struct {
	Kind Kind
	Text string
	Path string
}

// Resolve yields the files available for one decode call. A nil stdout means
// stdout was not supplied; an empty dir means no directory was supplied. An
// error is yielded at most once, as the last element.
func Resolve(ctx context.Context, layout Layout, stdout *string, dir string) iter.Seq2[File, error] {
	return func(yield func(File, error) bool) {
		logger := ctxlog.FromContext(ctx)

		if stdout != nil {
			if !yield(File{Kind: Stdout, Text: *stdout}, nil) {
				return
			}
		}

		if dir == "" {
			return
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			yield(File{}, &qcerr.DirectoryNotFoundError{Path: dir})
			return
		}
		if !yield(File{Kind: Directory, Path: dir}, nil) {
			return
		}

		if stdout == nil || layout.Basename == nil {
			logger.Debug("Skipping companion file discovery.", "has_stdout", stdout != nil)
			return
		}
		basename, err := layout.Basename(*stdout)
		if err != nil {
			yield(File{}, err)
			return
		}

		for _, c := range layout.Companions {
			path := filepath.Join(dir, basename+c.Suffix)
			data, err := os.ReadFile(path)
			if err != nil {
				if os.IsNotExist(err) {
					logger.Debug("Companion file not present.", "kind", c.Kind, "path", path)
					continue
				}
				yield(File{}, qcerr.Parserf("reading %s: %v", path, err))
				return
			}
			logger.Debug("Resolved companion file.", "kind", c.Kind, "path", path)
			if !yield(File{Kind: c.Kind, Text: string(data), Path: path}, nil) {
				return
			}
		}
	}
}
