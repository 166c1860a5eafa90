package registry

import (
	"context"
	"slices"

	"github.com/specialistvlad/qccodec/internal/fileset"
	"github.com/specialistvlad/qccodec/internal/model"
	"github.com/specialistvlad/qccodec/internal/target"
)

// Source is what an extractor receives: the file it was selected for, plus
// the stdout text and the caller's job for extractors that cross-reference
// them. Stdout and Input are nil when the caller did not supply them.
type Source struct {
	File   fileset.File
	Stdout *string
	Input  *model.JobSpec
}

// ExtractFunc pulls one value out of a source.
type ExtractFunc func(ctx context.Context, src Source) (any, error)

// Entry binds an extractor to the files it reads, the calculation types it
// runs for, and the target it writes.
type Entry struct {
	Engine string
	File   fileset.Kind
	// CalcTypes limits the entry to these calculation types. Empty means all.
	CalcTypes []model.CalcType
	Target    target.Path
	// Optional entries that find no match are skipped instead of failing
	// the decode.
	Optional bool
	Extract  ExtractFunc
}

// AppliesTo reports whether the entry runs for calc.
func (e *Entry) AppliesTo(calc model.CalcType) bool {
	return len(e.CalcTypes) == 0 || slices.Contains(e.CalcTypes, calc)
}

// Text adapts a parser of the selected file's text into an ExtractFunc.
func Text[T any](parse func(string) (T, error)) ExtractFunc {
	return func(_ context.Context, src Source) (any, error) {
		v, err := parse(src.File.Text)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}
