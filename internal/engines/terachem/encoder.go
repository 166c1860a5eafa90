package terachem

import (
	"context"
	"strconv"
	"strings"

	"github.com/specialistvlad/qccodec/internal/ctxlog"
	"github.com/specialistvlad/qccodec/internal/keywords"
	"github.com/specialistvlad/qccodec/internal/model"
	"github.com/specialistvlad/qccodec/internal/qcerr"
)

// runTypes maps the supported calculation types to tc.in run values.
var runTypes = map[model.CalcType]string{
	model.Energy:   "energy",
	model.Gradient: "gradient",
	model.Hessian:  "frequencies",
}

// reserved keywords are derived from the job's structured fields.
var reserved = []string{"run", "coordinates", "charge", "spinmult", "method", "basis"}

// Encode renders job as a tc.in file: one padded key/value line per
// setting, structural settings first and caller keywords after in their
// given order.
func Encode(ctx context.Context, job model.JobSpec) (model.NativeInput, error) {
	run, ok := runTypes[job.CalcType]
	if !ok {
		return model.NativeInput{}, qcerr.Encoderf("calculation type %s is not supported by %s", job.CalcType, Name)
	}
	if err := job.Structure.Validate(); err != nil {
		return model.NativeInput{}, qcerr.Encoderf("%s", err)
	}
	if err := job.Keywords.CheckDuplicates(); err != nil {
		return model.NativeInput{}, err
	}
	for _, name := range reserved {
		if key, _, found := job.Keywords.Lookup(name); found {
			return model.NativeInput{}, qcerr.Encoderf("keyword '%s' must not be set directly; it is derived from the job's calculation type, structure or model", key)
		}
	}

	lines := []string{
		keywords.Line("run", run),
		keywords.Line("coordinates", model.GeometryFilename),
		keywords.Line("charge", strconv.Itoa(job.Structure.Charge)),
		keywords.Line("spinmult", strconv.Itoa(job.Structure.Multiplicity)),
		keywords.Line("method", job.Model.Method),
	}
	if job.Model.Basis != "" {
		lines = append(lines, keywords.Line("basis", job.Model.Basis))
	}
	for key, v := range job.Keywords.All() {
		if v.IsBlock() {
			return model.NativeInput{}, qcerr.Encoderf("keyword '%s': %s input has no blocks, expected a scalar value", key, Name)
		}
		lines = append(lines, keywords.Line(key, v.Render()))
	}

	ctxlog.FromContext(ctx).Debug("Encoded tc.in.", "run", run, "keywords", job.Keywords.Len())
	return model.NativeInput{
		InputFile:        strings.Join(lines, "\n") + "\n",
		GeometryFile:     job.Structure.XYZ(),
		GeometryFilename: model.GeometryFilename,
	}, nil
}
