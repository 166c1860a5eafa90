package orca

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/qccodec/internal/ctxlog"
	"github.com/specialistvlad/qccodec/internal/keywords"
	"github.com/specialistvlad/qccodec/internal/model"
	"github.com/specialistvlad/qccodec/internal/qcerr"
)

// Keywords the encoder treats specially. Names compare case-insensitively.
const (
	coordsKeyword  = "coords"
	maxcoreKeyword = "maxcore"
	methodKeyword  = "method"
	basisKeyword   = "basis"
	numgradKeyword = "numgrad"
	runtypKeyword  = "runtyp"
)

const blockIndent = "    "

// Encode renders job as an ORCA input file. The geometry is always written
// to a separate xyz file referenced by the final "* xyzfile" line.
//
// Energy and gradient runs are selected with runtyp inside %method. Every
// other calculation type is a "!" directive. A numgrad keyword that is a
// block or true requests numerical gradients: it turns runtyp gradient into
// numgrad, or follows the directive, e.g. "! opt numgrad".
func Encode(ctx context.Context, job model.JobSpec) (model.NativeInput, error) {
	if err := job.Structure.Validate(); err != nil {
		return model.NativeInput{}, qcerr.Encoderf("%s", err)
	}
	kw := job.Keywords
	if err := validateKeywords(kw); err != nil {
		return model.NativeInput{}, err
	}

	numgradKey, numgradVal, hasNumgrad := kw.Lookup(numgradKeyword)
	needsNumgrad := hasNumgrad && (numgradVal.IsBlock() || numgradVal.Truthy())

	var directive, runtyp string
	switch job.CalcType {
	case model.Energy:
		runtyp = "energy"
	case model.Gradient:
		runtyp = "gradient"
		if needsNumgrad {
			runtyp = "numgrad"
		}
	case model.Hessian:
		directive = "freq"
	case model.Optimization:
		directive = "opt"
	case model.TransitionState:
		directive = "optts"
	default:
		return model.NativeInput{}, qcerr.Encoderf("calculation type %s is not supported by %s", job.CalcType, Name)
	}
	if directive != "" && needsNumgrad {
		directive += " " + numgradKey
	}

	var lines []string
	if _, v, ok := kw.Lookup(maxcoreKeyword); ok {
		lines = append(lines, "%maxcore "+v.Render())
	}
	lines = append(lines, "! "+job.Model.Method)
	if directive != "" {
		lines = append(lines, "! "+directive)
	}

	methodKey, methodVal, hasMethod := kw.Lookup(methodKeyword)
	if runtyp != "" || hasMethod {
		block := newBlock(methodKey)
		if runtyp != "" {
			block.Add(runtypKeyword, runtyp)
		}
		if err := addEntries(block, methodKey, methodVal, hasMethod, keywords.Value.Render); err != nil {
			return model.NativeInput{}, err
		}
		lines = append(lines, block.Lines()...)
	}

	basisKey, basisVal, hasBasis := kw.Lookup(basisKeyword)
	if job.Model.Basis != "" || hasBasis {
		block := newBlock(basisKey)
		if job.Model.Basis != "" {
			block.Add(basisKeyword, keywords.String(job.Model.Basis).Quoted())
		}
		if err := addEntries(block, basisKey, basisVal, hasBasis, keywords.Value.Quoted); err != nil {
			return model.NativeInput{}, err
		}
		lines = append(lines, block.Lines()...)
	}

	if needsNumgrad && numgradVal.IsBlock() {
		block := newBlock(numgradKey)
		if err := addEntries(block, numgradKey, numgradVal, true, keywords.Value.Render); err != nil {
			return model.NativeInput{}, err
		}
		lines = append(lines, block.Lines()...)
	}

	for key, v := range kw.All() {
		if isHandled(key) {
			continue
		}
		block := newBlock(key)
		if err := addEntries(block, key, v, true, keywords.Value.Render); err != nil {
			return model.NativeInput{}, err
		}
		lines = append(lines, block.Lines()...)
	}

	lines = append(lines, fmt.Sprintf("* xyzfile %d %d %s", job.Structure.Charge, job.Structure.Multiplicity, model.GeometryFilename))

	ctxlog.FromContext(ctx).Debug("Encoded ORCA input.", "calctype", job.CalcType.String(), "numgrad", needsNumgrad, "lines", len(lines))
	return model.NativeInput{
		InputFile:        strings.Join(lines, "\n") + "\n",
		GeometryFile:     job.Structure.XYZ(),
		GeometryFilename: model.GeometryFilename,
	}, nil
}

func newBlock(name string) *keywords.Section {
	return &keywords.Section{Open: "%" + name, Close: "end", Indent: blockIndent}
}

// addEntries renders the sub-keywords of a block keyword into block. A
// keyword that is present but not a block is an error.
func addEntries(block *keywords.Section, key string, v keywords.Value, present bool, render func(keywords.Value) string) error {
	if !present {
		return nil
	}
	sub, ok := v.AsBlock()
	if !ok {
		return qcerr.Encoderf("expected a block of keywords for '%s', got %s value %s", key, v.Kind(), v.Render())
	}
	for k, sv := range sub.All() {
		block.Add(k, render(sv))
	}
	return nil
}

// isHandled reports keywords that are emitted at a fixed position rather
// than as a trailing block.
func isHandled(key string) bool {
	for _, name := range []string{maxcoreKeyword, methodKeyword, basisKeyword, numgradKeyword} {
		if strings.EqualFold(key, name) {
			return true
		}
	}
	return false
}

// validateKeywords rejects keyword sets that would collide with what the
// encoder writes itself.
func validateKeywords(kw keywords.Map) error {
	if err := kw.CheckDuplicates(); err != nil {
		return err
	}
	for key, v := range kw.All() {
		if strings.EqualFold(key, coordsKeyword) {
			return qcerr.Encoderf("keyword '%s' is reserved; the structure is always written to %s", key, model.GeometryFilename)
		}
		if strings.EqualFold(key, maxcoreKeyword) && v.IsBlock() {
			return qcerr.Encoderf("keyword '%s' must be a scalar", key)
		}
		block, ok := v.AsBlock()
		if !ok {
			continue
		}
		for sub, sv := range block.All() {
			if strings.EqualFold(sub, key) {
				return qcerr.Encoderf("block '%s' must not contain a keyword of the same name, found '%s'", key, sub)
			}
			if strings.EqualFold(key, methodKeyword) && strings.EqualFold(sub, runtypKeyword) {
				return qcerr.Encoderf("block '%s' must not contain '%s'; the run type follows the job's calculation type", key, sub)
			}
			if sv.IsBlock() {
				return qcerr.Encoderf("block '%s' keyword '%s': blocks cannot be nested", key, sub)
			}
		}
	}
	return nil
}
