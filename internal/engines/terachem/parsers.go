package terachem

import (
	"strings"

	"github.com/specialistvlad/qccodec/internal/extract"
	"github.com/specialistvlad/qccodec/internal/model"
	"github.com/specialistvlad/qccodec/internal/qcerr"
	"github.com/specialistvlad/qccodec/internal/textmatch"
)

const (
	energyPattern  = `FINAL ENERGY: (-?\d+(?:\.\d+)?)`
	gradientHeader = `dE/dX\s+dE/dY\s+dE/dZ`
	gradientRow    = `^\s*(-?\d+\.\d+)\s+(-?\d+\.\d+)\s+(-?\d+\.\d+)\s*$`
	// hessianRowFormat takes the 1-based row label. Values are printed six to
	// a line, so one row is spread over every column group.
	hessianRowFormat = `(?:\s+%d\s)((?:\s-?\d\.\d{15}e[+-]\d{2})+)`
	versionPattern   = `TeraChem (v\S*)`
	natomsPattern    = `Total atoms:\s*(\d+)`
	nmoPattern       = `Total orbitals:\s*(\d+)`
	methodPattern    = `Method: (\S+)`
	basisPattern     = `Using basis set: (\S+)`
)

// Source-control revision lines, most specific first.
var revisionPatterns = []string{
	`Git Version: (\S+)`,
	`Hg Version: (\S+)`,
}

var calcTypeBanners = []struct {
	calc    model.CalcType
	pattern string
}{
	{model.Energy, `SINGLE POINT ENERGY CALCULATIONS`},
	{model.Gradient, `SINGLE POINT GRADIENT CALCULATIONS`},
	{model.Hessian, ` FREQUENCY ANALYSIS `},
}

var failurePatterns = []string{
	`DIE called at line number .*`,
	`CUDA error:.*`,
}

// ParseEnergy returns the first final energy. Frequency runs print one per
// displaced geometry; the first belongs to the reference geometry.
func ParseEnergy(stdout string) (float64, error) {
	s, err := textmatch.MustCapture(energyPattern, stdout)
	if err != nil {
		return 0, err
	}
	return textmatch.ParseFloat(s)
}

// ParseGradient returns the first gradient table, one row per atom.
// TeraChem prints a single table per run, after the converged SCF, so unlike
// ORCA's optimizer output there is no later block to prefer.
func ParseGradient(stdout string) ([][]float64, error) {
	return extract.FirstGradient(stdout, gradientHeader, gradientRow)
}

// ParseHessian assembles the Hessian from its six-column printout.
func ParseHessian(stdout string) ([][]float64, error) {
	return extract.HessianRows(stdout, hessianRowFormat)
}

// ParseVersion returns the release tag, followed by the bracketed source
// revision when the build reports one, e.g. "v1.9-2022.03-dev [4daa16dd]".
func ParseVersion(stdout string) (string, error) {
	version, err := textmatch.MustCapture(versionPattern, stdout)
	if err != nil {
		return "", err
	}
	for _, p := range revisionPatterns {
		if m := textmatch.Compile(p).FindStringSubmatch(stdout); m != nil {
			return version + " [" + m[1] + "]", nil
		}
	}
	return version, nil
}

// ParseNAtoms returns the number of atoms.
func ParseNAtoms(stdout string) (int, error) {
	return captureInt(natomsPattern, stdout)
}

// ParseNMO returns the number of molecular orbitals.
func ParseNMO(stdout string) (int, error) {
	return captureInt(nmoPattern, stdout)
}

func ParseMethod(stdout string) (string, error) {
	return textmatch.MustCapture(methodPattern, stdout)
}

func ParseBasis(stdout string) (string, error) {
	return textmatch.MustCapture(basisPattern, stdout)
}

// ParseCalcType identifies the calculation from the run banner.
func ParseCalcType(stdout string) (model.CalcType, error) {
	for _, b := range calcTypeBanners {
		if textmatch.Compile(b.pattern).MatchString(stdout) {
			return b.calc, nil
		}
	}
	patterns := make([]string, len(calcTypeBanners))
	for i, b := range calcTypeBanners {
		patterns[i] = b.pattern
	}
	return 0, qcerr.NewPatternNotFound(strings.Join(patterns, "|"), stdout)
}

// ParseFailure returns the line that reports why the run died. A run with no
// such line yields a PatternNotFoundError.
func ParseFailure(stdout string) (string, error) {
	for _, p := range failurePatterns {
		if m := textmatch.Compile(p).FindString(stdout); m != "" {
			return m, nil
		}
	}
	return "", qcerr.NewPatternNotFound(strings.Join(failurePatterns, "|"), stdout)
}

// Succeeded reports whether stdout is free of known fatal error lines.
func Succeeded(stdout string) bool {
	_, err := ParseFailure(stdout)
	return err != nil
}

func captureInt(pattern, text string) (int, error) {
	s, err := textmatch.MustCapture(pattern, text)
	if err != nil {
		return 0, err
	}
	return textmatch.ParseInt(s)
}
