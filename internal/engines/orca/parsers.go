package orca

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/qccodec/internal/ctxlog"
	"github.com/specialistvlad/qccodec/internal/extract"
	"github.com/specialistvlad/qccodec/internal/model"
	"github.com/specialistvlad/qccodec/internal/qcerr"
	"github.com/specialistvlad/qccodec/internal/registry"
	"github.com/specialistvlad/qccodec/internal/textmatch"
)

const (
	basenamePattern = `NAME\s+=\s+(.*)`
	energyPattern   = `FINAL SINGLE POINT ENERGY\s+(-?\d+\.\d+)`
	gradientHeader  = `CARTESIAN GRADIENT`
	gradientRow     = `:\s*(-?\d+\.\d+)\s+(-?\d+\.\d+)\s+(-?\d+\.\d+)\s*$`
	versionPattern  = `Program Version (\d+\.\d+\.\d+)`
	natomsPattern   = `Number of atoms\s*...\s*(\d+)`

	hessianSection   = "hessian"
	trajectorySuffix = "_trj.xyz"
)

// ParseBasename returns the stem of the input file named in stdout. Every
// file of the run is written next to it under this stem.
func ParseBasename(stdout string) (string, error) {
	name, err := textmatch.MustCapture(basenamePattern, stdout)
	if err != nil {
		return "", err
	}
	base := filepath.Base(strings.TrimSpace(name))
	return strings.TrimSuffix(base, filepath.Ext(base)), nil
}

func ParseEnergy(stdout string) (float64, error) {
	s, err := textmatch.MustCapture(energyPattern, stdout)
	if err != nil {
		return 0, err
	}
	return textmatch.ParseFloat(s)
}

// ParseGradients returns every printed gradient in document order. An
// optimization prints one per step.
func ParseGradients(stdout string) ([][][]float64, error) {
	return extract.Gradients(stdout, gradientHeader, gradientRow)
}

// ParseGradient returns the last printed gradient.
func ParseGradient(stdout string) ([][]float64, error) {
	return extract.LastGradient(stdout, gradientHeader, gradientRow)
}

// ParseHessian reads the $hessian section of a .hess file.
func ParseHessian(contents string) ([][]float64, error) {
	return extract.HessianBlocks(contents, hessianSection)
}

func ParseVersion(stdout string) (string, error) {
	return textmatch.MustCapture(versionPattern, stdout)
}

func ParseNAtoms(stdout string) (int, error) {
	s, err := textmatch.MustCapture(natomsPattern, stdout)
	if err != nil {
		return 0, err
	}
	return textmatch.ParseInt(s)
}

// ParseTrajectory rebuilds an optimization from the {basename}_trj.xyz file
// in the result directory and the per-step gradients in stdout. The energy
// of each step is the last field of its xyz comment line.
func ParseTrajectory(ctx context.Context, src registry.Source) (any, error) {
	if src.Stdout == nil {
		return nil, qcerr.Parserf("trajectory extraction needs stdout to locate %s files", Name)
	}
	stdout := *src.Stdout

	basename, err := ParseBasename(stdout)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(src.File.Path, basename+trajectorySuffix)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, qcerr.Parserf("trajectory file does not exist: %s", path)
	}
	if err != nil {
		return nil, qcerr.Parserf("reading trajectory file %s: %v", path, err)
	}

	structures, err := model.ParseXYZMulti(string(data))
	if err != nil {
		return nil, err
	}
	energies := make([]float64, len(structures))
	for i, s := range structures {
		fields := strings.Fields(s.Comment)
		if len(fields) == 0 {
			return nil, qcerr.Parserf("trajectory frame %d has no energy in its comment line", i+1)
		}
		if energies[i], err = textmatch.ParseFloat(fields[len(fields)-1]); err != nil {
			return nil, err
		}
	}

	gradients, err := ParseGradients(stdout)
	if err != nil {
		return nil, err
	}
	version, err := ParseVersion(stdout)
	if err != nil {
		return nil, err
	}

	input := model.JobSpec{Structure: model.Structure{Multiplicity: 1}}
	if src.Input != nil {
		input = *src.Input
	}
	ctxlog.FromContext(ctx).Debug("Assembling trajectory.", "file", path, "steps", len(structures), "gradients", len(gradients))

	trajectory, err := extract.AssembleTrajectory(structures, energies, gradients, input, model.Provenance{
		Program:        Name,
		ProgramVersion: version,
	})
	if err != nil {
		return nil, err
	}
	return trajectory, nil
}
