package model

import "github.com/specialistvlad/qccodec/internal/keywords"

// GeometryFilename is the conventional name of the coordinate file written
// alongside every encoded input.
const GeometryFilename = "geometry.xyz"

// Model is the level of theory.
type Model struct {
	Method string
	Basis  string
}

// JobSpec describes one calculation independently of any engine.
type JobSpec struct {
	CalcType  CalcType
	Structure Structure
	Model     Model
	// Keywords are free-form engine options. Names compare case-insensitively
	// but keep their original casing; a value may be a nested block.
	Keywords keywords.Map
}

// SinglePoint derives the gradient job for one step of an optimization: same
// model, the given structure, no keywords.
func (j JobSpec) SinglePoint(s Structure) JobSpec {
	return JobSpec{
		CalcType:  Gradient,
		Structure: s,
		Model:     j.Model,
	}
}

// NativeInput is what an encoder produces for one job.
type NativeInput struct {
	InputFile        string
	GeometryFile     string
	GeometryFilename string
}

// Provenance names the program that produced a result.
type Provenance struct {
	Program        string
	ProgramVersion string
}

// SinglePointResults are the computed quantities of one gradient evaluation.
type SinglePointResults struct {
	Energy   float64
	Gradient [][]float64
}

// ProgramOutput is one step of a decoded optimization trajectory.
type ProgramOutput struct {
	Input      JobSpec
	Success    bool
	Results    SinglePointResults
	Provenance Provenance
}
