package qccodec

import (
	"github.com/specialistvlad/qccodec/internal/collector"
	"github.com/specialistvlad/qccodec/internal/keywords"
	"github.com/specialistvlad/qccodec/internal/model"
	"github.com/specialistvlad/qccodec/internal/qcerr"
	"github.com/specialistvlad/qccodec/internal/target"
)

type (
	CalcType           = model.CalcType
	JobSpec            = model.JobSpec
	Structure          = model.Structure
	Model              = model.Model
	NativeInput        = model.NativeInput
	ProgramOutput      = model.ProgramOutput
	Provenance         = model.Provenance
	SinglePointResults = model.SinglePointResults

	Keywords     = keywords.Map
	KeywordValue = keywords.Value

	// Result is the outcome of a decode, addressed by target paths.
	Result = collector.Result
	// TargetPath addresses one value in a Result, e.g. "computed.energy".
	TargetPath = target.Path

	PatternNotFoundError   = qcerr.PatternNotFoundError
	MalformedNumberError   = qcerr.MalformedNumberError
	DirectoryNotFoundError = qcerr.DirectoryNotFoundError
)

const (
	Energy          = model.Energy
	Gradient        = model.Gradient
	Hessian         = model.Hessian
	Optimization    = model.Optimization
	TransitionState = model.TransitionState
)

// GeometryFilename is the name every encoder gives the geometry file.
const GeometryFilename = model.GeometryFilename

var (
	ErrPatternNotFound   = qcerr.ErrPatternNotFound
	ErrMalformedNumber   = qcerr.ErrMalformedNumber
	ErrDirectoryNotFound = qcerr.ErrDirectoryNotFound
	ErrParser            = qcerr.ErrParser
	ErrEncoder           = qcerr.ErrEncoder
)

var (
	ParseCalcType = model.ParseCalcType
	ParseXYZ      = model.ParseXYZ
	ParseTarget   = target.Parse
	MustTarget    = target.MustParse
)
