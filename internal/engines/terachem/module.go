// Package terachem decodes TeraChem stdout and encodes TeraChem tc.in input
// files. TeraChem writes everything a decode needs to stdout, so its layout
// declares no companion files.
package terachem

import (
	"github.com/specialistvlad/qccodec/internal/fileset"
	"github.com/specialistvlad/qccodec/internal/model"
	"github.com/specialistvlad/qccodec/internal/registry"
	"github.com/specialistvlad/qccodec/internal/target"
)

// Name is the engine name TeraChem is registered under.
const Name = "terachem"

// Module implements the registry.Module interface for this package.
type Module struct{}

var singlePoints = []model.CalcType{model.Energy, model.Gradient, model.Hessian}

// Register registers the engine, its encoder and its stdout extractors.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterEngine(Name, &registry.Engine{
		Layout: fileset.Layout{},
		Encode: Encode,
	})

	stdout := func(path string, calcs []model.CalcType, optional bool, fn registry.ExtractFunc) {
		r.RegisterExtractor(&registry.Entry{
			Engine:    Name,
			File:      fileset.Stdout,
			CalcTypes: calcs,
			Target:    target.MustParse(path),
			Optional:  optional,
			Extract:   fn,
		})
	}

	stdout("computed.energy", singlePoints, false, registry.Text(ParseEnergy))
	stdout("computed.gradient", []model.CalcType{model.Gradient, model.Hessian}, false, registry.Text(ParseGradient))
	stdout("computed.hessian", []model.CalcType{model.Hessian}, false, registry.Text(ParseHessian))
	stdout("computed.calcinfo_natoms", nil, false, registry.Text(ParseNAtoms))
	stdout("computed.calcinfo_nmo", nil, true, registry.Text(ParseNMO))
	stdout("provenance.program_version", nil, false, registry.Text(ParseVersion))
	stdout("input.model.method", nil, true, registry.Text(ParseMethod))
	stdout("input.model.basis", nil, true, registry.Text(ParseBasis))
	stdout("input.calctype", nil, true, registry.Text(ParseCalcType))
	stdout("extras.failure", nil, true, registry.Text(ParseFailure))
}
