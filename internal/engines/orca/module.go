// Package orca decodes ORCA result directories and encodes ORCA input files.
//
// ORCA splits its results across stdout and files written next to the input
// file. The companions are named after the input file's stem, which is read
// from the NAME line stdout echoes at the start of a run: the Hessian lands in
// {basename}.hess and every optimization step in {basename}_trj.xyz.
package orca

import (
	"github.com/specialistvlad/qccodec/internal/fileset"
	"github.com/specialistvlad/qccodec/internal/model"
	"github.com/specialistvlad/qccodec/internal/registry"
	"github.com/specialistvlad/qccodec/internal/target"
)

// Name is the engine name ORCA is registered under.
const Name = "orca"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the engine, its encoder and its extractors.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterEngine(Name, &registry.Engine{
		Layout: fileset.Layout{
			Companions: []fileset.Companion{{Kind: fileset.Hess, Suffix: ".hess"}},
			Basename:   ParseBasename,
		},
		Encode: Encode,
	})

	entries := []*registry.Entry{
		{
			File:      fileset.Stdout,
			CalcTypes: []model.CalcType{model.Energy, model.Gradient, model.Hessian},
			Target:    target.MustParse("computed.energy"),
			Extract:   registry.Text(ParseEnergy),
		},
		{
			File:      fileset.Stdout,
			CalcTypes: []model.CalcType{model.Gradient, model.Hessian},
			Target:    target.MustParse("computed.gradient"),
			Extract:   registry.Text(ParseGradient),
		},
		{
			File:      fileset.Hess,
			CalcTypes: []model.CalcType{model.Hessian},
			Target:    target.MustParse("computed.hessian"),
			Extract:   registry.Text(ParseHessian),
		},
		{
			File:      fileset.Directory,
			CalcTypes: []model.CalcType{model.Optimization, model.TransitionState},
			Target:    target.MustParse("computed.trajectory"),
			Extract:   ParseTrajectory,
		},
		{
			File:    fileset.Stdout,
			Target:  target.MustParse("provenance.program_version"),
			Extract: registry.Text(ParseVersion),
		},
		{
			File:    fileset.Stdout,
			Target:  target.MustParse("computed.calcinfo_natoms"),
			Extract: registry.Text(ParseNAtoms),
		},
	}
	for _, e := range entries {
		e.Engine = Name
		r.RegisterExtractor(e)
	}
}
