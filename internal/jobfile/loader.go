// Package jobfile reads and writes job descriptions in HCL.
//
// A job file holds one job:
//
//	calctype = "optimization"
//
//	model {
//	  method = "b3lyp"
//	  basis  = "def2-svp"
//	}
//
//	structure {
//	  charge       = 0
//	  multiplicity = 1
//	  symbols      = ["O", "H", "H"]
//	  geometry     = [[0, 0, 0], [0, 0.76, 0.59], [0, -0.76, 0.59]]
//	}
//
//	keywords {
//	  maxcore = 500
//	  scf {
//	    convergence = "verytight"
//	  }
//	}
//
// Keywords keep their source order, so attributes and blocks may be
// interleaved. A keyword block holds attributes only.
package jobfile

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/qccodec/internal/ctxlog"
	"github.com/specialistvlad/qccodec/internal/model"
)

// fileRoot is the top-level schema of a job file.
type fileRoot struct {
	CalcType  string          `hcl:"calctype"`
	Model     *modelBlock     `hcl:"model,block"`
	Structure *structureBlock `hcl:"structure,block"`
	Keywords  *keywordsBlock  `hcl:"keywords,block"`
}

type modelBlock struct {
	Method string `hcl:"method"`
	Basis  string `hcl:"basis,optional"`
}

type structureBlock struct {
	Charge       int         `hcl:"charge,optional"`
	Multiplicity int         `hcl:"multiplicity,optional"`
	Symbols      []string    `hcl:"symbols"`
	Geometry     [][]float64 `hcl:"geometry"`
}

type keywordsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// Load reads and parses the job file at path.
func Load(ctx context.Context, path string) (model.JobSpec, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return model.JobSpec{}, fmt.Errorf("failed to read job file %s: %w", path, err)
	}
	return Parse(ctx, src, path)
}

// Parse decodes a job file. filename is used in diagnostics only.
func Parse(ctx context.Context, src []byte, filename string) (model.JobSpec, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing job file.", "file", filename, "bytes", len(src))

	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return model.JobSpec{}, fmt.Errorf("failed to parse job file %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return model.JobSpec{}, fmt.Errorf("failed to decode job file %s: %w", filename, diags)
	}

	calc, err := model.ParseCalcType(root.CalcType)
	if err != nil {
		return model.JobSpec{}, fmt.Errorf("job file %s: %w", filename, err)
	}
	job := model.JobSpec{CalcType: calc}

	if root.Model != nil {
		job.Model = model.Model{Method: root.Model.Method, Basis: root.Model.Basis}
	}
	if root.Structure != nil {
		s, err := translateStructure(root.Structure)
		if err != nil {
			return model.JobSpec{}, fmt.Errorf("job file %s: %w", filename, err)
		}
		job.Structure = s
	}
	if root.Keywords != nil {
		kw, diags := decodeKeywords(root.Keywords.Body)
		if diags.HasErrors() {
			return model.JobSpec{}, fmt.Errorf("failed to decode keywords in job file %s: %w", filename, diags)
		}
		job.Keywords = kw
	}

	logger.Debug("Job file parsed.", "calctype", job.CalcType.String(), "atoms", job.Structure.NAtoms(), "keywords", job.Keywords.Len())
	return job, nil
}

func translateStructure(b *structureBlock) (model.Structure, error) {
	if len(b.Symbols) != len(b.Geometry) {
		return model.Structure{}, fmt.Errorf("structure has %d symbols but %d coordinates", len(b.Symbols), len(b.Geometry))
	}
	s := model.Structure{
		Symbols:      b.Symbols,
		Geometry:     make([][3]float64, len(b.Geometry)),
		Charge:       b.Charge,
		Multiplicity: b.Multiplicity,
	}
	if s.Multiplicity == 0 {
		s.Multiplicity = 1
	}
	for i, row := range b.Geometry {
		if len(row) != 3 {
			return model.Structure{}, fmt.Errorf("coordinate %d has %d components, expected 3", i+1, len(row))
		}
		s.Geometry[i] = [3]float64{row[0], row[1], row[2]}
	}
	return s, nil
}
