package extract

import (
	"github.com/specialistvlad/qccodec/internal/model"
	"github.com/specialistvlad/qccodec/internal/qcerr"
)

// AssembleTrajectory fuses per-step structures, energies and gradients into
// one ProgramOutput per optimization step.
//
// The converged final step is usually not followed by a gradient evaluation,
// so when there is exactly one gradient fewer than structures a zero gradient
// shaped like the previous one is used for the last step. Any other count
// mismatch is a parser error.
func AssembleTrajectory(
	structures []model.Structure,
	energies []float64,
	gradients [][][]float64,
	input model.JobSpec,
	provenance model.Provenance,
) ([]model.ProgramOutput, error) {
	if len(energies) != len(structures) {
		return nil, qcerr.Parserf("trajectory has %d structures but %d energies", len(structures), len(energies))
	}

	switch len(gradients) {
	case len(structures):
	case len(structures) - 1:
		gradients = append(gradients[:len(gradients):len(gradients)], zeroGradient(gradients, structures))
	default:
		return nil, qcerr.Parserf("trajectory has %d structures but %d gradients", len(structures), len(gradients))
	}

	trajectory := make([]model.ProgramOutput, len(structures))
	for i, s := range structures {
		s.Charge = input.Structure.Charge
		s.Multiplicity = input.Structure.Multiplicity
		trajectory[i] = model.ProgramOutput{
			Input:   input.SinglePoint(s),
			Success: true,
			Results: model.SinglePointResults{
				Energy:   energies[i],
				Gradient: gradients[i],
			},
			Provenance: provenance,
		}
	}
	return trajectory, nil
}

func zeroGradient(gradients [][][]float64, structures []model.Structure) [][]float64 {
	rows, cols := 0, 3
	if len(gradients) > 0 {
		prev := gradients[len(gradients)-1]
		rows = len(prev)
		if rows > 0 {
			cols = len(prev[0])
		}
	} else {
		rows = structures[len(structures)-1].NAtoms()
	}
	zero := make([][]float64, rows)
	for i := range zero {
		zero[i] = make([]float64, cols)
	}
	return zero
}
