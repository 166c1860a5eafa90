package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/qccodec/internal/model"
	"github.com/specialistvlad/qccodec/internal/qcerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	cartesianHeader = `CARTESIAN GRADIENT`
	cartesianRow    = `:\s*(-?\d+\.\d+)\s+(-?\d+\.\d+)\s+(-?\d+\.\d+)\s*$`
)

const twoGradients = `
-------------------
CARTESIAN GRADIENT
-------------------

   1   O   :   -0.000000000    0.000000000    0.011744063
   2   H   :    0.000000000    0.007262380   -0.005872041
   3   H   :    0.000000000   -0.007262376   -0.005872022

Difference to translation invariance:
           :   -0.0000000000    0.0000000040    0.0000000000

... geometry step ...

-------------------
CARTESIAN GRADIENT
-------------------

   1   O   :    0.000000000    0.000000000    0.001000000
   2   H   :    0.000000000    0.000500000   -0.000500000
   3   H   :    0.000000000   -0.000500000   -0.000500000

Norm of the cartesian gradient     ...    0.0013
`

var (
	firstBlock = [][]float64{
		{-0.0, 0.0, 0.011744063},
		{0.0, 0.007262380, -0.005872041},
		{0.0, -0.007262376, -0.005872022},
	}
	secondBlock = [][]float64{
		{0.0, 0.0, 0.001},
		{0.0, 0.0005, -0.0005},
		{0.0, -0.0005, -0.0005},
	}
)

func TestGradients_AllBlocksInOrder(t *testing.T) {
	blocks, err := Gradients(twoGradients, cartesianHeader, cartesianRow)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	if diff := cmp.Diff([][][]float64{firstBlock, secondBlock}, blocks); diff != "" {
		t.Errorf("Gradients() mismatch (-want +got):\n%s", diff)
	}
}

func TestLastGradient_ReturnsSecondBlock(t *testing.T) {
	g, err := LastGradient(twoGradients, cartesianHeader, cartesianRow)
	require.NoError(t, err)
	assert.Equal(t, secondBlock, g)
}

func TestFirstGradient_ReturnsFirstBlock(t *testing.T) {
	g, err := FirstGradient(twoGradients, cartesianHeader, cartesianRow)
	require.NoError(t, err)
	assert.Equal(t, firstBlock, g)
}

func TestGradients_NoHeader(t *testing.T) {
	_, err := Gradients("FINAL SINGLE POINT ENERGY -76.3", cartesianHeader, cartesianRow)
	require.ErrorIs(t, err, qcerr.ErrPatternNotFound)

	var pnf *qcerr.PatternNotFoundError
	require.ErrorAs(t, err, &pnf)
	assert.Equal(t, cartesianHeader, pnf.Pattern)
}

func TestGradients_TableWithoutLabels(t *testing.T) {
	text := strings.Join([]string{
		"Gradient units are Hartree/Bohr",
		"---------------------------------------------------",
		"        dE/dX            dE/dY            dE/dZ",
		"   0.0000000000     0.0000000000    -0.0224457345",
		"   0.0000000000     0.0148302543     0.0112228673",
		"---------------------------------------------------",
	}, "\n")
	g, err := FirstGradient(text, `dE/dX\s+dE/dY\s+dE/dZ`, `^\s*(-?\d+\.\d+)\s+(-?\d+\.\d+)\s+(-?\d+\.\d+)\s*$`)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0, -0.0224457345}, {0, 0.0148302543, 0.0112228673}}, g)
}

// hessianValue is exactly representable, so printing and parsing it is lossless.
func hessianValue(i, j int) float64 {
	v := float64((i+1)*(j+1)) / 8
	if (i+j)%2 == 1 {
		v = -v
	}
	return v
}

func expectedHessian(dim int) [][]float64 {
	h := make([][]float64, dim)
	for i := range h {
		h[i] = make([]float64, dim)
		for j := range h[i] {
			h[i][j] = hessianValue(i, j)
		}
	}
	return h
}

// rowIndexedHessian prints a dim x dim matrix in six-column groups with
// 1-based labelled rows.
func rowIndexedHessian(dim int) string {
	var sb strings.Builder
	sb.WriteString(" *** Hessian Matrix (Hartree/Bohr^2) ***\n")
	for start := 0; start < dim; start += 6 {
		end := min(start+6, dim)
		for j := start; j < end; j++ {
			fmt.Fprintf(&sb, "%22d", j+1)
		}
		sb.WriteString("\n")
		for i := 0; i < dim; i++ {
			fmt.Fprintf(&sb, "%4d ", i+1)
			for j := start; j < end; j++ {
				fmt.Fprintf(&sb, " %.15e", hessianValue(i, j))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(" Frequencies follow\n")
	return sb.String()
}

const rowIndexedFormat = `(?:\s+%d\s)((?:\s-?\d\.\d{15}e[+-]\d{2})+)`

func TestHessianRows_NineByNine(t *testing.T) {
	h, err := HessianRows(rowIndexedHessian(9), rowIndexedFormat)
	require.NoError(t, err)
	require.Len(t, h, 9)
	if diff := cmp.Diff(expectedHessian(9), h); diff != "" {
		t.Errorf("HessianRows() mismatch (-want +got):\n%s", diff)
	}
}

func TestHessianRows_NoRows(t *testing.T) {
	_, err := HessianRows("nothing to see", rowIndexedFormat)
	require.ErrorIs(t, err, qcerr.ErrPatternNotFound)
}

// blockFileHessian prints a dim x dim matrix as a $hessian section of a
// block file, dropping the last data line of group dropFrom when >= 0.
func blockFileHessian(dim, dropFrom int) string {
	var sb strings.Builder
	sb.WriteString("\n$orca_hessian_file\n\n$act_atom\n  0\n\n$act_coord\n  0\n\n$hessian\n")
	fmt.Fprintf(&sb, "%d\n", dim)
	group := 0
	for start := 0; start < dim; start += 5 {
		end := min(start+5, dim)
		sb.WriteString("        ")
		for j := start; j < end; j++ {
			fmt.Fprintf(&sb, "%11d", j)
		}
		sb.WriteString("    \n")
		rows := dim
		if group == dropFrom {
			rows--
		}
		for i := 0; i < rows; i++ {
			fmt.Fprintf(&sb, "%6d    ", i)
			for j := start; j < end; j++ {
				fmt.Fprintf(&sb, " %10.6f", hessianValue(i, j))
			}
			sb.WriteString("\n")
		}
		group++
	}
	sb.WriteString("\n$vibrational_frequencies\n3\n    0       0.000000\n    1       0.000000\n    2    1627.290000\n\n$end\n")
	return sb.String()
}

func TestHessianBlocks_NineByNine(t *testing.T) {
	h, err := HessianBlocks(blockFileHessian(9, -1), "hessian")
	require.NoError(t, err)
	require.Len(t, h, 9)
	for _, row := range h {
		require.Len(t, row, 9)
	}
	if diff := cmp.Diff(expectedHessian(9), h); diff != "" {
		t.Errorf("HessianBlocks() mismatch (-want +got):\n%s", diff)
	}
}

func TestHessianBlocks_GroupRowCountMismatch(t *testing.T) {
	_, err := HessianBlocks(blockFileHessian(9, 1), "hessian")
	require.ErrorIs(t, err, qcerr.ErrParser)
	assert.Contains(t, err.Error(), "column group 2 has 8 lines, expected 9")
}

func TestHessianBlocks_MissingSection(t *testing.T) {
	_, err := HessianBlocks("$orca_hessian_file\n$end\n", "hessian")
	require.ErrorIs(t, err, qcerr.ErrParser)
}

func TestHessianBlocks_DimensionBeyondSection(t *testing.T) {
	text := "$hessian\n1000000000000\n   0   1\n 0  1.0  0.5\n$end\n"
	_, err := HessianBlocks(text, "hessian")
	require.ErrorIs(t, err, qcerr.ErrParser)
	assert.Contains(t, err.Error(), "exceeds the 2 lines of the section")
}

func TestHessianBlocks_BadNumber(t *testing.T) {
	text := "$hessian\n2\n   0   1\n 0  1.0  x.5\n 1  0.5  1.0\n$end\n"
	_, err := HessianBlocks(text, "hessian")
	require.ErrorIs(t, err, qcerr.ErrMalformedNumber)
}

func water(comment string, dz float64) model.Structure {
	return model.Structure{
		Symbols:      []string{"O", "H", "H"},
		Geometry:     [][3]float64{{0, 0, 0}, {0, 0.757, 0.586 + dz}, {0, -0.757, 0.586 + dz}},
		Multiplicity: 1,
		Comment:      comment,
	}
}

func TestAssembleTrajectory(t *testing.T) {
	input := model.JobSpec{
		CalcType:  model.Optimization,
		Structure: model.Structure{Charge: -1, Multiplicity: 2},
		Model:     model.Model{Method: "b3lyp", Basis: "def2-svp"},
	}
	prov := model.Provenance{Program: "orca", ProgramVersion: "6.1.0"}
	structures := []model.Structure{water("E -76.1", 0), water("E -76.2", 0.01), water("E -76.3", 0.02)}
	energies := []float64{-76.1, -76.2, -76.3}
	grad := func(v float64) [][]float64 { return [][]float64{{0, 0, v}, {0, v, -v}, {0, -v, -v}} }

	t.Run("one gradient short gets a zero final gradient", func(t *testing.T) {
		traj, err := AssembleTrajectory(structures, energies, [][][]float64{grad(0.1), grad(0.01)}, input, prov)
		require.NoError(t, err)
		require.Len(t, traj, 3)

		assert.Equal(t, [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}, traj[2].Results.Gradient)
		assert.Equal(t, grad(0.01), traj[1].Results.Gradient)
		for i, step := range traj {
			assert.True(t, step.Success)
			assert.Equal(t, energies[i], step.Results.Energy)
			assert.Equal(t, model.Gradient, step.Input.CalcType)
			assert.Equal(t, input.Model, step.Input.Model)
			assert.Equal(t, -1, step.Input.Structure.Charge)
			assert.Equal(t, 2, step.Input.Structure.Multiplicity)
			assert.Equal(t, prov, step.Provenance)
		}
	})

	t.Run("equal counts are kept as is", func(t *testing.T) {
		gradients := [][][]float64{grad(0.1), grad(0.01), grad(0.001)}
		traj, err := AssembleTrajectory(structures, energies, gradients, input, prov)
		require.NoError(t, err)
		require.Len(t, traj, 3)
		assert.Equal(t, grad(0.001), traj[2].Results.Gradient)
	})

	t.Run("larger mismatch fails", func(t *testing.T) {
		_, err := AssembleTrajectory(structures, energies, [][][]float64{grad(0.1)}, input, prov)
		require.ErrorIs(t, err, qcerr.ErrParser)
	})

	t.Run("energy count mismatch fails", func(t *testing.T) {
		_, err := AssembleTrajectory(structures, energies[:2], [][][]float64{grad(0.1), grad(0.01)}, input, prov)
		require.ErrorIs(t, err, qcerr.ErrParser)
	})

	t.Run("caller gradients are not modified", func(t *testing.T) {
		gradients := make([][][]float64, 2, 3)
		gradients[0], gradients[1] = grad(0.1), grad(0.01)
		_, err := AssembleTrajectory(structures, energies, gradients, input, prov)
		require.NoError(t, err)
		assert.Len(t, gradients, 2)
		assert.Nil(t, gradients[:3][2])
	})
}
