package panel2D

import (
	"fmt"
	"math"

	"github.com/notargets/gopanel/types"
	"github.com/notargets/gopanel/utils"
)

const (
	DefaultConditionLimit = 1.e12
	solveStage            = "solve"
)

// KuttaCondition is the last row of the singularity matrix. It sets the sum of
// the tangential velocities on the first and last panels to zero, which are
// equal in magnitude and opposite in direction at the trailing edge.
func KuttaCondition(A, B utils.Matrix) (row []float64) {
	var (
		_, N = A.Dims()
	)
	row = make([]float64, N+1)
	first, last := B.Row(0).DataP, B.Row(-1).DataP
	for j := 0; j < N; j++ {
		row[j] = first[j] + last[j]
	}
	row[N] = -(A.Row(0).Sum() + A.Row(-1).Sum())
	return
}

// BuildSingularityMatrix assembles the (N+1)x(N+1) system: the source block,
// the row sums of the vortex block (every panel shares one vortex strength),
// and the Kutta row.
func BuildSingularityMatrix(A, B utils.Matrix) (M utils.Matrix) {
	var (
		N, _ = A.Dims()
	)
	M = utils.NewMatrix(N+1, N+1)
	M.AssignBlock(0, 0, A)
	for i, val := range B.SumRows().DataP {
		M.Set(i, N, val)
	}
	M.SetRow(N, KuttaCondition(A, B))
	return
}

func BuildFreestreamRHS(panels Panels, fs Freestream) (b utils.Vector) {
	var (
		N = len(panels)
	)
	b = utils.NewVector(N + 1)
	for i, p := range panels {
		b.DataP[i] = -fs.Uinf * math.Cos(fs.Alpha-p.Beta)
	}
	b.DataP[N] = -fs.Uinf * (math.Sin(fs.Alpha-panels[0].Beta) + math.Sin(fs.Alpha-panels[N-1].Beta))
	return
}

// Strengths is the solution of the singularity system.
type Strengths struct {
	Sigma []float64 // Source strength per panel
	Gamma float64   // Vortex strength shared by all panels
	Cond  float64   // Condition number estimate of the system
}

// Vector returns [σ_0..σ_{N-1}, γ].
func (st Strengths) Vector() utils.Vector {
	data := append(append([]float64{}, st.Sigma...), st.Gamma)
	return utils.NewVector(len(data), data)
}

// SolveStrengths solves the singularity system with a dense LU factorization.
// A singular or badly conditioned system means the panel geometry is
// degenerate.
func SolveStrengths(M utils.Matrix, b utils.Vector, condLimit float64) (st Strengths, err error) {
	var (
		x    utils.Vector
		cond float64
		N, _ = M.Dims()
	)
	if condLimit <= 0 {
		condLimit = DefaultConditionLimit
	}
	if x, cond, err = M.LUSolve(b, condLimit); err != nil {
		err = types.NewSolveError(types.DegenerateGeometryError, solveStage, -1, -1,
			fmt.Errorf("singularity system (condition %8.3e): %w", cond, err))
		return
	}
	st = Strengths{
		Sigma: append([]float64{}, x.DataP[:N-1]...),
		Gamma: x.DataP[N-1],
		Cond:  cond,
	}
	return
}
