package panel2D

import (
	"math"

	"github.com/notargets/gopanel/utils"
)

// SurfaceSolution holds the per panel surface quantities.
type SurfaceSolution struct {
	Vt []float64 // Tangential velocity at the panel center
	Cp []float64 // Pressure coefficient at the panel center
}

// TangentialVelocity evaluates [B | -rowsum(A)]·[σ; γ] plus the freestream
// tangential component at each panel center.
func TangentialVelocity(panels Panels, fs Freestream, st Strengths, inf *Influence) (vt []float64) {
	var (
		N = len(panels)
		T = utils.NewMatrix(N, N+1)
	)
	T.AssignBlock(0, 0, inf.B)
	for i, val := range inf.A.SumRows().DataP {
		T.Set(i, N, -val)
	}
	vtInf := utils.NewVector(N)
	for i, p := range panels {
		vtInf.DataP[i] = fs.Uinf * math.Sin(fs.Alpha-p.Beta)
	}
	vt = T.MulVec(st.Vector()).AddVec(vtInf).DataP
	return
}

func PressureCoefficients(vt []float64, fs Freestream) (cp []float64) {
	if len(vt) == 0 {
		return
	}
	return utils.NewVector(len(vt), vt).Copy().Apply(func(v float64) float64 {
		return 1 - utils.POW(v/fs.Uinf, 2)
	}).DataP
}

// LiftCoefficient from the Kutta-Joukowski theorem: the total circulation is
// γ times the perimeter.
func LiftCoefficient(panels Panels, fs Freestream, gamma float64) float64 {
	return gamma * panels.Perimeter() / (0.5 * fs.Uinf * panels.Chord())
}

// SourceSum is Σσ·L, zero for a closed body; its size measures the
// discretization error.
func SourceSum(panels Panels, sigma []float64) float64 {
	if len(panels) == 0 {
		return 0
	}
	return utils.NewVector(len(sigma), sigma).Dot(utils.NewVector(len(panels), panels.Lengths()))
}
