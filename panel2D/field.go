package panel2D

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gopanel/types"
	"github.com/notargets/gopanel/utils"
)

const fieldStage = "field"

// Field holds velocity and pressure coefficient at each evaluation point,
// shaped like the X and Y point arrays.
type Field struct {
	U, V, Cp utils.Matrix
}

// MeshGrid returns ny x nx arrays of point coordinates, x varying along rows.
func MeshGrid(xStart, xEnd float64, nx int, yStart, yEnd float64, ny int) (X, Y utils.Matrix) {
	var (
		xs, ys = make([]float64, nx), make([]float64, ny)
	)
	spaced(xs, xStart, xEnd)
	spaced(ys, yStart, yEnd)
	X, Y = utils.NewMatrix(ny, nx), utils.NewMatrix(ny, nx)
	for j := 0; j < ny; j++ {
		X.SetRow(j, xs)
		Y.SetRow(j, utils.ConstArray(nx, ys[j]))
	}
	return
}

func spaced(dst []float64, l, u float64) {
	if len(dst) == 1 {
		dst[0] = l
		return
	}
	floats.Span(dst, l, u)
}

// FieldEvaluator superposes the freestream with the source sheet on every
// panel. By default the shared vortex sheet is left out of the field: its
// strength enters through the surface boundary condition that fixed σ.
type FieldEvaluator struct {
	Panels             Panels
	Freestream         Freestream
	Strengths          Strengths
	Integrator         LineIntegrator
	Workers            int
	IncludeVortexSheet bool
}

func NewFieldEvaluator(panels Panels, fs Freestream, st Strengths, li LineIntegrator) (fe *FieldEvaluator, err error) {
	if li == nil {
		li = NewAdaptiveQuadrature(0, 0, 0, 0)
	}
	fe = &FieldEvaluator{
		Panels:     panels,
		Freestream: fs,
		Strengths:  st,
		Integrator: li,
	}
	if err = fe.Validate(); err != nil {
		return nil, err
	}
	return
}

// Validate checks that every panel carries a finite solved strength.
func (fe *FieldEvaluator) Validate() (err error) {
	var (
		N = len(fe.Panels)
	)
	switch {
	case N == 0:
		err = types.NewSolveError(types.UnsolvedPanelsError, fieldStage, -1, -1,
			fmt.Errorf("no panels"))
	case len(fe.Strengths.Sigma) != N:
		err = types.NewSolveError(types.UnsolvedPanelsError, fieldStage, len(fe.Strengths.Sigma), -1,
			fmt.Errorf("%d source strengths for %d panels", len(fe.Strengths.Sigma), N))
	default:
		if ind := utils.FirstNonFinite(fe.Strengths.Sigma); ind >= 0 {
			err = types.NewSolveError(types.UnsolvedPanelsError, fieldStage, ind, -1,
				fmt.Errorf("source strength is %v", fe.Strengths.Sigma[ind]))
		} else if utils.FirstNonFinite([]float64{fe.Strengths.Gamma}) >= 0 {
			err = types.NewSolveError(types.UnsolvedPanelsError, fieldStage, -1, -1,
				fmt.Errorf("vortex strength is %v", fe.Strengths.Gamma))
		}
	}
	return
}

func (fe *FieldEvaluator) VelocityAt(x, y float64) (u, v float64, err error) {
	if err = fe.Validate(); err != nil {
		return
	}
	return fe.velocityAt(x, y)
}

func (fe *FieldEvaluator) velocityAt(x, y float64) (u, v float64, err error) {
	var (
		du, dv float64
		gamma  = fe.Strengths.Gamma
	)
	u, v = fe.Freestream.Velocity()
	for j, p := range fe.Panels {
		if du, err = fe.Integrator.PanelIntegral(x, y, p, 1, 0); err != nil {
			return 0, 0, fe.pointError(j, x, y, err)
		}
		if dv, err = fe.Integrator.PanelIntegral(x, y, p, 0, 1); err != nil {
			return 0, 0, fe.pointError(j, x, y, err)
		}
		sigma := fe.Strengths.Sigma[j]
		u += sigma / (2 * math.Pi) * du
		v += sigma / (2 * math.Pi) * dv
		if fe.IncludeVortexSheet {
			// The vortex direction pair is the source pair rotated by 90°
			u += gamma / (2 * math.Pi) * dv
			v -= gamma / (2 * math.Pi) * du
		}
	}
	return
}

func (fe *FieldEvaluator) pointError(j int, x, y float64, err error) error {
	return types.NewSolveError(types.IntegrationError, fieldStage, -1, j,
		fmt.Errorf("at field point (%g, %g): %w", x, y, err))
}

// Evaluate computes the field at every point of X, Y. Points are split
// across workers; the context is checked between points.
func (fe *FieldEvaluator) Evaluate(ctx context.Context, X, Y utils.Matrix) (f *Field, err error) {
	var (
		nr, nc   = X.Dims()
		nrY, ncY = Y.Dims()
	)
	if err = fe.Validate(); err != nil {
		return
	}
	if nr != nrY || nc != ncY {
		err = fmt.Errorf("point arrays differ in shape: X is %dx%d, Y is %dx%d", nr, nc, nrY, ncY)
		return
	}
	var (
		Np   = nr * nc
		pm   = utils.NewPartitionMap(utils.ParallelDegree(fe.Workers, Np), Np)
		uInf = fe.Freestream.Uinf
	)
	f = &Field{
		U:  utils.NewMatrix(nr, nc),
		V:  utils.NewMatrix(nr, nc),
		Cp: utils.NewMatrix(nr, nc),
	}
	err = pm.RunPartitions(ctx, func(ctx context.Context, bn, kMin, kMax int) error {
		for k := kMin; k < kMax; k++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			u, v, err := fe.velocityAt(X.DataP[k], Y.DataP[k])
			if err != nil {
				return err
			}
			f.U.DataP[k], f.V.DataP[k] = u, v
			f.Cp.DataP[k] = 1 - (u*u+v*v)/(uInf*uInf)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return
}
