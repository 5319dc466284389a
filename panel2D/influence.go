package panel2D

import (
	"context"
	"math"

	"github.com/notargets/gopanel/types"
	"github.com/notargets/gopanel/utils"
)

const influenceStage = "influence"

// Influence holds the normal velocity induced at each panel's center (row)
// by a unit strength source (A) or vortex (B) sheet on each panel (column).
type Influence struct {
	A, B utils.Matrix
}

type InfluenceBuilder struct {
	Integrator LineIntegrator
	Workers    int // Goroutines for the row loop, GOMAXPROCS when <= 0
}

func NewInfluenceBuilder(li LineIntegrator, workers int) *InfluenceBuilder {
	if li == nil {
		li = NewAdaptiveQuadrature(0, 0, 0, 0)
	}
	return &InfluenceBuilder{
		Integrator: li,
		Workers:    workers,
	}
}

func (ib *InfluenceBuilder) Build(ctx context.Context, panels Panels) (inf *Influence, err error) {
	inf = &Influence{}
	if inf.A, err = ib.SourceContributionNormal(ctx, panels); err != nil {
		return nil, err
	}
	if inf.B, err = ib.VortexContributionNormal(ctx, panels); err != nil {
		return nil, err
	}
	return
}

// SourceContributionNormal builds A. A flat source panel induces exactly half
// its strength normal to itself at its center, so the diagonal is 0.5.
func (ib *InfluenceBuilder) SourceContributionNormal(ctx context.Context, panels Panels) (A utils.Matrix, err error) {
	A, err = ib.buildMatrix(ctx, panels, 0.5, func(pi, pj Panel) (float64, error) {
		sin, cos := math.Sincos(pi.Beta)
		val, err := ib.Integrator.PanelIntegral(pi.XC, pi.YC, pj, cos, sin)
		return 0.5 / math.Pi * val, err
	})
	if err == nil {
		A.SetReadOnly("A_source")
	}
	return
}

// VortexContributionNormal builds B. A flat vortex panel induces no normal
// velocity at its own center, so the diagonal is zero.
func (ib *InfluenceBuilder) VortexContributionNormal(ctx context.Context, panels Panels) (B utils.Matrix, err error) {
	B, err = ib.buildMatrix(ctx, panels, 0, func(pi, pj Panel) (float64, error) {
		sin, cos := math.Sincos(pi.Beta)
		val, err := ib.Integrator.PanelIntegral(pi.XC, pi.YC, pj, sin, -cos)
		return -0.5 / math.Pi * val, err
	})
	if err == nil {
		B.SetReadOnly("B_vortex")
	}
	return
}

func (ib *InfluenceBuilder) buildMatrix(ctx context.Context, panels Panels, diag float64,
	coeff func(pi, pj Panel) (float64, error)) (M utils.Matrix, err error) {
	var (
		N  = len(panels)
		pm = utils.NewPartitionMap(utils.ParallelDegree(ib.Workers, N), N)
	)
	M = utils.NewMatrix(N, N)
	err = pm.RunPartitions(ctx, func(ctx context.Context, bn, kMin, kMax int) error {
		for i := kMin; i < kMax; i++ {
			row := M.DataP[i*N : (i+1)*N]
			for j := range panels {
				if err := ctx.Err(); err != nil {
					return err
				}
				if i == j {
					row[j] = diag
					continue
				}
				val, err := coeff(panels[i], panels[j])
				if err != nil {
					return types.NewSolveError(types.IntegrationError, influenceStage, i, j, err)
				}
				row[j] = val
			}
		}
		return nil
	})
	return
}
