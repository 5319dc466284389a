package panel2D

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/gopanel/types"
	"github.com/notargets/gopanel/utils"
)

const postProcessStage = "post-process"

type Options struct {
	NumPanels          int
	Workers            int // Goroutines for the O(N²) loops, GOMAXPROCS when <= 0
	Kernel             KernelType
	QuadratureOrder    int
	AbsTol, RelTol     float64
	MaxDepth           int
	ConditionLimit     float64
	IncludeVortexSheet bool // Field evaluation only
}

func DefaultOptions() Options {
	return Options{
		NumPanels:       DefaultPanelCount,
		Kernel:          QuadratureKernel,
		QuadratureOrder: DefaultQuadratureOrder,
		AbsTol:          DefaultQuadratureTol,
		RelTol:          DefaultQuadratureTol,
		MaxDepth:        DefaultMaxDepth,
		ConditionLimit:  DefaultConditionLimit,
	}
}

func (o Options) Integrator() LineIntegrator {
	if o.Kernel == ClosedFormKernel {
		return ClosedForm{}
	}
	return NewAdaptiveQuadrature(o.QuadratureOrder, o.AbsTol, o.RelTol, o.MaxDepth)
}

// Result carries every stage's output. Nothing in it is modified after Solve
// returns.
type Result struct {
	Panels     Panels
	Freestream Freestream
	Influence  *Influence
	Strengths  Strengths
	Surface    SurfaceSolution
	Cl         float64 // Lift coefficient
	SourceSum  float64 // Σσ·L accuracy diagnostic
	opts       Options
}

// PanelResult associates one panel with its solved quantities.
type PanelResult struct {
	Panel
	Sigma, Vt, Cp float64
}

func (r *Result) PanelResults() (prs []PanelResult) {
	prs = make([]PanelResult, len(r.Panels))
	for i, p := range r.Panels {
		prs[i] = PanelResult{
			Panel: p,
			Sigma: r.Strengths.Sigma[i],
			Vt:    r.Surface.Vt[i],
			Cp:    r.Surface.Cp[i],
		}
	}
	return
}

// Gamma is the shared vortex strength.
func (r *Result) Gamma() float64 { return r.Strengths.Gamma }

// KuttaResidual is vt on the first panel plus vt on the last; zero when the
// Kutta condition holds.
func (r *Result) KuttaResidual() float64 {
	return r.Surface.Vt[0] + r.Surface.Vt[len(r.Surface.Vt)-1]
}

func (r *Result) FieldEvaluator() *FieldEvaluator {
	return &FieldEvaluator{
		Panels:             r.Panels,
		Freestream:         r.Freestream,
		Strengths:          r.Strengths,
		Integrator:         r.opts.Integrator(),
		Workers:            r.opts.Workers,
		IncludeVortexSheet: r.opts.IncludeVortexSheet,
	}
}

func (r *Result) Field(ctx context.Context, X, Y utils.Matrix) (f *Field, err error) {
	var (
		start  = time.Now()
		nr, nc = X.Dims()
	)
	if f, err = r.FieldEvaluator().Evaluate(ctx, X, Y); err != nil {
		return
	}
	log.WithFields(log.Fields{
		"stage":   fieldStage,
		"points":  nr * nc,
		"elapsed": time.Since(start),
	}).Debug("field evaluated")
	return
}

// Solve runs the pipeline: discretize, influence, assemble, solve, surface
// quantities. Each stage consumes only the previous stage's output.
func Solve(ctx context.Context, X, Y []float64, fs Freestream, opts Options) (r *Result, err error) {
	var (
		start = time.Now()
		mark  = start
		inf   *Influence
	)
	if err = fs.Validate(); err != nil {
		return nil, err
	}
	if opts.NumPanels == 0 {
		opts.NumPanels = DefaultPanelCount
	}
	stageDone := func(stage string, fields log.Fields) {
		fields["stage"] = stage
		fields["elapsed"] = time.Since(mark)
		log.WithFields(fields).Debug("stage complete")
		mark = time.Now()
	}
	r = &Result{
		Freestream: fs,
		opts:       opts,
	}

	if r.Panels, err = DefinePanels(X, Y, opts.NumPanels); err != nil {
		return nil, err
	}
	stageDone(discretizeStage, log.Fields{"panels": len(r.Panels), "chord": r.Panels.Chord()})

	ib := NewInfluenceBuilder(opts.Integrator(), opts.Workers)
	if inf, err = ib.Build(ctx, r.Panels); err != nil {
		return nil, err
	}
	r.Influence = inf
	stageDone(influenceStage, log.Fields{"kernel": opts.Kernel.String()})

	M := BuildSingularityMatrix(inf.A, inf.B)
	b := BuildFreestreamRHS(r.Panels, fs)
	if r.Strengths, err = SolveStrengths(M, b, opts.ConditionLimit); err != nil {
		return nil, err
	}
	stageDone(solveStage, log.Fields{"gamma": r.Strengths.Gamma, "cond": r.Strengths.Cond})

	vt := TangentialVelocity(r.Panels, fs, r.Strengths, inf)
	if ind := utils.FirstNonFinite(vt); ind >= 0 {
		return nil, types.NewSolveError(types.DegenerateGeometryError, postProcessStage, ind, -1,
			fmt.Errorf("tangential velocity is %v", vt[ind]))
	}
	r.Surface = SurfaceSolution{
		Vt: vt,
		Cp: PressureCoefficients(vt, fs),
	}
	r.Cl = LiftCoefficient(r.Panels, fs, r.Strengths.Gamma)
	r.SourceSum = SourceSum(r.Panels, r.Strengths.Sigma)
	if ind := utils.FirstNonFinite(r.Surface.Cp); ind >= 0 {
		return nil, types.NewSolveError(types.DegenerateGeometryError, postProcessStage, ind, -1,
			fmt.Errorf("pressure coefficient is %v", r.Surface.Cp[ind]))
	}
	if utils.FirstNonFinite([]float64{r.Cl, r.SourceSum}) >= 0 {
		return nil, types.NewSolveError(types.DegenerateGeometryError, postProcessStage, -1, -1,
			fmt.Errorf("lift coefficient %v, source sum %v", r.Cl, r.SourceSum))
	}
	stageDone(postProcessStage, log.Fields{"cl": r.Cl, "sourceSum": r.SourceSum})

	log.WithFields(log.Fields{
		"panels":  len(r.Panels),
		"alpha":   fs.AlphaDegrees(),
		"cl":      r.Cl,
		"elapsed": time.Since(start),
	}).Info("panel solve complete")
	return
}
