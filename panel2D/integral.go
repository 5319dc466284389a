package panel2D

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/integrate/quad"
)

// LineIntegrator integrates, over the length of panel p, the velocity
// component along (dxdz, dydz) induced at (x, y) by a unit strength source
// distribution on p, less the 1/2π factor:
//
//	∫ [(x-xp(s))·dxdz + (y-yp(s))·dydz] / [(x-xp(s))² + (y-yp(s))²] ds
//
// where (xp(s), yp(s)) = (xa - sinβ·s, ya + cosβ·s). Rotating the direction
// pair by 90° gives the vortex distribution instead.
type LineIntegrator interface {
	PanelIntegral(x, y float64, p Panel, dxdz, dydz float64) (val float64, err error)
}

type KernelType uint8

const (
	QuadratureKernel KernelType = iota
	ClosedFormKernel
)

var KernelNameMap = map[string]KernelType{
	"quadrature":  QuadratureKernel,
	"closed-form": ClosedFormKernel,
	"closedform":  ClosedFormKernel,
	"exact":       ClosedFormKernel,
}

func NewKernelType(label string) (kt KernelType, err error) {
	var ok bool
	if kt, ok = KernelNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown integration kernel %q, use quadrature or closed-form", label)
	}
	return
}

func (kt KernelType) String() string {
	if kt == ClosedFormKernel {
		return "closed-form"
	}
	return "quadrature"
}

const (
	DefaultQuadratureOrder = 10
	DefaultQuadratureTol   = 1.e-10
	DefaultMaxDepth        = 50
)

var (
	ErrNoConvergence = errors.New("adaptive quadrature did not converge")
	ErrNonFinite     = errors.New("integrand is not finite")
)

// AdaptiveQuadrature bisects an interval until a Gauss-Legendre rule on the
// whole agrees with the sum of the rule on the two halves.
type AdaptiveQuadrature struct {
	AbsTol, RelTol float64
	MaxDepth       int
	x, w           []float64 // Nodes and weights on [-1, 1]
}

func NewAdaptiveQuadrature(order int, absTol, relTol float64, maxDepth int) (aq *AdaptiveQuadrature) {
	if order < 2 {
		order = DefaultQuadratureOrder
	}
	if !(absTol > 0) {
		absTol = DefaultQuadratureTol
	}
	if !(relTol > 0) {
		relTol = DefaultQuadratureTol
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	aq = &AdaptiveQuadrature{
		AbsTol:   absTol,
		RelTol:   relTol,
		MaxDepth: maxDepth,
		x:        make([]float64, order),
		w:        make([]float64, order),
	}
	quad.Legendre{}.FixedLocations(aq.x, aq.w, -1, 1)
	return
}

func (aq *AdaptiveQuadrature) rule(f func(float64) float64, a, b float64) (sum float64) {
	var (
		half, mid = 0.5 * (b - a), 0.5 * (a + b)
	)
	for i, xi := range aq.x {
		sum += aq.w[i] * f(mid+half*xi)
	}
	return sum * half
}

func (aq *AdaptiveQuadrature) Integrate(f func(float64) float64, a, b float64) (val float64, err error) {
	whole := aq.rule(f, a, b)
	if math.IsNaN(whole) || math.IsInf(whole, 0) {
		return whole, fmt.Errorf("%w on [%g, %g]", ErrNonFinite, a, b)
	}
	return aq.refine(f, a, b, whole, aq.AbsTol, 0)
}

func (aq *AdaptiveQuadrature) refine(f func(float64) float64, a, b, whole, absTol float64,
	depth int) (val float64, err error) {
	var (
		mid         = 0.5 * (a + b)
		left, right = aq.rule(f, a, mid), aq.rule(f, mid, b)
		sum         = left + right
	)
	if math.IsNaN(sum) || math.IsInf(sum, 0) {
		return sum, fmt.Errorf("%w on [%g, %g]", ErrNonFinite, a, b)
	}
	if math.Abs(sum-whole) <= math.Max(absTol, aq.RelTol*math.Abs(sum)) {
		return sum, nil
	}
	if depth >= aq.MaxDepth {
		return sum, fmt.Errorf("%w: error estimate %8.3e on [%g, %g] after %d bisections",
			ErrNoConvergence, math.Abs(sum-whole), a, b, depth)
	}
	// The absolute tolerance is shared between halves down to a floor
	absTol = math.Max(0.5*absTol, 1.e-6*aq.AbsTol)
	if left, err = aq.refine(f, a, mid, left, absTol, depth+1); err != nil {
		return
	}
	if right, err = aq.refine(f, mid, b, right, absTol, depth+1); err != nil {
		return
	}
	return left + right, nil
}

func (aq *AdaptiveQuadrature) PanelIntegral(x, y float64, p Panel, dxdz, dydz float64) (val float64, err error) {
	var (
		sin, cos = math.Sincos(p.Beta)
	)
	integrand := func(s float64) float64 {
		dx := x - (p.XA - sin*s)
		dy := y - (p.YA + cos*s)
		return (dx*dxdz + dy*dydz) / (dx*dx + dy*dy)
	}
	return aq.Integrate(integrand, 0, p.Length)
}

// OnPanelTol is the distance from a panel, relative to its length, inside
// which a point counts as lying on it.
const OnPanelTol = 1.e-12

func onPanel(xi, eta, length float64) bool {
	tol := OnPanelTol * length
	return math.Abs(eta) <= tol && xi >= -tol && xi <= length+tol
}

// ClosedForm evaluates the panel integral analytically in the panel's own
// frame: ξ along the tangent from the start point, η along the normal.
type ClosedForm struct{}

var ErrOnPanel = errors.New("evaluation point lies on the panel")

func (ClosedForm) PanelIntegral(x, y float64, p Panel, dxdz, dydz float64) (val float64, err error) {
	var (
		tx, ty = p.Tangent()
		nx, ny = p.Normal()
		dx, dy = x - p.XA, y - p.YA
		xi     = dx*tx + dy*ty
		eta    = dx*nx + dy*ny
		r0     = xi*xi + eta*eta
		r1     = (xi-p.Length)*(xi-p.Length) + eta*eta
	)
	if r0 == 0 || r1 == 0 || onPanel(xi, eta, p.Length) {
		err = fmt.Errorf("%w: (%g, %g)", ErrOnPanel, x, y)
		return
	}
	var (
		tD = tx*dxdz + ty*dydz
		nD = nx*dxdz + ny*dydz
	)
	val = tD*0.5*math.Log(r0/r1) + nD*(math.Atan2(eta, xi-p.Length)-math.Atan2(eta, xi))
	return
}
