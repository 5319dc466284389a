package panel2D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gopanel/geometry2D"
	"github.com/notargets/gopanel/types"
)

const (
	DefaultPanelCount = 40
	discretizeStage   = "discretize"
)

// NormalizeBoundary returns a copy of the boundary that starts at its largest
// x (the trailing edge) and runs counterclockwise, with any repeated closing
// point removed. The panel end point scan in DefinePanels relies on this
// ordering.
func NormalizeBoundary(X, Y []float64) (x, y []float64, err error) {
	var (
		n, iMax int
	)
	if err = geometry2D.CheckBoundary(X, Y); err != nil {
		err = types.NewSolveError(types.GeometryInputError, discretizeStage, -1, -1, err)
		return
	}
	n = len(X)
	for n > 3 && X[n-1] == X[0] && Y[n-1] == Y[0] {
		n--
	}
	iMax = floats.MaxIdx(X[:n])
	x, y = make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		x[i], y[i] = X[(i+iMax)%n], Y[(i+iMax)%n]
	}
	if geometry2D.SignedArea(x, y) < 0 {
		for i, j := 1, n-1; i < j; i, j = i+1, j-1 {
			x[i], x[j] = x[j], x[i]
			y[i], y[j] = y[j], y[i]
		}
	}
	return
}

// DefinePanels discretizes a closed boundary into N panels. End point x
// positions are the projection onto the x axis of N+1 points equally spaced
// around the circle spanning the boundary's x-extent, which clusters panels
// at the leading and trailing edges. End point y values are interpolated on
// the boundary. The last end point is a copy of the first.
func DefinePanels(X, Y []float64, N int) (panels Panels, err error) {
	var (
		x, y         []float64
		xEnds, yEnds []float64
	)
	if N <= 0 {
		err = types.NewSolveError(types.DiscretizationError, discretizeStage, -1, -1,
			fmt.Errorf("panel count must be positive, got %d", N))
		return
	}
	if x, y, err = NormalizeBoundary(X, Y); err != nil {
		return
	}
	var (
		xMin, xMax = floats.Min(x), floats.Max(x)
		R          = 0.5 * (xMax - xMin)
		xCenter    = 0.5 * (xMax + xMin)
	)
	xEnds, yEnds = make([]float64, N+1), make([]float64, N+1)
	for k := 0; k < N; k++ {
		xk := xCenter + R*math.Cos(2*math.Pi*float64(k)/float64(N))
		xEnds[k] = math.Max(xMin, math.Min(xMax, xk))
	}
	xEnds[N] = xEnds[0]

	// Close the polyline
	x, y = append(x, x[0]), append(y, y[0])
	var I int
	for k := 0; k < N; k++ {
		dir := targetDirection(k, N)
		for I < len(x)-1 && !brackets(x[I], x[I+1], xEnds[k], dir) {
			I++
		}
		if I == len(x)-1 {
			err = types.NewSolveError(types.DiscretizationError, discretizeStage, k, -1,
				fmt.Errorf("no boundary segment after the previous end point brackets x = %g; "+
					"the boundary may be self intersecting or not closed", xEnds[k]))
			return
		}
		yEnds[k] = interpolate(x[I], y[I], x[I+1], y[I+1], xEnds[k])
	}
	yEnds[N] = yEnds[0]

	panels = make(Panels, N)
	for i := 0; i < N; i++ {
		panels[i] = NewPanel(xEnds[i], yEnds[i], xEnds[i+1], yEnds[i+1])
		if panels[i].Degenerate() {
			err = types.NewSolveError(types.DegenerateGeometryError, discretizeStage, i, -1,
				fmt.Errorf("panel from (%g, %g) to (%g, %g) has zero length",
					xEnds[i], yEnds[i], xEnds[i+1], yEnds[i+1]))
			return nil, err
		}
	}
	return
}

// targetDirection is -1 while the end points sweep toward the minimum x (the
// first half of the circle), +1 on the way back, 0 at the turning point.
func targetDirection(k, N int) int {
	switch {
	case 2*k < N:
		return -1
	case 2*k > N:
		return 1
	}
	return 0
}

// brackets reports whether segment xa->xb contains x, inclusive, and runs in
// direction dir (a vertical segment runs in both).
func brackets(xa, xb, x float64, dir int) bool {
	if (dir < 0 && xb > xa) || (dir > 0 && xb < xa) {
		return false
	}
	return (xa <= x && x <= xb) || (xb <= x && x <= xa)
}

func interpolate(xa, ya, xb, yb, x float64) float64 {
	dx := xb - xa
	if dx == 0 {
		return ya
	}
	return ya + (x-xa)*(yb-ya)/dx
}
