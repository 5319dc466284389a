package geometry2D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

type BoundingBox struct {
	XMin [2]float64
	XMax [2]float64
}

func NewBoundingBox(X, Y []float64) (Box *BoundingBox) {
	if len(X) == 0 || len(Y) == 0 {
		return nil
	}
	Box = &BoundingBox{
		XMin: [2]float64{floats.Min(X), floats.Min(Y)},
		XMax: [2]float64{floats.Max(X), floats.Max(Y)},
	}
	return Box
}

func (bb *BoundingBox) Centroid() (centroid [2]float64) {
	return [2]float64{
		0.5 * (bb.XMax[0] + bb.XMin[0]),
		0.5 * (bb.XMax[1] + bb.XMin[1]),
	}
}

func (bb *BoundingBox) Width() float64  { return bb.XMax[0] - bb.XMin[0] }
func (bb *BoundingBox) Height() float64 { return bb.XMax[1] - bb.XMin[1] }

// Pad returns a copy grown by frac of the width on the x sides and frac of
// the width (not height) on the y sides, which keeps thin bodies framed.
func (bb *BoundingBox) Pad(frac float64) *BoundingBox {
	d := frac * bb.Width()
	return &BoundingBox{
		XMin: [2]float64{bb.XMin[0] - d, bb.XMin[1] - d},
		XMax: [2]float64{bb.XMax[0] + d, bb.XMax[1] + d},
	}
}

// ChordExtent returns the x-extent of a boundary and the center of that
// extent.
func ChordExtent(X []float64) (chord, center float64) {
	var (
		xMin, xMax = floats.Min(X), floats.Max(X)
	)
	return xMax - xMin, 0.5 * (xMax + xMin)
}

// SignedArea is the shoelace area of the closed polygon X, Y; positive for
// a counterclockwise traversal.
func SignedArea(X, Y []float64) (area float64) {
	var (
		n = len(X)
	)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += X[i]*Y[j] - X[j]*Y[i]
	}
	return 0.5 * area
}

// CheckBoundary validates a boundary curve: equal lengths, finite values and
// at least three distinct points.
func CheckBoundary(X, Y []float64) (err error) {
	if len(X) != len(Y) {
		return fmt.Errorf("mismatched coordinate counts: %d x values, %d y values", len(X), len(Y))
	}
	distinct := make(map[[2]float64]struct{}, len(X))
	for i := range X {
		if math.IsNaN(X[i]) || math.IsInf(X[i], 0) || math.IsNaN(Y[i]) || math.IsInf(Y[i], 0) {
			return fmt.Errorf("point %d is not finite: (%v, %v)", i, X[i], Y[i])
		}
		distinct[[2]float64{X[i], Y[i]}] = struct{}{}
	}
	if len(distinct) < 3 {
		return fmt.Errorf("need at least 3 distinct points, got %d", len(distinct))
	}
	return
}
