package panel2D

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gopanel/types"
	"github.com/notargets/gopanel/utils"
)

// Panel is one straight segment of the discretized body surface. All fields
// are fixed at construction.
type Panel struct {
	XA, YA float64 // Start point
	XB, YB float64 // End point
	XC, YC float64 // Center, used as the control point
	Length float64
	Beta   float64 // Angle of the outward normal from the x axis, in [0, 2π)
	Loc    types.SurfaceLoc
}

func NewPanel(xa, ya, xb, yb float64) (p Panel) {
	p = Panel{
		XA: xa, YA: ya,
		XB: xb, YB: yb,
		XC: 0.5 * (xa + xb), YC: 0.5 * (ya + yb),
		Length: math.Hypot(xb-xa, yb-ya),
	}
	if xb-xa <= 0 {
		p.Beta = math.Acos(utils.ClampUnit((yb - ya) / p.Length))
	} else {
		p.Beta = math.Pi + math.Acos(utils.ClampUnit(-(yb-ya)/p.Length))
	}
	if p.Beta <= math.Pi {
		p.Loc = types.Upper
	} else {
		p.Loc = types.Lower
	}
	return
}

func (p Panel) Degenerate() bool { return !(p.Length > 0) }

// Normal is the outward unit normal.
func (p Panel) Normal() (nx, ny float64) {
	sin, cos := math.Sincos(p.Beta)
	return cos, sin
}

// Tangent is the unit tangent pointing from A to B.
func (p Panel) Tangent() (tx, ty float64) {
	sin, cos := math.Sincos(p.Beta)
	return -sin, cos
}

type Panels []Panel

func (ps Panels) Len() int { return len(ps) }

// Chord is the x-extent of the panel start points.
func (ps Panels) Chord() float64 {
	xa := ps.StartX()
	return math.Abs(floats.Max(xa) - floats.Min(xa))
}

func (ps Panels) Perimeter() float64 { return floats.Sum(ps.Lengths()) }

func (ps Panels) Lengths() (L []float64) {
	L = make([]float64, len(ps))
	for i, p := range ps {
		L[i] = p.Length
	}
	return
}

func (ps Panels) StartX() (X []float64) {
	X = make([]float64, len(ps))
	for i, p := range ps {
		X[i] = p.XA
	}
	return
}

func (ps Panels) Centers() (XC, YC []float64) {
	XC, YC = make([]float64, len(ps)), make([]float64, len(ps))
	for i, p := range ps {
		XC[i], YC[i] = p.XC, p.YC
	}
	return
}
