package geometry2D

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Airfoil is a named closed boundary in Selig order: from the trailing edge
// over the upper surface to the leading edge and back along the lower
// surface.
type Airfoil struct {
	Name string
	X, Y []float64
}

func (af *Airfoil) Len() int { return len(af.X) }

func (af *Airfoil) Chord() float64 {
	chord, _ := ChordExtent(af.X)
	return chord
}

func (af *Airfoil) ChordCenter() float64 {
	_, center := ChordExtent(af.X)
	return center
}

func (af *Airfoil) BoundingBox() *BoundingBox { return NewBoundingBox(af.X, af.Y) }

// WriteSelig writes the name line followed by one "x y" pair per line.
func (af *Airfoil) WriteSelig(w io.Writer) (err error) {
	bw := bufio.NewWriter(w)
	if _, err = fmt.Fprintln(bw, af.Name); err != nil {
		return
	}
	for i := range af.X {
		if _, err = fmt.Fprintf(bw, " %.7f  %.7f\n", af.X[i], af.Y[i]); err != nil {
			return
		}
	}
	return bw.Flush()
}

type NACA4Params struct {
	M, P, T float64 // max camber, camber location, thickness; fractions of chord
}

// ParseNACA4 decodes a four digit designation like "2412".
func ParseNACA4(digits string) (np NACA4Params, err error) {
	if len(digits) != 4 {
		err = fmt.Errorf("NACA 4-digit designation must have 4 digits, got %q", digits)
		return
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			err = fmt.Errorf("NACA 4-digit designation must be numeric, got %q", digits)
			return
		}
	}
	m, _ := strconv.Atoi(digits[0:1])
	p, _ := strconv.Atoi(digits[1:2])
	t, _ := strconv.Atoi(digits[2:4])
	if t == 0 {
		err = fmt.Errorf("NACA %s has zero thickness", digits)
		return
	}
	if (m == 0) != (p == 0) {
		err = fmt.Errorf("NACA %s: camber and camber location must both be zero or both be set", digits)
		return
	}
	np = NACA4Params{
		M: float64(m) / 100,
		P: float64(p) / 10,
		T: float64(t) / 100,
	}
	return
}

func (np NACA4Params) thickness(x float64, closedTE bool) float64 {
	a4 := 0.1015
	if closedTE {
		a4 = 0.1036
	}
	return 5 * np.T * (0.2969*math.Sqrt(x) - 0.1260*x - 0.3516*x*x + 0.2843*x*x*x - a4*x*x*x*x)
}

func (np NACA4Params) camber(x float64) (yc, dyc float64) {
	var (
		m, p = np.M, np.P
	)
	switch {
	case m == 0:
		return 0, 0
	case x < p:
		yc = m / (p * p) * (2*p*x - x*x)
		dyc = 2 * m / (p * p) * (p - x)
	default:
		yc = m / ((1 - p) * (1 - p)) * ((1 - 2*p) + 2*p*x - x*x)
		dyc = 2 * m / ((1 - p) * (1 - p)) * (p - x)
	}
	return
}

// NACA4 builds a unit chord NACA 4-digit section with nSide+1 cosine spaced
// stations per surface. With closedTE the trailing edge is sharp and appears
// once, as the first point.
func NACA4(digits string, nSide int, closedTE bool) (af *Airfoil, err error) {
	var (
		np     NACA4Params
		xu, yu []float64
		xl, yl []float64
	)
	if np, err = ParseNACA4(digits); err != nil {
		return
	}
	if nSide < 2 {
		err = fmt.Errorf("NACA4 needs at least 2 intervals per surface, got %d", nSide)
		return
	}
	xu, yu = make([]float64, nSide+1), make([]float64, nSide+1)
	xl, yl = make([]float64, nSide+1), make([]float64, nSide+1)
	for i := 0; i <= nSide; i++ {
		x := 0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(nSide)))
		if i == nSide {
			x = 1
		}
		yt := np.thickness(x, closedTE)
		yc, dyc := np.camber(x)
		theta := math.Atan(dyc)
		sin, cos := math.Sincos(theta)
		xu[i], yu[i] = x-yt*sin, yc+yt*cos
		xl[i], yl[i] = x+yt*sin, yc-yt*cos
	}
	if closedTE {
		// The closed thickness form vanishes at x=1 only to round-off
		xu[nSide], yu[nSide] = 1, 0
	}
	af = &Airfoil{Name: "NACA " + digits}
	for i := nSide; i >= 0; i-- {
		af.X = append(af.X, xu[i])
		af.Y = append(af.Y, yu[i])
	}
	last := nSide
	if closedTE {
		last = nSide - 1
	}
	for i := 1; i <= last; i++ {
		af.X = append(af.X, xl[i])
		af.Y = append(af.Y, yl[i])
	}
	return
}

// Circle samples n points counterclockwise starting at (xc+radius, yc).
func Circle(n int, radius, xc, yc float64) (af *Airfoil) {
	af = &Airfoil{
		Name: fmt.Sprintf("Circle R=%g", radius),
		X:    make([]float64, n),
		Y:    make([]float64, n),
	}
	for i := 0; i < n; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		af.X[i] = xc + radius*cos
		af.Y[i] = yc + radius*sin
	}
	return
}
