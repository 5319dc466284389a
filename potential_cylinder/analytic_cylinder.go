package potential_cylinder

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/notargets/gopanel/utils"
)

// Cylinder is potential flow past a circular cylinder with optional bound
// circulation, clockwise positive so that positive Gamma lifts.
type Cylinder struct {
	Uinf, Alpha float64 // Alpha in radians
	Radius      float64
	XC, YC      float64
	Gamma       float64
}

func NewCylinder(uinf, alphaDegrees, radius float64) (c *Cylinder, err error) {
	if !(uinf > 0) || !(radius > 0) {
		err = fmt.Errorf("cylinder needs positive speed and radius, got %v and %v", uinf, radius)
		return
	}
	c = &Cylinder{
		Uinf:   uinf,
		Alpha:  alphaDegrees * math.Pi / 180,
		Radius: radius,
	}
	return
}

// Velocity is the conjugate of dw/dz for
// w = U(z·e^{-iα} + R²e^{iα}/z) + iΓ/2π·ln z
func (c *Cylinder) Velocity(x, y float64) (u, v float64) {
	var (
		z   = complex(x-c.XC, y-c.YC)
		eia = cmplx.Exp(complex(0, c.Alpha))
		R2  = complex(c.Radius*c.Radius, 0)
	)
	if z == 0 {
		return math.NaN(), math.NaN()
	}
	dwdz := complex(c.Uinf, 0)*(cmplx.Conj(eia)-R2*eia/(z*z)) +
		complex(0, c.Gamma/(2*math.Pi))/z
	return real(dwdz), -imag(dwdz)
}

func (c *Cylinder) PressureCoefficient(x, y float64) float64 {
	u, v := c.Velocity(x, y)
	return 1 - (utils.POW(u, 2)+utils.POW(v, 2))/utils.POW(c.Uinf, 2)
}

// SurfaceCp is the pressure coefficient at polar angle theta on the surface,
// measured from the freestream direction.
func (c *Cylinder) SurfaceCp(theta float64) float64 {
	var (
		vt = -2*c.Uinf*math.Sin(theta-c.Alpha) - c.Gamma/(2*math.Pi*c.Radius)
	)
	return 1 - utils.POW(vt/c.Uinf, 2)
}

// Lift per unit span over dynamic pressure times diameter, from the
// Kutta-Joukowski theorem.
func (c *Cylinder) LiftCoefficient() float64 {
	return c.Gamma / (c.Uinf * c.Radius)
}

// Calc evaluates the field at each point.
func (c *Cylinder) Calc(X, Y []float64) (U, V, Cp []float64) {
	U, V, Cp = make([]float64, len(X)), make([]float64, len(X)), make([]float64, len(X))
	for i := range X {
		U[i], V[i] = c.Velocity(X[i], Y[i])
		Cp[i] = 1 - (U[i]*U[i]+V[i]*V[i])/(c.Uinf*c.Uinf)
	}
	return
}
