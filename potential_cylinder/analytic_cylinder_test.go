package potential_cylinder

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCylinder(t *testing.T) {
	c, err := NewCylinder(1, 0, 1)
	require.NoError(t, err)
	{ // Stagnation points and maximum speed
		u, v := c.Velocity(1, 0)
		assert.InDelta(t, 0, u, 1.e-15)
		assert.InDelta(t, 0, v, 1.e-15)
		u, v = c.Velocity(0, 1)
		assert.InDelta(t, 2, u, 1.e-15)
		assert.InDelta(t, 0, v, 1.e-15)
		assert.InDelta(t, -3, c.PressureCoefficient(0, 1), 1.e-14)
		assert.InDelta(t, 1, c.PressureCoefficient(-1, 0), 1.e-14)
	}
	{ // Surface Cp agrees with the field on the surface
		for k := 0; k < 12; k++ {
			th := 2 * math.Pi * (float64(k) + 0.25) / 12
			sin, cos := math.Sincos(th)
			assert.InDelta(t, 1-4*sin*sin, c.SurfaceCp(th), 1.e-14)
			assert.InDelta(t, c.SurfaceCp(th), c.PressureCoefficient(cos, sin), 1.e-12)
		}
	}
	{ // Far field returns to the freestream
		U, V, Cp := c.Calc([]float64{1000, -1000}, []float64{0, 1000})
		assert.InDelta(t, 1, U[0], 1.e-5)
		assert.InDelta(t, 0, V[1], 1.e-5)
		assert.InDelta(t, 0, Cp[1], 1.e-5)
	}
	{ // The flow is tangent to the surface, with and without circulation
		for _, gamma := range []float64{0, 2} {
			ca, err := NewCylinder(1.5, 10, 2)
			require.NoError(t, err)
			ca.XC, ca.YC, ca.Gamma = 0.5, -0.5, gamma
			for k := 0; k < 8; k++ {
				sin, cos := math.Sincos(2 * math.Pi * float64(k) / 8)
				u, v := ca.Velocity(ca.XC+2*cos, ca.YC+2*sin)
				assert.InDelta(t, 0, u*cos+v*sin, 1.e-13)
				th := 2 * math.Pi * float64(k) / 8
				assert.InDelta(t, ca.SurfaceCp(th), ca.PressureCoefficient(ca.XC+2*cos, ca.YC+2*sin), 1.e-12)
			}
		}
	}
	{ // Positive circulation speeds the flow over the top
		c.Gamma = 1
		uTop, _ := c.Velocity(0, 1)
		uBot, _ := c.Velocity(0, -1)
		assert.True(t, uTop > uBot)
		assert.InDelta(t, 1, c.LiftCoefficient(), 1.e-15)
		c.Gamma = 0
	}
	_, err = NewCylinder(0, 0, 1)
	assert.Error(t, err)
	_, err = NewCylinder(1, 0, -1)
	assert.Error(t, err)
}
