package panel2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gopanel/geometry2D"
	"github.com/notargets/gopanel/types"
)

func TestNormalizeBoundary(t *testing.T) {
	{ // Repeated closing point is dropped, start moves to max x
		X := []float64{0, 0.5, 1, 0.5, 0}
		Y := []float64{0, -0.2, 0, 0.2, 0}
		x, y, err := NormalizeBoundary(X, Y)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 0.5, 0, 0.5}, x)
		assert.Equal(t, []float64{0, 0.2, 0, -0.2}, y)
	}
	{ // Clockwise input is reversed
		X := []float64{1, 0.5, 0, 0.5}
		Y := []float64{0, -0.2, 0, 0.2}
		x, y, err := NormalizeBoundary(X, Y)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 0.5, 0, 0.5}, x)
		assert.Equal(t, []float64{0, 0.2, 0, -0.2}, y)
		assert.True(t, geometry2D.SignedArea(x, y) > 0)
		// The input is not modified
		assert.Equal(t, []float64{0, -0.2, 0, 0.2}, Y)
	}
	{ // Bad input
		_, _, err := NormalizeBoundary([]float64{0, 1}, []float64{0, 1})
		assert.ErrorIs(t, err, types.ErrGeometryInput)
		_, _, err = NormalizeBoundary([]float64{0, 1, math.NaN()}, []float64{0, 1, 0})
		assert.ErrorIs(t, err, types.ErrGeometryInput)
	}
}

func TestDefinePanels(t *testing.T) {
	af, err := geometry2D.NACA4("0012", 80, true)
	require.NoError(t, err)
	{ // Closure is exact and end points lie on the projection circle
		N := 40
		panels, err := DefinePanels(af.X, af.Y, N)
		require.NoError(t, err)
		require.Equal(t, N, len(panels))
		assert.Equal(t, panels[0].XA, panels[N-1].XB)
		assert.Equal(t, panels[0].YA, panels[N-1].YB)
		for i := 0; i < N-1; i++ {
			assert.Equal(t, panels[i].XB, panels[i+1].XA)
			assert.Equal(t, panels[i].YB, panels[i+1].YA)
		}
		for k, p := range panels {
			xk := 0.5 + 0.5*math.Cos(2*math.Pi*float64(k)/float64(N))
			assert.InDelta(t, xk, p.XA, 1.e-14)
			assert.False(t, p.Degenerate())
		}
		// Upper surface first, then lower
		for k, p := range panels {
			if k < N/2 {
				assert.Equal(t, types.Upper, p.Loc, "panel %d", k)
				assert.True(t, p.YC >= 0)
			} else {
				assert.Equal(t, types.Lower, p.Loc, "panel %d", k)
				assert.True(t, p.YC <= 0)
			}
		}
		assert.InDelta(t, 1, panels.Chord(), 1.e-14)
	}
	{ // A clockwise boundary gives the same panels
		n := len(af.X)
		Xr, Yr := make([]float64, n), make([]float64, n)
		Xr[0], Yr[0] = af.X[0], af.Y[0]
		for i := 1; i < n; i++ {
			Xr[i], Yr[i] = af.X[n-i], af.Y[n-i]
		}
		p1, err := DefinePanels(af.X, af.Y, 30)
		require.NoError(t, err)
		p2, err := DefinePanels(Xr, Yr, 30)
		require.NoError(t, err)
		assert.Equal(t, p1, p2)
	}
	{ // A boundary closed with a repeated point gives the same panels
		p1, err := DefinePanels(af.X, af.Y, 24)
		require.NoError(t, err)
		p2, err := DefinePanels(append(af.X, af.X[0]), append(af.Y, af.Y[0]), 24)
		require.NoError(t, err)
		assert.Equal(t, p1, p2)
	}
	{ // Odd panel counts
		panels, err := DefinePanels(af.X, af.Y, 11)
		require.NoError(t, err)
		assert.Equal(t, 11, len(panels))
		assert.Equal(t, panels[0].XA, panels[10].XB)
	}
	{ // Panel count
		for _, N := range []int{0, -3} {
			_, err := DefinePanels(af.X, af.Y, N)
			assert.ErrorIs(t, err, types.ErrDiscretization)
		}
		// One panel starts and ends at the same point
		_, err := DefinePanels(af.X, af.Y, 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrDegenerateGeometry)
		var se *types.SolveError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 0, se.Panel)
	}
}

func TestBracketing(t *testing.T) {
	assert.Equal(t, -1, targetDirection(0, 10))
	assert.Equal(t, -1, targetDirection(4, 10))
	assert.Equal(t, 0, targetDirection(5, 10))
	assert.Equal(t, 1, targetDirection(6, 10))
	assert.Equal(t, 1, targetDirection(3, 5))

	assert.True(t, brackets(1, 0, 0.5, -1))
	assert.False(t, brackets(0, 1, 0.5, -1))
	assert.True(t, brackets(0, 1, 0.5, 1))
	assert.True(t, brackets(0, 1, 1, 0))
	assert.True(t, brackets(1, 0, 0, 0))
	assert.False(t, brackets(0, 1, 1.5, 1))
	// Vertical segments run both ways
	assert.True(t, brackets(0, 0, 0, -1))
	assert.True(t, brackets(0, 0, 0, 1))

	assert.Equal(t, 0.5, interpolate(0, 0, 1, 1, 0.5))
	assert.Equal(t, 0.25, interpolate(0, 0.25, 0, 0.75, 0))
}
