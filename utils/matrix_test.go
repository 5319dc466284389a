package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix(t *testing.T) {
	// SumRows
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		assert.Equal(t, []float64{6, 15}, M.SumRows().Data())
		assert.Equal(t, []float64{4, 5, 6}, M.Row(-1).Data())
		assert.Equal(t, 1., M.Min())
		assert.Equal(t, 6., M.Max())
	}
	// AssignBlock
	{
		M := NewMatrix(3, 3)
		A := NewMatrix(2, 2, []float64{
			1, 2,
			3, 4,
		})
		M.AssignBlock(1, 1, A)
		assert.Equal(t, []float64{
			0, 0, 0,
			0, 1, 2,
			0, 3, 4,
		}, M.RawMatrix().Data)
		assert.Panics(t, func() { M.AssignBlock(2, 2, A) })
	}
	// MulVec
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		v := NewVector(3, []float64{1, 0, -1})
		assert.Equal(t, []float64{-2, -2}, M.MulVec(v).Data())
	}
	// Read only protection
	{
		M := NewMatrix(2, 2)
		M.SetReadOnly("M")
		assert.Panics(t, func() { M.Set(0, 0, 1) })
		assert.True(t, M.IsReadOnly())
		W := NewMatrix(2, 2)
		W.Set(-1, -1, 2)
		assert.Equal(t, 2., W.At(1, 1))
		assert.False(t, W.IsReadOnly())
	}
}

func TestLUSolve(t *testing.T) {
	{
		M := NewMatrix(3, 3, []float64{
			4, -2, 1,
			-2, 4, -2,
			1, -2, 4,
		})
		b := NewVector(3, []float64{11, -16, 17})
		x, cond, err := M.LUSolve(b, 1.e12)
		require.NoError(t, err)
		assert.True(t, cond > 1)
		for i, val := range []float64{1, -2, 3} {
			assert.InDelta(t, val, x.AtVec(i), 1.e-12)
		}
	}
	{ // Singular
		M := NewMatrix(2, 2, []float64{
			1, 2,
			2, 4,
		})
		_, _, err := M.LUSolve(NewVector(2, []float64{1, 1}), 1.e12)
		assert.Error(t, err)
	}
	{ // Ill conditioned beyond the limit
		eps := 1.e-9
		M := NewMatrix(2, 2, []float64{
			1, 1,
			1, 1 + eps,
		})
		_, cond, err := M.LUSolve(NewVector(2, []float64{1, 1}), 1.e6)
		assert.Error(t, err)
		assert.True(t, cond > 1.e6 || math.IsInf(cond, 1))
	}
	{ // Shape checks
		_, _, err := NewMatrix(2, 3).LUSolve(NewVector(2), 0)
		assert.Error(t, err)
	}
}

func TestVector(t *testing.T) {
	v := NewVector(4, []float64{1, 2, 3, 4})
	assert.Equal(t, 10., v.Sum())
	assert.Equal(t, 30., v.Dot(v))
	w := v.Copy().Apply(func(x float64) float64 { return 2 * x })
	assert.Equal(t, []float64{2, 4, 6, 8}, w.Data())
	assert.Equal(t, []float64{1, 2, 3, 4}, v.Data())
	v.AddVec(w)
	assert.Equal(t, []float64{3, 6, 9, 12}, v.Data())
	u := v.Copy().Apply(math.Sqrt)
	assert.InDeltaSlice(t, []float64{math.Sqrt(3), math.Sqrt(6), 3, math.Sqrt(12)}, u.Data(), 1.e-15)
	assert.Equal(t, []float64{3, 6, 9, 12}, v.Data())
	assert.Equal(t, 12., v.Max())
	assert.Equal(t, -1, FirstNonFinite(v.Data()))
	v.DataP[3] = math.Inf(1)
	assert.Equal(t, 3, FirstNonFinite(v.Data()))
	assert.Equal(t, 9., POW(3, 2))
	assert.Equal(t, 0.25, POW(2, -2))
	assert.Equal(t, 1., ClampUnit(1.0000000001))
}
