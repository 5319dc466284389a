package panel2D

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostProcess(t *testing.T) {
	{ // Pressure from tangential velocity, input untouched
		vt := []float64{0, 1, -2}
		cp := PressureCoefficients(vt, Freestream{Uinf: 2})
		assert.Equal(t, []float64{1, 0.75, 0}, cp)
		assert.Equal(t, []float64{0, 1, -2}, vt)
		assert.Nil(t, PressureCoefficients(nil, Freestream{Uinf: 1}))
	}
	{ // Length weighted source sum
		ps := Panels{NewPanel(0, 0, 1, 0), NewPanel(1, 0, 1, 2)}
		assert.Equal(t, []float64{1, 2}, ps.Lengths())
		assert.Equal(t, 3., ps.Perimeter())
		assert.InDelta(t, 0, SourceSum(ps, []float64{3, -1.5}), 1.e-15)
		assert.InDelta(t, 5, SourceSum(ps, []float64{1, 2}), 1.e-15)
		assert.Equal(t, 0., SourceSum(nil, nil))
	}
	{ // Tangential velocity matches the term by term sum
		var (
			N      = 12
			panels = circlePanels(t, N)
			st     = Strengths{Sigma: make([]float64, N), Gamma: 0.3}
		)
		for i := range st.Sigma {
			st.Sigma[i] = math.Cos(float64(i))
		}
		fs, err := NewFreestream(1.5, 5)
		require.NoError(t, err)
		inf, err := NewInfluenceBuilder(ClosedForm{}, 2).Build(context.Background(), panels)
		require.NoError(t, err)
		vt := TangentialVelocity(panels, fs, st, inf)
		require.Equal(t, N, len(vt))
		for i, p := range panels {
			want := fs.Uinf * math.Sin(fs.Alpha-p.Beta)
			for j := 0; j < N; j++ {
				want += inf.B.At(i, j)*st.Sigma[j] - inf.A.At(i, j)*st.Gamma
			}
			assert.InDeltaf(t, want, vt[i], 1.e-12, "panel %d", i)
		}
	}
}
