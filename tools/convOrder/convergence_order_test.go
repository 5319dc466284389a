package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gopanel/panel2D"
)

func TestConvergenceStudy(t *testing.T) {
	{ // Order from a sequence converging at second order
		cs := NewConvergenceStudy("synthetic", 0)
		for _, N := range []int{10, 20, 40, 80} {
			cs.Add(N, 1+1/float64(N*N), 0, math.NaN())
		}
		assert.True(t, math.IsNaN(cs.Order(1)))
		assert.InDelta(t, 2, cs.Order(2), 1.e-10)
		assert.InDelta(t, 2, cs.Order(3), 1.e-10)
	}
	{ // A short study on a real section
		cs, err := RunStudy(context.Background(), "0012", 4, []int{20, 40, 80}, panel2D.ClosedFormKernel)
		require.NoError(t, err)
		require.Equal(t, 3, len(cs.cl))
		for i, cl := range cs.cl {
			assert.True(t, cl > 0.3 && cl < 0.6)
			assert.True(t, math.IsNaN(cs.cpError[i]))
		}
		var buf bytes.Buffer
		require.NoError(t, cs.WriteCSV(&buf))
		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, 4, len(records))
		assert.Equal(t, "80", records[3][2])
		assert.Equal(t, "CpError", records[0][6])
		cs.Print(&buf)
	}
	{ // The circle is measured against the exact cylinder
		cs, err := RunStudy(context.Background(), "circle", 0, []int{20, 40, 80}, panel2D.ClosedFormKernel)
		require.NoError(t, err)
		require.Equal(t, 3, len(cs.cpError))
		for i := range cs.cl {
			assert.InDelta(t, 0, cs.cl[i], 1.e-6)
		}
		assert.True(t, cs.cpError[1] < cs.cpError[0], "cp errors %v", cs.cpError)
		assert.True(t, cs.cpError[2] < cs.cpError[1], "cp errors %v", cs.cpError)
		assert.True(t, cs.cpError[2] < 0.05, "cp errors %v", cs.cpError)
	}
	counts, err := parseCounts("10, 20,40")
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 40}, counts)
	_, err = parseCounts("10,x")
	assert.Error(t, err)
}
