package readfiles

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gopanel/types"
)

func TestParseAirfoil(t *testing.T) {
	{ // Selig header, blank lines, several pairs on one line
		input := `TESTFOIL
 0.123456  1.123456

 1.123456  0.123456 -1.123456 -0.123456
 1.234567 -1.234567
-0.123456  1.234567
`
		af, err := ParseAirfoil(strings.NewReader(input), "default")
		require.NoError(t, err)
		assert.Equal(t, "TESTFOIL", af.Name)
		assert.Equal(t, []float64{0.123456, 1.123456, -1.123456, 1.234567, -0.123456}, af.X)
		assert.Equal(t, []float64{1.123456, 0.123456, -0.123456, -1.234567, 1.234567}, af.Y)
	}
	{ // No header keeps the default name
		af, err := ParseAirfoil(strings.NewReader("1 0\n0 0.1\n0 -0.1\n"), "square")
		require.NoError(t, err)
		assert.Equal(t, "square", af.Name)
		assert.Equal(t, 3, af.Len())
	}
	{ // Header with digits in the name
		af, err := ParseAirfoil(strings.NewReader("NACA 0012\n1 0\n0 0.1\n0 -0.1\n"), "default")
		require.NoError(t, err)
		assert.Equal(t, "NACA 0012", af.Name)
		assert.Equal(t, 3, af.Len())
	}
	bad := map[string]string{
		"non-numeric after data": "1 0\n0 abc\n0 -0.1\n",
		"odd token count":        "1 0\n0 0.1 5\n0 -0.1\n",
		"too few points":         "NAME\n1 0\n0 0.1\n",
		"duplicate points":       "1 0\n1 0\n0 0.1\n0 0.1\n",
		"second header":          "NAME\nOTHER NAME\n1 0\n0 0.1\n0 -0.1\n",
		"not finite":             "1 0\n0 NaN\n0 -0.1\n",
		"malformed first row":    "0.5 abc\n1 0\n0 0.1\n0 -0.1\n",
		"numeric first token":    "1 NAME\n1 0\n0 0.1\n0 -0.1\n",
	}
	for label, input := range bad {
		_, err := ParseAirfoil(strings.NewReader(input), "bad")
		require.Error(t, err, label)
		assert.True(t, errors.Is(err, types.ErrGeometryInput), label)
	}
	{ // Error reports the line
		_, err := ParseAirfoil(strings.NewReader("1 0\n\n0 x\n"), "bad")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 3")
		_, err = ParseAirfoil(strings.NewReader("\n0.5 abc\n1 0\n0 0.1\n0 -0.1\n"), "bad")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	}
}

func TestCheckBoundary(t *testing.T) {
	assert.NoError(t, CheckBoundary([]float64{0, 1, 0}, []float64{0, 0, 1}))
	err := CheckBoundary([]float64{0, 1, 0}, []float64{0, 0})
	assert.True(t, errors.Is(err, types.ErrGeometryInput))
}

func TestReadAirfoil(t *testing.T) {
	dir := t.TempDir()
	fileName := filepath.Join(dir, "wedge.dat")
	require.NoError(t, os.WriteFile(fileName, []byte("1 0\n0 0.1\n0 -0.1\n"), 0644))
	af, err := ReadAirfoil(fileName)
	require.NoError(t, err)
	assert.Equal(t, "wedge", af.Name)
	_, err = ReadAirfoil(filepath.Join(dir, "missing.dat"))
	assert.True(t, errors.Is(err, types.ErrGeometryInput))
}
