package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{ // Surface location labels
		tokens := []string{"upper", "Lower", " UPPER "}
		locs := []SurfaceLoc{Upper, Lower, Upper}
		for i, token := range tokens {
			loc, ok := NewSurfaceLoc(token)
			assert.True(t, ok)
			assert.Equal(t, locs[i], loc)
		}
		_, ok := NewSurfaceLoc("side")
		assert.False(t, ok)
		assert.Equal(t, "upper", Upper.String())
		assert.Equal(t, "lower", Lower.String())
	}
	{ // Error kinds match through wrapping
		err := NewSolveError(IntegrationError, "influence", 3, 7, fmt.Errorf("no convergence"))
		wrapped := fmt.Errorf("solve failed: %w", err)
		assert.True(t, errors.Is(wrapped, ErrIntegration))
		assert.False(t, errors.Is(wrapped, ErrDiscretization))
		kind, ok := KindOf(wrapped)
		assert.True(t, ok)
		assert.Equal(t, IntegrationError, kind)
		assert.Equal(t,
			`IntegrationError in stage "influence" at panel 3 (source panel 7): no convergence`,
			err.Error())
		assert.Equal(t, "no convergence", errors.Unwrap(err).Error())
	}
	{
		err := NewSolveError(DegenerateGeometryError, "discretize", 4, -1, nil)
		assert.Equal(t, `DegenerateGeometryError in stage "discretize" at panel 4`, err.Error())
		_, ok := KindOf(fmt.Errorf("plain"))
		assert.False(t, ok)
	}
}
