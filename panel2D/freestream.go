package panel2D

import (
	"fmt"
	"math"

	"github.com/notargets/gopanel/types"
)

const freestreamStage = "freestream"

// Freestream is the uniform far field flow. Alpha is stored in radians.
type Freestream struct {
	Uinf  float64
	Alpha float64
}

func NewFreestream(uinf, alphaDegrees float64) (fs Freestream, err error) {
	fs = Freestream{
		Uinf:  uinf,
		Alpha: alphaDegrees * math.Pi / 180,
	}
	if err = fs.Validate(); err != nil {
		return Freestream{}, err
	}
	return
}

// Validate rejects a speed that is not positive and finite, or an angle that
// is not finite.
func (fs Freestream) Validate() (err error) {
	if !(fs.Uinf > 0) || math.IsInf(fs.Uinf, 0) {
		err = types.NewSolveError(types.GeometryInputError, freestreamStage, -1, -1,
			fmt.Errorf("freestream speed must be positive and finite, got %v", fs.Uinf))
		return
	}
	if math.IsNaN(fs.Alpha) || math.IsInf(fs.Alpha, 0) {
		err = types.NewSolveError(types.GeometryInputError, freestreamStage, -1, -1,
			fmt.Errorf("angle of attack must be finite, got %v", fs.AlphaDegrees()))
	}
	return
}

func (fs Freestream) AlphaDegrees() float64 { return fs.Alpha * 180 / math.Pi }

func (fs Freestream) Velocity() (u, v float64) {
	sin, cos := math.Sincos(fs.Alpha)
	return fs.Uinf * cos, fs.Uinf * sin
}
