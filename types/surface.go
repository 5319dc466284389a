package types

import "strings"

// SurfaceLoc classifies a panel by the orientation of its outward normal.
// It carries no numerical role.
type SurfaceLoc uint8

const (
	Upper SurfaceLoc = iota
	Lower
)

var SurfaceLocNameMap = map[string]SurfaceLoc{
	"upper": Upper,
	"lower": Lower,
}

func NewSurfaceLoc(label string) (loc SurfaceLoc, ok bool) {
	loc, ok = SurfaceLocNameMap[strings.ToLower(strings.TrimSpace(label))]
	return
}

func (loc SurfaceLoc) String() string {
	switch loc {
	case Upper:
		return "upper"
	case Lower:
		return "lower"
	}
	return "unknown"
}
