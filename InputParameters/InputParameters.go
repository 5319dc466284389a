package InputParameters

import (
	"fmt"
	"os"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/gopanel/types"
)

type GridParameters struct {
	XStart float64 `yaml:"XStart"`
	XEnd   float64 `yaml:"XEnd"`
	NX     int     `yaml:"NX"`
	YStart float64 `yaml:"YStart"`
	YEnd   float64 `yaml:"YEnd"`
	NY     int     `yaml:"NY"`
}

// HasExtent is false when the grid gives only point counts, in which case the
// extents come from the body.
func (g *GridParameters) HasExtent() bool {
	return g.XEnd > g.XStart && g.YEnd > g.YStart
}

// Parameters obtained from the YAML case file
type InputParametersPanel struct {
	Title              string          `yaml:"Title"`
	GeometryFile       string          `yaml:"GeometryFile"` // Selig format coordinates
	NACA               string          `yaml:"NACA"`         // 4-digit designation, used when no GeometryFile
	NACAPoints         int             `yaml:"NACAPoints"`   // Stations per surface for NACA
	NumPanels          int             `yaml:"NumPanels"`
	Uinf               float64         `yaml:"Uinf"`
	Alpha              float64         `yaml:"Alpha"` // Degrees
	Kernel             string          `yaml:"Kernel"`
	Tolerance          float64         `yaml:"Tolerance"`
	ConditionLimit     float64         `yaml:"ConditionLimit"`
	Workers            int             `yaml:"Workers"`
	Grid               *GridParameters `yaml:"Grid"`
	IncludeVortexSheet bool            `yaml:"IncludeVortexSheet"`
	Surface            string          `yaml:"Surface"` // upper or lower, empty prints every panel
}

// NewInputParametersPanel returns the reference case: NACA 0012 with 100
// panels at 7 degrees, field on a 20x20 grid.
func NewInputParametersPanel() *InputParametersPanel {
	return &InputParametersPanel{
		Title:      "NACA 0012",
		NACA:       "0012",
		NACAPoints: 100,
		NumPanels:  100,
		Uinf:       1,
		Alpha:      7,
		Kernel:     "quadrature",
		Tolerance:  1.e-10,
		Grid: &GridParameters{
			XStart: -1, XEnd: 2, NX: 20,
			YStart: -0.3, YEnd: 0.3, NY: 20,
		},
	}
}

// Parse overlays the YAML on the receiver, so fields missing from the file
// keep their current values.
func (ip *InputParametersPanel) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParametersPanel) ReadFile(fileName string) (err error) {
	var data []byte
	if data, err = os.ReadFile(fileName); err != nil {
		return
	}
	if err = ip.Parse(data); err != nil {
		err = fmt.Errorf("case file %s: %w", fileName, err)
	}
	return
}

func (ip *InputParametersPanel) Validate() (err error) {
	var msgs []string
	if len(ip.GeometryFile) == 0 && len(ip.NACA) == 0 {
		msgs = append(msgs, "one of GeometryFile or NACA is required")
	}
	if ip.NumPanels <= 0 {
		msgs = append(msgs, fmt.Sprintf("NumPanels must be positive, got %d", ip.NumPanels))
	}
	if !(ip.Uinf > 0) {
		msgs = append(msgs, fmt.Sprintf("Uinf must be positive, got %v", ip.Uinf))
	}
	if g := ip.Grid; g != nil {
		if g.NX < 1 || g.NY < 1 {
			msgs = append(msgs, fmt.Sprintf("Grid needs at least one point each way, got %dx%d", g.NX, g.NY))
		}
	}
	if len(ip.Surface) != 0 {
		if _, ok := types.NewSurfaceLoc(ip.Surface); !ok {
			msgs = append(msgs, fmt.Sprintf("Surface must be upper or lower, got %q", ip.Surface))
		}
	}
	if len(msgs) != 0 {
		err = fmt.Errorf("invalid case: %s", strings.Join(msgs, "; "))
	}
	return
}

func (ip *InputParametersPanel) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	if len(ip.GeometryFile) != 0 {
		fmt.Printf("[%s]\t\t= Geometry File\n", ip.GeometryFile)
	} else {
		fmt.Printf("[NACA %s]\t\t= Geometry\n", ip.NACA)
	}
	fmt.Printf("[%d]\t\t\t= Panels\n", ip.NumPanels)
	fmt.Printf("%8.5f\t\t= Uinf\n", ip.Uinf)
	fmt.Printf("%8.5f\t\t= Alpha\n", ip.Alpha)
	fmt.Printf("[%s]\t\t= Kernel\n", ip.Kernel)
	fmt.Printf("%8.3e\t\t= Tolerance\n", ip.Tolerance)
	if g := ip.Grid; g != nil {
		fmt.Printf("[%g, %g]x[%g, %g] %dx%d\t= Field Grid\n",
			g.XStart, g.XEnd, g.YStart, g.YEnd, g.NX, g.NY)
	}
	if len(ip.Surface) != 0 {
		fmt.Printf("[%s]\t\t\t= Surface\n", ip.Surface)
	}
	if ip.IncludeVortexSheet {
		fmt.Printf("[%v]\t\t\t= Vortex Sheet In Field\n", ip.IncludeVortexSheet)
	}
}
