package readfiles

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/notargets/gopanel/geometry2D"
	"github.com/notargets/gopanel/panel2D"
	"github.com/notargets/gopanel/types"
)

// PlotCp saves -Cp against x at the panel centers, one line per surface, to
// an image whose format follows the file extension.
func PlotCp(prs []panel2D.PanelResult, title, fileName string) (err error) {
	var (
		pts = make(map[types.SurfaceLoc]plotter.XYs)
	)
	for _, pr := range prs {
		pts[pr.Loc] = append(pts[pr.Loc], plotter.XY{X: pr.XC, Y: -pr.Cp})
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "-Cp"
	if err = plotutil.AddLinePoints(p,
		types.Upper.String(), pts[types.Upper],
		types.Lower.String(), pts[types.Lower],
	); err != nil {
		return fmt.Errorf("plotting Cp: %w", err)
	}
	if err = p.Save(10*vg.Inch, 6*vg.Inch, fileName); err != nil {
		return
	}
	log.WithField("file", fileName).Info("wrote Cp plot")
	return
}

// PlotPanels saves the input boundary with the panel end points over it.
func PlotPanels(X, Y []float64, panels panel2D.Panels, title, fileName string) (err error) {
	var (
		boundary = make(plotter.XYs, len(X)+1)
		ends     = make(plotter.XYs, len(panels)+1)
	)
	for i := range X {
		boundary[i] = plotter.XY{X: X[i], Y: Y[i]}
	}
	boundary[len(X)] = boundary[0]
	for i, pn := range panels {
		ends[i] = plotter.XY{X: pn.XA, Y: pn.YA}
	}
	ends[len(panels)] = ends[0]
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	if err = plotutil.AddLinePoints(p,
		"Boundary", boundary,
		"Panels", ends,
	); err != nil {
		return fmt.Errorf("plotting panels: %w", err)
	}
	setEqualAxes(p, geometry2D.NewBoundingBox(X, Y), panelPlotAspect)
	return p.Save(panelPlotWidth, panelPlotAspect*panelPlotWidth, fileName)
}

const (
	panelPlotWidth  = 10 * vg.Inch
	panelPlotAspect = 0.4
	panelPlotPad    = 0.05
)

// setEqualAxes centers the axes on the box with the same scale in x and y
// for a canvas of height/width aspect.
func setEqualAxes(p *plot.Plot, box *geometry2D.BoundingBox, aspect float64) {
	if box == nil {
		return
	}
	var (
		padded = box.Pad(panelPlotPad)
		c      = padded.Centroid()
		w      = math.Max(padded.Width(), padded.Height()/aspect)
	)
	p.X.Min, p.X.Max = c[0]-0.5*w, c[0]+0.5*w
	p.Y.Min, p.Y.Max = c[1]-0.5*aspect*w, c[1]+0.5*aspect*w
}
