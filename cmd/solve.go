/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gopanel/InputParameters"
	"github.com/notargets/gopanel/geometry2D"
	"github.com/notargets/gopanel/panel2D"
	"github.com/notargets/gopanel/readfiles"
	"github.com/notargets/gopanel/types"
	"github.com/notargets/gopanel/utils"
)

type PlotFiles struct {
	CpFile, PanelFile string
}

// SolveCmd represents the solve command
var SolveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve for the flow past an airfoil or other closed body",
	Long: `
Reads a Selig format coordinate file (or generates a NACA 4-digit section),
solves the panel system and prints the per panel solution, the lift
coefficient and, when a field grid is requested, the off-body field.

gopanel solve -F naca0012.dat -N 100 -a 7 -g
gopanel solve -I case.yaml`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip *InputParameters.InputParametersPanel
		)
		if ip, err = processInput(cmd); err != nil {
			return
		}
		ip.Print()
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		pf := PlotFiles{
			CpFile:    viper.GetString("cpPlot"),
			PanelFile: viper.GetString("panelPlot"),
		}
		return RunSolve(ctx, ip, pf, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(SolveCmd)
	ip := InputParameters.NewInputParametersPanel()
	SolveCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML case file, flags given on the command line override it")
	SolveCmd.Flags().StringP("geometryFile", "F", "", "airfoil coordinates in Selig (.dat) format")
	SolveCmd.Flags().StringP("naca", "n", ip.NACA, "NACA 4-digit section to generate when no geometry file is given")
	SolveCmd.Flags().IntP("panels", "N", ip.NumPanels, "number of panels")
	SolveCmd.Flags().Float64P("alpha", "a", ip.Alpha, "angle of attack in degrees")
	SolveCmd.Flags().Float64("uinf", ip.Uinf, "freestream speed")
	SolveCmd.Flags().StringP("kernel", "k", ip.Kernel, "panel integral: quadrature or closed-form")
	SolveCmd.Flags().Float64("tol", ip.Tolerance, "quadrature absolute and relative tolerance")
	SolveCmd.Flags().IntP("workers", "w", 0, "goroutines for influence and field loops, 0 uses all CPUs")
	SolveCmd.Flags().BoolP("grid", "g", false, "evaluate the field on the case file grid (or the default grid)")
	SolveCmd.Flags().Bool("vortexSheet", false, "include the vortex sheet in the field velocity")
	SolveCmd.Flags().StringP("surface", "s", "", "print only the upper or lower surface panels")
	SolveCmd.Flags().String("cpPlot", "", "save a Cp plot to this file (.png, .svg, .pdf)")
	SolveCmd.Flags().String("panelPlot", "", "save a plot of the panels to this file")
	_ = viper.BindPFlags(SolveCmd.Flags())
}

// processInput layers the case file, then $HOME/.gopanel.yaml, then flags
// given on the command line over the reference case.
func processInput(cmd *cobra.Command) (ip *InputParameters.InputParametersPanel, err error) {
	isSet := func(name string) bool {
		return cmd.Flags().Changed(name) || viper.InConfig(strings.ToLower(name))
	}
	ip = InputParameters.NewInputParametersPanel()
	grid := ip.Grid
	ip.Grid = nil
	if caseFile := viper.GetString("inputConditionsFile"); len(caseFile) != 0 {
		if err = ip.ReadFile(caseFile); err != nil {
			return
		}
	}
	if isSet("geometryFile") {
		ip.GeometryFile = viper.GetString("geometryFile")
	}
	if isSet("naca") {
		ip.NACA, ip.GeometryFile = viper.GetString("naca"), ""
	}
	if isSet("panels") {
		ip.NumPanels = viper.GetInt("panels")
	}
	if isSet("alpha") {
		ip.Alpha = viper.GetFloat64("alpha")
	}
	if isSet("uinf") {
		ip.Uinf = viper.GetFloat64("uinf")
	}
	if isSet("kernel") {
		ip.Kernel = viper.GetString("kernel")
	}
	if isSet("tol") {
		ip.Tolerance = viper.GetFloat64("tol")
	}
	if isSet("workers") {
		ip.Workers = viper.GetInt("workers")
	}
	if isSet("vortexSheet") {
		ip.IncludeVortexSheet = viper.GetBool("vortexSheet")
	}
	if isSet("surface") {
		ip.Surface = viper.GetString("surface")
	}
	if viper.GetBool("grid") && ip.Grid == nil {
		ip.Grid = grid
	}
	if err = ip.Validate(); err != nil {
		fmt.Printf("Example File:%s\n", exampleCaseFile)
	}
	return
}

const exampleCaseFile = `
########################################
Title: "NACA 2412"
NACA: "2412" # or GeometryFile: naca2412.dat
NumPanels: 100
Uinf: 1
Alpha: 4
Kernel: quadrature # or closed-form
Grid: # extents may be left out to frame the body
  XStart: -1
  XEnd: 2
  NX: 20
  YStart: -0.3
  YEnd: 0.3
  NY: 20
Surface: upper # or lower, omit for every panel
########################################
`

func LoadGeometry(ip *InputParameters.InputParametersPanel) (af *geometry2D.Airfoil, err error) {
	if len(ip.GeometryFile) != 0 {
		return readfiles.ReadAirfoil(ip.GeometryFile)
	}
	nPts := ip.NACAPoints
	if nPts <= 0 {
		nPts = 100
	}
	return geometry2D.NACA4(ip.NACA, nPts, true)
}

func NewOptions(ip *InputParameters.InputParametersPanel) (opts panel2D.Options, err error) {
	opts = panel2D.DefaultOptions()
	opts.NumPanels = ip.NumPanels
	opts.Workers = ip.Workers
	opts.IncludeVortexSheet = ip.IncludeVortexSheet
	if ip.Tolerance > 0 {
		opts.AbsTol, opts.RelTol = ip.Tolerance, ip.Tolerance
	}
	if ip.ConditionLimit > 0 {
		opts.ConditionLimit = ip.ConditionLimit
	}
	if len(ip.Kernel) != 0 {
		if opts.Kernel, err = panel2D.NewKernelType(ip.Kernel); err != nil {
			return
		}
	}
	return
}

// DefaultGridPad frames a field grid given without extents, as a fraction of
// the body's width on every side.
const DefaultGridPad = 0.5

// FieldGrid lays out the field points, taking the extents from the padded
// bounding box of the body when the grid gives only point counts.
func FieldGrid(g *InputParameters.GridParameters, af *geometry2D.Airfoil) (X, Y utils.Matrix) {
	var (
		xs, xe, ys, ye = g.XStart, g.XEnd, g.YStart, g.YEnd
	)
	if !g.HasExtent() {
		box := af.BoundingBox().Pad(DefaultGridPad)
		xs, xe, ys, ye = box.XMin[0], box.XMax[0], box.XMin[1], box.XMax[1]
	}
	return panel2D.MeshGrid(xs, xe, g.NX, ys, ye, g.NY)
}

func RunSolve(ctx context.Context, ip *InputParameters.InputParametersPanel, pf PlotFiles, w io.Writer) (err error) {
	var (
		af   *geometry2D.Airfoil
		fs   panel2D.Freestream
		opts panel2D.Options
		r    *panel2D.Result
		locs []types.SurfaceLoc
	)
	if len(ip.Surface) != 0 {
		loc, ok := types.NewSurfaceLoc(ip.Surface)
		if !ok {
			return fmt.Errorf("unknown surface %q, want upper or lower", ip.Surface)
		}
		locs = append(locs, loc)
	}
	if af, err = LoadGeometry(ip); err != nil {
		return
	}
	if fs, err = panel2D.NewFreestream(ip.Uinf, ip.Alpha); err != nil {
		return
	}
	if opts, err = NewOptions(ip); err != nil {
		return
	}
	log.WithFields(log.Fields{
		"geometry":    af.Name,
		"points":      af.Len(),
		"chord":       af.Chord(),
		"chordCenter": af.ChordCenter(),
		"panels":      opts.NumPanels,
	}).Info("solving")
	if r, err = panel2D.Solve(ctx, af.X, af.Y, fs, opts); err != nil {
		return
	}
	log.WithField("memory", utils.GetMemUsage()).Debug("solve complete")
	PrintSurface(w, r, locs...)
	if ip.Grid != nil {
		X, Y := FieldGrid(ip.Grid, af)
		var f *panel2D.Field
		if f, err = r.Field(ctx, X, Y); err != nil {
			return
		}
		PrintField(w, f)
	}
	if len(pf.CpFile) != 0 {
		if err = readfiles.PlotCp(r.PanelResults(), af.Name, pf.CpFile); err != nil {
			return
		}
	}
	if len(pf.PanelFile) != 0 {
		if err = readfiles.PlotPanels(af.X, af.Y, r.Panels, af.Name, pf.PanelFile); err != nil {
			return
		}
	}
	return
}

// PrintSurface writes the per panel table, limited to the given surfaces when
// any are named, then the integrated results.
func PrintSurface(w io.Writer, r *panel2D.Result, locs ...types.SurfaceLoc) {
	keep := func(loc types.SurfaceLoc) bool {
		if len(locs) == 0 {
			return true
		}
		for _, l := range locs {
			if l == loc {
				return true
			}
		}
		return false
	}
	fmt.Fprintf(w, "%4s %10s %10s %12s %10s %10s %s\n", "i", "xc", "yc", "sigma", "vt", "cp", "surface")
	for i, pr := range r.PanelResults() {
		if !keep(pr.Loc) {
			continue
		}
		fmt.Fprintf(w, "%4d %10.6f %10.6f %12.6f %10.6f %10.6f %s\n",
			i, pr.XC, pr.YC, pr.Sigma, pr.Vt, pr.Cp, pr.Loc)
	}
	fmt.Fprintf(w, "%12.8f\t\t= Gamma\n", r.Gamma())
	fmt.Fprintf(w, "%12.8f\t\t= Cl\n", r.Cl)
	fmt.Fprintf(w, "%12.4e\t\t= Source Sum\n", r.SourceSum)
	fmt.Fprintf(w, "%12.4e\t\t= Kutta Residual\n", r.KuttaResidual())
	fmt.Fprintf(w, "%12.4e\t\t= Condition Number\n", r.Strengths.Cond)
}

func PrintField(w io.Writer, f *panel2D.Field) {
	var (
		nr, nc = f.U.Dims()
		speed  = make([]float64, nr*nc)
	)
	for k := range speed {
		speed[k] = math.Hypot(f.U.DataP[k], f.V.DataP[k])
	}
	fmt.Fprintf(w, "[%dx%d]\t\t\t= Field Points\n", nr, nc)
	fmt.Fprintf(w, "[%8.5f, %8.5f]\t= Field Cp Range\n", f.Cp.Min(), f.Cp.Max())
	fmt.Fprintf(w, "%8.5f\t\t= Field Max Speed\n", utils.NewVector(nr*nc, speed).Max())
}
