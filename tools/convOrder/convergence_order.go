package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/gopanel/geometry2D"
	"github.com/notargets/gopanel/panel2D"
	"github.com/notargets/gopanel/potential_cylinder"
)

var (
	naca      = "0012"
	alpha     = 4.
	panelList = "20,40,80,160"
	kernel    = "quadrature"
	csvFile   string
)

func main() {
	nacaPtr := flag.String("naca", naca, "NACA 4-digit section, or \"circle\" to measure the Cp error against the analytic cylinder")
	alphaPtr := flag.Float64("alpha", alpha, "angle of attack in degrees")
	panelsPtr := flag.String("panels", panelList, "comma separated panel counts, each refinement by the same ratio")
	kernelPtr := flag.String("kernel", kernel, "panel integral: quadrature or closed-form")
	csvFilePtr := flag.String("csvFile", csvFile, "also write the study to this CSV file")
	flag.Parse()

	counts, err := parseCounts(*panelsPtr)
	if err != nil || len(counts) < 2 {
		fmt.Printf("need at least two panel counts: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}
	kt, err := panel2D.NewKernelType(*kernelPtr)
	if err != nil {
		log.Fatal(err)
	}
	cs, err := RunStudy(context.Background(), *nacaPtr, *alphaPtr, counts, kt)
	if err != nil {
		log.Fatal(err)
	}
	cs.Print(os.Stdout)
	if len(*csvFilePtr) != 0 {
		f, err := os.Create(*csvFilePtr)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		if err = cs.WriteCSV(f); err != nil {
			log.Fatal(err)
		}
	}
}

type ConvergenceStudy struct {
	title     string
	alpha     float64
	numPanels []int
	cl        []float64
	sourceSum []float64
	cpError   []float64 // Max surface Cp error against an exact solution, NaN when there is none
}

func NewConvergenceStudy(title string, alpha float64) *ConvergenceStudy {
	return &ConvergenceStudy{
		title: title,
		alpha: alpha,
	}
}

func (cs *ConvergenceStudy) Add(numPanels int, cl, sourceSum, cpError float64) {
	cs.numPanels = append(cs.numPanels, numPanels)
	cs.cl = append(cs.cl, cl)
	cs.sourceSum = append(cs.sourceSum, sourceSum)
	cs.cpError = append(cs.cpError, cpError)
}

// Order is the observed convergence order of cl from three successive
// refinements ending at index i; NaN for the first two.
func (cs *ConvergenceStudy) Order(i int) float64 {
	if i < 2 {
		return math.NaN()
	}
	var (
		e1 = math.Abs(cs.cl[i-1] - cs.cl[i-2])
		e2 = math.Abs(cs.cl[i] - cs.cl[i-1])
		r  = float64(cs.numPanels[i-1]) / float64(cs.numPanels[i-2])
	)
	return math.Log(e1/e2) / math.Log(r)
}

func (cs *ConvergenceStudy) Print(w io.Writer) {
	fmt.Fprintf(w, "Title = %s, Alpha = %5.2f\n", cs.title, cs.alpha)
	for i := range cs.numPanels {
		fmt.Fprintf(w, "%d, %v, %v, %v, %v\n", cs.numPanels[i], cs.cl[i], cs.sourceSum[i], cs.Order(i), cs.cpError[i])
	}
}

func (cs *ConvergenceStudy) WriteCSV(w io.Writer) (err error) {
	cw := csv.NewWriter(w)
	if err = cw.Write([]string{"Title", "Alpha", "NumPanels", "Cl", "SourceSum", "Order", "CpError"}); err != nil {
		return
	}
	for i := range cs.numPanels {
		rec := []string{
			cs.title,
			strconv.FormatFloat(cs.alpha, 'g', -1, 64),
			strconv.Itoa(cs.numPanels[i]),
			strconv.FormatFloat(cs.cl[i], 'g', -1, 64),
			strconv.FormatFloat(cs.sourceSum[i], 'g', -1, 64),
			strconv.FormatFloat(cs.Order(i), 'g', 4, 64),
			strconv.FormatFloat(cs.cpError[i], 'g', 4, 64),
		}
		if err = cw.Write(rec); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}

func RunStudy(ctx context.Context, digits string, alpha float64, counts []int,
	kt panel2D.KernelType) (cs *ConvergenceStudy, err error) {
	var (
		af     *geometry2D.Airfoil
		fs     panel2D.Freestream
		r      *panel2D.Result
		cyl    *potential_cylinder.Cylinder
		nBound = 4 * counts[len(counts)-1]
	)
	// The boundary is resolved well past the finest panel count
	if digits == circleCase {
		af = geometry2D.Circle(2*nBound, 1, 0, 0)
		if cyl, err = potential_cylinder.NewCylinder(1, alpha, 1); err != nil {
			return
		}
	} else if af, err = geometry2D.NACA4(digits, nBound, true); err != nil {
		return
	}
	if fs, err = panel2D.NewFreestream(1, alpha); err != nil {
		return
	}
	cs = NewConvergenceStudy(af.Name, alpha)
	opts := panel2D.DefaultOptions()
	opts.Kernel = kt
	for _, N := range counts {
		opts.NumPanels = N
		if r, err = panel2D.Solve(ctx, af.X, af.Y, fs, opts); err != nil {
			return nil, err
		}
		cpErr := math.NaN()
		if cyl != nil {
			cpErr = CylinderCpError(r, cyl)
		}
		cs.Add(N, r.Cl, r.SourceSum, cpErr)
	}
	return
}

const circleCase = "circle"

// CylinderCpError is the largest difference between the panel Cp and the
// exact surface Cp of a unit cylinder centered on the origin, carrying the
// same circulation as the panel solution.
func CylinderCpError(r *panel2D.Result, cyl *potential_cylinder.Cylinder) (maxErr float64) {
	c := *cyl
	c.Gamma = r.Gamma() * r.Panels.Perimeter()
	XC, YC := r.Panels.Centers()
	for i := range XC {
		theta := math.Atan2(YC[i]-c.YC, XC[i]-c.XC)
		maxErr = math.Max(maxErr, math.Abs(r.Surface.Cp[i]-c.SurfaceCp(theta)))
	}
	return
}

func parseCounts(list string) (counts []int, err error) {
	for _, tok := range strings.Split(list, ",") {
		var n int
		if n, err = strconv.Atoi(strings.TrimSpace(tok)); err != nil {
			return nil, err
		}
		counts = append(counts, n)
	}
	return
}
