package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/notargets/levelset/deriv"
	"github.com/notargets/levelset/grid"
)

var (
	levels  int
	baseN   int
	schemes = []deriv.Scheme{deriv.ENO1, deriv.ENO2, deriv.ENO3, deriv.WENO5}
)

func main() {
	levelsPtr := flag.Int("levels", 4, "number of grid refinement levels")
	baseNPtr := flag.Int("baseN", 16, "coarsest grid cell count per axis")
	flag.Parse()
	levels, baseN = *levelsPtr, *baseNPtr
	if levels < 2 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Derivative convergence study: %d levels from N=%d\n", levels, baseN)
	for _, sch := range schemes {
		cs := NewConvergenceStudy(sch)
		for lev := 0; lev < levels; lev++ {
			n := baseN << lev
			rms, max := gradientError(sch, n)
			cs.Add(n, rms, max)
		}
		cs.Print()
	}
}

type ConvergenceStudy struct {
	scheme deriv.Scheme
	numPTS []int
	h      []float64
	errRMS []float64
	errMAX []float64
}

func NewConvergenceStudy(sch deriv.Scheme) *ConvergenceStudy {
	return &ConvergenceStudy{scheme: sch}
}

func (cs *ConvergenceStudy) Add(numPTS int, errRMS, errMAX float64) {
	cs.numPTS = append(cs.numPTS, numPTS)
	cs.h = append(cs.h, 1/float64(numPTS))
	cs.errRMS = append(cs.errRMS, errRMS)
	cs.errMAX = append(cs.errMAX, errMAX)
}

func (cs *ConvergenceStudy) Print() {
	fmt.Printf("Scheme = %s, formal order = %d\n", cs.scheme, cs.scheme.Order())
	for i := range cs.numPTS {
		rate := "     -"
		if i > 0 {
			r := math.Log2(cs.errRMS[i-1] / cs.errRMS[i])
			rate = fmt.Sprintf("%6.3f", r)
		}
		fmt.Printf("%6d, RMS = %12.5e, MAX = %12.5e, rate = %s\n",
			cs.numPTS[i], cs.errRMS[i], cs.errMAX[i], rate)
	}
	fmt.Printf("fitted order (log-log slope) = %6.3f\n\n", cs.FittedOrder())
}

// FittedOrder is the least squares slope of log(err) versus log(h).
func (cs *ConvergenceStudy) FittedOrder() float64 {
	var (
		logH = make([]float64, len(cs.h))
		logE = make([]float64, len(cs.h))
	)
	for i := range cs.h {
		logH[i] = math.Log(cs.h[i])
		logE[i] = math.Log(cs.errRMS[i])
	}
	_, slope := stat.LinearRegression(logH, logE, nil, false)
	return slope
}

// gradientError computes the one-sided gradient of a smooth field on an
// n x n grid and returns the RMS and max error against the analytic
// derivatives, sampled over the fillbox.
func gradientError(sch deriv.Scheme, n int) (rms, max float64) {
	var (
		w  = sch.StencilWidth()
		h  = 1 / float64(n)
		gb = grid.NewBox2D(1, n+2*w, 1, n+2*w)
		fb = gb.Shrink(w)
		dX = grid.SpacingFromXYZ(h, h, h)

		phi   = grid.NewField[float64](gb)
		plus  = []*grid.Field[float64]{grid.NewField[float64](gb), grid.NewField[float64](gb)}
		minus = []*grid.Field[float64]{grid.NewField[float64](gb), grid.NewField[float64](gb)}
		ws    = deriv.NewWorkspace[float64](sch, gb)
	)
	// phi = sin(x+2y) on storage points (i carries y, j carries x)
	phi.Apply(func(i, j, k int) float64 {
		x, y := float64(j)*h, float64(i)*h
		return math.Sin(x + 2*y)
	})
	if err := deriv.HJGradient(sch, plus, minus, phi, fb, dX, ws); err != nil {
		panic(err)
	}
	var errs []float64
	for i := fb.Lo[0]; i <= fb.Hi[0]; i++ {
		for j := fb.Lo[1]; j <= fb.Hi[1]; j++ {
			var (
				x, y   = float64(j) * h, float64(i) * h
				exactY = 2 * math.Cos(x+2*y)
				exactX = math.Cos(x + 2*y)
			)
			errs = append(errs,
				plus[0].At(i, j, 0)-exactY, minus[0].At(i, j, 0)-exactY,
				plus[1].At(i, j, 0)-exactX, minus[1].At(i, j, 0)-exactX)
		}
	}
	for i, e := range errs {
		errs[i] = math.Abs(e)
	}
	max = floats.Max(errs)
	rms = floats.Norm(errs, 2) / math.Sqrt(float64(len(errs)))
	return
}
