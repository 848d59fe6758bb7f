package evolution

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/levelset/band"
	"github.com/notargets/levelset/deriv"
	"github.com/notargets/levelset/grid"
)

// sphereSetup builds a signed-distance sphere on the reference grid from
// the narrow band evolution literature: ghostbox [1,10]^3, ghostcell width
// 2, unit spacing, radius 3 centered at (5,5,5), with one-sided gradients
// already computed.
type sphereSetup struct {
	gb, fb      grid.Box
	dX          grid.Spacing
	phi         *grid.Field[float64]
	plus, minus []*grid.Field[float64]
}

func newSphereSetup(t *testing.T) (s *sphereSetup) {
	s = &sphereSetup{
		gb: grid.NewBox3D(1, 10, 1, 10, 1, 10),
		dX: grid.SpacingFromXYZ(1, 1, 1),
	}
	s.fb = s.gb.Shrink(2)
	s.phi = grid.NewField[float64](s.gb)
	s.phi.Apply(func(i, j, k int) float64 {
		var (
			x = float64(i) - 5
			y = float64(j) - 5
			z = float64(k) - 5
		)
		return math.Sqrt(x*x+y*y+z*z) - 3
	})
	for n := 0; n < 3; n++ {
		s.plus = append(s.plus, grid.NewField[float64](s.gb))
		s.minus = append(s.minus, grid.NewField[float64](s.gb))
	}
	ws := deriv.NewWorkspace[float64](deriv.ENO1, s.gb)
	assert.NoError(t, deriv.HJGradient(deriv.ENO1, s.plus, s.minus, s.phi, s.fb, s.dX, ws))
	return
}

// A unit outward normal velocity on a signed distance sphere produces
// RHS close to -1 inside the fillbox and exactly zero outside it.
func TestNormalVelSphere(t *testing.T) {
	var (
		s   = newSphereSetup(t)
		rhs = grid.NewField[float64](s.gb)
	)
	rhs.Fill(99)
	ZeroOut(rhs, rhs.B)
	assert.NoError(t, AddConstNormalVelTerm(rhs, s.plus, s.minus, 1.0, s.fb))
	for k := s.gb.Lo[2]; k <= s.gb.Hi[2]; k++ {
		for j := s.gb.Lo[1]; j <= s.gb.Hi[1]; j++ {
			for i := s.gb.Lo[0]; i <= s.gb.Hi[0]; i++ {
				got := rhs.At(i, j, k)
				if !s.fb.ContainsPoint(i, j, k) {
					assert.Equal(t, 0., got)
					continue
				}
				// first differences of the distance function degrade near
				// the sphere center where the gradient is not resolved
				rho := s.phi.At(i, j, k) + 3
				if rho >= 1.8 {
					assert.InDelta(t, -1, got, 0.25)
				} else {
					assert.LessOrEqual(t, got, 0.)
				}
			}
		}
	}
}

// A velocity-form normal term with vel_n filled to a constant must match
// the constant-velocity form exactly.
func TestNormalVelFieldMatchesConst(t *testing.T) {
	var (
		s     = newSphereSetup(t)
		rhsA  = grid.NewField[float64](s.gb)
		rhsB  = grid.NewField[float64](s.gb)
		velN  = grid.NewField[float64](s.gb)
		speed = -0.7
	)
	velN.Fill(speed)
	assert.NoError(t, AddConstNormalVelTerm(rhsA, s.plus, s.minus, speed, s.fb))
	assert.NoError(t, AddNormalVelTerm(rhsB, s.plus, s.minus, velN, s.fb))
	assert.Equal(t, rhsA.Data, rhsB.Data)
}

// Flipping the sign of the normal velocity must flip the Godunov branch:
// with distinct plus/minus derivatives the magnitudes differ.
func TestUpwindBranchFlip(t *testing.T) {
	var (
		gb          = grid.NewBox2D(1, 8, 1, 8)
		fb          = gb.Shrink(1)
		plus, minus []*grid.Field[float64]
	)
	for n := 0; n < 2; n++ {
		p := grid.NewField[float64](gb)
		m := grid.NewField[float64](gb)
		p.Fill(2) // expanding characteristics: plus > 0 > minus
		m.Fill(-1)
		plus = append(plus, p)
		minus = append(minus, m)
	}
	var (
		rhsPos = grid.NewField[float64](gb)
		rhsNeg = grid.NewField[float64](gb)
	)
	assert.NoError(t, AddConstNormalVelTerm(rhsPos, plus, minus, 1.0, fb))
	assert.NoError(t, AddConstNormalVelTerm(rhsNeg, plus, minus, -1.0, fb))
	var (
		i, j = fb.Lo[0], fb.Lo[1]
		// vn > 0: max(max(-1,0)^2, min(2,0)^2) = 0 per axis
		// vn < 0: max(min(-1,0)^2, max(2,0)^2) = 4 per axis
		wantNeg = math.Sqrt(8)
	)
	assert.Equal(t, 0., rhsPos.At(i, j, 0))
	assert.InDelta(t, wantNeg, rhsNeg.At(i, j, 0), 1.e-12)
}

// Advection picks the minus derivative for positive velocity components
// and the plus derivative for negative ones, per axis.
func TestAdvectionUpwind(t *testing.T) {
	var (
		gb          = grid.NewBox2D(1, 8, 1, 8)
		fb          = gb.Shrink(1)
		plus, minus []*grid.Field[float64]
		vel         []*grid.Field[float64]
	)
	for n := 0; n < 2; n++ {
		p := grid.NewField[float64](gb)
		m := grid.NewField[float64](gb)
		p.Fill(10)
		m.Fill(1)
		plus = append(plus, p)
		minus = append(minus, m)
		vel = append(vel, grid.NewField[float64](gb))
	}
	vel[0].Fill(2)  // positive: takes minus = 1
	vel[1].Fill(-3) // negative: takes plus = 10
	rhs := grid.NewField[float64](gb)
	assert.NoError(t, AddAdvectionTerm(rhs, plus, minus, vel, fb))
	// rhs = -(2*1 + (-3)*10) = 28
	assert.Equal(t, 28., rhs.At(fb.Lo[0], fb.Lo[1], 0))
	// ghost row untouched
	assert.Equal(t, 0., rhs.At(gb.Lo[0], gb.Lo[1], 0))
}

// Terms accumulate: calling twice doubles the contribution, and the
// combined external+normal term equals the sum of its parts.
func TestAccumulationAndCombinedTerm(t *testing.T) {
	var (
		s    = newSphereSetup(t)
		vel  []*grid.Field[float64]
		velN = grid.NewField[float64](s.gb)
	)
	for n := 0; n < 3; n++ {
		v := grid.NewField[float64](s.gb)
		v.Fill(float64(n) - 1.2)
		vel = append(vel, v)
	}
	velN.Fill(0.5)
	// accumulation
	{
		var (
			once  = grid.NewField[float64](s.gb)
			twice = grid.NewField[float64](s.gb)
		)
		assert.NoError(t, AddConstNormalVelTerm(once, s.plus, s.minus, 1.0, s.fb))
		assert.NoError(t, AddConstNormalVelTerm(twice, s.plus, s.minus, 1.0, s.fb))
		assert.NoError(t, AddConstNormalVelTerm(twice, s.plus, s.minus, 1.0, s.fb))
		for p := range once.Data {
			assert.InDelta(t, 2*once.Data[p], twice.Data[p], 1.e-13)
		}
	}
	// combined equals sum of parts
	{
		var (
			split = grid.NewField[float64](s.gb)
			comb  = grid.NewField[float64](s.gb)
		)
		assert.NoError(t, AddAdvectionTerm(split, s.plus, s.minus, vel, s.fb))
		assert.NoError(t, AddNormalVelTerm(split, s.plus, s.minus, velN, s.fb))
		assert.NoError(t, AddExternalAndNormalVelTerm(comb, s.plus, s.minus, vel, velN, s.fb))
		for p := range split.Data {
			assert.InDelta(t, split.Data[p], comb.Data[p], 1.e-13)
		}
	}
}

// Curvature flow on a 2D signed-distance circle: the contribution is
// -b*kappa*|grad(phi)| = -b/r away from the center.
func TestCurvatureCircle(t *testing.T) {
	var (
		n   = 40
		h   = 1 / float64(n)
		gb  = grid.NewBox2D(1, n, 1, n)
		fb  = gb.Shrink(1)
		dX  = grid.SpacingFromXYZ(h, h, h)
		phi = grid.NewField[float64](gb)
		cy  = float64(gb.Lo[0]+gb.Hi[0]) / 2
		cx  = float64(gb.Lo[1]+gb.Hi[1]) / 2
	)
	phi.Apply(func(i, j, k int) float64 {
		var (
			y = (float64(i) - cy) * h
			x = (float64(j) - cx) * h
		)
		return math.Sqrt(x*x+y*y) - 0.25
	})
	var (
		gradPhi = []*grid.Field[float64]{grid.NewField[float64](gb), grid.NewField[float64](gb)}
		second  = []*grid.Field[float64]{grid.NewField[float64](gb), grid.NewField[float64](gb), grid.NewField[float64](gb)}
		rhs     = grid.NewField[float64](gb)
		b       = 0.1
	)
	assert.NoError(t, deriv.CentralGradient(gradPhi, phi, fb, dX))
	assert.NoError(t, deriv.SecondDerivs(second, phi, fb, dX))
	assert.NoError(t, AddCurvatureTerm(rhs, gradPhi, second, b, fb))
	// probe a ring of points at radius near 0.25
	for _, pt := range [][2]int{{int(cy) + 10, int(cx)}, {int(cy), int(cx) + 10}, {int(cy) - 10, int(cx)}} {
		var (
			y    = (float64(pt[0]) - cy) * h
			x    = (float64(pt[1]) - cx) * h
			r    = math.Sqrt(x*x + y*y)
			want = -b / r
		)
		assert.InDelta(t, want, rhs.At(pt[0], pt[1], 0), 5.e-2*b/r)
	}
	// near the center the gradient degenerates; the guard keeps it finite
	assert.False(t, math.IsNaN(rhs.At(int(cy), int(cx), 0)))
}

// The precomputed form reproduces -b*kappa*|grad(phi)| from the supplied
// buffers exactly.
func TestPrecomputedCurvature(t *testing.T) {
	var (
		gb      = grid.NewBox2D(1, 6, 1, 6)
		fb      = gb.Shrink(1)
		kappa   = grid.NewField[float64](gb)
		gradMag = grid.NewField[float64](gb)
		rhs     = grid.NewField[float64](gb)
	)
	kappa.Apply(func(i, j, k int) float64 { return float64(i) })
	gradMag.Fill(2)
	assert.NoError(t, AddPrecomputedCurvatureTerm(rhs, kappa, gradMag, 0.5, fb))
	assert.Equal(t, -0.5*3*2, rhs.At(3, 4, 0))
	assert.Equal(t, 0., rhs.At(1, 1, 0))
}

// ZeroOut clears exactly the requested box.
func TestZeroOut(t *testing.T) {
	var (
		gb  = grid.NewBox2D(1, 6, 1, 6)
		fb  = gb.Shrink(1)
		rhs = grid.NewField[float64](gb)
	)
	rhs.Fill(5)
	ZeroOut(rhs, fb)
	assert.Equal(t, 0., rhs.At(3, 3, 0))
	assert.Equal(t, 5., rhs.At(1, 3, 0))
	ZeroOut(rhs, rhs.B)
	assert.Equal(t, 5.*0, rhs.At(1, 3, 0))
}

// Degenerate requests are correct no-ops.
func TestDegenerateNoOps(t *testing.T) {
	var (
		s     = newSphereSetup(t)
		rhs   = grid.NewField[float64](s.gb)
		empty = grid.NewBox3D(5, 4, 1, 10, 1, 10)
	)
	assert.NoError(t, AddConstNormalVelTerm(rhs, s.plus, s.minus, 1.0, empty))
	for _, v := range rhs.Data {
		assert.Equal(t, 0., v)
	}
	// empty narrow band range
	pl, nb := band.Build(s.phi, s.fb, 0.8, 1.6)
	assert.NoError(t, AddConstNormalVelTermLocal(rhs, s.plus, s.minus, 1.0,
		pl, band.Range{Lo: 1, Hi: 0}, nb, band.MarkOuter))
	for _, v := range rhs.Data {
		assert.Equal(t, 0., v)
	}
}
