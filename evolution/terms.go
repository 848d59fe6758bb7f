package evolution

import (
	"fmt"

	"github.com/notargets/levelset/grid"
)

// Dense-mode term assembly: each Add*Term call validates every input
// buffer, then accumulates its contribution additively into rhs at every
// point of the fillbox fb. The fillbox must lie inside the rhs ghostbox;
// input buffers with smaller ghostboxes are re-centered per the alignment
// rule. An empty fillbox is a correct no-op.

func checkFillBox(gb, fb grid.Box) error {
	if fb.Dim != gb.Dim {
		return fmt.Errorf("%w: fillbox is %dD, rhs is %dD", grid.ErrDimension, fb.Dim, gb.Dim)
	}
	if !gb.Contains(fb) {
		return fmt.Errorf("%w: fillbox %s outside rhs ghostbox %s", grid.ErrBoxMismatch, fb, gb)
	}
	return nil
}

// denseSweep walks fb in storage order, passing the rhs flat offset and the
// point coordinates.
func denseSweep[T grid.Real](rhs *grid.Field[T], fb grid.Box, fn func(p int, i, j, k int)) {
	for k := fb.Lo[2]; k <= fb.Hi[2]; k++ {
		for j := fb.Lo[1]; j <= fb.Hi[1]; j++ {
			p := rhs.Idx(fb.Lo[0], j, k)
			for i := fb.Lo[0]; i <= fb.Hi[0]; i++ {
				fn(p, i, j, k)
				p++
			}
		}
	}
}

// AddAdvectionTerm accumulates the external vector velocity contribution
//
//	phi_t = -vel . grad(phi) + ...
//
// selecting the upwind one-sided derivative per axis from the sign of the
// velocity component.
func AddAdvectionTerm[T grid.Real](rhs *grid.Field[T],
	plus, minus, vel []*grid.Field[T], fb grid.Box) error {
	gb := rhs.B
	if fb.Empty() {
		return nil
	}
	if err := checkFillBox(gb, fb); err != nil {
		return err
	}
	pv, err := gradViews(plus, gb, fb, "phi plus")
	if err != nil {
		return err
	}
	mv, err := gradViews(minus, gb, fb, "phi minus")
	if err != nil {
		return err
	}
	vv, err := gradViews(vel, gb, fb, "vel")
	if err != nil {
		return err
	}
	dim := gb.Dim
	denseSweep(rhs, fb, func(p int, i, j, k int) {
		rhs.Data[p] -= advectionDot(&pv, &mv, &vv, dim, i, j, k)
	})
	return nil
}

// AddNormalVelTerm accumulates the scalar normal velocity contribution
//
//	phi_t = -vel_n |grad(phi)| + ...
//
// with the Godunov Hamiltonian upwind gradient magnitude branching on the
// sign of vel_n at each point.
func AddNormalVelTerm[T grid.Real](rhs *grid.Field[T],
	plus, minus []*grid.Field[T], velN *grid.Field[T], fb grid.Box) error {
	gb := rhs.B
	if fb.Empty() {
		return nil
	}
	if err := checkFillBox(gb, fb); err != nil {
		return err
	}
	pv, err := gradViews(plus, gb, fb, "phi plus")
	if err != nil {
		return err
	}
	mv, err := gradViews(minus, gb, fb, "phi minus")
	if err != nil {
		return err
	}
	vn, err := newView(velN, gb, fb, "vel_n")
	if err != nil {
		return err
	}
	dim := gb.Dim
	denseSweep(rhs, fb, func(p int, i, j, k int) {
		v := vn.at(i, j, k)
		rhs.Data[p] -= v * upwindGradMag(&pv, &mv, dim, i, j, k, v)
	})
	return nil
}

// AddConstNormalVelTerm is AddNormalVelTerm for a spatially constant normal
// velocity, saving the velocity buffer.
func AddConstNormalVelTerm[T grid.Real](rhs *grid.Field[T],
	plus, minus []*grid.Field[T], velN T, fb grid.Box) error {
	gb := rhs.B
	if fb.Empty() {
		return nil
	}
	if err := checkFillBox(gb, fb); err != nil {
		return err
	}
	pv, err := gradViews(plus, gb, fb, "phi plus")
	if err != nil {
		return err
	}
	mv, err := gradViews(minus, gb, fb, "phi minus")
	if err != nil {
		return err
	}
	dim := gb.Dim
	denseSweep(rhs, fb, func(p int, i, j, k int) {
		rhs.Data[p] -= velN * upwindGradMag(&pv, &mv, dim, i, j, k, velN)
	})
	return nil
}

// AddCurvatureTerm accumulates the mean curvature contribution
//
//	phi_t = -b kappa |grad(phi)| + ...
//
// with kappa*|grad(phi)| evaluated from central first derivatives gradPhi
// and the second derivative tensor (deriv.SecondDerivs ordering). The
// curvature term is parabolic, so central rather than one-sided
// differences are the correct inputs here.
func AddCurvatureTerm[T grid.Real](rhs *grid.Field[T],
	gradPhi, second []*grid.Field[T], b T, fb grid.Box) error {
	gb := rhs.B
	if fb.Empty() {
		return nil
	}
	if err := checkFillBox(gb, fb); err != nil {
		return err
	}
	gv, err := gradViews(gradPhi, gb, fb, "grad phi")
	if err != nil {
		return err
	}
	sv, err := secondViews(second, gb, fb)
	if err != nil {
		return err
	}
	var (
		dim = gb.Dim
		g6  [6]view[T]
	)
	copy(g6[:], gv[:])
	denseSweep(rhs, fb, func(p int, i, j, k int) {
		rhs.Data[p] -= b * curvatureFlow(&g6, &sv, dim, i, j, k)
	})
	return nil
}

// AddPrecomputedCurvatureTerm accumulates -b*kappa*|grad(phi)| with both
// factors supplied by the caller; nothing is recomputed.
func AddPrecomputedCurvatureTerm[T grid.Real](rhs *grid.Field[T],
	kappa, gradMag *grid.Field[T], b T, fb grid.Box) error {
	gb := rhs.B
	if fb.Empty() {
		return nil
	}
	if err := checkFillBox(gb, fb); err != nil {
		return err
	}
	kv, err := newView(kappa, gb, fb, "kappa")
	if err != nil {
		return err
	}
	gm, err := newView(gradMag, gb, fb, "grad_mag_phi")
	if err != nil {
		return err
	}
	denseSweep(rhs, fb, func(p int, i, j, k int) {
		rhs.Data[p] -= b * kv.at(i, j, k) * gm.at(i, j, k)
	})
	return nil
}

// AddExternalAndNormalVelTerm accumulates both an external advection field
// and a scalar normal velocity in one sweep:
//
//	phi_t = -vel . grad(phi) - vel_n |grad(phi)| + ...
//
// Upwind decisions for the two sub-terms are made independently: the
// advection part per velocity component, the normal part per the sign of
// vel_n under Godunov selection.
func AddExternalAndNormalVelTerm[T grid.Real](rhs *grid.Field[T],
	plus, minus, vel []*grid.Field[T], velN *grid.Field[T], fb grid.Box) error {
	gb := rhs.B
	if fb.Empty() {
		return nil
	}
	if err := checkFillBox(gb, fb); err != nil {
		return err
	}
	pv, err := gradViews(plus, gb, fb, "phi plus")
	if err != nil {
		return err
	}
	mv, err := gradViews(minus, gb, fb, "phi minus")
	if err != nil {
		return err
	}
	vv, err := gradViews(vel, gb, fb, "vel")
	if err != nil {
		return err
	}
	vn, err := newView(velN, gb, fb, "vel_n")
	if err != nil {
		return err
	}
	dim := gb.Dim
	denseSweep(rhs, fb, func(p int, i, j, k int) {
		v := vn.at(i, j, k)
		rhs.Data[p] -= advectionDot(&pv, &mv, &vv, dim, i, j, k) +
			v*upwindGradMag(&pv, &mv, dim, i, j, k, v)
	})
	return nil
}

// secondViews validates the second-derivative tensor field set: diagonal
// entries first, then mixed, 3 fields in 2D and 6 in 3D.
func secondViews[T grid.Real](second []*grid.Field[T], ref, fb grid.Box) (vs [6]view[T], err error) {
	want := 3
	if ref.Dim == 3 {
		want = 6
	}
	if len(second) != want {
		err = fmt.Errorf("%w: %d second-derivative fields, expected %d for %dD",
			grid.ErrDimension, len(second), want, ref.Dim)
		return
	}
	for n := range second {
		if vs[n], err = newView(second[n], ref, fb, fmt.Sprintf("phi second[%d]", n)); err != nil {
			return
		}
	}
	return
}
