package evolution

import (
	"fmt"

	"github.com/notargets/levelset/band"
	"github.com/notargets/levelset/grid"
)

// Narrow-band (Local) term assembly: each call sweeps the [rng.Lo, rng.Hi]
// entries of the point list in order and accumulates into rhs at exactly
// the listed points whose narrow band mark is at or below markFB. Points
// off the list keep whatever RHS content they already hold. An empty range
// is a correct no-op. Every call is a complete, stateless sweep over its
// input range.

// noFill is the empty fillbox passed to newView by local variants, which
// bounds-check listed points instead of a box.
var noFill = grid.Box{Lo: [3]int{0, 0, 0}, Hi: [3]int{-1, -1, -1}}

// localSweep runs the filtered point loop shared by all Local terms. The
// bounds of every listed point against every participating buffer were
// verified by the caller before this runs.
func localSweep[T grid.Real](rhs *grid.Field[T], pl *band.PointList, rng band.Range,
	nb *grid.Mask, markFB uint8, fn func(p int, i, j, k int)) {
	for n := rng.Lo; n <= rng.Hi; n++ {
		i, j, k := pl.Point(n)
		if nb.At(i, j, k) > markFB {
			continue
		}
		fn(rhs.Idx(i, j, k), i, j, k)
	}
}

// localCheck validates the range and the bounds of every listed point
// against the rhs ghostbox, the mask ghostbox and each input view's
// re-centered ghostbox.
func localCheck[T grid.Real](rhs *grid.Field[T], pl *band.PointList, rng band.Range,
	nb *grid.Mask, views []view[T], names []string) error {
	if nb.B.Dim != rhs.B.Dim {
		return fmt.Errorf("%w: narrow band mask is %dD, rhs is %dD",
			grid.ErrDimension, nb.B.Dim, rhs.B.Dim)
	}
	boxes := []grid.Box{rhs.B, nb.B}
	boxNames := []string{"rhs", "narrow_band"}
	for n := range views {
		boxes = append(boxes, views[n].rc)
		boxNames = append(boxNames, names[n])
	}
	return checkRange(pl, rng, boxes, boxNames)
}

// ZeroOutLocal sets rhs to zero at every listed point in rng,
// unconditionally (no marker filtering; zeroing covers both band tiers).
func ZeroOutLocal[T grid.Real](rhs *grid.Field[T], pl *band.PointList, rng band.Range) error {
	if rng.Empty() {
		return nil
	}
	if err := checkRange(pl, rng, []grid.Box{rhs.B}, []string{"rhs"}); err != nil {
		return err
	}
	for n := rng.Lo; n <= rng.Hi; n++ {
		i, j, k := pl.Point(n)
		rhs.Data[rhs.Idx(i, j, k)] = 0
	}
	return nil
}

// AddAdvectionTermLocal is the narrow-band AddAdvectionTerm.
func AddAdvectionTermLocal[T grid.Real](rhs *grid.Field[T],
	plus, minus, vel []*grid.Field[T], pl *band.PointList, rng band.Range,
	nb *grid.Mask, markFB uint8) error {
	gb := rhs.B
	if rng.Empty() {
		return nil
	}
	pv, err := gradViews(plus, gb, noFill, "phi plus")
	if err != nil {
		return err
	}
	mv, err := gradViews(minus, gb, noFill, "phi minus")
	if err != nil {
		return err
	}
	vv, err := gradViews(vel, gb, noFill, "vel")
	if err != nil {
		return err
	}
	dim := gb.Dim
	all := append(append(append([]view[T]{}, pv[:dim]...), mv[:dim]...), vv[:dim]...)
	if err = localCheck(rhs, pl, rng, nb, all, viewNames(dim, "phi plus", "phi minus", "vel")); err != nil {
		return err
	}
	localSweep(rhs, pl, rng, nb, markFB, func(p int, i, j, k int) {
		rhs.Data[p] -= advectionDot(&pv, &mv, &vv, dim, i, j, k)
	})
	return nil
}

// AddNormalVelTermLocal is the narrow-band AddNormalVelTerm.
func AddNormalVelTermLocal[T grid.Real](rhs *grid.Field[T],
	plus, minus []*grid.Field[T], velN *grid.Field[T], pl *band.PointList,
	rng band.Range, nb *grid.Mask, markFB uint8) error {
	gb := rhs.B
	if rng.Empty() {
		return nil
	}
	pv, err := gradViews(plus, gb, noFill, "phi plus")
	if err != nil {
		return err
	}
	mv, err := gradViews(minus, gb, noFill, "phi minus")
	if err != nil {
		return err
	}
	vn, err := newView(velN, gb, noFill, "vel_n")
	if err != nil {
		return err
	}
	dim := gb.Dim
	all := append(append(append([]view[T]{}, pv[:dim]...), mv[:dim]...), vn)
	if err = localCheck(rhs, pl, rng, nb, all, append(viewNames(dim, "phi plus", "phi minus"), "vel_n")); err != nil {
		return err
	}
	localSweep(rhs, pl, rng, nb, markFB, func(p int, i, j, k int) {
		v := vn.at(i, j, k)
		rhs.Data[p] -= v * upwindGradMag(&pv, &mv, dim, i, j, k, v)
	})
	return nil
}

// AddConstNormalVelTermLocal is the narrow-band AddConstNormalVelTerm.
func AddConstNormalVelTermLocal[T grid.Real](rhs *grid.Field[T],
	plus, minus []*grid.Field[T], velN T, pl *band.PointList,
	rng band.Range, nb *grid.Mask, markFB uint8) error {
	gb := rhs.B
	if rng.Empty() {
		return nil
	}
	pv, err := gradViews(plus, gb, noFill, "phi plus")
	if err != nil {
		return err
	}
	mv, err := gradViews(minus, gb, noFill, "phi minus")
	if err != nil {
		return err
	}
	dim := gb.Dim
	all := append(append([]view[T]{}, pv[:dim]...), mv[:dim]...)
	if err = localCheck(rhs, pl, rng, nb, all, viewNames(dim, "phi plus", "phi minus")); err != nil {
		return err
	}
	localSweep(rhs, pl, rng, nb, markFB, func(p int, i, j, k int) {
		rhs.Data[p] -= velN * upwindGradMag(&pv, &mv, dim, i, j, k, velN)
	})
	return nil
}

// AddCurvatureTermLocal is the narrow-band AddCurvatureTerm.
func AddCurvatureTermLocal[T grid.Real](rhs *grid.Field[T],
	gradPhi, second []*grid.Field[T], b T, pl *band.PointList,
	rng band.Range, nb *grid.Mask, markFB uint8) error {
	gb := rhs.B
	if rng.Empty() {
		return nil
	}
	gv, err := gradViews(gradPhi, gb, noFill, "grad phi")
	if err != nil {
		return err
	}
	sv, err := secondViews(second, gb, noFill)
	if err != nil {
		return err
	}
	var (
		dim  = gb.Dim
		nsec = len(second)
		g6   [6]view[T]
	)
	copy(g6[:], gv[:])
	all := append(append([]view[T]{}, gv[:dim]...), sv[:nsec]...)
	names := viewNames(dim, "grad phi")
	for n := 0; n < nsec; n++ {
		names = append(names, fmt.Sprintf("phi second[%d]", n))
	}
	if err = localCheck(rhs, pl, rng, nb, all, names); err != nil {
		return err
	}
	localSweep(rhs, pl, rng, nb, markFB, func(p int, i, j, k int) {
		rhs.Data[p] -= b * curvatureFlow(&g6, &sv, dim, i, j, k)
	})
	return nil
}

// AddPrecomputedCurvatureTermLocal is the narrow-band
// AddPrecomputedCurvatureTerm.
func AddPrecomputedCurvatureTermLocal[T grid.Real](rhs *grid.Field[T],
	kappa, gradMag *grid.Field[T], b T, pl *band.PointList,
	rng band.Range, nb *grid.Mask, markFB uint8) error {
	gb := rhs.B
	if rng.Empty() {
		return nil
	}
	kv, err := newView(kappa, gb, noFill, "kappa")
	if err != nil {
		return err
	}
	gm, err := newView(gradMag, gb, noFill, "grad_mag_phi")
	if err != nil {
		return err
	}
	if err = localCheck(rhs, pl, rng, nb, []view[T]{kv, gm},
		[]string{"kappa", "grad_mag_phi"}); err != nil {
		return err
	}
	localSweep(rhs, pl, rng, nb, markFB, func(p int, i, j, k int) {
		rhs.Data[p] -= b * kv.at(i, j, k) * gm.at(i, j, k)
	})
	return nil
}

// AddExternalAndNormalVelTermLocal is the narrow-band
// AddExternalAndNormalVelTerm.
func AddExternalAndNormalVelTermLocal[T grid.Real](rhs *grid.Field[T],
	plus, minus, vel []*grid.Field[T], velN *grid.Field[T],
	pl *band.PointList, rng band.Range, nb *grid.Mask, markFB uint8) error {
	gb := rhs.B
	if rng.Empty() {
		return nil
	}
	pv, err := gradViews(plus, gb, noFill, "phi plus")
	if err != nil {
		return err
	}
	mv, err := gradViews(minus, gb, noFill, "phi minus")
	if err != nil {
		return err
	}
	vv, err := gradViews(vel, gb, noFill, "vel")
	if err != nil {
		return err
	}
	vn, err := newView(velN, gb, noFill, "vel_n")
	if err != nil {
		return err
	}
	dim := gb.Dim
	all := append(append(append(append([]view[T]{}, pv[:dim]...), mv[:dim]...), vv[:dim]...), vn)
	if err = localCheck(rhs, pl, rng, nb, all,
		append(viewNames(dim, "phi plus", "phi minus", "vel"), "vel_n")); err != nil {
		return err
	}
	localSweep(rhs, pl, rng, nb, markFB, func(p int, i, j, k int) {
		v := vn.at(i, j, k)
		rhs.Data[p] -= advectionDot(&pv, &mv, &vv, dim, i, j, k) +
			v*upwindGradMag(&pv, &mv, dim, i, j, k, v)
	})
	return nil
}

// viewNames expands per-axis component names for error reporting.
func viewNames(dim int, groups ...string) (names []string) {
	for _, g := range groups {
		for d := 0; d < dim; d++ {
			names = append(names, fmt.Sprintf("%s[%d]", g, d))
		}
	}
	return
}
