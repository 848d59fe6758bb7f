package deriv

import (
	"fmt"

	"github.com/notargets/levelset/grid"
)

// HJGradient computes the plus (forward-biased) and minus (backward-biased)
// Hamilton-Jacobi approximations to grad(phi) over the fillbox fb, one
// output pair per storage axis. Outputs are defined over phi's full
// ghostbox; only fillbox content is written by this call. dX is in storage
// order. The workspace must have been allocated for sch over phi's
// ghostbox.
//
// Both one-sided derivatives are valid approximations regardless of the
// true wind direction; selecting between them is upwinding, which belongs
// to the term assembly layer, not here.
//
// All inputs are validated before any output is written. An empty fillbox
// is a correct no-op.
func HJGradient[T Real](sch Scheme, plus, minus []*grid.Field[T],
	phi *grid.Field[T], fb grid.Box, dX grid.Spacing, ws *Workspace[T]) error {
	var (
		gb  = phi.B
		dim = gb.Dim
	)
	if len(plus) != dim || len(minus) != dim {
		return fmt.Errorf("%w: %d gradient components for a %dD field",
			grid.ErrDimension, len(plus), dim)
	}
	for n := 0; n < dim; n++ {
		if !plus[n].B.Equal(gb) || !minus[n].B.Equal(gb) {
			return fmt.Errorf("%w: gradient component %d ghostbox differs from phi ghostbox %s",
				grid.ErrBoxMismatch, n, gb)
		}
	}
	if err := dX.Validate(dim); err != nil {
		return err
	}
	if err := ws.check(sch, gb); err != nil {
		return err
	}
	if fb.Empty() {
		return nil
	}
	if fb.Dim != dim {
		return fmt.Errorf("%w: fillbox is %dD, phi is %dD", grid.ErrDimension, fb.Dim, dim)
	}
	if safe := gb.Shrink(sch.StencilWidth()); !safe.Contains(fb) {
		return fmt.Errorf("%w: fillbox %s exceeds %s within ghostbox %s for %s",
			grid.ErrFillBox, fb, safe, gb, sch)
	}

	kern := kernelFor[T](sch)
	for axis := 0; axis < dim; axis++ {
		fillTables(sch, ws, phi, fb, axis)
		sweepAxis(kern, ws, plus[axis], minus[axis], fb, phi.Stride(axis), T(1.0/dX[axis]))
	}
	return nil
}

// fillTables builds the undivided difference tables along the sweep axis,
// restricted to the fillbox widened by the stencil margin on that axis.
func fillTables[T Real](sch Scheme, ws *Workspace[T], phi *grid.Field[T],
	fb grid.Box, axis int) {
	var (
		m  = sch.StencilWidth()
		s  = phi.Stride(axis)
		pD = phi.Data
		d1 = ws.D1.Data
		tb = fb
	)
	tb.Lo[axis] = fb.Lo[axis] - m
	tb.Hi[axis] = fb.Hi[axis] + m - 1
	walkBox(phi, tb, func(p int) {
		d1[p] = pD[p+s] - pD[p]
	})
	if ws.D2 != nil {
		d2 := ws.D2.Data
		tb.Lo[axis]++
		walkBox(phi, tb, func(p int) {
			d2[p] = (d1[p] - d1[p-s]) / 2
		})
		if ws.D3 != nil {
			d3 := ws.D3.Data
			tb.Hi[axis]--
			walkBox(phi, tb, func(p int) {
				d3[p] = (d2[p+s] - d2[p]) / 3
			})
		}
	}
}

func sweepAxis[T Real](kern pointKernel[T], ws *Workspace[T],
	plus, minus *grid.Field[T], fb grid.Box, s int, invDx T) {
	var (
		pl = plus.Data
		mi = minus.Data
	)
	for k := fb.Lo[2]; k <= fb.Hi[2]; k++ {
		for j := fb.Lo[1]; j <= fb.Hi[1]; j++ {
			p := plus.Idx(fb.Lo[0], j, k)
			for i := fb.Lo[0]; i <= fb.Hi[0]; i++ {
				kern(p, s, invDx, ws, pl, mi)
				p++
			}
		}
	}
}
