package deriv

import (
	"fmt"

	"github.com/notargets/levelset/grid"
)

// CentralGradient computes the second-order central approximation to
// grad(phi) over fb, one component per storage axis. The curvature term
// consumes these rather than the one-sided pair, since curvature flow needs
// an unbiased gradient.
func CentralGradient[T Real](gradPhi []*grid.Field[T], phi *grid.Field[T],
	fb grid.Box, dX grid.Spacing) error {
	var (
		gb  = phi.B
		dim = gb.Dim
	)
	if len(gradPhi) != dim {
		return fmt.Errorf("%w: %d gradient components for a %dD field",
			grid.ErrDimension, len(gradPhi), dim)
	}
	for n := 0; n < dim; n++ {
		if !gradPhi[n].B.Equal(gb) {
			return fmt.Errorf("%w: gradient component %d ghostbox differs from phi ghostbox %s",
				grid.ErrBoxMismatch, n, gb)
		}
	}
	if err := dX.Validate(dim); err != nil {
		return err
	}
	if fb.Empty() {
		return nil
	}
	if safe := gb.Shrink(1); !safe.Contains(fb) {
		return fmt.Errorf("%w: fillbox %s exceeds %s within ghostbox %s for central gradient",
			grid.ErrFillBox, fb, safe, gb)
	}
	for axis := 0; axis < dim; axis++ {
		var (
			s    = phi.Stride(axis)
			half = T(0.5 / dX[axis])
			pD   = phi.Data
			gD   = gradPhi[axis].Data
		)
		walkBox(phi, fb, func(p int) {
			gD[p] = (pD[p+s] - pD[p-s]) * half
		})
	}
	return nil
}

// SecondDerivs computes the second-order central second derivative tensor
// of phi over fb: the Dim diagonal entries first (xx, yy[, zz] in storage
// order), then the mixed entries (xy for 2D; xy, xz, yz for 3D). The out
// slice must hold 3 fields for 2D and 6 for 3D, all over phi's ghostbox.
func SecondDerivs[T Real](out []*grid.Field[T], phi *grid.Field[T],
	fb grid.Box, dX grid.Spacing) error {
	var (
		gb   = phi.B
		dim  = gb.Dim
		want = 3
	)
	if dim == 3 {
		want = 6
	}
	if len(out) != want {
		return fmt.Errorf("%w: %d second-derivative fields for a %dD field (want %d)",
			grid.ErrDimension, len(out), dim, want)
	}
	for n := range out {
		if !out[n].B.Equal(gb) {
			return fmt.Errorf("%w: second-derivative field %d ghostbox differs from phi ghostbox %s",
				grid.ErrBoxMismatch, n, gb)
		}
	}
	if err := dX.Validate(dim); err != nil {
		return err
	}
	if fb.Empty() {
		return nil
	}
	if safe := gb.Shrink(1); !safe.Contains(fb) {
		return fmt.Errorf("%w: fillbox %s exceeds %s within ghostbox %s for second derivatives",
			grid.ErrFillBox, fb, safe, gb)
	}
	pD := phi.Data
	for axis := 0; axis < dim; axis++ {
		var (
			s   = phi.Stride(axis)
			inv = T(1.0 / (dX[axis] * dX[axis]))
			oD  = out[axis].Data
		)
		walkBox(phi, fb, func(p int) {
			oD[p] = (pD[p+s] - 2*pD[p] + pD[p-s]) * inv
		})
	}
	n := dim
	for a := 0; a < dim-1; a++ {
		for b := a + 1; b < dim; b++ {
			var (
				sa  = phi.Stride(a)
				sb  = phi.Stride(b)
				inv = T(0.25 / (dX[a] * dX[b]))
				oD  = out[n].Data
			)
			walkBox(phi, fb, func(p int) {
				oD[p] = (pD[p+sa+sb] - pD[p+sa-sb] - pD[p-sa+sb] + pD[p-sa-sb]) * inv
			})
			n++
		}
	}
	return nil
}

// walkBox visits every point of box in storage order, passing the flat
// offset relative to f's ghostbox.
func walkBox[T Real](f *grid.Field[T], box grid.Box, fn func(p int)) {
	for k := box.Lo[2]; k <= box.Hi[2]; k++ {
		for j := box.Lo[1]; j <= box.Hi[1]; j++ {
			p := f.Idx(box.Lo[0], j, k)
			for i := box.Lo[0]; i <= box.Hi[0]; i++ {
				fn(p)
				p++
			}
		}
	}
}
