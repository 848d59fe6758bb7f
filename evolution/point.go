package evolution

import (
	"math"

	"github.com/notargets/levelset/grid"
)

// Per-point term math shared verbatim by the dense and Local sweep drivers.
// Keeping a single copy of each formula is what guarantees the cross-mode
// consistency property: any point visited by both modes receives the same
// contribution for the same inputs.

// zeroTol guards the curvature division; gradients below it in squared
// magnitude contribute no curvature motion.
const zeroTol = 1e-9

func sqrtT[T grid.Real](x T) T {
	return T(math.Sqrt(float64(x)))
}

// upwindGradMag evaluates |grad(phi)| under Godunov Hamiltonian upwinding
// for the normal velocity vn at one point: per axis, the entropy-respecting
// one-sided contribution is max(max(m,0)^2, min(p,0)^2) for vn > 0 and the
// mirrored expression otherwise, summed over axes and rooted.
func upwindGradMag[T grid.Real](plus, minus *[3]view[T], dim int, i, j, k int, vn T) T {
	var g2 T
	if vn > 0 {
		for d := 0; d < dim; d++ {
			var (
				a = minus[d].at(i, j, k)
				b = plus[d].at(i, j, k)
			)
			if a < 0 {
				a = 0
			}
			if b > 0 {
				b = 0
			}
			if aa, bb := a*a, b*b; aa > bb {
				g2 += aa
			} else {
				g2 += bb
			}
		}
	} else {
		for d := 0; d < dim; d++ {
			var (
				a = minus[d].at(i, j, k)
				b = plus[d].at(i, j, k)
			)
			if a > 0 {
				a = 0
			}
			if b < 0 {
				b = 0
			}
			if aa, bb := a*a, b*b; aa > bb {
				g2 += aa
			} else {
				g2 += bb
			}
		}
	}
	return sqrtT(g2)
}

// advectionDot evaluates vel dot grad(phi) with classic upwind selection:
// a non-negative velocity component takes the backward (minus) derivative
// on its axis, a negative one the forward (plus) derivative.
func advectionDot[T grid.Real](plus, minus, vel *[3]view[T], dim int, i, j, k int) T {
	var sum T
	for d := 0; d < dim; d++ {
		v := vel[d].at(i, j, k)
		if v >= 0 {
			sum += v * minus[d].at(i, j, k)
		} else {
			sum += v * plus[d].at(i, j, k)
		}
	}
	return sum
}

// curvatureFlow evaluates kappa*|grad(phi)| from central first derivatives
// and the second derivative tensor, using the level-set mean curvature
// formula with one power of |grad(phi)| cancelled:
//
//	3D: [pxx(py^2+pz^2) + pyy(px^2+pz^2) + pzz(px^2+py^2)
//	     - 2(px py pxy + px pz pxz + py pz pyz)] / |grad(phi)|^2
//
// and the 2D analog. Near-flat gradients return zero instead of dividing.
// Axis labels follow storage order; second holds the diagonal entries
// first, then the mixed entries in (0,1), (0,2), (1,2) order.
func curvatureFlow[T grid.Real](gradPhi, second *[6]view[T], dim int, i, j, k int) T {
	if dim == 2 {
		var (
			px  = gradPhi[0].at(i, j, k)
			py  = gradPhi[1].at(i, j, k)
			pxx = second[0].at(i, j, k)
			pyy = second[1].at(i, j, k)
			pxy = second[2].at(i, j, k)
			den = px*px + py*py
		)
		if float64(den) < zeroTol {
			return 0
		}
		return (pxx*py*py - 2*px*py*pxy + pyy*px*px) / den
	}
	var (
		px  = gradPhi[0].at(i, j, k)
		py  = gradPhi[1].at(i, j, k)
		pz  = gradPhi[2].at(i, j, k)
		pxx = second[0].at(i, j, k)
		pyy = second[1].at(i, j, k)
		pzz = second[2].at(i, j, k)
		pxy = second[3].at(i, j, k)
		pxz = second[4].at(i, j, k)
		pyz = second[5].at(i, j, k)
		den = px*px + py*py + pz*pz
	)
	if float64(den) < zeroTol {
		return 0
	}
	return (pxx*(py*py+pz*pz) + pyy*(px*px+pz*pz) + pzz*(px*px+py*py) -
		2*(px*py*pxy+px*pz*pxz+py*pz*pyz)) / den
}
