package deriv

// Fifth-order HJ WENO kernel (Jiang & Peng). Instead of picking one ENO
// sub-stencil it blends the three third-order candidates with weights
// driven by smoothness indicators, so accuracy degrades continuously
// across a discontinuity and no discrete tie-break exists.

func weno5Point[T Real](p, s int, invDx T, ws *Workspace[T], plus, minus []T) {
	d1 := ws.D1.Data
	minus[p] = wenoCombine(
		d1[p-3*s], d1[p-2*s], d1[p-s], d1[p], d1[p+s]) * invDx
	plus[p] = wenoCombine(
		d1[p+2*s], d1[p+s], d1[p], d1[p-s], d1[p-2*s]) * invDx
}

// wenoCombine evaluates the weighted combination on first differences
// v1..v5 ordered upwind-first; the plus branch passes them mirrored, which
// makes the same formula serve both sides.
func wenoCombine[T Real](v1, v2, v3, v4, v5 T) T {
	var (
		s1 = T(13.0/12.0)*sq(v1-2*v2+v3) + T(0.25)*sq(v1-4*v2+3*v3)
		s2 = T(13.0/12.0)*sq(v2-2*v3+v4) + T(0.25)*sq(v2-v4)
		s3 = T(13.0/12.0)*sq(v3-2*v4+v5) + T(0.25)*sq(3*v3-4*v4+v5)
	)
	// regularization scaled to the data, plus a floor against all-zero input
	eps := T(1e-6)*maxSq(v1, v2, v3, v4, v5) + T(1e-35)
	var (
		a1 = T(0.1) / sq(s1+eps)
		a2 = T(0.6) / sq(s2+eps)
		a3 = T(0.3) / sq(s3+eps)
		w  = a1 + a2 + a3
	)
	return (a1*(2*v1-7*v2+11*v3) +
		a2*(-v2+5*v3+2*v4) +
		a3*(2*v3+5*v4-v5)) / (6 * w)
}

func sq[T Real](x T) T { return x * x }

func maxSq[T Real](vs ...T) (m T) {
	for _, v := range vs {
		if v*v > m {
			m = v * v
		}
	}
	return
}
