package deriv

// Essentially non-oscillatory one-sided derivative kernels, Newton divided
// difference form with undivided tables (Osher & Fedkiw, ch. 3.3). At each
// level the candidate with the smaller magnitude is kept; an exact tie
// keeps the candidate whose stencil extends toward the central direction,
// so stencil selection is deterministic for fixed input.

// pick keeps the smaller-magnitude candidate, preferring central on a tie.
// Callers always pass the central-preferred candidate second.
func pick[T Real](outward, central T) T {
	a, b := outward, central
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	if a < b {
		return outward
	}
	return central
}

func eno1Point[T Real](p, s int, invDx T, ws *Workspace[T], plus, minus []T) {
	d1 := ws.D1.Data
	minus[p] = d1[p-s] * invDx
	plus[p] = d1[p] * invDx
}

func eno2Point[T Real](p, s int, invDx T, ws *Workspace[T], plus, minus []T) {
	var (
		d1 = ws.D1.Data
		d2 = ws.D2.Data
	)
	minus[p] = (d1[p-s] + pick(d2[p-s], d2[p])) * invDx
	plus[p] = (d1[p] - pick(d2[p+s], d2[p])) * invDx
}

// eno3Point adds the third Newton correction. The quadratic term fixes the
// left endpoint kStar of the cubic stencil; the cubic correction weight is
// -1 when the point sits one cell past kStar and +2 when it sits two cells
// past (the derivative of the Newton basis cubic at those offsets).
func eno3Point[T Real](p, s int, invDx T, ws *Workspace[T], plus, minus []T) {
	var (
		d1 = ws.D1.Data
		d2 = ws.D2.Data
		d3 = ws.D3.Data
		c2, c3, w T
	)

	// minus: first difference anchored at i-1
	c2 = pick(d2[p-s], d2[p])
	if c2 == d2[p] { // kStar = i-1
		c3 = pick(d3[p], d3[p-s])
		w = -1
	} else { // kStar = i-2
		c3 = pick(d3[p-2*s], d3[p-s])
		w = 2
	}
	minus[p] = (d1[p-s] + c2 + w*c3) * invDx

	// plus: first difference anchored at i
	c2 = pick(d2[p+s], d2[p])
	if c2 == d2[p] { // kStar = i-1
		c3 = pick(d3[p-s], d3[p])
		w = -1
	} else { // kStar = i
		c3 = pick(d3[p+s], d3[p])
		w = 2
	}
	plus[p] = (d1[p] - c2 + w*c3) * invDx
}
