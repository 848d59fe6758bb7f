/*
Package evolution assembles the right-hand side of the level set evolution
equation phi_t = ... by accumulating velocity-term contributions into a
shared RHS buffer. Every term exists in a dense variant sweeping a fillbox
and a Local variant sweeping a narrow-band point list filtered by a marker
threshold; both compute the identical per-point formula, so a point visited
by either mode receives the same contribution for the same inputs.

Term calls are additive read-modify-writes over the RHS buffer and must be
issued sequentially within one assembly pass. Within a single call the
per-point updates are independent, and the parallel entry points exploit
that by partitioning points disjointly across goroutines.
*/
package evolution

import (
	"fmt"

	"github.com/notargets/levelset/band"
	"github.com/notargets/levelset/grid"
)

// view adapts a buffer whose ghostbox may be smaller than the principal
// ghostbox of the call. The smaller box is re-centered against the
// reference (truncating shift, see grid.Box.Recenter) and reads are offset
// accordingly, so every buffer is addressed in the coordinates of the
// principal box.
type view[T grid.Real] struct {
	f   *grid.Field[T]
	off [3]int
	// rc is the re-centered ghostbox in principal coordinates; local sweeps
	// bounds-check listed points against it before writing anything.
	rc grid.Box
}

func newView[T grid.Real](f *grid.Field[T], ref, fb grid.Box, name string) (v view[T], err error) {
	if f.B.Dim != ref.Dim {
		err = fmt.Errorf("%w: %s is %dD, expected %dD", grid.ErrDimension,
			name, f.B.Dim, ref.Dim)
		return
	}
	rc := f.B.Recenter(ref)
	if !rc.Contains(fb) {
		err = fmt.Errorf("%w: %s ghostbox %s (re-centered to %s) does not cover fillbox %s",
			grid.ErrBoxMismatch, name, f.B, rc, fb)
		return
	}
	v = view[T]{f: f, rc: rc}
	for n := 0; n < 3; n++ {
		v.off[n] = rc.Lo[n] - f.B.Lo[n]
	}
	return
}

func (v view[T]) at(i, j, k int) T {
	return v.f.At(i-v.off[0], j-v.off[1], k-v.off[2])
}

// gradViews validates a per-axis gradient set against the principal box and
// wraps each component.
func gradViews[T grid.Real](comp []*grid.Field[T], ref, fb grid.Box, name string) (vs [3]view[T], err error) {
	if len(comp) != ref.Dim {
		err = fmt.Errorf("%w: %s has %d components, expected %d",
			grid.ErrDimension, name, len(comp), ref.Dim)
		return
	}
	for n := range comp {
		if vs[n], err = newView(comp[n], ref, fb, fmt.Sprintf("%s[%d]", name, n)); err != nil {
			return
		}
	}
	return
}

// checkRange verifies rng addresses valid list entries and that every
// listed point in it lies inside each of the named boxes, returning a
// configuration error naming the first offender. Called before any output
// is mutated, so a failing call leaves the RHS untouched.
func checkRange(pl *band.PointList, rng band.Range, boxes []grid.Box, names []string) error {
	if rng.Empty() {
		return nil
	}
	if rng.Lo < 0 || rng.Hi > pl.Len()-1 {
		return fmt.Errorf("%w: point range [%d,%d] outside list of length %d",
			grid.ErrBoxMismatch, rng.Lo, rng.Hi, pl.Len())
	}
	for n := rng.Lo; n <= rng.Hi; n++ {
		i, j, k := pl.Point(n)
		for b := range boxes {
			if !boxes[b].ContainsPoint(i, j, k) {
				return fmt.Errorf("%w: band point %d = (%d,%d,%d) outside %s ghostbox %s",
					grid.ErrBoxMismatch, n, i, j, k, names[b], boxes[b])
			}
		}
	}
	return nil
}
