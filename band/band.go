/*
Package band implements the narrow-band point bookkeeping that restricts
kernel sweeps to a sparse, irregular subset of grid points near the zero
level set. The band is an explicit ordered point list paired with a byte
marker per grid cell; a term call visits exactly the listed points whose
marker is at or below the call's threshold, which supports a two-tier band
(an outer, also-tracked layer around an inner, fully-updated layer).
*/
package band

import (
	"math"

	"github.com/notargets/levelset/grid"
)

// Marker values written by Build. Anything above MarkOuter is outside the
// band entirely.
const (
	MarkInner   uint8 = 0
	MarkOuter   uint8 = 1
	MarkOutside uint8 = 255
)

// PointList is an ordered sequence of grid-index tuples in storage order,
// held as parallel arrays. Z stays nil for 2D lists.
type PointList struct {
	X, Y, Z []int
}

func (pl *PointList) Len() int {
	return len(pl.X)
}

func (pl *PointList) Append(i, j, k int, dim int) {
	pl.X = append(pl.X, i)
	pl.Y = append(pl.Y, j)
	if dim == 3 {
		pl.Z = append(pl.Z, k)
	}
}

// Point returns the coordinates of list entry n, with k = 0 for 2D lists.
func (pl *PointList) Point(n int) (i, j, k int) {
	i, j = pl.X[n], pl.Y[n]
	if pl.Z != nil {
		k = pl.Z[n]
	}
	return
}

// Range is an inclusive [Lo,Hi] sub-range of a point list, supporting
// chunked processing of one list across several calls. Lo > Hi is a valid
// empty range and every sweep treats it as a no-op.
type Range struct {
	Lo, Hi int
}

// Full covers the whole of pl.
func Full(pl *PointList) Range {
	return Range{0, pl.Len() - 1}
}

func (r Range) Empty() bool {
	return r.Lo > r.Hi
}

// Split carves the range into n near-equal chunks for parallel sweeps; the
// chunks partition the range disjointly, so concurrent accumulation within
// one term call never touches the same point twice.
func (r Range) Split(n int) (chunks []Range) {
	if r.Empty() || n < 1 {
		return nil
	}
	var (
		size = r.Hi - r.Lo + 1
		per  = size / n
		rem  = size % n
		lo   = r.Lo
	)
	for c := 0; c < n; c++ {
		cnt := per
		if c < rem {
			cnt++
		}
		if cnt == 0 {
			continue
		}
		chunks = append(chunks, Range{lo, lo + cnt - 1})
		lo += cnt
	}
	return
}

// Build scans phi's fillbox and constructs a two-tier narrow band around
// the zero level set: points with |phi| <= innerWidth get MarkInner, points
// with |phi| <= outerWidth get MarkOuter, and both tiers are listed in
// storage order. Everything else is marked MarkOutside and left off the
// list. The mask shares phi's ghostbox.
func Build[T grid.Real](phi *grid.Field[T], fb grid.Box,
	innerWidth, outerWidth float64) (pl *PointList, nb *grid.Mask) {
	nb = grid.NewMask(phi.B)
	nb.Fill(MarkOutside)
	pl = &PointList{}
	if fb.Empty() {
		return
	}
	dim := phi.B.Dim
	for k := fb.Lo[2]; k <= fb.Hi[2]; k++ {
		for j := fb.Lo[1]; j <= fb.Hi[1]; j++ {
			for i := fb.Lo[0]; i <= fb.Hi[0]; i++ {
				d := math.Abs(float64(phi.At(i, j, k)))
				switch {
				case d <= innerWidth:
					nb.Set(i, j, k, MarkInner)
				case d <= outerWidth:
					nb.Set(i, j, k, MarkOuter)
				default:
					continue
				}
				pl.Append(i, j, k, dim)
			}
		}
	}
	return
}
