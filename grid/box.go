package grid

import "fmt"

// Box is an axis-aligned box of integer grid indices with inclusive bounds.
// Dim is 2 or 3; for 2D boxes the third axis is pinned to [0,0] so that the
// same indexing arithmetic serves both dimensionalities.
type Box struct {
	Lo, Hi [3]int
	Dim    int
}

func NewBox2D(ilo, ihi, jlo, jhi int) Box {
	return Box{
		Lo:  [3]int{ilo, jlo, 0},
		Hi:  [3]int{ihi, jhi, 0},
		Dim: 2,
	}
}

func NewBox3D(ilo, ihi, jlo, jhi, klo, khi int) Box {
	return Box{
		Lo:  [3]int{ilo, jlo, klo},
		Hi:  [3]int{ihi, jhi, khi},
		Dim: 3,
	}
}

// Extent returns the number of cells along axis n, zero or negative when the
// box is empty along that axis.
func (b Box) Extent(n int) int {
	return b.Hi[n] - b.Lo[n] + 1
}

// NumCells returns the total cell count, zero for an empty box.
func (b Box) NumCells() (size int) {
	size = 1
	for n := 0; n < 3; n++ {
		ext := b.Extent(n)
		if ext <= 0 {
			return 0
		}
		size *= ext
	}
	return
}

// Empty reports whether any axis has inverted bounds. An empty box is a
// valid input everywhere in this module and always yields a no-op sweep.
func (b Box) Empty() bool {
	for n := 0; n < 3; n++ {
		if b.Lo[n] > b.Hi[n] {
			return true
		}
	}
	return false
}

// Contains reports whether o lies fully inside b. An empty o is contained
// in anything.
func (b Box) Contains(o Box) bool {
	if o.Empty() {
		return true
	}
	for n := 0; n < 3; n++ {
		if o.Lo[n] < b.Lo[n] || o.Hi[n] > b.Hi[n] {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether grid point (i,j,k) lies inside b.
func (b Box) ContainsPoint(i, j, k int) bool {
	p := [3]int{i, j, k}
	for n := 0; n < 3; n++ {
		if p[n] < b.Lo[n] || p[n] > b.Hi[n] {
			return false
		}
	}
	return true
}

// Shrink returns the box with every bound moved inward by width cells on
// each of the Dim active axes. Shrinking a ghostbox by the ghostcell width
// yields the default fillbox.
func (b Box) Shrink(width int) (s Box) {
	s = b
	for n := 0; n < b.Dim; n++ {
		s.Lo[n] += width
		s.Hi[n] -= width
	}
	return
}

// SameShape reports whether the two boxes have identical extents on every
// axis (their bounds may differ).
func (b Box) SameShape(o Box) bool {
	for n := 0; n < 3; n++ {
		if b.Extent(n) != o.Extent(n) {
			return false
		}
	}
	return b.Dim == o.Dim
}

func (b Box) Equal(o Box) bool {
	return b.Lo == o.Lo && b.Hi == o.Hi && b.Dim == o.Dim
}

func (b Box) String() string {
	if b.Dim == 2 {
		return fmt.Sprintf("[%d,%d]x[%d,%d]", b.Lo[0], b.Hi[0], b.Lo[1], b.Hi[1])
	}
	return fmt.Sprintf("[%d,%d]x[%d,%d]x[%d,%d]",
		b.Lo[0], b.Hi[0], b.Lo[1], b.Hi[1], b.Lo[2], b.Hi[2])
}

// Intersect returns the overlap of the two boxes, which may be empty.
func (b Box) Intersect(o Box) (r Box) {
	r = b
	for n := 0; n < 3; n++ {
		if o.Lo[n] > r.Lo[n] {
			r.Lo[n] = o.Lo[n]
		}
		if o.Hi[n] < r.Hi[n] {
			r.Hi[n] = o.Hi[n]
		}
	}
	return
}

// Recenter shifts a buffer's ghostbox so that it is centered with respect
// to ref, the ghostbox of the principal buffer in a call. The shift along
// each axis is (ref_extent - extent)/2 in truncating integer division,
// applied to both bounds; an odd size difference therefore biases the box
// one cell low, matching the reference implementation this module follows.
func (b Box) Recenter(ref Box) (r Box) {
	r = b
	for n := 0; n < b.Dim; n++ {
		if b.Hi[n] != ref.Hi[n] || b.Lo[n] != ref.Lo[n] {
			shift := ref.Lo[n] - b.Lo[n] + (ref.Extent(n)-b.Extent(n))/2
			r.Lo[n] += shift
			r.Hi[n] += shift
		}
	}
	return
}
