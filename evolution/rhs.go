package evolution

import "github.com/notargets/levelset/grid"

// ZeroOut sets rhs to zero at every point of box, typically the whole
// ghostbox once per assembly pass. Dense passes then accumulate only inside
// the fillbox, leaving ghostcells at exactly zero; narrow-band passes rely
// on the point list to decide which cells later receive contributions.
func ZeroOut[T grid.Real](rhs *grid.Field[T], box grid.Box) {
	rhs.FillBox(box, 0)
}
