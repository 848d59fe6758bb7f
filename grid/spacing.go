package grid

import "fmt"

// Spacing holds the grid spacing per storage-order axis.
type Spacing [3]float64

// SpacingFromXYZ converts grid spacing given in natural (x,y,z) order to
// storage order by swapping the first two entries, matching the meshgrid
// (y,x,z) layout of the data buffers. For 2D pass dz = 0.
func SpacingFromXYZ(dx, dy, dz float64) Spacing {
	return Spacing{dy, dx, dz}
}

// XYZ converts back to natural order.
func (d Spacing) XYZ() (dx, dy, dz float64) {
	return d[1], d[0], d[2]
}

// Validate reports a configuration error when any of the first dim spacings
// is not strictly positive.
func (d Spacing) Validate(dim int) error {
	for n := 0; n < dim; n++ {
		if d[n] <= 0 {
			return fmt.Errorf("%w: axis %d spacing %g must be positive",
				ErrBadSpacing, n, d[n])
		}
	}
	return nil
}

// Min returns the smallest active-axis spacing, the length scale CFL time
// step estimates are built from.
func (d Spacing) Min(dim int) (m float64) {
	m = d[0]
	for n := 1; n < dim; n++ {
		if d[n] < m {
			m = d[n]
		}
	}
	return
}
