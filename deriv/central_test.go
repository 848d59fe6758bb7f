package deriv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/levelset/grid"
)

// Central differences are exact on quadratics, mixed terms included.
func TestCentralDerivs(t *testing.T) {
	var (
		h   = 0.25
		gb  = grid.NewBox2D(0, 9, 0, 9)
		fb  = gb.Shrink(1)
		dX  = grid.SpacingFromXYZ(h, h, h)
		phi = grid.NewField[float64](gb)
	)
	// phi = a^2 + 3ab - 2b^2 + a with a, b the storage coordinates
	phi.Apply(func(i, j, k int) float64 {
		a, b := float64(i)*h, float64(j)*h
		return a*a + 3*a*b - 2*b*b + a
	})
	{
		gradPhi := []*grid.Field[float64]{grid.NewField[float64](gb), grid.NewField[float64](gb)}
		assert.NoError(t, CentralGradient(gradPhi, phi, fb, dX))
		for i := fb.Lo[0]; i <= fb.Hi[0]; i++ {
			for j := fb.Lo[1]; j <= fb.Hi[1]; j++ {
				a, b := float64(i)*h, float64(j)*h
				assert.InDelta(t, 2*a+3*b+1, gradPhi[0].At(i, j, 0), 1.e-12)
				assert.InDelta(t, 3*a-4*b, gradPhi[1].At(i, j, 0), 1.e-12)
			}
		}
	}
	{
		second := []*grid.Field[float64]{
			grid.NewField[float64](gb), grid.NewField[float64](gb), grid.NewField[float64](gb),
		}
		assert.NoError(t, SecondDerivs(second, phi, fb, dX))
		for i := fb.Lo[0]; i <= fb.Hi[0]; i++ {
			for j := fb.Lo[1]; j <= fb.Hi[1]; j++ {
				assert.InDelta(t, 2, second[0].At(i, j, 0), 1.e-12)
				assert.InDelta(t, -4, second[1].At(i, j, 0), 1.e-12)
				assert.InDelta(t, 3, second[2].At(i, j, 0), 1.e-12)
			}
		}
	}
	// wrong field counts are rejected
	{
		one := []*grid.Field[float64]{grid.NewField[float64](gb)}
		assert.ErrorIs(t, CentralGradient(one, phi, fb, dX), grid.ErrDimension)
		assert.ErrorIs(t, SecondDerivs(one, phi, fb, dX), grid.ErrDimension)
	}
}

func Test3DMixedDerivs(t *testing.T) {
	var (
		h   = 0.5
		gb  = grid.NewBox3D(0, 5, 0, 5, 0, 5)
		fb  = gb.Shrink(1)
		dX  = grid.SpacingFromXYZ(h, h, h)
		phi = grid.NewField[float64](gb)
	)
	phi.Apply(func(i, j, k int) float64 {
		a, b, c := float64(i)*h, float64(j)*h, float64(k)*h
		return a*b + 2*a*c - b*c
	})
	second := make([]*grid.Field[float64], 6)
	for n := range second {
		second[n] = grid.NewField[float64](gb)
	}
	assert.NoError(t, SecondDerivs(second, phi, fb, dX))
	i, j, k := 2, 3, 2
	assert.InDelta(t, 0, second[0].At(i, j, k), 1.e-12)
	assert.InDelta(t, 0, second[1].At(i, j, k), 1.e-12)
	assert.InDelta(t, 0, second[2].At(i, j, k), 1.e-12)
	assert.InDelta(t, 1, second[3].At(i, j, k), 1.e-12)  // (0,1)
	assert.InDelta(t, 2, second[4].At(i, j, k), 1.e-12)  // (0,2)
	assert.InDelta(t, -1, second[5].At(i, j, k), 1.e-12) // (1,2)
}
