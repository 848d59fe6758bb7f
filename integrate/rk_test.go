package integrate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/levelset/grid"
)

func TestNewTVDRK(t *testing.T) {
	b := grid.NewBox2D(1, 4, 1, 4)
	for order := 1; order <= 3; order++ {
		rk, err := NewTVDRK[float64](order, b)
		assert.NoError(t, err)
		assert.Equal(t, order, rk.Order)
	}
	_, err := NewTVDRK[float64](4, b)
	assert.Error(t, err)
	_, err = NewTVDRK[float64](0, b)
	assert.Error(t, err)
}

// For an RHS independent of phi every order is exact: phi += c*dt.
func TestConstantRHS(t *testing.T) {
	var (
		b = grid.NewBox2D(1, 3, 1, 3)
		c = 2.5
	)
	f := func(phi, rhs *grid.Field[float64]) error {
		rhs.Fill(c)
		return nil
	}
	for order := 1; order <= 3; order++ {
		rk, err := NewTVDRK[float64](order, b)
		assert.NoError(t, err)
		phi := grid.NewField[float64](b)
		phi.Fill(1)
		assert.NoError(t, rk.Step(phi, 0.2, f))
		for _, v := range phi.Data {
			assert.InDelta(t, 1.5, v, 1.e-14)
		}
	}
}

// Exponential decay phi' = -phi exercises the stage structure; the global
// error after integrating to a fixed time must shrink by roughly 2^order
// when the step is halved.
func TestOrderOfAccuracy(t *testing.T) {
	var (
		b = grid.NewBox2D(1, 1, 1, 1)
		f = func(phi, rhs *grid.Field[float64]) error {
			for n := range rhs.Data {
				rhs.Data[n] = -phi.Data[n]
			}
			return nil
		}
		final = 1.0
		errAt = func(order, steps int) float64 {
			rk, err := NewTVDRK[float64](order, b)
			assert.NoError(t, err)
			phi := grid.NewField[float64](b)
			phi.Fill(1)
			dt := final / float64(steps)
			for n := 0; n < steps; n++ {
				assert.NoError(t, rk.Step(phi, dt, f))
			}
			return math.Abs(phi.Data[0] - math.Exp(-final))
		}
	)
	cases := []struct {
		order   int
		minRate float64
	}{
		{1, 0.9},
		{2, 1.9},
		{3, 2.8},
	}
	for _, tc := range cases {
		rate := math.Log2(errAt(tc.order, 32) / errAt(tc.order, 64))
		assert.Greater(t, rate, tc.minRate, "order %d", tc.order)
	}
}

// The stepper refuses a phi allocated on a different ghostbox.
func TestStepBoxMismatch(t *testing.T) {
	rk, err := NewTVDRK[float64](2, grid.NewBox2D(1, 4, 1, 4))
	assert.NoError(t, err)
	phi := grid.NewField[float64](grid.NewBox2D(1, 5, 1, 5))
	err = rk.Step(phi, 0.1, func(p, r *grid.Field[float64]) error { return nil })
	assert.ErrorIs(t, err, grid.ErrBoxMismatch)
}
