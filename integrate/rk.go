/*
Package integrate provides the TVD Runge-Kutta steppers that drive the RHS
kernel. The steppers are deliberately thin: they own only their stage
scratch buffers and consume the kernel through a single RHS callback, the
same collaborator boundary the kernel exposes to any external integrator.
*/
package integrate

import (
	"fmt"

	"github.com/notargets/levelset/grid"
)

// RHSFunc evaluates the full RHS assembly pass for the supplied level set
// function, writing into rhs. The integrator zeroes nothing; a pass is
// expected to start with evolution.ZeroOut the way every assembly does.
type RHSFunc[T grid.Real] func(phi, rhs *grid.Field[T]) error

// TVDRK is a total-variation-diminishing Runge-Kutta stepper of order 1, 2
// or 3 in the Shu-Osher convex combination form, the standard pairing for
// upwind Hamilton-Jacobi spatial discretizations.
type TVDRK[T grid.Real] struct {
	Order int

	u1, rhs *grid.Field[T]
}

func NewTVDRK[T grid.Real](order int, b grid.Box) (rk *TVDRK[T], err error) {
	if order < 1 || order > 3 {
		err = fmt.Errorf("TVD Runge-Kutta order %d not supported (want 1, 2 or 3)", order)
		return
	}
	rk = &TVDRK[T]{
		Order: order,
		rhs:   grid.NewField[T](b),
	}
	if order > 1 {
		rk.u1 = grid.NewField[T](b)
	}
	return
}

// Step advances phi in place by one time step dt.
func (rk *TVDRK[T]) Step(phi *grid.Field[T], dt T, f RHSFunc[T]) error {
	if !rk.rhs.B.Equal(phi.B) {
		return fmt.Errorf("%w: stepper allocated for ghostbox %s, phi has %s",
			grid.ErrBoxMismatch, rk.rhs.B, phi.B)
	}
	if err := f(phi, rk.rhs); err != nil {
		return err
	}
	var (
		p = phi.Data
		r = rk.rhs.Data
	)
	if rk.Order == 1 {
		for n := range p {
			p[n] += dt * r[n]
		}
		return nil
	}

	u1 := rk.u1.Data
	for n := range p {
		u1[n] = p[n] + dt*r[n]
	}
	if err := f(rk.u1, rk.rhs); err != nil {
		return err
	}
	if rk.Order == 2 {
		for n := range p {
			p[n] = (p[n] + u1[n] + dt*r[n]) / 2
		}
		return nil
	}

	// third order: u2 overwrites the u1 scratch
	for n := range u1 {
		u1[n] = (3*p[n] + u1[n] + dt*r[n]) / 4
	}
	if err := f(rk.u1, rk.rhs); err != nil {
		return err
	}
	third := T(1.0 / 3.0)
	for n := range p {
		p[n] = third*p[n] + 2*third*(u1[n]+dt*r[n])
	}
	return nil
}
