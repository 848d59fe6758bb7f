package deriv

import (
	"fmt"

	"github.com/notargets/levelset/grid"
)

// Real mirrors the module-wide precision switch.
type Real = grid.Real

// Workspace holds the undivided difference tables one gradient call uses as
// scratch. Tables are allocated with the same ghostbox as phi, exactly like
// the buffers they are derived from. A workspace may be reused across
// sequential calls on the same ghostbox but must not be shared by
// concurrent calls.
type Workspace[T Real] struct {
	// D1(i) = phi(i+1)-phi(i), stored at node i along the sweep axis.
	D1 *grid.Field[T]
	// D2(i) = (D1(i)-D1(i-1))/2; nil below second order.
	D2 *grid.Field[T]
	// D3(i) = (D2(i+1)-D2(i))/3; nil below third order.
	D3 *grid.Field[T]
}

// NewWorkspace allocates the scratch tables sch requires over ghostbox b.
func NewWorkspace[T Real](sch Scheme, b grid.Box) (ws *Workspace[T]) {
	ws = &Workspace[T]{
		D1: grid.NewField[T](b),
	}
	switch sch {
	case ENO2:
		ws.D2 = grid.NewField[T](b)
	case ENO3:
		ws.D2 = grid.NewField[T](b)
		ws.D3 = grid.NewField[T](b)
	}
	return
}

// check verifies the workspace covers phi's ghostbox and carries the tables
// sch needs.
func (ws *Workspace[T]) check(sch Scheme, b grid.Box) error {
	if ws == nil || ws.D1 == nil {
		return fmt.Errorf("%w: nil workspace", grid.ErrBoxMismatch)
	}
	if !ws.D1.B.Equal(b) {
		return fmt.Errorf("%w: workspace ghostbox %s, phi ghostbox %s",
			grid.ErrBoxMismatch, ws.D1.B, b)
	}
	switch sch {
	case ENO2:
		if ws.D2 == nil {
			return fmt.Errorf("%w: workspace lacks D2 table for %s", grid.ErrBoxMismatch, sch)
		}
	case ENO3:
		if ws.D2 == nil || ws.D3 == nil {
			return fmt.Errorf("%w: workspace lacks D2/D3 tables for %s", grid.ErrBoxMismatch, sch)
		}
	}
	return nil
}
