package deriv

import (
	"fmt"
	"strings"
)

// Scheme selects the one-sided Hamilton-Jacobi derivative approximation.
type Scheme uint8

const (
	ENO1 Scheme = iota
	ENO2
	ENO3
	WENO5
)

func (s Scheme) String() string {
	switch s {
	case ENO1:
		return "ENO1"
	case ENO2:
		return "ENO2"
	case ENO3:
		return "ENO3"
	case WENO5:
		return "WENO5"
	}
	return fmt.Sprintf("Scheme(%d)", uint8(s))
}

// Order returns the formal order of accuracy on smooth data.
func (s Scheme) Order() int {
	switch s {
	case ENO1:
		return 1
	case ENO2:
		return 2
	case ENO3:
		return 3
	case WENO5:
		return 5
	}
	return 0
}

// StencilWidth returns the number of ghostcells the widest candidate stencil
// reaches past a fillbox point on either side. The fillbox must be contained
// in the ghostbox shrunk by this margin.
func (s Scheme) StencilWidth() int {
	switch s {
	case ENO1:
		return 1
	case ENO2:
		return 2
	case ENO3, WENO5:
		return 3
	}
	return 0
}

// ParseScheme resolves a scheme name from an input deck, case-insensitively.
func ParseScheme(name string) (s Scheme, err error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "ENO1":
		s = ENO1
	case "ENO2":
		s = ENO2
	case "ENO3":
		s = ENO3
	case "WENO5", "WENO":
		s = WENO5
	default:
		err = fmt.Errorf("unknown spatial scheme %q (want ENO1, ENO2, ENO3 or WENO5)", name)
	}
	return
}

// pointKernel computes the plus and minus one-sided derivatives at flat
// offset p, where s is the flat stride of a unit move along the sweep axis
// and invDx the reciprocal grid spacing. All buffers share one ghostbox, so
// a single flat offset addresses them all. The kernel layer is pure stencil
// math; all index bookkeeping stays in the orchestration layer above it.
type pointKernel[T Real] func(p, s int, invDx T, ws *Workspace[T], plus, minus []T)

// kernelFor is the dispatch table between the orchestration layer and the
// numeric kernels, one entry per scheme.
func kernelFor[T Real](sch Scheme) pointKernel[T] {
	switch sch {
	case ENO1:
		return eno1Point[T]
	case ENO2:
		return eno2Point[T]
	case ENO3:
		return eno3Point[T]
	case WENO5:
		return weno5Point[T]
	}
	panic(fmt.Sprintf("deriv: no kernel registered for %s", sch))
}
