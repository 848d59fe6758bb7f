package model_problems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/levelset/InputParameters"
)

func testDeck() *InputParameters.Parameters {
	return &InputParameters.Parameters{
		Title:          "test sphere",
		Nx:             64,
		Ny:             64,
		SpatialScheme:  "ENO2",
		TimeOrder:      2,
		CFL:            0.5,
		FinalTime:      0.1,
		NormalVelocity: -1,
		SphereRadius:   0.5,
		LogFrequency:   1000,
	}
}

func TestSphereFlowSetup(t *testing.T) {
	c, err := NewSphereFlow(testDeck())
	assert.NoError(t, err)
	// initial zero crossing sits at the configured radius
	assert.InDelta(t, 0.5, c.MeasuredRadius(), c.DX[0])
	// fillbox leaves the ghost frame out
	assert.Equal(t, c.GB.Shrink(c.IP.GhostCellWidth), c.FB)
	// stencil room is checked up front
	bad := testDeck()
	bad.SpatialScheme = "WENO5"
	bad.GhostCellWidth = 2
	_, err = NewSphereFlow(bad)
	assert.Error(t, err)
}

func TestTimeStep(t *testing.T) {
	c, err := NewSphereFlow(testDeck())
	assert.NoError(t, err)
	var (
		h    = c.DX.Min(c.GB.Dim)
		want = 0.5 * h // CFL / (|vn|/h)
	)
	assert.InDelta(t, want, c.TimeStep(), 1.e-12)
	// curvature adds a parabolic restriction
	ipc := testDeck()
	ipc.CurvatureCoeff = 0.01
	cc, err := NewSphereFlow(ipc)
	assert.NoError(t, err)
	assert.Less(t, cc.TimeStep(), c.TimeStep())
}

// A circle under inward (negative) normal velocity shrinks at unit rate.
func TestShrinkingCircle(t *testing.T) {
	c, err := NewSphereFlow(testDeck())
	assert.NoError(t, err)
	assert.NoError(t, c.Run())
	assert.InDelta(t, 0.4, c.ExactRadius(), 1.e-12)
	assert.Less(t, c.RadiusError(), 0.02)
}

// With phi negative inside, positive V_n drives the zero level set along
// the outward normal: the measured radius must grow as r0 + t, not shrink.
func TestExpandingCircle(t *testing.T) {
	ip := testDeck()
	ip.NormalVelocity = 1
	c, err := NewSphereFlow(ip)
	assert.NoError(t, err)
	assert.NoError(t, c.Run())
	assert.InDelta(t, 0.6, c.ExactRadius(), 1.e-12)
	assert.InDelta(t, 0.6, c.MeasuredRadius(), 0.02)
}

// Narrow band mode tracks the same interface as the dense sweep.
func TestShrinkingCircleNarrowBand(t *testing.T) {
	var (
		dense = testDeck()
		nb    = testDeck()
	)
	// wide enough that the frozen region outside the band never enters
	// the interface stencils over this horizon
	nb.NarrowBand = true
	nb.InnerBandWidth = 0.15
	nb.OuterBandWidth = 0.3
	cd, err := NewSphereFlow(dense)
	assert.NoError(t, err)
	cn, err := NewSphereFlow(nb)
	assert.NoError(t, err)
	assert.NoError(t, cd.Run())
	assert.NoError(t, cn.Run())
	assert.Less(t, cn.RadiusError(), 0.02)
	assert.InDelta(t, cd.MeasuredRadius(), cn.MeasuredRadius(), 0.01)
}

// A 3D run with parallel sweeps stays on the analytic radius.
func TestShrinkingSphere3D(t *testing.T) {
	ip := testDeck()
	ip.Nx, ip.Ny, ip.Nz = 32, 32, 32
	ip.DX = [3]float64{}
	ip.FinalTime = 0.05
	ip.ParallelDegree = 4
	c, err := NewSphereFlow(ip)
	assert.NoError(t, err)
	assert.NoError(t, c.Run())
	assert.Less(t, c.RadiusError(), 0.02)
	assert.False(t, math.IsNaN(c.MeasuredRadius()))
}
