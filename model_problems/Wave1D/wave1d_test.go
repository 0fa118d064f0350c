package Wave1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/sbpwave/sbp"
	"github.com/notargets/sbpwave/utils"
)

// nodeAt returns the trajectory displacement closest to (tq, xq)
func nodeAt(c *Wave1D, u utils.Vector, xq float64) float64 {
	var (
		best  = 0
		dist  = math.MaxFloat64
		dataX = c.Grid.X.DataP()
	)
	for i, x := range dataX {
		if d := math.Abs(x - xq); d < dist {
			dist, best = d, i
		}
	}
	return u.AtVec(best)
}

func TestPulseSplitAndReflect(t *testing.T) {
	// Gaussian pulse on [-1,1], left Neumann / right Dirichlet, 4th order,
	// fixed step 0.25*dx. The pulse splits into two half-amplitude waves; by
	// t=1.5 the right one has reflected off the Dirichlet edge with inverted
	// sign and the left one off the Neumann edge upright.
	c, err := NewWave1D(0.25, 1.5, 201, 4, -1, 1, sbp.HomogeneousNeumann, sbp.HomogeneousDirichlet, GaussianPulse)
	assert.NoError(t, err)
	traj, err := c.Solve(4)
	assert.NoError(t, err)
	assert.True(t, traj.Complete)

	// t = 0.5: two half pulses at +/- 0.5
	u := traj.U[1]
	assert.InDelta(t, 0.5, nodeAt(c, u, -0.5), 0.05)
	assert.InDelta(t, 0.5, nodeAt(c, u, 0.5), 0.05)

	// t = 1.5: reflected pulses, Dirichlet side inverted, Neumann side not
	u = traj.U[3]
	assert.Less(t, nodeAt(c, u, 0.5), -0.3)
	assert.Greater(t, nodeAt(c, u, -0.5), 0.3)
}

func TestEnergyConservation(t *testing.T) {
	// Reflecting boundaries: no net energy growth over t in [0,8] within
	// integrator truncation error
	c, err := NewWave1D(0.25, 8, 201, 4, -1, 1, sbp.HomogeneousNeumann, sbp.HomogeneousDirichlet, GaussianPulse)
	assert.NoError(t, err)
	traj, err := c.Solve(17)
	assert.NoError(t, err)
	e0 := c.Energy(traj.U[0], traj.V[0])
	assert.Greater(t, e0, 0.0)
	for i := 1; i < traj.Len(); i++ {
		e := c.Energy(traj.U[i], traj.V[i])
		assert.InDelta(t, e0, e, 0.02*e0)
	}
}

func TestNonReflectingAbsorbs(t *testing.T) {
	// With absorbing edges on both sides the pulse leaves the domain; the
	// residual amplitude at t=3 is a small fraction of the initial one
	for _, order := range []int{2, 4} {
		c, err := NewWave1D(0.25, 3, 201, order, -1, 1, sbp.NonReflecting, sbp.NonReflecting, GaussianPulse)
		assert.NoError(t, err)
		traj, err := c.Solve(2)
		assert.NoError(t, err)
		assert.Less(t, traj.U[traj.Len()-1].MaxAbs(), 0.05)
	}
}

func TestAdaptiveMatchesFixedStep(t *testing.T) {
	run := func(adaptive bool) utils.Vector {
		c, err := NewWave1D(0.25, 1, 101, 4, -1, 1, sbp.HomogeneousNeumann, sbp.HomogeneousNeumann, GaussianPulse)
		assert.NoError(t, err)
		c.Adaptive = adaptive
		traj, err := c.Solve(2)
		assert.NoError(t, err)
		return traj.U[traj.Len()-1]
	}
	uFixed, uAdaptive := run(false), run(true)
	diff := uFixed.Copy().Subtract(uAdaptive)
	assert.Less(t, diff.MaxAbs(), 1.e-2)
}

func TestDirichletKeepsEdgePinned(t *testing.T) {
	c, _ := NewWave1D(0.25, 2, 101, 4, -1, 1, sbp.HomogeneousDirichlet, sbp.HomogeneousDirichlet, SineMode)
	traj, err := c.Solve(9)
	assert.NoError(t, err)
	for i := 0; i < traj.Len(); i++ {
		assert.InDelta(t, 0, traj.U[i].AtVec(0), 1.e-8)
		assert.InDelta(t, 0, traj.U[i].AtVec(c.Grid.N-1), 1.e-8)
	}
}

func TestProblemSetupErrors(t *testing.T) {
	_, err := NewWave1D(-1, 1, 101, 4, -1, 1, sbp.HomogeneousNeumann, sbp.HomogeneousNeumann, GaussianPulse)
	assert.Error(t, err)
	_, err = NewWave1D(0.25, 1, 101, 5, -1, 1, sbp.HomogeneousNeumann, sbp.HomogeneousNeumann, GaussianPulse)
	assert.Error(t, err)
	_, err = NewWave1D(0.25, 1, 1, 4, -1, 1, sbp.HomogeneousNeumann, sbp.HomogeneousNeumann, GaussianPulse)
	assert.Error(t, err)
	_, err = NewWave1D(0.25, 1, 101, 4, 1, -1, sbp.HomogeneousNeumann, sbp.HomogeneousNeumann, GaussianPulse)
	assert.Error(t, err)
	_, err = NewWave1D(0.25, 1, 101, 4, -1, 1, sbp.HomogeneousNeumann, sbp.HomogeneousNeumann, InitType(9))
	assert.Error(t, err)
}
