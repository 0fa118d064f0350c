package Wave2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/sbpwave/sbp"
	"github.com/notargets/sbpwave/utils"
)

func newProblem(t *testing.T, nx, ny int) (c *Wave2D) {
	c, err := NewWave2D(0.2, 1, nx, ny, 4, -1, 1, -1, 1,
		sbp.HomogeneousNeumann, sbp.HomogeneousDirichlet,
		sbp.HomogeneousDirichlet, sbp.HomogeneousNeumann)
	assert.NoError(t, err)
	return
}

func TestFlattenOrder(t *testing.T) {
	// Row-major, x fastest: idx = iy*NX + ix. Any mismatch between this
	// contract and the operator sweeps silently corrupts the solution, so it
	// is pinned here explicitly.
	c := newProblem(t, 13, 17)
	assert.Equal(t, 0, c.Idx(0, 0))
	assert.Equal(t, 5, c.Idx(5, 0))
	assert.Equal(t, 13, c.Idx(0, 1))
	assert.Equal(t, 13*16+12, c.Idx(12, 16))

	u := utils.NewVector(13 * 17)
	for iy := 0; iy < 17; iy++ {
		for ix := 0; ix < 13; ix++ {
			u.DataP()[c.Idx(ix, iy)] = float64(ix) + 100*float64(iy)
		}
	}
	// Consecutive storage walks x first
	assert.Equal(t, 1.0, u.AtVec(1)-u.AtVec(0))
	assert.Equal(t, 100.0, u.AtVec(13)-u.AtVec(0))
}

func TestSeparableField(t *testing.T) {
	// For u = f(x)g(y), the tensor Laplacian must equal (Dx f)g + f(Dy g)
	// pointwise
	var (
		c  = newProblem(t, 25, 31)
		f  = func(x float64) float64 { return math.Exp(-4 * x * x) }
		g  = func(y float64) float64 { return math.Cos(2 * y) }
		nx = c.GX.N
		ny = c.GY.N
	)
	u := utils.NewVector(nx * ny)
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			u.DataP()[c.Idx(ix, iy)] = f(c.GX.X.AtVec(ix)) * g(c.GY.X.AtVec(iy))
		}
	}
	fx := c.GX.Eval(f)
	gy := c.GY.Eval(g)
	dfx := utils.NewVector(nx)
	dgy := utils.NewVector(ny)
	c.DX.Apply(fx, dfx)
	c.DY.Apply(gy, dgy)

	a := utils.NewVector(nx * ny)
	c.ApplyLaplacian(u, a)
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			exact := dfx.AtVec(ix)*gy.AtVec(iy) + fx.AtVec(ix)*dgy.AtVec(iy)
			assert.InDelta(t, exact, a.AtVec(c.Idx(ix, iy)), 1.e-9)
		}
	}
}

func TestLazyMatchesMaterialized(t *testing.T) {
	var (
		c      = newProblem(t, 17, 19)
		nx, ny = c.GX.N, c.GY.N
	)
	u := utils.NewVector(nx * ny)
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			x, y := c.GX.X.AtVec(ix), c.GY.X.AtVec(iy)
			u.DataP()[c.Idx(ix, iy)] = math.Sin(2*x) * math.Exp(-3*y*y)
		}
	}
	a := utils.NewVector(nx * ny)
	c.ApplyLaplacian(u, a)
	R := c.Materialize()
	// Banded in both directions: the assembled operator stays sparse
	assert.Less(t, R.NNZ(), 16*nx*ny)
	aSparse := R.MulVec(u)
	for i := 0; i < nx*ny; i++ {
		assert.InDelta(t, a.AtVec(i), aSparse.AtVec(i), 1.e-9)
	}
}

func TestNonReflectingRejectedIn2D(t *testing.T) {
	// The tensor-product path has no velocity data at the boundary: the
	// capability check must fail at construction, not fall back silently
	_, err := NewWave2D(0.2, 1, 31, 31, 4, -1, 1, -1, 1,
		sbp.NonReflecting, sbp.HomogeneousNeumann,
		sbp.HomogeneousNeumann, sbp.HomogeneousNeumann)
	assert.Error(t, err)
	_, err = NewWave2D(0.2, 1, 31, 31, 4, -1, 1, -1, 1,
		sbp.HomogeneousNeumann, sbp.HomogeneousNeumann,
		sbp.HomogeneousNeumann, sbp.NonReflecting)
	assert.Error(t, err)
}

func TestSolveStable(t *testing.T) {
	// Reflecting box: the pulse stays bounded over the run
	c, err := NewWave2D(0.2, 2, 41, 41, 4, -1, 1, -1, 1,
		sbp.HomogeneousNeumann, sbp.HomogeneousNeumann,
		sbp.HomogeneousNeumann, sbp.HomogeneousNeumann)
	assert.NoError(t, err)
	traj, err := c.Solve(5)
	assert.NoError(t, err)
	assert.True(t, traj.Complete)
	for i := 0; i < traj.Len(); i++ {
		assert.Less(t, traj.U[i].MaxAbs(), 1.5)
	}
}

func TestSetupErrors2D(t *testing.T) {
	_, err := NewWave2D(0, 1, 31, 31, 4, -1, 1, -1, 1,
		sbp.HomogeneousNeumann, sbp.HomogeneousNeumann,
		sbp.HomogeneousNeumann, sbp.HomogeneousNeumann)
	assert.Error(t, err)
	_, err = NewWave2D(0.2, 1, 3, 31, 4, -1, 1, -1, 1,
		sbp.HomogeneousNeumann, sbp.HomogeneousNeumann,
		sbp.HomogeneousNeumann, sbp.HomogeneousNeumann)
	assert.Error(t, err)
	_, err = NewWave2D(0.2, 1, 31, 31, 7, -1, 1, -1, 1,
		sbp.HomogeneousNeumann, sbp.HomogeneousNeumann,
		sbp.HomogeneousNeumann, sbp.HomogeneousNeumann)
	assert.Error(t, err)
}
