package fourier

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/sbpwave/utils"
)

func evalGrid(d *Derivative, f func(x float64) float64) (u utils.Vector) {
	x := d.Grid()
	u = utils.NewVector(d.N)
	for i := 0; i < d.N; i++ {
		u.DataP()[i] = f(x.AtVec(i))
	}
	return
}

func TestDerivativeSpectralExactness(t *testing.T) {
	// A band-limited function is differentiated to machine precision
	d, err := NewDerivative(64, 0, 2*math.Pi, 1)
	assert.NoError(t, err)
	u := evalGrid(d, func(x float64) float64 { return math.Sin(3 * x) })
	du := utils.NewVector(d.N)
	d.Apply(u, du)
	x := d.Grid()
	for i := 0; i < d.N; i++ {
		assert.InDelta(t, 3*math.Cos(3*x.AtVec(i)), du.AtVec(i), 1.e-10)
	}

	d2, _ := NewDerivative(64, 0, 2*math.Pi, 2)
	d2.Apply(u, du)
	for i := 0; i < d.N; i++ {
		assert.InDelta(t, -9*math.Sin(3*x.AtVec(i)), du.AtVec(i), 1.e-9)
	}
}

func TestDerivativeScaledDomain(t *testing.T) {
	// Wavenumbers rescale with the domain length
	d, _ := NewDerivative(128, -1, 1, 1)
	u := evalGrid(d, func(x float64) float64 { return math.Sin(4 * math.Pi * x) })
	du := utils.NewVector(d.N)
	d.Apply(u, du)
	x := d.Grid()
	for i := 0; i < d.N; i++ {
		assert.InDelta(t, 4*math.Pi*math.Cos(4*math.Pi*x.AtVec(i)), du.AtVec(i), 1.e-9)
	}
}

func TestDerivativeSetupErrors(t *testing.T) {
	_, err := NewDerivative(1, 0, 1, 1)
	assert.Error(t, err)
	_, err = NewDerivative(32, 1, 0, 1)
	assert.Error(t, err)
	_, err = NewDerivative(32, 0, 1, 3)
	assert.Error(t, err)
}

func TestViscosityLeavesResolvedModes(t *testing.T) {
	// Modes at or below the activation threshold (~sqrt(N)) pass untouched
	for _, kind := range []ViscosityKind{Tadmor1989, MadayTadmor1989, TadmorWaagan2012Standard, TadmorWaagan2012Convergent} {
		sv, err := NewSpectralViscosity(kind, 128, 0, 2*math.Pi, 0, 0)
		assert.NoError(t, err)
		d, _ := NewDerivative(128, 0, 2*math.Pi, 1)
		u := evalGrid(d, func(x float64) float64 { return math.Sin(2*x) + 0.5*math.Cos(5*x) })
		vu := utils.NewVector(128)
		sv.Apply(u, vu)
		assert.Less(t, vu.MaxAbs(), 1.e-10, kind.String())
	}
}

func TestViscosityDampsHighModes(t *testing.T) {
	// A single high mode maps to a strictly negative multiple of itself
	sv, _ := NewSpectralViscosity(Tadmor1989, 128, 0, 2*math.Pi, 0, 0)
	d, _ := NewDerivative(128, 0, 2*math.Pi, 1)
	u := evalGrid(d, func(x float64) float64 { return math.Sin(50 * x) })
	vu := utils.NewVector(128)
	sv.Apply(u, vu)
	alpha := vu.Dot(u) / u.Dot(u)
	assert.Less(t, alpha, -1.e-6)
	// and colinearity: the viscosity is diagonal in mode space
	resid := vu.Copy().AXPY(-alpha, u)
	assert.Less(t, resid.MaxAbs(), 1.e-8)
}

func TestViscosityDissipative(t *testing.T) {
	// <V u, u> <= 0 for every family: all per-mode multipliers are
	// non-positive
	for _, kind := range []ViscosityKind{Tadmor1989, MadayTadmor1989, TadmorWaagan2012Standard, TadmorWaagan2012Convergent, SuperSpectralViscosity} {
		sv, err := NewSpectralViscosity(kind, 128, 0, 2*math.Pi, 0.05, 2)
		assert.NoError(t, err)
		d, _ := NewDerivative(128, 0, 2*math.Pi, 1)
		u := evalGrid(d, func(x float64) float64 {
			return math.Sin(3*x) + 0.3*math.Sin(40*x) + 0.1*math.Cos(60*x)
		})
		vu := utils.NewVector(128)
		sv.Apply(u, vu)
		assert.LessOrEqual(t, vu.Dot(u), 1.e-10, kind.String())
		// One forward-Euler viscosity step cannot grow the L2 norm
		uNew := u.Copy().Add(vu)
		assert.LessOrEqual(t, uNew.Norm2(), u.Norm2()+1.e-12, kind.String())
	}
}

func TestViscositySetupErrors(t *testing.T) {
	_, err := NewSpectralViscosity(Tadmor1989, 2, 0, 1, 0, 0)
	assert.Error(t, err)
	_, err = NewSpectralViscosity(SuperSpectralViscosity, 64, 0, 1, 0, 0)
	assert.Error(t, err)
	_, err = NewSpectralViscosity(Tadmor1989, 64, 0, 1, -1, 0)
	assert.Error(t, err)
	_, err = NewSpectralViscosity(ViscosityKind(99), 64, 0, 1, 0, 0)
	assert.Error(t, err)
}

func TestComposedMatchesParts(t *testing.T) {
	// The composed operator is exactly D*u + V*u; throughput itself is covered
	// by the benchmarks below
	n := 128
	d, _ := NewDerivative(n, 0, 2*math.Pi, 1)
	sv, _ := NewSpectralViscosity(Tadmor1989, n, 0, 2*math.Pi, 0, 0)
	c, err := Compose(d, sv)
	assert.NoError(t, err)
	u := evalGrid(d, func(x float64) float64 { return math.Exp(math.Sin(x)) })
	du := utils.NewVector(n)
	vu := utils.NewVector(n)
	duc := utils.NewVector(n)
	d.Apply(u, du)
	sv.Apply(u, vu)
	c.Apply(u, duc)
	resid := du.Copy().Add(vu).Subtract(duc)
	assert.Less(t, resid.MaxAbs(), 1.e-12)

	_, err = Compose(d, mustViscosity(Tadmor1989, 64))
	assert.Error(t, err)
}

func mustViscosity(kind ViscosityKind, n int) *Viscosity {
	sv, err := NewSpectralViscosity(kind, n, 0, 2*math.Pi, 0, 0)
	if err != nil {
		panic(err)
	}
	return sv
}

func BenchmarkDerivativeApply(b *testing.B) {
	d, _ := NewDerivative(128, 0, 2*math.Pi, 1)
	u := evalGrid(d, func(x float64) float64 { return math.Exp(math.Sin(x)) })
	du := utils.NewVector(128)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Apply(u, du)
	}
}

func BenchmarkComposedApply(b *testing.B) {
	d, _ := NewDerivative(128, 0, 2*math.Pi, 1)
	sv, _ := NewSpectralViscosity(Tadmor1989, 128, 0, 2*math.Pi, 0, 0)
	c, _ := Compose(d, sv)
	u := evalGrid(d, func(x float64) float64 { return math.Exp(math.Sin(x)) })
	du := utils.NewVector(128)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Apply(u, du)
	}
}
