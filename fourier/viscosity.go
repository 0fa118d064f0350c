package fourier

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/notargets/sbpwave/utils"
)

// ViscosityKind selects the spectral-viscosity family. All families damp high
// wavenumber content through a non-positive per-mode multiplier
// -eps * k^2 * Qhat(k), differing in the activation profile Qhat.
type ViscosityKind uint8

const (
	// Tadmor1989 activates smoothly above the threshold mode M with the
	// exponential profile exp(-((k-2M)/(k-M))^2), saturating to 1 above 2M.
	Tadmor1989 ViscosityKind = iota

	// MadayTadmor1989 ramps linearly from the threshold mode to the highest
	// resolved mode.
	MadayTadmor1989

	// TadmorWaagan2012Standard uses the quartic profile 1 - (M/k)^4.
	TadmorWaagan2012Standard

	// TadmorWaagan2012Convergent uses the weaker quadratic profile
	// 1 - (M/k)^2.
	TadmorWaagan2012Convergent

	// SuperSpectralViscosity generalizes to a dissipation of order 2s,
	// multiplier -eps * k^2 * (k/K)^(2s-2) with K the highest resolved mode;
	// s = 1 recovers plain vanishing viscosity over all modes.
	SuperSpectralViscosity
)

// ViscosityNameMap maps the input-file / command-line names to kinds.
var ViscosityNameMap = map[string]ViscosityKind{
	"tadmor":         Tadmor1989,
	"madaytadmor":    MadayTadmor1989,
	"tadmorwaagan":   TadmorWaagan2012Standard,
	"tadmorwaagan-c": TadmorWaagan2012Convergent,
	"super":          SuperSpectralViscosity,
}

func ParseViscosityKind(name string) (vk ViscosityKind, err error) {
	vk, ok := ViscosityNameMap[name]
	if !ok {
		err = fmt.Errorf("operator setup: unknown spectral-viscosity kind %q", name)
	}
	return
}

func (vk ViscosityKind) String() string {
	switch vk {
	case Tadmor1989:
		return "Tadmor1989"
	case MadayTadmor1989:
		return "MadayTadmor1989"
	case TadmorWaagan2012Standard:
		return "TadmorWaagan2012Standard"
	case TadmorWaagan2012Convergent:
		return "TadmorWaagan2012Convergent"
	case SuperSpectralViscosity:
		return "SuperSpectralViscosity"
	}
	return "Unknown"
}

// Viscosity is a periodic spectral-viscosity regularization operator. Its
// application damps mode amplitudes by the family profile; modes at or below
// the activation threshold are untouched (except for SuperSpectralViscosity,
// which acts on the whole spectrum).
type Viscosity struct {
	N        int
	Kind     ViscosityKind
	Strength float64 // eps; 0 picks 1/N
	SOrder   int     // dissipation order s for SuperSpectralViscosity
	fft      *fourier.FFT
	mult     []float64
	scratch  []complex128
}

func NewSpectralViscosity(kind ViscosityKind, n int, xmin, xmax, strength float64, sOrder int) (sv *Viscosity, err error) {
	if n < 4 {
		err = fmt.Errorf("operator setup: need at least 4 nodes for spectral viscosity, got %d", n)
		return
	}
	if xmax <= xmin {
		err = fmt.Errorf("operator setup: domain bounds are inverted or empty: [%v,%v]", xmin, xmax)
		return
	}
	if kind > SuperSpectralViscosity {
		err = fmt.Errorf("operator setup: unknown spectral-viscosity kind %d", kind)
		return
	}
	if kind == SuperSpectralViscosity && sOrder < 1 {
		err = fmt.Errorf("operator setup: super-spectral-viscosity order must be >= 1, got %d", sOrder)
		return
	}
	if strength < 0 {
		err = fmt.Errorf("operator setup: viscosity strength must be non-negative, got %v", strength)
		return
	}
	if strength == 0 {
		strength = 1 / float64(n)
	}
	var (
		nm = n/2 + 1
		l  = xmax - xmin
		m  = math.Sqrt(float64(n)) // activation threshold mode
		kk = float64(n) / 2        // highest resolved mode
	)
	sv = &Viscosity{
		N:        n,
		Kind:     kind,
		Strength: strength,
		SOrder:   sOrder,
		fft:      fourier.NewFFT(n),
		mult:     make([]float64, nm),
		scratch:  make([]complex128, nm),
	}
	for j := 1; j < nm; j++ {
		var (
			k    = float64(j)
			qhat float64
		)
		switch kind {
		case Tadmor1989:
			if k > m {
				qhat = 1
				if k < 2*m {
					r := (k - 2*m) / (k - m)
					qhat = math.Exp(-r * r)
				}
			}
		case MadayTadmor1989:
			if k > m && kk > m {
				qhat = math.Min(1, (k-m)/(kk-m))
			}
		case TadmorWaagan2012Standard:
			if k > m {
				qhat = 1 - utils.POW(m/k, 4)
			}
		case TadmorWaagan2012Convergent:
			if k > m {
				qhat = 1 - (m/k)*(m/k)
			}
		case SuperSpectralViscosity:
			qhat = math.Pow(k/kk, float64(2*sOrder-2))
		}
		kPhys := 2 * math.Pi * k / l
		sv.mult[j] = -strength * kPhys * kPhys * qhat / float64(n)
	}
	return
}

// Apply evaluates the dissipation term vu = V*u.
func (sv *Viscosity) Apply(u, vu utils.Vector) {
	if u.Len() != sv.N || vu.Len() != sv.N {
		err := fmt.Errorf("operator apply: grid-function length %d does not match grid size %d", u.Len(), sv.N)
		panic(err)
	}
	sv.fft.Coefficients(sv.scratch, u.DataP())
	for j := range sv.scratch {
		sv.scratch[j] *= complex(sv.mult[j], 0)
	}
	sv.fft.Sequence(vu.DataP(), sv.scratch)
}

// Composed chains a base derivative operator with a spectral-viscosity
// operator: Apply yields D*u + V*u, the regularized derivative used on the
// diagnostic and benchmarking path.
type Composed struct {
	D    *Derivative
	V    *Viscosity
	work utils.Vector
}

func Compose(d *Derivative, v *Viscosity) (c *Composed, err error) {
	if d.N != v.N {
		err = fmt.Errorf("operator setup: derivative size %d does not match viscosity size %d", d.N, v.N)
		return
	}
	c = &Composed{
		D:    d,
		V:    v,
		work: utils.NewVector(d.N),
	}
	return
}

func (c *Composed) Apply(u, du utils.Vector) {
	c.D.Apply(u, du)
	c.V.Apply(u, c.work)
	du.Add(c.work)
}
