package fourier

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/notargets/sbpwave/utils"
)

// Derivative is a periodic Fourier differentiation operator on a uniform grid
// of N nodes over [XMin, XMax), right endpoint excluded. Application is a real
// FFT, a per-mode multiply by (ik)^p, and an inverse transform. The operator
// is immutable after construction, but Apply reuses internal scratch storage,
// so a single instance must not be applied concurrently.
type Derivative struct {
	N          int
	XMin, XMax float64
	DerivOrder int
	fft        *fourier.FFT
	mult       []complex128
	scratch    []complex128
}

func NewDerivative(n int, xmin, xmax float64, derivOrder int) (d *Derivative, err error) {
	if n < 2 {
		err = fmt.Errorf("operator setup: need at least 2 nodes, got %d", n)
		return
	}
	if xmax <= xmin {
		err = fmt.Errorf("operator setup: domain bounds are inverted or empty: [%v,%v]", xmin, xmax)
		return
	}
	if derivOrder < 1 || derivOrder > 2 {
		err = fmt.Errorf("operator setup: derivative order %d not supported (1 or 2)", derivOrder)
		return
	}
	var (
		nm = n/2 + 1
		l  = xmax - xmin
	)
	d = &Derivative{
		N:          n,
		XMin:       xmin,
		XMax:       xmax,
		DerivOrder: derivOrder,
		fft:        fourier.NewFFT(n),
		mult:       make([]complex128, nm),
		scratch:    make([]complex128, nm),
	}
	for j := 0; j < nm; j++ {
		k := 2 * math.Pi * float64(j) / l
		d.mult[j] = cmplx.Pow(complex(0, k), complex(float64(derivOrder), 0))
	}
	// An odd-order derivative of the unpaired Nyquist mode has no real
	// representation; it is projected out.
	if n%2 == 0 && derivOrder%2 == 1 {
		d.mult[nm-1] = 0
	}
	// The inverse transform is unnormalized
	for j := range d.mult {
		d.mult[j] /= complex(float64(n), 0)
	}
	return
}

// Grid returns the N periodic node coordinates (right endpoint excluded).
func (d *Derivative) Grid() (x utils.Vector) {
	x = utils.NewVector(d.N)
	var (
		data = x.DataP()
		h    = (d.XMax - d.XMin) / float64(d.N)
	)
	for i := range data {
		data[i] = d.XMin + float64(i)*h
	}
	return
}

// Apply evaluates du = D*u.
func (d *Derivative) Apply(u, du utils.Vector) {
	if u.Len() != d.N || du.Len() != d.N {
		err := fmt.Errorf("operator apply: grid-function length %d does not match grid size %d", u.Len(), d.N)
		panic(err)
	}
	d.fft.Coefficients(d.scratch, u.DataP())
	for j := range d.scratch {
		d.scratch[j] *= d.mult[j]
	}
	d.fft.Sequence(du.DataP(), d.scratch)
}
