package sbp

import (
	"fmt"

	"github.com/notargets/sbpwave/utils"
)

// D1 approximates the first spatial derivative on a uniform grid using
// summation-by-parts boundary closures, so that the operator satisfies a
// discrete integration-by-parts identity against the diagonal norm HNorm.
// Application is banded and lazy; ToCSR materializes the operator.
type D1 struct {
	G        *Grid
	Order    int
	interior []float64   // centered interior stencil, already scaled by 1/h
	closure  [][]float64 // left-edge closure rows, scaled by 1/h
	HNorm    []float64   // left-block diagonal norm weights, scaled by h; 1*h elsewhere
}

// Interior stencils and boundary closures for the classical diagonal-norm SBP
// first-derivative operators (interior accuracy 2 and 4, boundary accuracy
// order/2).
var (
	d1Interior = map[int][]float64{
		2: {-1. / 2., 0, 1. / 2.},
		4: {1. / 12., -2. / 3., 0, 2. / 3., -1. / 12.},
	}
	d1Closure = map[int][][]float64{
		2: {
			{-1, 1},
		},
		4: {
			{-24. / 17., 59. / 34., -4. / 17., -3. / 34.},
			{-1. / 2., 0, 1. / 2.},
			{4. / 43., -59. / 86., 0, 59. / 86., -4. / 43.},
			{3. / 98., 0, -59. / 98., 0, 32. / 49., -4. / 49.},
		},
	}
	d1Norm = map[int][]float64{
		2: {1. / 2.},
		4: {17. / 48., 59. / 48., 43. / 48., 49. / 48.},
	}
)

func NewD1(order int, g *Grid) (d *D1, err error) {
	interior, ok := d1Interior[order]
	if !ok {
		err = fmt.Errorf("operator setup: no first-derivative SBP closure for interior order %d (supported: 2, 4)", order)
		return
	}
	closure := d1Closure[order]
	if minN := 2*len(closure) + len(interior); g.N < minN {
		err = fmt.Errorf("operator setup: grid has %d nodes, order %d needs at least %d", g.N, order, minN)
		return
	}
	d = &D1{
		G:        g,
		Order:    order,
		interior: scaleStencil(interior, 1./g.H),
		closure:  scaleRows(closure, 1./g.H),
		HNorm:    scaleStencil(d1Norm[order], g.H),
	}
	return
}

// Apply evaluates du = D1*u. dst and u must not alias.
func (d *D1) Apply(u, du utils.Vector) {
	var (
		n      = d.G.N
		nb     = len(d.closure)
		w      = len(d.interior) / 2
		dataU  = u.DataP()
		dataDU = du.DataP()
	)
	if u.Len() != n || du.Len() != n {
		err := fmt.Errorf("operator apply: grid-function length %d does not match grid size %d", u.Len(), n)
		panic(err)
	}
	for i := 0; i < nb; i++ {
		var accL, accR float64
		row := d.closure[i]
		for k, c := range row {
			accL += c * dataU[k]
			// The right closure is the left one reversed and negated, the
			// derivative being odd under reflection.
			accR -= c * dataU[n-1-k]
		}
		dataDU[i] = accL
		dataDU[n-1-i] = accR
	}
	for i := nb; i < n-nb; i++ {
		var acc float64
		for k, c := range d.interior {
			acc += c * dataU[i+k-w]
		}
		dataDU[i] = acc
	}
}

// ToCSR materializes the operator as a sparse matrix.
func (d *D1) ToCSR() (R utils.CSR) {
	var (
		n  = d.G.N
		nb = len(d.closure)
		w  = len(d.interior) / 2
	)
	M := utils.NewDOK(n, n)
	for i := 0; i < nb; i++ {
		for k, c := range d.closure[i] {
			M.Set(i, k, c)
			M.Set(n-1-i, n-1-k, -c)
		}
	}
	for i := nb; i < n-nb; i++ {
		M.SetRow(i, i-w, d.interior)
	}
	return M.ToCSR()
}

// ToMatrix materializes the operator densely, convenient for inspecting the
// boundary closures at small N.
func (d *D1) ToMatrix() (R utils.Matrix) {
	var (
		n  = d.G.N
		nb = len(d.closure)
		w  = len(d.interior) / 2
	)
	R = utils.NewMatrix(n, n)
	for i := 0; i < nb; i++ {
		for k, c := range d.closure[i] {
			R.Set(i, k, c)
			R.Set(n-1-i, n-1-k, -c)
		}
	}
	for i := nb; i < n-nb; i++ {
		for k, c := range d.interior {
			R.Set(i, i+k-w, c)
		}
	}
	return
}

func scaleStencil(s []float64, a float64) (r []float64) {
	r = make([]float64, len(s))
	for i, val := range s {
		r[i] = a * val
	}
	return
}

func scaleRows(rows [][]float64, a float64) (r [][]float64) {
	r = make([][]float64, len(rows))
	for i, row := range rows {
		r[i] = scaleStencil(row, a)
	}
	return
}
