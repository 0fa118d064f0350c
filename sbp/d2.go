package sbp

import (
	"fmt"

	"github.com/notargets/sbpwave/utils"
)

// D2 approximates the second spatial derivative on a uniform grid. The
// interior uses the centered narrow stencil of the requested accuracy order;
// the boundary rows are rewritten per boundary condition kind:
//
//	HomogeneousNeumann   - symmetric (mirror) extension about the edge node,
//	                       enforcing a zero boundary derivative
//	HomogeneousDirichlet - antisymmetric extension with the edge value pinned
//	                       to zero (edge row zeroed)
//	NonReflecting        - edge row zeroed; the outgoing-wave acceleration is
//	                       supplied by the semidiscretization from velocity
//	                       data, remaining near-edge rows use shifted one-sided
//	                       stencils
//
// The operator and its BC kinds are immutable after construction and safe to
// share across repeated right-hand-side evaluations.
type D2 struct {
	G           *Grid
	Order       int
	Left, Right BCKind
	interior    []float64   // centered interior stencil, scaled by 1/h^2
	leftRows    [][]float64 // rows 0..w-1, coefficients over nodes 0..len(row)-1
	rightRows   [][]float64 // rows n-1..n-w, mirrored
	edgeD1      []float64   // one-sided first-derivative stencil at the edge, scaled by 1/h
}

var (
	d2Interior = map[int][]float64{
		2: {1, -2, 1},
		4: {-1. / 12., 4. / 3., -5. / 2., 4. / 3., -1. / 12.},
		6: {1. / 90., -3. / 20., 3. / 2., -49. / 18., 3. / 2., -3. / 20., 1. / 90.},
	}
	// One-sided first-derivative stencils at the edge node, same accuracy
	// order as the interior.
	d2EdgeD1 = map[int][]float64{
		2: {-3. / 2., 2, -1. / 2.},
		4: {-25. / 12., 4, -3, 4. / 3., -1. / 4.},
		6: {-49. / 20., 6, -15. / 2., 20. / 3., -15. / 4., 6. / 5., -1. / 6.},
	}
	// Shifted 5-point second-derivative stencil centered one node in from the
	// edge, used for the near-edge rows of the NonReflecting closure.
	d2Shifted4 = []float64{11. / 12., -5. / 3., 1. / 2., 1. / 3., -1. / 12.}
)

func NewD2(order int, g *Grid, left, right BCKind) (d *D2, err error) {
	interior, ok := d2Interior[order]
	if !ok {
		err = fmt.Errorf("operator setup: no second-derivative stencil for interior order %d (supported: 2, 4, 6)", order)
		return
	}
	for _, bc := range []BCKind{left, right} {
		if err = bc.ValidFor(1); err != nil {
			return
		}
		if bc == NonReflecting && order == 6 {
			err = fmt.Errorf("operator setup: %v closure is not available at interior order 6 (supported: 2, 4)", bc)
			return
		}
	}
	w := len(interior) / 2
	if minN := 2*w + len(interior); g.N < minN {
		err = fmt.Errorf("operator setup: grid has %d nodes, order %d needs at least %d", g.N, order, minN)
		return
	}
	d = &D2{
		G:        g,
		Order:    order,
		Left:     left,
		Right:    right,
		interior: scaleStencil(interior, 1./(g.H*g.H)),
		edgeD1:   scaleStencil(d2EdgeD1[order], 1./g.H),
	}
	d.leftRows = d.closureRows(left)
	d.rightRows = d.closureRows(right)
	return
}

// closureRows builds the w boundary rows for one edge by folding the interior
// stencil under the extension implied by the BC kind.
func (d *D2) closureRows(bc BCKind) (rows [][]float64) {
	var (
		w = len(d.interior) / 2
	)
	rows = make([][]float64, w)
	for i := 0; i < w; i++ {
		row := make([]float64, i+w+1)
		if i == 0 && bc != HomogeneousNeumann {
			// Edge value pinned (Dirichlet) or velocity-driven (NonReflecting).
			rows[i] = row
			continue
		}
		if bc == NonReflecting {
			// Order 4, rows 1..w-1: shifted stencil avoids the ghost region.
			rows[i] = scaleStencil(d2Shifted4, 1./(d.G.H*d.G.H))
			continue
		}
		for k, c := range d.interior {
			idx := i + k - w
			switch {
			case idx >= 0:
				row[idx] += c
			case bc == HomogeneousNeumann:
				row[-idx] += c
			case bc == HomogeneousDirichlet:
				row[-idx] -= c
			}
		}
		rows[i] = row
	}
	return
}

// Apply evaluates a = D2*u. dst and u must not alias.
func (d *D2) Apply(u, a utils.Vector) {
	var (
		n     = d.G.N
		w     = len(d.interior) / 2
		dataU = u.DataP()
		dataA = a.DataP()
	)
	if u.Len() != n || a.Len() != n {
		err := fmt.Errorf("operator apply: grid-function length %d does not match grid size %d", u.Len(), n)
		panic(err)
	}
	for i := 0; i < w; i++ {
		var accL, accR float64
		for k, c := range d.leftRows[i] {
			accL += c * dataU[k]
		}
		for k, c := range d.rightRows[i] {
			accR += c * dataU[n-1-k]
		}
		dataA[i] = accL
		dataA[n-1-i] = accR
	}
	for i := w; i < n-w; i++ {
		var acc float64
		for k, c := range d.interior {
			acc += c * dataU[i+k-w]
		}
		dataA[i] = acc
	}
}

// AbsorbingAccel evaluates the outgoing-characteristic acceleration at an
// absorbing edge from the velocity field: d/dt(v) = +v_x on the left edge,
// -v_x on the right. The 3-point one-sided stencil is used for any interior
// order; wider one-sided differencing of the velocity destabilizes this
// closure under explicit stepping.
func (d *D2) AbsorbingAccel(v utils.Vector, rightEdge bool) (a float64) {
	var (
		n     = d.G.N
		h     = d.G.H
		dataV = v.DataP()
	)
	coeffs := [3]float64{-3. / 2., 2, -1. / 2.}
	for k, c := range coeffs {
		if rightEdge {
			a += c / h * dataV[n-1-k]
		} else {
			a += c / h * dataV[k]
		}
	}
	return
}

// BoundaryDeriv evaluates the one-sided first derivative of u at the edge
// node. The outward direction is flipped on the right edge so the result is
// always d/dx.
func (d *D2) BoundaryDeriv(u utils.Vector, rightEdge bool) (du float64) {
	var (
		n     = d.G.N
		dataU = u.DataP()
	)
	for k, c := range d.edgeD1 {
		if rightEdge {
			du -= c * dataU[n-1-k]
		} else {
			du += c * dataU[k]
		}
	}
	return
}

// ToCSR materializes the operator as a sparse matrix, boundary rows included.
func (d *D2) ToCSR() (R utils.CSR) {
	var (
		n = d.G.N
		w = len(d.interior) / 2
	)
	M := utils.NewDOK(n, n)
	for i := 0; i < w; i++ {
		for k, c := range d.leftRows[i] {
			if c != 0 {
				M.Set(i, k, c)
			}
		}
		for k, c := range d.rightRows[i] {
			if c != 0 {
				M.Set(n-1-i, n-1-k, c)
			}
		}
	}
	for i := w; i < n-w; i++ {
		M.SetRow(i, i-w, d.interior)
	}
	return M.ToCSR()
}
