package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

func (m DOK) Set(i, j int, val float64) DOK { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

func (m DOK) SetRow(i, jmin int, vals []float64) DOK { // Changes receiver
	m.checkWritable()
	for jj, val := range vals {
		if val != 0 {
			m.M.Set(i, jmin+jj, val)
		}
	}
	return m
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:        m.M.ToCSR(),
		readOnly: m.readOnly,
		name:     m.name,
	}
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

type CSR struct {
	M        *sparse.CSR
	readOnly bool
	name     string
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }

func (m *CSR) SetReadOnly(name ...string) CSR {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m CSR) NNZ() int { return m.M.NNZ() }

// MulVec applies the sparse operator to a grid-function, accumulating over the
// stored non-zeros.
func (m CSR) MulVec(v Vector) (R Vector) {
	var (
		nr, nc = m.Dims()
		dataV  = v.DataP()
	)
	if v.Len() != nc {
		err := fmt.Errorf("dimension mismatch in sparse MulVec: nc = %v, len(v) = %v\n", nc, v.Len())
		panic(err)
	}
	R = NewVector(nr)
	dataR := R.DataP()
	m.M.DoNonZero(func(i, j int, val float64) {
		dataR[i] += val * dataV[j]
	})
	return
}

// Kron forms the Kronecker product of the receiver with B. Used to assemble
// tensor-product operators Opx kron Iy + Ix kron Opy for verification against
// the lazy application path.
func (m CSR) Kron(B CSR) (R CSR) {
	var (
		nrA, ncA = m.Dims()
		nrB, ncB = B.Dims()
	)
	K := NewDOK(nrA*nrB, ncA*ncB)
	m.M.DoNonZero(func(ia, ja int, va float64) {
		B.M.DoNonZero(func(ib, jb int, vb float64) {
			K.Set(ia*nrB+ib, ja*ncB+jb, va*vb)
		})
	})
	R = K.ToCSR()
	return
}

// Plus adds B to the receiver elementwise, returning a new matrix.
func (m CSR) Plus(B CSR) (R CSR) {
	var (
		nr, nc   = m.Dims()
		nrB, ncB = B.Dims()
	)
	if nr != nrB || nc != ncB {
		err := fmt.Errorf("dimension mismatch in sparse Plus: %v x %v vs %v x %v\n", nr, nc, nrB, ncB)
		panic(err)
	}
	S := NewDOK(nr, nc)
	m.M.DoNonZero(func(i, j int, val float64) {
		S.Set(i, j, val)
	})
	B.M.DoNonZero(func(i, j int, val float64) {
		S.Set(i, j, S.At(i, j)+val)
	})
	R = S.ToCSR()
	return
}

// SpEye returns the sparse NxN identity.
func SpEye(n int) (R CSR) {
	E := NewDOK(n, n)
	for i := 0; i < n; i++ {
		E.Set(i, i, 1)
	}
	R = E.ToCSR()
	return
}
