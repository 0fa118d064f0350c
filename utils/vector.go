package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

type Vector struct {
	V        *mat.VecDense
	readOnly bool
	name     string
}

func NewVector(n int, dataO ...[]float64) (v Vector) {
	var m *mat.VecDense
	if len(dataO) != 0 {
		if len(dataO[0]) != n {
			err := fmt.Errorf("mismatch in allocation: NewVector n = %v, len(data[0]) = %v\n", n, len(dataO[0]))
			panic(err)
		}
		m = mat.NewVecDense(n, dataO[0])
	} else {
		m = mat.NewVecDense(n, make([]float64, n))
	}
	v = Vector{
		m,
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

func NewVectorConstant(n int, val float64) (v Vector) {
	v = NewVector(n, ConstArray(n, val))
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (v Vector) Dims() (r, c int)         { return v.V.Dims() }
func (v Vector) At(i, j int) float64      { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix            { return v.V.T() }
func (v Vector) AtVec(i int) float64      { return v.V.AtVec(i) }
func (v Vector) RawVector() blas64.Vector { return v.V.RawVector() }
func (v Vector) Len() int                 { return v.V.Len() }
func (v Vector) DataP() []float64         { return v.V.RawVector().Data }

func (v *Vector) SetReadOnly(name ...string) Vector {
	if len(name) != 0 {
		v.name = name[0]
	}
	v.readOnly = true
	return *v
}

func (v Vector) Copy() (r Vector) { // Does not change receiver
	r = NewVector(v.Len())
	copy(r.DataP(), v.DataP())
	return
}

// Chainable (extended) methods
func (v Vector) Set(i int, val float64) Vector { // Changes receiver
	v.checkWritable()
	v.V.SetVec(i, val)
	return v
}

func (v Vector) Scale(a float64) Vector { // Changes receiver
	var (
		data = v.DataP()
	)
	v.checkWritable()
	for i := range data {
		data[i] *= a
	}
	return v
}

func (v Vector) AddScalar(a float64) Vector { // Changes receiver
	var (
		data = v.DataP()
	)
	v.checkWritable()
	for i := range data {
		data[i] += a
	}
	return v
}

func (v Vector) Add(a Vector) Vector { // Changes receiver
	var (
		data  = v.DataP()
		dataA = a.DataP()
	)
	v.checkWritable()
	checkLen(v, a)
	for i := range data {
		data[i] += dataA[i]
	}
	return v
}

func (v Vector) Subtract(a Vector) Vector { // Changes receiver
	var (
		data  = v.DataP()
		dataA = a.DataP()
	)
	v.checkWritable()
	checkLen(v, a)
	for i := range data {
		data[i] -= dataA[i]
	}
	return v
}

// AXPY adds alpha*x to the receiver, the workhorse of the integrator stage updates.
func (v Vector) AXPY(alpha float64, x Vector) Vector { // Changes receiver
	var (
		data  = v.DataP()
		dataX = x.DataP()
	)
	v.checkWritable()
	checkLen(v, x)
	for i := range data {
		data[i] += alpha * dataX[i]
	}
	return v
}

func (v Vector) Apply(f func(float64) float64) Vector { // Changes receiver
	var (
		data = v.DataP()
	)
	v.checkWritable()
	for i, val := range data {
		data[i] = f(val)
	}
	return v
}

func (v Vector) Dot(a Vector) (d float64) {
	var (
		data  = v.DataP()
		dataA = a.DataP()
	)
	checkLen(v, a)
	for i, val := range data {
		d += val * dataA[i]
	}
	return
}

func (v Vector) Norm2() (n float64) {
	n = math.Sqrt(v.Dot(v))
	return
}

func (v Vector) Min() (min float64) {
	var (
		data = v.DataP()
	)
	min = data[0]
	for _, val := range data {
		if val < min {
			min = val
		}
	}
	return
}

func (v Vector) Max() (max float64) {
	var (
		data = v.DataP()
	)
	max = data[0]
	for _, val := range data {
		if val > max {
			max = val
		}
	}
	return
}

func (v Vector) MaxAbs() (max float64) {
	var (
		data = v.DataP()
	)
	for _, val := range data {
		if math.Abs(val) > max {
			max = math.Abs(val)
		}
	}
	return
}

func (v Vector) Outer(a Vector) (R Matrix) {
	var (
		nr, nc = v.Len(), a.Len()
	)
	R = NewMatrix(nr, nc)
	dataR := R.DataP()
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			dataR[i*nc+j] = v.AtVec(i) * a.AtVec(j)
		}
	}
	return
}

func (v Vector) checkWritable() {
	if v.readOnly {
		err := fmt.Errorf("attempt to write to a read only vector named: \"%v\"", v.name)
		panic(err)
	}
}

func checkLen(v, a Vector) {
	if v.Len() != a.Len() {
		err := fmt.Errorf("vector length mismatch: len(v) = %v, len(a) = %v\n", v.Len(), a.Len())
		panic(err)
	}
}
