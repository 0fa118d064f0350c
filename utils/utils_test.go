package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector(t *testing.T) {
	N := 3
	v1 := NewVector(N, []float64{1, 2, 3})
	require.Equal(t, 3., v1.RawVector().Data[N-1])
	v1.Set(2, 5)
	require.Equal(t, 5., v1.AtVec(2))
	v1.Set(2, 3)

	// Chainable arithmetic mutates the receiver
	v2 := v1.Copy().Scale(2).AddScalar(1)
	assert.Equal(t, []float64{3, 5, 7}, v2.DataP())
	v2.Subtract(v1)
	assert.Equal(t, []float64{2, 3, 4}, v2.DataP())
	v2.AXPY(2, v1)
	assert.Equal(t, []float64{4, 7, 10}, v2.DataP())
	assert.Equal(t, 4., v2.Min())
	assert.Equal(t, 10., v2.Max())
	assert.Equal(t, 10., v2.MaxAbs())
	assert.Equal(t, 4.+14.+30., v1.Dot(v2))
	assert.InDelta(t, math.Sqrt(14), v1.Norm2(), 1.e-12)

	v3 := v1.Copy().Apply(func(x float64) float64 { return x * x })
	assert.Equal(t, []float64{1, 4, 9}, v3.DataP())

	// Outer product, column major storage underneath
	A := v1.Outer(NewVector(2, []float64{2, 3}))
	nr, nc := A.Dims()
	require.Equal(t, N, nr)
	require.Equal(t, 2, nc)
	assert.Equal(t, 6., A.At(2, 0))
	assert.Equal(t, 9., A.At(2, 1))

	// Write protection
	v1.SetReadOnly("v1")
	assert.Panics(t, func() { v1.Set(0, 0) })
}

func TestSparse(t *testing.T) {
	// 2x2 operator times identity: Kron reproduces the block layout
	M := NewDOK(2, 2)
	M.Set(0, 0, 1)
	M.Set(0, 1, 2)
	M.Set(1, 0, 3)
	M.Set(1, 1, 4)
	A := M.ToCSR()

	K := SpEye(2).Kron(A)
	nr, nc := K.Dims()
	require.Equal(t, 4, nr)
	require.Equal(t, 4, nc)
	assert.Equal(t, 2., K.At(0, 1))
	assert.Equal(t, 0., K.At(0, 2))
	assert.Equal(t, 3., K.At(3, 2))

	K2 := A.Kron(SpEye(2))
	assert.Equal(t, 2., K2.At(0, 2))
	assert.Equal(t, 0., K2.At(0, 1))

	S := K.Plus(K2)
	assert.Equal(t, K.At(1, 1)+K2.At(1, 1), S.At(1, 1))

	v := A.MulVec(NewVector(2, []float64{1, 1}))
	assert.Equal(t, 3., v.AtVec(0))
	assert.Equal(t, 7., v.AtVec(1))
}

func TestPOW(t *testing.T) {
	assert.Equal(t, 8., POW(2, 3))
	assert.Equal(t, 1./8., POW(2, -3))
	assert.Equal(t, 1., POW(7, 0))
	assert.InDelta(t, 1024., POW(2, 10), 1.e-12)
}
