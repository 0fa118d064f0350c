package sbp

import (
	"fmt"

	"github.com/notargets/sbpwave/utils"
)

// Grid is a uniform 1D grid over [XMin, XMax] with N nodes including both
// endpoints. Node coordinates are read-only after construction.
type Grid struct {
	N          int
	XMin, XMax float64
	H          float64
	X          utils.Vector
}

func NewUniformGrid(xmin, xmax float64, n int) (g *Grid, err error) {
	if n < 2 {
		err = fmt.Errorf("grid setup: need at least 2 nodes, got %d", n)
		return
	}
	if xmax <= xmin {
		err = fmt.Errorf("grid setup: domain bounds are inverted or empty: [%v,%v]", xmin, xmax)
		return
	}
	g = &Grid{
		N:    n,
		XMin: xmin,
		XMax: xmax,
		H:    (xmax - xmin) / float64(n-1),
	}
	g.X = utils.NewVector(n)
	data := g.X.DataP()
	for i := range data {
		data[i] = xmin + float64(i)*g.H
	}
	g.X.SetReadOnly("Grid.X")
	return
}

// Eval fills a grid-function with f evaluated at the node coordinates.
func (g *Grid) Eval(f func(x float64) float64) (u utils.Vector) {
	u = g.X.Copy().Apply(f)
	return
}
