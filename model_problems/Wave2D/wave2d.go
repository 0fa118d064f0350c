package Wave2D

import (
	"fmt"
	"math"
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"

	"github.com/notargets/sbpwave/integrate"
	"github.com/notargets/sbpwave/sbp"
	"github.com/notargets/sbpwave/utils"
)

// Wave2D is the scalar wave equation u_tt = u_xx + u_yy on the tensor-product
// grid of two 1D SBP operators. The Laplacian Opx kron Iy + Ix kron Opy is
// applied lazily, one direction at a time, without materializing the sparse
// Kronecker matrix; Materialize builds it explicitly for verification.
//
// Flatten contract: fields are stored row-major with x fastest,
// idx = iy*NX + ix. Initial conditions, operator application and any
// reshaping for plotting all share this ordering.
//
// Only the reflecting BC kinds are valid here: the simplified tensor-product
// path carries no velocity data at the boundary, so NonReflecting is rejected
// at construction.
type Wave2D struct {
	// Input parameters
	CFL, FinalTime float64
	GX, GY         *sbp.Grid
	DX, DY         *sbp.D2
	U, V           utils.Vector
	colU, colA     utils.Vector // column sweep scratch; Apply is not concurrency-safe
}

func NewWave2D(CFL, FinalTime float64, NX, NY, order int, xmin, xmax, ymin, ymax float64,
	left, right, bottom, top sbp.BCKind) (c *Wave2D, err error) {
	if CFL <= 0 {
		err = fmt.Errorf("problem setup: CFL must be positive, got %v", CFL)
		return
	}
	for _, bc := range []sbp.BCKind{left, right, bottom, top} {
		if err = bc.ValidFor(2); err != nil {
			return
		}
	}
	c = &Wave2D{
		CFL:       CFL,
		FinalTime: FinalTime,
	}
	if c.GX, err = sbp.NewUniformGrid(xmin, xmax, NX); err != nil {
		return nil, err
	}
	if c.GY, err = sbp.NewUniformGrid(ymin, ymax, NY); err != nil {
		return nil, err
	}
	if c.DX, err = sbp.NewD2(order, c.GX, left, right); err != nil {
		return nil, err
	}
	if c.DY, err = sbp.NewD2(order, c.GY, bottom, top); err != nil {
		return nil, err
	}
	c.U = utils.NewVector(NX * NY)
	c.V = utils.NewVector(NX * NY)
	c.colU = utils.NewVector(NY)
	c.colA = utils.NewVector(NY)
	dataU := c.U.DataP()
	for iy := 0; iy < NY; iy++ {
		y := c.GY.X.AtVec(iy)
		for ix := 0; ix < NX; ix++ {
			x := c.GX.X.AtVec(ix)
			dataU[c.Idx(ix, iy)] = math.Exp(-20 * (x*x + y*y))
		}
	}
	return
}

// Idx maps grid indices to the flattened field index: row-major, x fastest.
func (c *Wave2D) Idx(ix, iy int) int { return iy*c.GX.N + ix }

// ApplyLaplacian evaluates a = (Dx kron Iy + Ix kron Dy) u without forming
// the Kronecker matrix: the x-operator sweeps the contiguous rows, the
// y-operator the strided columns.
func (c *Wave2D) ApplyLaplacian(u, a utils.Vector) {
	var (
		nx, ny = c.GX.N, c.GY.N
		dataU  = u.DataP()
		dataA  = a.DataP()
		dataCU = c.colU.DataP()
		dataCA = c.colA.DataP()
	)
	if u.Len() != nx*ny || a.Len() != nx*ny {
		err := fmt.Errorf("operator apply: field length %d does not match %d x %d grid", u.Len(), nx, ny)
		panic(err)
	}
	for iy := 0; iy < ny; iy++ {
		uRow := utils.NewVector(nx, dataU[iy*nx:(iy+1)*nx])
		aRow := utils.NewVector(nx, dataA[iy*nx:(iy+1)*nx])
		c.DX.Apply(uRow, aRow)
	}
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			dataCU[iy] = dataU[iy*nx+ix]
		}
		c.DY.Apply(c.colU, c.colA)
		for iy := 0; iy < ny; iy++ {
			dataA[iy*nx+ix] += dataCA[iy]
		}
	}
}

// Materialize assembles the sparse 2D Laplacian explicitly. With the
// row-major x-fastest flatten order, the x-operator sits in the minor
// position of the Kronecker products: Iy kron Dx + Dy kron Ix.
func (c *Wave2D) Materialize() (R utils.CSR) {
	var (
		nx, ny = c.GX.N, c.GY.N
	)
	R = utils.SpEye(ny).Kron(c.DX.ToCSR()).Plus(c.DY.ToCSR().Kron(utils.SpEye(nx)))
	R.SetReadOnly("Laplacian2D")
	return
}

// RHS evaluates the acceleration field. Pure; safe for repeated stage
// evaluations.
func (c *Wave2D) RHS(t float64, v, u, a utils.Vector) {
	c.ApplyLaplacian(u, a)
}

// Solve integrates to FinalTime with the fixed-step symplectic integrator,
// sampling nFrames states uniformly.
func (c *Wave2D) Solve(nFrames int) (traj *integrate.Trajectory, err error) {
	var (
		h  = math.Min(c.GX.H, c.GY.H)
		in = &integrate.Verlet{RHS: c.RHS, Dt: c.CFL * h}
	)
	saveAt := integrate.UniformSaveTimes(0, c.FinalTime, nFrames)
	return in.Integrate(0, c.FinalTime, c.U, c.V, saveAt)
}

func (c *Wave2D) Run(showGraph bool, graphDelay ...time.Duration) {
	var (
		chart        *chart2d.Chart2D
		colorMap     *utils2.ColorMap
		chartName    = "Wave2D centerline"
		logFrequency = 50
		nFrames      = 400
		nx, ny       = c.GX.N, c.GY.N
	)
	fmt.Printf("FinalTime = %8.4f, grid = %d x %d, BCs = [%v, %v, %v, %v]\n",
		c.FinalTime, nx, ny, c.DX.Left, c.DX.Right, c.DY.Left, c.DY.Right)
	traj, err := c.Solve(nFrames)
	if err != nil {
		fmt.Printf("integration failed: %v\n", err)
		return
	}
	if showGraph {
		chart = chart2d.NewChart2D(1920, 1280, float32(c.GX.XMin), float32(c.GX.XMax), -1.2, 1.2)
		colorMap = utils2.NewColorMap(-1, 1, 1)
		go chart.Plot()
	}
	for frame := 0; frame < traj.Len(); frame++ {
		if showGraph {
			// Center row of the field, iy = ny/2
			row := traj.U[frame].DataP()[(ny/2)*nx : (ny/2+1)*nx]
			if err := chart.AddSeries(chartName, c.GX.X.DataP(), row,
				chart2d.CrossGlyph, chart2d.Dashed, colorMap.GetRGB(0)); err != nil {
				panic("unable to add graph series")
			}
			if len(graphDelay) != 0 {
				time.Sleep(graphDelay[0])
			}
		}
		if frame%logFrequency == 0 {
			fmt.Printf("Time = %8.4f, umin = %8.4f, umax = %8.4f\n",
				traj.T[frame], traj.U[frame].Min(), traj.U[frame].Max())
		}
	}
}
