package Wave1D

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

type InitType uint8

const (
	GaussianPulse InitType = iota // exp(-20 x^2), zero velocity
	SineMode                      // sin(pi (x - xmin) / L), zero velocity
)

// InitNameMap maps the input-file / command-line names to initial conditions.
var InitNameMap = map[string]InitType{
	"gauss": GaussianPulse,
	"sin":   SineMode,
}

func ParseInitType(name string) (it InitType, err error) {
	it, ok := InitNameMap[name]
	if !ok {
		err = fmt.Errorf("problem setup: unknown initial condition %q", name)
	}
	return
}

// Wave1D is the 1D scalar wave equation u_tt = u_xx semidiscretized with an
// SBP second-derivative operator and per-edge boundary condition kinds. The
// operator and BC configuration are immutable after construction; RHS is pure
// and safe for repeated integrator stage evaluations.
type Wave1D struct {
	// Input parameters
	CFL, FinalTime float64
	Left, Right    sbp.BCKind
	Adaptive       bool
	Grid           *sbp.Grid
	D2             *sbp.D2
	U, V           utils.Vector
}

func NewWave1D(CFL, FinalTime float64, N, order int, xmin, xmax float64, left, right sbp.BCKind, init InitType) (c *Wave1D, err error) {
	if CFL <= 0 {
		err = fmt.Errorf("problem setup: CFL must be positive, got %v", CFL)
		return
	}
	c = &Wave1D{
		CFL:       CFL,
		FinalTime: FinalTime,
		Left:      left,
		Right:     right,
	}
	if c.Grid, err = sbp.NewUniformGrid(xmin, xmax, N); err != nil {
		return nil, err
	}
	if c.D2, err = sbp.NewD2(order, c.Grid, left, right); err != nil {
		return nil, err
	}
	switch init {
	case GaussianPulse:
		c.U = c.Grid.Eval(func(x float64) float64 { return math.Exp(-20 * x * x) })
	case SineMode:
		l := xmax - xmin
		c.U = c.Grid.Eval(func(x float64) float64 { return math.Sin(math.Pi * (x - xmin) / l) })
	default:
		return nil, fmt.Errorf("problem setup: unknown initial condition %d", init)
	}
	c.V = utils.NewVector(N)
	return
}

// RHS evaluates the acceleration field: operator times displacement, with the
// absorbing edges driven by the velocity's outgoing characteristic.
func (c *Wave1D) RHS(t float64, v, u, a utils.Vector) {
	c.D2.Apply(u, a)
	if c.Left == sbp.NonReflecting {
		a.DataP()[0] = c.D2.AbsorbingAccel(v, false)
	}
	if c.Right == sbp.NonReflecting {
		a.DataP()[c.Grid.N-1] = c.D2.AbsorbingAccel(v, true)
	}
}

// Solve integrates to FinalTime, sampling nFrames states uniformly. With
// Adaptive set, the RKF45 integrator replaces the fixed-step symplectic one.
func (c *Wave1D) Solve(nFrames int) (traj *integrate.Trajectory, err error) {
	saveAt := integrate.UniformSaveTimes(0, c.FinalTime, nFrames)
	if c.Adaptive {
		in := &integrate.RKF45{RHS: c.RHS, RTol: 1.e-6, ATol: 1.e-9}
		return in.Integrate(0, c.FinalTime, c.U, c.V, saveAt)
	}
	in := &integrate.Verlet{RHS: c.RHS, Dt: c.CFL * c.Grid.H}
	return in.Integrate(0, c.FinalTime, c.U, c.V, saveAt)
}

// Energy is the discrete kinetic plus elastic energy, conserved to truncation
// error under reflecting boundaries.
func (c *Wave1D) Energy(u, v utils.Vector) (e float64) {
	var (
		h     = c.Grid.H
		dataU = u.DataP()
		dataV = v.DataP()
	)
	for _, val := range dataV {
		e += 0.5 * h * val * val
	}
	for i := 0; i < len(dataU)-1; i++ {
		du := (dataU[i+1] - dataU[i]) / h
		e += 0.5 * h * du * du
	}
	return
}

func (c *Wave1D) Run(showGraph bool, graphDelay ...time.Duration) {
	var (
		chart        *chart2d.Chart2D
		colorMap     *utils2.ColorMap
		chartName    = "Wave1D"
		logFrequency = 50
		nFrames      = 400
	)
	dt := c.CFL * c.Grid.H
	fmt.Printf("FinalTime = %8.4f, dt = %8.6f, N = %d, BCs = [%v, %v]\n",
		c.FinalTime, dt, c.Grid.N, c.Left, c.Right)
	traj, err := c.Solve(nFrames)
	if err != nil {
		fmt.Printf("integration failed: %v\n", err)
		return
	}
	if showGraph {
		chart = chart2d.NewChart2D(1920, 1280, float32(c.Grid.XMin), float32(c.Grid.XMax), -1.2, 1.2)
		colorMap = utils2.NewColorMap(-1, 1, 1)
		go chart.Plot()
	}
	for frame := 0; frame < traj.Len(); frame++ {
		if showGraph {
			if err := chart.AddSeries(chartName, c.Grid.X.DataP(), traj.U[frame].DataP(),
				chart2d.CrossGlyph, chart2d.Dashed, colorMap.GetRGB(0)); err != nil {
				panic("unable to add graph series")
			}
			if len(graphDelay) != 0 {
				time.Sleep(graphDelay[0])
			}
		}
		if frame%logFrequency == 0 {
			fmt.Printf("Time = %8.4f, energy = %10.6f, umin = %8.4f, umax = %8.4f\n",
				traj.T[frame], c.Energy(traj.U[frame], traj.V[frame]), traj.U[frame].Min(), traj.U[frame].Max())
		}
	}
}
