package integrate

import (
	"fmt"
	"math"

	"github.com/notargets/sbpwave/utils"
)

// RKF45 advances the partitioned first-order form of u'' = f(t, u', u) with
// the adaptive Runge-Kutta-Fehlberg 4(5) pair. Step size is controlled by the
// embedded error estimate; a step that cannot be accepted above HMin surfaces
// as an integration failure naming the time reached.
type RKF45 struct {
	RHS        SecondOrderRHS
	RTol, ATol float64
	HInit      float64 // initial step; 0 picks (tf-t0)/100
	HMin       float64 // 0 picks 1e-12*(tf-t0)
	MaxSteps   int     // 0 picks 10_000_000
}

// Fehlberg tableau
var (
	rkfA = [6][5]float64{
		{},
		{1. / 4.},
		{3. / 32., 9. / 32.},
		{1932. / 2197., -7200. / 2197., 7296. / 2197.},
		{439. / 216., -8, 3680. / 513., -845. / 4104.},
		{-8. / 27., 2, -3544. / 2565., 1859. / 4104., -11. / 40.},
	}
	rkfC  = [6]float64{0, 1. / 4., 3. / 8., 12. / 13., 1, 1. / 2.}
	rkfB5 = [6]float64{16. / 135., 0, 6656. / 12825., 28561. / 56430., -9. / 50., 2. / 55.}
	rkfB4 = [6]float64{25. / 216., 0, 1408. / 2565., 2197. / 4104., -1. / 5., 0}
)

type rkfStage struct {
	du, dv utils.Vector // stage derivatives: du = v-stage, dv = f(...)
}

func (in *RKF45) Integrate(t0, tf float64, u0, v0 utils.Vector, saveAt []float64) (traj *Trajectory, err error) {
	if err = checkSpan(t0, tf, saveAt); err != nil {
		return
	}
	var (
		n        = u0.Len()
		rtol     = in.RTol
		atol     = in.ATol
		h        = in.HInit
		hMin     = in.HMin
		maxSteps = in.MaxSteps
		u        = u0.Copy()
		v        = v0.Copy()
		uPrev    = utils.NewVector(n)
		vPrev    = utils.NewVector(n)
		uStage   = utils.NewVector(n)
		vStage   = utils.NewVector(n)
		uNew     = utils.NewVector(n)
		vNew     = utils.NewVector(n)
		stages   [6]rkfStage
		smp      = newSampler(saveAt, n)
	)
	if rtol <= 0 {
		rtol = 1.e-6
	}
	if atol <= 0 {
		atol = 1.e-9
	}
	if h <= 0 {
		h = (tf - t0) / 100
	}
	if hMin <= 0 {
		hMin = 1.e-12 * (tf - t0)
	}
	if maxSteps <= 0 {
		maxSteps = 10000000
	}
	for i := range stages {
		stages[i] = rkfStage{utils.NewVector(n), utils.NewVector(n)}
	}
	smp.cross(t0-1, t0, u, v, u, v)

	t := t0
	traj = smp.traj
	for step := 0; step < maxSteps; step++ {
		if t >= tf-1.e-14*(tf-t0) {
			traj.Complete = true
			return
		}
		if h > tf-t {
			h = tf - t
		}
		// Stage sweep: y' = (v, f(t, v, u))
		for s := 0; s < 6; s++ {
			copy(uStage.DataP(), u.DataP())
			copy(vStage.DataP(), v.DataP())
			for j := 0; j < s; j++ {
				if rkfA[s][j] != 0 {
					uStage.AXPY(h*rkfA[s][j], stages[j].du)
					vStage.AXPY(h*rkfA[s][j], stages[j].dv)
				}
			}
			copy(stages[s].du.DataP(), vStage.DataP())
			in.RHS(t+rkfC[s]*h, vStage, uStage, stages[s].dv)
		}
		// 5th-order solution and embedded 4th-order error estimate
		copy(uNew.DataP(), u.DataP())
		copy(vNew.DataP(), v.DataP())
		var errNorm float64
		for s := 0; s < 6; s++ {
			if rkfB5[s] != 0 {
				uNew.AXPY(h*rkfB5[s], stages[s].du)
				vNew.AXPY(h*rkfB5[s], stages[s].dv)
			}
		}
		for i := 0; i < n; i++ {
			var eu, ev float64
			for s := 0; s < 6; s++ {
				eu += (rkfB5[s] - rkfB4[s]) * stages[s].du.DataP()[i]
				ev += (rkfB5[s] - rkfB4[s]) * stages[s].dv.DataP()[i]
			}
			eu, ev = h*eu, h*ev
			su := atol + rtol*math.Max(math.Abs(u.DataP()[i]), math.Abs(uNew.DataP()[i]))
			sv := atol + rtol*math.Max(math.Abs(v.DataP()[i]), math.Abs(vNew.DataP()[i]))
			errNorm += (eu/su)*(eu/su) + (ev/sv)*(ev/sv)
		}
		errNorm = math.Sqrt(errNorm / float64(2*n))

		if errNorm <= 1 {
			// Accept
			copy(uPrev.DataP(), u.DataP())
			copy(vPrev.DataP(), v.DataP())
			copy(u.DataP(), uNew.DataP())
			copy(v.DataP(), vNew.DataP())
			tNew := t + h
			smp.cross(t, tNew, uPrev, vPrev, u, v)
			t = tNew
			if t >= tf-1.e-14*(tf-t0) {
				traj.Complete = true
				return
			}
		}
		// PI-free step control with the usual safety factor and growth limits
		fac := 0.9 * math.Pow(math.Max(errNorm, 1.e-10), -0.2)
		fac = math.Min(5, math.Max(0.2, fac))
		h *= fac
		if h < hMin {
			err = fmt.Errorf("integration failure: step size %v below minimum %v at t = %v (reached %v of %v)", h, hMin, t, t, tf)
			return
		}
	}
	err = fmt.Errorf("integration failure: step budget %d exhausted at t = %v of %v", maxSteps, t, tf)
	return
}
