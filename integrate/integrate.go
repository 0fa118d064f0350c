package integrate

import (
	"fmt"

	"github.com/notargets/sbpwave/utils"
)

// SecondOrderRHS evaluates the acceleration field a for the system
// u'' = f(t, u', u). Implementations must be pure: the integrators call it
// repeatedly, including at internal stage points, and reuse results freely.
type SecondOrderRHS func(t float64, v, u, a utils.Vector)

// Trajectory is an ordered sequence of (time, state) samples taken at the
// requested output times. Complete is false when integration failed before
// reaching the final time; a partial trajectory must never be reported as a
// finished run.
type Trajectory struct {
	T        []float64
	U, V     []utils.Vector
	Complete bool
}

func (tr *Trajectory) Len() int { return len(tr.T) }

func (tr *Trajectory) append(t float64, u, v utils.Vector) {
	tr.T = append(tr.T, t)
	tr.U = append(tr.U, u.Copy())
	tr.V = append(tr.V, v.Copy())
}

// UniformSaveTimes returns n output times evenly spaced over [t0, tf],
// endpoints included.
func UniformSaveTimes(t0, tf float64, n int) (ts []float64) {
	if n < 2 {
		return []float64{t0, tf}
	}
	ts = make([]float64, n)
	dt := (tf - t0) / float64(n-1)
	for i := range ts {
		ts[i] = t0 + float64(i)*dt
	}
	ts[n-1] = tf
	return
}

func checkSpan(t0, tf float64, saveAt []float64) (err error) {
	if tf <= t0 {
		err = fmt.Errorf("integration setup: empty time span [%v,%v]", t0, tf)
		return
	}
	for i, ts := range saveAt {
		if ts < t0 || ts > tf {
			err = fmt.Errorf("integration setup: save time %v outside span [%v,%v]", ts, t0, tf)
			return
		}
		if i > 0 && ts <= saveAt[i-1] {
			err = fmt.Errorf("integration setup: save times must be strictly increasing")
			return
		}
	}
	return
}

// sampler interpolates saved states linearly between accepted steps, so exact
// save points are hit without altering the underlying step sequence.
type sampler struct {
	saveAt []float64
	next   int
	traj   *Trajectory
	work   utils.Vector
}

func newSampler(saveAt []float64, n int) *sampler {
	return &sampler{
		saveAt: saveAt,
		traj:   &Trajectory{},
		work:   utils.NewVector(n),
	}
}

// cross records every save point falling inside the accepted step
// (tPrev, t], interpolating between the bracketing states.
func (s *sampler) cross(tPrev, t float64, uPrev, vPrev, u, v utils.Vector) {
	for s.next < len(s.saveAt) && s.saveAt[s.next] <= t+1.e-12*(t-tPrev) {
		ts := s.saveAt[s.next]
		theta := 0.0
		if t > tPrev {
			theta = (ts - tPrev) / (t - tPrev)
		}
		ui := lerp(s.work, uPrev, u, theta)
		s.traj.T = append(s.traj.T, ts)
		s.traj.U = append(s.traj.U, ui.Copy())
		vi := lerp(s.work, vPrev, v, theta)
		s.traj.V = append(s.traj.V, vi.Copy())
		s.next++
	}
}

func lerp(dst, a, b utils.Vector, theta float64) utils.Vector {
	var (
		dataD = dst.DataP()
		dataA = a.DataP()
		dataB = b.DataP()
	)
	for i := range dataD {
		dataD[i] = (1-theta)*dataA[i] + theta*dataB[i]
	}
	return dst
}
