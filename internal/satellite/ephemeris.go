package satellite

import (
	"fmt"
	"sort"
	"time"
)

// BoundedEphemeris is a time-bounded, interpolatable record of
// spacecraft states, built with the mission (default) attitude
// provider at a fixed step. Query uses quadratic interpolation over
// the three samples bracketing t. The tolerance given at construction
// is stored but not applied by Query.
type BoundedEphemeris struct {
	samples   []State
	step      time.Duration
	tolerance time.Duration
}

// NewBoundedEphemeris samples prop from start to stop (inclusive) at
// step, recording every state for later interpolated queries.
func NewBoundedEphemeris(prop propagator, start, stop time.Time, step time.Duration, tolerance time.Duration) (*BoundedEphemeris, error) {
	if step <= 0 {
		return nil, fmt.Errorf("satellite: non-positive ephemeris step %s", step)
	}
	eph := &BoundedEphemeris{step: step, tolerance: tolerance}
	for t := start; !t.After(stop); t = t.Add(step) {
		s, err := prop.stateAt(t)
		if err != nil {
			return nil, fmt.Errorf("satellite: propagation failed at %s: %w", t, err)
		}
		eph.samples = append(eph.samples, s)
	}
	return eph, nil
}

// Span returns the first and last sampled instants.
func (e *BoundedEphemeris) Span() (time.Time, time.Time) {
	if len(e.samples) == 0 {
		return time.Time{}, time.Time{}
	}
	return e.samples[0].When, e.samples[len(e.samples)-1].When
}

// Query returns the interpolated state at t, quadratically
// interpolating position and velocity components over the three
// samples closest to t.
func (e *BoundedEphemeris) Query(t time.Time) (State, error) {
	if len(e.samples) == 0 {
		return State{}, fmt.Errorf("satellite: empty ephemeris")
	}
	start, stop := e.Span()
	if t.Before(start) || t.After(stop) {
		return State{}, fmt.Errorf("satellite: %s outside ephemeris span [%s, %s]", t, start, stop)
	}

	i := sort.Search(len(e.samples), func(i int) bool { return !e.samples[i].When.Before(t) })
	if i < len(e.samples) && e.samples[i].When.Equal(t) {
		return e.samples[i], nil
	}
	// pick a window of three samples centered as closely as possible on t
	lo := i - 2
	if lo < 0 {
		lo = 0
	}
	if lo+3 > len(e.samples) {
		lo = len(e.samples) - 3
	}
	if lo < 0 {
		lo = 0
	}
	hi := lo + 3
	if hi > len(e.samples) {
		hi = len(e.samples)
	}
	window := e.samples[lo:hi]
	if len(window) == 1 {
		return window[0], nil
	}

	tx := make([]float64, len(window))
	px, py, pz := make([]float64, len(window)), make([]float64, len(window)), make([]float64, len(window))
	vx, vy, vz := make([]float64, len(window)), make([]float64, len(window)), make([]float64, len(window))
	for k, s := range window {
		tx[k] = s.When.Sub(window[0].When).Seconds()
		px[k], py[k], pz[k] = s.Pos.X, s.Pos.Y, s.Pos.Z
		vx[k], vy[k], vz[k] = s.Vel.X, s.Vel.Y, s.Vel.Z
	}
	at := t.Sub(window[0].When).Seconds()

	interp := func(ys []float64) float64 {
		if len(ys) == 2 {
			return linearInterp(tx, ys, at)
		}
		return quadraticInterp(tx, ys, at)
	}

	pos := State{}
	pos.When = t
	pos.Pos.X, pos.Pos.Y, pos.Pos.Z = interp(px), interp(py), interp(pz)
	pos.Vel.X, pos.Vel.Y, pos.Vel.Z = interp(vx), interp(vy), interp(vz)

	nearest := window[0]
	for _, s := range window {
		if absDuration(s.When.Sub(t)) < absDuration(nearest.When.Sub(t)) {
			nearest = s
		}
	}
	pos.GmstRad = nearest.GmstRad
	return pos, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// linearInterp interpolates ys (len 2) at x.
func linearInterp(xs, ys []float64, x float64) float64 {
	if xs[1] == xs[0] {
		return ys[0]
	}
	t := (x - xs[0]) / (xs[1] - xs[0])
	return ys[0] + t*(ys[1]-ys[0])
}

// quadraticInterp fits a Lagrange quadratic through three (x, y)
// points and evaluates it at x.
func quadraticInterp(xs, ys []float64, x float64) float64 {
	var result float64
	for i := 0; i < 3; i++ {
		term := ys[i]
		for j := 0; j < 3; j++ {
			if i == j {
				continue
			}
			term *= (x - xs[j]) / (xs[i] - xs[j])
		}
		result += term
	}
	return result
}
