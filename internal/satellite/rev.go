package satellite

import (
	"time"

	"github.com/busoc/satscheduler/internal/interval"
)

// RevBoundary names the event used to delimit successive revs.
type RevBoundary int

const (
	// AscendingNode delimits revs at ascending equator crossings.
	AscendingNode RevBoundary = iota
	// DescendingNode delimits revs at descending equator crossings.
	DescendingNode
	// LatitudeExtremum delimits revs at the southern latitude extremum,
	// where the ground track turns from descending to ascending
	// (Vel.Z crosses from negative to positive), the single consistent
	// per-rev event the node-crossing boundaries also use.
	LatitudeExtremum
)

// ConstructRevIntervals returns the partition of bounding into
// revolutions using boundary, sampled from eph at its native step.
// The leading and trailing partial revs are closed at bounding.Start
// and bounding.Stop.
func ConstructRevIntervals(eph *BoundedEphemeris, bounding interval.Date, boundary RevBoundary) (interval.List, error) {
	crossings, err := findBoundaryCrossings(eph, bounding, boundary)
	if err != nil {
		return nil, err
	}

	var out interval.List
	start := bounding.Start
	for _, c := range crossings {
		if !c.After(start) {
			continue
		}
		out = append(out, interval.New(start, c))
		start = c
	}
	if start.Before(bounding.Stop) {
		out = append(out, interval.New(start, bounding.Stop))
	}
	return out, nil
}

// findBoundaryCrossings scans the ephemeris samples in order (the
// propagator invokes event handlers in strictly increasing time) and
// returns the instants where the chosen boundary condition's sign
// changes, linearly interpolated between the bracketing samples.
func findBoundaryCrossings(eph *BoundedEphemeris, bounding interval.Date, boundary RevBoundary) ([]time.Time, error) {
	start, stop := eph.Span()
	if bounding.Start.Before(start) || bounding.Stop.After(stop) {
		// clamp to what the ephemeris actually covers; callers pad
		// the horizon before building the ephemeris specifically so
		// this should not trigger in normal use.
		if bounding.Start.Before(start) {
			bounding.Start = start
		}
		if bounding.Stop.After(stop) {
			bounding.Stop = stop
		}
	}

	g := func(t time.Time) (float64, error) {
		s, err := eph.Query(t)
		if err != nil {
			return 0, err
		}
		switch boundary {
		case DescendingNode:
			return -s.Pos.Z, nil
		case LatitudeExtremum:
			return s.Vel.Z, nil
		default:
			return s.Pos.Z, nil
		}
	}

	step := eph.step
	var crossings []time.Time
	prevT := bounding.Start
	prevG, err := g(prevT)
	if err != nil {
		return nil, err
	}
	for t := bounding.Start.Add(step); !t.After(bounding.Stop); t = t.Add(step) {
		curG, err := g(t)
		if err != nil {
			return nil, err
		}
		if prevG < 0 && curG >= 0 {
			frac := -prevG / (curG - prevG)
			crossT := prevT.Add(time.Duration(frac * float64(t.Sub(prevT))))
			crossings = append(crossings, crossT)
		}
		prevT, prevG = t, curG
	}
	return crossings, nil
}
