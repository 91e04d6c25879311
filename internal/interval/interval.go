// Package interval implements a closed algebra over half-open date
// intervals and sorted, non-overlapping interval lists.
package interval

import (
	"errors"
	"time"
)

// ErrEmptyList is returned by Span on an empty List.
var ErrEmptyList = errors.New("interval: empty list")

// Date is a half-open [Start, Stop) time range.
type Date struct {
	Start time.Time
	Stop  time.Time
}

// New returns a Date, canonicalizing Stop < Start by swapping the
// endpoints rather than failing.
func New(start, stop time.Time) Date {
	if stop.Before(start) {
		start, stop = stop, start
	}
	return Date{Start: start, Stop: stop}
}

// Duration returns Stop - Start.
func (d Date) Duration() time.Duration {
	return d.Stop.Sub(d.Start)
}

// Contains reports whether t lies in [Start, Stop).
func (d Date) Contains(t time.Time) bool {
	return !t.Before(d.Start) && t.Before(d.Stop)
}

// Overlaps reports whether d and o share any instant, per the
// startInclusive/stopInclusive semantics: with the defaults (true,
// false), [a,b) and [c,d) overlap iff a < d and c < b. A shared
// endpoint (one interval's start equal to the other's stop) counts as
// an overlap only when both startInclusive and stopInclusive are set.
func (d Date) Overlaps(o Date, startInclusive, stopInclusive bool) bool {
	touch := startInclusive && stopInclusive
	left := d.Start.Before(o.Stop)
	if touch {
		left = left || d.Start.Equal(o.Stop)
	}
	right := o.Start.Before(d.Stop)
	if touch {
		right = right || o.Start.Equal(d.Stop)
	}
	return left && right
}

// Intersect returns the overlap of d and o and whether it is non-empty.
func (d Date) Intersect(o Date) (Date, bool) {
	start := d.Start
	if o.Start.After(start) {
		start = o.Start
	}
	stop := d.Stop
	if o.Stop.Before(stop) {
		stop = o.Stop
	}
	if !start.Before(stop) {
		return Date{}, false
	}
	return Date{Start: start, Stop: stop}, true
}

// Union returns the covering interval of d and o when they overlap or
// touch; otherwise ok is false.
func (d Date) Union(o Date) (Date, bool) {
	if d.Stop.Before(o.Start) || o.Stop.Before(d.Start) {
		return Date{}, false
	}
	start := d.Start
	if o.Start.Before(start) {
		start = o.Start
	}
	stop := d.Stop
	if o.Stop.After(stop) {
		stop = o.Stop
	}
	return Date{Start: start, Stop: stop}, true
}

// Before reports whether d ends strictly before o starts.
func (d Date) Before(o Date) bool {
	return d.Stop.Before(o.Start) || d.Stop.Equal(o.Start)
}

// After reports whether d starts strictly after o ends.
func (d Date) After(o Date) bool {
	return o.Before(d)
}

// Equal reports value equality.
func (d Date) Equal(o Date) bool {
	return d.Start.Equal(o.Start) && d.Stop.Equal(o.Stop)
}

// Less orders lexicographically on (Start, Stop), for sorting.
func (d Date) Less(o Date) bool {
	if !d.Start.Equal(o.Start) {
		return d.Start.Before(o.Start)
	}
	return d.Stop.Before(o.Stop)
}
