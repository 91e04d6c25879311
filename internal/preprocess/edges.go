package preprocess

import (
	"time"

	"github.com/busoc/satscheduler/internal/interval"
)

// edgeBuilder accumulates a List from a series of boolean samples
// taken in increasing time order, tracking entry and exit edges.
type edgeBuilder struct {
	horizon interval.Date
	open    bool
	start   time.Time
	out     interval.List
}

func newEdgeBuilder(horizon interval.Date) *edgeBuilder {
	return &edgeBuilder{horizon: horizon}
}

func (b *edgeBuilder) observe(t time.Time, enabled bool) {
	switch {
	case enabled && !b.open:
		b.open = true
		b.start = t
	case !enabled && b.open:
		b.open = false
		b.out = append(b.out, interval.New(b.start, t))
	}
}

// build closes any still-open interval at the horizon's end and
// returns the accumulated List.
func (b *edgeBuilder) build() interval.List {
	if b.open {
		b.out = append(b.out, interval.New(b.start, b.horizon.Stop))
		b.open = false
	}
	return interval.From(b.out...)
}
