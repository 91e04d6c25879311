// Package schedule holds the persisted Schedule/ScheduleActivity
// types and the batched pushbroom solver that fills them in.
package schedule

import (
	"github.com/busoc/satscheduler/internal/interval"
)

// Disposition is the integer result code attached to every aoi/access
// row in the final report. Lower codes are more informative; a write
// only overwrites a row's existing code with a lower one unless an
// explicit overwrite is requested.
type Disposition int

const (
	Scheduled                Disposition = 0
	AlreadyScheduled         Disposition = 1
	NotDue                   Disposition = 20
	ExceededPayloadDutyCycle Disposition = 30
	SolverInfeasibleSolution Disposition = 190
	FailedQuality            Disposition = 200
	FailedGeometry           Disposition = 210
	FailedSunGeometry        Disposition = 220
	NoAccess                 Disposition = 299
	NoData                   Disposition = 999
)

func (d Disposition) String() string {
	switch d {
	case Scheduled:
		return "SCHEDULED"
	case AlreadyScheduled:
		return "ALREADY_SCHEDULED"
	case NotDue:
		return "NOT_DUE"
	case ExceededPayloadDutyCycle:
		return "EXCEEDED_PAYLOAD_DUTY_CYCLE"
	case SolverInfeasibleSolution:
		return "SOLVER_INFEASIBLE_SOLUTION"
	case FailedQuality:
		return "FAILED_QUALITY"
	case FailedGeometry:
		return "FAILED_GEOMETRY"
	case FailedSunGeometry:
		return "FAILED_SUN_GEOMETRY"
	case NoAccess:
		return "NO_ACCESS"
	case NoData:
		return "NO_DATA"
	default:
		return "UNKNOWN"
	}
}

// Overwrite reports the disposition a row should hold after a second
// write of next lands on a row currently at cur: the lower (more
// informative) code wins, unless explicit is set.
func Overwrite(cur, next Disposition, explicit bool) Disposition {
	if explicit || next < cur {
		return next
	}
	return cur
}

// ScheduleActivity is one committed imaging activity on a payload
// timeline.
type ScheduleActivity struct {
	ID         string
	SatID      string
	PayloadID  string
	Interval   interval.Date
	Properties map[string]string
}

// Schedule is the committed interval list and activity set for one
// (satellite, payload) key. Write sites go through WithIntervals,
// AddIntervals and WithActivities, each returning a new value rather
// than mutating the receiver.
type Schedule struct {
	ID         string
	Intervals  interval.List
	Activities []ScheduleActivity
}

// New returns an empty Schedule for id.
func New(id string) Schedule {
	return Schedule{ID: id}
}

// WithIntervals returns a copy of s with Intervals replaced by ivs.
func (s Schedule) WithIntervals(ivs interval.List) Schedule {
	s.Intervals = ivs
	return s
}

// AddIntervals returns a copy of s with ds merged into Intervals.
func (s Schedule) AddIntervals(ds ...interval.Date) Schedule {
	s.Intervals = interval.From(append(append(interval.List{}, s.Intervals...), ds...)...)
	return s
}

// WithActivities returns a copy of s with Activities replaced by acts.
func (s Schedule) WithActivities(acts []ScheduleActivity) Schedule {
	s.Activities = acts
	return s
}

// AddActivity returns a copy of s with act appended to Activities and
// its interval merged into Intervals.
func (s Schedule) AddActivity(act ScheduleActivity) Schedule {
	out := make([]ScheduleActivity, len(s.Activities), len(s.Activities)+1)
	copy(out, s.Activities)
	out = append(out, act)
	s.Activities = out
	return s.AddIntervals(act.Interval)
}

// SortedActivities returns Activities sorted ascending by interval
// start, leaving the receiver untouched.
func (s Schedule) SortedActivities() []ScheduleActivity {
	out := make([]ScheduleActivity, len(s.Activities))
	copy(out, s.Activities)
	sortActivitiesByStart(out)
	return out
}

func sortActivitiesByStart(acts []ScheduleActivity) {
	for i := 1; i < len(acts); i++ {
		for j := i; j > 0 && acts[j].Interval.Start.Before(acts[j-1].Interval.Start); j-- {
			acts[j], acts[j-1] = acts[j-1], acts[j]
		}
	}
}

// Key identifies one payload timeline: a satellite's single sensor.
type Key struct {
	SatID     string
	PayloadID string
}
