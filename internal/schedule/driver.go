package schedule

import (
	"fmt"
	"log"
	"time"

	"github.com/busoc/satscheduler/internal/interval"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
)

// RowID identifies one access-report row: one aoi observed by one
// sensor on one satellite.
type RowID struct {
	AoiID string
	Key   Key
}

// Driver runs the batched pushbroom solver across successive
// score-ordered batches, owning the committed-interval lists, the
// per-rev duty-cycle budgets, and the per-row disposition map.
type Driver struct {
	revs      map[Key]interval.List
	budgets   map[Key]*interval.Indexed[float64]
	committed map[Key]interval.List
	schedules map[Key]Schedule

	dispositions map[RowID]Disposition
	nextActivity int
}

// NewDriver seeds one Schedule, committed-interval list and
// duty-cycle budget per key from its rev partition and duty cycle.
func NewDriver(revsByKey map[Key]interval.List, dutyCycleByKey map[Key]float64) *Driver {
	d := &Driver{
		revs:         map[Key]interval.List{},
		budgets:      map[Key]*interval.Indexed[float64]{},
		committed:    map[Key]interval.List{},
		schedules:    map[Key]Schedule{},
		dispositions: map[RowID]Disposition{},
	}
	for key, revs := range revsByKey {
		d.revs[key] = revs
		dc := dutyCycleByKey[key]

		transitions := make([]time.Time, len(revs))
		values := make([]float64, len(revs))
		for i, r := range revs {
			transitions[i] = r.Start
			values[i] = dc * r.Duration().Seconds()
		}
		d.budgets[key] = interval.NewIndexed(transitions, values)
		d.schedules[key] = New(fmt.Sprintf("%s/%s", key.SatID, key.PayloadID))
	}
	return d
}

// Record sets row's disposition to next, keeping the lower (more
// informative) of the current and new codes unless explicit.
func (d *Driver) Record(row RowID, next Disposition, explicit bool) {
	cur, ok := d.dispositions[row]
	if !ok {
		d.dispositions[row] = next
		return
	}
	d.dispositions[row] = Overwrite(cur, next, explicit)
}

// Disposition returns the currently recorded disposition for row, and
// whether one has been recorded at all.
func (d *Driver) Disposition(row RowID) (Disposition, bool) {
	v, ok := d.dispositions[row]
	return v, ok
}

// Schedules returns the accumulated Schedule per key, with Activities
// sorted ascending by interval start.
func (d *Driver) Schedules() map[Key]Schedule {
	out := make(map[Key]Schedule, len(d.schedules))
	for k, s := range d.schedules {
		out[k] = s.WithActivities(s.SortedActivities())
	}
	return out
}

// RunBatch schedules one batch of candidates, grouped by key, against
// the driver's current committed state and budgets. Candidates should
// already be ordered (desc score, asc aoi id) by the caller; within a
// batch that order decides which aois are considered and, through the
// solver's tie-breaking term, which of several equal-score,
// equal-duration candidates wins.
func (d *Driver) RunBatch(cands []Candidate) error {
	byKey := map[Key][]*Candidate{}
	for i := range cands {
		byKey[cands[i].Key] = append(byKey[cands[i].Key], &cands[i])
	}

	for key, keyCands := range byKey {
		budget, ok := d.budgets[key]
		if !ok {
			// no rev partition known for this key: nothing to schedule
			// against, record and move on.
			for _, c := range keyCands {
				d.Record(RowID{AoiID: c.AoiID, Key: key}, NoData, false)
			}
			continue
		}
		if budgetAllZero(budget) {
			for _, c := range keyCands {
				d.Record(RowID{AoiID: c.AoiID, Key: key}, ExceededPayloadDutyCycle, false)
			}
			continue
		}

		outcome, err := solveKey(key, keyCands, d.committed[key], d.revs[key], budget)
		if err != nil {
			return fmt.Errorf("schedule: batch for %+v: %w", key, err)
		}

		switch outcome.status {
		case cmpb.CpSolverStatus_OPTIMAL, cmpb.CpSolverStatus_FEASIBLE:
			if outcome.warning {
				log.Printf("schedule: key %+v solved FEASIBLE (non-optimal), accepting with warning", key)
			}
			sched := d.schedules[key]
			committed := d.committed[key]
			for _, sr := range outcome.scheduled {
				id := fmt.Sprintf("act-%d", d.nextActivity)
				d.nextActivity++
				act := ScheduleActivity{
					ID:        id,
					SatID:     key.SatID,
					PayloadID: key.PayloadID,
					Interval:  sr.interval,
				}
				sched = sched.AddActivity(act)
				committed = interval.From(append(append(interval.List{}, committed...), sr.interval)...)
				d.Record(RowID{AoiID: sr.cand.AoiID, Key: key}, Scheduled, false)
			}
			for _, c := range outcome.degenerate {
				d.Record(RowID{AoiID: c.AoiID, Key: key}, ExceededPayloadDutyCycle, false)
			}
			d.schedules[key] = sched
			d.committed[key] = committed
			for t, debit := range outcome.debitByRev {
				remaining := budget.Lookup(t)
				budget.Set(t, remaining-debit.Seconds())
			}
		default:
			for _, c := range keyCands {
				d.Record(RowID{AoiID: c.AoiID, Key: key}, SolverInfeasibleSolution, false)
			}
		}
	}
	return nil
}

// Bonus marks, for every candidate not itself scheduled, ALREADY_SCHEDULED
// when its original access interval overlaps a committed payload
// interval. Call once after the final batch.
func (d *Driver) Bonus(cands []Candidate) {
	for i := range cands {
		c := &cands[i]
		row := RowID{AoiID: c.AoiID, Key: c.Key}
		if cur, ok := d.dispositions[row]; ok && cur == Scheduled {
			continue
		}
		committed := d.committed[c.Key]
		for _, iv := range committed {
			if c.Original.Overlaps(iv, false, false) {
				d.Record(row, AlreadyScheduled, false)
				break
			}
		}
	}
}
