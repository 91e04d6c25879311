package schedule

import (
	"fmt"
	"time"

	"github.com/busoc/satscheduler/internal/interval"
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
)

// scoreScale fixes the precision at which a ScoredAoi's floating
// score is folded into the CP-SAT objective's integer coefficients.
const scoreScale = 1000.0

// Candidate is one access interval of one aoi on one payload timeline,
// seeded from the scorer's ordered output.
type Candidate struct {
	AoiID    string
	Key      Key
	Original interval.Date
	Score    float64
}

// row is one solver decision variable pair: the residual of a
// candidate's access interval after subtracting already-committed
// time, scheduled in whole seconds since the batch's epoch.
type row struct {
	cand       *Candidate
	score      float64
	residual   interval.Date
	startVar   cpmodel.IntVar
	stopVar    cpmodel.IntVar
	degenerate cpmodel.BoolVar
}

type scheduledRow struct {
	cand     *Candidate
	interval interval.Date
}

type solveOutcome struct {
	status     cmpb.CpSolverStatus
	scheduled  []scheduledRow // non-degenerate rows only
	degenerate []*Candidate   // rows read back as degenerate (not scheduled)
	debitByRev map[time.Time]time.Duration
	warning    bool
}

// solveKey runs one batch's CP-SAT model for a single (sat, payload)
// key: mutual exclusion between time-overlapping residual intervals,
// a per-rev duty-cycle budget sum, and a score-weighted duration
// objective. On success it returns the non-degenerate rows with the
// interval actually scheduled, the candidates of the degenerate rows
// separately, and the rev-budget debits to apply.
func solveKey(key Key, cands []*Candidate, committed interval.List, revs interval.List, budget *interval.Indexed[float64]) (solveOutcome, error) {
	var rows []row
	epoch := time.Time{}
	for _, c := range cands {
		residuals, err := interval.Subtract(interval.List{c.Original}, committed)
		if err != nil {
			return solveOutcome{}, fmt.Errorf("schedule: subtract committed: %w", err)
		}
		for _, res := range residuals {
			if epoch.IsZero() || res.Start.Before(epoch) {
				epoch = res.Start
			}
			rows = append(rows, row{cand: c, score: c.Score, residual: res})
		}
	}
	if len(rows) == 0 {
		return solveOutcome{status: cmpb.CpSolverStatus_OPTIMAL}, nil
	}

	model := cpmodel.NewCpModelBuilder()
	for i := range rows {
		r := &rows[i]
		lo := int64(r.residual.Start.Sub(epoch).Seconds())
		hi := int64(r.residual.Stop.Sub(epoch).Seconds())
		dom := cpmodel.NewDomain(lo, hi)
		r.startVar = model.NewIntVarFromDomain(dom)
		r.stopVar = model.NewIntVarFromDomain(dom)
		model.AddLessOrEqual(r.startVar, r.stopVar)
		r.degenerate = model.NewBoolVar()
		model.AddEquality(r.startVar, r.stopVar).OnlyEnforceIf(r.degenerate)
	}

	// Mutual exclusion between overlapping residual intervals of the
	// same payload: at least one of the four clauses must hold,
	// following the ranking sample's precedence-variable pattern.
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			if !rows[i].residual.Overlaps(rows[j].residual, false, false) {
				continue
			}
			precedeIJ := model.NewBoolVar()
			precedeJI := model.NewBoolVar()
			model.AddLessOrEqual(rows[i].stopVar, rows[j].startVar).OnlyEnforceIf(precedeIJ)
			model.AddLessOrEqual(rows[j].stopVar, rows[i].startVar).OnlyEnforceIf(precedeJI)
			model.AddBoolOr(precedeIJ, precedeJI, rows[i].degenerate, rows[j].degenerate)
		}
	}

	// Per-rev duty-cycle budgets: attributed by each row's original
	// access interval start, per spec, not the residual start (which
	// can fall in a different, later rev once an earlier portion of
	// the candidate was already committed in a prior batch).
	for _, r := range revs {
		var sum *cpmodel.LinearExpr
		for i := range rows {
			if !r.Contains(rows[i].cand.Original.Start) {
				continue
			}
			if sum == nil {
				sum = cpmodel.NewLinearExpr()
			}
			sum.AddTerm(rows[i].stopVar, 1)
			sum.AddTerm(rows[i].startVar, -1)
		}
		if sum == nil {
			continue
		}
		remaining := budget.Lookup(r.Start)
		model.AddLessOrEqual(sum, cpmodel.NewConstant(int64(remaining)))
	}

	// The primary term maximizes score-weighted scheduled duration. A
	// much smaller secondary term breaks ties between equal-score,
	// equal-duration candidates in favor of whichever appears earlier
	// in cands, i.e. the caller's (desc score, asc aoi id) order: this
	// is what makes the equal-score duty-cycle scenario deterministic.
	objective := cpmodel.NewLinearExpr()
	for i := range rows {
		weight := int64(rows[i].score*scoreScale)*int64(len(rows)+1) - int64(i)
		objective.AddTerm(rows[i].stopVar, weight)
		objective.AddTerm(rows[i].startVar, -weight)
	}
	model.Maximize(objective)

	m, err := model.Model()
	if err != nil {
		return solveOutcome{}, fmt.Errorf("schedule: build model for %+v: %w", key, err)
	}
	response, err := cpmodel.SolveCpModel(m)
	if err != nil {
		return solveOutcome{}, fmt.Errorf("schedule: solve %+v: %w", key, err)
	}

	status := response.GetStatus()
	out := solveOutcome{status: status, debitByRev: map[time.Time]time.Duration{}}
	if status != cmpb.CpSolverStatus_OPTIMAL && status != cmpb.CpSolverStatus_FEASIBLE {
		return out, nil
	}
	out.warning = status == cmpb.CpSolverStatus_FEASIBLE

	for i := range rows {
		startSec := cpmodel.SolutionIntegerValue(response, rows[i].startVar)
		stopSec := cpmodel.SolutionIntegerValue(response, rows[i].stopVar)
		if stopSec <= startSec {
			out.degenerate = append(out.degenerate, rows[i].cand)
			continue
		}
		start := epoch.Add(time.Duration(startSec) * time.Second)
		stop := epoch.Add(time.Duration(stopSec) * time.Second)
		sched := interval.New(start, stop)
		out.scheduled = append(out.scheduled, scheduledRow{cand: rows[i].cand, interval: sched})

		mid := start.Add(sched.Duration() / 2)
		for _, r := range revs {
			if r.Contains(mid) {
				out.debitByRev[r.Start] += sched.Duration()
				break
			}
		}
	}
	return out, nil
}

// budgetAllZero reports whether every rev's remaining budget for key
// is exhausted, using the Indexed's own transitions as the vantage
// points into its current values.
func budgetAllZero(budget *interval.Indexed[float64]) bool {
	for _, t := range budget.Transitions() {
		if budget.Lookup(t) > 1e-9 {
			return false
		}
	}
	return len(budget.Transitions()) > 0
}
