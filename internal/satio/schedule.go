// Package satio persists the scheduler's outputs: Schedule values as
// JSON, and access reports as CSV, in the teacher's ingest.go/alliop.go
// reader/writer idiom.
package satio

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/busoc/satscheduler/internal/interval"
	"github.com/busoc/satscheduler/internal/schedule"
)

type jsonInterval [2]string

type jsonActivity struct {
	ID         string            `json:"id"`
	SatID      string            `json:"sat_id"`
	PayloadID  string            `json:"payload_id"`
	Interval   jsonInterval      `json:"interval"`
	Properties map[string]string `json:"properties,omitempty"`
}

type jsonSchedule struct {
	ID         string         `json:"id"`
	Intervals  []jsonInterval `json:"intervals"`
	Activities []jsonActivity `json:"activities"`
}

const isoLayout = time.RFC3339Nano

// WriteSchedule serializes s as `{id, intervals, activities}` JSON to w.
func WriteSchedule(w io.Writer, s schedule.Schedule) error {
	doc := jsonSchedule{ID: s.ID}
	for _, iv := range s.Intervals {
		doc.Intervals = append(doc.Intervals, jsonInterval{iv.Start.Format(isoLayout), iv.Stop.Format(isoLayout)})
	}
	for _, a := range s.Activities {
		doc.Activities = append(doc.Activities, jsonActivity{
			ID:         a.ID,
			SatID:      a.SatID,
			PayloadID:  a.PayloadID,
			Interval:   jsonInterval{a.Interval.Start.Format(isoLayout), a.Interval.Stop.Format(isoLayout)},
			Properties: a.Properties,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ReadSchedule decodes a Schedule previously written by WriteSchedule.
func ReadSchedule(r io.Reader) (schedule.Schedule, error) {
	var doc jsonSchedule
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return schedule.Schedule{}, fmt.Errorf("satio: decode schedule: %w", err)
	}

	s := schedule.New(doc.ID)
	var ivs interval.List
	for _, raw := range doc.Intervals {
		d, err := parseInterval(raw)
		if err != nil {
			return schedule.Schedule{}, err
		}
		ivs = append(ivs, d)
	}
	s = s.WithIntervals(interval.From(ivs...))

	acts := make([]schedule.ScheduleActivity, 0, len(doc.Activities))
	for _, a := range doc.Activities {
		d, err := parseInterval(a.Interval)
		if err != nil {
			return schedule.Schedule{}, err
		}
		acts = append(acts, schedule.ScheduleActivity{
			ID:         a.ID,
			SatID:      a.SatID,
			PayloadID:  a.PayloadID,
			Interval:   d,
			Properties: a.Properties,
		})
	}
	s = s.WithActivities(acts)
	return s, nil
}

func parseInterval(raw jsonInterval) (interval.Date, error) {
	start, err := time.Parse(isoLayout, raw[0])
	if err != nil {
		return interval.Date{}, fmt.Errorf("satio: parse interval start %q: %w", raw[0], err)
	}
	stop, err := time.Parse(isoLayout, raw[1])
	if err != nil {
		return interval.Date{}, fmt.Errorf("satio: parse interval stop %q: %w", raw[1], err)
	}
	return interval.New(start, stop), nil
}
