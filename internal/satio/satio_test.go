package satio

import (
	"bytes"
	"testing"
	"time"

	"github.com/busoc/satscheduler/internal/interval"
	"github.com/busoc/satscheduler/internal/schedule"
)

// scenario 6: a Schedule with one activity round-trips through JSON
// exactly, including sub-second interval endpoints.
func TestScheduleJSONRoundTrip(t *testing.T) {
	start := time.Date(2022, 8, 5, 1, 2, 3, 456000000, time.UTC)
	stop := start.Add(90500 * time.Millisecond)

	s := schedule.New("sat1/cam")
	s = s.AddActivity(schedule.ScheduleActivity{
		ID:        "act-0",
		SatID:     "sat1",
		PayloadID: "cam",
		Interval:  interval.New(start, stop),
		Properties: map[string]string{"aoi_id": "a1"},
	})

	var buf bytes.Buffer
	if err := WriteSchedule(&buf, s); err != nil {
		t.Fatalf("WriteSchedule: %v", err)
	}

	got, err := ReadSchedule(&buf)
	if err != nil {
		t.Fatalf("ReadSchedule: %v", err)
	}

	if got.ID != s.ID {
		t.Fatalf("ID = %q, want %q", got.ID, s.ID)
	}
	if len(got.Activities) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(got.Activities))
	}
	gotAct := got.Activities[0]
	wantAct := s.Activities[0]
	if !gotAct.Interval.Start.Equal(wantAct.Interval.Start) || !gotAct.Interval.Stop.Equal(wantAct.Interval.Stop) {
		t.Fatalf("interval = %v, want %v", gotAct.Interval, wantAct.Interval)
	}
	if gotAct.Properties["aoi_id"] != "a1" {
		t.Fatalf("properties not preserved: %v", gotAct.Properties)
	}
	if len(got.Intervals) != 1 || !got.Intervals[0].Start.Equal(start) || !got.Intervals[0].Stop.Equal(stop) {
		t.Fatalf("committed intervals = %v, want [%v, %v)", got.Intervals, start, stop)
	}
}

func TestAccessReportCSVRoundTrip(t *testing.T) {
	start := time.Date(2022, 8, 5, 0, 0, 0, 0, time.UTC)
	rows := []AccessRow{
		{
			AoiID: "a1", SatelliteID: "sat1", SensorID: "cam",
			Continent: "EU", Country: "FR", Priority: 3,
			Start: start, Stop: start.Add(time.Minute),
			Result: schedule.Scheduled, Score: 4.5, OrderIndex: 0,
		},
		{
			AoiID: "a2", SatelliteID: "sat1", SensorID: "cam",
			Continent: "EU", Country: "DE", Priority: 1,
			Start: start, Stop: start.Add(30 * time.Second),
			Result: schedule.NoAccess, Score: 0, OrderIndex: 1,
		},
	}

	var buf bytes.Buffer
	if err := WriteAccessReport(&buf, rows); err != nil {
		t.Fatalf("WriteAccessReport: %v", err)
	}

	got, err := ReadAccessReport(&buf)
	if err != nil {
		t.Fatalf("ReadAccessReport: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), len(got))
	}
	if got[0].AoiID != "a1" || got[0].Result != schedule.Scheduled {
		t.Fatalf("row 0 mismatch: %+v", got[0])
	}
	if got[1].Result != schedule.NoAccess || got[1].OrderIndex != 1 {
		t.Fatalf("row 1 mismatch: %+v", got[1])
	}
}
