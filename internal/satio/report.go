package satio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/busoc/satscheduler/internal/schedule"
)

// AccessRow is one row of the access report: one aoi's disposition on
// one satellite/sensor pair, in the order it was presented to the
// scheduler.
type AccessRow struct {
	AoiID       string
	SatelliteID string
	SensorID    string
	Continent   string
	Country     string
	Priority    float64
	Start       time.Time
	Stop        time.Time
	Result      schedule.Disposition
	Score       float64
	OrderIndex  int
}

var reportHeader = []string{
	"aoi_id", "satellite_id", "sensor_id", "continent", "country",
	"priority", "start", "stop", "result", "result_str", "score", "order_index",
}

// WriteAccessReport writes rows as CSV to w, one aoi/access row per
// line, matching the teacher's csv.Writer conventions.
func WriteAccessReport(w io.Writer, rows []AccessRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return fmt.Errorf("satio: write report header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.AoiID,
			r.SatelliteID,
			r.SensorID,
			r.Continent,
			r.Country,
			strconv.FormatFloat(r.Priority, 'g', -1, 64),
			r.Start.Format(isoLayout),
			r.Stop.Format(isoLayout),
			strconv.Itoa(int(r.Result)),
			r.Result.String(),
			strconv.FormatFloat(r.Score, 'g', -1, 64),
			strconv.Itoa(r.OrderIndex),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("satio: write report row for aoi %s: %w", r.AoiID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadAccessReport parses a CSV previously written by WriteAccessReport.
func ReadAccessReport(r io.Reader) ([]AccessRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(reportHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("satio: read report header: %w", err)
	}
	if len(header) != len(reportHeader) {
		return nil, fmt.Errorf("satio: unexpected report header width %d", len(header))
	}

	var rows []AccessRow
	for {
		rec, err := cr.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("satio: read report row: %w", err)
		}
		row, err := parseAccessRow(rec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseAccessRow(rec []string) (AccessRow, error) {
	priority, err := strconv.ParseFloat(rec[5], 64)
	if err != nil {
		return AccessRow{}, fmt.Errorf("satio: parse priority %q: %w", rec[5], err)
	}
	start, err := time.Parse(isoLayout, rec[6])
	if err != nil {
		return AccessRow{}, fmt.Errorf("satio: parse start %q: %w", rec[6], err)
	}
	stop, err := time.Parse(isoLayout, rec[7])
	if err != nil {
		return AccessRow{}, fmt.Errorf("satio: parse stop %q: %w", rec[7], err)
	}
	result, err := strconv.Atoi(rec[8])
	if err != nil {
		return AccessRow{}, fmt.Errorf("satio: parse result %q: %w", rec[8], err)
	}
	score, err := strconv.ParseFloat(rec[10], 64)
	if err != nil {
		return AccessRow{}, fmt.Errorf("satio: parse score %q: %w", rec[10], err)
	}
	order, err := strconv.Atoi(rec[11])
	if err != nil {
		return AccessRow{}, fmt.Errorf("satio: parse order_index %q: %w", rec[11], err)
	}
	return AccessRow{
		AoiID:       rec[0],
		SatelliteID: rec[1],
		SensorID:    rec[2],
		Continent:   rec[3],
		Country:     rec[4],
		Priority:    priority,
		Start:       start,
		Stop:        stop,
		Result:      schedule.Disposition(result),
		Score:       score,
		OrderIndex:  order,
	}, nil
}
