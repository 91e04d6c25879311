package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/busoc/satscheduler/internal/satellite"
)

const sampleTOML = `
workers = 4

[horizon]
start = 2022-08-05T00:00:00Z
stop  = 2022-08-06T00:00:00Z

[[aoi]]
url = "file://aois.geojson"
bbox = [-10.0, 35.0, 20.0, 55.0]
buffer-m = 500

[[satellite]]
id = "sat1"
mass-kg = 120.5

[satellite.orbit]
kind = "tle"
line1 = "1 25544U 98067A   22217.12345678  .00001234  00000-0  12345-4 0  9991"
line2 = "2 25544  51.6442  21.0000 0002345  90.0000 270.0000 15.50000000123456"

[[satellite.mode]]
name = "mission"
lof = "QSW"

[[satellite.sensor]]
id = "cam1"
kind = "camera"
boresight = [0.0, 0.0, 1.0]
duty-cycle = 0.3

[satellite.sensor.camera]
focal-length-m = 1.0
detector-pitch-m = 0.00001
rows = 2000
cols = 3000
row-axis = "x"

[score]
exponent = 1.0

[score.country-mult]
FR = 1.5

[scheduler]
batch-size = 25
step = "15s"
rev-boundary = "descending"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	file := filepath.Join(dir, "mission.toml")
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return file
}

func TestLoadDecodesMissionConfig(t *testing.T) {
	file := writeTemp(t, sampleTOML)

	c, err := Load(file)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c.Workers != 4 {
		t.Fatalf("Workers = %d, want 4", c.Workers)
	}
	if !c.Horizon.Start.Equal(time.Date(2022, 8, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Horizon.Start = %v", c.Horizon.Start)
	}
	if len(c.Aois) != 1 || c.Aois[0].BufferM != 500 {
		t.Fatalf("Aois = %+v", c.Aois)
	}
	if len(c.Satellites) != 1 {
		t.Fatalf("expected 1 satellite, got %d", len(c.Satellites))
	}
	sat := c.Satellites[0]
	if sat.Orbit.Kind != "tle" || sat.Orbit.Line1 == "" {
		t.Fatalf("Orbit = %+v", sat.Orbit)
	}
	if len(sat.Sensors) != 1 || sat.Sensors[0].Kind != "camera" {
		t.Fatalf("Sensors = %+v", sat.Sensors)
	}
	if sat.Sensors[0].Camera.Rows != 2000 {
		t.Fatalf("Camera.Rows = %d, want 2000", sat.Sensors[0].Camera.Rows)
	}
	if c.Score.CountryMult["FR"] != 1.5 {
		t.Fatalf("CountryMult[FR] = %v, want 1.5", c.Score.CountryMult["FR"])
	}
	if c.Scheduler.BatchSize != 25 {
		t.Fatalf("BatchSize = %d, want 25", c.Scheduler.BatchSize)
	}
	if c.Scheduler.Step.Duration != 15*time.Second {
		t.Fatalf("Step = %v, want 15s", c.Scheduler.Step.Duration)
	}
	if c.Scheduler.ResolveRevBoundary() != satellite.DescendingNode {
		t.Fatalf("ResolveRevBoundary mismatch")
	}
}

func TestLoadRejectsHorizonStopBeforeStart(t *testing.T) {
	bad := `
[horizon]
start = 2022-08-06T00:00:00Z
stop  = 2022-08-05T00:00:00Z
`
	file := writeTemp(t, bad)
	if _, err := Load(file); err == nil {
		t.Fatal("expected error for stop before start, got nil")
	}
}

func TestLoadRejectsUnknownOrbitKind(t *testing.T) {
	bad := `
[horizon]
start = 2022-08-05T00:00:00Z
stop  = 2022-08-06T00:00:00Z

[[satellite]]
id = "sat1"

[satellite.orbit]
kind = "bogus"
`
	file := writeTemp(t, bad)
	if _, err := Load(file); err == nil {
		t.Fatal("expected error for unknown orbit kind, got nil")
	}
}

func TestDefaultAppliesSchedulerDefaults(t *testing.T) {
	d := Default()
	if d.Scheduler.BatchSize != 50 {
		t.Fatalf("default BatchSize = %d, want 50", d.Scheduler.BatchSize)
	}
	if d.Scheduler.Step.Duration != 30*time.Second {
		t.Fatalf("default Step = %v, want 30s", d.Scheduler.Step.Duration)
	}
	if d.Scheduler.RevBoundary != "ascending" {
		t.Fatalf("default RevBoundary = %q, want ascending", d.Scheduler.RevBoundary)
	}
}

func TestSatelliteConfigToModelBuildsPropagatableModel(t *testing.T) {
	file := writeTemp(t, sampleTOML)
	c, err := Load(file)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m, err := c.Satellites[0].ToModel()
	if err != nil {
		t.Fatalf("ToModel: %v", err)
	}
	if m.ID != "sat1" {
		t.Fatalf("Model.ID = %q, want sat1", m.ID)
	}
	if len(m.Sensors) != 1 || m.Sensors[0].ID != "cam1" {
		t.Fatalf("Model.Sensors = %+v", m.Sensors)
	}
}
