// Package config decodes the mission-level TOML configuration: the
// scheduling horizon, AOI sources, satellite/sensor fleet and
// scheduler tuning, in the teacher's flat-struct-with-toml-tags style.
package config

import (
	"fmt"
	"time"

	"github.com/busoc/satscheduler/internal/satellite"
	"github.com/midbel/toml"
)

// Duration wraps time.Duration so it can decode from a TOML string
// such as "5m" the way the teacher's settings.go does.
type Duration struct {
	time.Duration
}

func (d *Duration) String() string {
	return d.Duration.String()
}

func (d *Duration) Set(s string) error {
	v, err := time.ParseDuration(s)
	if err == nil {
		d.Duration = v
	}
	return err
}

// Horizon is the scheduling window, decoded from ISO 8601 timestamps.
type Horizon struct {
	Start time.Time `toml:"start"`
	Stop  time.Time `toml:"stop"`
}

// AoiSource configures one Loader invocation.
type AoiSource struct {
	URL     string    `toml:"url"`
	BBox    []float64 `toml:"bbox"` // west, south, east, north
	BufferM float64   `toml:"buffer-m"`
	Filter  []string  `toml:"filter"`
}

// CameraConfig decodes into a satellite.Camera.
type CameraConfig struct {
	FocalLengthM   float64 `toml:"focal-length-m"`
	DetectorPitchM float64 `toml:"detector-pitch-m"`
	Rows           int     `toml:"rows"`
	Cols           int     `toml:"cols"`
	RowAxis        string  `toml:"row-axis"` // "x" or "y"
}

// SensorConfig is a tagged variant: Kind selects which of Camera's
// fields are meaningful, mirroring SensorData's CameraSensorData /
// nadir variants from the original source.
type SensorConfig struct {
	ID                 string       `toml:"id"`
	Kind               string       `toml:"kind"` // "camera" or "nadir"
	Boresight          [3]float64   `toml:"boresight"`
	Camera             CameraConfig `toml:"camera"`
	DutyCycle          float64      `toml:"duty-cycle"`
	MinSunElevationDeg *float64     `toml:"min-sun-elevation-deg"`
}

// OrbitConfig is a tagged variant: Kind selects "tle" or "keplerian".
type OrbitConfig struct {
	Kind string `toml:"kind"`

	Line1 string `toml:"line1"`
	Line2 string `toml:"line2"`

	SemiMajorAxisKm float64   `toml:"semi-major-axis-km"`
	Eccentricity    float64   `toml:"eccentricity"`
	InclinationDeg  float64   `toml:"inclination-deg"`
	RAANDeg         float64   `toml:"raan-deg"`
	ArgPerigeeDeg   float64   `toml:"arg-perigee-deg"`
	Anomaly         float64   `toml:"anomaly"`
	AnomalyKind     string    `toml:"anomaly-kind"` // "mean" or "true"
	Epoch           time.Time `toml:"epoch"`
}

// AttitudeModeConfig names one attitude provider.
type AttitudeModeConfig struct {
	Name string `toml:"name"`
	LOF  string `toml:"lof"`
}

// SatelliteConfig configures one fleet member.
type SatelliteConfig struct {
	ID      string               `toml:"id"`
	MassKg  float64              `toml:"mass-kg"`
	Orbit   OrbitConfig          `toml:"orbit"`
	Modes   []AttitudeModeConfig `toml:"mode"`
	Sensors []SensorConfig       `toml:"sensor"`
}

// RegionMultiplierConfig configures one score.RegionMultiplier; the
// predicate itself (country/continent membership, polygon
// containment) is resolved by the caller, not decoded from TOML.
type RegionMultiplierConfig struct {
	Name     string  `toml:"name"`
	Source   string  `toml:"source"` // path to a single-feature GeoJSON boundary
	Weight   float64 `toml:"weight"`
	Contains bool    `toml:"contains"` // strict containment vs overlap
}

// ScoreConfig configures the score.Table.
type ScoreConfig struct {
	Exponent      float64                  `toml:"exponent"`
	CountryMult   map[string]float64       `toml:"country-mult"`
	ContinentMult map[string]float64       `toml:"continent-mult"`
	Regions       []RegionMultiplierConfig `toml:"region"`
}

// SchedulerConfig tunes the batched pushbroom solver.
type SchedulerConfig struct {
	BatchSize   int      `toml:"batch-size"`
	Step        Duration `toml:"step"`
	RevBoundary string   `toml:"rev-boundary"` // "ascending", "descending", "latitude-extremum"
}

// Config is the top-level mission configuration.
type Config struct {
	Horizon    Horizon           `toml:"horizon"`
	Workers    int               `toml:"workers"`
	Aois       []AoiSource       `toml:"aoi"`
	Satellites []SatelliteConfig `toml:"satellite"`
	Score      ScoreConfig       `toml:"score"`
	Scheduler  SchedulerConfig   `toml:"scheduler"`
}

// Load decodes file into a Config, applying the same defaults the
// teacher's Assist.Default/Load pairing establishes before decoding.
func Load(file string) (*Config, error) {
	c := Default()
	if err := toml.DecodeFile(file, c); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", file, err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Default returns a Config with the scheduler's non-zero defaults
// pre-filled, overridden by whatever the TOML file specifies.
func Default() *Config {
	return &Config{
		Workers: 0, // 0 means runtime.NumCPU() at call sites
		Scheduler: SchedulerConfig{
			BatchSize:   50,
			Step:        Duration{30 * time.Second},
			RevBoundary: "ascending",
		},
	}
}

func (c *Config) validate() error {
	if c.Horizon.Stop.Before(c.Horizon.Start) {
		return fmt.Errorf("config: horizon stop %s before start %s", c.Horizon.Stop, c.Horizon.Start)
	}
	for _, sat := range c.Satellites {
		if sat.ID == "" {
			return fmt.Errorf("config: satellite with empty id")
		}
		switch sat.Orbit.Kind {
		case "tle", "keplerian":
		default:
			return fmt.Errorf("config: satellite %s: invalid orbit kind %q", sat.ID, sat.Orbit.Kind)
		}
	}
	return nil
}

// ResolveRowAxis resolves a CameraConfig's string row-axis tag.
func (c CameraConfig) ResolveRowAxis() satellite.RowAxis {
	if c.RowAxis == "y" {
		return satellite.RowAxisY
	}
	return satellite.RowAxisX
}
