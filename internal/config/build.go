package config

import (
	"fmt"

	"github.com/busoc/satscheduler/internal/satellite"
	"github.com/busoc/satscheduler/internal/score"
)

// ToOrbit converts the decoded tagged-variant OrbitConfig into a
// satellite.Orbit.
func (o OrbitConfig) ToOrbit() (satellite.Orbit, error) {
	switch o.Kind {
	case "tle":
		return satellite.Orbit{Kind: satellite.OrbitTLE, TLE: satellite.TLE{Line1: o.Line1, Line2: o.Line2}}, nil
	case "keplerian":
		kind := satellite.MeanAnomaly
		if o.AnomalyKind == "true" {
			kind = satellite.TrueAnomaly
		}
		return satellite.Orbit{
			Kind: satellite.OrbitKeplerian,
			Keplerian: satellite.Keplerian{
				SemiMajorAxisKm: o.SemiMajorAxisKm,
				Eccentricity:    o.Eccentricity,
				InclinationDeg:  o.InclinationDeg,
				RAANDeg:         o.RAANDeg,
				ArgPerigeeDeg:   o.ArgPerigeeDeg,
				Anomaly:         o.Anomaly,
				AnomalyKind:     kind,
				Epoch:           o.Epoch,
			},
		}, nil
	default:
		return satellite.Orbit{}, fmt.Errorf("config: unknown orbit kind %q", o.Kind)
	}
}

// ToSensorModel converts the decoded tagged-variant SensorConfig into
// a satellite.SensorModel.
func (s SensorConfig) ToSensorModel() (satellite.SensorModel, error) {
	m := satellite.SensorModel{
		ID:                    s.ID,
		BodyToSensorBoresight: s.Boresight,
		DutyCycle:             s.DutyCycle,
		MinSunElevationDeg:    s.MinSunElevationDeg,
	}
	switch s.Kind {
	case "camera":
		m.Kind = satellite.SensorCamera
		m.Camera = satellite.Camera{
			FocalLengthM:   s.Camera.FocalLengthM,
			DetectorPitchM: s.Camera.DetectorPitchM,
			Rows:           s.Camera.Rows,
			Cols:           s.Camera.Cols,
			RowAxis:        s.Camera.ResolveRowAxis(),
		}
	case "nadir":
		m.Kind = satellite.SensorNadir
	default:
		return satellite.SensorModel{}, fmt.Errorf("config: sensor %s: unknown kind %q", s.ID, s.Kind)
	}
	return m, nil
}

// ToModel converts a SatelliteConfig into a satellite.Model, ready
// for Propagate.
func (s SatelliteConfig) ToModel() (*satellite.Model, error) {
	orbit, err := s.Orbit.ToOrbit()
	if err != nil {
		return nil, fmt.Errorf("config: satellite %s: %w", s.ID, err)
	}

	modes := make([]satellite.AttitudeMode, len(s.Modes))
	for i, m := range s.Modes {
		modes[i] = satellite.AttitudeMode{Name: m.Name, LOF: m.LOF}
	}

	sensors := make([]satellite.SensorModel, len(s.Sensors))
	for i, sc := range s.Sensors {
		sm, err := sc.ToSensorModel()
		if err != nil {
			return nil, fmt.Errorf("config: satellite %s: %w", s.ID, err)
		}
		sensors[i] = sm
	}

	return satellite.NewModel(s.ID, s.MassKg, orbit, modes, sensors)
}

// ToTable resolves a ScoreConfig's region sources into score.Table,
// loading each named region's boundary polygon from disk.
func (s ScoreConfig) ToTable() (score.Table, error) {
	regions := make([]score.RegionMultiplier, 0, len(s.Regions))
	for _, r := range s.Regions {
		rm, err := score.LoadRegion(r.Source, r.Name, r.Weight, r.Contains)
		if err != nil {
			return score.Table{}, err
		}
		regions = append(regions, rm)
	}
	return score.Table{
		CountryMult:   s.CountryMult,
		ContinentMult: s.ContinentMult,
		Regions:       regions,
		Exponent:      s.Exponent,
	}, nil
}

// ResolveRevBoundary maps the scheduler's configured rev-boundary name
// to a satellite.RevBoundary, defaulting to AscendingNode.
func (s SchedulerConfig) ResolveRevBoundary() satellite.RevBoundary {
	switch s.RevBoundary {
	case "descending":
		return satellite.DescendingNode
	case "latitude-extremum":
		return satellite.LatitudeExtremum
	default:
		return satellite.AscendingNode
	}
}
