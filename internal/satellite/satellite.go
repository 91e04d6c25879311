package satellite

import (
	"fmt"
	"time"

	"github.com/busoc/satscheduler/internal/interval"
)

// MissionAttitude is the distinguished default attitude mode name,
// used to build the published bounded ephemeris.
const MissionAttitude = "mission"

// AttitudeMode names one of a satellite's attitude providers.
// Providers themselves are an external-collaborator concern (the LOF
// offset machinery, frame conversions); the model only tracks which
// mode is active and which one is the default.
type AttitudeMode struct {
	Name string
	LOF  string // e.g. "QSW", "TNW", "LVLH", "VNC", ...
}

// Model is a satellite's orbit, attitude modes and sensor payloads,
// plus, once Propagate has run, its bounded ephemeris and rev
// boundary events.
type Model struct {
	ID      string
	MassKg  float64
	Orbit   Orbit
	Modes   []AttitudeMode
	Sensors []SensorModel

	prop propagator
	eph  *BoundedEphemeris
}

// NewModel resolves orbit and sensors into a propagator-ready Model.
// Construction never propagates; call Propagate for that.
func NewModel(id string, mass float64, orbit Orbit, modes []AttitudeMode, sensors []SensorModel) (*Model, error) {
	hasDefault := false
	for _, m := range modes {
		if m.Name == MissionAttitude {
			hasDefault = true
		}
	}
	if len(modes) > 0 && !hasDefault {
		return nil, fmt.Errorf("satellite %s: no %q attitude mode declared", id, MissionAttitude)
	}
	return &Model{
		ID:      id,
		MassKg:  mass,
		Orbit:   orbit,
		Modes:   modes,
		Sensors: sensors,
		prop:    newPropagator(orbit),
	}, nil
}

// Propagate pads horizon by margin on each side and samples the
// bounded ephemeris across [horizon.Start-margin, horizon.Stop+margin]
// at step; tol is handed to the ephemeris, which stores it without
// applying it to queries.
func (m *Model) Propagate(horizon interval.Date, margin time.Duration, step time.Duration, tol time.Duration) error {
	padded := interval.Date{Start: horizon.Start.Add(-margin), Stop: horizon.Stop.Add(margin)}
	eph, err := NewBoundedEphemeris(m.prop, padded.Start, padded.Stop, step, tol)
	if err != nil {
		return fmt.Errorf("satellite %s: propagation failed: %w", m.ID, err)
	}
	m.eph = eph
	return nil
}

// Ephemeris returns the bounded ephemeris published by the most
// recent Propagate call, or nil if Propagate has not run.
func (m *Model) Ephemeris() *BoundedEphemeris {
	return m.eph
}

// Sensor looks up a sensor by ID.
func (m *Model) Sensor(id string) (SensorModel, bool) {
	for _, s := range m.Sensors {
		if s.ID == id {
			return s, true
		}
	}
	return SensorModel{}, false
}

// Revs returns the partition of bounding into orbital revolutions,
// using boundary as the delimiting event. Propagate must have already
// covered bounding (plus margin) or this returns an error.
func (m *Model) Revs(bounding interval.Date, boundary RevBoundary) (interval.List, error) {
	if m.eph == nil {
		return nil, fmt.Errorf("satellite %s: not propagated", m.ID)
	}
	return ConstructRevIntervals(m.eph, bounding, boundary)
}

// StateAt queries the published ephemeris at t.
func (m *Model) StateAt(t time.Time) (State, error) {
	if m.eph == nil {
		return State{}, fmt.Errorf("satellite %s: not propagated", m.ID)
	}
	return m.eph.Query(t)
}
