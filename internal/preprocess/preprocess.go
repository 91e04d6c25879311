// Package preprocess computes, per (satellite, sensor, aoi), the
// access intervals within a horizon during which a sensor can image
// an aoi, and publishes each satellite's bounded ephemeris.
package preprocess

import (
	"fmt"
	"log"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/busoc/satscheduler/internal/aoi"
	"github.com/busoc/satscheduler/internal/interval"
	"github.com/busoc/satscheduler/internal/satellite"
	"github.com/busoc/satscheduler/internal/xerrors"
)

// Margin is padded onto each side of the horizon before propagation
// begins, so that interpolation queries near the horizon edges never
// fall outside the sampled ephemeris.
const Margin = 5 * time.Minute

const (
	geographicZoneTol = 1e-6
	// earthMeanRadiusKm converts the great-circle angular separation
	// between a sub-satellite point and a zone's ground point into a
	// ground-track distance.
	earthMeanRadiusKm = 6371.0088
)

// UnitOfWork is the input to one preprocessing pass: one satellite
// model, propagated over horizon and tested against aois, restricted
// to sensorIDs if non-empty.
type UnitOfWork struct {
	Horizon   interval.Date
	Sat       *satellite.Model
	Aois      []*aoi.Aoi
	SensorIDs []string // empty means "all sensors"
	Step      time.Duration
	RevBound  satellite.RevBoundary
}

// PreprocessedAoi is the access-interval result for one
// (aoi, sensor) pair within a UnitOfWork.
type PreprocessedAoi struct {
	Aoi       *aoi.Aoi
	SatID     string
	SensorID  string
	Intervals interval.List
}

// Result is the output of one UnitOfWork: the propagated satellite
// (queryable via Sat.Ephemeris/Sat.Revs), the per-aoi access
// intervals, and the horizon it was computed over.
type Result struct {
	Sat     *satellite.Model
	Aois    []PreprocessedAoi
	Horizon interval.Date
}

// Run executes one UnitOfWork: propagate the satellite across the
// padded horizon, register detectors per sensor/aoi, and collect
// access intervals. A propagation failure aborts the UoW; individual
// aoi/detector failures degrade to empty access with no error,
// following §7's local-recovery rules.
func Run(uow UnitOfWork) (Result, error) {
	if err := uow.Sat.Propagate(uow.Horizon, Margin, uow.Step, time.Millisecond); err != nil {
		return Result{}, xerrors.Wrap(xerrors.Propagation, err)
	}

	sensors := selectSensors(uow.Sat, uow.SensorIDs)

	out := Result{Sat: uow.Sat, Horizon: uow.Horizon}
	for _, sensor := range sensors {
		solarEnabled, hasSolar := buildSolarWindow(uow, sensor)
		for _, area := range uow.Aois {
			ivs := accessIntervalsFor(uow, sensor, area)
			if hasSolar {
				ivs = interval.Intersection(ivs, solarEnabled)
			}
			out.Aois = append(out.Aois, PreprocessedAoi{Aoi: area, SatID: uow.Sat.ID, SensorID: sensor.ID, Intervals: ivs})
		}
	}
	return out, nil
}

func selectSensors(sat *satellite.Model, ids []string) []satellite.SensorModel {
	if len(ids) == 0 {
		return sat.Sensors
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []satellite.SensorModel
	for _, s := range sat.Sensors {
		if want[s.ID] {
			out = append(out, s)
		}
	}
	return out
}

// buildSolarWindow computes the intervals within the horizon where
// the sensor's boresight ground intercept has sun elevation at or
// above its configured minimum. ok is false when the sensor declares
// no solar constraint.
func buildSolarWindow(uow UnitOfWork, sensor satellite.SensorModel) (interval.List, bool) {
	if sensor.MinSunElevationDeg == nil {
		return nil, false
	}
	min := *sensor.MinSunElevationDeg
	builder := newEdgeBuilder(uow.Horizon)
	step := uow.Step

	for t := uow.Horizon.Start; !t.After(uow.Horizon.Stop); t = t.Add(step) {
		g, ok := boresightSunElevationDeg(uow.Sat, sensor, t)
		enabled := ok && g >= min
		builder.observe(t, enabled)
	}
	return builder.build(), true
}

// boresightSunElevationDeg returns the sun elevation (degrees) at the
// sub-satellite point at t, which stands in for the boresight ground
// intercept: the sensor's boresight direction is not used. It returns
// false only when the ephemeris cannot be queried at t.
func boresightSunElevationDeg(sat *satellite.Model, sensor satellite.SensorModel, t time.Time) (float64, bool) {
	s, err := sat.StateAt(t)
	if err != nil {
		return 0, false
	}
	lon, lat := s.SubSatellite()
	return sunElevationDeg(t, lon, lat), true
}

// accessIntervalsFor scans the camera footprint against the zone's
// representative point, or, for a nadir-only sensor or when that scan
// fails, the sub-satellite point against the zone. The footprint scan
// is attempted once; there is no retry at a larger sample distance.
func accessIntervalsFor(uow UnitOfWork, sensor satellite.SensorModel, area *aoi.Aoi) interval.List {
	zone, err := area.Zone(geographicZoneTol)
	if err != nil {
		log.Printf("preprocess: aoi %s: zone construction failed: %v", area.ID, err)
		return nil
	}
	if zone == nil {
		return nil
	}

	fov, hasFov := sensor.FovInBodyFrame()
	if !hasFov {
		return scanGroundZone(uow, area.ID, zone)
	}

	centerLon, centerLat := zone.CentroidLonLat()
	ivs, err := scanFootprint(uow, fov, centerLon, centerLat)
	if err == nil {
		return ivs
	}
	log.Printf("preprocess: aoi %s sensor %s: footprint detector failed (%v), falling back to ground zone", area.ID, sensor.ID, err)
	return scanGroundZone(uow, area.ID, zone)
}

// scanFootprint samples, at uow.Step, whether the zone's
// representative ground point falls within the sensor's
// double-dihedral FoV. The sub-satellite point and the ground point
// are decomposed into cross-track/along-track offsets using the
// ground-track heading, then mapped onto the FoV's horizontal/
// vertical half-angles, approximating the rectangular footprint a
// pushbroom camera projects onto a spherical Earth.
func scanFootprint(uow UnitOfWork, fov satellite.DoubleDihedra, centerLon, centerLat float64) (interval.List, error) {
	builder := newEdgeBuilder(uow.Horizon)
	for t := uow.Horizon.Start; !t.After(uow.Horizon.Stop); t = t.Add(uow.Step) {
		s, err := uow.Sat.StateAt(t)
		if err != nil {
			return nil, fmt.Errorf("preprocess: state query failed at %s: %w", t, err)
		}
		altitude := s.AltitudeKm()
		if altitude <= 0 {
			builder.observe(t, false)
			continue
		}

		subLon, subLat := s.SubSatellite()
		heading := s.GroundTrackHeadingRad()
		bearing := satellite.InitialBearingRad(subLon, subLat, centerLon, centerLat)
		groundDistKm := satellite.CentralAngleRad(subLon, subLat, centerLon, centerLat) * earthMeanRadiusKm
		relBearing := bearing - heading

		crossTrackKm := groundDistKm * math.Sin(relBearing)
		alongTrackKm := groundDistKm * math.Cos(relBearing)
		hAngle := math.Atan2(crossTrackKm, altitude)
		vAngle := math.Atan2(alongTrackKm, altitude)

		dir := satellite.FootprintDirection(fov, hAngle, vAngle)
		builder.observe(t, fov.ContainsDirection(dir))
	}
	return builder.build(), nil
}

// scanGroundZone samples the sub-satellite point directly against
// zone, used for nadir-only sensors and as the fallback when the
// footprint detector cannot be built.
func scanGroundZone(uow UnitOfWork, aoiID string, zone *aoi.Zone) interval.List {
	builder := newEdgeBuilder(uow.Horizon)
	for t := uow.Horizon.Start; !t.After(uow.Horizon.Stop); t = t.Add(uow.Step) {
		s, err := uow.Sat.StateAt(t)
		if err != nil {
			continue
		}
		lon, lat := s.SubSatellite()
		builder.observe(t, zone.Contains(lon, lat))
	}
	return builder.build()
}

// RunAll executes one UnitOfWork per entry in uows on a worker pool
// sized by workers (0 means runtime.NumCPU()). A failing UoW aborts
// only itself: its error is reported via errs and the remaining UoWs
// continue.
func RunAll(uows []UnitOfWork, workers int) ([]Result, []error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	jobs := make(chan int)
	results := make([]Result, len(uows))
	errs := make([]error, len(uows))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := Run(uows[i])
				results[i] = res
				errs[i] = err
			}
		}()
	}
	for i := range uows {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results, errs
}
