package preprocess

import (
	"testing"
	"time"

	"github.com/busoc/satscheduler/internal/aoi"
	"github.com/busoc/satscheduler/internal/interval"
	"github.com/busoc/satscheduler/internal/satellite"
)

func sunSyncKeplerian(epoch time.Time) satellite.Orbit {
	return satellite.Orbit{
		Kind: satellite.OrbitKeplerian,
		Keplerian: satellite.Keplerian{
			SemiMajorAxisKm: 6978.137,
			Eccentricity:    0.001,
			InclinationDeg:  97.8,
			RAANDeg:         10,
			ArgPerigeeDeg:   0,
			Anomaly:         0,
			AnomalyKind:     satellite.MeanAnomaly,
			Epoch:           epoch,
		},
	}
}

func square(id string, lon, lat, halfSide float64) *aoi.Aoi {
	ring := []aoi.Point{
		{Lon: lon - halfSide, Lat: lat - halfSide},
		{Lon: lon + halfSide, Lat: lat - halfSide},
		{Lon: lon + halfSide, Lat: lat + halfSide},
		{Lon: lon - halfSide, Lat: lat + halfSide},
	}
	return aoi.New(id, ring, "", "", "", 1)
}

func nadirSensor(id string) satellite.SensorModel {
	return satellite.SensorModel{ID: id, Kind: satellite.SensorNadir, DutyCycle: 1}
}

// cameraSensor returns a nadir-boresighted pushbroom camera whose
// horizontal and vertical half-angles are both halfAngleRad, by
// picking a detector geometry that makes Camera.HalfAngles() resolve
// to exactly that value.
func cameraSensor(id string, halfAngleRad float64) satellite.SensorModel {
	return satellite.SensorModel{
		ID:                    id,
		Kind:                  satellite.SensorCamera,
		BodyToSensorBoresight: [3]float64{0, 0, 1},
		DutyCycle:             1,
		Camera: satellite.Camera{
			FocalLengthM:   1,
			DetectorPitchM: 2 * halfAngleRad,
			Rows:           1,
			Cols:           1,
			RowAxis:        satellite.RowAxisX,
		},
	}
}

func TestRunProducesAccessForEquatorialAoi(t *testing.T) {
	epoch := time.Date(2022, 8, 5, 0, 0, 0, 0, time.UTC)
	horizon := interval.New(epoch, epoch.Add(2*time.Hour))

	sat, err := satellite.NewModel("sat-1", 150, sunSyncKeplerian(epoch), nil, []satellite.SensorModel{nadirSensor("nadir")})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	area := square("big", 10, 0, 45)

	uow := UnitOfWork{
		Horizon: horizon,
		Sat:     sat,
		Aois:    []*aoi.Aoi{area},
		Step:    15 * time.Second,
	}
	res, err := Run(uow)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Aois) != 1 {
		t.Fatalf("expected 1 preprocessed aoi, got %d", len(res.Aois))
	}
	if len(res.Aois[0].Intervals) == 0 {
		t.Fatalf("expected at least one access interval for a wide equatorial aoi")
	}
}

func TestRunDegenerateAoiYieldsNoAccess(t *testing.T) {
	epoch := time.Date(2022, 8, 5, 0, 0, 0, 0, time.UTC)
	horizon := interval.New(epoch, epoch.Add(1*time.Hour))

	sat, err := satellite.NewModel("sat-1", 150, sunSyncKeplerian(epoch), nil, []satellite.SensorModel{nadirSensor("nadir")})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	degenerate := aoi.New("deg", []aoi.Point{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 1}}, "", "", "", 1)

	uow := UnitOfWork{
		Horizon: horizon,
		Sat:     sat,
		Aois:    []*aoi.Aoi{degenerate},
		Step:    30 * time.Second,
	}
	res, err := Run(uow)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Aois[0].Intervals) != 0 {
		t.Fatalf("expected no access for a degenerate ring, got %v", res.Aois[0].Intervals)
	}
}

func TestRunUnsatisfiableSunConstraintYieldsNoAccess(t *testing.T) {
	epoch := time.Date(2022, 8, 5, 0, 0, 0, 0, time.UTC)
	horizon := interval.New(epoch, epoch.Add(2*time.Hour))

	min := 9999.0 // impossible to satisfy
	sensor := satellite.SensorModel{ID: "nadir", Kind: satellite.SensorNadir, DutyCycle: 1, MinSunElevationDeg: &min}
	sat, err := satellite.NewModel("sat-1", 150, sunSyncKeplerian(epoch), nil, []satellite.SensorModel{sensor})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	area := square("big", 10, 0, 45)
	uow := UnitOfWork{
		Horizon: horizon,
		Sat:     sat,
		Aois:    []*aoi.Aoi{area},
		Step:    30 * time.Second,
	}
	res, err := Run(uow)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Aois[0].Intervals) != 0 {
		t.Fatalf("expected no access under an unsatisfiable sun constraint, got %v", res.Aois[0].Intervals)
	}
}

func TestRunProducesAccessForWideCameraFootprint(t *testing.T) {
	epoch := time.Date(2022, 8, 5, 0, 0, 0, 0, time.UTC)
	horizon := interval.New(epoch, epoch.Add(2*time.Hour))

	sensor := cameraSensor("wide-camera", 0.3) // ~17 deg half-angle
	sat, err := satellite.NewModel("sat-1", 150, sunSyncKeplerian(epoch), nil, []satellite.SensorModel{sensor})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	area := square("big", 10, 0, 45)
	uow := UnitOfWork{
		Horizon: horizon,
		Sat:     sat,
		Aois:    []*aoi.Aoi{area},
		Step:    15 * time.Second,
	}
	res, err := Run(uow)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Aois[0].Intervals) == 0 {
		t.Fatalf("expected access for a wide equatorial aoi under a wide camera footprint")
	}
}

func TestRunNoAccessForNarrowCameraFootprintFarFromTrack(t *testing.T) {
	epoch := time.Date(2022, 8, 5, 0, 0, 0, 0, time.UTC)
	horizon := interval.New(epoch, epoch.Add(10*time.Minute))

	sensor := cameraSensor("narrow-camera", 0.01) // ~0.6 deg half-angle
	sat, err := satellite.NewModel("sat-1", 150, sunSyncKeplerian(epoch), nil, []satellite.SensorModel{sensor})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	// a tiny aoi near the antipode of the orbit's initial ground track,
	// well beyond a sub-degree footprint's reach over a 10-minute pass.
	area := square("tiny", -170, -60, 0.05)
	uow := UnitOfWork{
		Horizon: horizon,
		Sat:     sat,
		Aois:    []*aoi.Aoi{area},
		Step:    15 * time.Second,
	}
	res, err := Run(uow)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Aois[0].Intervals) != 0 {
		t.Fatalf("expected no access for a narrow camera footprint far from the ground track, got %v", res.Aois[0].Intervals)
	}
}

func TestRunAllContinuesAfterOneFailure(t *testing.T) {
	epoch := time.Date(2022, 8, 5, 0, 0, 0, 0, time.UTC)
	horizon := interval.New(epoch, epoch.Add(1*time.Hour))

	good, err := satellite.NewModel("sat-good", 150, sunSyncKeplerian(epoch), nil, []satellite.SensorModel{nadirSensor("nadir")})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	bad, err := satellite.NewModel("sat-bad", 150, sunSyncKeplerian(epoch), nil, nil)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	uows := []UnitOfWork{
		{Horizon: horizon, Sat: bad, Step: 0},
		{Horizon: horizon, Sat: good, Aois: []*aoi.Aoi{square("a", 10, 0, 45)}, Step: time.Minute},
	}
	results, errs := RunAll(uows, 2)
	if errs[0] == nil {
		t.Fatal("expected the zero-step unit of work to fail")
	}
	if errs[1] != nil {
		t.Fatalf("expected the valid unit of work to succeed, got %v", errs[1])
	}
	if results[1].Sat.ID != "sat-good" {
		t.Fatalf("expected result for sat-good, got %v", results[1].Sat.ID)
	}
}
