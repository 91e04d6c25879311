package satellite

// SensorKind tags a SensorModel's field-of-view representation.
type SensorKind int

const (
	// SensorCamera is a parametric pushbroom camera with a
	// rectangular double-dihedral field of view.
	SensorCamera SensorKind = iota
	// SensorNadir has no field of view; it is handled by a
	// ground-zone geometric detector on the sub-satellite point.
	SensorNadir
)

// RowAxis is the row-axis orientation of a camera sensor, declared in
// configuration.
type RowAxis int

const (
	RowAxisX RowAxis = iota
	RowAxisY
)

// Camera is the parametric field-of-view definition of a pushbroom
// sensor: hFov = rows*pitch/focalLength, vFov = cols*pitch/focalLength.
type Camera struct {
	FocalLengthM   float64
	DetectorPitchM float64
	Rows           int
	Cols           int
	RowAxis        RowAxis
}

// HalfAngles returns the half-angles (radians) of the camera's
// double-dihedral field of view.
func (c Camera) HalfAngles() (hHalf, vHalf float64) {
	hFov := float64(c.Rows) * c.DetectorPitchM / c.FocalLengthM
	vFov := float64(c.Cols) * c.DetectorPitchM / c.FocalLengthM
	return hFov / 2, vFov / 2
}

// SensorModel is a rigid sensor-to-body transform plus either a
// parametric camera FoV or a nadir-pointing flag, and the duty-cycle
// and solar-geometry attributes §3 attaches to sensors.
type SensorModel struct {
	ID   string
	Kind SensorKind

	// BodyToSensorBoresight is the sensor boresight direction
	// expressed in the satellite body frame, typically +Z.
	BodyToSensorBoresight [3]float64
	Camera                Camera

	DutyCycle float64 // in [0, 1]

	// MinSunElevationDeg, if non-nil, gates access on solar elevation
	// at the boresight ground intercept.
	MinSunElevationDeg *float64
}

// FovInBodyFrame returns the DoubleDihedra for a camera sensor. ok is
// false for a nadir-only sensor, which has no field of view.
func (s SensorModel) FovInBodyFrame() (DoubleDihedra, bool) {
	if s.Kind != SensorCamera {
		return DoubleDihedra{}, false
	}
	hHalf, vHalf := s.Camera.HalfAngles()
	return DoubleDihedra{
		Center:  s.BodyToSensorBoresight,
		HHalf:   hHalf,
		VHalf:   vHalf,
		RowAxis: s.Camera.RowAxis,
	}, true
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
