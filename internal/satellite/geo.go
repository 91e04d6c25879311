package satellite

import "math"

// InitialBearingRad returns the initial great-circle bearing (radians,
// clockwise from north) from (lon1, lat1) to (lon2, lat2); all
// lon/lat arguments are in degrees.
func InitialBearingRad(lon1, lat1, lon2, lat2 float64) float64 {
	p1, l1 := degToRad(lat1), degToRad(lon1)
	p2, l2 := degToRad(lat2), degToRad(lon2)
	dl := l2 - l1
	y := math.Sin(dl) * math.Cos(p2)
	x := math.Cos(p1)*math.Sin(p2) - math.Sin(p1)*math.Cos(p2)*math.Cos(dl)
	return math.Atan2(y, x)
}

// CentralAngleRad returns the great-circle angular separation
// (radians) between (lon1, lat1) and (lon2, lat2) via the haversine
// formula; all lon/lat arguments are in degrees.
func CentralAngleRad(lon1, lat1, lon2, lat2 float64) float64 {
	p1, l1 := degToRad(lat1), degToRad(lon1)
	p2, l2 := degToRad(lat2), degToRad(lon2)
	dp := p2 - p1
	dl := l2 - l1
	a := math.Sin(dp/2)*math.Sin(dp/2) + math.Cos(p1)*math.Cos(p2)*math.Sin(dl/2)*math.Sin(dl/2)
	return 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// FootprintDirection builds a direction vector, in the same (fwd,
// right, up) decomposition ContainsDirection uses, that carries the
// horizontal/vertical off-boresight angles (hAngle, vAngle) derived
// from a ground point's cross-track/along-track offset from nadir.
// It lets a geodetic cross/along-track computation (which never needs
// the body attitude) drive the same double-dihedral test a true
// body-frame direction would.
func FootprintDirection(fov DoubleDihedra, hAngle, vAngle float64) [3]float64 {
	up, right := fovAxes(fov.Center, fov.RowAxis)
	fwd := normalize(fov.Center)
	ch, sh := math.Cos(hAngle), math.Sin(hAngle)
	cv, sv := math.Cos(vAngle), math.Sin(vAngle)
	return [3]float64{
		fwd[0]*ch*cv + right[0]*sh*cv + up[0]*sv,
		fwd[1]*ch*cv + right[1]*sh*cv + up[1]*sv,
		fwd[2]*ch*cv + right[2]*sh*cv + up[2]*sv,
	}
}
