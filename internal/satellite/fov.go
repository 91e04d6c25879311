package satellite

import "math"

// DoubleDihedra is a double-dihedral field of view: a pyramid defined
// by a center boresight vector and two in-plane half-angles, aligned
// to the sensor's declared row-axis orientation.
type DoubleDihedra struct {
	Center  [3]float64
	HHalf   float64
	VHalf   float64
	RowAxis RowAxis
}

// ContainsDirection reports whether dir (in the same frame as
// Center) falls within the double-dihedral FoV, by projecting dir
// onto the two FoV planes and comparing against the half-angles.
func (d DoubleDihedra) ContainsDirection(dir [3]float64) bool {
	fwd := d.Center
	up, right := fovAxes(fwd, d.RowAxis)

	// angle from boresight within the "horizontal" plane (fwd-right)
	hAngle := math.Atan2(dot(dir, right), dot(dir, fwd))
	vAngle := math.Atan2(dot(dir, up), dot(dir, fwd))

	return math.Abs(hAngle) <= d.HHalf && math.Abs(vAngle) <= d.VHalf
}

func fovAxes(fwd [3]float64, axis RowAxis) (up, right [3]float64) {
	fwd = normalize(fwd)
	ref := [3]float64{0, 0, 1}
	if math.Abs(fwd[2]) > 0.99 {
		ref = [3]float64{0, 1, 0}
	}
	right = normalize(cross(fwd, ref))
	up = normalize(cross(right, fwd))
	if axis == RowAxisY {
		up, right = right, up
	}
	return up, right
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v [3]float64) [3]float64 {
	n := math.Sqrt(dot(v, v))
	if n == 0 {
		return v
	}
	return [3]float64{v[0] / n, v[1] / n, v[2] / n}
}
