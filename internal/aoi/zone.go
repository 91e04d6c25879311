package aoi

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Zone is a spherical polygon on the unit sphere, built from a
// longitude/latitude ring by discarding adjacent duplicate vertices
// and projecting to unit vectors. It supports a tolerance-bounded
// point-in-polygon query used by geometric access detectors.
type Zone struct {
	vertices []r3.Vec
	// planeNormal is the mean vertex direction, used to reject points
	// on the far side of the sphere before the full winding test.
	planeNormal r3.Vec
	tolerance   float64
}

// NewZone builds a Zone directly from ring, for callers (e.g. the
// scoring region multipliers) that need a spherical zone outside the
// Aoi lifecycle.
func NewZone(ring []Point, tolerance float64) (*Zone, error) {
	return newZone(ring, tolerance)
}

// newZone builds a Zone from ring, or returns (nil, nil) when the ring
// degenerates to fewer than 3 distinct vertices after collapsing
// adjacent duplicates (never an error: callers must tolerate a
// missing zone).
func newZone(ring []Point, tolerance float64) (*Zone, error) {
	verts := make([]r3.Vec, 0, len(ring))
	for _, p := range ring {
		v := toUnitVector(p)
		if len(verts) > 0 && closeEnough(verts[len(verts)-1], v, tolerance) {
			continue
		}
		verts = append(verts, v)
	}
	if len(verts) > 1 && closeEnough(verts[0], verts[len(verts)-1], tolerance) {
		verts = verts[:len(verts)-1]
	}
	if len(verts) < 3 {
		return nil, nil
	}
	var mean r3.Vec
	for _, v := range verts {
		mean = r3.Add(mean, v)
	}
	mean = r3.Scale(1/r3.Norm(mean), mean)
	return &Zone{vertices: verts, planeNormal: mean, tolerance: tolerance}, nil
}

// CentroidLonLat returns the geographic direction of the zone's mean
// vertex vector (its planeNormal), a cheap stand-in for a true
// spherical-polygon centroid, used by footprint detectors that need a
// single representative ground point for a zone.
func (z *Zone) CentroidLonLat() (lon, lat float64) {
	if z == nil {
		return 0, 0
	}
	lat = math.Asin(clamp(z.planeNormal.Z, -1, 1)) * 180 / math.Pi
	lon = math.Atan2(z.planeNormal.Y, z.planeNormal.X) * 180 / math.Pi
	return lon, lat
}

// Contains reports whether the geographic point (lon, lat) lies inside
// the spherical polygon, using a great-circle winding-number test:
// sum the signed angles subtended by consecutive edges as seen from
// the query point; the point is interior iff the total winds by 2*pi.
// Points in the hemisphere opposite planeNormal are rejected first.
func (z *Zone) Contains(lon, lat float64) bool {
	if z == nil {
		return false
	}
	p := toUnitVector(Point{Lon: lon, Lat: lat})
	if r3.Dot(p, z.planeNormal) <= 0 {
		return false
	}

	var total float64
	n := len(z.vertices)
	for i := 0; i < n; i++ {
		a := z.vertices[i]
		b := z.vertices[(i+1)%n]
		total += signedAngle(p, a, b)
	}
	return math.Abs(total-2*math.Pi) < 1e-6 || math.Abs(total+2*math.Pi) < 1e-6
}

// signedAngle returns the signed angle at p subtended by the
// great-circle edge a->b, used by the winding-number containment
// test.
func signedAngle(p, a, b r3.Vec) float64 {
	pa := r3.Sub(a, r3.Scale(r3.Dot(a, p), p))
	pb := r3.Sub(b, r3.Scale(r3.Dot(b, p), p))
	na, nb := r3.Norm(pa), r3.Norm(pb)
	if na < 1e-15 || nb < 1e-15 {
		return 0
	}
	cosA := clamp(r3.Dot(pa, pb)/(na*nb), -1, 1)
	angle := math.Acos(cosA)
	if r3.Dot(r3.Cross(pa, pb), p) < 0 {
		angle = -angle
	}
	return angle
}

func toUnitVector(p Point) r3.Vec {
	lon, lat := toRad(p.Lon), toRad(p.Lat)
	return r3.Vec{
		X: math.Cos(lat) * math.Cos(lon),
		Y: math.Cos(lat) * math.Sin(lon),
		Z: math.Sin(lat),
	}
}

func closeEnough(a, b r3.Vec, tol float64) bool {
	if tol <= 0 {
		tol = 1e-9
	}
	return r3.Norm(r3.Sub(a, b)) < tol
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
