// Package aoi models Areas of Interest: polygonal regions to be
// imaged, with identity, priority and country/continent metadata, and
// the loader that turns a raw polygon dataset into scored, correctly
// oriented Aoi values.
package aoi

import (
	"math"
	"sync"
)

// Point is a geographic longitude/latitude pair, in degrees.
type Point struct {
	Lon float64
	Lat float64
}

// Aoi is a simple (non-self-intersecting), CCW-oriented polygon with
// identity and scoring metadata. It is immutable after construction;
// Zone() lazily builds and caches the spherical region used for
// geometric overlap queries.
type Aoi struct {
	ID        string
	Ring      []Point
	Country   string
	Continent string
	ISO       string
	Priority  float64
	AreaM2    float64

	zoneOnce sync.Once
	zone     *Zone
	zoneErr  error
}

// New constructs an Aoi from an already-prepared CCW ring. Callers
// that load from an external dataset should go through Loader.Load,
// which additionally buffers, explodes, splits at the antimeridian and
// reorients; no step of the loader reprojects the geometry.
func New(id string, ring []Point, country, continent, iso string, priority float64) *Aoi {
	a := &Aoi{
		ID:        id,
		Ring:      ring,
		Country:   country,
		Continent: continent,
		ISO:       iso,
		Priority:  priority,
	}
	a.AreaM2 = ringAreaM2(ring)
	return a
}

// Zone lazily builds the spherical polygon used for overlap testing.
// A degenerate ring (fewer than 3 distinct vertices after collapsing
// adjacent duplicates) yields a nil Zone and no error: callers must
// tolerate a missing zone and treat the Aoi as having no access.
func (a *Aoi) Zone(tolerance float64) (*Zone, error) {
	a.zoneOnce.Do(func() {
		a.zone, a.zoneErr = newZone(a.Ring, tolerance)
	})
	return a.zone, a.zoneErr
}

// IsCCW reports whether the ring is wound counter-clockwise in
// longitude/latitude space (the planar approximation used by the
// loader before reprojecting to a spherical zone).
func IsCCW(ring []Point) bool {
	return signedArea(ring) > 0
}

// Reversed returns a copy of ring with vertex order reversed.
func Reversed(ring []Point) []Point {
	out := make([]Point, len(ring))
	for i, p := range ring {
		out[len(ring)-1-i] = p
	}
	return out
}

func signedArea(ring []Point) float64 {
	var sum float64
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += ring[i].Lon*ring[j].Lat - ring[j].Lon*ring[i].Lat
	}
	return sum / 2
}

// ringAreaM2 computes an equal-area approximation of the ring's area
// on a spherical Earth, directly from longitude/latitude; no
// reprojection to an equal-area CRS is performed.
func ringAreaM2(ring []Point) float64 {
	const earthRadiusM = 6371008.8
	if len(ring) < 3 {
		return 0
	}
	var sum float64
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		lon1, lat1 := toRad(ring[i].Lon), toRad(ring[i].Lat)
		lon2, lat2 := toRad(ring[j].Lon), toRad(ring[j].Lat)
		sum += (lon2 - lon1) * (2 + math.Sin(lat1) + math.Sin(lat2))
	}
	area := sum * earthRadiusM * earthRadiusM / 2
	if area < 0 {
		area = -area
	}
	return area
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
