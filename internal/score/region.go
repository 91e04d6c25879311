package score

import (
	"fmt"
	"os"

	"github.com/busoc/satscheduler/internal/aoi"
	"github.com/busoc/satscheduler/internal/preprocess"
	"github.com/ctessum/polyclip-go"
	geojson "github.com/paulmach/go.geojson"
)

// LoadRegion reads a single-feature GeoJSON polygon boundary from path
// and builds a RegionMultiplier predicate against it: strict
// containment when contains is true (every vertex of the aoi's ring
// must fall inside the region's spherical zone), overlap otherwise
// (the planar rings, approximated the way the loader's buffer step
// does, intersect under polyclip).
func LoadRegion(path, name string, weight float64, contains bool) (RegionMultiplier, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return RegionMultiplier{}, fmt.Errorf("score: read region %s: %w", name, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		return RegionMultiplier{}, fmt.Errorf("score: decode region %s: %w", name, err)
	}
	if len(fc.Features) == 0 {
		return RegionMultiplier{}, fmt.Errorf("score: region %s: empty feature collection", name)
	}
	ring, err := firstRing(fc.Features[0].Geometry)
	if err != nil {
		return RegionMultiplier{}, fmt.Errorf("score: region %s: %w", name, err)
	}

	zone, err := aoi.NewZone(ring, 0)
	if err != nil {
		return RegionMultiplier{}, fmt.Errorf("score: region %s: build zone: %w", name, err)
	}
	contour := ringContour(ring)

	predicate := func(a *preprocess.PreprocessedAoi) bool {
		if contains {
			return zoneContainsRing(zone, a.Aoi.Ring)
		}
		return ringsOverlap(contour, a.Aoi.Ring)
	}

	return RegionMultiplier{Name: name, Weight: weight, Contains: predicate}, nil
}

func firstRing(g *geojson.Geometry) ([]aoi.Point, error) {
	switch {
	case g == nil:
		return nil, fmt.Errorf("nil geometry")
	case g.IsPolygon():
		return ringFromCoords(g.Polygon[0]), nil
	case g.IsMultiPolygon():
		if len(g.MultiPolygon) == 0 {
			return nil, fmt.Errorf("empty multipolygon")
		}
		return ringFromCoords(g.MultiPolygon[0][0]), nil
	default:
		return nil, fmt.Errorf("unsupported geometry type %s", g.Type)
	}
}

func ringFromCoords(coords [][]float64) []aoi.Point {
	out := make([]aoi.Point, len(coords))
	for i, c := range coords {
		out[i] = aoi.Point{Lon: c[0], Lat: c[1]}
	}
	return out
}

func zoneContainsRing(zone *aoi.Zone, ring []aoi.Point) bool {
	if zone == nil || len(ring) == 0 {
		return false
	}
	for _, p := range ring {
		if !zone.Contains(p.Lon, p.Lat) {
			return false
		}
	}
	return true
}

func ringContour(ring []aoi.Point) polyclip.Contour {
	c := make(polyclip.Contour, len(ring))
	for i, p := range ring {
		c[i] = polyclip.Point{X: p.Lon, Y: p.Lat}
	}
	return c
}

func ringsOverlap(region polyclip.Contour, ring []aoi.Point) bool {
	if len(ring) == 0 {
		return false
	}
	other := ringContour(ring)
	inter := polyclip.Polygon{region}.Construct(polyclip.INTERSECTION, polyclip.Polygon{other})
	return len(inter) > 0
}
