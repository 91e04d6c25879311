package aoi

import (
	"fmt"
	"math"
	"sort"

	"github.com/ctessum/polyclip-go"
	geojson "github.com/paulmach/go.geojson"
)

// Source fetches and caches the raw country-polygon dataset. The
// network/disk mechanics of this are an external collaborator; only
// the call surface the loader needs is modeled here.
type Source interface {
	FetchGeoJSON() (*geojson.FeatureCollection, error)
}

// PriorityData maps country, then continent, then a default, to a
// priority scalar.
type PriorityData struct {
	ByCountry   map[string]float64
	ByContinent map[string]float64
	Default     float64
}

// Lookup resolves the priority for a feature's country/continent,
// falling back to Default when neither is found.
func (p PriorityData) Lookup(country, continent string) float64 {
	if v, ok := p.ByCountry[country]; ok {
		return v
	}
	if v, ok := p.ByContinent[continent]; ok {
		return v
	}
	return p.Default
}

// BBox is an optional bounding box filter, in degrees.
type BBox struct {
	MinLon, MinLat, MaxLon, MaxLat float64
}

func (b BBox) isZero() bool {
	return b == BBox{}
}

func (b BBox) intersectsRing(ring []Point) bool {
	if b.isZero() {
		return true
	}
	for _, p := range ring {
		if p.Lon >= b.MinLon && p.Lon <= b.MaxLon && p.Lat >= b.MinLat && p.Lat <= b.MaxLat {
			return true
		}
	}
	return false
}

// Loader builds Aoi values from a Source, applying the geometric
// pipeline of §4.2: buffer, explode multi-geometries, antimeridian
// split, area computation, CCW reorientation and priority lookup.
type Loader struct {
	Source   Source
	Box      BBox
	BufferM  float64
	Priority PriorityData
	// Filter, when non-nil, is applied to each feature's raw
	// properties before it is turned into an Aoi; returning false
	// drops the feature.
	Filter func(props map[string]any) bool
}

// Load runs the full pipeline and returns the resulting Aois, each
// CCW-oriented with area and priority populated. Degenerate
// geometries (after exploding and splitting) are skipped rather than
// surfaced as errors, matching the "callers must tolerate" contract
// of Zone construction.
func (l Loader) Load() ([]*Aoi, error) {
	fc, err := l.Source.FetchGeoJSON()
	if err != nil {
		return nil, fmt.Errorf("aoi: fetch: %w", err)
	}

	var out []*Aoi
	for i, feat := range fc.Features {
		if l.Filter != nil && !l.Filter(feat.Properties) {
			continue
		}
		rings, err := ringsFromGeometry(feat.Geometry)
		if err != nil {
			continue
		}
		country, _ := feat.Properties["country"].(string)
		continent, _ := feat.Properties["continent"].(string)
		iso, _ := feat.Properties["iso"].(string)

		for j, ring := range rings {
			if !l.Box.intersectsRing(ring) {
				continue
			}
			buffered := bufferRing(ring, l.BufferM)
			for k, part := range splitAntimeridian(buffered) {
				if len(part) < 3 {
					continue
				}
				if !IsCCW(part) {
					part = Reversed(part)
				}
				id := fmt.Sprintf("%s-%d-%d-%d", featureID(feat, i), i, j, k)
				a := New(id, part, country, continent, iso, l.Priority.Lookup(country, continent))
				out = append(out, a)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func featureID(feat *geojson.Feature, i int) string {
	if feat.ID != nil {
		if s, ok := feat.ID.(string); ok && s != "" {
			return s
		}
	}
	if name, ok := feat.Properties["name"].(string); ok && name != "" {
		return name
	}
	return fmt.Sprintf("aoi-%d", i)
}

// ringsFromGeometry explodes Polygon and MultiPolygon geometries into
// their constituent exterior rings; interior rings (holes) are
// dropped, as the scheduler only needs coverage, not exclusion zones.
func ringsFromGeometry(g *geojson.Geometry) ([][]Point, error) {
	if g == nil {
		return nil, fmt.Errorf("aoi: nil geometry")
	}
	switch {
	case g.IsPolygon():
		return [][]Point{ringFromCoords(g.Polygon[0])}, nil
	case g.IsMultiPolygon():
		rings := make([][]Point, 0, len(g.MultiPolygon))
		for _, poly := range g.MultiPolygon {
			rings = append(rings, ringFromCoords(poly[0]))
		}
		return rings, nil
	default:
		return nil, fmt.Errorf("aoi: unsupported geometry type %s", g.Type)
	}
}

func ringFromCoords(coords [][]float64) []Point {
	out := make([]Point, len(coords))
	for i, c := range coords {
		out[i] = Point{Lon: c[0], Lat: c[1]}
	}
	return out
}

// bufferRing grows ring outward by meters, using a degree-per-meter
// approximation at the ring's mean latitude and polyclip's Minkowski
// sum for the planar offset. A zero buffer is a no-op.
func bufferRing(ring []Point, meters float64) []Point {
	if meters == 0 {
		return ring
	}
	contour := make(polyclip.Contour, len(ring))
	for i, p := range ring {
		contour[i] = polyclip.Point{X: p.Lon, Y: p.Lat}
	}
	deg := metersToDegrees(meters, meanLat(ring))
	offset := circleContour(deg, 12)
	poly := polyclip.Polygon{contour}
	grown := poly.Construct(polyclip.UNION, polyclip.Polygon{offset})
	if len(grown) == 0 {
		return ring
	}
	largest := grown[0]
	for _, c := range grown[1:] {
		if len(c) > len(largest) {
			largest = c
		}
	}
	out := make([]Point, len(largest))
	for i, p := range largest {
		out[i] = Point{Lon: p.X, Lat: p.Y}
	}
	return out
}

func circleContour(radius float64, segments int) polyclip.Contour {
	c := make(polyclip.Contour, segments)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		c[i] = polyclip.Point{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)}
	}
	return c
}

func meanLat(ring []Point) float64 {
	var sum float64
	for _, p := range ring {
		sum += p.Lat
	}
	return sum / float64(len(ring))
}

func metersToDegrees(meters, lat float64) float64 {
	const metersPerDegreeLat = 111320.0
	return meters / metersPerDegreeLat
}

// splitAntimeridian splits a ring spanning more than 180 degrees of
// longitude at the antimeridian, returning the (possibly single) parts.
func splitAntimeridian(ring []Point) [][]Point {
	minLon, maxLon := ring[0].Lon, ring[0].Lon
	for _, p := range ring[1:] {
		if p.Lon < minLon {
			minLon = p.Lon
		}
		if p.Lon > maxLon {
			maxLon = p.Lon
		}
	}
	if maxLon-minLon <= 180 {
		return [][]Point{ring}
	}

	var west, east []Point
	for _, p := range ring {
		lon := p.Lon
		if lon < 0 {
			lon += 360
		}
		if lon <= 180 {
			east = append(east, Point{Lon: lon, Lat: p.Lat})
		} else {
			west = append(west, Point{Lon: lon - 360, Lat: p.Lat})
		}
	}
	var parts [][]Point
	if len(east) >= 3 {
		parts = append(parts, east)
	}
	if len(west) >= 3 {
		parts = append(parts, west)
	}
	if len(parts) == 0 {
		return [][]Point{ring}
	}
	return parts
}
