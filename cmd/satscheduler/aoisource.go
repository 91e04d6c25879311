package main

import (
	"fmt"
	"os"
	"strings"

	geojson "github.com/paulmach/go.geojson"
)

// fileSource implements aoi.Source by reading a local GeoJSON file,
// stripping a leading "file://" if present. The network-fetching
// collaborator the full aoi.Source interface anticipates is out of
// scope here; this is the on-disk stand-in.
type fileSource struct {
	path string
}

func newFileSource(url string) fileSource {
	return fileSource{path: strings.TrimPrefix(url, "file://")}
}

func (f fileSource) FetchGeoJSON() (*geojson.FeatureCollection, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("aoi source %s: %w", f.path, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		return nil, fmt.Errorf("aoi source %s: decode: %w", f.path, err)
	}
	return fc, nil
}
