// Package io loads external geometry features and writes cell coverings for
// visualization. Supported inputs are GeoJSON files, plain WKT files (one
// geometry per line) and OSM PBF extracts.
package io

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"

	"s2cells/integrate"
)

// LoadFeatures reads all geometry features from the given file or folder.
// Folders are walked in lexical order so that repeated runs see the features
// in the same sequence.
func LoadFeatures(path string) ([]integrate.Feature, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to read geometry source %s", path)
	}

	if !info.IsDir() {
		return loadFeatureFile(path)
	}

	var features []integrate.Feature
	err = filepath.Walk(path, func(filename string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fileInfo.IsDir() || strings.HasPrefix(fileInfo.Name(), ".") {
			return nil
		}

		fileFeatures, err := loadFeatureFile(filename)
		if err != nil {
			return err
		}
		features = append(features, fileFeatures...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return features, nil
}

func loadFeatureFile(filename string) ([]integrate.Feature, error) {
	sigolo.Debugf("Load geometry file %s", filename)

	switch {
	case strings.HasSuffix(filename, ".geojson") || strings.HasSuffix(filename, ".json"):
		return loadGeoJsonFile(filename)
	case strings.HasSuffix(filename, ".wkt"):
		return loadWktFile(filename)
	case strings.HasSuffix(filename, ".osm.pbf") || strings.HasSuffix(filename, ".pbf"):
		return loadOsmFile(filename)
	}

	sigolo.Warnf("Ignoring geometry file %s: unknown file extension", filename)
	return nil, nil
}

func loadGeoJsonFile(filename string) ([]integrate.Feature, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to read GeoJSON file %s", filename)
	}

	collection, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to parse GeoJSON file %s", filename)
	}

	features := make([]integrate.Feature, 0, len(collection.Features))
	for featureIndex, geoJsonFeature := range collection.Features {
		features = append(features, integrate.Feature{
			ID:       geoJsonFeatureID(filename, featureIndex, geoJsonFeature),
			Geometry: geoJsonFeature.Geometry,
		})
	}
	return features, nil
}

// geoJsonFeatureID prefers an explicit "iri" or "id" property and falls back
// to a name derived from the file.
func geoJsonFeatureID(filename string, featureIndex int, feature *geojson.Feature) string {
	for _, property := range []string{"iri", "id"} {
		if value, ok := feature.Properties[property].(string); ok && value != "" {
			return value
		}
	}
	if id, ok := feature.ID.(string); ok && id != "" {
		return id
	}
	return fmt.Sprintf("%s.%d", baseName(filename), featureIndex)
}

func loadWktFile(filename string) ([]integrate.Feature, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to read WKT file %s", filename)
	}

	var features []integrate.Feature
	for lineIndex, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		geometry, err := wkt.Unmarshal(line)
		if err != nil {
			return nil, errors.Wrapf(err, "Unable to parse WKT geometry in %s line %d", filename, lineIndex+1)
		}

		features = append(features, integrate.Feature{
			ID:       fmt.Sprintf("%s.%d", baseName(filename), lineIndex),
			Geometry: geometry,
		})
	}
	return features, nil
}

func baseName(filename string) string {
	name := filepath.Base(filename)
	if dotIndex := strings.Index(name, "."); dotIndex > 0 {
		name = name[:dotIndex]
	}
	return name
}
