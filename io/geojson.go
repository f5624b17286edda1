package io

import (
	"io"
	"strconv"
	"time"

	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb/geojson"

	"s2cells/cell"
)

// WriteCellsAsGeoJson serializes cell boundaries as GeoJSON feature
// collection, mainly for inspecting coverings on a map.
func WriteCellsAsGeoJson(cells []cell.Cell, writer io.Writer) error {
	sigolo.Debug("Write cells to GeoJSON")
	writeStartTime := time.Now()

	featureCollection := geojson.NewFeatureCollection()
	for _, c := range cells {
		feature := geojson.NewFeature(c.VertexPolygon())
		feature.Properties["id"] = strconv.FormatUint(uint64(c.ID), 10)
		feature.Properties["token"] = c.ID.ToToken()
		feature.Properties["level"] = c.Level()
		feature.Properties["area"] = c.ApproxAreaSquareMeters()
		featureCollection.Features = append(featureCollection.Features, feature)
	}

	geojsonBytes, err := featureCollection.MarshalJSON()
	if err != nil {
		return err
	}

	_, err = writer.Write(geojsonBytes)
	if err != nil {
		return err
	}

	sigolo.Debugf("Wrote %d cells as GeoJSON in %s", len(cells), time.Since(writeStartTime))
	return nil
}
