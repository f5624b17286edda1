package io

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"

	"s2cells/integrate"
)

// loadOsmFile turns the ways of an OSM PBF extract into geometry features:
// closed ways become polygons, open ways become line strings. Way geometries
// are resolved against the node positions seen earlier in the stream, which
// works because PBF files list all nodes before the first way.
func loadOsmFile(filename string) ([]integrate.Feature, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to open OSM input file %s", filename)
	}
	defer file.Close()

	scanner := osmpbf.New(context.Background(), file, 1)

	sigolo.Infof("Start processing OSM data file %s", filename)
	startTime := time.Now()

	nodePositions := map[osm.NodeID]orb.Point{}
	var features []integrate.Feature

	for scanner.Scan() {
		switch osmObj := scanner.Object().(type) {
		case *osm.Node:
			nodePositions[osmObj.ID] = orb.Point{osmObj.Lon, osmObj.Lat}
		case *osm.Way:
			feature, ok := wayToFeature(osmObj, nodePositions)
			if ok {
				features = append(features, feature)
			}
		}
	}

	err = scanner.Close()
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to close OSM scanner for %s", filename)
	}

	sigolo.Infof("Done processing %d OSM features in %s", len(features), time.Since(startTime))
	return features, nil
}

func wayToFeature(way *osm.Way, nodePositions map[osm.NodeID]orb.Point) (integrate.Feature, bool) {
	if len(way.Nodes) < 2 {
		return integrate.Feature{}, false
	}

	line := make(orb.LineString, 0, len(way.Nodes))
	for _, wayNode := range way.Nodes {
		position, ok := nodePositions[wayNode.ID]
		if !ok {
			sigolo.Warnf("Way %d references unknown node %d, skipping way", way.ID, wayNode.ID)
			return integrate.Feature{}, false
		}
		line = append(line, position)
	}

	id := fmt.Sprintf("osm.way.%d", way.ID)

	// Closed ways with enough points form an area.
	if len(line) >= 4 && line[0] == line[len(line)-1] {
		return integrate.Feature{ID: id, Geometry: orb.Polygon{orb.Ring(line)}}, true
	}
	return integrate.Feature{ID: id, Geometry: line}, true
}
