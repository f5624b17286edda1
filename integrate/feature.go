package integrate

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"

	"s2cells/cell"
)

// Feature is an externally supplied geometry with a stable, caller-owned
// identifier. The engine never mutates the geometry.
type Feature struct {
	ID       string
	Geometry orb.Geometry
}

// S2Polygon converts a (multi)polygon feature into its spherical form. Rings
// are segmentized to the configured tolerance first, since straight lon/lat
// edges become geodesics on the sphere and long edges would curve away from
// the original shape. Returns an UnsupportedGeometryError for degenerate or
// invalid rings.
func (f Feature) S2Polygon(config cell.Config) (*s2.Polygon, error) {
	var rings []orb.Ring

	switch geometry := f.Geometry.(type) {
	case orb.Polygon:
		rings = orientedRings(geometry)
	case orb.MultiPolygon:
		for _, polygon := range geometry {
			rings = append(rings, orientedRings(polygon)...)
		}
	default:
		return nil, NewUnsupportedGeometryError(f.ID, "not a polygon geometry")
	}

	loops := make([]*s2.Loop, 0, len(rings))
	for _, ring := range rings {
		loop, err := loopFromRing(f.ID, segmentizeRing(ring, config.ToleranceDegrees))
		if err != nil {
			return nil, err
		}
		loops = append(loops, loop)
	}

	polygon := s2.PolygonFromOrientedLoops(loops)
	if err := polygon.Validate(); err != nil {
		return nil, NewUnsupportedGeometryError(f.ID, err.Error())
	}
	return polygon, nil
}

// S2Polylines converts a (multi)linestring feature into spherical polylines.
func (f Feature) S2Polylines() ([]*s2.Polyline, error) {
	var lines []orb.LineString

	switch geometry := f.Geometry.(type) {
	case orb.LineString:
		lines = []orb.LineString{geometry}
	case orb.MultiLineString:
		lines = geometry
	default:
		return nil, NewUnsupportedGeometryError(f.ID, "not a line geometry")
	}

	polylines := make([]*s2.Polyline, 0, len(lines))
	for _, line := range lines {
		if len(line) < 2 {
			return nil, NewUnsupportedGeometryError(f.ID, "line with less than two points")
		}
		latLngs := make([]s2.LatLng, 0, len(line))
		for _, point := range line {
			latLngs = append(latLngs, s2.LatLngFromDegrees(point.Lat(), point.Lon()))
		}
		polylines = append(polylines, s2.PolylineFromLatLngs(latLngs))
	}

	return polylines, nil
}

// S2Point converts a point feature into its spherical form.
func (f Feature) S2Point() (s2.Point, error) {
	point, ok := f.Geometry.(orb.Point)
	if !ok {
		return s2.Point{}, NewUnsupportedGeometryError(f.ID, "not a point geometry")
	}
	return s2.PointFromLatLng(s2.LatLngFromDegrees(point.Lat(), point.Lon())), nil
}

// orientedRings returns the rings of the polygon with the exterior wound
// counter-clockwise and holes clockwise, i.e. with the polygon interior always
// to the left of each ring.
func orientedRings(polygon orb.Polygon) []orb.Ring {
	rings := make([]orb.Ring, 0, len(polygon))
	for ringIndex, ring := range polygon {
		ring = unwrapRing(ring)
		wanted := orb.CCW
		if ringIndex > 0 {
			wanted = orb.CW
		}
		if ring.Orientation() != wanted {
			ring.Reverse()
		}
		rings = append(rings, ring)
	}
	return rings
}

// unwrapRing removes the longitude jump of rings crossing the antimeridian:
// each point is shifted by a multiple of 360 degrees so that consecutive
// points are less than 180 degrees apart. Orientation and segmentization then
// work on continuous coordinates, the later spherical conversion is periodic
// in the longitude anyway. The input ring is never modified.
func unwrapRing(ring orb.Ring) orb.Ring {
	unwrapped := make(orb.Ring, len(ring))
	offset := 0.0
	for pointIndex, point := range ring {
		if pointIndex > 0 {
			deltaLon := point.Lon() - ring[pointIndex-1].Lon()
			if deltaLon > 180 {
				offset -= 360
			} else if deltaLon < -180 {
				offset += 360
			}
		}
		unwrapped[pointIndex] = orb.Point{point.Lon() + offset, point.Lat()}
	}
	return unwrapped
}

// segmentizeRing inserts additional vertices so that no two adjacent vertices
// are further apart than maxSegmentDegrees.
func segmentizeRing(ring orb.Ring, maxSegmentDegrees float64) orb.Ring {
	if maxSegmentDegrees <= 0 {
		return ring
	}

	segmentized := make(orb.Ring, 0, len(ring))
	for pointIndex := 0; pointIndex < len(ring)-1; pointIndex++ {
		start := ring[pointIndex]
		end := ring[pointIndex+1]
		segmentized = append(segmentized, start)

		deltaLon := end.Lon() - start.Lon()
		deltaLat := end.Lat() - start.Lat()
		length := math.Sqrt(deltaLon*deltaLon + deltaLat*deltaLat)
		segments := int(math.Ceil(length / maxSegmentDegrees))
		for segment := 1; segment < segments; segment++ {
			fraction := float64(segment) / float64(segments)
			segmentized = append(segmentized, orb.Point{
				start.Lon() + fraction*deltaLon,
				start.Lat() + fraction*deltaLat,
			})
		}
	}

	if len(ring) > 0 {
		segmentized = append(segmentized, ring[len(ring)-1])
	}
	return segmentized
}

func loopFromRing(featureID string, ring orb.Ring) (*s2.Loop, error) {
	if len(ring) < 4 || ring[0] != ring[len(ring)-1] {
		return nil, NewUnsupportedGeometryError(featureID, "ring is not closed or has less than three distinct points")
	}

	// The closing point is dropped, s2 loops are implicitly closed.
	points := make([]s2.Point, 0, len(ring)-1)
	for _, point := range ring[:len(ring)-1] {
		points = append(points, s2.PointFromLatLng(s2.LatLngFromDegrees(point.Lat(), point.Lon())))
	}

	loop := s2.LoopFromPoints(points)
	if err := loop.Validate(); err != nil {
		return nil, NewUnsupportedGeometryError(featureID, err.Error())
	}
	return loop, nil
}
