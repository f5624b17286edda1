package relation

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"s2cells/cell"
)

// Classifier computes the topological relation between two regions on the
// sphere. It is a pure function of its inputs and the configured tolerance, so
// it can run on many cell pairs in parallel without any coordination.
type Classifier struct {
	config cell.Config

	// Boundaries closer than this are considered to be touching. Derived from
	// the configured tolerance once, since classification happens in radians.
	toleranceAngle s1.Angle
}

func NewClassifier(config cell.Config) *Classifier {
	return &Classifier{
		config:         config,
		toleranceAngle: s1.Angle(config.ToleranceDegrees) * s1.Degree,
	}
}

// ToleranceAngle is the configured tolerance as angle on the sphere.
func (c *Classifier) ToleranceAngle() s1.Angle {
	return c.toleranceAngle
}

// Classify determines the relation of boundary a to boundary b, evaluated from
// the perspective of a (i.e. Within means a lies within b). Boundaries closer
// than the tolerance count as touching, so shared cell edges classify
// deterministically despite floating-point noise.
func (c *Classifier) Classify(a *s2.Polygon, b *s2.Polygon) (Kind, error) {
	aContainsB := a.Contains(b)
	bContainsA := b.Contains(a)
	intersects := a.Intersects(b)

	if (aContainsB || bContainsA) && !intersects {
		// Containment of a non-empty region implies intersection. Reaching
		// this state means the underlying predicates disagreed on the inputs.
		return Disjoint, NewInternalGeometryError(polygonDescription(a), polygonDescription(b), "containment without intersection")
	}

	switch {
	case aContainsB && bContainsA:
		return Equals, nil
	case aContainsB:
		if c.boundariesMeet(a, b) {
			return Covers, nil
		}
		return Contains, nil
	case bContainsA:
		if c.boundariesMeet(a, b) {
			return CoveredBy, nil
		}
		return Within, nil
	case intersects:
		return Overlaps, nil
	case c.boundariesMeet(a, b):
		return Touches, nil
	}

	return Disjoint, nil
}

// boundariesMeet determines whether the boundaries of the two polygons come
// closer than the tolerance anywhere. Checking all vertices of one polygon
// against all edges of the other (in both directions) is sufficient here: cell
// boundaries are four-edge quadrilaterals and input geometries have been
// segmentized so that no edge is longer than the tolerance.
func (c *Classifier) boundariesMeet(a *s2.Polygon, b *s2.Polygon) bool {
	return verticesNearBoundary(a, b, c.toleranceAngle) || verticesNearBoundary(b, a, c.toleranceAngle)
}

func verticesNearBoundary(of *s2.Polygon, to *s2.Polygon, tolerance s1.Angle) bool {
	for loopIndex := 0; loopIndex < of.NumLoops(); loopIndex++ {
		loop := of.Loop(loopIndex)
		for vertexIndex := 0; vertexIndex < loop.NumVertices(); vertexIndex++ {
			if BoundaryDistance(loop.Vertex(vertexIndex), to) <= tolerance {
				return true
			}
		}
	}
	return false
}

// BoundaryDistance returns the minimal distance from the point to the edges of
// the polygon boundary.
func BoundaryDistance(point s2.Point, to *s2.Polygon) s1.Angle {
	minDistance := s1.InfAngle()
	for loopIndex := 0; loopIndex < to.NumLoops(); loopIndex++ {
		loop := to.Loop(loopIndex)
		for edgeIndex := 0; edgeIndex < loop.NumVertices(); edgeIndex++ {
			distance := s2.DistanceFromSegment(point, loop.Vertex(edgeIndex), loop.Vertex(edgeIndex+1))
			if distance < minDistance {
				minDistance = distance
			}
		}
	}
	return minDistance
}

func polygonDescription(polygon *s2.Polygon) string {
	if polygon.NumLoops() == 0 {
		return "empty polygon"
	}
	latLng := s2.LatLngFromPoint(polygon.Loop(0).Vertex(0))
	return "polygon at " + latLng.String()
}

// ClassifyCells determines the relation of cell a to cell b using the ID
// structure of the hierarchy instead of geometric predicates. Cell boundaries
// are shared exactly between siblings and across face boundaries, so no
// tolerance is involved: two distinct cells where neither contains the other
// either share a boundary piece or are fully disjoint.
func (c *Classifier) ClassifyCells(a cell.Cell, b cell.Cell) Kind {
	switch {
	case a.ID == b.ID:
		return Equals
	case a.ID.Contains(b.ID):
		if descendantOnBoundary(b, a) {
			return Covers
		}
		return Contains
	case b.ID.Contains(a.ID):
		if descendantOnBoundary(a, b) {
			return CoveredBy
		}
		return Within
	case cellsTouch(a, b):
		return Touches
	}
	return Disjoint
}

// descendantOnBoundary determines whether the descendant cell touches the
// boundary of its ancestor. That is the case exactly when one of the
// descendant's ring neighbors lies outside the ancestor.
func descendantOnBoundary(descendant cell.Cell, ancestor cell.Cell) bool {
	for _, neighbor := range descendant.ID.AllNeighbors(descendant.Level()) {
		if !ancestor.ID.Contains(neighbor) {
			return true
		}
	}
	return false
}

// cellsTouch determines whether the closures of the two cells share at least
// one point. The ring of edge and vertex neighbors of the finer cell tiles its
// boundary exactly, so the finer cell reaches the other cell if and only if
// one of those neighbors lies inside it (or is one of its ancestors).
func cellsTouch(a cell.Cell, b cell.Cell) bool {
	finer, other := a, b
	if b.Level() > a.Level() {
		finer, other = b, a
	}
	for _, neighbor := range finer.ID.AllNeighbors(finer.Level()) {
		if other.ID.Contains(neighbor) || neighbor.Contains(other.ID) {
			return true
		}
	}
	return false
}
