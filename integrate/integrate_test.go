package integrate

import (
	"testing"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"

	"s2cells/cell"
	"s2cells/relation"
	"s2cells/util"
)

func integratorConfig() cell.Config {
	return cell.Config{MinLevel: 3, MaxLevel: 3, ToleranceDegrees: 1e-2}
}

// centerOfLevel3Cell returns some level-3 cell and its center in degrees.
func centerOfLevel3Cell() (cell.Cell, s2.LatLng) {
	c := cell.FromID(s2.CellIDFromFace(1).ChildBeginAtLevel(3))
	return c, c.ID.LatLng()
}

func TestIntegrator_pointStrictlyInsideCell(t *testing.T) {
	integrator := NewIntegrator(integratorConfig())

	containing, center := centerOfLevel3Cell()
	feature := Feature{ID: "p1", Geometry: orb.Point{center.Lng.Degrees(), center.Lat.Degrees()}}

	candidates, err := integrator.CandidateCells(feature)
	util.AssertNil(t, err)
	util.AssertEqual(t, 1, len(candidates))
	util.AssertEqual(t, containing.ID, candidates[0].ID)

	records, err := integrator.Integrate(feature, candidates)
	util.AssertNil(t, err)

	util.AssertEqual(t, 1, len(records))
	util.AssertEqual(t, relation.FeatureID("p1"), records[0].Subject)
	util.AssertEqual(t, relation.CellID(containing), records[0].Object)
	util.AssertEqual(t, relation.Within, records[0].Kind)
	util.AssertEqual(t, 3, records[0].Level)
}

func TestIntegrator_pointOnCellEdge(t *testing.T) {
	integrator := NewIntegrator(integratorConfig())

	containing, _ := centerOfLevel3Cell()
	s2Cell := s2.CellFromCellID(containing.ID)
	midpoint := s2.LatLngFromPoint(s2.Interpolate(0.5, s2Cell.Vertex(0), s2Cell.Vertex(1)))

	feature := Feature{ID: "p1", Geometry: orb.Point{midpoint.Lng.Degrees(), midpoint.Lat.Degrees()}}

	candidates, err := integrator.CandidateCells(feature)
	util.AssertNil(t, err)

	records, err := integrator.Integrate(feature, candidates)
	util.AssertNil(t, err)

	// A point on the boundary between two cells yields exactly one record and
	// the boundary contact turns the containment into coveredBy.
	util.AssertEqual(t, 1, len(records))
	util.AssertEqual(t, relation.FeatureID("p1"), records[0].Subject)
	util.AssertEqual(t, relation.CoveredBy, records[0].Kind)
	util.AssertEqual(t, 3, records[0].Level)
}

func TestIntegrator_polygonInsideCell(t *testing.T) {
	integrator := NewIntegrator(integratorConfig())

	containing, center := centerOfLevel3Cell()
	lon := center.Lng.Degrees()
	lat := center.Lat.Degrees()

	// A small square around the cell center, far away from the cell boundary
	feature := Feature{
		ID:       "a1",
		Geometry: orb.Polygon{unitSquareRing(lon-0.1, lat-0.1, lon+0.1, lat+0.1)},
	}

	candidates, err := integrator.CandidateCells(feature)
	util.AssertNil(t, err)

	records, err := integrator.Integrate(feature, candidates)
	util.AssertNil(t, err)

	util.AssertEqual(t, 1, len(records))
	util.AssertEqual(t, relation.CellID(containing), records[0].Subject)
	util.AssertEqual(t, relation.FeatureID("a1"), records[0].Object)
	util.AssertEqual(t, relation.Contains, records[0].Kind)
}

func TestIntegrator_polygonCoveringCell(t *testing.T) {
	integrator := NewIntegrator(integratorConfig())

	contained, center := centerOfLevel3Cell()
	lon := center.Lng.Degrees()
	lat := center.Lat.Degrees()

	// A square with a wide margin around the whole level-3 cell
	feature := Feature{
		ID:       "big",
		Geometry: orb.Polygon{unitSquareRing(lon-20, lat-20, lon+20, lat+20)},
	}

	candidates, err := integrator.CandidateCells(feature)
	util.AssertNil(t, err)

	records, err := integrator.Integrate(feature, candidates)
	util.AssertNil(t, err)

	// The fully covered cell lies within the feature, without any geometric
	// classification needed.
	found := false
	for _, record := range records {
		if record.Subject.CellID == contained.ID {
			found = true
			util.AssertEqual(t, relation.Within, record.Kind)
		}
	}
	util.AssertTrue(t, found)
}

func TestIntegrator_lineCrossesCells(t *testing.T) {
	integrator := NewIntegrator(integratorConfig())

	containing, center := centerOfLevel3Cell()
	lon := center.Lng.Degrees()
	lat := center.Lat.Degrees()

	// A short segment through the cell center
	feature := Feature{
		ID:       "l1",
		Geometry: orb.LineString{{lon - 0.1, lat}, {lon + 0.1, lat}},
	}

	candidates, err := integrator.CandidateCells(feature)
	util.AssertNil(t, err)

	records, err := integrator.Integrate(feature, candidates)
	util.AssertNil(t, err)

	util.AssertEqual(t, 1, len(records))
	util.AssertEqual(t, relation.CellID(containing), records[0].Subject)
	util.AssertEqual(t, relation.FeatureID("l1"), records[0].Object)
	util.AssertEqual(t, relation.Crosses, records[0].Kind)
}

func TestIntegrator_integrateAll(t *testing.T) {
	integrator := NewIntegrator(integratorConfig())

	_, center := centerOfLevel3Cell()
	features := []Feature{
		{ID: "p1", Geometry: orb.Point{center.Lng.Degrees(), center.Lat.Degrees()}},
		{ID: "broken", Geometry: orb.Collection{}},
	}

	// The unsupported feature is skipped, the rest is still processed.
	records, err := integrator.IntegrateAll(features, 2)
	util.AssertNil(t, err)

	util.AssertEqual(t, 1, len(records))
	util.AssertEqual(t, relation.FeatureID("p1"), records[0].Subject)
}

func TestIntegrator_candidatesCoverLargeFeatures(t *testing.T) {
	integrator := NewIntegrator(integratorConfig())

	_, center := centerOfLevel3Cell()
	lon := center.Lng.Degrees()
	lat := center.Lat.Degrees()

	// Roughly 40 degrees across, this spans several level-3 cells.
	feature := Feature{
		ID:       "big",
		Geometry: orb.Polygon{unitSquareRing(lon-20, lat-20, lon+20, lat+20)},
	}

	candidates, err := integrator.CandidateCells(feature)
	util.AssertNil(t, err)
	util.AssertTrue(t, len(candidates) > 1)

	for candidateIndex := 1; candidateIndex < len(candidates); candidateIndex++ {
		util.AssertTrue(t, candidates[candidateIndex-1].ID < candidates[candidateIndex].ID)
	}

	// With equal min and max level the covering never degrades to other levels.
	for _, candidate := range candidates {
		util.AssertEqual(t, 3, candidate.Level())
	}

	// The covering is conservative, false positives are rejected during
	// classification and disjoint pairs never reach the output.
	records, err := integrator.Integrate(feature, candidates)
	util.AssertNil(t, err)
	for _, record := range records {
		util.AssertFalse(t, record.Kind == relation.Disjoint)
	}
}
