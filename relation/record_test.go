package relation

import (
	"testing"

	"github.com/golang/geo/s2"

	"s2cells/cell"
	"s2cells/util"
)

func faceID(face int) ID {
	return CellID(cell.FromID(s2.CellIDFromFace(face)))
}

func TestID_ordering(t *testing.T) {
	cellA := faceID(0)
	cellB := faceID(1)
	featureA := FeatureID("osm.way.1")
	featureB := FeatureID("osm.way.2")

	util.AssertTrue(t, cellA.Less(cellB))
	util.AssertFalse(t, cellB.Less(cellA))

	// Cells sort before features
	util.AssertTrue(t, cellA.Less(featureA))
	util.AssertFalse(t, featureA.Less(cellA))

	util.AssertTrue(t, featureA.Less(featureB))
	util.AssertFalse(t, featureA.Less(featureA))
}

func TestID_string(t *testing.T) {
	id := faceID(0)
	util.AssertEqual(t, "1152921504606846976", id.String())
	util.AssertTrue(t, id.IsCell())

	feature := FeatureID("osm.way.42")
	util.AssertEqual(t, "osm.way.42", feature.String())
	util.AssertFalse(t, feature.IsCell())
}

func TestRecord_normalized(t *testing.T) {
	a := faceID(0)
	b := faceID(1)

	// Symmetric relations get the smaller subject
	record := Record{Subject: b, Object: a, Kind: Touches, Level: 0}
	normalized := record.Normalized()
	util.AssertEqual(t, a, normalized.Subject)
	util.AssertEqual(t, b, normalized.Object)
	util.AssertEqual(t, Touches, normalized.Kind)

	// Already ordered records stay untouched
	record = Record{Subject: a, Object: b, Kind: Disjoint, Level: 0}
	util.AssertEqual(t, record, record.Normalized())

	// Directed relations keep their direction
	record = Record{Subject: b, Object: a, Kind: Within, Level: 0}
	util.AssertEqual(t, record, record.Normalized())
}

func TestSortRecords(t *testing.T) {
	a := faceID(0)
	b := faceID(1)
	feature := FeatureID("osm.way.1")

	records := []Record{
		{Subject: feature, Object: a, Kind: Within},
		{Subject: b, Object: a, Kind: Touches},
		{Subject: a, Object: b, Kind: Touches},
		{Subject: a, Object: b, Kind: Disjoint},
	}

	SortRecords(records)

	util.AssertEqual(t, Record{Subject: a, Object: b, Kind: Disjoint}, records[0])
	util.AssertEqual(t, Record{Subject: a, Object: b, Kind: Touches}, records[1])
	util.AssertEqual(t, Record{Subject: b, Object: a, Kind: Touches}, records[2])
	util.AssertEqual(t, Record{Subject: feature, Object: a, Kind: Within}, records[3])
}
