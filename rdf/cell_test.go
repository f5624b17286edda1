package rdf

import (
	"strings"
	"testing"

	"github.com/golang/geo/s2"

	"s2cells/cell"
	"s2cells/relation"
	"s2cells/util"
)

func TestCellTriples(t *testing.T) {
	c := cell.FromID(s2.CellIDFromFace(0).ChildBeginAtLevel(1))
	triples := CellTriples(c)

	util.AssertEqual(t, 10, len(triples))

	cellIRI := CellIRI(c.ID)
	geometryIRI := CellGeometryIRI(c.ID)

	util.AssertEqual(t, cellIRI, triples[0].Subject)
	util.AssertEqual(t, RdfNamespace+"type", triples[0].Predicate)
	util.AssertEqual(t, CellClassIRI(1), triples[0].Object.Value)

	util.AssertEqual(t, OntologyNamespace+"cellID", triples[2].Predicate)
	util.AssertEqual(t, "288230376151711744", triples[2].Object.Value)
	util.AssertTrue(t, triples[2].Object.IsLiteral)
	util.AssertEqual(t, XsdNamespace+"integer", triples[2].Object.Datatype)

	util.AssertEqual(t, GeoNamespace+"hasGeometry", triples[4].Predicate)
	util.AssertEqual(t, geometryIRI, triples[4].Object.Value)

	wktTriple := triples[9]
	util.AssertEqual(t, geometryIRI, wktTriple.Subject)
	util.AssertEqual(t, GeoNamespace+"asWKT", wktTriple.Predicate)
	util.AssertTrue(t, wktTriple.Object.IsLiteral)
	util.AssertEqual(t, GeoNamespace+"wktLiteral", wktTriple.Object.Datatype)
	util.AssertTrue(t, strings.HasPrefix(wktTriple.Object.Value, "POLYGON"))
}

func TestRecordTriples(t *testing.T) {
	record := relation.Record{
		Subject: relation.CellID(cell.FromID(s2.CellIDFromFace(0).ChildBeginAtLevel(1))),
		Object:  relation.FeatureID("osm.way.42"),
		Kind:    relation.Contains,
		Level:   1,
	}

	triples, err := RecordTriples(record, false)
	util.AssertNil(t, err)
	util.AssertEqual(t, 1, len(triples))
	util.AssertEqual(t, CellIRI(record.Subject.CellID), triples[0].Subject)
	util.AssertEqual(t, OntologyNamespace+"sfContains", triples[0].Predicate)
	util.AssertEqual(t, ResourceNamespace+"osm.way.42", triples[0].Object.Value)
}

func TestRecordTriples_expandInverses(t *testing.T) {
	record := relation.Record{
		Subject: relation.CellID(cell.FromID(s2.CellIDFromFace(0).ChildBeginAtLevel(1))),
		Object:  relation.FeatureID("osm.way.42"),
		Kind:    relation.Contains,
		Level:   1,
	}

	triples, err := RecordTriples(record, true)
	util.AssertNil(t, err)
	util.AssertEqual(t, 2, len(triples))

	util.AssertEqual(t, OntologyNamespace+"sfContains", triples[0].Predicate)
	util.AssertEqual(t, OntologyNamespace+"sfWithin", triples[1].Predicate)
	util.AssertEqual(t, triples[0].Subject, triples[1].Object.Value)
	util.AssertEqual(t, triples[0].Object.Value, triples[1].Subject)
}
