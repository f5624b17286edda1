package rdf

import (
	"testing"

	"github.com/golang/geo/s2"

	"s2cells/relation"
	"s2cells/util"
)

func TestCellIRI(t *testing.T) {
	id := s2.CellID(288230376151711744)
	util.AssertEqual(t, 1, id.Level())
	util.AssertEqual(t, "http://stko-kwg.geog.ucsb.edu/lod/resource/s2.level1.288230376151711744", CellIRI(id))
}

func TestCellGeometryIRI(t *testing.T) {
	id := s2.CellID(288230376151711744)
	util.AssertEqual(t, "http://stko-kwg.geog.ucsb.edu/lod/resource/geometry.polygon.s2.level1.288230376151711744", CellGeometryIRI(id))
}

func TestCellClassIRI(t *testing.T) {
	util.AssertEqual(t, "http://stko-kwg.geog.ucsb.edu/lod/ontology/S2Cell_Level13", CellClassIRI(13))
}

func TestIDToIRI(t *testing.T) {
	cellID := relation.ID{CellID: s2.CellID(288230376151711744)}
	util.AssertEqual(t, CellIRI(cellID.CellID), IDToIRI(cellID))

	// Identifiers that already are IRIs stay untouched
	iri := relation.FeatureID("https://example.org/thing/1")
	util.AssertEqual(t, "https://example.org/thing/1", IDToIRI(iri))

	plain := relation.FeatureID("osm.way.42")
	util.AssertEqual(t, ResourceNamespace+"osm.way.42", IDToIRI(plain))
}

func TestPredicateForKind(t *testing.T) {
	predicate, err := PredicateForKind(relation.Touches)
	util.AssertNil(t, err)
	util.AssertEqual(t, OntologyNamespace+"sfTouches", predicate)

	predicate, err = PredicateForKind(relation.CoveredBy)
	util.AssertNil(t, err)
	util.AssertEqual(t, OntologyNamespace+"sfCoveredBy", predicate)

	_, err = PredicateForKind(relation.Kind(99))
	util.AssertNotNil(t, err)
}
