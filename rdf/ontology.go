// Package rdf serializes cells and relation records as RDF triples using the
// KnowWhereGraph vocabulary. It is a thin output layer, all topological
// decisions happen before records arrive here.
package rdf

import (
	"fmt"
	"strings"

	"github.com/golang/geo/s2"
	"github.com/pkg/errors"

	"s2cells/relation"
)

const kwgEndpoint = "http://stko-kwg.geog.ucsb.edu/"

// Namespaces of the emitted vocabulary.
const (
	ResourceNamespace = kwgEndpoint + "lod/resource/"
	OntologyNamespace = kwgEndpoint + "lod/ontology/"
	GeoNamespace      = "http://www.opengis.net/ont/geosparql#"
	SfNamespace       = "http://www.opengis.net/ont/sf#"
	RdfNamespace      = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RdfsNamespace     = "http://www.w3.org/2000/01/rdf-schema#"
	XsdNamespace      = "http://www.w3.org/2001/XMLSchema#"
)

// namespacePrefixes is the prefix table of all serializations, ordered for
// deterministic output.
var namespacePrefixes = []struct {
	Prefix    string
	Namespace string
}{
	{"kwgr", ResourceNamespace},
	{"kwg-ont", OntologyNamespace},
	{"geo", GeoNamespace},
	{"sf", SfNamespace},
	{"rdf", RdfNamespace},
	{"rdfs", RdfsNamespace},
	{"xsd", XsdNamespace},
}

// CellIRI returns the resource IRI of a cell, e.g. ".../s2.level1.288230376151711744".
func CellIRI(id s2.CellID) string {
	return fmt.Sprintf("%ss2.level%d.%d", ResourceNamespace, id.Level(), uint64(id))
}

// CellGeometryIRI returns the resource IRI of the vertex polygon of a cell.
func CellGeometryIRI(id s2.CellID) string {
	return fmt.Sprintf("%sgeometry.polygon.s2.level%d.%d", ResourceNamespace, id.Level(), uint64(id))
}

// CellClassIRI returns the ontology class of all cells of one level.
func CellClassIRI(level int) string {
	return fmt.Sprintf("%sS2Cell_Level%d", OntologyNamespace, level)
}

// IDToIRI maps a record subject or object to its IRI. Cells get their resource
// IRI, features keep their identifier when it already is an IRI and are placed
// in the resource namespace otherwise.
func IDToIRI(id relation.ID) string {
	if id.IsCell() {
		return CellIRI(id.CellID)
	}
	if strings.Contains(id.Feature, "://") {
		return id.Feature
	}
	return ResourceNamespace + id.Feature
}

var kindPredicates = map[relation.Kind]string{
	relation.Equals:    OntologyNamespace + "sfEquals",
	relation.Disjoint:  OntologyNamespace + "sfDisjoint",
	relation.Touches:   OntologyNamespace + "sfTouches",
	relation.Overlaps:  OntologyNamespace + "sfOverlaps",
	relation.Covers:    OntologyNamespace + "sfCovers",
	relation.CoveredBy: OntologyNamespace + "sfCoveredBy",
	relation.Contains:  OntologyNamespace + "sfContains",
	relation.Within:    OntologyNamespace + "sfWithin",
	relation.Crosses:   OntologyNamespace + "sfCrosses",
}

// PredicateForKind returns the predicate IRI of a relation kind. The
// vocabulary is closed, unknown kinds are an error.
func PredicateForKind(kind relation.Kind) (string, error) {
	predicate, ok := kindPredicates[kind]
	if !ok {
		return "", errors.Errorf("No RDF predicate for relation kind %d", int(kind))
	}
	return predicate, nil
}
