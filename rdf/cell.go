package rdf

import (
	"fmt"
	"strconv"

	"github.com/paulmach/orb/encoding/wkt"

	"s2cells/cell"
	"s2cells/relation"
)

// CellTriples returns the descriptive facts of a single cell: its class,
// label, numeric identifier, approximate metric area and the vertex polygon
// as WKT geometry resource.
func CellTriples(c cell.Cell) []Triple {
	cellIRI := CellIRI(c.ID)
	geometryIRI := CellGeometryIRI(c.ID)
	id := uint64(c.ID)

	return []Triple{
		{cellIRI, RdfNamespace + "type", IRI(CellClassIRI(c.Level()))},
		{cellIRI, RdfsNamespace + "label", Literal(fmt.Sprintf("S2 Cell at level %d with ID %d", c.Level(), id), XsdNamespace+"string")},
		{cellIRI, OntologyNamespace + "cellID", Literal(strconv.FormatUint(id, 10), XsdNamespace+"integer")},
		{cellIRI, GeoNamespace + "hasMetricArea", Literal(strconv.FormatFloat(c.ApproxAreaSquareMeters(), 'g', -1, 64), XsdNamespace+"float")},
		{cellIRI, GeoNamespace + "hasGeometry", IRI(geometryIRI)},
		{cellIRI, GeoNamespace + "hasDefaultGeometry", IRI(geometryIRI)},
		{geometryIRI, RdfNamespace + "type", IRI(GeoNamespace + "Geometry")},
		{geometryIRI, RdfNamespace + "type", IRI(SfNamespace + "Polygon")},
		{geometryIRI, RdfsNamespace + "label", Literal(fmt.Sprintf("Geometry of the polygon formed from the vertices of the S2 Cell at level %d with ID %d", c.Level(), id), XsdNamespace+"string")},
		{geometryIRI, GeoNamespace + "asWKT", Literal(wkt.MarshalString(c.VertexPolygon()), GeoNamespace+"wktLiteral")},
	}
}

// RecordTriples turns a relation record into triples. The engine asserts each
// relation in one direction only; with expandInverses the inverse triple is
// written as well, which matches the output of downstream stores that do not
// reason over inverse predicates.
func RecordTriples(record relation.Record, expandInverses bool) ([]Triple, error) {
	predicate, err := PredicateForKind(record.Kind)
	if err != nil {
		return nil, err
	}

	subject := IDToIRI(record.Subject)
	object := IDToIRI(record.Object)
	triples := []Triple{{subject, predicate, IRI(object)}}

	if expandInverses {
		inversePredicate, err := PredicateForKind(record.Kind.Inverse())
		if err != nil {
			return nil, err
		}
		triples = append(triples, Triple{object, inversePredicate, IRI(subject)})
	}

	return triples, nil
}
