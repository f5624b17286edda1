package integrate

import (
	"sort"

	"github.com/golang/geo/s2"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"s2cells/cell"
	"s2cells/relation"
)

// Integrator computes the relations between externally supplied geometries
// and the cells of the hierarchy.
type Integrator struct {
	config     cell.Config
	classifier *relation.Classifier
}

func NewIntegrator(config cell.Config) *Integrator {
	return &Integrator{
		config:     config,
		classifier: relation.NewClassifier(config),
	}
}

// CandidateCells returns the cells that could possibly have a non-disjoint
// relation to the feature. This pre-filter is conservative: it never excludes
// a truly intersecting cell but may contain false positives, which the
// classification rejects later.
func (i *Integrator) CandidateCells(feature Feature) ([]cell.Cell, error) {
	regions, err := i.boundingRegions(feature)
	if err != nil {
		return nil, err
	}

	seen := map[s2.CellID]struct{}{}
	var candidates []cell.Cell
	for _, region := range regions {
		covering, err := cell.Covering(region, i.config)
		if err != nil {
			return nil, err
		}
		for _, candidate := range covering {
			if _, ok := seen[candidate.ID]; ok {
				continue
			}
			seen[candidate.ID] = struct{}{}
			candidates = append(candidates, candidate)
		}
	}

	sort.Slice(candidates, func(a, b int) bool {
		return candidates[a].ID < candidates[b].ID
	})
	return candidates, nil
}

func (i *Integrator) boundingRegions(feature Feature) ([]s2.Region, error) {
	switch feature.Geometry.(type) {
	case orb.Point:
		point, err := feature.S2Point()
		if err != nil {
			return nil, err
		}
		return []s2.Region{point}, nil
	case orb.LineString, orb.MultiLineString:
		polylines, err := feature.S2Polylines()
		if err != nil {
			return nil, err
		}
		regions := make([]s2.Region, 0, len(polylines))
		for _, polyline := range polylines {
			regions = append(regions, polyline)
		}
		return regions, nil
	case orb.Polygon, orb.MultiPolygon:
		polygon, err := feature.S2Polygon(i.config)
		if err != nil {
			return nil, err
		}
		return []s2.Region{polygon}, nil
	}
	return nil, NewUnsupportedGeometryError(feature.ID, "geometry type "+string(feature.Geometry.GeoJSONType())+" cannot be classified")
}

// Integrate classifies the feature against each candidate cell and returns one
// record per non-disjoint pair. Disjoint pairs carry no information and would
// dominate the output volume, so they are omitted entirely. Pairs failing with
// an InternalGeometryError are logged with both identifiers and skipped, the
// remaining pairs are still processed.
func (i *Integrator) Integrate(feature Feature, candidates []cell.Cell) ([]relation.Record, error) {
	var records []relation.Record
	var err error

	switch feature.Geometry.(type) {
	case orb.Point:
		records, err = i.integratePoint(feature)
	case orb.LineString, orb.MultiLineString:
		records, err = i.integrateLines(feature, candidates)
	case orb.Polygon, orb.MultiPolygon:
		records, err = i.integratePolygon(feature, candidates)
	default:
		return nil, NewUnsupportedGeometryError(feature.ID, "geometry type "+string(feature.Geometry.GeoJSONType())+" cannot be classified")
	}
	if err != nil {
		return nil, err
	}

	relation.SortRecords(records)
	return records, nil
}

// A point lies within exactly one cell at the working level (or on the edge of
// one, in which case it is covered by it).
func (i *Integrator) integratePoint(feature Feature) ([]relation.Record, error) {
	point, err := feature.S2Point()
	if err != nil {
		return nil, err
	}

	containing := cell.FromID(s2.CellIDFromLatLng(s2.LatLngFromPoint(point)).Parent(i.config.MaxLevel))

	kind := relation.Within
	if relation.BoundaryDistance(point, containing.S2Polygon()) <= i.classifier.ToleranceAngle() {
		kind = relation.CoveredBy
	}

	return []relation.Record{{
		Subject: relation.FeatureID(feature.ID),
		Object:  relation.CellID(containing),
		Kind:    kind,
		Level:   containing.Level(),
	}}, nil
}

func (i *Integrator) integrateLines(feature Feature, candidates []cell.Cell) ([]relation.Record, error) {
	polylines, err := feature.S2Polylines()
	if err != nil {
		return nil, err
	}

	var records []relation.Record
	for _, candidate := range candidates {
		s2Cell := s2.CellFromCellID(candidate.ID)
		for _, polyline := range polylines {
			if !polyline.IntersectsCell(s2Cell) {
				continue
			}
			records = append(records, relation.Record{
				Subject: relation.CellID(candidate),
				Object:  relation.FeatureID(feature.ID),
				Kind:    relation.Crosses,
				Level:   candidate.Level(),
			}.Normalized())
			break
		}
	}

	return records, nil
}

func (i *Integrator) integratePolygon(feature Feature, candidates []cell.Cell) ([]relation.Record, error) {
	polygon, err := feature.S2Polygon(i.config)
	if err != nil {
		return nil, err
	}

	// Cells of the interior covering lie entirely inside the feature, only the
	// boundary cells need the geometric classifier.
	interior, err := cell.InteriorCovering(polygon, i.config)
	if err != nil {
		return nil, err
	}
	interiorUnion := make(s2.CellUnion, 0, len(interior))
	for _, interiorCell := range interior {
		interiorUnion = append(interiorUnion, interiorCell.ID)
	}

	var records []relation.Record
	for _, candidate := range candidates {
		if interiorUnion.ContainsCellID(candidate.ID) {
			records = append(records, relation.Record{
				Subject: relation.CellID(candidate),
				Object:  relation.FeatureID(feature.ID),
				Kind:    relation.Within,
				Level:   candidate.Level(),
			})
			continue
		}

		kind, err := i.classifier.Classify(candidate.S2Polygon(), polygon)
		if err != nil {
			sigolo.Errorf("Classification of cell %d and feature '%s' failed, skipping this pair: %+v", uint64(candidate.ID), feature.ID, err)
			continue
		}
		if kind == relation.Disjoint {
			continue
		}
		records = append(records, relation.Record{
			Subject: relation.CellID(candidate),
			Object:  relation.FeatureID(feature.ID),
			Kind:    kind,
			Level:   candidate.Level(),
		}.Normalized())
	}

	return records, nil
}

// IntegrateAll processes the given features with the given number of parallel
// workers. Each worker owns a disjoint set of features and only reads shared
// state, so no locking is needed. Features with unsupported geometries are
// reported and skipped, any other error aborts the whole run: a partial
// relation set is not considered valid output.
func (i *Integrator) IntegrateAll(features []Feature, workers int) ([]relation.Record, error) {
	if workers <= 0 {
		workers = 1
	}

	recordsPerFeature := make([][]relation.Record, len(features))

	group := errgroup.Group{}
	group.SetLimit(workers)
	for featureIndex, feature := range features {
		featureIndex, feature := featureIndex, feature
		group.Go(func() error {
			candidates, err := i.CandidateCells(feature)
			if err == nil {
				recordsPerFeature[featureIndex], err = i.Integrate(feature, candidates)
			}

			var unsupportedGeometryError *UnsupportedGeometryError
			if errors.As(err, &unsupportedGeometryError) {
				sigolo.Warnf("Skip feature '%s': %s", feature.ID, unsupportedGeometryError.Message)
				recordsPerFeature[featureIndex] = nil
				return nil
			}
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var records []relation.Record
	for _, featureRecords := range recordsPerFeature {
		records = append(records, featureRecords...)
	}
	relation.SortRecords(records)
	return records, nil
}
