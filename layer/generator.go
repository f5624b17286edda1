// Package layer produces the relation records for a full subdivision level of
// the cell hierarchy: each cell touches its grid neighbors and is covered by
// (or lies within) its parent cell.
package layer

import (
	"time"

	"github.com/hauke96/sigolo/v2"
	"golang.org/x/sync/errgroup"

	"s2cells/cell"
	"s2cells/relation"
)

// Emitter consumes batches of generated cells together with their relation
// records. Batches arrive from parallel workers, implementations must be safe
// for concurrent use. Workers never share a batch, so per-batch outputs (e.g.
// one file per batch) need no coordination.
type Emitter interface {
	Emit(level int, cells []cell.Cell, records []relation.Record) error
}

type Options struct {
	Level int

	// TargetParentLevel is the coarser level the containment records point to.
	// A negative value means the immediate parent level.
	TargetParentLevel int

	// BatchSize is the number of cells per emitted batch. Larger batches mean
	// fewer but larger output files.
	BatchSize int

	Workers int
}

type Generator struct {
	config     cell.Config
	classifier *relation.Classifier
}

func NewGenerator(config cell.Config) *Generator {
	return &Generator{
		config:     config,
		classifier: relation.NewClassifier(config),
	}
}

// RecordsForCell returns the relation records asserted from the view of a
// single cell: one "touches" per grid neighbor (only for the smaller ID of
// each unordered pair, the other direction is implied) and the containment
// relation to the parent at the target level. Immediate children always reach
// the parent boundary and are therefore covered by it, descendants further
// down may lie strictly within. A target parent level that is not coarser
// than the cell itself is an InvalidLevelError, there is no ancestor to point
// the containment record to.
func (g *Generator) RecordsForCell(c cell.Cell, targetParentLevel int) ([]relation.Record, error) {
	var records []relation.Record

	for _, neighbor := range cell.Neighbors(c) {
		if c.ID >= neighbor.ID {
			continue
		}
		records = append(records, relation.Record{
			Subject: relation.CellID(c),
			Object:  relation.CellID(neighbor),
			Kind:    relation.Touches,
			Level:   c.Level(),
		})
	}

	if c.Level() > 0 {
		parentLevel := c.Level() - 1
		if targetParentLevel >= 0 {
			parentLevel = targetParentLevel
		}
		if parentLevel >= c.Level() {
			return nil, cell.InvalidLevelErrorWithMessage(parentLevel, "target parent level must be coarser than the cell level")
		}
		parent := cell.FromID(c.ID.Parent(parentLevel))
		records = append(records, relation.Record{
			Subject: relation.CellID(c),
			Object:  relation.CellID(parent),
			Kind:    g.classifier.ClassifyCells(c, parent),
			Level:   c.Level(),
		})
	}

	return records, nil
}

// Run generates all cells of the requested level and hands them to the
// emitter in batches. Cell enumeration is sequential and cheap, the record
// computation and emission happen on the worker pool. Any emitter or
// generation error aborts the run, partial output is not meaningful.
func (g *Generator) Run(options Options, emitter Emitter) error {
	if err := cell.ValidateLevel(options.Level); err != nil {
		return err
	}
	if options.TargetParentLevel >= options.Level && options.Level > 0 && options.TargetParentLevel >= 0 {
		return cell.InvalidLevelErrorWithMessage(options.TargetParentLevel, "target parent level must be coarser than the generated level")
	}
	workers := options.Workers
	if workers <= 0 {
		workers = 1
	}

	sigolo.Infof("Start generating cells at level %d", options.Level)
	startTime := time.Now()

	cellCount := 0
	group := errgroup.Group{}
	group.SetLimit(workers)

	err := cell.GenerateLevelBatches(options.Level, options.BatchSize, func(batch []cell.Cell) error {
		cells := make([]cell.Cell, len(batch))
		copy(cells, batch)
		cellCount += len(cells)

		group.Go(func() error {
			var records []relation.Record
			for _, c := range cells {
				cellRecords, err := g.RecordsForCell(c, options.TargetParentLevel)
				if err != nil {
					return err
				}
				records = append(records, cellRecords...)
			}
			relation.SortRecords(records)
			return emitter.Emit(options.Level, cells, records)
		})
		return nil
	})
	if err != nil {
		// Drain the already scheduled workers before reporting.
		_ = group.Wait()
		return err
	}

	err = group.Wait()
	if err != nil {
		return err
	}

	sigolo.Infof("Finished %d cells at level %d in %s", cellCount, options.Level, time.Since(startTime))
	return nil
}

// EmitCells processes an explicit cell set, e.g. the covering of some input
// geometries, instead of a full level. The cells may stem from different
// levels when the covering was created with MinLevel < MaxLevel. Output is
// grouped under the level given in the options.
func (g *Generator) EmitCells(cells []cell.Cell, options Options, emitter Emitter) error {
	batchSize := options.BatchSize
	if batchSize <= 0 {
		batchSize = 100_000
	}
	workers := options.Workers
	if workers <= 0 {
		workers = 1
	}

	sigolo.Infof("Start emitting %d covering cells", len(cells))
	startTime := time.Now()

	group := errgroup.Group{}
	group.SetLimit(workers)

	for start := 0; start < len(cells); start += batchSize {
		end := start + batchSize
		if end > len(cells) {
			end = len(cells)
		}
		batch := cells[start:end]

		group.Go(func() error {
			var records []relation.Record
			for _, c := range batch {
				cellRecords, err := g.RecordsForCell(c, options.TargetParentLevel)
				if err != nil {
					return err
				}
				records = append(records, cellRecords...)
			}
			relation.SortRecords(records)
			return emitter.Emit(options.Level, batch, records)
		})
	}

	err := group.Wait()
	if err != nil {
		return err
	}

	sigolo.Infof("Finished %d covering cells in %s", len(cells), time.Since(startTime))
	return nil
}
