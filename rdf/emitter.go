package rdf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"

	"s2cells/cell"
	"s2cells/relation"
)

// LevelWriter writes generated cell batches as RDF files below the output
// folder, one file per batch named after the first cell of the batch:
// <output>/level_<L>/<firstCellID><ext>. Batches never overlap, so concurrent
// Emit calls write distinct files and need no locking.
type LevelWriter struct {
	OutputPath     string
	Format         Format
	ExpandInverses bool
}

func NewLevelWriter(outputPath string, format Format) *LevelWriter {
	return &LevelWriter{
		OutputPath:     outputPath,
		Format:         format,
		ExpandInverses: true,
	}
}

func (w *LevelWriter) Emit(level int, cells []cell.Cell, records []relation.Record) error {
	if len(cells) == 0 {
		return nil
	}

	triples := make([]Triple, 0, len(cells)*10+len(records)*2)
	for _, c := range cells {
		triples = append(triples, CellTriples(c)...)
	}
	var err error
	triples, err = appendRecordTriples(triples, records, w.ExpandInverses)
	if err != nil {
		return err
	}

	folder := filepath.Join(w.OutputPath, fmt.Sprintf("level_%d", level))
	err = os.MkdirAll(folder, 0755)
	if err != nil {
		return errors.Wrapf(err, "Unable to create output folder %s", folder)
	}

	filename := filepath.Join(folder, fmt.Sprintf("%d%s", uint64(cells[0].ID), w.Format.Extension()))
	return writeTripleFile(triples, filename, w.Format)
}

// WriteRecords serializes an already assembled record set (e.g. an
// integration result) to the given writer, without any per-cell facts.
func WriteRecords(records []relation.Record, format Format, expandInverses bool, out io.Writer) error {
	triples, err := appendRecordTriples(nil, records, expandInverses)
	if err != nil {
		return err
	}
	return NewWriter(format).Write(triples, out)
}

// WriteRecordsFile writes an integration result below the output folder.
func WriteRecordsFile(records []relation.Record, format Format, expandInverses bool, outputPath string, name string) error {
	err := os.MkdirAll(outputPath, 0755)
	if err != nil {
		return errors.Wrapf(err, "Unable to create output folder %s", outputPath)
	}

	triples, err := appendRecordTriples(nil, records, expandInverses)
	if err != nil {
		return err
	}
	return writeTripleFile(triples, filepath.Join(outputPath, name+format.Extension()), format)
}

func appendRecordTriples(triples []Triple, records []relation.Record, expandInverses bool) ([]Triple, error) {
	for _, record := range records {
		recordTriples, err := RecordTriples(record, expandInverses)
		if err != nil {
			return nil, err
		}
		triples = append(triples, recordTriples...)
	}
	return triples, nil
}

func writeTripleFile(triples []Triple, filename string, format Format) error {
	startTime := time.Now()

	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "Unable to create output file %s", filename)
	}

	err = NewWriter(format).Write(triples, file)
	if err != nil {
		_ = file.Close()
		return errors.Wrapf(err, "Unable to write triples to %s", filename)
	}

	err = file.Close()
	if err != nil {
		return errors.Wrapf(err, "Unable to close file handle for %s", filename)
	}

	sigolo.Debugf("Wrote %d triples to %s in %s", len(triples), filename, time.Since(startTime))
	return nil
}
