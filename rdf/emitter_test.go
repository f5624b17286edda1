package rdf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/s2"

	"s2cells/cell"
	"s2cells/relation"
	"s2cells/util"
)

func TestLevelWriter_emit(t *testing.T) {
	outputPath := t.TempDir()
	writer := NewLevelWriter(outputPath, FormatNTriples)

	cells, err := cell.GenerateLevel(1)
	util.AssertNil(t, err)
	batch := cells[:4]

	records := []relation.Record{{
		Subject: relation.CellID(batch[0]),
		Object:  relation.CellID(batch[1]),
		Kind:    relation.Touches,
		Level:   1,
	}}

	util.AssertNil(t, writer.Emit(1, batch, records))

	filename := filepath.Join(outputPath, "level_1", "288230376151711744.nt")
	content, err := os.ReadFile(filename)
	util.AssertNil(t, err)

	output := string(content)
	for _, c := range batch {
		util.AssertTrue(t, strings.Contains(output, "<"+CellIRI(c.ID)+">"))
	}
	util.AssertTrue(t, strings.Contains(output, "<"+OntologyNamespace+"sfTouches>"))

	// ExpandInverses defaults to on, the symmetric relation appears twice.
	util.AssertEqual(t, 2, strings.Count(output, "sfTouches"))
}

func TestLevelWriter_emitSkipsEmptyBatches(t *testing.T) {
	outputPath := t.TempDir()
	writer := NewLevelWriter(outputPath, FormatTurtle)

	util.AssertNil(t, writer.Emit(1, nil, nil))

	_, err := os.Stat(filepath.Join(outputPath, "level_1"))
	util.AssertTrue(t, os.IsNotExist(err))
}

func TestWriteRecords(t *testing.T) {
	record := relation.Record{
		Subject: relation.FeatureID("osm.way.42"),
		Object:  relation.CellID(cell.FromID(s2.CellIDFromFace(0).ChildBeginAtLevel(1))),
		Kind:    relation.Within,
		Level:   1,
	}

	builder := strings.Builder{}
	util.AssertNil(t, WriteRecords([]relation.Record{record}, FormatTurtle, false, &builder))

	output := builder.String()
	util.AssertTrue(t, strings.Contains(output, "kwgr:osm.way.42 kwg-ont:sfWithin kwgr:s2.level1.288230376151711744 ."))
	util.AssertFalse(t, strings.Contains(output, "sfContains"))
}

func TestWriteRecordsFile(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "out")
	record := relation.Record{
		Subject: relation.FeatureID("osm.way.42"),
		Object:  relation.CellID(cell.FromID(s2.CellIDFromFace(0).ChildBeginAtLevel(1))),
		Kind:    relation.Within,
		Level:   1,
	}

	util.AssertNil(t, WriteRecordsFile([]relation.Record{record}, FormatNTriples, true, outputPath, "result"))

	content, err := os.ReadFile(filepath.Join(outputPath, "result.nt"))
	util.AssertNil(t, err)
	util.AssertTrue(t, strings.Contains(string(content), "sfContains"))
}
