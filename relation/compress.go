package relation

import "s2cells/cell"

// Compress removes records that are implied by a record of an ancestor cell.
// A record of cell C is redundant when an ancestor of C has a record with the
// same object and the same kind and that kind is inherited under containment:
// the consumer re-derives the dropped fact by walking down the hierarchy.
// Records with non-inheritable kinds pass through unchanged, as do records
// whose subject is not a cell. The relative order of the kept records is
// preserved.
func Compress(records []Record) []Record {
	type fact struct {
		subject ID
		object  ID
		kind    Kind
	}

	asserted := make(map[fact]struct{}, len(records))
	for _, record := range records {
		if record.Subject.IsCell() && record.Kind.InheritedUnderContainment() {
			asserted[fact{record.Subject, record.Object, record.Kind}] = struct{}{}
		}
	}

	compressed := make([]Record, 0, len(records))
	for _, record := range records {
		if !record.Subject.IsCell() || !record.Kind.InheritedUnderContainment() {
			compressed = append(compressed, record)
			continue
		}

		redundant := false
		for level := record.Subject.CellID.Level() - 1; level >= 0; level-- {
			ancestor := CellID(cellAtLevel(record.Subject, level))
			if _, ok := asserted[fact{ancestor, record.Object, record.Kind}]; ok {
				redundant = true
				break
			}
		}

		if !redundant {
			compressed = append(compressed, record)
		}
	}

	return compressed
}

func cellAtLevel(id ID, level int) cell.Cell {
	return cell.FromID(id.CellID.Parent(level))
}
