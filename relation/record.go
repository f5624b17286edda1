package relation

import (
	"sort"
	"strconv"

	"github.com/golang/geo/s2"

	"s2cells/cell"
)

// ID identifies either a cell of the hierarchy or an external feature as
// subject or object of a relation record.
type ID struct {
	// CellID is set for cells and zero for external features.
	CellID s2.CellID

	// Feature holds the caller-supplied identifier of an external geometry.
	Feature string
}

func CellID(c cell.Cell) ID {
	return ID{CellID: c.ID}
}

func FeatureID(feature string) ID {
	return ID{Feature: feature}
}

func (i ID) IsCell() bool {
	return i.CellID != 0
}

func (i ID) String() string {
	if i.IsCell() {
		return strconv.FormatUint(uint64(i.CellID), 10)
	}
	return i.Feature
}

// Less orders cells numerically by their ID and before all external features,
// features among themselves lexicographically. This ordering is the emission
// order contract towards the output sink.
func (i ID) Less(other ID) bool {
	if i.IsCell() != other.IsCell() {
		return i.IsCell()
	}
	if i.IsCell() {
		return i.CellID < other.CellID
	}
	return i.Feature < other.Feature
}

// Record is one materialized relation fact. Symmetric kinds appear once per
// unordered pair (with the smaller ID as subject), inverse pairs appear in
// exactly one direction. The consumer derives the respective inverse facts
// itself.
type Record struct {
	Subject ID
	Object  ID
	Kind    Kind

	// Level is the subdivision level at which the record was asserted.
	Level int
}

// Normalized returns the record in its canonical direction: symmetric kinds
// get the smaller ID as subject, the inverse flips accordingly.
func (r Record) Normalized() Record {
	if !r.Kind.Symmetric() || r.Subject.Less(r.Object) {
		return r
	}
	return Record{
		Subject: r.Object,
		Object:  r.Subject,
		Kind:    r.Kind.Inverse(),
		Level:   r.Level,
	}
}

// SortRecords brings records into the deterministic emission order: ascending
// subject, then object, then kind. Repeated runs over identical inputs must
// serialize byte-identically.
func SortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Subject != b.Subject {
			return a.Subject.Less(b.Subject)
		}
		if a.Object != b.Object {
			return a.Object.Less(b.Object)
		}
		return a.Kind < b.Kind
	})
}
