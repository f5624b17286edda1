package relation

// Kind is one of the closed set of topological relations between two regions
// on the sphere. The set follows the simple-features relation family: all
// kinds are mutually exclusive, Crosses only occurs for line geometries.
type Kind int

const (
	Equals Kind = iota
	Disjoint
	Touches
	Overlaps
	Covers
	CoveredBy
	Contains
	Within
	Crosses
)

var kindNames = map[Kind]string{
	Equals:    "equals",
	Disjoint:  "disjoint",
	Touches:   "touches",
	Overlaps:  "overlaps",
	Covers:    "covers",
	CoveredBy: "coveredBy",
	Contains:  "contains",
	Within:    "within",
	Crosses:   "crosses",
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return "unknown"
	}
	return name
}

// Inverse returns the kind describing the same pair with subject and object
// swapped. Symmetric kinds are their own inverse.
func (k Kind) Inverse() Kind {
	switch k {
	case Covers:
		return CoveredBy
	case CoveredBy:
		return Covers
	case Contains:
		return Within
	case Within:
		return Contains
	}
	return k
}

// Symmetric kinds are emitted once per unordered pair.
func (k Kind) Symmetric() bool {
	switch k {
	case Equals, Disjoint, Touches, Overlaps, Crosses:
		return true
	}
	return false
}

// InheritedUnderContainment determines whether the relation of a cell to some
// object carries over to all descendants of that cell. Only these kinds may be
// dropped by the hierarchy compression: a parent that is within (or covered
// by, or disjoint from) a region implies the same for each of its children. An
// overlapping or touching parent implies nothing for a specific child.
func (k Kind) InheritedUnderContainment() bool {
	switch k {
	case Within, CoveredBy, Disjoint:
		return true
	}
	return false
}
