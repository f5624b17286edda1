package cell

import (
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Cell is one node of the hierarchical grid. Only the ID is stored, everything
// else (level, boundary, parent, children) is derived from it. This keeps
// cells cheap to copy around and allows lock-free parallel access, since there
// is no object graph to share.
type Cell struct {
	ID s2.CellID
}

func FromID(id s2.CellID) Cell {
	return Cell{ID: id}
}

func FromToken(token string) (Cell, error) {
	id := s2.CellIDFromToken(token)
	if !id.IsValid() {
		return Cell{}, errors.Errorf("Invalid cell token '%s'", token)
	}
	return Cell{ID: id}, nil
}

func (c Cell) Level() int {
	return c.ID.Level()
}

// Parent returns the cell one level up. The second return value is false for
// the six top-level face cells, which have no parent.
func (c Cell) Parent() (Cell, bool) {
	if c.Level() == 0 {
		return Cell{}, false
	}
	return Cell{ID: c.ID.Parent(c.Level() - 1)}, true
}

// ParentAtLevel returns the ancestor at the given coarser level.
func (c Cell) ParentAtLevel(level int) (Cell, error) {
	if err := ValidateLevel(level); err != nil {
		return Cell{}, err
	}
	if level > c.Level() {
		return Cell{}, InvalidLevelErrorWithMessage(level, "parent level must not be finer than the cell itself")
	}
	return Cell{ID: c.ID.Parent(level)}, nil
}

// Children returns the four direct child cells, or nil for leaf cells.
func (c Cell) Children() []Cell {
	if c.Level() == MaxSupportedLevel {
		return nil
	}
	childIds := c.ID.Children()
	children := make([]Cell, 0, len(childIds))
	for _, childId := range childIds {
		children = append(children, Cell{ID: childId})
	}
	return children
}

// Contains determines whether the other cell is equal to this cell or one of
// its descendants.
func (c Cell) Contains(other Cell) bool {
	return c.ID.Contains(other.ID)
}

// S2Polygon returns the spherical quadrilateral spanned by the four cell
// vertices.
func (c Cell) S2Polygon() *s2.Polygon {
	return s2.PolygonFromCell(s2.CellFromCellID(c.ID))
}

// VertexPolygon returns the cell boundary as lon/lat polygon. The ring is
// closed, i.e. the first point appears again at the end.
func (c Cell) VertexPolygon() orb.Polygon {
	s2Cell := s2.CellFromCellID(c.ID)

	ring := make(orb.Ring, 0, 5)
	for i := 0; i < 4; i++ {
		latLng := s2.LatLngFromPoint(s2Cell.Vertex(i))
		ring = append(ring, orb.Point{latLng.Lng.Degrees(), latLng.Lat.Degrees()})
	}
	ring = append(ring, ring[0])

	return orb.Polygon{ring}
}

// ApproxAreaSquareMeters returns the approximate cell area on the earth
// surface.
func (c Cell) ApproxAreaSquareMeters() float64 {
	return s2.CellFromCellID(c.ID).ApproxArea() * EarthRadiusMeters * EarthRadiusMeters
}

func (c Cell) String() string {
	return c.ID.String()
}
