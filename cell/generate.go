package cell

import (
	"sort"

	"github.com/golang/geo/s2"
)

// GenerateLevel enumerates the full covering of the sphere at the given level
// in ascending ID order. Level 0 yields exactly the six top-level face cells.
func GenerateLevel(level int) ([]Cell, error) {
	if err := ValidateLevel(level); err != nil {
		return nil, err
	}

	// 6 * 4^level cells per level
	capacity := 6 * (1 << (2 * level))
	if capacity > saturatedMaxCells {
		capacity = saturatedMaxCells
	}

	cells := make([]Cell, 0, capacity)
	err := GenerateLevelBatches(level, 0, func(batch []Cell) error {
		cells = append(cells, batch...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return cells, nil
}

// GenerateLevelBatches streams the full covering of the sphere at the given
// level in batches of at most batchSize cells. This avoids materializing the
// whole level at once, which is not feasible for fine levels. The callback
// receives batches in ascending ID order and must not retain the slice.
func GenerateLevelBatches(level int, batchSize int, handle func(batch []Cell) error) error {
	if err := ValidateLevel(level); err != nil {
		return err
	}
	if batchSize <= 0 {
		batchSize = 100_000
	}

	begin := s2.CellIDFromFace(0).ChildBeginAtLevel(level)
	end := s2.CellIDFromFace(5).ChildEndAtLevel(level)

	batch := make([]Cell, 0, batchSize)
	for id := begin; id != end; id = id.Next() {
		batch = append(batch, Cell{ID: id})
		if len(batch) == batchSize {
			err := handle(batch)
			if err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	if len(batch) == 0 {
		return nil
	}
	return handle(batch)
}

// GenerateCovering enumerates the cells at the given level whose boundary
// intersects the given region. The result is a tight covering (up to the
// approximation of the underlying coverer, which only errs towards including
// too many cells, never too few) in ascending ID order.
func GenerateCovering(level int, region s2.Region) ([]Cell, error) {
	if err := ValidateLevel(level); err != nil {
		return nil, err
	}

	coverer := &s2.RegionCoverer{
		MinLevel: level,
		MaxLevel: level,
		MaxCells: saturatedMaxCells,
	}
	return cellsFromUnion(coverer.Covering(region)), nil
}

// Coverings with too small a cell budget degrade to coarser cells, which would
// violate the fixed-level contract. This budget is large enough for all
// practically requested regions.
const saturatedMaxCells = 1 << 20

// Covering returns a covering of the region with cells between the configured
// min. and max. level. With MinLevel 0 (the compressed mode), homogeneous
// regions collapse into few coarse cells.
func Covering(region s2.Region, config Config) ([]Cell, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	coverer := &s2.RegionCoverer{
		MinLevel: config.MinLevel,
		MaxLevel: config.MaxLevel,
		MaxCells: saturatedMaxCells,
	}
	return cellsFromUnion(coverer.Covering(region)), nil
}

// InteriorCovering returns cells that lie entirely inside the region. The cell
// budget is increased until the covering saturates, i.e. until a larger budget
// does not produce more cells.
func InteriorCovering(region s2.Region, config Config) ([]Cell, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var union s2.CellUnion
	for exponent := 4; exponent <= 8; exponent++ {
		coverer := &s2.RegionCoverer{
			MinLevel: config.MinLevel,
			MaxLevel: config.MaxLevel,
			MaxCells: pow10(exponent),
		}
		union = coverer.InteriorCovering(region)
		if len(union) < pow10(exponent-1) {
			break
		}
	}

	return cellsFromUnion(union), nil
}

func pow10(exponent int) int {
	result := 1
	for i := 0; i < exponent; i++ {
		result *= 10
	}
	return result
}

func cellsFromUnion(union s2.CellUnion) []Cell {
	cells := make([]Cell, 0, len(union))
	for _, id := range union {
		cells = append(cells, Cell{ID: id})
	}
	sort.Slice(cells, func(i, j int) bool {
		return cells[i].ID < cells[j].ID
	})
	return cells
}
