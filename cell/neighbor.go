package cell

import (
	"sort"

	"github.com/golang/geo/s2"
)

// Neighbors returns all cells at the same level that share an edge or a vertex
// with the given cell, in ascending ID order. The lookup crosses the
// boundaries of the six top-level faces correctly, since the underlying
// hierarchy knows the face adjacency. The result size is a small constant
// (usually 8, fewer at face corners).
func Neighbors(c Cell) []Cell {
	ids := c.ID.AllNeighbors(c.Level())
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})

	neighbors := make([]Cell, 0, len(ids))
	for _, id := range ids {
		neighbors = append(neighbors, Cell{ID: id})
	}
	return neighbors
}

// Set is a lookup structure over a collection of cells. It avoids comparing
// every cell against every other cell during relation classification.
type Set map[s2.CellID]struct{}

func NewSet(cells []Cell) Set {
	set := make(Set, len(cells))
	for _, c := range cells {
		set[c.ID] = struct{}{}
	}
	return set
}

func (s Set) Contains(c Cell) bool {
	_, ok := s[c.ID]
	return ok
}

// Candidates returns the neighbors of the given cell that are part of the
// given same-level cell set. These are the only cells that can possibly have a
// non-disjoint relation to the cell, so classification stays linear in the
// total cell count.
func Candidates(c Cell, sameLevelCells Set) []Cell {
	var candidates []Cell
	for _, neighbor := range Neighbors(c) {
		if sameLevelCells.Contains(neighbor) {
			candidates = append(candidates, neighbor)
		}
	}
	return candidates
}
