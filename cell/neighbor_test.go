package cell

import (
	"testing"

	"github.com/golang/geo/s2"

	"s2cells/util"
)

func TestNeighbors_faceCells(t *testing.T) {
	// Each cube face shares an edge with four other faces, only the opposite
	// face is not adjacent.
	face := FromID(s2.CellIDFromFace(0))

	neighbors := Neighbors(face)

	util.AssertEqual(t, 4, len(neighbors))
	for _, neighbor := range neighbors {
		util.AssertEqual(t, 0, neighbor.Level())
	}
}

func TestNeighbors_sameLevelAndSorted(t *testing.T) {
	cell := FromID(s2.CellIDFromLatLng(s2.LatLngFromDegrees(53.55, 9.99)).Parent(5))

	neighbors := Neighbors(cell)

	// Edge and vertex neighbors, i.e. the full ring around the cell.
	util.AssertEqual(t, 8, len(neighbors))
	for i, neighbor := range neighbors {
		util.AssertEqual(t, 5, neighbor.Level())
		if i > 0 {
			util.AssertTrue(t, neighbors[i-1].ID < neighbor.ID)
		}
	}
}

func TestCandidates_filtersByPool(t *testing.T) {
	cell := FromID(s2.CellIDFromLatLng(s2.LatLngFromDegrees(53.55, 9.99)).Parent(5))
	neighbors := Neighbors(cell)

	// Only half of the neighbors are part of the pool.
	pool := NewSet(neighbors[:4])
	pool[cell.ID] = struct{}{}

	candidates := Candidates(cell, pool)

	util.AssertEqual(t, 4, len(candidates))
	for i, candidate := range candidates {
		util.AssertEqual(t, neighbors[i].ID, candidate.ID)
	}
}

func TestCandidates_crossesFaceBoundaries(t *testing.T) {
	level := 3
	allCells, err := GenerateLevel(level)
	util.AssertNil(t, err)
	pool := NewSet(allCells)

	// A cell in the corner of face 0 must still see its full neighbor ring,
	// even though some neighbors lie on other faces.
	corner := FromID(s2.CellIDFromFace(0).ChildBeginAtLevel(level))

	candidates := Candidates(corner, pool)

	util.AssertTrue(t, len(candidates) >= 7)
	foreignFace := false
	for _, candidate := range candidates {
		if candidate.ID.Face() != 0 {
			foreignFace = true
		}
	}
	util.AssertTrue(t, foreignFace)
}
