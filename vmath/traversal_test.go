package vmath

import (
	"testing"
)

type cell struct{ X, Y int }

func collect(x1, y1, x2, y2 float64) []cell {
	var cells []cell
	Traverse(x1, y1, x2, y2, func(x, y int) bool {
		cells = append(cells, cell{x, y})
		return true
	})
	return cells
}

func TestTraverseSingleCell(t *testing.T) {
	diff(t, []cell{{2, 3}}, collect(2.1, 3.2, 2.9, 3.8))
}

func TestTraverseHorizontal(t *testing.T) {
	diff(t, []cell{{0, 0}, {1, 0}, {2, 0}, {3, 0}}, collect(0.5, 0.5, 3.5, 0.5))
}

func TestTraverseReverse(t *testing.T) {
	diff(t, []cell{{3, 1}, {2, 1}, {1, 1}}, collect(3.5, 1.5, 1.5, 1.5))
}

func TestTraverseSupercover(t *testing.T) {
	cells := collect(0.2, 0.1, 3.7, 2.9)

	first, last := cells[0], cells[len(cells)-1]
	diff(t, cell{0, 0}, first)
	diff(t, cell{3, 2}, last)

	// Every step moves to a 4- or 8-neighbour
	for i := 1; i < len(cells); i++ {
		dx := cells[i].X - cells[i-1].X
		dy := cells[i].Y - cells[i-1].Y
		if dx < -1 || dx > 1 || dy < -1 || dy > 1 || (dx == 0 && dy == 0) {
			t.Fatalf("non-adjacent step %v -> %v", cells[i-1], cells[i])
		}
	}
}

func TestTraverseStopsEarly(t *testing.T) {
	n := 0
	Traverse(0, 0, 50, 0, func(x, y int) bool {
		n++
		return n < 3
	})
	if n != 3 {
		t.Errorf("visited %d cells, want 3", n)
	}
}

func TestGridTraverserNegative(t *testing.T) {
	tr := NewGridTraverser(-0.5, -0.5, -2.5, -0.5)
	var cells []cell
	for tr.Next() {
		x, y := tr.Pos()
		cells = append(cells, cell{x, y})
	}
	diff(t, []cell{{-1, -1}, {-2, -1}, {-3, -1}}, cells)
}
