// Package systems provides the entity, interaction, title core and Boss systems.
package systems

import "math"

// maxGridAxis bounds the cell count per axis. Larger arenas get larger cells.
const maxGridAxis = 512

// SpatialGrid buckets roster slots by position for neighbor lookups.
// The arena is bounded, so positions outside it fall into the edge cells.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	width    float64
	height   float64
	cells    [][]int // flat grid of slot lists
}

// NewSpatialGrid creates a grid covering the given arena size.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	g := &SpatialGrid{}
	g.Reset(width, height, cellSize)
	return g
}

// Reset resizes the grid if needed and removes all slots.
func (g *SpatialGrid) Reset(width, height, cellSize float64) {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		cellSize = 1
	}
	if !(width >= 0) || math.IsInf(width, 0) {
		width = 0
	}
	if !(height >= 0) || math.IsInf(height, 0) {
		height = 0
	}
	if span := max(width, height); span/cellSize >= maxGridAxis {
		cellSize = span / (maxGridAxis - 1)
	}
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	if cols*rows != len(g.cells) {
		g.cells = make([][]int, cols*rows)
		for i := range g.cells {
			g.cells[i] = make([]int, 0, 4)
		}
	} else {
		g.Clear()
	}
	g.cellSize = cellSize
	g.cols = cols
	g.rows = rows
	g.width = width
	g.height = height
}

// Clear removes all slots from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds a slot at the given position.
func (g *SpatialGrid) Insert(slot int, x, y float64) {
	idx := g.cellIndex(x, y)
	g.cells[idx] = append(g.cells[idx], slot)
}

// QueryInto appends every slot whose cell overlaps the square of half-size
// radius around (x, y). Callers apply their own distance test.
func (g *SpatialGrid) QueryInto(dst []int, x, y, radius float64) []int {
	minCol, minRow := g.cellCoords(x-radius, y-radius)
	maxCol, maxRow := g.cellCoords(x+radius, y+radius)

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			dst = append(dst, g.cells[row*g.cols+col]...)
		}
	}
	return dst
}

// cellCoords returns the clamped cell column and row for a position.
func (g *SpatialGrid) cellCoords(x, y float64) (int, int) {
	col := int(x / g.cellSize)
	row := int(y / g.cellSize)

	// Clamp to valid range
	if x < 0 || col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if y < 0 || row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

// cellIndex returns the flat index for a position.
func (g *SpatialGrid) cellIndex(x, y float64) int {
	col, row := g.cellCoords(x, y)
	return row*g.cols + col
}
