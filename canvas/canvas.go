// Package canvas provides a rune-matrix drawing surface for the
// terminal preview. Segments are rasterised with Bresenham's line
// algorithm and drawn with box-drawing runes chosen from the segment
// direction, so octolinear paths read as clean corridors.
package canvas

// Cell is one character cell. Color carries the owning line's hex
// color through to whatever blits the canvas; an empty rune means the
// cell is untouched.
type Cell struct {
	Rune  rune
	Color string
}

// Canvas is a fixed-size grid of cells with (0,0) at the top left.
type Canvas struct {
	width  int
	height int
	cells  []Cell
}

// New creates an empty canvas. Non-positive dimensions are clamped to
// zero.
func New(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Canvas{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (int, int) { return c.width, c.height }

// Set writes one cell. Out-of-bounds writes are dropped, which lets
// callers draw shapes that straddle the viewport edge without
// clipping them first.
func (c *Canvas) Set(x, y int, r rune, color string) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y*c.width+x] = Cell{Rune: r, Color: color}
}

// At returns the cell at (x, y), or the zero cell when out of bounds.
func (c *Canvas) At(x, y int) Cell {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Cell{}
	}
	return c.cells[y*c.width+x]
}

// DrawSegment rasterises a straight run between two cells, picking
// the rune from the segment's direction.
func (c *Canvas) DrawSegment(x1, y1, x2, y2 int, color string) {
	ch := SegmentRune(x2-x1, y2-y1)

	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy

	x, y := x1, y1
	for {
		c.Set(x, y, ch, color)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// DrawText writes a string left to right starting at (x, y).
func (c *Canvas) DrawText(x, y int, text, color string) {
	for i, r := range text {
		c.Set(x+i, y, r, color)
	}
}

// Each visits every non-empty cell.
func (c *Canvas) Each(fn func(x, y int, cell Cell)) {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			cell := c.cells[y*c.width+x]
			if cell.Rune != 0 {
				fn(x, y, cell)
			}
		}
	}
}

// SegmentRune picks the box-drawing rune for a cell-space direction.
func SegmentRune(dx, dy int) rune {
	switch {
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
