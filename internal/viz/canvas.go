package viz

import "strings"

// Braille patterns pack 2x4 dots per cell:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// Unicode offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille pixel canvas with a world-coordinate window. The
// pixel grid is (Width*2) x (Height*4) dots.
type Canvas struct {
	Width, Height          int
	grid                   [][]rune
	xmin, xmax, ymin, ymax float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		grid:   make([][]rune, h),
		xmin:   -1, xmax: 1, ymin: -1, ymax: 1,
	}
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// SetWindow maps world coordinates onto the canvas.
func (c *Canvas) SetWindow(xmin, xmax, ymin, ymax float64) {
	c.xmin, c.xmax, c.ymin, c.ymax = xmin, xmax, ymin, ymax
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
		}
	}
}

func (c *Canvas) project(x, y float64) (int, int) {
	px := int((x - c.xmin) / (c.xmax - c.xmin) * float64(c.Width*2))
	py := int((c.ymax - y) / (c.ymax - c.ymin) * float64(c.Height*4))
	return px, py
}

func (c *Canvas) set(px, py int) {
	if px < 0 || py < 0 {
		return
	}
	col, row := px/2, py/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= rune(pixelMap[py%4][px%2])
}

// Point plots one world-coordinate point.
func (c *Canvas) Point(x, y float64) {
	c.set(c.project(x, y))
}

// Line draws a world-coordinate segment with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 float64) {
	px0, py0 := c.project(x0, y0)
	px1, py1 := c.project(x1, y1)
	dx, dy := absInt(px1-px0), absInt(py1-py0)
	sx, sy := -1, -1
	if px0 < px1 {
		sx = 1
	}
	if py0 < py1 {
		sy = 1
	}
	e := dx - dy
	for {
		c.set(px0, py0)
		if px0 == px1 && py0 == py1 {
			return
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			px0 += sx
		}
		if e2 < dx {
			e += dx
			py0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
