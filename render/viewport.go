package render

import (
	"math"

	"github.com/lixenwraith/billiard/parameter"
	"github.com/lixenwraith/billiard/physics"
	"github.com/lixenwraith/billiard/vmath"
)

// Viewport maps arena units onto terminal cells with one uniform scale
// Cells are parameter.CellAspect times taller than wide, the arena keeps its shape and is centred
type Viewport struct {
	Arena physics.Arena

	OffsetX, OffsetY int // First cell of the arena
	Cols, Rows       int // Cells covered by the arena

	UnitsPerCol float64
	UnitsPerRow float64
}

// NewViewport fits arena into a screen, leaving parameter.HUDRows free at the bottom
func NewViewport(screenW, screenH int, arena physics.Arena) Viewport {
	cols := max(screenW, 1)
	rows := max(screenH-parameter.HUDRows, 1)

	upc := math.Max(arena.Width/float64(cols), arena.Height/(float64(rows)*parameter.CellAspect))
	upr := upc * parameter.CellAspect

	usedCols := min(int(math.Ceil(arena.Width/upc)), cols)
	usedRows := min(int(math.Ceil(arena.Height/upr)), rows)

	return Viewport{
		Arena:       arena,
		OffsetX:     (cols - usedCols) / 2,
		OffsetY:     (rows - usedRows) / 2,
		Cols:        usedCols,
		Rows:        usedRows,
		UnitsPerCol: upc,
		UnitsPerRow: upr,
	}
}

// CellCenter returns the arena point under the centre of screen cell (x, y)
func (v Viewport) CellCenter(x, y int) vmath.Vec2 {
	return vmath.V2(
		(float64(x-v.OffsetX)+0.5)*v.UnitsPerCol,
		(float64(y-v.OffsetY)+0.5)*v.UnitsPerRow,
	)
}

// CellToArena maps a screen cell to the arena; false when the cell is outside it
func (v Viewport) CellToArena(x, y int) (vmath.Vec2, bool) {
	if x < v.OffsetX || x >= v.OffsetX+v.Cols || y < v.OffsetY || y >= v.OffsetY+v.Rows {
		return vmath.Vec2{}, false
	}
	p := v.CellCenter(x, y)
	p.X = math.Min(p.X, v.Arena.Width)
	p.Y = math.Min(p.Y, v.Arena.Height)
	return p, true
}

// ArenaToCell returns the screen cell containing arena point p
func (v Viewport) ArenaToCell(p vmath.Vec2) (int, int) {
	return v.OffsetX + int(math.Floor(p.X/v.UnitsPerCol)), v.OffsetY + int(math.Floor(p.Y/v.UnitsPerRow))
}

// Contains reports whether screen cell (x, y) is inside the arena area
func (v Viewport) Contains(x, y int) bool {
	return x >= v.OffsetX && x < v.OffsetX+v.Cols && y >= v.OffsetY && y < v.OffsetY+v.Rows
}
