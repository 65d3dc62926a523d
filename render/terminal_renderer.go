package render

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/billiard/engine"
	"github.com/lixenwraith/billiard/parameter"
	"github.com/lixenwraith/billiard/vmath"
)

// TerminalRenderer draws frames onto a tcell screen
// Render runs on the loop goroutine; CellToArena may be called from any goroutine
type TerminalRenderer struct {
	screen  tcell.Screen
	colors  *palette
	width   int
	height  int
	current atomic.Pointer[Viewport]

	tableStyle  tcell.Style
	marginStyle tcell.Style
	hudStyle    tcell.Style
	panelStyle  tcell.Style
}

// NewTerminalRenderer creates a renderer for an initialized screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{
		screen:      screen,
		colors:      newPalette(),
		tableStyle:  tcell.StyleDefault.Background(ResolveColor(parameter.TableColor)),
		marginStyle: tcell.StyleDefault.Background(ResolveColor(parameter.MarginColor)),
		hudStyle: tcell.StyleDefault.
			Foreground(ResolveColor(parameter.HUDForeground)).
			Background(ResolveColor(parameter.HUDBackground)),
		panelStyle: tcell.StyleDefault.
			Foreground(ResolveColor(parameter.PanelForeground)).
			Background(ResolveColor(parameter.PanelBackground)),
	}
}

// Viewport returns the mapping used by the last frame; false before the first frame
func (r *TerminalRenderer) Viewport() (Viewport, bool) {
	v := r.current.Load()
	if v == nil {
		return Viewport{}, false
	}
	return *v, true
}

// CellToArena converts a mouse position using the last rendered viewport
func (r *TerminalRenderer) CellToArena(x, y int) (vmath.Vec2, bool) {
	v := r.current.Load()
	if v == nil {
		return vmath.Vec2{}, false
	}
	return v.CellToArena(x, y)
}

// Render implements engine.Renderer
func (r *TerminalRenderer) Render(f *engine.Frame) {
	w, h := r.screen.Size()
	vp := r.current.Load()
	if vp == nil || w != r.width || h != r.height || vp.Arena != f.Arena {
		nv := NewViewport(w, h, f.Arena)
		r.current.Store(&nv)
		vp = &nv
		r.width, r.height = w, h
	}

	r.screen.Fill(' ', r.marginStyle)
	r.drawTable(vp)
	for i := range f.Balls {
		r.drawBall(vp, &f.Balls[i])
	}
	if f.PaletteOpen && f.HasSelected {
		r.drawPalette(vp, f)
	}
	r.drawHUD(f)
	r.screen.Show()
}

func (r *TerminalRenderer) drawTable(vp *Viewport) {
	for y := vp.OffsetY; y < vp.OffsetY+vp.Rows; y++ {
		for x := vp.OffsetX; x < vp.OffsetX+vp.Cols; x++ {
			r.screen.SetContent(x, y, ' ', nil, r.tableStyle)
		}
	}
}

// drawBall fills every cell whose centre lies inside the disk
// A ball smaller than a cell still marks the cell holding its centre
func (r *TerminalRenderer) drawBall(vp *Viewport, b *engine.BallView) {
	x0, y0 := vp.ArenaToCell(vmath.V2(b.Pos.X-b.Radius, b.Pos.Y-b.Radius))
	x1, y1 := vp.ArenaToCell(vmath.V2(b.Pos.X+b.Radius, b.Pos.Y+b.Radius))

	drawn := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !vp.Contains(x, y) {
				continue
			}
			d := vmath.V2Dist(vp.CellCenter(x, y), b.Pos)
			if d > b.Radius {
				continue
			}
			style := r.tableStyle.Foreground(r.colors.shade(b.Color, d/b.Radius))
			r.screen.SetContent(x, y, parameter.BallGlyph, nil, style)
			drawn = true
		}
	}

	if !drawn {
		x, y := vp.ArenaToCell(b.Pos)
		if vp.Contains(x, y) {
			r.screen.SetContent(x, y, parameter.BallGlyph, nil, r.tableStyle.Foreground(r.colors.shade(b.Color, 0)))
		}
	}
}

// drawPalette shows the color menu in the top-left corner of the table
func (r *TerminalRenderer) drawPalette(vp *Viewport, f *engine.Frame) {
	lines := make([]string, 0, len(f.Palette)+2)
	lines = append(lines, fmt.Sprintf(" Ball %d color ", f.Selected))
	for i, name := range f.Palette {
		lines = append(lines, fmt.Sprintf(" %d %c %s ", i+1, parameter.SwatchGlyph, name))
	}
	lines = append(lines, " Esc close ")

	width := 0
	for _, l := range lines {
		width = max(width, runewidth.StringWidth(l))
	}

	x0, y0 := vp.OffsetX+1, vp.OffsetY+1
	for row, line := range lines {
		y := y0 + row
		if y >= r.height-parameter.HUDRows {
			break
		}
		padded := runewidth.FillRight(line, width)
		x := x0
		for _, ch := range padded {
			style := r.panelStyle
			// Swatch glyph of each palette row takes that row's color
			if row > 0 && row <= len(f.Palette) && ch == parameter.SwatchGlyph {
				style = style.Foreground(ResolveColor(f.Palette[row-1]))
			}
			r.screen.SetContent(x, y, ch, nil, style)
			x++
		}
	}
}

// HUDText formats the status line for a frame
func HUDText(f *engine.Frame) string {
	var b strings.Builder
	fmt.Fprintf(&b, " tick %d", f.Tick)
	if f.Paused {
		b.WriteString("  PAUSED")
	}
	fmt.Fprintf(&b, "  balls %d", len(f.Balls))
	if f.HasSelected {
		fmt.Fprintf(&b, "  selected %d", f.Selected)
	}
	if f.Dropped > 0 {
		fmt.Fprintf(&b, "  dropped %d", f.Dropped)
	}
	fmt.Fprintf(&b, "  | click: strike  1-%d: color  space: pause  q: quit", len(f.Palette))
	return b.String()
}

func (r *TerminalRenderer) drawHUD(f *engine.Frame) {
	if r.height < parameter.HUDRows || r.width <= 0 {
		return
	}
	y := r.height - parameter.HUDRows
	text := runewidth.FillRight(runewidth.Truncate(HUDText(f), r.width, "~"), r.width)

	x := 0
	for _, ch := range text {
		if x >= r.width {
			break
		}
		r.screen.SetContent(x, y, ch, nil, r.hudStyle)
		x++
	}
}
