package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/samdwyer/dungeonmapper/internal/gamedata"
	"github.com/samdwyer/dungeonmapper/internal/world"
)

// HeaderRows is the number of terminal rows above the map viewport.
const HeaderRows = 3

// Status is the editor state shown around the map.
type Status struct {
	Message string // last result, e.g. "Saved castle.dungeon"
	Prompt  string // active prompt label; empty when not prompting
	Input   string // text typed into the active prompt
}

// Renderer handles drawing the map to the screen.
type Renderer struct {
	screen  *Screen
	palette *gamedata.Palette
	camera  *Camera
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette *gamedata.Palette) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen:  screen,
		palette: palette,
		camera:  NewCamera(w, h-HeaderRows),
	}
}

// Camera returns the map viewport camera.
func (r *Renderer) Camera() *Camera {
	return r.camera
}

// Render draws the header and the visible part of the cursor's floor.
func (r *Renderer) Render(m *world.Map, status Status) {
	r.screen.Clear()

	w, h := r.screen.Size()
	r.camera.Resize(w, h-HeaderRows)
	r.camera.Follow(m.CursorX(), m.CursorY(), m.Width(), m.Height())

	r.renderHeader(m, status)

	cx, cy, z := m.Cursor()
	for y := r.camera.OffsetY; y < m.Height(); y++ {
		for x := r.camera.OffsetX; x < m.Width(); x++ {
			sx, sy, visible := r.camera.WorldToScreen(x, y)
			if !visible {
				continue
			}
			r.renderTile(m.Tile(x, y, z), sx, sy+HeaderRows, x == cx && y == cy)
		}
	}

	r.screen.Show()
}

// renderTile draws one tile block at screen position (sx, sy).
func (r *Renderer) renderTile(t world.Tile, sx, sy int, cursor bool) {
	base := tcell.StyleDefault.Background(tcell.ColorBlack)

	content, style := ' ', base
	if floor := r.palette.Floor(t.Floor()); floor != nil {
		content = floor.SymbolRune()
		style = base.Foreground(floor.TCellColor())
	}
	if t.Glyph() != 0 {
		if glyph := r.palette.Glyph(t.Glyph()); glyph != nil {
			content = glyph.SymbolRune()
			style = base.Foreground(glyph.TCellColor()).Bold(true)
		}
	}
	if t.Note() != "" {
		style = style.Underline(true)
	}
	if cursor {
		style = style.Reverse(true)
	}
	r.screen.SetContent(sx, sy, content, style)

	r.screen.SetContent(sx+1, sy, r.palette.WallRune(t.VertWall(), false), r.wallStyle(t.VertWall()))
	r.screen.SetContent(sx, sy+1, r.palette.WallRune(t.HorizWall(), true), r.wallStyle(t.HorizWall()))

	corner := ' '
	if t.VertWall() != 0 || t.HorizWall() != 0 {
		corner = '┼'
	}
	r.screen.SetContent(sx+1, sy+1, corner, base.Foreground(tcell.ColorDarkGray))
}

// wallStyle returns the style for a stored wall value.
func (r *Renderer) wallStyle(stored int) tcell.Style {
	style := tcell.StyleDefault.Background(tcell.ColorBlack)
	if w := r.palette.Wall(stored); w != nil {
		return style.Foreground(w.TCellColor())
	}
	return style.Foreground(tcell.ColorRed)
}

// renderHeader draws the position line, the swatch palette and the note or
// prompt line.
func (r *Renderer) renderHeader(m *world.Map, status Status) {
	plain := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	line := fmt.Sprintf("%s  floor %d/%d  x %d/%d  y %d/%d",
		m.Name(), m.CursorZ()+1, m.Floors(),
		m.CursorX()+1, m.Width(), m.CursorY()+1, m.Height())
	if modes := paintModes(m); modes != "" {
		line += "  paint: " + modes
	}
	if status.Message != "" {
		line += "  | " + status.Message
	}
	r.RenderMessage(line, 0)

	x := 0
	for i := 0; i < world.FloorTypes; i++ {
		s := r.palette.Floor(i)
		x = r.renderSwatch(x, s.SymbolRune(), s.TCellColor(), m.ActiveFloor() == i)
	}
	x++
	for _, w := range r.palette.Walls() {
		x = r.renderSwatch(x, w.SymbolRune(), w.TCellColor(), m.ActiveWall() == w.ID)
	}
	x++
	for i := 0; i < world.GlyphTypes; i++ {
		s := r.palette.Glyph(i)
		x = r.renderSwatch(x, s.SymbolRune(), s.TCellColor(), m.ActiveGlyph() == i)
	}

	if status.Prompt != "" {
		end := r.drawText(0, 2, status.Prompt+": "+status.Input, plain.Bold(true))
		r.screen.SetContent(end, 2, '_', plain.Blink(true))
		return
	}
	r.drawText(0, 2, "Note: "+m.Note(), plain)
}

// renderSwatch draws a palette entry at column x and returns the next column.
func (r *Renderer) renderSwatch(x int, symbol rune, color tcell.Color, active bool) int {
	style := tcell.StyleDefault.Foreground(color).Background(tcell.ColorBlack)
	if active {
		style = style.Reverse(true)
	}
	r.screen.SetContent(x, 1, symbol, style)
	return x + max(1, runewidth.RuneWidth(symbol))
}

// RenderMessage displays a message on the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	r.drawText(0, y, msg, style)
}

// drawText writes s starting at column x, advancing by each rune's display
// width, and returns the column after the last rune.
func (r *Renderer) drawText(x, y int, s string, style tcell.Style) int {
	w, _ := r.screen.Size()
	for _, ch := range s {
		cw := runewidth.RuneWidth(ch)
		if cw == 0 {
			continue
		}
		if x+cw > w {
			break
		}
		r.screen.SetContent(x, y, ch, style)
		x += cw
	}
	return x
}

// paintModes lists the enabled paint modes.
func paintModes(m *world.Map) string {
	var on []string
	for _, p := range world.PaintTargets() {
		if m.Painting(p) {
			on = append(on, p.String())
		}
	}
	return strings.Join(on, ",")
}
