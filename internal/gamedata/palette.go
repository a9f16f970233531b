package gamedata

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeonmapper/internal/world"
)

// Swatch defines one floor or glyph type loaded from JSON.
type Swatch struct {
	ID     int    `json:"id"`     // Index stored in tiles
	Name   string `json:"name"`   // Display name (e.g., "water")
	Symbol string `json:"symbol"` // Single character for rendering
	Color  string `json:"color"`  // Hex color code (e.g., "#1E90FF")
}

// SymbolRune returns the symbol as a rune for rendering.
func (s *Swatch) SymbolRune() rune {
	return firstRune(s.Symbol)
}

// TCellColor returns the color as a tcell.Color.
func (s *Swatch) TCellColor() tcell.Color {
	color, err := ParseHexColor(s.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// WallSwatch defines a wall type. Symbol is drawn on vertical edges and
// Horizontal on horizontal ones. Flippable walls also carry the symbols of
// their 180° variant.
type WallSwatch struct {
	Swatch
	Horizontal        string `json:"horizontal"`
	Flipped           string `json:"flipped,omitempty"`
	FlippedHorizontal string `json:"flippedHorizontal,omitempty"`
}

// PaletteFile represents the structure of palette.json.
type PaletteFile struct {
	Floors []Swatch     `json:"floors"`
	Walls  []WallSwatch `json:"walls"`
	Glyphs []Swatch     `json:"glyphs"`
}

// Palette holds the swatch definitions for every index the map model can store.
type Palette struct {
	floors []Swatch
	glyphs []Swatch
	walls  map[int]*WallSwatch
	order  []*WallSwatch
}

// NewPalette creates a palette, checking that it covers exactly the swatch
// indices defined by the world package.
func NewPalette(file PaletteFile) (*Palette, error) {
	if len(file.Floors) != world.FloorTypes {
		return nil, fmt.Errorf("palette has %d floors, want %d", len(file.Floors), world.FloorTypes)
	}
	if len(file.Glyphs) != world.GlyphTypes {
		return nil, fmt.Errorf("palette has %d glyphs, want %d", len(file.Glyphs), world.GlyphTypes)
	}
	for i := range file.Floors {
		if file.Floors[i].ID != i {
			return nil, fmt.Errorf("floor %d has id %d", i, file.Floors[i].ID)
		}
	}
	for i := range file.Glyphs {
		if file.Glyphs[i].ID != i {
			return nil, fmt.Errorf("glyph %d has id %d", i, file.Glyphs[i].ID)
		}
	}

	if err := checkColors("floor", file.Floors); err != nil {
		return nil, err
	}
	if err := checkColors("glyph", file.Glyphs); err != nil {
		return nil, err
	}

	p := &Palette{
		floors: file.Floors,
		glyphs: file.Glyphs,
		walls:  make(map[int]*WallSwatch, len(file.Walls)),
	}
	for i := range file.Walls {
		w := &file.Walls[i]
		if !world.IsSelectableWall(w.ID) {
			return nil, fmt.Errorf("wall %q has unselectable id %d", w.Name, w.ID)
		}
		if _, dup := p.walls[w.ID]; dup {
			return nil, fmt.Errorf("duplicate wall id %d", w.ID)
		}
		if _, err := ParseHexColor(w.Color); err != nil {
			return nil, fmt.Errorf("wall %q: %w", w.Name, err)
		}
		if world.IsFlipWall(w.ID) && (w.Flipped == "" || w.FlippedHorizontal == "") {
			return nil, fmt.Errorf("flippable wall %q is missing flipped symbols", w.Name)
		}
		p.walls[w.ID] = w
	}
	for _, id := range world.SelectableWalls() {
		w, ok := p.walls[id]
		if !ok {
			return nil, fmt.Errorf("palette is missing wall %d", id)
		}
		p.order = append(p.order, w)
	}
	return p, nil
}

// LoadPalette loads the palette from the embedded palette.json.
func LoadPalette() (*Palette, error) {
	file, err := Load[PaletteFile]("palette.json")
	if err != nil {
		return nil, err
	}
	return NewPalette(file)
}

// MustLoadPalette loads the palette, panicking on error.
func MustLoadPalette() *Palette {
	palette, err := LoadPalette()
	if err != nil {
		panic(err)
	}
	return palette
}

// Floor returns the floor swatch for index i, or nil if out of range.
func (p *Palette) Floor(i int) *Swatch {
	if i < 0 || i >= len(p.floors) {
		return nil
	}
	return &p.floors[i]
}

// Glyph returns the glyph swatch for index i, or nil if out of range.
func (p *Palette) Glyph(i int) *Swatch {
	if i < 0 || i >= len(p.glyphs) {
		return nil
	}
	return &p.glyphs[i]
}

// Wall returns the wall swatch for a stored wall value. Flipped variants
// resolve to the swatch they were rotated from.
func (p *Palette) Wall(stored int) *WallSwatch {
	if w, ok := p.walls[stored]; ok {
		return w
	}
	if world.IsFlipWall(stored - world.FlipWallOffset) {
		return p.walls[stored-world.FlipWallOffset]
	}
	return nil
}

// Walls returns the selectable walls in cycle order.
func (p *Palette) Walls() []*WallSwatch {
	return p.order
}

// WallRune returns the symbol drawn for a stored wall value on a vertical
// (right) or horizontal (bottom) tile edge. Unknown values render as '?'.
func (p *Palette) WallRune(stored int, horizontal bool) rune {
	w := p.Wall(stored)
	if w == nil {
		return '?'
	}
	flipped := stored != w.ID
	switch {
	case flipped && horizontal:
		return firstRune(w.FlippedHorizontal)
	case flipped:
		return firstRune(w.Flipped)
	case horizontal:
		return firstRune(w.Horizontal)
	default:
		return firstRune(w.Symbol)
	}
}

// firstRune returns the first rune of s, or '?' if s is empty.
func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return '?'
}
