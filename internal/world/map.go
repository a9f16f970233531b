package world

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// UntitledName is the display name of a map that was never saved or loaded.
	UntitledName = "Untitled"

	// FileExtension is the conventional extension for saved maps.
	FileExtension = ".dungeon"

	defaultSwatch = 1
)

// Map is a multi-floor tile grid with an edit cursor.
//
// A Map is mutated only through its commands. Every command is followed by
// an apply step that writes the active swatches into the tiles selected by
// the enabled paint targets.
type Map struct {
	width  int
	height int
	floors int
	tiles  []Tile

	cursorX int
	cursorY int
	cursorZ int

	activeFloor int
	activeWall  int
	activeGlyph int

	painting [paintTargetCount]bool

	name string
}

// New creates a blank map with the cursor centered on the first floor.
func New(width, height, floors int) (*Map, error) {
	if width <= 0 || height <= 0 || floors <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidDimensions, width, height, floors)
	}

	return newMap(width, height, floors, make([]Tile, width*height*floors)), nil
}

// newMap wraps tiles, which must hold width*height*floors entries, in a map
// with the default cursor and swatches.
func newMap(width, height, floors int, tiles []Tile) *Map {
	return &Map{
		width:       width,
		height:      height,
		floors:      floors,
		tiles:       tiles,
		cursorX:     width / 2,
		cursorY:     height / 2,
		cursorZ:     0,
		activeFloor: defaultSwatch,
		activeWall:  defaultSwatch,
		activeGlyph: defaultSwatch,
		name:        UntitledName,
	}
}

// Width returns the number of columns.
func (m *Map) Width() int { return m.width }

// Height returns the number of rows.
func (m *Map) Height() int { return m.height }

// Floors returns the number of floors.
func (m *Map) Floors() int { return m.floors }

// CursorX returns the cursor column.
func (m *Map) CursorX() int { return m.cursorX }

// CursorY returns the cursor row.
func (m *Map) CursorY() int { return m.cursorY }

// CursorZ returns the cursor floor.
func (m *Map) CursorZ() int { return m.cursorZ }

// Cursor returns the cursor position.
func (m *Map) Cursor() (x, y, z int) {
	return m.cursorX, m.cursorY, m.cursorZ
}

// ActiveFloor returns the selected floor swatch.
func (m *Map) ActiveFloor() int { return m.activeFloor }

// ActiveWall returns the selected wall swatch.
func (m *Map) ActiveWall() int { return m.activeWall }

// ActiveGlyph returns the selected glyph swatch.
func (m *Map) ActiveGlyph() int { return m.activeGlyph }

// Name returns the display name, derived from the last file saved or loaded.
func (m *Map) Name() string { return m.name }

// InBounds returns true if the position lies inside the grid.
func (m *Map) InBounds(x, y, z int) bool {
	return x >= 0 && x < m.width &&
		y >= 0 && y < m.height &&
		z >= 0 && z < m.floors
}

// Tile returns a copy of the tile at the given position.
// Panics if the position is out of bounds.
func (m *Map) Tile(x, y, z int) Tile {
	return *m.at(x, y, z)
}

// at returns a pointer to the stored tile. Panics if out of bounds.
func (m *Map) at(x, y, z int) *Tile {
	if !m.InBounds(x, y, z) {
		panic(fmt.Sprintf("world: tile (%d,%d,%d) outside %dx%dx%d map",
			x, y, z, m.width, m.height, m.floors))
	}
	return &m.tiles[x+y*m.width+z*m.width*m.height]
}

// cursorTile returns the tile under the cursor.
func (m *Map) cursorTile() *Tile {
	return m.at(m.cursorX, m.cursorY, m.cursorZ)
}

// Note returns the note of the tile under the cursor.
func (m *Map) Note() string {
	return m.cursorTile().Note()
}

// SetNote replaces the note of the tile under the cursor.
func (m *Map) SetNote(note string) {
	m.cursorTile().SetNote(note)
}

// NoteCount returns the number of tiles carrying a note.
func (m *Map) NoteCount() int {
	count := 0
	for i := range m.tiles {
		if m.tiles[i].note != "" {
			count++
		}
	}
	return count
}

// BaseName returns the file name of path without its directory and without
// the trailing extension.
func BaseName(path string) string {
	name := filepath.Base(path)
	if dot := strings.LastIndex(name, "."); dot >= 0 {
		return name[:dot]
	}
	return name
}

// HasMapExtension returns true if path ends with FileExtension (any case).
func HasMapExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), FileExtension)
}
