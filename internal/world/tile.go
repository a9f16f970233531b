// Package world provides the dungeon map model: the tile grid, the cursor
// driven edit commands and the on-disk map format.
package world

// Tile represents a single map cell.
type Tile struct {
	floor     int
	vertWall  int
	horizWall int
	glyph     int
	note      string
}

// Floor returns the floor swatch index.
func (t Tile) Floor() int {
	return t.floor
}

// SetFloor sets the floor swatch index.
func (t *Tile) SetFloor(floor int) {
	t.floor = floor
}

// VertWall returns the wall on the tile's right edge.
func (t Tile) VertWall() int {
	return t.vertWall
}

// SetVertWall sets the wall on the tile's right edge.
func (t *Tile) SetVertWall(wall int) {
	t.vertWall = wall
}

// HorizWall returns the wall on the tile's bottom edge.
func (t Tile) HorizWall() int {
	return t.horizWall
}

// SetHorizWall sets the wall on the tile's bottom edge.
func (t *Tile) SetHorizWall(wall int) {
	t.horizWall = wall
}

// Glyph returns the glyph swatch index.
func (t Tile) Glyph() int {
	return t.glyph
}

// SetGlyph sets the glyph swatch index.
func (t *Tile) SetGlyph(glyph int) {
	t.glyph = glyph
}

// Note returns the tile's free-form note.
func (t Tile) Note() string {
	return t.note
}

// SetNote sets the tile's free-form note.
func (t *Tile) SetNote(note string) {
	t.note = note
}

// IsBlank returns true if the tile carries no floor, walls, glyph or note.
func (t Tile) IsBlank() bool {
	return t == Tile{}
}
