package ui

const (
	// Each map tile is drawn as a 2x2 block: content, right wall,
	// bottom wall and corner.
	cellWidth  = 2
	cellHeight = 2
)

// Camera translates between map coordinates and screen coordinates within
// the map viewport.
type Camera struct {
	OffsetX    int // first visible map column
	OffsetY    int // first visible map row
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera for a viewport of the given terminal size.
func NewCamera(viewW, viewH int) *Camera {
	return &Camera{ViewWidth: viewW, ViewHeight: viewH}
}

// Resize changes the viewport size.
func (c *Camera) Resize(viewW, viewH int) {
	c.ViewWidth = viewW
	c.ViewHeight = viewH
}

// TilesAcross returns how many map columns fit in the viewport.
func (c *Camera) TilesAcross() int {
	return max(1, c.ViewWidth/cellWidth)
}

// TilesDown returns how many map rows fit in the viewport.
func (c *Camera) TilesDown() int {
	return max(1, c.ViewHeight/cellHeight)
}

// Follow scrolls the minimum amount needed to keep map position (cx, cy)
// visible, never scrolling past the edges of a mapW x mapH map.
func (c *Camera) Follow(cx, cy, mapW, mapH int) {
	c.OffsetX = follow(c.OffsetX, cx, c.TilesAcross(), mapW)
	c.OffsetY = follow(c.OffsetY, cy, c.TilesDown(), mapH)
}

func follow(offset, pos, visible, extent int) int {
	if pos < offset {
		offset = pos
	}
	if pos >= offset+visible {
		offset = pos - visible + 1
	}
	return max(0, min(offset, extent-visible))
}

// WorldToScreen converts map (wx, wy) to the top-left viewport cell of its
// block. visible is false when the block falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	sx = (wx - c.OffsetX) * cellWidth
	sy = (wy - c.OffsetY) * cellHeight
	visible = sx >= 0 && sx+cellWidth <= c.ViewWidth && sy >= 0 && sy+cellHeight <= c.ViewHeight
	return
}
