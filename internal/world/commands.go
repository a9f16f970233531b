package world

import "fmt"

// Command is an abstract edit command issued by the input layer.
type Command int

const (
	CmdMoveRight Command = iota
	CmdMoveLeft
	CmdMoveUp
	CmdMoveDown
	// CmdFloorUp moves toward floor 0 (page up).
	CmdFloorUp
	// CmdFloorDown moves toward the last floor (page down).
	CmdFloorDown
	CmdCycleWallNext
	CmdCycleWallPrev
	CmdCycleGlyphNext
	CmdCycleGlyphPrev
	CmdCycleFloorNext
	CmdCycleFloorPrev
)

var commandNames = [...]string{
	CmdMoveRight:      "move_right",
	CmdMoveLeft:       "move_left",
	CmdMoveUp:         "move_up",
	CmdMoveDown:       "move_down",
	CmdFloorUp:        "floor_up",
	CmdFloorDown:      "floor_down",
	CmdCycleWallNext:  "cycle_wall_next",
	CmdCycleWallPrev:  "cycle_wall_prev",
	CmdCycleGlyphNext: "cycle_glyph_next",
	CmdCycleGlyphPrev: "cycle_glyph_prev",
	CmdCycleFloorNext: "cycle_floor_next",
	CmdCycleFloorPrev: "cycle_floor_prev",
}

// String returns a human-readable command name.
func (c Command) String() string {
	if c >= 0 && int(c) < len(commandNames) {
		return commandNames[c]
	}
	return "unknown"
}

// PaintTarget is a tile attribute that can be painted while its mode is on.
type PaintTarget int

const (
	PaintFloor PaintTarget = iota
	PaintTopWall
	PaintBottomWall
	PaintLeftWall
	PaintRightWall
	PaintGlyph

	paintTargetCount
)

// String returns a human-readable paint target name.
func (p PaintTarget) String() string {
	switch p {
	case PaintFloor:
		return "floor"
	case PaintTopWall:
		return "top_wall"
	case PaintBottomWall:
		return "bottom_wall"
	case PaintLeftWall:
		return "left_wall"
	case PaintRightWall:
		return "right_wall"
	case PaintGlyph:
		return "glyph"
	default:
		return "unknown"
	}
}

// PaintTargets returns every paint target.
func PaintTargets() []PaintTarget {
	return []PaintTarget{PaintFloor, PaintTopWall, PaintBottomWall, PaintLeftWall, PaintRightWall, PaintGlyph}
}

// Exec runs a movement or swatch command, then applies the active paint.
// Unknown commands only apply paint.
func (m *Map) Exec(cmd Command) {
	switch cmd {
	case CmdMoveRight:
		if m.cursorX < m.width-1 {
			m.cursorX++
		}
	case CmdMoveLeft:
		if m.cursorX > 0 {
			m.cursorX--
		}
	case CmdMoveUp:
		if m.cursorY > 0 {
			m.cursorY--
		}
	case CmdMoveDown:
		if m.cursorY < m.height-1 {
			m.cursorY++
		}
	case CmdFloorUp:
		if m.cursorZ > 0 {
			m.cursorZ--
		}
	case CmdFloorDown:
		if m.cursorZ < m.floors-1 {
			m.cursorZ++
		}
	case CmdCycleWallNext:
		m.activeWall = NextWall(m.activeWall)
	case CmdCycleWallPrev:
		m.activeWall = PrevWall(m.activeWall)
	case CmdCycleGlyphNext:
		m.activeGlyph = (m.activeGlyph + 1) % GlyphTypes
	case CmdCycleGlyphPrev:
		m.activeGlyph = (m.activeGlyph + GlyphTypes - 1) % GlyphTypes
	case CmdCycleFloorNext:
		m.activeFloor = (m.activeFloor + 1) % FloorTypes
	case CmdCycleFloorPrev:
		m.activeFloor = (m.activeFloor + FloorTypes - 1) % FloorTypes
	}

	m.applyActivePaint()
}

// Shorthands for Exec, one per command.

func (m *Map) MoveRight()      { m.Exec(CmdMoveRight) }
func (m *Map) MoveLeft()       { m.Exec(CmdMoveLeft) }
func (m *Map) MoveUp()         { m.Exec(CmdMoveUp) }
func (m *Map) MoveDown()       { m.Exec(CmdMoveDown) }
func (m *Map) MoveFloorUp()    { m.Exec(CmdFloorUp) }
func (m *Map) MoveFloorDown()  { m.Exec(CmdFloorDown) }
func (m *Map) CycleWallNext()  { m.Exec(CmdCycleWallNext) }
func (m *Map) CycleWallPrev()  { m.Exec(CmdCycleWallPrev) }
func (m *Map) CycleGlyphNext() { m.Exec(CmdCycleGlyphNext) }
func (m *Map) CycleGlyphPrev() { m.Exec(CmdCycleGlyphPrev) }
func (m *Map) CycleFloorNext() { m.Exec(CmdCycleFloorNext) }
func (m *Map) CycleFloorPrev() { m.Exec(CmdCycleFloorPrev) }

// BeginPaint turns a paint mode on and immediately paints the cursor position.
func (m *Map) BeginPaint(target PaintTarget) {
	if target >= 0 && target < paintTargetCount {
		m.painting[target] = true
	}
	m.applyActivePaint()
}

// EndPaint turns a paint mode off. Nothing is written.
func (m *Map) EndPaint(target PaintTarget) {
	if target >= 0 && target < paintTargetCount {
		m.painting[target] = false
	}
}

// Painting returns true if the paint mode for target is on.
func (m *Map) Painting(target PaintTarget) bool {
	if target < 0 || target >= paintTargetCount {
		return false
	}
	return m.painting[target]
}

// SetActiveFloor selects a floor swatch directly, then applies paint.
func (m *Map) SetActiveFloor(floor int) error {
	if floor < 0 || floor >= FloorTypes {
		return fmt.Errorf("%w: floor %d", ErrSwatchRange, floor)
	}
	m.activeFloor = floor
	m.applyActivePaint()
	return nil
}

// SetActiveWall selects a wall swatch directly, then applies paint.
func (m *Map) SetActiveWall(wall int) error {
	if !IsSelectableWall(wall) {
		return fmt.Errorf("%w: wall %d", ErrSwatchRange, wall)
	}
	m.activeWall = wall
	m.applyActivePaint()
	return nil
}

// SetActiveGlyph selects a glyph swatch directly, then applies paint.
func (m *Map) SetActiveGlyph(glyph int) error {
	if glyph < 0 || glyph >= GlyphTypes {
		return fmt.Errorf("%w: glyph %d", ErrSwatchRange, glyph)
	}
	m.activeGlyph = glyph
	m.applyActivePaint()
	return nil
}

// applyActivePaint writes the active swatches for every enabled paint mode.
// Top and left walls belong to the neighbouring tile's bottom and right
// edges, so they are skipped on the first row and column and flippable
// walls are written rotated.
func (m *Map) applyActivePaint() {
	x, y, z := m.cursorX, m.cursorY, m.cursorZ
	here := m.at(x, y, z)

	if m.painting[PaintFloor] {
		here.SetFloor(m.activeFloor)
	}
	if m.painting[PaintTopWall] && y > 0 {
		m.at(x, y-1, z).SetHorizWall(FlippedWall(m.activeWall))
	}
	if m.painting[PaintLeftWall] && x > 0 {
		m.at(x-1, y, z).SetVertWall(FlippedWall(m.activeWall))
	}
	if m.painting[PaintBottomWall] {
		here.SetHorizWall(m.activeWall)
	}
	if m.painting[PaintRightWall] {
		here.SetVertWall(m.activeWall)
	}
	if m.painting[PaintGlyph] {
		here.SetGlyph(m.activeGlyph)
	}
}
