package editor

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeonmapper/internal/world"
)

// Terminals report key presses but not releases, so each paint key toggles
// its paint mode: the first press begins painting, the next one ends it.

var keyCommands = map[tcell.Key]world.Command{
	tcell.KeyRight: world.CmdMoveRight,
	tcell.KeyLeft:  world.CmdMoveLeft,
	tcell.KeyUp:    world.CmdMoveUp,
	tcell.KeyDown:  world.CmdMoveDown,
	tcell.KeyPgUp:  world.CmdFloorUp,
	tcell.KeyPgDn:  world.CmdFloorDown,
}

var runeCommands = map[rune]world.Command{
	'e': world.CmdCycleWallNext,
	'q': world.CmdCycleWallPrev,
	'c': world.CmdCycleGlyphNext,
	'z': world.CmdCycleGlyphPrev,
	'f': world.CmdCycleFloorNext,
	'v': world.CmdCycleFloorPrev,
}

var paintKeys = map[rune]world.PaintTarget{
	' ': world.PaintFloor,
	'w': world.PaintTopWall,
	's': world.PaintBottomWall,
	'a': world.PaintLeftWall,
	'd': world.PaintRightWall,
	'x': world.PaintGlyph,
}

// noteKey opens the note prompt for the tile under the cursor.
const noteKey = 'n'

// commandForKey returns the map command bound to a key event.
func commandForKey(ev *tcell.EventKey) (world.Command, bool) {
	if ev.Key() == tcell.KeyRune {
		cmd, ok := runeCommands[unicode.ToLower(ev.Rune())]
		return cmd, ok
	}
	cmd, ok := keyCommands[ev.Key()]
	return cmd, ok
}

// paintTargetForKey returns the paint mode toggled by a key event.
func paintTargetForKey(ev *tcell.EventKey) (world.PaintTarget, bool) {
	if ev.Key() != tcell.KeyRune {
		return 0, false
	}
	target, ok := paintKeys[unicode.ToLower(ev.Rune())]
	return target, ok
}
