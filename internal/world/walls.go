package world

const (
	// Swatch palette sizes
	FloorTypes      = 10
	NormalWallTypes = 6
	FlipWallTypes   = 4
	GlyphTypes      = 21

	// FlipWallBase is the first index of the flippable wall types.
	FlipWallBase = 20
	// FlipWallOffset is added to a flippable wall to select its 180° variant.
	FlipWallOffset = 20
)

// WallCycleLength is the number of selectable wall swatches.
const WallCycleLength = NormalWallTypes + FlipWallTypes

// IsFlipWall returns true if wall is one of the selectable flippable types.
func IsFlipWall(wall int) bool {
	return wall >= FlipWallBase && wall < FlipWallBase+FlipWallTypes
}

// IsSelectableWall returns true if wall can be the active wall swatch.
func IsSelectableWall(wall int) bool {
	return (wall >= 0 && wall < NormalWallTypes) || IsFlipWall(wall)
}

// IsStoredWall returns true if wall may appear on a tile edge: a selectable
// wall or the flipped variant of a flippable one.
func IsStoredWall(wall int) bool {
	return IsSelectableWall(wall) || IsFlipWall(wall-FlipWallOffset)
}

// FlippedWall returns the wall written on the far side of an edge. Flippable
// walls map to their 180° variant; normal walls are symmetric.
func FlippedWall(wall int) int {
	if IsFlipWall(wall) {
		return wall + FlipWallOffset
	}
	return wall
}

// NextWall returns the selectable wall after wall in the cycle
// 0..NormalWallTypes-1, FlipWallBase..FlipWallBase+FlipWallTypes-1.
// Values outside the selectable set restart the cycle at 0.
func NextWall(wall int) int {
	switch {
	case wall >= 0 && wall < NormalWallTypes-1:
		return wall + 1
	case wall == NormalWallTypes-1:
		return FlipWallBase
	case wall >= FlipWallBase && wall < FlipWallBase+FlipWallTypes-1:
		return wall + 1
	default:
		return 0
	}
}

// PrevWall is the inverse of NextWall. Values outside the selectable set
// restart the cycle at its last entry.
func PrevWall(wall int) int {
	switch {
	case wall > 0 && wall < NormalWallTypes:
		return wall - 1
	case wall == FlipWallBase:
		return NormalWallTypes - 1
	case wall > FlipWallBase && wall < FlipWallBase+FlipWallTypes:
		return wall - 1
	default:
		return FlipWallBase + FlipWallTypes - 1
	}
}

// SelectableWalls returns every selectable wall in cycle order.
func SelectableWalls() []int {
	walls := make([]int, 0, WallCycleLength)
	for w := 0; w < NormalWallTypes; w++ {
		walls = append(walls, w)
	}
	for w := FlipWallBase; w < FlipWallBase+FlipWallTypes; w++ {
		walls = append(walls, w)
	}
	return walls
}
