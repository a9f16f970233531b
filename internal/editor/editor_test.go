package editor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeonmapper/internal/config"
	"github.com/samdwyer/dungeonmapper/internal/gamedata"
	"github.com/samdwyer/dungeonmapper/internal/ui"
	"github.com/samdwyer/dungeonmapper/internal/world"
)

// newTestEditor builds an editor on a simulation screen with maps stored in
// a fresh temp directory.
func newTestEditor(t *testing.T, path string) *Editor {
	t.Helper()
	e, err := tryTestEditor(t, path)
	if err != nil {
		t.Fatalf("Failed to start editor: %v", err)
	}
	return e
}

func tryTestEditor(t *testing.T, path string) (*Editor, error) {
	t.Helper()
	cfg := config.Config{Width: 5, Height: 5, Floors: 2, MapDir: t.TempDir()}
	return tryTestEditorWith(t, cfg, path)
}

func tryTestEditorWith(t *testing.T, cfg config.Config, path string) (*Editor, error) {
	t.Helper()
	screen, err := ui.NewScreenFrom(tcell.NewSimulationScreen("UTF-8"))
	if err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	t.Cleanup(screen.Close)

	e := newEditor(screen, gamedata.MustLoadPalette(), cfg)
	return e, e.start(context.Background(), path)
}

func press(e *Editor, k tcell.Key) {
	e.handleKeyEvent(context.Background(), tcell.NewEventKey(k, 0, tcell.ModNone))
}

func typeRunes(e *Editor, s string) {
	for _, r := range s {
		e.handleKeyEvent(context.Background(), tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestStartBlankMap(t *testing.T) {
	e := newTestEditor(t, "")

	m := e.Map()
	if m.Width() != 5 || m.Height() != 5 || m.Floors() != 2 {
		t.Errorf("Map size = %dx%dx%d, want 5x5x2", m.Width(), m.Height(), m.Floors())
	}
	if e.path != "" {
		t.Errorf("path = %q, want empty", e.path)
	}
	if e.state != StateEdit {
		t.Errorf("state = %v, want edit", e.state)
	}
}

func TestStartMissingFileCreatesMap(t *testing.T) {
	e := newTestEditor(t, "castle.dungeon")

	want := filepath.Join(e.cfg.MapDir, "castle.dungeon")
	if e.path != want {
		t.Errorf("path = %q, want %q", e.path, want)
	}
	if e.Map().Name() != world.UntitledName {
		t.Errorf("Map name = %q, want %q", e.Map().Name(), world.UntitledName)
	}
	if !strings.Contains(e.message, "castle.dungeon") {
		t.Errorf("message = %q, want save destination", e.message)
	}
}

func TestStartOpensExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crypt.dungeon")

	src, err := world.New(3, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	src.BeginPaint(world.PaintFloor)
	if err := world.Save(context.Background(), src, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	e := newTestEditor(t, path)
	m := e.Map()
	if m.Width() != 3 || m.Height() != 4 {
		t.Errorf("Opened map size = %dx%d, want 3x4", m.Width(), m.Height())
	}
	if m.Name() != "crypt" {
		t.Errorf("Opened map name = %q, want crypt", m.Name())
	}
	if got := m.Tile(1, 2, 0).Floor(); got != 1 {
		t.Errorf("Painted floor = %d, want 1", got)
	}
	if e.path != path {
		t.Errorf("path = %q, want %q", e.path, path)
	}
}

func TestStartRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.dungeon")
	if err := os.WriteFile(path, []byte("not gzip"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := tryTestEditor(t, path)
	if !errors.Is(err, world.ErrMalformedFile) {
		t.Errorf("start error = %v, want ErrMalformedFile", err)
	}
}

func TestMovementKeys(t *testing.T) {
	e := newTestEditor(t, "")

	press(e, tcell.KeyRight)
	press(e, tcell.KeyDown)
	press(e, tcell.KeyDown)
	press(e, tcell.KeyPgDn)

	x, y, z := e.Map().Cursor()
	if x != 3 || y != 4 || z != 1 {
		t.Errorf("Cursor = (%d,%d,%d), want (3,4,1)", x, y, z)
	}

	press(e, tcell.KeyPgUp)
	press(e, tcell.KeyPgUp)
	if z := e.Map().CursorZ(); z != 0 {
		t.Errorf("CursorZ = %d, want 0", z)
	}
}

func TestCycleKeys(t *testing.T) {
	e := newTestEditor(t, "")
	m := e.Map()

	typeRunes(e, "e")
	if m.ActiveWall() != 2 {
		t.Errorf("ActiveWall after e = %d, want 2", m.ActiveWall())
	}
	typeRunes(e, "qq")
	if m.ActiveWall() != 0 {
		t.Errorf("ActiveWall after qq = %d, want 0", m.ActiveWall())
	}

	typeRunes(e, "C")
	if m.ActiveGlyph() != 2 {
		t.Errorf("ActiveGlyph after C = %d, want 2", m.ActiveGlyph())
	}
	typeRunes(e, "vv")
	if m.ActiveFloor() != world.FloorTypes-1 {
		t.Errorf("ActiveFloor after vv = %d, want %d", m.ActiveFloor(), world.FloorTypes-1)
	}
}

func TestPaintToggle(t *testing.T) {
	e := newTestEditor(t, "")
	m := e.Map()

	typeRunes(e, " ")
	if !m.Painting(world.PaintFloor) {
		t.Fatal("Space should begin floor painting")
	}
	if got := m.Tile(2, 2, 0).Floor(); got != 1 {
		t.Errorf("Floor under cursor = %d, want 1", got)
	}

	press(e, tcell.KeyRight)
	if got := m.Tile(3, 2, 0).Floor(); got != 1 {
		t.Errorf("Floor after move = %d, want 1", got)
	}

	typeRunes(e, " ")
	if m.Painting(world.PaintFloor) {
		t.Fatal("Second space should end floor painting")
	}
	press(e, tcell.KeyRight)
	if got := m.Tile(4, 2, 0).Floor(); got != 0 {
		t.Errorf("Floor after painting ended = %d, want 0", got)
	}
}

func TestPaintWallKeys(t *testing.T) {
	e := newTestEditor(t, "")
	m := e.Map()

	typeRunes(e, "eeeee") // wall 1 -> 20
	if m.ActiveWall() != 20 {
		t.Fatalf("ActiveWall = %d, want 20", m.ActiveWall())
	}
	typeRunes(e, "wd")

	if got := m.Tile(2, 1, 0).HorizWall(); got != world.FlippedWall(20) {
		t.Errorf("Top wall = %d, want %d", got, world.FlippedWall(20))
	}
	if got := m.Tile(2, 2, 0).VertWall(); got != 20 {
		t.Errorf("Right wall = %d, want 20", got)
	}
}

func TestNotePrompt(t *testing.T) {
	e := newTestEditor(t, "")

	typeRunes(e, "n")
	if e.state != StatePrompt || e.prompt != PromptNote {
		t.Fatalf("state = %v prompt = %v, want note prompt", e.state, e.prompt)
	}
	// Command keys are text while prompting.
	typeRunes(e, "trap door")
	press(e, tcell.KeyEnter)

	if e.state != StateEdit {
		t.Errorf("state after Enter = %v, want edit", e.state)
	}
	if got := e.Map().Note(); got != "trap door" {
		t.Errorf("Note = %q, want %q", got, "trap door")
	}
	if e.Map().ActiveWall() != 1 {
		t.Error("Typing in a prompt should not cycle walls")
	}

	// Reopening the prompt starts from the existing note.
	typeRunes(e, "n")
	if string(e.input) != "trap door" {
		t.Errorf("Prompt input = %q, want existing note", string(e.input))
	}
	press(e, tcell.KeyEscape)
	if e.state != StateEdit || !e.running {
		t.Error("Escape in a prompt should cancel it without quitting")
	}
}

func TestPromptEditing(t *testing.T) {
	e := newTestEditor(t, "")

	typeRunes(e, "n")
	typeRunes(e, "abc")
	press(e, tcell.KeyBackspace2)
	if string(e.input) != "ab" {
		t.Errorf("After backspace input = %q, want ab", string(e.input))
	}
	press(e, tcell.KeyCtrlU)
	if len(e.input) != 0 {
		t.Errorf("After Ctrl-U input = %q, want empty", string(e.input))
	}
	press(e, tcell.KeyBackspace2)
	typeRunes(e, "x")
	press(e, tcell.KeyEnter)
	if got := e.Map().Note(); got != "x" {
		t.Errorf("Note = %q, want x", got)
	}
}

func TestSaveAsPrompt(t *testing.T) {
	e := newTestEditor(t, "")

	press(e, tcell.KeyCtrlS)
	if e.state != StatePrompt || e.prompt != PromptSaveAs {
		t.Fatalf("Ctrl-S without a file should prompt, state = %v", e.state)
	}
	typeRunes(e, "keep")
	press(e, tcell.KeyEnter)

	want := filepath.Join(e.cfg.MapDir, "keep.dungeon")
	if e.path != want {
		t.Errorf("path = %q, want %q", e.path, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("Saved file missing: %v", err)
	}
	if e.Map().Name() != "keep" {
		t.Errorf("Map name = %q, want keep", e.Map().Name())
	}
	if e.message != "Saved keep.dungeon" {
		t.Errorf("message = %q", e.message)
	}
}

func TestSaveToCurrentFile(t *testing.T) {
	e := newTestEditor(t, "vault.dungeon")

	typeRunes(e, " ")
	press(e, tcell.KeyCtrlS)
	if e.state != StateEdit {
		t.Fatal("Ctrl-S with a file should save without prompting")
	}

	m, err := world.Load(context.Background(), e.path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := m.Tile(2, 2, 0).Floor(); got != 1 {
		t.Errorf("Saved floor = %d, want 1", got)
	}
}

func TestSaveAsEmptyCancels(t *testing.T) {
	e := newTestEditor(t, "")

	press(e, tcell.KeyCtrlE)
	if string(e.input) != world.UntitledName+world.FileExtension {
		t.Errorf("Suggested name = %q", string(e.input))
	}
	press(e, tcell.KeyCtrlU)
	press(e, tcell.KeyEnter)

	if e.message != "Save cancelled" {
		t.Errorf("message = %q, want Save cancelled", e.message)
	}
	entries, err := os.ReadDir(e.cfg.MapDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Cancelled save wrote %d files", len(entries))
	}
}

func TestSaveAsWithRelativeMapDir(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.Mkdir("maps", 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := config.Config{Width: 3, Height: 3, Floors: 1, MapDir: "maps"}
	e, err := tryTestEditorWith(t, cfg, "castle.dungeon")
	if err != nil {
		t.Fatalf("Failed to start editor: %v", err)
	}

	press(e, tcell.KeyCtrlE)
	if got := string(e.input); got != "castle.dungeon" {
		t.Errorf("Suggested name = %q, want castle.dungeon", got)
	}
	press(e, tcell.KeyEnter)

	want := filepath.Join("maps", "castle.dungeon")
	if e.path != want {
		t.Errorf("path = %q, want %q (message %q)", e.path, want, e.message)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("Saved file missing: %v", err)
	}

	// Saving again under the suggested name keeps the same file.
	press(e, tcell.KeyCtrlE)
	press(e, tcell.KeyEnter)
	if e.path != want {
		t.Errorf("Second save path = %q, want %q", e.path, want)
	}
}

func TestSuggestedNameOutsideMapDir(t *testing.T) {
	e := newTestEditor(t, "")
	outside := filepath.Join(t.TempDir(), "elsewhere.dungeon")
	e.path = outside

	if got := e.resolve(e.suggestedName()); got != outside {
		t.Errorf("resolve(suggestedName()) = %q, want %q", got, outside)
	}
}

func TestOpenPrompt(t *testing.T) {
	e := newTestEditor(t, "")

	other, _ := world.New(2, 3, 1)
	if err := world.Save(context.Background(), other, filepath.Join(e.cfg.MapDir, "small.dungeon")); err != nil {
		t.Fatal(err)
	}

	press(e, tcell.KeyCtrlO)
	typeRunes(e, "small.dungeon")
	press(e, tcell.KeyEnter)

	if e.Map().Width() != 2 || e.Map().Height() != 3 {
		t.Errorf("Opened map size = %dx%d, want 2x3", e.Map().Width(), e.Map().Height())
	}
	if e.Map().Name() != "small" {
		t.Errorf("Map name = %q, want small", e.Map().Name())
	}
}

func TestOpenMissingKeepsMap(t *testing.T) {
	e := newTestEditor(t, "")
	before := e.Map()

	press(e, tcell.KeyCtrlO)
	typeRunes(e, "nowhere.dungeon")
	press(e, tcell.KeyEnter)

	if e.Map() != before {
		t.Error("Failed open should keep the current map")
	}
	if e.message == "" {
		t.Error("Failed open should report an error")
	}
}

func TestNewMapKey(t *testing.T) {
	e := newTestEditor(t, "old.dungeon")
	typeRunes(e, " ")

	press(e, tcell.KeyCtrlN)

	if e.path != "" {
		t.Errorf("path = %q, want empty after new map", e.path)
	}
	if !e.Map().Tile(2, 2, 0).IsBlank() {
		t.Error("New map should be blank")
	}
	if e.Map().Painting(world.PaintFloor) {
		t.Error("New map should not be painting")
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tcell.Key{tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlQ} {
		e := newTestEditor(t, "")
		press(e, k)
		if e.running {
			t.Errorf("Key %v should quit", k)
		}
	}
}

func TestStatus(t *testing.T) {
	e := newTestEditor(t, "")
	e.message = "hello"

	if s := e.status(); s.Prompt != "" || s.Message != "hello" {
		t.Errorf("Edit status = %+v", s)
	}

	press(e, tcell.KeyCtrlO)
	typeRunes(e, "ab")
	s := e.status()
	if s.Prompt != "Open" || s.Input != "ab" {
		t.Errorf("Prompt status = %+v", s)
	}
}

func TestStateStrings(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateEdit, "edit"},
		{StatePrompt, "prompt"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.expected)
		}
	}

	if got := PromptSaveAs.Label(); got != "Save as" {
		t.Errorf("PromptSaveAs.Label() = %q", got)
	}
	if got := PromptKind(99).Label(); got != "?" {
		t.Errorf("PromptKind(99).Label() = %q", got)
	}
}

func TestWithMapExtension(t *testing.T) {
	tests := []struct{ in, want string }{
		{"keep", "keep.dungeon"},
		{"keep.dungeon", "keep.dungeon"},
		{"dir/KEEP.DUNGEON", "dir/KEEP.DUNGEON"},
		{"dir/keep.map", "dir/keep.map.dungeon"},
	}
	for _, tt := range tests {
		if got := withMapExtension(tt.in); got != tt.want {
			t.Errorf("withMapExtension(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
