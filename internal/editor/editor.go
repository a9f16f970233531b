// Package editor runs the interactive map editing loop.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeonmapper/internal/config"
	"github.com/samdwyer/dungeonmapper/internal/gamedata"
	"github.com/samdwyer/dungeonmapper/internal/telemetry"
	"github.com/samdwyer/dungeonmapper/internal/ui"
	"github.com/samdwyer/dungeonmapper/internal/world"
)

// Editor holds the map being edited and the terminal it is drawn on.
type Editor struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	cfg      config.Config

	m    *world.Map
	path string // file the map was loaded from or last saved to

	state   State
	prompt  PromptKind
	input   []rune
	message string
	running bool
}

// New creates an editor on the terminal. path names a map file to open; if
// it is empty or does not exist yet, a blank map of the configured size is
// created and path becomes its save destination.
func New(ctx context.Context, cfg config.Config, path string) (*Editor, error) {
	palette, err := gamedata.LoadPalette()
	if err != nil {
		return nil, err
	}
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	e := newEditor(screen, palette, cfg)
	if err := e.start(ctx, path); err != nil {
		screen.Close()
		return nil, err
	}
	return e, nil
}

func newEditor(screen *ui.Screen, palette *gamedata.Palette, cfg config.Config) *Editor {
	return &Editor{
		screen:   screen,
		renderer: ui.NewRenderer(screen, palette),
		cfg:      cfg,
		state:    StateEdit,
		running:  true,
	}
}

// start opens the initial map.
func (e *Editor) start(ctx context.Context, path string) error {
	tracer := telemetry.Tracer("editor")
	ctx, span := tracer.Start(ctx, "editor.init")
	defer span.End()

	if path != "" {
		err := e.open(ctx, path)
		if err == nil {
			span.SetAttributes(attribute.String("editor.opened", e.path))
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	if err := e.newMap(); err != nil {
		return err
	}
	if path != "" {
		e.path = e.resolve(path)
		e.message = "New map, will save to " + filepath.Base(e.path)
	}
	span.SetAttributes(
		attribute.Int("map.width", e.m.Width()),
		attribute.Int("map.height", e.m.Height()),
		attribute.Int("map.floors", e.m.Floors()),
	)
	return nil
}

// Map returns the map being edited.
func (e *Editor) Map() *world.Map {
	return e.m
}

// Run executes the editor loop until the user quits.
func (e *Editor) Run(ctx context.Context) error {
	for e.running {
		e.renderer.Render(e.m, e.status())
		e.handleInput(ctx)
	}

	e.screen.Close()
	return nil
}

// status collects what the renderer shows around the map.
func (e *Editor) status() ui.Status {
	s := ui.Status{Message: e.message}
	if e.state == StatePrompt {
		s.Prompt = e.prompt.Label()
		s.Input = string(e.input)
	}
	return s
}

// handleInput processes a single input event.
func (e *Editor) handleInput(ctx context.Context) {
	ev := e.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		e.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		e.screen.Sync()
	}
}

// handleKeyEvent dispatches a key press according to the current state.
func (e *Editor) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch e.state {
	case StatePrompt:
		e.handlePromptKey(ctx, ev)
	default:
		e.handleEditKey(ctx, ev)
	}
}

// handleEditKey maps a key press to a map command or an editor action.
func (e *Editor) handleEditKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlQ:
		e.running = false
		return
	case tcell.KeyCtrlS:
		if e.path == "" {
			e.beginPrompt(PromptSaveAs, "")
			return
		}
		e.save(ctx, e.path)
		return
	case tcell.KeyCtrlE:
		e.beginPrompt(PromptSaveAs, e.suggestedName())
		return
	case tcell.KeyCtrlO:
		e.beginPrompt(PromptOpen, "")
		return
	case tcell.KeyCtrlN:
		if err := e.newMap(); err != nil {
			e.message = err.Error()
			return
		}
		e.message = "New map"
		return
	}

	if cmd, ok := commandForKey(ev); ok {
		e.m.Exec(cmd)
		return
	}
	if target, ok := paintTargetForKey(ev); ok {
		if e.m.Painting(target) {
			e.m.EndPaint(target)
		} else {
			e.m.BeginPaint(target)
		}
		return
	}
	if ev.Key() == tcell.KeyRune && ev.Rune() == noteKey {
		e.beginPrompt(PromptNote, e.m.Note())
	}
}

// handlePromptKey edits the prompt line.
func (e *Editor) handlePromptKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		e.endPrompt()
	case tcell.KeyEnter:
		text := string(e.input)
		kind := e.prompt
		e.endPrompt()
		e.submitPrompt(ctx, kind, text)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(e.input) > 0 {
			e.input = e.input[:len(e.input)-1]
		}
	case tcell.KeyCtrlU:
		e.input = e.input[:0]
	case tcell.KeyRune:
		e.input = append(e.input, ev.Rune())
	}
}

func (e *Editor) beginPrompt(kind PromptKind, initial string) {
	e.state = StatePrompt
	e.prompt = kind
	e.input = []rune(initial)
}

func (e *Editor) endPrompt() {
	e.state = StateEdit
	e.input = nil
}

// submitPrompt acts on a completed prompt.
func (e *Editor) submitPrompt(ctx context.Context, kind PromptKind, text string) {
	switch kind {
	case PromptNote:
		e.m.SetNote(text)
	case PromptSaveAs:
		if strings.TrimSpace(text) == "" {
			e.message = "Save cancelled"
			return
		}
		e.save(ctx, withMapExtension(e.resolve(text)))
	case PromptOpen:
		if strings.TrimSpace(text) == "" {
			return
		}
		if err := e.open(ctx, text); err != nil {
			e.message = err.Error()
		}
	}
}

// save writes the map and reports the outcome on the status line.
func (e *Editor) save(ctx context.Context, path string) {
	if err := world.Save(ctx, e.m, path); err != nil {
		e.message = err.Error()
		return
	}
	e.path = path
	e.message = "Saved " + filepath.Base(path)
}

// open replaces the current map with one read from path.
func (e *Editor) open(ctx context.Context, path string) error {
	resolved := e.resolve(path)
	m, err := world.Load(ctx, resolved)
	if err != nil {
		return err
	}
	e.m = m
	e.path = resolved
	e.message = "Opened " + filepath.Base(resolved)
	return nil
}

// newMap replaces the current map with a blank one of the configured size.
func (e *Editor) newMap() error {
	m, err := world.New(e.cfg.Width, e.cfg.Height, e.cfg.Floors)
	if err != nil {
		return fmt.Errorf("creating map: %w", err)
	}
	e.m = m
	e.path = ""
	return nil
}

// resolve interprets relative paths against the configured map directory.
func (e *Editor) resolve(path string) string {
	path = strings.TrimSpace(path)
	if filepath.IsAbs(path) || e.cfg.MapDir == "" {
		return path
	}
	return filepath.Join(e.cfg.MapDir, path)
}

// suggestedName returns the save-as default: the current file relative to
// the map directory, or the map name with the map extension. resolve turns
// it back into the current file.
func (e *Editor) suggestedName() string {
	if e.path == "" {
		return e.m.Name() + world.FileExtension
	}
	if e.cfg.MapDir == "" {
		return e.path
	}
	if rel, err := filepath.Rel(e.cfg.MapDir, e.path); err == nil {
		return rel
	}
	return e.path
}

// withMapExtension appends the map extension unless path already has it.
func withMapExtension(path string) string {
	if world.HasMapExtension(path) {
		return path
	}
	return path + world.FileExtension
}
