package editor

// State represents the current input mode.
type State int

const (
	// StateEdit is the default mode where keys drive the map commands.
	StateEdit State = iota
	// StatePrompt collects a line of text on the status row.
	StatePrompt
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateEdit:
		return "edit"
	case StatePrompt:
		return "prompt"
	default:
		return "unknown"
	}
}

// PromptKind identifies what a prompt's input is used for.
type PromptKind int

const (
	PromptNote PromptKind = iota
	PromptSaveAs
	PromptOpen
)

// Label returns the text shown before the prompt input.
func (p PromptKind) Label() string {
	switch p {
	case PromptNote:
		return "Note"
	case PromptSaveAs:
		return "Save as"
	case PromptOpen:
		return "Open"
	default:
		return "?"
	}
}
