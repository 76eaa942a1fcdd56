package event

// Command is a domain-level instruction produced from raw input.
type Command interface {
	String() string
	isCommand()
}

// Movement is the direction of a MoveCommand.
type Movement int

const (
	MoveLeft Movement = iota
	MoveDown
	MoveUp
	MoveRight
)

func (m Movement) String() string {
	switch m {
	case MoveLeft:
		return "Left"
	case MoveDown:
		return "Down"
	case MoveUp:
		return "Up"
	case MoveRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// ===== NAVIGATION =====

type ExitCommand struct{}
type MoveCommand struct {
	Direction Movement
}

// ===== FILE OPERATIONS =====
// Not acted on yet; they flow through the pipeline so the status line can
// show them.

type MarkCommand struct{}
type CopyCommand struct{}
type CutCommand struct{}
type PasteCommand struct{}
type UndoCommand struct{}

// ===== DIAGNOSTICS =====

type DebugCommand struct {
	Message string
}
type ErrorCommand struct {
	Message string
}

func (ExitCommand) isCommand()  {}
func (MoveCommand) isCommand()  {}
func (MarkCommand) isCommand()  {}
func (CopyCommand) isCommand()  {}
func (CutCommand) isCommand()   {}
func (PasteCommand) isCommand() {}
func (UndoCommand) isCommand()  {}
func (DebugCommand) isCommand() {}
func (ErrorCommand) isCommand() {}

func (ExitCommand) String() string    { return "Exit" }
func (c MoveCommand) String() string  { return "Move(" + c.Direction.String() + ")" }
func (MarkCommand) String() string    { return "Mark" }
func (CopyCommand) String() string    { return "Copy" }
func (CutCommand) String() string     { return "Cut" }
func (PasteCommand) String() string   { return "Paste" }
func (UndoCommand) String() string    { return "Undo" }
func (c DebugCommand) String() string { return c.Message }
func (c ErrorCommand) String() string { return "Error: " + c.Message }
