package event

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// ErrNoCommand is returned by ReceiveCommand when nothing is waiting.
var ErrNoCommand = errors.New("no command available")

// CursorFunc reports the on-screen cursor position for the 'c' diagnostic.
type CursorFunc func() (x, y int)

// Worker turns raw events into Commands and hands them to the render loop
// through a second queue. The command queue is guarded by its own mutex so
// that translation and rendering can run on separate goroutines.
type Worker struct {
	events *Queue[tcell.Event]
	cursor CursorFunc

	mu       sync.Mutex
	commands *Queue[Command]
}

// NewWorker reads from events. cursor may be nil.
func NewWorker(events *Queue[tcell.Event], cursor CursorFunc) *Worker {
	if cursor == nil {
		cursor = func() (int, int) { return 0, 0 }
	}
	return &Worker{
		events:   events,
		cursor:   cursor,
		commands: NewQueue[Command](),
	}
}

// ParseEvent makes one non-blocking attempt to take a raw event and translate
// it. ok is false when the queue is empty or the event is not a key press.
// err is ErrDisconnected once the listener has stopped and the queue is drained.
func (w *Worker) ParseEvent() (cmd Command, ok bool, err error) {
	ev, err := w.events.TryPop()
	if err != nil {
		if errors.Is(err, ErrEmpty) {
			return nil, false, nil
		}
		return nil, false, err
	}

	cmd = w.translate(ev)
	return cmd, cmd != nil, nil
}

func (w *Worker) translate(ev tcell.Event) Command {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return nil
	}

	switch key.Key() {
	case tcell.KeyEscape:
		return ExitCommand{}
	case tcell.KeyRune:
		switch key.Rune() {
		case 'h':
			return MoveCommand{Direction: MoveLeft}
		case 'j':
			return MoveCommand{Direction: MoveDown}
		case 'k':
			return MoveCommand{Direction: MoveUp}
		case 'l':
			return MoveCommand{Direction: MoveRight}
		case 'm':
			return MarkCommand{}
		case 'y':
			return CopyCommand{}
		case 'd':
			return CutCommand{}
		case 'p':
			return PasteCommand{}
		case 'u':
			return UndoCommand{}
		case 'c':
			x, y := w.cursor()
			return DebugCommand{Message: fmt.Sprintf("Cursor position: (%d, %d)", x, y)}
		}
	}

	return DebugCommand{Message: "Event::" + key.Name()}
}

// HandleEvent translates at most one raw event. It returns true when the
// event was Escape; the command queue is not touched in that case. Any other
// command is queued for ReceiveCommand.
func (w *Worker) HandleEvent() (bool, error) {
	cmd, ok, err := w.ParseEvent()
	if err != nil || !ok {
		return false, err
	}

	if _, exit := cmd.(ExitCommand); exit {
		return true, nil
	}
	return false, w.send(cmd)
}

// Report queues an ErrorCommand describing err so the status line can show it.
func (w *Worker) Report(err error) error {
	if err == nil {
		return nil
	}
	return w.send(ErrorCommand{Message: err.Error()})
}

func (w *Worker) send(cmd Command) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.commands.Push(cmd)
}

// ReceiveCommand makes one non-blocking attempt to take the next command.
// It returns ErrNoCommand when nothing is queued and ErrDisconnected after
// Close.
func (w *Worker) ReceiveCommand() (Command, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cmd, err := w.commands.TryPop()
	if errors.Is(err, ErrEmpty) {
		return nil, ErrNoCommand
	}
	return cmd, err
}

// Close disconnects the command queue. Commands already queued can still be
// received.
func (w *Worker) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.commands.Close()
}
