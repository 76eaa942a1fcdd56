package event

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
)

// defaultTickInterval paces the listener's stop-condition checks. It is not a
// deadline on anything.
const defaultTickInterval = time.Second

// Poller is the part of tcell.Screen the listener reads from. PollEvent
// returns nil once the screen is finalized.
type Poller interface {
	PollEvent() tcell.Event
}

// Source listens for terminal input in the background and forwards every
// event onto a raw-event queue. It stops after forwarding an Escape key.
type Source struct {
	poller  Poller
	events  *Queue[tcell.Event]
	logger  *slog.Logger
	tick    time.Duration
	started atomic.Bool
	done    chan struct{}
}

// NewSource creates a listener feeding events. A nil logger discards output.
func NewSource(poller Poller, events *Queue[tcell.Event], logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{
		poller: poller,
		events: events,
		logger: logger,
		tick:   defaultTickInterval,
		done:   make(chan struct{}),
	}
}

// Start launches the listener. Cancelling ctx stops it at the next tick.
// Calling Start more than once has no effect.
func (s *Source) Start(ctx context.Context) {
	if !s.started.CompareAndSwap(false, true) {
		return
	}

	incoming := make(chan tcell.Event)
	stop := make(chan struct{})
	go s.pump(incoming, stop)
	go s.listen(ctx, incoming, stop)
}

// Done is closed once the listener has stopped and the queue is closed.
func (s *Source) Done() <-chan struct{} {
	return s.done
}

// Stopped reports whether the listener has reached its terminal state.
func (s *Source) Stopped() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// pump turns the blocking PollEvent into a channel the listener can select on.
func (s *Source) pump(out chan<- tcell.Event, stop <-chan struct{}) {
	defer close(out)
	for {
		ev := s.poller.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-stop:
			return
		}
	}
}

func (s *Source) listen(ctx context.Context, incoming <-chan tcell.Event, stop chan struct{}) {
	defer close(s.done)
	defer s.events.Close()
	defer close(stop)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if ctx.Err() != nil {
				s.logger.Debug("input listener cancelled")
				return
			}
		case ev, ok := <-incoming:
			if !ok {
				s.logger.Debug("input backend closed")
				return
			}
			// Errors are logged and still forwarded like any other event.
			if errEv, isErr := ev.(*tcell.EventError); isErr {
				s.logger.Warn("input backend error", "error", errEv.Error())
			}
			if err := s.events.Push(ev); err != nil {
				s.logger.Error("raw event queue closed", "error", err)
				return
			}
			if IsEscape(ev) {
				s.logger.Debug("escape received, input listener stopping")
				return
			}
		}
	}
}

// IsEscape reports whether ev is an Escape key press.
func IsEscape(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	return ok && key.Key() == tcell.KeyEscape
}
