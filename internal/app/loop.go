package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/suha/internal/event"
	"github.com/kk-code-lab/suha/internal/fs"
	"github.com/kk-code-lab/suha/internal/logging"
	renderui "github.com/kk-code-lab/suha/internal/ui/render"
	"github.com/kk-code-lab/suha/internal/watch"
)

// NewApplication initializes the terminal and loads the start directory and
// all of its ancestors. Any failure here is fatal.
func NewApplication(opts Options) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("cannot open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("cannot initialize terminal: %w", err)
	}

	app, err := newApplication(screen, opts)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

// newApplication wires an already initialized screen.
func newApplication(screen tcell.Screen, opts Options) (*Application, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	start := opts.Start
	if start == "" {
		cwd, err := GetCwd()
		if err != nil {
			return nil, fmt.Errorf("cannot determine working directory: %w", err)
		}
		start = cwd
	}
	start, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve %s: %w", opts.Start, err)
	}

	cache := fs.NewCache(logger)
	if err := cache.PopulateToRoot(start, opts.Display); err != nil {
		return nil, fmt.Errorf("cannot load %s: %w", start, err)
	}

	renderer := renderui.NewRenderer(screen)
	events := event.NewQueue[tcell.Event]()

	app := &Application{
		screen:      screen,
		cache:       cache,
		events:      events,
		source:      event.NewSource(screen, events, logger),
		worker:      event.NewWorker(events, renderer.Cursor),
		renderer:    renderer,
		logger:      logger,
		display:     opts.Display,
		frame:       frameInterval(opts.FPS),
		currentPath: start,
	}

	if !opts.NoWatch {
		watcher, err := watch.New(logger)
		if err != nil {
			logger.Warn("directory watching disabled", "error", err)
		} else {
			app.watcher = watcher
		}
	}
	app.retargetWatcher()

	logger.Info("session started", "path", start, "cached", cache.Len(), "fps", opts.FPS)
	return app, nil
}

// Run drives the render loop until Escape, until the input backend closes
// or until ctx is cancelled. Each frame renders, translates at most one raw
// event, applies at most one command and then sleeps for one frame interval.
func (app *Application) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	app.source.Start(ctx)

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	ticker := time.NewTicker(app.frame)
	defer ticker.Stop()

	for {
		app.applyChangeHints()
		app.render()

		exit, err := app.worker.HandleEvent()
		if err != nil {
			if errors.Is(err, event.ErrDisconnected) {
				app.logger.Info("input closed, leaving", "path", app.currentPath)
				return nil
			}
			return err
		}
		if exit {
			app.logger.Info("exit requested", "path", app.currentPath)
			return nil
		}

		app.drainCommand()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sigContCh:
			app.screen.Sync()
		case <-ticker.C:
		}
	}
}

func (app *Application) render() {
	app.renderer.Render(app.view())
}

func (app *Application) view() renderui.View {
	v := renderui.View{
		Path:          app.currentPath,
		ShowIcons:     app.display.ShowIcons,
		ShowHidden:    app.display.ShowHidden,
		Status:        app.status,
		StatusIsError: app.statusIsError,
	}
	if dir, ok := app.cache.Get(app.currentPath); ok {
		v.Current = &dir
	}
	if parent, ok := parentOf(app.currentPath); ok {
		if dir, ok := app.cache.Get(parent); ok {
			v.Parent = &dir
		}
	}
	return v
}
