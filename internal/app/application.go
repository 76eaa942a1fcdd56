package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/suha/internal/event"
	"github.com/kk-code-lab/suha/internal/fs"
	renderui "github.com/kk-code-lab/suha/internal/ui/render"
	"github.com/kk-code-lab/suha/internal/watch"
)

// Options configures a new Application.
type Options struct {
	// Start is the directory shown first. Empty means the working directory.
	Start   string
	Display fs.DisplayOptions
	FPS     int
	Logger  *slog.Logger
	// NoWatch disables filesystem change hints.
	NoWatch bool
}

// Application represents the running app.
type Application struct {
	screen   tcell.Screen
	cache    *fs.Cache
	events   *event.Queue[tcell.Event]
	source   *event.Source
	worker   *event.Worker
	watcher  *watch.Watcher
	renderer *renderui.Renderer
	logger   *slog.Logger

	display     fs.DisplayOptions
	frame       time.Duration
	currentPath string

	status        string
	statusIsError bool
}

// Close cleans up resources. Finalizing the screen also stops the input
// listener.
func (app *Application) Close() error {
	app.screen.Fini()
	app.worker.Close()
	if app.watcher != nil {
		return app.watcher.Close()
	}
	return nil
}

// GetCurrentPath returns the current directory to output on exit.
func (app *Application) GetCurrentPath() string {
	return app.currentPath
}

// DisplayOptions returns the listing options in effect.
func (app *Application) DisplayOptions() fs.DisplayOptions {
	return app.display
}

// GetCwd returns current working directory.
func GetCwd() (string, error) {
	return os.Getwd()
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}

func parentOf(path string) (string, bool) {
	parent := filepath.Dir(path)
	return parent, parent != path
}
