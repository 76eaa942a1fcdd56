package app

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/kk-code-lab/suha/internal/event"
	"github.com/kk-code-lab/suha/internal/fs"
)

// drainCommand applies at most one queued command.
func (app *Application) drainCommand() {
	cmd, err := app.worker.ReceiveCommand()
	if err != nil {
		if !errors.Is(err, event.ErrNoCommand) {
			app.logger.Debug("command queue closed", "error", err)
		}
		return
	}
	app.applyCommand(cmd)
}

func (app *Application) applyCommand(cmd event.Command) {
	app.setStatus(cmd.String(), false)

	switch cmd := cmd.(type) {
	case event.MoveCommand:
		if err := app.move(cmd.Direction); err != nil {
			app.report(err)
		}
	case event.ErrorCommand:
		app.setStatus(cmd.String(), true)
	case event.DebugCommand:
		app.logger.Debug("debug command", "message", cmd.Message)
	default:
		// Mark, Copy, Cut, Paste and Undo only show up on the status line.
	}
}

func (app *Application) move(dir event.Movement) error {
	switch dir {
	case event.MoveUp:
		app.cache.Move(app.currentPath, -1)
		return nil
	case event.MoveDown:
		app.cache.Move(app.currentPath, 1)
		return nil
	case event.MoveLeft:
		return app.goParent()
	case event.MoveRight:
		return app.enterSelected()
	}
	return nil
}

// goParent moves to the parent directory. Its selection already points at
// the directory being left because PopulateToRoot laid the trail.
func (app *Application) goParent() error {
	parent, ok := parentOf(app.currentPath)
	if !ok {
		return nil
	}
	if _, cached := app.cache.Get(parent); !cached {
		if err := app.cache.PopulateToRoot(parent, app.display); err != nil {
			return err
		}
	}
	app.currentPath = parent
	app.retargetWatcher()
	return nil
}

// enterSelected descends into the selected entry when it is a directory.
func (app *Application) enterSelected() error {
	dir, ok := app.cache.Get(app.currentPath)
	if !ok {
		return nil
	}
	entry, ok := dir.SelectedEntry()
	if !ok || !entry.IsDir() {
		return nil
	}

	if err := app.cache.PopulateToRoot(entry.Path, app.display); err != nil {
		return err
	}
	app.currentPath = filepath.Clean(entry.Path)
	app.retargetWatcher()
	return nil
}

// SetDisplayOptions switches hidden-file and icon display. Every cached
// listing was built with the old options, so the cache is rebuilt from the
// current directory up.
func (app *Application) SetDisplayOptions(opts fs.DisplayOptions) error {
	if opts == app.display {
		return nil
	}
	app.display = opts
	app.cache.Clear()
	if err := app.cache.PopulateToRoot(app.currentPath, opts); err != nil {
		app.report(err)
		app.recoverCurrent()
		return err
	}
	app.retargetWatcher()
	return nil
}

// applyChangeHints reloads cached directories the watcher flagged, but only
// when their mtime confirms a change.
func (app *Application) applyChangeHints() {
	if app.watcher == nil {
		return
	}
	for _, path := range app.watcher.Drain() {
		dir, ok := app.cache.Get(path)
		if !ok {
			continue
		}
		if path == app.currentPath {
			if _, err := os.Stat(path); err != nil {
				app.logger.Warn("current directory vanished", "path", path, "error", err)
				app.recoverCurrent()
				continue
			}
		}
		if !dir.Modified() {
			continue
		}
		if err := app.cache.Reload(path, app.display); err != nil {
			app.logger.Warn("reload failed", "path", path, "error", err)
			if path == app.currentPath {
				app.report(err)
				app.recoverCurrent()
			}
			continue
		}
		app.logger.Debug("directory reloaded", "path", path)
	}
}

// recoverCurrent climbs to the nearest ancestor that still exists when the
// current directory has gone away.
func (app *Application) recoverCurrent() {
	path := app.currentPath
	for {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			break
		}
		parent, ok := parentOf(path)
		if !ok {
			return
		}
		path = parent
	}
	if path == app.currentPath {
		return
	}
	if err := app.cache.PopulateToRoot(path, app.display); err != nil {
		app.logger.Warn("cannot recover to ancestor", "path", path, "error", err)
		return
	}
	app.currentPath = path
	app.retargetWatcher()
}

func (app *Application) retargetWatcher() {
	if app.watcher == nil {
		return
	}
	paths := []string{app.currentPath}
	if parent, ok := parentOf(app.currentPath); ok {
		paths = append(paths, parent)
	}
	if err := app.watcher.Watch(paths...); err != nil {
		app.logger.Warn("watch failed", "error", err)
	}
}

// report logs err and queues it for the status line.
func (app *Application) report(err error) {
	app.logger.Error("command failed", "path", app.currentPath, "error", err)
	if qerr := app.worker.Report(err); qerr != nil {
		app.setStatus(err.Error(), true)
	}
}

func (app *Application) setStatus(msg string, isError bool) {
	app.status = msg
	app.statusIsError = isError
}
