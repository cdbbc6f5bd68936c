// Package watch re-runs the pipeline whenever a watched file changes,
// debouncing bursts of events (editors routinely emit several writes per
// save) into a single re-analysis.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/ddcheck/ddcheck/internal/pipeline"
	"github.com/ddcheck/ddcheck/internal/result"
)

// Options controls watcher behavior.
type Options struct {
	DebounceMS     int
	IgnorePatterns []string
}

// DefaultOptions returns a 200ms debounce with no extra ignore patterns.
func DefaultOptions() Options {
	return Options{DebounceMS: 200}
}

// Watcher re-runs a pipeline.Pipeline's analysis over rootDir whenever a
// relevant file changes and reports the result through OnReport.
type Watcher struct {
	root string
	pipe *pipeline.Pipeline
	opts Options
	logger *slog.Logger

	fsw *fsnotify.Watcher

	debounceMu sync.Mutex
	timer      *time.Timer

	// OnReport is invoked after each debounced re-analysis, on a
	// dedicated goroutine distinct from the caller of Run.
	OnReport func(result.Report, error)
}

// New builds a Watcher for rootDir using pipe for analysis.
func New(root string, pipe *pipeline.Pipeline, opts Options, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.DebounceMS == 0 {
		opts.DebounceMS = 200
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	return &Watcher{root: root, pipe: pipe, opts: opts, logger: logger, fsw: fsw}, nil
}

// Run watches the project tree until ctx is cancelled, running one initial
// analysis immediately and a debounced re-analysis after each relevant
// change. Run blocks until ctx is done or an unrecoverable watch error
// occurs.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	if err := w.walkAndWatch(); err != nil {
		return err
	}

	w.emit()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.eventLoop(ctx)
	})
	return g.Wait()
}

func (w *Watcher) eventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) walkAndWatch() error {
	return filepath.Walk(w.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if w.shouldIgnoreDir(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

func (w *Watcher) shouldIgnoreDir(path string) bool {
	base := filepath.Base(path)
	switch base {
	case "node_modules", ".git", "dist", "build", ".next", "coverage":
		return true
	}
	for _, pattern := range w.opts.IgnorePatterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if w.shouldIgnoreDir(filepath.Dir(event.Name)) {
		return
	}
	switch {
	case event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0:
		w.debounce()
	}
}

// debounce collapses a burst of events arriving within DebounceMS into one
// re-analysis, restarting the timer on every new event.
func (w *Watcher) debounce() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(time.Duration(w.opts.DebounceMS)*time.Millisecond, w.emit)
}

func (w *Watcher) stopTimer() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) emit() {
	report, err := w.pipe.Run(w.root)
	if w.OnReport != nil {
		w.OnReport(report, err)
	} else if err != nil {
		w.logger.Error("analysis failed", "error", err)
	}
}
