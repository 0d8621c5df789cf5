// Package watch reruns the generator when entity sources change.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/entmirror/errors"
	"github.com/teranos/entmirror/logger"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 500 * time.Millisecond

// RunFunc performs one generation. Errors are logged and watching continues.
type RunFunc func(ctx context.Context) error

// Options configures a Watcher.
type Options struct {
	// Root is walked for directories to watch; new directories are added
	// as they appear.
	Root string
	// Ignore lists directories whose events never trigger a run, typically
	// the output directory so that our own writes do not loop.
	Ignore []string
	// Files are extra files that trigger a run, such as the config file.
	Files    []string
	Debounce time.Duration
}

// Watcher watches Go sources under a root and calls a RunFunc after changes
// settle. Runs never overlap; changes during a run schedule one more run.
type Watcher struct {
	opts    Options
	run     RunFunc
	watcher *fsnotify.Watcher
	log     *zap.SugaredLogger

	mu      sync.Mutex
	timer   *time.Timer
	running bool
	pending bool
	wg      sync.WaitGroup
}

// New creates a watcher over opts.Root. Call Run to start it.
func New(opts Options, run RunFunc) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, errors.WrapEnvironment(err, "failed to resolve watch root")
	}
	opts.Root = root
	for i, dir := range opts.Ignore {
		if abs, err := filepath.Abs(dir); err == nil {
			opts.Ignore[i] = abs
		}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapEnvironment(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		opts:    opts,
		run:     run,
		watcher: fw,
		log:     logger.ComponentLogger("watch"),
	}

	if err := w.addTree(root); err != nil {
		fw.Close()
		return nil, err
	}
	for _, f := range opts.Files {
		// Watch the directory; editors replace files on save
		if err := w.addDir(filepath.Dir(f)); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Run performs an initial run, then blocks until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	w.trigger(ctx)
	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			w.wg.Wait()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	if w.ignored(event.Name) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.log.Warnw("Failed to watch new directory", logger.FieldFile, event.Name, logger.FieldError, err)
			}
			return
		}
	}
	if !w.relevant(event.Name) {
		return
	}

	w.log.Debugw("Detected change", logger.FieldFile, event.Name, logger.FieldKind, event.Op.String())
	w.schedule(ctx)
}

// relevant reports whether a change to name can alter the output.
func (w *Watcher) relevant(name string) bool {
	if strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go") {
		return true
	}
	if filepath.Base(name) == "go.mod" {
		return true
	}
	for _, f := range w.opts.Files {
		if abs, err := filepath.Abs(f); err == nil && abs == name {
			return true
		}
	}
	return false
}

func (w *Watcher) ignored(name string) bool {
	for _, dir := range w.opts.Ignore {
		if name == dir || strings.HasPrefix(name, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// schedule debounces rapid changes into a single run.
func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.opts.Debounce, func() { w.trigger(ctx) })
}

// trigger starts a run, or marks one pending if a run is in progress.
func (w *Watcher) trigger(ctx context.Context) {
	w.mu.Lock()
	if ctx.Err() != nil {
		w.mu.Unlock()
		return
	}
	if w.running {
		w.pending = true
		w.mu.Unlock()
		return
	}
	w.running = true
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		for {
			if err := w.run(ctx); err != nil && ctx.Err() == nil {
				w.log.Errorw("Generation failed", logger.FieldError, err)
			}

			w.mu.Lock()
			if !w.pending || ctx.Err() != nil {
				w.running = false
				w.pending = false
				w.mu.Unlock()
				return
			}
			w.pending = false
			w.mu.Unlock()
		}
	}()
}

// addTree watches dir and every directory below it, skipping hidden,
// vendor and ignored directories.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && skipDir(d.Name()) || w.ignored(p) {
			return filepath.SkipDir
		}
		return w.addDir(p)
	})
}

func (w *Watcher) addDir(dir string) error {
	if err := w.watcher.Add(dir); err != nil {
		return errors.WrapEnvironment(err, "failed to watch "+dir)
	}
	return nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") ||
		name == "vendor" || name == "node_modules" || name == "testdata"
}
