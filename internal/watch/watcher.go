// Package watch regenerates settings code when appsettings files under a
// directory tree change.
package watch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// DefaultPattern matches settings files by base name, case-insensitively.
	DefaultPattern = "appsettings*.json"
	// DefaultSettleDelay gives the writer time to finish before the file is
	// read.
	DefaultSettleDelay = 100 * time.Millisecond
)

// Generator regenerates the artifacts for one settings file. An empty
// outputDir means next to the JSON file.
type Generator interface {
	GenerateFile(jsonPath, namespace, outputDir string) ([]string, error)
}

// Stats counts what the watcher did with matching events.
type Stats struct {
	Received   int64
	Suppressed int64
	Generated  int64
	Failed     int64
}

// Watcher runs the generator for every matching file change under root.
type Watcher struct {
	root     string
	base     string
	gen      Generator
	logger   *slog.Logger
	debounce *Debouncer
	settle   time.Duration
	pattern  string
	now      func() time.Time

	ready     chan struct{}
	readyOnce sync.Once
	inflight  sync.WaitGroup

	received   atomic.Int64
	suppressed atomic.Int64
	generated  atomic.Int64
	failed     atomic.Int64
}

type Option func(*Watcher)

func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

func WithDebounce(window time.Duration) Option {
	return func(w *Watcher) { w.debounce = NewDebouncer(window) }
}

func WithSettleDelay(d time.Duration) Option {
	return func(w *Watcher) { w.settle = d }
}

// WithPattern sets the base-name glob (filepath.Match syntax).
func WithPattern(p string) Option {
	return func(w *Watcher) {
		if p != "" {
			w.pattern = p
		}
	}
}

// WithClock replaces time.Now for debounce decisions.
func WithClock(now func() time.Time) Option {
	return func(w *Watcher) { w.now = now }
}

func New(root, baseNamespace string, gen Generator, opts ...Option) *Watcher {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	w := &Watcher{
		root:     root,
		base:     baseNamespace,
		gen:      gen,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		debounce: NewDebouncer(DefaultDebounce),
		settle:   DefaultSettleDelay,
		pattern:  DefaultPattern,
		now:      time.Now,
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Ready is closed once every directory under root is subscribed.
func (w *Watcher) Ready() <-chan struct{} { return w.ready }

// Stats returns a snapshot of the event counters.
func (w *Watcher) Stats() Stats {
	return Stats{
		Received:   w.received.Load(),
		Suppressed: w.suppressed.Load(),
		Generated:  w.generated.Load(),
		Failed:     w.failed.Load(),
	}
}

// Run watches until ctx is done. Generation already in progress is not
// cancelled; Run waits for it before returning nil.
func (w *Watcher) Run(ctx context.Context) error {
	info, err := os.Stat(w.root)
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch %s: not a directory", w.root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer fsw.Close()
	defer w.inflight.Wait()

	if err := w.addTree(fsw, w.root); err != nil {
		return err
	}
	w.readyOnce.Do(func() { close(w.ready) })
	w.logger.Info("watching for settings changes",
		"root", w.root, "namespace", w.base, "pattern", w.pattern)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopped", "root", w.root)
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.dispatch(fsw, ev)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("fsnotify error", "err", err)
		}
	}
}

// addTree subscribes dir and every directory below it.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir {
				return fmt.Errorf("walk %s: %w", p, err)
			}
			w.logger.Warn("skip unreadable path", "path", p, "err", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := fsw.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}

func (w *Watcher) dispatch(fsw *fsnotify.Watcher, ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(fsw, ev.Name); err != nil {
				w.logger.Warn("watch new directory", "path", ev.Name, "err", err)
			}
			return
		}
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return
	}
	if !w.Matches(ev.Name) {
		return
	}

	w.received.Add(1)
	w.inflight.Add(1)
	go func() {
		defer w.inflight.Done()
		w.handle(ev.Name)
	}()
}

// Matches reports whether path's base name matches the watch pattern.
func (w *Watcher) Matches(path string) bool {
	ok, err := filepath.Match(strings.ToLower(w.pattern), strings.ToLower(filepath.Base(path)))
	return err == nil && ok
}

// handle runs one event through debounce, settle and generation. Failures
// are logged and counted; they never stop the watcher.
func (w *Watcher) handle(path string) {
	if !w.debounce.ShouldProcess(path, w.now()) {
		w.suppressed.Add(1)
		w.logger.Debug("change suppressed", "path", path)
		return
	}

	if w.settle > 0 {
		time.Sleep(w.settle)
	}

	ns := Namespace(w.root, w.base, path)
	written, err := w.gen.GenerateFile(path, ns, "")
	if err != nil {
		w.failed.Add(1)
		w.logger.Error("generate settings code", "path", path, "namespace", ns, "err", err)
		return
	}
	w.generated.Add(1)
	w.logger.Info("generated settings code", "path", path, "namespace", ns, "files", written)
}
