package artifacts

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/r9s-ai/langgate/pkg/registry"
)

const DefaultWatchDebounce = 300 * time.Millisecond

type WatchOptions struct {
	RegistryPath string
	OutDir       string
	Debounce     time.Duration
	// OnGenerate is called after every regeneration attempt, including failed
	// registry reloads (with a zero Result).
	OnGenerate func(Result, error)
}

// Watcher regenerates the artifacts whenever the registry file changes.
// Every regeneration ingests the file into a fresh Registry; a failed reload
// leaves the previously written artifacts untouched.
type Watcher struct {
	opts    WatchOptions
	file    string
	watcher *fsnotify.Watcher
}

// NewWatcher starts watching the directory that holds the registry file, so
// editors that replace the file by rename are noticed too.
func NewWatcher(opts WatchOptions) (*Watcher, error) {
	path := strings.TrimSpace(opts.RegistryPath)
	if path == "" {
		return nil, errors.New("watch needs a registry file")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultWatchDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return &Watcher{opts: opts, file: abs, watcher: fw}, nil
}

// Run blocks until ctx is done or the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	resetTimer := func() {
		if timer == nil {
			timer = time.NewTimer(w.opts.Debounce)
			timerC = timer.C
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(w.opts.Debounce)
		timerC = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case <-timerC:
			timerC = nil
			w.regenerate()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("registry watcher error: %v", err)
		case evt, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.shouldTrigger(evt) {
				resetTimer()
			}
		}
	}
}

func (w *Watcher) shouldTrigger(evt fsnotify.Event) bool {
	if strings.TrimSpace(evt.Name) == "" {
		return false
	}
	if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	name, err := filepath.Abs(evt.Name)
	if err != nil {
		return false
	}
	return name == w.file
}

func (w *Watcher) regenerate() {
	reg, err := registry.Load(w.opts.RegistryPath)
	if err != nil {
		log.Printf("regenerate failed: %v", err)
		w.report(Result{}, err)
		return
	}
	res, err := Write(w.opts.OutDir, reg)
	if err != nil {
		log.Printf("regenerate failed: %v", err)
	} else {
		log.Printf("regenerate ok: %s", res)
	}
	w.report(res, err)
}

func (w *Watcher) report(res Result, err error) {
	if w.opts.OnGenerate != nil {
		w.opts.OnGenerate(res, err)
	}
}
