package document

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/AkkiPaul2000/Screening-Ontology/internal/types"
)

// Watcher loads a document and reloads it whenever the file changes.
type Watcher struct {
	path     string
	logger   *zap.Logger
	mu       sync.RWMutex
	current  *types.Ontology
	onChange []func(*types.Ontology)
}

// NewWatcher creates a Watcher and performs the initial load.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{path: abs, logger: logger}
	o, err := Load(abs)
	if err != nil {
		return nil, err
	}
	w.current = o
	return w, nil
}

// Current returns the latest successfully loaded document.
func (w *Watcher) Current() *types.Ontology {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// OnChange registers a callback invoked after every successful reload.
func (w *Watcher) OnChange(fn func(*types.Ontology)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, fn)
}

// Watch starts a background goroutine reloading the document on change.
// The parent directory is watched so editors that replace the file by
// rename are picked up. Call the returned stop function to clean up.
func (w *Watcher) Watch() (stop func(), err error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("document watcher: %w", err)
	}
	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("document watcher add %s: %w", dir, err)
	}

	done := make(chan struct{})
	var once sync.Once
	go func() {
		defer fw.Close()
		for {
			select {
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != w.path {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
					if _, err := w.Reload(); err != nil {
						// Keep the previous document.
						w.logger.Warn("document reload failed", zap.String("path", w.path), zap.Error(err))
					}
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				w.logger.Warn("document watcher error", zap.Error(err))
			case <-done:
				return
			}
		}
	}()

	return func() { once.Do(func() { close(done) }) }, nil
}

// Reload re-reads the document and notifies callbacks.
func (w *Watcher) Reload() (*types.Ontology, error) {
	o, err := Load(w.path)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	w.current = o
	callbacks := make([]func(*types.Ontology), len(w.onChange))
	copy(callbacks, w.onChange)
	w.mu.Unlock()
	for _, fn := range callbacks {
		fn(o)
	}
	return o, nil
}
