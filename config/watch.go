package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"gopkg.in/fsnotify.v1"

	"github.com/Jontyellis1212/policysprint-ai-sub000/logging"
)

// Watcher reloads a configuration file when it changes on disk. A reload
// that fails to parse is logged and the previous configuration stays
// current.
type Watcher struct {
	path     string
	log      *slog.Logger
	watcher  *fsnotify.Watcher
	onChange func(*File)

	mu       sync.RWMutex
	current  *File
	stopChan chan struct{}
	done     chan struct{}
}

// Watch loads path and starts watching it. onChange, if not nil, is called
// from the watch goroutine after each successful reload.
func Watch(path string, log *slog.Logger, onChange func(*File)) (*Watcher, error) {
	path = filepath.Clean(path)
	f, err := Load(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: creating watcher: %w", err)
	}
	// Editors often replace the file, so watch the directory.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("config: watching %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		path:     path,
		log:      logging.Or(log),
		watcher:  fw,
		onChange: onChange,
		current:  f,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Current returns the most recent valid configuration.
func (w *Watcher) Current() *File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Close stops watching and waits for the watch goroutine to exit.
func (w *Watcher) Close() error {
	select {
	case <-w.stopChan:
		return nil
	default:
	}
	close(w.stopChan)
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watch error", slog.Any("error", err))
		}
	}
}

func (w *Watcher) reload() {
	f, err := Load(w.path)
	if err != nil {
		w.log.Warn("config reload failed, keeping previous", slog.String("path", w.path), slog.Any("error", err))
		return
	}
	w.mu.Lock()
	w.current = f
	w.mu.Unlock()
	w.log.Info("config reloaded", slog.String("path", w.path))
	if w.onChange != nil {
		w.onChange(f)
	}
}
