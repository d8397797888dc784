package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/fsnotify/fsnotify"
)

// ErrTypeWatch marks a file that could not be watched
const ErrTypeWatch = "watch"

// FileWatcher calls back when watched files change. Bursts of events for the
// same file within the debounce window result in a single call.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	mu        sync.Mutex
	callbacks map[string]func(string)
	dirs      map[string]int
	debounce  time.Duration
	timers    map[string]*time.Timer
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(debounce time.Duration) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.New("creating file watcher failed").
			WithType(ErrTypeWatch).
			Wrap(err)
	}

	return &FileWatcher{
		watcher:   w,
		callbacks: make(map[string]func(string)),
		dirs:      make(map[string]int),
		debounce:  debounce,
		timers:    make(map[string]*time.Timer),
	}, nil
}

// Watch registers callback for files. The parent directories are watched so
// that editors replacing a file on save keep triggering.
func (fw *FileWatcher) Watch(files []string, callback func(string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return errors.New("resolving watched path failed").
				WithType(ErrTypeWatch).
				WithTag("file", file).
				Wrap(err)
		}
		if _, ok := fw.callbacks[absPath]; ok {
			fw.callbacks[absPath] = callback
			continue
		}

		dir := filepath.Dir(absPath)
		if fw.dirs[dir] == 0 {
			if err := fw.watcher.Add(dir); err != nil {
				return errors.New("watching directory failed").
					WithType(ErrTypeWatch).
					WithTag("dir", dir).
					Wrap(err)
			}
		}
		fw.dirs[dir]++
		fw.callbacks[absPath] = callback

		logs.WithTag("file", absPath).Debug("watching file")
	}
	return nil
}

// Run dispatches file events until ctx is done or the watcher is closed
func (fw *FileWatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				fw.handleFileChange(filepath.Clean(event.Name))
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logs.Warn(errors.New("file watcher error").
				WithType(ErrTypeWatch).
				Wrap(err))
		}
	}
}

func (fw *FileWatcher) handleFileChange(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	callback, ok := fw.callbacks[filePath]
	if !ok {
		return
	}

	if timer, ok := fw.timers[filePath]; ok {
		timer.Stop()
	}
	fw.timers[filePath] = time.AfterFunc(fw.debounce, func() {
		logs.WithTag("file", filePath).Debug("file changed")
		callback(filePath)
	})
}

// Close stops pending callbacks and releases the watcher
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	fw.stopTimers()
	fw.mu.Unlock()
	return fw.watcher.Close()
}

// RemoveAll forgets every watched file
func (fw *FileWatcher) RemoveAll() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	fw.stopTimers()
	for dir := range fw.dirs {
		if err := fw.watcher.Remove(dir); err != nil {
			return errors.New("removing watched directory failed").
				WithType(ErrTypeWatch).
				WithTag("dir", dir).
				Wrap(err)
		}
	}

	fw.callbacks = make(map[string]func(string))
	fw.dirs = make(map[string]int)
	return nil
}

func (fw *FileWatcher) stopTimers() {
	for _, t := range fw.timers {
		t.Stop()
	}
	fw.timers = make(map[string]*time.Timer)
}
