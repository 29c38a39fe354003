// Package watch reports when asset files on disk change, so the viewer can reload a model or
// sphere dataset while it is being edited.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"robot-viewer/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// debounce is how long a file must stay quiet before its change is delivered.
// Editors often write a file in several steps; only the settled content is reported.
const debounce = 100 * time.Millisecond

// Watcher watches individual files. It watches their directories, because editors that save by
// rename-and-replace drop a watch set on the file itself.
type Watcher struct {
	fs      *fsnotify.Watcher
	log     *logger.Logger
	changed chan string
	done    chan struct{}

	mu      sync.Mutex
	files   map[string]string // absolute path -> path as last given to Add
	dirs    map[string]bool
	pending map[string]*time.Timer
	gen     map[string]uint64 // bumped on every event; a timer only delivers its own generation
	closed  bool
}

// New starts a watcher. Call Close when done.
func New(log *logger.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	w := &Watcher{
		fs:      fw,
		log:     log,
		changed: make(chan string, 8),
		done:    make(chan struct{}),
		files:   make(map[string]string),
		dirs:    make(map[string]bool),
		pending: make(map[string]*time.Timer),
		gen:     make(map[string]uint64),
	}
	go w.loop()
	return w, nil
}

// Add starts reporting changes to path. Adding a file that is already watched only updates the
// spelling Changed reports for it.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.dirs[dir] {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watch: %s: %w", path, err)
		}
		w.dirs[dir] = true
	}
	w.files[abs] = path
	return nil
}

// Changed delivers the path (as last given to Add) of every watched file that was written, created
// or replaced, once the file has been quiet for the debounce interval.
// Events are dropped rather than blocking when the receiver falls behind.
func (w *Watcher) Changed() <-chan string {
	return w.changed
}

// Close stops the watcher. Changed is not closed.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	for abs, t := range w.pending {
		t.Stop()
		delete(w.pending, abs)
	}
	w.mu.Unlock()
	close(w.done)
	return w.fs.Close()
}

// SamePath reports whether a and b name the same file once made absolute.
func SamePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.notice(event.Name)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Logf("watch: %v", err)
		}
	}
}

// notice (re)starts the quiet timer for name. It reports false when name is not watched.
func (w *Watcher) notice(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return false
	}
	if _, ok := w.files[abs]; !ok {
		return false
	}
	if t, ok := w.pending[abs]; ok {
		t.Stop()
	}
	w.gen[abs]++
	gen := w.gen[abs]
	w.pending[abs] = time.AfterFunc(debounce, func() { w.fire(abs, gen) })
	return true
}

// fire delivers abs unless a newer event has restarted its timer since.
func (w *Watcher) fire(abs string, gen uint64) {
	w.mu.Lock()
	if w.closed || w.gen[abs] != gen {
		w.mu.Unlock()
		return
	}
	delete(w.pending, abs)
	path := w.files[abs]
	w.mu.Unlock()

	select {
	case w.changed <- path:
	default:
	}
}
