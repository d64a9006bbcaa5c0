package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/milk9111/rcai/common"
)

const debounce = 100 * time.Millisecond

// Watcher reports prefab and script files that changed on disk. Names on
// the Events channel are relative to the prefab directory, so they can be
// handed straight back to Load or LoadScript.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
	roots   []string
}

// WatchPrefabs watches Dir and its scripts directory.
func WatchPrefabs() (*Watcher, error) {
	return NewWatcher(Dir, filepath.Join(Dir, "scripts"))
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		roots:   dirs,
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	log := common.Logger(common.CategoryPrefabs)
	last := make(map[string]time.Time)
	defer close(w.Events)
	defer close(w.Errors)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			name := w.relative(event.Name)
			log.WithField("file", name).Debug("prefab changed")
			select {
			case w.Events <- name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
				log.WithError(err).Warn("dropping watcher error")
			}
		case <-w.closeCh:
			return
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	return isSpecFile(event.Name) || isScriptFile(event.Name)
}

// relative strips the watched prefab directory from path. Scripts keep
// their scripts/ prefix.
func (w *Watcher) relative(path string) string {
	slashed := filepath.ToSlash(path)
	base := filepath.ToSlash(filepath.Clean(Dir)) + "/"
	if after, ok := strings.CutPrefix(slashed, base); ok {
		return after
	}
	for _, root := range w.roots {
		prefix := filepath.ToSlash(filepath.Clean(root)) + "/"
		if after, ok := strings.CutPrefix(slashed, prefix); ok {
			return after
		}
	}
	return filepath.Base(path)
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".tengo"
}
