package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
	"github.com/custodia-labs/compass/internal/logger"
)

// Ensure Inbox implements the interface.
var _ driven.Inbox = (*Inbox)(nil)

const (
	// DefaultDebounce is how long the inbox waits for a path to go quiet
	// before emitting it. Editors and copy tools write in several steps.
	DefaultDebounce = 250 * time.Millisecond

	// maxFileSize caps the files the inbox will read.
	maxFileSize = 10 << 20

	changeBuffer = 64
)

// ErrClosed is returned by Watch after Close.
var ErrClosed = errors.New("inbox closed")

// Inbox watches a folder for dropped files using fsnotify.
// Subdirectories are watched too. Hidden files and directories
// below the root are ignored.
type Inbox struct {
	root     string
	debounce time.Duration

	mu       sync.Mutex
	closed   bool
	watchers []*fsnotify.Watcher
}

// Option configures an Inbox.
type Option func(*Inbox)

// WithDebounce sets the quiet period before changes are emitted.
func WithDebounce(d time.Duration) Option {
	return func(i *Inbox) {
		if d > 0 {
			i.debounce = d
		}
	}
}

// New creates an inbox rooted at root.
func New(root string, opts ...Option) *Inbox {
	i := &Inbox{
		root:     root,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Root returns the watched directory.
func (i *Inbox) Root() string {
	return i.root
}

// Watch starts watching the root directory. Changes to the same path
// within the debounce window are coalesced into one event.
func (i *Inbox) Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return nil, ErrClosed
	}

	info, err := os.Stat(i.root)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path error: %s is not a directory", i.root)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := i.addTree(watcher, i.root); err != nil {
		watcher.Close()
		return nil, err
	}
	i.watchers = append(i.watchers, watcher)

	changes := make(chan domain.RawDocumentChange, changeBuffer)
	go i.run(ctx, watcher, changes)

	logger.Debug("Watching inbox %s", i.root)
	return changes, nil
}

// Close stops all watchers. It is safe to call more than once.
func (i *Inbox) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return nil
	}
	i.closed = true

	var errs []error
	for _, w := range i.watchers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	i.watchers = nil
	return errors.Join(errs...)
}

// run pumps fsnotify events into changes until ctx is done
// or the watcher is closed.
func (i *Inbox) run(ctx context.Context, watcher *fsnotify.Watcher, changes chan<- domain.RawDocumentChange) {
	defer close(changes)
	defer watcher.Close()

	pending := make(map[string]domain.ChangeType)
	timer := time.NewTimer(i.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			changeType, ok := i.classify(watcher, event)
			if !ok {
				continue
			}
			if prev, seen := pending[event.Name]; seen {
				changeType = coalesce(prev, changeType)
			}
			pending[event.Name] = changeType
			timer.Reset(i.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Inbox watcher error: %v", err)

		case <-timer.C:
			if !i.flush(ctx, pending, changes) {
				return
			}
			pending = make(map[string]domain.ChangeType)
		}
	}
}

// flush emits pending changes in path order. Returns false if ctx ended.
func (i *Inbox) flush(ctx context.Context, pending map[string]domain.ChangeType, changes chan<- domain.RawDocumentChange) bool {
	paths := make([]string, 0, len(pending))
	for path := range pending {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		change := buildChange(path, pending[path])
		if change == nil {
			continue
		}
		select {
		case changes <- *change:
		case <-ctx.Done():
			return false
		}
	}
	return true
}

// classify maps an fsnotify event to a change type. New directories are
// added to the watcher and produce no change.
func (i *Inbox) classify(watcher *fsnotify.Watcher, event fsnotify.Event) (domain.ChangeType, bool) {
	if i.isHidden(event.Name) {
		return 0, false
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return domain.ChangeDeleted, true

	case event.Has(fsnotify.Create):
		info, err := os.Stat(event.Name)
		if err != nil {
			return 0, false
		}
		if info.IsDir() {
			if err := i.addTree(watcher, event.Name); err != nil {
				logger.Warn("Failed to watch %s: %v", event.Name, err)
			}
			return 0, false
		}
		return domain.ChangeCreated, true

	case event.Has(fsnotify.Write):
		return domain.ChangeUpdated, true

	default:
		return 0, false
	}
}

// coalesce merges a new change into the pending one for the same path.
// A file created and then written inside one window stays created.
func coalesce(prev, next domain.ChangeType) domain.ChangeType {
	switch {
	case prev == domain.ChangeCreated && next == domain.ChangeUpdated:
		return domain.ChangeCreated
	case prev == domain.ChangeDeleted && next == domain.ChangeCreated:
		return domain.ChangeUpdated
	default:
		return next
	}
}

// buildChange reads the file for a change. Files that vanished, are
// directories or exceed the size cap return nil.
func buildChange(path string, changeType domain.ChangeType) *domain.RawDocumentChange {
	doc := domain.RawDocument{
		URI:      path,
		MIMEType: domain.DetectMIMEType(path),
	}

	if changeType == domain.ChangeDeleted {
		return &domain.RawDocumentChange{Type: changeType, Document: doc}
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil
	}
	if info.Size() > maxFileSize {
		logger.Warn("Skipping %s: %d bytes exceeds limit", path, info.Size())
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Failed to read %s: %v", path, err)
		return nil
	}
	doc.Content = content
	doc.Metadata = map[string]any{
		"size":     info.Size(),
		"modified": info.ModTime(),
	}

	return &domain.RawDocumentChange{Type: changeType, Document: doc}
}

// addTree adds dir and its visible subdirectories to the watcher.
func (i *Inbox) addTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if i.isHidden(path) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// isHidden reports whether path, relative to the root, has a hidden component.
func (i *Inbox) isHidden(path string) bool {
	rel, err := filepath.Rel(i.root, path)
	if err != nil {
		rel = path
	}
	return isHidden(rel)
}

// isHidden checks if any component of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
