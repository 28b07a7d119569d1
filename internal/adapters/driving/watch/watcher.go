// Package watch ingests CVs dropped into an inbox directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/cvkit/internal/core/domain"
	"github.com/custodia-labs/cvkit/internal/core/ports/driving"
	"github.com/custodia-labs/cvkit/internal/extractors"
	"github.com/custodia-labs/cvkit/internal/logger"
)

// DefaultDebounce is how long a file must stay quiet before it is ingested.
const DefaultDebounce = 500 * time.Millisecond

// Result is the outcome of ingesting one file.
type Result struct {
	Path string
	CV   *domain.CV
	Err  error
}

// Watcher ingests files created or rewritten in a directory.
// Files are processed one at a time on a single goroutine.
type Watcher struct {
	dir      string
	cvs      driving.CVService
	debounce time.Duration
	maxSize  int64

	mu      sync.Mutex
	closed  bool
	watcher *fsnotify.Watcher
}

// New creates a watcher for dir that reads every file it sees.
func New(dir string, cvs driving.CVService) *Watcher {
	return NewWithMaxFileSize(dir, cvs, 0)
}

// NewWithMaxFileSize creates a watcher that does not read files larger than
// maxSize. Such files are still handed to ingest by size alone, so they are
// reported as oversize. A non-positive maxSize reads everything.
func NewWithMaxFileSize(dir string, cvs driving.CVService, maxSize int64) *Watcher {
	return &Watcher{
		dir:      dir,
		cvs:      cvs,
		debounce: DefaultDebounce,
		maxSize:  maxSize,
	}
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Scan ingests the files already present in the directory.
func (w *Watcher) Scan(ctx context.Context) ([]Result, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("inbox error: %w", err)
	}

	var results []Result
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		if res, ok := w.process(ctx, filepath.Join(w.dir, entry.Name())); ok {
			results = append(results, res)
		}
	}
	return results, nil
}

// Watch starts watching the directory. The returned channel is closed when
// ctx is cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan Result, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, errors.New("watcher is closed")
	}

	info, err := os.Stat(w.dir)
	if err != nil {
		return nil, fmt.Errorf("inbox error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("inbox error: %s is not a directory", w.dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(w.dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.watcher = fw

	results := make(chan Result, 16)
	go w.loop(ctx, fw, results)

	logger.Info("Watching %s", w.dir)
	return results, nil
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closed = true
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	w.watcher = nil
	return err
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, results chan<- Result) {
	defer close(results)
	defer fw.Close()

	tick := w.debounce / 2
	if tick <= 0 {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	// pending maps a path to its last write event.
	pending := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if path := w.handleFsEvent(event); path != "" {
				pending[path] = time.Now()
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch %s: %v", w.dir, err)

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < w.debounce {
					continue
				}
				delete(pending, path)

				res, ok := w.process(ctx, path)
				if !ok {
					continue
				}
				select {
				case results <- res:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// handleFsEvent returns the path to ingest for an event, or "" to ignore it.
func (w *Watcher) handleFsEvent(event fsnotify.Event) string {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return ""
	}
	if isHidden(filepath.Base(event.Name)) {
		return ""
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return ""
	}
	return event.Name
}

// process ingests a single file. It reports false when the file is gone.
func (w *Watcher) process(ctx context.Context, path string) (Result, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return Result{}, false
	}

	var data []byte
	if w.maxSize <= 0 || info.Size() <= w.maxSize {
		data, err = os.ReadFile(path)
		if err != nil {
			return Result{Path: path, Err: fmt.Errorf("read %s: %w", path, err)}, true
		}
	}

	name := filepath.Base(path)
	doc := &domain.SourceDocument{
		Filename: name,
		MIMEType: extractors.DetectMIMEType(name, data),
		Content:  data,
		Size:     info.Size(),
	}

	logger.Debug("Ingesting %s as %s", path, doc.MIMEType)
	cv, err := w.cvs.Ingest(ctx, doc)
	if err != nil {
		logger.Warn("ingest %s: %v", path, err)
		return Result{Path: path, Err: err}, true
	}
	return Result{Path: path, CV: cv}, true
}

// isHidden reports whether any element of path starts with a dot.
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
