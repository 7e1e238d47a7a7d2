package stepd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/julianstephens/wellnest/internal/logger"
)

// FileSensor watches a file holding the current lifetime count, as written
// by a hardware bridge. The parent directory is watched so that bridges
// replacing the file by rename are picked up.
type FileSensor struct {
	path string
}

func NewFileSensor(path string) *FileSensor {
	return &FileSensor{path: path}
}

func (s *FileSensor) Name() string { return "file:" + s.path }

func (s *FileSensor) Subscribe(ctx context.Context) (<-chan int64, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	out := make(chan int64, 1)
	go func() {
		defer close(out)
		defer watcher.Close()

		// Emit whatever is already there so a fresh start has a reading.
		s.emit(ctx, out)

		target := filepath.Clean(s.path)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				s.emit(ctx, out)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Step file watcher error", "path", s.path, "error", err)
			}
		}
	}()
	return out, nil
}

func (s *FileSensor) emit(ctx context.Context, out chan<- int64) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read step file", "path", s.path, "error", err)
		}
		return
	}
	raw, err := ParseReading(data)
	if err != nil {
		// Partial writes show up as unparsable content; the next write event
		// carries the full value.
		logger.Debug("Skipping step file content", "path", s.path, "error", err)
		return
	}
	select {
	case out <- raw:
	case <-ctx.Done():
	}
}
