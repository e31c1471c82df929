package build

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for changes to settle.
const DefaultDebounce = 300 * time.Millisecond

// Watch calls rebuild after files under dirs change, at most once per quiet
// period. Directories created later are watched too. Watch blocks until ctx
// is done.
func Watch(ctx context.Context, dirs []string, debounce time.Duration, rebuild func(context.Context) error, logger *slog.Logger) error {
	if rebuild == nil {
		return errors.New("watch: rebuild is required")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	watched := 0
	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			logger.Warn("watch directory not found", "dir", dir)
			continue
		}
		n, err := addRecursive(watcher, dir)
		if err != nil {
			return err
		}
		watched += n
	}
	if watched == 0 {
		return errors.New("watch: no directories to watch")
	}
	logger.Info("watching for changes", "dirs", dirs, "watched", watched)

	timer := time.NewTimer(debounce)
	timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event) {
				continue
			}
			logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if _, err := addRecursive(watcher, event.Name); err != nil {
					logger.Warn("watch new directory failed", "dir", event.Name, "err", err)
				}
			}
			timer.Reset(debounce)
			fire = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)
		case <-fire:
			fire = nil
			logger.Info("rebuilding site")
			if err := rebuild(ctx); err != nil {
				logger.Error("rebuild failed", "err", err)
			}
		}
	}
}

func addRecursive(watcher *fsnotify.Watcher, root string) (int, error) {
	added := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		added++
		return nil
	})
	return added, err
}

func relevantEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(event.Name)
	return !strings.HasPrefix(base, ".") && !strings.HasSuffix(base, "~") && !strings.HasSuffix(base, ".swp")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
