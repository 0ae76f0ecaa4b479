package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// PollingWatcher implements file watching using polling. Editors save with
// atomic renames that inotify misses on some platforms, so the deck file is
// polled instead.
type PollingWatcher struct {
	interval   time.Duration
	debounce   time.Duration
	maxRetries int
	retryDelay time.Duration
	fileInfos  map[string]fileInfo
	events     chan ports.FileChangeEvent
	mu         sync.RWMutex
	wg         sync.WaitGroup
	stopped    bool
	stopCh     chan struct{}
}

// fileInfo stores the last observed state of a watched file
type fileInfo struct {
	Size     int64
	ModTime  time.Time
	Checksum string
}

// NewPollingWatcher creates a polling-based file watcher from watcher
// settings, falling back to defaults for unset values.
func NewPollingWatcher(cfg entities.WatcherConfig) *PollingWatcher {
	return &PollingWatcher{
		interval:   cfg.GetInterval(),
		debounce:   cfg.GetDebounce(),
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.GetRetryDelay(),
		fileInfos:  make(map[string]fileInfo),
		events:     make(chan ports.FileChangeEvent, 10),
		stopCh:     make(chan struct{}),
	}
}

// Watch starts watching a file for changes
func (w *PollingWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileChangeEvent, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	// Initial scan
	if err := w.scanFile(absPath); err != nil {
		return nil, fmt.Errorf("initial scan: %w", err)
	}

	// Start polling in background
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.pollLoop(ctx, absPath)
	}()

	return w.events, nil
}

// Stop stops the file watcher
func (w *PollingWatcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.stopCh)
	// The poll loop takes this mutex, so release it before waiting
	w.mu.Unlock()

	w.wg.Wait()
	close(w.events)

	return nil
}

// scanFile scans a file and stores its info
func (w *PollingWatcher) scanFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	checksum, err := w.calculateChecksum(path)
	if err != nil {
		return fmt.Errorf("calculate checksum: %w", err)
	}

	w.mu.Lock()
	w.fileInfos[path] = fileInfo{
		Size:     info.Size(),
		ModTime:  info.ModTime(),
		Checksum: checksum,
	}
	w.mu.Unlock()

	return nil
}

// pollLoop continuously polls for file changes
func (w *PollingWatcher) pollLoop(ctx context.Context, path string) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	lastEventTime := time.Time{}

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			change, ok, err := w.checkWithRetry(ctx, path)
			if err != nil {
				log.Printf("watching %s: %v", path, err)
				continue
			}
			if !ok {
				continue
			}

			// Only send event if enough time has passed since last event
			if time.Since(lastEventTime) >= w.debounce {
				event := ports.FileChangeEvent{
					Path:      path,
					Type:      change,
					Timestamp: time.Now(),
				}

				select {
				case w.events <- event:
					lastEventTime = time.Now()
				case <-ctx.Done():
					return
				case <-w.stopCh:
					return
				}
			}
		}
	}
}

// checkWithRetry retries transient check failures before giving up on the
// tick. Slow network mounts and editors holding exclusive locks recover
// within a retry or two.
func (w *PollingWatcher) checkWithRetry(ctx context.Context, path string) (ports.ChangeType, bool, error) {
	var lastErr error
	for attempt := 0; attempt <= w.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(w.retryDelay):
			case <-ctx.Done():
				return 0, false, ctx.Err()
			case <-w.stopCh:
				return 0, false, nil
			}
		}

		change, ok, err := w.checkForChanges(path)
		if err == nil {
			return change, ok, nil
		}
		lastErr = err
	}
	return 0, false, lastErr
}

// checkForChanges reports whether the file changed and how
func (w *PollingWatcher) checkForChanges(path string) (ports.ChangeType, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			w.mu.Lock()
			_, existed := w.fileInfos[path]
			delete(w.fileInfos, path)
			w.mu.Unlock()
			// Report the disappearance once, not on every tick
			return ports.Deleted, existed, nil
		}
		return 0, false, fmt.Errorf("stat file: %w", err)
	}

	w.mu.RLock()
	oldInfo, exists := w.fileInfos[path]
	w.mu.RUnlock()

	// Smart pre-check: skip expensive checksum if size/time unchanged
	if exists && oldInfo.Size == info.Size() && oldInfo.ModTime.Equal(info.ModTime()) {
		return 0, false, nil
	}

	// Only calculate checksum when size or modification time changed
	checksum, err := w.calculateChecksum(path)
	if err != nil {
		return 0, false, fmt.Errorf("calculate checksum: %w", err)
	}

	w.mu.Lock()
	w.fileInfos[path] = fileInfo{
		Size:     info.Size(),
		ModTime:  info.ModTime(),
		Checksum: checksum,
	}
	w.mu.Unlock()

	if !exists {
		// The file came back after a delete, or appeared mid-watch
		return ports.Created, true, nil
	}

	if oldInfo.Checksum == checksum {
		// Touched but unchanged; the stored mtime was refreshed above so
		// the pre-check holds on the next tick
		return 0, false, nil
	}

	return ports.Modified, true, nil
}

// calculateChecksum calculates SHA256 checksum of a file
func (w *PollingWatcher) calculateChecksum(path string) (string, error) {
	file, err := os.Open(path) // #nosec G304 - path is validated by caller
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
