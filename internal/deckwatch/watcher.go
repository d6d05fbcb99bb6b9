// Package deckwatch monitors a directory of exported decklists and
// feeds every change through the parser, so decks edited in Arena and
// exported to disk flow into the roster without a manual import step.
package deckwatch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ramonehamilton/decklist-tracker/internal/mtga/deck"
)

// debounceWindow coalesces the burst of write events editors emit for
// a single save.
const debounceWindow = 250 * time.Millisecond

// Handler receives every successfully parsed deck. The deck's name is
// the file's base name without extension unless the handler renames it.
type Handler func(d *deck.Deck) error

// Watcher monitors a decklist directory.
type Watcher struct {
	dir      string
	handler  Handler
	stopChan chan struct{}
}

// NewWatcher creates a watcher over dir. The directory must exist.
func NewWatcher(dir string, handler Handler) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat decklist directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("decklist path %s is not a directory", dir)
	}
	return &Watcher{
		dir:      dir,
		handler:  handler,
		stopChan: make(chan struct{}),
	}, nil
}

// Start blocks, processing file events until the context is cancelled
// or Stop is called. Existing files are processed once on startup.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch decklist directory: %w", err)
	}

	if err := w.processExisting(); err != nil {
		return err
	}

	slog.Info("watching decklist directory", "dir", w.dir)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounceWindow)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopChan:
			return nil
		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !isDecklist(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()
		case err := <-watcher.Errors:
			slog.Warn("file watcher error", "error", err)
		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < debounceWindow {
					continue
				}
				delete(pending, path)
				if err := w.processFile(path); err != nil {
					slog.Warn("failed to process decklist", "path", path, "error", err)
				}
			}
		}
	}
}

// Stop terminates a running Start loop.
func (w *Watcher) Stop() {
	close(w.stopChan)
}

func (w *Watcher) processExisting() error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("read decklist directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isDecklist(entry.Name()) {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if err := w.processFile(path); err != nil {
			slog.Warn("failed to process decklist", "path", path, "error", err)
		}
	}
	return nil
}

func (w *Watcher) processFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read decklist: %w", err)
	}

	d, err := deck.Parse(string(data))
	if err != nil {
		return fmt.Errorf("parse decklist: %w", err)
	}
	if d.Name == "" {
		d.Name = deckName(path)
	}
	return w.handler(d)
}

func isDecklist(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".txt" || ext == ".deck"
}

func deckName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
