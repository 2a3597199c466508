// FILE: lixenwraith/appconfig/watch.go
package appconfig

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchBuffer is the capacity of the event channel returned by WatchFile
const DefaultWatchBuffer = 16

// WatchOptions configures file watching behavior
type WatchOptions struct {
	// Debounce coalesces bursts of file events (minimum MinDebounce)
	Debounce time.Duration

	// Buffer is the event channel capacity
	Buffer int
}

// DefaultWatchOptions returns sensible defaults for file watching
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		Debounce: DefaultDebounce,
		Buffer:   DefaultWatchBuffer,
	}
}

// WatchEvent reports the outcome of one reconfiguration triggered by a file change.
type WatchEvent struct {
	// Generation is the ID of the container built by the pass
	Generation string
	// Err is nil when the new container became current
	Err error
}

// Reload runs a complete configuration pass: a fresh container from setup,
// values from loader, then ReadyContext. The holder switches to the new
// container only if every step succeeds; otherwise the current container is
// left untouched. A missing configuration file is not an error by itself.
// It returns the new container's ID.
func (h *Holder) Reload(ctx context.Context, setup SetupFunc, loader *Loader) (string, error) {
	c, err := Configure(setup, h.opts...)
	if err != nil {
		return c.ID(), fmt.Errorf("configure: %w", err)
	}
	if err := loader.Load(c); err != nil && !onlyNotFound(err) {
		return c.ID(), fmt.Errorf("load: %w", err)
	}
	if err := c.ReadyContext(ctx); err != nil {
		return c.ID(), err
	}

	prev := h.swap(c)
	c.logger.Info("configuration reloaded", slog.String("previous_id", prev.ID()))
	return c.ID(), nil
}

// WatchFile watches the loader's configuration file and calls Reload after
// each debounced change. Each reload result is sent on the returned channel,
// which is closed when ctx is done or the underlying watcher fails.
func (h *Holder) WatchFile(ctx context.Context, setup SetupFunc, loader *Loader, opts WatchOptions) (<-chan WatchEvent, error) {
	if loader == nil || loader.File() == "" {
		return nil, fmt.Errorf("watch requires a loader with a configuration file")
	}
	if opts.Debounce < MinDebounce {
		opts.Debounce = MinDebounce
	}
	if opts.Buffer <= 0 {
		opts.Buffer = DefaultWatchBuffer
	}

	path, err := filepath.Abs(loader.File())
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", loader.File(), err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	// Watch the directory so atomic replace-by-rename is seen
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching directory %s: %w", filepath.Dir(path), err)
	}

	events := make(chan WatchEvent, opts.Buffer)
	go h.watchLoop(ctx, fsw, path, setup, loader, opts.Debounce, events)
	return events, nil
}

// watchLoop processes file system events with debouncing
func (h *Holder) watchLoop(ctx context.Context, fsw *fsnotify.Watcher, path string, setup SetupFunc, loader *Loader, debounce time.Duration, events chan<- WatchEvent) {
	defer close(events)
	defer fsw.Close()

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	send := func(ev WatchEvent) {
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			pending = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			send(WatchEvent{Err: fmt.Errorf("watcher: %w", err)})

		case <-pending:
			pending = nil
			id, err := h.Reload(ctx, setup, loader)
			if err != nil {
				h.Current().logger.Warn("configuration reload failed",
					slog.String("path", path),
					slog.String("generation", id),
					slog.String("error", err.Error()),
				)
			}
			send(WatchEvent{Generation: id, Err: err})
		}
	}
}
