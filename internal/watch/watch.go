// Package watch reports collection documents changed on disk by another
// process. Each changed document is announced once per quiet period as a
// bus.EventCollectionChanged event carrying the collection name.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/pocketkeeper/internal/bus"
	"github.com/dmitrijs2005/pocketkeeper/internal/logging"
	"github.com/fsnotify/fsnotify"
)

const documentExt = ".json"

type Watcher struct {
	dir      string
	debounce time.Duration
	events   *bus.Bus
	logger   logging.Logger
	fs       *fsnotify.Watcher
}

// Open starts watching dir. Call Run to deliver events and Close when done.
func Open(dir string, debounce time.Duration, events *bus.Bus, logger logging.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		events:   events,
		logger:   logger.With("dir", dir),
		fs:       fw,
	}, nil
}

// minTick keeps very short debounce values from stalling the loop.
const minTick = time.Millisecond

// tick is how often pending changes are checked.
func (w *Watcher) tick() time.Duration {
	return max(w.debounce/2, minTick)
}

func (w *Watcher) Close() error {
	return w.fs.Close()
}

// collection maps a file event path to a collection name. Temp files and
// foreign files are ignored.
func collection(path string) (string, bool) {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || filepath.Ext(name) != documentExt {
		return "", false
	}
	return strings.TrimSuffix(name, documentExt), true
}

// Run delivers events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info(ctx, "watching for changes", "debounce", w.debounce)

	pending := map[string]time.Time{}
	ticker := time.NewTicker(w.tick())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if name, ok := collection(ev.Name); ok {
				pending[name] = time.Now()
			}

		case now := <-ticker.C:
			for name, at := range pending {
				if now.Sub(at) >= w.debounce {
					delete(pending, name)
					w.logger.Debug(ctx, "collection changed", "collection", name)
					bus.Publish(w.events, bus.EventCollectionChanged, name)
				}
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn(ctx, "watch error", "error", err)
		}
	}
}
