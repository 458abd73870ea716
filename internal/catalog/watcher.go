package catalog

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/kartabot/kartabot/pkg/metrics"
)

// Watcher reloads the catalog whenever the dataset file changes on disk.
// It watches the containing directory because most editors and deploy tools
// replace files instead of writing them in place.
type Watcher struct {
	catalog *Catalog
	path    string
	log     *slog.Logger
}

// NewWatcher builds a Watcher bound to the given catalog and dataset path.
func NewWatcher(catalog *Catalog, path string, log *slog.Logger) *Watcher {
	if log == nil {
		log = slog.Default()
	}

	return &Watcher{
		catalog: catalog,
		path:    filepath.Clean(path),
		log:     log,
	}
}

// Run watches the dataset until ctx is cancelled, swapping in a fresh
// snapshot after every change. A reload failure leaves the catalog empty and
// is logged; it never stops the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	w.log.Info("watching catalog dataset", slog.String("path", w.path))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			err := w.catalog.LoadFile(w.path)
			metrics.SetCatalogSize(w.catalog.Size(), len(w.catalog.Countries()))
			if err != nil {
				w.log.Error("catalog reload failed", slog.String("path", w.path), slog.Any("error", err))
				continue
			}

			w.log.Info("catalog reloaded",
				slog.Int("offerings", w.catalog.Size()),
				slog.Int("countries", len(w.catalog.Countries())),
			)

		case watchErr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("catalog watcher error", slog.Any("error", watchErr))
		}
	}
}
