package locales

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/amarnathcjd/tghelper"
	"github.com/amarnathcjd/tghelper/telegram"
)

// Adder receives models discovered while watching, typically
// (*telegram.Dispatcher[T]).AddLocale.
type Adder[T any] func(code string, model T) error

// Watch adds localization files created in dir while ctx is alive.
// Registered models never change, so writes to a file whose code is
// already registered are logged and skipped. Watch returns when ctx ends.
func Watch[T any](ctx context.Context, dir string, strict bool, add Adder[T], log telegram.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer w.Close()

	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if err := w.Add(abs); err != nil {
		return errors.Wrapf(err, "watching %s", abs)
	}
	if log == nil {
		log = telegram.NewDefaultLogger("tghelper locales")
	}
	log.WithField("dir", abs).Debug("watching localization files")

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("[LocaleWatcher]")
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if _, ok := FormatOf(ev.Name); !ok {
				continue
			}
			if err := load(ev.Name, strict, add); err != nil {
				if errors.Is(err, tghelper.ErrDuplicateLocale) {
					log.WithField("file", ev.Name).Debug("localization already registered")
					continue
				}
				log.WithError(err).WithField("file", ev.Name).Warn("[LocaleWatcher]")
				continue
			}
			log.WithField("code", CodeOf(ev.Name)).Info("localization added")
		}
	}
}

func load[T any](path string, strict bool, add Adder[T]) error {
	entry, err := LoadFile[T](path)
	if err != nil {
		return err
	}
	if strict {
		if err := Validate(entry.Model); err != nil {
			return err
		}
	}
	return add(entry.Code, entry.Model)
}
