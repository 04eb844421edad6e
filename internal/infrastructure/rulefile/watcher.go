package rulefile

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jhoicas/TollFee-api/pkg/logger"
)

// DefaultDebounce espera tras el último evento antes de recargar.
const DefaultDebounce = 250 * time.Millisecond

// Watcher invoca onChange cuando el archivo de tarifarios cambia.
type Watcher struct {
	path     string
	onChange func(context.Context) error
	debounce time.Duration
	log      *logger.Logger
}

// NewWatcher construye el vigilante. onChange recibe el contexto de Run.
func NewWatcher(path string, onChange func(context.Context) error, log *logger.Logger) *Watcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Watcher{path: path, onChange: onChange, debounce: DefaultDebounce, log: log.Component("rulefile")}
}

// WithDebounce cambia la espera entre el último evento y la recarga.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Run bloquea hasta que ctx se cancela. Se vigila el directorio completo: editores y
// ConfigMaps reemplazan el archivo con un rename.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer fw.Close()

	target, err := filepath.Abs(w.path)
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("vigilar %s: %w", filepath.Dir(target), err)
	}
	w.log.Info().Str("path", target).Msg("vigilando archivo de tarifarios")

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op == fsnotify.Chmod {
				continue
			}
			w.log.Debug().Str("op", ev.Op.String()).Msg("cambio detectado")
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("error de fsnotify")
		case <-timer.C:
			if err := w.onChange(ctx); err != nil {
				w.log.Error().Err(err).Msg("recarga de tarifarios fallida")
				continue
			}
			w.log.Info().Msg("tarifarios recargados")
		}
	}
}
