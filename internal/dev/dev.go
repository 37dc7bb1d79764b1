package dev

import (
	"context"
	"log/slog"
)

// Reloader turns batches of file changes into browser notifications.
// A batch made only of stylesheet changes swaps stylesheets in place; any
// other change reloads the page. Config changes are passed to OnConfig first.
type Reloader struct {
	Server   *ReloadServer
	OnConfig func(path string) error
	Logger   *slog.Logger
}

// Handle processes one batch of changes.
func (r *Reloader) Handle(changes []Change) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if len(changes) == 0 {
		return
	}

	cssOnly := true
	for _, c := range changes {
		logger.Info("file changed", "component", "dev", "path", c.Path, "type", c.Type.String())
		if c.Type != ChangeCSS {
			cssOnly = false
		}
		if c.Type == ChangeConfig && r.OnConfig != nil {
			if err := r.OnConfig(c.Path); err != nil {
				logger.Error("config reload failed", "component", "dev", "path", c.Path, "error", err)
				r.Server.NotifyError(err.Error())
				return
			}
		}
	}

	r.Server.ClearError()
	if cssOnly {
		r.Server.NotifyCSS(changes[0].Path)
		return
	}
	r.Server.NotifyReload()
}

// Watch runs a watcher feeding r until ctx is cancelled.
func (r *Reloader) Watch(ctx context.Context, config WatcherConfig) error {
	w := NewWatcher(config)
	w.OnChange(r.Handle)
	return w.Run(ctx)
}
