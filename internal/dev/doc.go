// Package dev implements the development mode of the dashboard server:
// a WebSocket reload channel to browsers and an fsnotify watcher that
// triggers it.
//
//	reload := dev.NewReloadServer(logger)
//	mux.Handle(dev.ReloadPath, reload)
//
//	r := &dev.Reloader{Server: reload}
//	go r.Watch(ctx, dev.WatcherConfig{Paths: []string{"public"}})
//
// Pages rendered in dev mode include ClientScript, which reconnects with
// exponential backoff and reloads the page (or only its stylesheets) when
// told to.
package dev
