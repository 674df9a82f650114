// Package sipconfig runs the sipconfig commands on top of the configured
// readers.
package sipconfig

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sjzar/sipconfig/internal/render"
	"github.com/sjzar/sipconfig/internal/sip"
	"github.com/sjzar/sipconfig/internal/sipconfig/conf"
	"github.com/sjzar/sipconfig/internal/sipconfig/extension"
	"github.com/sjzar/sipconfig/internal/sipconfig/http"
	"github.com/sjzar/sipconfig/internal/sipconfig/watch"
	"github.com/sjzar/sipconfig/internal/sipconfig/webhook"
	"github.com/sjzar/sipconfig/pkg/config"
)

// Manager holds the loaded config and the Reconciler built from it. Both are
// replaced together when the config file changes.
type Manager struct {
	scm *config.Manager

	mu      sync.RWMutex
	sc      *conf.Config
	rec     *sip.Reconciler
	watcher *watch.Watcher

	http *http.Service
}

func New() *Manager {
	return &Manager{}
}

func (m *Manager) load(configPath string, cmdConf map[string]any) error {
	c, cm, err := conf.LoadConfig(configPath, cmdConf)
	if err != nil {
		return err
	}
	m.scm = cm
	return m.apply(c)
}

// apply builds readers for c and, only if that succeeds, makes c the active
// config for every consumer: the Reconciler, the log level and a running
// watcher's webhooks and interval.
func (m *Manager) apply(c *conf.Config) error {
	rec, err := NewReconciler(c)
	if err != nil {
		return err
	}
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil && c.LogLevel != "" {
		zerolog.SetGlobalLevel(lvl)
	}

	m.mu.Lock()
	m.sc = c
	m.rec = rec
	w := m.watcher
	m.mu.Unlock()

	if w != nil {
		w.SetNotifiers(webhook.New(c))
		w.SetInterval(c.GetWatchInterval())
	}
	return nil
}

// watchConfig applies config file changes. A config that fails to decode or
// to build readers leaves the previous one active.
func (m *Manager) watchConfig() {
	dir := m.scm.Path
	m.scm.Watch(func() interface{} { return &conf.Config{} }, func(v interface{}) {
		c := v.(*conf.Config)
		c.ConfigDir = dir
		if err := m.apply(c); err != nil {
			log.Error().Err(err).Msg("config reload rejected")
			return
		}
		log.Info().Msg("config reloaded")
	})
}

// Config is the active config.
func (m *Manager) Config() *conf.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sc
}

// Evaluate runs the current Reconciler.
func (m *Manager) Evaluate(ctx context.Context) *sip.Report {
	m.mu.RLock()
	rec := m.rec
	m.mu.RUnlock()
	return rec.Evaluate(ctx)
}

func (m *Manager) CommandQuery(ctx context.Context, configPath string, cmdConf map[string]any, w io.Writer, f render.Format, verbose bool) error {
	if err := m.load(configPath, cmdConf); err != nil {
		return err
	}
	rep := m.Evaluate(ctx)
	if verbose {
		return render.Report(w, f, rep)
	}
	return render.Rows(w, f, rep.Rows)
}

// CommandHTTPServer serves the HTTP API until ctx is done.
func (m *Manager) CommandHTTPServer(ctx context.Context, configPath string, cmdConf map[string]any) error {
	if err := m.load(configPath, cmdConf); err != nil {
		return err
	}

	c := m.Config()
	log.Info().Msgf("server config: %+v", c)

	svc := http.NewService(c, m)
	if err := svc.Start(); err != nil {
		return err
	}
	m.mu.Lock()
	m.http = svc
	m.mu.Unlock()
	m.watchConfig()

	<-ctx.Done()
	return svc.Stop()
}

func (m *Manager) CommandExtension(ctx context.Context, configPath string, cmdConf map[string]any) error {
	if err := m.load(configPath, cmdConf); err != nil {
		return err
	}
	c := m.Config()
	m.watchConfig()

	return extension.Run(ctx, extension.Config{
		Socket:   c.Extension.Socket,
		Timeout:  c.Extension.Timeout,
		Interval: c.Extension.Interval,
	}, m)
}

func (m *Manager) CommandWatch(ctx context.Context, configPath string, cmdConf map[string]any) error {
	if err := m.load(configPath, cmdConf); err != nil {
		return err
	}

	c := m.Config()
	hooks := webhook.New(c)
	w := watch.New(m, c.GetWatchInterval(), hooks)
	m.mu.Lock()
	m.watcher = w
	m.mu.Unlock()
	m.watchConfig()

	log.Info().Int("webhooks", hooks.Len()).Dur("interval", c.GetWatchInterval()).Msg("watching sip config")
	return w.Run(ctx)
}
