// Package app composes the chat client from its components.
package app

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Prantik123321/Chat-all/internal/bus"
	"github.com/Prantik123321/Chat-all/internal/lock"
	"github.com/Prantik123321/Chat-all/internal/logging"
	"github.com/Prantik123321/Chat-all/internal/notify"
	"github.com/Prantik123321/Chat-all/internal/pipeline"
	"github.com/Prantik123321/Chat-all/internal/presence"
	"github.com/Prantik123321/Chat-all/internal/profile"
	"github.com/Prantik123321/Chat-all/internal/session"
	"github.com/Prantik123321/Chat-all/internal/staging"
	"github.com/Prantik123321/Chat-all/internal/status"
	"github.com/Prantik123321/Chat-all/internal/transport"
	"github.com/Prantik123321/Chat-all/internal/tui"
	"github.com/Prantik123321/Chat-all/internal/tui/ui"
	"github.com/Prantik123321/Chat-all/internal/typing"
)

// Params holds the resolved client configuration passed to the fx module.
type Params struct {
	Profile     string
	ServerURL   string
	DisplayName string
	Theme       string
}

// Module returns the fx module for the chat client, composing all providers
// and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("chatbox",
		fx.Supply(p),
		fx.Provide(
			provideLogger,
			provideBus,
			provideStateMachine,
			provideLock,
			provideSessionState,
			provideNotifier,
			providePresence,
			provideFeed,
			provideAdapter,
			provideTyping,
			providePipeline,
			provideStager,
			provideHandler,
			provideTUI,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideLogger(p Params) (*zap.Logger, error) {
	return logging.New(profile.LogPath(p.Profile), p.Profile)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideStateMachine(b *bus.Bus) *status.Machine {
	return status.NewMachine(b)
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	if err := profile.EnsureDir(p.Profile); err != nil {
		return nil, err
	}
	logger.Info("acquiring profile lock", zap.String("profile", p.Profile))
	l, err := lock.Acquire(profile.Dir(p.Profile))
	if err != nil {
		return nil, err
	}
	logger.Info("profile lock acquired")
	return l, nil
}

func provideSessionState(p Params) *session.State {
	return session.NewState(p.DisplayName)
}

func provideNotifier(b *bus.Bus) *notify.Notifier {
	return notify.New(b)
}

func providePresence(state *session.State, b *bus.Bus) *presence.Tracker {
	return presence.NewTracker(state, b)
}

func provideFeed() *pipeline.Feed {
	return pipeline.NewFeed()
}

func provideAdapter(p Params, logger *zap.Logger) *transport.Adapter {
	return transport.NewAdapter(p.ServerURL, logger)
}

func provideTyping(state *session.State, adapter *transport.Adapter, b *bus.Bus, logger *zap.Logger) *typing.Coordinator {
	return typing.NewCoordinator(state, adapter, b, logger)
}

func providePipeline(state *session.State, feed *pipeline.Feed, adapter *transport.Adapter, coordinator *typing.Coordinator, notifier *notify.Notifier, b *bus.Bus, logger *zap.Logger) *pipeline.Pipeline {
	return pipeline.New(state, feed, adapter, coordinator, notifier, b, logger)
}

func provideStager(notifier *notify.Notifier, b *bus.Bus, logger *zap.Logger) *staging.Stager {
	return staging.NewStager(notifier, b, logger)
}

func provideHandler(state *session.State, machine *status.Machine, adapter *transport.Adapter, tracker *presence.Tracker, pipe *pipeline.Pipeline, coordinator *typing.Coordinator, notifier *notify.Notifier, b *bus.Bus, logger *zap.Logger) *session.Handler {
	return session.NewHandler(state, machine, adapter, tracker, pipe, coordinator, notifier, b, logger)
}

func provideTUI(p Params, state *session.State, machine *status.Machine, tracker *presence.Tracker, coordinator *typing.Coordinator, pipe *pipeline.Pipeline, stager *staging.Stager, notifier *notify.Notifier, b *bus.Bus, logger *zap.Logger) *tui.App {
	return tui.NewApp(tui.Deps{
		Profile:  p.Profile,
		Theme:    ui.ForName(p.Theme),
		State:    state,
		Machine:  machine,
		Presence: tracker,
		Typing:   coordinator,
		Pipeline: pipe,
		Stager:   stager,
		Notifier: notifier,
		Bus:      b,
		Logger:   logger,
	})
}

func registerLifecycle(lc fx.Lifecycle, adapter *transport.Adapter, handler *session.Handler, coordinator *typing.Coordinator, lk *lock.Lock, logger *zap.Logger) {
	connCtx, connCancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			adapter.SetCallbacks(transport.Callbacks{
				OnDialing:   handler.HandleDialing,
				OnConnected: handler.HandleConnected,
				OnDropped:   handler.HandleDropped,
				OnDown:      handler.HandleDown,
			})
			adapter.RegisterHandler(handler.HandleWire)

			go adapter.Start(connCtx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			coordinator.Stop()
			connCancel()
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("client stopped")
			_ = logger.Sync()
			return nil
		},
	})
}
