package daemon

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"sparkd/internal/api"
	"sparkd/internal/bus"
	"sparkd/internal/chat"
	"sparkd/internal/config"
	"sparkd/internal/directory"
	"sparkd/internal/likes"
	"sparkd/internal/lock"
	"sparkd/internal/logging"
	"sparkd/internal/paths"
	"sparkd/internal/profile"
	"sparkd/internal/store"
)

// Params holds the inputs passed to the fx module from main.
type Params struct {
	ConfigPath string
	SocketPath string // optional override for testing; empty = use default
}

// resolvedConfig is the loaded config with the data dir and socket path
// made absolute.
type resolvedConfig struct {
	*config.Config
}

// Module returns the fx module for the daemon, composing all providers
// and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("daemon",
		fx.Supply(p),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideBus,
			provideLock,
			provideStore,
			provideDirectory,
			provideChatStore,
			provideSimulator,
			provideResponder,
			provideProfileService,
			provideHandler,
			NewServer,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideConfig(p Params) (resolvedConfig, error) {
	path := p.ConfigPath
	if path == "" {
		path = paths.ConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return resolvedConfig{}, err
	}
	cfg.DataDir = paths.BaseDir(cfg.DataDir)
	if p.SocketPath != "" {
		cfg.SocketPath = p.SocketPath
	} else if cfg.SocketPath == "" {
		cfg.SocketPath = paths.SocketPath(cfg.DataDir)
	}
	return resolvedConfig{cfg}, nil
}

func provideLogger(cfg resolvedConfig) (*zap.Logger, error) {
	if err := paths.EnsureDirs(cfg.DataDir); err != nil {
		return nil, err
	}
	return logging.New(paths.LogPath(cfg.DataDir))
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideLock(cfg resolvedConfig, logger *zap.Logger) (*lock.Lock, error) {
	logger.Info("acquiring data dir lock", zap.String("dir", cfg.DataDir))
	l, err := lock.Acquire(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	logger.Info("data dir lock acquired")
	return l, nil
}

func provideStore(cfg resolvedConfig, logger *zap.Logger) (*store.DB, error) {
	dbPath := paths.DBPath(cfg.DataDir)
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	logger.Info("store initialized", zap.String("path", dbPath))
	return db, nil
}

func provideDirectory() *directory.Directory {
	return directory.New()
}

func provideChatStore(b *bus.Bus, logger *zap.Logger) *chat.Store {
	return chat.NewStore(b, logger)
}

func provideSimulator(cfg resolvedConfig, dir *directory.Directory, b *bus.Bus, logger *zap.Logger) *likes.Simulator {
	return likes.NewSimulator(dir, b, logger, cfg.Simulator.MaxLikes, cfg.SimulatorInterval())
}

func provideResponder(cfg resolvedConfig, chats *chat.Store, b *bus.Bus, logger *zap.Logger) *chat.Responder {
	return chat.NewResponder(chats, b, logger, cfg.ReplyDelay())
}

func provideProfileService(db *store.DB, sim *likes.Simulator, b *bus.Bus, logger *zap.Logger) *profile.Service {
	return profile.NewService(db, sim, b, logger)
}

func provideHandler(
	profiles *profile.Service,
	dir *directory.Directory,
	chats *chat.Store,
	sim *likes.Simulator,
	b *bus.Bus,
	logger *zap.Logger,
) *api.Handler {
	return api.NewHandler(profiles, dir, chats, sim, b, logger)
}

func registerLifecycle(
	lc fx.Lifecycle,
	srv *Server,
	lk *lock.Lock,
	db *store.DB,
	responder *chat.Responder,
	sim *likes.Simulator,
	profiles *profile.Service,
	b *bus.Bus,
	logger *zap.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// Start replying to outgoing messages.
			responder.Start(context.Background())

			// Serve the screen-facing API in the background.
			go func() {
				if err := srv.Start(); err != nil {
					logger.Error("http server error", zap.Error(err))
				}
			}()

			// A profile saved in an earlier run re-arms the simulator.
			// Storage trouble degrades to "no profile yet" rather than
			// blocking startup.
			if err := profiles.ArmIfPresent(); err != nil {
				logger.Error("profile check failed", zap.Error(err))
				b.Publish(bus.Event{
					Kind:      bus.KindNotification,
					Timestamp: time.Now(),
					Payload: bus.Notification{
						Text:     "Failed to load profile",
						Category: "error",
					},
				})
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			sim.Disarm()
			responder.Stop()
			srv.Stop(ctx)
			if err := db.Close(); err != nil {
				logger.Warn("error closing store", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("daemon stopped")
			return nil
		},
	})
}
