package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-web/internal/config"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-web/internal/terminal"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-web/transport/rest"
	"github.com/rocketscienceinc/tictactoe-web/transport/websocket"
)

// RunApp - runs the HTTP and WebSocket servers until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessionRepo, checks, closeRepo, err := openSessionRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	sessionUseCase := usecase.NewSessionUseCase(logger, sessionRepo, usecase.Names{
		X: conf.Players.X,
		O: conf.Players.O,
	})

	pageHandler, err := rest.NewPageHandler(logger, conf.SocketPort)
	if err != nil {
		return fmt.Errorf("could not create page handler: %w", err)
	}

	restServer := rest.New(logger, rest.NewPingHandler(logger, checks), pageHandler)
	wsServer := websocket.New(logger, sessionUseCase)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if err := restServer.Start(groupCtx, conf.HTTPPort); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if err := wsServer.Start(groupCtx, conf.SocketPort); err != nil {
			return fmt.Errorf("WebSocket server error: %w", err)
		}
		return nil
	})

	err = group.Wait()
	log.Info("Application stopped")

	return err
}

// RunTerminal - plays a local game on stdin and stdout.
func RunTerminal(conf *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := tictactoe.New(tictactoe.WithPlayerNames(conf.Players.X, conf.Players.O))

	return terminal.Play(ctx, os.Stdin, os.Stdout, engine)
}

func openSessionRepository(
	ctx context.Context,
	log *slog.Logger,
	conf *config.Config,
) (repository.SessionRepository, map[string]rest.HealthCheck, func(), error) {
	if conf.Storage != config.StorageRedis {
		log.Info("Using in-memory session storage")
		return repository.NewMemorySessionRepository(), nil, func() {}, nil
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	log.Info("Using redis session storage", "addr", conf.Redis.GetRedisAddr(), "ttl", conf.SessionTTL)

	closeStorage := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	checks := map[string]rest.HealthCheck{"redis": redisStorage.Ping}

	return repository.NewSessionRepository(redisStorage.Connection, conf.SessionTTL), checks, closeStorage, nil
}
