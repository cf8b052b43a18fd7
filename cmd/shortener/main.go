package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/Totarae/brevly/internal/config"
	"github.com/Totarae/brevly/internal/database"
	grpcv2 "github.com/Totarae/brevly/internal/grpc/v2"
	"github.com/Totarae/brevly/internal/handlers"
	"github.com/Totarae/brevly/internal/repositories"
	"github.com/Totarae/brevly/internal/router"
	"github.com/Totarae/brevly/internal/service"
	"github.com/Totarae/brevly/internal/storage"
)

func main() {
	bootstrap := zap.Must(zap.NewProduction())

	// Инициализация конфигурации
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		bootstrap.Fatal("invalid configuration", zap.Error(err))
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		bootstrap.Fatal("failed to build logger", zap.Error(err))
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if lvl == zapcore.DebugLevel {
		return zap.NewDevelopment()
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

// openRepository выбирает хранилище по режиму конфигурации. closeFn освобождает его.
func openRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.Repository, func(), error) {
	switch cfg.Mode {
	case config.ModeDatabase:
		if err := database.Migrate(cfg.DatabaseDSN, cfg.MigrationsPath, logger); err != nil {
			return nil, nil, err
		}
		db, err := database.NewDB(ctx, cfg.DatabaseDSN, logger)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewLinkRepository(db.Pool), db.Close, nil
	case config.ModeSQLite:
		repo, err := repositories.NewSQLiteRepository(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {
			if err := repo.Close(); err != nil {
				logger.Warn("close sqlite", zap.Error(err))
			}
		}, nil
	case config.ModeMemory:
		return storage.NewMemoryStorage(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage mode %q", cfg.Mode)
	}
}

// run поднимает HTTP и, если задан адрес, gRPC сервер и ждёт отмены ctx.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("starting",
		zap.String("address", cfg.ServerAddress),
		zap.String("grpc_address", cfg.GRPCAddress),
		zap.String("mode", cfg.Mode),
	)

	repo, closeRepo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer closeRepo()

	svc := service.NewLinkService(repo, logger)
	handler := handlers.NewHandler(svc, logger)

	httpServer := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router.NewRouter(handler, logger),
	}

	httpListener, err := net.Listen("tcp", cfg.ServerAddress)
	if err != nil {
		return fmt.Errorf("listen http: %w", err)
	}

	var (
		grpcServer   *grpc.Server
		grpcListener net.Listener
	)
	if cfg.GRPCAddress != "" {
		grpcListener, err = net.Listen("tcp", cfg.GRPCAddress)
		if err != nil {
			httpListener.Close()
			return fmt.Errorf("listen grpc: %w", err)
		}
		grpcServer = grpc.NewServer(grpc.UnaryInterceptor(grpcv2.LoggingInterceptor(logger)))
		grpcv2.Register(grpcServer, grpcv2.NewGRPCServer(svc, logger))
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", zap.String("address", httpListener.Addr().String()))
		if err := httpServer.Serve(httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if grpcServer != nil {
		g.Go(func() error {
			logger.Info("gRPC server listening", zap.String("address", grpcListener.Addr().String()))
			if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("grpc server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if grpcServer != nil {
			grpcServer.GracefulStop()
		}
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
