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
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eplus-at/eplus-resources/config"
	httpapi "github.com/eplus-at/eplus-resources/internal/api/http"
	"github.com/eplus-at/eplus-resources/internal/bootstrap"
	"github.com/eplus-at/eplus-resources/internal/cronjob"
	"github.com/eplus-at/eplus-resources/internal/energyplus_simulation/engine"
	"github.com/eplus-at/eplus-resources/internal/energyplus_simulation/repository"
	simservice "github.com/eplus-at/eplus-resources/internal/energyplus_simulation/service"
	"github.com/eplus-at/eplus-resources/internal/platform/logger"
	"github.com/eplus-at/eplus-resources/internal/resource_management/service"
	"github.com/eplus-at/eplus-resources/internal/storage/postgres"
)

const serviceName = "eplus-resources"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mgr, err := service.Open(service.Options{
		ResourcesPath: cfg.Resources.Path,
		CacheDir:      cfg.Resources.CacheDir,
		AutoCache:     cfg.Resources.AutoCache,
		ProjectsDir:   cfg.Resources.Projects,
		TemplatesDir:  cfg.Resources.Templates,
	}, log)
	if err != nil {
		return fmt.Errorf("open resources: %w", err)
	}

	deps := bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		SimRatePerMin:  cfg.Jobs.SimRatePerMin,
		Log:            log,
		Resources:      mgr,
	}

	// Postgres keeps run summaries; without it runs are tracked in Redis only.
	var summaries simservice.SummaryStore
	if db, err := postgres.NewConnection(ctx, &cfg.Database); err != nil {
		log.Warn("postgres unavailable, summaries disabled", "error", err)
	} else {
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		summaries = repository.NewSummaryRepository(db)

		if pool, err := bootstrap.OpenDB(ctx, &cfg.Database, 0); err != nil {
			log.Warn("health db pool unavailable", "error", err)
		} else {
			defer pool.Close()
			deps.DB = pool
		}
	}

	var sims *simservice.SimulationService
	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, simulation API disabled", "error", err)
	} else {
		defer rdb.Close()
		deps.Redis = redisPinger(rdb)

		runner := engine.NewRunner(engine.Options{
			Binary:        cfg.EnergyPlus.Binary,
			Root:          cfg.EnergyPlus.Root,
			ExpandObjects: cfg.EnergyPlus.ExpandObjects,
			ReadVars:      cfg.EnergyPlus.ReadVars,
		}, log)
		sims = simservice.NewSimulationService(
			repository.NewRunRepository(rdb),
			summaries,
			runner,
			simservice.Defaults{WeatherFile: cfg.EnergyPlus.WeatherFile, OutputDir: cfg.EnergyPlus.OutputDir},
			log,
		)
		deps.Simulations = sims
	}

	scheduler := cronjob.NewScheduler(mgr, log)
	if err := scheduler.Start(cfg.Jobs.CacheRefreshCron); err != nil {
		return err
	}

	// Request contexts derive from baseCtx so open event streams end on
	// shutdown.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           bootstrap.BuildRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", srv.Addr, "env", cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cancelBase()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	scheduler.Stop(shutdownCtx)
	if sims != nil {
		if err := sims.Shutdown(shutdownCtx); err != nil {
			log.Warn("simulations still running at exit", "error", err)
		}
	}

	log.Info("server stopped")
	return nil
}

func redisPinger(rdb *redis.Client) httpapi.Pinger {
	return httpapi.PingFunc(func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
}
