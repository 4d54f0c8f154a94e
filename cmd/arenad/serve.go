package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/podiumlabs/arena/auth"
	"github.com/podiumlabs/arena/config"
	"github.com/podiumlabs/arena/logger"
	"github.com/podiumlabs/arena/metrics"
	"github.com/podiumlabs/arena/providers"
	"github.com/podiumlabs/arena/server"
	"github.com/podiumlabs/arena/snapshot"
	"github.com/podiumlabs/arena/tts"
	"github.com/podiumlabs/arena/version"
)

const shutdownGrace = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the debate arena server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	logger.SetVerbose(cfg.Verbose)
	metrics.Register(prometheus.DefaultRegisterer)

	store, err := buildStore(cfg)
	if err != nil {
		return err
	}

	srvCfg := server.Config{
		Provider:   buildProvider(cfg),
		Speech:     buildSpeech(cfg),
		Store:      store,
		Auth:       auth.NewClient(cfg.AuthBaseURL),
		TurnDelay:  cfg.TurnDelay,
		GuestQuota: cfg.GuestQuota,
		Language:   cfg.Language,
	}

	// Restore the identity saved by a previous run, if any.
	ctx := cmd.Context()
	if creds, err := store.LoadCredentials(ctx); err == nil {
		srvCfg.InitialSession = &auth.Session{Token: creds.Token, User: creds.User}
		logger.Info("restored credentials", "user", creds.User.DisplayName)
	} else if !errors.Is(err, snapshot.ErrNotFound) {
		logger.Warn("stored credentials unreadable", "error", err)
	}

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.New(srvCfg).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("arenad listening", append([]any{"addr", cfg.ListenAddr}, version.BuildAttrs()...)...)
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func buildProvider(cfg config.Config) providers.ContentProvider {
	if cfg.Provider == config.ProviderScripted {
		return &providers.ScriptedProvider{}
	}
	return providers.NewGemini(cfg.GeminiAPIKey)
}

func buildSpeech(cfg config.Config) tts.Service {
	if cfg.Provider == config.ProviderScripted {
		return &tts.ScriptedService{}
	}
	return tts.NewGemini(cfg.GeminiAPIKey)
}

func buildStore(cfg config.Config) (snapshot.Store, error) {
	switch cfg.Snapshot {
	case config.SnapshotMemory:
		return snapshot.NewMemoryStore(), nil
	case config.SnapshotRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return snapshot.NewRedisStore(client, snapshot.WithPrefix(cfg.RedisPrefix)), nil
	case config.SnapshotFile:
		return snapshot.NewFileStore(cfg.SnapshotPath)
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.Snapshot)
	}
}
