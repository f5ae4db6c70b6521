package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"shopfront.dev/app/internal/config"
	apphttp "shopfront.dev/app/internal/http"
	"shopfront.dev/app/internal/modules/admin"
	"shopfront.dev/app/internal/modules/catalog"
	"shopfront.dev/app/internal/storage"
)

func main() {
	// .env is optional; production uses real env vars
	_ = godotenv.Load()
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if cfg.UsesDevSecret() {
		logger.Warn("COOKIE_SECRET not set, using the development secret")
	}

	ctx := context.Background()
	ops := map[string]gfshutdown.Operation{}

	var tokens admin.TokenStore = admin.NewMemoryStore(cfg.Web.SubmissionTTL)
	if cfg.Web.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Web.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Error("redis unreachable", slog.String("addr", cfg.Web.RedisAddr), slog.Any("err", err))
			os.Exit(1)
		}
		tokens = admin.NewRedisStore(rdb, "shop:submission:", cfg.Web.SubmissionTTL)
		ops["redis"] = func(context.Context) error { return rdb.Close() }
		logger.Info("submission tokens in redis", slog.String("addr", cfg.Web.RedisAddr))
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		logger.Error("storage init failed", slog.Any("err", err))
		os.Exit(1)
	}

	r, err := apphttp.NewRouter(apphttp.WebDeps{
		Logger:   logger,
		Config:   cfg.Web,
		Products: catalog.NewClient(cfg.Web.APIBaseURL, cfg.Web.APITimeout),
		Tokens:   tokens,
		Storage:  store,
	})
	if err != nil {
		logger.Error("router init failed", slog.Any("err", err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.Web.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("storefront listening",
			slog.String("addr", cfg.Web.Addr),
			slog.String("api", cfg.Web.APIBaseURL),
			slog.String("storage", cfg.Storage.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	ops["http"] = func(ctx context.Context) error { return srv.Shutdown(ctx) }
	wait := gfshutdown.GracefulShutdown(ctx, cfg.ShutdownTimeout, ops)
	code := <-wait
	logger.Info("storefront stopped", slog.Int("code", code))
	os.Exit(code)
}
