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

	"shopfront.dev/app/internal/config"
	"shopfront.dev/app/internal/db"
	apphttp "shopfront.dev/app/internal/http"
	"shopfront.dev/app/internal/modules/products"
	"shopfront.dev/app/internal/modules/users"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	gdb, err := db.Open(cfg.Database)
	if err != nil {
		logger.Error("database open failed", slog.String("driver", cfg.Database.Driver), slog.Any("err", err))
		os.Exit(1)
	}

	ctx := context.Background()
	// the API owns its schema, same as the createtable tool
	if err := db.Migrate(ctx, gdb, &products.Product{}, &users.User{}); err != nil {
		logger.Error("migration failed", slog.Any("err", err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.API.Addr,
		Handler:           apphttp.NewAPIRouter(logger, gdb, cfg.API),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("api listening",
			slog.String("addr", cfg.API.Addr),
			slog.String("db", cfg.Database.Driver),
			slog.Any("cors", cfg.API.CORSOrigins),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(ctx, cfg.ShutdownTimeout, map[string]gfshutdown.Operation{
		"http": func(ctx context.Context) error { return srv.Shutdown(ctx) },
		"db":   func(context.Context) error { return db.Close(gdb) },
	})
	code := <-wait
	logger.Info("api stopped", slog.Int("code", code))
	os.Exit(code)
}
