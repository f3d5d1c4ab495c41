// cur-vintage-jobs — Help Wanted job board
//
// One binary with two faces:
//   - serve   JSON HTTP API for the web client (search, location, user posts,
//     skill extraction)
//   - search, locate, posts   terminal client over the same packages
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glageb/cur-vintage-jobs/internal/adzuna"
	"github.com/glageb/cur-vintage-jobs/internal/config"
	"github.com/glageb/cur-vintage-jobs/internal/geo"
	"github.com/glageb/cur-vintage-jobs/internal/logger"
	"github.com/glageb/cur-vintage-jobs/internal/store"
)

const version = "1.0.0"

func main() {
	root := &cobra.Command{
		Use:           "helpwanted",
		Short:         "Help Wanted job board",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), searchCmd(), locateCmd(), postsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app is what every command needs: config, logger and the record store.
type app struct {
	cfg        *config.Config
	log        *zap.Logger
	posts      *store.Store
	closeStore func() error
}

func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	backend, closeFn, err := store.Open(ctx, cfg.Store.URL)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	log.Info("[store] opened", zap.String("key", cfg.Store.Key))

	return &app{
		cfg:        cfg,
		log:        log,
		posts:      store.New(backend, cfg.Store.Key, log),
		closeStore: closeFn,
	}, nil
}

func (a *app) close() {
	if a.closeStore != nil {
		if err := a.closeStore(); err != nil {
			a.log.Warn("[store] close failed", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}

func (a *app) searchClient() *adzuna.Client {
	if !a.cfg.HasAdzunaCredentials() {
		a.log.Warn("[adzuna] ADZUNA_APP_ID / ADZUNA_APP_KEY not set; searches will fail")
	}
	return adzuna.NewClient(a.cfg.Adzuna.BaseURL, a.cfg.Adzuna.AppID, a.cfg.Adzuna.AppKey, a.log)
}

func (a *app) detector() *geo.Detector {
	return geo.NewDetector(a.cfg.Geo.BaseURL)
}

// withApp runs fn with a set-up app and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(ctx, a)
}

var errUsage = errors.New("invalid arguments")
