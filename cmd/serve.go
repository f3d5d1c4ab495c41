package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glageb/cur-vintage-jobs/internal/api"
	"github.com/glageb/cur-vintage-jobs/internal/skills"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, serve)
		},
	}
}

func serve(ctx context.Context, a *app) error {
	if err := a.posts.Load(ctx); err != nil {
		return err
	}

	// ── Skill extraction ─────────────────────────────────────────────────────
	var completer skills.Completer
	if a.cfg.Skills.Enabled && a.cfg.Skills.OpenAIKey != "" {
		llm, err := skills.NewOpenAI(a.cfg.Skills.OpenAIKey, a.cfg.Skills.OpenAIModel)
		if err != nil {
			return err
		}
		completer = llm
		a.log.Info("[skills] extraction enabled", zap.String("model", a.cfg.Skills.OpenAIModel))
	}
	svc := skills.NewService(a.cfg.Skills.Enabled, completer, a.log)

	// ── HTTP server ──────────────────────────────────────────────────────────
	if !a.cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	h := api.NewHandler(a.searchClient(), a.detector(), a.posts, svc, a.cfg.Adzuna.Country, a.log)
	srv := &http.Server{
		Addr:         a.cfg.Addr(),
		Handler:      api.NewRouter(h, a.log, a.cfg.CORSOrigins()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("[api] listening", zap.String("addr", srv.Addr), zap.String("version", api.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	a.log.Info("[api] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("[api] shutdown error", zap.Error(err))
	}
	a.log.Info("[api] stopped")
	return nil
}
