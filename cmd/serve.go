package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"portfolio-gallery/internal/adapters/httpapi"
	"portfolio-gallery/internal/ports"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the project gallery and the pinned-repositories endpoint over HTTP",
	Long: `Start an HTTP server exposing:

  GET /api/github-pinned?user=   pinned repositories (token stays server-side)
  GET /api/projects              filtered gallery (role, year, difficulty, q, sort, github)
  GET /api/status                gallery state and GitHub client statistics
  GET /api/health                liveness check

GitHub projects are fetched once in the background at startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides SERVER_ADDR and config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if serveAddr != "" {
		a.config.Server.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.gallery.Load(ctx)

	var pinned ports.PinnedSource
	if a.client.HasToken() {
		pinned = a.client
	} else {
		a.logger.Warn("GITHUB_TOKEN not set, /api/github-pinned will return no items")
	}

	srv := &http.Server{
		Addr: a.config.Server.Addr,
		Handler: httpapi.NewRouter(httpapi.Deps{
			Gallery: a.gallery,
			Pinned:  pinned,
			Stats:   func() any { return a.client.Stats() },
			Logger:  a.logger.Named("http"),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Shutting down server")

		timeout := time.Duration(a.config.Server.ShutdownTimeout) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
