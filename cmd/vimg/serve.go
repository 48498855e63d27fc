package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	clienthooks "github.com/vango-dev/vimg/client/hooks"
	"github.com/vango-dev/vimg/internal/config"
	"github.com/vango-dev/vimg/pkg/middleware"
	"github.com/vango-dev/vimg/pkg/placeholder"
)

func serveCmd(load configLoader) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve placeholders over HTTP",
		Long: `Serve placeholders from the configured source.

Routes:
  GET /placeholders/{key}              placeholder JSON
  GET /placeholders/{key}?format=jpeg  blurred JPEG
  GET /_vimg/hooks.js                  client hooks
  GET /metrics                         Prometheus metrics

Examples:
  vimg serve
  vimg serve --addr :9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			logger := cfg.Log.NewLogger(cmd.ErrOrStderr())
			source, err := newSource(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, newRouter(cfg, source, logger), logger)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default from config)")

	return cmd
}

// newSource builds the placeholder source named by the config.
func newSource(cfg *config.Config) (placeholder.Source, error) {
	pc := cfg.Placeholder
	switch pc.Source {
	case config.SourceS3:
		client := placeholder.NewS3Client(placeholder.S3Config{
			Region:    pc.S3.Region,
			AccessKey: pc.S3.AccessKey,
			SecretKey: pc.S3.SecretKey,
			Endpoint:  pc.S3.Endpoint,
			PathStyle: pc.S3.PathStyle,
		})
		return placeholder.NewS3Source(client, pc.Bucket, pc.Prefix), nil
	case config.SourceMinio:
		client, err := placeholder.NewMinioClient(placeholder.MinioConfig{
			Endpoint:  pc.Minio.Endpoint,
			AccessKey: pc.Minio.AccessKey,
			SecretKey: pc.Minio.SecretKey,
			UseSSL:    pc.Minio.UseSSL,
			Region:    pc.Minio.Region,
			Timeout:   pc.Minio.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return placeholder.NewMinioSource(client, pc.Bucket, pc.Prefix), nil
	default:
		return placeholder.NewDirSource(pc.SourceDir(cfg.Dir())), nil
	}
}

// newRouter wires the placeholder service, client hooks and metrics.
func newRouter(cfg *config.Config, source placeholder.Source, logger *slog.Logger) http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := placeholder.NewService(source,
		placeholder.NewGenerator(cfg.Placeholder.Options()),
		placeholder.WithLogger(logger),
		placeholder.WithMetrics(placeholder.NewMetrics(reg)))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.OpenTelemetry(middleware.WithFilter(func(r *http.Request) bool {
		return r.URL.Path != cfg.Server.MetricsPath
	})))
	r.Use(middleware.Prometheus(middleware.WithRegistry(reg)))
	r.Use(middleware.AccessLog(logger))

	r.Handle(cfg.Server.MetricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get(clienthooks.Path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		w.Write(clienthooks.HooksJS)
	})
	r.Mount("/", placeholder.Handler(svc))
	return r
}

func serve(ctx context.Context, cfg *config.Config, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving placeholders", "addr", srv.Addr, "source", cfg.Placeholder.Source)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
