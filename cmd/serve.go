/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/samwightt/gqllog/pkg/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type serveOptions struct {
	listen       string
	upstream     string
	logLevel     string
	logFormat    string
	maxBodyBytes int64
}

const shutdownTimeout = 10 * time.Second

func newLogger(level, format string, out io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch format {
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case "console":
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return nil, fmt.Errorf("invalid log format: %s (valid: json, console)", format)
	}

	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(out), lvl)), nil
}

func newProxyHandler(upstream string, logger *zap.Logger, maxBodyBytes int64) (http.Handler, error) {
	target, err := url.Parse(upstream)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream URL: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("upstream URL must include scheme and host: %s", upstream)
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error("proxying request", zap.String("upstream", upstream), zap.Error(err))
		w.WriteHeader(http.StatusBadGateway)
	}

	logRequests := middleware.New(middleware.Options{
		Logger:       logger,
		MaxBodyBytes: maxBodyBytes,
	})
	return logRequests(proxy), nil
}

func NewServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a logging reverse proxy in front of a GraphQL server",
		Long: `Runs an HTTP reverse proxy that forwards every request to --upstream and
writes one structured log line per request to stderr. Each line carries the
method, path, status, duration and, for GraphQL requests, the logged params and
resolvers.`,
		Example: `  gqllog serve --listen :8080 --upstream http://localhost:4000
  gqllog serve --upstream http://localhost:4000 --log-format console --log-level debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.listen, "listen", ":8080", "Address to listen on")
	cmd.Flags().StringVar(&opts.upstream, "upstream", "", "GraphQL server to forward requests to")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "json", "Log format: json, console")
	cmd.Flags().Int64Var(&opts.maxBodyBytes, "max-body-bytes", middleware.DefaultMaxBodyBytes, "Largest request body inspected for logging")
	_ = cmd.MarkFlagRequired("upstream")

	return cmd
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	logger, err := newLogger(opts.logLevel, opts.logFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	handler, err := newProxyHandler(opts.upstream, logger, opts.maxBodyBytes)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              opts.listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", opts.listen), zap.String("upstream", opts.upstream))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
