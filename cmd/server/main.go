package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/sellerconsole/internal/app"
	"github.com/rpggio/sellerconsole/internal/config"
	"github.com/rpggio/sellerconsole/internal/mcp"
	"github.com/rpggio/sellerconsole/internal/transport"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seller-console: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("starting application: %w", err)
	}
	defer a.Close()

	services := transport.Services{
		Leads:         a.Leads,
		Opportunities: a.Opportunities,
		Activity:      a.Activity,
		Admin:         a.Admin,
		Dashboard:     a.Dashboard,
	}

	var mcpServer *sdkmcp.Server
	if cfg.MCP.Mode != config.MCPOff {
		mcpServer = mcp.NewServer(mcp.Config{
			Services: mcp.Services{
				Leads:         a.Leads,
				Opportunities: a.Opportunities,
				Activity:      a.Activity,
				Admin:         a.Admin,
				Dashboard:     a.Dashboard,
			},
			Logger: logger.With("component", "mcp"),
		})
	}

	opts := transport.Options{Logger: logger.With("component", "http")}
	if cfg.MCP.Mode == config.MCPHTTP {
		opts.MCP = mcp.NewHTTPHandler(mcpServer)
		opts.MCPPath = cfg.MCP.Path
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           transport.NewServer(services, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", httpServer.Addr, "mcp", cfg.MCP.Mode)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	if cfg.MCP.Mode == config.MCPStdio {
		g.Go(func() error {
			logger.Info("starting stdio transport")
			if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
				return fmt.Errorf("stdio server: %w", err)
			}
			// Closing stdin ends the process.
			stop()
			return nil
		})
	}

	return g.Wait()
}

// newLogger writes text logs to stdout, or stderr when stdout carries MCP
// stdio traffic. SELLER_LOG_PATH redirects them to a size-capped file.
func newLogger(cfg config.Config) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	var out io.Writer = os.Stdout
	if cfg.MCP.Mode == config.MCPStdio {
		out = os.Stderr
	}
	closeLog := func() {}
	if path := os.Getenv("SELLER_LOG_PATH"); path != "" {
		w, err := openLogFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			out = w
			closeLog = func() { _ = w.Close() }
		}
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), closeLog, nil
}
