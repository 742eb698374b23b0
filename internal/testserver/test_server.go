// Package testserver starts a complete seller console on an httptest server.
package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rpggio/sellerconsole/internal/app"
	"github.com/rpggio/sellerconsole/internal/client"
	"github.com/rpggio/sellerconsole/internal/config"
	"github.com/rpggio/sellerconsole/internal/mcp"
	"github.com/rpggio/sellerconsole/internal/transport"
	"github.com/stretchr/testify/require"
)

// TestServer is a running server with a client pointed at it.
type TestServer struct {
	Server *httptest.Server
	App    *app.App
	Client *client.Client
	// MCPURL is the streamable HTTP endpoint.
	MCPURL string
}

// Option adjusts the configuration before the server starts.
type Option func(*config.Config)

// WithBackend selects the store backend. SQLite gets a per-test shared
// in-memory database.
func WithBackend(backend string) Option {
	return func(cfg *config.Config) {
		cfg.Store.Backend = backend
	}
}

// WithErrorRate sets the initial failure rate.
func WithErrorRate(rate float64) Option {
	return func(cfg *config.Config) {
		cfg.Simulation.ErrorRate = rate
	}
}

// WithSeedCount sets how many leads are seeded.
func WithSeedCount(n int) Option {
	return func(cfg *config.Config) {
		cfg.Seed.Count = n
	}
}

// New starts a server without delays or failures unless options say otherwise.
func New(t *testing.T, opts ...Option) *TestServer {
	t.Helper()

	cfg := config.Default()
	cfg.Simulation.ErrorRate = 0
	cfg.Simulation.DelayScale = 0
	cfg.Seed.Count = 50
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Store.Backend == config.BackendSQLite {
		cfg.Store.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	}

	a, err := app.New(context.Background(), cfg, nil)
	require.NoError(t, err)

	mcpServer := mcp.NewServer(mcp.Config{Services: mcp.Services{
		Leads:         a.Leads,
		Opportunities: a.Opportunities,
		Activity:      a.Activity,
		Admin:         a.Admin,
		Dashboard:     a.Dashboard,
	}})
	router := transport.NewServer(transport.Services{
		Leads:         a.Leads,
		Opportunities: a.Opportunities,
		Activity:      a.Activity,
		Admin:         a.Admin,
		Dashboard:     a.Dashboard,
	}, transport.Options{MCP: mcp.NewHTTPHandler(mcpServer), MCPPath: cfg.MCP.Path})

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		_ = a.Close()
	})

	return &TestServer{
		Server: server,
		App:    a,
		Client: client.New(server.URL, client.Options{}),
		MCPURL: server.URL + cfg.MCP.Path,
	}
}
