package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// MCP modes.
const (
	MCPOff   = "off"
	MCPHTTP  = "http"
	MCPStdio = "stdio"
)

// Config defines server configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Store      StoreConfig      `yaml:"store"`
	Simulation SimulationConfig `yaml:"simulation"`
	Seed       SeedConfig       `yaml:"seed"`
	MCP        MCPConfig        `yaml:"mcp"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// StoreConfig selects where the demo data lives. Both backends are in memory.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	DSN     string `yaml:"dsn"`
}

type SimulationConfig struct {
	ErrorRate  float64 `yaml:"error_rate"`
	DelayScale float64 `yaml:"delay_scale"`
	// Delays overrides the latency of individual operations, e.g. list_leads: 1s.
	Delays map[string]time.Duration `yaml:"delays"`
}

type SeedConfig struct {
	Count int    `yaml:"count"`
	Seed  uint64 `yaml:"seed"`
}

type MCPConfig struct {
	Mode string `yaml:"mode"`
	Path string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Log: LogConfig{
			Level: "info",
		},
		Store: StoreConfig{
			Backend: BackendMemory,
			DSN:     ":memory:",
		},
		Simulation: SimulationConfig{
			ErrorRate:  0.05,
			DelayScale: 1,
		},
		Seed: SeedConfig{
			Count: 200,
		},
		MCP: MCPConfig{
			Mode: MCPHTTP,
			Path: "/mcp",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("SELLER_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("SELLER_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("SELLER_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SELLER_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if level := os.Getenv("SELLER_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if backend := os.Getenv("SELLER_STORE_BACKEND"); backend != "" {
		cfg.Store.Backend = backend
	}
	if rateStr := os.Getenv("SELLER_ERROR_RATE"); rateStr != "" {
		rate, err := strconv.ParseFloat(rateStr, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SELLER_ERROR_RATE: %w", err)
		}
		cfg.Simulation.ErrorRate = rate
	}
	if scaleStr := os.Getenv("SELLER_DELAY_SCALE"); scaleStr != "" {
		scale, err := strconv.ParseFloat(scaleStr, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SELLER_DELAY_SCALE: %w", err)
		}
		cfg.Simulation.DelayScale = scale
	}
	if seedStr := os.Getenv("SELLER_SEED"); seedStr != "" {
		seed, err := strconv.ParseUint(seedStr, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SELLER_SEED: %w", err)
		}
		cfg.Seed.Seed = seed
	}
	if mode := os.Getenv("SELLER_MCP_MODE"); mode != "" {
		cfg.MCP.Mode = mode
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch c.Store.Backend {
	case BackendMemory, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("store.backend must be %q or %q, got %q", BackendMemory, BackendSQLite, c.Store.Backend))
	}
	if c.Simulation.ErrorRate < 0 || c.Simulation.ErrorRate > 1 {
		errs = append(errs, fmt.Errorf("simulation.error_rate must be within [0, 1], got %v", c.Simulation.ErrorRate))
	}
	if c.Simulation.DelayScale < 0 {
		errs = append(errs, fmt.Errorf("simulation.delay_scale must not be negative, got %v", c.Simulation.DelayScale))
	}
	for op, d := range c.Simulation.Delays {
		if d < 0 {
			errs = append(errs, fmt.Errorf("simulation.delays.%s must not be negative", op))
		}
	}
	if c.Seed.Count < 0 {
		errs = append(errs, fmt.Errorf("seed.count must not be negative, got %d", c.Seed.Count))
	}
	switch c.MCP.Mode {
	case MCPOff, MCPHTTP, MCPStdio:
	default:
		errs = append(errs, fmt.Errorf("mcp.mode must be one of off, http, stdio, got %q", c.MCP.Mode))
	}
	return errors.Join(errs...)
}

// Addr returns the HTTP listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
