package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileName = "sellerctl"
	configFileType = "yaml"
	envPrefix      = "SELLERCTL"

	cfgKeyServer  = "server"
	cfgKeyTimeout = "timeout"
	cfgKeyRetries = "retries"
	cfgKeyOutput  = "output"

	defaultServer  = "http://localhost:8080"
	defaultTimeout = 10 * time.Second
	defaultRetries = 2
)

// Output formats.
const (
	outputTable = "table"
	outputJSON  = "json"
)

// settings are the resolved client options.
type settings struct {
	Server  string
	Timeout time.Duration
	Retries int
	Output  string
}

// loadSettings resolves flags > SELLERCTL_* env > sellerctl.yaml > defaults.
// The config file is looked up in the working directory and the user config
// directory unless path names one. A missing file is not an error.
func loadSettings(path string, flags *pflag.FlagSet) (settings, error) {
	v := viper.New()
	v.SetDefault(cfgKeyServer, defaultServer)
	v.SetDefault(cfgKeyTimeout, defaultTimeout)
	v.SetDefault(cfgKeyRetries, defaultRetries)
	v.SetDefault(cfgKeyOutput, outputTable)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "sellerctl"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	for _, key := range []string{cfgKeyServer, cfgKeyTimeout, cfgKeyRetries, cfgKeyOutput} {
		if f := flags.Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return settings{}, fmt.Errorf("bind flag %s: %w", key, err)
			}
		}
	}

	s := settings{
		Server:  v.GetString(cfgKeyServer),
		Timeout: v.GetDuration(cfgKeyTimeout),
		Retries: v.GetInt(cfgKeyRetries),
		Output:  v.GetString(cfgKeyOutput),
	}
	switch s.Output {
	case outputTable, outputJSON:
	default:
		return settings{}, fmt.Errorf("output must be %q or %q, got %q", outputTable, outputJSON, s.Output)
	}
	if s.Timeout <= 0 {
		return settings{}, fmt.Errorf("timeout must be positive, got %s", s.Timeout)
	}
	return s, nil
}
