package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"tabsgo/hostbridge"
	"tabsgo/version"
)

// Config holds host and client configuration.
type Config struct {
	SocketPath  string                 `mapstructure:"socket_path" validate:"required"`
	ListenAddr  string                 `mapstructure:"listen_addr" validate:"required,listen_addr"`
	OpenBrowser bool                   `mapstructure:"open_browser"`
	Verbose     bool                   `mapstructure:"verbose"`
	Versions    hostbridge.VersionInfo `mapstructure:"versions"`
}

// configDir returns the platform config directory for tabsgo.
func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir, _ = os.UserHomeDir()
	}
	return filepath.Join(dir, "tabsgo")
}

// newViper returns a viper instance reading config.yaml from the config dir
// and TABSGO_* environment variables.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir())

	v.SetEnvPrefix("TABSGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("socket_path", filepath.Join(configDir(), "tabsgo.sock"))
	v.SetDefault("listen_addr", "127.0.0.1:8765")
	v.SetDefault("open_browser", false)
	v.SetDefault("verbose", false)
	v.SetDefault("versions.chrome", version.Engine)
	v.SetDefault("versions.node", version.ScriptRuntime)
	v.SetDefault("versions.electron", version.Version)
	return v
}

// LoadConfig reads the config file if present, applies env and flag overrides,
// and validates the result.
func LoadConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	validate := validator.New()
	_ = validate.RegisterValidation("listen_addr", isListenAddr)
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// isListenAddr accepts host:port with an optional host, including bracketed
// IPv6 literals. Port 0 picks an ephemeral port.
func isListenAddr(fl validator.FieldLevel) bool {
	_, port, err := net.SplitHostPort(fl.Field().String())
	if err != nil {
		return false
	}
	_, err = strconv.ParseUint(port, 10, 16)
	return err == nil
}
