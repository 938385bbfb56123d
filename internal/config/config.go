// Package config loads runtime settings for bundleserve.
// It uses Viper to merge defaults, an optional YAML file, environment
// variables and CLI flags.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration for bundleserve.
type Config struct {
	// ── Listener ─────────────────────────────────────────────────────────────
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	// ── Bundle ───────────────────────────────────────────────────────────────
	// RootDir is the served root produced by the packaging scripts.
	RootDir string `mapstructure:"root_dir"`
	// IndexFile is the document returned for "/". Relative paths are
	// resolved against RootDir.
	IndexFile string `mapstructure:"index_file"`
	// MIMEOverrides maps a suffix (with or without the leading dot) to the
	// Content-Type forced for it.
	MIMEOverrides map[string]string `mapstructure:"mime_overrides"`

	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds"`
}

// IndexPath returns the on-disk location of the root document.
func (c *Config) IndexPath() string {
	if filepath.IsAbs(c.IndexFile) {
		return c.IndexFile
	}
	return filepath.Join(c.RootDir, c.IndexFile)
}

// Addr returns host:port suitable for net.Listen.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// flag name → config key
var flagKeys = map[string]string{
	"host":  "host",
	"port":  "port",
	"root":  "root_dir",
	"index": "index_file",
}

// BindFlags declares the CLI flags that Load understands on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to a config file (default: ./bundleserve.yaml or ~/.bundleserve/bundleserve.yaml)")
	fs.String("host", "", "Bind address (default 127.0.0.1)")
	fs.Int("port", 0, "Listen port (default 8000)")
	fs.String("root", "", "Directory holding the static bundle (default dist)")
	fs.String("index", "", "Root document served at / (default index.html inside --root)")
}

// Load reads config from file (./bundleserve.yaml or ~/.bundleserve/bundleserve.yaml)
// and falls back to the defaults of the original dev server. Environment
// variables with prefix BUNDLESERVE_ override file values, and flags declared
// by BindFlags override both. fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", 8000)
	v.SetDefault("root_dir", "dist")
	v.SetDefault("index_file", "index.html")
	v.SetDefault("mime_overrides", map[string]string{"js": "application/javascript"})
	v.SetDefault("shutdown_timeout_seconds", 5)

	// --- Config file ---
	explicit := ""
	if fs != nil {
		explicit, _ = fs.GetString("config")
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("bundleserve")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.bundleserve")
	}
	if err := v.ReadInConfig(); err != nil {
		// only an explicitly named file is mandatory
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// --- Environment Variables ---
	v.SetEnvPrefix("BUNDLESERVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// --- Flags ---
	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	if strings.TrimSpace(c.RootDir) == "" {
		return errors.New("root_dir must not be empty")
	}
	if strings.TrimSpace(c.IndexFile) == "" {
		return errors.New("index_file must not be empty")
	}
	if c.ShutdownTimeoutSeconds < 0 {
		return fmt.Errorf("invalid shutdown_timeout_seconds %d", c.ShutdownTimeoutSeconds)
	}
	return nil
}
