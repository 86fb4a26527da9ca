package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/archdeps/pkg/archive"
	"github.com/matzehuels/archdeps/pkg/errors"
	"github.com/matzehuels/archdeps/pkg/report"
)

// defaultCacheTTL keeps cached archive records for a month.
const defaultCacheTTL = 30 * 24 * time.Hour

// Config is the optional config.toml. Command-line flags override it.
//
//	workers = 8
//	extensions = [".zst"]
//	closure = "full"
//	no_cache = false
//	cache_ttl = "168h"
type Config struct {
	Workers    int      `toml:"workers"`
	Extensions []string `toml:"extensions"`
	Closure    string   `toml:"closure"`
	NoCache    bool     `toml:"no_cache"`
	CacheTTL   string   `toml:"cache_ttl"`

	ttl time.Duration
}

func defaultConfig() Config {
	return Config{
		Extensions: slices.Clone(archive.DefaultExtensions),
		Closure:    string(report.ClosureOneHop),
		ttl:        defaultCacheTTL,
	}
}

// TTL returns the parsed cache_ttl.
func (c *Config) TTL() time.Duration { return c.ttl }

// configPath returns the config file location using XDG standard
// (~/.config/archdeps/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file at path on top of the defaults. A
// missing file is only an error when the path was given explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) && !explicit {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must not be negative, got %d", c.Workers)
	}
	if _, err := report.ParseClosure(c.Closure); err != nil {
		return err
	}
	if c.CacheTTL != "" {
		ttl, err := time.ParseDuration(c.CacheTTL)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache_ttl %q", c.CacheTTL)
		}
		c.ttl = ttl
	}
	return nil
}
