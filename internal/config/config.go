// Package config provides configuration management for the prefs CLI using Viper.
package config

import (
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/thoreinstein/prefs/internal/errors"
	"github.com/thoreinstein/prefs/internal/paths"
	"github.com/thoreinstein/prefs/pkg/resolver"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// PREFS_NAMESPACE or PREFS_DOCUMENT_PATH.
const EnvPrefix = "PREFS"

// ConfigDirEnv overrides the directory searched for config.yaml.
const ConfigDirEnv = "PREFS_CONFIG_DIR"

// Config represents the top-level configuration structure.
type Config struct {
	Version      int    `mapstructure:"version" yaml:"version"`
	Namespace    string `mapstructure:"namespace" yaml:"namespace"`
	SharedRoot   string `mapstructure:"shared_root" yaml:"shared_root"`
	LocalPath    string `mapstructure:"local_path" yaml:"local_path"`
	DocumentPath string `mapstructure:"document_path" yaml:"document_path"`
	LogFormat    string `mapstructure:"log_format" yaml:"log_format"`
}

// Init resets Viper and installs search paths, environment binding and
// defaults. Call this once at application startup before Load.
func Init() {
	viper.Reset()

	viper.SetConfigName(paths.ConfigFileName)
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	if dir, ok := os.LookupEnv(ConfigDirEnv); ok && dir != "" {
		viper.AddConfigPath(dir)
	} else {
		viper.AddConfigPath(paths.ConfigDir())
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("namespace", resolver.DefaultNamespace)
	viper.SetDefault("shared_root", paths.SharedRoot())
	viper.SetDefault("local_path", paths.LocalStorePath())
	viper.SetDefault("document_path", paths.DocumentPath())
	viper.SetDefault("log_format", "text")
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file and a missing file
// is an error. If path is empty, it searches the default locations and
// falls back to defaults when nothing is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load: defaults apply
		case errors.As(err, &notFound), errors.Is(err, fs.ErrNotExist):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, errors.Wrap(err, "expanding paths")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrapf(errs[0], "validating config")
	}

	return &cfg, nil
}

// UsedFile returns the config file Viper read, or "" when defaults apply.
func UsedFile() string {
	return viper.ConfigFileUsed()
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.SharedRoot, &c.LocalPath, &c.DocumentPath} {
		expanded, err := paths.ExpandHome(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

// ResolverOptions converts the configuration into resolver options.
func (c *Config) ResolverOptions(logger *slog.Logger) resolver.Options {
	return resolver.Options{
		Namespace:    c.Namespace,
		SharedRoot:   c.SharedRoot,
		LocalPath:    c.LocalPath,
		DocumentPath: c.DocumentPath,
		Logger:       logger,
	}
}
