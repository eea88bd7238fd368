package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/puppet/internal/logging"
	"github.com/aretw0/puppet/pkg/config"
)

// Options contains the flags shared by every command.
type Options struct {
	ConfigPath string
	Dir        string
	LogLevel   string
	Debug      bool
}

// LoadConfig resolves the configuration file and applies flag overrides.
//
// Lookup order: --config, then <dir>/puppet.yaml, then ./puppet.yaml, then defaults.
func LoadConfig(opts Options) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	switch {
	case opts.ConfigPath != "":
		cfg, err = config.Load(opts.ConfigPath)
	case opts.Dir != "" && fileExists(filepath.Join(opts.Dir, config.DefaultFile)):
		cfg, err = config.Load(filepath.Join(opts.Dir, config.DefaultFile))
	default:
		cfg, err = config.LoadOrDefault(config.DefaultFile)
	}
	if err != nil {
		return config.Config{}, err
	}

	if opts.Dir != "" {
		cfg.Clips.Dir = opts.Dir
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.Debug {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// CreateLogger configures the application logger from cfg.log.
func CreateLogger(cfg config.Config) *slog.Logger {
	level, err := cfg.LogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return logging.ForFormat(cfg.Log.Format, level)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// printSystemMessage prints a standardized system message to stdout.
func printSystemMessage(format string, args ...any) {
	fmt.Printf(">>> %s\n", fmt.Sprintf(format, args...))
}
