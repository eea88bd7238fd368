// Package config loads the engine configuration from YAML or JSON files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/puppet/pkg/domain"
	"github.com/aretw0/puppet/pkg/sequencer"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the clip directory when no --config is given.
const DefaultFile = "puppet.yaml"

// Clip sources.
const (
	SourceLoam   = "loam"
	SourceRedis  = "redis"
	SourceMemory = "memory"
)

// Config is the full engine configuration.
type Config struct {
	Clips     ClipsConfig      `yaml:"clips" json:"clips" mapstructure:"clips"`
	Redis     RedisConfig      `yaml:"redis" json:"redis" mapstructure:"redis"`
	Playback  PlaybackConfig   `yaml:"playback" json:"playback" mapstructure:"playback"`
	Timers    TimersConfig     `yaml:"timers" json:"timers" mapstructure:"timers"`
	Triggers  TriggersConfig   `yaml:"triggers" json:"triggers" mapstructure:"triggers"`
	Sequences domain.Sequences `yaml:"sequences" json:"sequences" mapstructure:"sequences"`
	HTTP      HTTPConfig       `yaml:"http" json:"http" mapstructure:"http"`
	Log       LogConfig        `yaml:"log" json:"log" mapstructure:"log"`
}

type ClipsConfig struct {
	// Dir is the clip library for the loam source. Relative paths resolve against the config file.
	Dir         string        `yaml:"dir" json:"dir" mapstructure:"dir"`
	Source      string        `yaml:"source" json:"source" mapstructure:"source"`
	LoadTimeout time.Duration `yaml:"load_timeout" json:"load_timeout" mapstructure:"load_timeout"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr" mapstructure:"addr"`
	Password string `yaml:"password" json:"password" mapstructure:"password"`
	DB       int    `yaml:"db" json:"db" mapstructure:"db"`
	Prefix   string `yaml:"prefix" json:"prefix" mapstructure:"prefix"`
	// Publish streams lifecycle events on <prefix>events.
	Publish bool `yaml:"publish" json:"publish" mapstructure:"publish"`
}

type PlaybackConfig struct {
	Transition string        `yaml:"transition" json:"transition" mapstructure:"transition"`
	Fade       time.Duration `yaml:"fade" json:"fade" mapstructure:"fade"`
	FrameRate  int           `yaml:"frame_rate" json:"frame_rate" mapstructure:"frame_rate"`
}

type TimersConfig struct {
	Idle      time.Duration `yaml:"idle" json:"idle" mapstructure:"idle"`
	FightIdle time.Duration `yaml:"fight_idle" json:"fight_idle" mapstructure:"fight_idle"`
}

type TriggersConfig struct {
	PointerEntersFight bool `yaml:"pointer_enters_fight" json:"pointer_enters_fight" mapstructure:"pointer_enters_fight"`
	ClickEntersFight   bool `yaml:"click_enters_fight" json:"click_enters_fight" mapstructure:"click_enters_fight"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr" json:"addr" mapstructure:"addr"`
}

type LogConfig struct {
	Level  string `yaml:"level" json:"level" mapstructure:"level"`
	Format string `yaml:"format" json:"format" mapstructure:"format"`
}

// Default returns the configuration of the stock avatar.
func Default() Config {
	return Config{
		Clips: ClipsConfig{
			Dir:         ".",
			Source:      SourceLoam,
			LoadTimeout: 10 * time.Second,
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "puppet:",
		},
		Playback: PlaybackConfig{
			Transition: sequencer.CrossFade.String(),
			Fade:       sequencer.DefaultFade,
			FrameRate:  60,
		},
		Timers: TimersConfig{
			Idle:      10 * time.Second,
			FightIdle: 10 * time.Second,
		},
		Triggers: TriggersConfig{
			PointerEntersFight: true,
		},
		Sequences: domain.DefaultSequences(),
		HTTP:      HTTPConfig{Addr: ":8080"},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data, strings.ToLower(filepath.Ext(path)) == ".json")
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	if cfg.Clips.Dir != "" && !filepath.IsAbs(cfg.Clips.Dir) {
		cfg.Clips.Dir = filepath.Join(filepath.Dir(path), cfg.Clips.Dir)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns the defaults when path does not exist.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Parse decodes a YAML (or JSON) document over the defaults.
func Parse(data []byte, isJSON bool) (Config, error) {
	raw := map[string]any{}
	if isJSON {
		if err := json.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("failed to parse json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("failed to parse yaml: %w", err)
		}
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &cfg,
		ErrorUnused: true,
		// Lists in the file replace the defaults instead of overlaying them.
		ZeroFields: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error

	switch c.Clips.Source {
	case SourceLoam:
		if c.Clips.Dir == "" {
			errs = append(errs, errors.New("clips.dir is required for the loam source"))
		}
	case SourceRedis:
	case SourceMemory:
	default:
		errs = append(errs, fmt.Errorf("clips.source: unknown source %q", c.Clips.Source))
	}
	if c.Clips.LoadTimeout < 0 {
		errs = append(errs, errors.New("clips.load_timeout must not be negative"))
	}
	if (c.Clips.Source == SourceRedis || c.Redis.Publish) && c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis.addr is required"))
	}

	transition, err := sequencer.ParseTransition(c.Playback.Transition)
	if err != nil {
		errs = append(errs, fmt.Errorf("playback.transition: %w", err))
	}
	if transition == sequencer.CrossFade && c.Playback.Fade <= 0 {
		errs = append(errs, errors.New("playback.fade must be positive for crossfade"))
	}
	if c.Playback.FrameRate < 0 {
		errs = append(errs, errors.New("playback.frame_rate must not be negative"))
	}

	if c.Timers.Idle <= 0 {
		errs = append(errs, errors.New("timers.idle must be positive"))
	}
	if c.Timers.FightIdle <= 0 {
		errs = append(errs, errors.New("timers.fight_idle must be positive"))
	}

	for _, seq := range c.Sequences.Named() {
		for i, name := range seq.Clips {
			if strings.TrimSpace(string(name)) == "" {
				errs = append(errs, fmt.Errorf("sequences.%s[%d]: empty clip name", seq.Name, i))
			}
		}
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// Transition returns the parsed playback transition.
func (c Config) Transition() sequencer.Transition {
	t, _ := sequencer.ParseTransition(c.Playback.Transition)
	return t
}

// LogLevel parses log.level ("debug", "info", "warn", "error").
func (c Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.Log.Level))
	return level, err
}
