package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/storyreel/internal/completion"
	"github.com/llehouerou/storyreel/internal/feed"
	"github.com/llehouerou/storyreel/internal/media"
)

type Config struct {
	Catalog  string `koanf:"catalog"`   // path to a catalog YAML file; empty uses the built-in story
	LogLevel string `koanf:"log_level"` // "debug", "info", "warn", "error" (default: "info")

	// Feed scrolling and playback
	Feed FeedConfig `koanf:"feed"`

	// Gemini completion backend (chat falls back to canned lines when unset)
	Gemini GeminiConfig `koanf:"gemini"`
}

// FeedConfig holds feed engine settings.
type FeedConfig struct {
	VisibilityThreshold float64 `koanf:"visibility_threshold"` // 0.5-1.0 (default: 0.6)
	PreloadWindow       *int    `koanf:"preload_window"`       // items mounted around the active one (default: 1, -1 = all)
	StartMuted          *bool   `koanf:"start_muted"`          // default: true
	Autoplay            string  `koanf:"autoplay"`             // "muted", "allow", "deny" (default: "muted")
}

// GeminiConfig holds Gemini API settings.
type GeminiConfig struct {
	APIKey          string  `koanf:"api_key"` // falls back to $GEMINI_API_KEY
	Model           string  `koanf:"model"`
	TimeoutSeconds  int     `koanf:"timeout_seconds"`
	Temperature     float64 `koanf:"temperature"`
	MaxOutputTokens int     `koanf:"max_output_tokens"`
}

// Load reads the config files in priority order (last wins). A non-empty
// explicit path is loaded last and must exist.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	if explicit != "" {
		path := expandPath(explicit)
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.Catalog != "" {
		cfg.Catalog = expandPath(cfg.Catalog)
	}
	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/storyreel/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "storyreel", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasGeminiConfig returns true if the completion backend has credentials.
func (c *Config) HasGeminiConfig() bool {
	return c.Gemini.APIKey != ""
}

// GetLogLevel returns the normalized log level (default: "info").
func (c *Config) GetLogLevel() string {
	switch lvl := strings.ToLower(strings.TrimSpace(c.LogLevel)); lvl {
	case "debug", "info", "warn", "error":
		return lvl
	default:
		return "info"
	}
}

// GetFeedOptions returns the feed configuration with defaults applied.
func (c *Config) GetFeedOptions() feed.Options {
	opts := feed.Options{
		Threshold:     c.Feed.VisibilityThreshold,
		PreloadWindow: 1,
		Muted:         true,
	}
	if opts.Threshold <= 0 {
		opts.Threshold = feed.DefaultThreshold
	}
	if c.Feed.PreloadWindow != nil {
		opts.PreloadWindow = *c.Feed.PreloadWindow
	}
	if c.Feed.StartMuted != nil {
		opts.Muted = *c.Feed.StartMuted
	}
	return opts
}

// GetAutoplayMode returns the autoplay policy mode. Unknown values fall back
// to the muted-only policy.
func (c *Config) GetAutoplayMode() media.AutoplayMode {
	mode, err := media.ParseAutoplayMode(c.Feed.Autoplay)
	if err != nil {
		return media.AutoplayMuted
	}
	return mode
}

// GetCompletionConfig returns the Gemini backend configuration with defaults
// applied.
func (c *Config) GetCompletionConfig() completion.Config {
	cfg := completion.Config{
		APIKey:          c.Gemini.APIKey,
		Model:           c.Gemini.Model,
		Temperature:     c.Gemini.Temperature,
		MaxOutputTokens: c.Gemini.MaxOutputTokens,
	}
	if cfg.Model == "" {
		cfg.Model = completion.DefaultModel
	}
	cfg.Timeout = completion.DefaultTimeout
	if c.Gemini.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(c.Gemini.TimeoutSeconds) * time.Second
	}
	if cfg.Temperature <= 0 || cfg.Temperature > 2 {
		cfg.Temperature = completion.DefaultTemperature
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = completion.DefaultMaxOutputTokens
	}
	return cfg
}
