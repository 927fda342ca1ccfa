//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/llehouerou/storyreel/internal/completion"
	"github.com/llehouerou/storyreel/internal/feed"
	"github.com/llehouerou/storyreel/internal/media"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/stories",
			expected: filepath.Join(home, "stories"),
		},
		{
			name:     "tilde with nested path",
			input:    "~/stories/noir/catalog.yaml",
			expected: filepath.Join(home, "stories", "noir", "catalog.yaml"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/srv/stories/catalog.yaml",
			expected: "/srv/stories/catalog.yaml",
		},
		{
			name:     "relative path unchanged",
			input:    "stories/catalog.yaml",
			expected: "stories/catalog.yaml",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}

	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "storyreel", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}

// isolate points HOME and the working directory at empty temp dirs so that
// no real config file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("GEMINI_API_KEY", "")
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_NoFiles(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Catalog != "" {
		t.Errorf("Catalog = %q, want empty", cfg.Catalog)
	}
	if cfg.HasGeminiConfig() {
		t.Error("HasGeminiConfig() = true, want false")
	}
}

func TestLoad_LocalOverridesHome(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".config", "storyreel", "config.toml"), `
log_level = "debug"
[feed]
visibility_threshold = 0.7
[gemini]
model = "home-model"
`)
	writeFile(t, filepath.Join(dir, "config.toml"), `
[gemini]
model = "local-model"
`)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GetLogLevel() != "debug" {
		t.Errorf("GetLogLevel() = %q, want %q", cfg.GetLogLevel(), "debug")
	}
	if cfg.Feed.VisibilityThreshold != 0.7 {
		t.Errorf("VisibilityThreshold = %v, want 0.7", cfg.Feed.VisibilityThreshold)
	}
	if cfg.Gemini.Model != "local-model" {
		t.Errorf("Gemini.Model = %q, want %q", cfg.Gemini.Model, "local-model")
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := isolate(t)
	explicit := filepath.Join(dir, "custom", "storyreel.toml")
	writeFile(t, explicit, `
catalog = "~/stories/catalog.yaml"
[gemini]
api_key = "from-file"
`)

	cfg, err := Load(explicit)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := filepath.Join(dir, "stories", "catalog.yaml"); cfg.Catalog != want {
		t.Errorf("Catalog = %q, want %q", cfg.Catalog, want)
	}
	if cfg.Gemini.APIKey != "from-file" {
		t.Errorf("Gemini.APIKey = %q, want %q", cfg.Gemini.APIKey, "from-file")
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	dir := isolate(t)

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load() with missing explicit path should fail")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config.toml"), "log_level = [")

	if _, err := Load(""); err == nil {
		t.Error("Load() with invalid TOML should fail")
	}
}

func TestLoad_APIKeyFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY", "from-env")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.HasGeminiConfig() {
		t.Error("HasGeminiConfig() = false, want true")
	}
	if cfg.Gemini.APIKey != "from-env" {
		t.Errorf("Gemini.APIKey = %q, want %q", cfg.Gemini.APIKey, "from-env")
	}
}

func TestGetLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "info"},
		{"debug", "debug"},
		{"WARN", "warn"},
		{" error ", "error"},
		{"verbose", "info"},
	}

	for _, tt := range tests {
		cfg := Config{LogLevel: tt.input}
		if got := cfg.GetLogLevel(); got != tt.expected {
			t.Errorf("GetLogLevel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestGetFeedOptions(t *testing.T) {
	tests := []struct {
		name      string
		config    FeedConfig
		threshold float64
		window    int
		muted     bool
	}{
		{
			name:      "defaults",
			config:    FeedConfig{},
			threshold: feed.DefaultThreshold,
			window:    1,
			muted:     true,
		},
		{
			name: "explicit values",
			config: FeedConfig{
				VisibilityThreshold: 0.8,
				PreloadWindow:       intPtr(2),
				StartMuted:          boolPtr(false),
			},
			threshold: 0.8,
			window:    2,
			muted:     false,
		},
		{
			name:      "zero window keeps only the active item",
			config:    FeedConfig{PreloadWindow: intPtr(0)},
			threshold: feed.DefaultThreshold,
			window:    0,
			muted:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Feed: tt.config}
			opts := cfg.GetFeedOptions()
			if opts.Threshold != tt.threshold {
				t.Errorf("Threshold = %v, want %v", opts.Threshold, tt.threshold)
			}
			if opts.PreloadWindow != tt.window {
				t.Errorf("PreloadWindow = %d, want %d", opts.PreloadWindow, tt.window)
			}
			if opts.Muted != tt.muted {
				t.Errorf("Muted = %v, want %v", opts.Muted, tt.muted)
			}
		})
	}
}

func TestGetAutoplayMode(t *testing.T) {
	tests := []struct {
		input    string
		expected media.AutoplayMode
	}{
		{"", media.AutoplayMuted},
		{"muted", media.AutoplayMuted},
		{"allow", media.AutoplayAllow},
		{"deny", media.AutoplayDeny},
		{"sometimes", media.AutoplayMuted},
	}

	for _, tt := range tests {
		cfg := Config{Feed: FeedConfig{Autoplay: tt.input}}
		if got := cfg.GetAutoplayMode(); got != tt.expected {
			t.Errorf("GetAutoplayMode(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestGetCompletionConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := Config{}
		got := cfg.GetCompletionConfig()
		if got.Model != completion.DefaultModel {
			t.Errorf("Model = %q, want %q", got.Model, completion.DefaultModel)
		}
		if got.Timeout != completion.DefaultTimeout {
			t.Errorf("Timeout = %v, want %v", got.Timeout, completion.DefaultTimeout)
		}
		if got.Temperature != completion.DefaultTemperature {
			t.Errorf("Temperature = %v, want %v", got.Temperature, completion.DefaultTemperature)
		}
		if got.MaxOutputTokens != completion.DefaultMaxOutputTokens {
			t.Errorf("MaxOutputTokens = %d, want %d", got.MaxOutputTokens, completion.DefaultMaxOutputTokens)
		}
	})

	t.Run("explicit values", func(t *testing.T) {
		cfg := Config{Gemini: GeminiConfig{
			APIKey:          "k",
			Model:           "gemini-2.5-pro",
			TimeoutSeconds:  5,
			Temperature:     0.3,
			MaxOutputTokens: 100,
		}}
		got := cfg.GetCompletionConfig()
		if got.APIKey != "k" {
			t.Errorf("APIKey = %q, want %q", got.APIKey, "k")
		}
		if got.Model != "gemini-2.5-pro" {
			t.Errorf("Model = %q, want %q", got.Model, "gemini-2.5-pro")
		}
		if got.Timeout != 5*time.Second {
			t.Errorf("Timeout = %v, want 5s", got.Timeout)
		}
		if got.Temperature != 0.3 {
			t.Errorf("Temperature = %v, want 0.3", got.Temperature)
		}
		if got.MaxOutputTokens != 100 {
			t.Errorf("MaxOutputTokens = %d, want 100", got.MaxOutputTokens)
		}
	})

	t.Run("out of range temperature", func(t *testing.T) {
		cfg := Config{Gemini: GeminiConfig{Temperature: 5}}
		if got := cfg.GetCompletionConfig().Temperature; got != completion.DefaultTemperature {
			t.Errorf("Temperature = %v, want %v", got, completion.DefaultTemperature)
		}
	})
}
