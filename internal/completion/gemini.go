// Package completion provides chat backends backed by hosted language models.
package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/llehouerou/storyreel/internal/chat"
)

// ErrNotConfigured is returned by every call of a backend without an API key.
var ErrNotConfigured = errors.New("completion backend not configured")

// Defaults used when Config leaves a field zero.
const (
	DefaultModel           = "gemini-2.5-flash"
	DefaultTimeout         = 30 * time.Second
	DefaultTemperature     = 0.9
	DefaultMaxOutputTokens = 256
)

// Config holds Gemini backend settings.
type Config struct {
	APIKey          string
	Model           string
	Timeout         time.Duration
	Temperature     float64
	MaxOutputTokens int
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Temperature <= 0 {
		c.Temperature = DefaultTemperature
	}
	if c.MaxOutputTokens <= 0 {
		c.MaxOutputTokens = DefaultMaxOutputTokens
	}
	return c
}

// generator is the subset of *genai.Models used by Gemini.
type generator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Gemini answers chat requests with the Gemini API.
type Gemini struct {
	models generator
	cfg    Config
}

var _ chat.Backend = (*Gemini)(nil)

// NewGemini creates a Gemini backend. An empty API key is not an error: the
// backend is created unconfigured and every call fails with ErrNotConfigured.
func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	cfg = cfg.withDefaults()
	if cfg.APIKey == "" {
		return &Gemini{cfg: cfg}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{models: client.Models, cfg: cfg}, nil
}

// Configured reports whether the backend has credentials.
func (g *Gemini) Configured() bool {
	return g.models != nil
}

// Model returns the model name requests are sent to.
func (g *Gemini) Model() string {
	return g.cfg.Model
}

// Complete sends the session history and the new message and returns the
// model's reply text.
func (g *Gemini) Complete(ctx context.Context, req chat.Request) (string, error) {
	if g.models == nil {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	resp, err := g.models.GenerateContent(ctx, g.cfg.Model, Contents(req), g.generateConfig(req.SystemContext))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil {
		return "", nil
	}
	return strings.TrimSpace(resp.Text()), nil
}

func (g *Gemini) generateConfig(system string) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(g.cfg.Temperature)),
		MaxOutputTokens: int32(g.cfg.MaxOutputTokens),
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	return cfg
}

// Contents maps the request history plus the new message to Gemini contents.
// Empty messages are skipped.
func Contents(req chat.Request) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, m := range req.History {
		if strings.TrimSpace(m.Text) == "" {
			continue
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role(m.Role)))
	}
	return append(contents, genai.NewContentFromText(req.Message, genai.RoleUser))
}

func role(r chat.Role) genai.Role {
	if r == chat.RoleModel {
		return genai.RoleModel
	}
	return genai.RoleUser
}
