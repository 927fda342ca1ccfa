// Package catalog holds the static episode, trigger and character data the
// feed is built from. A catalog is loaded once and never mutated.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rivo/uniseg"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

var (
	ErrEmptyCatalog      = errors.New("catalog has no episodes")
	ErrUnknownCharacter  = errors.New("unknown character")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrMissingMediaURL   = errors.New("episode has no media url")
	ErrTriggerOutOfRange = errors.New("trigger index out of range")
)

// Character is a fictional character a viewer can chat with.
type Character struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	AvatarURL string `yaml:"avatar"`
	Persona   string `yaml:"persona"`
}

// Initial returns the first grapheme of the character name, upper-cased.
// It is what the UI shows when the avatar cannot be displayed.
func (c Character) Initial() string {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = strings.TrimSpace(c.ID)
	}
	if name == "" {
		return "?"
	}
	gr := uniseg.NewGraphemes(name)
	if !gr.Next() {
		return "?"
	}
	return strings.ToUpper(gr.Str())
}

// Trigger is one narrative branch offered on an episode.
type Trigger struct {
	CharacterID string `yaml:"character"`
	Label       string `yaml:"label"`
	Hook        string `yaml:"hook"`
}

// Episode is one feed item.
type Episode struct {
	ID       string    `yaml:"id"`
	Label    string    `yaml:"label"`
	MediaURL string    `yaml:"media"`
	Seconds  float64   `yaml:"seconds"` // expected length, used by the simulated media element
	Triggers []Trigger `yaml:"triggers"`
}

// Length returns the expected episode length (0 if unknown).
func (e Episode) Length() time.Duration {
	if e.Seconds <= 0 {
		return 0
	}
	return time.Duration(e.Seconds * float64(time.Second))
}

// Catalog is the full set of episodes and characters.
type Catalog struct {
	Title      string      `yaml:"title"`
	Characters []Character `yaml:"characters"`
	Episodes   []Episode   `yaml:"episodes"`
}

// Load reads and validates a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic("embedded catalog is invalid: " + err.Error())
	}
	return c
}

// Validate checks ids are unique and every trigger names a known character.
func (c *Catalog) Validate() error {
	if len(c.Episodes) == 0 {
		return ErrEmptyCatalog
	}

	chars := make(map[string]bool, len(c.Characters))
	for _, ch := range c.Characters {
		if chars[ch.ID] {
			return fmt.Errorf("character %q: %w", ch.ID, ErrDuplicateID)
		}
		chars[ch.ID] = true
	}

	episodes := make(map[string]bool, len(c.Episodes))
	for _, ep := range c.Episodes {
		if episodes[ep.ID] {
			return fmt.Errorf("episode %q: %w", ep.ID, ErrDuplicateID)
		}
		episodes[ep.ID] = true
		if ep.MediaURL == "" {
			return fmt.Errorf("episode %q: %w", ep.ID, ErrMissingMediaURL)
		}
		for _, tr := range ep.Triggers {
			if !chars[tr.CharacterID] {
				return fmt.Errorf("episode %q trigger %q: %w %q", ep.ID, tr.Label, ErrUnknownCharacter, tr.CharacterID)
			}
		}
	}
	return nil
}

// Character looks up a character by id.
func (c *Catalog) Character(id string) (Character, bool) {
	for _, ch := range c.Characters {
		if ch.ID == id {
			return ch, true
		}
	}
	return Character{}, false
}

// IndexOf returns the position of the episode with the given id, or -1.
func (c *Catalog) IndexOf(episodeID string) int {
	for i, ep := range c.Episodes {
		if ep.ID == episodeID {
			return i
		}
	}
	return -1
}

// Branch resolves trigger i of episode ep to its character.
func (c *Catalog) Branch(ep Episode, i int) (Character, Trigger, error) {
	if i < 0 || i >= len(ep.Triggers) {
		return Character{}, Trigger{}, fmt.Errorf("episode %q trigger %d: %w", ep.ID, i, ErrTriggerOutOfRange)
	}
	tr := ep.Triggers[i]
	ch, ok := c.Character(tr.CharacterID)
	if !ok {
		return Character{}, Trigger{}, fmt.Errorf("%w %q", ErrUnknownCharacter, tr.CharacterID)
	}
	return ch, tr, nil
}
