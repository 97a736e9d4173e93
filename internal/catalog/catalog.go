// Package catalog holds the static achievement and reward tables. They are
// loaded once at start-up and handed to the services that read them; nothing
// mutates a Catalog after Load returns.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed catalog.toml
var defaultCatalog []byte

const fallbackRewardIcon = "🎁"

type Achievement struct {
	ID           string           `toml:"id" json:"id"`
	Title        string           `toml:"title" json:"title"`
	Description  string           `toml:"description" json:"description"`
	Icon         string           `toml:"icon" json:"icon"`
	Requirements map[string]int64 `toml:"requirements" json:"-"`
}

type Reward struct {
	ID          string `toml:"id" json:"id"`
	Title       string `toml:"title" json:"title"`
	Description string `toml:"description" json:"description"`
	Icon        string `toml:"icon" json:"icon"`
	Cost        int    `toml:"cost" json:"cost"`
	Repeatable  bool   `toml:"repeatable" json:"repeatable"`
}

type Catalog struct {
	DefaultRewardIcon string        `toml:"default_reward_icon"`
	Achievements      []Achievement `toml:"achievements"`
	Rewards           []Reward      `toml:"rewards"`
}

// Load reads the catalog at path, or the built-in one when path is empty.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open catalog: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if c.DefaultRewardIcon == "" {
		c.DefaultRewardIcon = fallbackRewardIcon
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	seen := make(map[string]bool, len(c.Achievements))
	for _, a := range c.Achievements {
		if a.ID == "" || a.Title == "" {
			return fmt.Errorf("achievement %q: id and title are required", a.ID)
		}
		if seen[a.ID] {
			return fmt.Errorf("duplicate achievement id %q", a.ID)
		}
		if len(a.Requirements) == 0 {
			return fmt.Errorf("achievement %q has no requirements", a.ID)
		}
		seen[a.ID] = true
	}

	seen = make(map[string]bool, len(c.Rewards))
	for _, r := range c.Rewards {
		if r.ID == "" || r.Title == "" {
			return fmt.Errorf("reward %q: id and title are required", r.ID)
		}
		if seen[r.ID] {
			return fmt.Errorf("duplicate reward id %q", r.ID)
		}
		if r.Cost <= 0 {
			return fmt.Errorf("reward %q: cost must be positive", r.ID)
		}
		seen[r.ID] = true
	}
	return nil
}

// Reward looks a reward up by id.
func (c *Catalog) Reward(id string) (Reward, bool) {
	for _, r := range c.Rewards {
		if r.ID == id {
			return r, true
		}
	}
	return Reward{}, false
}
