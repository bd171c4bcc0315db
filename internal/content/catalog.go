// Package content holds the flavor text catalog used to render duck
// announcements and hunter replies.
package content

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/osse101/DuckHunt_Go/internal/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Identity is a webhook display identity.
type Identity struct {
	Name   string `yaml:"name"`
	Avatar string `yaml:"avatar"`
}

// CategoryText is the per-category copy. Empty fields fall back to the
// normal category.
type CategoryText struct {
	Name       string   `yaml:"name"`
	Spawn      string   `yaml:"spawn"`
	Leave      []string `yaml:"leave"`
	Kill       string   `yaml:"kill"`
	Hurt       string   `yaml:"hurt"`
	Resisted   string   `yaml:"resisted"`
	Frightened string   `yaml:"frightened"`
	Hug        string   `yaml:"hug"`
}

// Replies are category independent hunter replies.
type Replies struct {
	NoDuck         string `yaml:"no_duck"`
	NoDuckPenalty  string `yaml:"no_duck_penalty"`
	DuckGone       string `yaml:"duck_gone"`
	Empty          string `yaml:"empty"`
	Confiscated    string `yaml:"confiscated"`
	Reloaded       string `yaml:"reloaded"`
	NoMagazines    string `yaml:"no_magazines"`
	GunFull        string `yaml:"gun_full"`
	FriendHug      string `yaml:"friend_hug"`
	Prestige       string `yaml:"prestige"`
	Clover         string `yaml:"clover"`
	PowerupExpired string `yaml:"powerup_expired"`
	Status         string `yaml:"status"`
}

// Catalog is the full flavor text set.
type Catalog struct {
	Traces          []string                         `yaml:"traces"`
	Faces           []string                         `yaml:"faces"`
	EmojiFaces      []string                         `yaml:"emoji_faces"`
	Shouts          []string                         `yaml:"shouts"`
	Identities      []Identity                       `yaml:"identities"`
	Categories      map[domain.Category]CategoryText `yaml:"categories"`
	ProfessorTaunts []string                         `yaml:"professor_taunts"`
	Replies         Replies                          `yaml:"replies"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog override from path. An empty path yields the
// embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content catalog %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a YAML catalog and checks that every list used for
// cosmetic selection is non-empty.
func Parse(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("content catalog: %w", err)
	}
	if len(c.Traces) == 0 || len(c.Faces) == 0 || len(c.Shouts) == 0 || len(c.Identities) == 0 {
		return nil, fmt.Errorf("content catalog: traces, faces, shouts and identities must not be empty")
	}
	if len(c.EmojiFaces) == 0 {
		c.EmojiFaces = c.Faces
	}
	if _, ok := c.Categories[domain.CategoryNormal]; !ok {
		return nil, fmt.Errorf("content catalog: missing %q category", domain.CategoryNormal)
	}
	for name := range c.Categories {
		if _, err := domain.ParseCategory(string(name)); err != nil {
			return nil, fmt.Errorf("content catalog: %w", err)
		}
	}
	return &c, nil
}

// Category returns the copy of c with blanks filled from the normal category.
func (c *Catalog) Category(category domain.Category) CategoryText {
	base := c.Categories[domain.CategoryNormal]
	t, ok := c.Categories[category]
	if !ok {
		return base
	}
	if t.Name == "" {
		t.Name = base.Name
	}
	if t.Spawn == "" {
		t.Spawn = base.Spawn
	}
	if len(t.Leave) == 0 {
		t.Leave = base.Leave
	}
	if t.Kill == "" {
		t.Kill = base.Kill
	}
	if t.Hurt == "" {
		t.Hurt = base.Hurt
	}
	if t.Resisted == "" {
		t.Resisted = base.Resisted
	}
	if t.Frightened == "" {
		t.Frightened = base.Frightened
	}
	if t.Hug == "" {
		t.Hug = base.Hug
	}
	return t
}

// Taunt returns the professor taunt for the given anger level (1-based),
// saturating at the last one.
func (c *Catalog) Taunt(anger int) string {
	if len(c.ProfessorTaunts) == 0 {
		return c.Replies.NoDuck
	}
	i := min(max(anger-1, 0), len(c.ProfessorTaunts)-1)
	return c.ProfessorTaunts[i]
}

// Pick returns list[i] wrapped into range, or "" for an empty list.
func Pick(list []string, i int) string {
	if len(list) == 0 {
		return ""
	}
	if i < 0 {
		i = -i
	}
	return list[i%len(list)]
}

// Vars are template placeholder values.
type Vars map[string]string

// Render replaces {key} placeholders in tmpl with vars.
func Render(tmpl string, vars Vars) string {
	if len(vars) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
