// Package catalog maps part identifiers to their asset files and the text
// shown for them. There is exactly one catalog per session.
package catalog

import (
	"errors"
	"fmt"
)

var ErrUnknownPart = errors.New("unknown part")

type PartDefinition struct {
	ID          string `yaml:"id" json:"id"`
	AssetPath   string `yaml:"asset" json:"asset"`
	DisplayName string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

type Catalog struct {
	parts []PartDefinition
	byID  map[string]int
}

// New validates and indexes parts. Order is preserved; it is the build order
// of the guided assembly.
func New(parts []PartDefinition) (*Catalog, error) {
	c := &Catalog{
		parts: make([]PartDefinition, 0, len(parts)),
		byID:  make(map[string]int, len(parts)),
	}
	for i, p := range parts {
		if p.ID == "" {
			return nil, fmt.Errorf("part %d: missing id", i)
		}
		if p.AssetPath == "" {
			return nil, fmt.Errorf("part %q: missing asset path", p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("part %q: duplicate id", p.ID)
		}
		if p.DisplayName == "" {
			p.DisplayName = p.ID
		}
		c.byID[p.ID] = len(c.parts)
		c.parts = append(c.parts, p)
	}
	return c, nil
}

func (c *Catalog) Len() int { return len(c.parts) }

func (c *Catalog) Get(id string) (PartDefinition, bool) {
	i, ok := c.byID[id]
	if !ok {
		return PartDefinition{}, false
	}
	return c.parts[i], true
}

// Lookup is Get with an ErrUnknownPart error.
func (c *Catalog) Lookup(id string) (PartDefinition, error) {
	p, ok := c.Get(id)
	if !ok {
		return PartDefinition{}, fmt.Errorf("%w: %q", ErrUnknownPart, id)
	}
	return p, nil
}

// Index returns the build position of id, or -1.
func (c *Catalog) Index(id string) int {
	if i, ok := c.byID[id]; ok {
		return i
	}
	return -1
}

func (c *Catalog) At(i int) PartDefinition { return c.parts[i] }

func (c *Catalog) Parts() []PartDefinition {
	return append([]PartDefinition(nil), c.parts...)
}

func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.parts))
	for i, p := range c.parts {
		ids[i] = p.ID
	}
	return ids
}
