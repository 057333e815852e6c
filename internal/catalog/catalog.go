// Package catalog holds the static destination and adventure pack data shipped
// with the binary.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/SscSPs/clonewander/internal/core/domain"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type destination struct {
	Name                  string `yaml:"name"`
	domain.TravelEstimate `yaml:",inline"`
}

type document struct {
	Fallback     domain.TravelEstimate  `yaml:"fallback"`
	Destinations []destination          `yaml:"destinations"`
	Packs        []domain.AdventurePack `yaml:"packs"`
}

// Catalog answers destination and pack lookups. It is read-only after Load.
type Catalog struct {
	fallback     domain.TravelEstimate
	destinations []destination
	exact        map[string]domain.TravelEstimate
	packs        []domain.AdventurePack
	packByID     map[domain.PackID]domain.AdventurePack
}

// Default parses the embedded catalog.
func Default() (*Catalog, error) {
	return Load(defaultCatalog)
}

// Load parses a catalog document.
func Load(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(doc.Packs) == 0 {
		return nil, fmt.Errorf("catalog defines no adventure packs")
	}

	c := &Catalog{
		fallback:     doc.Fallback,
		destinations: make([]destination, 0, len(doc.Destinations)),
		exact:        make(map[string]domain.TravelEstimate, len(doc.Destinations)),
		packs:        doc.Packs,
		packByID:     make(map[domain.PackID]domain.AdventurePack, len(doc.Packs)),
	}
	for _, d := range doc.Destinations {
		d.Name = normalize(d.Name)
		if d.Name == "" || d.Hours < 0 {
			return nil, fmt.Errorf("invalid catalog destination %q", d.Name)
		}
		c.destinations = append(c.destinations, d)
		c.exact[d.Name] = d.TravelEstimate
	}
	for _, p := range doc.Packs {
		if _, dup := c.packByID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate adventure pack %q", p.ID)
		}
		c.packByID[p.ID] = p
	}
	if _, ok := c.packByID[domain.DefaultPack]; !ok {
		return nil, fmt.Errorf("catalog is missing the %q pack", domain.DefaultPack)
	}
	return c, nil
}

// Estimate returns the simulated travel time to destination.
func (c *Catalog) Estimate(destination string) domain.TravelEstimate {
	name := normalize(destination)
	if name == "" {
		return c.fallback
	}
	if est, ok := c.exact[name]; ok {
		return est
	}
	for _, d := range c.destinations {
		if strings.Contains(name, d.Name) || strings.Contains(d.Name, name) {
			return d.TravelEstimate
		}
	}
	return c.fallback
}

// Packs returns the adventure packs in catalog order.
func (c *Catalog) Packs() []domain.AdventurePack {
	out := make([]domain.AdventurePack, len(c.packs))
	copy(out, c.packs)
	return out
}

// Pack looks up a pack by ID.
func (c *Catalog) Pack(id domain.PackID) (domain.AdventurePack, bool) {
	p, ok := c.packByID[id]
	return p, ok
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
