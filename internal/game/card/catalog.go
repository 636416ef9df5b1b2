package card

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is an immutable set of card designs keyed by design id.
type Catalog struct {
	designs map[string]Design
	order   []string
}

// NewCatalog builds a catalog from a list of designs, validating each
// one and rejecting duplicate ids.
func NewCatalog(designs []Design) (*Catalog, error) {
	c := &Catalog{designs: make(map[string]Design, len(designs))}
	for _, d := range designs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.designs[d.ID]; dup {
			return nil, fmt.Errorf("duplicate design id %q", d.ID)
		}
		c.designs[d.ID] = d
		c.order = append(c.order, d.ID)
	}
	return c, nil
}

// catalogFile is the on-disk YAML shape.
type catalogFile struct {
	Cards []Design `yaml:"cards"`
}

// LoadCatalog reads a YAML card catalog from path.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(raw)
}

// ParseCatalog parses YAML catalog bytes.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Cards) == 0 {
		return nil, fmt.Errorf("catalog contains no cards")
	}
	return NewCatalog(file.Cards)
}

// Get returns the design with the given id.
func (c *Catalog) Get(id string) (Design, bool) {
	d, ok := c.designs[id]
	return d, ok
}

// IDs returns all design ids in catalog order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of designs in the catalog.
func (c *Catalog) Len() int {
	return len(c.designs)
}
