package inventory

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Catalog holds every item template the academy knows, indexed by id.
// It is read-only after LoadCatalog or NewCatalog returns.
type Catalog struct {
	specs   map[string]ItemSpec
	starter map[string]int
}

// NewCatalog validates specs and indexes them.
//
// Postcondition: returns an error on the first invalid or duplicate spec.
func NewCatalog(specs []ItemSpec) (*Catalog, error) {
	c := &Catalog{specs: make(map[string]ItemSpec, len(specs))}
	for _, s := range specs {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("inventory: NewCatalog: %w", err)
		}
		if _, exists := c.specs[s.ID]; exists {
			return nil, fmt.Errorf("inventory: NewCatalog: item ID %q already registered", s.ID)
		}
		c.specs[s.ID] = s
	}
	return c, nil
}

type catalogFile struct {
	Items      []ItemSpec     `yaml:"items"`
	StarterKit map[string]int `yaml:"starter_kit"`
}

// LoadCatalog reads item templates from a YAML file of the form
// {items: [...], starter_kit: {id: qty}}.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadCatalog: cannot read file %q: %w", path, err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("LoadCatalog: cannot parse file %q: %w", path, err)
	}
	c, err := NewCatalog(f.Items)
	if err != nil {
		return nil, fmt.Errorf("LoadCatalog: %q: %w", path, err)
	}
	for id, qty := range f.StarterKit {
		if _, ok := c.specs[id]; !ok {
			return nil, fmt.Errorf("LoadCatalog: %q: starter kit names unknown item %q", path, id)
		}
		if qty < 1 {
			return nil, fmt.Errorf("LoadCatalog: %q: starter kit quantity for %q must be >= 1", path, id)
		}
	}
	c.starter = f.StarterKit
	return c, nil
}

// Spec returns the template for id.
func (c *Catalog) Spec(id string) (ItemSpec, bool) {
	s, ok := c.specs[id]
	return s, ok
}

// New creates qty units of the catalog item id.
//
// Precondition: qty >= 0.
func (c *Catalog) New(id string, qty int) (Item, error) {
	s, ok := c.specs[id]
	if !ok {
		return Item{}, fmt.Errorf("inventory: unknown catalog item %q", id)
	}
	s.Quantity = qty
	return CreateItem(s)
}

// IDs returns every catalog id in sorted order.
func (c *Catalog) IDs() []string {
	out := make([]string, 0, len(c.specs))
	for id := range c.specs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Starter builds the starter kit declared in the catalog file.
func (c *Catalog) Starter() (State, error) {
	return c.StarterKit(c.starter)
}

// StarterKit builds the inventory a new student arrives with from the ids
// and quantities in kit.
func (c *Catalog) StarterKit(kit map[string]int) (State, error) {
	ids := make([]string, 0, len(kit))
	for id := range kit {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	st := NewState()
	for _, id := range ids {
		it, err := c.New(id, kit[id])
		if err != nil {
			return State{}, err
		}
		st = st.Add(it)
	}
	return st, nil
}
