package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

var validate = validator.New()

// Product is one sellable entry shown on the catalog page.
type Product struct {
	Name     string `yaml:"name" json:"name" validate:"required"`
	Price    int    `yaml:"price" json:"price" validate:"gte=0,lte=1000000000"`
	Image    string `yaml:"image" json:"image,omitempty"`
	Category string `yaml:"category" json:"category,omitempty"`
}

type file struct {
	Products []Product `yaml:"products" validate:"dive"`
}

// Catalog is the static, read-only product list.
type Catalog struct {
	products []Product
	byName   map[string]int
}

// Load reads the catalog from path, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Parse(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document. Product names must be unique
// because the cart merges lines by name.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	c := &Catalog{
		products: make([]Product, 0, len(f.Products)),
		byName:   make(map[string]int, len(f.Products)),
	}
	for _, p := range f.Products {
		p.Name = strings.TrimSpace(p.Name)
		if _, dup := c.byName[p.Name]; dup {
			return nil, fmt.Errorf("invalid catalog: duplicate product %q", p.Name)
		}
		c.byName[p.Name] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Products returns the products in file order.
func (c *Catalog) Products() []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Lookup finds a product by its exact name.
func (c *Catalog) Lookup(name string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	i, ok := c.byName[name]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Categories lists the distinct non-empty categories, sorted.
func (c *Catalog) Categories() []string {
	if c == nil {
		return nil
	}
	seen := map[string]struct{}{}
	var out []string
	for _, p := range c.products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}
