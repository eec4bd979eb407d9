package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCatalog       = errors.New("catalog: no product types configured")
	ErrUnknownProductType = errors.New("catalog: unknown product type")
)

// Entry pairs a product type with the category it belongs to.
type Entry struct {
	ProductType string `json:"product_type" yaml:"product_type"`
	Category    string `json:"category" yaml:"category"`
}

// Resolver maps product types to categories. It is immutable once built and
// is shared by the generator and the validator.
type Resolver struct {
	types      []string
	categories map[string]string
}

// NewResolver builds a resolver from entries in declaration order.
func NewResolver(entries []Entry) (*Resolver, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}

	r := &Resolver{
		types:      make([]string, 0, len(entries)),
		categories: make(map[string]string, len(entries)),
	}
	for i, e := range entries {
		if strings.TrimSpace(e.ProductType) == "" || strings.TrimSpace(e.Category) == "" {
			return nil, fmt.Errorf("catalog: entry %d has an empty product type or category", i)
		}
		if _, dup := r.categories[e.ProductType]; dup {
			return nil, fmt.Errorf("catalog: duplicate product type %q", e.ProductType)
		}
		r.types = append(r.types, e.ProductType)
		r.categories[e.ProductType] = e.Category
	}
	return r, nil
}

// Category returns the category for productType.
func (r *Resolver) Category(productType string) (string, error) {
	c, ok := r.categories[productType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownProductType, productType)
	}
	return c, nil
}

// Types returns the product types in declaration order.
func (r *Resolver) Types() []string {
	out := make([]string, len(r.types))
	copy(out, r.types)
	return out
}

// Len is the number of product types.
func (r *Resolver) Len() int { return len(r.types) }

// Categories returns the distinct categories in first-seen order.
func (r *Resolver) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range r.types {
		c := r.categories[t]
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// Entries returns a copy of the mapping in declaration order.
func (r *Resolver) Entries() []Entry {
	out := make([]Entry, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, Entry{ProductType: t, Category: r.categories[t]})
	}
	return out
}
