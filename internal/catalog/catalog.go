package catalog

import (
	"fmt"
	"strings"
)

// DefaultKey names the fallback entry of a response table. It is never
// matched as a topic key.
const DefaultKey = "default"

// Product is one catalog entry: the display name used in emphasis markup and
// the page the browser pane opens for it.
type Product struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Catalog is an ordered, immutable product name -> URL mapping.
type Catalog struct {
	products []Product
	byName   map[string]string
}

func NewCatalog(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byName:   make(map[string]string, len(products)),
	}
	for _, p := range products {
		if p.Name == "" || p.URL == "" {
			return nil, fmt.Errorf("product %q: name and url are required", p.Name)
		}
		if _, dup := c.byName[p.Name]; dup {
			return nil, fmt.Errorf("duplicate product name %q", p.Name)
		}
		c.byName[p.Name] = p.URL
		c.products = append(c.products, p)
	}
	return c, nil
}

// URL returns the destination for an exact product name.
func (c *Catalog) URL(name string) (string, bool) {
	u, ok := c.byName[name]
	return u, ok
}

// Products returns the entries in definition order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Len() int { return len(c.products) }

// Topic is a canned response keyed by a lower-case topic key.
type Topic struct {
	Key      string `yaml:"key"`
	Response string `yaml:"text"`
}

// Responses is an ordered, immutable topic key -> response table with a
// separate default entry.
type Responses struct {
	topics   []Topic
	byKey    map[string]string
	fallback string
}

func NewResponses(topics []Topic, fallback string) (*Responses, error) {
	if fallback == "" {
		return nil, fmt.Errorf("default response is required")
	}
	r := &Responses{
		topics:   make([]Topic, 0, len(topics)),
		byKey:    make(map[string]string, len(topics)),
		fallback: fallback,
	}
	for _, t := range topics {
		key := strings.ToLower(strings.TrimSpace(t.Key))
		switch {
		case key == "":
			return nil, fmt.Errorf("topic with empty key")
		case key == DefaultKey:
			return nil, fmt.Errorf("topic key %q is reserved", DefaultKey)
		case t.Response == "":
			return nil, fmt.Errorf("topic %q has no response", key)
		}
		if _, dup := r.byKey[key]; dup {
			return nil, fmt.Errorf("duplicate topic key %q", key)
		}
		r.byKey[key] = t.Response
		r.topics = append(r.topics, Topic{Key: key, Response: t.Response})
	}
	return r, nil
}

// Topics returns the non-default entries in definition order.
func (r *Responses) Topics() []Topic {
	out := make([]Topic, len(r.topics))
	copy(out, r.topics)
	return out
}

// Lookup returns the response for a topic key. DefaultKey resolves to the
// default response.
func (r *Responses) Lookup(key string) (string, bool) {
	if key == DefaultKey {
		return r.fallback, true
	}
	v, ok := r.byKey[key]
	return v, ok
}

func (r *Responses) Default() string { return r.fallback }
