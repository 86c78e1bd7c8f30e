// Package grinder provides the read-only grinder catalog.
package grinder

import (
	"strings"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// Compile-time interface check.
var _ domain.GrinderCatalog = (*Catalog)(nil)

// Catalog holds grinders in load order. It is immutable after construction,
// so concurrent reads need no locking. Every accessor returns copies.
type Catalog struct {
	grinders []domain.Grinder
	byID     map[string]int
	log      *logger.Logger
}

// NewCatalog builds a catalog from grinders. On duplicate IDs the first
// entry wins; the dataset loader rejects duplicates before this point.
func NewCatalog(grinders []domain.Grinder, log *logger.Logger) *Catalog {
	c := &Catalog{
		grinders: make([]domain.Grinder, 0, len(grinders)),
		byID:     make(map[string]int, len(grinders)),
		log:      log.With("catalog"),
	}
	for _, g := range grinders {
		if _, dup := c.byID[g.ID]; dup {
			c.log.Warn("duplicate grinder id ignored: %s", g.ID)
			continue
		}
		c.byID[g.ID] = len(c.grinders)
		c.grinders = append(c.grinders, g.Clone())
	}
	c.log.Debug("loaded, count=%d", len(c.grinders))
	return c
}

// List returns every grinder in catalog order.
func (c *Catalog) List() []domain.Grinder {
	return c.filter(func(domain.Grinder) bool { return true })
}

// ByID returns the grinder with the given ID.
func (c *Catalog) ByID(id string) (domain.Grinder, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Grinder{}, false
	}
	return c.grinders[i].Clone(), true
}

// ByType returns grinders of type t in catalog order.
func (c *Catalog) ByType(t domain.GrinderType) []domain.Grinder {
	return c.filter(func(g domain.Grinder) bool { return g.Type == t })
}

// ByBrand returns grinders whose brand equals brand exactly (case-sensitive).
func (c *Catalog) ByBrand(brand string) []domain.Grinder {
	return c.filter(func(g domain.Grinder) bool { return g.Brand == brand })
}

// ByIDs returns the catalog records for ids in the order given. Unknown IDs
// are skipped.
func (c *Catalog) ByIDs(ids []string) []domain.Grinder {
	out := make([]domain.Grinder, 0, len(ids))
	for _, id := range ids {
		g, ok := c.ByID(id)
		if !ok {
			c.log.Debug("grinder id not in catalog: %s", id)
			continue
		}
		out = append(out, g)
	}
	return out
}

// Search matches query case-insensitively against the brand, the name and
// "brand name". A blank query returns the whole catalog.
func (c *Catalog) Search(query string) []domain.Grinder {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.List()
	}
	return c.filter(func(g domain.Grinder) bool {
		brand := strings.ToLower(g.Brand)
		name := strings.ToLower(g.Name)
		return strings.Contains(brand, q) ||
			strings.Contains(name, q) ||
			strings.Contains(brand+" "+name, q)
	})
}

// Brands returns the distinct brands in first-seen order.
func (c *Catalog) Brands() []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, g := range c.grinders {
		if seen[g.Brand] {
			continue
		}
		seen[g.Brand] = true
		out = append(out, g.Brand)
	}
	return out
}

func (c *Catalog) filter(keep func(domain.Grinder) bool) []domain.Grinder {
	out := make([]domain.Grinder, 0)
	for _, g := range c.grinders {
		if keep(g) {
			out = append(out, g.Clone())
		}
	}
	return out
}
