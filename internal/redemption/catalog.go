package redemption

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"

	"github.com/osse101/GuildPoints_Go/internal/domain"
)

// Catalog is the static shop, searchable by exact name or slug
type Catalog struct {
	items  []domain.ShopItem
	byName map[string]int
	bySlug map[string]int
}

// NewCatalog indexes items. Names must be unique; when two names share a
// slug only the first is reachable by slug.
func NewCatalog(items []domain.ShopItem) (*Catalog, error) {
	c := &Catalog{
		items:  make([]domain.ShopItem, 0, len(items)),
		byName: make(map[string]int, len(items)),
		bySlug: make(map[string]int, len(items)),
	}
	for _, item := range items {
		item.Name = strings.TrimSpace(item.Name)
		if _, dup := c.byName[item.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate catalog item %q", domain.ErrInvalidInput, item.Name)
		}
		item.Slug = slug.Make(item.Name)

		idx := len(c.items)
		c.items = append(c.items, item)
		c.byName[item.Name] = idx
		if _, taken := c.bySlug[item.Slug]; !taken && item.Slug != "" {
			c.bySlug[item.Slug] = idx
		}
	}
	return c, nil
}

// Find resolves a user-typed item name
func (c *Catalog) Find(name string) (domain.ShopItem, error) {
	name = strings.TrimSpace(name)
	if idx, ok := c.byName[name]; ok {
		return c.items[idx], nil
	}
	if s := slug.Make(name); s != "" {
		if idx, ok := c.bySlug[s]; ok {
			return c.items[idx], nil
		}
	}
	return domain.ShopItem{}, fmt.Errorf("%w: %q", domain.ErrUnknownItem, name)
}

// Items returns the catalog in configured order
func (c *Catalog) Items() []domain.ShopItem {
	out := make([]domain.ShopItem, len(c.items))
	copy(out, c.items)
	return out
}
