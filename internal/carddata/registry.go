package carddata

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/readydeck/internal/session"
)

// Catalog holds the base deck and the category table.
type Catalog struct {
	cards      []CardDef
	categories []CategoryDef // sorted by rank
	byID       map[string]*CategoryDef
}

// NewCatalog validates and indexes loaded definitions. Base card ids must be
// unique, run from 1 without gaps and stay below session.FirstCustomID.
func NewCatalog(cards []CardDef, categories []CategoryDef) (*Catalog, error) {
	if len(cards) == 0 {
		return nil, errors.New("no cards in catalog")
	}

	sorted := make([]CategoryDef, len(categories))
	copy(sorted, categories)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })

	c := &Catalog{
		cards:      cards,
		categories: sorted,
		byID:       make(map[string]*CategoryDef, len(sorted)),
	}
	for i := range c.categories {
		id := c.categories[i].ID
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("duplicate category %q", id)
		}
		c.byID[id] = &c.categories[i]
	}
	if _, ok := c.byID[string(session.CategoryCustom)]; !ok {
		return nil, fmt.Errorf("missing category %q", session.CategoryCustom)
	}

	seen := make(map[int]bool, len(cards))
	for _, card := range cards {
		if card.ID < 1 || card.ID >= session.FirstCustomID {
			return nil, fmt.Errorf("card %d: id out of range 1..%d", card.ID, session.FirstCustomID-1)
		}
		if seen[card.ID] {
			return nil, fmt.Errorf("card %d: duplicate id", card.ID)
		}
		seen[card.ID] = true
		if card.Category == string(session.CategoryCustom) {
			return nil, fmt.Errorf("card %d: base cards cannot be custom", card.ID)
		}
		if _, ok := c.byID[card.Category]; !ok {
			return nil, fmt.Errorf("card %d: unknown category %q", card.ID, card.Category)
		}
	}
	for id := 1; id <= len(cards); id++ {
		if !seen[id] {
			return nil, fmt.Errorf("card ids have a gap at %d", id)
		}
	}

	return c, nil
}

// LoadCatalog loads and creates a catalog from the embedded JSON files.
func LoadCatalog() (*Catalog, error) {
	cards, err := LoadCards()
	if err != nil {
		return nil, err
	}
	categories, err := LoadCategories()
	if err != nil {
		return nil, err
	}
	return NewCatalog(cards, categories)
}

// MustLoadCatalog loads the catalog, panicking on error.
func MustLoadCatalog() *Catalog {
	catalog, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return catalog
}

// BaseCards returns the base deck in catalog order.
func (c *Catalog) BaseCards() []session.Card {
	out := make([]session.Card, len(c.cards))
	for i, def := range c.cards {
		out[i] = def.Card()
	}
	return out
}

// Order returns category ids by dealing precedence.
func (c *Catalog) Order() []session.Category {
	out := make([]session.Category, len(c.categories))
	for i, def := range c.categories {
		out[i] = session.Category(def.ID)
	}
	return out
}

// Category returns the definition for a category id, or nil if not found.
func (c *Catalog) Category(id session.Category) *CategoryDef {
	return c.byID[string(id)]
}

// Name returns the display name of a category, falling back to its id.
func (c *Catalog) Name(id session.Category) string {
	if def := c.Category(id); def != nil {
		return def.Name
	}
	return string(id)
}

// Color returns the display color of a category.
func (c *Catalog) Color(id session.Category) tcell.Color {
	def := c.Category(id)
	if def == nil {
		return tcell.ColorWhite
	}
	color, err := ParseHexColor(def.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// Count returns the number of base cards.
func (c *Catalog) Count() int {
	return len(c.cards)
}

// NewSession creates a session over this catalog's base deck.
func (c *Catalog) NewSession(opts ...session.Option) *session.Session {
	return session.New(c.BaseCards(), c.Order(), opts...)
}
