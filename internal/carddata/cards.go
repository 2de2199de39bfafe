package carddata

import "github.com/samdwyer/readydeck/internal/session"

// CardDef defines a base card loaded from JSON.
type CardDef struct {
	ID          int    `json:"id"`
	Category    string `json:"category"` // CategoryDef.ID
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Card converts the definition to a session card.
func (c CardDef) Card() session.Card {
	return session.Card{
		ID:          c.ID,
		Category:    session.Category(c.Category),
		Title:       c.Title,
		Description: c.Description,
	}
}

// CardsFile represents the structure of cards.json.
type CardsFile struct {
	Cards []CardDef `json:"cards"`
}

// LoadCards loads base card definitions from the embedded cards.json file.
func LoadCards() ([]CardDef, error) {
	file, err := Load[CardsFile]("cards.json")
	if err != nil {
		return nil, err
	}
	return file.Cards, nil
}

// CategoryDef defines a card category loaded from JSON.
type CategoryDef struct {
	ID    string `json:"id"`    // Matches CardDef.Category (e.g., "small")
	Name  string `json:"name"`  // Display name (e.g., "Small")
	Color string `json:"color"` // Hex color code (e.g., "#EC4899")
	Rank  int    `json:"rank"`  // Dealing precedence, lowest first
}

// CategoriesFile represents the structure of categories.json.
type CategoriesFile struct {
	Categories []CategoryDef `json:"categories"`
}

// LoadCategories loads category definitions from the embedded categories.json file.
func LoadCategories() ([]CategoryDef, error) {
	file, err := Load[CategoriesFile]("categories.json")
	if err != nil {
		return nil, err
	}
	return file.Categories, nil
}
