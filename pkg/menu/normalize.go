package menu

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/platewise/menupress/pkg/errors"
)

// RawMenu is the shape of an extraction payload as delivered by the content
// collaborators. Nothing about it is trusted: fields may be missing, blank,
// or out of bounds. Normalize is the only way in.
type RawMenu struct {
	Title          string        `json:"title"`
	Currency       string        `json:"currency"`
	CurrencySymbol string        `json:"currency_symbol"`
	Categories     []RawCategory `json:"categories"`
}

// RawCategory is one extracted menu section.
type RawCategory struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Items []RawItem `json:"items"`
}

// RawItem is one extracted menu entry. Price is a pointer so a missing price
// can be told apart from an explicit zero; both normalize to 0.
type RawItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Image       string   `json:"image"`
	Featured    bool     `json:"featured"`
}

// ParseRawMenu decodes a raw extraction payload from JSON.
func ParseRawMenu(data []byte) (RawMenu, error) {
	var raw RawMenu
	if err := json.Unmarshal(data, &raw); err != nil {
		return RawMenu{}, errors.Wrap(errors.ErrCodeInvalidMenu, err, "malformed menu payload")
	}
	return raw, nil
}

// Normalize validates a raw payload and builds the canonical MenuDocument.
//
// Rejection rules:
//   - zero sections
//   - section name blank after trimming
//   - section with zero items
//   - item name blank after trimming or longer than MaxItemNameLen
//   - description longer than MaxDescriptionLen
//   - price negative, NaN, or infinite
//
// A missing price is coerced to 0. Section and item counts and order are
// preserved 1:1 with the input. Names that are non-empty but whitespace-only
// are rejected, not passed through: downstream they would produce zero-width
// tiles, so the blank check runs on the trimmed value while the stored name
// keeps its original inner spacing.
//
// title, when non-empty, overrides the payload's own title.
func Normalize(raw RawMenu, title string) (*MenuDocument, error) {
	if len(raw.Categories) == 0 {
		return nil, errors.NewField(errors.ErrCodeInvalidMenu, "categories",
			"menu must contain at least one section")
	}

	cur, err := ResolveCurrency(raw.Currency, raw.CurrencySymbol)
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = strings.TrimSpace(raw.Title)
	}

	doc := &MenuDocument{
		Title:    title,
		Currency: cur,
		Sections: make([]Section, 0, len(raw.Categories)),
	}

	for si, cat := range raw.Categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return nil, errors.NewField(errors.ErrCodeInvalidSection,
				fmt.Sprintf("categories[%d].name", si),
				"section name cannot be blank")
		}
		if len(cat.Items) == 0 {
			return nil, errors.NewField(errors.ErrCodeInvalidSection,
				fmt.Sprintf("categories[%d].items", si),
				"section must contain at least one item")
		}

		sec := Section{
			ID:    sectionID(cat.ID, si),
			Name:  name,
			Items: make([]Item, 0, len(cat.Items)),
		}

		for ii, it := range cat.Items {
			item, err := normalizeItem(it, si, ii)
			if err != nil {
				return nil, err
			}
			sec.Items = append(sec.Items, item)
		}
		doc.Sections = append(doc.Sections, sec)
	}

	return doc, nil
}

func normalizeItem(it RawItem, si, ii int) (Item, error) {
	field := func(f string) string {
		return fmt.Sprintf("categories[%d].items[%d].%s", si, ii, f)
	}

	name := strings.TrimSpace(it.Name)
	if name == "" {
		return Item{}, errors.NewField(errors.ErrCodeInvalidItem, field("name"),
			"item name cannot be blank")
	}
	if len([]rune(name)) > MaxItemNameLen {
		return Item{}, errors.NewField(errors.ErrCodeInvalidItem, field("name"),
			"item name exceeds %d characters", MaxItemNameLen)
	}

	desc := strings.TrimSpace(it.Description)
	if len([]rune(desc)) > MaxDescriptionLen {
		return Item{}, errors.NewField(errors.ErrCodeInvalidItem, field("description"),
			"description exceeds %d characters", MaxDescriptionLen)
	}

	price := 0.0
	if it.Price != nil {
		price = *it.Price
		switch {
		case math.IsNaN(price):
			return Item{}, errors.NewField(errors.ErrCodeInvalidPrice, field("price"),
				"price must be a finite number, got NaN")
		case math.IsInf(price, 0):
			return Item{}, errors.NewField(errors.ErrCodeInvalidPrice, field("price"),
				"price must be a finite number, got infinity")
		case price < 0:
			return Item{}, errors.NewField(errors.ErrCodeInvalidPrice, field("price"),
				"price cannot be negative, got %v", price)
		}
	}

	return Item{
		ID:          itemID(it.ID, si, ii),
		Name:        name,
		Description: desc,
		Price:       price,
		ImageRef:    strings.TrimSpace(it.Image),
		Featured:    it.Featured,
	}, nil
}

// sectionID returns the payload's ID when present, otherwise a deterministic
// positional one. IDs must be stable: they feed tile identity and cache keys.
func sectionID(id string, si int) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return fmt.Sprintf("sec-%d", si+1)
}

func itemID(id string, si, ii int) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return fmt.Sprintf("item-%d-%d", si+1, ii+1)
}
