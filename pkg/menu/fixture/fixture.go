// Package fixture generates synthetic menus for demos, benchmarks and
// layout experiments. Output is deterministic for a given seed so the
// same fixture can be regenerated anywhere.
package fixture

import (
	"fmt"
	"math/rand"

	"github.com/jaswdr/faker"

	"github.com/platewise/menupress/pkg/menu"
)

// Options controls the shape of a generated menu.
type Options struct {
	Seed             int64
	Sections         int
	MinItemsPer      int
	MaxItemsPer      int
	ImageRatio       float64 // fraction of items carrying an image ref
	DescriptionRatio float64 // fraction of items carrying a description
	Currency         string
}

// DefaultOptions produces a mid-sized menu that exercises most presets.
func DefaultOptions() Options {
	return Options{
		Seed:             1,
		Sections:         4,
		MinItemsPer:      3,
		MaxItemsPer:      8,
		ImageRatio:       0.5,
		DescriptionRatio: 0.7,
		Currency:         "USD",
	}
}

var sectionNames = []string{
	"Starters", "Mains", "Grill", "Salads", "Sides",
	"Desserts", "Drinks", "Specials", "Soups", "Breakfast",
}

var dishNames = map[string][]string{
	"Starters":  {"Garlic Flatbread", "Crispy Calamari", "Bruschetta", "Soup of the Day", "Stuffed Mushrooms", "Halloumi Bites"},
	"Mains":     {"Fish & Chips", "Spaghetti Carbonara", "Chicken Tikka Masala", "Beef Bourguignon", "Pad Thai", "Mushroom Risotto", "Lamb Shank", "Seared Salmon"},
	"Grill":     {"BBQ Ribs", "Mixed Grill Platter", "Grilled Chicken", "Ribeye Steak", "Grilled Halloumi", "Charred Corn"},
	"Salads":    {"Caesar Salad", "Greek Salad", "Quinoa Bowl", "Cobb Salad", "Roast Beet Salad"},
	"Sides":     {"Triple-Cooked Chips", "Garlic Greens", "Mac & Cheese", "Slaw", "Seasonal Vegetables"},
	"Desserts":  {"Tiramisu", "Crème Brûlée", "Sticky Toffee Pudding", "Baklava", "Affogato", "Mango Sticky Rice"},
	"Drinks":    {"House Lemonade", "Cold Brew", "Café au Lait", "Fresh Orange Juice", "Sparkling Water"},
	"Specials":  {"Chef's Tasting Plate", "Catch of the Day", "Market Curry", "Butcher's Cut"},
	"Soups":     {"Tom Yum", "French Onion", "Minestrone", "Roast Tomato"},
	"Breakfast": {"Full Breakfast", "Shakshuka", "Avocado Toast", "Buttermilk Pancakes", "Granola Bowl"},
}

// Generate builds a synthetic menu from the options. Invalid options are
// clamped rather than rejected so callers can pass partial overrides.
func Generate(opts Options) *menu.MenuDocument {
	if opts.Sections <= 0 {
		opts.Sections = 1
	}
	if opts.Sections > len(sectionNames) {
		opts.Sections = len(sectionNames)
	}
	if opts.MinItemsPer <= 0 {
		opts.MinItemsPer = 1
	}
	if opts.MaxItemsPer < opts.MinItemsPer {
		opts.MaxItemsPer = opts.MinItemsPer
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	fake := faker.NewWithSeed(rand.NewSource(opts.Seed))

	cur, err := menu.ResolveCurrency(opts.Currency, "")
	if err != nil {
		cur = menu.DefaultCurrency
	}

	doc := &menu.MenuDocument{
		Title:    fake.Company().Name(),
		Currency: cur,
	}

	for s := 0; s < opts.Sections; s++ {
		name := sectionNames[s]
		count := opts.MinItemsPer + rng.Intn(opts.MaxItemsPer-opts.MinItemsPer+1)

		sec := menu.Section{
			ID:   fmt.Sprintf("sec-%d", s+1),
			Name: name,
		}
		dishes := dishNames[name]
		for i := 0; i < count; i++ {
			item := menu.Item{
				ID:    fmt.Sprintf("item-%d-%d", s+1, i+1),
				Name:  dishes[i%len(dishes)],
				Price: round2(5 + rng.Float64()*45),
			}
			if i >= len(dishes) {
				item.Name = fmt.Sprintf("%s %d", item.Name, i/len(dishes)+1)
			}
			if rng.Float64() < opts.DescriptionRatio {
				item.Description = fake.Lorem().Sentence(8)
			}
			if rng.Float64() < opts.ImageRatio {
				item.ImageRef = fmt.Sprintf("https://images.platewise.dev/dishes/%d-%d.jpg", s+1, i+1)
			}
			sec.Items = append(sec.Items, item)
		}
		doc.Sections = append(doc.Sections, sec)
	}
	return doc
}

// GenerateN builds a menu with exactly total items spread across sections,
// used by benchmarks that need precise item counts.
func GenerateN(seed int64, total int) *menu.MenuDocument {
	if total <= 0 {
		total = 1
	}
	sections := total / 8
	if sections < 1 {
		sections = 1
	}
	if sections > len(sectionNames) {
		sections = len(sectionNames)
	}

	opts := DefaultOptions()
	opts.Seed = seed
	doc := Generate(Options{
		Seed:             seed,
		Sections:         sections,
		MinItemsPer:      1,
		MaxItemsPer:      1,
		ImageRatio:       opts.ImageRatio,
		DescriptionRatio: opts.DescriptionRatio,
		Currency:         opts.Currency,
	})

	// Redistribute to hit the exact total.
	rng := rand.New(rand.NewSource(seed))
	for s := range doc.Sections {
		doc.Sections[s].Items = nil
	}
	for i := 0; i < total; i++ {
		s := i % len(doc.Sections)
		sec := &doc.Sections[s]
		name := sectionNames[s]
		dishes := dishNames[name]
		item := menu.Item{
			ID:    fmt.Sprintf("item-%d-%d", s+1, len(sec.Items)+1),
			Name:  fmt.Sprintf("%s %d", dishes[len(sec.Items)%len(dishes)], len(sec.Items)/len(dishes)+1),
			Price: round2(5 + rng.Float64()*45),
		}
		if rng.Float64() < 0.5 {
			item.ImageRef = fmt.Sprintf("https://images.platewise.dev/dishes/%d-%d.jpg", s+1, len(sec.Items)+1)
		}
		sec.Items = append(sec.Items, item)
	}
	return doc
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
