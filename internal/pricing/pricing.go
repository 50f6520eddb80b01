package pricing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one line of a submitted cart. Price and modifier deltas are
// the values shown to the customer at order time; by default the order
// pipeline charges these as-is (see ResolveFromCatalog for the stricter
// alternative).
type CartItem struct {
	MenuItemID uuid.UUID
	Price      decimal.Decimal
	Notes      string
	Modifiers  []CartModifier
}

// CartModifier is a priced customization selected for a cart item.
type CartModifier struct {
	ModifierID  uuid.UUID
	Name        string
	PriceChange decimal.Decimal
}

// Total returns the exact sum of every item price plus every modifier
// delta in the cart. All arithmetic is decimal; no float accumulation.
func Total(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
		for _, mod := range item.Modifiers {
			total = total.Add(mod.PriceChange)
		}
	}
	return total
}

// CatalogLookup resolves authoritative prices from the menu catalog.
type CatalogLookup interface {
	MenuItemPrice(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
	ModifierPriceChange(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
}

// ResolveFromCatalog returns a copy of the cart with every price and
// modifier delta replaced by the catalog's current values, discarding
// whatever the client declared. This is the hardened trust boundary;
// the shipped default charges client-declared prices unchanged.
func ResolveFromCatalog(ctx context.Context, lookup CatalogLookup, items []CartItem) ([]CartItem, error) {
	resolved := make([]CartItem, len(items))
	for i, item := range items {
		price, err := lookup.MenuItemPrice(ctx, item.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("resolve menu item %s: %w", item.MenuItemID, err)
		}
		out := item
		out.Price = price
		out.Modifiers = make([]CartModifier, len(item.Modifiers))
		for j, mod := range item.Modifiers {
			delta, err := lookup.ModifierPriceChange(ctx, mod.ModifierID)
			if err != nil {
				return nil, fmt.Errorf("resolve modifier %s: %w", mod.ModifierID, err)
			}
			out.Modifiers[j] = mod
			out.Modifiers[j].PriceChange = delta
		}
		resolved[i] = out
	}
	return resolved, nil
}
