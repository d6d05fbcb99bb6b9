// Package wildcards models the Arena crafting currency: one wildcard
// pool per craftable rarity, and the scarcity-weighted cost derived
// from it.
package wildcards

import "github.com/ramonehamilton/decklist-tracker/internal/mtga/cards"

// Wallet is the number of wildcards owned per craftable rarity. It is
// an immutable input for a session, synced from the daemon or set by
// hand.
type Wallet struct {
	Common   int `json:"common" toml:"common"`
	Uncommon int `json:"uncommon" toml:"uncommon"`
	Rare     int `json:"rare" toml:"rare"`
	Mythic   int `json:"mythic" toml:"mythic"`
}

// Select returns the owned count for a rarity. Land and Unknown are
// not craftable and always report zero.
func (w Wallet) Select(r cards.Rarity) int {
	switch r {
	case cards.RarityCommon:
		return w.Common
	case cards.RarityUncommon:
		return w.Uncommon
	case cards.RarityRare:
		return w.Rare
	case cards.RarityMythic:
		return w.Mythic
	default:
		return 0
	}
}

// Total sums the wallet across the four craftable rarities.
func (w Wallet) Total() int {
	return w.Common + w.Uncommon + w.Rare + w.Mythic
}

// Coefficients converts the wallet into relative crafting costs:
// total/(1+owned) per rarity. The more of a rarity is owned, the
// cheaper its marginal cost; a rarity with zero owned costs exactly
// the wallet total, and the +1 keeps the division defined.
func (w Wallet) Coefficients() Coefficients {
	total := float64(w.Total())
	return Coefficients{
		Common:   total / float64(1+w.Common),
		Uncommon: total / float64(1+w.Uncommon),
		Rare:     total / float64(1+w.Rare),
		Mythic:   total / float64(1+w.Mythic),
	}
}

// Coefficients is the scarcity-weighted cost of one wildcard per
// rarity, derived from a Wallet.
type Coefficients struct {
	Common   float64
	Uncommon float64
	Rare     float64
	Mythic   float64
}

// Select returns the cost coefficient for a rarity. Land and Unknown
// are free.
func (c Coefficients) Select(r cards.Rarity) float64 {
	switch r {
	case cards.RarityCommon:
		return c.Common
	case cards.RarityUncommon:
		return c.Uncommon
	case cards.RarityRare:
		return c.Rare
	case cards.RarityMythic:
		return c.Mythic
	default:
		return 0
	}
}

// Order returns the four craftable rarities sorted cheapest first,
// with Land appended last. Equal coefficients fall back to enumeration
// order (Common < Uncommon < Rare < Mythic) so the result is
// deterministic.
func (c Coefficients) Order() [5]cards.Rarity {
	order := [4]cards.Rarity{
		cards.RarityCommon,
		cards.RarityUncommon,
		cards.RarityRare,
		cards.RarityMythic,
	}
	// Insertion sort keeps ties in enumeration order.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && c.Select(order[j]) < c.Select(order[j-1]); j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	return [5]cards.Rarity{order[0], order[1], order[2], order[3], cards.RarityLand}
}
