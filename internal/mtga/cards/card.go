// Package cards holds the card ownership ledger and the card identity
// types shared across the tracker.
package cards

import "strings"

// Rarity classifies a printing for wildcard accounting.
// Land and Unknown never consume wildcards.
type Rarity int

// Rarity values, in the order used to pick the printing reported by
// Collection.Missing (lowest value wins ties).
const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityMythic
	RarityLand
	RarityUnknown
)

// ParseRarity converts a rarity string (as reported by Scryfall or a
// collection export) into a Rarity. Unrecognized strings map to
// RarityUnknown.
func ParseRarity(s string) Rarity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "common":
		return RarityCommon
	case "uncommon":
		return RarityUncommon
	case "rare":
		return RarityRare
	case "mythic":
		return RarityMythic
	case "land":
		return RarityLand
	default:
		return RarityUnknown
	}
}

// String returns the lowercase name of the rarity.
func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityUncommon:
		return "uncommon"
	case RarityRare:
		return "rare"
	case RarityMythic:
		return "mythic"
	case RarityLand:
		return "land"
	default:
		return "unknown"
	}
}

// Craftable reports whether crafting this rarity consumes a wildcard.
func (r Rarity) Craftable() bool {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare, RarityMythic:
		return true
	default:
		return false
	}
}

// Printing is one (set, rarity) version of a card together with how
// many copies of that version are owned.
type Printing struct {
	Amount  int    `json:"amount"`
	Rarity  Rarity `json:"rarity"`
	SetCode string `json:"set"`
}

// CardData is a single ledger record: a printing plus the card name it
// belongs to. It is the unit of Collection.Insert and of the data
// returned by the card-database collaborator.
type CardData struct {
	Amount  int
	Name    string
	Rarity  Rarity
	SetCode string
}

// MissingCard describes one card a deck still needs: how many copies
// are missing, plus the cheapest owned printing's rarity and set.
type MissingCard struct {
	Name    string
	Amount  int
	Rarity  Rarity
	SetCode string
}

// basicLands are always freely available in Arena and must never
// consume wildcards.
var basicLands = map[string]bool{
	"Plains":   true,
	"Island":   true,
	"Swamp":    true,
	"Mountain": true,
	"Forest":   true,
}

// IsBasicLand reports whether name is one of the five basic lands.
func IsBasicLand(name string) bool {
	return basicLands[name]
}

// SimplifiedName normalizes a card name for ledger lookups: the "A-"
// alternate-art (Alchemy rebalance) prefix is stripped and split-card
// names are truncated at the " // " separator, since decklists refer
// to split cards by their front face only.
func SimplifiedName(name string) string {
	name = strings.TrimPrefix(name, "A-")
	if front, _, ok := strings.Cut(name, " // "); ok {
		return front
	}
	return name
}
