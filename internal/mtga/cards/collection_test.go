package cards

import (
	"errors"
	"testing"

	"github.com/ramonehamilton/decklist-tracker/internal/mtga/deck"
)

func TestInsertAndGet(t *testing.T) {
	c := NewCollection()
	c.Insert(CardData{Amount: 4, Name: "Shock", Rarity: RarityCommon, SetCode: "M21"})
	c.Insert(CardData{Amount: 2, Name: "Shock", Rarity: RarityCommon, SetCode: "STA"})

	printings, err := c.Get("Shock")
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if len(printings) != 2 {
		t.Fatalf("expected 2 printings, got %d", len(printings))
	}
}

func TestInsertUpsertsSamePrinting(t *testing.T) {
	c := NewCollection()
	c.Insert(CardData{Amount: 1, Name: "Shock", Rarity: RarityCommon, SetCode: "M21"})
	c.Insert(CardData{Amount: 3, Name: "Shock", Rarity: RarityCommon, SetCode: "M21"})

	printings, _ := c.Get("Shock")
	if len(printings) != 1 || printings[0].Amount != 3 {
		t.Errorf("expected single printing with amount 3, got %+v", printings)
	}
}

func TestInsertForcesBasicLandRarity(t *testing.T) {
	c := NewCollection()
	c.Insert(CardData{Amount: 40, Name: "Mountain", Rarity: RarityCommon, SetCode: "DMU"})

	printings, _ := c.Get("Mountain")
	if printings[0].Rarity != RarityLand {
		t.Errorf("basic land must be stored as RarityLand, got %v", printings[0].Rarity)
	}
}

func TestInsertIndexesSimplifiedName(t *testing.T) {
	c := NewCollection()
	c.Insert(CardData{Amount: 2, Name: "Fable of the Mirror-Breaker // Reflection of Kiki-Jiki", Rarity: RarityRare, SetCode: "NEO"})

	if !c.Has("Fable of the Mirror-Breaker") {
		t.Error("simplified name lookup failed")
	}
	if !c.Has("Fable of the Mirror-Breaker // Reflection of Kiki-Jiki") {
		t.Error("literal name lookup failed")
	}
}

func TestGetUnknownCard(t *testing.T) {
	c := NewCollection()
	_, err := c.Get("Black Lotus")
	if !errors.Is(err, ErrUnknownCard) {
		t.Errorf("expected ErrUnknownCard, got %v", err)
	}
}

func TestMergeLastWriterWins(t *testing.T) {
	a := NewCollection()
	a.Insert(CardData{Amount: 1, Name: "Shock", Rarity: RarityCommon, SetCode: "M21"})
	a.Insert(CardData{Amount: 4, Name: "Opt", Rarity: RarityCommon, SetCode: "XLN"})

	b := NewCollection()
	b.Insert(CardData{Amount: 3, Name: "Shock", Rarity: RarityCommon, SetCode: "M21"})

	a.Merge(b)

	printings, _ := a.Get("Shock")
	if printings[0].Amount != 3 {
		t.Errorf("incoming amount should win, got %d", printings[0].Amount)
	}
	if !a.Has("Opt") {
		t.Error("merge must not drop existing cards")
	}
}

func TestMissing(t *testing.T) {
	c := NewCollection()
	c.Insert(CardData{Amount: 2, Name: "Lightning Strike", Rarity: RarityCommon, SetCode: "DMU"})
	c.Insert(CardData{Amount: 0, Name: "Fable of the Mirror-Breaker", Rarity: RarityRare, SetCode: "NEO"})

	d := &deck.Deck{
		Name: "Burn",
		Mainboard: []deck.Entry{
			{Name: "Lightning Strike", Amount: 4},
			{Name: "Fable of the Mirror-Breaker", Amount: 3},
			{Name: "Mountain", Amount: 20},
		},
	}

	missing, err := c.Missing(d, false)
	if err != nil {
		t.Fatalf("failed to compute missing: %v", err)
	}

	// Basic lands are skipped; names come back sorted.
	if len(missing) != 2 {
		t.Fatalf("expected 2 missing entries, got %d", len(missing))
	}
	if missing[0].Name != "Fable of the Mirror-Breaker" || missing[0].Amount != 3 {
		t.Errorf("unexpected first entry: %+v", missing[0])
	}
	if missing[1].Name != "Lightning Strike" || missing[1].Amount != 2 {
		t.Errorf("unexpected second entry: %+v", missing[1])
	}
}

func TestMissingSaturatesAtZero(t *testing.T) {
	c := NewCollection()
	c.Insert(CardData{Amount: 4, Name: "Shock", Rarity: RarityCommon, SetCode: "M21"})
	c.Insert(CardData{Amount: 4, Name: "Shock", Rarity: RarityCommon, SetCode: "STA"})

	d := &deck.Deck{Mainboard: []deck.Entry{{Name: "Shock", Amount: 4}}}
	missing, err := c.Missing(d, false)
	if err != nil {
		t.Fatalf("failed to compute missing: %v", err)
	}
	if missing[0].Amount != 0 {
		t.Errorf("owning more than required must report zero missing, got %d", missing[0].Amount)
	}
}

func TestMissingPicksCheapestPrinting(t *testing.T) {
	c := NewCollection()
	// Same card printed at two rarities; the lower ordinal must be
	// reported.
	c.Insert(CardData{Amount: 0, Name: "Firemind's Research", Rarity: RarityRare, SetCode: "GRN"})
	c.Insert(CardData{Amount: 0, Name: "Firemind's Research", Rarity: RarityUncommon, SetCode: "PRM"})

	d := &deck.Deck{Mainboard: []deck.Entry{{Name: "Firemind's Research", Amount: 2}}}
	missing, err := c.Missing(d, false)
	if err != nil {
		t.Fatalf("failed to compute missing: %v", err)
	}
	if missing[0].Rarity != RarityUncommon || missing[0].SetCode != "PRM" {
		t.Errorf("expected cheapest printing reported, got %+v", missing[0])
	}
}

func TestMissingUnknownCardFails(t *testing.T) {
	c := NewCollection()
	d := &deck.Deck{Mainboard: []deck.Entry{{Name: "Black Lotus", Amount: 1}}}
	_, err := c.Missing(d, false)
	if !errors.Is(err, ErrUnknownCard) {
		t.Errorf("expected ErrUnknownCard, got %v", err)
	}
}

func TestCountMissingOfRarity(t *testing.T) {
	c := NewCollection()
	c.Insert(CardData{Amount: 1, Name: "Fable of the Mirror-Breaker", Rarity: RarityRare, SetCode: "NEO"})
	c.Insert(CardData{Amount: 0, Name: "Teferi, Hero of Dominaria", Rarity: RarityMythic, SetCode: "DAR"})

	d := &deck.Deck{Mainboard: []deck.Entry{
		{Name: "Fable of the Mirror-Breaker", Amount: 4},
		{Name: "Teferi, Hero of Dominaria", Amount: 2},
	}}

	rares, err := c.CountMissingOfRarity(d, false, RarityRare)
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if rares != 3 {
		t.Errorf("expected 3 missing rares, got %d", rares)
	}

	mythics, err := c.CountMissingOfRarity(d, false, RarityMythic)
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if mythics != 2 {
		t.Errorf("expected 2 missing mythics, got %d", mythics)
	}
}

func TestAllDeterministic(t *testing.T) {
	c := NewCollection()
	c.Insert(CardData{Amount: 1, Name: "Opt", Rarity: RarityCommon, SetCode: "XLN"})
	c.Insert(CardData{Amount: 2, Name: "Duress", Rarity: RarityCommon, SetCode: "M19"})

	first := c.All()
	second := c.All()
	if len(first) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("All() must be deterministic: %+v vs %+v", first[i], second[i])
		}
	}
	if first[0].Name != "Duress" {
		t.Errorf("rows should be sorted by name, got %+v", first)
	}
}
