package crafting

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/ramonehamilton/decklist-tracker/internal/mtga/cards"
	"github.com/ramonehamilton/decklist-tracker/internal/mtga/deck"
)

// knownRares registers names in a collection as unowned rare cards.
func knownRares(c *cards.Collection, names ...string) {
	for _, name := range names {
		c.Insert(cards.CardData{Amount: 0, Name: name, Rarity: cards.RarityRare, SetCode: "TST"})
	}
}

func knownMythics(c *cards.Collection, names ...string) {
	for _, name := range names {
		c.Insert(cards.CardData{Amount: 0, Name: name, Rarity: cards.RarityMythic, SetCode: "TST"})
	}
}

func mono(name string, entries ...deck.Entry) *deck.Deck {
	return &deck.Deck{Name: name, Mainboard: entries}
}

func recommend(t *testing.T, opts Options, roster *deck.Roster, collection *cards.Collection) [][]string {
	t.Helper()
	got, err := New(opts, roster, collection).Recommend(context.Background())
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	return got
}

func TestRecommendEmptyRoster(t *testing.T) {
	got := recommend(t, Options{RaresLimit: 10}, deck.NewRoster(nil), cards.NewCollection())
	if got != nil {
		t.Errorf("expected no recommendations, got %v", got)
	}
}

func TestRecommendExcludesCompleteDecks(t *testing.T) {
	c := cards.NewCollection()
	c.Insert(cards.CardData{Amount: 4, Name: "Shock", Rarity: cards.RarityCommon, SetCode: "M21"})

	roster := deck.NewRoster([]*deck.Deck{mono("Burn", deck.Entry{Name: "Shock", Amount: 4})})
	got := recommend(t, Options{RaresLimit: 10, MythicsLimit: 10}, roster, c)
	if got != nil {
		t.Errorf("a complete deck is not a candidate, got %v", got)
	}
}

func TestRecommendSingleDeck(t *testing.T) {
	c := cards.NewCollection()
	knownRares(c, "Steel Seraph")

	roster := deck.NewRoster([]*deck.Deck{mono("Angels", deck.Entry{Name: "Steel Seraph", Amount: 3})})
	got := recommend(t, Options{RaresLimit: 3}, roster, c)

	want := [][]string{{"Angels"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRecommendBudgetExcludesDeck(t *testing.T) {
	c := cards.NewCollection()
	knownRares(c, "Steel Seraph")

	roster := deck.NewRoster([]*deck.Deck{mono("Angels", deck.Entry{Name: "Steel Seraph", Amount: 3})})
	got := recommend(t, Options{RaresLimit: 2}, roster, c)
	if got != nil {
		t.Errorf("deck over budget must not be a candidate, got %v", got)
	}
}

func TestRecommendSharedCopiesCraftedOnce(t *testing.T) {
	c := cards.NewCollection()
	knownRares(c, "Fable of the Mirror-Breaker")

	// Both decks miss the same two copies; the union is two crafts,
	// not four.
	roster := deck.NewRoster([]*deck.Deck{
		mono("Jund", deck.Entry{Name: "Fable of the Mirror-Breaker", Amount: 2}),
		mono("Rakdos", deck.Entry{Name: "Fable of the Mirror-Breaker", Amount: 2}),
	})
	got := recommend(t, Options{RaresLimit: 2}, roster, c)

	want := [][]string{{"Jund", "Rakdos"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRecommendSharedMythicAcrossDecks(t *testing.T) {
	c := cards.NewCollection()
	knownMythics(c, "Sheoldred, the Apocalypse")
	knownRares(c, "Cut Down", "Liliana of the Veil")

	roster := deck.NewRoster([]*deck.Deck{
		mono("Midrange",
			deck.Entry{Name: "Sheoldred, the Apocalypse", Amount: 1},
			deck.Entry{Name: "Cut Down", Amount: 2}),
		mono("Control",
			deck.Entry{Name: "Sheoldred, the Apocalypse", Amount: 1},
			deck.Entry{Name: "Liliana of the Veil", Amount: 2}),
	})

	// One mythic covers both decks; four rares cover their disjoint
	// rare needs.
	got := recommend(t, Options{RaresLimit: 4, MythicsLimit: 1}, roster, c)
	want := [][]string{{"Control", "Midrange"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRecommendDisjointNeedsTieReportedBoth(t *testing.T) {
	c := cards.NewCollection()
	knownRares(c, "Steel Seraph", "Haughty Djinn")

	roster := deck.NewRoster([]*deck.Deck{
		mono("Angels", deck.Entry{Name: "Steel Seraph", Amount: 2}),
		mono("Tempo", deck.Entry{Name: "Haughty Djinn", Amount: 2}),
	})

	// Budget fits either deck but not both; both singletons are
	// winners, lexicographically sorted.
	got := recommend(t, Options{RaresLimit: 2}, roster, c)
	want := [][]string{{"Angels"}, {"Tempo"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRecommendMonotoneInBudget(t *testing.T) {
	c := cards.NewCollection()
	knownRares(c, "Steel Seraph", "Haughty Djinn", "Graveyard Trespasser")

	roster := deck.NewRoster([]*deck.Deck{
		mono("Angels", deck.Entry{Name: "Steel Seraph", Amount: 2}),
		mono("Tempo", deck.Entry{Name: "Haughty Djinn", Amount: 2}),
		mono("Wolves", deck.Entry{Name: "Graveyard Trespasser", Amount: 2}),
	})

	prev := 0
	for _, budget := range []int{2, 4, 6} {
		got := recommend(t, Options{RaresLimit: budget}, roster, c)
		if len(got) == 0 {
			t.Fatalf("budget %d: expected winners", budget)
		}
		size := len(got[0])
		if size < prev {
			t.Errorf("budget %d: completable decks shrank from %d to %d", budget, prev, size)
		}
		prev = size
	}
	if prev != 3 {
		t.Errorf("largest budget should complete all 3 decks, got %d", prev)
	}
}

func TestRecommendStartingSelection(t *testing.T) {
	c := cards.NewCollection()
	knownRares(c, "Steel Seraph", "Haughty Djinn")

	roster := deck.NewRoster([]*deck.Deck{
		mono("Angels", deck.Entry{Name: "Steel Seraph", Amount: 2}),
		mono("Tempo", deck.Entry{Name: "Haughty Djinn", Amount: 2}),
	})

	// The budget fits one deck; pre-selecting Tempo pins the answer.
	got := recommend(t, Options{RaresLimit: 2, StartingSelection: []string{"Tempo"}}, roster, c)
	want := [][]string{{"Tempo"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRecommendInfeasibleSeedFallsBack(t *testing.T) {
	c := cards.NewCollection()
	knownRares(c, "Steel Seraph", "Haughty Djinn")

	roster := deck.NewRoster([]*deck.Deck{
		mono("Angels", deck.Entry{Name: "Steel Seraph", Amount: 2}),
		mono("Tempo", deck.Entry{Name: "Haughty Djinn", Amount: 2}),
	})

	// Pre-selecting both busts the budget; the search must fall back
	// to an empty start and still terminate with the singleton winners.
	got := recommend(t, Options{RaresLimit: 2, StartingSelection: []string{"Angels", "Tempo"}}, roster, c)
	want := [][]string{{"Angels"}, {"Tempo"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRecommendUnknownSeedNameIgnored(t *testing.T) {
	c := cards.NewCollection()
	knownRares(c, "Steel Seraph")

	roster := deck.NewRoster([]*deck.Deck{mono("Angels", deck.Entry{Name: "Steel Seraph", Amount: 1})})
	got := recommend(t, Options{RaresLimit: 1, StartingSelection: []string{"No Such Deck"}}, roster, c)
	want := [][]string{{"Angels"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRecommendWishboardCountsUnderIgnoreSideboard(t *testing.T) {
	c := cards.NewCollection()
	c.Insert(cards.CardData{Amount: 2, Name: "Karn, the Great Creator", Rarity: cards.RarityRare, SetCode: "WAR"})
	names := []string{
		"Tormod's Crypt", "Soul-Guide Lantern", "Grafdigger's Cage",
		"Cityscape Leveler", "God-Pharaoh's Statue", "Meteor Golem",
		"Skysovereign, Consul Flagship", "Thorn Mammoth",
	}
	knownRares(c, names...)

	side := make([]deck.Entry, len(names))
	for i, name := range names {
		side[i] = deck.Entry{Name: name, Amount: 1}
	}
	karn := &deck.Deck{
		Name:      "Karn Prison",
		Mainboard: []deck.Entry{{Name: "Karn, the Great Creator", Amount: 2}},
		Sideboard: side,
	}
	roster := deck.NewRoster([]*deck.Deck{karn})

	// Ignoring sideboards still charges the first seven wishboard
	// slots: seven rares fit, six do not.
	got := recommend(t, Options{RaresLimit: 7, IgnoreSideboard: true}, roster, c)
	want := [][]string{{"Karn Prison"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got = recommend(t, Options{RaresLimit: 6, IgnoreSideboard: true}, roster, c)
	if got != nil {
		t.Errorf("six rares cannot cover the wishboard, got %v", got)
	}
}

func TestRecommendUnresolvedStrict(t *testing.T) {
	roster := deck.NewRoster([]*deck.Deck{mono("Mystery", deck.Entry{Name: "Black Lotus", Amount: 1})})

	_, err := New(Options{RaresLimit: 5}, roster, cards.NewCollection()).Recommend(context.Background())
	if !errors.Is(err, cards.ErrUnknownCard) {
		t.Errorf("expected ErrUnknownCard, got %v", err)
	}
}

func TestRecommendUnresolvedSkipped(t *testing.T) {
	c := cards.NewCollection()
	knownRares(c, "Steel Seraph")

	roster := deck.NewRoster([]*deck.Deck{
		mono("Mystery", deck.Entry{Name: "Black Lotus", Amount: 1}),
		mono("Angels", deck.Entry{Name: "Steel Seraph", Amount: 1}),
	})

	got := recommend(t, Options{RaresLimit: 1, SkipUnresolved: true}, roster, c)
	want := [][]string{{"Angels"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("degraded mode should skip the unresolved deck, got %v", got)
	}
}

func TestRecommendTooManyDecks(t *testing.T) {
	c := cards.NewCollection()
	var decks []*deck.Deck
	for i := 0; i < maxCandidates+1; i++ {
		name := fmt.Sprintf("Rare %03d", i)
		knownRares(c, name)
		decks = append(decks, mono(fmt.Sprintf("Deck %03d", i), deck.Entry{Name: name, Amount: 1}))
	}

	_, err := New(Options{RaresLimit: maxCandidates + 1}, deck.NewRoster(decks), c).Recommend(context.Background())
	if !errors.Is(err, ErrTooManyDecks) {
		t.Errorf("expected ErrTooManyDecks, got %v", err)
	}
}

func TestRecommendHonorsContext(t *testing.T) {
	c := cards.NewCollection()
	knownRares(c, "Steel Seraph")
	roster := deck.NewRoster([]*deck.Deck{mono("Angels", deck.Entry{Name: "Steel Seraph", Amount: 1})})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{RaresLimit: 1}, roster, c).Recommend(ctx)
	if err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestBitset(t *testing.T) {
	b := newBitset(130)
	if len(b) != 3 {
		t.Fatalf("expected 3 words for 130 rows, got %d", len(b))
	}
	b.set(0)
	b.set(64)
	b.set(129)
	if b.popcount() != 3 {
		t.Errorf("expected popcount 3, got %d", b.popcount())
	}

	other := newBitset(130)
	other.set(0)
	other.set(1)
	b.orInto(other)
	if b.popcount() != 4 {
		t.Errorf("expected popcount 4 after union, got %d", b.popcount())
	}
}
