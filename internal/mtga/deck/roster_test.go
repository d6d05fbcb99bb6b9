package deck

import (
	"errors"
	"testing"
)

func testRoster() *Roster {
	return NewRoster([]*Deck{
		{Name: "Burn", Mainboard: []Entry{{Name: "Shock", Amount: 4}}},
		{Name: "Control", Mainboard: []Entry{{Name: "Opt", Amount: 4}}},
	})
}

func TestRosterAdd(t *testing.T) {
	r := testRoster()
	if err := r.Add(&Deck{Name: "Midrange"}); err != nil {
		t.Fatalf("failed to add deck: %v", err)
	}
	if got := r.Names(); len(got) != 3 || got[2] != "Midrange" {
		t.Errorf("expected Midrange appended, got %v", got)
	}

	if err := r.Add(&Deck{Name: "Burn"}); err == nil {
		t.Error("expected error adding duplicate name")
	}
}

func TestRosterRemove(t *testing.T) {
	r := testRoster()
	if err := r.Remove("Burn"); err != nil {
		t.Fatalf("failed to remove deck: %v", err)
	}
	if got := r.Names(); len(got) != 1 || got[0] != "Control" {
		t.Errorf("unexpected roster after removal: %v", got)
	}

	err := r.Remove("Burn")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRosterFind(t *testing.T) {
	r := testRoster()
	d, err := r.Find("Control")
	if err != nil {
		t.Fatalf("failed to find deck: %v", err)
	}
	if d.Mainboard[0].Name != "Opt" {
		t.Errorf("found wrong deck: %+v", d)
	}

	if _, err := r.Find("Tempo"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRosterReplaceKeepsPositionAndName(t *testing.T) {
	r := testRoster()
	replacement := &Deck{Name: "whatever", Mainboard: []Entry{{Name: "Duress", Amount: 4}}}
	if err := r.Replace("Burn", replacement); err != nil {
		t.Fatalf("failed to replace deck: %v", err)
	}

	names := r.Names()
	if names[0] != "Burn" {
		t.Errorf("replacement should keep position and name, got %v", names)
	}
	d, _ := r.Find("Burn")
	if d.Mainboard[0].Name != "Duress" {
		t.Errorf("replacement list not installed: %+v", d.Mainboard)
	}

	if err := r.Replace("Tempo", replacement); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRosterRename(t *testing.T) {
	r := testRoster()
	if err := r.Rename("Burn", "Mono Red"); err != nil {
		t.Fatalf("failed to rename deck: %v", err)
	}
	if _, err := r.Find("Mono Red"); err != nil {
		t.Errorf("renamed deck not found: %v", err)
	}

	if err := r.Rename("Control", "Mono Red"); err == nil {
		t.Error("expected error renaming onto an existing name")
	}
	if err := r.Rename("Tempo", "Combo"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRosterCardsAggregates(t *testing.T) {
	r := NewRoster([]*Deck{
		{Name: "A", Mainboard: []Entry{{Name: "Shock", Amount: 4}}},
		{Name: "B", Mainboard: []Entry{{Name: "Shock", Amount: 2}, {Name: "Opt", Amount: 4}}},
	})

	got := r.Cards(false)
	if got["Shock"] != 6 {
		t.Errorf("expected copies summed across decks, got %d", got["Shock"])
	}
	if got["Opt"] != 4 {
		t.Errorf("unexpected Opt amount: %d", got["Opt"])
	}
}
