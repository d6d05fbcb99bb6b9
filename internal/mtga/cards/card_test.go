package cards

import "testing"

func TestParseRarity(t *testing.T) {
	tests := []struct {
		in   string
		want Rarity
	}{
		{"common", RarityCommon},
		{"Uncommon", RarityUncommon},
		{"RARE", RarityRare},
		{" mythic ", RarityMythic},
		{"land", RarityLand},
		{"bonus", RarityUnknown},
		{"", RarityUnknown},
	}
	for _, tt := range tests {
		if got := ParseRarity(tt.in); got != tt.want {
			t.Errorf("ParseRarity(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRarityStringRoundTrip(t *testing.T) {
	for _, r := range []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityMythic, RarityLand, RarityUnknown} {
		if got := ParseRarity(r.String()); got != r {
			t.Errorf("ParseRarity(%q) = %v, want %v", r.String(), got, r)
		}
	}
}

func TestCraftable(t *testing.T) {
	for _, r := range []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityMythic} {
		if !r.Craftable() {
			t.Errorf("%v should be craftable", r)
		}
	}
	for _, r := range []Rarity{RarityLand, RarityUnknown} {
		if r.Craftable() {
			t.Errorf("%v should not be craftable", r)
		}
	}
}

func TestIsBasicLand(t *testing.T) {
	for _, name := range []string{"Plains", "Island", "Swamp", "Mountain", "Forest"} {
		if !IsBasicLand(name) {
			t.Errorf("%s should be a basic land", name)
		}
	}
	for _, name := range []string{"Snow-Covered Island", "Steam Vents", "Wastes", ""} {
		if IsBasicLand(name) {
			t.Errorf("%s should not be a basic land", name)
		}
	}
}

func TestSimplifiedName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Shock", "Shock"},
		{"A-Shock", "Shock"},
		{"Fable of the Mirror-Breaker // Reflection of Kiki-Jiki", "Fable of the Mirror-Breaker"},
		{"A-Cosmium Blast // A-Cosmium Blast", "Cosmium Blast"},
		{"Ancestral Vision", "Ancestral Vision"}, // "A-" prefix only, not mid-name
	}
	for _, tt := range tests {
		if got := SimplifiedName(tt.in); got != tt.want {
			t.Errorf("SimplifiedName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
