package deck

import (
	"testing"
)

func TestParseCard(t *testing.T) {
	tests := []struct {
		input string
		want  Card
	}{
		{"AH", Card{Ace, Hearts}},
		{"ah", Card{Ace, Hearts}},
		{"10D", Card{Ten, Diamonds}},
		{"TD", Card{Ten, Diamonds}},
		{"T♣", Card{Ten, Clubs}},
		{"2s", Card{Two, Spades}},
		{"KC", Card{King, Clubs}},
		{"  QH ", Card{Queen, Hearts}},
		{"J♦", Card{Jack, Diamonds}},
	}

	for _, tt := range tests {
		got, err := ParseCard(tt.input)
		if err != nil {
			t.Errorf("ParseCard(%q) returned error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCard(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseCardInvalid(t *testing.T) {
	for _, input := range []string{"", "A", "1H", "11H", "AX", "XH", "A H"} {
		if _, err := ParseCard(input); err == nil {
			t.Errorf("ParseCard(%q) should have failed", input)
		}
	}
}

func TestParseCards(t *testing.T) {
	cards, err := ParseCards("10H KD 2c")
	if err != nil {
		t.Fatalf("ParseCards returned error: %v", err)
	}
	want := []Card{{Ten, Hearts}, {King, Diamonds}, {Two, Clubs}}
	if len(cards) != len(want) {
		t.Fatalf("expected %d cards, got %d", len(want), len(cards))
	}
	for i := range want {
		if cards[i] != want[i] {
			t.Errorf("card %d = %v, want %v", i, cards[i], want[i])
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, card := range Master() {
		parsed, err := ParseCard(card.String())
		if err != nil {
			t.Fatalf("ParseCard(%q) returned error: %v", card.String(), err)
		}
		if parsed != card {
			t.Errorf("round trip of %v gave %v", card, parsed)
		}
	}
}

func TestCardIndex(t *testing.T) {
	if got := MustParseCard("2C").Index(); got != 0 {
		t.Errorf("2C index = %d, want 0", got)
	}
	if got := MustParseCard("AS").Index(); got != 51 {
		t.Errorf("AS index = %d, want 51", got)
	}
	if got := MustParseCard("2S").Index(); got != 3 {
		t.Errorf("2S index = %d, want 3", got)
	}
	if got := MustParseCard("3C").Index(); got != 4 {
		t.Errorf("3C index = %d, want 4", got)
	}
}

func TestMasterDeck(t *testing.T) {
	master := Master()
	if len(master) != 52 {
		t.Fatalf("master deck has %d cards, want 52", len(master))
	}
	for i, card := range master {
		if card.Index() != i {
			t.Errorf("master[%d] = %v has index %d", i, card, card.Index())
		}
	}
	if NewCardSet(master).Count() != 52 {
		t.Error("master deck contains duplicate cards")
	}
}

func TestRemaining(t *testing.T) {
	exclude := NewCardSet(MustParseCards("2C AS"))
	remaining := Remaining(exclude)
	if len(remaining) != 50 {
		t.Fatalf("expected 50 cards, got %d", len(remaining))
	}
	for _, card := range remaining {
		if exclude.Contains(card) {
			t.Errorf("excluded card %v still present", card)
		}
	}
}

func TestCardSet(t *testing.T) {
	var cs CardSet
	ace := MustParseCard("AH")
	king := MustParseCard("KH")

	cs = cs.Add(ace)
	if !cs.Contains(ace) {
		t.Error("set should contain AH")
	}
	if cs.Contains(king) {
		t.Error("set should not contain KH")
	}

	other := NewCardSet([]Card{king})
	union := cs.Union(other)
	if union.Count() != 2 {
		t.Errorf("union count = %d, want 2", union.Count())
	}
	if got := union.Difference(other); got != cs {
		t.Errorf("difference = %v, want %v", got, cs)
	}
	if !union.Intersects(other) {
		t.Error("union should intersect other")
	}
	if got := union.Remove(king); got != cs {
		t.Errorf("remove = %v, want %v", got, cs)
	}
}

func TestSameRankSameSuit(t *testing.T) {
	ah := MustParseCard("AH")
	as := MustParseCard("AS")
	kh := MustParseCard("KH")

	if !ah.SameRank(as) || ah.SameRank(kh) {
		t.Error("SameRank misbehaved")
	}
	if !ah.SameSuit(kh) || ah.SameSuit(as) {
		t.Error("SameSuit misbehaved")
	}
}
