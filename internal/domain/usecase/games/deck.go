package games

import (
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
)

// Card ranks and suits
var (
	ranks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
	suits = []string{"♠", "♥", "♦", "♣"}
)

// Card is one playing card
type Card struct {
	Rank string
	Suit string
}

// String renders the card for display
func (c Card) String() string {
	return c.Rank + c.Suit
}

// value returns the blackjack value of the card, counting aces as 11;
// HandScore reduces aces to 1 as needed.
func (c Card) value() int {
	switch c.Rank {
	case "A":
		return 11
	case "J", "Q", "K", "10":
		return 10
	default:
		// Ranks 2-9 parse as their face value
		return int(c.Rank[0] - '0')
	}
}

// Deck is a single 52-card deck
type Deck struct {
	cards []Card
}

// NewDeck builds a fresh 52-card deck shuffled with Fisher-Yates. Decks are
// never reused across hands.
func NewDeck(rng coreport.Rand) *Deck {
	cards := make([]Card, 0, 52)
	for _, suit := range suits {
		for _, rank := range ranks {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &Deck{cards: cards}
}

// Draw removes and returns the top card; ok is false when the deck is exhausted
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// Remaining returns how many cards are left
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// HandScore computes the blackjack score of a hand. Aces count 11 first, then
// drop to 1 one at a time while the total exceeds 21, so {A, K} scores 21.
func HandScore(hand []Card) int {
	score := 0
	aces := 0
	for _, c := range hand {
		score += c.value()
		if c.Rank == "A" {
			aces++
		}
	}
	for score > 21 && aces > 0 {
		score -= 10
		aces--
	}
	return score
}
