package games

import (
	"errors"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
)

// Blackjack hand states
type HandState string

// State machine: NotStarted -> PlayerTurn -> (hit loop | stand) -> DealerTurn
// -> Resolved. A player bust in PlayerTurn resolves immediately.
const (
	StateNotStarted HandState = "not_started"
	StatePlayerTurn HandState = "player_turn"
	StateDealerTurn HandState = "dealer_turn"
	StateResolved   HandState = "resolved"
)

// DealerStand is the score at which the dealer stops drawing
const DealerStand = 17

// BlackjackWinMultiplier is the even-money payout on a player win
const BlackjackWinMultiplier = 2.0

// Hand state errors
var (
	ErrHandNotInPlay = errors.New("hand is not in the player turn")
	ErrHandResolved  = errors.New("hand is already resolved")
)

// BlackjackHand is one dealt hand played against the house
type BlackjackHand struct {
	deck   *Deck
	Player []Card
	Dealer []Card
	State  HandState
	// Outcome is valid once State is StateResolved
	Outcome Outcome
}

// DealHand starts a fresh hand from a newly shuffled deck: two cards each,
// player first.
func DealHand(rng coreport.Rand) *BlackjackHand {
	h := &BlackjackHand{deck: NewDeck(rng), State: StateNotStarted}
	for i := 0; i < 2; i++ {
		c, _ := h.deck.Draw()
		h.Player = append(h.Player, c)
		c, _ = h.deck.Draw()
		h.Dealer = append(h.Dealer, c)
	}
	h.State = StatePlayerTurn
	return h
}

// PlayerScore returns the player's current score
func (h *BlackjackHand) PlayerScore() int {
	return HandScore(h.Player)
}

// DealerScore returns the dealer's current score
func (h *BlackjackHand) DealerScore() int {
	return HandScore(h.Dealer)
}

// Hit draws one card for the player. A score over 21 busts and resolves the
// hand as a loss.
func (h *BlackjackHand) Hit() error {
	if h.State != StatePlayerTurn {
		return ErrHandNotInPlay
	}
	card, ok := h.deck.Draw()
	if !ok {
		// Deck exhausted mid-hand, stand automatically
		return h.Stand()
	}
	h.Player = append(h.Player, card)
	if h.PlayerScore() > 21 {
		h.resolve(false, false)
	}
	return nil
}

// Stand ends the player turn and runs the dealer: draw until the score
// reaches 17 or the deck runs out, then compare.
func (h *BlackjackHand) Stand() error {
	if h.State != StatePlayerTurn {
		return ErrHandNotInPlay
	}
	h.State = StateDealerTurn

	for h.DealerScore() < DealerStand {
		card, ok := h.deck.Draw()
		if !ok {
			break
		}
		h.Dealer = append(h.Dealer, card)
	}

	playerScore := h.PlayerScore()
	dealerScore := h.DealerScore()

	switch {
	case dealerScore > 21 || playerScore > dealerScore:
		h.resolve(true, false)
	case playerScore == dealerScore:
		// Tie refunds the stake
		h.resolve(false, true)
	default:
		h.resolve(false, false)
	}
	return nil
}

// resolve finalizes the hand outcome
func (h *BlackjackHand) resolve(won, push bool) {
	multiplier := 0.0
	switch {
	case won:
		multiplier = BlackjackWinMultiplier
	case push:
		multiplier = 1.0
	}
	h.Outcome = Outcome{
		Won:        won,
		Push:       push,
		Multiplier: multiplier,
		Detail: map[string]any{
			"player":       cardStrings(h.Player),
			"dealer":       cardStrings(h.Dealer),
			"player_score": h.PlayerScore(),
			"dealer_score": h.DealerScore(),
		},
	}
	h.State = StateResolved
}

// cardStrings renders a hand for the outcome detail
func cardStrings(hand []Card) []string {
	out := make([]string, len(hand))
	for i, c := range hand {
		out[i] = c.String()
	}
	return out
}

// Blackjack is the one-shot outcome generator: it auto-plays the player hand
// with a hit-below-17 policy. Interactive hands go through DealHand directly.
type Blackjack struct{}

// NewBlackjack creates the blackjack generator
func NewBlackjack() *Blackjack {
	return &Blackjack{}
}

// GameType identifies the game
func (b *Blackjack) GameType() entity.GameType {
	return entity.GameBlackjack
}

// Generate deals and plays a full hand. No player parameters.
func (b *Blackjack) Generate(rng coreport.Rand, _ Params) (Outcome, error) {
	hand := DealHand(rng)
	for hand.State == StatePlayerTurn && hand.PlayerScore() < DealerStand {
		if err := hand.Hit(); err != nil {
			return Outcome{}, err
		}
	}
	if hand.State == StatePlayerTurn {
		if err := hand.Stand(); err != nil {
			return Outcome{}, err
		}
	}
	return hand.Outcome, nil
}
