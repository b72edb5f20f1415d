package games

import (
	"github.com/crownplay/casino-engine/internal/domain/entity"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
)

// Slot symbols. Horseshoe is the default symbol: the weights of the named
// symbols need not sum to 1 and the remaining probability mass falls to it.
const (
	SymbolDiamond   = "diamond"
	SymbolStar      = "star"
	SymbolCrown     = "crown"
	SymbolHorseshoe = "horseshoe"
)

// SymbolWeight pairs a symbol with its draw probability
type SymbolWeight struct {
	Symbol string
	Weight float64
}

// DefaultSymbolWeights mirrors the original reel configuration: 10% diamond,
// 20% star, 30% crown, remainder horseshoe.
var DefaultSymbolWeights = []SymbolWeight{
	{SymbolDiamond, 0.1},
	{SymbolStar, 0.2},
	{SymbolCrown, 0.3},
}

// Triple payouts per symbol; an exact pair of anything pays PairMultiplier.
var tripleMultipliers = map[string]float64{
	SymbolDiamond: 3.0,
	SymbolStar:    2.0,
	SymbolCrown:   1.5,
}

// PairMultiplier is the flat payout for exactly two matching symbols
const PairMultiplier = 1.1

// Slots draws three independent weighted reels
type Slots struct {
	weights []SymbolWeight
}

// NewSlots creates the slots generator with the default reel weights
func NewSlots() *Slots {
	return &Slots{weights: DefaultSymbolWeights}
}

// NewSlotsWithWeights creates a slots generator with custom reel weights
func NewSlotsWithWeights(weights []SymbolWeight) *Slots {
	return &Slots{weights: weights}
}

// GameType identifies the game
func (s *Slots) GameType() entity.GameType {
	return entity.GameSlots
}

// Draw picks one symbol from the weighted set
func (s *Slots) Draw(rng coreport.Rand) string {
	roll := rng.Float64()
	cumulative := 0.0
	for _, w := range s.weights {
		cumulative += w.Weight
		if roll < cumulative {
			return w.Symbol
		}
	}
	return SymbolHorseshoe
}

// Generate spins the three reels. No player parameters.
func (s *Slots) Generate(rng coreport.Rand, _ Params) (Outcome, error) {
	reels := []string{s.Draw(rng), s.Draw(rng), s.Draw(rng)}

	counts := make(map[string]int, 3)
	for _, symbol := range reels {
		counts[symbol]++
	}

	multiplier := 0.0
	for symbol, count := range counts {
		if count == 3 {
			multiplier = tripleMultipliers[symbol]
			break
		}
		if count == 2 {
			multiplier = PairMultiplier
		}
	}

	return Outcome{
		Won:        multiplier > 0,
		Multiplier: multiplier,
		Detail: map[string]any{
			"reels": reels,
		},
	}, nil
}
