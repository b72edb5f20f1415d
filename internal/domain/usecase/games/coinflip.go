package games

import (
	"fmt"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
)

// Coin sides
const (
	SideHeads = "heads"
	SideTails = "tails"
)

// CoinflipWinMultiplier is the even-money payout on a correct call
const CoinflipWinMultiplier = 2.0

// Coinflip is a single fair coin toss against the player's call
type Coinflip struct{}

// NewCoinflip creates the coinflip generator
func NewCoinflip() *Coinflip {
	return &Coinflip{}
}

// GameType identifies the game
func (c *Coinflip) GameType() entity.GameType {
	return entity.GameCoinflip
}

// Generate flips the coin. Params: "side" = "heads" | "tails".
func (c *Coinflip) Generate(rng coreport.Rand, params Params) (Outcome, error) {
	side, err := stringParam(params, "side")
	if err != nil {
		return Outcome{}, err
	}
	if side != SideHeads && side != SideTails {
		return Outcome{}, fmt.Errorf("%w: side must be heads or tails", errs.ErrInvalidFormat)
	}

	landed := SideTails
	if rng.Float64() < 0.5 {
		landed = SideHeads
	}

	won := landed == side
	multiplier := 0.0
	if won {
		multiplier = CoinflipWinMultiplier
	}

	return Outcome{
		Won:        won,
		Multiplier: multiplier,
		Detail: map[string]any{
			"picked": side,
			"landed": landed,
		},
	}, nil
}
