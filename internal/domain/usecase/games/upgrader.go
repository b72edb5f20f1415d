package games

import (
	"fmt"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
)

// Upgrader target bounds. The roll is uniform in [0, RollScale); the payout
// on a win is bet * (RollScale/target - 1), fair odds against the scale.
const (
	RollScale = 1000.0
	MinTarget = 1.01
	MaxTarget = 1000.0
)

// Upgrader is the over/under multiplier roll
type Upgrader struct{}

// NewUpgrader creates the upgrader generator
func NewUpgrader() *Upgrader {
	return &Upgrader{}
}

// GameType identifies the game
func (u *Upgrader) GameType() entity.GameType {
	return entity.GameUpgrader
}

// Generate rolls against the target. Params: "target" in [1.01, 1000],
// "direction" = "over" | "under".
func (u *Upgrader) Generate(rng coreport.Rand, params Params) (Outcome, error) {
	target, err := floatParam(params, "target")
	if err != nil {
		return Outcome{}, err
	}
	if target < MinTarget || target > MaxTarget {
		return Outcome{}, fmt.Errorf("%w: target must be between %.2f and %.0f",
			errs.ErrInvalidFormat, MinTarget, MaxTarget)
	}

	direction, err := stringParam(params, "direction")
	if err != nil {
		return Outcome{}, err
	}
	if direction != "over" && direction != "under" {
		return Outcome{}, fmt.Errorf("%w: direction must be over or under", errs.ErrInvalidFormat)
	}

	roll := rng.Float64() * RollScale

	won := roll > target
	if direction == "under" {
		won = roll < target
	}

	multiplier := 0.0
	if won {
		multiplier = RollScale/target - 1
	}

	return Outcome{
		Won:        won,
		Multiplier: multiplier,
		Detail: map[string]any{
			"roll":      roll,
			"target":    target,
			"direction": direction,
		},
	}, nil
}
