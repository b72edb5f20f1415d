package settlement

import (
	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
)

// DefaultMinBet is the floor applied to games without an explicit override
const DefaultMinBet = 500_000

// BetValidator checks settlement requests before any locking happens
type BetValidator struct {
	minBets map[entity.GameType]int64
}

// NewBetValidator creates a validator with per-game minimum bets; games absent
// from the map use DefaultMinBet
func NewBetValidator(minBets map[entity.GameType]int64) *BetValidator {
	if minBets == nil {
		minBets = map[entity.GameType]int64{}
	}
	return &BetValidator{minBets: minBets}
}

// MinBet returns the floor for a game
func (v *BetValidator) MinBet(gameType entity.GameType) int64 {
	if min, ok := v.minBets[gameType]; ok {
		return min
	}
	return DefaultMinBet
}

// Validate checks all request fields
func (v *BetValidator) Validate(req *PlaceBetRequest) error {
	if req.Token == "" {
		return errs.ErrInvalidToken
	}
	if req.AccountID == "" {
		return errs.ErrAccountNotFound
	}
	if !entity.IsValidGameType(string(req.GameType)) {
		return errs.ErrInvalidGameType
	}
	if req.Bet <= 0 {
		return errs.ErrInvalidBet
	}
	if min := v.MinBet(req.GameType); req.Bet < min {
		return errs.NewBelowMinimumError(string(req.GameType), req.Bet, min)
	}
	return nil
}
