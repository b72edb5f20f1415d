package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
)

func TestBetValidator(t *testing.T) {
	validator := NewBetValidator(map[entity.GameType]int64{
		entity.GameCoinflip: 1_000_000,
	})

	valid := func() *PlaceBetRequest {
		return &PlaceBetRequest{
			Token:     "tok-1",
			AccountID: "acc-1",
			GameType:  entity.GameCoinflip,
			Bet:       2_000_000,
		}
	}

	t.Run("Valid request", func(t *testing.T) {
		assert.NoError(t, validator.Validate(valid()))
	})

	t.Run("Empty token", func(t *testing.T) {
		req := valid()
		req.Token = ""
		assert.ErrorIs(t, validator.Validate(req), errs.ErrInvalidToken)
	})

	t.Run("Empty account", func(t *testing.T) {
		req := valid()
		req.AccountID = ""
		assert.ErrorIs(t, validator.Validate(req), errs.ErrAccountNotFound)
	})

	t.Run("Unknown game type", func(t *testing.T) {
		req := valid()
		req.GameType = "roulette"
		assert.ErrorIs(t, validator.Validate(req), errs.ErrInvalidGameType)
	})

	t.Run("Non-positive bet", func(t *testing.T) {
		req := valid()
		req.Bet = 0
		assert.ErrorIs(t, validator.Validate(req), errs.ErrInvalidBet)

		req.Bet = -100
		assert.ErrorIs(t, validator.Validate(req), errs.ErrInvalidBet)
	})

	t.Run("Below the explicit game floor", func(t *testing.T) {
		req := valid()
		req.Bet = 999_999
		err := validator.Validate(req)
		assert.ErrorIs(t, err, errs.ErrBelowMinimum)
	})

	t.Run("Games without an override use the default floor", func(t *testing.T) {
		req := valid()
		req.GameType = entity.GameSlots
		req.Bet = DefaultMinBet - 1
		assert.ErrorIs(t, validator.Validate(req), errs.ErrBelowMinimum)

		req.Bet = DefaultMinBet
		assert.NoError(t, validator.Validate(req))
	})

	t.Run("MinBet lookup", func(t *testing.T) {
		assert.Equal(t, int64(1_000_000), validator.MinBet(entity.GameCoinflip))
		assert.Equal(t, int64(DefaultMinBet), validator.MinBet(entity.GameUpgrader))
	})
}
