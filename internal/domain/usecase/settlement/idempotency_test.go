package settlement

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	persistencemocks "github.com/crownplay/casino-engine/mocks/port/persistence"
)

func TestIdempotencyHandlerCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("Fresh token", func(t *testing.T) {
		repo := persistencemocks.NewMockSettlementRepository(t)
		repo.On("TokenExists", ctx, "tok-new").Return(false, nil).Once()

		handler := NewIdempotencyHandler(repo)
		stored, found, err := handler.Check(ctx, "tok-new")
		assert.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, stored)
	})

	t.Run("Replayed token returns the stored settlement", func(t *testing.T) {
		existing := &entity.Settlement{
			Token:         "tok-dup",
			AccountID:     "acc-1",
			GameType:      entity.GameCoinflip,
			BetAmount:     1_000_000,
			Result:        entity.ResultWin,
			WonAmount:     2_000_000,
			ResultBalance: 11_000_000,
		}

		repo := persistencemocks.NewMockSettlementRepository(t)
		repo.On("TokenExists", ctx, "tok-dup").Return(true, nil).Once()
		repo.On("GetByToken", ctx, "tok-dup").Return(existing, nil).Once()

		handler := NewIdempotencyHandler(repo)
		stored, found, err := handler.Check(ctx, "tok-dup")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, existing, stored)
	})

	t.Run("Gone on retrieval is treated as absent", func(t *testing.T) {
		repo := persistencemocks.NewMockSettlementRepository(t)
		repo.On("TokenExists", ctx, "tok-gone").Return(true, nil).Once()
		repo.On("GetByToken", ctx, "tok-gone").Return(nil, errs.ErrSettlementNotFound).Once()

		handler := NewIdempotencyHandler(repo)
		stored, found, err := handler.Check(ctx, "tok-gone")
		assert.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, stored)
	})

	t.Run("Existence check failure", func(t *testing.T) {
		repo := persistencemocks.NewMockSettlementRepository(t)
		repo.On("TokenExists", ctx, "tok-err").Return(false, errors.New("connection reset")).Once()

		handler := NewIdempotencyHandler(repo)
		_, found, err := handler.Check(ctx, "tok-err")
		assert.Error(t, err)
		assert.False(t, found)
	})

	t.Run("Retrieval failure", func(t *testing.T) {
		repo := persistencemocks.NewMockSettlementRepository(t)
		repo.On("TokenExists", ctx, "tok-err").Return(true, nil).Once()
		repo.On("GetByToken", ctx, "tok-err").Return(nil, errors.New("connection reset")).Once()

		handler := NewIdempotencyHandler(repo)
		_, found, err := handler.Check(ctx, "tok-err")
		assert.Error(t, err)
		assert.True(t, found)
	})
}
