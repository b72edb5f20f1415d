package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
)

func TestRegistry(t *testing.T) {
	registry := NewRegistry(NewCoinflip(), NewSlots())

	t.Run("Known game", func(t *testing.T) {
		g, err := registry.Get(entity.GameCoinflip)
		require.NoError(t, err)
		assert.Equal(t, entity.GameCoinflip, g.GameType())
	})

	t.Run("Unregistered game", func(t *testing.T) {
		_, err := registry.Get(entity.GameUpgrader)
		assert.ErrorIs(t, err, errs.ErrInvalidGameType)
	})
}

func TestOutcomeResult(t *testing.T) {
	assert.Equal(t, entity.ResultWin, Outcome{Won: true}.Result())
	assert.Equal(t, entity.ResultPush, Outcome{Push: true}.Result())
	assert.Equal(t, entity.ResultLoss, Outcome{}.Result())
}
