package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	"github.com/crownplay/casino-engine/internal/domain/usecase/session"
	coremocks "github.com/crownplay/casino-engine/mocks/port/core"
	persistencemocks "github.com/crownplay/casino-engine/mocks/port/persistence"
)

type walletFixture struct {
	walletRepo     *persistencemocks.MockWalletRepository
	settlementRepo *persistencemocks.MockSettlementRepository
	banRepo        *persistencemocks.MockBanRepository
	timeProvider   *coremocks.MockTimeProvider
	svc            *Service
	now            time.Time
}

func newWalletFixture(t *testing.T) *walletFixture {
	f := &walletFixture{
		walletRepo:     persistencemocks.NewMockWalletRepository(t),
		settlementRepo: persistencemocks.NewMockSettlementRepository(t),
		banRepo:        persistencemocks.NewMockBanRepository(t),
		timeProvider:   coremocks.NewMockTimeProvider(t),
		now:            time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
	f.timeProvider.On("Now").Return(f.now).Maybe()

	logger := coremocks.NewMockLogger(t)
	logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	logger.On("Info", mock.Anything, mock.Anything).Maybe()
	logger.On("Warn", mock.Anything, mock.Anything).Maybe()
	logger.On("Error", mock.Anything, mock.Anything).Maybe()

	gate := session.NewGate(f.banRepo, logger)
	f.svc = NewService(f.walletRepo, f.settlementRepo, gate, f.timeProvider, logger)
	return f
}

func storedWallet(accountID string, balance, totalWagered int64, lastClaim *time.Time) *entity.Wallet {
	w := &entity.Wallet{AccountID: accountID}
	w.Restore(balance, totalWagered, 42, entity.LevelFor(totalWagered), lastClaim)
	return w
}

func TestGet(t *testing.T) {
	identity := &entity.Identity{AccountID: "acc-1", Username: "player-one", Role: entity.RolePlayer}

	t.Run("snapshot carries level progression and claim state", func(t *testing.T) {
		f := newWalletFixture(t)

		// 30M lifetime wagered sits exactly on the level 2 threshold.
		f.walletRepo.On("GetByAccountID", mock.Anything, "acc-1").
			Return(storedWallet("acc-1", 12_500_000, 30_000_000, nil), nil).Once()

		snap, err := f.svc.Get(context.Background(), identity)
		require.NoError(t, err)

		assert.Equal(t, "acc-1", snap.AccountID)
		assert.Equal(t, int64(12_500_000), snap.Balance)
		assert.Equal(t, "12.50M", snap.BalanceDisplay)
		assert.Equal(t, "30.00M", snap.WageredDisplay)
		assert.Equal(t, uint64(42), snap.TotalGames)
		assert.Equal(t, 2, snap.Level)
		assert.Equal(t, int64(50_000_000), snap.NextLevelAt)
		assert.True(t, snap.RewardClaimable)
		assert.Equal(t, int64(1_000_000), snap.DailyReward)
	})

	t.Run("claimed today blocks the reward flag", func(t *testing.T) {
		f := newWalletFixture(t)

		claimed := time.Date(2026, 9, 1, 0, 5, 0, 0, time.UTC)
		f.walletRepo.On("GetByAccountID", mock.Anything, "acc-1").
			Return(storedWallet("acc-1", 500, 0, &claimed), nil).Once()

		snap, err := f.svc.Get(context.Background(), identity)
		require.NoError(t, err)

		assert.False(t, snap.RewardClaimable)
		assert.Equal(t, "500", snap.BalanceDisplay)
		assert.Equal(t, int64(100_000), snap.DailyReward)
	})

	t.Run("missing wallet propagates", func(t *testing.T) {
		f := newWalletFixture(t)

		f.walletRepo.On("GetByAccountID", mock.Anything, "acc-1").
			Return(nil, errs.ErrWalletNotFound).Once()

		_, err := f.svc.Get(context.Background(), identity)
		assert.ErrorIs(t, err, errs.ErrWalletNotFound)
	})

	t.Run("nil identity", func(t *testing.T) {
		f := newWalletFixture(t)

		_, err := f.svc.Get(context.Background(), nil)
		assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	})
}

func TestHistory(t *testing.T) {
	identity := &entity.Identity{AccountID: "acc-1", Username: "player-one", Role: entity.RolePlayer}

	t.Run("explicit limit passes through", func(t *testing.T) {
		f := newWalletFixture(t)

		stored := []*entity.Settlement{{ID: 7, Token: "tok-7", AccountID: "acc-1"}}
		f.settlementRepo.On("ListByAccount", mock.Anything, "acc-1", 10).
			Return(stored, nil).Once()

		got, err := f.svc.History(context.Background(), identity, 10)
		require.NoError(t, err)
		assert.Equal(t, stored, got)
	})

	t.Run("zero and oversized limits clamp to the default", func(t *testing.T) {
		f := newWalletFixture(t)

		f.settlementRepo.On("ListByAccount", mock.Anything, "acc-1", DefaultHistoryLimit).
			Return(nil, nil).Twice()

		_, err := f.svc.History(context.Background(), identity, 0)
		require.NoError(t, err)
		_, err = f.svc.History(context.Background(), identity, 9000)
		require.NoError(t, err)
	})

	t.Run("nil identity", func(t *testing.T) {
		f := newWalletFixture(t)

		_, err := f.svc.History(context.Background(), nil, 10)
		assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	})
}

func TestLeaderboard(t *testing.T) {
	t.Run("ranks by wagered total without a session", func(t *testing.T) {
		f := newWalletFixture(t)

		wallets := []*entity.Wallet{
			storedWallet("acc-whale", 0, 2_000_000_000, nil),
			storedWallet("acc-2", 0, 100_000_000, nil),
		}
		f.walletRepo.On("TopByWagered", mock.Anything, 2).Return(wallets, nil).Once()

		entries, err := f.svc.Leaderboard(context.Background(), 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, 1, entries[0].Rank)
		assert.Equal(t, "acc-whale", entries[0].AccountID)
		assert.Equal(t, "2.00B", entries[0].WageredDisplay)
		assert.Equal(t, 16, entries[0].Level)
		assert.Equal(t, 2, entries[1].Rank)
		assert.Equal(t, 5, entries[1].Level)
	})

	t.Run("non-positive limit falls back to the default size", func(t *testing.T) {
		f := newWalletFixture(t)

		f.walletRepo.On("TopByWagered", mock.Anything, DefaultLeaderboardSize).
			Return(nil, nil).Once()

		_, err := f.svc.Leaderboard(context.Background(), -1)
		require.NoError(t, err)
	})
}
