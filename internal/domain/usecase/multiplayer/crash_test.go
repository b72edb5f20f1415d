package multiplayer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
)

func (f *multiplayerFixture) crashService() *CrashService {
	return NewCrashService(
		f.uow, f.walletRepo, f.crashRepo, f.feed, f.gate,
		f.rng, f.timeProvider, f.logger,
		1_000_000, 0.04,
	)
}

// runningRound launches a round the given duration before the fixture clock
func (f *multiplayerFixture) runningRound(id string, elapsed time.Duration, crashPoint float64) *entity.CrashRound {
	started := f.now.Add(-elapsed)
	return &entity.CrashRound{
		ID:         id,
		Status:     entity.StatusRunning,
		CrashPoint: crashPoint,
		CreatedAt:  started,
		StartedAt:  &started,
	}
}

func TestCrashPlaceBet(t *testing.T) {
	ctx := context.Background()

	expectStake := func(f *multiplayerFixture, expected int64) {
		f.uow.On("Begin", ctx).Return(f.txCtx, nil).Once()
		f.uow.On("GetWalletRepository", f.txCtx).Return(f.walletRepo).Once()
		f.walletRepo.On("UpdateIfBalance", f.txCtx, mock.Anything, expected).Return(nil).Once()
		f.uow.On("GetCrashRepository", f.txCtx).Return(f.crashRepo).Once()
		f.crashRepo.On("CreateBet", f.txCtx, mock.MatchedBy(func(b *entity.CrashBet) bool {
			return b.AccountID == "acc-1" && b.Status == entity.CrashBetActive
		})).Return(nil).Once()
		f.uow.On("Commit", f.txCtx).Return(nil).Once()
	}

	t.Run("Launches a round when none is live", func(t *testing.T) {
		f := newMultiplayerFixture(t)
		svc := f.crashService()
		f.allowSession("acc-1")
		f.freshWallet(t, "acc-1", 10_000_000)

		f.crashRepo.On("GetActiveBet", ctx, "acc-1").Return(nil, errs.ErrNoGameAvailable).Once()
		f.crashRepo.On("GetOpenRound", ctx).Return(nil, errs.ErrNoGameAvailable).Once()
		// u = 0.5 draws a crash point of 2 * 0.96 = 1.92
		f.rng.On("Float64").Return(0.5).Once()
		f.crashRepo.On("CreateRound", ctx, mock.MatchedBy(func(r *entity.CrashRound) bool {
			return r.Status == entity.StatusRunning && r.CrashPoint > 1.9 && r.CrashPoint < 1.94
		})).Return(nil).Once()
		expectStake(f, 10_000_000)

		result, err := svc.PlaceBet(ctx, identityFor("acc-1"), 2_000_000)
		require.NoError(t, err)
		assert.NotEmpty(t, result.RoundID)
		assert.Equal(t, int64(2_000_000), result.Amount)
		assert.InDelta(t, 1.0, result.Multiplier, 1e-9)
		assert.Equal(t, int64(8_000_000), result.NewBalance)
	})

	t.Run("Joins the live round", func(t *testing.T) {
		f := newMultiplayerFixture(t)
		svc := f.crashService()
		f.allowSession("acc-1")
		f.freshWallet(t, "acc-1", 10_000_000)

		round := f.runningRound("round-1", 5*time.Second, 10.0)
		f.crashRepo.On("GetActiveBet", ctx, "acc-1").Return(nil, errs.ErrNoGameAvailable).Once()
		f.crashRepo.On("GetOpenRound", ctx).Return(round, nil).Once()
		expectStake(f, 10_000_000)

		result, err := svc.PlaceBet(ctx, identityFor("acc-1"), 2_000_000)
		require.NoError(t, err)
		assert.Equal(t, "round-1", result.RoundID)
		assert.InDelta(t, 1.5, result.Multiplier, 1e-9)
	})

	t.Run("One active bet per account", func(t *testing.T) {
		f := newMultiplayerFixture(t)
		svc := f.crashService()
		f.allowSession("acc-1")

		f.crashRepo.On("GetActiveBet", ctx, "acc-1").
			Return(&entity.CrashBet{ID: "bet-1", AccountID: "acc-1", Status: entity.CrashBetActive}, nil).Once()

		_, err := svc.PlaceBet(ctx, identityFor("acc-1"), 2_000_000)
		assert.ErrorIs(t, err, errs.ErrInvalidBet)
	})

	t.Run("Crashed round awaiting sweep rejects new stakes", func(t *testing.T) {
		f := newMultiplayerFixture(t)
		svc := f.crashService()
		f.allowSession("acc-1")

		// 100 seconds in, way past the 2.0 crash point
		round := f.runningRound("round-1", 100*time.Second, 2.0)
		f.crashRepo.On("GetActiveBet", ctx, "acc-1").Return(nil, errs.ErrNoGameAvailable).Once()
		f.crashRepo.On("GetOpenRound", ctx).Return(round, nil).Once()

		_, err := svc.PlaceBet(ctx, identityFor("acc-1"), 2_000_000)
		assert.ErrorIs(t, err, errs.ErrNoGameAvailable)
	})
}

func TestCrashCashout(t *testing.T) {
	ctx := context.Background()

	t.Run("Locks in the live multiplier", func(t *testing.T) {
		f := newMultiplayerFixture(t)
		svc := f.crashService()
		f.allowSession("acc-1")
		f.freshWallet(t, "acc-1", 8_000_000)

		bet := &entity.CrashBet{ID: "bet-1", RoundID: "round-1", AccountID: "acc-1", Amount: 1_000_000, Status: entity.CrashBetActive}
		f.crashRepo.On("GetActiveBet", ctx, "acc-1").Return(bet, nil).Once()
		// 10 seconds in, multiplier 2.0, crash point still ahead
		f.crashRepo.On("GetRound", ctx, "round-1").Return(f.runningRound("round-1", 10*time.Second, 5.0), nil).Once()

		f.uow.On("Begin", ctx).Return(f.txCtx, nil).Once()
		f.uow.On("GetCrashRepository", f.txCtx).Return(f.crashRepo).Once()
		f.crashRepo.On("Cashout", f.txCtx, "bet-1", mock.AnythingOfType("float64"), int64(2_000_000), f.now).Return(nil).Once()
		f.uow.On("GetWalletRepository", f.txCtx).Return(f.walletRepo).Once()
		f.walletRepo.On("UpdateIfBalance", f.txCtx, mock.Anything, int64(8_000_000)).Return(nil).Once()
		f.uow.On("GetSettlementRepository", f.txCtx).Return(f.settleRepo).Once()
		f.settleRepo.On("Create", f.txCtx, mock.MatchedBy(func(s *entity.Settlement) bool {
			return s.Result == entity.ResultWin && s.WonAmount == 2_000_000 && s.ResultBalance == 10_000_000
		})).Return(nil).Once()
		f.uow.On("Commit", f.txCtx).Return(nil).Once()

		result, err := svc.Cashout(ctx, identityFor("acc-1"))
		require.NoError(t, err)
		assert.InDelta(t, 2.0, result.Multiplier, 1e-9)
		assert.Equal(t, int64(2_000_000), result.WonAmount)
		assert.Equal(t, int64(10_000_000), result.NewBalance)
	})

	t.Run("Too late, the round already crashed", func(t *testing.T) {
		f := newMultiplayerFixture(t)
		svc := f.crashService()
		f.allowSession("acc-1")

		bet := &entity.CrashBet{ID: "bet-1", RoundID: "round-1", AccountID: "acc-1", Amount: 1_000_000, Status: entity.CrashBetActive}
		f.crashRepo.On("GetActiveBet", ctx, "acc-1").Return(bet, nil).Once()
		f.crashRepo.On("GetRound", ctx, "round-1").Return(f.runningRound("round-1", 100*time.Second, 2.0), nil).Once()

		_, err := svc.Cashout(ctx, identityFor("acc-1"))
		assert.ErrorIs(t, err, errs.ErrNoGameAvailable)
	})

	t.Run("No active bet", func(t *testing.T) {
		f := newMultiplayerFixture(t)
		svc := f.crashService()
		f.allowSession("acc-1")

		f.crashRepo.On("GetActiveBet", ctx, "acc-1").Return(nil, errs.ErrNoGameAvailable).Once()

		_, err := svc.Cashout(ctx, identityFor("acc-1"))
		assert.ErrorIs(t, err, errs.ErrNoGameAvailable)
	})
}

func TestCrashCompleteCrashed(t *testing.T) {
	ctx := context.Background()

	t.Run("Closes the round and settles remaining bets as losses", func(t *testing.T) {
		f := newMultiplayerFixture(t)
		svc := f.crashService()

		round := f.runningRound("round-1", 100*time.Second, 2.0)
		f.crashRepo.On("GetOpenRound", ctx).Return(round, nil).Once()
		f.crashRepo.On("CompleteRound", ctx, "round-1", f.now).Return(nil).Once()

		bet := &entity.CrashBet{ID: "bet-1", RoundID: "round-1", AccountID: "acc-1", Amount: 1_000_000, Status: entity.CrashBetActive}
		f.crashRepo.On("ListActiveBets", ctx, "round-1").Return([]*entity.CrashBet{bet}, nil).Once()
		f.freshWallet(t, "acc-1", 4_000_000)

		f.uow.On("Begin", ctx).Return(f.txCtx, nil).Once()
		f.uow.On("GetCrashRepository", f.txCtx).Return(f.crashRepo).Once()
		f.crashRepo.On("MarkLost", f.txCtx, "bet-1").Return(nil).Once()
		f.uow.On("GetWalletRepository", f.txCtx).Return(f.walletRepo).Once()
		f.walletRepo.On("UpdateIfBalance", f.txCtx, mock.Anything, int64(4_000_000)).Return(nil).Once()
		f.uow.On("GetSettlementRepository", f.txCtx).Return(f.settleRepo).Once()
		f.settleRepo.On("Create", f.txCtx, mock.MatchedBy(func(s *entity.Settlement) bool {
			return s.AccountID == "acc-1" && s.Result == entity.ResultLoss && s.WonAmount == 0
		})).Return(nil).Once()
		f.uow.On("Commit", f.txCtx).Return(nil).Once()

		assert.NoError(t, svc.CompleteCrashed(ctx))
	})

	t.Run("Round still climbing", func(t *testing.T) {
		f := newMultiplayerFixture(t)
		svc := f.crashService()

		f.crashRepo.On("GetOpenRound", ctx).Return(f.runningRound("round-1", 5*time.Second, 10.0), nil).Once()
		assert.NoError(t, svc.CompleteCrashed(ctx))
	})

	t.Run("No open round", func(t *testing.T) {
		f := newMultiplayerFixture(t)
		svc := f.crashService()

		f.crashRepo.On("GetOpenRound", ctx).Return(nil, errs.ErrNoGameAvailable).Once()
		assert.NoError(t, svc.CompleteCrashed(ctx))
	})

	t.Run("Cashout racing the sweep keeps its win", func(t *testing.T) {
		f := newMultiplayerFixture(t)
		svc := f.crashService()

		round := f.runningRound("round-1", 100*time.Second, 2.0)
		f.crashRepo.On("GetOpenRound", ctx).Return(round, nil).Once()
		f.crashRepo.On("CompleteRound", ctx, "round-1", f.now).Return(nil).Once()

		bet := &entity.CrashBet{ID: "bet-1", RoundID: "round-1", AccountID: "acc-1", Amount: 1_000_000, Status: entity.CrashBetActive}
		f.crashRepo.On("ListActiveBets", ctx, "round-1").Return([]*entity.CrashBet{bet}, nil).Once()
		f.freshWallet(t, "acc-1", 4_000_000)

		f.uow.On("Begin", ctx).Return(f.txCtx, nil).Once()
		f.uow.On("GetCrashRepository", f.txCtx).Return(f.crashRepo).Once()
		f.crashRepo.On("MarkLost", f.txCtx, "bet-1").Return(errs.ErrNoGameAvailable).Once()
		f.uow.On("Rollback", f.txCtx).Return(nil).Once()

		assert.NoError(t, svc.CompleteCrashed(ctx))
	})
}
