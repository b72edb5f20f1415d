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
	"github.com/crownplay/casino-engine/internal/domain/usecase/session"
	coremocks "github.com/crownplay/casino-engine/mocks/port/core"
	persistencemocks "github.com/crownplay/casino-engine/mocks/port/persistence"
)

type testCtxKey string

type multiplayerFixture struct {
	uow          *persistencemocks.MockUnitOfWork
	walletRepo   *persistencemocks.MockWalletRepository
	jackpotRepo  *persistencemocks.MockJackpotRepository
	crashRepo    *persistencemocks.MockCrashRepository
	settleRepo   *persistencemocks.MockSettlementRepository
	feed         *persistencemocks.MockWalletFeed
	banRepo      *persistencemocks.MockBanRepository
	rng          *coremocks.MockRand
	timeProvider *coremocks.MockTimeProvider
	gate         *session.Gate
	logger       *coremocks.MockLogger
	txCtx        context.Context
	now          time.Time
}

func newMultiplayerFixture(t *testing.T) *multiplayerFixture {
	f := &multiplayerFixture{
		uow:          persistencemocks.NewMockUnitOfWork(t),
		walletRepo:   persistencemocks.NewMockWalletRepository(t),
		jackpotRepo:  persistencemocks.NewMockJackpotRepository(t),
		crashRepo:    persistencemocks.NewMockCrashRepository(t),
		settleRepo:   persistencemocks.NewMockSettlementRepository(t),
		feed:         persistencemocks.NewMockWalletFeed(t),
		banRepo:      persistencemocks.NewMockBanRepository(t),
		rng:          coremocks.NewMockRand(t),
		timeProvider: coremocks.NewMockTimeProvider(t),
		txCtx:        context.WithValue(context.Background(), testCtxKey("tx"), "tx-1"),
		now:          time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
	f.timeProvider.On("Now").Return(f.now).Maybe()
	f.feed.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()

	f.logger = coremocks.NewMockLogger(t)
	f.logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	f.logger.On("Info", mock.Anything, mock.Anything).Maybe()
	f.logger.On("Warn", mock.Anything, mock.Anything).Maybe()
	f.logger.On("Error", mock.Anything, mock.Anything).Maybe()

	f.gate = session.NewGate(f.banRepo, f.logger)
	return f
}

func (f *multiplayerFixture) jackpotService() *JackpotService {
	return NewJackpotService(
		f.uow, f.walletRepo, f.jackpotRepo, f.feed, f.gate,
		f.rng, f.timeProvider, f.logger,
		1_000_000, 30*time.Second, 10*time.Minute,
	)
}

func (f *multiplayerFixture) allowSession(accountID string) {
	f.banRepo.On("GetByAccountID", mock.Anything, accountID).Return(nil, nil).Once()
}

func (f *multiplayerFixture) freshWallet(t *testing.T, accountID string, balance int64) {
	f.walletRepo.On("GetByAccountID", mock.Anything, accountID).
		Return(func(context.Context, string) *entity.Wallet {
			wallet, err := entity.NewWallet(accountID, balance, f.timeProvider)
			require.NoError(t, err)
			return wallet
		}, nil)
}

func identityFor(accountID string) *entity.Identity {
	return &entity.Identity{AccountID: accountID, Username: accountID, Role: entity.RolePlayer}
}

func TestJackpotCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Stake debited and waiting row inserted together", func(t *testing.T) {
		f := newMultiplayerFixture(t)
		svc := f.jackpotService()
		f.allowSession("acc-1")
		f.freshWallet(t, "acc-1", 10_000_000)

		f.uow.On("Begin", ctx).Return(f.txCtx, nil).Once()
		f.uow.On("GetWalletRepository", f.txCtx).Return(f.walletRepo).Once()
		f.walletRepo.On("UpdateIfBalance", f.txCtx, mock.Anything, int64(10_000_000)).Return(nil).Once()
		f.uow.On("GetJackpotRepository", f.txCtx).Return(f.jackpotRepo).Once()
		f.jackpotRepo.On("Create", f.txCtx, mock.MatchedBy(func(g *entity.JackpotGame) bool {
			return g.CreatorID == "acc-1" && g.CreatorBet == 2_000_000 && g.Status == entity.StatusWaiting
		})).Return(nil).Once()
		f.uow.On("Commit", f.txCtx).Return(nil).Once()

		game, err := svc.Create(ctx, identityFor("acc-1"), 2_000_000)
		require.NoError(t, err)
		assert.NotEmpty(t, game.ID)
		assert.Equal(t, entity.StatusWaiting, game.Status)
	})

	t.Run("Bet below the floor", func(t *testing.T) {
		f := newMultiplayerFixture(t)
		svc := f.jackpotService()
		f.allowSession("acc-1")

		_, err := svc.Create(ctx, identityFor("acc-1"), 500_000)
		assert.ErrorIs(t, err, errs.ErrBelowMinimum)
	})

	t.Run("Insufficient funds", func(t *testing.T) {
		f := newMultiplayerFixture(t)
		svc := f.jackpotService()
		f.allowSession("acc-1")
		f.freshWallet(t, "acc-1", 1_000_000)

		_, err := svc.Create(ctx, identityFor("acc-1"), 2_000_000)
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
	})
}

func TestJackpotJoin(t *testing.T) {
	ctx := context.Background()

	waitingGame := func(id string) *entity.JackpotGame {
		return &entity.JackpotGame{
			ID:         id,
			CreatorID:  "acc-2",
			CreatorBet: 2_000_000,
			Status:     entity.StatusWaiting,
		}
	}

	t.Run("Claims the oldest waiting pot", func(t *testing.T) {
		f := newMultiplayerFixture(t)
		svc := f.jackpotService()
		f.allowSession("acc-1")
		f.freshWallet(t, "acc-1", 10_000_000)

		f.jackpotRepo.On("FindOldestWaiting", ctx, "acc-1").Return(waitingGame("game-1"), nil).Once()

		countdownEnd := f.now.Add(30 * time.Second)
		f.uow.On("Begin", ctx).Return(f.txCtx, nil).Once()
		f.uow.On("GetWalletRepository", f.txCtx).Return(f.walletRepo).Once()
		f.walletRepo.On("UpdateIfBalance", f.txCtx, mock.Anything, int64(10_000_000)).Return(nil).Once()
		f.uow.On("GetJackpotRepository", f.txCtx).Return(f.jackpotRepo).Once()
		f.jackpotRepo.On("Claim", f.txCtx, "game-1", "acc-1", int64(3_000_000), f.now, countdownEnd).Return(nil).Once()
		f.uow.On("Commit", f.txCtx).Return(nil).Once()

		game, err := svc.Join(ctx, identityFor("acc-1"), 3_000_000)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusPlaying, game.Status)
		assert.Equal(t, "acc-1", game.JoinerID)
		assert.Equal(t, int64(5_000_000), game.Pot())
		require.NotNil(t, game.CountdownEnd)
		assert.Equal(t, countdownEnd, *game.CountdownEnd)
	})

	t.Run("Lost claim race falls through to the next row", func(t *testing.T) {
		f := newMultiplayerFixture(t)
		svc := f.jackpotService()
		f.allowSession("acc-1")
		f.freshWallet(t, "acc-1", 10_000_000)

		f.jackpotRepo.On("FindOldestWaiting", ctx, "acc-1").Return(waitingGame("game-1"), nil).Once()
		f.jackpotRepo.On("FindOldestWaiting", ctx, "acc-1").Return(waitingGame("game-2"), nil).Once()

		f.uow.On("Begin", ctx).Return(f.txCtx, nil).Twice()
		f.uow.On("GetWalletRepository", f.txCtx).Return(f.walletRepo).Twice()
		f.walletRepo.On("UpdateIfBalance", f.txCtx, mock.Anything, int64(10_000_000)).Return(nil).Twice()
		f.uow.On("GetJackpotRepository", f.txCtx).Return(f.jackpotRepo).Twice()
		f.jackpotRepo.On("Claim", f.txCtx, "game-1", "acc-1", int64(2_000_000), mock.Anything, mock.Anything).
			Return(errs.ErrNoGameAvailable).Once()
		f.uow.On("Rollback", f.txCtx).Return(nil).Once()
		f.jackpotRepo.On("Claim", f.txCtx, "game-2", "acc-1", int64(2_000_000), mock.Anything, mock.Anything).
			Return(nil).Once()
		f.uow.On("Commit", f.txCtx).Return(nil).Once()

		game, err := svc.Join(ctx, identityFor("acc-1"), 2_000_000)
		require.NoError(t, err)
		assert.Equal(t, "game-2", game.ID)
	})

	t.Run("No waiting pots", func(t *testing.T) {
		f := newMultiplayerFixture(t)
		svc := f.jackpotService()
		f.allowSession("acc-1")

		f.jackpotRepo.On("FindOldestWaiting", ctx, "acc-1").Return(nil, errs.ErrNoGameAvailable).Once()

		_, err := svc.Join(ctx, identityFor("acc-1"), 2_000_000)
		assert.ErrorIs(t, err, errs.ErrNoGameAvailable)
	})
}

func TestJackpotSettleDue(t *testing.T) {
	ctx := context.Background()

	playingGame := func() *entity.JackpotGame {
		end := time.Date(2026, 9, 1, 11, 59, 0, 0, time.UTC)
		return &entity.JackpotGame{
			ID:           "game-1",
			CreatorID:    "acc-c",
			CreatorBet:   2_000_000,
			JoinerID:     "acc-j",
			JoinerBet:    1_000_000,
			Status:       entity.StatusPlaying,
			CountdownEnd: &end,
		}
	}

	expectSettle := func(f *multiplayerFixture, winnerID string) {
		f.uow.On("Begin", ctx).Return(f.txCtx, nil).Once()
		f.uow.On("GetJackpotRepository", f.txCtx).Return(f.jackpotRepo).Once()
		f.jackpotRepo.On("Complete", f.txCtx, "game-1", winnerID, f.now).Return(nil).Once()
		f.uow.On("GetWalletRepository", f.txCtx).Return(f.walletRepo).Twice()
		f.walletRepo.On("UpdateIfBalance", f.txCtx, mock.Anything, mock.Anything).Return(nil).Twice()
		f.uow.On("GetSettlementRepository", f.txCtx).Return(f.settleRepo).Twice()
		f.settleRepo.On("Create", f.txCtx, mock.MatchedBy(func(s *entity.Settlement) bool {
			return s.AccountID == winnerID && s.Result == entity.ResultWin && s.WonAmount == 3_000_000
		})).Return(nil).Once()
		f.settleRepo.On("Create", f.txCtx, mock.MatchedBy(func(s *entity.Settlement) bool {
			return s.AccountID != winnerID && s.Result == entity.ResultLoss && s.WonAmount == 0
		})).Return(nil).Once()
		f.uow.On("Commit", f.txCtx).Return(nil).Once()
	}

	t.Run("Low draw pays the creator", func(t *testing.T) {
		f := newMultiplayerFixture(t)
		svc := f.jackpotService()

		f.jackpotRepo.On("ListPlayingDue", ctx, f.now).Return([]*entity.JackpotGame{playingGame()}, nil).Once()
		// 0.2 * 3M = 600K, inside the creator's 2M slice
		f.rng.On("Float64").Return(0.2).Once()
		f.freshWallet(t, "acc-c", 0)
		f.freshWallet(t, "acc-j", 0)
		expectSettle(f, "acc-c")

		assert.NoError(t, svc.SettleDue(ctx))
	})

	t.Run("High draw pays the joiner", func(t *testing.T) {
		f := newMultiplayerFixture(t)
		svc := f.jackpotService()

		f.jackpotRepo.On("ListPlayingDue", ctx, f.now).Return([]*entity.JackpotGame{playingGame()}, nil).Once()
		// 0.9 * 3M = 2.7M, past the creator's slice
		f.rng.On("Float64").Return(0.9).Once()
		f.freshWallet(t, "acc-c", 0)
		f.freshWallet(t, "acc-j", 0)
		expectSettle(f, "acc-j")

		assert.NoError(t, svc.SettleDue(ctx))
	})

	t.Run("Nothing due", func(t *testing.T) {
		f := newMultiplayerFixture(t)
		svc := f.jackpotService()

		f.jackpotRepo.On("ListPlayingDue", ctx, f.now).Return([]*entity.JackpotGame{}, nil).Once()
		assert.NoError(t, svc.SettleDue(ctx))
	})
}

func TestJackpotVoidStale(t *testing.T) {
	ctx := context.Background()

	t.Run("Refunds the creator and voids the row", func(t *testing.T) {
		f := newMultiplayerFixture(t)
		svc := f.jackpotService()

		stale := &entity.JackpotGame{
			ID:         "game-stale",
			CreatorID:  "acc-1",
			CreatorBet: 2_000_000,
			Status:     entity.StatusWaiting,
		}
		cutoff := f.now.Add(-10 * time.Minute)
		f.jackpotRepo.On("ListStaleWaiting", ctx, cutoff).Return([]*entity.JackpotGame{stale}, nil).Once()
		f.freshWallet(t, "acc-1", 1_000_000)

		f.uow.On("Begin", ctx).Return(f.txCtx, nil).Once()
		f.uow.On("GetJackpotRepository", f.txCtx).Return(f.jackpotRepo).Once()
		f.jackpotRepo.On("Void", f.txCtx, "game-stale").Return(nil).Once()
		f.uow.On("GetWalletRepository", f.txCtx).Return(f.walletRepo).Once()
		f.walletRepo.On("UpdateIfBalance", f.txCtx, mock.MatchedBy(func(w *entity.Wallet) bool {
			return w.Balance() == 3_000_000
		}), int64(1_000_000)).Return(nil).Once()
		f.uow.On("Commit", f.txCtx).Return(nil).Once()

		assert.NoError(t, svc.VoidStale(ctx))
	})

	t.Run("A failed void does not abort the sweep", func(t *testing.T) {
		f := newMultiplayerFixture(t)
		svc := f.jackpotService()

		games := []*entity.JackpotGame{
			{ID: "game-a", CreatorID: "acc-missing", CreatorBet: 1_000_000, Status: entity.StatusWaiting},
			{ID: "game-b", CreatorID: "acc-1", CreatorBet: 1_000_000, Status: entity.StatusWaiting},
		}
		cutoff := f.now.Add(-10 * time.Minute)
		f.jackpotRepo.On("ListStaleWaiting", ctx, cutoff).Return(games, nil).Once()
		f.walletRepo.On("GetByAccountID", mock.Anything, "acc-missing").
			Return(nil, errs.ErrWalletNotFound).Once()
		f.freshWallet(t, "acc-1", 0)

		f.uow.On("Begin", ctx).Return(f.txCtx, nil).Once()
		f.uow.On("GetJackpotRepository", f.txCtx).Return(f.jackpotRepo).Once()
		f.jackpotRepo.On("Void", f.txCtx, "game-b").Return(nil).Once()
		f.uow.On("GetWalletRepository", f.txCtx).Return(f.walletRepo).Once()
		f.walletRepo.On("UpdateIfBalance", f.txCtx, mock.Anything, int64(0)).Return(nil).Once()
		f.uow.On("Commit", f.txCtx).Return(nil).Once()

		assert.NoError(t, svc.VoidStale(ctx))
	})
}
