package settlement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	"github.com/crownplay/casino-engine/internal/domain/port/persistence"
	"github.com/crownplay/casino-engine/internal/domain/usecase/games"
	"github.com/crownplay/casino-engine/internal/domain/usecase/session"
	coremocks "github.com/crownplay/casino-engine/mocks/port/core"
	persistencemocks "github.com/crownplay/casino-engine/mocks/port/persistence"
)

type testCtxKey string

// serviceFixture assembles the settlement engine over mocks. The gate and
// game registry are real; everything that touches storage is mocked.
type serviceFixture struct {
	uow            *persistencemocks.MockUnitOfWork
	walletRepo     *persistencemocks.MockWalletRepository
	settlementRepo *persistencemocks.MockSettlementRepository
	feed           *persistencemocks.MockWalletFeed
	banRepo        *persistencemocks.MockBanRepository
	rng            *coremocks.MockRand
	timeProvider   *coremocks.MockTimeProvider
	svc            *Service
	txCtx          context.Context
	now            time.Time
}

func newServiceFixture(t *testing.T, maxRetries int) *serviceFixture {
	f := &serviceFixture{
		uow:            persistencemocks.NewMockUnitOfWork(t),
		walletRepo:     persistencemocks.NewMockWalletRepository(t),
		settlementRepo: persistencemocks.NewMockSettlementRepository(t),
		feed:           persistencemocks.NewMockWalletFeed(t),
		banRepo:        persistencemocks.NewMockBanRepository(t),
		rng:            coremocks.NewMockRand(t),
		timeProvider:   coremocks.NewMockTimeProvider(t),
		txCtx:          context.WithValue(context.Background(), testCtxKey("tx"), "tx-1"),
		now:            time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}

	f.timeProvider.On("Now").Return(f.now).Maybe()
	f.timeProvider.On("WithTimeout", mock.Anything, mock.Anything).
		Return(context.Background(), context.CancelFunc(func() {})).Maybe()

	logger := newQuietLogger(t)
	gate := session.NewGate(f.banRepo, logger)
	registry := games.NewRegistry(games.NewCoinflip())

	f.svc = NewService(
		f.uow,
		f.walletRepo,
		f.settlementRepo,
		f.feed,
		gate,
		registry,
		NewBetValidator(nil),
		f.rng,
		f.timeProvider,
		logger,
		maxRetries,
	)
	return f
}

func (f *serviceFixture) playerIdentity() *entity.Identity {
	return &entity.Identity{AccountID: "acc-1", Username: "alice", Role: entity.RolePlayer}
}

func (f *serviceFixture) allowSession() {
	f.banRepo.On("GetByAccountID", mock.Anything, "acc-1").Return(nil, nil)
}

// freshWallet returns a new wallet on every repository read, mirroring a
// storage layer that rehydrates rows instead of sharing pointers
func (f *serviceFixture) freshWallet(t *testing.T, balance int64) {
	f.walletRepo.On("GetByAccountID", mock.Anything, "acc-1").
		Return(func(context.Context, string) *entity.Wallet {
			wallet, err := entity.NewWallet("acc-1", balance, f.timeProvider)
			require.NoError(t, err)
			return wallet
		}, nil)
}

func coinflipRequest(token string, bet int64) *PlaceBetRequest {
	return &PlaceBetRequest{
		Token:    token,
		GameType: entity.GameCoinflip,
		Bet:      bet,
		Params:   games.Params{"side": "heads"},
	}
}

func TestServicePlaceBet(t *testing.T) {
	ctx := context.Background()

	t.Run("Winning coinflip settles atomically", func(t *testing.T) {
		f := newServiceFixture(t, 3)
		defer f.svc.Shutdown()
		f.allowSession()
		f.freshWallet(t, 10_000_000)

		f.settlementRepo.On("TokenExists", mock.Anything, "tok-1").Return(false, nil).Once()
		f.rng.On("Float64").Return(0.25).Once()

		f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Once()
		f.uow.On("GetWalletRepository", f.txCtx).Return(f.walletRepo).Once()
		f.walletRepo.On("UpdateIfBalance", f.txCtx, mock.Anything, int64(10_000_000)).Return(nil).Once()
		f.uow.On("GetSettlementRepository", f.txCtx).Return(f.settlementRepo).Once()
		f.settlementRepo.On("Create", f.txCtx, mock.MatchedBy(func(s *entity.Settlement) bool {
			return s.Token == "tok-1" &&
				s.Result == entity.ResultWin &&
				s.WonAmount == 2_000_000 &&
				s.ResultBalance == 11_000_000
		})).Return(nil).Once()
		f.uow.On("Commit", f.txCtx).Return(nil).Once()

		f.feed.On("Publish", mock.Anything, mock.MatchedBy(func(e persistence.WalletEvent) bool {
			return e.AccountID == "acc-1" && e.Balance == 11_000_000
		})).Return(nil).Once()

		result, err := f.svc.PlaceBet(ctx, f.playerIdentity(), coinflipRequest("tok-1", 1_000_000))
		require.NoError(t, err)
		assert.True(t, result.Won)
		assert.Equal(t, entity.ResultWin, result.Result)
		assert.Equal(t, int64(2_000_000), result.WonAmount)
		assert.Equal(t, int64(11_000_000), result.NewBalance)
		assert.False(t, result.Replayed)
	})

	t.Run("Replayed token returns the stored settlement", func(t *testing.T) {
		f := newServiceFixture(t, 3)
		defer f.svc.Shutdown()
		f.allowSession()

		stored := &entity.Settlement{
			Token:         "tok-dup",
			AccountID:     "acc-1",
			GameType:      entity.GameCoinflip,
			BetAmount:     1_000_000,
			Result:        entity.ResultLoss,
			WonAmount:     0,
			ResultBalance: 9_000_000,
		}
		f.settlementRepo.On("TokenExists", mock.Anything, "tok-dup").Return(true, nil).Once()
		f.settlementRepo.On("GetByToken", mock.Anything, "tok-dup").Return(stored, nil).Once()

		result, err := f.svc.PlaceBet(ctx, f.playerIdentity(), coinflipRequest("tok-dup", 1_000_000))
		require.NoError(t, err)
		assert.True(t, result.Replayed)
		assert.Equal(t, entity.ResultLoss, result.Result)
		assert.Equal(t, int64(9_000_000), result.NewBalance)
	})

	t.Run("Insufficient funds", func(t *testing.T) {
		f := newServiceFixture(t, 3)
		defer f.svc.Shutdown()
		f.allowSession()
		f.freshWallet(t, 600_000)

		f.settlementRepo.On("TokenExists", mock.Anything, "tok-poor").Return(false, nil).Once()
		f.rng.On("Float64").Return(0.25).Once()

		_, err := f.svc.PlaceBet(ctx, f.playerIdentity(), coinflipRequest("tok-poor", 1_000_000))
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
	})

	t.Run("Bet below the game floor", func(t *testing.T) {
		f := newServiceFixture(t, 3)
		defer f.svc.Shutdown()
		f.allowSession()

		_, err := f.svc.PlaceBet(ctx, f.playerIdentity(), coinflipRequest("tok-min", 100))
		assert.ErrorIs(t, err, errs.ErrBelowMinimum)
	})

	t.Run("Missing identity", func(t *testing.T) {
		f := newServiceFixture(t, 3)
		defer f.svc.Shutdown()

		_, err := f.svc.PlaceBet(ctx, nil, coinflipRequest("tok-anon", 1_000_000))
		assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	})

	t.Run("Banned account is blocked before any settlement work", func(t *testing.T) {
		f := newServiceFixture(t, 3)
		defer f.svc.Shutdown()

		f.banRepo.On("GetByAccountID", mock.Anything, "acc-1").
			Return(&entity.BanRecord{AccountID: "acc-1", BannedBy: "admin-1", Reason: "chargeback"}, nil).Once()

		_, err := f.svc.PlaceBet(ctx, f.playerIdentity(), coinflipRequest("tok-ban", 1_000_000))
		assert.ErrorIs(t, err, errs.ErrBanned)
	})
}

func TestServiceConflictRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("Lost compare-and-swap retries with the same outcome", func(t *testing.T) {
		f := newServiceFixture(t, 3)
		defer f.svc.Shutdown()
		f.allowSession()
		f.freshWallet(t, 10_000_000)

		f.settlementRepo.On("TokenExists", mock.Anything, "tok-cas").Return(false, nil).Once()
		// Once: conflict retries must not reroll the outcome
		f.rng.On("Float64").Return(0.25).Once()

		f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Twice()
		f.uow.On("GetWalletRepository", f.txCtx).Return(f.walletRepo).Twice()
		f.walletRepo.On("UpdateIfBalance", f.txCtx, mock.Anything, int64(10_000_000)).
			Return(errs.ErrConflictRetry).Once()
		f.uow.On("Rollback", f.txCtx).Return(nil).Once()
		f.walletRepo.On("UpdateIfBalance", f.txCtx, mock.Anything, int64(10_000_000)).
			Return(nil).Once()
		f.uow.On("GetSettlementRepository", f.txCtx).Return(f.settlementRepo).Once()
		f.settlementRepo.On("Create", f.txCtx, mock.Anything).Return(nil).Once()
		f.uow.On("Commit", f.txCtx).Return(nil).Once()
		f.feed.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

		result, err := f.svc.PlaceBet(ctx, f.playerIdentity(), coinflipRequest("tok-cas", 1_000_000))
		require.NoError(t, err)
		assert.True(t, result.Won)
		assert.Equal(t, int64(2_000_000), result.WonAmount)
	})

	t.Run("Retry budget exhausted returns busy", func(t *testing.T) {
		f := newServiceFixture(t, 2)
		defer f.svc.Shutdown()
		f.allowSession()
		f.freshWallet(t, 10_000_000)

		f.settlementRepo.On("TokenExists", mock.Anything, "tok-busy").Return(false, nil).Once()
		f.rng.On("Float64").Return(0.25).Once()

		// maxRetries 2 means three attempts in total
		f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Times(3)
		f.uow.On("GetWalletRepository", f.txCtx).Return(f.walletRepo).Times(3)
		f.walletRepo.On("UpdateIfBalance", f.txCtx, mock.Anything, int64(10_000_000)).
			Return(errs.ErrConflictRetry).Times(3)
		f.uow.On("Rollback", f.txCtx).Return(nil).Times(3)

		_, err := f.svc.PlaceBet(ctx, f.playerIdentity(), coinflipRequest("tok-busy", 1_000_000))
		assert.ErrorIs(t, err, errs.ErrBusy)
	})

	t.Run("Duplicate token race replays the original settlement", func(t *testing.T) {
		f := newServiceFixture(t, 3)
		defer f.svc.Shutdown()
		f.allowSession()
		f.freshWallet(t, 10_000_000)

		// The early check misses; the unique index catches it at insert
		f.settlementRepo.On("TokenExists", mock.Anything, "tok-race").Return(false, nil).Once()
		f.rng.On("Float64").Return(0.25).Once()

		f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Once()
		f.uow.On("GetWalletRepository", f.txCtx).Return(f.walletRepo).Once()
		f.walletRepo.On("UpdateIfBalance", f.txCtx, mock.Anything, int64(10_000_000)).Return(nil).Once()
		f.uow.On("GetSettlementRepository", f.txCtx).Return(f.settlementRepo).Once()
		f.settlementRepo.On("Create", f.txCtx, mock.Anything).Return(errs.ErrDuplicateToken).Once()
		f.uow.On("Rollback", f.txCtx).Return(nil).Once()

		stored := &entity.Settlement{
			Token:         "tok-race",
			AccountID:     "acc-1",
			GameType:      entity.GameCoinflip,
			BetAmount:     1_000_000,
			Result:        entity.ResultWin,
			WonAmount:     2_000_000,
			ResultBalance: 11_000_000,
		}
		f.settlementRepo.On("GetByToken", mock.Anything, "tok-race").Return(stored, nil).Once()

		result, err := f.svc.PlaceBet(ctx, f.playerIdentity(), coinflipRequest("tok-race", 1_000_000))
		require.NoError(t, err)
		assert.True(t, result.Replayed)
		assert.Equal(t, int64(11_000_000), result.NewBalance)
	})
}

func TestServicePlaceResolved(t *testing.T) {
	ctx := context.Background()

	t.Run("Push refunds the stake", func(t *testing.T) {
		f := newServiceFixture(t, 3)
		defer f.svc.Shutdown()
		f.allowSession()
		f.freshWallet(t, 10_000_000)

		f.settlementRepo.On("TokenExists", mock.Anything, "tok-push").Return(false, nil).Once()

		f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Once()
		f.uow.On("GetWalletRepository", f.txCtx).Return(f.walletRepo).Once()
		f.walletRepo.On("UpdateIfBalance", f.txCtx, mock.Anything, int64(10_000_000)).Return(nil).Once()
		f.uow.On("GetSettlementRepository", f.txCtx).Return(f.settlementRepo).Once()
		f.settlementRepo.On("Create", f.txCtx, mock.MatchedBy(func(s *entity.Settlement) bool {
			return s.Result == entity.ResultPush && s.WonAmount == 2_000_000 && s.ResultBalance == 10_000_000
		})).Return(nil).Once()
		f.uow.On("Commit", f.txCtx).Return(nil).Once()
		f.feed.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

		req := &PlaceBetRequest{Token: "tok-push", GameType: entity.GameBlackjack, Bet: 2_000_000}
		outcome := games.Outcome{Push: true, Multiplier: 1.0}

		result, err := f.svc.PlaceResolved(ctx, f.playerIdentity(), req, outcome)
		require.NoError(t, err)
		assert.False(t, result.Won)
		assert.Equal(t, entity.ResultPush, result.Result)
		assert.Equal(t, int64(10_000_000), result.NewBalance)
	})
}
