package blackjack

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	"github.com/crownplay/casino-engine/internal/domain/usecase/games"
	"github.com/crownplay/casino-engine/internal/domain/usecase/session"
	"github.com/crownplay/casino-engine/internal/domain/usecase/settlement"
	coremocks "github.com/crownplay/casino-engine/mocks/port/core"
	persistencemocks "github.com/crownplay/casino-engine/mocks/port/persistence"
)

type testCtxKey string

// tableFixture runs a real table and settlement engine over mocked storage.
// The rand mock leaves the deck unshuffled, so every hand starts with the
// player on A♠ 3♠ (14) and the dealer on 2♠ 4♠.
type tableFixture struct {
	uow            *persistencemocks.MockUnitOfWork
	walletRepo     *persistencemocks.MockWalletRepository
	settlementRepo *persistencemocks.MockSettlementRepository
	banRepo        *persistencemocks.MockBanRepository
	rng            *coremocks.MockRand
	timeProvider   *coremocks.MockTimeProvider
	settler        *settlement.Service
	table          *Table
	txCtx          context.Context

	mu  sync.Mutex
	now time.Time
}

func newTableFixture(t *testing.T) *tableFixture {
	f := &tableFixture{
		uow:            persistencemocks.NewMockUnitOfWork(t),
		walletRepo:     persistencemocks.NewMockWalletRepository(t),
		settlementRepo: persistencemocks.NewMockSettlementRepository(t),
		banRepo:        persistencemocks.NewMockBanRepository(t),
		rng:            coremocks.NewMockRand(t),
		timeProvider:   coremocks.NewMockTimeProvider(t),
		txCtx:          context.WithValue(context.Background(), testCtxKey("tx"), "tx-1"),
		now:            time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
	f.timeProvider.On("Now").Return(func() time.Time {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.now
	}).Maybe()
	f.timeProvider.On("WithTimeout", mock.Anything, mock.Anything).
		Return(context.Background(), context.CancelFunc(func() {})).Maybe()
	f.rng.On("Shuffle", mock.Anything, mock.Anything).Maybe()

	logger := coremocks.NewMockLogger(t)
	logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	logger.On("Info", mock.Anything, mock.Anything).Maybe()
	logger.On("Warn", mock.Anything, mock.Anything).Maybe()
	logger.On("Error", mock.Anything, mock.Anything).Maybe()

	gate := session.NewGate(f.banRepo, logger)
	f.settler = settlement.NewService(
		f.uow, f.walletRepo, f.settlementRepo, nil, gate,
		games.NewRegistry(), settlement.NewBetValidator(nil),
		f.rng, f.timeProvider, logger, 3,
	)
	t.Cleanup(f.settler.Shutdown)

	f.table = NewTable(f.settler, f.walletRepo, gate, f.rng, f.timeProvider, logger, 1_000_000, 5*time.Minute)
	return f
}

func (f *tableFixture) advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func (f *tableFixture) allowSession() {
	f.banRepo.On("GetByAccountID", mock.Anything, "acc-1").Return(nil, nil)
}

func (f *tableFixture) freshWallet(t *testing.T, balance int64) {
	f.walletRepo.On("GetByAccountID", mock.Anything, "acc-1").
		Return(func(context.Context, string) *entity.Wallet {
			wallet, err := entity.NewWallet("acc-1", balance, f.timeProvider)
			require.NoError(t, err)
			return wallet
		}, nil)
}

// expectSettlement wires the one committed settlement a resolved hand produces
func (f *tableFixture) expectSettlement(token string, expectedBalance int64, result entity.Result, wonAmount int64) {
	f.settlementRepo.On("TokenExists", mock.Anything, token).Return(false, nil).Once()
	f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Once()
	f.uow.On("GetWalletRepository", f.txCtx).Return(f.walletRepo).Once()
	f.walletRepo.On("UpdateIfBalance", f.txCtx, mock.Anything, expectedBalance).Return(nil).Once()
	f.uow.On("GetSettlementRepository", f.txCtx).Return(f.settlementRepo).Once()
	f.settlementRepo.On("Create", f.txCtx, mock.MatchedBy(func(s *entity.Settlement) bool {
		return s.Token == token && s.Result == result && s.WonAmount == wonAmount
	})).Return(nil).Once()
	f.uow.On("Commit", f.txCtx).Return(nil).Once()
}

func playerOne() *entity.Identity {
	return &entity.Identity{AccountID: "acc-1", Username: "alice", Role: entity.RolePlayer}
}

func TestTableDeal(t *testing.T) {
	ctx := context.Background()

	t.Run("Opens a hand with the hole card hidden", func(t *testing.T) {
		f := newTableFixture(t)
		f.allowSession()
		f.freshWallet(t, 10_000_000)

		view, err := f.table.Deal(ctx, playerOne(), "tok-1", 2_000_000)
		require.NoError(t, err)
		assert.Equal(t, games.StatePlayerTurn, view.State)
		assert.Equal(t, []string{"A♠", "3♠"}, view.Player)
		assert.Equal(t, 14, view.PlayerScore)
		assert.Equal(t, []string{"2♠", "??"}, view.Dealer)
		assert.Equal(t, 2, view.DealerScore)
		assert.Nil(t, view.Settlement)
	})

	t.Run("Empty token", func(t *testing.T) {
		f := newTableFixture(t)
		f.allowSession()

		_, err := f.table.Deal(ctx, playerOne(), "", 2_000_000)
		assert.ErrorIs(t, err, errs.ErrInvalidToken)
	})

	t.Run("Bet below the table floor", func(t *testing.T) {
		f := newTableFixture(t)
		f.allowSession()

		_, err := f.table.Deal(ctx, playerOne(), "tok-1", 500_000)
		assert.ErrorIs(t, err, errs.ErrBelowMinimum)
	})

	t.Run("Stake the wallet cannot cover", func(t *testing.T) {
		f := newTableFixture(t)
		f.allowSession()
		f.freshWallet(t, 500_000)

		_, err := f.table.Deal(ctx, playerOne(), "tok-1", 2_000_000)
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
	})

	t.Run("Missing identity", func(t *testing.T) {
		f := newTableFixture(t)
		_, err := f.table.Deal(ctx, nil, "tok-1", 2_000_000)
		assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	})
}

func TestTablePlay(t *testing.T) {
	ctx := context.Background()

	t.Run("Hit to nineteen then stand pushes against the dealer", func(t *testing.T) {
		f := newTableFixture(t)
		f.allowSession()
		f.freshWallet(t, 10_000_000)

		view, err := f.table.Deal(ctx, playerOne(), "tok-1", 2_000_000)
		require.NoError(t, err)

		// 5♠ brings the player to 19
		view, err = f.table.Hit(ctx, playerOne(), view.HandID)
		require.NoError(t, err)
		assert.Equal(t, games.StatePlayerTurn, view.State)
		assert.Equal(t, 19, view.PlayerScore)

		// Dealer runs 2 4 6 7 for 19 as well
		f.expectSettlement("tok-1", 10_000_000, entity.ResultPush, 2_000_000)

		view, err = f.table.Stand(ctx, playerOne(), view.HandID)
		require.NoError(t, err)
		assert.Equal(t, games.StateResolved, view.State)
		assert.Equal(t, 19, view.DealerScore)
		assert.Equal(t, []string{"2♠", "4♠", "6♠", "7♠"}, view.Dealer)
		require.NotNil(t, view.Settlement)
		assert.Equal(t, entity.ResultPush, view.Settlement.Result)
		assert.Equal(t, int64(10_000_000), view.Settlement.NewBalance)
	})

	t.Run("Standing pat loses to the dealer's seventeen", func(t *testing.T) {
		f := newTableFixture(t)
		f.allowSession()
		f.freshWallet(t, 10_000_000)

		view, err := f.table.Deal(ctx, playerOne(), "tok-1", 2_000_000)
		require.NoError(t, err)

		f.expectSettlement("tok-1", 10_000_000, entity.ResultLoss, 0)

		view, err = f.table.Stand(ctx, playerOne(), view.HandID)
		require.NoError(t, err)
		assert.Equal(t, games.StateResolved, view.State)
		assert.Equal(t, 17, view.DealerScore)
		require.NotNil(t, view.Settlement)
		assert.Equal(t, int64(8_000_000), view.Settlement.NewBalance)
	})

	t.Run("Busting settles the loss immediately", func(t *testing.T) {
		f := newTableFixture(t)
		f.allowSession()
		f.freshWallet(t, 10_000_000)

		view, err := f.table.Deal(ctx, playerOne(), "tok-1", 2_000_000)
		require.NoError(t, err)

		// 5♠ then 6♠ keep the hand alive at 15; 7♠ busts at 22
		view, err = f.table.Hit(ctx, playerOne(), view.HandID)
		require.NoError(t, err)
		view, err = f.table.Hit(ctx, playerOne(), view.HandID)
		require.NoError(t, err)
		assert.Equal(t, 15, view.PlayerScore)

		f.expectSettlement("tok-1", 10_000_000, entity.ResultLoss, 0)

		view, err = f.table.Hit(ctx, playerOne(), view.HandID)
		require.NoError(t, err)
		assert.Equal(t, games.StateResolved, view.State)
		assert.Equal(t, 22, view.PlayerScore)
		require.NotNil(t, view.Settlement)
		assert.Equal(t, entity.ResultLoss, view.Settlement.Result)
	})

	t.Run("A settled hand leaves the table", func(t *testing.T) {
		f := newTableFixture(t)
		f.allowSession()
		f.freshWallet(t, 10_000_000)

		view, err := f.table.Deal(ctx, playerOne(), "tok-1", 2_000_000)
		require.NoError(t, err)

		f.expectSettlement("tok-1", 10_000_000, entity.ResultLoss, 0)
		_, err = f.table.Stand(ctx, playerOne(), view.HandID)
		require.NoError(t, err)

		_, err = f.table.Stand(ctx, playerOne(), view.HandID)
		assert.ErrorIs(t, err, errs.ErrSettlementNotFound)
	})

	t.Run("Only the dealer's owner can act", func(t *testing.T) {
		f := newTableFixture(t)
		f.allowSession()
		f.freshWallet(t, 10_000_000)

		view, err := f.table.Deal(ctx, playerOne(), "tok-1", 2_000_000)
		require.NoError(t, err)

		intruder := &entity.Identity{AccountID: "acc-2", Username: "mallory", Role: entity.RolePlayer}
		_, err = f.table.Hit(ctx, intruder, view.HandID)
		assert.ErrorIs(t, err, errs.ErrSettlementNotFound)

		_, err = f.table.Hit(ctx, playerOne(), "no-such-hand")
		assert.ErrorIs(t, err, errs.ErrSettlementNotFound)
	})
}

func TestTableExpireStale(t *testing.T) {
	ctx := context.Background()

	t.Run("Idle hands are auto-stood and settled", func(t *testing.T) {
		f := newTableFixture(t)
		f.allowSession()
		f.freshWallet(t, 10_000_000)

		view, err := f.table.Deal(ctx, playerOne(), "tok-1", 2_000_000)
		require.NoError(t, err)
		assert.Equal(t, games.StatePlayerTurn, view.State)

		// The pat 14 loses to the dealer's 17 once auto-stood
		f.expectSettlement("tok-1", 10_000_000, entity.ResultLoss, 0)

		f.advance(6 * time.Minute)
		f.table.ExpireStale(ctx)

		_, err = f.table.Stand(ctx, playerOne(), view.HandID)
		assert.ErrorIs(t, err, errs.ErrSettlementNotFound)
	})

	t.Run("Fresh hands survive the sweep", func(t *testing.T) {
		f := newTableFixture(t)
		f.allowSession()
		f.freshWallet(t, 10_000_000)

		view, err := f.table.Deal(ctx, playerOne(), "tok-1", 2_000_000)
		require.NoError(t, err)

		f.advance(time.Minute)
		f.table.ExpireStale(ctx)

		// Still playable
		got, err := f.table.Hit(ctx, playerOne(), view.HandID)
		require.NoError(t, err)
		assert.Equal(t, games.StatePlayerTurn, got.State)
	})
}
