package chat

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	"github.com/crownplay/casino-engine/internal/domain/port/persistence"
	"github.com/crownplay/casino-engine/internal/domain/usecase/session"
	coremocks "github.com/crownplay/casino-engine/mocks/port/core"
	persistencemocks "github.com/crownplay/casino-engine/mocks/port/persistence"
)

type testCtxKey string

type chatFixture struct {
	uow          *persistencemocks.MockUnitOfWork
	walletRepo   *persistencemocks.MockWalletRepository
	chatRepo     *persistencemocks.MockChatRepository
	feed         *persistencemocks.MockWalletFeed
	banRepo      *persistencemocks.MockBanRepository
	timeProvider *coremocks.MockTimeProvider
	svc          *Service
	txCtx        context.Context
	now          time.Time
}

func newChatFixture(t *testing.T) *chatFixture {
	f := &chatFixture{
		uow:          persistencemocks.NewMockUnitOfWork(t),
		walletRepo:   persistencemocks.NewMockWalletRepository(t),
		chatRepo:     persistencemocks.NewMockChatRepository(t),
		feed:         persistencemocks.NewMockWalletFeed(t),
		banRepo:      persistencemocks.NewMockBanRepository(t),
		timeProvider: coremocks.NewMockTimeProvider(t),
		txCtx:        context.WithValue(context.Background(), testCtxKey("tx"), "tx-1"),
		now:          time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
	f.timeProvider.On("Now").Return(f.now).Maybe()

	logger := coremocks.NewMockLogger(t)
	logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	logger.On("Info", mock.Anything, mock.Anything).Maybe()
	logger.On("Warn", mock.Anything, mock.Anything).Maybe()
	logger.On("Error", mock.Anything, mock.Anything).Maybe()

	gate := session.NewGate(f.banRepo, logger)
	f.svc = NewService(f.uow, f.walletRepo, f.chatRepo, f.feed, gate, f.timeProvider, logger)
	return f
}

func (f *chatFixture) allowSession() {
	f.banRepo.On("GetByAccountID", mock.Anything, "acc-1").Return(nil, nil).Once()
}

func (f *chatFixture) walletFor(t *testing.T, accountID string, balance int64) *entity.Wallet {
	wallet, err := entity.NewWallet(accountID, balance, f.timeProvider)
	require.NoError(t, err)
	return wallet
}

func TestServiceSend(t *testing.T) {
	ctx := context.Background()
	identity := &entity.Identity{AccountID: "acc-1", Username: "alice", Role: entity.RolePlayer}

	t.Run("Plain message", func(t *testing.T) {
		f := newChatFixture(t)
		f.allowSession()

		f.chatRepo.On("CreateMessage", ctx, mock.MatchedBy(func(m *entity.ChatMessage) bool {
			return m.AccountID == "acc-1" && m.Content == "gg" && !m.IsTip
		})).Return(nil).Once()

		message, err := f.svc.Send(ctx, identity, "  gg  ", nil)
		require.NoError(t, err)
		assert.Equal(t, "gg", message.Content)
		assert.Equal(t, f.now, message.CreatedAt)
	})

	t.Run("Blank content", func(t *testing.T) {
		f := newChatFixture(t)
		f.allowSession()

		_, err := f.svc.Send(ctx, identity, "   ", nil)
		assert.ErrorIs(t, err, errs.ErrInvalidFormat)
	})

	t.Run("Content over the limit", func(t *testing.T) {
		f := newChatFixture(t)
		f.allowSession()

		_, err := f.svc.Send(ctx, identity, strings.Repeat("a", MaxContentLength+1), nil)
		assert.ErrorIs(t, err, errs.ErrInvalidFormat)
	})

	t.Run("Missing identity", func(t *testing.T) {
		f := newChatFixture(t)
		_, err := f.svc.Send(ctx, nil, "hello", nil)
		assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	})

	t.Run("Banned sender", func(t *testing.T) {
		f := newChatFixture(t)
		f.banRepo.On("GetByAccountID", mock.Anything, "acc-1").
			Return(&entity.BanRecord{AccountID: "acc-1", BannedBy: "admin-1", Reason: "spam"}, nil).Once()

		_, err := f.svc.Send(ctx, identity, "hello", nil)
		assert.ErrorIs(t, err, errs.ErrBanned)
	})
}

func TestServiceSendTip(t *testing.T) {
	ctx := context.Background()
	identity := &entity.Identity{AccountID: "acc-1", Username: "alice", Role: entity.RolePlayer}

	t.Run("Tip moves credits and posts the message atomically", func(t *testing.T) {
		f := newChatFixture(t)
		f.allowSession()

		sender := f.walletFor(t, "acc-1", 5_000_000)
		recipient := f.walletFor(t, "acc-2", 1_000_000)
		f.walletRepo.On("GetByAccountID", ctx, "acc-1").Return(sender, nil).Once()
		f.walletRepo.On("GetByAccountID", ctx, "acc-2").Return(recipient, nil).Once()

		f.uow.On("Begin", ctx).Return(f.txCtx, nil).Once()
		f.uow.On("GetWalletRepository", f.txCtx).Return(f.walletRepo).Once()
		f.walletRepo.On("UpdateIfBalance", f.txCtx, sender, int64(5_000_000)).Return(nil).Once()
		f.walletRepo.On("UpdateIfBalance", f.txCtx, recipient, int64(1_000_000)).Return(nil).Once()
		f.uow.On("GetChatRepository", f.txCtx).Return(f.chatRepo).Once()
		f.chatRepo.On("CreateMessage", f.txCtx, mock.MatchedBy(func(m *entity.ChatMessage) bool {
			return m.IsTip && m.TipAmount == 2_000_000 && m.TipRecipientID == "acc-2"
		})).Return(nil).Once()
		f.uow.On("Commit", f.txCtx).Return(nil).Once()

		f.feed.On("Publish", ctx, mock.MatchedBy(func(e persistence.WalletEvent) bool {
			return e.AccountID == "acc-1" && e.Balance == 3_000_000
		})).Return(nil).Once()
		f.feed.On("Publish", ctx, mock.MatchedBy(func(e persistence.WalletEvent) bool {
			return e.AccountID == "acc-2" && e.Balance == 3_000_000
		})).Return(nil).Once()

		message, err := f.svc.Send(ctx, identity, "enjoy", &TipRequest{RecipientID: "acc-2", Amount: 2_000_000})
		require.NoError(t, err)
		assert.True(t, message.IsTip)
		assert.Equal(t, int64(3_000_000), sender.Balance())
		assert.Equal(t, int64(3_000_000), recipient.Balance())
	})

	t.Run("Insufficient funds rejects the whole send", func(t *testing.T) {
		f := newChatFixture(t)
		f.allowSession()

		sender := f.walletFor(t, "acc-1", 1_000_000)
		recipient := f.walletFor(t, "acc-2", 0)
		f.walletRepo.On("GetByAccountID", ctx, "acc-1").Return(sender, nil).Once()
		f.walletRepo.On("GetByAccountID", ctx, "acc-2").Return(recipient, nil).Once()

		_, err := f.svc.Send(ctx, identity, "enjoy", &TipRequest{RecipientID: "acc-2", Amount: 2_000_000})
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		assert.Equal(t, int64(1_000_000), sender.Balance())
	})

	t.Run("Non-positive tip", func(t *testing.T) {
		f := newChatFixture(t)
		f.allowSession()

		_, err := f.svc.Send(ctx, identity, "enjoy", &TipRequest{RecipientID: "acc-2", Amount: 0})
		assert.ErrorIs(t, err, errs.ErrInvalidBet)
	})

	t.Run("Tip to self", func(t *testing.T) {
		f := newChatFixture(t)
		f.allowSession()

		_, err := f.svc.Send(ctx, identity, "enjoy", &TipRequest{RecipientID: "acc-1", Amount: 1_000_000})
		assert.ErrorIs(t, err, errs.ErrInvalidFormat)
	})
}

func TestServiceRecent(t *testing.T) {
	ctx := context.Background()

	t.Run("Limit is clamped", func(t *testing.T) {
		f := newChatFixture(t)
		f.chatRepo.On("ListRecent", ctx, 50).Return([]*entity.ChatMessage{}, nil).Twice()

		_, err := f.svc.Recent(ctx, 0)
		assert.NoError(t, err)
		_, err = f.svc.Recent(ctx, 500)
		assert.NoError(t, err)
	})

	t.Run("Explicit limit passes through", func(t *testing.T) {
		f := newChatFixture(t)
		messages := []*entity.ChatMessage{{AccountID: "acc-1", Content: "gg"}}
		f.chatRepo.On("ListRecent", ctx, 10).Return(messages, nil).Once()

		got, err := f.svc.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, messages, got)
	})
}
