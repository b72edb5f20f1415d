// Package chat implements chat messages and wallet-to-wallet tips.
package chat

import (
	"context"
	"strings"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/domain/port/persistence"
	"github.com/crownplay/casino-engine/internal/domain/usecase/session"
)

// MaxContentLength bounds one chat message
const MaxContentLength = 500

// TipRequest attaches a transfer to a message
type TipRequest struct {
	RecipientID string
	Amount      int64
}

// Service sends messages and executes tip transfers
type Service struct {
	uow          persistence.UnitOfWork
	walletRepo   persistence.WalletRepository
	chatRepo     persistence.ChatRepository
	feed         persistence.WalletFeed
	gate         *session.Gate
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates the chat service
func NewService(
	uow persistence.UnitOfWork,
	walletRepo persistence.WalletRepository,
	chatRepo persistence.ChatRepository,
	feed persistence.WalletFeed,
	gate *session.Gate,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		walletRepo:   walletRepo,
		chatRepo:     chatRepo,
		feed:         feed,
		gate:         gate,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Recent returns the latest chat messages
func (s *Service) Recent(ctx context.Context, limit int) ([]*entity.ChatMessage, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.chatRepo.ListRecent(ctx, limit)
}

// Send posts a message. A tip debits the sender and credits the recipient in
// the same transaction as the message insert; insufficient funds reject the
// whole send.
func (s *Service) Send(ctx context.Context, identity *entity.Identity, content string, tip *TipRequest) (*entity.ChatMessage, error) {
	if err := s.gate.Authorize(ctx, identity); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" || len(content) > MaxContentLength {
		return nil, errs.ErrInvalidFormat
	}

	message := &entity.ChatMessage{
		AccountID: identity.AccountID,
		Content:   content,
		CreatedAt: s.timeProvider.Now(),
	}

	if tip == nil {
		if err := s.chatRepo.CreateMessage(ctx, message); err != nil {
			return nil, err
		}
		return message, nil
	}

	if tip.Amount <= 0 {
		return nil, errs.ErrInvalidBet
	}
	if tip.RecipientID == "" || tip.RecipientID == identity.AccountID {
		return nil, errs.ErrInvalidFormat
	}

	message.IsTip = true
	message.TipAmount = tip.Amount
	message.TipRecipientID = tip.RecipientID

	sender, recipient, err := s.transfer(ctx, identity.AccountID, tip.RecipientID, tip.Amount, message)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Tip transferred", map[string]any{
		"from":   identity.AccountID,
		"to":     tip.RecipientID,
		"amount": tip.Amount,
	})
	s.publish(ctx, sender)
	s.publish(ctx, recipient)

	return message, nil
}

// transfer moves credits between two wallets and inserts the tip message in
// one unit of work. Both wallet writes are compare-and-swap guarded.
func (s *Service) transfer(ctx context.Context, fromID, toID string, amount int64, message *entity.ChatMessage) (*entity.Wallet, *entity.Wallet, error) {
	sender, err := s.walletRepo.GetByAccountID(ctx, fromID)
	if err != nil {
		return nil, nil, err
	}
	recipient, err := s.walletRepo.GetByAccountID(ctx, toID)
	if err != nil {
		return nil, nil, err
	}

	senderExpected := sender.Balance()
	recipientExpected := recipient.Balance()

	if err := sender.Debit(amount, s.timeProvider); err != nil {
		return nil, nil, err
	}
	if err := recipient.Credit(amount, s.timeProvider); err != nil {
		return nil, nil, err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	wallets := s.uow.GetWalletRepository(txCtx)
	if err := wallets.UpdateIfBalance(txCtx, sender, senderExpected); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, nil, err
	}
	if err := wallets.UpdateIfBalance(txCtx, recipient, recipientExpected); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, nil, err
	}
	if err := s.uow.GetChatRepository(txCtx).CreateMessage(txCtx, message); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, nil, err
	}
	if err := s.uow.Commit(txCtx); err != nil {
		return nil, nil, err
	}
	return sender, recipient, nil
}

// publish pushes a wallet change, logging failures without surfacing them
func (s *Service) publish(ctx context.Context, wallet *entity.Wallet) {
	if s.feed == nil {
		return
	}
	if err := s.feed.Publish(ctx, persistence.WalletEvent{
		AccountID:    wallet.AccountID,
		Balance:      wallet.Balance(),
		TotalWagered: wallet.TotalWagered(),
		Level:        wallet.Level,
		OccurredAt:   s.timeProvider.Now(),
	}); err != nil {
		s.logger.Warn("Failed to publish wallet change after tip", map[string]any{
			"account_id": wallet.AccountID,
			"error":      err.Error(),
		})
	}
}
