// Package reward implements the daily level reward claim. Eligibility resets
// on the calendar day, not a rolling 24 hour window.
package reward

import (
	"context"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/domain/port/persistence"
	"github.com/crownplay/casino-engine/internal/domain/usecase/session"
)

// ClaimResult is returned after a successful claim
type ClaimResult struct {
	Level      int
	Amount     int64
	NewBalance int64
}

// Service grants daily rewards
type Service struct {
	uow          persistence.UnitOfWork
	walletRepo   persistence.WalletRepository
	feed         persistence.WalletFeed
	gate         *session.Gate
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates the reward service
func NewService(
	uow persistence.UnitOfWork,
	walletRepo persistence.WalletRepository,
	feed persistence.WalletFeed,
	gate *session.Gate,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		walletRepo:   walletRepo,
		feed:         feed,
		gate:         gate,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Claim grants the reward for the wallet's current level once per calendar
// day: the claim record insert and the wallet credit commit together.
func (s *Service) Claim(ctx context.Context, identity *entity.Identity) (*ClaimResult, error) {
	if err := s.gate.Authorize(ctx, identity); err != nil {
		return nil, err
	}

	wallet, err := s.walletRepo.GetByAccountID(ctx, identity.AccountID)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	if !entity.CanClaimReward(wallet.LastRewardClaim, now) {
		return nil, errs.ErrAlreadyClaimedToday
	}

	amount := entity.DailyReward(wallet.Level)
	expectedBalance := wallet.Balance()
	if err := wallet.Credit(amount, s.timeProvider); err != nil {
		return nil, err
	}
	wallet.MarkRewardClaimed(s.timeProvider)

	claim := &entity.LevelRewardClaim{
		AccountID: identity.AccountID,
		Level:     wallet.Level,
		Amount:    amount,
		ClaimedAt: now,
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.uow.GetWalletRepository(txCtx).UpdateIfBalance(txCtx, wallet, expectedBalance); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}
	if err := s.uow.GetRewardRepository(txCtx).CreateClaim(txCtx, claim); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}
	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Daily reward claimed", map[string]any{
		"account_id":  identity.AccountID,
		"level":       wallet.Level,
		"amount":      amount,
		"new_balance": wallet.Balance(),
	})

	if s.feed != nil {
		if err := s.feed.Publish(ctx, persistence.WalletEvent{
			AccountID:    identity.AccountID,
			Balance:      wallet.Balance(),
			TotalWagered: wallet.TotalWagered(),
			Level:        wallet.Level,
			OccurredAt:   now,
		}); err != nil {
			s.logger.Warn("Failed to publish wallet change after reward", map[string]any{
				"account_id": identity.AccountID,
				"error":      err.Error(),
			})
		}
	}

	return &ClaimResult{
		Level:      wallet.Level,
		Amount:     amount,
		NewBalance: wallet.Balance(),
	}, nil
}
