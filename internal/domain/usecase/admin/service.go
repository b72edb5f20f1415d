// Package admin implements the privileged mutations. Balance and level
// overrides need the admin role; role grants and bans need owner.
package admin

import (
	"context"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/domain/port/persistence"
	"github.com/crownplay/casino-engine/internal/domain/usecase/session"
)

// Service performs privileged account mutations
type Service struct {
	accountRepo  persistence.AccountRepository
	walletRepo   persistence.WalletRepository
	banRepo      persistence.BanRepository
	feed         persistence.WalletFeed
	gate         *session.Gate
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates the admin service
func NewService(
	accountRepo persistence.AccountRepository,
	walletRepo persistence.WalletRepository,
	banRepo persistence.BanRepository,
	feed persistence.WalletFeed,
	gate *session.Gate,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		accountRepo:  accountRepo,
		walletRepo:   walletRepo,
		banRepo:      banRepo,
		feed:         feed,
		gate:         gate,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// SetBalance overwrites an account's balance. Admin only.
func (s *Service) SetBalance(ctx context.Context, caller *entity.Identity, accountID string, balance int64) (*entity.Wallet, error) {
	if err := s.gate.RequireRole(caller, entity.RoleAdmin); err != nil {
		return nil, err
	}

	wallet, err := s.walletRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := wallet.OverrideBalance(balance, s.timeProvider); err != nil {
		return nil, err
	}
	if err := s.walletRepo.Update(ctx, wallet); err != nil {
		return nil, err
	}

	s.logger.Info("Balance overridden", map[string]any{
		"account_id": accountID,
		"balance":    balance,
		"by":         caller.AccountID,
	})
	s.publish(ctx, wallet)
	return wallet, nil
}

// SetLevel overwrites an account's level. Admin only; the override holds
// until the next wager recomputes the level from lifetime totals.
func (s *Service) SetLevel(ctx context.Context, caller *entity.Identity, accountID string, level int) (*entity.Wallet, error) {
	if err := s.gate.RequireRole(caller, entity.RoleAdmin); err != nil {
		return nil, err
	}

	wallet, err := s.walletRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	wallet.OverrideLevel(level, s.timeProvider)
	if err := s.walletRepo.Update(ctx, wallet); err != nil {
		return nil, err
	}

	s.logger.Info("Level overridden", map[string]any{
		"account_id": accountID,
		"level":      wallet.Level,
		"by":         caller.AccountID,
	})
	s.publish(ctx, wallet)
	return wallet, nil
}

// GrantRole changes an account's privilege tier. Owner only.
func (s *Service) GrantRole(ctx context.Context, caller *entity.Identity, accountID string, role entity.Role) error {
	if err := s.gate.RequireRole(caller, entity.RoleOwner); err != nil {
		return err
	}
	if !entity.IsValidRole(string(role)) {
		return errs.ErrInvalidFormat
	}
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		return err
	}
	if err := s.accountRepo.UpdateRole(ctx, accountID, role); err != nil {
		return err
	}

	s.logger.Info("Role granted", map[string]any{
		"account_id": accountID,
		"role":       string(role),
		"by":         caller.AccountID,
	})
	return nil
}

// Ban permanently blocks an account from wagering and chat. Owner only.
// Banning an already banned account is a no-op.
func (s *Service) Ban(ctx context.Context, caller *entity.Identity, accountID, reason string) error {
	if err := s.gate.RequireRole(caller, entity.RoleOwner); err != nil {
		return err
	}
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		return err
	}

	existing, err := s.banRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	ban := &entity.BanRecord{
		AccountID: accountID,
		BannedBy:  caller.AccountID,
		Reason:    reason,
		CreatedAt: s.timeProvider.Now(),
	}
	if err := s.banRepo.Create(ctx, ban); err != nil {
		return err
	}

	s.logger.Warn("Account banned", map[string]any{
		"account_id": accountID,
		"reason":     reason,
		"by":         caller.AccountID,
	})
	return nil
}

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
		s.logger.Warn("Failed to publish wallet change", map[string]any{
			"account_id": wallet.AccountID,
			"error":      err.Error(),
		})
	}
}
