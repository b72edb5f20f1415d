package persistence

import (
	"context"

	"github.com/crownplay/casino-engine/internal/domain/entity"
)

// WalletRepository defines essential methods to interact with wallet data
type WalletRepository interface {
	// GetByAccountID retrieves the wallet for an account
	//
	// Possible errors:
	// - ErrWalletNotFound: if the account has no wallet row
	// - ErrPersistenceUnavailable: if storage fails
	GetByAccountID(ctx context.Context, accountID string) (*entity.Wallet, error)

	// Create creates a new wallet at signup
	Create(ctx context.Context, wallet *entity.Wallet) error

	// Update persists the wallet unconditionally. Only for flows already
	// serialized by other means (admin overrides).
	Update(ctx context.Context, wallet *entity.Wallet) error

	// UpdateIfBalance persists the wallet only if the stored balance still
	// equals expectedBalance. This is the compare-and-swap that prevents lost
	// updates under concurrent settlement.
	//
	// Possible errors:
	// - ErrConflictRetry: the stored balance moved since it was read
	// - ErrWalletNotFound: if the wallet row is gone
	// - ErrPersistenceUnavailable: if storage fails
	UpdateIfBalance(ctx context.Context, wallet *entity.Wallet, expectedBalance int64) error

	// TopByWagered returns wallets ranked by lifetime wagered total, for the
	// leaderboard
	TopByWagered(ctx context.Context, limit int) ([]*entity.Wallet, error)
}
